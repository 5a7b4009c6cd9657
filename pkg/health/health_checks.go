package health

import (
	"context"
)

// Pinger is anything whose connectivity can be probed
type Pinger interface {
	Ping(ctx context.Context) error
}

// PingCheck reports unhealthy when p fails to answer. A nil p reports
// healthy with the message "not configured".
func PingCheck(p Pinger) CheckFunc {
	return func(ctx context.Context) Check {
		if p == nil {
			return Check{Status: StatusHealthy, Message: "not configured"}
		}
		if err := p.Ping(ctx); err != nil {
			return Check{Status: StatusUnhealthy, Message: err.Error()}
		}
		return Check{Status: StatusHealthy, Message: "connected"}
	}
}

// InFlightCheck reports degraded while more than limit tasks run.
func InFlightCheck(inFlight func() int, limit int) CheckFunc {
	return func(ctx context.Context) Check {
		n := inFlight()
		check := Check{
			Status:  StatusHealthy,
			Details: map[string]any{"in_flight": n, "limit": limit},
		}
		if n > limit {
			check.Status = StatusDegraded
			check.Message = "more tasks in flight than workers"
		}
		return check
	}
}
