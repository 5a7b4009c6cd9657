package logging

import "sync/atomic"

// Progress reports completion of a fixed number of steps, logging only when
// the integer percentage changes. It is safe for concurrent Step calls.
type Progress struct {
	logger Logger
	msg    string
	total  int64
	done   atomic.Int64
	last   atomic.Int64
}

// NewProgress creates a reporter for total steps. A total of zero never logs.
func NewProgress(logger Logger, msg string, total int) *Progress {
	return &Progress{
		logger: OrNop(logger),
		msg:    msg,
		total:  int64(total),
	}
}

// Step marks one step done.
func (p *Progress) Step() {
	p.Add(1)
}

// Add marks n steps done.
func (p *Progress) Add(n int) {
	if p.total <= 0 {
		return
	}
	done := p.done.Add(int64(n))
	pct := done * 100 / p.total
	if pct > 100 {
		pct = 100
	}
	for {
		last := p.last.Load()
		if pct <= last {
			return
		}
		if p.last.CompareAndSwap(last, pct) {
			p.logger.Info(p.msg, Percent(int(pct)), Int64("done", done), Int64("total", p.total))
			return
		}
	}
}

// Done returns the number of completed steps.
func (p *Progress) Done() int {
	return int(p.done.Load())
}
