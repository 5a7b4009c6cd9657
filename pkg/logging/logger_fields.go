package logging

import (
	"time"
)

// Common field constructors
func String(key, value string) Field {
	return Field{Key: key, Value: value}
}

func Int(key string, value int) Field {
	return Field{Key: key, Value: value}
}

func Int64(key string, value int64) Field {
	return Field{Key: key, Value: value}
}

func Float64(key string, value float64) Field {
	return Field{Key: key, Value: value}
}

func Bool(key string, value bool) Field {
	return Field{Key: key, Value: value}
}

func Duration(key string, value time.Duration) Field {
	return Field{Key: key, Value: value.String()}
}

func Error(err error) Field {
	if err == nil {
		return Field{Key: "error", Value: nil}
	}
	return Field{Key: "error", Value: err.Error()}
}

func Any(key string, value any) Field {
	return Field{Key: key, Value: value}
}

// Domain field helpers

func Component(name string) Field {
	return String("component", name)
}

// Graph names the graph being processed, usually its source path.
func Graph(name string) Field {
	return String("graph", name)
}

func NodeID(id string) Field {
	return String("node_id", id)
}

func Directedness(d string) Field {
	return String("directedness", d)
}

// Pair identifies one cell of a similarity matrix.
func Pair(i, k int) Field {
	return Field{Key: "pair", Value: [2]int{i, k}}
}

func Workers(n int) Field {
	return Int("workers", n)
}

func Metric(name string) Field {
	return String("metric", name)
}

func RunID(id string) Field {
	return String("run_id", id)
}

func Percent(p int) Field {
	return Int("percent", p)
}

func Latency(d time.Duration) Field {
	return Duration("latency", d)
}

func Count(n int) Field {
	return Int("count", n)
}

func Path(p string) Field {
	return String("path", p)
}
