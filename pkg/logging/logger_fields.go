package logging

import (
	"time"
)

func String(key, value string) Field {
	return Field{Key: key, Value: value}
}

func Int(key string, value int) Field {
	return Field{Key: key, Value: value}
}

func Any(key string, value any) Field {
	return Field{Key: key, Value: value}
}

// Error records err under "error"; a nil error is logged as null.
func Error(err error) Field {
	if err == nil {
		return Field{Key: "error", Value: nil}
	}
	return Field{Key: "error", Value: err.Error()}
}

// Run and stage context

func Component(name string) Field { return String("component", name) }
func Stage(name string) Field     { return String("stage", name) }
func RunID(id string) Field       { return String("run_id", id) }
func Source(uri string) Field     { return String("source", uri) }
func Path(p string) Field         { return String("path", p) }
func Count(n int) Field           { return Int("count", n) }

// Latency is logged in milliseconds with sub-millisecond precision.
func Latency(d time.Duration) Field {
	return Field{Key: "latency_ms", Value: float64(d.Microseconds()) / 1000}
}

// Graph context

func Neighbourhood(name string) Field { return String("neighbourhood", name) }
func NodeIndex(idx int) Field         { return Int("node_index", idx) }
func Depth(d int) Field               { return Int("depth", d) }
func Nodes(n int) Field               { return Int("nodes", n) }
func Edges(n int) Field               { return Int("edges", n) }

// Threshold keeps the single-precision value the graph was built with.
func Threshold(t float32) Field { return Field{Key: "threshold", Value: t} }

// Policy names the closeness policy applied to unreachable nodes.
func Policy(p string) Field { return String("unreached_policy", p) }
