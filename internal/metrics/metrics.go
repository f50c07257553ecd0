// Package metrics is a thin recorder facade so the payment core can
// count outcomes without binding to a metrics backend.
package metrics

import "time"

// Recorder receives counters and latencies from the payment core.
type Recorder interface {
	IncCounter(name string, labels map[string]string)
	ObserveLatency(name string, duration time.Duration, labels map[string]string)
}
