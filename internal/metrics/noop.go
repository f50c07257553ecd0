package metrics

import "time"

type noopRecorder struct{}

// NewNoop returns a recorder that drops everything.
func NewNoop() Recorder {
	return noopRecorder{}
}

func (noopRecorder) IncCounter(string, map[string]string)                    {}
func (noopRecorder) ObserveLatency(string, time.Duration, map[string]string) {}
