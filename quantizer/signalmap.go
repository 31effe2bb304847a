package quantizer

import (
	"context"
	"errors"
	"maps"
	"sync"

	"github.com/danielorbach/go-component"
	"gocloud.dev/pubsub"

	"github.com/go-digitaltwin/go-simvalue"
)

// SignalMap holds the latest known sample of every signal it has seen.
//
// SignalMap is safe for concurrent use.
type SignalMap struct {
	mu sync.Mutex
	m  map[string]simvalue.Smooth
}

// NewSignalMap returns a SignalMap holding a copy of m, which may be nil.
func NewSignalMap(m map[string]simvalue.Smooth) *SignalMap {
	newMap := make(map[string]simvalue.Smooth, len(m))
	maps.Copy(newMap, m)
	return &SignalMap{m: newMap}
}

// Find returns the latest sample of the given signal, and whether there is one.
func (s *SignalMap) Find(signal string) (x simvalue.Smooth, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	x, ok = s.m[signal]
	return x, ok
}

// At returns the latest sample of the given signal extrapolated to time t.
func (s *SignalMap) At(signal string, t simvalue.SampleTime) (simvalue.Smooth, bool) {
	x, ok := s.Find(signal)
	if !ok {
		return simvalue.Smooth{}, false
	}
	return x.Extrapolate(t), true
}

// Update records x as the latest sample of the given signal, unless the map
// already holds a sample taken after it. It reports whether x was recorded.
// Timeless samples always replace the current one.
func (s *SignalMap) Update(signal string, x simvalue.Smooth) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if last, ok := s.m[signal]; ok && last.Time() != nil && x.Time() != nil {
		if x.Time().Compare(last.Time()) < 0 {
			return false
		}
	}
	s.m[signal] = x
	return true
}

// Delete forgets the given signal.
func (s *SignalMap) Delete(signal string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.m, signal)
}

// Len returns the number of signals in the map.
func (s *SignalMap) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.m)
}

// Iter calls fn for each signal and its latest sample, in no particular order,
// until fn returns false. It iterates over a snapshot, so fn may use the map.
func (s *SignalMap) Iter(fn func(signal string, x simvalue.Smooth) bool) {
	s.mu.Lock()
	snapshot := maps.Clone(s.m)
	s.mu.Unlock()
	for k, v := range snapshot {
		if !fn(k, v) {
			break
		}
	}
}

// TrackSignals returns a component.Proc that consumes Batch messages from the
// given source and keeps m up to date with the latest sample of each signal,
// keeping at most order derivatives per sample.
//
// Batches are applied one at a time and acknowledged once applied.
func TrackSignals(m *SignalMap, source *pubsub.Subscription, order simvalue.Order) component.Proc {
	return func(l *component.L) {
		for l.Continue() {
			msg, err := source.Receive(l.GraceContext())
			if err != nil {
				if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
					return
				}
				l.Errorf("receive: %v", err)
				continue
			}
			batch, err := DecodeBatch(msg.Body)
			if err != nil {
				l.Fatalf("Failed to unmarshal batch; stopping signal tracking: %v\n", err)
			}
			for _, s := range batch.Samples {
				m.Update(s.Signal, s.Smooth(order))
			}
			msg.Ack()
		}
	}
}
