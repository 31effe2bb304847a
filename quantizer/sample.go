package quantizer

import (
	"bytes"
	"encoding/gob"
	"fmt"
	"time"

	"github.com/go-digitaltwin/go-simvalue"
)

// Sample is the wire form of a simvalue.Smooth value of a named signal.
type Sample struct {
	Signal string
	// Time is the sample time, in seconds since the start of the simulation. It
	// is meaningless for a Timeless sample.
	Time     float64
	Timeless bool
	Value    float64
	// Derivatives holds the time derivatives of Value, first derivative first.
	Derivatives []float64
	Units       []int
}

// NewSample returns the wire form of x. Only values sampled at simvalue.Seconds
// (or timeless values) have a wire form.
func NewSample(signal string, x simvalue.Smooth) (Sample, error) {
	s := Sample{
		Signal:      signal,
		Value:       x.Float64(),
		Derivatives: x.DerivativeValues(),
		Units:       x.Units(),
	}
	switch t := x.Time().(type) {
	case nil:
		s.Timeless = true
	case simvalue.Seconds:
		s.Time = float64(t)
	default:
		return Sample{}, fmt.Errorf("sample %q: unsupported sample time %T", signal, t)
	}
	return s, nil
}

// Smooth returns the value carried by s, keeping at most order derivatives.
func (s Sample) Smooth(order simvalue.Order) simvalue.Smooth {
	var t simvalue.SampleTime
	if !s.Timeless {
		t = simvalue.Seconds(s.Time)
	}
	return order.Smooth(s.Value, t, s.Derivatives...).WithUnits(s.Units)
}

// Batch is the message exchanged between quantizers and their peers: the
// samples of any number of signals.
type Batch struct {
	Samples []Sample
	// The time, in UTC, the batch was produced. It is unrelated to the
	// simulation time of its samples.
	Timestamp time.Time
}

// Encode returns the gob encoding of b.
func (b Batch) Encode() ([]byte, error) {
	var p bytes.Buffer
	if err := gob.NewEncoder(&p).Encode(b); err != nil {
		return nil, fmt.Errorf("encode gob: %w", err)
	}
	return p.Bytes(), nil
}

// DecodeBatch decodes a gob encoded Batch.
func DecodeBatch(p []byte) (Batch, error) {
	var b Batch
	if err := gob.NewDecoder(bytes.NewReader(p)).Decode(&b); err != nil {
		return Batch{}, fmt.Errorf("decode gob: %w", err)
	}
	return b, nil
}
