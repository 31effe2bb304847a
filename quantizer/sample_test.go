package quantizer_test

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/go-digitaltwin/go-simvalue"
	. "github.com/go-digitaltwin/go-simvalue/quantizer"
)

func TestSample(t *testing.T) {
	metre := simvalue.UnitVector{1}
	tests := []struct {
		name string
		x    simvalue.Smooth
		want Sample
	}{
		{
			name: "timed",
			x:    simvalue.NewSmooth(1.5, simvalue.Seconds(2), 3, 4).WithUnits(metre),
			want: Sample{Signal: "s", Time: 2, Value: 1.5, Derivatives: []float64{3, 4}, Units: []int{1}},
		},
		{
			name: "timeless",
			x:    simvalue.NewSmooth(7, nil),
			want: Sample{Signal: "s", Timeless: true, Value: 7},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewSample("s", tt.x)
			if err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff(tt.want, got, cmpopts.EquateEmpty()); diff != "" {
				t.Errorf("NewSample(%v) mismatch (-want +got):\n%s", tt.x, diff)
			}

			// Sending the sample over the wire must not change its value.
			p, err := Batch{Samples: []Sample{got}, Timestamp: time.Now().UTC()}.Encode()
			if err != nil {
				t.Fatal(err)
			}
			batch, err := DecodeBatch(p)
			if err != nil {
				t.Fatal(err)
			}
			x := batch.Samples[0].Smooth(simvalue.DefaultOrder)
			if x.String() != tt.x.String() {
				t.Errorf("Smooth() after decoding = %v, want %v", x, tt.x)
			}
		})
	}
}

func TestSampleTruncatesOrder(t *testing.T) {
	s := Sample{Signal: "s", Value: 1, Derivatives: []float64{1, 2, 3}}
	got := s.Smooth(1).DerivativeValues()
	if diff := cmp.Diff([]float64{1}, got); diff != "" {
		t.Errorf("Smooth(1) derivatives mismatch (-want +got):\n%s", diff)
	}
}

type ticks int

func (t ticks) Compare(other simvalue.SampleTime) int { return int(t - other.(ticks)) }
func (t ticks) Sub(other simvalue.SampleTime) float64 { return float64(t - other.(ticks)) }

func TestSampleForeignTime(t *testing.T) {
	if _, err := NewSample("s", simvalue.NewSmooth(1, ticks(3))); err == nil {
		t.Errorf("NewSample(sampled at ticks) error = nil, want an error")
	}
}

func TestDecodeBatchGarbage(t *testing.T) {
	if _, err := DecodeBatch([]byte{0xff, 0x00}); err == nil {
		t.Errorf("DecodeBatch(garbage) error = nil, want an error")
	}
}
