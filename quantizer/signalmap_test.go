package quantizer_test

import (
	"sort"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/go-digitaltwin/go-simvalue"
	. "github.com/go-digitaltwin/go-simvalue/quantizer"
)

func TestSignalMap(t *testing.T) {
	t.Run("find", func(t *testing.T) {
		m := NewSignalMap(nil)
		if _, ok := m.Find("a"); ok {
			t.Errorf("Find(empty map) = true, expected false")
		}
		m.Update("a", simvalue.NewSmooth(1, simvalue.Seconds(0)))
		got, ok := m.Find("a")
		if !ok {
			t.Fatalf("Find(a) not found")
		}
		if got.Float64() != 1 {
			t.Errorf("Find(a) = %v, want value 1", got)
		}
	})

	t.Run("out of order", func(t *testing.T) {
		m := NewSignalMap(nil)
		m.Update("a", simvalue.NewSmooth(2, simvalue.Seconds(2)))
		if m.Update("a", simvalue.NewSmooth(1, simvalue.Seconds(1))) {
			t.Errorf("Update(older sample) = true, want false")
		}
		if !m.Update("a", simvalue.NewSmooth(3, simvalue.Seconds(2))) {
			t.Errorf("Update(sample at the same time) = false, want true")
		}
		if !m.Update("a", simvalue.NewSmooth(0, nil)) {
			t.Errorf("Update(timeless sample) = false, want true")
		}
		got, _ := m.Find("a")
		if got.String() != "smooth(0.0, {})" {
			t.Errorf("Find(a) = %v, want the timeless sample", got)
		}
	})

	t.Run("extrapolate", func(t *testing.T) {
		m := NewSignalMap(map[string]simvalue.Smooth{
			"a": simvalue.NewSmooth(2, simvalue.Seconds(0), 3, 2),
		})
		got, ok := m.At("a", simvalue.Seconds(1))
		if !ok {
			t.Fatalf("At(a) not found")
		}
		if diff := cmp.Diff([]float64{6}, []float64{got.Float64()}); diff != "" {
			t.Errorf("At(a, 1) value mismatch (-want +got):\n%s", diff)
		}
		if _, ok := m.At("b", simvalue.Seconds(1)); ok {
			t.Errorf("At(b) = true, expected false")
		}
	})

	t.Run("iter", func(t *testing.T) {
		m := NewSignalMap(nil)
		for i, signal := range []string{"a", "b", "c"} {
			m.Update(signal, simvalue.NewSmooth(float64(i), nil))
		}
		m.Delete("b")

		var signals []string
		m.Iter(func(signal string, x simvalue.Smooth) bool {
			// The map may be used while iterating.
			if _, ok := m.Find(signal); !ok {
				t.Errorf("Find(%s) not found during Iter", signal)
			}
			signals = append(signals, signal)
			return true
		})
		sort.Strings(signals)
		if diff := cmp.Diff([]string{"a", "c"}, signals); diff != "" {
			t.Errorf("Iter() signals mismatch (-want +got):\n%s", diff)
		}
		if m.Len() != 2 {
			t.Errorf("Len() = %d, want 2", m.Len())
		}
	})

	t.Run("copies initial map", func(t *testing.T) {
		initial := map[string]simvalue.Smooth{"a": simvalue.NewSmooth(1, nil)}
		m := NewSignalMap(initial)
		m.Update("b", simvalue.NewSmooth(2, nil))
		if len(initial) != 1 {
			t.Errorf("NewSignalMap() shares the initial map")
		}
	})
}
