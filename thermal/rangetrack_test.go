package thermal

import "testing"

var testSeed = Range{Min: 10, Max: 30}

func TestRangeTrackerSeedDominatesEarlyFrames(t *testing.T) {
	rt := NewRangeTracker(10, testSeed)

	frames := []Range{{5, 20}, {3, 25}, {8, 18}}
	var got Range
	for _, f := range frames {
		got = rt.Update(f)
	}
	if got != (Range{Min: 3, Max: 30}) {
		t.Errorf("display = %+v, want {3 30}", got)
	}
}

func TestRangeTrackerExpandsImmediately(t *testing.T) {
	rt := NewRangeTracker(10, testSeed)
	got := rt.Update(Range{Min: -4, Max: 55})
	if got != (Range{Min: -4, Max: 55}) {
		t.Errorf("display = %+v, want {-4 55}", got)
	}
}

func TestRangeTrackerContractsAfterAgingOut(t *testing.T) {
	rt := NewRangeTracker(10, testSeed)
	rt.Update(Range{Min: 0, Max: 50})

	steady := Range{Min: 20, Max: 22}
	for i := 1; i < 10; i++ {
		got := rt.Update(steady)
		if got.Min != 0 || got.Max != 50 {
			t.Fatalf("update %d: display = %+v, spike aged out too early", i, got)
		}
	}

	// The tenth steady frame evicts the spike.
	got := rt.Update(steady)
	if got != steady {
		t.Errorf("display = %+v, want %+v", got, steady)
	}
	if rt.Current() != steady {
		t.Errorf("Current = %+v, want %+v", rt.Current(), steady)
	}
}

func TestRangeTrackerAlwaysCoversFrame(t *testing.T) {
	rt := NewRangeTracker(10, testSeed)
	frames := []Range{{21, 23}, {19, 40}, {22, 22}, {-1, 0}, {15, 16}}
	for _, f := range frames {
		if got := rt.Update(f); !got.Contains(f) {
			t.Errorf("display %+v does not cover frame %+v", got, f)
		}
	}
}

func TestRangeTrackerObserve(t *testing.T) {
	rt := NewRangeTracker(10, testSeed)
	g := NewGrid(2, 2)
	g.Data = []float64{24, 26, 25, 25}

	frame, display := rt.Observe(g)
	if frame != (Range{Min: 24, Max: 26}) {
		t.Errorf("frame = %+v, want {24 26}", frame)
	}
	if display != testSeed {
		t.Errorf("display = %+v, want seed %+v", display, testSeed)
	}
}

func TestRangeTrackerReset(t *testing.T) {
	rt := NewRangeTracker(3, testSeed)
	rt.Update(Range{Min: -50, Max: 90})
	rt.Reset()
	if rt.Current() != testSeed {
		t.Errorf("Current after reset = %+v", rt.Current())
	}
	if got := rt.Update(Range{Min: 12, Max: 14}); got != testSeed {
		t.Errorf("display after reset = %+v, want %+v", got, testSeed)
	}
}

func TestRangeUnion(t *testing.T) {
	got := Range{Min: 1, Max: 5}.Union(Range{Min: -2, Max: 3})
	if got != (Range{Min: -2, Max: 5}) {
		t.Errorf("Union = %+v", got)
	}
	if got.Span() != 7 {
		t.Errorf("Span = %v, want 7", got.Span())
	}
}
