package partition

import "testing"

func TestSplit_EvenPartition(t *testing.T) {
	parts := Split(0, 12, 4)
	want := []Part{
		{PartNum: 0, Start: 0, End: 3},
		{PartNum: 1, Start: 3, End: 6},
		{PartNum: 2, Start: 6, End: 9},
		{PartNum: 3, Start: 9, End: 12},
	}
	assertParts(t, parts, want)
}

func TestSplit_RemainderAbsorbedByLast(t *testing.T) {
	parts := Split(0, 10, 3)
	want := []Part{
		{PartNum: 0, Start: 0, End: 3},
		{PartNum: 1, Start: 3, End: 6},
		{PartNum: 2, Start: 6, End: 10},
	}
	assertParts(t, parts, want)
}

func TestSplit_ConcurrencyClamp(t *testing.T) {
	concurrency := ClampConcurrency(8, 2)
	if concurrency != 2 {
		t.Fatalf("expected clamp to 2, got %d", concurrency)
	}
	parts := Split(0, 2, concurrency)
	want := []Part{
		{PartNum: 0, Start: 0, End: 1},
		{PartNum: 1, Start: 1, End: 2},
	}
	assertParts(t, parts, want)
}

func TestSplit_ConcurrencyOne(t *testing.T) {
	parts := Split(5, 10, 1)
	want := []Part{
		{PartNum: 0, Start: 5, End: 15},
	}
	assertParts(t, parts, want)
}

func TestSplit_StartFrameOffset(t *testing.T) {
	parts := Split(100, 9, 3)
	want := []Part{
		{PartNum: 0, Start: 100, End: 103},
		{PartNum: 1, Start: 103, End: 106},
		{PartNum: 2, Start: 106, End: 109},
	}
	assertParts(t, parts, want)
}

// TestSplit_CoversExactly checks that the union of all parts is exactly
// [startFrame, startFrame+durationFrames) with empty pairwise
// intersections, for a range of inputs.
func TestSplit_CoversExactly(t *testing.T) {
	cases := []struct {
		start, duration, concurrency int
	}{
		{0, 1, 1}, {0, 7, 7}, {0, 100, 6}, {3, 17, 5}, {0, 2, 8},
	}
	for _, c := range cases {
		concurrency := ClampConcurrency(c.concurrency, c.duration)
		parts := Split(c.start, c.duration, concurrency)
		if len(parts) != concurrency {
			t.Fatalf("case %+v: expected %d parts, got %d", c, concurrency, len(parts))
		}
		cursor := c.start
		for _, p := range parts {
			if p.Start != cursor {
				t.Fatalf("case %+v: expected part to start at %d, got %d", c, cursor, p.Start)
			}
			if p.End <= p.Start {
				t.Fatalf("case %+v: empty or negative part %+v", c, p)
			}
			cursor = p.End
		}
		if cursor != c.start+c.duration {
			t.Fatalf("case %+v: coverage ended at %d, want %d", c, cursor, c.start+c.duration)
		}
	}
}

func assertParts(t *testing.T, got, want []Part) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("expected %d parts, got %d: %+v", len(want), len(got), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("part %d: got %+v, want %+v", i, got[i], want[i])
		}
	}
}
