package sketch

import "testing"

// TestSegmentLog_PreservesOrder verifies appends come back in insertion order.
func TestSegmentLog_PreservesOrder(t *testing.T) {
	var l SegmentLog
	l.Append(Seg(1, 1, 2, 2))
	l.Append(Seg(2, 2, 3, 3))
	l.Append(Seg(3, 3, 1, 1))

	all := l.All()
	if l.Len() != 3 || len(all) != 3 {
		t.Fatalf("expected 3 segments, got %d", l.Len())
	}
	if all[0] != Seg(1, 1, 2, 2) || all[2] != Seg(3, 3, 1, 1) {
		t.Fatalf("unexpected order: %v", all)
	}
}

// TestSegmentLog_Reset verifies Reset empties the log.
func TestSegmentLog_Reset(t *testing.T) {
	var l SegmentLog
	l.Append(Seg(1, 1, 2, 2))
	l.Reset()
	if l.Len() != 0 || len(l.All()) != 0 {
		t.Fatalf("expected empty log after reset")
	}
}

// TestSegment_Flat verifies the flat wire form.
func TestSegment_Flat(t *testing.T) {
	got := Seg(20, 30, 50, 60).Flat()
	if got != [4]float64{20, 30, 50, 60} {
		t.Fatalf("unexpected flat form %v", got)
	}
}
