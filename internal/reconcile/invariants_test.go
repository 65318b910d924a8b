package reconcile

import (
	"testing"

	"github.com/vortex/xmldiff/internal/diag"
	"github.com/vortex/xmldiff/internal/node"
)

// TestFixOrderDemotesCrossingMatch: when two matched child pairs appear in
// opposite relative order on the left and right, the minority pair (the
// one breaking the longest increasing run) is demoted to delete+insert
// rather than left as a crossing match.
func TestFixOrderDemotesCrossingMatch(t *testing.T) {
	leftArena := node.NewArena()
	a := elem(leftArena, "a")
	b := elem(leftArena, "b")
	leftParent := elem(leftArena, "section", a, b)

	rightArena := node.NewArena()
	b2 := elem(rightArena, "b")
	a2 := elem(rightArena, "a")
	rightParent := elem(rightArena, "section", b2, a2) // reversed order

	a.SetMatch(a2)
	b.SetMatch(b2)

	var d diag.Diagnostics
	fixOrder(leftArena, leftParent, rightParent, &d)

	if d.Count(diag.InvariantViolation) != 1 {
		t.Fatalf("InvariantViolation count = %d, want 1; events=%+v", d.Count(diag.InvariantViolation), d.Events)
	}

	if a.Matched() != a2 {
		t.Fatalf("the surviving match (a/a2, the longest increasing run) must remain linked")
	}
	if b.Matched() != nil {
		t.Fatalf("b's match must be cleared once demoted")
	}
	if !b.Deleted {
		t.Fatalf("b must be marked deleted once demoted")
	}
	if b2.Matched() == b {
		t.Fatalf("b2's match to b must be cleared once demoted")
	}

	if len(leftParent.Children) != 3 {
		t.Fatalf("leftParent.Children = %+v, want 3 (a, deleted b, inserted clone of b2)", leftParent.Children)
	}
	clone := leftParent.Children[2]
	if !clone.Inserted || clone.Tag != "b" {
		t.Fatalf("appended child = %+v, want an inserted clone of b2", clone)
	}
	if clone.Matched() != b2 {
		t.Fatalf("inserted clone must be matched back to b2")
	}
}

// TestFixOrderLeavesMonotonicOrderAlone covers the common case: matched
// children already in the same relative order on both sides are untouched.
func TestFixOrderLeavesMonotonicOrderAlone(t *testing.T) {
	leftArena := node.NewArena()
	a := elem(leftArena, "a")
	b := elem(leftArena, "b")
	leftParent := elem(leftArena, "section", a, b)

	rightArena := node.NewArena()
	a2 := elem(rightArena, "a")
	b2 := elem(rightArena, "b")
	rightParent := elem(rightArena, "section", a2, b2)

	a.SetMatch(a2)
	b.SetMatch(b2)

	var d diag.Diagnostics
	fixOrder(leftArena, leftParent, rightParent, &d)

	if !d.Empty() {
		t.Fatalf("unexpected diagnostics for already-monotonic matches: %+v", d.Events)
	}
	if len(leftParent.Children) != 2 {
		t.Fatalf("leftParent.Children = %+v, want unchanged length 2", leftParent.Children)
	}
	if a.Matched() != a2 || b.Matched() != b2 {
		t.Fatalf("existing matches must be left alone")
	}
}
