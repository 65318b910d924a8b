package node_test

import (
	"testing"

	"github.com/vortex/xmldiff/internal/node"
)

func TestArenaNewAssignsSequentialRefs(t *testing.T) {
	a := node.NewArena()
	n0 := a.New(node.Element)
	n1 := a.New(node.Text)
	if a.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", a.Len())
	}
	if a.At(0) != n0 || a.At(1) != n1 {
		t.Fatalf("At() did not return the nodes in allocation order")
	}
	if n0.PostOrderIndex != -1 {
		t.Fatalf("PostOrderIndex = %d, want -1 before solver preparation", n0.PostOrderIndex)
	}
}

func TestSetMatchIsMutual(t *testing.T) {
	left := node.NewArena().New(node.Element)
	right := node.NewArena().New(node.Element)

	left.SetMatch(right)

	if left.Matched() != right {
		t.Fatalf("left.Matched() = %v, want right", left.Matched())
	}
	if right.Matched() != left {
		t.Fatalf("right.Matched() = %v, want left", right.Matched())
	}
}

func TestMatchedNilWhenUnset(t *testing.T) {
	n := node.NewArena().New(node.Element)
	if n.Matched() != nil {
		t.Fatalf("Matched() = %v, want nil for an unmatched node", n.Matched())
	}
}

func TestSolverChildrenHidesParagraphChildren(t *testing.T) {
	a := node.NewArena()
	para := a.New(node.Paragraph)
	para.AppendChild(a.New(node.Text))

	if got := para.SolverChildren(); got != nil {
		t.Fatalf("SolverChildren() = %+v, want nil for a Paragraph", got)
	}

	elem := a.New(node.Element)
	child := a.New(node.Text)
	elem.AppendChild(child)
	if got := elem.SolverChildren(); len(got) != 1 || got[0] != child {
		t.Fatalf("SolverChildren() = %+v, want [child] for a non-Paragraph", got)
	}
}

func TestAppendChildSetsParent(t *testing.T) {
	a := node.NewArena()
	parent := a.New(node.Element)
	child := a.New(node.Text)
	parent.AppendChild(child)

	if child.Parent != parent {
		t.Fatalf("child.Parent = %v, want parent", child.Parent)
	}
	if len(parent.Children) != 1 || parent.Children[0] != child {
		t.Fatalf("parent.Children = %+v, want [child]", parent.Children)
	}
}

func TestInsertChildAtMiddle(t *testing.T) {
	a := node.NewArena()
	parent := a.New(node.Element)
	first := a.New(node.Text)
	third := a.New(node.Text)
	parent.AppendChild(first)
	parent.AppendChild(third)

	middle := a.New(node.Text)
	parent.InsertChildAt(1, middle)

	if len(parent.Children) != 3 {
		t.Fatalf("Children len = %d, want 3", len(parent.Children))
	}
	if parent.Children[0] != first || parent.Children[1] != middle || parent.Children[2] != third {
		t.Fatalf("Children = %+v, want [first, middle, third]", parent.Children)
	}
	if middle.Parent != parent {
		t.Fatalf("middle.Parent not set")
	}
}

func TestIndexOfChild(t *testing.T) {
	a := node.NewArena()
	parent := a.New(node.Element)
	child := a.New(node.Text)
	parent.AppendChild(child)

	if got := parent.IndexOfChild(child); got != 0 {
		t.Fatalf("IndexOfChild = %d, want 0", got)
	}
	stranger := a.New(node.Text)
	if got := parent.IndexOfChild(stranger); got != -1 {
		t.Fatalf("IndexOfChild(stranger) = %d, want -1", got)
	}
}

func TestFlattenTextConcatenatesDescendants(t *testing.T) {
	a := node.NewArena()
	root := a.New(node.Element)
	em := a.New(node.Element)
	em.AppendChild(mustText(a, "world"))
	root.AppendChild(mustText(a, "hello "))
	root.AppendChild(em)

	if got := root.FlattenText(); got != "hello world" {
		t.Fatalf("FlattenText() = %q, want %q", got, "hello world")
	}
}

func TestAttrValue(t *testing.T) {
	a := node.NewArena()
	n := a.New(node.Element)
	n.Attrs = []node.Attr{{Name: "id", Value: "x1"}}

	if v, ok := n.AttrValue("id"); !ok || v != "x1" {
		t.Fatalf("AttrValue(id) = %q, %v, want x1, true", v, ok)
	}
	if _, ok := n.AttrValue("missing"); ok {
		t.Fatalf("AttrValue(missing) reported found for an absent attribute")
	}
}

func TestRefIsZero(t *testing.T) {
	var r node.Ref
	if !r.IsZero() {
		t.Fatalf("zero Ref.IsZero() = false, want true")
	}
	if r.Node() != nil {
		t.Fatalf("zero Ref.Node() = %v, want nil", r.Node())
	}

	a := node.NewArena()
	n := a.New(node.Element)
	if n.Self().IsZero() {
		t.Fatalf("a real node's Self() must not be zero")
	}
}

func mustText(a *node.Arena, s string) *node.Node {
	n := a.New(node.Text)
	n.Text = s
	return n
}
