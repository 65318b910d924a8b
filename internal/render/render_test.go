package render

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/vortex/xmldiff/internal/node"
	"github.com/vortex/xmldiff/internal/tagequiv"
)

func elem(a *node.Arena, tag string, children ...*node.Node) *node.Node {
	n := a.New(node.Element)
	n.Tag = tag
	for _, c := range children {
		n.AppendChild(c)
	}
	return n
}

func text(a *node.Arena, s string) *node.Node {
	n := a.New(node.Text)
	n.Text = s
	return n
}

// TestRenderTextRename: a matched Text node whose strings differ renders
// as one rename-pair span carrying word-level diff spans, not a
// delete+insert.
func TestRenderTextRename(t *testing.T) {
	leftArena := node.NewArena()
	left := text(leftArena, "foo")

	rightArena := node.NewArena()
	right := text(rightArena, "bar")
	left.SetMatch(right)

	s := Render(left, Config{Equiv: tagequiv.Default()})
	if s.State != Renamed {
		t.Fatalf("state = %v, want Renamed", s.State)
	}
	if s.Text != "foo" || s.RightText != "bar" {
		t.Fatalf("text = %q/%q, want foo/bar", s.Text, s.RightText)
	}
	if len(s.TextSpans) == 0 {
		t.Fatalf("expected non-empty word-level diff spans")
	}
}

// TestRenderAttributeDiff covers a matched Element with differing attributes.
func TestRenderAttributeDiff(t *testing.T) {
	leftArena := node.NewArena()
	left := elem(leftArena, "e")
	left.Attrs = []node.Attr{{Name: "a", Value: "1"}, {Name: "b", Value: "2"}}

	rightArena := node.NewArena()
	right := elem(rightArena, "e")
	right.Attrs = []node.Attr{{Name: "a", Value: "1"}, {Name: "c", Value: "2"}}
	left.SetMatch(right)

	s := Render(left, Config{Equiv: tagequiv.Default()})
	if s.State != Unchanged {
		t.Fatalf("state = %v, want Unchanged (tag itself matches)", s.State)
	}
	var gotA, gotB, gotC bool
	for _, ad := range s.Attrs {
		switch ad.Name {
		case "a":
			gotA = ad.State == AttrUnchanged
		case "b":
			gotB = ad.State == AttrLeftOnly
		case "c":
			gotC = ad.State == AttrRightOnly
		}
	}
	if !gotA || !gotB || !gotC {
		t.Fatalf("attrs = %+v, want a unchanged, b left-only, c right-only", s.Attrs)
	}
}

// TestRenderTagEquivalenceNotRename: matched tags from the same
// equivalence group render as unchanged, not a rename.
func TestRenderTagEquivalenceNotRename(t *testing.T) {
	leftArena := node.NewArena()
	left := elem(leftArena, "list", text(leftArena, "x"))

	rightArena := node.NewArena()
	right := elem(rightArena, "ul", text(rightArena, "x"))
	left.SetMatch(right)
	left.Children[0].SetMatch(right.Children[0])

	s := Render(left, Config{Equiv: tagequiv.Default()})
	if s.State != Unchanged {
		t.Fatalf("state = %v, want Unchanged for tag-equivalent match", s.State)
	}
	if s.RightTag != "" {
		t.Fatalf("RightTag = %q, want empty (not rendered as rename)", s.RightTag)
	}
}

// TestRenderInsertedSubtree: an inserted Element renders as right-only,
// recursively.
func TestRenderInsertedSubtree(t *testing.T) {
	arena := node.NewArena()
	b := elem(arena, "b")
	b.Inserted = true

	s := Render(b, Config{Equiv: tagequiv.Default()})
	if s.State != RightOnly {
		t.Fatalf("state = %v, want RightOnly", s.State)
	}
}

// TestRenderParagraphRewrite: a matched pair of Paragraph nodes with
// differing flattened text renders as a single rename with word-level
// diff spans, not a structural walk of mismatched children (the solver
// never aligned those children; it treated each Paragraph as a leaf).
func TestRenderParagraphRewrite(t *testing.T) {
	leftArena := node.NewArena()
	leftPara := leftArena.New(node.Paragraph)
	leftPara.AppendChild(text(leftArena, "the quick brown fox jumps"))

	rightArena := node.NewArena()
	rightPara := rightArena.New(node.Paragraph)
	rightPara.AppendChild(text(rightArena, "the quick brown fox leaps"))
	leftPara.SetMatch(rightPara)

	s := Render(leftPara, Config{Equiv: tagequiv.Default()})
	if s.State != Renamed {
		t.Fatalf("state = %v, want Renamed", s.State)
	}
	if s.Children != nil {
		t.Fatalf("Children = %+v, want nil: paragraph children are never individually aligned", s.Children)
	}
	if len(s.TextSpans) == 0 {
		t.Fatalf("expected non-empty word-level diff spans for paragraph rewrite")
	}
}

// TestRenderDeletedSubtree renders a left-only (deleted) Element.
func TestRenderDeletedSubtree(t *testing.T) {
	arena := node.NewArena()
	a := elem(arena, "a")
	a.Deleted = true

	s := Render(a, Config{Equiv: tagequiv.Default()})
	if s.State != LeftOnly {
		t.Fatalf("state = %v, want LeftOnly", s.State)
	}
}

// TestRenderIdempotent: rendering the same reconciled tree twice produces
// a structurally identical span tree. go-cmp is used here rather than a
// hand-rolled equality walk, the same way an XML-comparison helper in the
// broader ecosystem leans on go-cmp to compare trees instead of writing
// its own recursive Equal.
func TestRenderIdempotent(t *testing.T) {
	leftArena := node.NewArena()
	left := elem(leftArena, "section", text(leftArena, "hello"))

	rightArena := node.NewArena()
	right := elem(rightArena, "section", text(rightArena, "hello world"))
	left.SetMatch(right)
	left.Children[0].SetMatch(right.Children[0])

	cfg := Config{Equiv: tagequiv.Default()}
	first := Render(left, cfg)
	second := Render(left, cfg)

	if diff := cmp.Diff(first, second, cmpopts.EquateEmpty()); diff != "" {
		t.Fatalf("rendering the same tree twice produced different output (-first +second):\n%s", diff)
	}
}
