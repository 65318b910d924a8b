// Package render walks the reconciled left tree produced by
// internal/reconcile into a structured span sequence, with word-level
// diff spans attached to matched Text nodes whose strings differ and
// per-attribute diffs attached to matched Elements whose tag or
// attributes differ.
package render

import (
	"github.com/vortex/xmldiff/internal/align"
	"github.com/vortex/xmldiff/internal/node"
	"github.com/vortex/xmldiff/internal/tagequiv"
)

// State classifies one rendered node relative to its counterpart in the
// other tree.
type State string

const (
	Unchanged State = "unchanged"
	LeftOnly  State = "left-only"
	RightOnly State = "right-only"
	Renamed   State = "rename-pair"
)

// AttrState classifies one rendered attribute.
type AttrState string

const (
	AttrUnchanged AttrState = "unchanged"
	AttrRenamed   AttrState = "renamed"
	AttrLeftOnly  AttrState = "left-only"
	AttrRightOnly AttrState = "right-only"
)

// AttrDiff is one rendered attribute of a matched Element.
type AttrDiff struct {
	Name       string
	LeftValue  string
	RightValue string
	State      AttrState
}

// Span is one rendered node in the merged output tree.
type Span struct {
	Kind  node.Kind
	State State

	// Tag is the left-side (or only-side) tag for Element spans.
	Tag string
	// RightTag is set only when State == Renamed and the tag itself
	// differs: tag-equivalence-table matches are not rendered as renames,
	// only a pair the table does not bless is marked as one.
	RightTag string

	// Attrs is populated for Element spans; always in left-then-added
	// order (unchanged/renamed attrs in left order, then right-only
	// additions appended).
	Attrs []AttrDiff

	// Text/RightText hold a Text or Comment or PI node's body. RightText
	// is set only when the match's body differs.
	Text      string
	RightText string
	// TextSpans is populated for a matched Text node whose Text differs,
	// via align.Align over the tokenized left/right strings.
	TextSpans []node.TextSpan

	PreserveSpace bool

	Children []*Span
}

// Config is threaded through a Render call as an explicit context value,
// never a process-wide singleton.
type Config struct {
	Equiv *tagequiv.Table
}

// Render walks the reconciled left tree rooted at root and produces its
// span sequence. root is expected to be a Document node after
// internal/reconcile.Apply has run.
func Render(root *node.Node, cfg Config) *Span {
	return renderNode(root, cfg)
}

func renderNode(n *node.Node, cfg Config) *Span {
	switch n.Kind {
	case node.Text, node.Comment, node.PI:
		return renderLeaf(n, cfg)
	case node.Paragraph:
		return renderParagraph(n)
	default:
		return renderContainer(n, cfg)
	}
}

// renderParagraph renders a Paragraph node as a text leaf rather than
// walking its children: the solver treats Paragraph as a leaf
// (node.SolverChildren), so a matched pair's children were never
// individually aligned by the reconciler. The renderer re-runs full
// alignment on the flattened text of both sides instead of relying on
// child-level match links that don't exist here.
func renderParagraph(n *node.Node) *Span {
	s := &Span{
		Kind:          node.Paragraph,
		PreserveSpace: n.PreserveSpace,
		Text:          n.FlattenText(),
		State:         stateOf(n),
	}
	m := n.Matched()
	if m == nil || n.Deleted || n.Inserted {
		return s
	}
	rightText := m.FlattenText()
	if s.Text == rightText {
		return s
	}
	s.State = Renamed
	s.RightText = rightText
	s.TextSpans = diffText(s.Text, rightText)
	return s
}

func renderContainer(n *node.Node, cfg Config) *Span {
	s := &Span{
		Kind:          n.Kind,
		Tag:           n.Tag,
		PreserveSpace: n.PreserveSpace,
		State:         stateOf(n),
	}
	if n.Kind == node.Element {
		s.Attrs = renderAttrs(n, n.Matched())
		if m := n.Matched(); m != nil && m.Tag != n.Tag && !cfg.Equiv.Equivalent(n.Tag, m.Tag) {
			s.State = Renamed
			s.RightTag = m.Tag
		}
	}
	for _, c := range n.Children {
		s.Children = append(s.Children, renderNode(c, cfg))
	}
	return s
}

func renderLeaf(n *node.Node, cfg Config) *Span {
	s := &Span{
		Kind:          n.Kind,
		Tag:           n.Tag,
		PreserveSpace: n.PreserveSpace,
		Text:          n.Text,
		State:         stateOf(n),
	}
	if n.Kind == node.PI {
		s.Tag = n.PITarget
	}
	m := n.Matched()
	if m == nil || n.Deleted || n.Inserted {
		return s
	}
	if n.Text == m.Text && (n.Kind != node.PI || n.PITarget == m.PITarget) {
		return s
	}
	s.State = Renamed
	s.RightText = m.Text
	if n.Kind == node.Text {
		s.TextSpans = diffText(n.Text, m.Text)
	}
	return s
}

func diffText(left, right string) []node.TextSpan {
	ops := align.Align(align.Tokenize(left), align.Tokenize(right))
	spans := make([]node.TextSpan, 0, len(ops))
	for _, op := range ops {
		switch op.Kind {
		case align.OpEqual:
			spans = append(spans, node.TextSpan{
				Op:    node.SpanEqual,
				Left:  align.Join(op.Left),
				Right: align.Join(op.Right),
			})
		case align.OpInsert:
			spans = append(spans, node.TextSpan{Op: node.SpanInsert, Right: align.Join(op.Right)})
		case align.OpRemove:
			spans = append(spans, node.TextSpan{Op: node.SpanRemove, Left: align.Join(op.Left)})
		}
	}
	return spans
}

func stateOf(n *node.Node) State {
	switch {
	case n.Deleted:
		return LeftOnly
	case n.Inserted:
		return RightOnly
	default:
		return Unchanged
	}
}

// renderAttrs produces the per-attribute diff for a matched (or
// unmatched) Element: unchanged attributes as plain, differing values as
// a rename pair, left-only as removed, right-only as added — in left
// order first, then right-only additions.
func renderAttrs(left, right *node.Node) []AttrDiff {
	var out []AttrDiff
	seen := make(map[string]bool, len(left.Attrs))
	for _, a := range left.Attrs {
		seen[a.Name] = true
		if right == nil {
			out = append(out, AttrDiff{Name: a.Name, LeftValue: a.Value, State: AttrLeftOnly})
			continue
		}
		rv, ok := right.AttrValue(a.Name)
		switch {
		case !ok:
			out = append(out, AttrDiff{Name: a.Name, LeftValue: a.Value, State: AttrLeftOnly})
		case rv == a.Value:
			out = append(out, AttrDiff{Name: a.Name, LeftValue: a.Value, RightValue: rv, State: AttrUnchanged})
		default:
			out = append(out, AttrDiff{Name: a.Name, LeftValue: a.Value, RightValue: rv, State: AttrRenamed})
		}
	}
	if right != nil {
		for _, a := range right.Attrs {
			if seen[a.Name] {
				continue
			}
			out = append(out, AttrDiff{Name: a.Name, RightValue: a.Value, State: AttrRightOnly})
		}
	}
	return out
}
