// Package node defines the typed tree model shared by every stage of the
// diff pipeline: the builder produces it, the paragraph folder reshapes it,
// the Zhang-Shasha solver walks it, the reconciler mutates it, and the
// renderer reads it back out.
package node

// Kind identifies which node variant a Node represents.
type Kind uint8

const (
	Document Kind = iota
	Element
	Text
	Comment
	PI
	Paragraph
)

func (k Kind) String() string {
	switch k {
	case Document:
		return "Document"
	case Element:
		return "Element"
	case Text:
		return "Text"
	case Comment:
		return "Comment"
	case PI:
		return "PI"
	case Paragraph:
		return "Paragraph"
	default:
		return "Unknown"
	}
}

// Attr is an attribute name/value pair. Attribute order is the XML source
// order; comparison between two elements is key-wise, not positional.
type Attr struct {
	Name  string
	Value string
}

// SpanOp classifies a token-level diff span inside a matched Text node.
type SpanOp uint8

const (
	SpanEqual SpanOp = iota
	SpanInsert
	SpanRemove
)

// TextSpan is one token-range span produced by the renderer (component G)
// for a matched Text node whose left and right strings differ.
type TextSpan struct {
	Op    SpanOp
	Left  string
	Right string
}

// Ref is a non-owning reference into an Arena: which tree, which slot.
// Match links cross between the left and right tree's arenas, so they are
// modeled as indices rather than raw pointers — cloning a subtree (as the
// reconciler does for inserts) never needs to chase or rewrite a pointer
// into the other tree.
type Ref struct {
	Arena *Arena
	Index int
}

// IsZero reports whether r refers to nothing.
func (r Ref) IsZero() bool { return r.Arena == nil }

// Node dereferences the reference, or returns nil if it is zero.
func (r Ref) Node() *Node {
	if r.Arena == nil {
		return nil
	}
	return r.Arena.nodes[r.Index]
}

// Node is one node of a diff tree. Every node belongs to exactly one Arena.
type Node struct {
	Kind Kind

	// Element fields.
	Tag   string
	Attrs []Attr

	// Text / Comment body, or PI body.
	Text string

	// PI target (Kind == PI only).
	PITarget string

	// Children, in document order. Owning: the arena and the parent both
	// keep these nodes alive, but Children is the only list that defines
	// tree structure.
	Children []*Node
	// Parent is a weak back-reference, never used for ownership.
	Parent *Node

	// Line is the source line of the element whose text/tail this node
	// came from (or the element's own opening line, for Element/Comment/PI).
	Line int
	// BaseURI is the base URI string supplied by the parser collaborator.
	BaseURI string

	// PreserveSpace is true if this node or an ancestor declared
	// space="preserve", or if the tag is in the fixed whitespace-preserving
	// set (artwork, sourcecode, ...). Comments are always whitespace-preserving.
	PreserveSpace bool

	// GlobalIndex is assigned monotonically at build time. It is used only
	// for debugging and as a deterministic tie-breaker; it has no bearing
	// on tree structure or edit distance.
	GlobalIndex int

	// PostOrderIndex is assigned by the solver's preparation pass
	// (zhangshasha.Prepare). -1 until then.
	PostOrderIndex int

	// Match links this node to its counterpart in the other tree. Zero
	// value means unmatched.
	Match Ref
	// Deleted is true once the reconciler marks this node absent on the
	// other side (left tree only).
	Deleted bool
	// Inserted is true for nodes that exist only on the right, including
	// clones spliced into the left tree during reconciliation.
	Inserted bool

	// DiffSpans holds the token-level diff, populated by the renderer, for
	// a Text node whose Match exists but whose Text differs.
	DiffSpans []TextSpan

	self Ref
}

// Arena owns every node built for one tree (the left document or the right
// document). Nodes never move between arenas except via an explicit clone.
type Arena struct {
	nodes []*Node
}

// NewArena returns an empty arena.
func NewArena() *Arena {
	return &Arena{}
}

// New allocates a node of the given kind, owned by a.
func (a *Arena) New(kind Kind) *Node {
	n := &Node{Kind: kind, PostOrderIndex: -1}
	n.self = Ref{Arena: a, Index: len(a.nodes)}
	a.nodes = append(a.nodes, n)
	return n
}

// Len returns the number of nodes ever allocated in a (including ones no
// longer reachable from the root, which does not happen in this pipeline).
func (a *Arena) Len() int { return len(a.nodes) }

// At returns the node at post-build arena index i.
func (a *Arena) At(i int) *Node { return a.nodes[i] }

// Self returns n's own reference within its arena, suitable for storing as
// another node's Match.
func (n *Node) Self() Ref { return n.self }

// SetMatch links n and other as mutual matches.
func (n *Node) SetMatch(other *Node) {
	n.Match = other.Self()
	other.Match = n.Self()
}

// Matched returns n's match, or nil if unmatched.
func (n *Node) Matched() *Node { return n.Match.Node() }

// SolverChildren returns the children the Zhang-Shasha solver should see.
// Paragraph nodes are leaves to the solver (their update cost is computed
// from flattened text, not from structural alignment of their children);
// every other kind exposes its real children.
func (n *Node) SolverChildren() []*Node {
	if n.Kind == Paragraph {
		return nil
	}
	return n.Children
}

// AppendChild appends c to n's child list and sets c.Parent = n.
func (n *Node) AppendChild(c *Node) {
	c.Parent = n
	n.Children = append(n.Children, c)
}

// InsertChildAt inserts c at position i in n's child list.
func (n *Node) InsertChildAt(i int, c *Node) {
	c.Parent = n
	n.Children = append(n.Children, nil)
	copy(n.Children[i+1:], n.Children[i:])
	n.Children[i] = c
}

// IndexOfChild returns the index of c in n.Children, or -1.
func (n *Node) IndexOfChild(c *Node) int {
	for i, ch := range n.Children {
		if ch == c {
			return i
		}
	}
	return -1
}

// FlattenText concatenates the text of every Text descendant of n, in
// document order, used by the paragraph similarity cost (§4.5) and by the
// token alignment pass.
func (n *Node) FlattenText() string {
	var buf []byte
	var walk func(*Node)
	walk = func(m *Node) {
		if m.Kind == Text {
			buf = append(buf, m.Text...)
		}
		for _, c := range m.Children {
			walk(c)
		}
	}
	walk(n)
	return string(buf)
}

// AttrValue returns the value of the named attribute and whether it was
// present.
func (n *Node) AttrValue(name string) (string, bool) {
	for _, a := range n.Attrs {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}
