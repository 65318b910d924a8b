// Package builder implements component B: converting a parsed XML tree
// (as adapted by internal/xmlsrc) into the node.Node model, promoting
// leading text and tail text to explicit Text children, and applying the
// whitespace-preservation policy.
package builder

import (
	"strings"

	"github.com/vortex/xmldiff/internal/diag"
	"github.com/vortex/xmldiff/internal/node"
	"github.com/vortex/xmldiff/internal/xmlsrc"
)

// Config controls whitespace-preservation policy. The fixed tag set (a
// fixed set of tag names, e.g. artwork, sourcecode) is kept as ordinary Go data
// here; only the paragraph-folding policy (component C) is externalized,
// since that is the table that varies across vocabulary versions.
type Config struct {
	PreserveTags map[string]bool
}

// DefaultConfig returns the whitespace-preserving tag set for
// Internet-Draft / RFC XML vocabularies.
func DefaultConfig() Config {
	return Config{
		PreserveTags: map[string]bool{
			"artwork":    true,
			"sourcecode": true,
			"cref":       true,
		},
	}
}

// builder holds the mutable state threaded through one Build call.
type builder struct {
	arena   *node.Arena
	cfg     Config
	diag    *diag.Diagnostics
	nextIdx int
}

// Build converts doc into a Document node owned by arena, recording any
// malformed-node events on d. It never returns an error: a MalformedInput
// condition causes the offending node to be skipped, not the whole build
// to fail.
func Build(arena *node.Arena, doc *xmlsrc.Document, cfg Config, d *diag.Diagnostics) *node.Node {
	b := &builder{arena: arena, cfg: cfg, diag: d}
	root := arena.New(node.Document)
	root.BaseURI = doc.BaseURI()
	root.GlobalIndex = b.next()
	b.buildChildren(root, doc.Tokens(), false)
	return root
}

func (b *builder) next() int {
	i := b.nextIdx
	b.nextIdx++
	return i
}

// buildChildren walks an ordered token list (a container's mixed content)
// and appends corresponding node.Node children to parent. preserve is the
// whitespace-preservation policy inherited from parent's own position in
// the tree, unless the enclosing element is itself whitespace-preserving.
func (b *builder) buildChildren(parent *node.Node, tokens []xmlsrc.Token, preserve bool) {
	for _, tok := range tokens {
		switch tok.Kind() {
		case xmlsrc.TokElement:
			b.buildElement(parent, tok, preserve)
		case xmlsrc.TokText:
			b.buildText(parent, tok, preserve)
		case xmlsrc.TokComment:
			b.buildComment(parent, tok)
		case xmlsrc.TokPI:
			b.buildPI(parent, tok)
		default:
			b.diag.Addf(diag.MalformedInput, "unrecognized token kind %d under %s; skipped", tok.Kind(), parent.Tag)
		}
	}
}

func (b *builder) buildElement(parent *node.Node, tok xmlsrc.Token, inheritedPreserve bool) {
	tag := tok.Tag()
	if tag == "" {
		b.diag.Addf(diag.MalformedInput, "element with empty tag under %s; skipped", describe(parent))
		return
	}
	el := b.arena.New(node.Element)
	el.Tag = tag
	el.Line = tok.Line()
	el.BaseURI = tok.BaseURI()
	el.GlobalIndex = b.next()
	for _, a := range tok.Attrs() {
		el.Attrs = append(el.Attrs, node.Attr{Name: a.Name, Value: a.Value})
	}
	preserveHere := inheritedPreserve || tok.ExplicitPreserve() || b.cfg.PreserveTags[tag]
	el.PreserveSpace = preserveHere
	parent.AppendChild(el)
	b.buildChildren(el, tok.Tokens(), preserveHere)
}

func (b *builder) buildText(parent *node.Node, tok xmlsrc.Token, preserve bool) {
	text := tok.Data()
	if strings.TrimSpace(text) == "" && !preserve {
		return
	}
	tn := b.arena.New(node.Text)
	tn.Text = text
	tn.Line = tok.Line()
	tn.BaseURI = tok.BaseURI()
	tn.PreserveSpace = preserve
	tn.GlobalIndex = b.next()
	parent.AppendChild(tn)
}

func (b *builder) buildComment(parent *node.Node, tok xmlsrc.Token) {
	cn := b.arena.New(node.Comment)
	cn.Text = tok.Data()
	cn.Line = tok.Line()
	cn.BaseURI = tok.BaseURI()
	cn.PreserveSpace = true
	cn.GlobalIndex = b.next()
	parent.AppendChild(cn)
}

func (b *builder) buildPI(parent *node.Node, tok xmlsrc.Token) {
	pn := b.arena.New(node.PI)
	pn.PITarget = tok.PITarget()
	pn.Text = tok.Data()
	pn.Line = tok.Line()
	pn.BaseURI = tok.BaseURI()
	pn.GlobalIndex = b.next()
	parent.AppendChild(pn)
}

func describe(n *node.Node) string {
	if n == nil {
		return "<nil>"
	}
	if n.Tag != "" {
		return n.Tag
	}
	return n.Kind.String()
}
