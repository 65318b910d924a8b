// Package xmlsrc adapts a parsed XML document into the ordered-token
// contract the tree builder (internal/builder) consumes. It is a thin
// "parser collaborator" kept external to the diff core: entity/xinclude
// resolution, DTD/RNG validation and remote-reference caching all happen
// upstream of this package, which only walks an already-materialized
// tree.
//
// The adapter is built on github.com/beevik/etree, the XML library the
// rest of the retrieved corpus already reaches for when it needs to read
// or compare XML trees.
package xmlsrc

import (
	"fmt"

	"github.com/beevik/etree"
)

// TokenKind classifies one item in a container's ordered child list.
type TokenKind uint8

const (
	TokElement TokenKind = iota
	TokText
	TokComment
	TokPI
)

// Token is one ordered item of mixed content: an element, a run of
// character data, a comment, or a processing instruction. Builder.Build
// walks a document's token list to construct the node.Node tree.
type Token interface {
	Kind() TokenKind

	// Tag, Attrs and Tokens are valid when Kind() == TokElement.
	Tag() string
	Attrs() []Attr
	Tokens() []Token

	// Data is the character content for TokText, or the body for TokComment
	// and TokPI.
	Data() string

	// PITarget is valid when Kind() == TokPI.
	PITarget() string

	Line() int
	BaseURI() string

	// ExplicitPreserve reports whether this element carries its own
	// space="preserve" attribute (independent of inheritance, which the
	// builder computes).
	ExplicitPreserve() bool
}

// Attr mirrors node.Attr without importing the node package, so this
// adapter stays a leaf dependency.
type Attr struct {
	Name  string
	Value string
}

// Document is the top-level container: the root element plus any
// processing instructions or comments appearing before or after it.
type Document struct {
	baseURI string
	tokens  []Token
}

func (d *Document) Kind() TokenKind        { return TokElement }
func (d *Document) Tag() string            { return "" }
func (d *Document) Attrs() []Attr          { return nil }
func (d *Document) Tokens() []Token        { return d.tokens }
func (d *Document) Data() string           { return "" }
func (d *Document) PITarget() string       { return "" }
func (d *Document) Line() int              { return 0 }
func (d *Document) BaseURI() string        { return d.baseURI }
func (d *Document) ExplicitPreserve() bool { return false }

// Parse reads an XML document from bytes and returns its Document
// adapter, ready for builder.Build. baseURI is attached to the Document and
// to every element token so the core can report it back unchanged; text,
// comment and PI tokens report an empty base URI. Callers without a
// meaningful URI may pass the empty string.
func Parse(xmlBytes []byte, baseURI string) (*Document, error) {
	doc := etree.NewDocument()
	doc.ReadSettings.Permissive = true
	if err := doc.ReadFromBytes(xmlBytes); err != nil {
		return nil, fmt.Errorf("xmlsrc: parse: %w", err)
	}
	return FromEtree(doc, baseURI), nil
}

// FromEtree adapts an already-parsed *etree.Document.
func FromEtree(doc *etree.Document, baseURI string) *Document {
	d := &Document{baseURI: baseURI}
	for _, t := range doc.Child {
		if tok := wrapToken(t, baseURI); tok != nil {
			d.tokens = append(d.tokens, tok)
		}
	}
	return d
}

func wrapToken(t etree.Token, baseURI string) Token {
	switch v := t.(type) {
	case *etree.Element:
		return &element{e: v, baseURI: baseURI}
	case *etree.CharData:
		return &charData{d: v}
	case *etree.Comment:
		return &comment{c: v}
	case *etree.ProcInst:
		return &procInst{p: v}
	default:
		// Directive or other token kinds carry no diffable content.
		return nil
	}
}

type element struct {
	e       *etree.Element
	baseURI string
}

func (n *element) Kind() TokenKind { return TokElement }

func (n *element) Tag() string {
	if n.e.Space != "" {
		return n.e.Space + ":" + n.e.Tag
	}
	return n.e.Tag
}

func (n *element) Attrs() []Attr {
	attrs := make([]Attr, 0, len(n.e.Attr))
	for _, a := range n.e.Attr {
		name := a.Key
		if a.Space != "" {
			name = a.Space + ":" + a.Key
		}
		attrs = append(attrs, Attr{Name: name, Value: a.Value})
	}
	return attrs
}

func (n *element) Tokens() []Token {
	toks := make([]Token, 0, len(n.e.Child))
	for _, t := range n.e.Child {
		if tok := wrapToken(t, n.baseURI); tok != nil {
			toks = append(toks, tok)
		}
	}
	return toks
}

func (n *element) Data() string     { return "" }
func (n *element) PITarget() string { return "" }
func (n *element) Line() int        { return 0 }
func (n *element) BaseURI() string  { return n.baseURI }

func (n *element) ExplicitPreserve() bool {
	v, ok := n.e.Attr, false
	for _, a := range v {
		if a.Key == "space" && a.Value == "preserve" {
			ok = true
		}
	}
	return ok
}

type charData struct{ d *etree.CharData }

func (n *charData) Kind() TokenKind        { return TokText }
func (n *charData) Tag() string            { return "" }
func (n *charData) Attrs() []Attr          { return nil }
func (n *charData) Tokens() []Token        { return nil }
func (n *charData) Data() string           { return n.d.Data }
func (n *charData) PITarget() string       { return "" }
func (n *charData) Line() int              { return 0 }
func (n *charData) BaseURI() string        { return "" }
func (n *charData) ExplicitPreserve() bool { return false }

type comment struct{ c *etree.Comment }

func (n *comment) Kind() TokenKind        { return TokComment }
func (n *comment) Tag() string            { return "" }
func (n *comment) Attrs() []Attr          { return nil }
func (n *comment) Tokens() []Token        { return nil }
func (n *comment) Data() string           { return n.c.Data }
func (n *comment) PITarget() string       { return "" }
func (n *comment) Line() int              { return 0 }
func (n *comment) BaseURI() string        { return "" }
func (n *comment) ExplicitPreserve() bool { return false }

type procInst struct{ p *etree.ProcInst }

func (n *procInst) Kind() TokenKind        { return TokPI }
func (n *procInst) Tag() string            { return "" }
func (n *procInst) Attrs() []Attr          { return nil }
func (n *procInst) Tokens() []Token        { return nil }
func (n *procInst) Data() string           { return n.p.Inst }
func (n *procInst) PITarget() string       { return n.p.Target }
func (n *procInst) Line() int              { return 0 }
func (n *procInst) BaseURI() string        { return "" }
func (n *procInst) ExplicitPreserve() bool { return false }
