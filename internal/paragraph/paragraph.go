// Package paragraph groups runs of inline content under synthetic
// Paragraph nodes so prose diffs operate at sentence/paragraph
// granularity instead of exploding into one edit per <em> and text
// fragment.
//
// The fold policy is data, not code: a container's inconsistent
// per-vocabulary-version handling is exactly the kind of thing that
// should live in a table an operator can edit, not a hard-coded switch.
// It ships as embedded YAML, parsed with gopkg.in/yaml.v3.
package paragraph

import (
	_ "embed"
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/vortex/xmldiff/internal/node"
)

// Behavior classifies how a container tag folds its children.
type Behavior int

const (
	NeverParagraph Behavior = iota
	AlwaysParagraph
	MixedBlock
)

//go:embed policy.yaml
var defaultPolicyYAML []byte

// Policy is the per-tag fold-behavior table plus the set of tags
// considered "block-level" when deciding where to flush a run of inline
// content inside a mixed-block container.
type Policy struct {
	behavior map[string]Behavior
	block    map[string]bool
}

// BehaviorFor returns tag's fold behavior, defaulting to NeverParagraph.
func (p *Policy) BehaviorFor(tag string) Behavior {
	if p == nil {
		return NeverParagraph
	}
	return p.behavior[tag]
}

// IsBlock reports whether tag should pass through unfolded inside a
// mixed-block container, rather than being absorbed into a Paragraph run.
func (p *Policy) IsBlock(tag string) bool {
	if p == nil {
		return false
	}
	return p.block[tag]
}

type policyDoc struct {
	AlwaysParagraph []string `yaml:"always_paragraph"`
	MixedBlock      []string `yaml:"mixed_block"`
	BlockTags       []string `yaml:"block_tags"`
}

// Load parses a Policy from YAML shaped like policy.yaml.
func Load(data []byte) (*Policy, error) {
	var doc policyDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("paragraph: parse policy: %w", err)
	}
	p := &Policy{behavior: make(map[string]Behavior), block: make(map[string]bool)}
	for _, t := range doc.AlwaysParagraph {
		p.behavior[t] = AlwaysParagraph
	}
	for _, t := range doc.MixedBlock {
		p.behavior[t] = MixedBlock
	}
	for _, t := range doc.BlockTags {
		p.block[t] = true
	}
	return p, nil
}

var (
	defaultOnce   sync.Once
	defaultPolicy *Policy
	defaultErr    error
)

// Default returns the built-in Internet-Draft / RFC fold policy.
func Default() *Policy {
	defaultOnce.Do(func() {
		defaultPolicy, defaultErr = Load(defaultPolicyYAML)
	})
	if defaultErr != nil {
		panic(defaultErr)
	}
	return defaultPolicy
}

// folder threads a monotonically increasing global index for the
// synthetic Paragraph nodes it creates, continuing the numbering the
// builder started so GlobalIndex stays a total order across the whole
// tree.
type folder struct {
	arena   *node.Arena
	policy  *Policy
	nextIdx int
}

// Fold applies policy to every container in the tree rooted at root,
// replacing eligible children with synthetic Paragraph wrappers. startIdx
// should be the next unused node.Node.GlobalIndex value (i.e. one past
// the builder's highest-assigned index).
func Fold(root *node.Node, arena *node.Arena, policy *Policy, startIdx int) {
	f := &folder{arena: arena, policy: policy, nextIdx: startIdx}
	f.walk(root)
}

func (f *folder) walk(n *node.Node) {
	switch f.policy.BehaviorFor(n.Tag) {
	case AlwaysParagraph:
		if n.Kind == node.Element && len(n.Children) > 0 && !alreadySingleParagraph(n) {
			f.wrapAll(n)
		}
	case MixedBlock:
		if n.Kind == node.Element {
			f.foldMixedBlock(n)
		}
	}
	for _, c := range n.Children {
		f.walk(c)
	}
}

func alreadySingleParagraph(n *node.Node) bool {
	return len(n.Children) == 1 && n.Children[0].Kind == node.Paragraph
}

func (f *folder) newParagraph(parent *node.Node) *node.Node {
	p := f.arena.New(node.Paragraph)
	p.GlobalIndex = f.nextIdx
	f.nextIdx++
	p.PreserveSpace = parent.PreserveSpace
	p.BaseURI = parent.BaseURI
	return p
}

func (f *folder) wrapAll(n *node.Node) {
	para := f.newParagraph(n)
	para.Parent = n
	para.Children = n.Children
	for _, c := range para.Children {
		c.Parent = para
	}
	n.Children = []*node.Node{para}
}

func (f *folder) foldMixedBlock(n *node.Node) {
	var result []*node.Node
	var run []*node.Node
	flush := func() {
		if len(run) == 0 {
			return
		}
		para := f.newParagraph(n)
		para.Parent = n
		para.Children = run
		for _, c := range run {
			c.Parent = para
		}
		result = append(result, para)
		run = nil
	}
	for _, c := range n.Children {
		if c.Kind == node.Element && f.policy.IsBlock(c.Tag) {
			flush()
			result = append(result, c)
		} else {
			run = append(run, c)
		}
	}
	flush()
	n.Children = result
}
