package zhangshasha

import (
	"math"

	"github.com/vortex/xmldiff/internal/align"
	"github.com/vortex/xmldiff/internal/node"
	"github.com/vortex/xmldiff/internal/tagequiv"
)

// forbidden is the update cost for two nodes of different Kind: large
// enough that delete+insert is always cheaper, effectively forbidding a
// cross-kind update.
const forbidden = 100000

// Costs supplies the three per-node cost functions the solver needs.
type Costs struct {
	Ins func(n *node.Node) float64
	Del func(n *node.Node) float64
	Upd func(a, b *node.Node) float64
}

// DefaultCosts builds the cost table the solver uses, resolving Element
// tag comparisons through equiv and Paragraph similarity through
// align.Similarity.
func DefaultCosts(equiv *tagequiv.Table) Costs {
	return Costs{
		Ins: insCost,
		Del: delCost,
		Upd: func(a, b *node.Node) float64 { return updCost(a, b, equiv) },
	}
}

func insCost(n *node.Node) float64 {
	switch n.Kind {
	case node.Element, node.Comment, node.PI:
		return 1
	default:
		return 1
	}
}

func delCost(n *node.Node) float64 {
	switch n.Kind {
	case node.Element, node.Comment, node.PI:
		return 10
	default:
		return 1
	}
}

func updCost(a, b *node.Node, equiv *tagequiv.Table) float64 {
	if a.Kind != b.Kind {
		return forbidden
	}
	switch a.Kind {
	case node.Document:
		return 0
	case node.Element:
		if a.Tag == b.Tag || equiv.Equivalent(a.Tag, b.Tag) {
			return 0
		}
		return 100
	case node.Text:
		if a.Text == b.Text {
			return 0
		}
		return 3
	case node.Comment:
		if a.Text == b.Text {
			return 0
		}
		return 3
	case node.PI:
		sameTarget := a.PITarget == b.PITarget
		sameBody := a.Text == b.Text
		switch {
		case sameTarget && sameBody:
			return 0
		case sameTarget:
			return 50
		default:
			return 100
		}
	case node.Paragraph:
		r := align.Similarity(align.Tokenize(a.FlattenText()), align.Tokenize(b.FlattenText()))
		return 10 - math.Floor(10*r)
	default:
		return forbidden
	}
}
