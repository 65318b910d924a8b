package reconcile

import (
	"github.com/vortex/xmldiff/internal/diag"
	"github.com/vortex/xmldiff/internal/node"
)

// enforceOrderInvariant walks every matched parent pair in the reconciled
// left tree and checks that the relative order of matched children is
// monotonic on both sides. Where matches cross, the minority side is
// demoted to delete+insert (reported as an InvariantViolation diagnostic)
// so the surviving matches stay order-consistent.
func enforceOrderInvariant(leftArena *node.Arena, leftRoot *node.Node, d *diag.Diagnostics) {
	var walk func(*node.Node)
	walk = func(p *node.Node) {
		if rp := p.Matched(); rp != nil {
			fixOrder(leftArena, p, rp, d)
		}
		for _, c := range p.Children {
			walk(c)
		}
	}
	walk(leftRoot)
}

type orderedMatch struct {
	leftChild *node.Node
	rightIdx  int
}

func fixOrder(leftArena *node.Arena, leftParent, rightParent *node.Node, d *diag.Diagnostics) {
	rightIndexOf := make(map[*node.Node]int, len(rightParent.Children))
	for i, c := range rightParent.Children {
		rightIndexOf[c] = i
	}

	var seq []orderedMatch
	for _, c := range leftParent.Children {
		m := c.Matched()
		if m == nil || m.Parent != rightParent {
			continue
		}
		if ri, ok := rightIndexOf[m]; ok {
			seq = append(seq, orderedMatch{c, ri})
		}
	}
	if len(seq) < 2 {
		return
	}

	keep := longestIncreasingByRightIndex(seq)
	if len(keep) == len(seq) {
		return
	}

	d.Addf(diag.InvariantViolation,
		"child order crossed under matched parent <%s>; demoting %d of %d matched pair(s) to delete+insert",
		describe(leftParent), len(seq)-len(keep), len(seq))

	for i, pm := range seq {
		if keep[i] {
			continue
		}
		right := pm.leftChild.Matched()
		pm.leftChild.Match = node.Ref{}
		right.Match = node.Ref{}
		pm.leftChild.Deleted = true
		leftParent.AppendChild(cloneSubtree(leftArena, right))
	}
}

// longestIncreasingByRightIndex returns, as a set of indices into seq,
// the longest run of matched pairs whose right-side order is
// non-decreasing relative to their already-fixed left-side order.
func longestIncreasingByRightIndex(seq []orderedMatch) map[int]bool {
	n := len(seq)
	length := make([]int, n)
	prev := make([]int, n)
	best, bestLen := 0, 0
	for i := range seq {
		length[i] = 1
		prev[i] = -1
		for j := 0; j < i; j++ {
			if seq[j].rightIdx < seq[i].rightIdx && length[j]+1 > length[i] {
				length[i] = length[j] + 1
				prev[i] = j
			}
		}
		if length[i] > bestLen {
			bestLen = length[i]
			best = i
		}
	}
	keep := make(map[int]bool, bestLen)
	for i := best; i != -1; i = prev[i] {
		keep[i] = true
	}
	return keep
}
