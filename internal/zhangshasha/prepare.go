// Package zhangshasha implements the classical Zhang-Shasha ordered tree
// edit distance, producing both the minimum cost and the edit script
// that achieves it.
package zhangshasha

import (
	"sort"

	"github.com/vortex/xmldiff/internal/node"
)

// prepared holds one tree's post-order numbering and leftmost-descendant
// table, computed as a preparation step before the solver runs.
type prepared struct {
	nodes    []*node.Node
	lmd      []int
	keyroots []int
}

// prepare computes the post-order node list, lmd table and keyroot set for
// the tree rooted at root. Solver children are used (node.Node.
// SolverChildren), so Paragraph nodes are treated as leaves.
//
// Traversal uses an explicit stack rather than recursion, to avoid
// deep-recursion risk on pathological inputs.
func prepare(root *node.Node) *prepared {
	postIdx := make(map[*node.Node]int)
	var nodes []*node.Node
	var lmd []int

	type frame struct {
		n        *node.Node
		children []*node.Node
		next     int
	}
	stack := []*frame{{n: root, children: root.SolverChildren()}}
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		if top.next < len(top.children) {
			c := top.children[top.next]
			top.next++
			stack = append(stack, &frame{n: c, children: c.SolverChildren()})
			continue
		}
		idx := len(nodes)
		nodes = append(nodes, top.n)
		postIdx[top.n] = idx
		if len(top.children) == 0 {
			lmd = append(lmd, idx)
		} else {
			lmd = append(lmd, lmd[postIdx[top.children[0]]])
		}
		stack = stack[:len(stack)-1]
	}

	return &prepared{nodes: nodes, lmd: lmd, keyroots: computeKeyroots(lmd)}
}

// computeKeyroots returns, sorted ascending, the indices k for which no
// larger index shares lmd(k).
func computeKeyroots(lmd []int) []int {
	largestForLmd := make(map[int]int)
	for i, l := range lmd {
		largestForLmd[l] = i // iterating ascending i, last write wins = largest
	}
	kr := make([]int, 0, len(largestForLmd))
	for _, idx := range largestForLmd {
		kr = append(kr, idx)
	}
	sort.Ints(kr)
	return kr
}
