// Package reconcile applies a Zhang-Shasha edit script to the left tree,
// producing one merged tree that carries every surviving left node, every
// inserted right node (cloned, with Inserted = true), and match links
// between the two.
package reconcile

import (
	"github.com/vortex/xmldiff/internal/diag"
	"github.com/vortex/xmldiff/internal/node"
	"github.com/vortex/xmldiff/internal/zhangshasha"
)

// Apply runs all three reconciliation phases and the post-hoc I4
// child-order consistency pass, mutating the left tree in place. leftArena owns any
// clone nodes created to represent inserts.
func Apply(leftArena *node.Arena, left, right *node.Node, script []zhangshasha.Op, d *diag.Diagnostics) {
	pending := applyTrivial(script)

	insertTreeOf := computeLeafFlag(right, func(n *node.Node) bool { return n.Matched() == nil })
	deleteTreeOf := computeLeafFlag(left, func(n *node.Node) bool { return n.Matched() == nil })

	pending = runFixedPoint(leftArena, pending, insertTreeOf, deleteTreeOf)

	for _, b := range pending {
		if b.Matched() != nil {
			continue // placed along with an ancestor's fallback clone
		}
		clone := attachFallback(leftArena, b)
		d.Addf(diag.UnplacedInsert, "insert of <%s> could not be placed by fixed-point convergence; attached at nearest matched ancestor as %s",
			describe(b), describe(clone))
	}

	enforceOrderInvariant(leftArena, left, d)
}

// applyTrivial is phase 1: deletes and matches are applied immediately;
// inserts are collected for phases 2-3.
func applyTrivial(script []zhangshasha.Op) []*node.Node {
	var pending []*node.Node
	for _, op := range script {
		switch op.Kind {
		case zhangshasha.OpDelete:
			op.Left.Deleted = true
		case zhangshasha.OpMatch, zhangshasha.OpRename:
			op.Left.SetMatch(op.Right)
		case zhangshasha.OpInsert:
			pending = append(pending, op.Right)
		}
	}
	return pending
}

// computeLeafFlag is phase 2: it computes, for every node in the tree
// rooted at root, pred(n) && every child's computed value, post-order.
// Used for both insertTree (pred = unmatched, walked over the right tree)
// and deleteTree (pred = unmatched, walked over the left tree).
func computeLeafFlag(root *node.Node, pred func(*node.Node) bool) map[*node.Node]bool {
	m := make(map[*node.Node]bool)
	var walk func(*node.Node) bool
	walk = func(n *node.Node) bool {
		res := pred(n)
		for _, c := range n.Children {
			if !walk(c) {
				res = false
			}
		}
		m[n] = res
		return res
	}
	walk(root)
	return m
}

func runFixedPoint(leftArena *node.Arena, pending []*node.Node, insertTreeOf, deleteTreeOf map[*node.Node]bool) []*node.Node {
	for {
		var remaining []*node.Node
		progressed := false
		for _, b := range pending {
			if placeInsert(leftArena, b, insertTreeOf, deleteTreeOf) {
				progressed = true
			} else {
				remaining = append(remaining, b)
			}
		}
		pending = remaining
		if !progressed || len(pending) == 0 {
			return pending
		}
	}
}

// placeInsert attempts one round of fixed-point placement for a single
// pending right-tree node b. It returns true if b was placed this round.
func placeInsert(leftArena *node.Arena, b *node.Node, insertTreeOf, deleteTreeOf map[*node.Node]bool) bool {
	if b.Matched() != nil {
		// Already placed as part of an ancestor's deep clone.
		return true
	}
	if P := parentMatch(b); P != nil {
		return placeUnderMatchedParent(leftArena, b, P, deleteTreeOf)
	}
	return placeViaLCA(leftArena, b, insertTreeOf)
}

func parentMatch(b *node.Node) *node.Node {
	if b.Parent == nil {
		return nil
	}
	return b.Parent.Matched()
}

func placeUnderMatchedParent(leftArena *node.Arena, b, P *node.Node, deleteTreeOf map[*node.Node]bool) bool {
	if len(P.Children) == 0 {
		P.AppendChild(cloneSubtree(leftArena, b))
		return true
	}

	siblings := b.Parent.Children
	idx := b.Parent.IndexOfChild(b)

	for i := idx - 1; i >= 0; i-- {
		if m := siblings[i].Matched(); m != nil && m.Parent == P {
			insertAfter(P, m, cloneSubtree(leftArena, b))
			return true
		}
	}
	for i := idx + 1; i < len(siblings); i++ {
		if m := siblings[i].Matched(); m != nil && m.Parent == P {
			insertBefore(P, m, cloneSubtree(leftArena, b))
			return true
		}
	}

	allDeleted := true
	for _, c := range P.Children {
		if !deleteTreeOf[c] {
			allDeleted = false
			break
		}
	}
	if allDeleted {
		P.AppendChild(cloneSubtree(leftArena, b))
		return true
	}
	return false
}

// placeViaLCA handles phase 3 case 2: b's parent has no match, but b
// wraps content that is already matched. A new node standing in for b is
// synthesised as a child of the lowest common ancestor of b's matched
// children, which are then re-parented under it.
func placeViaLCA(leftArena *node.Arena, b *node.Node, insertTreeOf map[*node.Node]bool) bool {
	var matchedLeftChildren []*node.Node
	for _, c := range b.Children {
		if insertTreeOf[c] {
			continue // purely new; it becomes an ordinary case-1 insert once b's stand-in exists
		}
		m := c.Matched()
		if m == nil {
			return false // not ready yet; a later round may resolve this child first
		}
		matchedLeftChildren = append(matchedLeftChildren, m)
	}
	if len(matchedLeftChildren) == 0 {
		return false
	}

	lca := lowestCommonAncestor(matchedLeftChildren)
	for _, m := range matchedLeftChildren {
		if m == lca {
			// The stand-in cannot sit under a node it will adopt.
			lca = lca.Parent
			break
		}
	}
	if lca == nil {
		return false
	}

	stand := newNodeLike(leftArena, b)

	insertAt := len(lca.Children)
	for i, c := range lca.Children {
		if c == matchedLeftChildren[0] {
			insertAt = i
			break
		}
	}
	lca.InsertChildAt(insertAt, stand)

	inOrder := make(map[*node.Node]int, len(b.Children))
	for i, c := range b.Children {
		if m := c.Matched(); m != nil {
			inOrder[m] = i
		}
	}
	ordered := append([]*node.Node(nil), matchedLeftChildren...)
	sortByRightOrder(ordered, inOrder)

	for _, c := range ordered {
		removeChild(c.Parent, c)
		stand.AppendChild(c)
	}
	return true
}

func sortByRightOrder(nodes []*node.Node, order map[*node.Node]int) {
	for i := 1; i < len(nodes); i++ {
		for j := i; j > 0 && order[nodes[j-1]] > order[nodes[j]]; j-- {
			nodes[j-1], nodes[j] = nodes[j], nodes[j-1]
		}
	}
}

func removeChild(parent, child *node.Node) {
	idx := parent.IndexOfChild(child)
	if idx < 0 {
		return
	}
	parent.Children = append(parent.Children[:idx], parent.Children[idx+1:]...)
}

func insertAfter(parent, after, child *node.Node) {
	parent.InsertChildAt(parent.IndexOfChild(after)+1, child)
}

func insertBefore(parent, before, child *node.Node) {
	parent.InsertChildAt(parent.IndexOfChild(before), child)
}

// attachFallback is the termination fallback when the worklist stalls
// (reports an UnplacedInsert diagnostic): attach at the nearest matched
// ancestor.
func attachFallback(leftArena *node.Arena, b *node.Node) *node.Node {
	anc := b.Parent
	for anc != nil && anc.Matched() == nil {
		anc = anc.Parent
	}
	clone := cloneSubtree(leftArena, b)
	if anc == nil {
		return clone
	}
	anc.Matched().AppendChild(clone)
	return clone
}

// newNodeLike allocates a bare left-tree node copying b's scalar fields
// (no children), marked inserted and matched to b.
func newNodeLike(arena *node.Arena, b *node.Node) *node.Node {
	n := arena.New(b.Kind)
	n.Tag = b.Tag
	n.Attrs = append([]node.Attr(nil), b.Attrs...)
	n.Text = b.Text
	n.PITarget = b.PITarget
	n.Line = b.Line
	n.BaseURI = b.BaseURI
	n.PreserveSpace = b.PreserveSpace
	n.GlobalIndex = b.GlobalIndex
	n.Inserted = true
	n.SetMatch(b)
	return n
}

// cloneSubtree deep-copies b (a right-tree node) into leftArena,
// recursively marking every new node inserted and linking matches between
// each clone and its right-tree original.
func cloneSubtree(arena *node.Arena, b *node.Node) *node.Node {
	clone := newNodeLike(arena, b)
	for _, c := range b.Children {
		clone.AppendChild(cloneSubtree(arena, c))
	}
	return clone
}

func lowestCommonAncestor(nodes []*node.Node) *node.Node {
	if len(nodes) == 0 {
		return nil
	}
	cur := nodes[0]
	for _, n := range nodes[1:] {
		cur = lca2(cur, n)
		if cur == nil {
			return nil
		}
	}
	return cur
}

func lca2(a, b *node.Node) *node.Node {
	da, db := depth(a), depth(b)
	for da > db {
		a = a.Parent
		da--
	}
	for db > da {
		b = b.Parent
		db--
	}
	for a != b {
		if a == nil || b == nil {
			return nil
		}
		a = a.Parent
		b = b.Parent
	}
	return a
}

func depth(n *node.Node) int {
	d := 0
	for n.Parent != nil {
		n = n.Parent
		d++
	}
	return d
}

func describe(n *node.Node) string {
	if n.Tag != "" {
		return n.Tag
	}
	return n.Kind.String()
}
