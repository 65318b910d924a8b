package zhangshasha

import "github.com/vortex/xmldiff/internal/node"

// OpKind classifies one edit script operation.
type OpKind uint8

const (
	OpMatch OpKind = iota
	OpRename
	OpDelete
	OpInsert
)

func (k OpKind) String() string {
	switch k {
	case OpMatch:
		return "match"
	case OpRename:
		return "rename"
	case OpDelete:
		return "delete"
	case OpInsert:
		return "insert"
	default:
		return "unknown"
	}
}

// Op is one step of the edit script. Left is nil for OpInsert, Right is nil
// for OpDelete; both are set for OpMatch and OpRename.
type Op struct {
	Kind  OpKind
	Left  *node.Node
	Right *node.Node
}

// Result is the outcome of solving the tree edit distance between two
// trees: the minimum cost and an edit script that achieves it.
type Result struct {
	Distance float64
	Script   []Op
}

// branch classifies which recurrence arm produced a forest-distance cell,
// for traceback.
type branch uint8

const (
	branchDel branch = iota
	branchIns
	branchMatch
	branchJump
)

type fromEntry struct {
	branch branch
}

// pairTable is the retained forest-distance table for one keyroot pair,
// kept (rather than discarded after use) so the edit script can be
// recovered by walking back through it. l1, l2 are the lmd of the pair's
// two roots; from[x][y] corresponds to tree1 node (l1-1+x) vs tree2 node
// (l2-1+y).
type pairTable struct {
	l1, l2 int
	from   [][]fromEntry
}

// Solve computes the tree edit distance between left and right using
// costs, and returns the minimum-cost edit script.
func Solve(left, right *node.Node, costs Costs) Result {
	p1 := prepare(left)
	p2 := prepare(right)
	n, m := len(p1.nodes), len(p2.nodes)

	treedist := make([][]float64, n)
	for i := range treedist {
		treedist[i] = make([]float64, m)
	}
	owner := make(map[[2]int]*pairTable)

	for _, ki := range p1.keyroots {
		for _, kj := range p2.keyroots {
			computeKeyrootPair(p1, p2, ki, kj, costs, treedist, owner)
		}
	}

	finalOwner := owner[[2]int{n - 1, m - 1}]
	script := traceback(p1, p2, finalOwner, n-1, m-1, owner, costs)
	return Result{Distance: treedist[n-1][m-1], Script: script}
}

func computeKeyrootPair(p1, p2 *prepared, ki, kj int, costs Costs, treedist [][]float64, owner map[[2]int]*pairTable) {
	l1 := p1.lmd[ki]
	l2 := p2.lmd[kj]
	szX := ki - l1 + 2
	szY := kj - l2 + 2

	fd := make([][]float64, szX)
	from := make([][]fromEntry, szX)
	for x := range fd {
		fd[x] = make([]float64, szY)
		from[x] = make([]fromEntry, szY)
	}

	for x := 1; x < szX; x++ {
		ix := l1 - 1 + x
		fd[x][0] = fd[x-1][0] + costs.Del(p1.nodes[ix])
		from[x][0] = fromEntry{branch: branchDel}
	}
	for y := 1; y < szY; y++ {
		jy := l2 - 1 + y
		fd[0][y] = fd[0][y-1] + costs.Ins(p2.nodes[jy])
		from[0][y] = fromEntry{branch: branchIns}
	}

	table := &pairTable{l1: l1, l2: l2, from: from}

	for x := 1; x < szX; x++ {
		ix := l1 - 1 + x
		for y := 1; y < szY; y++ {
			jy := l2 - 1 + y

			delCost := fd[x-1][y] + costs.Del(p1.nodes[ix])
			insCost := fd[x][y-1] + costs.Ins(p2.nodes[jy])

			if p1.lmd[ix] == l1 && p2.lmd[jy] == l2 {
				updCost := fd[x-1][y-1] + costs.Upd(p1.nodes[ix], p2.nodes[jy])
				best, br := pickMin(delCost, insCost, updCost)
				fd[x][y] = best
				from[x][y] = fromEntry{branch: []branch{branchDel, branchIns, branchMatch}[br]}
				treedist[ix][jy] = fd[x][y]
				owner[[2]int{ix, jy}] = table
			} else {
				jumpCost := fd[p1.lmd[ix]-l1][p2.lmd[jy]-l2] + treedist[ix][jy]
				best, br := pickMin(delCost, insCost, jumpCost)
				fd[x][y] = best
				from[x][y] = fromEntry{branch: []branch{branchDel, branchIns, branchJump}[br]}
			}
		}
	}
}

// pickMin returns the smallest of the three costs and which one was chosen
// (0, 1 or 2), breaking ties delete < insert < update.
func pickMin(del, ins, upd float64) (float64, int) {
	best, idx := del, 0
	if ins < best {
		best, idx = ins, 1
	}
	if upd < best {
		best, idx = upd, 2
	}
	return best, idx
}

type workItem struct {
	table *pairTable
	x, y  int
}

func traceback(p1, p2 *prepared, table *pairTable, startI, startJ int, owner map[[2]int]*pairTable, costs Costs) []Op {
	var ops []Op
	stack := []workItem{{table, startI - table.l1 + 1, startJ - table.l2 + 1}}
	for len(stack) > 0 {
		w := stack[len(stack)-1]
		if w.x == 0 && w.y == 0 {
			stack = stack[:len(stack)-1]
			continue
		}
		fe := w.table.from[w.x][w.y]
		switch fe.branch {
		case branchDel:
			ix := w.table.l1 - 1 + w.x
			ops = append(ops, Op{Kind: OpDelete, Left: p1.nodes[ix]})
			stack[len(stack)-1] = workItem{w.table, w.x - 1, w.y}
		case branchIns:
			jy := w.table.l2 - 1 + w.y
			ops = append(ops, Op{Kind: OpInsert, Right: p2.nodes[jy]})
			stack[len(stack)-1] = workItem{w.table, w.x, w.y - 1}
		case branchMatch:
			ix := w.table.l1 - 1 + w.x
			jy := w.table.l2 - 1 + w.y
			a, b := p1.nodes[ix], p2.nodes[jy]
			kind := OpMatch
			if costs.Upd(a, b) > 0 {
				kind = OpRename
			}
			ops = append(ops, Op{Kind: kind, Left: a, Right: b})
			stack[len(stack)-1] = workItem{w.table, w.x - 1, w.y - 1}
		case branchJump:
			ix := w.table.l1 - 1 + w.x
			jy := w.table.l2 - 1 + w.y
			p := p1.lmd[ix] - w.table.l1
			q := p2.lmd[jy] - w.table.l2
			stack[len(stack)-1] = workItem{w.table, p, q}
			sub := owner[[2]int{ix, jy}]
			stack = append(stack, workItem{sub, ix - sub.l1 + 1, jy - sub.l2 + 1})
		}
	}
	return ops
}
