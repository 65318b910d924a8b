// Package align implements a Needleman-Wunsch-style token alignment with
// affine gap penalties, used both to score paragraph similarity and to
// produce the intra-text word diff spans the renderer attaches to a
// changed Text node.
package align

import "math"

// OpKind classifies one aligned token range.
type OpKind uint8

const (
	OpEqual OpKind = iota
	OpInsert
	OpRemove
)

// Op is one contiguous run of aligned tokens. For OpEqual, Left and Right
// hold equal (or mismatching-but-aligned) token runs of the same length;
// for OpInsert, Right holds the inserted tokens; for OpRemove, Left holds
// the removed tokens. The other side of an Insert or Remove op is empty
// unless mergeSingleSpaceGaps folded a lone-space op into it, in which
// case that op's tokens are appended on their own side as well.
type Op struct {
	Kind  OpKind
	Left  []string
	Right []string
}

const (
	gapOpen   = 10.0
	gapExtend = 3.0
	negInf    = math.MinInt32
)

// matchScore scores aligning token a (left) against token b (right).
func matchScore(a, b string) float64 {
	if a == b {
		switch a {
		case "\n":
			return 8
		case " ":
			return 2
		default:
			return 1
		}
	}
	if a == "\n" || b == "\n" {
		return -8
	}
	return -1
}

type state uint8

const (
	stM state = iota
	stIx
	stIy
	stNone
)

// Align runs affine-gap Needleman-Wunsch alignment between token arrays a
// (left) and b (right), returning a coalesced op list.
func Align(a, b []string) []Op {
	n, m := len(a), len(b)
	M := make([][]float64, n+1)
	Ix := make([][]float64, n+1)
	Iy := make([][]float64, n+1)
	ptrM := make([][]state, n+1)
	ptrIx := make([][]state, n+1)
	ptrIy := make([][]state, n+1)
	for i := range M {
		M[i] = make([]float64, m+1)
		Ix[i] = make([]float64, m+1)
		Iy[i] = make([]float64, m+1)
		ptrM[i] = make([]state, m+1)
		ptrIx[i] = make([]state, m+1)
		ptrIy[i] = make([]state, m+1)
	}

	M[0][0] = 0
	Ix[0][0] = negInf
	Iy[0][0] = negInf
	for i := 1; i <= n; i++ {
		M[i][0] = negInf
		Iy[i][0] = negInf
		if i == 1 {
			Ix[i][0] = -gapOpen
			ptrIx[i][0] = stNone
		} else {
			Ix[i][0] = Ix[i-1][0] - gapExtend
			ptrIx[i][0] = stIx
		}
	}
	for j := 1; j <= m; j++ {
		M[0][j] = negInf
		Ix[0][j] = negInf
		if j == 1 {
			Iy[0][j] = -gapOpen
			ptrIy[0][j] = stNone
		} else {
			Iy[0][j] = Iy[0][j-1] - gapExtend
			ptrIy[0][j] = stIy
		}
	}

	best3 := func(m1, ix1, iy1 float64) (float64, state) {
		best := m1
		st := stM
		if ix1 > best {
			best, st = ix1, stIx
		}
		if iy1 > best {
			best, st = iy1, stIy
		}
		return best, st
	}

	for i := 1; i <= n; i++ {
		for j := 1; j <= m; j++ {
			s := matchScore(a[i-1], b[j-1])
			val, from := best3(M[i-1][j-1], Ix[i-1][j-1], Iy[i-1][j-1])
			M[i][j] = val + s
			ptrM[i][j] = from

			openIx := M[i-1][j] - gapOpen
			extIx := Ix[i-1][j] - gapExtend
			if openIx >= extIx {
				Ix[i][j] = openIx
				ptrIx[i][j] = stM
			} else {
				Ix[i][j] = extIx
				ptrIx[i][j] = stIx
			}

			openIy := M[i][j-1] - gapOpen
			extIy := Iy[i][j-1] - gapExtend
			if openIy >= extIy {
				Iy[i][j] = openIy
				ptrIy[i][j] = stM
			} else {
				Iy[i][j] = extIy
				ptrIy[i][j] = stIy
			}
		}
	}

	_, cur := best3(M[n][m], Ix[n][m], Iy[n][m])
	i, j := n, m
	type move = rawMove
	var moves []move
	for i > 0 || j > 0 {
		switch cur {
		case stM:
			moves = append(moves, move{OpEqual, a[i-1], b[j-1]})
			cur = ptrM[i][j]
			i--
			j--
		case stIx:
			moves = append(moves, move{OpRemove, a[i-1], ""})
			cur = ptrIx[i][j]
			i--
		case stIy:
			moves = append(moves, move{OpInsert, "", b[j-1]})
			cur = ptrIy[i][j]
			j--
		default:
			// Degenerate empty input; nothing left to trace.
			i, j = 0, 0
		}
	}

	// moves were appended end-to-start; reverse into document order.
	for l, r := 0, len(moves)-1; l < r; l, r = l+1, r-1 {
		moves[l], moves[r] = moves[r], moves[l]
	}

	ops := coalesce(moves)
	return mergeSingleSpaceGaps(ops)
}

type rawMove = struct {
	kind OpKind
	a, b string
}

func coalesce(moves []rawMove) []Op {
	var ops []Op
	for _, mv := range moves {
		if n := len(ops); n > 0 && ops[n-1].Kind == mv.kind {
			appendMove(&ops[n-1], mv)
			continue
		}
		var op Op
		op.Kind = mv.kind
		appendMove(&op, mv)
		ops = append(ops, op)
	}
	return ops
}

func appendMove(op *Op, mv rawMove) {
	switch mv.kind {
	case OpEqual:
		op.Left = append(op.Left, mv.a)
		op.Right = append(op.Right, mv.b)
	case OpRemove:
		op.Left = append(op.Left, mv.a)
	case OpInsert:
		op.Right = append(op.Right, mv.b)
	}
}

// mergeSingleSpaceGaps folds a lone-space equal/insert/remove op into its
// neighboring edit rather than reporting " " as its own three-way diff
// noise point.
func mergeSingleSpaceGaps(ops []Op) []Op {
	var out []Op
	for _, op := range ops {
		if isLoneSpace(op) && len(out) > 0 && out[len(out)-1].Kind != OpEqual {
			prev := &out[len(out)-1]
			prev.Left = append(prev.Left, op.Left...)
			prev.Right = append(prev.Right, op.Right...)
			continue
		}
		out = append(out, op)
	}
	return out
}

func isLoneSpace(op Op) bool {
	if op.Kind == OpEqual {
		return len(op.Left) == 1 && op.Left[0] == " "
	}
	if op.Kind == OpRemove {
		return len(op.Left) == 1 && op.Left[0] == " "
	}
	if op.Kind == OpInsert {
		return len(op.Right) == 1 && op.Right[0] == " "
	}
	return false
}
