package eval

import "github.com/solskog/corvid/pkg/board"

// attackerWeight values how dangerous it is for a piece of type t to be
// bearing on a square near the enemy king: a queen pointed at the king zone
// counts for much more than a knight doing the same.
var attackerWeight = [board.NumPieceTypes]board.Score{
	board.Pawn:   1,
	board.Knight: 2,
	board.Bishop: 2,
	board.Rook:   3,
	board.Queen:  5,
}

// RingAttackers sums attackerWeight over every piece of color by that
// attacks at least one square of ring. A piece attacking several ring
// squares is only counted once, matching the usual king-safety formulation
// (count attackers, not attacked squares).
func RingAttackers(pos *board.Position, by board.Color, ring board.Bitboard) board.Score {
	var total board.Score
	for t := board.Pawn; t < board.King; t++ {
		pieces := pos.Bitboard(by, t)
		for pieces != 0 {
			from, rest := pieces.PopLSB()
			pieces = rest
			if attacks(pos, by, t, from)&ring != 0 {
				total += attackerWeight[t]
			}
		}
	}
	return total
}

func attacks(pos *board.Position, by board.Color, t board.PieceType, from board.Square) board.Bitboard {
	occ := pos.Occupied()
	switch t {
	case board.Pawn:
		return board.PawnAttacks(by, from)
	case board.Knight:
		return board.KnightAttacks(from)
	case board.Bishop:
		return board.BishopAttacks(from, occ)
	case board.Rook:
		return board.RookAttacks(from, occ)
	case board.Queen:
		return board.QueenAttacks(from, occ)
	default:
		return 0
	}
}
