package eval

import "github.com/solskog/corvid/pkg/board"

// Pin describes a piece of side's own color standing between an enemy
// sliding attacker and side's king: Pinned cannot move off the Attacker-King
// line without exposing the king to Attacker.
type Pin struct {
	Attacker, Pinned, King board.Square
}

// FindPins returns every pin against side's king in pos. It works by
// looking, from the king's square, for the first same-color piece along
// each rook/bishop ray, then removing it from the occupancy and checking
// whether doing so reveals an enemy slider of the matching kind — the
// classic "x-ray" pin test.
func FindPins(pos *board.Position, side board.Color) []Pin {
	king := pos.King(side)
	occ := pos.Occupied()
	own := pos.ColorOccupied(side)

	var ret []Pin
	ret = appendPins(pos, side, king, occ, own, board.RookAttacks, board.Rook, ret)
	ret = appendPins(pos, side, king, occ, own, board.BishopAttacks, board.Bishop, ret)
	return ret
}

func appendPins(pos *board.Position, side board.Color, king board.Square, occ, own board.Bitboard, attacksFn func(board.Square, board.Bitboard) board.Bitboard, slider board.PieceType, ret []Pin) []Pin {
	ray := attacksFn(king, occ)
	sliders := pos.Bitboard(side.Opponent(), slider) | pos.Bitboard(side.Opponent(), board.Queen)

	candidates := ray & own
	for candidates != 0 {
		pinned, rest := candidates.PopLSB()
		candidates = rest

		revealed := attacksFn(king, occ.Clear(pinned)) &^ ray
		if attackers := revealed & sliders; attackers != 0 {
			ret = append(ret, Pin{Attacker: attackers.LSB(), Pinned: pinned, King: king})
		}
	}
	return ret
}
