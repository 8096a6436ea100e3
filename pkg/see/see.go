// Package see implements static exchange evaluation: estimating the net
// material change of a capture sequence on a single square without playing
// it out move by move.
package see

import "github.com/solskog/corvid/pkg/board"

// Evaluate returns the static exchange evaluation of capture move m in
// position p, from the mover's point of view: a positive value means the
// exchange nets material for the side playing m, zero is even, negative is
// a loss. m is not played against p; Evaluate only reads the position.
//
// The algorithm is the standard iterative swap: repeatedly replace the
// piece on the target square with the least valuable attacker of the side
// to move, recomputing sliding (x-ray) attackers as pieces are peeled off
// the occupancy, until one side has no attacker left. The resulting score
// stack is then negamax-folded from the deepest capture back to the first.
func Evaluate(p *board.Position, m board.Move) board.Score {
	sq := m.To()
	from := m.From()
	mover := p.Turn()

	var captured board.PieceType
	occ := p.Occupied().Clear(from)
	if m.IsEnPassant() {
		capSq := board.NewSquare(sq.File(), from.Rank())
		captured = board.Pawn
		occ = occ.Clear(capSq)
	} else if m.IsCapture() {
		captured = p.Piece(sq).Type()
	}
	// Quiet moves and non-capturing promotions still run the exchange: the
	// mover's own piece can be recaptured even though it took nothing.

	attackerType := p.Piece(from).Type()
	if promo, ok := m.PromotionType(); ok {
		attackerType = promo
	}

	gain := make([]board.Score, 1, 16)
	gain[0] = seeValue(captured)

	side := mover.Opponent()
	occ = occ.Set(sq)

	for {
		attackers := board.AttackersWithOccupancy(p, sq, side, occ)
		if attackers == 0 {
			break
		}
		attackerSq, nextType := leastValuableAttacker(p, attackers)
		if !attackerSq.IsValid() {
			break
		}

		gain = append(gain, seeValue(attackerType)-gain[len(gain)-1])

		occ = occ.Clear(attackerSq)
		attackerType = nextType
		side = side.Opponent()

		// The king is never excluded from the swap loop here: whether its
		// "recapture" is actually safe depends on whether the opponent still
		// has an attacker bearing on the square, which the fold below
		// already accounts for via min(-prev, cur). seeValue gives the king
		// an effectively infinite value so the fold never prefers a line
		// that trades into an exposed king over stopping a step earlier.
	}

	for i := len(gain) - 2; i >= 0; i-- {
		if v := -gain[i+1]; v < gain[i] {
			gain[i] = v
		}
	}
	return gain[0]
}

// kingValue stands in for the king's material value in the exchange gain
// stack only: board.PieceValue(King) is zero, correctly, everywhere material
// is actually tallied, but zero would make SEE treat winning a piece and
// losing a king as equal. An effectively infinite value here means the fold
// below never picks a swap sequence that ends in a king "recapture" over
// stopping earlier, matching the real rule that a king can't legally
// recapture into an attacked square.
const kingValue board.Score = 20000

// seeValue is board.PieceValue, except for the king, which uses kingValue.
func seeValue(t board.PieceType) board.Score {
	if t == board.King {
		return kingValue
	}
	return board.PieceValue(t)
}

// leastValuableAttacker returns the square and piece type of the cheapest
// attacker in attackers, using p to look up each candidate's type. Returns
// NoSquare if attackers is empty.
func leastValuableAttacker(p *board.Position, attackers board.Bitboard) (board.Square, board.PieceType) {
	best := board.NoSquare
	bestType := board.NumPieceTypes
	b := attackers
	for b != 0 {
		sq, rest := b.PopLSB()
		b = rest
		t := p.Piece(sq).Type()
		if t < bestType {
			bestType = t
			best = sq
		}
	}
	return best, bestType
}
