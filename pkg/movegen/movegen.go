// Package movegen generates pseudo-legal and legal moves from a position.
package movegen

import "github.com/solskog/corvid/pkg/board"

// MaxMoves is a proven upper bound on the number of legal moves in any
// reachable chess position, used to size caller-supplied stack buffers so
// generation never heap-allocates.
const MaxMoves = 128

// Mode selects which moves Generate emits.
type Mode int

const (
	// All emits every pseudo-legal move: quiet, tactical and castling.
	All Mode = iota
	// TacticalOnly emits only captures, promotions and en passant captures
	// (including non-capturing promotions) — no quiet moves, no castles.
	TacticalOnly
)

var promoFlags = [...]board.MoveFlag{board.FlagPromoKnight, board.FlagPromoBishop, board.FlagPromoRook, board.FlagPromoQueen}
var promoCapFlags = [...]board.MoveFlag{board.FlagPromoCapKnight, board.FlagPromoCapBishop, board.FlagPromoCapRook, board.FlagPromoCapQueen}

// Generate writes every pseudo-legal move for the side to move into buf,
// which must have capacity MaxMoves, and returns the number written.
func Generate(p *board.Position, buf []board.Move, mode Mode) int {
	n := 0
	turn := p.Turn()
	own := p.ColorOccupied(turn)
	enemy := p.ColorOccupied(turn.Opponent())
	occ := own | enemy
	empty := ^occ

	n = genPawnMoves(p, turn, empty, enemy, buf, n, mode)
	n = genStepMoves(board.Knight, board.KnightAttacks, own, enemy, p, buf, n, mode)
	n = genStepMoves(board.King, kingAttacksAdapter, own, enemy, p, buf, n, mode)
	n = genSliderMoves(board.Bishop, board.BishopAttacks, own, enemy, occ, p, buf, n, mode)
	n = genSliderMoves(board.Rook, board.RookAttacks, own, enemy, occ, p, buf, n, mode)
	n = genSliderMoves(board.Queen, board.QueenAttacks, own, enemy, occ, p, buf, n, mode)

	if mode == All {
		n = genCastles(p, turn, occ, buf, n)
	}
	return n
}

// kingAttacksAdapter wraps KingAttacks as the single-square attack function
// genStepMoves takes, the same shape as KnightAttacks.
func kingAttacksAdapter(sq board.Square) board.Bitboard { return board.KingAttacks(sq) }

func genPawnMoves(p *board.Position, turn board.Color, empty, enemy board.Bitboard, buf []board.Move, n int, mode Mode) int {
	pawns := p.Bitboard(turn, board.Pawn)
	promoRank := board.Rank8
	doubleRank := board.Rank4
	forward := 8
	if turn == board.Black {
		promoRank = board.Rank1
		doubleRank = board.Rank5
		forward = -8
	}

	shift := func(b board.Bitboard) board.Bitboard {
		if forward > 0 {
			return b << uint(forward)
		}
		return b >> uint(-forward)
	}

	// Single pushes always run, even in TacticalOnly mode: a push onto the
	// promotion rank is a tactical move (IsPromotion) even without a
	// capture, so it must still be generated.
	singlePush := shift(pawns) & empty
	b := singlePush
	for b != 0 {
		to, rest := b.PopLSB()
		b = rest
		from := board.Square(int(to) - forward)
		if to.Rank() == promoRank {
			for _, fl := range promoFlags {
				buf[n] = board.NewMove(from, to, fl)
				n++
			}
		} else if mode == All {
			buf[n] = board.NewMove(from, to, board.FlagQuiet)
			n++
		}
	}

	if mode == All {
		doublePush := shift(singlePush) & empty & board.BitRank(doubleRank)
		b = doublePush
		for b != 0 {
			to, rest := b.PopLSB()
			b = rest
			from := board.Square(int(to) - 2*forward)
			buf[n] = board.NewMove(from, to, board.FlagDoublePush)
			n++
		}
	}

	src := pawns
	for src != 0 {
		from, rest := src.PopLSB()
		src = rest

		targets := board.PawnAttacks(turn, from) & enemy
		for targets != 0 {
			to, r := targets.PopLSB()
			targets = r
			if to.Rank() == promoRank {
				for _, fl := range promoCapFlags {
					buf[n] = board.NewMove(from, to, fl)
					n++
				}
			} else {
				buf[n] = board.NewMove(from, to, board.FlagCapture)
				n++
			}
		}
	}

	if ep := p.EnPassantTarget(); ep.IsValid() {
		attackers := board.PawnAttacks(turn.Opponent(), ep) & pawns
		for attackers != 0 {
			from, rest := attackers.PopLSB()
			attackers = rest
			buf[n] = board.NewMove(from, ep, board.FlagEnPassant)
			n++
		}
	}

	return n
}

func genStepMoves(t board.PieceType, attacksFn func(board.Square) board.Bitboard, own, enemy board.Bitboard, p *board.Position, buf []board.Move, n int, mode Mode) int {
	pieces := p.Bitboard(p.Turn(), t)
	for pieces != 0 {
		from, rest := pieces.PopLSB()
		pieces = rest

		targets := attacksFn(from) &^ own
		if mode == TacticalOnly {
			targets &= enemy
		}
		for targets != 0 {
			to, r := targets.PopLSB()
			targets = r
			flag := board.FlagQuiet
			if enemy.IsSet(to) {
				flag = board.FlagCapture
			}
			buf[n] = board.NewMove(from, to, flag)
			n++
		}
	}
	return n
}

func genSliderMoves(t board.PieceType, attacksFn func(board.Square, board.Bitboard) board.Bitboard, own, enemy, occ board.Bitboard, p *board.Position, buf []board.Move, n int, mode Mode) int {
	pieces := p.Bitboard(p.Turn(), t)
	for pieces != 0 {
		from, rest := pieces.PopLSB()
		pieces = rest

		targets := attacksFn(from, occ) &^ own
		if mode == TacticalOnly {
			targets &= enemy
		}
		for targets != 0 {
			to, r := targets.PopLSB()
			targets = r
			flag := board.FlagQuiet
			if enemy.IsSet(to) {
				flag = board.FlagCapture
			}
			buf[n] = board.NewMove(from, to, flag)
			n++
		}
	}
	return n
}

func genCastles(p *board.Position, turn board.Color, occ board.Bitboard, buf []board.Move, n int) int {
	rights := p.CastlingRights()
	if turn == board.White {
		if rights.IsAllowed(board.WhiteKingSideCastle) && occ&(board.Mask(board.F1)|board.Mask(board.G1)) == 0 {
			buf[n] = board.NewMove(board.E1, board.G1, board.FlagKingCastle)
			n++
		}
		if rights.IsAllowed(board.WhiteQueenSideCastle) && occ&(board.Mask(board.B1)|board.Mask(board.C1)|board.Mask(board.D1)) == 0 {
			buf[n] = board.NewMove(board.E1, board.C1, board.FlagQueenCastle)
			n++
		}
	} else {
		if rights.IsAllowed(board.BlackKingSideCastle) && occ&(board.Mask(board.F8)|board.Mask(board.G8)) == 0 {
			buf[n] = board.NewMove(board.E8, board.G8, board.FlagKingCastle)
			n++
		}
		if rights.IsAllowed(board.BlackQueenSideCastle) && occ&(board.Mask(board.B8)|board.Mask(board.C8)|board.Mask(board.D8)) == 0 {
			buf[n] = board.NewMove(board.E8, board.C8, board.FlagQueenCastle)
			n++
		}
	}
	return n
}

// GenerateLegal writes every legal move for the side to move into buf
// (capacity MaxMoves) and returns the count. It generates pseudo-legal
// moves, then filters each by making it with bitboards-only updates and
// testing whether the mover's king ends up attacked.
func GenerateLegal(p *board.Position, buf []board.Move, mode Mode) int {
	var pseudo [MaxMoves]board.Move
	count := Generate(p, pseudo[:], mode)

	n := 0
	for i := 0; i < count; i++ {
		if IsLegal(p, pseudo[i]) {
			buf[n] = pseudo[i]
			n++
		}
	}
	return n
}

// IsLegal reports whether m is legal in p: it does not leave the mover's
// own king attacked, and, for castling, the king does not pass through or
// start on an attacked square.
func IsLegal(p *board.Position, m board.Move) bool {
	mover := p.Turn()
	enemy := mover.Opponent()

	if m.IsCastle() {
		from := m.From()
		var passThrough board.Square
		if m.Flag() == board.FlagKingCastle {
			passThrough = from + 1
		} else {
			passThrough = from - 1
		}
		if p.IsAttacked(from, enemy) || p.IsAttacked(passThrough, enemy) {
			return false
		}
	}

	info := p.Make(m, board.BitboardsOnly)
	attacked := p.IsAttacked(p.King(mover), enemy)
	p.Unmake(m, board.BitboardsOnly, info)
	return !attacked
}
