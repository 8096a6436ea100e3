package eval

import "github.com/solskog/corvid/pkg/board"

// mgTable and egTable are computed once at init rather than typed
// in as 64-entry literals: the centralization/advancement shape a
// piece-square table rewards is simple enough to derive directly from
// file/rank, and doing so removes any chance of a transcription error in a
// table nobody will proofread by eye.
var (
	mgTable [board.NumPieceTypes][64]board.Score
	egTable [board.NumPieceTypes][64]board.Score
)

func init() {
	for sq := board.Square(0); sq < board.NumSquares; sq++ {
		f, r := int(sq.File()), int(sq.Rank())
		center := centrality(f, r)

		mgTable[board.Knight][sq] = board.Score(4 * center)
		egTable[board.Knight][sq] = board.Score(3 * center)

		mgTable[board.Bishop][sq] = board.Score(3 * center)
		egTable[board.Bishop][sq] = board.Score(3 * center)

		mgTable[board.Queen][sq] = board.Score(center)
		egTable[board.Queen][sq] = board.Score(2 * center)

		mgTable[board.Rook][sq] = rookBonus(r)
		egTable[board.Rook][sq] = rookBonus(r)

		mgTable[board.King][sq] = board.Score(-6 * center)
		egTable[board.King][sq] = board.Score(4 * center)

		mgTable[board.Pawn][sq] = pawnAdvance(r, 2)
		egTable[board.Pawn][sq] = pawnAdvance(r, 4)
	}
}

// centrality scores a square by closeness to the board's center, 0..3.
func centrality(f, r int) int {
	df, dr := dist(f, 3), dist(r, 3)
	if dist(f, 4) < df {
		df = dist(f, 4)
	}
	if dist(r, 4) < dr {
		dr = dist(r, 4)
	}
	return 3 - max(df, dr)
}

func dist(a, b int) int {
	if a < b {
		return b - a
	}
	return a - b
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// rookBonus rewards a rook on the 7th rank, the classic "rook on the
// seventh" outpost. Tables are stored White-oriented and mirrored for
// Black at lookup time, so this only ever needs White's 7th rank (index 6).
func rookBonus(r int) board.Score {
	if r == 6 {
		return 20
	}
	return 0
}

// pawnAdvance rewards a pawn for distance travelled from its own second
// rank, scaled by weight (higher in the endgame, where passed/advanced
// pawns matter more).
func pawnAdvance(r int, weight board.Score) board.Score {
	if r <= 1 || r >= 7 {
		return 0 // never a pawn: rank 1/8 is the back rank / promotion square
	}
	return board.Score(r-1) * weight
}

// nonPawnMaterial sums the nominal value of every non-pawn, non-king piece
// on the board, used to derive the opening/endgame taper weight.
func nonPawnMaterial(pos *board.Position) board.Score {
	var total board.Score
	for _, c := range [...]board.Color{board.White, board.Black} {
		for t := board.Knight; t < board.King; t++ {
			total += board.Score(pos.Bitboard(c, t).PopCount()) * board.PieceValue(t)
		}
	}
	return total
}

// openingPhaseMaterial is the non-pawn material total of both sides at the
// start of the game: 2*320+2*330+2*500+900 = 3200 per side, written out as
// 4 knights + 4 bishops + 4 rooks + 2 queens = 6400.
const openingPhaseMaterial = 4*320 + 4*330 + 4*500 + 2*900

// PieceSquareTables scores each piece's placement, interpolated between the
// opening and endgame tables by how much non-pawn material remains on the
// board: pieces are worth more to centralize once queens and minors come
// off.
type PieceSquareTables struct{}

func (PieceSquareTables) Evaluate(pos *board.Position) board.Score {
	turn := pos.Turn()
	return pstFor(pos, turn) - pstFor(pos, turn.Opponent())
}

func pstFor(pos *board.Position, side board.Color) board.Score {
	phase := nonPawnMaterial(pos)
	if phase > openingPhaseMaterial {
		phase = openingPhaseMaterial
	}

	var mg, eg board.Score
	for t := board.Pawn; t <= board.King; t++ {
		pieces := pos.Bitboard(side, t)
		for pieces != 0 {
			sq, rest := pieces.PopLSB()
			pieces = rest
			idx := sq
			if side == board.Black {
				idx = board.NewSquare(sq.File(), board.Rank8-sq.Rank())
			}
			mg += mgTable[t][idx]
			eg += egTable[t][idx]
		}
	}

	return (mg*board.Score(phase) + eg*board.Score(openingPhaseMaterial-phase)) / openingPhaseMaterial
}

// pstValue looks up a single piece-square value at sq for a piece of type t
// and color side, tapered by phase (a non-pawn material total, already
// clamped to openingPhaseMaterial).
func pstValue(t board.PieceType, sq board.Square, side board.Color, phase board.Score) board.Score {
	idx := sq
	if side == board.Black {
		idx = board.NewSquare(sq.File(), board.Rank8-sq.Rank())
	}
	mg, eg := mgTable[t][idx], egTable[t][idx]
	return (mg*phase + eg*(openingPhaseMaterial-phase)) / openingPhaseMaterial
}

// PSTDelta returns the change in piece-square value m causes for the piece
// moving from m.From() to m.To(), from the mover's perspective: destination
// score minus origin score, at the position's current game phase. Used by
// quiet-move ordering as a cheap stand-in for "does this move improve
// placement", without playing the move.
func PSTDelta(pos *board.Position, m board.Move) board.Score {
	mover := pos.Piece(m.From())
	phase := nonPawnMaterial(pos)
	if phase > openingPhaseMaterial {
		phase = openingPhaseMaterial
	}
	t := mover.Type()
	return pstValue(t, m.To(), mover.Color(), phase) - pstValue(t, m.From(), mover.Color(), phase)
}

// bishopPairBonus rewards holding both bishops, which together cover every
// square color a single bishop cannot.
const bishopPairBonus board.Score = 30

// BishopPair awards bishopPairBonus to a side holding two or more bishops.
type BishopPair struct{}

func (BishopPair) Evaluate(pos *board.Position) board.Score {
	turn := pos.Turn()
	var score board.Score
	if pos.Bitboard(turn, board.Bishop).PopCount() >= 2 {
		score += bishopPairBonus
	}
	if pos.Bitboard(turn.Opponent(), board.Bishop).PopCount() >= 2 {
		score -= bishopPairBonus
	}
	return score
}
