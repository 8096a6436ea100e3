package board

import "strings"

// MakeFlags selects which invariants Make and Unmake maintain. This is a
// correctness contract, not an optimisation: the flags passed to Unmake
// must match those passed to the paired Make exactly, or the position is
// left corrupted.
type MakeFlags uint8

const (
	FlagBitboards MakeFlags = 1 << iota
	FlagMaterial
	FlagHash
	FlagGameplayState
	FlagRepetitionHistory
	FlagTurn
)

const (
	// AllFlags updates every invariant; used for ordinary interior-node
	// search moves.
	AllFlags = FlagBitboards | FlagMaterial | FlagHash | FlagGameplayState | FlagRepetitionHistory | FlagTurn

	// AllExceptTurn updates everything except the turn field itself; the
	// hash still toggles its side-to-move constant. The search does not use
	// it: quiescence, like the main search, makes its moves with AllFlags.
	AllExceptTurn = AllFlags &^ FlagTurn

	// BitboardsOnly updates only the piece array, bitboards and king
	// cache. Used by the legality filter to test "is our king attacked
	// after this move" without disturbing hash, material or history.
	BitboardsOnly = FlagBitboards
)

// pieceValue is the material value of a piece type in centipawns, indexed
// by PieceType. Kings are never counted in material.
var pieceValue = [NumPieceTypes]Score{
	NoPieceType: 0,
	Pawn:        100,
	Knight:      320,
	Bishop:      330,
	Rook:        500,
	Queen:       900,
	King:        0,
}

// PieceValue returns the nominal material value of t in centipawns, the
// same table Position uses to track running material balance.
func PieceValue(t PieceType) Score { return pieceValue[t] }

// Info captures everything Make overwrote so Unmake can restore it without
// recomputing anything.
type Info struct {
	PriorHash      uint64
	PriorCastling  Castling
	PriorEnPassant Square
	PriorPlies     int
	Captured       Piece
	CapturedSquare Square
}

// Position is the mutable, authoritative board state. It is constructed
// once and thereafter mutated solely via balanced Make/Unmake pairs; every
// field must equal its prior value bit-for-bit after a balanced pair,
// including Hash and the repetition history.
type Position struct {
	piece     [NumSquares]Piece
	bitboards [NumColors][NumPieceTypes]Bitboard
	king      [NumColors]Square

	turn      Color
	castling  Castling
	enPassant Square

	hash     uint64
	material [NumColors]Score

	history  []uint64
	irrevPly int
}

// NewPosition builds a position from a fully populated 64-square piece
// array, deriving the bitboards, king cache, material and hash from
// scratch. Used once at construction (typically by FEN decoding); Make and
// Unmake maintain every field incrementally afterward.
func NewPosition(pieces [NumSquares]Piece, turn Color, castling Castling, enPassant Square) *Position {
	p := &Position{
		piece:     pieces,
		turn:      turn,
		castling:  castling,
		enPassant: enPassant,
		king:      [NumColors]Square{NoSquare, NoSquare},
	}
	for sq := Square(0); sq < NumSquares; sq++ {
		pc := pieces[sq]
		if !pc.IsValid() {
			continue
		}
		p.bitboards[pc.Color()][pc.Type()] = p.bitboards[pc.Color()][pc.Type()].Set(sq)
		p.material[pc.Color()] += pieceValue[pc.Type()]
		if pc.Type() == King {
			p.king[pc.Color()] = sq
		}
	}
	p.hash = computeHash(pieces, turn, castling, enPassant)
	return p
}

func (p *Position) Piece(sq Square) Piece { return p.piece[sq] }

// Bitboard returns the bitboard of pieces of type t and color c.
func (p *Position) Bitboard(c Color, t PieceType) Bitboard { return p.bitboards[c][t] }

// Occupied returns every occupied square, regardless of color.
func (p *Position) Occupied() Bitboard {
	return p.ColorOccupied(White) | p.ColorOccupied(Black)
}

// ColorOccupied returns every square occupied by a piece of color c.
func (p *Position) ColorOccupied(c Color) Bitboard {
	var b Bitboard
	for t := Pawn; t <= King; t++ {
		b |= p.bitboards[c][t]
	}
	return b
}

// Empty returns every unoccupied square.
func (p *Position) Empty() Bitboard {
	return ^p.Occupied()
}

func (p *Position) King(c Color) Square { return p.king[c] }

func (p *Position) Turn() Color { return p.turn }

func (p *Position) CastlingRights() Castling { return p.castling }

func (p *Position) EnPassantTarget() Square { return p.enPassant }

func (p *Position) Hash() uint64 { return p.hash }

func (p *Position) Material(c Color) Score { return p.material[c] }

func (p *Position) PliesSinceIrreversible() int { return p.irrevPly }

// SeedPliesSinceIrreversible sets the reversible-ply counter directly. Used
// when constructing a Position mid-game, e.g. from a FEN halfmove clock,
// rather than from the start of a game where the counter starts at zero.
func (p *Position) SeedPliesSinceIrreversible(n int) {
	p.irrevPly = n
}

// Clone returns a deep copy that shares no mutable state with p: Make and
// Unmake on one never observe the other.
func (p *Position) Clone() *Position {
	c := *p
	c.history = append([]uint64(nil), p.history...)
	return &c
}

// IsRepeated reports whether the current hash already occurred earlier in
// the history since the last irreversible move: a twofold repetition. The
// search uses twofold, rather than the rules' threefold, as its draw-
// detection threshold (matching common practice for steering the search
// away from repeating lines as early as possible); the rules-correct
// threefold check belongs to Board, which owns full-game history.
func (p *Position) IsRepeated() bool {
	n := len(p.history)
	limit := n - p.irrevPly
	if limit < 0 {
		limit = 0
	}
	for i := n - 1; i >= limit; i-- {
		if p.history[i] == p.hash {
			return true
		}
	}
	return false
}

func (p *Position) removePiece(sq Square, flags MakeFlags) Piece {
	pc := p.piece[sq]
	if flags&FlagBitboards != 0 {
		p.piece[sq] = NoPiece
		p.bitboards[pc.Color()][pc.Type()] = p.bitboards[pc.Color()][pc.Type()].Clear(sq)
		if pc.Type() == King {
			p.king[pc.Color()] = NoSquare
		}
	}
	if flags&FlagMaterial != 0 {
		p.material[pc.Color()] -= pieceValue[pc.Type()]
	}
	if flags&FlagHash != 0 {
		p.hash ^= HashPiece(pc.Color(), pc.Type(), sq)
	}
	return pc
}

func (p *Position) placePiece(sq Square, pc Piece, flags MakeFlags) {
	if flags&FlagBitboards != 0 {
		p.piece[sq] = pc
		p.bitboards[pc.Color()][pc.Type()] = p.bitboards[pc.Color()][pc.Type()].Set(sq)
		if pc.Type() == King {
			p.king[pc.Color()] = sq
		}
	}
	if flags&FlagMaterial != 0 {
		p.material[pc.Color()] += pieceValue[pc.Type()]
	}
	if flags&FlagHash != 0 {
		p.hash ^= HashPiece(pc.Color(), pc.Type(), sq)
	}
}

// revokeCastling clears right from the castling rights, if not already
// clear, toggling its hash contribution exactly once.
func (p *Position) revokeCastling(right Castling, flags MakeFlags) {
	if right == 0 || p.castling&right == 0 {
		return
	}
	if flags&FlagHash != 0 {
		p.hash ^= HashCastling(p.castling)
	}
	if flags&FlagGameplayState != 0 {
		p.castling &^= right
	}
	if flags&FlagHash != 0 {
		p.hash ^= HashCastling(p.castling)
	}
}

func castlingRightForRookCorner(sq Square) Castling {
	switch sq {
	case A1:
		return WhiteQueenSideCastle
	case H1:
		return WhiteKingSideCastle
	case A8:
		return BlackQueenSideCastle
	case H8:
		return BlackKingSideCastle
	default:
		return 0
	}
}

func kingAndQueenSideRights(c Color) Castling {
	if c == White {
		return WhiteKingSideCastle | WhiteQueenSideCastle
	}
	return BlackKingSideCastle | BlackQueenSideCastle
}

// castleRookSquares returns the rook's origin and destination for a castle
// move of the given flag and mover color.
func castleRookSquares(flag MoveFlag, c Color) (from, to Square) {
	if flag == FlagKingCastle {
		if c == White {
			return H1, F1
		}
		return H8, F8
	}
	if c == White {
		return A1, D1
	}
	return A8, D8
}

// doublePushTarget returns the en-passant target square for a pawn double
// push starting on from.
func doublePushTarget(from Square) Square {
	if from.Rank() == Rank2 {
		return NewSquare(from.File(), Rank3)
	}
	return NewSquare(from.File(), Rank6)
}

// Make plays m, returning the Info needed to Unmake it. See MakeFlags for
// which invariants are maintained.
func (p *Position) Make(m Move, flags MakeFlags) Info {
	from, to, flag := m.From(), m.To(), m.Flag()
	mover := p.piece[from]

	info := Info{
		PriorHash:      p.hash,
		PriorCastling:  p.castling,
		PriorEnPassant: p.enPassant,
		PriorPlies:     p.irrevPly,
		Captured:       NoPiece,
		CapturedSquare: NoSquare,
	}

	if flags&FlagRepetitionHistory != 0 {
		p.history = append(p.history, p.hash)
	}

	irreversible := m.IsCapture() || m.IsPromotion() || m.IsCastle() || mover.Type() == Pawn
	if flags&FlagGameplayState != 0 {
		if irreversible {
			p.irrevPly = 0
		} else {
			p.irrevPly++
		}
	}

	if flags&FlagHash != 0 {
		p.hash ^= HashEnPassant(p.enPassant)
	}
	if flags&FlagGameplayState != 0 {
		p.enPassant = NoSquare
	}

	if m.IsCapture() {
		capSq := to
		if m.IsEnPassant() {
			capSq = NewSquare(to.File(), from.Rank())
		}
		captured := p.removePiece(capSq, flags)
		info.Captured = captured
		info.CapturedSquare = capSq
		p.revokeCastling(castlingRightForRookCorner(capSq), flags)
	}

	switch {
	case m.IsCastle():
		p.removePiece(from, flags)
		p.placePiece(to, mover, flags)
		rookFrom, rookTo := castleRookSquares(flag, mover.Color())
		rook := p.removePiece(rookFrom, flags)
		p.placePiece(rookTo, rook, flags)
		p.revokeCastling(kingAndQueenSideRights(mover.Color()), flags)

	case m.IsPromotion():
		promo, _ := m.PromotionType()
		p.removePiece(from, flags)
		p.placePiece(to, NewPiece(mover.Color(), promo), flags)

	default:
		p.removePiece(from, flags)
		p.placePiece(to, mover, flags)

		if m.IsDoublePush() && flags&FlagGameplayState != 0 {
			p.enPassant = doublePushTarget(from)
		}
		p.revokeCastling(castlingRightForRookCorner(from), flags)
		if mover.Type() == King {
			p.revokeCastling(kingAndQueenSideRights(mover.Color()), flags)
		}
	}

	if flags&FlagHash != 0 {
		p.hash ^= HashEnPassant(p.enPassant)
		p.hash ^= HashTurn()
	}
	if flags&FlagTurn != 0 {
		p.turn = p.turn.Opponent()
	}

	return info
}

// Unmake reverses m, restoring the position to exactly what it was before
// the paired Make, using flags and info from that Make call.
func (p *Position) Unmake(m Move, flags MakeFlags, info Info) {
	from, to, flag := m.From(), m.To(), m.Flag()
	bbFlags := flags &^ FlagHash // hash is restored directly from info below

	switch {
	case m.IsCastle():
		king := p.piece[to]
		color := king.Color()
		p.removePiece(to, bbFlags)
		p.placePiece(from, king, bbFlags)
		rookFrom, rookTo := castleRookSquares(flag, color)
		rook := p.piece[rookTo]
		p.removePiece(rookTo, bbFlags)
		p.placePiece(rookFrom, rook, bbFlags)

	case m.IsPromotion():
		promoted := p.piece[to]
		p.removePiece(to, bbFlags)
		p.placePiece(from, NewPiece(promoted.Color(), Pawn), bbFlags)

	default:
		mover := p.removePiece(to, bbFlags)
		p.placePiece(from, mover, bbFlags)
	}

	if m.IsCapture() {
		p.placePiece(info.CapturedSquare, info.Captured, bbFlags)
	}

	if flags&FlagGameplayState != 0 {
		p.castling = info.PriorCastling
		p.enPassant = info.PriorEnPassant
		p.irrevPly = info.PriorPlies
	}
	if flags&FlagHash != 0 {
		p.hash = info.PriorHash
	}
	if flags&FlagRepetitionHistory != 0 {
		p.history = p.history[:len(p.history)-1]
	}
	if flags&FlagTurn != 0 {
		p.turn = p.turn.Opponent()
	}
}

// MakeNull plays a null move: no piece moves; only the en-passant target
// (always cleared) and the side to move change. Used by search code that
// needs to "pass" a turn without playing a real move.
func (p *Position) MakeNull() Info {
	info := Info{
		PriorHash:      p.hash,
		PriorCastling:  p.castling,
		PriorEnPassant: p.enPassant,
		PriorPlies:     p.irrevPly,
		Captured:       NoPiece,
		CapturedSquare: NoSquare,
	}
	p.hash ^= HashEnPassant(p.enPassant)
	p.enPassant = NoSquare
	p.hash ^= HashEnPassant(p.enPassant)
	p.hash ^= HashTurn()
	p.turn = p.turn.Opponent()
	return info
}

// UnmakeNull reverses MakeNull.
func (p *Position) UnmakeNull(info Info) {
	p.hash = info.PriorHash
	p.castling = info.PriorCastling
	p.enPassant = info.PriorEnPassant
	p.irrevPly = info.PriorPlies
	p.turn = p.turn.Opponent()
}

// IsAttacked reports whether sq is attacked by any piece of color by.
// Shared by the move-generation legality filter (is my king attacked after
// this move) and castling's path-clearance check.
func (p *Position) IsAttacked(sq Square, by Color) bool {
	return Attackers(p, sq, by) != EmptyBitboard
}

func (p *Position) String() string {
	var sb strings.Builder
	for r := Rank8; ; r-- {
		for f := FileA; f <= FileH; f++ {
			sb.WriteString(p.piece[NewSquare(f, r)].String())
		}
		if r == Rank1 {
			break
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
