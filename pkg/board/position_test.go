package board_test

import (
	"testing"

	"github.com/solskog/corvid/pkg/board"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startPosition() *board.Position {
	var pieces [board.NumSquares]board.Piece
	back := [8]board.PieceType{board.Rook, board.Knight, board.Bishop, board.Queen, board.King, board.Bishop, board.Knight, board.Rook}
	for f := board.FileA; f <= board.FileH; f++ {
		pieces[board.NewSquare(f, board.Rank1)] = board.NewPiece(board.White, back[f])
		pieces[board.NewSquare(f, board.Rank2)] = board.NewPiece(board.White, board.Pawn)
		pieces[board.NewSquare(f, board.Rank7)] = board.NewPiece(board.Black, board.Pawn)
		pieces[board.NewSquare(f, board.Rank8)] = board.NewPiece(board.Black, back[f])
	}
	return board.NewPosition(pieces, board.White, board.FullCastingRights, board.NoSquare)
}

// assertBalanced makes m with flags, checks the position actually changed,
// then unmakes it and asserts every observable field is restored bit for
// bit: the core correctness contract of section 4.2.
func assertBalanced(t *testing.T, p *board.Position, m board.Move, flags board.MakeFlags) {
	t.Helper()

	before := snapshot(p)
	info := p.Make(m, flags)
	assert.NotEqual(t, before, snapshot(p), "make should change the position")
	p.Unmake(m, flags, info)
	after := snapshot(p)

	assert.Equal(t, before, after)
}

type posSnapshot struct {
	pieces    [board.NumSquares]board.Piece
	hash      uint64
	castling  board.Castling
	enPassant board.Square
	plies     int
	wMaterial board.Score
	bMaterial board.Score
	turn      board.Color
	wKing     board.Square
	bKing     board.Square
}

func snapshot(p *board.Position) posSnapshot {
	var s posSnapshot
	for sq := board.Square(0); sq < board.NumSquares; sq++ {
		s.pieces[sq] = p.Piece(sq)
	}
	s.hash = p.Hash()
	s.castling = p.CastlingRights()
	s.enPassant = p.EnPassantTarget()
	s.plies = p.PliesSinceIrreversible()
	s.wMaterial = p.Material(board.White)
	s.bMaterial = p.Material(board.Black)
	s.turn = p.Turn()
	s.wKing = p.King(board.White)
	s.bKing = p.King(board.Black)
	return s
}

// castlablePosition is startPosition with f1/g1 cleared so O-O is
// structurally playable.
func castlablePosition() *board.Position {
	p := startPosition()
	var pieces [board.NumSquares]board.Piece
	for sq := board.Square(0); sq < board.NumSquares; sq++ {
		pieces[sq] = p.Piece(sq)
	}
	pieces[board.F1] = board.NoPiece
	pieces[board.G1] = board.NoPiece
	return board.NewPosition(pieces, board.White, board.FullCastingRights, board.NoSquare)
}

func TestMakeUnmakeBalance(t *testing.T) {
	tests := []struct {
		name  string
		pos   func() *board.Position
		m     board.Move
		flags board.MakeFlags
	}{
		{"quiet pawn push", startPosition, board.NewMove(board.E2, board.E3, board.FlagQuiet), board.AllFlags},
		{"double pawn push", startPosition, board.NewMove(board.E2, board.E4, board.FlagDoublePush), board.AllFlags},
		{"knight development", startPosition, board.NewMove(board.G1, board.F3, board.FlagQuiet), board.AllFlags},
		{"king-side castle", castlablePosition, board.NewMove(board.E1, board.G1, board.FlagKingCastle), board.AllFlags},
		{"bitboards-only leaf", startPosition, board.NewMove(board.B1, board.C3, board.FlagQuiet), board.BitboardsOnly},
		{"all-except-turn leaf", startPosition, board.NewMove(board.D2, board.D4, board.FlagDoublePush), board.AllExceptTurn},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertBalanced(t, tt.pos(), tt.m, tt.flags)
		})
	}
}

func TestMakeCaptureBalance(t *testing.T) {
	var pieces [board.NumSquares]board.Piece
	pieces[board.A1] = board.NewPiece(board.White, board.King)
	pieces[board.H8] = board.NewPiece(board.Black, board.King)
	pieces[board.D4] = board.NewPiece(board.White, board.Rook)
	pieces[board.D7] = board.NewPiece(board.Black, board.Pawn)
	p := board.NewPosition(pieces, board.White, 0, board.NoSquare)

	assertBalanced(t, p, board.NewMove(board.D4, board.D7, board.FlagCapture), board.AllFlags)
}

func TestMakeEnPassantBalance(t *testing.T) {
	var pieces [board.NumSquares]board.Piece
	pieces[board.A1] = board.NewPiece(board.White, board.King)
	pieces[board.H8] = board.NewPiece(board.Black, board.King)
	pieces[board.E5] = board.NewPiece(board.White, board.Pawn)
	pieces[board.D5] = board.NewPiece(board.Black, board.Pawn)
	p := board.NewPosition(pieces, board.White, 0, board.D6)

	before := p.Material(board.Black)
	info := p.Make(board.NewMove(board.E5, board.D6, board.FlagEnPassant), board.AllFlags)
	assert.Equal(t, board.D5, info.CapturedSquare)
	assert.Equal(t, board.NoPiece, p.Piece(board.D5))
	assert.Less(t, p.Material(board.Black), before)

	p.Unmake(board.NewMove(board.E5, board.D6, board.FlagEnPassant), board.AllFlags, info)
	assert.Equal(t, board.NewPiece(board.Black, board.Pawn), p.Piece(board.D5))
	assert.Equal(t, before, p.Material(board.Black))
}

func TestMakePromotionBalance(t *testing.T) {
	var pieces [board.NumSquares]board.Piece
	pieces[board.A1] = board.NewPiece(board.White, board.King)
	pieces[board.H8] = board.NewPiece(board.Black, board.King)
	pieces[board.D7] = board.NewPiece(board.White, board.Pawn)
	p := board.NewPosition(pieces, board.White, 0, board.NoSquare)

	assertBalanced(t, p, board.NewMove(board.D7, board.D8, board.FlagPromoQueen), board.AllFlags)

	info := p.Make(board.NewMove(board.D7, board.D8, board.FlagPromoQueen), board.AllFlags)
	assert.Equal(t, board.Queen, p.Piece(board.D8).Type())
	p.Unmake(board.NewMove(board.D7, board.D8, board.FlagPromoQueen), board.AllFlags, info)
	assert.Equal(t, board.Pawn, p.Piece(board.D7).Type())
}

func TestCastlingRightsRevokedByRookMove(t *testing.T) {
	p := startPosition()
	info := p.Make(board.NewMove(board.H1, board.H2, board.FlagQuiet), board.AllFlags)
	assert.False(t, p.CastlingRights().IsAllowed(board.WhiteKingSideCastle))
	assert.True(t, p.CastlingRights().IsAllowed(board.WhiteQueenSideCastle))
	p.Unmake(board.NewMove(board.H1, board.H2, board.FlagQuiet), board.AllFlags, info)
	assert.True(t, p.CastlingRights().IsAllowed(board.WhiteKingSideCastle))
}

func TestCastlingRightsRevokedByCapturedRook(t *testing.T) {
	var pieces [board.NumSquares]board.Piece
	pieces[board.E1] = board.NewPiece(board.White, board.King)
	pieces[board.E8] = board.NewPiece(board.Black, board.King)
	pieces[board.H8] = board.NewPiece(board.Black, board.Rook)
	pieces[board.H7] = board.NewPiece(board.White, board.Bishop)
	p := board.NewPosition(pieces, board.White, board.FullCastingRights, board.NoSquare)

	info := p.Make(board.NewMove(board.H7, board.H8, board.FlagCapture), board.AllFlags)
	assert.False(t, p.CastlingRights().IsAllowed(board.BlackKingSideCastle))
	p.Unmake(board.NewMove(board.H7, board.H8, board.FlagCapture), board.AllFlags, info)
	assert.True(t, p.CastlingRights().IsAllowed(board.BlackKingSideCastle))
}

func TestHashMatchesFromScratch(t *testing.T) {
	p := startPosition()
	m := board.NewMove(board.E2, board.E4, board.FlagDoublePush)
	p.Make(m, board.AllFlags)

	var pieces [board.NumSquares]board.Piece
	for sq := board.Square(0); sq < board.NumSquares; sq++ {
		pieces[sq] = p.Piece(sq)
	}
	recomputed := board.NewPosition(pieces, p.Turn(), p.CastlingRights(), p.EnPassantTarget())
	assert.Equal(t, recomputed.Hash(), p.Hash())
}

func TestIsRepeated(t *testing.T) {
	p := startPosition()
	require.False(t, p.IsRepeated())

	seq := []board.Move{
		board.NewMove(board.G1, board.F3, board.FlagQuiet),
		board.NewMove(board.G8, board.F6, board.FlagQuiet),
		board.NewMove(board.F3, board.G1, board.FlagQuiet),
		board.NewMove(board.F6, board.G8, board.FlagQuiet),
	}
	for _, m := range seq {
		p.Make(m, board.AllFlags)
	}
	assert.True(t, p.IsRepeated())
}

func TestHasInsufficientMaterial(t *testing.T) {
	var kk [board.NumSquares]board.Piece
	kk[board.A1] = board.NewPiece(board.White, board.King)
	kk[board.H8] = board.NewPiece(board.Black, board.King)
	assert.True(t, board.HasInsufficientMaterial(board.NewPosition(kk, board.White, 0, board.NoSquare)))

	var withRook [board.NumSquares]board.Piece
	withRook[board.A1] = board.NewPiece(board.White, board.King)
	withRook[board.H8] = board.NewPiece(board.Black, board.King)
	withRook[board.D4] = board.NewPiece(board.White, board.Rook)
	assert.False(t, board.HasInsufficientMaterial(board.NewPosition(withRook, board.White, 0, board.NoSquare)))
}
