package board

import "fmt"

// PieceType is a chess piece kind with no color. 3 bits.
type PieceType uint8

const (
	NoPieceType PieceType = iota
	Pawn
	Knight
	Bishop
	Rook
	Queen
	King
)

// NumPieceTypes spans NoPieceType..King so PieceType can index arrays
// directly without an offset.
const NumPieceTypes PieceType = 7

func ParsePieceType(r rune) (PieceType, bool) {
	switch r {
	case 'p', 'P':
		return Pawn, true
	case 'n', 'N':
		return Knight, true
	case 'b', 'B':
		return Bishop, true
	case 'r', 'R':
		return Rook, true
	case 'q', 'Q':
		return Queen, true
	case 'k', 'K':
		return King, true
	default:
		return NoPieceType, false
	}
}

func (p PieceType) IsValid() bool {
	return Pawn <= p && p <= King
}

func (p PieceType) String() string {
	switch p {
	case Pawn:
		return "p"
	case Knight:
		return "n"
	case Bishop:
		return "b"
	case Rook:
		return "r"
	case Queen:
		return "q"
	case King:
		return "k"
	default:
		return " "
	}
}

// Piece packs a Color and a PieceType into a single byte: bit 3 is the
// color, bits 0-2 are the piece type. NoPiece is the sentinel for an empty
// square.
type Piece uint8

// NoPiece is the empty-square sentinel: color White, type NoPieceType. The
// type field alone already distinguishes it from any concrete piece.
const NoPiece Piece = 0

// NewPiece packs a color and piece type into a Piece.
func NewPiece(c Color, t PieceType) Piece {
	return Piece(c)<<3 | Piece(t)
}

func (p Piece) Color() Color {
	return Color(p >> 3 & 0x1)
}

func (p Piece) Type() PieceType {
	return PieceType(p & 0x7)
}

func (p Piece) IsValid() bool {
	return p != NoPiece && p.Type().IsValid()
}

func (p Piece) String() string {
	if p == NoPiece {
		return "."
	}
	if p.Color() == White {
		return fmt.Sprintf("%v", upper(p.Type()))
	}
	return p.Type().String()
}

func upper(t PieceType) string {
	switch t {
	case Pawn:
		return "P"
	case Knight:
		return "N"
	case Bishop:
		return "B"
	case Rook:
		return "R"
	case Queen:
		return "Q"
	case King:
		return "K"
	default:
		return "?"
	}
}
