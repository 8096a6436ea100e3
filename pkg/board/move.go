package board

import "fmt"

// MoveFlag is the 4-bit tag packed into a Move identifying its kind. The
// capture bit (0x4), the promotion bit (0x8) and the castle pattern
// (0x2, 0x3) are each individually diagnosable from the flag value alone.
type MoveFlag uint8

const (
	FlagQuiet          MoveFlag = 0x0
	FlagDoublePush     MoveFlag = 0x1
	FlagKingCastle     MoveFlag = 0x2
	FlagQueenCastle    MoveFlag = 0x3
	FlagCapture        MoveFlag = 0x4
	FlagEnPassant      MoveFlag = 0x5
	flagReserved6      MoveFlag = 0x6
	flagReserved7      MoveFlag = 0x7
	FlagPromoKnight    MoveFlag = 0x8
	FlagPromoBishop    MoveFlag = 0x9
	FlagPromoRook      MoveFlag = 0xA
	FlagPromoQueen     MoveFlag = 0xB
	FlagPromoCapKnight MoveFlag = 0xC
	FlagPromoCapBishop MoveFlag = 0xD
	FlagPromoCapRook   MoveFlag = 0xE
	FlagPromoCapQueen  MoveFlag = 0xF
)

// promotionPieceByFlag maps the low 2 bits of a promotion flag to the
// promoted piece type: 00=Knight, 01=Bishop, 10=Rook, 11=Queen.
var promotionPieceByFlag = [4]PieceType{Knight, Bishop, Rook, Queen}

// Move is a 16-bit packed (from, to, flag) triple: 6 bits from, 6 bits to,
// 4 bits flag. The invalid/zero move has From == To (A1A1), which never
// arises from a legal move.
type Move uint16

// NoMove is the invalid/zero move: From == To.
const NoMove Move = 0

func NewMove(from, to Square, flag MoveFlag) Move {
	return Move(uint16(from)<<10 | uint16(to)<<4 | uint16(flag))
}

func (m Move) From() Square {
	return Square(m >> 10 & 0x3F)
}

func (m Move) To() Square {
	return Square(m >> 4 & 0x3F)
}

func (m Move) Flag() MoveFlag {
	return MoveFlag(m & 0xF)
}

// IsValid reports whether the move is not the zero/invalid move.
func (m Move) IsValid() bool {
	return m.From() != m.To()
}

// IsCapture reports whether the move removes an enemy piece from the board,
// including en passant and capture-promotions.
func (m Move) IsCapture() bool {
	return m.Flag()&FlagCapture != 0
}

// IsPromotion reports whether the move promotes a pawn.
func (m Move) IsPromotion() bool {
	return m.Flag()&0x8 != 0
}

// IsEnPassant reports whether the move is an en passant capture.
func (m Move) IsEnPassant() bool {
	return m.Flag() == FlagEnPassant
}

// IsDoublePush reports whether the move is a two-square pawn push.
func (m Move) IsDoublePush() bool {
	return m.Flag() == FlagDoublePush
}

// IsCastle reports whether the move is a king- or queen-side castle.
func (m Move) IsCastle() bool {
	return m.Flag() == FlagKingCastle || m.Flag() == FlagQueenCastle
}

// IsQuiet reports whether the move is neither a capture nor a promotion
// (double pushes and castles are quiet in this sense: they cause no capture
// and no promotion, even though they reset the irreversible-ply counter).
func (m Move) IsQuiet() bool {
	return !m.IsCapture() && !m.IsPromotion()
}

// IsTactical reports whether the move is a capture or a promotion, i.e. the
// kind of move a quiescence search or a "tactical only" move generation
// pass considers.
func (m Move) IsTactical() bool {
	return m.IsCapture() || m.IsPromotion()
}

// PromotionType returns the promoted-to piece type and true, iff the move
// is a promotion.
func (m Move) PromotionType() (PieceType, bool) {
	if !m.IsPromotion() {
		return NoPieceType, false
	}
	return promotionPieceByFlag[m.Flag()&0x3], true
}

func flagForPromotion(t PieceType, capture bool) MoveFlag {
	var base MoveFlag
	switch t {
	case Knight:
		base = FlagPromoKnight
	case Bishop:
		base = FlagPromoBishop
	case Rook:
		base = FlagPromoRook
	case Queen:
		base = FlagPromoQueen
	}
	if capture {
		base |= 0x4
	}
	return base
}

// ParseMove parses a move in pure algebraic coordinate notation, such as
// "a2a4" or "a7a8q". The flag cannot be determined from the string alone
// (double-push/capture/en-passant/castle all depend on the position the
// move is played in), so the returned move always carries FlagQuiet or a
// promotion flag without the capture bit; callers resolve the true flag by
// matching From/To/promotion-type against a freshly generated move list.
func ParseMove(str string) (Move, error) {
	runes := []rune(str)
	if len(runes) < 4 || len(runes) > 5 {
		return NoMove, fmt.Errorf("invalid move: %q", str)
	}

	from, err := ParseSquare(runes[0], runes[1])
	if err != nil {
		return NoMove, fmt.Errorf("invalid from square in move %q: %w", str, err)
	}
	to, err := ParseSquare(runes[2], runes[3])
	if err != nil {
		return NoMove, fmt.Errorf("invalid to square in move %q: %w", str, err)
	}

	if len(runes) == 5 {
		promo, ok := ParsePieceType(runes[4])
		if !ok || promo == Pawn || promo == King {
			return NoMove, fmt.Errorf("invalid promotion piece in move %q", str)
		}
		return NewMove(from, to, flagForPromotion(promo, false)), nil
	}
	return NewMove(from, to, FlagQuiet), nil
}

// Matches reports whether this move has the same From/To/promotion-type as
// o, ignoring the remaining flag bits. Used to resolve a string-parsed move
// (which lacks capture/en-passant/castle context) against a generated,
// fully-flagged move.
func (m Move) Matches(o Move) bool {
	if m.From() != o.From() || m.To() != o.To() {
		return false
	}
	mp, mok := m.PromotionType()
	op, ook := o.PromotionType()
	return mok == ook && mp == op
}

func (m Move) String() string {
	if !m.IsValid() {
		return "0000"
	}
	if t, ok := m.PromotionType(); ok {
		return fmt.Sprintf("%v%v%v", m.From(), m.To(), t)
	}
	return fmt.Sprintf("%v%v", m.From(), m.To())
}
