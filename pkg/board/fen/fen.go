// Package fen reads and writes positions in Forsyth-Edwards Notation.
package fen

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/solskog/corvid/pkg/board"
)

// Initial is the FEN of the standard starting position.
const Initial = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// Decode parses a six-field FEN record into a Position plus the game
// metadata FEN carries alongside it (active color, halfmove clock, full
// move number).
func Decode(fen string) (*board.Position, board.Color, int, int, error) {
	parts := strings.Split(strings.TrimSpace(fen), " ")
	if len(parts) != 6 {
		return nil, 0, 0, 0, fmt.Errorf("invalid number of sections in FEN: %q", fen)
	}

	pieces, err := decodePlacement(parts[0])
	if err != nil {
		return nil, 0, 0, 0, fmt.Errorf("invalid FEN %q: %w", fen, err)
	}

	turn, ok := parseColor(parts[1])
	if !ok {
		return nil, 0, 0, 0, fmt.Errorf("invalid active color in FEN: %q", fen)
	}

	castling, ok := parseCastling(parts[2])
	if !ok {
		return nil, 0, 0, 0, fmt.Errorf("invalid castling rights in FEN: %q", fen)
	}

	ep := board.NoSquare
	if parts[3] != "-" {
		sq, err := board.ParseSquareStr(parts[3])
		if err != nil {
			return nil, 0, 0, 0, fmt.Errorf("invalid en passant square in FEN: %q", fen)
		}
		ep = sq
	}

	halfmove, err := strconv.Atoi(parts[4])
	if err != nil || halfmove < 0 {
		return nil, 0, 0, 0, fmt.Errorf("invalid halfmove clock in FEN: %q", fen)
	}

	fullmove, err := strconv.Atoi(parts[5])
	if err != nil || fullmove < 1 {
		return nil, 0, 0, 0, fmt.Errorf("invalid fullmove number in FEN: %q", fen)
	}

	pos := board.NewPosition(pieces, turn, castling, ep)
	pos.SeedPliesSinceIrreversible(halfmove)
	return pos, turn, halfmove, fullmove, nil
}

// decodePlacement parses FEN's first field (piece placement, rank 8 down
// to rank 1, file a through h within each rank) into a 64-square array
// indexed by the A1=0 square numbering used throughout this module.
func decodePlacement(field string) ([board.NumSquares]board.Piece, error) {
	var pieces [board.NumSquares]board.Piece

	ranks := strings.Split(field, "/")
	if len(ranks) != int(board.NumRanks) {
		return pieces, fmt.Errorf("expected %v ranks, got %v", board.NumRanks, len(ranks))
	}

	for i, rankStr := range ranks {
		r := board.Rank8 - board.Rank(i)
		f := board.FileA
		for _, ch := range rankStr {
			switch {
			case unicode.IsDigit(ch):
				f += board.File(ch - '0')
			case unicode.IsLetter(ch):
				if f > board.FileH {
					return pieces, fmt.Errorf("rank %v overflows", r)
				}
				t, ok := board.ParsePieceType(ch)
				if !ok {
					return pieces, fmt.Errorf("invalid piece %q", ch)
				}
				color := board.Black
				if unicode.IsUpper(ch) {
					color = board.White
				}
				pieces[board.NewSquare(f, r)] = board.NewPiece(color, t)
				f++
			default:
				return pieces, fmt.Errorf("invalid character %q", ch)
			}
		}
		if f != board.NumFiles {
			return pieces, fmt.Errorf("rank %v has %v files, want %v", r, f, board.NumFiles)
		}
	}
	return pieces, nil
}

// Encode renders pos and its accompanying game metadata as a FEN string.
func Encode(pos *board.Position, turn board.Color, halfmove, fullmove int) string {
	var sb strings.Builder
	for r := board.Rank8; ; r-- {
		blanks := 0
		for f := board.FileA; f <= board.FileH; f++ {
			pc := pos.Piece(board.NewSquare(f, r))
			if !pc.IsValid() {
				blanks++
				continue
			}
			if blanks > 0 {
				sb.WriteString(strconv.Itoa(blanks))
				blanks = 0
			}
			sb.WriteString(pc.String())
		}
		if blanks > 0 {
			sb.WriteString(strconv.Itoa(blanks))
		}
		if r == board.Rank1 {
			break
		}
		sb.WriteByte('/')
	}

	ep := "-"
	if pos.EnPassantTarget().IsValid() {
		ep = pos.EnPassantTarget().String()
	}

	return fmt.Sprintf("%v %v %v %v %v %v", sb.String(), turn, pos.CastlingRights(), ep, halfmove, fullmove)
}

func parseColor(str string) (board.Color, bool) {
	switch str {
	case "w", "W":
		return board.White, true
	case "b", "B":
		return board.Black, true
	default:
		return 0, false
	}
}

func parseCastling(str string) (board.Castling, bool) {
	var c board.Castling
	if str == "-" {
		return c, true
	}
	for _, r := range str {
		switch r {
		case 'K':
			c |= board.WhiteKingSideCastle
		case 'Q':
			c |= board.WhiteQueenSideCastle
		case 'k':
			c |= board.BlackKingSideCastle
		case 'q':
			c |= board.BlackQueenSideCastle
		default:
			return 0, false
		}
	}
	return c, true
}
