package chess

import (
	"strconv"
	"strings"
)

// StartFEN is the FEN string for the standard chess starting position.
const StartFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// ParseFEN parses a FEN string into a Position.
func ParseFEN(fen string) (Position, error) {
	parts := strings.Fields(fen)
	if len(parts) < 4 {
		return Position{}, newError(ErrFEN, fen)
	}

	var p Position
	p.EnPassant = NoSquare
	p.FullMoveNumber = 1
	p.KingSquare[White] = NoSquare
	p.KingSquare[Black] = NoSquare

	if err := parsePiecePlacement(&p, parts[0]); err != nil {
		return Position{}, err
	}

	switch parts[1] {
	case "w":
		p.SideToMove = White
	case "b":
		p.SideToMove = Black
	default:
		return Position{}, newError(ErrFEN, fen)
	}

	if err := parseCastlingField(&p, parts[2]); err != nil {
		return Position{}, err
	}

	if parts[3] != "-" {
		fenSquare, err := ParseSquare(parts[3])
		if err != nil {
			return Position{}, newError(ErrFEN, fen)
		}
		// The FEN field names the square a capturing pawn would land on;
		// internally we store the doubled pawn's own resting square,
		// which belongs to the side that is NOT to move.
		epSquare := fenSquare.Forward(p.SideToMove.Other())
		if enPassantCapturable(p, epSquare, p.SideToMove) {
			p.EnPassant = epSquare
		}
	}

	if len(parts) > 4 {
		hmc, err := strconv.Atoi(parts[4])
		if err != nil {
			return Position{}, newError(ErrFEN, fen)
		}
		p.HalfMoveClock = hmc
	}
	if len(parts) > 5 {
		fmn, err := strconv.Atoi(parts[5])
		if err != nil {
			return Position{}, newError(ErrFEN, fen)
		}
		p.FullMoveNumber = fmn
	}

	if p.KingSquare[White] == NoSquare || p.KingSquare[Black] == NoSquare {
		return Position{}, newError(ErrFEN, fen)
	}

	p.Checkers = computeCheckers(p, p.SideToMove)
	p.Pinned = computePinned(p, p.SideToMove)

	return p, nil
}

func parsePiecePlacement(p *Position, placement string) error {
	ranks := strings.Split(placement, "/")
	if len(ranks) != 8 {
		return newError(ErrFEN, placement)
	}

	for i, rankStr := range ranks {
		rank := 7 - i
		file := 0
		for _, c := range rankStr {
			if file > 7 {
				return newError(ErrFEN, placement)
			}
			if c >= '1' && c <= '8' {
				file += int(c - '0')
				continue
			}
			piece, ok := pieceFromChar(byte(c))
			if !ok {
				return newError(ErrFEN, placement)
			}
			p.setPiece(piece, NewSquare(File(file), Rank(rank)))
			file++
		}
		if file != 8 {
			return newError(ErrFEN, placement)
		}
	}
	return nil
}

func parseCastlingField(p *Position, castling string) error {
	if castling == "-" {
		return nil
	}
	for _, c := range castling {
		switch c {
		case 'K':
			p.Castle[White] = p.Castle[White].Add(KingSide)
		case 'Q':
			p.Castle[White] = p.Castle[White].Add(QueenSide)
		case 'k':
			p.Castle[Black] = p.Castle[Black].Add(KingSide)
		case 'q':
			p.Castle[Black] = p.Castle[Black].Add(QueenSide)
		default:
			return newError(ErrFEN, castling)
		}
	}
	return nil
}

// ToFEN renders p as a FEN string.
func (p Position) ToFEN() string {
	var sb strings.Builder

	for r := 7; r >= 0; r-- {
		empty := 0
		for f := 0; f < 8; f++ {
			sq := NewSquare(File(f), Rank(r))
			piece, ok := p.PieceAt(sq)
			if !ok {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteString(strconv.Itoa(empty))
				empty = 0
			}
			sb.WriteString(piece.String())
		}
		if empty > 0 {
			sb.WriteString(strconv.Itoa(empty))
		}
		if r > 0 {
			sb.WriteByte('/')
		}
	}

	sb.WriteByte(' ')
	if p.SideToMove == White {
		sb.WriteByte('w')
	} else {
		sb.WriteByte('b')
	}

	sb.WriteByte(' ')
	castling := p.Castle[White].FENString(White) + p.Castle[Black].FENString(Black)
	if castling == "" {
		sb.WriteByte('-')
	} else {
		sb.WriteString(castling)
	}

	sb.WriteByte(' ')
	if p.EnPassant == NoSquare {
		sb.WriteByte('-')
	} else {
		sb.WriteString(epCaptureDest(p).String())
	}

	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(p.HalfMoveClock))
	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(p.FullMoveNumber))

	return sb.String()
}
