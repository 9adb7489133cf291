package chess

import "strings"

// IsCapture reports whether playing m in p captures a piece (including
// en passant).
func (m Move) IsCapture(p Position) bool {
	if _, ok := p.PieceAt(m.Dest()); ok {
		return true
	}
	piece, _ := p.PieceAt(m.Source())
	return piece.Type == Pawn && p.EnPassant != NoSquare && m.Dest() == epCaptureDest(p)
}

// SAN renders m, played from p, in Standard Algebraic Notation.
func (m Move) SAN(p Position) string {
	piece, ok := p.PieceAt(m.Source())
	if !ok {
		return m.String()
	}

	if piece.Type == King && absSquareDelta(m.Source(), m.Dest()) == 2 {
		s := "O-O"
		if m.Dest().File() < m.Source().File() {
			s = "O-O-O"
		}
		return s + checkSuffix(p, m)
	}

	var sb strings.Builder
	if piece.Type != Pawn {
		sb.WriteByte("PNBRQK"[piece.Type])
		sb.WriteString(sanDisambiguation(p, m, piece.Type))
	}

	capture := m.IsCapture(p)
	if capture {
		if piece.Type == Pawn {
			sb.WriteByte('a' + byte(m.Source().File()))
		}
		sb.WriteByte('x')
	}
	sb.WriteString(m.Dest().String())

	if promo, ok := m.Promotion(); ok {
		sb.WriteByte('=')
		sb.WriteByte("PNBRQK"[promo])
	}

	sb.WriteString(checkSuffix(p, m))
	return sb.String()
}

func checkSuffix(p Position, m Move) string {
	next := p.Make(m)
	switch StatusOf(next) {
	case Checkmate:
		return "#"
	default:
		if next.InCheck() {
			return "+"
		}
		return ""
	}
}

func sanDisambiguation(p Position, m Move, pt PieceType) string {
	from := m.Source()
	to := m.Dest()
	us := p.SideToMove
	pieces := p.Pieces[us][pt]

	var candidates []Square
	all := LegalMoves(p)
	for i := 0; i < all.Len(); i++ {
		other := all.Get(i)
		if other.Dest() != to || other.Source() == from {
			continue
		}
		if pieces.IsSet(other.Source()) {
			candidates = append(candidates, other.Source())
		}
	}
	if len(candidates) == 0 {
		return ""
	}

	sameFile, sameRank := false, false
	for _, sq := range candidates {
		if sq.File() == from.File() {
			sameFile = true
		}
		if sq.Rank() == from.Rank() {
			sameRank = true
		}
	}
	if !sameFile {
		return from.File().String()
	}
	if !sameRank {
		return from.Rank().String()
	}
	return from.String()
}

// ParseSAN resolves a SAN move string against p's legal moves.
func ParseSAN(s string, p Position) (Move, error) {
	original := s
	s = strings.TrimSpace(s)

	if s == "O-O" || s == "0-0" {
		return findCastle(p, KingSide, original)
	}
	if s == "O-O-O" || s == "0-0-0" {
		return findCastle(p, QueenSide, original)
	}

	s = strings.TrimSuffix(s, "+")
	s = strings.TrimSuffix(s, "#")

	promo := NoPieceType
	if idx := strings.IndexByte(s, '='); idx >= 0 {
		if idx+1 >= len(s) {
			return NullMove, newError(ErrSAN, original)
		}
		pt, ok := pieceTypeFromChar(s[idx+1])
		if !ok {
			return NullMove, newError(ErrSAN, original)
		}
		promo = pt
		s = s[:idx]
	}

	isCapture := strings.Contains(s, "x")
	s = strings.ReplaceAll(s, "x", "")

	pt := Pawn
	if len(s) > 0 && s[0] >= 'A' && s[0] <= 'Z' {
		parsed, ok := pieceTypeFromChar(s[0])
		if !ok {
			return NullMove, newError(ErrSAN, original)
		}
		pt = parsed
		s = s[1:]
	}

	if len(s) < 2 {
		return NullMove, newError(ErrSAN, original)
	}
	dest, err := ParseSquare(s[len(s)-2:])
	if err != nil {
		return NullMove, newError(ErrSAN, original)
	}
	s = s[:len(s)-2]

	disambigFile, disambigRank := -1, -1
	for _, c := range s {
		switch {
		case c >= 'a' && c <= 'h':
			disambigFile = int(c - 'a')
		case c >= '1' && c <= '8':
			disambigRank = int(c - '1')
		}
	}

	var found Move
	count := 0
	moves := LegalMoves(p)
	for i := 0; i < moves.Len(); i++ {
		m := moves.Get(i)
		if m.Dest() != dest {
			continue
		}
		piece, _ := p.PieceAt(m.Source())
		if piece.Type != pt {
			continue
		}
		if disambigFile >= 0 && int(m.Source().File()) != disambigFile {
			continue
		}
		if disambigRank >= 0 && int(m.Source().Rank()) != disambigRank {
			continue
		}
		if isCapture != m.IsCapture(p) {
			continue
		}
		if mp, ok := m.Promotion(); ok {
			if promo == NoPieceType || mp != promo {
				continue
			}
		} else if promo != NoPieceType {
			continue
		}
		found = m
		count++
	}
	if count != 1 {
		return NullMove, newError(ErrSAN, original)
	}
	return found, nil
}

func findCastle(p Position, side CastleRights, original string) (Move, error) {
	path := KingSideCastlePath(p.SideToMove)
	if side == QueenSide {
		path = QueenSideCastlePath(p.SideToMove)
	}
	ksq := p.KingSquare[p.SideToMove]
	candidate := NewMove(ksq, path[1])
	moves := LegalMoves(p)
	if moves.Contains(candidate) {
		return candidate, nil
	}
	return NullMove, newError(ErrSAN, original)
}

// MovesToSAN renders a sequence of moves played in order from p.
func MovesToSAN(p Position, moves []Move) []string {
	out := make([]string, len(moves))
	cur := p
	for i, m := range moves {
		out[i] = m.SAN(cur)
		cur = cur.Make(m)
	}
	return out
}
