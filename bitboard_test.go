package chess

import "testing"

// TestPopCountMatchesIteration is spec testable property #8.
func TestPopCountMatchesIteration(t *testing.T) {
	bb := Bitboard(0x8100000000000081) // corners plus a couple of interior bits
	bb |= SquareBB(D4) | SquareBB(E5)

	want := bb.PopCount()

	got := 0
	walker := bb
	for walker != 0 {
		walker.PopLSB()
		got++
	}
	if got != int(want) {
		t.Errorf("iteration count = %d, PopCount = %d", got, want)
	}
	if walker != 0 {
		t.Error("expected iteration to empty the bitboard")
	}
}

// TestBetweenCollinearity is spec testable property #9.
func TestBetweenCollinearity(t *testing.T) {
	collinear := []struct{ a, b Square }{
		{A1, H8}, // diagonal
		{A1, A8}, // file
		{A1, H1}, // rank
		{C3, G7}, // diagonal, not adjacent
	}
	for _, tc := range collinear {
		combined := SquareBB(tc.a) | SquareBB(tc.b)
		if Between(tc.a, tc.b)&combined != 0 {
			t.Errorf("Between(%v, %v) should never include its own endpoints", tc.a, tc.b)
		}
	}

	notCollinear := []struct{ a, b Square }{
		{A1, B3},
		{D4, F5},
		{H1, A2},
	}
	for _, tc := range notCollinear {
		if Between(tc.a, tc.b) != 0 {
			t.Errorf("Between(%v, %v) should be empty for non-collinear squares", tc.a, tc.b)
		}
	}
}

// TestMagicMaskInvariance is spec testable property #10: sliding
// attacks from a square depend only on the occupancy bits within that
// square's relevant mask, never on bits outside it.
func TestMagicMaskInvariance(t *testing.T) {
	for sq := Square(0); sq < NumSquares; sq++ {
		relevant := bishopMagics[sq].Mask
		occupied := UniverseBB // every square set, including irrelevant ones
		masked := occupied & relevant

		full := getBishopAttacks(sq, occupied)
		reduced := getBishopAttacks(sq, masked)
		if full != reduced {
			t.Fatalf("bishop attacks from %v differ with full vs masked occupancy", sq)
		}
	}

	for sq := Square(0); sq < NumSquares; sq++ {
		relevant := rookMagics[sq].Mask
		occupied := UniverseBB
		masked := occupied & relevant

		full := getRookAttacks(sq, occupied)
		reduced := getRookAttacks(sq, masked)
		if full != reduced {
			t.Fatalf("rook attacks from %v differ with full vs masked occupancy", sq)
		}
	}
}

func TestPopLSBOrder(t *testing.T) {
	bb := SquareBB(H8) | SquareBB(A1) | SquareBB(D4)
	var order []Square
	for bb != 0 {
		order = append(order, bb.PopLSB())
	}
	want := []Square{A1, D4, H8}
	if len(order) != len(want) {
		t.Fatalf("got %d squares, want %d", len(order), len(want))
	}
	for i := range want {
		if order[i] != want[i] {
			t.Errorf("order[%d] = %v, want %v", i, order[i], want[i])
		}
	}
}
