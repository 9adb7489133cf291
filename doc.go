// Package chess implements a bitboard-based chess position representation
// and a fully legal move generator.
//
// The move generator enumerates only legal moves directly, without
// make/unmake filtering: a Position carries its set of pinned pieces and
// checkers (recomputed from the board by every Make, not updated
// incrementally), and the generator reads those sets to
// restrict pseudo-legal move masks instead of trying every pseudo-legal
// move and undoing it. Sliding piece attacks are answered by magic-index
// lookups into precomputed tables.
//
// FEN, SAN and UCI move string conversions live at the package boundary
// (fen.go, san.go, and ParseUCIMove in move.go) and only ever consume or produce Position and Move
// values; they hold no position state of their own. The package does not
// implement search, evaluation, or any chess variant beyond standard
// rules.
package chess
