// Package book implements a persistent opening-book store, keyed by
// Polyglot hash, backed by BadgerDB.
package book

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"sort"

	"github.com/cespare/xxhash/v2"
	"github.com/dgraph-io/badger/v4"

	chess "github.com/hailam/chessgen"
	"github.com/hailam/chessgen/internal/storage"
)

// BookEntry is a single candidate move for a position, with the weight
// Polyglot assigns it (higher plays more often).
type BookEntry struct {
	Move   chess.Move
	Weight uint16
}

// Store is a position-keyed store of book entries. Positions are
// addressed by Position.PolyglotHash(); entries are stored raw, the way
// they were decoded off disk, and only verified against a position's
// actual legal moves at Probe time (the same move encoding can land on
// a different board depending on which game reached that hash).
type Store struct {
	db *badger.DB
}

// Open opens (creating if necessary) a book store rooted at dir.
func Open(dir string) (*Store, error) {
	opts := badger.DefaultOptions(dir)
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("book: open store at %q: %w", dir, err)
	}
	return &Store{db: db}, nil
}

// OpenDefault opens the book store at the platform's default data
// directory.
func OpenDefault() (*Store, error) {
	dir, err := storage.GetDatabaseDir()
	if err != nil {
		return nil, fmt.Errorf("book: resolve default directory: %w", err)
	}
	return Open(dir)
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// LoadPolyglotReader reads a .bin Polyglot book from r and merges its
// entries into the store, deduplicating against whatever the store
// already holds for the same position. It returns the number of
// genuinely new entries added.
func (s *Store) LoadPolyglotReader(r io.Reader) (int, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return 0, fmt.Errorf("book: read polyglot stream: %w", err)
	}
	if len(raw)%16 != 0 {
		return 0, fmt.Errorf("book: polyglot stream length %d is not a multiple of 16", len(raw))
	}

	grouped := make(map[uint64][]BookEntry)
	for off := 0; off < len(raw); off += 16 {
		rec := raw[off : off+16]
		key := binary.BigEndian.Uint64(rec[0:8])
		moveData := binary.BigEndian.Uint16(rec[8:10])
		weight := binary.BigEndian.Uint16(rec[10:12])
		grouped[key] = append(grouped[key], BookEntry{
			Move:   decodeRawPolyglotMove(moveData),
			Weight: weight,
		})
	}

	added := 0
	for key, entries := range grouped {
		n, err := s.mergeEntries(key, entries)
		if err != nil {
			return added, err
		}
		added += n
	}
	return added, nil
}

// decodeRawPolyglotMove decodes a Polyglot move field. Bits 0-2 are the
// destination file, 3-5 the destination rank, 6-8 the source file, 9-11
// the source rank, 12-14 the promotion piece (0 none, 1 knight, 2
// bishop, 3 rook, 4 queen) — which happens to match this package's own
// PieceType ordering for Knight..Queen exactly. Castling is encoded as
// the king capturing its own rook (e1h1, e1a1, ...); that is resolved
// against a real position in verifyAndConvert, not here, since it
// cannot be decided from the raw bits alone.
func decodeRawPolyglotMove(data uint16) chess.Move {
	toFile := chess.File(data & 0x7)
	toRank := chess.Rank((data >> 3) & 0x7)
	fromFile := chess.File((data >> 6) & 0x7)
	fromRank := chess.Rank((data >> 9) & 0x7)
	promoCode := (data >> 12) & 0x7

	from := chess.NewSquare(fromFile, fromRank)
	to := chess.NewSquare(toFile, toRank)
	if promoCode == 0 {
		return chess.NewMove(from, to)
	}
	return chess.NewPromotionMove(from, to, chess.PieceType(promoCode))
}

// mergeEntries folds newEntries into whatever is already stored under
// key, using xxhash over each entry's 4-byte encoding to drop exact
// duplicates (the same move at the same weight) pulled in from
// overlapping book files. It returns the number of entries that were
// not already present.
func (s *Store) mergeEntries(key uint64, newEntries []BookEntry) (int, error) {
	keyBytes := encodeKey(key)
	added := 0

	err := s.db.Update(func(txn *badger.Txn) error {
		var existing []BookEntry
		item, err := txn.Get(keyBytes)
		switch {
		case err == nil:
			if verr := item.Value(func(val []byte) error {
				existing = decodeEntries(val)
				return nil
			}); verr != nil {
				return verr
			}
		case errors.Is(err, badger.ErrKeyNotFound):
			// no existing entries for this position
		default:
			return err
		}

		seen := make(map[uint64]struct{}, len(existing)+len(newEntries))
		combined := make([]BookEntry, 0, len(existing)+len(newEntries))
		for _, e := range existing {
			seen[entryFingerprint(e)] = struct{}{}
			combined = append(combined, e)
		}
		for _, e := range newEntries {
			fp := entryFingerprint(e)
			if _, dup := seen[fp]; dup {
				continue
			}
			seen[fp] = struct{}{}
			combined = append(combined, e)
			added++
		}

		sort.Slice(combined, func(i, j int) bool { return combined[i].Move.Less(combined[j].Move) })
		return txn.Set(keyBytes, encodeEntries(combined))
	})
	return added, err
}

func entryFingerprint(e BookEntry) uint64 {
	buf := encodeEntry(e)
	return xxhash.Sum64(buf[:])
}

func encodeEntry(e BookEntry) [4]byte {
	var buf [4]byte
	binary.BigEndian.PutUint16(buf[0:2], uint16(e.Move))
	binary.BigEndian.PutUint16(buf[2:4], e.Weight)
	return buf
}

func encodeEntries(entries []BookEntry) []byte {
	buf := make([]byte, 0, len(entries)*4)
	for _, e := range entries {
		rec := encodeEntry(e)
		buf = append(buf, rec[:]...)
	}
	return buf
}

func decodeEntries(data []byte) []BookEntry {
	n := len(data) / 4
	entries := make([]BookEntry, n)
	for i := 0; i < n; i++ {
		off := i * 4
		entries[i] = BookEntry{
			Move:   chess.Move(binary.BigEndian.Uint16(data[off : off+2])),
			Weight: binary.BigEndian.Uint16(data[off+2 : off+4]),
		}
	}
	return entries
}

func encodeKey(hash uint64) []byte {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], hash)
	return buf[:]
}

// ProbeAll returns every book entry stored for pos, each converted (and
// validated) against pos's actual legal moves, sorted by move order.
func (s *Store) ProbeAll(pos chess.Position) ([]BookEntry, error) {
	var raw []BookEntry
	keyBytes := encodeKey(pos.PolyglotHash())

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(keyBytes)
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			raw = decodeEntries(val)
			return nil
		})
	})
	if err != nil {
		return nil, fmt.Errorf("book: probe %016x: %w", pos.PolyglotHash(), err)
	}
	if len(raw) == 0 {
		return nil, nil
	}

	legal := chess.LegalMoves(pos)
	verified := make([]BookEntry, 0, len(raw))
	for _, e := range raw {
		if m, ok := verifyAndConvert(pos, legal, e.Move); ok {
			verified = append(verified, BookEntry{Move: m, Weight: e.Weight})
		}
	}
	sort.Slice(verified, func(i, j int) bool { return verified[i].Move.Less(verified[j].Move) })
	return verified, nil
}

// Probe returns a single move for pos, chosen by weighted random
// selection the way Polyglot-compatible books are meant to be read
// (heavier entries are more likely, never guaranteed).
func (s *Store) Probe(pos chess.Position) (chess.Move, bool, error) {
	entries, err := s.ProbeAll(pos)
	if err != nil || len(entries) == 0 {
		return chess.NullMove, false, err
	}

	total := 0
	for _, e := range entries {
		total += int(e.Weight)
	}
	if total == 0 {
		return entries[0].Move, true, nil
	}

	pick := rand.Intn(total)
	for _, e := range entries {
		if pick < int(e.Weight) {
			return e.Move, true, nil
		}
		pick -= int(e.Weight)
	}
	return entries[len(entries)-1].Move, true, nil
}

// verifyAndConvert resolves a raw decoded Polyglot move against pos's
// legal moves, recovering the castling encoding Polyglot stores as a
// king capturing its own rook.
func verifyAndConvert(pos chess.Position, legal *chess.MoveList, raw chess.Move) (chess.Move, bool) {
	if legal.Contains(raw) {
		return raw, true
	}
	if remapped, ok := remapCastlingMove(pos, raw); ok && legal.Contains(remapped) {
		return remapped, true
	}
	return chess.NullMove, false
}

func remapCastlingMove(pos chess.Position, raw chess.Move) (chess.Move, bool) {
	piece, ok := pos.PieceAt(raw.Source())
	if !ok || piece.Type != chess.King {
		return chess.NullMove, false
	}
	backrank := piece.Color.Backrank()
	if raw.Source() != chess.NewSquare(chess.FileE, backrank) {
		return chess.NullMove, false
	}
	switch raw.Dest().File() {
	case chess.FileH:
		return chess.NewMove(raw.Source(), chess.NewSquare(chess.FileG, backrank)), true
	case chess.FileA:
		return chess.NewMove(raw.Source(), chess.NewSquare(chess.FileC, backrank)), true
	default:
		return chess.NullMove, false
	}
}

// Stats summarizes the store's contents and on-disk footprint.
type Stats struct {
	Positions int
	Entries   int
	SizeBytes int64
}

// Stats walks the store and reports how many positions and entries it
// holds, alongside BadgerDB's reported LSM+value-log size on disk.
func (s *Store) Stats() (Stats, error) {
	var st Stats
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()
		for it.Rewind(); it.Valid(); it.Next() {
			st.Positions++
			st.Entries += int(it.Item().ValueSize()) / 4
		}
		return nil
	})
	if err != nil {
		return Stats{}, fmt.Errorf("book: stats: %w", err)
	}
	lsm, vlog := s.db.Size()
	st.SizeBytes = lsm + vlog
	return st, nil
}

// Compact runs BadgerDB's value-log garbage collection until there is
// nothing left to reclaim.
func (s *Store) Compact() error {
	for {
		err := s.db.RunValueLogGC(0.5)
		if err != nil {
			if errors.Is(err, badger.ErrNoRewrite) {
				return nil
			}
			return fmt.Errorf("book: compact: %w", err)
		}
	}
}
