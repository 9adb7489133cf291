// Command book inspects and maintains a Polyglot-backed opening book
// store: loading .bin files into it, reporting its size, and compacting
// it.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	humanize "github.com/dustin/go-humanize"

	"github.com/hailam/chessgen/internal/book"
)

var (
	dbDir   = flag.String("dir", "", "book store directory (defaults to the platform data directory)")
	load    = flag.String("load", "", "load a Polyglot .bin file into the store")
	stats   = flag.Bool("stats", false, "print store statistics")
	compact = flag.Bool("compact", false, "run value-log garbage collection")
)

func main() {
	flag.Parse()

	store, err := openStore()
	if err != nil {
		log.Fatalf("book: %v", err)
	}
	defer store.Close()

	if *load != "" {
		f, err := os.Open(*load)
		if err != nil {
			log.Fatalf("book: open %q: %v", *load, err)
		}
		defer f.Close()

		n, err := store.LoadPolyglotReader(f)
		if err != nil {
			log.Fatalf("book: load %q: %v", *load, err)
		}
		log.Printf("loaded %d new entries from %s", n, *load)
	}

	if *compact {
		if err := store.Compact(); err != nil {
			log.Fatalf("book: compact: %v", err)
		}
		log.Print("compaction complete")
	}

	if *stats || (*load == "" && !*compact) {
		st, err := store.Stats()
		if err != nil {
			log.Fatalf("book: stats: %v", err)
		}
		fmt.Printf("positions: %d\n", st.Positions)
		fmt.Printf("entries:   %d\n", st.Entries)
		fmt.Printf("size:      %s\n", humanize.Bytes(uint64(st.SizeBytes)))
	}
}

func openStore() (*book.Store, error) {
	if *dbDir != "" {
		return book.Open(*dbDir)
	}
	return book.OpenDefault()
}
