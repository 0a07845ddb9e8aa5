// Package downloadstore persists a local manifest of files already
// retrieved under a given save-path, keyed by filename (SPEC_FULL.md
// §3b). It lets repeated fetch_all calls against the same save-path
// recognise files the native component has already written, rather than
// relying on re-reading the whole dataset to discover duplicates.
//
// Grounded on the teacher's BadgerDB metadata store
// (pkg/metadata/store/badger): prefixed keys, db.Update/db.View
// closures, and a constructor returning an opened, ready-to-use store.
package downloadstore

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	badger "github.com/dgraph-io/badger/v4"

	"github.com/cariandrum22/Xanthos-sub000/internal/logger"
)

const prefixEntry = "f:"

func keyEntry(filename string) []byte {
	return []byte(prefixEntry + filename)
}

// Entry records one file's download history for a given save-path.
type Entry struct {
	Filename     string    `json:"filename"`
	ServiceKey   string    `json:"service_key"`
	ByteCount    int64     `json:"byte_count"`
	DownloadedAt time.Time `json:"downloaded_at"`
}

// Store wraps a BadgerDB handle scoped to one save-path.
type Store struct {
	db *badger.DB
}

// Open opens (creating if necessary) a download manifest at dir.
func Open(dir string) (*Store, error) {
	opts := badger.DefaultOptions(dir).WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("downloadstore: open %s: %w", dir, err)
	}
	return &Store{db: db}, nil
}

// OpenInMemory opens a manifest backed by an in-memory BadgerDB
// instance, for tests and for callers that never set a save-path.
func OpenInMemory() (*Store, error) {
	opts := badger.DefaultOptions("").WithInMemory(true).WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("downloadstore: open in-memory: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the underlying BadgerDB handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// Record stores or overwrites the manifest entry for filename.
func (s *Store) Record(ctx context.Context, e Entry) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("downloadstore: encode entry for %s: %w", e.Filename, err)
	}

	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(keyEntry(e.Filename), data)
	})
}

// Lookup returns the manifest entry for filename, and whether one
// exists.
func (s *Store) Lookup(ctx context.Context, filename string) (Entry, bool, error) {
	if err := ctx.Err(); err != nil {
		return Entry{}, false, err
	}

	var entry Entry
	var found bool

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(keyEntry(filename))
		if err == badger.ErrKeyNotFound {
			return nil
		}
		if err != nil {
			return err
		}
		found = true
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &entry)
		})
	})
	if err != nil {
		return Entry{}, false, fmt.Errorf("downloadstore: lookup %s: %w", filename, err)
	}
	return entry, found, nil
}

// Seen reports whether filename has already been recorded. It goes
// through Lookup, so the entry is decoded and then discarded.
func (s *Store) Seen(ctx context.Context, filename string) (bool, error) {
	_, found, err := s.Lookup(ctx, filename)
	return found, err
}

// Filter removes already-recorded filenames from candidates, returning
// only those the manifest has not yet seen. Used to skip re-downloading
// files a prior fetch_all into the same save-path already wrote.
func (s *Store) Filter(ctx context.Context, candidates []string) ([]string, error) {
	fresh := make([]string, 0, len(candidates))
	for _, name := range candidates {
		if err := ctx.Err(); err != nil {
			return fresh, err
		}
		seen, err := s.Seen(ctx, name)
		if err != nil {
			return fresh, err
		}
		if !seen {
			fresh = append(fresh, name)
		}
	}
	return fresh, nil
}

// Count returns the number of manifest entries currently stored.
func (s *Store) Count(ctx context.Context) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	count := 0
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(prefixEntry)
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()
		for it.Rewind(); it.Valid(); it.Next() {
			count++
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("downloadstore: count: %w", err)
	}
	return count, nil
}

// RunGC triggers BadgerDB's value-log garbage collection. It is a no-op
// (returns nil) when there is nothing worth reclaiming, matching
// badger's own ErrNoRewrite contract.
func (s *Store) RunGC(discardRatio float64) error {
	err := s.db.RunValueLogGC(discardRatio)
	if err == badger.ErrNoRewrite {
		return nil
	}
	if err != nil {
		logger.Warn("downloadstore: value log GC failed", "error", err)
		return err
	}
	return nil
}
