// Package storage persists move-generation census results in BadgerDB.
package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/apex/log"
	"github.com/dgraph-io/badger/v4"

	"github.com/jfredett/hazel-sub002/internal/movegen"
)

// Storage keys
const (
	censusPrefix = "census/"
	keyStats     = "stats"
)

// ErrNotFound is returned when no record exists for a key.
var ErrNotFound = errors.New("record not found")

// Record is one cached census: the counts generated for a position with a
// particular extractor.
type Record struct {
	FEN       string         `json:"fen"`
	Extractor string         `json:"extractor"`
	Census    movegen.Census `json:"census"`
	Elapsed   time.Duration  `json:"elapsed"`
	Created   time.Time      `json:"created"`
}

// RunStats accumulates suite runs across invocations.
type RunStats struct {
	Runs        int            `json:"runs"`
	CasesPassed int            `json:"cases_passed"`
	CasesFailed int            `json:"cases_failed"`
	FailsByCase map[string]int `json:"fails_by_case"`
	LastRun     time.Time      `json:"last_run"`
}

// NewRunStats returns empty run statistics.
func NewRunStats() *RunStats {
	return &RunStats{FailsByCase: make(map[string]int)}
}

// PassRate returns the share of passing cases as a percentage (0-100).
func (s *RunStats) PassRate() float64 {
	total := s.CasesPassed + s.CasesFailed
	if total == 0 {
		return 0
	}
	return float64(s.CasesPassed) / float64(total) * 100
}

// Storage wraps BadgerDB for persistent storage
type Storage struct {
	db *badger.DB
}

// NewStorage opens the store in the platform data directory.
func NewStorage() (*Storage, error) {
	dbDir, err := GetDatabaseDir()
	if err != nil {
		return nil, err
	}
	return Open(dbDir)
}

// Open opens (creating if needed) a store rooted at dir.
func Open(dir string) (*Storage, error) {
	opts := badger.DefaultOptions(dir).WithLogger(newBadgerLogger())

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open census store %s: %w", dir, err)
	}

	log.WithField("dir", dir).Debug("census store opened")
	return &Storage{db: db}, nil
}

// Close closes the database
func (s *Storage) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func censusKey(fen, extractor string) []byte {
	return []byte(censusPrefix + extractor + "/" + fen)
}

// SaveCensus stores rec, replacing any record for the same FEN and extractor.
func (s *Storage) SaveCensus(rec *Record) error {
	if rec.Created.IsZero() {
		rec.Created = time.Now()
	}

	data, err := json.Marshal(rec)
	if err != nil {
		return err
	}

	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(censusKey(rec.FEN, rec.Extractor), data)
	})
}

// LoadCensus returns the record for fen and extractor, or ErrNotFound.
func (s *Storage) LoadCensus(fen, extractor string) (*Record, error) {
	var rec Record

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(censusKey(fen, extractor))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return fmt.Errorf("census %s %q: %w", extractor, fen, ErrNotFound)
		}
		if err != nil {
			return err
		}

		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &rec)
		})
	})
	if err != nil {
		return nil, err
	}

	return &rec, nil
}

// ListCensus returns every stored record, ordered by extractor then FEN.
func (s *Storage) ListCensus() ([]*Record, error) {
	var records []*Record

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(censusPrefix)
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			var rec Record
			err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &rec)
			})
			if err != nil {
				return fmt.Errorf("decode %s: %w", it.Item().Key(), err)
			}
			records = append(records, &rec)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(records, func(i, j int) bool {
		if records[i].Extractor != records[j].Extractor {
			return records[i].Extractor < records[j].Extractor
		}
		return records[i].FEN < records[j].FEN
	})
	return records, nil
}

// SaveStats saves suite run statistics
func (s *Storage) SaveStats(stats *RunStats) error {
	data, err := json.Marshal(stats)
	if err != nil {
		return err
	}

	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(keyStats), data)
	})
}

// LoadStats loads suite run statistics, returns empty stats if not found
func (s *Storage) LoadStats() (*RunStats, error) {
	stats := NewRunStats()

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(keyStats))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return err
		}

		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, stats)
		})
	})

	if stats.FailsByCase == nil {
		stats.FailsByCase = make(map[string]int)
	}

	return stats, err
}

// RecordRun folds one suite run into the stored statistics. failed names
// the cases that did not pass.
func (s *Storage) RecordRun(passed int, failed []string) error {
	stats, err := s.LoadStats()
	if err != nil {
		return err
	}

	stats.Runs++
	stats.CasesPassed += passed
	stats.CasesFailed += len(failed)
	for _, name := range failed {
		stats.FailsByCase[name]++
	}
	stats.LastRun = time.Now()

	return s.SaveStats(stats)
}
