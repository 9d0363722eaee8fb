package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/glebarez/sqlite"
	"github.com/rs/zerolog"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

// Flusher is implemented by stores that persist writes asynchronously.
type Flusher interface {
	// Flush blocks until every write issued so far has reached the backing database.
	//
	// Returns:
	//   - error: the write errors collected since the previous Flush, joined
	Flush() error
}

// entry is one row of the key/value table. Values are kept as blobs so sqlite never applies numeric affinity to
// a bare JSON number; they are checked as JSON when loaded.
type entry struct {
	Key       string `gorm:"primaryKey"`
	Value     []byte `gorm:"type:blob"`
	UpdatedAt time.Time
}

func (entry) TableName() string {
	return "storage_entries"
}

type sqliteImpl struct {
	// mu guards the cache and the closed flag. Reads never touch the database.
	mu     sync.RWMutex
	cache  map[string][]byte
	closed bool

	db *gorm.DB

	// writeMu serializes database writes. Each write persists whatever the cache holds at that moment,
	// so the last write to run always leaves the row matching the cache.
	writeMu sync.Mutex
	pending sync.WaitGroup
	pool    worker.DynamicWorkerPool
	workers int
	taskID  atomic.Int64

	errMu     sync.Mutex
	writeErrs []error

	logger zerolog.Logger
}

var (
	_ KV      = &sqliteImpl{}
	_ Flusher = &sqliteImpl{}
)

// NewSqlite opens (creating if needed) an sqlite database and loads its entries into memory.
// Reads are served from memory; writes update memory immediately and reach the database on a worker pool,
// so callers on the frame loop never wait for disk.
//
// Parameters:
//   - path: the database file; empty opens a shared in-memory database
//   - options: builder options
//
// Returns:
//   - KV: the opened store, also a Flusher
//   - error: if the database cannot be opened or migrated
func NewSqlite(path string, options ...SqliteBuilderOption) (KV, error) {
	s := &sqliteImpl{
		cache:   make(map[string][]byte),
		workers: 1,
		logger:  zerolog.Nop(),
	}
	for _, opt := range options {
		opt(s)
	}

	dsn := path
	if dsn == "" {
		dsn = "file::memory:?cache=shared"
	}
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		PrepareStmt:            true,
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("storage: open %q: %w", dsn, err)
	}

	if err := s.prepare(db); err != nil {
		if sqlDB, dbErr := db.DB(); dbErr == nil {
			sqlDB.Close()
		}
		return nil, err
	}

	s.db = db
	s.pool = worker.NewDynamicWorkerPool(s.workers, 256, 1*time.Second)
	s.logger.Info().Str("path", dsn).Int("entries", len(s.cache)).Msg("opened sqlite storage")
	return s, nil
}

// prepare sets pragmas, migrates the table and loads every readable row into the cache.
// A row that cannot be scanned or does not hold JSON is logged and skipped.
func (s *sqliteImpl) prepare(db *gorm.DB) error {
	pragmas := []string{
		"PRAGMA user_version = 1;",
		"PRAGMA synchronous = NORMAL;",
		"PRAGMA temp_store = MEMORY;",
	}
	for _, pragma := range pragmas {
		if err := db.Exec(pragma).Error; err != nil {
			return fmt.Errorf("storage: set pragma: %w", err)
		}
	}

	if err := db.AutoMigrate(&entry{}); err != nil {
		return fmt.Errorf("storage: migrate: %w", err)
	}

	rows, err := db.Model(&entry{}).Rows()
	if err != nil {
		return fmt.Errorf("storage: load entries: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var row entry
		if err := db.ScanRows(rows, &row); err != nil {
			s.logger.Error().Err(err).Msg("skipping unreadable storage entry")
			continue
		}
		var value datatypes.JSON
		if err := json.Unmarshal(row.Value, &value); err != nil {
			s.logger.Error().Err(err).Str("key", row.Key).Msg("skipping storage entry that is not JSON")
			continue
		}
		s.cache[row.Key] = []byte(value)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("storage: load entries: %w", err)
	}
	return nil
}

func (s *sqliteImpl) Get(key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return nil, ErrClosed
	}
	v, ok := s.cache[key]
	if !ok {
		return nil, ErrNotFound
	}
	return slices.Clone(v), nil
}

func (s *sqliteImpl) Set(key string, value []byte) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrClosed
	}
	s.cache[key] = slices.Clone(value)
	s.pending.Add(1)
	s.mu.Unlock()

	s.persist(key)
	return nil
}

func (s *sqliteImpl) Delete(key string) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrClosed
	}
	delete(s.cache, key)
	s.pending.Add(1)
	s.mu.Unlock()

	s.persist(key)
	return nil
}

func (s *sqliteImpl) Flush() error {
	s.pending.Wait()

	s.errMu.Lock()
	defer s.errMu.Unlock()
	err := errors.Join(s.writeErrs...)
	s.writeErrs = nil
	return err
}

func (s *sqliteImpl) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	s.mu.Unlock()

	flushErr := s.Flush()
	s.pool.Stop()

	var closeErr error
	if sqlDB, err := s.db.DB(); err != nil {
		closeErr = err
	} else {
		closeErr = sqlDB.Close()
	}

	s.mu.Lock()
	s.cache = nil
	s.mu.Unlock()
	return errors.Join(flushErr, closeErr)
}

// persist queues a write of key's current cached state. The caller has already counted it in pending
// while holding mu, so Close cannot start waiting between the closed check and the count.
func (s *sqliteImpl) persist(key string) {
	s.pool.SubmitTask(worker.Task{
		ID:      int(s.taskID.Add(1)),
		Payload: key,
		Do: func() (any, error) {
			defer s.pending.Done()
			err := s.write(key)
			if err != nil {
				s.logger.Error().Err(err).Str("key", key).Msg("storage write failed")
				s.errMu.Lock()
				s.writeErrs = append(s.writeErrs, err)
				s.errMu.Unlock()
			}
			return nil, err
		},
	})
}

func (s *sqliteImpl) write(key string) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.mu.RLock()
	v, ok := s.cache[key]
	s.mu.RUnlock()

	if !ok {
		if err := s.db.Delete(&entry{Key: key}).Error; err != nil {
			return fmt.Errorf("delete %q: %w", key, err)
		}
		return nil
	}

	row := entry{Key: key, Value: v, UpdatedAt: time.Now()}
	err := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&row).Error
	if err != nil {
		return fmt.Errorf("upsert %q: %w", key, err)
	}
	return nil
}
