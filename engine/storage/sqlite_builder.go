package storage

import "github.com/rs/zerolog"

// SqliteBuilderOption configures the sqlite store.
type SqliteBuilderOption func(*sqliteImpl)

// WithLogger sets the logger used for open and write-failure events.
func WithLogger(logger zerolog.Logger) SqliteBuilderOption {
	return func(s *sqliteImpl) {
		s.logger = logger
	}
}

// WithWorkers sets the number of goroutines writing to the database.
//
// Parameters:
//   - n: the number of write workers (minimum 1)
func WithWorkers(n int) SqliteBuilderOption {
	return func(s *sqliteImpl) {
		if n > 0 {
			s.workers = n
		}
	}
}
