package repository

import "time"

// Option applies a configuration option to the SQLStore.
type Option func(*SQLStore)

// WithQueryTimeout bounds every store call.
func WithQueryTimeout(d time.Duration) Option {
	return func(s *SQLStore) {
		if d > 0 {
			s.queryTimeout = d
		}
	}
}

// WithMaxOpenConns caps the connection pool. In-memory SQLite always uses a
// single connection so every caller sees the same database.
func WithMaxOpenConns(n int) Option {
	return func(s *SQLStore) {
		if n > 0 {
			s.maxOpenConns = n
		}
	}
}
