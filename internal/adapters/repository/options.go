package repository

// Option applies a configuration option to the Store.
type Option func(*Store)

// WithSkipped records the number of rows rejected by the loader.
func WithSkipped(n int) Option {
	return func(s *Store) {
		if n > 0 {
			s.skipped = n
		}
	}
}

// WithSourceName labels the store with its origin, e.g. "csv:data/matches.csv".
func WithSourceName(name string) Option {
	return func(s *Store) {
		if name != "" {
			s.source = name
		}
	}
}
