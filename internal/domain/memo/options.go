package memo

const defaultMaxSize = 256

type options struct {
	maxSize int
}

// Option applies a configuration option to a Cache.
type Option func(*options)

// WithMaxSize sets the maximum number of entries to keep.
// If maxSize > 0: bounded mode, oldest entries are evicted first.
// If maxSize <= 0: unbounded mode.
func WithMaxSize(maxSize int) Option {
	return func(o *options) {
		o.maxSize = maxSize
	}
}
