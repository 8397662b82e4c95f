package temporal

// cacheThreshold is the column length at or below which caching is skipped.
const cacheThreshold = 50

type cacheEntry[T any] struct {
	value T
	ok    bool
}

// parseCache memoizes parse results for one conversion call. Keys are views
// into the column's buffers, so a cache must not outlive its column.
type parseCache[T any] struct {
	entries map[string]cacheEntry[T]
	hits    int
	misses  int
}

func newParseCache[T any](enabled bool, n int) *parseCache[T] {
	c := &parseCache[T]{}
	if enabled && n > cacheThreshold {
		c.entries = make(map[string]cacheEntry[T])
	}
	return c
}

func (c *parseCache[T]) enabled() bool { return c.entries != nil }

// getOrParse returns the stored result for key, computing and storing it on
// first sight. A disabled cache always computes.
func (c *parseCache[T]) getOrParse(key string, compute func(string) (T, bool)) (T, bool) {
	if c.entries == nil {
		return compute(key)
	}
	if e, ok := c.entries[key]; ok {
		c.hits++
		return e.value, e.ok
	}
	c.misses++
	v, ok := compute(key)
	c.entries[key] = cacheEntry[T]{value: v, ok: ok}
	return v, ok
}
