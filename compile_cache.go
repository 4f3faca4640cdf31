package paramq

import (
	"regexp"
	"sync"
)

// compileCache memoizes derived values keyed by their source text, such as
// compiled patterns and translated date layouts. Parsers are shared by every
// builder of a registry, so the cache must be safe for concurrent use.
type compileCache[K comparable, V any] struct {
	entries sync.Map // map[K]*cacheEntry[V]
}

type cacheEntry[V any] struct {
	once  sync.Once
	value V
	err   error
}

// GetOrCreate returns the cached value for key, computing it with factory
// exactly once per key even under concurrent access.
func (cc *compileCache[K, V]) GetOrCreate(key K, factory func() (V, error)) (V, error) {
	v, ok := cc.entries.Load(key)
	if !ok {
		// LoadOrStore returns the winner when two callers race on a new key
		v, _ = cc.entries.LoadOrStore(key, &cacheEntry[V]{})
	}
	entry := v.(*cacheEntry[V])
	entry.once.Do(func() { entry.value, entry.err = factory() })
	return entry.value, entry.err
}

var (
	patternCache compileCache[string, *regexp.Regexp]
	layoutCache  compileCache[string, string]
)

func compilePattern(pattern string) (*regexp.Regexp, error) {
	return patternCache.GetOrCreate(pattern, func() (*regexp.Regexp, error) {
		return regexp.Compile(pattern)
	})
}
