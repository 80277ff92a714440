package pattern

import (
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
)

// defaultCacheSize bounds the parsed-pattern cache. Edit plans reuse a small
// pattern vocabulary, so a modest cache captures nearly all repeats.
const defaultCacheSize = 512

// Compiler parses patterns through an LRU cache keyed by source text and
// tracks hit/miss counts.
type Compiler struct {
	cache  *lru.Cache[string, Pattern]
	mu     sync.Mutex
	hits   int64
	misses int64
}

// NewCompiler creates a Compiler with the default cache size.
func NewCompiler() (*Compiler, error) {
	cache, err := lru.New[string, Pattern](defaultCacheSize)
	if err != nil {
		return nil, err
	}

	return &Compiler{cache: cache}, nil
}

// Compile parses text, serving repeats from the cache. Parse errors are not
// cached; a malformed pattern stays malformed and is cheap to re-reject.
func (c *Compiler) Compile(text string) (Pattern, error) {
	if cached, ok := c.cache.Get(text); ok {
		c.mu.Lock()
		c.hits++
		c.mu.Unlock()

		return cached, nil
	}

	parsed, err := Parse(text)
	if err != nil {
		return Pattern{}, err
	}

	c.cache.Add(text, parsed)

	c.mu.Lock()
	c.misses++
	c.mu.Unlock()

	return parsed, nil
}

// CacheStats returns the number of cache hits and misses.
func (c *Compiler) CacheStats() (hits, misses int64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.hits, c.misses
}
