package journal

import (
	"strings"
	"sync"
)

// unresolvedPath is the sentinel stored (and returned) whenever a path
// cannot be resolved, so repeated failures on the same id stay cheap.
const unresolvedPath = "?"

// PathResolver opens a file by id and reports its final, normalised path.
// Implementations talk to the OS; PathCache itself never does, which keeps
// the cache's locking and memoisation logic testable without a real volume.
type PathResolver interface {
	ResolvePath(id FileIdKey) (string, error)
}

// PathCache maps FileIdKey to a resolved directory path. It is populated
// exclusively through Resolve, on first miss; entries are never evicted or
// mutated after insert, and the cache survives for the lifetime of one run.
//
// cacheMu is acquired twice per miss (lookup, then insert) and once per hit,
// matching the locking shape spec.md describes — this lets concurrent
// readers of the cache coexist with the single ingesting writer without
// holding the lock across the (potentially slow) OS round-trip.
type PathCache struct {
	resolver PathResolver

	cacheMu sync.Mutex
	cache   map[FileIdKey]string
}

// NewPathCache builds an empty PathCache backed by resolver.
func NewPathCache(resolver PathResolver) *PathCache {
	return &PathCache{resolver: resolver, cache: make(map[FileIdKey]string)}
}

// Resolve returns the directory path for id, resolving and caching it on
// first miss. Any OS error from the resolver is swallowed and recorded as
// the "?" sentinel.
func (c *PathCache) Resolve(id FileIdKey) string {
	c.cacheMu.Lock()
	if p, ok := c.cache[id]; ok {
		c.cacheMu.Unlock()
		return p
	}
	c.cacheMu.Unlock()

	path, err := c.resolver.ResolvePath(id)
	if err != nil || path == "" {
		path = unresolvedPath
	} else {
		path = strings.TrimPrefix(path, `\\?\`)
	}

	c.cacheMu.Lock()
	c.cache[id] = path
	c.cacheMu.Unlock()
	return path
}

// Len reports how many ids have been resolved (hit or miss) so far.
func (c *PathCache) Len() int {
	c.cacheMu.Lock()
	defer c.cacheMu.Unlock()
	return len(c.cache)
}
