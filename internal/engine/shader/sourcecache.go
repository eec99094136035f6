package shader

import (
	"os"
	"sync"

	"go.uber.org/zap"

	"github.com/Faultbox/vantage/internal/logger"
)

// SourceCache stores raw shader source text keyed by (name, role).
// Entries arrive either by direct injection (Insert) or lazily from
// disk through the Resolver (GetOrLoad). Cached text survives registry
// rebuilds; a rebuild reacts to constant changes, not source edits.
type SourceCache struct {
	resolver *Resolver

	mu       sync.Mutex
	programs map[string]string
}

// NewSourceCache creates a source cache backed by the given resolver.
func NewSourceCache(resolver *Resolver) *SourceCache {
	return &SourceCache{
		resolver: resolver,
		programs: make(map[string]string),
	}
}

// Insert stores text under (name, role). With preferLocal set, a
// resolvable local file with non-empty contents wins over the supplied
// text, letting deployments override built-in shaders. Insert never
// touches the filesystem when preferLocal is false.
func (c *SourceCache) Insert(name string, role FileRole, text string, preferLocal bool) {
	key := name + "/" + role.Filename()

	if preferLocal {
		if path := c.resolver.Resolve(name, role); path != "" {
			if local := readSourceFile(path); local != "" {
				c.store(key, local)
				return
			}
		}
	}
	c.store(key, text)
}

// Get is a pure cache lookup: no disk access, no fallback.
func (c *SourceCache) Get(name string, role FileRole) string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.programs[name+"/"+role.Filename()]
}

// GetOrLoad returns the cached text, loading it from disk on a miss.
// Returns "" without caching when no path resolves or the file is
// unreadable or empty.
func (c *SourceCache) GetOrLoad(name string, role FileRole) string {
	key := name + "/" + role.Filename()

	c.mu.Lock()
	text, ok := c.programs[key]
	c.mu.Unlock()
	if ok {
		return text
	}

	path := c.resolver.Resolve(name, role)
	if path == "" {
		logger.Debug("no path found for shader source", zap.String("shader", key))
		return ""
	}

	logger.Debug("loading shader source", zap.String("shader", key), zap.String("path", path))
	text = readSourceFile(path)
	if text == "" {
		return ""
	}
	c.store(key, text)
	return text
}

func (c *SourceCache) store(key, text string) {
	c.mu.Lock()
	c.programs[key] = text
	c.mu.Unlock()
}

// readSourceFile reads a file, treating unreadable and empty files the
// same way (absent).
func readSourceFile(path string) string {
	data, err := os.ReadFile(path)
	if err != nil {
		logger.Warn("failed to read shader source", zap.String("path", path), zap.Error(err))
		return ""
	}
	return string(data)
}
