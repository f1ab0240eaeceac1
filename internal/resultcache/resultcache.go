// Package resultcache memoizes rendered inference results for the MCP
// server. Inference is deterministic, so a repeated request with identical
// documents, filter, and format can be answered without re-running the
// normalizer.
package resultcache

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/usestring/shapegen/pkg/shape"
)

// Entry is one memoized inference result.
type Entry struct {
	Rendered    []byte
	RootAliases map[string]string
	DeclCount   int
	Warnings    []shape.Warning
}

// ResultCache provides thread-safe LRU caching for inference results.
type ResultCache struct {
	cache *lru.Cache[string, *Entry]
}

// New creates an LRU cache holding at most maxItems results.
func New(maxItems int) (*ResultCache, error) {
	c, err := lru.New[string, *Entry](maxItems)
	if err != nil {
		return nil, err
	}
	return &ResultCache{cache: c}, nil
}

// Get retrieves a memoized result by request key.
func (c *ResultCache) Get(key string) (*Entry, bool) {
	return c.cache.Get(key)
}

// Put stores a result under a request key.
func (c *ResultCache) Put(key string, e *Entry) {
	c.cache.Add(key, e)
}

// Len returns the current number of memoized results.
func (c *ResultCache) Len() int {
	return c.cache.Len()
}

// KeyFor digests the request parts into a cache key. Parts are length-framed
// so ("ab","c") and ("a","bc") never collide.
func KeyFor(parts ...string) string {
	h := sha256.New()
	var frame [8]byte
	for _, p := range parts {
		binary.BigEndian.PutUint64(frame[:], uint64(len(p)))
		h.Write(frame[:])
		h.Write([]byte(p))
	}
	return hex.EncodeToString(h.Sum(nil))
}
