// Package cache memoizes type-checking results behind a content-hash key:
// sha256 of the checked expression's canonical pretty-printed form guards a
// lookup/store pair, with an optional persistent tier behind the same
// interface. golang.org/x/sync/singleflight coalesces concurrent lookups for
// the same key onto a single compute call.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/corecalc/corecalc/internal/ast"
	"github.com/corecalc/corecalc/internal/diagnostics"
	"github.com/corecalc/corecalc/internal/prettyprinter"
)

// Key is a cache key: the hex-encoded sha256 of an expression's canonical
// pretty-printed text.
type Key string

// HashExpr computes the cache key for e. Two syntactically distinct but
// α-equivalent trees that the printer renders identically (same bound
// names) share a key; trees that differ only by a renaming the printer
// doesn't normalize away do not.
func HashExpr[A ast.EmbedPayload](e ast.Expr[A]) Key {
	sum := sha256.Sum256([]byte(prettyprinter.Pretty(e)))
	return Key(hex.EncodeToString(sum[:]))
}

type entry struct {
	typ ast.Expr[ast.X]
	err *diagnostics.DiagnosticError
}

// Cache memoizes TypeOf results. Safe for concurrent use; concurrent
// lookups for the same key coalesce onto a single compute call.
type Cache struct {
	mu    sync.RWMutex
	m     map[Key]entry
	group singleflight.Group
	disk  *DiskCache
}

// New returns an empty in-memory cache with no disk tier.
func New() *Cache {
	return &Cache{m: make(map[Key]entry)}
}

// NewWithDisk returns a cache that also persists successful results to disk.
func NewWithDisk(disk *DiskCache) *Cache {
	return &Cache{m: make(map[Key]entry), disk: disk}
}

// TypeOf returns the cached type-checking result for e, computing it with
// compute on a miss. The in-memory tier is authoritative; the disk tier (if
// configured) only ever receives writes here, never reads — a stale
// on-disk type for code that has since changed would otherwise silently
// outlive its input. Disk entries only ever serve informational summaries
// (see DiskCache.Stat), not lookups.
func (c *Cache) TypeOf(e ast.Expr[ast.X], compute func() (ast.Expr[ast.X], *diagnostics.DiagnosticError)) (ast.Expr[ast.X], *diagnostics.DiagnosticError) {
	key := HashExpr(e)

	c.mu.RLock()
	if hit, ok := c.m[key]; ok {
		c.mu.RUnlock()
		return hit.typ, hit.err
	}
	c.mu.RUnlock()

	v, _, _ := c.group.Do(string(key), func() (any, error) {
		typ, derr := compute()
		c.mu.Lock()
		c.m[key] = entry{typ: typ, err: derr}
		c.mu.Unlock()
		if c.disk != nil && derr == nil {
			_ = c.disk.Store(key, prettyprinter.Pretty(typ))
		}
		return entry{typ: typ, err: derr}, nil
	})
	result := v.(entry)
	return result.typ, result.err
}

// Len reports the number of entries in the in-memory tier.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.m)
}

// Clear empties the in-memory tier. The disk tier, if any, is untouched.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.m = make(map[Key]entry)
}
