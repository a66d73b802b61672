package cache

import (
	"crypto/sha256"
	"encoding/hex"

	"github.com/AGOODGITDUCK/PebbleCode/foundation/pebble/ast"
)

// ProgramCache keeps parsed programs keyed by file name and source content,
// so an edited file is parsed again
type ProgramCache struct {
	programs *Cache[*ast.Block]
}

// NewProgramCache creates a program cache
func NewProgramCache(cfg Config) *ProgramCache {
	return &ProgramCache{programs: New[*ast.Block](cfg)}
}

// ProgramKey hashes a file name and its source
func ProgramKey(filename, src string) string {
	h := sha256.New()
	h.Write([]byte(filename))
	h.Write([]byte{0})
	h.Write([]byte(src))
	return hex.EncodeToString(h.Sum(nil))
}

// Parse returns the cached program for filename and src, or calls parse and
// caches its result. Syntax errors are not cached.
func (p *ProgramCache) Parse(filename, src string, parse func(src, filename string) (*ast.Block, error)) (*ast.Block, error) {
	return p.programs.GetOrSet(ProgramKey(filename, src), func() (*ast.Block, error) {
		return parse(src, filename)
	})
}

// Stats returns hit and miss counts
func (p *ProgramCache) Stats() (hits, misses int64) {
	hits, misses, _ = p.programs.Stats()
	return hits, misses
}

// Size returns the number of cached programs
func (p *ProgramCache) Size() int { return p.programs.Size() }

// Clear drops all cached programs
func (p *ProgramCache) Clear() { p.programs.Clear() }
