// Package arena implements a bump allocator over a single pre-reserved
// block of memory.
//
// It is not a general-purpose allocator: there is no free for individual
// allocations, only destroying the whole arena at once. That is exactly the
// shape the indexing engine needs — the record store's canonicalized byte
// arenas are written once during ingest and read for the remainder of the
// program's life, so per-allocation bookkeeping would only add overhead.
package arena

import (
	"errors"
	"fmt"
	"sync"
)

// Alignment is the byte boundary every allocation is padded to.
const Alignment = 64

// ErrExhausted indicates the arena's block has no room left for a
// requested allocation. This always indicates a sizing bug — callers size
// arenas from known input lengths up front.
var ErrExhausted = errors.New("arena: block exhausted")

// Arena is a mutex-protected bump allocator over one fixed-size block.
//
// Arena is safe for concurrent use: Alloc may be called from multiple
// goroutines. The record store gives each input file its own arena,
// filled by that file's ingest goroutine, and carves the
// canonicalization/no-hyphens copies out of extra headroom in the same
// block.
type Arena struct {
	mu     sync.Mutex
	block  []byte
	offset int
}

// New reserves a block of the given size. The block is allocated once and
// never grown; exhaustion is reported by Alloc, not by New.
func New(size int) *Arena {
	return &Arena{block: make([]byte, size)}
}

// Alloc reserves size bytes, aligned to Alignment, and returns a view into
// the arena's block. The returned slice is valid for the arena's lifetime.
//
// Returns ErrExhausted if the block has no room left; this is fatal in
// the batch pipeline since the arena never grows.
func (a *Arena) Alloc(size int) ([]byte, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	padding := (Alignment - (a.offset % Alignment)) % Alignment
	if a.offset+padding+size > len(a.block) {
		return nil, fmt.Errorf("%w: need %d bytes, %d remaining", ErrExhausted, size, len(a.block)-a.offset)
	}

	a.offset += padding
	view := a.block[a.offset : a.offset+size : a.offset+size]
	a.offset += size
	return view, nil
}

// Copy allocates len(src) bytes and copies src into them, returning the
// arena-owned view. This is the common case: canonicalizing or
// hyphen-stripping a record's bytes into a new arena-backed string.
func (a *Arena) Copy(src []byte) ([]byte, error) {
	dst, err := a.Alloc(len(src))
	if err != nil {
		return nil, err
	}
	copy(dst, src)
	return dst, nil
}

// Used returns the number of bytes handed out so far, for diagnostics.
func (a *Arena) Used() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.offset
}

// Cap returns the total size of the arena's block.
func (a *Arena) Cap() int {
	return len(a.block)
}

// Destroy drops the arena's reference to its block. Release is atomic at
// shutdown: there is nothing to reclaim piecewise, so Destroy just lets
// the GC take the block.
func (a *Arena) Destroy() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.block = nil
	a.offset = 0
}
