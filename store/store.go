// Package store owns the canonicalized string arenas and the flat record
// arrays the rest of the indexing engine is built from.
package store

import (
	"fmt"
	"io"
	"sort"

	"github.com/coregx/sufmatch/internal/arena"
	"github.com/coregx/sufmatch/internal/concurrency"
)

// Domain constants. Strings are ASCII, at most MaxLen-1 bytes.
const (
	MinLen = 3
	MaxLen = 50
)

// Store holds the five derived sequences and the two arenas backing them.
// It outlives every suffix index and the dictionary built from it.
type Store struct {
	partsArena  *arena.Arena
	masterArena *arena.Arena

	partsByOrigIndex []*Part
	partsAsc         []*Part

	masterByOrigIndex []*MasterPart
	masterAsc         []*MasterPart

	// mpNhAsc is pre-wrapped as Records, sorted by no-hyphens length.
	mpNhAsc []Record
}

// PartsAsc returns all parts sorted ascending by length, ties broken by
// OrigIndex.
func (s *Store) PartsAsc() []*Part { return s.partsAsc }

// PartsByOrigIndex returns parts indexed by their original file position,
// for the matcher's backward master-side scan.
func (s *Store) PartsByOrigIndex() []*Part { return s.partsByOrigIndex }

// MasterPartsAsc returns master parts sorted ascending by length, ties
// broken by OrigIndex.
func (s *Store) MasterPartsAsc() []*MasterPart { return s.masterAsc }

// MasterPartsByOrigIndex returns accepted master parts indexed by their
// position among accepted masterParts lines, for resolving a matched
// OrigIndex back to its original-case bytes.
func (s *Store) MasterPartsByOrigIndex() []*MasterPart { return s.masterByOrigIndex }

// MasterPartsNoHyphensAsc returns the subset of master parts with a valid
// no-hyphens variant, sorted ascending by that variant's length.
func (s *Store) MasterPartsNoHyphensAsc() []Record { return s.mpNhAsc }

// Build ingests the parts and masterParts byte streams and produces a
// Store. Building the two files is independent and runs concurrently.
//
// An unreadable stream or a stream with zero lines is fatal
// (ErrIO / ErrEmptyInput); the core has no recovery path for either.
func Build(partsR, masterPartsR io.Reader) (*Store, error) {
	s := &Store{}

	var g concurrency.Group
	g.Go(func() error {
		partsAsc, byOrig, a, err := buildParts(partsR)
		if err != nil {
			return err
		}
		s.partsAsc, s.partsByOrigIndex, s.partsArena = partsAsc, byOrig, a
		return nil
	})
	g.Go(func() error {
		mpAsc, mpByOrigIndex, mpNhAsc, a, err := buildMasterParts(masterPartsR)
		if err != nil {
			return err
		}
		s.masterAsc, s.masterByOrigIndex, s.mpNhAsc, s.masterArena = mpAsc, mpByOrigIndex, mpNhAsc, a
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return s, nil
}

// Close releases both arenas at once: there is no per-record reclamation,
// only whole-arena teardown.
func (s *Store) Close() {
	if s.partsArena != nil {
		s.partsArena.Destroy()
	}
	if s.masterArena != nil {
		s.masterArena.Destroy()
	}
}

func buildParts(r io.Reader) ([]*Part, []*Part, *arena.Arena, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("%w: reading parts: %v", ErrIO, err)
	}

	lines := splitLines(raw)
	if len(lines) == 0 {
		return nil, nil, nil, fmt.Errorf("%w: parts file has no lines", ErrEmptyInput)
	}

	// Headroom: the raw bytes plus one uppercased copy per line, and up to
	// one Alignment of padding for each of the two allocations per line.
	a := arena.New(len(raw)*2 + arena.Alignment*len(lines)*2)

	byOrig := make([]*Part, 0, len(lines))
	for i, line := range lines {
		trimmed := trimASCIISpace(line)

		original, err := a.Copy(trimmed)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("%w: parts arena: %v", ErrIO, err)
		}
		canonical, err := asciiUpperInto(a, trimmed)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("%w: parts arena: %v", ErrIO, err)
		}

		byOrig = append(byOrig, &Part{original: original, canonical: canonical, origIndex: i})
	}

	partsAsc := make([]*Part, len(byOrig))
	copy(partsAsc, byOrig)
	stableSortByLength(partsAsc)

	return partsAsc, byOrig, a, nil
}

func buildMasterParts(r io.Reader) ([]*MasterPart, []*MasterPart, []Record, *arena.Arena, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, nil, nil, nil, fmt.Errorf("%w: reading masterParts: %v", ErrIO, err)
	}

	lines := splitLines(raw)
	if len(lines) == 0 {
		return nil, nil, nil, nil, fmt.Errorf("%w: masterParts file has no lines", ErrEmptyInput)
	}

	// Headroom: raw bytes, one uppercased copy, and one no-hyphens copy
	// per line, and up to one Alignment of padding for each of the three
	// allocations per line.
	a := arena.New(len(raw)*3 + arena.Alignment*len(lines)*3)

	mpAsc := make([]*MasterPart, 0, len(lines))
	mpByOrigIndex := make([]*MasterPart, 0, len(lines))
	mpNhAsc := make([]Record, 0, len(lines))
	origIndex := 0

	for _, line := range lines {
		trimmed := trimASCIISpace(line)
		if len(trimmed) < MinLen {
			continue
		}

		original, err := a.Copy(trimmed)
		if err != nil {
			return nil, nil, nil, nil, fmt.Errorf("%w: masterParts arena: %v", ErrIO, err)
		}
		canonical, err := asciiUpperInto(a, trimmed)
		if err != nil {
			return nil, nil, nil, nil, fmt.Errorf("%w: masterParts arena: %v", ErrIO, err)
		}

		mp := &MasterPart{Part: Part{original: original, canonical: canonical, origIndex: origIndex}}

		if hasHyphen(canonical) {
			stripped := removeHyphens(canonical)
			if len(stripped) >= MinLen {
				nh, err := a.Copy(stripped)
				if err != nil {
					return nil, nil, nil, nil, fmt.Errorf("%w: masterParts arena: %v", ErrIO, err)
				}
				mp.canonicalNoHyphens = nh
			}
		}

		mpAsc = append(mpAsc, mp)
		mpByOrigIndex = append(mpByOrigIndex, mp)
		if mp.HasNoHyphens() {
			mpNhAsc = append(mpNhAsc, noHyphensRecord{master: mp})
		}
		origIndex++
	}

	stableSortByLength(mpAsc)
	sort.SliceStable(mpNhAsc, func(i, j int) bool {
		return mpNhAsc[i].Length() < mpNhAsc[j].Length()
	})

	return mpAsc, mpByOrigIndex, mpNhAsc, a, nil
}

// splitLines splits raw on '\n', stripping an optional preceding '\r'.
// A final line with no trailing '\n' is still accepted: the trailing
// newline is optional.
func splitLines(raw []byte) [][]byte {
	var lines [][]byte
	start := 0
	for i := 0; i < len(raw); i++ {
		if raw[i] != '\n' {
			continue
		}
		end := i
		if end > start && raw[end-1] == '\r' {
			end--
		}
		lines = append(lines, raw[start:end])
		start = i + 1
	}
	if start < len(raw) {
		lines = append(lines, raw[start:])
	}
	return lines
}

// trimASCIISpace trims leading/trailing ASCII ' ' only, identically for
// both input files. Tabs and other whitespace are left untouched.
func trimASCIISpace(b []byte) []byte {
	start, end := 0, len(b)
	for start < end && b[start] == ' ' {
		start++
	}
	for end > start && b[end-1] == ' ' {
		end--
	}
	return b[start:end]
}

func asciiUpperInto(a *arena.Arena, src []byte) ([]byte, error) {
	dst, err := a.Alloc(len(src))
	if err != nil {
		return nil, err
	}
	for i, c := range src {
		if c >= 'a' && c <= 'z' {
			c -= 'a' - 'A'
		}
		dst[i] = c
	}
	return dst, nil
}

func hasHyphen(b []byte) bool {
	for _, c := range b {
		if c == '-' {
			return true
		}
	}
	return false
}

func removeHyphens(b []byte) []byte {
	out := make([]byte, 0, len(b))
	for _, c := range b {
		if c != '-' {
			out = append(out, c)
		}
	}
	return out
}

// stableSortByLength sorts parts ascending by Length. The slice is already
// in OrigIndex order on entry, so a stable sort on Length alone ties-break
// by OrigIndex for free — equivalent to an unstable sort keyed on
// (Length, OrigIndex). Do not replace sort.SliceStable with sort.Slice
// here.
func stableSortByLength(parts []*Part) {
	sort.SliceStable(parts, func(i, j int) bool {
		return parts[i].Length() < parts[j].Length()
	})
}
