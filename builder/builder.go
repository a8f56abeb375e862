// Package builder constructs the per-length suffix index families from a
// length-sorted record sequence, one table per distinct length, in
// parallel.
package builder

import (
	"sync"

	"github.com/coregx/sufmatch/internal/concurrency"
	"github.com/coregx/sufmatch/internal/lengths"
	"github.com/coregx/sufmatch/store"
	"github.com/coregx/sufmatch/suffixindex"
)

// absent marks a length with no first occurrence yet, before backward
// fill.
const absent = -1

// UniqueTables indexes a suffix table by suffix length, for record kinds
// where the first insertion per suffix wins (master codes, with or
// without hyphens).
type UniqueTables map[int]*suffixindex.UniqueTable

// ListTables indexes a suffix table by suffix length, for record kinds
// where every insertion is kept (part codes — matching needs every part
// sharing a master's suffix reachable, not just one).
type ListTables map[int]*suffixindex.ListTable

// startIndex computes, for every length L in [0, store.MaxLen), the
// index of the first record in records (sorted ascending by length) with
// actual length >= L. Lengths with no record at all inherit the next
// higher length's start, computed by a single backward pass.
func startIndex(records []store.Record) []int {
	start := make([]int, store.MaxLen)
	for i := range start {
		start[i] = absent
	}
	for i, r := range records {
		l := r.Length()
		if l >= 0 && l < store.MaxLen && start[l] == absent {
			start[l] = i
		}
	}

	tmp := start[store.MaxLen-1]
	for l := store.MaxLen - 1; l >= 0; l-- {
		if start[l] == absent {
			start[l] = tmp
		} else {
			tmp = start[l]
		}
	}
	return start
}

// validLengths collects every length in [MinLen, MaxLen) that startIndex
// resolved to something other than absent — i.e. every length some record
// reaches either as its own length or as a trailing-suffix cut of a longer
// record, per the backward fill. A length is valid even when no record's
// own Length() equals it: start[L] still points at the first record whose
// suffix of length L needs indexing.
func validLengths(start []int) *lengths.Set {
	set := lengths.NewSet(store.MaxLen)
	for l := store.MinLen; l < store.MaxLen; l++ {
		if start[l] != absent {
			set.Insert(l)
		}
	}
	return set
}

// BuildUnique builds one UniqueTable per valid length in records, which
// must already be sorted ascending by length. Workers run on pool,
// bounded to its configured degree of parallelism; each worker writes
// only its own table, so no synchronization is needed across lengths.
func BuildUnique(records []store.Record, pool *concurrency.Pool) (UniqueTables, error) {
	start := startIndex(records)
	present := validLengths(start)
	tables := make(UniqueTables, present.Len())

	var mu sync.Mutex
	for _, l := range present.Values() {
		length := l
		startAt := start[length]
		pool.Go(func() error {
			table := suffixindex.NewUniqueTable(len(records) - startAt)
			for i := startAt; i < len(records); i++ {
				r := records[i]
				suffix := r.Canonical()[r.Length()-length:]
				table.InsertIfAbsent(suffix, r.OrigIndex())
			}
			mu.Lock()
			tables[length] = table
			mu.Unlock()
			return nil
		})
	}
	if err := pool.Wait(); err != nil {
		return nil, err
	}
	return tables, nil
}

// BuildList builds one ListTable per valid length in records, which must
// already be sorted ascending by length. Every record sharing a suffix is
// kept, newest-insertion-first.
func BuildList(records []store.Record, pool *concurrency.Pool) (ListTables, error) {
	start := startIndex(records)
	present := validLengths(start)
	tables := make(ListTables, present.Len())

	var mu sync.Mutex
	for _, l := range present.Values() {
		length := l
		startAt := start[length]
		pool.Go(func() error {
			table := suffixindex.NewListTable(len(records) - startAt)
			for i := startAt; i < len(records); i++ {
				r := records[i]
				suffix := r.Canonical()[r.Length()-length:]
				table.Prepend(suffix, r.OrigIndex())
			}
			mu.Lock()
			tables[length] = table
			mu.Unlock()
			return nil
		})
	}
	if err := pool.Wait(); err != nil {
		return nil, err
	}
	return tables, nil
}

// Tables bundles the three suffix-table families the matcher needs, each
// keyed by suffix length: master codes, hyphen-stripped master codes, and
// part codes (whose lists keep every part sharing a suffix).
type Tables struct {
	MasterSuffixes    UniqueTables
	NoHyphensSuffixes UniqueTables
	PartSuffixes      ListTables
}

// BuildAll runs the three index-construction passes over s: master
// codes, their no-hyphens variants, and part codes. The three passes are
// independent of one another and could run concurrently, but each one
// internally fans out across suffix lengths on pool, so running them
// sequentially keeps pool's concurrency budget dedicated to one pass at
// a time.
func BuildAll(s *store.Store, pool *concurrency.Pool) (*Tables, error) {
	mp, err := BuildUnique(AsRecords(s.MasterPartsAsc()), pool)
	if err != nil {
		return nil, err
	}
	mpNh, err := BuildUnique(s.MasterPartsNoHyphensAsc(), pool)
	if err != nil {
		return nil, err
	}
	parts, err := BuildList(AsRecords(s.PartsAsc()), pool)
	if err != nil {
		return nil, err
	}
	return &Tables{MasterSuffixes: mp, NoHyphensSuffixes: mpNh, PartSuffixes: parts}, nil
}

// AsRecords adapts a concrete slice of records to []store.Record.
func AsRecords[T store.Record](in []T) []store.Record {
	out := make([]store.Record, len(in))
	for i, r := range in {
		out[i] = r
	}
	return out
}
