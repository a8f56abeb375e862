// Package matcher builds the part-to-master dictionary and answers
// per-part lookups against it.
package matcher

import (
	"github.com/cespare/xxhash/v2"

	"github.com/coregx/sufmatch/builder"
	"github.com/coregx/sufmatch/store"
	"github.com/coregx/sufmatch/suffixindex"
)

// matchRule identifies which of the three priority rules produced a
// part's match, for Stats reporting. The zero value means no rule has
// matched yet.
type matchRule uint8

const (
	ruleNone matchRule = iota
	ruleHyphenatedSuffix
	ruleNoHyphensSuffix
	ruleMasterIsSuffix
)

// Stats summarizes how many parts matched through each rule.
type Stats struct {
	// HyphenatedSuffixMatches counts parts whose code equals a master's
	// canonical code (hyphens kept, if any) trailing suffix of the same
	// length.
	HyphenatedSuffixMatches int
	// NoHyphensSuffixMatches counts parts whose code equals a
	// hyphen-stripped master variant's trailing suffix of the same
	// length.
	NoHyphensSuffixMatches int
	// MasterIsSuffixMatches counts parts for which some master's full
	// code is itself the part's trailing suffix.
	MasterIsSuffixMatches int
	// Unmatched counts parts that never resolved to a master, including
	// every part below MinLen.
	Unmatched int
}

// Matcher holds the built dictionary from part code to the matched
// master's OrigIndex (resolved to its original-case bytes by Query), plus
// the bookkeeping needed for diagnostics.
type Matcher struct {
	dictionary *suffixindex.UniqueTable
	masters    []*store.MasterPart
	parts      []*store.Part
	ruleByPart []matchRule
	stats      Stats
}

// New runs the two dictionary-construction phases over s using the
// suffix tables in tables (built by builder.BuildAll) and returns a
// Matcher ready for Query.
func New(s *store.Store, tables *builder.Tables) *Matcher {
	parts := s.PartsByOrigIndex()
	masters := s.MasterPartsByOrigIndex()

	m := &Matcher{
		dictionary: suffixindex.NewUniqueTable(len(parts)),
		masters:    masters,
		parts:      parts,
		ruleByPart: make([]matchRule, len(parts)),
	}

	m.matchPartsAgainstMasters(tables.MasterSuffixes, tables.NoHyphensSuffixes)
	m.matchMastersAgainstParts(s.MasterPartsAsc(), tables.PartSuffixes)
	m.tallyStats()

	return m
}

// matchPartsAgainstMasters is Phase A: for every part, in original file
// order, try the master suffix table (hyphens kept) for its length, then the
// no-hyphens variant. The first hit wins and is recorded immediately,
// before any other part is considered.
func (m *Matcher) matchPartsAgainstMasters(mpTables, mpNhTables builder.UniqueTables) {
	for _, part := range m.parts {
		length := part.Length()

		if tbl := mpTables[length]; tbl != nil {
			if masterOrig, ok := tbl.Lookup(part.Canonical()); ok {
				m.dictionary.InsertIfAbsent(part.Canonical(), masterOrig)
				m.ruleByPart[part.OrigIndex()] = ruleHyphenatedSuffix
				continue
			}
		}
		if tbl := mpNhTables[length]; tbl != nil {
			if masterOrig, ok := tbl.Lookup(part.Canonical()); ok {
				m.dictionary.InsertIfAbsent(part.Canonical(), masterOrig)
				m.ruleByPart[part.OrigIndex()] = ruleNoHyphensSuffix
			}
		}
	}
}

// matchMastersAgainstParts is Phase B: walk masterParts from last to
// first (longest first) so that, under insert-if-absent semantics, the
// longest master to claim a given part code is the one that survives.
// Among equal-length masters, which can only both match when their
// canonical codes are identical, the one later in file order is visited
// first and survives. For each
// master, every part whose suffix of the master's own length equals the
// master's code is a candidate; InsertIfAbsent is a no-op for any part
// code a rule-1/2 match (or an earlier master in this same pass) already
// claimed.
func (m *Matcher) matchMastersAgainstParts(mastersAsc []*store.MasterPart, partTables builder.ListTables) {
	for i := len(mastersAsc) - 1; i >= 0; i-- {
		mp := mastersAsc[i]
		tbl := partTables[mp.Length()]
		if tbl == nil {
			continue
		}
		node, ok := tbl.Lookup(mp.Canonical())
		if !ok {
			continue
		}
		for n := node; n != nil; n = n.Next() {
			part := m.parts[n.Value()]
			m.dictionary.InsertIfAbsent(part.Canonical(), mp.OrigIndex())
			// A part with no Phase A rule is now resolved by this pass, even
			// when a duplicate row with the same code claimed the entry first.
			if m.ruleByPart[part.OrigIndex()] == ruleNone {
				m.ruleByPart[part.OrigIndex()] = ruleMasterIsSuffix
			}
		}
	}
}

func (m *Matcher) tallyStats() {
	for i, part := range m.parts {
		if part.Length() < store.MinLen {
			m.stats.Unmatched++
			continue
		}
		switch m.ruleByPart[i] {
		case ruleHyphenatedSuffix:
			m.stats.HyphenatedSuffixMatches++
		case ruleNoHyphensSuffix:
			m.stats.NoHyphensSuffixMatches++
		case ruleMasterIsSuffix:
			m.stats.MasterIsSuffixMatches++
		default:
			m.stats.Unmatched++
		}
	}
}

// Query looks up part's match. part's code and length are assumed
// already trimmed and uppercased (store.Build does this at ingest). A
// part shorter than store.MinLen never matches.
func (m *Matcher) Query(part *store.Part) (original []byte, ok bool) {
	if part.Length() < store.MinLen {
		return nil, false
	}
	origIndex, ok := m.dictionary.Lookup(part.Canonical())
	if !ok {
		return nil, false
	}
	return m.masters[origIndex].Original(), true
}

// Stats returns the match-rule breakdown computed during New.
func (m *Matcher) Stats() Stats { return m.stats }

// Fingerprint hashes every part's code and match outcome, in original
// file order, into a single deterministic value: a cheap way to confirm
// two runs over the same inputs produced identical results.
func (m *Matcher) Fingerprint() uint64 {
	digest := xxhash.New()
	for _, part := range m.parts {
		digest.Write(part.Canonical())
		digest.Write([]byte{';'})
		if original, ok := m.Query(part); ok {
			digest.Write(original)
		}
		digest.Write([]byte{'\n'})
	}
	return digest.Sum64()
}
