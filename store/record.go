package store

// Record is the view the suffix index and the matcher operate on: a
// canonical byte string, its length, and the position it held in its
// source file. Part, MasterPart, and the no-hyphens view of a MasterPart
// all implement it, so the builder and matcher walk one interface instead
// of three parallel copies of the same algorithm.
type Record interface {
	Canonical() []byte
	Length() int
	OrigIndex() int
}

// Part is one row of the parts input: the query side of a match.
type Part struct {
	original  []byte
	canonical []byte
	origIndex int
}

// Original returns the trimmed line exactly as it appeared in the input,
// original case preserved.
func (p *Part) Original() []byte { return p.original }

// Canonical returns the uppercased form of Original.
func (p *Part) Canonical() []byte { return p.canonical }

// Length returns the shared length of Original and Canonical.
func (p *Part) Length() int { return len(p.canonical) }

// OrigIndex returns the part's 0-based position among accepted parts
// lines.
func (p *Part) OrigIndex() int { return p.origIndex }

// MasterPart is one row of the masterParts input: a match target.
// Rows with trimmed length below MIN_LEN never become a MasterPart; see
// Store.Build.
type MasterPart struct {
	Part
	canonicalNoHyphens []byte // nil when Canonical has no '-', or the hyphen-stripped form is itself too short to index
}

// CanonicalNoHyphens returns the hyphen-stripped canonical form, or nil if
// Canonical contains no '-' or the stripped form fell below MIN_LEN.
func (m *MasterPart) CanonicalNoHyphens() []byte { return m.canonicalNoHyphens }

// HasNoHyphens reports whether this MasterPart contributes a row to
// mpNhAsc.
func (m *MasterPart) HasNoHyphens() bool { return m.canonicalNoHyphens != nil }

// noHyphensRecord adapts a MasterPart's hyphen-stripped form to Record. It
// shares the master's OrigIndex by design: when a match is found through
// the no-hyphens table, the master reported back is the original
// MasterPart, not this stripped view.
type noHyphensRecord struct {
	master *MasterPart
}

func (v noHyphensRecord) Canonical() []byte { return v.master.canonicalNoHyphens }
func (v noHyphensRecord) Length() int       { return len(v.master.canonicalNoHyphens) }
func (v noHyphensRecord) OrigIndex() int    { return v.master.origIndex }
