package builder

import (
	"strings"
	"testing"

	"github.com/coregx/sufmatch/internal/concurrency"
	"github.com/coregx/sufmatch/store"
)

func buildStore(t *testing.T, parts, masterParts string) *store.Store {
	t.Helper()
	s, err := store.Build(strings.NewReader(parts), strings.NewReader(masterParts))
	if err != nil {
		t.Fatalf("store.Build: %v", err)
	}
	return s
}

func TestBuildUniqueFirstMasterWins(t *testing.T) {
	s := buildStore(t, "ABC\n", "AXYZ\nBXYZ\n")
	defer s.Close()

	tables, err := BuildUnique(AsRecords(s.MasterPartsAsc()), concurrency.NewPool(4))
	if err != nil {
		t.Fatalf("BuildUnique: %v", err)
	}

	tbl := tables[3]
	if tbl == nil {
		t.Fatal("expected a length-3 table")
	}
	v, ok := tbl.Lookup([]byte("XYZ"))
	if !ok || v != 0 {
		t.Errorf("Lookup(XYZ) = (%d, %v), want (0, true): first master to claim a suffix wins", v, ok)
	}
}

func TestBuildListKeepsAllParts(t *testing.T) {
	s := buildStore(t, "AXYZ\nBXYZ\n", "ABCDEF\n")
	defer s.Close()

	tables, err := BuildList(AsRecords(s.PartsAsc()), concurrency.NewPool(4))
	if err != nil {
		t.Fatalf("BuildList: %v", err)
	}

	tbl := tables[3]
	if tbl == nil {
		t.Fatal("expected a length-3 table")
	}
	head, ok := tbl.Lookup([]byte("XYZ"))
	if !ok {
		t.Fatal("expected a hit for suffix XYZ")
	}

	var got []int
	for n := head; n != nil; n = n.Next() {
		got = append(got, n.Value())
	}
	if len(got) != 2 {
		t.Fatalf("expected both AXYZ and BXYZ's shared suffix node chained, got %d nodes", len(got))
	}
}

func TestStartIndexBackwardFill(t *testing.T) {
	s := buildStore(t, "AB\n", "ABCDE\nABCDEFGHIJ\n")
	defer s.Close()

	records := AsRecords(s.MasterPartsAsc())
	start := startIndex(records)

	if start[5] != 0 {
		t.Errorf("start[5] = %d, want 0 (ABCDE is the first record reaching length 5)", start[5])
	}
	if start[9] != 1 {
		t.Errorf("start[9] = %d, want 1: no length-9 record, inherits the length-10 record's index", start[9])
	}
	if start[store.MaxLen-1] != absent {
		t.Errorf("start[MaxLen-1] = %d, want %d: no record reaches that length", start[store.MaxLen-1], absent)
	}
}

func TestBuildUniqueCoversLengthsBelowLongestRecord(t *testing.T) {
	// Only one master, length 5 ("ABCAT"). Suffix tables at lengths 3 and
	// 4 must still be built from its trailing cuts, even though no
	// master's own length is 3 or 4.
	s := buildStore(t, "CAT\n", "ABCAT\n")
	defer s.Close()

	tables, err := BuildUnique(AsRecords(s.MasterPartsAsc()), concurrency.NewPool(4))
	if err != nil {
		t.Fatalf("BuildUnique: %v", err)
	}

	tbl3 := tables[3]
	if tbl3 == nil {
		t.Fatal("expected a length-3 table built from ABCAT's trailing cut, got none")
	}
	if _, ok := tbl3.Lookup([]byte("CAT")); !ok {
		t.Error("expected CAT to be indexed at length 3")
	}

	tbl4 := tables[4]
	if tbl4 == nil {
		t.Fatal("expected a length-4 table built from ABCAT's trailing cut, got none")
	}
	if _, ok := tbl4.Lookup([]byte("BCAT")); !ok {
		t.Error("expected BCAT to be indexed at length 4")
	}
}

func TestBuildNoHyphensVariantTable(t *testing.T) {
	s := buildStore(t, "ABC\n", "AB-CDE-FGH\n")
	defer s.Close()

	tables, err := BuildUnique(s.MasterPartsNoHyphensAsc(), concurrency.NewPool(4))
	if err != nil {
		t.Fatalf("BuildUnique: %v", err)
	}

	tbl := tables[len("ABCDEFGH")]
	if tbl == nil {
		t.Fatal("expected a table sized to the hyphen-stripped length")
	}
	if _, ok := tbl.Lookup([]byte("ABCDEFGH")); !ok {
		t.Error("expected the hyphen-stripped suffix to be indexed")
	}
}
