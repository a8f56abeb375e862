package suffixindex

import "testing"

func TestNextPowerOfTwo(t *testing.T) {
	cases := []struct {
		in, want int
	}{
		{0, 1},
		{1, 1},
		{2, 2},
		{3, 4},
		{4, 4},
		{5, 8},
		{1000, 1024},
	}
	for _, c := range cases {
		if got := nextPowerOfTwo(c.in); got != c.want {
			t.Errorf("nextPowerOfTwo(%d) = %d, want %d", c.in, got, c.want)
		}
	}
}

func TestUniqueTableFirstWins(t *testing.T) {
	tbl := NewUniqueTable(4)

	if !tbl.InsertIfAbsent([]byte("ABC"), 1) {
		t.Fatal("first insert should report true")
	}
	if tbl.InsertIfAbsent([]byte("ABC"), 2) {
		t.Fatal("second insert of the same key should report false")
	}

	v, ok := tbl.Lookup([]byte("ABC"))
	if !ok || v != 1 {
		t.Errorf("Lookup = (%d, %v), want (1, true): first insertion must win", v, ok)
	}
}

func TestUniqueTableMiss(t *testing.T) {
	tbl := NewUniqueTable(4)
	tbl.InsertIfAbsent([]byte("ABC"), 1)

	if _, ok := tbl.Lookup([]byte("XYZ")); ok {
		t.Error("expected a miss for a key never inserted")
	}
}

func TestUniqueTableCaseSensitive(t *testing.T) {
	tbl := NewUniqueTable(4)
	tbl.InsertIfAbsent([]byte("ABC"), 1)

	if _, ok := tbl.Lookup([]byte("abc")); ok {
		t.Error("lookup must be case-sensitive on the raw key bytes")
	}
}

func TestUniqueTableCapacityPanics(t *testing.T) {
	tbl := NewUniqueTable(1)
	tbl.InsertIfAbsent([]byte("AAA"), 1)

	defer func() {
		if recover() == nil {
			t.Error("expected a panic once the entry pool is exhausted")
		}
	}()
	tbl.InsertIfAbsent([]byte("BBB"), 2)
}

func TestListTableMostRecentFirst(t *testing.T) {
	tbl := NewListTable(8)
	tbl.Prepend([]byte("XYZ"), 10)
	tbl.Prepend([]byte("XYZ"), 20)
	tbl.Prepend([]byte("XYZ"), 30)

	head, ok := tbl.Lookup([]byte("XYZ"))
	if !ok {
		t.Fatal("expected a hit")
	}

	var got []int
	for n := head; n != nil; n = n.Next() {
		got = append(got, n.Value())
	}
	want := []int{30, 20, 10}
	if len(got) != len(want) {
		t.Fatalf("got %d nodes, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("got[%d] = %d, want %d (most-recent-first order)", i, got[i], want[i])
		}
	}
}

func TestListTableDistinctKeys(t *testing.T) {
	tbl := NewListTable(8)
	tbl.Prepend([]byte("AAA"), 1)
	tbl.Prepend([]byte("BBB"), 2)

	if head, ok := tbl.Lookup([]byte("AAA")); !ok || head.Value() != 1 {
		t.Error("AAA's list should contain only 1")
	}
	if head, ok := tbl.Lookup([]byte("BBB")); !ok || head.Value() != 2 {
		t.Error("BBB's list should contain only 2")
	}
}

func TestListTableCapacityPanics(t *testing.T) {
	tbl := NewListTable(1)
	tbl.Prepend([]byte("AAA"), 1)

	defer func() {
		if recover() == nil {
			t.Error("expected a panic once the node pool is exhausted")
		}
	}()
	tbl.Prepend([]byte("AAA"), 2)
}
