package audit

import "testing"

func TestRingRecordsEntries(t *testing.T) {
	r := NewRing(10)
	r.Record("oread", 3)
	r.Record("owriteback", 3)

	entries := r.Entries()
	if len(entries) != 2 {
		t.Fatalf("len(Entries()) = %d, want 2", len(entries))
	}
	if entries[0].Op != "oread" || entries[0].Node != 3 {
		t.Errorf("entries[0] = %+v, want op=oread node=3", entries[0])
	}
	if entries[0].ID == entries[1].ID {
		t.Errorf("two records shared the same id")
	}
}

func TestRingDropsOldestWhenFull(t *testing.T) {
	r := NewRing(2)
	r.Record("oread", 0)
	r.Record("oread", 1)
	r.Record("oread", 2)

	entries := r.Entries()
	if len(entries) != 2 {
		t.Fatalf("len(Entries()) = %d, want 2", len(entries))
	}
	if entries[0].Node != 1 || entries[1].Node != 2 {
		t.Errorf("entries = %+v, want nodes [1, 2] (oldest dropped)", entries)
	}
}
