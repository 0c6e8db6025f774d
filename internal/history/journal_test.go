package history

import (
	"context"
	"path/filepath"
	"testing"
)

func openTestJournal(t *testing.T) *Journal {
	t.Helper()
	j, err := Open(filepath.Join(t.TempDir(), "journal.db"))
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	t.Cleanup(func() { j.Close() })
	return j
}

func TestRecordAndList(t *testing.T) {
	ctx := context.Background()
	j := openTestJournal(t)

	entries := []Entry{
		{OrderID: "o1", Market: "0xbtc", Kind: KindSpot, Action: ActionCreate, Trader: "0xme", Size: "1", Price: "65000"},
		{OrderID: "o1", Market: "0xbtc", Kind: KindSpot, Action: ActionCancel, Trader: "0xme"},
		{OrderID: "o2", Market: "0xeth", Kind: KindPerp, Action: ActionCreate, Trader: "0xother", Size: "2", Price: "3000"},
	}
	for _, e := range entries {
		if err := j.Record(ctx, e); err != nil {
			t.Fatalf("Record(%+v) error: %v", e, err)
		}
	}

	got, err := j.List(ctx, "0xme", 10)
	if err != nil {
		t.Fatalf("List() error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d entries for 0xme, want 2", len(got))
	}
	// Newest first.
	if got[0].Action != ActionCancel || got[1].Action != ActionCreate {
		t.Errorf("entries out of order: %s, %s", got[0].Action, got[1].Action)
	}
	if got[0].CreatedAt.IsZero() {
		t.Error("CreatedAt must default to the write time")
	}
}

func TestListUnknownTrader(t *testing.T) {
	j := openTestJournal(t)

	got, err := j.List(context.Background(), "0xnobody", 10)
	if err != nil {
		t.Fatalf("List() error: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("got %d entries, want none", len(got))
	}
}

func TestListLimit(t *testing.T) {
	ctx := context.Background()
	j := openTestJournal(t)

	for i := 0; i < 5; i++ {
		if err := j.Record(ctx, Entry{OrderID: "o", Kind: KindSpot, Action: ActionCreate, Trader: "0xme"}); err != nil {
			t.Fatalf("Record() error: %v", err)
		}
	}

	got, err := j.List(ctx, "0xme", 3)
	if err != nil {
		t.Fatalf("List() error: %v", err)
	}
	if len(got) != 3 {
		t.Errorf("got %d entries, want 3", len(got))
	}
}
