package storage

import (
	"path/filepath"
	"testing"
	"time"
)

func TestBoltLedgerRecordsAndForgets(t *testing.T) {
	ledger, err := openBolt(filepath.Join(t.TempDir(), "nested", "pets.db"))
	if err != nil {
		t.Fatalf("openBolt: %v", err)
	}
	defer ledger.Close()

	clock := time.Unix(1_700_000_000, 0)
	ledger.now = func() time.Time { return clock }

	if err := ledger.Record("p2"); err != nil {
		t.Fatalf("Record p2: %v", err)
	}
	clock = clock.Add(-time.Hour)
	if err := ledger.Record("p1"); err != nil {
		t.Fatalf("Record p1: %v", err)
	}
	// A second record keeps the original timestamp.
	clock = clock.Add(24 * time.Hour)
	if err := ledger.Record("p1"); err != nil {
		t.Fatalf("Record p1 again: %v", err)
	}

	entries, err := ledger.Entries()
	if err != nil {
		t.Fatalf("Entries: %v", err)
	}
	if len(entries) != 2 || entries[0].ID != "p1" || entries[1].ID != "p2" {
		t.Fatalf("unexpected entries %+v", entries)
	}

	if err := ledger.Forget("p1"); err != nil {
		t.Fatalf("Forget: %v", err)
	}
	if err := ledger.Forget("unknown"); err != nil {
		t.Fatalf("Forget unknown: %v", err)
	}
	entries, err = ledger.Entries()
	if err != nil {
		t.Fatalf("Entries: %v", err)
	}
	if len(entries) != 1 || entries[0].ID != "p2" {
		t.Fatalf("expected only p2 to remain, got %+v", entries)
	}
}

func TestBoltLedgerRejectsEmptyID(t *testing.T) {
	ledger, err := openBolt(filepath.Join(t.TempDir(), "pets.db"))
	if err != nil {
		t.Fatalf("openBolt: %v", err)
	}
	defer ledger.Close()

	if err := ledger.Record("  "); err == nil {
		t.Fatal("expected error for empty id")
	}
}

func TestNewLedgerSupportsNoop(t *testing.T) {
	ledger, err := NewLedger("none", "")
	if err != nil {
		t.Fatalf("NewLedger none: %v", err)
	}
	if err := ledger.Record("x"); err != nil {
		t.Fatalf("noop ledger Record: %v", err)
	}
	if _, err := NewLedger("bbolt", ""); err == nil {
		t.Fatal("expected error for bbolt without path")
	}
	if _, err := NewLedger("redis", "x"); err == nil {
		t.Fatal("expected error for unsupported type")
	}
}
