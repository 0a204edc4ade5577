package store

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return NewStore(filepath.Join(t.TempDir(), "warehouse_inventory.csv"))
}

func TestEnsureInitializedCreatesHeaderOnly(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	if err := s.EnsureInitialized(); err != nil {
		t.Fatalf("failed to initialize store: %v", err)
	}

	data, err := os.ReadFile(s.Path())
	if err != nil {
		t.Fatalf("failed to read table: %v", err)
	}

	if got := strings.TrimSpace(string(data)); got != "SKU,Notes,Inventory Level,Updated By,Updated On" {
		t.Fatalf("unexpected table contents: %q", got)
	}

	records, err := s.LoadAll()
	if err != nil {
		t.Fatalf("failed to load table: %v", err)
	}
	if len(records) != 0 {
		t.Fatalf("expected empty table, got %d records", len(records))
	}
}

func TestEnsureInitializedIsIdempotent(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	if err := s.EnsureInitialized(); err != nil {
		t.Fatalf("failed to initialize store: %v", err)
	}

	if err := s.Add("ABC123", "received low stock shipment", "Emir Sevim", LevelLow); err != nil {
		t.Fatalf("failed to add record: %v", err)
	}

	if err := s.EnsureInitialized(); err != nil {
		t.Fatalf("second initialize failed: %v", err)
	}

	records, err := s.LoadAll()
	if err != nil {
		t.Fatalf("failed to load table: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected the existing record to survive, got %d records", len(records))
	}
}

func TestAddPersistsRecord(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	stamp := time.Date(2025, 3, 14, 9, 30, 0, 0, time.Local)
	s.now = func() time.Time { return stamp }

	if err := s.EnsureInitialized(); err != nil {
		t.Fatalf("failed to initialize store: %v", err)
	}

	if err := s.Add("ABC123", "received low stock shipment", "Emir Sevim", LevelLow); err != nil {
		t.Fatalf("failed to add record: %v", err)
	}

	records, err := s.LoadAll()
	if err != nil {
		t.Fatalf("failed to load table: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}

	r := records[0]
	if r.SKU != "ABC123" || r.Notes != "received low stock shipment" ||
		r.Level != LevelLow || r.UpdatedBy != "Emir Sevim" {
		t.Fatalf("unexpected record: %+v", r)
	}
	if !r.UpdatedOn.Equal(stamp) {
		t.Fatalf("expected timestamp %v, got %v", stamp, r.UpdatedOn)
	}
}

func TestAddRejectsDuplicateSKU(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	if err := s.EnsureInitialized(); err != nil {
		t.Fatalf("failed to initialize store: %v", err)
	}

	if err := s.Add("ABC123", "first", "Emir Sevim", LevelFull); err != nil {
		t.Fatalf("failed to add record: %v", err)
	}

	err := s.Add("ABC123", "second", "Enis Sevim", LevelOut)
	if !errors.Is(err, ErrDuplicateSKU) {
		t.Fatalf("expected duplicate sku error, got %v", err)
	}

	records, err := s.LoadAll()
	if err != nil {
		t.Fatalf("failed to load table: %v", err)
	}
	if len(records) != 1 || records[0].Notes != "first" {
		t.Fatalf("duplicate add must not change the table: %+v", records)
	}
}

func TestUpsertReplacesAndRefreshesTimestamp(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	first := time.Date(2025, 3, 14, 9, 30, 0, 0, time.Local)
	s.now = func() time.Time { return first }

	if err := s.EnsureInitialized(); err != nil {
		t.Fatalf("failed to initialize store: %v", err)
	}
	if err := s.Add("ABC123", "stocked", "Emir Sevim", LevelFull); err != nil {
		t.Fatalf("failed to add record: %v", err)
	}

	second := first.Add(42 * time.Minute)
	s.now = func() time.Time { return second }

	if err := s.Upsert("ABC123", "sold out", "Enis Sevim", LevelOut); err != nil {
		t.Fatalf("failed to upsert record: %v", err)
	}

	records, err := s.LoadAll()
	if err != nil {
		t.Fatalf("failed to load table: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("upsert must replace, not append: got %d records", len(records))
	}

	r := records[0]
	if r.Level != LevelOut || r.Notes != "sold out" || r.UpdatedBy != "Enis Sevim" {
		t.Fatalf("unexpected record after upsert: %+v", r)
	}
	if !r.UpdatedOn.After(first) {
		t.Fatalf("expected refreshed timestamp after %v, got %v", first, r.UpdatedOn)
	}
}

func TestUpsertAppendsUnknownSKU(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	if err := s.EnsureInitialized(); err != nil {
		t.Fatalf("failed to initialize store: %v", err)
	}
	if err := s.Add("A1", "widget", "Emir Sevim", LevelFull); err != nil {
		t.Fatalf("failed to add record: %v", err)
	}

	if err := s.Upsert("B2", "gadget", "Emir Sevim", LevelLow); err != nil {
		t.Fatalf("failed to upsert new record: %v", err)
	}

	records, err := s.LoadAll()
	if err != nil {
		t.Fatalf("failed to load table: %v", err)
	}
	if len(records) != 2 || records[1].SKU != "B2" {
		t.Fatalf("expected appended record, got %+v", records)
	}
}

func TestUpsertValidatesRequiredFields(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	if err := s.EnsureInitialized(); err != nil {
		t.Fatalf("failed to initialize store: %v", err)
	}

	cases := []struct {
		name      string
		sku       string
		notes     string
		updatedBy string
	}{
		{"empty sku", "", "notes", "Emir Sevim"},
		{"empty notes", "A1", "", "Emir Sevim"},
		{"empty editor", "A1", "notes", ""},
		{"whitespace sku", "   ", "notes", "Emir Sevim"},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			if err := s.Upsert(tc.sku, tc.notes, tc.updatedBy, LevelFull); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}

func TestReplaceAllKeepsGivenTimestamps(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	stamp := time.Date(2024, 12, 1, 8, 0, 0, 0, time.Local)

	records := []Record{
		{SKU: "A1", Notes: "kept", Level: LevelFull, UpdatedBy: "Emir Sevim", UpdatedOn: stamp},
		{SKU: "A2", Notes: "also kept", Level: LevelLow, UpdatedBy: "Enis Sevim", UpdatedOn: stamp},
	}

	if err := s.ReplaceAll(records); err != nil {
		t.Fatalf("failed to replace table: %v", err)
	}

	loaded, err := s.LoadAll()
	if err != nil {
		t.Fatalf("failed to load table: %v", err)
	}
	if len(loaded) != 2 {
		t.Fatalf("expected 2 records, got %d", len(loaded))
	}
	for _, r := range loaded {
		if !r.UpdatedOn.Equal(stamp) {
			t.Fatalf("replace must not refresh timestamps: got %v", r.UpdatedOn)
		}
	}
}

func TestReplaceAllRejectsDuplicateSKUs(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	if err := s.EnsureInitialized(); err != nil {
		t.Fatalf("failed to initialize store: %v", err)
	}

	err := s.ReplaceAll([]Record{
		{SKU: "A1", Notes: "x", Level: LevelFull, UpdatedBy: "Emir Sevim"},
		{SKU: "A1", Notes: "y", Level: LevelOut, UpdatedBy: "Emir Sevim"},
	})
	if !errors.Is(err, ErrDuplicateSKU) {
		t.Fatalf("expected duplicate sku error, got %v", err)
	}

	records, err := s.LoadAll()
	if err != nil {
		t.Fatalf("failed to load table: %v", err)
	}
	if len(records) != 0 {
		t.Fatalf("rejected replace must not write: got %+v", records)
	}
}

func TestLoadAllReportsStorageError(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "warehouse_inventory.csv")
	if err := os.WriteFile(path, []byte("SKU,Notes\nA1,too few columns\n"), 0o644); err != nil {
		t.Fatalf("failed to write malformed table: %v", err)
	}

	s := NewStore(path)
	_, err := s.LoadAll()
	if err == nil {
		t.Fatal("expected load to fail for malformed table")
	}

	var storageErr *StorageError
	if !errors.As(err, &storageErr) {
		t.Fatalf("expected StorageError, got %T: %v", err, err)
	}
	if storageErr.Path != path {
		t.Fatalf("expected error path %q, got %q", path, storageErr.Path)
	}
}

func TestLoadAllMissingFileReportsStorageError(t *testing.T) {
	t.Parallel()

	s := NewStore(filepath.Join(t.TempDir(), "missing.csv"))
	_, err := s.LoadAll()

	var storageErr *StorageError
	if !errors.As(err, &storageErr) {
		t.Fatalf("expected StorageError, got %T: %v", err, err)
	}
}

func TestParseTimestampLenientFallback(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name  string
		input string
		zero  bool
	}{
		{"canonical", "2025-03-14 09:30:00", false},
		{"date only", "2025-03-14", false},
		{"slashed", "03/14/2025 09:30", false},
		{"empty", "", true},
		{"garbage", "not a date", true},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			got := parseTimestamp(tc.input)
			if got.IsZero() != tc.zero {
				t.Fatalf("parseTimestamp(%q) = %v, zero = %v", tc.input, got, tc.zero)
			}
		})
	}
}

func TestParseLevel(t *testing.T) {
	t.Parallel()

	for _, input := range []string{"Full", "full", " LOW ", "out"} {
		if _, err := ParseLevel(input); err != nil {
			t.Fatalf("expected %q to parse: %v", input, err)
		}
	}

	if _, err := ParseLevel("Medium"); err == nil {
		t.Fatal("expected unknown level to be rejected")
	}
}
