package store

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/araddon/dateparse"

	"github.com/esevim/stocktrack/internal/constants"
)

// ErrDuplicateSKU is returned by write paths when a SKU would collide with
// an existing record.
var ErrDuplicateSKU = errors.New("sku already exists")

// StorageError wraps failures reading or parsing the inventory file. Callers
// treat it as fatal for the current render rather than showing an empty table.
type StorageError struct {
	Path string
	Err  error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("inventory file %s: %v", e.Path, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

var header = []string{"SKU", "Notes", "Inventory Level", "Updated By", "Updated On"}

// Store owns the on-disk inventory table. Every operation reads the file
// fresh and writes it whole; there is no cache and no locking. That is the
// accepted single-user model.
type Store struct {
	path string

	// now is swappable in tests.
	now func() time.Time
}

func NewStore(path string) *Store {
	if strings.TrimSpace(path) == "" {
		path = constants.DataFile
	}
	return &Store{path: path, now: time.Now}
}

func (s *Store) Path() string {
	return s.path
}

// EnsureInitialized creates the table with the five-column header and no
// rows if it does not exist yet. Idempotent.
func (s *Store) EnsureInitialized() error {
	if _, err := os.Stat(s.path); err == nil {
		return nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return &StorageError{Path: s.path, Err: err}
	}

	return s.write(nil)
}

// LoadAll reads the entire table. The timestamp column is parsed with the
// canonical layout first, then leniently, since grid edits persist whatever
// string the user typed.
func (s *Store) LoadAll() ([]Record, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, &StorageError{Path: s.path, Err: err}
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = len(header)
	rows, err := r.ReadAll()
	if err != nil {
		return nil, &StorageError{Path: s.path, Err: err}
	}

	if len(rows) == 0 {
		return nil, &StorageError{Path: s.path, Err: errors.New("missing header row")}
	}

	records := make([]Record, 0, len(rows)-1)
	for _, row := range rows[1:] {
		records = append(records, Record{
			SKU:       row[0],
			Notes:     row[1],
			Level:     Level(row[2]),
			UpdatedBy: row[3],
			UpdatedOn: parseTimestamp(row[4]),
		})
	}

	return records, nil
}

// Upsert replaces the notes, level, and editor of the record matching sku
// and stamps it with the current time, or appends a new record if the SKU is
// not present. The whole file is rewritten.
func (s *Store) Upsert(sku, notes, updatedBy string, level Level) error {
	if err := validateFields(sku, notes, updatedBy); err != nil {
		return err
	}

	records, err := s.LoadAll()
	if err != nil {
		return err
	}

	updated := Record{
		SKU:       sku,
		Notes:     notes,
		Level:     level,
		UpdatedBy: updatedBy,
		UpdatedOn: s.now(),
	}

	found := false
	for i := range records {
		if records[i].SKU == sku {
			records[i] = updated
			found = true
			break
		}
	}
	if !found {
		records = append(records, updated)
	}

	return s.write(records)
}

// Add is the insert-only path. A SKU that already exists is rejected so the
// duplicate-key invariant holds no matter which surface performs the add.
func (s *Store) Add(sku, notes, updatedBy string, level Level) error {
	if err := validateFields(sku, notes, updatedBy); err != nil {
		return err
	}

	records, err := s.LoadAll()
	if err != nil {
		return err
	}

	for _, r := range records {
		if r.SKU == sku {
			return fmt.Errorf("%w: %q", ErrDuplicateSKU, sku)
		}
	}

	return s.Upsert(sku, notes, updatedBy, level)
}

// ReplaceAll overwrites the table with the given records, edits, insertions,
// and deletions already applied by the caller. Timestamps are persisted as
// given, not refreshed. Duplicate SKUs within the set are rejected.
func (s *Store) ReplaceAll(records []Record) error {
	seen := make(map[string]struct{}, len(records))
	for _, r := range records {
		if _, dup := seen[r.SKU]; dup {
			return fmt.Errorf("%w: %q", ErrDuplicateSKU, r.SKU)
		}
		seen[r.SKU] = struct{}{}
	}

	return s.write(records)
}

func (s *Store) write(records []Record) error {
	f, err := os.Create(s.path)
	if err != nil {
		return &StorageError{Path: s.path, Err: err}
	}

	w := csv.NewWriter(f)
	rows := make([][]string, 0, len(records)+1)
	rows = append(rows, header)
	for _, r := range records {
		ts := ""
		if !r.UpdatedOn.IsZero() {
			ts = r.UpdatedOn.Format(constants.TimestampLayout)
		}
		rows = append(rows, []string{r.SKU, r.Notes, string(r.Level), r.UpdatedBy, ts})
	}

	if err := w.WriteAll(rows); err != nil {
		f.Close()
		return &StorageError{Path: s.path, Err: err}
	}

	if err := f.Close(); err != nil {
		return &StorageError{Path: s.path, Err: err}
	}

	return nil
}

func validateFields(sku, notes, updatedBy string) error {
	if strings.TrimSpace(sku) == "" {
		return errors.New("sku is required")
	}
	if strings.TrimSpace(notes) == "" {
		return errors.New("notes are required")
	}
	if strings.TrimSpace(updatedBy) == "" {
		return errors.New("updated by is required")
	}
	return nil
}

func parseTimestamp(s string) time.Time {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return time.Time{}
	}

	if t, err := time.ParseInLocation(constants.TimestampLayout, trimmed, time.Local); err == nil {
		return t
	}

	if t, err := dateparse.ParseLocal(trimmed); err == nil {
		return t
	}

	return time.Time{}
}
