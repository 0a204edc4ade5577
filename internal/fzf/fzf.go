package fzf

import (
	"fmt"

	"github.com/ktr0731/go-fuzzyfinder"

	"github.com/esevim/stocktrack/internal/store"
	"github.com/esevim/stocktrack/utils"
)

// FuzzyFinder encapsulates fuzzy selection over inventory records.
type FuzzyFinder struct {
	Header  string
	records []store.Record
}

func NewFuzzyFinder(records []store.Record, header string) *FuzzyFinder {
	return &FuzzyFinder{records: records, Header: header}
}

// Run returns the selected record.
func (f *FuzzyFinder) Run() (store.Record, error) {
	return f.RunWithQuery("")
}

// RunWithQuery seeds the finder with an initial query.
func (f *FuzzyFinder) RunWithQuery(query string) (store.Record, error) {
	idx, err := f.fuzzySelectRecord(query)
	if err != nil {
		f.handleFuzzySelectError(err)
		return store.Record{}, err
	}

	if idx == -1 {
		return store.Record{}, fmt.Errorf("no record selected")
	}

	return f.records[idx], nil
}

// fuzzySelectRecord performs fuzzy selection on records based on query
func (f *FuzzyFinder) fuzzySelectRecord(query string) (int, error) {
	options := []fuzzyfinder.Option{
		fuzzyfinder.WithPreviewWindow(f.renderRecordPreview),
	}

	if query != "" {
		options = append(options, fuzzyfinder.WithQuery(query))
	}

	if f.Header != "" {
		options = append(options, fuzzyfinder.WithHeader(f.Header))
	}

	labels := make([]string, len(f.records))
	for i, r := range f.records {
		labels[i] = fmt.Sprintf("%s [%s] %s", r.SKU, string(r.Level), r.UpdatedBy)
	}

	return fuzzyfinder.Find(f.records, func(i int) string {
		return labels[i]
	}, options...)
}

func (f *FuzzyFinder) renderRecordPreview(i, w, h int) string {
	if i == -1 {
		return ""
	}

	return utils.RenderRecordPreview(f.records[i], w)
}

// handleFuzzySelectError prints appropriate messages for fuzzy select errors
func (f *FuzzyFinder) handleFuzzySelectError(err error) {
	if err == fuzzyfinder.ErrAbort {
		fmt.Println("No record selected")
	} else {
		fmt.Println("Error selecting record:", err)
	}
}
