// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package input loads paper entries (DOIs or PDF URLs) from one column of a
// delimited text table.
package input

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pdiddy/scienceparse/pkg/types"
)

const (
	// DefaultColumn is the header of the entry column.
	DefaultColumn = "pdf_link"
	// DefaultLimit is the number of leading rows considered.
	DefaultLimit = 5
)

// ErrMissingColumn is returned when the header row lacks the entry column.
var ErrMissingColumn = errors.New("column not found")

// missingValues are cell contents treated as absent, in addition to the
// empty string. They match the tokens common spreadsheet and dataframe
// exports write for missing data.
var missingValues = map[string]bool{
	"#N/A": true, "#N/A N/A": true, "#NA": true,
	"-1.#IND": true, "-1.#QNAN": true, "-NaN": true, "-nan": true,
	"1.#IND": true, "1.#QNAN": true, "<NA>": true,
	"N/A": true, "NA": true, "NULL": true, "NaN": true, "None": true,
	"n/a": true, "nan": true, "null": true,
}

// IsMissing reports whether a cell value counts as absent.
func IsMissing(v string) bool {
	return v == "" || missingValues[v]
}

// Load opens cfg.Path and returns its entries. See Read.
func Load(cfg types.InputConfig) ([]string, error) {
	f, err := os.Open(cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("opening input %s: %w", cfg.Path, err)
	}
	defer f.Close()

	delim := cfg.Delimiter
	if delim == 0 {
		delim = DelimiterFor(cfg.Path)
	}
	entries, err := Read(f, cfg.Column, cfg.Limit, delim)
	if err != nil {
		return nil, fmt.Errorf("reading input %s: %w", cfg.Path, err)
	}
	return entries, nil
}

// DelimiterFor picks the field separator from the file extension: tab for
// .tsv and .tab files, comma otherwise.
func DelimiterFor(path string) rune {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".tsv", ".tab":
		return '\t'
	default:
		return ','
	}
}

// Read parses a delimited table with a header row. It considers only the
// first limit data rows (all rows when limit <= 0), then drops rows whose
// entry cell is missing, so fewer than limit entries may be returned.
// Values are returned verbatim, in row order.
func Read(r io.Reader, column string, limit int, delim rune) ([]string, error) {
	if column == "" {
		column = DefaultColumn
	}
	if delim == 0 {
		delim = ','
	}

	cr := csv.NewReader(r)
	cr.Comma = delim
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: %q (file is empty)", ErrMissingColumn, column)
	}
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}

	idx := -1
	for i, name := range header {
		if i == 0 {
			name = strings.TrimPrefix(name, "\ufeff")
		}
		if name == column {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, fmt.Errorf("%w: %q", ErrMissingColumn, column)
	}

	var entries []string
	for row := 0; limit <= 0 || row < limit; row++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading row %d: %w", row+1, err)
		}
		if idx >= len(rec) || IsMissing(rec[idx]) {
			continue
		}
		entries = append(entries, rec[idx])
	}
	return entries, nil
}
