// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"fmt"
	"os"

	"github.com/tsawler/tabula"
	"github.com/tsawler/tabula/reader"

	"github.com/pdiddy/scienceparse/pkg/types"
)

// TabulaExtractor reads PDFs with github.com/tsawler/tabula. The library
// opens files by path, so the document is spooled to a temporary file.
type TabulaExtractor struct {
	// TempDir is where the spooled PDF is written. Empty uses os.TempDir.
	TempDir string
}

// Name returns the backend identifier.
func (e *TabulaExtractor) Name() string { return string(types.BackendTabula) }

// ExtractPages parses data page by page and returns the non-empty texts.
func (e *TabulaExtractor) ExtractPages(data []byte) (pages types.PageText, err error) {
	defer recoverInto(&err, e.Name())

	tmp, err := os.CreateTemp(e.TempDir, ".scienceparse-*.pdf")
	if err != nil {
		return nil, fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	_, writeErr := tmp.Write(data)
	closeErr := tmp.Close()
	if writeErr != nil {
		return nil, fmt.Errorf("writing temp file: %w", writeErr)
	}
	if closeErr != nil {
		return nil, fmt.Errorf("closing temp file: %w", closeErr)
	}

	r, err := reader.Open(tmpPath)
	if err != nil {
		return nil, fmt.Errorf("opening PDF: %w", err)
	}
	defer r.Close()

	count, err := r.PageCount()
	if err != nil {
		return nil, fmt.Errorf("counting pages: %w", err)
	}

	for i := 1; i <= count; i++ {
		text, _, err := tabula.FromReader(r).Pages(i).Text()
		if err != nil {
			return nil, fmt.Errorf("reading page %d: %w", i, err)
		}
		if text != "" {
			pages = append(pages, text)
		}
	}
	return pages, nil
}
