// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"bytes"
	"fmt"

	"github.com/ledongthuc/pdf"

	"github.com/pdiddy/scienceparse/pkg/types"
)

// LedongthucExtractor reads the PDF text layer in memory with
// github.com/ledongthuc/pdf. Scanned (image-only) pages yield no text.
type LedongthucExtractor struct{}

// Name returns the backend identifier.
func (e *LedongthucExtractor) Name() string { return string(types.BackendLedongthuc) }

// ExtractPages parses data and returns the non-empty page texts.
func (e *LedongthucExtractor) ExtractPages(data []byte) (pages types.PageText, err error) {
	defer recoverInto(&err, e.Name())

	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("opening PDF: %w", err)
	}

	for i := 1; i <= r.NumPage(); i++ {
		p := r.Page(i)
		if p.V.IsNull() {
			continue
		}
		text, err := p.GetPlainText(nil)
		if err != nil {
			return nil, fmt.Errorf("reading page %d: %w", i, err)
		}
		if text != "" {
			pages = append(pages, text)
		}
	}
	return pages, nil
}
