// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package convert extracts per-page plain text from PDF bytes with
// pluggable backends.
package convert

import (
	"fmt"

	"github.com/pdiddy/scienceparse/pkg/types"
)

// PageExtractor turns a PDF document into its per-page text. Different
// backends (ledongthuc, tabula) implement this interface.
type PageExtractor interface {
	// Name returns the backend identifier.
	Name() string

	// ExtractPages returns the text of every page that produced any, in
	// page order. Pages whose text is empty are omitted. A document that
	// cannot be parsed returns an error.
	ExtractPages(data []byte) (types.PageText, error)
}

// New returns the extractor for backend. An empty backend selects the
// default (ledongthuc).
func New(backend types.ExtractorBackend) (PageExtractor, error) {
	switch backend {
	case "", types.BackendLedongthuc:
		return &LedongthucExtractor{}, nil
	case types.BackendTabula:
		return &TabulaExtractor{}, nil
	default:
		return nil, fmt.Errorf("unknown extractor backend %q (want %s or %s)",
			backend, types.BackendLedongthuc, types.BackendTabula)
	}
}

// recoverInto converts a panic raised by a PDF library into an error
// assigned to *err. Both backends panic on some malformed inputs.
func recoverInto(err *error, backend string) {
	if r := recover(); r != nil {
		*err = fmt.Errorf("%s: panic while reading PDF: %v", backend, r)
	}
}
