// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the scienceparse pipeline:
// the per-paper output record, its sections, and stage configuration.
package types

// Section is one heading-delimited span of extracted text.
type Section struct {
	// Heading is the full heading line as it appeared in the text, or
	// "Introduction" for the span before the first detected heading.
	Heading string `json:"heading" yaml:"heading"`

	// Text is every non-heading line in the span, each followed by a space.
	Text string `json:"text" yaml:"text"`
}

// Author is a placeholder author entry. Affiliations is always an empty
// list; nothing in the pipeline derives authors from content.
type Author struct {
	Affiliations []string `json:"affiliations" yaml:"affiliations"`
	Name         string   `json:"name" yaml:"name"`
}

// PaperRecord is the normalized output unit for one input entry. Field
// order is the serialized key order.
type PaperRecord struct {
	// Title is a configured placeholder, not parsed from the document.
	Title string `json:"title" yaml:"title"`

	// Authors holds a single configured placeholder author.
	Authors []Author `json:"authors" yaml:"authors"`

	// Year is a configured placeholder.
	Year int `json:"year" yaml:"year"`

	// ID is the input entry exactly as it appeared in the table (DOI or URL).
	ID string `json:"id" yaml:"id"`

	// AbstractText is the text of the first section.
	AbstractText string `json:"abstractText" yaml:"abstractText"`

	// Sections holds every section after the first.
	Sections []Section `json:"sections" yaml:"sections"`
}

// PageText is the per-page text of one PDF in page order. Pages that
// produced no text are not represented.
type PageText []string

// ExtractionResult carries everything the pipeline learned about one entry.
type ExtractionResult struct {
	// Entry is the raw input value.
	Entry string

	// Candidates is the ordered list of URLs that were tried.
	Candidates []string

	// SourceURL is the candidate that produced text, or empty when none did.
	SourceURL string

	// Pages is the text of the winning candidate.
	Pages PageText

	// Sections is the splitter output for Pages (never empty).
	Sections []Section
}

// Extracted reports whether any candidate produced text.
func (r ExtractionResult) Extracted() bool {
	return len(r.Pages) > 0
}
