// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds shared HTTP settings used by stages that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout. Zero means no timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "scienceparse/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// InputConfig describes where entries come from.
type InputConfig struct {
	// Path is the delimited input file.
	Path string `json:"path" yaml:"path"`

	// Column is the header name of the entry column (default "pdf_link").
	Column string `json:"column" yaml:"column"`

	// Limit is the number of leading rows considered (default 5).
	// Zero or negative means every row.
	Limit int `json:"limit" yaml:"limit"`

	// Delimiter overrides the field separator. Zero selects ',' or, for
	// .tsv files, a tab.
	Delimiter rune `json:"delimiter" yaml:"delimiter"`
}

// ExtractorBackend identifies the PDF text extraction library.
type ExtractorBackend string

const (
	BackendLedongthuc ExtractorBackend = "ledongthuc"
	BackendTabula     ExtractorBackend = "tabula"
)

// AcquisitionConfig holds settings for resolving entries and fetching PDFs.
type AcquisitionConfig struct {
	HTTPConfig `yaml:",inline"`

	// SemanticScholarURL overrides the paper lookup endpoint prefix; the
	// DOI is appended to it. Empty selects the public v1 API.
	SemanticScholarURL string `json:"semantic_scholar_url,omitempty" yaml:"semantic_scholar_url,omitempty"`

	// SemanticScholarAPIKey is sent as x-api-key when set.
	SemanticScholarAPIKey string `json:"semantic_scholar_api_key,omitempty" yaml:"semantic_scholar_api_key,omitempty"`

	// Backend selects the PDF text extractor.
	Backend ExtractorBackend `json:"backend" yaml:"backend"`

	// FollowLandingPages makes the fetcher follow a citation_pdf_url meta
	// tag when a candidate URL returns HTML instead of a PDF.
	FollowLandingPages bool `json:"follow_landing_pages" yaml:"follow_landing_pages"`

	// CachePath is the SQLite extraction cache. Empty disables caching.
	CachePath string `json:"cache_path,omitempty" yaml:"cache_path,omitempty"`
}

// Metadata holds the placeholder values written into every record. They
// are configuration, not parsed content.
type Metadata struct {
	Title  string `json:"title" yaml:"title"`
	Author string `json:"author" yaml:"author"`
	Year   int    `json:"year" yaml:"year"`
}

// DefaultMetadata returns the placeholders used when none are configured.
func DefaultMetadata() Metadata {
	return Metadata{
		Title:  "Unknown Title",
		Author: "Unknown Author",
		Year:   2021,
	}
}

// OutputFormat selects the batch serialization.
type OutputFormat string

const (
	OutputJSON OutputFormat = "json"
	OutputYAML OutputFormat = "yaml"
)

// OutputConfig describes where and how the batch is written.
type OutputConfig struct {
	// Destination is a file path, "-" for stdout, or s3://bucket/key.
	Destination string `json:"destination" yaml:"destination"`

	// Format selects json or yaml.
	Format OutputFormat `json:"format" yaml:"format"`

	// S3Region is the AWS region used for s3:// destinations.
	S3Region string `json:"s3_region,omitempty" yaml:"s3_region,omitempty"`
}

// PipelineConfig groups all stage configurations for one run.
type PipelineConfig struct {
	Input       InputConfig       `json:"input" yaml:"input"`
	Acquisition AcquisitionConfig `json:"acquisition" yaml:"acquisition"`
	Output      OutputConfig      `json:"output" yaml:"output"`
	Metadata    Metadata          `json:"metadata" yaml:"metadata"`

	// Workers bounds how many entries are processed at once (default 1).
	Workers int `json:"workers" yaml:"workers"`
}
