// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package output serializes a batch of paper records and writes it to a
// file, stdout, or S3.
package output

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/scienceparse/pkg/types"
)

// indent is the JSON indentation: four spaces per level.
const indent = "    "

// Encode serializes records in the given format. JSON output is a
// top-level array indented with four spaces; non-ASCII and HTML
// characters are written as-is rather than escaped. A nil slice encodes
// as an empty array.
func Encode(records []types.PaperRecord, format types.OutputFormat) ([]byte, error) {
	if records == nil {
		records = []types.PaperRecord{}
	}
	switch format {
	case "", types.OutputJSON:
		var buf bytes.Buffer
		enc := json.NewEncoder(&buf)
		enc.SetEscapeHTML(false)
		enc.SetIndent("", indent)
		if err := enc.Encode(records); err != nil {
			return nil, fmt.Errorf("marshaling JSON: %w", err)
		}
		return buf.Bytes(), nil
	case types.OutputYAML:
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(4)
		if err := enc.Encode(records); err != nil {
			return nil, fmt.Errorf("marshaling YAML: %w", err)
		}
		if err := enc.Close(); err != nil {
			return nil, fmt.Errorf("marshaling YAML: %w", err)
		}
		return buf.Bytes(), nil
	default:
		return nil, fmt.Errorf("unknown output format %q (want %s or %s)", format, types.OutputJSON, types.OutputYAML)
	}
}

// Sink receives the encoded batch.
type Sink interface {
	Write(ctx context.Context, data []byte) error
	// String describes the destination for status messages.
	String() string
}

// NewSink returns the sink for a destination: "-" for stdout, an
// s3://bucket/key URI, or a local file path.
func NewSink(cfg types.OutputConfig, stdout io.Writer) (Sink, error) {
	dest := cfg.Destination
	switch {
	case dest == "":
		return nil, fmt.Errorf("no output destination")
	case dest == "-":
		return &WriterSink{W: stdout}, nil
	case strings.HasPrefix(dest, s3Scheme):
		bucket, key, err := ParseS3URI(dest)
		if err != nil {
			return nil, err
		}
		return NewS3Sink(bucket, key, cfg.S3Region, contentType(cfg.Format))
	default:
		return &FileSink{Path: dest}, nil
	}
}

func contentType(f types.OutputFormat) string {
	if f == types.OutputYAML {
		return "application/yaml"
	}
	return "application/json"
}

// WriterSink writes to an io.Writer such as stdout.
type WriterSink struct {
	W io.Writer
}

func (s *WriterSink) Write(_ context.Context, data []byte) error {
	_, err := s.W.Write(data)
	return err
}

func (s *WriterSink) String() string { return "stdout" }

// FileSink writes to a local path through a temporary file in the same
// directory, renamed into place on success.
type FileSink struct {
	Path string
}

func (s *FileSink) Write(_ context.Context, data []byte) error {
	dir := filepath.Dir(s.Path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating directory %s: %w", dir, err)
	}

	tmpFile, err := os.CreateTemp(dir, ".output-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	_, writeErr := tmpFile.Write(data)
	closeErr := tmpFile.Close()
	if writeErr != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("writing output: %w", writeErr)
	}
	if closeErr != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("closing temp file: %w", closeErr)
	}
	if err := os.Chmod(tmpPath, 0o644); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("setting permissions: %w", err)
	}
	if err := os.Rename(tmpPath, s.Path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}

func (s *FileSink) String() string { return s.Path }
