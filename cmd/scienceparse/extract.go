// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"strconv"
	"unicode/utf8"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/scienceparse/internal/acquire"
	"github.com/pdiddy/scienceparse/internal/cache"
	"github.com/pdiddy/scienceparse/internal/convert"
	"github.com/pdiddy/scienceparse/internal/httputil"
	"github.com/pdiddy/scienceparse/internal/input"
	"github.com/pdiddy/scienceparse/internal/output"
	"github.com/pdiddy/scienceparse/internal/pipeline"
	"github.com/pdiddy/scienceparse/internal/secrets"
	"github.com/pdiddy/scienceparse/pkg/types"
)

const defaultUserAgent = "scienceparse/0.1"

var extractCmd = &cobra.Command{
	Use:   "extract [input-file]",
	Short: "Extract sectioned text for every entry in a table of DOIs and PDF links",
	Long: `Extract reads the pdf_link column of a CSV or TSV file (first --limit rows),
resolves DOIs to PDF links through Semantic Scholar, downloads the first
candidate that yields text, splits it into numbered sections, and writes one
record per entry to --output (a file, "-" for stdout, or s3://bucket/key).

Entries that produce no text still get a record with an empty abstract and
no sections.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runExtract,
}

func init() {
	f := extractCmd.Flags()
	f.String("input", "", "delimited input file with a header row")
	f.String("output", "extracted.json", `output destination: file path, "-" for stdout, or s3://bucket/key`)
	f.String("column", input.DefaultColumn, "name of the column holding DOIs or PDF links")
	f.Int("limit", input.DefaultLimit, "number of leading rows to process (0 for all)")
	f.String("delimiter", "", `field separator (default "," or tab for .tsv files; "tab" for tab)`)
	f.String("format", string(types.OutputJSON), "output format: json or yaml")
	f.String("backend", string(types.BackendLedongthuc), "PDF text extractor: ledongthuc or tabula")
	f.Int("workers", 1, "entries processed concurrently")
	f.Duration("timeout", 0, "HTTP request timeout (0 for none)")
	f.String("user-agent", defaultUserAgent, "User-Agent header for HTTP requests")
	f.String("cache", "", "SQLite file caching extracted text by URL (empty disables)")
	f.Bool("follow-landing", false, "follow citation_pdf_url when a link returns an HTML page")
	f.String("semantic-scholar-api-key", "", "Semantic Scholar API key (default from .secrets/semantic-scholar-api-key)")
	f.String("semantic-scholar-url", "", "Semantic Scholar paper endpoint prefix")
	f.String("s3-region", "", "AWS region for s3:// output (default us-east-1)")

	for _, name := range []string{
		"input", "output", "column", "limit", "delimiter", "format", "backend",
		"workers", "timeout", "user-agent", "cache", "follow-landing",
		"semantic-scholar-api-key", "semantic-scholar-url", "s3-region",
	} {
		viper.BindPFlag(name, f.Lookup(name))
	}

	defaults := types.DefaultMetadata()
	viper.SetDefault("metadata.title", defaults.Title)
	viper.SetDefault("metadata.author", defaults.Author)
	viper.SetDefault("metadata.year", defaults.Year)

	rootCmd.AddCommand(extractCmd)
}

func runExtract(cmd *cobra.Command, args []string) error {
	cfg, err := loadPipelineConfig(args)
	if err != nil {
		return err
	}

	entries, err := input.Load(cfg.Input)
	if err != nil {
		return err
	}

	extractor, err := convert.New(cfg.Acquisition.Backend)
	if err != nil {
		return err
	}
	sink, err := output.NewSink(cfg.Output, cmd.OutOrStdout())
	if err != nil {
		return err
	}

	log := pipeline.SyncWriter(cmd.ErrOrStderr())
	client := httputil.NewClient(cfg.Acquisition.HTTPConfig)

	fetcher := &acquire.Fetcher{
		Client:    client,
		Extractor: extractor,
		Config:    cfg.Acquisition,
		Log:       log,
	}
	if cfg.Acquisition.CachePath != "" {
		store, err := cache.Open(cfg.Acquisition.CachePath)
		if err != nil {
			return err
		}
		defer store.Close()
		fetcher.Cache = store
	}

	p := &pipeline.Pipeline{
		Resolver: &acquire.Resolver{Client: client, Config: cfg.Acquisition, Log: log},
		Fetcher:  fetcher,
		Metadata: cfg.Metadata,
		Workers:  cfg.Workers,
		Log:      log,
	}

	fmt.Fprintf(log, "Processing %d entries from %s\n", len(entries), cfg.Input.Path)
	records, summary, err := p.Run(cmd.Context(), entries)
	if err != nil {
		return err
	}

	data, err := output.Encode(records, cfg.Output.Format)
	if err != nil {
		return err
	}
	if s3Sink, ok := sink.(*output.S3Sink); ok {
		s3Sink.Metadata = map[string]string{
			"run-id":       summary.RunID,
			"record-count": strconv.Itoa(len(records)),
		}
	}
	if err := sink.Write(cmd.Context(), data); err != nil {
		return fmt.Errorf("writing output to %s: %w", sink, err)
	}
	fmt.Fprintf(log, "Wrote %d records to %s\n", len(records), sink)
	return nil
}

// loadPipelineConfig assembles the run configuration from flags, the
// environment, and the config file, in that order of precedence.
func loadPipelineConfig(args []string) (types.PipelineConfig, error) {
	path := viper.GetString("input")
	if len(args) == 1 {
		path = args[0]
	}
	if path == "" {
		return types.PipelineConfig{}, fmt.Errorf("provide an input file (argument or --input)")
	}

	delim, err := parseDelimiter(viper.GetString("delimiter"))
	if err != nil {
		return types.PipelineConfig{}, err
	}

	return types.PipelineConfig{
		Input: types.InputConfig{
			Path:      path,
			Column:    viper.GetString("column"),
			Limit:     viper.GetInt("limit"),
			Delimiter: delim,
		},
		Acquisition: types.AcquisitionConfig{
			HTTPConfig: types.HTTPConfig{
				Timeout:   viper.GetDuration("timeout"),
				UserAgent: viper.GetString("user-agent"),
			},
			SemanticScholarURL:    viper.GetString("semantic-scholar-url"),
			SemanticScholarAPIKey: loadedSecrets.Value(secrets.SemanticScholarAPIKey, viper.GetString("semantic-scholar-api-key")),
			Backend:               types.ExtractorBackend(viper.GetString("backend")),
			FollowLandingPages:    viper.GetBool("follow-landing"),
			CachePath:             viper.GetString("cache"),
		},
		Output: types.OutputConfig{
			Destination: viper.GetString("output"),
			Format:      types.OutputFormat(viper.GetString("format")),
			S3Region:    viper.GetString("s3-region"),
		},
		Metadata: types.Metadata{
			Title:  viper.GetString("metadata.title"),
			Author: viper.GetString("metadata.author"),
			Year:   viper.GetInt("metadata.year"),
		},
		Workers: viper.GetInt("workers"),
	}, nil
}

// parseDelimiter accepts a single character, "tab", or `\t`. Empty means
// choose by file extension.
func parseDelimiter(s string) (rune, error) {
	switch s {
	case "":
		return 0, nil
	case "tab", `\t`:
		return '\t', nil
	}
	if utf8.RuneCountInString(s) != 1 {
		return 0, fmt.Errorf("delimiter must be a single character, got %q", s)
	}
	r, _ := utf8.DecodeRuneInString(s)
	return r, nil
}

