// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package acquire

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"regexp"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/zeromicro/go-zero/core/logx"

	"github.com/pdiddy/scienceparse/internal/httputil"
	"github.com/pdiddy/scienceparse/pkg/types"
)

// IdentifierType classifies an input entry.
type IdentifierType int

const (
	TypeURL IdentifierType = iota
	TypeDOI
)

func (t IdentifierType) String() string {
	if t == TypeDOI {
		return "doi"
	}
	return "url"
}

// semanticScholarBase is the Semantic Scholar v1 paper endpoint. Declared
// as a var so tests can substitute an httptest server.
var semanticScholarBase = "https://api.semanticscholar.org/v1/paper/"

// doiPattern matches a whole-string DOI: "10.1145/3292500.3330701".
var doiPattern = regexp.MustCompile(`(?i)^10\.\d{4,9}/[-._;()/:A-Z0-9]+$`)

// IsDOI reports whether entry is a DOI. Anything else is treated as a URL.
// The entry is not trimmed.
func IsDOI(entry string) bool {
	return doiPattern.MatchString(entry)
}

// Classify returns the identifier type of entry.
func Classify(entry string) IdentifierType {
	if IsDOI(entry) {
		return TypeDOI
	}
	return TypeURL
}

// Resolver turns entries into ordered lists of candidate PDF URLs.
type Resolver struct {
	Client httputil.Doer
	Config types.AcquisitionConfig

	// Log receives per-entry status lines. Nil discards them.
	Log io.Writer
}

// Resolve returns the candidate PDF URLs for entry. A URL entry resolves
// to itself without any network call. A DOI is looked up on Semantic
// Scholar: a non-200 status is reported and yields no candidates, while
// transport and decoding failures are returned as errors.
func (r *Resolver) Resolve(ctx context.Context, entry string) ([]string, error) {
	if !IsDOI(entry) {
		return []string{entry}, nil
	}

	// The DOI is appended verbatim; its slash is part of the path.
	base := r.Config.SemanticScholarURL
	if base == "" {
		base = semanticScholarBase
	}
	apiURL := base + entry
	resp, err := httputil.Get(ctx, r.Client, apiURL, r.Config.HTTPConfig, map[string]string{
		"x-api-key": r.Config.SemanticScholarAPIKey,
	})
	if err != nil {
		return nil, fmt.Errorf("Semantic Scholar request for %s: %w", entry, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		fmt.Fprintf(r.log(), "Error fetching DOI %s: %d\n", entry, resp.StatusCode)
		return []string{}, nil
	}

	var paper semanticPaper
	if err := json.NewDecoder(resp.Body).Decode(&paper); err != nil {
		return nil, fmt.Errorf("parsing Semantic Scholar response for %s: %w", entry, err)
	}
	urls := dedupe(paper.PDFURLs)
	logx.Debugf("resolved %s to %d candidate(s)", entry, len(urls))
	return urls, nil
}

func (r *Resolver) log() io.Writer {
	if r.Log == nil {
		return io.Discard
	}
	return r.Log
}

// dedupe drops repeated URLs, keeping each at its first position.
func dedupe(urls []string) []string {
	seen := mapset.NewThreadUnsafeSet[string]()
	out := make([]string, 0, len(urls))
	for _, u := range urls {
		if seen.Add(u) {
			out = append(out, u)
		}
	}
	return out
}

// semanticPaper holds the one field the pipeline reads from the v1 paper
// response.
type semanticPaper struct {
	PDFURLs []string `json:"pdfUrls"`
}
