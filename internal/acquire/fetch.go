// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package acquire

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/zeromicro/go-zero/core/logx"

	"github.com/pdiddy/scienceparse/internal/convert"
	"github.com/pdiddy/scienceparse/internal/httputil"
	"github.com/pdiddy/scienceparse/pkg/types"
)

// PageCache stores extracted page text by URL between runs.
type PageCache interface {
	Get(ctx context.Context, url string) (types.PageText, bool, error)
	Put(ctx context.Context, url string, pages types.PageText) error
}

// Fetcher downloads one candidate URL and extracts its per-page text.
type Fetcher struct {
	Client    httputil.Doer
	Extractor convert.PageExtractor
	Config    types.AcquisitionConfig

	// Cache is optional.
	Cache PageCache

	// Log receives per-URL status lines. Nil discards them.
	Log io.Writer
}

// Fetch returns the text of the PDF at pdfURL. Every failure (transport
// error, non-2xx status, unreadable document) is reported to Log and
// yields an empty result; Fetch never returns an error.
func (f *Fetcher) Fetch(ctx context.Context, pdfURL string) types.PageText {
	if f.Cache != nil {
		pages, ok, err := f.Cache.Get(ctx, pdfURL)
		if err != nil {
			fmt.Fprintf(f.log(), "  warning: cache lookup failed for %s: %v\n", pdfURL, err)
		} else if ok {
			logx.Debugf("cache hit for %s (%d pages)", pdfURL, len(pages))
			return pages
		}
	}

	pages, err := f.fetch(ctx, pdfURL, f.Config.FollowLandingPages)
	if err != nil {
		fmt.Fprintf(f.log(), "Error extracting text from PDF %s: %v\n", pdfURL, err)
		return nil
	}

	if f.Cache != nil && len(pages) > 0 {
		if err := f.Cache.Put(ctx, pdfURL, pages); err != nil {
			fmt.Fprintf(f.log(), "  warning: cache store failed for %s: %v\n", pdfURL, err)
		}
	}
	return pages
}

func (f *Fetcher) fetch(ctx context.Context, pdfURL string, followLanding bool) (types.PageText, error) {
	data, contentType, err := f.download(ctx, pdfURL)
	if err != nil {
		return nil, err
	}
	logx.Debugf("downloaded %s: %d bytes (%s)", pdfURL, len(data), contentType)

	if followLanding && isHTML(contentType, data) {
		target, err := findCitationPDF(data, pdfURL)
		if err != nil {
			return nil, fmt.Errorf("reading landing page: %w", err)
		}
		if target == "" || target == pdfURL {
			return nil, fmt.Errorf("landing page has no citation_pdf_url")
		}
		fmt.Fprintf(f.log(), "  following landing page %s -> %s\n", pdfURL, target)
		return f.fetch(ctx, target, false)
	}

	pages, err := f.Extractor.ExtractPages(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", f.Extractor.Name(), err)
	}
	return pages, nil
}

func (f *Fetcher) download(ctx context.Context, rawURL string) ([]byte, string, error) {
	resp, err := httputil.Get(ctx, f.Client, rawURL, f.Config.HTTPConfig, nil)
	if err != nil {
		return nil, "", fmt.Errorf("HTTP request: %w", err)
	}
	defer resp.Body.Close()

	if !httputil.IsSuccess(resp.StatusCode) {
		return nil, "", fmt.Errorf("HTTP %d from %s", resp.StatusCode, rawURL)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", fmt.Errorf("reading body: %w", err)
	}
	return data, resp.Header.Get("Content-Type"), nil
}

func (f *Fetcher) log() io.Writer {
	if f.Log == nil {
		return io.Discard
	}
	return f.Log
}

// isHTML reports whether a response is an HTML page rather than a PDF,
// using the declared content type and falling back to content sniffing.
func isHTML(contentType string, data []byte) bool {
	if bytes.HasPrefix(data, []byte("%PDF")) {
		return false
	}
	if strings.Contains(strings.ToLower(contentType), "text/html") {
		return true
	}
	return strings.HasPrefix(http.DetectContentType(data), "text/html")
}

// findCitationPDF returns the absolute URL in the page's
// <meta name="citation_pdf_url"> tag, or "" when there is none.
func findCitationPDF(page []byte, pageURL string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(page))
	if err != nil {
		return "", err
	}
	href, ok := doc.Find(`meta[name="citation_pdf_url"]`).First().Attr("content")
	href = strings.TrimSpace(href)
	if !ok || href == "" {
		return "", nil
	}

	base, err := url.Parse(pageURL)
	if err != nil {
		return href, nil
	}
	ref, err := url.Parse(href)
	if err != nil {
		return "", fmt.Errorf("parsing citation_pdf_url %q: %w", href, err)
	}
	return base.ResolveReference(ref).String(), nil
}
