// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package acquire resolves paper entries to candidate PDF URLs and
// downloads the first candidate that yields text.
package acquire

import (
	"context"

	"github.com/pdiddy/scienceparse/pkg/types"
)

// PageFetcher retrieves the text of one candidate URL. An empty result
// means the candidate failed.
type PageFetcher interface {
	Fetch(ctx context.Context, url string) types.PageText
}

// Acquire tries candidates in order and returns the first non-empty
// result together with the URL that produced it. Later candidates are not
// fetched. When every candidate fails it returns nil and "".
func Acquire(ctx context.Context, f PageFetcher, candidates []string) (types.PageText, string) {
	for _, u := range candidates {
		if ctx.Err() != nil {
			return nil, ""
		}
		if pages := f.Fetch(ctx, u); len(pages) > 0 {
			return pages, u
		}
	}
	return nil, ""
}
