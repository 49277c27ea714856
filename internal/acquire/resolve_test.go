// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package acquire

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/scienceparse/pkg/types"
)

func TestIsDOI(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"10.1145/3292500.3330701", true},
		{"10.1038/s41586-024-07487-w", true},
		{"10.18653/v1/N19-1423", true},
		{"10.1000/xyz123", true},
		{"10.123456789/abc", true},
		{"10.1002/(SICI)1097-4571(199806)49:8<693::AID-ASI4>3.0.CO;2-0", false},
		{"10.1002/(SICI)1097-4571(199806)49:8", true},
		{"10.1016/j.cell.2020.01.001", true},
		{"10.1145/abc_def;ghi", true},
		{"https://example.com/a.pdf", false},
		{"http://arxiv.org/pdf/1706.03762", false},
		{"https://doi.org/10.1145/3292500.3330701", false},
		{"10.123/short-prefix", false},
		{"10.1234567890/too-long", false},
		{"10.1145/", false},
		{"10.1145/has space", false},
		{" 10.1145/leading-space", false},
		{"doi:10.1145/3292500", false},
		{"", false},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, IsDOI(tt.input))
		})
	}
}

func TestClassify(t *testing.T) {
	assert.Equal(t, TypeDOI, Classify("10.1145/3292500.3330701"))
	assert.Equal(t, TypeURL, Classify("https://example.com/a.pdf"))
	assert.Equal(t, "doi", TypeDOI.String())
	assert.Equal(t, "url", TypeURL.String())
}

// failingDoer fails the test if any request is sent.
type failingDoer struct{ t *testing.T }

func (d failingDoer) Do(req *http.Request) (*http.Response, error) {
	d.t.Errorf("unexpected request to %s", req.URL)
	return nil, errors.New("network disabled")
}

func TestResolve_URLShortCircuit(t *testing.T) {
	r := &Resolver{Client: failingDoer{t}}
	got, err := r.Resolve(context.Background(), "https://example.com/a.pdf")
	require.NoError(t, err)
	assert.Equal(t, []string{"https://example.com/a.pdf"}, got)
}

func withSemanticServer(t *testing.T, h http.HandlerFunc) *httptest.Server {
	t.Helper()
	ts := httptest.NewServer(h)
	old := semanticScholarBase
	semanticScholarBase = ts.URL + "/v1/paper/"
	t.Cleanup(func() {
		semanticScholarBase = old
		ts.Close()
	})
	return ts
}

func TestResolve_DOI(t *testing.T) {
	var gotPath, gotKey, gotUA string
	ts := withSemanticServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.Header.Get("x-api-key")
		gotUA = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"title":"BERT","pdfUrls":["https://a.example/1.pdf","https://b.example/2.pdf","https://a.example/1.pdf"]}`)
	})

	r := &Resolver{
		Client: ts.Client(),
		Config: types.AcquisitionConfig{
			HTTPConfig:            types.HTTPConfig{UserAgent: "scienceparse/test"},
			SemanticScholarAPIKey: "sk_abc",
		},
	}
	got, err := r.Resolve(context.Background(), "10.18653/v1/N19-1423")
	require.NoError(t, err)

	assert.Equal(t, []string{"https://a.example/1.pdf", "https://b.example/2.pdf"}, got)
	assert.Equal(t, "/v1/paper/10.18653/v1/N19-1423", gotPath)
	assert.Equal(t, "sk_abc", gotKey)
	assert.Equal(t, "scienceparse/test", gotUA)
}

func TestResolve_MissingPDFURLs(t *testing.T) {
	for name, body := range map[string]string{
		"absent": `{"title":"No links"}`,
		"null":   `{"pdfUrls":null}`,
		"empty":  `{"pdfUrls":[]}`,
	} {
		t.Run(name, func(t *testing.T) {
			ts := withSemanticServer(t, func(w http.ResponseWriter, _ *http.Request) {
				fmt.Fprint(w, body)
			})
			r := &Resolver{Client: ts.Client()}
			got, err := r.Resolve(context.Background(), "10.1145/3292500.3330701")
			require.NoError(t, err)
			assert.Empty(t, got)
		})
	}
}

func TestResolve_NonOKStatus(t *testing.T) {
	ts := withSemanticServer(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	var log bytes.Buffer
	r := &Resolver{Client: ts.Client(), Log: &log}
	got, err := r.Resolve(context.Background(), "10.1145/3292500.3330701")
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.Contains(t, log.String(), "Error fetching DOI 10.1145/3292500.3330701: 404")
}

func TestResolve_MalformedJSON(t *testing.T) {
	ts := withSemanticServer(t, func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{"pdfUrls":[`)
	})
	r := &Resolver{Client: ts.Client()}
	_, err := r.Resolve(context.Background(), "10.1145/3292500.3330701")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing Semantic Scholar response")
}

func TestResolve_TransportErrorPropagates(t *testing.T) {
	ts := withSemanticServer(t, func(w http.ResponseWriter, _ *http.Request) {})
	ts.Close()

	r := &Resolver{Client: ts.Client()}
	_, err := r.Resolve(context.Background(), "10.1145/3292500.3330701")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Semantic Scholar request")
}

func TestDedupe(t *testing.T) {
	assert.Equal(t, []string{"a", "b", "c"}, dedupe([]string{"a", "b", "a", "c", "b"}))
	assert.Equal(t, []string{}, dedupe(nil))
}

func TestResolve_ConfiguredBaseURL(t *testing.T) {
	var gotPath string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		fmt.Fprint(w, `{"pdfUrls":["https://a.example/1.pdf"]}`)
	}))
	defer ts.Close()

	r := &Resolver{
		Client: ts.Client(),
		Config: types.AcquisitionConfig{SemanticScholarURL: ts.URL + "/proxy/paper/"},
	}
	got, err := r.Resolve(context.Background(), "10.1145/3292500.3330701")
	require.NoError(t, err)
	assert.Equal(t, "/proxy/paper/10.1145/3292500.3330701", gotPath)
	assert.Equal(t, []string{"https://a.example/1.pdf"}, got)
}
