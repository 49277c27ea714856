// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package sections

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/scienceparse/pkg/types"
)

func TestIsHeading(t *testing.T) {
	tests := []struct {
		line string
		want bool
	}{
		{"1. Introduction", true},
		{"12. Related Work", true},
		{"3. Smith et al. report", true},
		{"1.\tMethods", true},
		{"1. Results", true},
		{"١. Arabic-Indic digit", true},
		{"1. introduction", false},
		{"1.Introduction", false},
		{"1.  Two spaces", false},
		{" 1. Leading space", false},
		{"abc 2. Results", false},
		{"1) Methods", false},
		{"1.1 Background", false},
		{"1. Évaluation", false},
		{"", false},
		{"Introduction", false},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			assert.Equal(t, tt.want, IsHeading(tt.line))
		})
	}
}

func TestSplit_Boundary(t *testing.T) {
	got := Split([]string{"1. Intro\nHello world"})
	want := []types.Section{
		{Heading: "Introduction", Text: ""},
		{Heading: "1. Intro", Text: "Hello world "},
	}
	assert.Equal(t, want, got)
}

func TestSplit_EmptyInput(t *testing.T) {
	want := []types.Section{{Heading: "Introduction", Text: ""}}
	assert.Equal(t, want, Split(nil))
	assert.Equal(t, want, Split([]string{}))
}

func TestSplit_NeverEmpty(t *testing.T) {
	inputs := [][]string{
		nil,
		{""},
		{"\n\n"},
		{"1. A"},
		{"plain prose only"},
		{"1. A\n2. B\n3. C"},
	}
	for _, in := range inputs {
		assert.GreaterOrEqual(t, len(Split(in)), 1, "input %q", in)
	}
}

func TestSplit_MidLineNumberDoesNotTrigger(t *testing.T) {
	got := Split([]string{"abc 2. Results\nmore"})
	require.Len(t, got, 1)
	assert.Equal(t, "Introduction", got[0].Heading)
	assert.Equal(t, "abc 2. Results more ", got[0].Text)
}

func TestSplit_AccumulatesAcrossPages(t *testing.T) {
	pages := []string{
		"Title line\nAbstract body\n1. Introduction\nFirst para",
		"continues here\n2. Methods\nWe did things",
	}
	got := Split(pages)
	want := []types.Section{
		{Heading: "Introduction", Text: "Title line Abstract body "},
		{Heading: "1. Introduction", Text: "First para continues here "},
		{Heading: "2. Methods", Text: "We did things "},
	}
	assert.Equal(t, want, got)
}

func TestSplit_PreservesWhitespace(t *testing.T) {
	got := Split([]string{"  indented \n1. Heading  \n\ttabbed"})
	want := []types.Section{
		{Heading: "Introduction", Text: "  indented  "},
		{Heading: "1. Heading  ", Text: "\ttabbed "},
	}
	assert.Equal(t, want, got)
}

func TestSplit_EmptyLinesAddSpaces(t *testing.T) {
	got := Split([]string{"a\n\nb"})
	require.Len(t, got, 1)
	assert.Equal(t, "a  b ", got[0].Text)
}

func TestSplit_ConsecutiveHeadings(t *testing.T) {
	got := Split([]string{"1. One\n2. Two"})
	want := []types.Section{
		{Heading: "Introduction", Text: ""},
		{Heading: "1. One", Text: ""},
		{Heading: "2. Two", Text: ""},
	}
	assert.Equal(t, want, got)
}

func TestSplit_CarriageReturnsKept(t *testing.T) {
	got := Split([]string{"line one\r\n1. Next\r\nbody\r"})
	want := []types.Section{
		{Heading: "Introduction", Text: "line one\r "},
		{Heading: "1. Next\r", Text: "body\r "},
	}
	assert.Equal(t, want, got)
}

func TestSplit_Deterministic(t *testing.T) {
	pages := []string{"Preamble\n1. Intro\ntext\n2. Body\nmore text", "3. End\nfin"}
	first := Split(pages)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Split(pages))
	}
}
