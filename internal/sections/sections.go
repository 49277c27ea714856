// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package sections splits extracted page text into numbered, heading-delimited
// sections.
//
// The split is a line heuristic, not a layout parser: any line that starts
// with digits, a period, one whitespace character and an uppercase ASCII
// letter opens a new section. Running prose such as "3. Smith et al. show"
// therefore starts a section, and headings that are lowercase or begin with
// a non-ASCII letter never do. Downstream consumers rely on this exact
// behavior, so it is kept as is.
package sections

import (
	"regexp"
	"strings"

	"github.com/pdiddy/scienceparse/pkg/types"
)

// IntroductionHeading names the section that collects text before the
// first detected heading.
const IntroductionHeading = "Introduction"

// headingPattern matches a numbered heading at the start of a line, e.g.
// "1. Introduction" or "12. Related Work". The digit and whitespace classes
// are Unicode-aware (any decimal digit; any space separator or control
// whitespace) while the heading letter is ASCII A-Z only.
var headingPattern = regexp.MustCompile(`^\p{Nd}+\.[\t\n\v\f\r\x1c-\x1f\x85\p{Z}][A-Z]`)

// IsHeading reports whether line opens a new section.
func IsHeading(line string) bool {
	return headingPattern.MatchString(line)
}

// Split scans pages line by line and returns the sections in document
// order. The result always has at least one element: the leading
// "Introduction" section, even when pages is empty.
func Split(pages []string) []types.Section {
	var out []types.Section
	current := types.Section{Heading: IntroductionHeading}
	var text strings.Builder

	for _, page := range pages {
		for _, line := range strings.Split(page, "\n") {
			if IsHeading(line) {
				current.Text = text.String()
				out = append(out, current)
				current = types.Section{Heading: line}
				text.Reset()
				continue
			}
			text.WriteString(line)
			text.WriteByte(' ')
		}
	}

	current.Text = text.String()
	return append(out, current)
}
