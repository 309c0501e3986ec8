// Package sections normalizes report text and partitions it into
// heading-delimited sections.
package sections

import (
	"regexp"
	"strings"
)

// DefaultHeadings are the section keywords looked for in financial reports.
var DefaultHeadings = []string{
	"Future Prospects",
	"Key Changes",
	"Triggers",
	"Material Impacts",
	"Other Information",
}

// Section is a contiguous run of report text starting at a heading.
type Section struct {
	Heading string // Canonical heading keyword; empty for unlabeled text
	Text    string // Section text, beginning with the heading as written
}

// Normalize collapses every run of whitespace, newlines included, into a
// single space and trims the ends.
func Normalize(text string) string {
	return strings.Join(strings.Fields(text), " ")
}

// Splitter partitions normalized text at heading keywords.
type Splitter struct {
	headings     []string
	re           *regexp.Regexp
	keepPreamble bool
}

// Option configures a Splitter.
type Option func(*Splitter)

// WithPreamble keeps text before the first heading as an unlabeled
// leading section instead of discarding it.
func WithPreamble(keep bool) Option {
	return func(s *Splitter) { s.keepPreamble = keep }
}

// NewSplitter builds a case-insensitive splitter over headings. An empty
// list falls back to DefaultHeadings.
func NewSplitter(headings []string, opts ...Option) *Splitter {
	var clean []string
	for _, h := range headings {
		if h = strings.TrimSpace(h); h != "" {
			clean = append(clean, h)
		}
	}
	if len(clean) == 0 {
		clean = DefaultHeadings
	}

	quoted := make([]string, len(clean))
	for i, h := range clean {
		quoted[i] = regexp.QuoteMeta(h)
	}
	s := &Splitter{
		headings: clean,
		re:       regexp.MustCompile(`(?i)(?:` + strings.Join(quoted, "|") + `)`),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Headings returns the keywords this splitter matches.
func (s *Splitter) Headings() []string {
	out := make([]string, len(s.headings))
	copy(out, s.headings)
	return out
}

// Split returns the sections of text in document order. Each section runs
// from one heading match up to the next. Text with no heading at all comes
// back as a single unlabeled section.
func (s *Splitter) Split(text string) []Section {
	matches := s.re.FindAllStringIndex(text, -1)
	if len(matches) == 0 {
		return []Section{{Text: text}}
	}

	out := make([]Section, 0, len(matches)+1)
	if s.keepPreamble {
		if pre := text[:matches[0][0]]; strings.TrimSpace(pre) != "" {
			out = append(out, Section{Text: pre})
		}
	}
	for i, m := range matches {
		end := len(text)
		if i+1 < len(matches) {
			end = matches[i+1][0]
		}
		out = append(out, Section{
			Heading: s.canonical(text[m[0]:m[1]]),
			Text:    text[m[0]:end],
		})
	}
	return out
}

func (s *Splitter) canonical(token string) string {
	for _, h := range s.headings {
		if strings.EqualFold(h, token) {
			return h
		}
	}
	return token
}
