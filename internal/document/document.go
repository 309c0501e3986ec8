package document

import "strings"

// Document is the text extracted from a single report.
type Document struct {
	Title string // Report title (from metadata or filename)
	Pages []Page // Pages in source order
}

// Page is one page (or page-like unit) of extracted text.
type Page struct {
	Number int    // 1-based page number, 0 if the format has no pages
	Text   string // Extracted text; empty when the page had none
}

// Text joins the non-empty pages with newlines and trims the result.
func (d *Document) Text() string {
	if d == nil {
		return ""
	}
	var sb strings.Builder
	for _, p := range d.Pages {
		if p.Text == "" {
			continue
		}
		sb.WriteString(p.Text)
		sb.WriteString("\n")
	}
	return strings.TrimSpace(sb.String())
}

// EmptyPages returns the numbers of pages that carried no text.
func (d *Document) EmptyPages() []int {
	if d == nil {
		return nil
	}
	var out []int
	for _, p := range d.Pages {
		if strings.TrimSpace(p.Text) == "" {
			out = append(out, p.Number)
		}
	}
	return out
}
