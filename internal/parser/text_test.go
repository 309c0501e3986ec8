package parser

import (
	"strings"
	"testing"
)

func TestTextParser_WholeFileIsOnePage(t *testing.T) {
	input := "Annual report.\n\nFuture Prospects\nWe expect growth."
	p := &TextParser{}
	doc, err := p.Parse(strings.NewReader(input), "notes.txt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if doc.Title != "notes" {
		t.Errorf("expected title %q, got %q", "notes", doc.Title)
	}
	if len(doc.Pages) != 1 {
		t.Fatalf("expected 1 page, got %d", len(doc.Pages))
	}
	if doc.Pages[0].Number != 1 {
		t.Errorf("expected page number 1, got %d", doc.Pages[0].Number)
	}
	if doc.Text() != input {
		t.Errorf("expected %q, got %q", input, doc.Text())
	}
}

func TestTextParser_EmptyInput(t *testing.T) {
	p := &TextParser{}
	doc, err := p.Parse(strings.NewReader(""), "empty.txt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.Title != "empty" {
		t.Errorf("expected title %q, got %q", "empty", doc.Title)
	}
	if doc.Text() != "" {
		t.Errorf("expected empty text, got %q", doc.Text())
	}
}

func TestTextParser_WhitespaceOnly(t *testing.T) {
	p := &TextParser{}
	doc, err := p.Parse(strings.NewReader("  \n\t \n"), "ws.txt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.Text() != "" {
		t.Errorf("expected whitespace-only input to yield empty text, got %q", doc.Text())
	}
	if pages := doc.EmptyPages(); len(pages) != 1 || pages[0] != 1 {
		t.Errorf("expected page 1 reported empty, got %v", pages)
	}
}
