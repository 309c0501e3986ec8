package parser

import (
	"io"

	"github.com/dgallion1/reportgest/internal/document"
)

// TextParser handles plain text files. The whole file is one page.
type TextParser struct{}

func (p *TextParser) Parse(r io.Reader, filename string) (*document.Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return &document.Document{
		Title: titleFromFilename(filename),
		Pages: []document.Page{{Number: 1, Text: string(data)}},
	}, nil
}
