package sections

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"collapses spaces", "a   b", "a b"},
		{"newlines become spaces", "line one\n\nline two\n", "line one line two"},
		{"tabs and form feeds", "a\t\fb\r\nc", "a b c"},
		{"trims ends", "  padded  ", "padded"},
		{"unicode space", "a  b", "a b"},
		{"empty", "", ""},
		{"whitespace only", " \n\t ", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.in))
		})
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	inputs := []string{
		"",
		"plain",
		"  Future Prospects\n\nwe  expect\tgrowth \n",
		" x y\u0085z ",
	}
	for _, in := range inputs {
		once := Normalize(in)
		assert.Equal(t, once, Normalize(once), "input %q", in)
	}
}

func TestSplit_EndToEndExample(t *testing.T) {
	s := NewSplitter([]string{"Future Prospects", "Key Changes"})
	got := s.Split("Intro text Future Prospects we expect growth Key Changes restructuring occurred")

	require.Len(t, got, 2)
	assert.Equal(t, "Future Prospects we expect growth ", got[0].Text)
	assert.Equal(t, "Future Prospects", got[0].Heading)
	assert.Equal(t, "Key Changes restructuring occurred", got[1].Text)
	assert.Equal(t, "Key Changes", got[1].Heading)
}

func TestSplit_NoHeadingsReturnsWholeText(t *testing.T) {
	s := NewSplitter(nil)
	for _, in := range []string{"", "revenue rose in every region", "Future only"} {
		got := s.Split(in)
		require.Len(t, got, 1, "input %q", in)
		assert.Equal(t, in, got[0].Text)
		assert.Empty(t, got[0].Heading)
	}
}

func TestSplit_CaseInsensitiveKeepsOriginalToken(t *testing.T) {
	s := NewSplitter(nil)
	got := s.Split("TRIGGERS new contract material impacts margin")

	require.Len(t, got, 2)
	assert.Equal(t, "Triggers", got[0].Heading)
	assert.True(t, strings.HasPrefix(got[0].Text, "TRIGGERS"))
	assert.Equal(t, "Material Impacts", got[1].Heading)
	assert.Equal(t, "material impacts margin", got[1].Text)
}

func TestSplit_KSectionsCoverInputAfterPreamble(t *testing.T) {
	s := NewSplitter(nil)
	text := "Preamble. Key Changes one. Triggers two. Key Changes three. Other Information four."
	got := s.Split(text)

	require.Len(t, got, 4)
	var joined strings.Builder
	for _, sec := range got {
		assert.True(t, strings.HasPrefix(strings.ToLower(sec.Text), strings.ToLower(sec.Heading)),
			"section %q should begin with heading %q", sec.Text, sec.Heading)
		joined.WriteString(sec.Text)
	}
	first := strings.Index(text, "Key Changes")
	assert.Equal(t, text[first:], joined.String())
}

func TestSplit_RepeatedAndAdjacentHeadings(t *testing.T) {
	s := NewSplitter(nil)
	got := s.Split("Triggers Triggers x")

	require.Len(t, got, 2)
	assert.Equal(t, "Triggers ", got[0].Text)
	assert.Equal(t, "Triggers x", got[1].Text)
}

func TestSplit_HeadingAtEnd(t *testing.T) {
	s := NewSplitter(nil)
	got := s.Split("body text Other Information")

	require.Len(t, got, 1)
	assert.Equal(t, "Other Information", got[0].Text)
}

func TestSplit_KeepPreamble(t *testing.T) {
	s := NewSplitter([]string{"Future Prospects", "Key Changes"}, WithPreamble(true))
	got := s.Split("Intro text Future Prospects we expect growth Key Changes restructuring occurred")

	require.Len(t, got, 3)
	assert.Equal(t, "Intro text ", got[0].Text)
	assert.Empty(t, got[0].Heading)
	assert.Equal(t, "Future Prospects", got[1].Heading)
}

func TestSplit_KeepPreambleSkipsEmptyPreamble(t *testing.T) {
	s := NewSplitter(nil, WithPreamble(true))
	got := s.Split("Key Changes restructuring")

	require.Len(t, got, 1)
	assert.Equal(t, "Key Changes", got[0].Heading)
}

func TestSplit_Deterministic(t *testing.T) {
	s := NewSplitter(nil)
	text := "a Key Changes b Triggers c"
	assert.Equal(t, s.Split(text), s.Split(text))
}

func TestNewSplitter_EscapesAndDefaults(t *testing.T) {
	s := NewSplitter([]string{"  ", "Outlook (FY25)"})
	assert.Equal(t, []string{"Outlook (FY25)"}, s.Headings())

	got := s.Split("x outlook (fy25) strong")
	require.Len(t, got, 1)
	assert.Equal(t, "Outlook (FY25)", got[0].Heading)
	assert.Equal(t, "outlook (fy25) strong", got[0].Text)

	assert.Equal(t, DefaultHeadings, NewSplitter([]string{""}).Headings())
}
