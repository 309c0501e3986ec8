package chunker

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestSplit_ExactMultiple(t *testing.T) {
	text := strings.Repeat("a", 2048)
	chunks := Split(text, 1024)
	if len(chunks) != 2 {
		t.Fatalf("expected 2 chunks, got %d", len(chunks))
	}
	for i, c := range chunks {
		if len(c) != 1024 {
			t.Errorf("chunk %d: expected length 1024, got %d", i, len(c))
		}
	}
}

func TestSplit_ShortFinalChunk(t *testing.T) {
	text := strings.Repeat("x", 2500)
	chunks := Split(text, 1024)
	if len(chunks) != 3 {
		t.Fatalf("expected 3 chunks, got %d", len(chunks))
	}
	if len(chunks[2]) != 452 {
		t.Errorf("expected final chunk of 452 chars, got %d", len(chunks[2]))
	}
}

func TestSplit_PartitionsExactly(t *testing.T) {
	// Property: for length L and size C there are ceil(L/C) chunks that
	// rebuild the input with nothing lost or repeated.
	text := "The quick brown fox jumps over the lazy dog. "
	for _, size := range []int{1, 2, 3, 7, 10, 44, 45, 46, 1024} {
		chunks := Split(text, size)
		want := (len(text) + size - 1) / size
		if len(chunks) != want {
			t.Errorf("size %d: expected %d chunks, got %d", size, want, len(chunks))
		}
		if got := strings.Join(chunks, ""); got != text {
			t.Errorf("size %d: chunks do not rebuild input: %q", size, got)
		}
		for i, c := range chunks {
			if utf8.RuneCountInString(c) > size {
				t.Errorf("size %d: chunk %d too long (%d)", size, i, utf8.RuneCountInString(c))
			}
		}
	}
}

func TestSplit_CountsCharactersNotBytes(t *testing.T) {
	text := strings.Repeat("€", 5) // 3 bytes each
	chunks := Split(text, 2)
	if len(chunks) != 3 {
		t.Fatalf("expected 3 chunks, got %d", len(chunks))
	}
	if chunks[0] != "€€" || chunks[2] != "€" {
		t.Errorf("unexpected chunks %q", chunks)
	}
	for i, c := range chunks {
		if !utf8.ValidString(c) {
			t.Errorf("chunk %d is not valid UTF-8", i)
		}
	}
}

func TestSplit_EmptyText(t *testing.T) {
	if chunks := Split("", 1024); len(chunks) != 0 {
		t.Errorf("expected 0 chunks, got %d", len(chunks))
	}
}

func TestSplit_DefaultSizeFallback(t *testing.T) {
	text := strings.Repeat("b", DefaultSize+1)
	chunks := Split(text, 0)
	if len(chunks) != 2 {
		t.Fatalf("expected 2 chunks with default size, got %d", len(chunks))
	}
	if len(chunks[0]) != DefaultSize {
		t.Errorf("expected first chunk of %d chars, got %d", DefaultSize, len(chunks[0]))
	}
}
