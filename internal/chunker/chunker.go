package chunker

// DefaultSize is the chunk length, in characters, used when none is set.
const DefaultSize = 1024

// Split breaks text into contiguous, non-overlapping chunks of at most
// size characters (Unicode code points). The last chunk may be shorter.
// Boundaries ignore words and sentences. Empty text yields no chunks.
func Split(text string, size int) []string {
	if size <= 0 {
		size = DefaultSize
	}
	if text == "" {
		return nil
	}

	chunks := make([]string, 0, len(text)/size+1)
	start, count := 0, 0
	for i := range text {
		if count == size {
			chunks = append(chunks, text[start:i])
			start, count = i, 0
		}
		count++
	}
	chunks = append(chunks, text[start:])
	return chunks
}
