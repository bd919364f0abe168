package vectorsearch

import "strings"

const (
	defaultChunkSize = 500
	defaultOverlap   = 50
)

var sentenceBreaks = []string{". ", "! ", "? "}

// ChunkText splits text into overlapping chunks for embedding, preferring
// a paragraph break, then a sentence break, then a hard cut at chunkSize
// (§4.G). A chunkSize or overlap <= 0 uses the package defaults (500/50).
// Ported from original_source/backend/src/agents/rag.py's chunk_text.
func ChunkText(text string, chunkSize, overlap int) []string {
	if chunkSize <= 0 {
		chunkSize = defaultChunkSize
	}
	if overlap <= 0 {
		overlap = defaultOverlap
	}
	if len(text) <= chunkSize {
		return []string{text}
	}

	var chunks []string
	start := 0
	for start < len(text) {
		end := start + chunkSize
		if end > len(text) {
			end = len(text)
		}

		if end < len(text) {
			if para := lastIndexInRange(text, "\n\n", start, end); para > start+chunkSize/2 {
				end = para + 2
			} else {
				for _, punct := range sentenceBreaks {
					if sent := lastIndexInRange(text, punct, start, end); sent > start+chunkSize/2 {
						end = sent + 2
						break
					}
				}
			}
		}

		chunk := strings.TrimSpace(text[start:end])
		if chunk != "" {
			chunks = append(chunks, chunk)
		}
		next := end - overlap
		if next <= start {
			next = end
		}
		start = next
	}
	return chunks
}

// lastIndexInRange returns the last index of sep within text[start:end],
// offset back into the full string's coordinates, or -1 if absent.
func lastIndexInRange(text, sep string, start, end int) int {
	if end > len(text) {
		end = len(text)
	}
	if start >= end {
		return -1
	}
	idx := strings.LastIndex(text[start:end], sep)
	if idx < 0 {
		return -1
	}
	return start + idx
}
