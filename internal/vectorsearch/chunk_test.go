package vectorsearch

import (
	"strings"
	"testing"
)

func TestChunkTextShortTextReturnsSingleChunk(t *testing.T) {
	chunks := ChunkText("short text", 500, 50)
	if len(chunks) != 1 || chunks[0] != "short text" {
		t.Fatalf("expected single unchanged chunk, got %v", chunks)
	}
}

func TestChunkTextPrefersParagraphBreak(t *testing.T) {
	para1 := strings.Repeat("a", 300)
	para2 := strings.Repeat("b", 300)
	text := para1 + "\n\n" + para2

	chunks := ChunkText(text, 350, 20)
	if len(chunks) < 2 {
		t.Fatalf("expected at least 2 chunks, got %d", len(chunks))
	}
	if !strings.HasSuffix(chunks[0], "a") {
		t.Fatalf("expected first chunk to end at the paragraph break, got suffix %q", chunks[0][len(chunks[0])-10:])
	}
}

func TestChunkTextHardCutNeverLoopsForever(t *testing.T) {
	text := strings.Repeat("x", 2000)
	chunks := ChunkText(text, 500, 50)
	if len(chunks) == 0 {
		t.Fatalf("expected at least one chunk")
	}
	var rebuilt int
	for _, c := range chunks {
		rebuilt += len(c)
	}
	if rebuilt < len(text) {
		t.Fatalf("chunks cover less text than the input: %d < %d", rebuilt, len(text))
	}
}

func TestChunkTextDropsEmptyChunks(t *testing.T) {
	text := strings.Repeat("z", 10)
	chunks := ChunkText(text, 500, 50)
	for _, c := range chunks {
		if strings.TrimSpace(c) == "" {
			t.Fatalf("expected no empty chunks, got %v", chunks)
		}
	}
}
