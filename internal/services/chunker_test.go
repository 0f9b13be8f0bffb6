package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChunkTextShortInput(t *testing.T) {
	chunker := NewTextChunker()

	chunks := chunker.ChunkText("One short paragraph.", 1000, 200)
	require.Len(t, chunks, 1)
	assert.Equal(t, "One short paragraph.", chunks[0])
}

func TestChunkTextEmptyInput(t *testing.T) {
	chunker := NewTextChunker()

	assert.Empty(t, chunker.ChunkText("", 1000, 200))
	assert.Empty(t, chunker.ChunkText("\n\n\n\n", 1000, 200))
}

func TestChunkTextSplitsLongInput(t *testing.T) {
	chunker := NewTextChunker()

	var paragraphs []string
	for i := 0; i < 20; i++ {
		paragraphs = append(paragraphs, strings.Repeat("word ", 30))
	}
	text := strings.Join(paragraphs, "\n\n")

	chunks := chunker.ChunkText(text, 300, 50)
	require.Greater(t, len(chunks), 1)

	for _, chunk := range chunks {
		// Overlap prefix plus one piece can push slightly past the limit,
		// but nothing should balloon.
		assert.LessOrEqual(t, len(chunk), 300+160)
	}
}

func TestChunkTextOverlapCarriesContext(t *testing.T) {
	chunker := NewTextChunker()

	text := strings.Repeat("alpha ", 40) + "\n\n" + strings.Repeat("beta ", 40)
	chunks := chunker.ChunkText(text, 200, 40)
	require.Greater(t, len(chunks), 1)

	// The second chunk should start with the tail of the first.
	tail := chunks[0][len(chunks[0])-10:]
	assert.Contains(t, chunks[1], strings.TrimSpace(tail))
}

func TestChunkTextDefaultsOnBadParams(t *testing.T) {
	chunker := NewTextChunker()

	// Zero size and negative overlap fall back to sane values instead of
	// looping or panicking.
	chunks := chunker.ChunkText("Some resume text.", 0, -5)
	require.Len(t, chunks, 1)

	chunks = chunker.ChunkText("Some resume text.", 100, 100)
	require.Len(t, chunks, 1)
}

func TestSplitIntoSentences(t *testing.T) {
	sentences := splitIntoSentences("First sentence. Second one! Third? ")
	assert.Equal(t, []string{"First sentence", "Second one", "Third"}, sentences)
}

func TestLastNRunes(t *testing.T) {
	assert.Equal(t, "", lastNRunes("hello", 0))
	assert.Equal(t, "llo", lastNRunes("hello", 3))
	assert.Equal(t, "hello", lastNRunes("hello", 10))
}
