package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeLines(n int) []Line {
	lines := make([]Line, n)
	for i := range lines {
		lines[i] = Line{Words: []string{string(rune('a' + i%26))}, Kind: LineBody}
	}
	return lines
}

func TestPaginateChunksInOrder(t *testing.T) {
	lines := makeLines(7)
	chunks := paginate(lines, 3, 10)
	require.Len(t, chunks, 3)
	assert.Len(t, chunks[0], 3)
	assert.Len(t, chunks[1], 3)
	assert.Len(t, chunks[2], 1)

	var total int
	for _, ch := range chunks {
		total += len(ch)
	}
	assert.Equal(t, len(lines), total)
	assert.Equal(t, lines[3], chunks[1][0])
}

func TestPaginateTruncatesTrailingOverflow(t *testing.T) {
	lines := makeLines(10)
	chunks := paginate(lines, 3, 2)
	require.Len(t, chunks, 2)
	// Dropped lines are exactly the trailing overflow.
	assert.Equal(t, lines[:3], chunks[0])
	assert.Equal(t, lines[3:6], chunks[1])
}

func TestPaginateGuardsDegenerateCapacity(t *testing.T) {
	chunks := paginate(makeLines(2), 0, 5)
	require.Len(t, chunks, 2)
	assert.Len(t, chunks[0], 1)
}
