package ui

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTable_AlignsColumns(t *testing.T) {
	SetColor(false)
	var buf bytes.Buffer
	Table(&buf, []string{"TAG", "COUNT"}, [][]string{{"Growth", "12"}, {"AI", "3"}})

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	assert.Len(t, lines, 4)
	assert.Equal(t, "  TAG     COUNT", lines[0])
	assert.Equal(t, "  Growth  12", lines[2])
	assert.Equal(t, "  AI      3", lines[3])
}

func TestTable_EmptyPrintsNothing(t *testing.T) {
	var buf bytes.Buffer
	Table(&buf, []string{"A"}, nil)
	assert.Empty(t, buf.String())
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", Truncate("short", 10))
	assert.Equal(t, "abcd...", Truncate("abcdefghij", 7))
	assert.Equal(t, "ab", Truncate("abcdef", 2))
}

func TestTruncateMiddle(t *testing.T) {
	assert.Equal(t, "short", TruncateMiddle("short", 10))
	assert.Equal(t, "trans....txt", TruncateMiddle("transcripts.txt", 12))
	assert.Equal(t, "abc", TruncateMiddle("abcdef", 3))
}
