package rangediff

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func changedTexts(spans []WordSpan) []string {
	var out []string
	for _, s := range spans {
		if s.Changed {
			out = append(out, s.Text)
		}
	}
	return out
}

func TestHighlightWords_ActivationRule(t *testing.T) {
	t.Run("equal counts activates", func(t *testing.T) {
		oldLines, newLines := HighlightWords(
			[]string{"+foo\n", "+bar\n"},
			[]string{"+foo2\n", "+bar2\n"},
		)
		assert.NotNil(t, oldLines)
		assert.NotNil(t, newLines)
		assert.Len(t, oldLines, 2)
		assert.Len(t, newLines, 2)
	})

	t.Run("unequal counts skips", func(t *testing.T) {
		oldLines, newLines := HighlightWords(
			[]string{"+foo\n", "+bar\n"},
			[]string{"+foo2\n"},
		)
		assert.Nil(t, oldLines)
		assert.Nil(t, newLines)
	})

	t.Run("one side empty skips", func(t *testing.T) {
		oldLines, newLines := HighlightWords(nil, []string{"+foo\n"})
		assert.Nil(t, oldLines)
		assert.Nil(t, newLines)
	})
}

func TestHighlightWords_MarksOnlyChangedSpans(t *testing.T) {
	oldLines, newLines := HighlightWords(
		[]string{"fn a() {}\n"},
		[]string{"fn a() { }\n"},
	)
	require.Len(t, oldLines, 1)
	require.Len(t, newLines, 1)

	assert.Empty(t, changedTexts(oldLines[0]), "old side has no removed spans")
	assert.Equal(t, []string{" "}, changedTexts(newLines[0]), "only the inserted space is marked")
}

func TestHighlightWords_SpansRoundTrip(t *testing.T) {
	oldLine := "let x = compute(a, b);\n"
	newLine := "let y = compute(a, c);\n"

	oldLines, newLines := HighlightWords([]string{oldLine}, []string{newLine})
	require.Len(t, oldLines, 1)
	require.Len(t, newLines, 1)

	var oldSB, newSB strings.Builder
	for _, s := range oldLines[0] {
		oldSB.WriteString(s.Text)
	}
	for _, s := range newLines[0] {
		newSB.WriteString(s.Text)
	}
	assert.Equal(t, oldLine, oldSB.String())
	assert.Equal(t, newLine, newSB.String())

	assert.ElementsMatch(t, []string{"x", "b"}, changedTexts(oldLines[0]))
	assert.ElementsMatch(t, []string{"y", "c"}, changedTexts(newLines[0]))
}

func TestHighlightWords_IdenticalLines(t *testing.T) {
	oldLines, newLines := HighlightWords([]string{"same\n"}, []string{"same\n"})
	require.Len(t, oldLines, 1)
	assert.Empty(t, changedTexts(oldLines[0]))
	assert.Empty(t, changedTexts(newLines[0]))
}
