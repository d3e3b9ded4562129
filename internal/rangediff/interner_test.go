package rangediff

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInterner_IdenticalSpansShareIdentity(t *testing.T) {
	in := NewInterner()

	a := in.Intern("foo")
	b := in.Intern("bar")
	c := in.Intern("foo")

	assert.Equal(t, a, c)
	assert.NotEqual(t, a, b)
	assert.Equal(t, "foo", in.Text(a))
	assert.Equal(t, "bar", in.Text(b))
	assert.Equal(t, 2, in.Len())
}

func TestInterner_InternLines_RoundTrip(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"empty", ""},
		{"single line", "hello\n"},
		{"no trailing newline", "hello"},
		{"multiple lines", "-foo\n+bar\n context\n"},
		{"blank lines", "\n\n\n"},
		{"last line unterminated", "a\nb\nc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := NewInterner()
			tokens := in.InternLines(tt.text)

			var sb strings.Builder
			for _, tok := range tokens {
				sb.WriteString(in.Text(tok))
			}
			assert.Equal(t, tt.text, sb.String())
		})
	}
}

func TestInterner_InternLines_SharedAcrossSides(t *testing.T) {
	in := NewInterner()
	oldTokens := in.InternLines("shared\nold only\n")
	newTokens := in.InternLines("shared\nnew only\n")

	require.Len(t, oldTokens, 2)
	require.Len(t, newTokens, 2)
	assert.Equal(t, oldTokens[0], newTokens[0])
	assert.NotEqual(t, oldTokens[1], newTokens[1])
}

func TestInterner_InternWords_RoundTrip(t *testing.T) {
	tests := []struct {
		name string
		line string
	}{
		{"empty", ""},
		{"code", "fn a() { }\n"},
		{"punctuation runs", "x += y; // trailing"},
		{"unicode", "héllo wörld"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := NewInterner()
			tokens := in.InternWords(tt.line)

			var sb strings.Builder
			for _, tok := range tokens {
				sb.WriteString(in.Text(tok))
			}
			assert.Equal(t, tt.line, sb.String())
		})
	}
}
