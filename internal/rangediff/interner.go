package rangediff

import (
	"strings"

	"github.com/clipperhouse/uax29/v2/words"
)

// Token is the interned identity of one comparison unit (a line or a
// word-boundary span). Tokens are only comparable within the Interner
// that produced them.
type Token int

// Interner deduplicates comparison units so the differ compares small
// integers instead of byte ranges. It is request-scoped: build one per
// comparison, discard it afterwards.
type Interner struct {
	ids   map[string]Token
	spans []string
}

// NewInterner creates an empty interner.
func NewInterner() *Interner {
	return &Interner{ids: make(map[string]Token)}
}

// Intern returns the Token for s, assigning a fresh identity on first sight.
func (in *Interner) Intern(s string) Token {
	if id, ok := in.ids[s]; ok {
		return id
	}
	id := Token(len(in.spans))
	in.ids[s] = id
	in.spans = append(in.spans, s)
	return id
}

// Text returns the original span a Token stands for.
func (in *Interner) Text(t Token) string {
	return in.spans[t]
}

// Len returns the number of distinct tokens interned so far.
func (in *Interner) Len() int {
	return len(in.spans)
}

// InternLines splits text into newline-terminated lines and interns each
// one. The final line is kept even without a trailing newline, so
// concatenating the tokens' text reproduces the input exactly.
func (in *Interner) InternLines(text string) []Token {
	if text == "" {
		return nil
	}

	var tokens []Token
	for len(text) > 0 {
		idx := strings.IndexByte(text, '\n')
		if idx < 0 {
			tokens = append(tokens, in.Intern(text))
			break
		}
		tokens = append(tokens, in.Intern(text[:idx+1]))
		text = text[idx+1:]
	}
	return tokens
}

// InternWords splits line into Unicode word-boundary spans (UAX #29) and
// interns each one. Whitespace and punctuation runs are spans of their
// own, so the segmentation is total: concatenating the tokens' text
// reproduces the line.
func (in *Interner) InternWords(line string) []Token {
	if line == "" {
		return nil
	}

	var tokens []Token
	iter := words.FromString(line)
	for iter.Next() {
		tokens = append(tokens, in.Intern(iter.Value()))
	}
	return tokens
}
