package rangediff

// WordSpan is one word-boundary span of a line, flagged if the span
// differs from the paired line.
type WordSpan struct {
	Text    string
	Changed bool
}

// HighlightWords computes word-level highlighting for one change block.
// It only activates when the removed and added line counts match: the
// i-th removed line is paired with the i-th added line and each pair is
// re-aligned at word granularity. With unequal counts the pairing would
// be ambiguous, so the block is rendered as whole lines and (nil, nil)
// is returned.
//
// Pairing is positional, not similarity-based. Reordered lines inside
// an equal-count block will therefore mis-pair and over-highlight;
// git range-diff pairs by similarity instead.
func HighlightWords(removed, added []string) (oldLines, newLines [][]WordSpan) {
	if len(removed) == 0 || len(removed) != len(added) {
		return nil, nil
	}

	oldLines = make([][]WordSpan, len(removed))
	newLines = make([][]WordSpan, len(added))
	for i := range removed {
		oldLines[i], newLines[i] = highlightPair(removed[i], added[i])
	}
	return oldLines, newLines
}

// highlightPair aligns one removed/added line pair at word granularity.
func highlightPair(oldLine, newLine string) (oldSpans, newSpans []WordSpan) {
	in := NewInterner()
	oldTokens := in.InternWords(oldLine)
	newTokens := in.InternWords(newLine)

	hunks := NewSequenceDiffer(in).Diff(oldTokens, newTokens)

	for _, h := range hunks {
		switch h.Kind {
		case HunkContext:
			for _, t := range h.Tokens {
				span := WordSpan{Text: in.Text(t)}
				oldSpans = append(oldSpans, span)
				newSpans = append(newSpans, span)
			}
		case HunkRemoved:
			for _, t := range h.Tokens {
				oldSpans = append(oldSpans, WordSpan{Text: in.Text(t), Changed: true})
			}
		case HunkAdded:
			for _, t := range h.Tokens {
				newSpans = append(newSpans, WordSpan{Text: in.Text(t), Changed: true})
			}
		}
	}
	return oldSpans, newSpans
}
