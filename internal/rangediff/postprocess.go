package rangediff

import "strings"

// slideChanges nudges ambiguous hunk boundaries after the raw alignment.
// A run of changed tokens bordered by an identical token on either side
// admits several equally-valid placements; this pass absorbs adjacent
// runs where sliding makes them touch, then settles each run on the
// split with the most readable boundary. Purely cosmetic, but it must
// stay deterministic so identical inputs render identically.
func slideChanges(in *Interner, tokens []Token, changed []bool) {
	i := 0
	for i < len(tokens) {
		if !changed[i] {
			i++
			continue
		}
		s, e := i, i+1
		for e < len(tokens) && changed[e] {
			e++
		}

		for {
			merged := false

			// Slide upward as far as the tokens allow, absorbing any
			// run the group touches on the way.
			for s > 0 && !changed[s-1] && tokens[s-1] == tokens[e-1] {
				changed[s-1] = true
				changed[e-1] = false
				s--
				e--
			}
			for s > 0 && changed[s-1] {
				s--
				merged = true
			}
			top := s

			// Slide downward likewise.
			for e < len(tokens) && !changed[e] && tokens[s] == tokens[e] {
				changed[s] = false
				changed[e] = true
				s++
				e++
			}
			for e < len(tokens) && changed[e] {
				e++
				merged = true
			}

			if merged {
				continue
			}

			// The group now sits at its lowest position with the full
			// slide range [top, s] known. Walk back up scoring each
			// candidate split; ties go to the topmost position.
			bestS := s
			bestScore := splitScore(in, tokens, s, e)
			cs, ce := s, e
			for cs > top {
				changed[cs-1] = true
				changed[ce-1] = false
				cs--
				ce--
				if sc := splitScore(in, tokens, cs, ce); sc >= bestScore {
					bestS, bestScore = cs, sc
				}
			}
			for cs < bestS {
				changed[cs] = false
				changed[ce] = true
				cs++
				ce++
			}
			i = ce
			break
		}
	}
}

// splitScore rates a candidate placement of a changed run at [s, e).
// Boundaries next to blank lines or lone brackets read better than
// boundaries in the middle of a statement.
func splitScore(in *Interner, tokens []Token, s, e int) int {
	score := 0
	if s == 0 || isBoundaryToken(in.Text(tokens[s-1])) {
		score++
	}
	if e == len(tokens) || isBoundaryToken(in.Text(tokens[e])) {
		score++
	}
	return score
}

func isBoundaryToken(text string) bool {
	switch strings.TrimSpace(text) {
	case "", "{", "}", "(", ")", "[", "]":
		return true
	}
	return false
}
