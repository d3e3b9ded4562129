package rangediff

// HunkKind classifies a run of tokens in a diff.
type HunkKind int

const (
	// HunkContext marks tokens present on both sides.
	HunkContext HunkKind = iota
	// HunkRemoved marks tokens present only on the old side.
	HunkRemoved
	// HunkAdded marks tokens present only on the new side.
	HunkAdded
)

// Hunk is a maximal run of tokens sharing one classification. Hunks are
// emitted in left-to-right order and partition both input sequences:
// concatenating the context and removed hunks reproduces the old
// sequence, context and added hunks the new one.
type Hunk struct {
	Kind   HunkKind
	Tokens []Token
}

// maxChainLength caps the occurrence count a token may have and still be
// considered as an anchor. Matches git's histogram default.
const maxChainLength = 64

// SequenceDiffer aligns two token sequences over a shared interner using
// a histogram-style algorithm: rare tokens common to both sides are
// chosen as synchronization anchors and the gaps between them are
// aligned recursively. The zero value is not usable; construct with
// NewSequenceDiffer.
type SequenceDiffer struct {
	in *Interner
}

// NewSequenceDiffer creates a differ bound to the given interner.
func NewSequenceDiffer(in *Interner) *SequenceDiffer {
	return &SequenceDiffer{in: in}
}

// Diff computes the ordered hunk list for the two sequences. The result
// is deterministic for identical inputs.
func (d *SequenceDiffer) Diff(oldTokens, newTokens []Token) []Hunk {
	oldChanged := make([]bool, len(oldTokens))
	newChanged := make([]bool, len(newTokens))

	d.align(oldTokens, newTokens, oldChanged, newChanged, 0, len(oldTokens), 0, len(newTokens))

	slideChanges(d.in, oldTokens, oldChanged)
	slideChanges(d.in, newTokens, newChanged)

	return buildHunks(oldTokens, newTokens, oldChanged, newChanged)
}

// align marks removed/added positions in the changed masks for the
// ranges old[olo:ohi) and new[nlo:nhi).
func (d *SequenceDiffer) align(old, new []Token, oldChanged, newChanged []bool, olo, ohi, nlo, nhi int) {
	// Trim the common prefix and suffix so anchors are only searched in
	// the genuinely diverging middle.
	for olo < ohi && nlo < nhi && old[olo] == new[nlo] {
		olo++
		nlo++
	}
	for ohi > olo && nhi > nlo && old[ohi-1] == new[nhi-1] {
		ohi--
		nhi--
	}

	if olo == ohi && nlo == nhi {
		return
	}
	if olo == ohi {
		markChanged(newChanged, nlo, nhi)
		return
	}
	if nlo == nhi {
		markChanged(oldChanged, olo, ohi)
		return
	}

	oldPos, newPos, ok := d.findAnchor(old, new, olo, ohi, nlo, nhi)
	if !ok {
		// No usable anchor: the whole range is one remove+add pair.
		markChanged(oldChanged, olo, ohi)
		markChanged(newChanged, nlo, nhi)
		return
	}

	// Grow the matched region around the anchor.
	matchLo, matchHi := oldPos, oldPos+1
	newMatchLo := newPos
	for matchLo > olo && newMatchLo > nlo && old[matchLo-1] == new[newMatchLo-1] {
		matchLo--
		newMatchLo--
	}
	newMatchHi := newPos + 1
	for matchHi < ohi && newMatchHi < nhi && old[matchHi] == new[newMatchHi] {
		matchHi++
		newMatchHi++
	}

	d.align(old, new, oldChanged, newChanged, olo, matchLo, nlo, newMatchLo)
	d.align(old, new, oldChanged, newChanged, matchHi, ohi, newMatchHi, nhi)
}

// findAnchor picks the synchronization anchor for the given ranges: the
// rarest token present on both sides, preferring tokens that occur with
// the same multiplicity on both sides, then the lower occurrence count,
// then the leftmost old-side position. Tokens occurring more than
// maxChainLength times are never anchors.
func (d *SequenceDiffer) findAnchor(old, new []Token, olo, ohi, nlo, nhi int) (oldPos, newPos int, ok bool) {
	occOld := make([]int, d.in.Len())
	occNew := make([]int, d.in.Len())
	for _, t := range old[olo:ohi] {
		occOld[t]++
	}
	for _, t := range new[nlo:nhi] {
		occNew[t]++
	}

	bestPos := -1
	bestCount := maxChainLength + 1
	bestBalanced := false
	var bestToken Token

	for i := olo; i < ohi; i++ {
		t := old[i]
		co, cn := occOld[t], occNew[t]
		if cn == 0 || co > maxChainLength || cn > maxChainLength {
			continue
		}
		count := co
		if cn > count {
			count = cn
		}
		balanced := co == cn
		switch {
		case count < bestCount:
		case count == bestCount && balanced && !bestBalanced:
		default:
			continue
		}
		bestPos = i
		bestCount = count
		bestBalanced = balanced
		bestToken = t
	}

	if bestPos < 0 {
		return 0, 0, false
	}
	for j := nlo; j < nhi; j++ {
		if new[j] == bestToken {
			return bestPos, j, true
		}
	}
	return 0, 0, false
}

func markChanged(changed []bool, lo, hi int) {
	for i := lo; i < hi; i++ {
		changed[i] = true
	}
}

// buildHunks folds the two changed masks into the ordered hunk list.
// Unchanged tokens pair up one-to-one across the sequences, so both
// cursors advance in lockstep through context runs.
func buildHunks(old, new []Token, oldChanged, newChanged []bool) []Hunk {
	var hunks []Hunk
	i, j := 0, 0
	for i < len(old) || j < len(new) {
		cs := i
		for i < len(old) && j < len(new) && !oldChanged[i] && !newChanged[j] {
			i++
			j++
		}
		if i > cs {
			hunks = append(hunks, Hunk{Kind: HunkContext, Tokens: old[cs:i]})
		}

		rs := i
		for i < len(old) && oldChanged[i] {
			i++
		}
		if i > rs {
			hunks = append(hunks, Hunk{Kind: HunkRemoved, Tokens: old[rs:i]})
		}

		as := j
		for j < len(new) && newChanged[j] {
			j++
		}
		if j > as {
			hunks = append(hunks, Hunk{Kind: HunkAdded, Tokens: new[as:j]})
		}

		if i == cs && i == rs && j == as {
			// Masks out of sync; treat the remainder as changed rather
			// than looping forever.
			if i < len(old) {
				hunks = append(hunks, Hunk{Kind: HunkRemoved, Tokens: old[i:]})
				i = len(old)
			}
			if j < len(new) {
				hunks = append(hunks, Hunk{Kind: HunkAdded, Tokens: new[j:]})
				j = len(new)
			}
		}
	}
	return hunks
}

// HasChanges reports whether the hunk list contains at least one
// non-context hunk.
func HasChanges(hunks []Hunk) bool {
	for _, h := range hunks {
		if h.Kind != HunkContext {
			return true
		}
	}
	return false
}
