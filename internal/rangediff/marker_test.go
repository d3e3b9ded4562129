package rangediff

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeMarkers_RewritesHeaders(t *testing.T) {
	patch := "@@ -1,4 +1,5 @@\n context\n+added\n@@ -10,3 +11,3 @@\n more\n"

	got := NormalizeMarkers("src/lib.rs", patch)

	assert.NotContains(t, got, "@@ -1,4 +1,5 @@")
	assert.NotContains(t, got, "@@ -10,3 +11,3 @@")
	assert.Contains(t, got, "@@ src/lib.rs: @@")
}

func TestNormalizeMarkers_NoHeaders(t *testing.T) {
	// A pure rename has no hunk headers; the patch passes through.
	assert.Equal(t, "", NormalizeMarkers("a.rs", ""))
	assert.Equal(t, "plain text\n", NormalizeMarkers("a.rs", "plain text\n"))
}

func TestNormalizeMarkers_MarkerBlindness(t *testing.T) {
	// Two patches identical except for hunk-header line numbers must
	// diff as equal after normalization.
	oldPatch := "@@ -1,3 +1,4 @@\n fn a() {}\n+fn b() {}\n"
	newPatch := "@@ -20,3 +24,4 @@\n fn a() {}\n+fn b() {}\n"

	in := NewInterner()
	oldTokens := in.InternLines(NormalizeMarkers("lib.rs", oldPatch))
	newTokens := in.InternLines(NormalizeMarkers("lib.rs", newPatch))
	hunks := NewSequenceDiffer(in).Diff(oldTokens, newTokens)

	require.NotEmpty(t, hunks)
	assert.False(t, HasChanges(hunks))
}

func TestNormalizeMarkers_AdversarialContent(t *testing.T) {
	// A line that merely resembles a hunk header but does not match the
	// exact pattern must survive untouched.
	patch := "@@ -a,b +c,d @@\n@@ incomplete\n"
	assert.Equal(t, patch, NormalizeMarkers("lib.rs", patch))
}
