package rangediff

import (
	"fmt"
	"regexp"
)

// hunkMarkerRe matches the unified-diff hunk headers GitHub emits in
// compare patches.
var hunkMarkerRe = regexp.MustCompile(`@@ -\d+,\d+ \+\d+,\d+ @@`)

// NormalizeMarkers rewrites every hunk header in patch to a sentinel
// derived from the file name. Hunk headers carry line numbers that
// drift whenever unrelated earlier edits move the file around; left
// as-is they would register as content changes on every rebase, and
// two unrelated headers could just as easily match as equal lines.
// Both sides of a pair get the same sentinel, so header-only drift
// disappears from the diff entirely.
func NormalizeMarkers(filename, patch string) string {
	if patch == "" {
		return patch
	}
	sentinel := fmt.Sprintf("@@ %s: @@", filename)
	return hunkMarkerRe.ReplaceAllString(patch, sentinel)
}
