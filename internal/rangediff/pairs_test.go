package rangediff

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAlignPairs_Completeness(t *testing.T) {
	oldFiles := []File{
		{Filename: "a.rs", Patch: "old a"},
		{Filename: "b.rs", Patch: "old b"},
	}
	newFiles := []File{
		{Filename: "b.rs", Patch: "new b"},
		{Filename: "c.rs", Patch: "new c"},
	}

	pairs := AlignPairs(oldFiles, newFiles)

	require.Len(t, pairs, 3)
	assert.Equal(t, FilePair{Filename: "a.rs", OldPatch: "old a", NewPatch: ""}, pairs[0])
	assert.Equal(t, FilePair{Filename: "b.rs", OldPatch: "old b", NewPatch: "new b"}, pairs[1])
	assert.Equal(t, FilePair{Filename: "c.rs", OldPatch: "", NewPatch: "new c"}, pairs[2])
}

func TestAlignPairs_NoDuplicates(t *testing.T) {
	oldFiles := []File{
		{Filename: "a.rs", Patch: "first"},
		{Filename: "a.rs", Patch: "duplicate"},
	}
	newFiles := []File{
		{Filename: "a.rs", Patch: "new"},
	}

	pairs := AlignPairs(oldFiles, newFiles)

	require.Len(t, pairs, 1)
	assert.Equal(t, "first", pairs[0].OldPatch)
	assert.Equal(t, "new", pairs[0].NewPatch)
}

func TestAlignPairs_Empty(t *testing.T) {
	assert.Empty(t, AlignPairs(nil, nil))
}

func TestSortFiles(t *testing.T) {
	files := []File{
		{Filename: "z.rs"},
		{Filename: "a.rs"},
		{Filename: "m.rs"},
	}
	SortFiles(files)

	assert.Equal(t, "a.rs", files[0].Filename)
	assert.Equal(t, "m.rs", files[1].Filename)
	assert.Equal(t, "z.rs", files[2].Filename)
}
