package rangediff

import "sort"

// File is one side's patch for a single file, as returned by the
// compare endpoint. Patch may be empty (pure rename, binary file).
type File struct {
	Filename string
	Patch    string
}

// FilePair holds the old and new patch text for one filename. A file
// present on only one side gets an empty counterpart.
type FilePair struct {
	Filename string
	OldPatch string
	NewPatch string
}

// SortFiles orders files by filename, matching the ordering GitHub's
// own compare UI uses.
func SortFiles(files []File) {
	sort.SliceStable(files, func(i, j int) bool {
		return files[i].Filename < files[j].Filename
	})
}

// AlignPairs matches the two file lists by filename. Old-side files
// come first in old-list order, then any new-only files in new-list
// order. No filename appears twice.
func AlignPairs(oldFiles, newFiles []File) []FilePair {
	newByName := make(map[string]string, len(newFiles))
	for _, f := range newFiles {
		newByName[f.Filename] = f.Patch
	}

	seen := make(map[string]bool, len(oldFiles))
	pairs := make([]FilePair, 0, len(oldFiles)+len(newFiles))

	for _, f := range oldFiles {
		if seen[f.Filename] {
			continue
		}
		seen[f.Filename] = true
		pairs = append(pairs, FilePair{
			Filename: f.Filename,
			OldPatch: f.Patch,
			NewPatch: newByName[f.Filename],
		})
	}

	for _, f := range newFiles {
		if seen[f.Filename] {
			continue
		}
		seen[f.Filename] = true
		pairs = append(pairs, FilePair{
			Filename: f.Filename,
			NewPatch: f.Patch,
		})
	}

	return pairs
}
