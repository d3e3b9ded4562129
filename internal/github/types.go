package github

// Commit is the subset of a GitHub commit object the service reads.
type Commit struct {
	SHA string `json:"sha"`
}

// CompareFile is one file entry of a compare response. Patch is empty
// for files with no textual change (pure renames, binary files).
type CompareFile struct {
	Filename string `json:"filename"`
	Patch    string `json:"patch"`
}

// Compare is the subset of GitHub's compare endpoint response the
// service consumes: the merge base and the per-file patches.
type Compare struct {
	MergeBaseCommit Commit        `json:"merge_base_commit"`
	Files           []CompareFile `json:"files"`
}

// Repository identifies one owner/name pair.
type Repository struct {
	Owner string
	Name  string
}

// String returns the owner/name form used in API paths and logs.
func (r Repository) String() string {
	return r.Owner + "/" + r.Name
}

// teamRepo is one repository entry of the team-data repos document.
type teamRepo struct {
	Name string `json:"name"`
}

// teamReposDoc is the authorization dataset: org name to repo list.
type teamReposDoc struct {
	Repos map[string][]teamRepo `json:"repos"`
}
