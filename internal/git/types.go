package git

// Status summarizes the working tree of a repository.
type Status struct {
	// Branch is the current branch name ("HEAD" when detached)
	Branch string `json:"branch"`

	// IsClean is true when there are no staged, unstaged or untracked files
	IsClean bool `json:"isClean"`

	Staged    []string `json:"staged"`
	Unstaged  []string `json:"unstaged"`
	Untracked []string `json:"untracked"`

	// Ahead/Behind count commits relative to the upstream (0/0 when
	// no upstream is configured)
	Ahead  int `json:"ahead"`
	Behind int `json:"behind"`
}

// Commit describes a single commit in the history view.
type Commit struct {
	Hash      string `json:"hash"`
	ShortHash string `json:"shortHash"`
	Message   string `json:"message"`
	Author    string `json:"author"`
	Email     string `json:"email"`
	Date      string `json:"date"`
}

// CommitFile is one path touched by a commit, with the change status
// letter git reports (A, M, D, R...).
type CommitFile struct {
	Path   string `json:"path"`
	Status string `json:"status"`
}

// CommitDetail pairs a commit with its full message body and the files
// it touched.
type CommitDetail struct {
	Commit
	Body  string       `json:"body"`
	Files []CommitFile `json:"files"`
}

// Branch describes a local or remote branch.
type Branch struct {
	Name      string `json:"name"`
	IsCurrent bool   `json:"isCurrent"`
	IsRemote  bool   `json:"isRemote"`
	Upstream  string `json:"upstream,omitempty"`
}

// Remote describes a configured remote with its fetch and push URLs.
type Remote struct {
	Name     string `json:"name"`
	FetchURL string `json:"fetchUrl"`
	PushURL  string `json:"pushUrl"`
}

// Repo is a repository candidate discovered by the scanner.
type Repo struct {
	Path string `json:"path"`
	Name string `json:"name"`
}
