package git

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePorcelain(t *testing.T) {
	output := "M  staged.go\n" +
		" M unstaged.go\n" +
		"MM both.go\n" +
		"?? new.txt\n" +
		"A  added.go\n"

	staged, unstaged, untracked := parsePorcelain(output)

	assert.Equal(t, []string{"staged.go", "both.go", "added.go"}, staged)
	assert.Equal(t, []string{"unstaged.go", "both.go"}, unstaged)
	assert.Equal(t, []string{"new.txt"}, untracked)
}

func TestParsePorcelain_QuotedPaths(t *testing.T) {
	_, _, untracked := parsePorcelain("?? \"with space.txt\"\n")
	require.Equal(t, []string{"with space.txt"}, untracked)
}

func TestParsePorcelain_Empty(t *testing.T) {
	staged, unstaged, untracked := parsePorcelain("")
	assert.Empty(t, staged)
	assert.Empty(t, unstaged)
	assert.Empty(t, untracked)
}

func TestParseAheadBehind(t *testing.T) {
	ahead, behind := parseAheadBehind("3\t1\n")
	assert.Equal(t, 3, ahead)
	assert.Equal(t, 1, behind)

	ahead, behind = parseAheadBehind("garbage")
	assert.Zero(t, ahead)
	assert.Zero(t, behind)
}

func TestParseBranches(t *testing.T) {
	output := "main\x1f*\x1forigin/main\x1frefs/heads/main\n" +
		"feature/x\x1f\x1f\x1frefs/heads/feature/x\n" +
		"origin/main\x1f\x1f\x1frefs/remotes/origin/main\n" +
		"origin/HEAD\x1f\x1f\x1frefs/remotes/origin/HEAD\n"

	branches := parseBranches(output)
	require.Len(t, branches, 3)

	assert.Equal(t, Branch{Name: "main", IsCurrent: true, Upstream: "origin/main"}, branches[0])
	// a local branch with a slash in its name is not a remote
	assert.Equal(t, Branch{Name: "feature/x", IsRemote: false}, branches[1])
	assert.Equal(t, Branch{Name: "origin/main", IsRemote: true}, branches[2])
}

func TestParseRemotes(t *testing.T) {
	output := "origin\thttps://example.com/org/repo.git (fetch)\n" +
		"origin\thttps://example.com/org/repo.git (push)\n" +
		"upstream\tgit@example.com:org/repo.git (fetch)\n"

	remotes := parseRemotes(output)
	require.Len(t, remotes, 2)

	assert.Equal(t, "origin", remotes[0].Name)
	assert.Equal(t, "https://example.com/org/repo.git", remotes[0].FetchURL)
	assert.Equal(t, "https://example.com/org/repo.git", remotes[0].PushURL)

	// push URL defaults to the fetch URL when no push line was seen
	assert.Equal(t, "upstream", remotes[1].Name)
	assert.Equal(t, "git@example.com:org/repo.git", remotes[1].PushURL)
}

func TestParseLog(t *testing.T) {
	output := "aaaa1111\x1faaaa111\x1fFix the parser\x1fAlice\x1falice@example.com\x1f2025-06-01T12:00:00+02:00\x1e" +
		"bbbb2222\x1fbbbb222\x1fInitial commit\x1fBob\x1fbob@example.com\x1f2025-05-30T09:00:00+02:00\x1e"

	commits := parseLog(output)
	require.Len(t, commits, 2)

	assert.Equal(t, Commit{
		Hash:      "aaaa1111",
		ShortHash: "aaaa111",
		Message:   "Fix the parser",
		Author:    "Alice",
		Email:     "alice@example.com",
		Date:      "2025-06-01T12:00:00+02:00",
	}, commits[0])
	assert.Equal(t, "Initial commit", commits[1].Message)
}

func TestParseLog_IgnoresMalformedRecords(t *testing.T) {
	commits := parseLog("not-enough-fields\x1e\x1e")
	assert.Empty(t, commits)
}

func TestParseCommitDetail(t *testing.T) {
	output := "aaaa1111\x1faaaa111\x1fFix the parser\x1fAlice\x1falice@example.com\x1f2025-06-01T12:00:00+02:00\x1fLong explanation\nover two lines.\x1e" +
		"\nM\tinternal/git/parse.go\n" +
		"R100\told name.go\tnew name.go\n" +
		"A\t\"with space.go\"\n"

	detail := parseCommitDetail(output)
	require.NotNil(t, detail)

	assert.Equal(t, "aaaa1111", detail.Hash)
	assert.Equal(t, "Fix the parser", detail.Message)
	assert.Equal(t, "Long explanation\nover two lines.", detail.Body)

	require.Len(t, detail.Files, 3)
	assert.Equal(t, CommitFile{Status: "M", Path: "internal/git/parse.go"}, detail.Files[0])
	// renames report the new path
	assert.Equal(t, CommitFile{Status: "R100", Path: "new name.go"}, detail.Files[1])
	assert.Equal(t, CommitFile{Status: "A", Path: "with space.go"}, detail.Files[2])
}

func TestParseCommitDetail_Malformed(t *testing.T) {
	assert.Nil(t, parseCommitDetail("not-enough-fields"))
}

func TestUnquotePath(t *testing.T) {
	assert.Equal(t, "plain.go", unquotePath("plain.go"))
	assert.Equal(t, "with space.go", unquotePath(`"with space.go"`))
	assert.Equal(t, `quote"inside.go`, unquotePath(`"quote\"inside.go"`))
}
