package git

import (
	"strconv"
	"strings"
)

// Output parsing lives in pure functions so it can be unit tested
// without a git binary.

// unquotePath strips the quoting git applies to paths containing spaces
// or special characters and resolves the escape sequences inside.
func unquotePath(path string) string {
	path = strings.TrimSpace(path)
	if len(path) >= 2 && strings.HasPrefix(path, `"`) && strings.HasSuffix(path, `"`) {
		inner := path[1 : len(path)-1]
		replacer := strings.NewReplacer(`\n`, "\n", `\t`, "\t", `\\`, `\`, `\"`, `"`)
		return replacer.Replace(inner)
	}
	return path
}

// parsePorcelain fills staged/unstaged/untracked from
// `git status --porcelain -uall` output.
func parsePorcelain(output string) (staged, unstaged, untracked []string) {
	for _, line := range strings.Split(output, "\n") {
		if len(line) < 3 {
			continue
		}

		code := line[0:2]
		file := unquotePath(line[2:])
		if file == "" {
			continue
		}

		switch {
		case code[0] == '?':
			untracked = append(untracked, file)
		case code[0] == ' ':
			unstaged = append(unstaged, file)
		default:
			staged = append(staged, file)
			// modified again after staging
			if code[1] != ' ' {
				unstaged = append(unstaged, file)
			}
		}
	}
	return staged, unstaged, untracked
}

// parseAheadBehind reads `git rev-list --left-right --count` output.
func parseAheadBehind(output string) (ahead, behind int) {
	parts := strings.Fields(output)
	if len(parts) != 2 {
		return 0, 0
	}
	ahead, _ = strconv.Atoi(parts[0])
	behind, _ = strconv.Atoi(parts[1])
	return ahead, behind
}

// branchFieldSep separates the fields emitted by the for-each-ref format
// used in Branches.
const branchFieldSep = "\x1f"

// parseBranches reads the output of
// `git for-each-ref --format=%(refname:short)<US>%(HEAD)<US>%(upstream:short)<US>%(refname) refs/heads refs/remotes`.
// The full refname distinguishes remote-tracking refs from local branches
// whose names contain a slash.
func parseBranches(output string) []Branch {
	var branches []Branch
	for _, line := range strings.Split(output, "\n") {
		line = strings.TrimRight(line, "\r")
		if line == "" {
			continue
		}

		fields := strings.Split(line, branchFieldSep)
		name := fields[0]
		if name == "" || strings.HasSuffix(name, "/HEAD") {
			continue
		}

		branch := Branch{Name: name}
		if len(fields) > 1 {
			branch.IsCurrent = fields[1] == "*"
		}
		if len(fields) > 2 {
			branch.Upstream = fields[2]
		}
		if len(fields) > 3 {
			branch.IsRemote = strings.HasPrefix(fields[3], "refs/remotes/")
		}

		// refs/remotes entries are never current
		if branch.IsRemote {
			branch.IsCurrent = false
		}

		branches = append(branches, branch)
	}
	return branches
}

// parseRemotes reads `git remote -v` output, merging the fetch and push
// lines of each remote into one entry.
func parseRemotes(output string) []Remote {
	byName := make(map[string]*Remote)
	var order []string

	for _, line := range strings.Split(output, "\n") {
		fields := strings.Fields(line)
		if len(fields) < 2 {
			continue
		}

		name, url := fields[0], fields[1]
		remote, ok := byName[name]
		if !ok {
			remote = &Remote{Name: name}
			byName[name] = remote
			order = append(order, name)
		}

		kind := ""
		if len(fields) > 2 {
			kind = fields[2]
		}
		switch kind {
		case "(push)":
			remote.PushURL = url
		default:
			remote.FetchURL = url
			if remote.PushURL == "" {
				remote.PushURL = url
			}
		}
	}

	remotes := make([]Remote, 0, len(order))
	for _, name := range order {
		remotes = append(remotes, *byName[name])
	}
	return remotes
}

const (
	logFieldSep  = "\x1f"
	logRecordSep = "\x1e"
)

// logFormat is the --pretty format used by CommitHistory: hash, short
// hash, subject, author name, author email, and ISO date, separated by
// unit separators with a record separator terminator.
const logFormat = "%H%x1f%h%x1f%s%x1f%an%x1f%ae%x1f%cI%x1e"

// detailFormat extends logFormat with the full message body, for
// `git show --name-status`.
const detailFormat = "%H%x1f%h%x1f%s%x1f%an%x1f%ae%x1f%cI%x1f%b%x1e"

// parseCommitDetail reads `git show --name-status` output produced by
// detailFormat: the header record followed by status<TAB>path lines.
// Renames carry the new path in the last column.
func parseCommitDetail(output string) *CommitDetail {
	head, rest, _ := strings.Cut(output, logRecordSep)

	fields := strings.Split(head, logFieldSep)
	if len(fields) < 6 {
		return nil
	}

	detail := &CommitDetail{
		Commit: Commit{
			Hash:      fields[0],
			ShortHash: fields[1],
			Message:   fields[2],
			Author:    fields[3],
			Email:     fields[4],
			Date:      fields[5],
		},
	}
	if len(fields) > 6 {
		detail.Body = strings.TrimSpace(fields[6])
	}

	for _, line := range strings.Split(rest, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		cols := strings.Split(line, "\t")
		if len(cols) < 2 {
			continue
		}
		detail.Files = append(detail.Files, CommitFile{
			Status: cols[0],
			Path:   unquotePath(cols[len(cols)-1]),
		})
	}
	return detail
}

// parseLog reads the output produced by logFormat.
func parseLog(output string) []Commit {
	var commits []Commit
	for _, record := range strings.Split(output, logRecordSep) {
		record = strings.TrimSpace(record)
		if record == "" {
			continue
		}

		fields := strings.Split(record, logFieldSep)
		if len(fields) < 6 {
			continue
		}

		commits = append(commits, Commit{
			Hash:      fields[0],
			ShortHash: fields[1],
			Message:   fields[2],
			Author:    fields[3],
			Email:     fields[4],
			Date:      fields[5],
		})
	}
	return commits
}
