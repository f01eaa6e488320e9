// Package gitinfo names the branch checked out in the repository that holds
// a file, reading .git directly.
package gitinfo

import (
	"os"
	"path/filepath"
	"strings"
)

// Branch returns the branch for path, "detached:<sha>" for a detached HEAD,
// or "" outside a repository. path need not exist yet.
func Branch(path string) string {
	gitDir := locate(path)
	if gitDir == "" {
		return ""
	}
	head, err := os.ReadFile(filepath.Join(gitDir, "HEAD"))
	if err != nil {
		return ""
	}
	return parseHead(string(head))
}

// locate walks up from path to the nearest .git directory, following the
// "gitdir:" file that worktrees and submodules use instead.
func locate(path string) string {
	dir, err := filepath.Abs(path)
	if err != nil {
		return ""
	}
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		dir = filepath.Dir(dir)
	}
	for {
		candidate := filepath.Join(dir, ".git")
		info, err := os.Stat(candidate)
		switch {
		case err != nil:
		case info.IsDir():
			return candidate
		case info.Mode().IsRegular():
			return linkedGitDir(dir, candidate)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}

func linkedGitDir(dir, file string) string {
	data, err := os.ReadFile(file)
	if err != nil {
		return ""
	}
	target, ok := strings.CutPrefix(strings.TrimSpace(string(data)), "gitdir:")
	if !ok {
		return ""
	}
	target = strings.TrimSpace(target)
	if !filepath.IsAbs(target) {
		target = filepath.Join(dir, target)
	}
	return target
}

func parseHead(head string) string {
	line, _, _ := strings.Cut(head, "\n")
	line = strings.TrimSpace(line)
	if ref, ok := strings.CutPrefix(line, "ref:"); ok {
		return strings.TrimPrefix(strings.TrimSpace(ref), "refs/heads/")
	}
	switch {
	case line == "":
		return ""
	case len(line) >= 7:
		return "detached:" + line[:7]
	default:
		return "detached"
	}
}
