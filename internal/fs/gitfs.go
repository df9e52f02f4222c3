package fs

import (
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"
	"time"
)

// GitFS implements FileSystem by reading a committed tree (branch, tag, or commit).
type GitFS struct {
	repoPath string
	ref      string
}

// NewGitFS creates a GitFS that reads the tree of ref in the repository at repoPath.
func NewGitFS(repoPath, ref string) *GitFS {
	return &GitFS{repoPath: repoPath, ref: ref}
}

// Root returns the repository working directory.
func (g *GitFS) Root() string {
	return g.repoPath
}

func (g *GitFS) git(args ...string) (string, error) {
	cmd := exec.Command("git", append([]string{"-C", g.repoPath}, args...)...)
	// Paths are passed as pathspecs; glob characters in file names must match literally.
	cmd.Env = append(os.Environ(), "GIT_TERMINAL_PROMPT=0", "GIT_LITERAL_PATHSPECS=1")
	out, err := cmd.Output()
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			return "", fmt.Errorf("git %s: %s", strings.Join(args, " "), strings.TrimSpace(string(exitErr.Stderr)))
		}
		return "", err
	}
	return string(out), nil
}

// ReadFile reads the blob at path from the git ref.
func (g *GitFS) ReadFile(path string) ([]byte, error) {
	if path == "" || path == "." {
		return nil, fmt.Errorf("cannot read directory as file")
	}
	out, err := g.git("show", g.ref+":"+path)
	if err != nil {
		if strings.Contains(err.Error(), "not exist") {
			return nil, os.ErrNotExist
		}
		return nil, err
	}
	return []byte(out), nil
}

// treeEntry is one parsed record of `git ls-tree -l -z`.
type treeEntry struct {
	mode    string
	objType string
	size    int64
	name    string
}

// lsTree lists entries with their blob sizes. Records are NUL terminated and have the
// form "<mode> <type> <hash> <size>\t<path>", where size is "-" for trees. With -z git
// leaves paths unquoted, so names with non-ASCII bytes or spaces come back verbatim.
func (g *GitFS) lsTree(args ...string) ([]treeEntry, error) {
	out, err := g.git(append([]string{"ls-tree", "-l", "-z", g.ref}, args...)...)
	if err != nil {
		return nil, os.ErrNotExist
	}
	var entries []treeEntry
	for _, record := range strings.Split(out, "\x00") {
		meta, name, ok := strings.Cut(record, "\t")
		if !ok || name == "" {
			continue
		}
		fields := strings.Fields(meta)
		if len(fields) < 4 {
			continue
		}
		size, _ := strconv.ParseInt(fields[3], 10, 64)
		entries = append(entries, treeEntry{
			mode:    fields[0],
			objType: fields[1],
			size:    size,
			name:    name[strings.LastIndexByte(name, '/')+1:],
		})
	}
	return entries, nil
}

// regular reports whether a tree entry mode is a plain (possibly executable) file.
func (e treeEntry) regular() bool {
	return e.objType == "blob" && (e.mode == "100644" || e.mode == "100755")
}

// Stat returns metadata for the file or directory at path in the git ref.
func (g *GitFS) Stat(path string) (FileInfo, error) {
	if path == "" || path == "." {
		if _, err := g.git("rev-parse", "--verify", g.ref+"^{tree}"); err != nil {
			return FileInfo{}, os.ErrNotExist
		}
		return FileInfo{Name: g.ref, IsDir: true, ModTime: g.modTime("")}, nil
	}

	entries, err := g.lsTree("--", path)
	if err != nil || len(entries) != 1 {
		return FileInfo{}, os.ErrNotExist
	}
	e := entries[0]
	return FileInfo{
		Name:    e.name,
		IsDir:   e.objType == "tree",
		Regular: e.regular(),
		Size:    e.size,
		ModTime: g.modTime(path),
	}, nil
}

// ReadDir lists the immediate children of the tree at path in the git ref.
func (g *GitFS) ReadDir(path string) ([]DirEntry, error) {
	var args []string
	if path != "" && path != "." {
		info, err := g.Stat(path)
		if err != nil {
			return nil, err
		}
		if !info.IsDir {
			return nil, fmt.Errorf("%s: not a directory", path)
		}
		args = []string{"--", strings.TrimSuffix(path, "/") + "/"}
	}

	entries, err := g.lsTree(args...)
	if err != nil {
		return nil, err
	}
	result := make([]DirEntry, 0, len(entries))
	for _, e := range entries {
		result = append(result, DirEntry{
			Name:    e.name,
			IsDir:   e.objType == "tree",
			Regular: e.regular(),
			Size:    e.size,
		})
	}
	return result, nil
}

func (g *GitFS) modTime(path string) time.Time {
	args := []string{"log", "-1", "--format=%ct", g.ref}
	if path != "" {
		args = append(args, "--", path)
	}
	out, err := g.git(args...)
	if err != nil {
		return time.Time{}
	}
	sec, err := strconv.ParseInt(strings.TrimSpace(out), 10, 64)
	if err != nil {
		return time.Time{}
	}
	return time.Unix(sec, 0)
}
