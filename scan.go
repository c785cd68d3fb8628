package sequences

import (
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
)

// ScanFiles collects the file paths under root, forward-slashed and sorted
// lexicographically for deterministic processing order. A non-recursive
// scan stops at the top level.
func ScanFiles(root string, recursive bool) ([]string, error) {
	root = normalizePath(root)
	if !recursive {
		entries, err := os.ReadDir(filepath.FromSlash(root))
		if err != nil {
			return nil, err
		}
		var files []string
		for _, e := range entries {
			if e.IsDir() {
				continue
			}
			files = append(files, path.Join(root, e.Name()))
		}
		sort.Strings(files)
		return files, nil
	}
	var files []string
	err := filepath.WalkDir(filepath.FromSlash(root), func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		files = append(files, normalizePath(filepath.ToSlash(p)))
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}

// ScanFolders collects the files under root grouped by containing folder.
// Folders and the files within them are sorted.
func ScanFolders(root string, recursive bool) ([][]string, error) {
	files, err := ScanFiles(root, recursive)
	if err != nil {
		return nil, err
	}
	byDir := make(map[string][]string)
	var dirs []string
	for _, f := range files {
		d := path.Dir(f)
		if _, ok := byDir[d]; !ok {
			dirs = append(dirs, d)
		}
		byDir[d] = append(byDir[d], f)
	}
	sort.Strings(dirs)
	groups := make([][]string, len(dirs))
	for i, d := range dirs {
		groups[i] = byDir[d]
	}
	return groups, nil
}

// Flatten collapses a path list into the sequences it contains, keyed by
// their pound string. Each path joins at most one sequence; paths with no
// recognizable slot map to a nil entry under their own path. The sequences
// are self-contained: their items come from the input list, not the
// backend.
func Flatten(paths []string, opts ...Option) map[string]*Sequence {
	out := make(map[string]*Sequence)
	used := make(map[string]bool)
	for _, p := range paths {
		if used[p] {
			continue
		}
		used[p] = true
		seq, err := NewFile(p, append([]Option{SkipExistsCheck()}, opts...)...)
		if err != nil {
			out[p] = nil
			continue
		}
		members := []string{}
		for _, q := range paths {
			if used[q] && q != p {
				continue
			}
			if seq.IsPartOf(q) {
				members = append(members, q)
				used[q] = true
			}
		}
		if err := seq.SetItems(members); err != nil {
			out[p] = nil
			continue
		}
		out[seq.PoundString(0)] = seq
	}
	return out
}

// SequenceRange returns the range string for the sequence a path belongs
// to, discovering siblings through the backend ("101-105, 110-115").
func SequenceRange(p string, opts ...Option) (string, error) {
	seq, err := NewFile(p, opts...)
	if err != nil {
		return "", err
	}
	return seq.RangeString()
}
