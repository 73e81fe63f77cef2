package fsview

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// TruncationMarker is printed after a listing that hit its bound.
const TruncationMarker = "... (truncated)"

// TopLevel returns up to limit top-level entry names under root, in
// lexicographic order.
func TopLevel(root string, limit int) ([]string, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	sort.Strings(names)
	if len(names) > limit {
		names = names[:limit]
	}
	return names, nil
}

// Tree returns up to limit file paths under root, relative to root and
// slash-separated, in lexicographic order. Entries whose first path segment
// matches a name in exclude are skipped entirely. The second return reports
// whether the listing was truncated; the marker is the caller's to print, and
// only when truncation actually occurred.
func Tree(root string, exclude []string, limit int) ([]string, bool, error) {
	skip := make(map[string]bool, len(exclude))
	for _, name := range exclude {
		skip[name] = true
	}

	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			return relErr
		}
		if rel == "." {
			return nil
		}
		first := rel
		if i := strings.IndexRune(rel, filepath.Separator); i >= 0 {
			first = rel[:i]
		}
		if skip[first] {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		files = append(files, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return nil, false, err
	}

	sort.Strings(files)
	if len(files) > limit {
		return files[:limit], true, nil
	}
	return files, false, nil
}
