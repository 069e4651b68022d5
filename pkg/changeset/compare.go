package changeset

import (
	"path"
	"sort"
	"strings"
)

// ComparePaths orders slash-separated relative paths component by
// component, so "a/b" sorts before "a-b" even though '-' < '/' bytewise.
// Empty and "." components are skipped, making "a//b" and "./a/b" equal
// to "a/b".
func ComparePaths(a, b string) int {
	for {
		var ca, cb string
		ca, a = nextComponent(a)
		cb, b = nextComponent(b)

		switch {
		case ca == "" && cb == "":
			return 0
		case ca == "":
			return -1
		case cb == "":
			return 1
		}

		if c := strings.Compare(ca, cb); c != 0 {
			return c
		}
	}
}

func nextComponent(p string) (component, rest string) {
	for {
		p = strings.TrimLeft(p, "/")
		if p == "" {
			return "", ""
		}

		if i := strings.IndexByte(p, '/'); i >= 0 {
			component, p = p[:i], p[i:]
		} else {
			component, p = p, ""
		}

		if component != "." {
			return component, p
		}
	}
}

// SortPaths sorts paths in place with ComparePaths. Paths ComparePaths
// treats as equal are ordered bytewise, so the result never depends on
// the input order.
func SortPaths(paths []string) {
	sort.Slice(paths, func(i, j int) bool {
		if c := ComparePaths(paths[i], paths[j]); c != 0 {
			return c < 0
		}
		return paths[i] < paths[j]
	})
}

// CleanSource normalises a sources line to the form scans produce:
// "./a//b" becomes "a/b". An empty line stays empty.
func CleanSource(p string) string {
	if p == "" {
		return ""
	}
	return path.Clean(p)
}

// NormalizeTree returns a sorted copy of paths with duplicates removed.
func NormalizeTree(paths []string) []string {
	sorted := make([]string, len(paths))
	copy(sorted, paths)
	SortPaths(sorted)

	out := sorted[:0]
	for i, p := range sorted {
		if i > 0 && ComparePaths(out[len(out)-1], p) == 0 {
			continue
		}
		out = append(out, p)
	}
	return out
}
