package changeset

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComparePaths(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"a", "a", 0},
		{"a", "b", -1},
		{"b", "a", 1},
		{"a/b", "a-b", -1},
		{"a-b", "a/b", 1},
		{"a", "a/b", -1},
		{"a/b", "a//b", 0},
		{"./a/b", "a/b", 0},
		{"dir/z", "dir.txt", -1},
		{"B", "a", -1},
	}

	for _, tt := range tests {
		t.Run(tt.a+" vs "+tt.b, func(t *testing.T) {
			assert.Equal(t, tt.want, ComparePaths(tt.a, tt.b))
		})
	}
}

func TestNormalizeTree(t *testing.T) {
	in := []string{"b.txt", "a-b", "a/b", "a/b", "a//b", "a/a"}
	got := NormalizeTree(in)

	assert.Equal(t, []string{"a/a", "a/b", "a-b", "b.txt"}, got)
	assert.Equal(t, "b.txt", in[0], "input must not be reordered")
}

func TestSortPathsIgnoresInputOrder(t *testing.T) {
	want := []string{"./a/b", "a//b", "a/b", "a-b"}
	for _, in := range [][]string{
		{"a/b", "a//b", "./a/b", "a-b"},
		{"a-b", "./a/b", "a/b", "a//b"},
		{"a//b", "a-b", "a/b", "./a/b"},
	} {
		SortPaths(in)
		assert.Equal(t, want, in)
	}
}

func TestCleanSource(t *testing.T) {
	assert.Equal(t, "a/b", CleanSource("./a//b"))
	assert.Equal(t, "a", CleanSource("a/"))
	assert.Equal(t, "", CleanSource(""))
}
