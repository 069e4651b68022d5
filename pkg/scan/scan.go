// Package scan lists the files of a workspace.
package scan

import (
	"io/fs"
	"path/filepath"
	"strings"

	ignore "github.com/sabhiram/go-gitignore"

	"github.com/arthur-debert/mmv/pkg/changeset"
	"github.com/arthur-debert/mmv/pkg/errors"
	"github.com/arthur-debert/mmv/pkg/filesystem"
	"github.com/arthur-debert/mmv/pkg/logging"
)

// Options tunes a scan
type Options struct {
	// Ignore holds gitignore-style patterns relative to the root
	Ignore []string
	// FollowSymlinks includes symlinks that resolve to regular files.
	// Symlinked directories are never descended into.
	FollowSymlinks bool
}

// Tree returns the regular files under root as slash-separated paths
// relative to root, in changeset.ComparePaths order. Names starting with
// the sidecar prefix are skipped at any depth. Entries that cannot be read
// are logged and skipped.
func Tree(fsys filesystem.FS, root string, opts Options) ([]string, error) {
	logger := logging.GetLogger("scan")
	done := logging.LogOperationStart(logger, "scan")
	defer done()

	var matcher *ignore.GitIgnore
	if len(opts.Ignore) > 0 {
		matcher = ignore.CompileIgnoreLines(opts.Ignore...)
	}

	var paths []string
	err := fsys.Walk(root, func(path string, info fs.FileInfo, err error) error {
		if err != nil {
			if path == root {
				return err
			}
			logger.Warn().Err(err).Str("path", path).Msg("Skipping unreadable entry")
			return nil
		}
		if path == root {
			return nil
		}

		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			return relErr
		}
		rel = filepath.ToSlash(rel)

		if strings.HasPrefix(info.Name(), changeset.SidecarPrefix) {
			if info.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if matcher != nil && matcher.MatchesPath(matchPath(rel, info)) {
			logger.Trace().Str("path", rel).Msg("Ignored by pattern")
			if info.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if info.IsDir() {
			return nil
		}

		if !included(fsys, path, info, opts) {
			return nil
		}

		paths = append(paths, rel)
		return nil
	})
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileRead, "failed to scan %s", root)
	}

	changeset.SortPaths(paths)
	logger.Debug().Str("root", root).Int("files", len(paths)).Msg("Scanned tree")
	return paths, nil
}

// matchPath adds the trailing slash gitignore uses to tell directory
// patterns ("build/") from file patterns.
func matchPath(rel string, info fs.FileInfo) string {
	if info.IsDir() {
		return rel + "/"
	}
	return rel
}

func included(fsys filesystem.FS, path string, info fs.FileInfo, opts Options) bool {
	if info.Mode().IsRegular() {
		return true
	}
	if info.Mode()&fs.ModeSymlink == 0 || !opts.FollowSymlinks {
		return false
	}
	target, err := fsys.Stat(path)
	return err == nil && target.Mode().IsRegular()
}
