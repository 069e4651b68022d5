package paths

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"

	"github.com/arthur-debert/mmv/pkg/errors"
)

// Environment variable names
const (
	// EnvSource selects the workspace directory
	EnvSource = "MMV_SOURCE"

	// EnvConfigDir overrides the XDG config directory for mmv
	EnvConfigDir = "MMV_CONFIG_DIR"

	// EnvStateDir overrides the XDG state directory for mmv
	EnvStateDir = "MMV_STATE_DIR"

	// EnvHome is the standard home directory variable
	EnvHome = "HOME"
)

// Fixed names. These are not user-configurable.
const (
	// AppDirName is the directory name for mmv under the XDG roots
	AppDirName = "mmv"

	// ConfigFileName is the user configuration file under ConfigDir
	ConfigFileName = "config.toml"

	// WorkspaceConfigFile is the per-workspace configuration file. Its
	// name starts with the sidecar prefix so scans never pick it up.
	WorkspaceConfigFile = ".mmv.toml"

	// LogFileName is the name of the log file
	LogFileName = "mmv.log"
)

// Paths provides centralized path management for mmv
type Paths interface {
	SourceDir() string
	UsedFallback() bool
	ConfigDir() string
	StateDir() string
	ConfigFilePath() string
	WorkspaceConfigPath() string
	LogFilePath() string
	NormalizePath(path string) (string, error)
	IsInSource(path string) (bool, error)
}

type paths struct {
	sourceDir string
	xdgConfig string
	xdgState  string

	// usedFallback indicates we fell back to cwd
	usedFallback bool
}

// New creates a Paths for the given workspace directory. If sourceDir is
// empty it is taken from MMV_SOURCE, then the current working directory.
func New(sourceDir string) (Paths, error) {
	p := &paths{}

	if sourceDir == "" {
		dir, usedFallback, err := findSourceDir()
		if err != nil {
			return nil, err
		}
		p.sourceDir = dir
		p.usedFallback = usedFallback
	} else {
		p.sourceDir = expandHome(sourceDir)
	}

	absRoot, err := filepath.Abs(p.sourceDir)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrInvalidInput, "failed to get absolute path for %s", p.sourceDir)
	}
	p.sourceDir = absRoot

	p.setupXDGDirs()
	return p, nil
}

// setupXDGDirs initializes XDG directories, respecting environment overrides
func (p *paths) setupXDGDirs() {
	if configDir := os.Getenv(EnvConfigDir); configDir != "" {
		p.xdgConfig = expandHome(configDir)
	} else if home := os.Getenv("XDG_CONFIG_HOME"); home != "" {
		p.xdgConfig = filepath.Join(home, AppDirName)
	} else {
		p.xdgConfig = filepath.Join(xdg.ConfigHome, AppDirName)
	}

	// xdg resolves its roots once at init, so a later XDG_STATE_HOME
	// (tests, wrappers) is read directly.
	if stateDir := os.Getenv(EnvStateDir); stateDir != "" {
		p.xdgState = expandHome(stateDir)
	} else if home := os.Getenv("XDG_STATE_HOME"); home != "" {
		p.xdgState = filepath.Join(home, AppDirName)
	} else {
		p.xdgState = filepath.Join(xdg.StateHome, AppDirName)
	}
}

func findSourceDir() (string, bool, error) {
	if dir := os.Getenv(EnvSource); dir != "" {
		return expandHome(dir), false, nil
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "", false, errors.Wrapf(err, errors.ErrInternal, "failed to get current directory")
	}
	return cwd, true, nil
}

// expandHome expands ~ to the home directory
func expandHome(path string) string {
	if path == "" || path[0] != '~' {
		return path
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = os.Getenv(EnvHome)
		if homeDir == "" {
			return path
		}
	}

	if len(path) == 1 {
		return homeDir
	}
	if path[1] == '/' || path[1] == filepath.Separator {
		return filepath.Join(homeDir, path[2:])
	}

	// ~something (not the user's home)
	return path
}

// ExpandHome expands a leading ~ in path
func ExpandHome(path string) string {
	return expandHome(path)
}

// SourceDir returns the absolute workspace directory
func (p *paths) SourceDir() string {
	return p.sourceDir
}

// UsedFallback reports whether the current directory was used
func (p *paths) UsedFallback() bool {
	return p.usedFallback
}

func (p *paths) ConfigDir() string {
	return p.xdgConfig
}

func (p *paths) StateDir() string {
	return p.xdgState
}

func (p *paths) ConfigFilePath() string {
	return filepath.Join(p.xdgConfig, ConfigFileName)
}

func (p *paths) WorkspaceConfigPath() string {
	return filepath.Join(p.sourceDir, WorkspaceConfigFile)
}

func (p *paths) LogFilePath() string {
	return filepath.Join(p.xdgState, LogFileName)
}

// NormalizePath expands home, makes the path absolute and cleans it
func (p *paths) NormalizePath(path string) (string, error) {
	if path == "" {
		return "", errors.New(errors.ErrInvalidInput, "empty path")
	}

	abs, err := filepath.Abs(expandHome(path))
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrInvalidInput, "failed to get absolute path")
	}
	return filepath.Clean(abs), nil
}

// IsInSource checks if a path is inside the workspace directory. The
// execute command uses it to warn when the destination is nested in the
// tree being moved.
func (p *paths) IsInSource(path string) (bool, error) {
	normalized, err := p.NormalizePath(path)
	if err != nil {
		return false, err
	}

	rel, err := filepath.Rel(p.sourceDir, normalized)
	if err != nil {
		return false, nil
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)), nil
}

// LogFilePath returns the log file location without building a full
// Paths, for use before the workspace is known.
func LogFilePath() string {
	if stateDir := os.Getenv(EnvStateDir); stateDir != "" {
		return filepath.Join(expandHome(stateDir), LogFileName)
	}
	if home := os.Getenv("XDG_STATE_HOME"); home != "" {
		return filepath.Join(home, AppDirName, LogFileName)
	}
	return filepath.Join(xdg.StateHome, AppDirName, LogFileName)
}
