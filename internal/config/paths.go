package config

import (
	"os"
	"path/filepath"
)

// Paths holds the directories fsel uses, per the XDG Base Directory spec.
type Paths struct {
	// ConfigDir is the directory for configuration files (~/.config/fsel)
	ConfigDir string

	// DataDir is the directory for data files (~/.local/share/fsel)
	DataDir string

	// RuntimeDir is the directory for runtime files like instance locks
	RuntimeDir string
}

// DefaultPaths returns the default paths based on the XDG environment.
func DefaultPaths() *Paths {
	home := homeDir()

	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		configHome = filepath.Join(home, ".config")
	}

	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		dataHome = filepath.Join(home, ".local", "share")
	}

	runtimeDir := os.Getenv("XDG_RUNTIME_DIR")
	if runtimeDir == "" {
		runtimeDir = filepath.Join(dataHome, "fsel", "run")
	} else {
		runtimeDir = filepath.Join(runtimeDir, "fsel")
	}

	return &Paths{
		ConfigDir:  filepath.Join(configHome, "fsel"),
		DataDir:    filepath.Join(dataHome, "fsel"),
		RuntimeDir: runtimeDir,
	}
}

// ConfigFile returns the path to the main configuration file.
func (p *Paths) ConfigFile() string {
	return filepath.Join(p.ConfigDir, "config.yaml")
}

// HistoryFile returns the path to the usage history database.
func (p *Paths) HistoryFile() string {
	return filepath.Join(p.DataDir, "history.db")
}

// LogFile returns the default log file path.
func (p *Paths) LogFile() string {
	return filepath.Join(p.DataDir, "fsel.log")
}

// LockFile returns the single-instance lock path for a mode.
func (p *Paths) LockFile(mode string) string {
	return filepath.Join(p.RuntimeDir, mode+".lock")
}

// ClipDatabase returns the default cclip database path.
func ClipDatabase() string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		dataHome = filepath.Join(homeDir(), ".local", "share")
	}
	return filepath.Join(dataHome, "cclip", "db.sqlite3")
}

// EnsureDirectories creates the config, data and runtime directories.
func (p *Paths) EnsureDirectories() error {
	for _, dir := range []string{p.ConfigDir, p.DataDir, p.RuntimeDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	return nil
}

func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return os.Getenv("HOME")
	}
	return home
}
