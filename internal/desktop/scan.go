package desktop

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/runger/fsel/internal/rank"
)

// maxScanDepth bounds the directory walk below each applications dir;
// real-world trees are flat, but flatpak exports nest a few levels.
const maxScanDepth = 5

// DataDirs returns the application directories to scan, following the XDG
// base directory spec: $XDG_DATA_HOME (default ~/.local/share) first, then
// each entry of $XDG_DATA_DIRS (default /usr/local/share:/usr/share).
func DataDirs() []string {
	var dirs []string

	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		if home, err := os.UserHomeDir(); err == nil {
			dataHome = filepath.Join(home, ".local", "share")
		}
	}
	if dataHome != "" {
		dirs = append(dirs, filepath.Join(dataHome, "applications"))
	}

	dataDirs := os.Getenv("XDG_DATA_DIRS")
	if dataDirs == "" {
		dataDirs = "/usr/local/share:/usr/share"
	}
	for _, d := range strings.Split(dataDirs, ":") {
		if d != "" {
			dirs = append(dirs, filepath.Join(d, "applications"))
		}
	}
	return dirs
}

// ScanOptions controls desktop-entry discovery.
type ScanOptions struct {
	// Dirs overrides the XDG lookup when non-empty (used by tests).
	Dirs []string
	// FilterDesktop applies OnlyShowIn/NotShowIn against CurrentDesktop.
	FilterDesktop bool
	// CurrentDesktop is the colon-split XDG_CURRENT_DESKTOP value.
	CurrentDesktop []string
}

// Scan walks the application directories and parses every .desktop file.
// Parse failures are logged and skipped, never fatal. Entries earlier in the
// directory precedence shadow later ones with the same id.
func Scan(opts ScanOptions, logger *log.Logger) []*App {
	dirs := opts.Dirs
	if len(dirs) == 0 {
		dirs = DataDirs()
	}

	seen := make(map[string]bool)
	var apps []*App
	for _, dir := range dirs {
		root := os.DirFS(dir)
		err := fs.WalkDir(root, ".", func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return nil // unreadable subtree, keep walking siblings
			}
			if d.IsDir() {
				if strings.Count(path, "/") >= maxScanDepth {
					return fs.SkipDir
				}
				return nil
			}
			if !strings.HasSuffix(path, ".desktop") {
				return nil
			}

			id := filepath.Base(path)
			if seen[id] {
				return nil
			}

			contents, err := fs.ReadFile(root, path)
			if err != nil {
				logger.Debug("skipping unreadable desktop file", "path", path, "err", err)
				return nil
			}
			app, err := Parse(id, string(contents))
			if err != nil {
				if err != ErrNotApplication {
					logger.Debug("skipping malformed desktop file", "path", path, "err", err)
				}
				return nil
			}
			if opts.FilterDesktop && !app.ShownOnDesktop(opts.CurrentDesktop) {
				return nil
			}

			seen[id] = true
			apps = append(apps, app)
			return nil
		})
		if err != nil {
			logger.Debug("desktop scan failed", "dir", dir, "err", err)
		}
	}
	return apps
}

// Candidates adapts the scanned apps to the engine's candidate slice.
func Candidates(apps []*App) []rank.Candidate {
	out := make([]rank.Candidate, len(apps))
	for i, a := range apps {
		out[i] = a
	}
	return out
}
