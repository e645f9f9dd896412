// Package launch spawns the command behind a selected desktop entry.
package launch

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/google/shlex"

	"github.com/runger/fsel/internal/desktop"
)

// Options controls how a selection is launched.
type Options struct {
	// Terminal is the wrapper command for Terminal=true entries,
	// e.g. "foot -e". Empty falls back to $TERMINAL.
	Terminal string
	// Detach runs the child in its own session with stdio on /dev/null,
	// so it survives fsel exiting.
	Detach bool
	// NoExec prints the resolved argv instead of running it.
	NoExec bool
	// Stdout receives the argv line in NoExec mode; nil means os.Stdout.
	Stdout io.Writer
}

// Argv resolves the full command line for an app, terminal wrapper
// included.
func Argv(app *desktop.App, opts Options) ([]string, error) {
	argv, err := shlex.Split(app.Exec)
	if err != nil {
		return nil, fmt.Errorf("split exec of %s: %w", app.ID, err)
	}
	if len(argv) == 0 {
		return nil, fmt.Errorf("empty exec in %s", app.ID)
	}

	if app.Terminal {
		term := opts.Terminal
		if term == "" {
			if t := os.Getenv("TERMINAL"); t != "" {
				term = t + " -e"
			}
		}
		if term == "" {
			return nil, fmt.Errorf("%s needs a terminal but none is configured", app.ID)
		}
		argv = append(strings.Fields(term), argv...)
	}
	return argv, nil
}

// Run launches the app. The child is started, never waited for; launch
// failures are reported but a slow or crashing app is not our problem.
func Run(app *desktop.App, opts Options, logger *log.Logger) error {
	argv, err := Argv(app, opts)
	if err != nil {
		return err
	}

	if opts.NoExec {
		out := opts.Stdout
		if out == nil {
			out = os.Stdout
		}
		fmt.Fprintln(out, strings.Join(argv, " "))
		return nil
	}

	cmd := exec.Command(argv[0], argv[1:]...)
	cmd.Dir = app.Path
	if opts.Detach {
		cmd.SysProcAttr = &syscall.SysProcAttr{Setsid: true}
		cmd.Stdin = nil
		cmd.Stdout = nil
		cmd.Stderr = nil
	} else {
		cmd.Stdout = os.Stdout
		cmd.Stderr = os.Stderr
	}

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("launch %s: %w", app.ID, err)
	}
	logger.Debug("launched", "app", app.ID, "pid", cmd.Process.Pid, "detach", opts.Detach)

	if err := cmd.Process.Release(); err != nil {
		logger.Warn("release child", "app", app.ID, "err", err)
	}
	return nil
}
