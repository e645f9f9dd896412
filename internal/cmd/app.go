package cmd

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/runger/fsel/internal/desktop"
	"github.com/runger/fsel/internal/launch"
	"github.com/runger/fsel/internal/picker"
	"github.com/runger/fsel/internal/rank"
)

// runApp is the root command: pick a desktop application and launch it.
func runApp(cmd *cobra.Command) error {
	e, err := setup("app")
	if err != nil {
		return err
	}
	defer e.close()

	scan := func() []*desktop.App {
		return desktop.Scan(desktop.ScanOptions{
			FilterDesktop:  true,
			CurrentDesktop: currentDesktop(),
		}, e.logger)
	}

	if flagRun != "" {
		return runDirect(e, scan(), flagRun)
	}

	sel, err := runPicker(e, nil, func() []picker.Entry {
		return appEntries(scan())
	})
	if err != nil {
		return err
	}
	if sel.Cancelled() {
		return errCancelled
	}

	app := sel.Entry.Candidate.(*desktop.App)
	return launchApp(e, app)
}

// runDirect launches the best match for query without opening the TUI.
func runDirect(e *env, apps []*desktop.App, query string) error {
	scored := rank.Rank(desktop.Candidates(apps), query, e.store, time.Now(), e.cfg.RankOptions())
	if len(scored) == 0 {
		return fmt.Errorf("no application matches %q", query)
	}
	return launchApp(e, scored[0].Candidate.(*desktop.App))
}

func launchApp(e *env, app *desktop.App) error {
	terminal := flagTerminal
	if terminal == "" {
		terminal = e.cfg.Terminal
	}
	err := launch.Run(app, launch.Options{
		Terminal: terminal,
		Detach:   flagDetach,
		NoExec:   flagNoExec,
	}, e.logger)
	if err != nil {
		return err
	}
	if !flagNoExec {
		e.recordUse(app.Identity())
	}
	return nil
}

func appEntries(apps []*desktop.App) []picker.Entry {
	entries := make([]picker.Entry, len(apps))
	for i, a := range apps {
		display := a.Name
		if a.GenericName != "" {
			display += " (" + a.GenericName + ")"
		}
		entries[i] = picker.Entry{Candidate: a, Display: display}
	}
	return entries
}

func currentDesktop() []string {
	v := os.Getenv("XDG_CURRENT_DESKTOP")
	if v == "" {
		return nil
	}
	return strings.Split(v, ":")
}
