// Package cmd wires the fsel command-line surface: the root command is the
// application-launcher mode, with dmenu and clipboard modes as subcommands.
package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/runger/fsel/internal/config"
	"github.com/runger/fsel/internal/history"
	"github.com/runger/fsel/internal/logging"
)

// Exit codes, matching dmenu conventions so scripts can tell a cancelled
// pick (1) from a failure or a second running instance (2).
const (
	exitSuccess   = 0
	exitCancelled = 1
	exitFailure   = 2
)

// errCancelled marks a user-cancelled pick; it exits 1 without a message.
var errCancelled = errors.New("cancelled")

var (
	flagConfig      string
	flagLogLevel    string
	flagExact       bool
	flagPrefixDepth int

	flagNoExec   bool
	flagDetach   bool
	flagRun      string
	flagTerminal string
)

var rootCmd = &cobra.Command{
	Use:   "fsel",
	Short: "fast terminal launcher",
	Long: `fsel - fast terminal application launcher
  - run with no arguments to pick and launch a desktop application
  - pipe lines through "fsel dmenu" for a generic picker
  - "fsel clip" browses clipboard history`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

// Execute runs the CLI and returns the process exit code.
func Execute() int {
	if err := rootCmd.Execute(); err != nil {
		if errors.Is(err, errCancelled) {
			return exitCancelled
		}
		fmt.Fprintf(os.Stderr, "fsel: %v\n", err)
		return exitFailure
	}
	return exitSuccess
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flagConfig, "config", "", "config file path")
	pf.StringVar(&flagLogLevel, "log-level", "", "log level: debug, info, warn, error")
	pf.BoolVar(&flagExact, "exact", false, "exact substring matching instead of fuzzy")
	pf.IntVar(&flagPrefixDepth, "prefix-depth", -1, "max query length treated as a prefix query")

	f := rootCmd.Flags()
	f.BoolVar(&flagNoExec, "no-exec", false, "print the launch command instead of running it")
	f.BoolVar(&flagDetach, "detach", false, "launch in a new session, detached from fsel")
	f.StringVar(&flagRun, "run", "", "launch the best match for this query without the picker")
	f.StringVar(&flagTerminal, "terminal", "", "terminal command for Terminal=true entries")

	rootCmd.AddCommand(dmenuCmd)
	rootCmd.AddCommand(clipCmd)
	rootCmd.AddCommand(clearHistoryCmd)
	rootCmd.AddCommand(versionCmd)
}

// env holds everything a mode needs at runtime. Close releases the instance
// lock and flushes the store and log file.
type env struct {
	cfg    *config.Config
	paths  *config.Paths
	logger *log.Logger
	store  history.Store

	lock     *instanceLock
	logClose io.Closer
}

// setup loads config, applies flag overrides, builds the logger, takes the
// per-mode instance lock and opens the history store.
func setup(mode string) (*env, error) {
	paths := config.DefaultPaths()
	if err := paths.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("create directories: %w", err)
	}

	configFile := flagConfig
	if configFile == "" {
		configFile = paths.ConfigFile()
	}
	cfg, err := config.LoadFromFile(configFile)
	if err != nil {
		return nil, err
	}
	if flagExact {
		cfg.Match.Mode = "exact"
	}
	if flagPrefixDepth >= 0 {
		cfg.Match.PrefixDepth = flagPrefixDepth
	}

	level := cfg.Log.Level
	if flagLogLevel != "" {
		level = flagLogLevel
	}
	logger, logClose, err := logging.New(logging.Options{Level: level, File: cfg.Log.File})
	if err != nil {
		return nil, err
	}

	lock, err := acquireLock(paths.LockFile(mode))
	if err != nil {
		if logClose != nil {
			logClose.Close()
		}
		return nil, err
	}

	store := history.OpenOrFallback(paths.HistoryFile(), logger)

	return &env{
		cfg:      cfg,
		paths:    paths,
		logger:   logger,
		store:    store,
		lock:     lock,
		logClose: logClose,
	}, nil
}

func (e *env) close() {
	if err := e.store.Close(); err != nil {
		e.logger.Warn("close history store", "err", err)
	}
	e.lock.release()
	if e.logClose != nil {
		e.logClose.Close()
	}
}

// recordUse logs a selection into the history store; failures degrade to a
// warning, never to a failed pick.
func (e *env) recordUse(identity string) {
	if err := e.store.RecordUse(identity, time.Now()); err != nil {
		e.logger.Warn("record use", "identity", identity, "err", err)
	}
}
