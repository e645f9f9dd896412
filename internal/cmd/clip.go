package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/runger/fsel/internal/clip"
	"github.com/runger/fsel/internal/config"
	"github.com/runger/fsel/internal/picker"
)

var (
	flagClipDB  string
	flagClipTag string
)

var clipCmd = &cobra.Command{
	Use:   "clip",
	Short: "pick from clipboard history",
	Long: `Browse the cclip clipboard history database, put the chosen entry
back on the clipboard and print it to stdout.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runClip(cmd)
	},
}

func init() {
	f := clipCmd.Flags()
	f.StringVar(&flagClipDB, "db", "", "clipboard database path (default: cclip's)")
	f.StringVar(&flagClipTag, "tag", "", "only show entries carrying this tag")
}

func runClip(cmd *cobra.Command) error {
	e, err := setup("clip")
	if err != nil {
		return err
	}
	defer e.close()

	dbPath := flagClipDB
	if dbPath == "" {
		dbPath = config.ClipDatabase()
	}
	db, err := clip.Open(dbPath)
	if err != nil {
		return err
	}
	defer db.Close()

	rows, err := db.Rows()
	if err != nil {
		return err
	}
	rows = clip.FilterTag(rows, flagClipTag)

	entries := make([]picker.Entry, len(rows))
	for i, r := range rows {
		entries[i] = picker.Entry{Candidate: r, Display: r.Display()}
	}

	sel, err := runPicker(e, entries, nil)
	if err != nil {
		return err
	}
	if sel.Cancelled() {
		return errCancelled
	}

	row := sel.Entry.Candidate.(*clip.Row)
	data, err := db.Data(row.ID)
	if err != nil {
		return err
	}

	if row.IsImage() {
		// Image payloads only go to stdout; pipe into wl-copy or xclip to
		// restore them to the clipboard.
		e.logger.Warn("image entry, clipboard restore skipped", "mime", row.Mime)
	} else if err := clip.CopyText(string(data)); err != nil {
		e.logger.Warn("restore clipboard", "err", err)
	}

	fmt.Print(string(data))
	e.recordUse(row.Identity())
	return nil
}
