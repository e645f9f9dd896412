package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/runger/fsel/internal/dmenu"
	"github.com/runger/fsel/internal/picker"
	"github.com/runger/fsel/internal/rank"
)

var (
	flagDelimiter string
	flagMatchNth  []int
	flagWithNth   []int
	flagAcceptNth []int
	flagRead0     bool
)

var dmenuCmd = &cobra.Command{
	Use:   "dmenu",
	Short: "pick one line from stdin",
	Long: `Read menu items from stdin, one per line, and print the selection
to stdout. Lines can be split into columns and independently projected for
matching (--match-nth), display (--with-nth) and output (--accept-nth);
column indices are 1-based.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDmenu(cmd)
	},
}

func init() {
	f := dmenuCmd.Flags()
	f.StringVarP(&flagDelimiter, "delimiter", "d", "", "column delimiter (default: whitespace)")
	f.IntSliceVar(&flagMatchNth, "match-nth", nil, "columns to match against")
	f.IntSliceVar(&flagWithNth, "with-nth", nil, "columns to display")
	f.IntSliceVar(&flagAcceptNth, "accept-nth", nil, "columns to print on selection")
	f.BoolVar(&flagRead0, "read0", false, "read NUL-separated input records")
}

func runDmenu(cmd *cobra.Command) error {
	e, err := setup("dmenu")
	if err != nil {
		return err
	}
	defer e.close()

	opts := dmenuReadOptions(e)
	items, err := dmenu.Read(os.Stdin, opts)
	if err != nil {
		return err
	}

	entries := make([]picker.Entry, len(items))
	for i, it := range items {
		entries[i] = picker.Entry{Candidate: it, Display: it.Display()}
	}

	sel, err := runPicker(e, entries, nil)
	if err != nil {
		return err
	}
	if sel.Entry == nil {
		// Enter on an empty result set submits the query verbatim, the
		// dmenu custom-input convention.
		if sel.Submitted && sel.Query != "" {
			fmt.Println(sel.Query)
			return nil
		}
		return errCancelled
	}

	item := sel.Entry.Candidate.(*dmenu.Item)
	fmt.Println(item.Output())
	e.recordUse(item.Identity())
	return nil
}

// dmenuReadOptions merges config defaults with flags; any projection flag
// given on the command line replaces the config projection wholesale.
func dmenuReadOptions(e *env) dmenu.ReadOptions {
	delimiter := e.cfg.Dmenu.Delimiter
	if flagDelimiter != "" {
		delimiter = flagDelimiter
	}
	proj := e.cfg.Projection()
	if flagMatchNth != nil || flagWithNth != nil || flagAcceptNth != nil {
		proj = rank.Projection{
			MatchFields:   flagMatchNth,
			DisplayFields: flagWithNth,
			OutputFields:  flagAcceptNth,
		}
	}
	return dmenu.ReadOptions{
		Delimiter:  delimiter,
		NullSep:    flagRead0,
		Projection: proj,
	}
}
