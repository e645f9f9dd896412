package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var clearHistoryCmd = &cobra.Command{
	Use:   "clear-history",
	Short: "erase all usage history and pins",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := setup("history")
		if err != nil {
			return err
		}
		defer e.close()

		if err := e.store.ClearAll(); err != nil {
			return fmt.Errorf("clear history: %w", err)
		}
		fmt.Println("history cleared")
		return nil
	},
}
