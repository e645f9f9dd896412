package cmd

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/runger/fsel/internal/picker"
)

// runPicker drives one interactive pick on /dev/tty. entries may be nil
// when load is set; load runs concurrently and its result is delivered to
// the model mid-session. stdin/stdout stay untouched for data.
func runPicker(e *env, entries []picker.Entry, load func() []picker.Entry) (picker.Selection, error) {
	tty, err := os.OpenFile("/dev/tty", os.O_RDWR, 0)
	if err != nil {
		return picker.Selection{}, fmt.Errorf("open /dev/tty: %w", err)
	}
	defer tty.Close()

	// Detect the color profile from the real tty: stdout may be a pipe,
	// which would drop lipgloss to plain ascii.
	lipgloss.SetColorProfile(termenv.NewOutput(tty).ColorProfile())

	model := picker.NewModel(pickerConfig(e), e.store, entries)
	p := tea.NewProgram(model,
		tea.WithAltScreen(),
		tea.WithInput(tty),
		tea.WithOutput(tty),
	)

	if load != nil {
		go func() {
			p.Send(picker.EntriesMsg{Entries: load(), Final: true})
		}()
	}

	final, err := p.Run()
	if err != nil {
		return picker.Selection{}, fmt.Errorf("run picker: %w", err)
	}
	m, ok := final.(picker.Model)
	if !ok {
		return picker.Selection{}, fmt.Errorf("unexpected model type %T", final)
	}
	return m.Result(), nil
}

func pickerConfig(e *env) picker.Config {
	ui := e.cfg.UI
	return picker.Config{
		Prompt:           ui.Prompt,
		Options:          e.cfg.RankOptions(),
		HideBeforeTyping: ui.HideBeforeTyping,
		HardStop:         ui.HardStop,
		ShowLineNumbers:  ui.ShowLineNumbers,
		HighlightColor:   ui.HighlightColor,
		PinIcon:          ui.PinIcon,
	}
}
