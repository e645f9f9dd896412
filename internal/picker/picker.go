// Package picker is the interactive list-and-filter TUI shared by all
// front-ends. It owns query input, selection and scrolling; ranking is
// delegated to the engine synchronously on every input event.
package picker

import (
	"time"

	"github.com/runger/fsel/internal/history"
	"github.com/runger/fsel/internal/rank"
)

// Entry pairs a candidate with its display text. Each front-end prepares
// its own display rendering (column projection, image placeholders).
type Entry struct {
	Candidate rank.Candidate
	Display   string
}

// Selection is the picker's outcome.
type Selection struct {
	// Entry is the chosen entry; nil when the picker was cancelled or
	// Enter was pressed with no match.
	Entry *Entry
	// Query is the final query text, useful for free-text fallback.
	Query string
	// Submitted is true when the picker closed with Enter, even if no
	// entry matched. dmenu mode prints the query in that case.
	Submitted bool
}

// Cancelled reports whether the user left without choosing.
func (s Selection) Cancelled() bool { return s.Entry == nil }

// Config carries the picker's behavior knobs, resolved by the config and
// CLI layers before the TUI starts.
type Config struct {
	Prompt string
	// Options configures the ranking engine.
	Options rank.Options
	// HideBeforeTyping suppresses the list until the first keystroke.
	HideBeforeTyping bool
	// HardStop disables selection wrap-around at the list edges.
	HardStop bool
	// ShowLineNumbers prefixes entries with their rank position.
	ShowLineNumbers bool
	// HighlightColor is the lipgloss color of the selection bar.
	HighlightColor string
	// PinIcon marks pinned entries in the list.
	PinIcon string
	// Now supplies the clock for frecency; tests pin it. Nil means
	// time.Now.
	Now func() time.Time
}

// Store is the slice of the history store the picker needs: reads for
// ranking, pin writes for the toggle key. Use recording stays with the
// caller on the selection-confirmation path.
type Store interface {
	Get(identity string) (history.Record, bool)
	SetPinned(identity string, pinned bool) error
}

var _ Store = (history.Store)(nil)
