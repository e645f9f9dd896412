package picker

import (
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/runger/fsel/internal/rank"
)

// EntriesMsg replaces the picker's entry set. The candidate sources send it
// once when loading completes, or several times while discovery is still
// streaming; the picker simply re-ranks whatever it has.
type EntriesMsg struct {
	Entries []Entry
	// Final marks the last batch; until then the status line shows a
	// loading indicator.
	Final bool
}

// Model is the Bubble Tea model for the picker.
type Model struct {
	cfg   Config
	store Store

	input   textinput.Model
	entries []Entry
	byID    map[string]*Entry

	scored    []rank.Scored
	selection int
	offset    int

	width   int
	height  int
	loading bool

	result Selection
	done   bool
}

// NewModel creates a picker. A nil entries slice means candidates are still
// loading and will arrive via EntriesMsg; a non-nil (even empty) slice is a
// complete set.
func NewModel(cfg Config, store Store, entries []Entry) Model {
	ti := textinput.New()
	ti.Prompt = cfg.Prompt
	if ti.Prompt == "" {
		ti.Prompt = "> "
	}
	ti.Focus()

	m := Model{
		cfg:     cfg,
		store:   store,
		input:   ti,
		loading: entries == nil,
		width:   80,
		height:  24,
	}
	m.setEntries(entries)
	return m
}

// Result returns the outcome after the program has finished.
func (m Model) Result() Selection {
	return m.result
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.clampScroll()
		return m, nil

	case EntriesMsg:
		m.setEntries(msg.Entries)
		if msg.Final {
			m.loading = false
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc, tea.KeyCtrlC:
		m.result = Selection{Query: m.input.Value()}
		m.done = true
		return m, tea.Quit

	case tea.KeyEnter:
		m.result = Selection{Query: m.input.Value(), Submitted: true}
		if m.selection >= 0 && m.selection < len(m.scored) {
			m.result.Entry = m.byID[m.scored[m.selection].Candidate.Identity()]
		}
		m.done = true
		return m, tea.Quit

	case tea.KeyUp, tea.KeyCtrlK:
		m.moveSelection(-1)
		return m, nil

	case tea.KeyDown, tea.KeyCtrlJ:
		m.moveSelection(1)
		return m, nil

	case tea.KeyPgUp:
		m.moveSelection(-m.listHeight())
		return m, nil

	case tea.KeyPgDown:
		m.moveSelection(m.listHeight())
		return m, nil

	case tea.KeyHome:
		m.selection = 0
		m.clampScroll()
		return m, nil

	case tea.KeyEnd:
		m.selection = len(m.scored) - 1
		m.clampScroll()
		return m, nil

	case tea.KeyCtrlP:
		m.togglePin()
		return m, nil
	}

	// Everything else edits the query; each edit triggers exactly one
	// synchronous re-rank before the next event is processed.
	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if m.input.Value() != before {
		m.rerank()
	}
	return m, cmd
}

// setEntries swaps the entry set and re-ranks against the current query.
func (m *Model) setEntries(entries []Entry) {
	m.entries = entries
	m.byID = make(map[string]*Entry, len(entries))
	for i := range entries {
		m.byID[entries[i].Candidate.Identity()] = &entries[i]
	}
	m.rerank()
}

// rerank runs the engine over the full candidate set. Selection resets to
// the top: the best match for the new query.
func (m *Model) rerank() {
	cands := make([]rank.Candidate, len(m.entries))
	for i, e := range m.entries {
		cands[i] = e.Candidate
	}
	m.scored = rank.Rank(cands, m.input.Value(), m.historyReader(), m.now(), m.cfg.Options)
	if len(m.scored) == 0 {
		m.selection = -1
	} else {
		m.selection = 0
	}
	m.offset = 0
}

// togglePin flips the pin flag of the selected entry and re-ranks so the
// tier change is visible immediately. The selection follows the entry.
func (m *Model) togglePin() {
	if m.store == nil || m.selection < 0 || m.selection >= len(m.scored) {
		return
	}
	id := m.scored[m.selection].Candidate.Identity()
	rec, _ := m.store.Get(id)
	if err := m.store.SetPinned(id, !rec.Pinned); err != nil {
		return
	}
	m.rerank()
	for i, s := range m.scored {
		if s.Candidate.Identity() == id {
			m.selection = i
			break
		}
	}
	m.clampScroll()
}

func (m *Model) moveSelection(delta int) {
	if len(m.scored) == 0 {
		return
	}
	next := m.selection + delta
	if next < 0 {
		if m.cfg.HardStop || delta < -1 {
			next = 0
		} else {
			next = len(m.scored) - 1
		}
	}
	if next >= len(m.scored) {
		if m.cfg.HardStop || delta > 1 {
			next = len(m.scored) - 1
		} else {
			next = 0
		}
	}
	m.selection = next
	m.clampScroll()
}

func (m *Model) clampScroll() {
	if m.selection < 0 {
		m.offset = 0
		return
	}
	h := m.listHeight()
	if m.selection < m.offset {
		m.offset = m.selection
	}
	if m.selection >= m.offset+h {
		m.offset = m.selection - h + 1
	}
}

// listHeight is the number of visible list rows: total height minus the
// input and status lines.
func (m Model) listHeight() int {
	h := m.height - 2
	if h < 1 {
		h = 1
	}
	return h
}

// historyReader exposes the store to the engine; Store is a superset of the
// engine's read-only history view.
func (m Model) historyReader() rank.History {
	if m.store == nil {
		return nil
	}
	return m.store
}

func (m Model) now() time.Time {
	if m.cfg.Now != nil {
		return m.cfg.Now()
	}
	return time.Now()
}
