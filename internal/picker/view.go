package picker

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/runger/fsel/internal/sanitize"
)

var (
	selectedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15"))
	normalStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	pinStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	numberStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	dimStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// View implements tea.Model.
func (m Model) View() string {
	if m.done {
		return ""
	}

	var b strings.Builder
	b.WriteString(m.input.View())
	b.WriteRune('\n')
	b.WriteString(m.viewStatus())
	b.WriteRune('\n')
	b.WriteString(m.viewList())
	return b.String()
}

// viewStatus renders the match-count line under the input.
func (m Model) viewStatus() string {
	if m.loading {
		return dimStyle.Render("Loading...")
	}
	return dimStyle.Render(fmt.Sprintf("%d/%d", len(m.scored), len(m.entries)))
}

// viewList renders the visible window of ranked entries.
func (m Model) viewList() string {
	if m.cfg.HideBeforeTyping && m.input.Value() == "" {
		return ""
	}
	if len(m.scored) == 0 {
		if m.loading {
			return ""
		}
		return dimStyle.Render("No matches")
	}

	selected := selectedStyle
	if m.cfg.HighlightColor != "" {
		selected = selected.Foreground(lipgloss.Color(m.cfg.HighlightColor))
	}

	var b strings.Builder
	end := m.offset + m.listHeight()
	if end > len(m.scored) {
		end = len(m.scored)
	}
	for i := m.offset; i < end; i++ {
		s := m.scored[i]
		line := m.entryDisplay(s.Candidate.Identity())

		var prefix string
		if m.cfg.ShowLineNumbers {
			prefix = numberStyle.Render(fmt.Sprintf("%3d ", i+1))
		}
		if m.cfg.PinIcon != "" && m.isPinned(s.Candidate.Identity()) {
			prefix += pinStyle.Render(m.cfg.PinIcon + " ")
		}

		if m.width > 4 {
			line = sanitize.MiddleTruncate(line, m.width-4-lipgloss.Width(prefix))
		}
		if i == m.selection {
			b.WriteString(selected.Render("> ") + prefix + selected.Render(line))
		} else {
			b.WriteString("  " + prefix + normalStyle.Render(line))
		}
		if i < end-1 {
			b.WriteRune('\n')
		}
	}
	return b.String()
}

// entryDisplay returns the display text for an identity, falling back to
// the identity itself.
func (m Model) entryDisplay(id string) string {
	if e, ok := m.byID[id]; ok && e.Display != "" {
		return e.Display
	}
	return id
}

func (m Model) isPinned(id string) bool {
	if m.store == nil {
		return false
	}
	rec, ok := m.store.Get(id)
	return ok && rec.Pinned
}
