// Package rank implements the ranking and matching engine shared by all
// fsel front-ends. It scores candidate items against an incrementally typed
// query, combining tiered match classification with persistent usage history
// ("frecency") into one deterministic total order.
package rank

import "github.com/runger/fsel/internal/history"

// FieldClass describes how strongly a field identifies a candidate.
// Matches in weaker classes land in lower tiers.
type FieldClass int

const (
	// FieldTertiary covers descriptive text (categories, comments).
	FieldTertiary FieldClass = iota
	// FieldSecondary covers alternate names (generic name, keywords).
	FieldSecondary
	// FieldPrimary covers the candidate's main name.
	FieldPrimary
)

// Field is one named, searchable text field of a candidate.
type Field struct {
	Name  string
	Text  string
	Class FieldClass
}

// Candidate is the interface for items that can be ranked. The three
// front-ends (desktop entries, stdin lines, clipboard rows) each implement
// it; the engine never branches on which one it is dealing with.
type Candidate interface {
	// Identity is the stable key used for history lookups. It must be
	// non-empty.
	Identity() string

	// Fields returns the candidate's searchable fields in declaration
	// order. At least one field must have non-empty text.
	Fields() []Field
}

// History is the read-only view of the usage history the engine consumes.
// The selection path mutates the store; ranking only ever reads it.
type History interface {
	Get(identity string) (history.Record, bool)
}

// emptyHistory is used when no history is supplied.
type emptyHistory struct{}

func (emptyHistory) Get(string) (history.Record, bool) { return history.Record{}, false }
