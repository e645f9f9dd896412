// Package dmenu implements the dmenu-compatible stdin/stdout front-end:
// lines read from stdin become ranking candidates, optionally split into
// columns with independent match/display/output projections.
package dmenu

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/runger/fsel/internal/rank"
	"github.com/runger/fsel/internal/sanitize"
)

// Item is one stdin line. Its identity is the raw line itself, so history
// carries across invocations fed the same menu.
type Item struct {
	Raw     string
	Line    int // 1-based input position
	Columns []string

	clean      string // Raw with escapes stripped and UTF-8 repaired
	projection rank.Projection
}

// Identity implements rank.Candidate.
func (it *Item) Identity() string { return it.Raw }

// Fields implements rank.Candidate: one field per projected match column,
// or the whole (scrubbed) line when no match projection is configured. All
// stdin fields rank as primary; dmenu input has no weaker-field notion.
func (it *Item) Fields() []rank.Field {
	if len(it.projection.MatchFields) == 0 {
		return []rank.Field{{Name: "line", Text: it.clean, Class: rank.FieldPrimary}}
	}
	cols := it.projection.MatchColumns(it.Columns)
	fields := make([]rank.Field, len(cols))
	for i, c := range cols {
		fields[i] = rank.Field{
			Name:  fmt.Sprintf("col%d", i+1),
			Text:  c,
			Class: rank.FieldPrimary,
		}
	}
	return fields
}

// Display returns the text the list shows for this item.
func (it *Item) Display() string {
	return sanitize.Line(it.projection.DisplayText(it.Raw, it.Columns))
}

// Output returns the text printed to stdout when this item is selected.
func (it *Item) Output() string {
	return it.projection.OutputText(it.Raw, it.Columns)
}

// ReadOptions controls stdin parsing.
type ReadOptions struct {
	Delimiter  string // column delimiter, default space
	NullSep    bool   // input records are NUL-separated instead of newline
	Projection rank.Projection
}

// Read parses menu items from r. Blank lines are skipped; ANSI escapes and
// invalid UTF-8 are scrubbed from the matchable text but the raw line is
// kept verbatim for output.
func Read(r io.Reader, opts ReadOptions) ([]*Item, error) {
	delimiter := opts.Delimiter
	if delimiter == "" {
		delimiter = " "
	}

	var lines []string
	if opts.NullSep {
		data, err := io.ReadAll(r)
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		lines = strings.Split(string(data), "\x00")
	} else {
		sc := bufio.NewScanner(r)
		sc.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
		for sc.Scan() {
			lines = append(lines, sc.Text())
		}
		if err := sc.Err(); err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
	}

	items := make([]*Item, 0, len(lines))
	n := 0
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		n++
		clean := sanitize.ValidateUTF8(sanitize.StripANSI(line))
		items = append(items, &Item{
			Raw:        line,
			Line:       n,
			Columns:    rank.SplitColumns(clean, delimiter),
			clean:      clean,
			projection: opts.Projection,
		})
	}
	return items, nil
}

// Candidates adapts items to the engine's candidate slice.
func Candidates(items []*Item) []rank.Candidate {
	out := make([]rank.Candidate, len(items))
	for i, it := range items {
		out[i] = it
	}
	return out
}
