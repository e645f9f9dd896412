package rank

import "strings"

// SplitColumns splits a raw line into columns by delimiter. A space
// delimiter splits on runs of whitespace (dmenu convention); any other
// delimiter splits literally, preserving empty columns positionally so
// consecutive delimiters yield empty fields rather than collapsing.
func SplitColumns(line, delimiter string) []string {
	if delimiter == "" || delimiter == " " {
		return strings.Fields(line)
	}
	return strings.Split(line, delimiter)
}

// Projection selects independent column subsets for matching, display and
// output. Indices are 1-based, per dmenu's --with-nth convention. An index
// beyond a line's column count resolves to an empty string, never an error.
type Projection struct {
	// MatchFields are the columns fed to the matcher. Empty means all.
	MatchFields []int
	// DisplayFields are the columns the UI shows. Empty means all.
	DisplayFields []int
	// OutputFields are the columns emitted on selection. Empty means the
	// whole raw line.
	OutputFields []int
}

// Active reports whether any projection subset is configured.
func (p Projection) Active() bool {
	return len(p.MatchFields) > 0 || len(p.DisplayFields) > 0 || len(p.OutputFields) > 0
}

// Pick resolves an index set against the columns of one line. Out-of-range
// indices contribute empty strings.
func Pick(columns []string, indices []int) []string {
	out := make([]string, 0, len(indices))
	for _, idx := range indices {
		if idx >= 1 && idx <= len(columns) {
			out = append(out, columns[idx-1])
		} else {
			out = append(out, "")
		}
	}
	return out
}

// MatchColumns returns the columns to feed the matcher for one line.
func (p Projection) MatchColumns(columns []string) []string {
	if len(p.MatchFields) == 0 {
		return columns
	}
	return Pick(columns, p.MatchFields)
}

// DisplayText returns the text the UI shows for one line.
func (p Projection) DisplayText(raw string, columns []string) string {
	if len(p.DisplayFields) == 0 {
		return raw
	}
	return strings.Join(Pick(columns, p.DisplayFields), " ")
}

// OutputText returns the text emitted when a line is selected.
func (p Projection) OutputText(raw string, columns []string) string {
	if len(p.OutputFields) == 0 {
		return raw
	}
	return strings.Join(Pick(columns, p.OutputFields), "\t")
}
