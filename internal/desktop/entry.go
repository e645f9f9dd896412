// Package desktop discovers and parses XDG desktop entries and adapts them
// into ranking candidates for app mode.
package desktop

import (
	"bufio"
	"errors"
	"strings"

	"github.com/runger/fsel/internal/rank"
)

// ErrNotApplication is returned for desktop files that are not launchable
// applications (links, directories, Hidden/NoDisplay entries).
var ErrNotApplication = errors.New("not a launchable application entry")

// App is one parsed desktop entry.
type App struct {
	// ID is the desktop file id (file name), the stable history key.
	ID string

	Name        string
	GenericName string
	Comment     string
	Keywords    []string
	Categories  []string

	// Exec is the command line with field codes (%f, %u, ...) stripped.
	Exec     string
	Terminal bool
	Path     string // working directory, may be empty

	OnlyShowIn []string
	NotShowIn  []string
}

// Identity implements rank.Candidate.
func (a *App) Identity() string { return a.ID }

// Fields implements rank.Candidate. Name is the primary field; generic name
// and keywords are secondary; categories and the comment are tertiary.
func (a *App) Fields() []rank.Field {
	return []rank.Field{
		{Name: "name", Text: a.Name, Class: rank.FieldPrimary},
		{Name: "generic", Text: a.GenericName, Class: rank.FieldSecondary},
		{Name: "keywords", Text: strings.Join(a.Keywords, " "), Class: rank.FieldSecondary},
		{Name: "categories", Text: strings.Join(a.Categories, " "), Class: rank.FieldTertiary},
		{Name: "comment", Text: a.Comment, Class: rank.FieldTertiary},
	}
}

// Parse reads a desktop entry from its file contents. Entries that are not
// applications, or are marked Hidden/NoDisplay, return ErrNotApplication.
// Only the [Desktop Entry] group is read; actions and localized keys are
// ignored.
func Parse(id, contents string) (*App, error) {
	app := &App{ID: id}
	inEntry := false
	entryType := ""
	noDisplay := false
	hidden := false

	sc := bufio.NewScanner(strings.NewReader(contents))
	// Some generated desktop files carry very long Exec lines.
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if strings.HasPrefix(line, "[") {
			inEntry = line == "[Desktop Entry]"
			continue
		}
		if !inEntry {
			continue
		}

		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)

		switch key {
		case "Type":
			entryType = value
		case "Name":
			app.Name = value
		case "GenericName":
			app.GenericName = value
		case "Comment":
			app.Comment = value
		case "Keywords":
			app.Keywords = splitList(value)
		case "Categories":
			app.Categories = splitList(value)
		case "Exec":
			app.Exec = stripFieldCodes(value)
		case "Terminal":
			app.Terminal = value == "true"
		case "Path":
			app.Path = value
		case "OnlyShowIn":
			app.OnlyShowIn = splitList(value)
		case "NotShowIn":
			app.NotShowIn = splitList(value)
		case "NoDisplay":
			noDisplay = value == "true"
		case "Hidden":
			hidden = value == "true"
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}

	if entryType != "Application" || app.Name == "" || app.Exec == "" || noDisplay || hidden {
		return nil, ErrNotApplication
	}
	return app, nil
}

// ShownOnDesktop applies the OnlyShowIn/NotShowIn filters against the
// current desktop environment list (XDG_CURRENT_DESKTOP, colon-split).
func (a *App) ShownOnDesktop(desktops []string) bool {
	contains := func(list []string) bool {
		for _, d := range list {
			for _, cd := range desktops {
				if strings.EqualFold(d, cd) {
					return true
				}
			}
		}
		return false
	}
	if len(a.NotShowIn) > 0 && contains(a.NotShowIn) {
		return false
	}
	if len(a.OnlyShowIn) > 0 && !contains(a.OnlyShowIn) {
		return false
	}
	return true
}

// splitList splits a semicolon-separated desktop entry list, dropping empty
// segments (lists conventionally end with a trailing semicolon).
func splitList(value string) []string {
	parts := strings.Split(value, ";")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// stripFieldCodes removes %f/%u style placeholders from an Exec line and
// unescapes doubled percent signs.
func stripFieldCodes(exec string) string {
	var b strings.Builder
	b.Grow(len(exec))
	for i := 0; i < len(exec); i++ {
		if exec[i] != '%' || i+1 >= len(exec) {
			b.WriteByte(exec[i])
			continue
		}
		i++
		if exec[i] == '%' {
			b.WriteByte('%')
		}
		// Any other field code is dropped.
	}
	return strings.Join(strings.Fields(b.String()), " ")
}
