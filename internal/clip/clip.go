// Package clip implements the clipboard-history front-end. It reads entries
// from a cclip-compatible sqlite database (one row per clipboard capture,
// with mime type, preview text and the raw payload) and adapts them into
// ranking candidates.
package clip

import (
	"database/sql"
	"fmt"
	"strconv"
	"strings"

	"github.com/atotto/clipboard"
	_ "modernc.org/sqlite"

	"github.com/runger/fsel/internal/rank"
	"github.com/runger/fsel/internal/sanitize"
)

// previewLimit caps how much preview text a row exposes to matching and
// display; clipboard captures can be megabytes of text.
const previewLimit = 200

// Row is one clipboard history entry.
type Row struct {
	ID      int64
	Mime    string
	Preview string
	Tag     string // comma-separated tag names, empty on older cclip schemas
	TS      int64  // capture time, unix milliseconds
}

// Identity implements rank.Candidate. Row ids are stable for the lifetime
// of the clipboard database.
func (r *Row) Identity() string { return "clip:" + strconv.FormatInt(r.ID, 10) }

// Fields implements rank.Candidate: the preview is the primary match field,
// the mime type and tags secondary ones so "png" or a tag name find entries
// whose preview says something else.
func (r *Row) Fields() []rank.Field {
	fields := []rank.Field{
		{Name: "preview", Text: r.Preview, Class: rank.FieldPrimary},
		{Name: "mime", Text: r.Mime, Class: rank.FieldSecondary},
	}
	if r.Tag != "" {
		fields = append(fields, rank.Field{Name: "tag", Text: r.Tag, Class: rank.FieldSecondary})
	}
	return fields
}

// Tags returns the row's tag names.
func (r *Row) Tags() []string {
	if r.Tag == "" {
		return nil
	}
	var out []string
	for _, t := range strings.Split(r.Tag, ",") {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// HasTag reports whether the row carries the named tag.
func (r *Row) HasTag(name string) bool {
	for _, t := range r.Tags() {
		if t == name {
			return true
		}
	}
	return false
}

// IsImage reports whether the row holds image data.
func (r *Row) IsImage() bool { return strings.HasPrefix(r.Mime, "image/") }

// Display returns the list text for the row.
func (r *Row) Display() string {
	text := r.Preview
	if r.IsImage() {
		text = fmt.Sprintf("[%s] %s", r.Mime, r.Preview)
	}
	if tags := r.Tags(); len(tags) > 0 {
		text += " #" + strings.Join(tags, " #")
	}
	return text
}

// DB is a read-only handle on the clipboard history database.
type DB struct {
	db *sql.DB
}

// Open opens the clipboard database at path read-only. The expected schema
// is cclip's: history(id INTEGER PRIMARY KEY, mime_type TEXT, preview TEXT,
// data BLOB, ts INTEGER).
func Open(path string) (*DB, error) {
	dsn := fmt.Sprintf("file:%s?mode=ro&_pragma=busy_timeout(5000)", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open clipboard database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("open clipboard database: %w", err)
	}
	return &DB{db: db}, nil
}

func (d *DB) Close() error { return d.db.Close() }

// Rows returns every clipboard entry, newest first. The tag column only
// exists on newer cclip schemas; older databases are read without it.
func (d *DB) Rows() ([]*Row, error) {
	rows, err := d.db.Query(`
		SELECT id, mime_type, preview, tag, ts FROM history ORDER BY ts DESC
	`)
	hasTag := err == nil
	if err != nil {
		rows, err = d.db.Query(`
			SELECT id, mime_type, preview, ts FROM history ORDER BY ts DESC
		`)
	}
	if err != nil {
		return nil, fmt.Errorf("list clipboard history: %w", err)
	}
	defer rows.Close()

	var out []*Row
	for rows.Next() {
		r := &Row{}
		var preview, tag sql.NullString
		if hasTag {
			err = rows.Scan(&r.ID, &r.Mime, &preview, &tag, &r.TS)
		} else {
			err = rows.Scan(&r.ID, &r.Mime, &preview, &r.TS)
		}
		if err != nil {
			return nil, fmt.Errorf("scan clipboard row: %w", err)
		}
		r.Tag = tag.String
		r.Preview = sanitize.Line(preview.String)
		if runes := []rune(r.Preview); len(runes) > previewLimit {
			r.Preview = string(runes[:previewLimit])
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list clipboard history: %w", err)
	}
	return out, nil
}

// FilterTag keeps only rows carrying the named tag.
func FilterTag(rows []*Row, tag string) []*Row {
	if tag == "" {
		return rows
	}
	var out []*Row
	for _, r := range rows {
		if r.HasTag(tag) {
			out = append(out, r)
		}
	}
	return out
}

// Data returns the raw payload of one entry.
func (d *DB) Data(id int64) ([]byte, error) {
	var data []byte
	err := d.db.QueryRow(`SELECT data FROM history WHERE id = ?`, id).Scan(&data)
	if err != nil {
		return nil, fmt.Errorf("read clipboard row %d: %w", id, err)
	}
	return data, nil
}

// Candidates adapts rows to the engine's candidate slice.
func Candidates(rows []*Row) []rank.Candidate {
	out := make([]rank.Candidate, len(rows))
	for i, r := range rows {
		out[i] = r
	}
	return out
}

// CopyText places text on the system clipboard after a selection.
func CopyText(text string) error {
	if err := clipboard.WriteAll(text); err != nil {
		return fmt.Errorf("write clipboard: %w", err)
	}
	return nil
}
