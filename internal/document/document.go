package document

import (
	"strings"
)

// Document is an ordered sequence of rows plus file identity and a dirty
// flag. It is owned and mutated by a single editor; it is not safe for
// concurrent use.
type Document struct {
	rows     []*Row
	fileName string
	dirty    bool
	fs       FileSystem
}

// Option configures a Document.
type Option func(*Document)

// WithFileSystem sets the file system used by Open and Save.
func WithFileSystem(fs FileSystem) Option {
	return func(d *Document) {
		if fs != nil {
			d.fs = fs
		}
	}
}

// WithFileName sets the name the document is saved to.
func WithFileName(name string) Option {
	return func(d *Document) {
		d.fileName = name
	}
}

// WithContent loads the document rows from text without marking it dirty.
func WithContent(text string) Option {
	return func(d *Document) {
		d.rows = splitRows(text)
	}
}

// New creates an empty, clean document with no file name.
func New(opts ...Option) *Document {
	d := &Document{fs: DefaultFS()}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Open reads the file at path, one row per line.
// The returned document is not dirty and is named after path.
func Open(path string, opts ...Option) (*Document, error) {
	d := New(opts...)
	data, err := d.fs.ReadFile(path)
	if err != nil {
		return nil, &OperationError{Op: "open", Path: path, Err: err}
	}
	d.rows = splitRows(string(data))
	d.fileName = path
	return d, nil
}

// splitRows splits text into rows on '\n'. A trailing '\r' is dropped from
// each line and a final terminator does not produce an extra empty row.
func splitRows(text string) []*Row {
	if text == "" {
		return nil
	}
	text = strings.TrimSuffix(text, "\n")
	lines := strings.Split(text, "\n")
	rows := make([]*Row, 0, len(lines))
	for _, line := range lines {
		rows = append(rows, NewRow(strings.TrimSuffix(line, "\r")))
	}
	return rows
}

// FileName returns the file the document is bound to, or "".
func (d *Document) FileName() string {
	return d.fileName
}

// HasFileName returns true if a file name is set.
func (d *Document) HasFileName() bool {
	return d.fileName != ""
}

// SetFileName binds the document to a file. It does not touch the dirty flag.
func (d *Document) SetFileName(name string) {
	d.fileName = name
}

// Len returns the number of rows.
func (d *Document) Len() int {
	return len(d.rows)
}

// IsEmpty returns true if the document has no rows.
func (d *Document) IsEmpty() bool {
	return len(d.rows) == 0
}

// IsDirty returns true if the document changed since it was loaded,
// created or last saved.
func (d *Document) IsDirty() bool {
	return d.dirty
}

// Row returns the row at index y, or nil past the end of the document.
func (d *Document) Row(y int) *Row {
	if y < 0 || y >= len(d.rows) {
		return nil
	}
	return d.rows[y]
}

// RowLen returns the character count of row y, or 0 if there is no such row.
func (d *Document) RowLen(y int) int {
	if row := d.Row(y); row != nil {
		return row.Len()
	}
	return 0
}

// Text returns the document content as it would be saved.
func (d *Document) Text() string {
	var sb strings.Builder
	for _, row := range d.rows {
		sb.WriteString(row.String())
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Insert inserts ch at pos.
// A newline splits row pos.Y at pos.X. Inserting on the row one past the
// end appends a new row first. Positions further out are ignored.
func (d *Document) Insert(pos Position, ch rune) {
	if pos.Y < 0 || pos.Y > len(d.rows) {
		return
	}
	d.dirty = true

	if ch == '\n' {
		d.insertNewline(pos)
		return
	}
	if pos.Y == len(d.rows) {
		d.rows = append(d.rows, NewRow(""))
	}
	d.rows[pos.Y].Insert(pos.X, ch)
}

func (d *Document) insertNewline(pos Position) {
	if pos.Y == len(d.rows) {
		d.rows = append(d.rows, NewRow(""))
		return
	}
	tail := d.rows[pos.Y].Split(pos.X)
	d.insertRow(pos.Y+1, tail)
}

func (d *Document) insertRow(at int, row *Row) {
	d.rows = append(d.rows, nil)
	copy(d.rows[at+1:], d.rows[at:])
	d.rows[at] = row
}

// Delete removes the character at pos.
// At or past the end of a row the next row is joined onto it. At the end of
// the last row, or past the last row, nothing changes.
func (d *Document) Delete(pos Position) {
	if pos.Y < 0 || pos.Y >= len(d.rows) {
		return
	}
	row := d.rows[pos.Y]

	if pos.X >= row.Len() {
		if pos.Y+1 >= len(d.rows) {
			return
		}
		next := d.rows[pos.Y+1]
		d.rows = append(d.rows[:pos.Y+1], d.rows[pos.Y+2:]...)
		row.Append(next)
		d.dirty = true
		return
	}

	row.Delete(pos.X)
	d.dirty = true
}

// Find returns the position of the first occurrence of query at or after
// from. The search runs forward only and stops at the end of the document.
func (d *Document) Find(query string, from Position) (Position, bool) {
	if query == "" {
		return Position{}, false
	}
	if from.Y < 0 {
		from = Position{}
	}
	start := max(from.X, 0)
	for y := from.Y; y < len(d.rows); y++ {
		if x, ok := d.rows[y].Find(query, start); ok {
			return Position{X: x, Y: y}, true
		}
		start = 0
	}
	return Position{}, false
}

// Save writes every row followed by '\n' to the document's file.
// The dirty flag is cleared only when the write succeeds.
func (d *Document) Save() error {
	if d.fileName == "" {
		return &OperationError{Op: "save", Err: ErrNoFileName}
	}
	if err := d.fs.WriteFile(d.fileName, []byte(d.Text())); err != nil {
		return &OperationError{Op: "save", Path: d.fileName, Err: err}
	}
	d.dirty = false
	return nil
}
