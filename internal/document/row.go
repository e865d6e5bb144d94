package document

import (
	"strings"
	"unicode/utf8"
)

// Row is a single line of text.
// Indices passed to Row methods are character (rune) offsets. Out of range
// indices are clamped; no method panics.
type Row struct {
	text   string
	length int // rune count of text
}

// NewRow creates a row holding s.
func NewRow(s string) *Row {
	return &Row{text: s, length: utf8.RuneCountInString(s)}
}

// Len returns the number of characters in the row.
func (r *Row) Len() int {
	return r.length
}

// IsEmpty returns true if the row has no characters.
func (r *Row) IsEmpty() bool {
	return r.length == 0
}

// String returns the raw row content.
func (r *Row) String() string {
	return r.text
}

// Render returns the characters whose indices fall in [start, end).
// Both bounds are clamped to the row.
func (r *Row) Render(start, end int) string {
	end = clamp(end, 0, r.length)
	start = clamp(start, 0, end)
	if start == end {
		return ""
	}
	return r.text[r.byteOffset(start):r.byteOffset(end)]
}

// Insert inserts ch before the character at index.
// An index past the end appends.
func (r *Row) Insert(index int, ch rune) {
	index = clamp(index, 0, r.length)
	at := r.byteOffset(index)

	var sb strings.Builder
	sb.Grow(len(r.text) + utf8.UTFMax)
	sb.WriteString(r.text[:at])
	sb.WriteRune(ch)
	sb.WriteString(r.text[at:])

	r.text = sb.String()
	r.length++
}

// Delete removes the character at index.
// Deleting at or past the end is a no-op.
func (r *Row) Delete(index int) {
	if index < 0 || index >= r.length {
		return
	}
	at := r.byteOffset(index)
	_, size := utf8.DecodeRuneInString(r.text[at:])
	r.text = r.text[:at] + r.text[at+size:]
	r.length--
}

// Append concatenates other onto the end of the row.
func (r *Row) Append(other *Row) {
	if other == nil {
		return
	}
	r.text += other.text
	r.length += other.length
}

// Split truncates the row to its first index characters and returns the
// remainder as a new row.
func (r *Row) Split(index int) *Row {
	index = clamp(index, 0, r.length)
	at := r.byteOffset(index)

	tail := &Row{text: r.text[at:], length: r.length - index}
	r.text = r.text[:at]
	r.length = index
	return tail
}

// Find searches for query starting at character start.
// It returns the character index of the first match. Matching is
// case-sensitive. An empty query never matches.
func (r *Row) Find(query string, start int) (int, bool) {
	if query == "" || start < 0 || start > r.length {
		return 0, false
	}
	from := r.byteOffset(start)
	i := strings.Index(r.text[from:], query)
	if i < 0 {
		return 0, false
	}
	return start + utf8.RuneCountInString(r.text[from:from+i]), true
}

// byteOffset converts a character index into a byte offset into text.
// index must be in [0, length].
func (r *Row) byteOffset(index int) int {
	if index >= r.length {
		return len(r.text)
	}
	// ASCII fast path.
	if r.length == len(r.text) {
		return index
	}
	n := 0
	for i := range r.text {
		if n == index {
			return i
		}
		n++
	}
	return len(r.text)
}
