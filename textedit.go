package thicket

import "strings"

// TextEditor holds the text and cursor of an editable field. The cursor is a
// rune offset in [0, Len()]; every operation keeps it in range.
//
// Vertical movement works on display rows supplied by the caller (see
// WrapRows). Rows are consecutive slices of the text: a row ending right
// before a '\n' is an explicit break and the '\n' belongs to neither row;
// any other row boundary is a soft wrap. A cursor sitting exactly at a soft
// wrap is shown at the start of the next row.
type TextEditor struct {
	text   []rune
	cursor int

	// MaxChars limits the length of the text in runes. Zero means unlimited.
	MaxChars int
	// Password masks the text returned by Display with Mask.
	Password bool
	Mask     rune
	// OnChange is called with the new text after every accepted change.
	OnChange func(text string)
}

// NewTextEditor creates an empty editor limited to maxChars runes
// (zero for no limit).
func NewTextEditor(maxChars int) *TextEditor {
	return &TextEditor{MaxChars: maxChars, Mask: defaultMaskRune}
}

// Text returns the current text.
func (e *TextEditor) Text() string {
	return string(e.text)
}

// Len returns the text length in runes.
func (e *TextEditor) Len() int {
	return len(e.text)
}

// Cursor returns the cursor offset.
func (e *TextEditor) Cursor() int {
	return e.cursor
}

// SetCursor moves the cursor to offset, clamped to [0, Len()].
func (e *TextEditor) SetCursor(offset int) {
	e.cursor = clampInt(offset, 0, len(e.text))
}

// Display returns the text as it should be drawn: the text itself, or one
// mask rune per character in password mode. Line breaks are not masked so
// rows still line up with the text.
func (e *TextEditor) Display() string {
	if !e.Password {
		return string(e.text)
	}
	mask := e.Mask
	if mask == 0 {
		mask = defaultMaskRune
	}
	var sb strings.Builder
	for _, r := range e.text {
		if r == '\n' {
			sb.WriteRune(r)
		} else {
			sb.WriteRune(mask)
		}
	}
	return sb.String()
}

func (e *TextEditor) fits(n int) bool {
	return e.MaxChars <= 0 || n <= e.MaxChars
}

func (e *TextEditor) changed() {
	if e.OnChange != nil {
		e.OnChange(string(e.text))
	}
}

// Insert inserts s at the cursor and moves the cursor past it. The insert is
// all or nothing: if the result would exceed MaxChars, nothing changes and
// Insert returns false.
func (e *TextEditor) Insert(s string) bool {
	rs := []rune(s)
	if len(rs) == 0 {
		return true
	}
	if !e.fits(len(e.text) + len(rs)) {
		return false
	}
	e.text = append(e.text[:e.cursor], append(rs, e.text[e.cursor:]...)...)
	e.cursor += len(rs)
	e.changed()
	return true
}

// Backspace deletes the character before the cursor. Returns false when the
// cursor is at the start.
func (e *TextEditor) Backspace() bool {
	if e.cursor == 0 {
		return false
	}
	e.text = append(e.text[:e.cursor-1], e.text[e.cursor:]...)
	e.cursor--
	e.changed()
	return true
}

// Delete deletes the character at the cursor. Returns false when the cursor
// is at the end.
func (e *TextEditor) Delete() bool {
	if e.cursor >= len(e.text) {
		return false
	}
	e.text = append(e.text[:e.cursor], e.text[e.cursor+1:]...)
	e.changed()
	return true
}

// Left moves the cursor back one character.
func (e *TextEditor) Left() {
	if e.cursor > 0 {
		e.cursor--
	}
}

// Right moves the cursor forward one character.
func (e *TextEditor) Right() {
	if e.cursor < len(e.text) {
		e.cursor++
	}
}

// Home moves the cursor to the start of the text.
func (e *TextEditor) Home() {
	e.cursor = 0
}

// End moves the cursor to the end of the text.
func (e *TextEditor) End() {
	e.cursor = len(e.text)
}

// SetText replaces the whole text and moves the cursor to its end. Text
// longer than MaxChars is rejected and SetText returns false.
func (e *TextEditor) SetText(s string) bool {
	rs := []rune(s)
	if !e.fits(len(rs)) {
		return false
	}
	e.text = rs
	e.cursor = len(rs)
	e.changed()
	return true
}

// Replace swaps the text in place, keeping the cursor where it was as far as
// the new text allows. Text longer than MaxChars is rejected.
func (e *TextEditor) Replace(s string) bool {
	rs := []rune(s)
	if !e.fits(len(rs)) {
		return false
	}
	e.text = rs
	e.cursor = clampInt(e.cursor, 0, len(rs))
	e.changed()
	return true
}

// rowEnd returns the offset just past a row starting at off, and whether the
// row ends at an explicit line break.
func (e *TextEditor) rowEnd(row string, off int) (end int, explicit bool) {
	end = off + len([]rune(row))
	return end, end < len(e.text) && e.text[end] == '\n'
}

// RowCol returns the display row and column of the cursor within rows.
func (e *TextEditor) RowCol(rows []string) (row, col int) {
	if len(rows) == 0 {
		return 0, e.cursor
	}
	off, start := 0, 0
	for i, r := range rows {
		start = off
		end, explicit := e.rowEnd(r, off)
		if e.cursor < end || (e.cursor == end && (explicit || i == len(rows)-1)) {
			return i, e.cursor - off
		}
		off = end
		if explicit {
			off++
		}
	}
	// Rows shorter than the text; pin to the end of the last row.
	last := len(rows) - 1
	return last, clampInt(e.cursor-start, 0, len([]rune(rows[last])))
}

// OffsetAt returns the text offset of (row, col), clamping the row to the
// rows given and the column to that row's length.
func (e *TextEditor) OffsetAt(rows []string, row, col int) int {
	if len(rows) == 0 {
		return clampInt(col, 0, len(e.text))
	}
	row = clampInt(row, 0, len(rows)-1)
	off := 0
	for i := 0; i < row; i++ {
		end, explicit := e.rowEnd(rows[i], off)
		off = end
		if explicit {
			off++
		}
	}
	col = clampInt(col, 0, len([]rune(rows[row])))
	return clampInt(off+col, 0, len(e.text))
}

// Up moves the cursor to the same column on the previous display row.
func (e *TextEditor) Up(rows []string) {
	row, col := e.RowCol(rows)
	e.cursor = e.OffsetAt(rows, row-1, col)
}

// Down moves the cursor to the same column on the next display row.
func (e *TextEditor) Down(rows []string) {
	row, col := e.RowCol(rows)
	e.cursor = e.OffsetAt(rows, row+1, col)
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
