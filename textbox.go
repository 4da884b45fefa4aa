package thicket

import (
	"log/slog"
	"unicode"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Label is the UserData of the display-only child controls a TextBox creates.
// Renderers draw Text with Font inside the control's area.
type Label struct {
	Text string
	Font Font
}

// TextBoxOptions configures NewTextBox.
type TextBoxOptions struct {
	Name        string
	Area        Rect
	MaxChars    int // zero for no limit
	Multiline   bool
	Password    bool
	Placeholder string
	TabOrder    int
	ZOrder      int
	Font        Font // nil selects DefaultFont
	Padding     float64
}

// TextBox is a focusable single- or multi-line text field built from three
// controls: the box itself, which receives input, and two non-interactive
// child labels holding the text and the placeholder. Exactly one label is
// visible at a time, depending on whether the text is empty.
//
// A click focuses the box and places the caret. Typed characters are inserted
// at the caret; Backspace, Delete, the arrow keys, Home and End edit and move
// it. Enter inserts a line break in a multi-line box and calls OnSubmit in a
// single-line one. While focused the caret alpha fades in and out.
type TextBox struct {
	stage *Stage

	id          ControlID
	textID      ControlID
	hintID      ControlID
	textLabel   *Label
	hintLabel   *Label
	editor      *TextEditor
	font        Font
	multiline   bool
	padding     float64
	blinkPeriod float32

	focused    bool
	caretAlpha float64
	caretTween *gween.Tween

	rows      []string
	rowsWidth float64
	rowsValid bool

	// OnChange is called with the new text after every edit.
	OnChange func(text string)
	// OnSubmit is called when Enter is pressed in a single-line box.
	OnSubmit func(text string)
}

// NewTextBox adds a text box under parent (NoControl for a root) and returns
// it. The mask rune and caret blink period come from the stage config.
func NewTextBox(s *Stage, parent ControlID, opts TextBoxOptions) *TextBox {
	font := opts.Font
	if font == nil {
		font = DefaultFont()
	}
	tb := &TextBox{
		stage:       s,
		editor:      NewTextEditor(opts.MaxChars),
		font:        font,
		multiline:   opts.Multiline,
		padding:     opts.Padding,
		blinkPeriod: float32(s.cfg.CaretBlinkSeconds),
		textLabel:   &Label{Font: font},
		hintLabel:   &Label{Text: opts.Placeholder, Font: font},
	}
	tb.editor.Password = opts.Password
	tb.editor.Mask = s.cfg.maskRune()
	tb.editor.OnChange = tb.changed

	box := NewControl(opts.Name, opts.Area)
	box.ZOrder = opts.ZOrder
	box.Focusable = true
	box.TabOrder = opts.TabOrder
	box.Updatable = true
	box.OnUpdate = tb.update
	box.Handler = tb
	box.UserData = tb
	tb.id = s.Add(parent, box)

	tb.textID = s.Add(tb.id, tb.newLabel(opts.Name+".text", opts.Area, tb.textLabel))
	tb.hintID = s.Add(tb.id, tb.newLabel(opts.Name+".placeholder", opts.Area, tb.hintLabel))
	tb.syncLabels()
	return tb
}

func (tb *TextBox) newLabel(name string, area Rect, l *Label) *Control {
	c := NewControl(name, area)
	c.Interactive = false
	c.UserData = l
	return c
}

// ID returns the box control's ID.
func (tb *TextBox) ID() ControlID { return tb.id }

// TextLabel returns the ID of the child control that shows the text.
func (tb *TextBox) TextLabel() ControlID { return tb.textID }

// PlaceholderLabel returns the ID of the child control that shows the
// placeholder.
func (tb *TextBox) PlaceholderLabel() ControlID { return tb.hintID }

// Editor returns the underlying text editor.
func (tb *TextBox) Editor() *TextEditor { return tb.editor }

// Text returns the current text.
func (tb *TextBox) Text() string { return tb.editor.Text() }

// SetText replaces the text and moves the caret to its end. Returns false if
// the text is longer than the box allows.
func (tb *TextBox) SetText(s string) bool { return tb.editor.SetText(s) }

// Focused reports whether the box holds keyboard focus.
func (tb *TextBox) Focused() bool { return tb.focused }

// CaretAlpha returns the current caret opacity in [0, 1]; zero when the box
// is not focused.
func (tb *TextBox) CaretAlpha() float64 {
	if !tb.focused {
		return 0
	}
	return tb.caretAlpha
}

// SetArea moves the box and its labels.
func (tb *TextBox) SetArea(area Rect) {
	t := tb.stage.tree
	t.SetArea(tb.id, area)
	t.SetArea(tb.textID, area)
	t.SetArea(tb.hintID, area)
	tb.rowsValid = false
}

// Remove removes the box and its labels from the stage.
func (tb *TextBox) Remove() {
	tb.stage.Remove(tb.id)
}

// Rows returns the display rows of the current text, wrapped to the inner
// width for a multi-line box. The slice is cached until the next edit.
func (tb *TextBox) Rows() []string {
	width := 0.0
	if tb.multiline {
		if c := tb.stage.tree.Get(tb.id); c != nil {
			width = c.Area.Width - 2*tb.padding
		}
	}
	if !tb.rowsValid || width != tb.rowsWidth {
		tb.rows = WrapRows(tb.font, tb.editor.Display(), width)
		tb.rowsWidth = width
		tb.rowsValid = true
	}
	return tb.rows
}

// CaretPosition returns the top-left of the caret in logical coordinates.
// The caret is one line height tall.
func (tb *TextBox) CaretPosition() (x, y float64) {
	c := tb.stage.tree.Get(tb.id)
	if c == nil {
		return 0, 0
	}
	rows := tb.Rows()
	row, col := tb.editor.RowCol(rows)
	var w float64
	if row < len(rows) {
		w, _ = tb.font.MeasureString(string([]rune(rows[row])[:col]))
	}
	return c.Area.X + tb.padding + w, c.Area.Y + tb.padding + float64(row)*tb.font.LineHeight()
}

// offsetAt maps a logical point to the nearest caret offset.
func (tb *TextBox) offsetAt(x, y float64) int {
	c := tb.stage.tree.Get(tb.id)
	rows := tb.Rows()
	row := 0
	if lh := tb.font.LineHeight(); lh > 0 {
		row = int((y - c.Area.Y - tb.padding) / lh)
	}
	row = clampInt(row, 0, len(rows)-1)
	col := tb.columnAt(rows[row], x-c.Area.X-tb.padding)
	return tb.editor.OffsetAt(rows, row, col)
}

// columnAt returns the caret column in row closest to the horizontal
// distance x from the row start.
func (tb *TextBox) columnAt(row string, x float64) int {
	rs := []rune(row)
	prev := 0.0
	for i := range rs {
		w, _ := tb.font.MeasureString(string(rs[:i+1]))
		if x < (prev+w)/2 {
			return i
		}
		prev = w
	}
	return len(rs)
}

// --- Handler ---

// Handles reports the event kinds a text box responds to.
func (tb *TextBox) Handles(kind EventKind) bool {
	switch kind {
	case EventClick, EventKeyTyped, EventKeyPressed, EventGotFocus, EventLostFocus:
		return true
	}
	return false
}

// Handle applies one routed event.
func (tb *TextBox) Handle(ev Event) {
	switch ev.Kind {
	case EventClick:
		p, _ := ev.Pointer()
		tb.stage.focus.Focus(tb.id)
		tb.editor.SetCursor(tb.offsetAt(p.X, p.Y))
		tb.restartBlink()
	case EventKeyTyped:
		k, _ := ev.Key()
		if unicode.IsControl(k.Rune) {
			return
		}
		tb.insert(string(k.Rune))
		tb.restartBlink()
	case EventKeyPressed:
		k, _ := ev.Key()
		tb.keyPressed(k.Key)
	case EventGotFocus:
		tb.focused = true
		tb.restartBlink()
	case EventLostFocus:
		tb.focused = false
		tb.caretTween = nil
	}
}

func (tb *TextBox) keyPressed(key ebiten.Key) {
	e := tb.editor
	switch key {
	case ebiten.KeyBackspace:
		e.Backspace()
	case ebiten.KeyDelete:
		e.Delete()
	case ebiten.KeyArrowLeft:
		e.Left()
	case ebiten.KeyArrowRight:
		e.Right()
	case ebiten.KeyArrowUp:
		if tb.multiline {
			e.Up(tb.Rows())
		}
	case ebiten.KeyArrowDown:
		if tb.multiline {
			e.Down(tb.Rows())
		}
	case ebiten.KeyHome:
		e.Home()
	case ebiten.KeyEnd:
		e.End()
	case ebiten.KeyEnter, ebiten.KeyNumpadEnter:
		if tb.multiline {
			tb.insert("\n")
		} else if tb.OnSubmit != nil {
			tb.OnSubmit(e.Text())
		}
	default:
		return
	}
	tb.restartBlink()
}

// insert inserts s at the caret, logging when the length limit rejects it.
func (tb *TextBox) insert(s string) {
	if !tb.editor.Insert(s) {
		tb.stage.logger.Debug("insert rejected",
			slog.String("control", tb.stage.tree.Get(tb.id).Name),
			slog.Int("len", tb.editor.Len()), slog.Int("max", tb.editor.MaxChars))
	}
}

// changed runs after every accepted edit.
func (tb *TextBox) changed(text string) {
	tb.rowsValid = false
	tb.syncLabels()
	if tb.OnChange != nil {
		tb.OnChange(text)
	}
}

func (tb *TextBox) syncLabels() {
	empty := tb.editor.Len() == 0
	tb.textLabel.Text = tb.editor.Display()
	tb.stage.tree.SetVisible(tb.textID, !empty)
	tb.stage.tree.SetVisible(tb.hintID, empty)
}

// --- Caret blink ---

func (tb *TextBox) restartBlink() {
	tb.caretAlpha = 1
	tb.caretTween = gween.New(1, 0, tb.blinkPeriod, ease.InOutQuad)
}

func (tb *TextBox) update(dt float64) {
	if !tb.focused || tb.caretTween == nil {
		return
	}
	val, done := tb.caretTween.Update(float32(dt))
	tb.caretAlpha = float64(val)
	if done {
		// Fade back the other way.
		to := float32(1)
		if val > 0.5 {
			to = 0
		}
		tb.caretTween = gween.New(val, to, tb.blinkPeriod, ease.InOutQuad)
	}
}
