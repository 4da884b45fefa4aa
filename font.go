package thicket

import (
	"bytes"
	"fmt"
	"strings"
	"sync"

	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/rivo/uniseg"
	"golang.org/x/image/font/basicfont"
)

// Font is the interface for text measurement. Text boxes use it to place the
// caret and to map click positions back to character offsets.
type Font interface {
	// MeasureString returns the width and height of s. Multi-line strings
	// report the widest line and the total height.
	MeasureString(s string) (width, height float64)
	// LineHeight returns the vertical distance between baselines.
	LineHeight() float64
}

// --- FaceFont ---

// FaceFont measures text with an Ebitengine text/v2 face.
type FaceFont struct {
	face text.Face
	lh   float64 // cached line height
}

// NewFaceFont wraps face. The line height comes from the face metrics.
func NewFaceFont(face text.Face) *FaceFont {
	m := face.Metrics()
	return &FaceFont{face: face, lh: m.HAscent + m.HDescent + m.HLineGap}
}

// LoadTTFFont loads a TrueType font from raw TTF/OTF data at the given size.
func LoadTTFFont(ttfData []byte, size float64) (*FaceFont, error) {
	source, err := text.NewGoTextFaceSource(bytes.NewReader(ttfData))
	if err != nil {
		return nil, fmt.Errorf("thicket: parse TTF data: %w", err)
	}
	return NewFaceFont(&text.GoTextFace{Source: source, Size: size}), nil
}

var (
	defaultFontOnce sync.Once
	defaultFont     *FaceFont
)

// DefaultFont returns a shared 7x13 bitmap font. It needs no font data and
// no graphics context, so it also works in tests.
func DefaultFont() *FaceFont {
	defaultFontOnce.Do(func() {
		defaultFont = NewFaceFont(text.NewGoXFace(basicfont.Face7x13))
	})
	return defaultFont
}

// MeasureString returns the width and height of the rendered text.
func (f *FaceFont) MeasureString(s string) (width, height float64) {
	return text.Measure(s, f.face, f.lh)
}

// LineHeight returns the vertical distance between baselines.
func (f *FaceFont) LineHeight() float64 {
	return f.lh
}

// Face returns the underlying face for direct text/v2 rendering.
func (f *FaceFont) Face() text.Face {
	return f.face
}

// --- MonoFont ---

// MonoFont measures text on a fixed cell grid. East Asian wide characters and
// emoji take two cells; combining marks take none.
type MonoFont struct {
	CellWidth  float64
	CellHeight float64
}

// MeasureString returns the width and height of s in cells scaled to pixels.
func (f MonoFont) MeasureString(s string) (width, height float64) {
	lines := strings.Split(s, "\n")
	var cols int
	for _, line := range lines {
		if w := uniseg.StringWidth(line); w > cols {
			cols = w
		}
	}
	return float64(cols) * f.CellWidth, float64(len(lines)) * f.CellHeight
}

// LineHeight returns the cell height.
func (f MonoFont) LineHeight() float64 {
	return f.CellHeight
}

// --- Wrapping ---

// WrapRows splits s into display rows no wider than width as measured by f.
// Rows break at '\n' (which is dropped) and, within a paragraph, after the
// last space that fits; a word longer than the row is broken mid-word.
// Spaces at a soft break stay at the end of the row they follow, so the
// concatenation of a paragraph's rows is the paragraph itself. A width of
// zero or less disables soft wrapping.
func WrapRows(f Font, s string, width float64) []string {
	var rows []string
	for _, para := range strings.Split(s, "\n") {
		rows = wrapParagraph(f, para, width, rows)
	}
	return rows
}

func wrapParagraph(f Font, para string, width float64, rows []string) []string {
	if width <= 0 || para == "" {
		return append(rows, para)
	}
	rs := []rune(para)
	start := 0
	for start < len(rs) {
		end := start
		lastBreak := -1
		for end < len(rs) {
			if w, _ := f.MeasureString(string(rs[start : end+1])); w > width && end > start {
				break
			}
			if rs[end] == ' ' {
				lastBreak = end + 1
			}
			end++
		}
		switch {
		case end == len(rs):
		case rs[end] == ' ':
			// Spaces hang past the edge instead of starting the next row.
			for end < len(rs) && rs[end] == ' ' {
				end++
			}
		case lastBreak > start:
			end = lastBreak
		}
		rows = append(rows, string(rs[start:end]))
		start = end
	}
	return rows
}
