package thicket

import "github.com/hajimehoshi/ebiten/v2"

// Transform maps a raw window pointer position to logical coordinates.
// A nil Transform means identity, and selects the legacy target resolution
// path (see Resolver.Target).
type Transform func(wx, wy float64) (lx, ly float64)

// identityTransform is the 2D identity affine matrix.
var identityTransform = [6]float64{1, 0, 0, 1, 0, 0}

// multiplyAffine multiplies two 2D affine matrices: result = p * c.
//
//	Matrix layout: [a, b, c, d, tx, ty]
//	| a  c  tx |
//	| b  d  ty |
//	| 0  0   1 |
func multiplyAffine(p, c [6]float64) [6]float64 {
	return [6]float64{
		p[0]*c[0] + p[2]*c[1],
		p[1]*c[0] + p[3]*c[1],
		p[0]*c[2] + p[2]*c[3],
		p[1]*c[2] + p[3]*c[3],
		p[0]*c[4] + p[2]*c[5] + p[4],
		p[1]*c[4] + p[3]*c[5] + p[5],
	}
}

// invertAffine computes the inverse of a 2D affine matrix.
// Returns the identity matrix if the matrix is singular (determinant ~ 0).
func invertAffine(m [6]float64) [6]float64 {
	det := m[0]*m[3] - m[2]*m[1]
	if det > -1e-12 && det < 1e-12 {
		return identityTransform
	}
	invDet := 1.0 / det
	a := m[3] * invDet
	b := -m[1] * invDet
	c := -m[2] * invDet
	d := m[0] * invDet
	return [6]float64{
		a, b, c, d,
		-(a*m[4] + c*m[5]),
		-(b*m[4] + d*m[5]),
	}
}

// transformPoint applies an affine matrix to a point.
func transformPoint(m [6]float64, x, y float64) (float64, float64) {
	return m[0]*x + m[2]*y + m[4], m[1]*x + m[3]*y + m[5]
}

// Viewport maps a window surface onto a fixed logical resolution. The logical
// area is scaled uniformly to fit the window and centered (letterboxed).
type Viewport struct {
	// LogicalWidth and LogicalHeight are the virtual resolution used for layout.
	LogicalWidth, LogicalHeight float64
	// WindowWidth and WindowHeight are the physical surface size.
	WindowWidth, WindowHeight float64

	matrix    [6]float64 // logical -> window
	invMatrix [6]float64 // window -> logical
	dirty     bool
}

// NewViewport creates a viewport for the given logical resolution. The window
// size starts equal to the logical size; call Resize when it changes.
func NewViewport(logicalW, logicalH float64) *Viewport {
	return &Viewport{
		LogicalWidth:  logicalW,
		LogicalHeight: logicalH,
		WindowWidth:   logicalW,
		WindowHeight:  logicalH,
		dirty:         true,
	}
}

// Resize updates the window size.
func (v *Viewport) Resize(windowW, windowH float64) {
	if v.WindowWidth == windowW && v.WindowHeight == windowH {
		return
	}
	v.WindowWidth = windowW
	v.WindowHeight = windowH
	v.dirty = true
}

// Scale returns the uniform logical-to-window scale factor.
func (v *Viewport) Scale() float64 {
	v.computeMatrix()
	return v.matrix[0]
}

// computeMatrix recomputes the cached matrices if dirty.
//
// matrix = Translate(offsetX, offsetY) * Scale(s)
func (v *Viewport) computeMatrix() {
	if !v.dirty {
		return
	}
	v.dirty = false
	if v.LogicalWidth <= 0 || v.LogicalHeight <= 0 {
		v.matrix = identityTransform
		v.invMatrix = identityTransform
		return
	}
	s := v.WindowWidth / v.LogicalWidth
	if sy := v.WindowHeight / v.LogicalHeight; sy < s {
		s = sy
	}
	ox := (v.WindowWidth - v.LogicalWidth*s) / 2
	oy := (v.WindowHeight - v.LogicalHeight*s) / 2
	scale := [6]float64{s, 0, 0, s, 0, 0}
	translate := [6]float64{1, 0, 0, 1, ox, oy}
	v.matrix = multiplyAffine(translate, scale)
	v.invMatrix = invertAffine(v.matrix)
}

// LogicalToWindow converts logical coordinates to window coordinates.
func (v *Viewport) LogicalToWindow(lx, ly float64) (wx, wy float64) {
	v.computeMatrix()
	return transformPoint(v.matrix, lx, ly)
}

// WindowToLogical converts window coordinates to logical coordinates.
func (v *Viewport) WindowToLogical(wx, wy float64) (lx, ly float64) {
	v.computeMatrix()
	return transformPoint(v.invMatrix, wx, wy)
}

// Transform returns WindowToLogical as a Transform.
func (v *Viewport) Transform() Transform {
	return v.WindowToLogical
}

// GeoM returns the logical-to-window matrix for drawing a logical-resolution
// offscreen image onto the window.
func (v *Viewport) GeoM() ebiten.GeoM {
	v.computeMatrix()
	var g ebiten.GeoM
	g.SetElement(0, 0, v.matrix[0])
	g.SetElement(1, 0, v.matrix[1])
	g.SetElement(0, 1, v.matrix[2])
	g.SetElement(1, 1, v.matrix[3])
	g.SetElement(0, 2, v.matrix[4])
	g.SetElement(1, 2, v.matrix[5])
	return g
}
