package thicket

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// RunConfig configures Run.
type RunConfig struct {
	Title  string
	Width  int // window width; also the logical width
	Height int // window height; also the logical height
	// Resizable lets the user resize the window. Pointer input is mapped back
	// to the logical Width x Height through a letterboxing Viewport.
	Resizable bool
	// ShowFPS draws FPS and TPS in the top-left corner.
	ShowFPS bool
	// ShowBounds outlines every visible control; hovered ones are highlighted.
	ShowBounds bool
	// Update runs after the stage has routed the tick's input.
	Update func() error
	// Draw renders the application onto a logical-resolution image.
	Draw func(screen *ebiten.Image)
}

// Run opens a window and drives s from the ebiten game loop until the window
// closes or Update returns an error.
func Run(s *Stage, cfg RunConfig) error {
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return fmt.Errorf("thicket: run: window size must be positive, got %dx%d", cfg.Width, cfg.Height)
	}
	g := &gameShell{stage: s, cfg: cfg}
	if cfg.Resizable {
		g.viewport = NewViewport(float64(cfg.Width), float64(cfg.Height))
		s.SetTransform(g.viewport.Transform())
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	}
	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetTPS(s.cfg.TPS)
	return ebiten.RunGame(g)
}

// gameShell adapts a Stage to ebiten.Game.
type gameShell struct {
	stage    *Stage
	cfg      RunConfig
	viewport *Viewport
	canvas   *ebiten.Image // logical-resolution target when letterboxing
}

func (g *gameShell) Update() error {
	if err := g.stage.Update(); err != nil {
		return err
	}
	if g.cfg.Update != nil {
		return g.cfg.Update()
	}
	return nil
}

func (g *gameShell) Draw(screen *ebiten.Image) {
	target := screen
	if g.viewport != nil {
		if g.canvas == nil {
			g.canvas = ebiten.NewImage(g.cfg.Width, g.cfg.Height)
		}
		g.canvas.Clear()
		target = g.canvas
	}
	if g.cfg.Draw != nil {
		g.cfg.Draw(target)
	}
	if g.cfg.ShowBounds {
		drawBounds(target, g.stage)
	}
	if g.viewport != nil {
		op := &ebiten.DrawImageOptions{GeoM: g.viewport.GeoM()}
		screen.DrawImage(g.canvas, op)
	}
	if g.cfg.ShowFPS {
		ebitenutil.DebugPrint(screen, fmt.Sprintf("FPS: %.1f\nTPS: %.1f", ebiten.ActualFPS(), ebiten.ActualTPS()))
	}
}

func (g *gameShell) Layout(outsideWidth, outsideHeight int) (int, int) {
	if g.viewport == nil {
		return g.cfg.Width, g.cfg.Height
	}
	w, h := float64(outsideWidth), float64(outsideHeight)
	if w != g.viewport.WindowWidth || h != g.viewport.WindowHeight {
		g.viewport.Resize(w, h)
		g.stage.tree.MarkDirty()
	}
	return outsideWidth, outsideHeight
}

var (
	boundsColor = color.RGBA{R: 90, G: 90, B: 110, A: 255}
	hoverColor  = color.RGBA{R: 80, G: 180, B: 255, A: 255}
)

// drawBounds outlines the area of every effectively visible control.
func drawBounds(dst *ebiten.Image, s *Stage) {
	for _, id := range s.tree.Walk(nil) {
		if !s.tree.EffectivelyVisible(id) {
			continue
		}
		c := s.tree.Get(id)
		clr := boundsColor
		if s.over.IsOver(id) {
			clr = hoverColor
		}
		a := c.Area
		vector.StrokeRect(dst, float32(a.X), float32(a.Y), float32(a.Width), float32(a.Height), 1, clr, false)
	}
}
