package thicket

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"
)

// discardLogger is used whenever debug mode is off.
var discardLogger = slog.New(slog.DiscardHandler)

// newDebugLogger writes text-formatted records at debug level to w.
func newDebugLogger(w io.Writer) *slog.Logger {
	h := slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug})
	return slog.New(h).With(slog.String("component", "thicket"))
}

// tickStats holds per-tick timing and routing metrics.
// Only populated when the Stage is in debug mode.
type tickStats struct {
	dispatchTime time.Duration
	updateTime   time.Duration
	transitions  int
	events       int
}

// debugLogTick logs timing and routing stats for one tick.
func (s *Stage) debugLogTick(stats tickStats) {
	if !s.debug {
		return
	}
	s.logger.Debug("tick",
		slog.Duration("dispatch", stats.dispatchTime),
		slog.Duration("update", stats.updateTime),
		slog.Int("transitions", stats.transitions),
		slog.Int("events", stats.events),
	)
}

// debugCheckDisposed panics when an event is posted to a control that is no
// longer in the tree. Only called in debug mode; in release mode the post is
// dropped.
func debugCheckDisposed(t *Tree, ev Event) {
	if ev.Target == NoControl {
		return
	}
	if int(ev.Target) <= len(t.controls) {
		panic(fmt.Sprintf("thicket debug: %s posted to removed control %d", ev.Kind, ev.Target))
	}
	panic(fmt.Sprintf("thicket debug: %s posted to unknown control %d", ev.Kind, ev.Target))
}

// debugCheckTreeDepth warns if tree depth exceeds the threshold.
const debugMaxTreeDepth = 32

func debugCheckTreeDepth(t *Tree, id ControlID) {
	depth := 0
	for p := id; p != NoControl; p = t.Parent(p) {
		depth++
	}
	if depth > debugMaxTreeDepth {
		t.logger.Warn("tree depth exceeds threshold",
			slog.Int("depth", depth), slog.Int("threshold", debugMaxTreeDepth),
			slog.String("control", t.Get(id).Name))
	}
}

// debugCheckChildCount warns if a control has more than 1000 children.
const debugMaxChildCount = 1000

func debugCheckChildCount(t *Tree, c *Control) {
	if len(c.children) > debugMaxChildCount {
		t.logger.Warn("child count exceeds threshold",
			slog.String("control", c.Name), slog.Int("children", len(c.children)),
			slog.Int("threshold", debugMaxChildCount))
	}
}

// debugWriter is where SetDebugMode sends records. Tests replace it.
var debugWriter io.Writer = os.Stderr
