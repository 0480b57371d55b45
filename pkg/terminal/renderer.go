// Package terminal draws the flock on a character grid with tcell.
package terminal

import (
	"context"
	"fmt"

	"github.com/SeanRemedios/Boid-System/pkg/geometry"
	"github.com/SeanRemedios/Boid-System/pkg/simulation"
	"github.com/gdamore/tcell/v2"
)

const boidRune = '●'

var (
	styleDefault = tcell.StyleDefault.Background(tcell.ColorWhite).Foreground(tcell.ColorBlack)
	styleBoid    = styleDefault.Foreground(tcell.ColorRed)
	styleStatus  = tcell.StyleDefault.Background(tcell.ColorDarkSlateGray).Foreground(tcell.ColorWhite)
)

// Source delivers snapshots to draw.
type Source interface {
	Snapshots() <-chan *simulation.Snapshot
}

// Renderer scales world coordinates onto the screen. The bottom row is kept
// for a status line.
type Renderer struct {
	screen      tcell.Screen
	worldWidth  float64
	worldHeight float64
	last        *simulation.Snapshot
}

// NewRenderer draws a worldWidth x worldHeight world on an initialised screen.
func NewRenderer(screen tcell.Screen, worldWidth, worldHeight float64) *Renderer {
	screen.SetStyle(styleDefault)
	return &Renderer{
		screen:      screen,
		worldWidth:  worldWidth,
		worldHeight: worldHeight,
	}
}

// Cell maps a world position to a screen cell. ok is false for positions outside
// the world, which boids briefly reach before the walls push them back.
func (r *Renderer) Cell(p geometry.Vector2D) (x, y int, ok bool) {
	cols, rows := r.screen.Size()
	rows-- // status line
	if cols <= 0 || rows <= 0 || p.X < 0 || p.Y < 0 {
		return 0, 0, false
	}
	x = int(p.X / r.worldWidth * float64(cols))
	y = int(p.Y / r.worldHeight * float64(rows))
	if x >= cols || y >= rows {
		return 0, 0, false
	}
	return x, y, true
}

// Draw replaces the screen content with snap.
func (r *Renderer) Draw(snap *simulation.Snapshot) {
	r.last = snap
	r.screen.Clear()

	for _, p := range snap.Positions {
		if x, y, ok := r.Cell(p); ok {
			r.screen.SetContent(x, y, boidRune, nil, styleBoid)
		}
	}
	r.drawStatus(snap)
	r.screen.Show()
}

func (r *Renderer) drawStatus(snap *simulation.Snapshot) {
	cols, rows := r.screen.Size()
	wind := "calm"
	if snap.WindActive {
		wind = "blowing"
	}
	status := fmt.Sprintf(" tick %d  boids %d  perching %d  wind %s  (esc/q quits)",
		snap.Tick, len(snap.Positions), snap.Perching, wind)

	y := rows - 1
	x := 0
	for _, ch := range status {
		if x >= cols {
			break
		}
		r.screen.SetContent(x, y, ch, nil, styleStatus)
		x++
	}
	for ; x < cols; x++ {
		r.screen.SetContent(x, y, ' ', nil, styleStatus)
	}
}

// Run draws every snapshot from src until ctx is cancelled or the user quits
// with Escape, q or Ctrl-C. The caller owns the screen and must Fini it.
func (r *Renderer) Run(ctx context.Context, src Source) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	resized := make(chan struct{}, 1)
	go r.handleInput(cancel, resized)

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-resized:
			r.screen.Sync()
			if r.last != nil {
				r.Draw(r.last)
			}
		case snap := <-src.Snapshots():
			r.Draw(snap)
		}
	}
}

// handleInput polls tcell until the screen is finalised.
func (r *Renderer) handleInput(quit context.CancelFunc, resized chan<- struct{}) {
	for {
		ev := r.screen.PollEvent()
		switch ev := ev.(type) {
		case nil:
			return
		case *tcell.EventResize:
			select {
			case resized <- struct{}{}:
			default:
			}
		case *tcell.EventKey:
			if isQuit(ev) {
				quit()
				return
			}
		}
	}
}

func isQuit(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyRune:
		return ev.Rune() == 'q' || ev.Rune() == 'Q'
	}
	return false
}
