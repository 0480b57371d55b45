package simulation

import (
	"context"
	"fmt"
	"image/color"
	"time"

	"github.com/SeanRemedios/Boid-System/pkg/ui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

var (
	backgroundColor = color.White
	boidColor       = color.RGBA{R: 255, A: 255}
	wallColor       = color.RGBA{R: 120, G: 120, B: 200, A: 255}
	statusColor     = color.RGBA{R: 40, G: 40, B: 45, A: 200}
)

// Game renders the flock in an ebiten window. Each Update sends one tick, so
// ebiten's TPS is the simulation tick rate.
type Game struct {
	ctx       context.Context
	engine    *Engine
	cfg       *Config
	lastState *Snapshot

	// UI Controls
	panel         *ui.UIPanel
	widgetPause   *ui.Checkbox
	widgetWalls   *ui.Checkbox
	widgetStep    *ui.Button
	stepRequested bool

	// Timing instrumentation
	lastUpdateDuration time.Duration
	lastDrawDuration   time.Duration
	updateAvg          float64 // Rolling average in ms
	drawAvg            float64 // Rolling average in ms
}

// NewGame builds the window state for a running engine.
func NewGame(ctx context.Context, engine *Engine, cfg *Config) *Game {
	g := &Game{
		ctx:       ctx,
		engine:    engine,
		cfg:       cfg,
		lastState: &Snapshot{Radius: cfg.BoidRadius}, // Avoid nil pointer
	}

	g.panel = ui.NewUIPanel(10, 10, 170, "Boids")
	g.panel.AddSection("Simulation")
	g.widgetPause = g.panel.AddCheckbox("Pause", false)
	g.widgetStep = g.panel.AddButton("Step", func() { g.stepRequested = true })
	g.panel.EndSection()
	g.panel.AddSection("Visualization")
	g.widgetWalls = g.panel.AddCheckbox("Show walls", false)
	g.panel.EndSection()

	g.widgetStep.Disabled = true
	g.widgetPause.OnChange = func(paused bool) { g.widgetStep.Disabled = !paused }

	return g
}

func (g *Game) Update() error {
	start := time.Now()
	defer func() {
		g.lastUpdateDuration = time.Since(start)
		g.updateAvg = g.updateAvg*0.95 + float64(g.lastUpdateDuration.Microseconds())/1000.0*0.05
	}()

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.widgetPause.Value = !g.widgetPause.Value
		g.widgetPause.OnChange(g.widgetPause.Value)
	}

	g.panel.Update()
	g.drainSnapshots()

	if g.widgetPause.Value && !g.stepRequested {
		return nil
	}
	g.stepRequested = false
	return g.engine.Tick(g.ctx, time.Now())
}

// drainSnapshots keeps only the newest snapshot waiting on the channel.
func (g *Game) drainSnapshots() {
	for {
		select {
		case snap := <-g.engine.Snapshots():
			g.lastState = snap
		default:
			return
		}
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	start := time.Now()
	defer func() {
		g.lastDrawDuration = time.Since(start)
		g.drawAvg = g.drawAvg*0.95 + float64(g.lastDrawDuration.Microseconds())/1000.0*0.05
	}()

	screen.Fill(backgroundColor)

	if g.widgetWalls.Value {
		m := g.cfg.WallMargin
		vector.StrokeRect(screen,
			float32(m), float32(m),
			float32(g.cfg.ScreenWidth-2*m), float32(g.cfg.ScreenHeight-2*m),
			1, wallColor, true)
	}

	radius := float32(g.lastState.Radius)
	for _, p := range g.lastState.Positions {
		vector.FillCircle(screen, float32(p.X), float32(p.Y), radius, boidColor, true)
	}

	g.panel.Draw(screen)
	g.drawStatus(screen)
}

func (g *Game) drawStatus(screen *ebiten.Image) {
	wind := "calm"
	if g.lastState.WindActive {
		wind = "blowing"
	}
	msg := fmt.Sprintf("Tick: %d\nPerching: %d/%d\nWind: %s\n\nTPS: %.1f\nUpdate: %.2fms\nDraw:   %.2fms",
		g.lastState.Tick,
		g.lastState.Perching, len(g.lastState.Positions),
		wind,
		ebiten.ActualTPS(),
		g.updateAvg,
		g.drawAvg)

	x := float32(g.cfg.ScreenWidth) - 150
	vector.FillRect(screen, x-5, 5, 145, 110, statusColor, true)
	ebitenutil.DebugPrintAt(screen, msg, int(x), 10)
}

func (g *Game) Layout(w, h int) (int, int) {
	return int(g.cfg.ScreenWidth), int(g.cfg.ScreenHeight)
}
