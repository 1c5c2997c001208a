// Package sameanimal adapts the tile-matching session to the platform's
// fixed-tick game interface: it owns the virtual clock, loads the sprite
// sheet, maps input to clicks and draws frames onto the screen buffer.
package sameanimal

import (
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/same-animal/internal/assets"
	"github.com/vovakirdan/same-animal/internal/config"
	"github.com/vovakirdan/same-animal/internal/core"
	sacore "github.com/vovakirdan/same-animal/internal/games/sameanimal/core"
	"github.com/vovakirdan/same-animal/internal/registry"
)

// Game IDs of the two variants.
const (
	IDTimed   = "sameanimal"
	IDRelaxed = "sameanimal_relaxed"
)

// hudHeight is the number of screen rows above the play surface.
const hudHeight = 2

// Game implements registry.Game for Same Animal.
type Game struct {
	id    string
	timed bool
	opts  registry.Options
	cfg   config.SameAnimalConfig
	log   *log.Logger

	clock   *core.Clock
	session *sacore.Session
	sheet   *assets.Sheet
	frame   sacore.Frame // Last frame delivered by the session

	tick     uint64
	tickRate int
	screenW  int
	screenH  int
	paused   bool
	tooSmall bool
	cursor   int // Slot under the keyboard cursor
}

// New creates the timed variant.
func New(opts registry.Options) *Game {
	return newGame(IDTimed, true, opts)
}

// NewRelaxed creates the untimed variant.
func NewRelaxed(opts registry.Options) *Game {
	return newGame(IDRelaxed, false, opts)
}

func newGame(id string, timed bool, opts registry.Options) *Game {
	cfg := config.DefaultSameAnimalConfig()
	if opts.Config != nil {
		cfg = *opts.Config
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Game{
		id:    id,
		timed: timed,
		opts:  opts,
		cfg:   cfg,
		log:   logger.WithPrefix(id),
	}
}

func init() {
	registry.Register(IDTimed, func(opts registry.Options) registry.Game {
		return New(opts)
	})
	registry.Register(IDRelaxed, func(opts registry.Options) registry.Game {
		return NewRelaxed(opts)
	})
}

// ID returns the variant identifier.
func (g *Game) ID() string {
	return g.id
}

// Title returns the display name.
func (g *Game) Title() string {
	if g.timed {
		return "Same Animal"
	}
	return "Same Animal (Relaxed)"
}

// Reset discards any run in progress and waits for assets again.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	g.tickRate = cfg.TickRate
	if g.tickRate <= 0 {
		g.tickRate = core.DefaultConfig().TickRate
	}
	g.screenW = cfg.ScreenW
	g.screenH = cfg.ScreenH
	g.tick = 0
	g.paused = false
	g.cursor = 0
	g.sheet = nil
	g.clock = core.NewClock()

	kinds := make([]sacore.Kind, len(g.cfg.Kinds))
	for i, k := range g.cfg.Kinds {
		kinds[i] = sacore.Kind(k)
	}

	g.session = sacore.NewSession(sacore.Config{
		GameID:        g.id,
		Kinds:         kinds,
		Stages:        sacore.StageTable(g.cfg.Stages),
		Timed:         g.timed,
		RoundSeconds:  g.cfg.Timing.RoundSeconds,
		Preview:       g.cfg.Timing.Preview(),
		MismatchDelay: g.cfg.Timing.Mismatch(),
		TileSize:      core.Size{W: g.cfg.Layout.TileWidth, H: g.cfg.Layout.TileHeight},
		Spacing:       g.cfg.Layout.Spacing,
		AllowDeselect: g.cfg.Rules.AllowDeselect,
		PairPoints:    g.cfg.Scoring.PairPoints,
		TimeBonus:     g.cfg.Scoring.TimeBonus,
		Surface:       g.surface(),
	}, sacore.Deps{
		Scheduler: g.clock,
		Rand:      rand.New(rand.NewSource(seed)),
		Renderer:  g,
		Audio:     g.opts.Audio,
		Recorder:  g.opts.Recorder,
		Logger:    g.log,
	})
	g.frame = g.session.Frame()
	g.tooSmall = !g.fits()
}

// Resize follows a terminal resize without ending the run.
func (g *Game) Resize(w, h int) {
	g.screenW = w
	g.screenH = h
	g.tooSmall = !g.fits()
	if g.session != nil {
		s := g.surface()
		g.session.Resize(s.W, s.H)
	}
}

// surface is the play area below the HUD.
func (g *Game) surface() core.Size {
	return core.Size{W: g.screenW, H: max(g.screenH-hudHeight, 0)}
}

// fits reports whether the largest stage of the run fits on screen.
func (g *Game) fits() bool {
	largest := 0
	for _, n := range g.cfg.Stages {
		largest = max(largest, min(n, 2*len(g.cfg.Kinds)))
	}
	rows, cols := sacore.GridFor(largest)
	l := g.cfg.Layout
	w := cols*l.TileWidth + (cols-1)*l.Spacing
	h := rows*l.TileHeight + (rows-1)*l.Spacing
	// One spare row at the bottom for the mute button.
	return w <= g.screenW && h+1 <= g.screenH-hudHeight
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.tick++

	if g.sheet == nil {
		g.loadAssets()
	}

	if in.Has(core.ActionPause) {
		g.paused = !g.paused
	}
	if g.paused || g.tooSmall {
		return core.StepResult{State: g.State()}
	}

	g.processInput(in)
	g.clock.Advance(time.Second / time.Duration(g.tickRate))
	g.session.Tick()

	return core.StepResult{State: g.State()}
}

// loadAssets loads the sprite sheet, falling back to the embedded one
// when a custom sheet cannot be used.
func (g *Game) loadAssets() {
	sheet, err := assets.Load(g.opts.SpritesPath)
	if err != nil {
		g.log.Warn("cannot load sprites, using defaults", "path", g.opts.SpritesPath, "err", err)
		sheet, err = assets.Load("")
		if err != nil {
			g.log.Error("cannot load default sprites", "err", err)
			return
		}
	}
	if missing := sheet.Missing(g.cfg.Kinds); len(missing) > 0 {
		g.log.Warn("kinds without sprites", "kinds", missing)
	}
	g.sheet = sheet
	g.session.HandleAssetsReady()
}

func (g *Game) processInput(in core.InputFrame) {
	if in.Has(core.ActionMute) {
		g.session.ToggleMute()
	}

	running := g.session.State().Running
	if !running {
		if in.Has(core.ActionConfirm) || in.Has(core.ActionSelect) || in.Has(core.ActionRestart) {
			//nolint:errcheck // refused only before assets load; logged by the session
			g.session.Start()
		}
	}

	for _, p := range in.Clicks {
		g.session.HandleClick(p.X, p.Y-hudHeight)
	}

	if running {
		g.moveCursor(in)
		if in.Has(core.ActionSelect) || in.Has(core.ActionConfirm) {
			g.selectAtCursor()
		}
	}

	if !g.session.State().Running {
		g.cursor = 0
	}
}

func (g *Game) moveCursor(in core.InputFrame) {
	grid := g.session.Grid()
	n := g.session.Slots()
	if n == 0 || grid.Cols == 0 {
		return
	}

	switch {
	case in.Has(core.ActionLeft):
		g.cursor--
	case in.Has(core.ActionRight):
		g.cursor++
	case in.Has(core.ActionUp):
		g.cursor -= grid.Cols
	case in.Has(core.ActionDown):
		g.cursor += grid.Cols
	}
	g.cursor = core.Clamp(g.cursor, 0, n-1)
}

func (g *Game) selectAtCursor() {
	for _, t := range g.session.Tiles() {
		if t.Slot == g.cursor {
			c := t.Bounds.Center()
			g.session.HandleClick(c.X, c.Y)
			return
		}
	}
}

// RenderFrame implements sacore.Renderer.
func (g *Game) RenderFrame(f sacore.Frame) {
	g.frame = f
}

// State returns the platform-level state. GameOver is set once a run has
// ended, until the next run starts.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.session.Score(),
		GameOver: g.session.GameOver(),
		Paused:   g.paused,
	}
}

// Session exposes the underlying session.
func (g *Game) Session() *sacore.Session {
	return g.session
}
