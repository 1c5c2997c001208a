package core

import (
	"fmt"
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	platformcore "github.com/vovakirdan/same-animal/internal/core"
)

// Config holds the rules and geometry of a session.
type Config struct {
	GameID        string
	Kinds         []Kind
	Stages        StageTable
	Timed         bool
	RoundSeconds  int
	Preview       time.Duration // All tiles shown face up before the countdown
	MismatchDelay time.Duration // How long a mismatched pair stays face up
	TileSize      platformcore.Size
	Spacing       int
	AllowDeselect bool
	PairPoints    int // Per match, multiplied by the stage index
	TimeBonus     int // Per remaining second when a stage is cleared
	Surface       platformcore.Size
}

// Deps are the collaborators of a session. Only Scheduler is required.
type Deps struct {
	Scheduler platformcore.Scheduler
	Rand      *rand.Rand
	Renderer  Renderer
	Audio     AudioNotifier
	Recorder  RunRecorder
	Logger    *log.Logger
	Now       func() time.Time
}

// Session owns the tiles, selection, timer and stage progression of one
// player. All methods must be called from a single goroutine.
type Session struct {
	cfg   Config
	sched platformcore.Scheduler
	log   *log.Logger
	now   func() time.Time

	renderer Renderer
	audio    AudioNotifier
	recorder RunRecorder

	tileSet   *TileSet
	selection *SelectionEngine
	timer     *RoundTimer
	stages    *StageController

	tiles      []*Tile
	grid       Grid
	pending    []platformcore.Handle // Deferred callbacks tied to the current attempt
	assets     bool
	running    bool
	previewing bool
	muted      bool
	message    string

	runID      string
	runStarted time.Time
	score      int
	gameOver   bool
	lastRun    *RunResult
}

// NewSession creates an idle session at stage 1.
func NewSession(cfg Config, deps Deps) *Session {
	rng := deps.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	logger := deps.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	now := deps.Now
	if now == nil {
		now = time.Now
	}

	s := &Session{
		cfg:       cfg,
		sched:     deps.Scheduler,
		log:       logger,
		now:       now,
		renderer:  deps.Renderer,
		audio:     deps.Audio,
		recorder:  deps.Recorder,
		tileSet:   NewTileSet(cfg.Kinds, cfg.Stages, rng),
		selection: NewSelectionEngine(cfg.AllowDeselect),
		stages:    NewStageController(cfg.Stages),
		message:   "Loading...",
	}
	s.timer = NewRoundTimer(deps.Scheduler, s.onTimeExpired)
	s.timer.Reset(cfg.RoundSeconds)
	return s
}

// HandleAssetsReady marks the sprites as loaded. Play is refused until
// this has been called.
func (s *Session) HandleAssetsReady() {
	if s.assets {
		return
	}
	s.assets = true
	s.message = "Click START to play"
	s.log.Debug("assets ready")
	s.present()
}

// AssetsReady reports whether HandleAssetsReady has been called.
func (s *Session) AssetsReady() bool {
	return s.assets
}

// Start begins the current stage: the first stage of a new run, or the
// next stage after a clear. It does nothing while a stage is running.
func (s *Session) Start() error {
	if !s.assets {
		s.log.Debug("start dropped", "err", ErrAssetsNotReady)
		return ErrAssetsNotReady
	}
	if s.running {
		return nil
	}
	return s.BeginStage(s.stages.Index())
}

// BeginStage deals and previews the given stage. An invalid index is
// logged and leaves the session untouched.
func (s *Session) BeginStage(index int) error {
	if !s.assets {
		s.log.Debug("begin stage dropped", "stage", index, "err", ErrAssetsNotReady)
		return ErrAssetsNotReady
	}

	def, err := s.stages.BeginStage(index)
	if err != nil {
		s.log.Warn("cannot begin stage", "stage", index, "err", err)
		return err
	}

	tiles, err := s.tileSet.Generate(def.Index)
	if err != nil {
		// Only reachable with an empty kind list; the attempt cannot be played.
		s.stages.Reset()
		s.log.Warn("cannot deal stage", "stage", index, "err", err)
		return fmt.Errorf("begin stage %d: %w", index, err)
	}

	s.cancelPending()
	s.selection.Reset()
	if s.runID == "" {
		s.startRun()
	}

	s.tileSet.Shuffle(tiles)
	s.tiles = tiles
	s.grid = Layout(s.tiles, s.cfg.Surface, s.cfg.TileSize, s.cfg.Spacing)
	for _, t := range s.tiles {
		t.State = TileRevealed
	}

	s.running = true
	s.previewing = true
	s.gameOver = false
	s.message = fmt.Sprintf("STAGE %d", def.Index)
	s.timer.Reset(s.cfg.RoundSeconds)

	s.log.Info("stage started", "stage", def.Index, "tiles", len(s.tiles), "run", s.runID)

	if s.cfg.Preview > 0 {
		s.pending = append(s.pending, s.sched.After(s.cfg.Preview, s.endPreview))
	} else {
		s.endPreview()
	}
	s.present()
	return nil
}

func (s *Session) startRun() {
	s.runID = uuid.NewString()
	s.runStarted = s.now()
	s.score = 0
	s.lastRun = nil
}

// endPreview flips the tiles face down and starts the countdown.
func (s *Session) endPreview() {
	if !s.running || !s.previewing {
		return
	}
	s.previewing = false
	for _, t := range s.tiles {
		if t.State == TileRevealed {
			t.State = TileHidden
		}
	}
	if s.cfg.Timed {
		s.timer.Start(s.cfg.RoundSeconds)
	}
	s.present()
}

// HandleClick processes a pointer click at surface coordinates (x, y).
func (s *Session) HandleClick(x, y int) {
	if !s.assets {
		s.log.Debug("click dropped", "x", x, "y", y, "err", ErrAssetsNotReady)
		return
	}

	if s.muteButton().Bounds.Contains(x, y) {
		s.ToggleMute()
		return
	}

	if !s.running {
		if b := s.actionButton(); b != nil && b.Bounds.Contains(x, y) {
			_ = s.Start()
		}
		return
	}

	tile := s.tileAt(x, y)
	if tile == nil {
		return
	}

	if s.selection.SelectOrToggle(tile) != SelectIgnored {
		s.play(SoundSelect)
	}
	if s.selection.Len() == 2 {
		s.resolve()
	}
}

func (s *Session) resolve() {
	res := s.selection.Resolve()

	switch res.Outcome {
	case OutcomeMatched:
		s.score += s.cfg.PairPoints * s.stages.Index()
		s.play(SoundMatch)
		if s.Remaining() == 0 {
			s.onAllTilesRemoved()
		}

	case OutcomeMismatched:
		s.play(SoundMismatch)
		pair := res.Pair
		s.pending = append(s.pending, s.sched.After(s.cfg.MismatchDelay, func() {
			for _, t := range pair {
				if t.State == TileRevealed {
					t.State = TileHidden
				}
			}
		}))
	}
}

func (s *Session) onAllTilesRemoved() {
	tr, ok := s.stages.AllTilesRemoved()
	if !ok {
		return
	}

	if s.cfg.Timed {
		s.score += s.cfg.TimeBonus * s.timer.Remaining()
	}
	s.conclude()
	s.play(SoundClear)

	switch tr.Kind {
	case TransitionNextStageReady:
		s.message = fmt.Sprintf("Stage %d cleared! Click NEXT STAGE to continue.", tr.Stage)
		s.log.Info("stage cleared", "stage", tr.Stage, "next", tr.Next, "score", s.score)
	case TransitionRunComplete:
		s.message = "All stages cleared! Congratulations!"
		s.log.Info("run complete", "score", s.score)
		s.finishRun(tr.Stage, true)
	}
	s.present()
}

func (s *Session) onTimeExpired() {
	tr, ok := s.stages.TimeExpired()
	if !ok {
		return
	}

	s.conclude()
	s.play(SoundGameOver)
	s.message = "Time's up! Game Over."
	s.log.Info("run over", "stage", tr.Stage, "reason", tr.Reason, "score", s.score)
	s.finishRun(tr.Stage, false)
	s.present()
}

// conclude stops everything tied to the attempt that just resolved.
func (s *Session) conclude() {
	s.timer.Stop()
	s.cancelPending()
	s.selection.Reset()
	s.running = false
	s.previewing = false
}

func (s *Session) finishRun(stage int, completed bool) {
	result := RunResult{
		RunID:        s.runID,
		GameID:       s.cfg.GameID,
		StageReached: stage,
		Completed:    completed,
		Score:        s.score,
		Duration:     s.now().Sub(s.runStarted),
	}
	s.lastRun = &result
	s.runID = ""
	s.gameOver = true

	if s.recorder == nil {
		return
	}
	if err := s.recorder.SaveRunResult(result); err != nil {
		s.log.Warn("cannot record run", "run", result.RunID, "err", err)
	}
}

func (s *Session) cancelPending() {
	for _, h := range s.pending {
		h.Cancel()
	}
	s.pending = s.pending[:0]
}

// tileAt returns the first live tile containing (x, y).
func (s *Session) tileAt(x, y int) *Tile {
	for _, t := range s.tiles {
		if t.Live() && t.Bounds.Contains(x, y) {
			return t
		}
	}
	return nil
}

// ToggleMute silences or restores audio cues.
func (s *Session) ToggleMute() {
	s.muted = !s.muted
	s.present()
}

// Muted reports whether audio cues are silenced.
func (s *Session) Muted() bool {
	return s.muted
}

func (s *Session) play(snd Sound) {
	if s.muted || s.audio == nil {
		return
	}
	s.audio.Play(snd)
}

// Resize changes the surface and lays the current tiles out again.
func (s *Session) Resize(w, h int) {
	s.cfg.Surface = platformcore.Size{W: w, H: h}
	if len(s.tiles) > 0 {
		s.grid = Layout(s.tiles, s.cfg.Surface, s.cfg.TileSize, s.cfg.Spacing)
	}
	s.present()
}

// Tick is called once per animation frame and renders while a stage runs.
func (s *Session) Tick() {
	if s.running {
		s.present()
	}
}

func (s *Session) present() {
	if s.renderer != nil {
		s.renderer.RenderFrame(s.Frame())
	}
}

// Frame returns a snapshot for display.
func (s *Session) Frame() Frame {
	f := Frame{
		SessionState: s.State(),
		MaxStages:    s.stages.MaxStages(),
		Phase:        s.stages.Phase(),
		Timed:        s.cfg.Timed,
		Previewing:   s.previewing,
		Score:        s.score,
		Message:      s.message,
		Grid:         s.grid,
		Mute:         s.muteButton(),
		Muted:        s.muted,
		Loading:      !s.assets,
	}

	if s.running {
		f.Tiles = make([]TileView, 0, len(s.tiles))
		for _, t := range s.tiles {
			if !t.Live() {
				continue
			}
			f.Tiles = append(f.Tiles, TileView{
				ID:     t.ID,
				Kind:   t.Kind,
				Slot:   t.Slot,
				Bounds: t.Bounds,
				State:  t.State,
			})
		}
	}
	f.Button = s.actionButton()
	return f
}

// actionButton returns the START / NEXT STAGE button, or nil while a stage
// is running or assets are still loading.
func (s *Session) actionButton() *Button {
	if s.running || !s.assets {
		return nil
	}
	label := "START"
	if s.stages.Phase() == PhaseCleared {
		label = "NEXT STAGE"
	}
	w := len(label) + 4
	h := 3
	return &Button{
		Label:  label,
		Bounds: platformcore.NewRect((s.cfg.Surface.W-w)/2, (s.cfg.Surface.H-h)/2, w, h),
	}
}

func (s *Session) muteButton() Button {
	label := "[sound]"
	if s.muted {
		label = "[muted]"
	}
	return Button{
		Label:  label,
		Bounds: platformcore.NewRect(1, s.cfg.Surface.H-1, len(label), 1),
	}
}

// State returns stage index, time remaining and whether a stage runs.
func (s *Session) State() SessionState {
	return SessionState{
		Stage:         s.stages.Index(),
		TimeRemaining: s.timer.Remaining(),
		Running:       s.running,
	}
}

// Phase returns the phase of the current stage attempt.
func (s *Session) Phase() Phase {
	return s.stages.Phase()
}

// Tiles returns the live tiles of the current stage in slot order.
func (s *Session) Tiles() []*Tile {
	out := make([]*Tile, 0, len(s.tiles))
	for _, t := range s.tiles {
		if t.Live() {
			out = append(out, t)
		}
	}
	return out
}

// Remaining returns the number of live tiles.
func (s *Session) Remaining() int {
	n := 0
	for _, t := range s.tiles {
		if t.Live() {
			n++
		}
	}
	return n
}

// Slots returns the number of grid slots dealt for the current stage,
// removed tiles included.
func (s *Session) Slots() int {
	return len(s.tiles)
}

// Grid returns the arrangement of the current stage.
func (s *Session) Grid() Grid {
	return s.grid
}

// Score returns the score of the current (or last) run.
func (s *Session) Score() int {
	return s.score
}

// GameOver reports whether the last run has ended and no new one started.
func (s *Session) GameOver() bool {
	return s.gameOver
}

// LastRun returns the result of the most recent finished run, if any.
func (s *Session) LastRun() *RunResult {
	return s.lastRun
}
