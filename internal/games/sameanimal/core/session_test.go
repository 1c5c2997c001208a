package core

import (
	"errors"
	"math/rand"
	"testing"
	"time"

	platformcore "github.com/vovakirdan/same-animal/internal/core"
)

type recordingAudio struct {
	sounds []Sound
}

func (a *recordingAudio) Play(s Sound) {
	a.sounds = append(a.sounds, s)
}

func (a *recordingAudio) count(s Sound) int {
	n := 0
	for _, got := range a.sounds {
		if got == s {
			n++
		}
	}
	return n
}

type recordingRenderer struct {
	frames []Frame
}

func (r *recordingRenderer) RenderFrame(f Frame) {
	r.frames = append(r.frames, f)
}

func (r *recordingRenderer) last() Frame {
	return r.frames[len(r.frames)-1]
}

type recordingRecorder struct {
	runs []RunResult
	err  error
}

func (r *recordingRecorder) SaveRunResult(res RunResult) error {
	r.runs = append(r.runs, res)
	return r.err
}

type harness struct {
	clock    *platformcore.Clock
	audio    *recordingAudio
	renderer *recordingRenderer
	recorder *recordingRecorder
	session  *Session
}

func testConfig() Config {
	return Config{
		GameID:        "sameanimal",
		Kinds:         testKinds,
		Stages:        StageTable{4, 6, 12},
		Timed:         true,
		RoundSeconds:  30,
		Preview:       2 * time.Second,
		MismatchDelay: time.Second,
		TileSize:      platformcore.Size{W: 10, H: 3},
		Spacing:       1,
		AllowDeselect: true,
		PairPoints:    10,
		TimeBonus:     5,
		Surface:       platformcore.Size{W: 80, H: 24},
	}
}

func newHarness(cfg Config) *harness {
	h := &harness{
		clock:    platformcore.NewClock(),
		audio:    &recordingAudio{},
		renderer: &recordingRenderer{},
		recorder: &recordingRecorder{},
	}
	h.session = NewSession(cfg, Deps{
		Scheduler: h.clock,
		Rand:      rand.New(rand.NewSource(42)),
		Renderer:  h.renderer,
		Audio:     h.audio,
		Recorder:  h.recorder,
	})
	return h
}

// ready returns a session past the preview of stage 1.
func ready(t *testing.T, cfg Config) *harness {
	t.Helper()
	h := newHarness(cfg)
	h.session.HandleAssetsReady()
	if err := h.session.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	h.clock.Advance(cfg.Preview)
	return h
}

func (h *harness) click(tile *Tile) {
	c := tile.Bounds.Center()
	h.session.HandleClick(c.X, c.Y)
}

// byKind groups the live tiles of the session.
func (h *harness) byKind() map[Kind][]*Tile {
	out := make(map[Kind][]*Tile)
	for _, tile := range h.session.Tiles() {
		out[tile.Kind] = append(out[tile.Kind], tile)
	}
	return out
}

// clearStage matches every remaining pair.
func (h *harness) clearStage() {
	for _, pair := range h.byKind() {
		h.click(pair[0])
		h.click(pair[1])
	}
}

func TestStartBeforeAssetsReady(t *testing.T) {
	h := newHarness(testConfig())

	if err := h.session.Start(); !errors.Is(err, ErrAssetsNotReady) {
		t.Fatalf("Start err = %v, want ErrAssetsNotReady", err)
	}
	if len(h.session.Tiles()) != 0 {
		t.Error("tiles generated before assets ready")
	}

	h.session.HandleClick(40, 12)
	if h.session.State().Running {
		t.Error("click started the game before assets ready")
	}
	if !h.session.Frame().Loading {
		t.Error("frame not marked loading")
	}
}

func TestPreviewThenCountdown(t *testing.T) {
	cfg := testConfig()
	h := newHarness(cfg)
	h.session.HandleAssetsReady()
	if err := h.session.Start(); err != nil {
		t.Fatal(err)
	}

	tiles := h.session.Tiles()
	if len(tiles) != 4 {
		t.Fatalf("stage 1 tiles = %d, want 4", len(tiles))
	}
	for _, tile := range tiles {
		if tile.State != TileRevealed {
			t.Fatalf("tile %d state during preview = %v", tile.ID, tile.State)
		}
	}

	// Clicks during the preview do nothing.
	h.click(tiles[0])
	if tiles[0].State != TileRevealed {
		t.Errorf("preview click changed state to %v", tiles[0].State)
	}

	h.clock.Advance(cfg.Preview)
	for _, tile := range tiles {
		if tile.State != TileHidden {
			t.Errorf("tile %d state after preview = %v", tile.ID, tile.State)
		}
	}

	h.clock.Advance(3 * time.Second)
	if got := h.session.State().TimeRemaining; got != 27 {
		t.Errorf("time remaining = %d, want 27", got)
	}
}

func TestStageOneScenario(t *testing.T) {
	cfg := testConfig()
	h := ready(t, cfg)

	groups := h.byKind()
	if len(groups) != 2 {
		t.Fatalf("stage 1 kinds = %d, want 2", len(groups))
	}

	var kinds []Kind
	for k, pair := range groups {
		if len(pair) != 2 {
			t.Fatalf("kind %s has %d tiles", k, len(pair))
		}
		kinds = append(kinds, k)
	}
	a, b := groups[kinds[0]][0], groups[kinds[0]][1]
	c, d := groups[kinds[1]][0], groups[kinds[1]][1]

	// Mismatch first: both stay, then flip back after the delay.
	h.click(a)
	h.click(c)
	if a.State != TileRevealed || c.State != TileRevealed {
		t.Fatalf("mismatch states = %v, %v", a.State, c.State)
	}
	if h.session.Remaining() != 4 {
		t.Errorf("remaining after mismatch = %d", h.session.Remaining())
	}
	if h.audio.count(SoundMismatch) != 1 {
		t.Errorf("mismatch sounds = %d", h.audio.count(SoundMismatch))
	}

	h.clock.Advance(cfg.MismatchDelay)
	if a.State != TileHidden || c.State != TileHidden {
		t.Fatalf("after delay states = %v, %v; want hidden", a.State, c.State)
	}

	// Match: both removed, two tiles left.
	h.click(a)
	h.click(b)
	if a.State != TileRemoved || b.State != TileRemoved {
		t.Fatalf("match states = %v, %v", a.State, b.State)
	}
	if h.session.Remaining() != 2 {
		t.Errorf("remaining after match = %d, want 2", h.session.Remaining())
	}
	if h.session.Score() != 10 {
		t.Errorf("score = %d, want 10", h.session.Score())
	}

	// Clearing the stage moves to stage 2 and waits for the player.
	h.click(c)
	h.click(d)
	st := h.session.State()
	if st.Stage != 2 || st.Running {
		t.Errorf("after clear state = %+v", st)
	}
	if h.session.Phase() != PhaseCleared {
		t.Errorf("phase = %v, want cleared", h.session.Phase())
	}
	if h.audio.count(SoundClear) != 1 {
		t.Errorf("clear sounds = %d", h.audio.count(SoundClear))
	}
	// 2 pairs * 10 + 5 * 29s left; the mismatch delay cost one tick.
	if h.session.Score() != 165 {
		t.Errorf("score = %d, want 165", h.session.Score())
	}
	if h.clock.Pending() != 0 {
		t.Errorf("pending callbacks after clear = %d", h.clock.Pending())
	}

	f := h.session.Frame()
	if f.Button == nil || f.Button.Label != "NEXT STAGE" {
		t.Fatalf("button = %+v, want NEXT STAGE", f.Button)
	}

	// No auto-start: time passes and nothing happens.
	h.clock.Advance(time.Minute)
	if h.session.State().Running {
		t.Fatal("next stage started on its own")
	}

	c2 := f.Button.Bounds.Center()
	h.session.HandleClick(c2.X, c2.Y)
	if !h.session.State().Running || len(h.session.Tiles()) != 6 {
		t.Errorf("stage 2 not started: %+v, %d tiles", h.session.State(), len(h.session.Tiles()))
	}
}

func TestTimeExpiryResetsRun(t *testing.T) {
	cfg := testConfig()
	h := ready(t, cfg)

	h.clock.Advance(29 * time.Second)
	if !h.session.State().Running {
		t.Fatal("stopped before 30 ticks")
	}

	h.clock.Advance(time.Second)
	st := h.session.State()
	if st.Running || st.Stage != 1 || st.TimeRemaining != 0 {
		t.Errorf("after expiry state = %+v", st)
	}
	if !h.session.GameOver() {
		t.Error("GameOver not set")
	}
	if h.session.Phase() != PhaseFailed {
		t.Errorf("phase = %v", h.session.Phase())
	}

	h.clock.Advance(time.Minute)
	if h.audio.count(SoundGameOver) != 1 {
		t.Errorf("game over sounds = %d, want 1", h.audio.count(SoundGameOver))
	}
	if len(h.recorder.runs) != 1 {
		t.Fatalf("recorded runs = %d, want 1", len(h.recorder.runs))
	}
	run := h.recorder.runs[0]
	if run.Completed || run.StageReached != 1 || run.GameID != "sameanimal" || run.RunID == "" {
		t.Errorf("run = %+v", run)
	}
}

func TestTimeExpiryAfterLaterStage(t *testing.T) {
	cfg := testConfig()
	h := ready(t, cfg)
	h.clearStage()
	if err := h.session.Start(); err != nil {
		t.Fatal(err)
	}

	h.clock.Advance(cfg.Preview + 30*time.Second)
	if st := h.session.State(); st.Stage != 1 || st.Running {
		t.Errorf("state = %+v, want stage 1 stopped", st)
	}
	if got := h.recorder.runs[0].StageReached; got != 2 {
		t.Errorf("stage reached = %d, want 2", got)
	}
}

func TestFinalStageResetsToOne(t *testing.T) {
	cfg := testConfig()
	cfg.Stages = StageTable{4, 6}
	h := ready(t, cfg)

	h.clearStage()
	if err := h.session.Start(); err != nil {
		t.Fatal(err)
	}
	h.clock.Advance(cfg.Preview)
	h.clearStage()

	st := h.session.State()
	if st.Stage != 1 || st.Running {
		t.Errorf("after final clear state = %+v", st)
	}
	if h.session.Phase() != PhaseIdle {
		t.Errorf("phase = %v, want idle", h.session.Phase())
	}
	if len(h.recorder.runs) != 1 || !h.recorder.runs[0].Completed {
		t.Fatalf("runs = %+v", h.recorder.runs)
	}
	if h.session.LastRun().Score != h.session.Score() {
		t.Error("last run score differs from session score")
	}
	if f := h.session.Frame(); f.Button == nil || f.Button.Label != "START" {
		t.Errorf("button = %+v, want START", f.Button)
	}
}

func TestMatchOnFinalTickWinsOverExpiry(t *testing.T) {
	cfg := testConfig()
	h := ready(t, cfg)
	h.clock.Advance(29 * time.Second)

	h.clearStage()
	h.clock.Advance(time.Second)

	if h.session.GameOver() {
		t.Error("expiry fired after the stage was cleared")
	}
	if h.session.Phase() != PhaseCleared {
		t.Errorf("phase = %v", h.session.Phase())
	}
}

func TestNewStageCancelsPendingCallbacks(t *testing.T) {
	cfg := testConfig()
	h := ready(t, cfg)

	groups := h.byKind()
	var first []*Tile
	for _, pair := range groups {
		first = append(first, pair[0])
	}
	h.click(first[0])
	h.click(first[1])

	// Restart mid-stage: the mismatch hide and the old countdown are dropped.
	if err := h.session.BeginStage(1); err != nil {
		t.Fatal(err)
	}
	if h.clock.Pending() != 1 {
		t.Errorf("pending = %d, want only the new preview", h.clock.Pending())
	}
	for _, tile := range h.session.Tiles() {
		if tile == first[0] || tile == first[1] {
			t.Fatal("tiles from the superseded stage were carried forward")
		}
	}
	if h.session.State().TimeRemaining != cfg.RoundSeconds {
		t.Errorf("time remaining = %d", h.session.State().TimeRemaining)
	}
}

func TestBeginInvalidStage(t *testing.T) {
	h := ready(t, testConfig())
	before := h.session.Tiles()

	if err := h.session.BeginStage(9); !errors.Is(err, ErrInvalidStage) {
		t.Fatalf("err = %v", err)
	}
	if len(h.session.Tiles()) != len(before) || !h.session.State().Running {
		t.Error("invalid stage disturbed the running stage")
	}
}

func TestRelaxedVariantHasNoTimer(t *testing.T) {
	cfg := testConfig()
	cfg.Timed = false
	h := ready(t, cfg)

	h.clock.Advance(10 * time.Minute)
	if !h.session.State().Running {
		t.Fatal("untimed stage ended on its own")
	}
	h.clearStage()
	// No time bonus without a timer.
	if h.session.Score() != 20 {
		t.Errorf("score = %d, want 20", h.session.Score())
	}
}

func TestMuteSilencesAudio(t *testing.T) {
	cfg := testConfig()
	h := ready(t, cfg)

	mute := h.session.Frame().Mute.Bounds
	h.session.HandleClick(mute.X, mute.Y)
	if !h.session.Muted() {
		t.Fatal("mute button did not mute")
	}

	h.clearStage()
	if len(h.audio.sounds) != 0 {
		t.Errorf("sounds while muted: %v", h.audio.sounds)
	}

	h.session.ToggleMute()
	if h.session.Muted() {
		t.Error("ToggleMute did not unmute")
	}
}

func TestTickRendersWhileRunning(t *testing.T) {
	h := newHarness(testConfig())
	h.session.HandleAssetsReady()

	n := len(h.renderer.frames)
	h.session.Tick()
	if len(h.renderer.frames) != n {
		t.Error("Tick rendered while idle")
	}

	h.session.Start()
	n = len(h.renderer.frames)
	h.session.Tick()
	if len(h.renderer.frames) != n+1 {
		t.Fatal("Tick did not render while running")
	}
	f := h.renderer.last()
	if len(f.Tiles) != 4 || f.Message != "STAGE 1" || !f.Previewing {
		t.Errorf("frame = %+v", f)
	}
}

func TestResizeRelaysTiles(t *testing.T) {
	h := ready(t, testConfig())
	tile := h.session.Tiles()[0]
	before := tile.Bounds

	h.session.Resize(120, 40)
	if tile.Bounds == before {
		t.Error("tile bounds unchanged after resize")
	}
	if !h.session.Grid().Bounds.Inside(platformcore.NewRect(0, 0, 120, 40)) {
		t.Errorf("grid outside new surface: %+v", h.session.Grid().Bounds)
	}
}

func TestRecorderErrorIsAbsorbed(t *testing.T) {
	h := ready(t, testConfig())
	h.recorder.err = errors.New("disk full")

	h.clock.Advance(30 * time.Second)
	if !h.session.GameOver() {
		t.Error("run did not end")
	}
	if h.session.LastRun() == nil {
		t.Error("last run missing")
	}
}
