package sameanimal

import sacore "github.com/vovakirdan/same-animal/internal/games/sameanimal/core"

// Snapshot captures the observable game state for determinism testing.
type Snapshot struct {
	Tick          uint64
	Stage         int
	Phase         sacore.Phase
	Running       bool
	Previewing    bool
	TimeRemaining int
	Score         int
	Kinds         []sacore.Kind // Live tiles in slot order
	States        []sacore.TileState
	Cursor        int
	Paused        bool
	Muted         bool
	AssetsReady   bool
}

// Snapshot returns the current game snapshot.
func (g *Game) Snapshot() Snapshot {
	f := g.session.Frame()
	snap := Snapshot{
		Tick:          g.tick,
		Stage:         f.Stage,
		Phase:         f.Phase,
		Running:       f.Running,
		Previewing:    f.Previewing,
		TimeRemaining: f.TimeRemaining,
		Score:         f.Score,
		Cursor:        g.cursor,
		Paused:        g.paused,
		Muted:         f.Muted,
		AssetsReady:   !f.Loading,
	}
	for _, t := range f.Tiles {
		snap.Kinds = append(snap.Kinds, t.Kind)
		snap.States = append(snap.States, t.State)
	}
	return snap
}
