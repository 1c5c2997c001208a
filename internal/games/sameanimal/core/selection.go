package core

// MatchOutcome is the result of resolving the current selection.
type MatchOutcome int

const (
	// OutcomePending means fewer than two tiles are selected.
	OutcomePending MatchOutcome = iota
	// OutcomeMatched means both tiles had the same kind and were removed.
	OutcomeMatched
	// OutcomeMismatched means the kinds differed; both tiles stay revealed
	// until the caller flips them back.
	OutcomeMismatched
)

// String returns the outcome name.
func (o MatchOutcome) String() string {
	switch o {
	case OutcomePending:
		return "pending"
	case OutcomeMatched:
		return "matched"
	case OutcomeMismatched:
		return "mismatched"
	default:
		return "unknown"
	}
}

// SelectResult reports what a click did to the selection.
type SelectResult int

const (
	SelectIgnored SelectResult = iota
	SelectAdded
	SelectRemoved
)

// Resolution is returned by Resolve. Pair is set unless the outcome is
// pending.
type Resolution struct {
	Outcome MatchOutcome
	Pair    [2]*Tile
}

// SelectionEngine holds up to two selected tiles and decides matches.
type SelectionEngine struct {
	selected      []*Tile
	allowDeselect bool
}

// NewSelectionEngine creates an empty selection. With allowDeselect a
// click on a selected tile puts it back face down; without it, face-up
// tiles ignore clicks entirely.
func NewSelectionEngine(allowDeselect bool) *SelectionEngine {
	return &SelectionEngine{
		selected:      make([]*Tile, 0, 2),
		allowDeselect: allowDeselect,
	}
}

// Len returns the number of selected tiles (0, 1 or 2).
func (e *SelectionEngine) Len() int {
	return len(e.selected)
}

// Selected returns the selected tiles in selection order.
func (e *SelectionEngine) Selected() []*Tile {
	out := make([]*Tile, len(e.selected))
	copy(out, e.selected)
	return out
}

// SelectOrToggle applies a click on tile.
func (e *SelectionEngine) SelectOrToggle(t *Tile) SelectResult {
	if t == nil || t.State == TileRevealed || t.State == TileRemoved {
		return SelectIgnored
	}
	// Both slots are taken until the pair resolves.
	if len(e.selected) == 2 {
		return SelectIgnored
	}

	if t.State == TileSelected {
		if !e.allowDeselect {
			return SelectIgnored
		}
		t.State = TileHidden
		e.drop(t)
		return SelectRemoved
	}

	t.State = TileSelected
	e.selected = append(e.selected, t)
	return SelectAdded
}

// Resolve compares the two selected tiles. Matched tiles become Removed,
// mismatched tiles become Revealed. The selection is emptied either way.
func (e *SelectionEngine) Resolve() Resolution {
	if len(e.selected) < 2 {
		return Resolution{Outcome: OutcomePending}
	}

	a, b := e.selected[0], e.selected[1]
	e.selected = e.selected[:0]

	if a.Kind == b.Kind {
		a.State = TileRemoved
		b.State = TileRemoved
		return Resolution{Outcome: OutcomeMatched, Pair: [2]*Tile{a, b}}
	}

	a.State = TileRevealed
	b.State = TileRevealed
	return Resolution{Outcome: OutcomeMismatched, Pair: [2]*Tile{a, b}}
}

// Reset forgets the selection without touching tile states. Used when the
// tiles it refers to are discarded.
func (e *SelectionEngine) Reset() {
	e.selected = e.selected[:0]
}

func (e *SelectionEngine) drop(t *Tile) {
	for i, s := range e.selected {
		if s == t {
			e.selected = append(e.selected[:i], e.selected[i+1:]...)
			return
		}
	}
}
