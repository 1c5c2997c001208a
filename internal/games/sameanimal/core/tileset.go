package core

import (
	"fmt"
	"math"
	"math/rand"

	platformcore "github.com/vovakirdan/same-animal/internal/core"
)

// StageDefinition describes one stage of a run.
type StageDefinition struct {
	Index int // 1-based
	Tiles int // Tiles dealt, two per pair
}

// Pairs returns the number of pairs dealt for the stage.
func (d StageDefinition) Pairs() int {
	return (d.Tiles + 1) / 2
}

// StageTable lists the tile count of every stage, first stage first.
type StageTable []int

// MaxStages returns the number of stages in a run.
func (t StageTable) MaxStages() int {
	return len(t)
}

// Stage returns the definition of the 1-based stage index.
func (t StageTable) Stage(index int) (StageDefinition, error) {
	if index < 1 || index > len(t) {
		return StageDefinition{}, fmt.Errorf("%w: %d not in 1..%d", ErrInvalidStage, index, len(t))
	}
	return StageDefinition{Index: index, Tiles: t[index-1]}, nil
}

// TileSet deals, shuffles and numbers the tiles of each stage.
type TileSet struct {
	kinds  []Kind
	stages StageTable
	rng    *rand.Rand
	nextID int
}

// NewTileSet creates a tile set dealing from kinds in order.
func NewTileSet(kinds []Kind, stages StageTable, rng *rand.Rand) *TileSet {
	return &TileSet{
		kinds:  kinds,
		stages: stages,
		rng:    rng,
	}
}

// Kinds returns the animal kinds available to the tile set.
func (ts *TileSet) Kinds() []Kind {
	return ts.kinds
}

// Generate deals the hidden, unshuffled tiles of a stage: two tiles for
// each of the first n kinds, wrapping around the kind list if the stage
// asks for more pairs than there are kinds.
func (ts *TileSet) Generate(stage int) ([]*Tile, error) {
	def, err := ts.stages.Stage(stage)
	if err != nil {
		return nil, err
	}
	if len(ts.kinds) == 0 {
		return nil, ErrNoKinds
	}

	count := min(def.Tiles, 2*len(ts.kinds))
	pairs := (count + 1) / 2

	tiles := make([]*Tile, 0, pairs*2)
	for i := 0; i < pairs; i++ {
		kind := ts.kinds[i%len(ts.kinds)]
		for j := 0; j < 2; j++ {
			ts.nextID++
			tiles = append(tiles, &Tile{
				ID:    ts.nextID,
				Kind:  kind,
				State: TileHidden,
			})
		}
	}
	return tiles, nil
}

// Shuffle permutes tiles in place with a Fisher-Yates shuffle.
func (ts *TileSet) Shuffle(tiles []*Tile) {
	for i := len(tiles) - 1; i > 0; i-- {
		j := ts.rng.Intn(i + 1)
		tiles[i], tiles[j] = tiles[j], tiles[i]
	}
}

// Grid describes the arrangement produced by Layout.
type Grid struct {
	Rows, Cols int
	Bounds     platformcore.Rect // Area covered by all slots
}

// GridFor returns the rows and columns used for n tiles:
// rows = ceil(sqrt(n)), cols = ceil(n / rows).
func GridFor(n int) (rows, cols int) {
	if n <= 0 {
		return 0, 0
	}
	rows = int(math.Ceil(math.Sqrt(float64(n))))
	cols = (n + rows - 1) / rows
	return rows, cols
}

// Layout places tiles row by row on a grid centered in the surface.
// It depends only on the tile count, surface, tile size and spacing.
func Layout(tiles []*Tile, surface, tile platformcore.Size, spacing int) Grid {
	rows, cols := GridFor(len(tiles))
	if rows == 0 {
		return Grid{}
	}

	totalW := cols*tile.W + (cols-1)*spacing
	totalH := rows*tile.H + (rows-1)*spacing
	startX := (surface.W - totalW) / 2
	startY := (surface.H - totalH) / 2

	for i, t := range tiles {
		row, col := i/cols, i%cols
		t.Slot = i
		t.Bounds = platformcore.Rect{
			X: startX + col*(tile.W+spacing),
			Y: startY + row*(tile.H+spacing),
			W: tile.W,
			H: tile.H,
		}
	}

	return Grid{
		Rows:   rows,
		Cols:   cols,
		Bounds: platformcore.NewRect(startX, startY, totalW, totalH),
	}
}
