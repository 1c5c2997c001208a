package core

import (
	"errors"
	"math/rand"
	"sort"
	"testing"

	platformcore "github.com/vovakirdan/same-animal/internal/core"
)

var testKinds = []Kind{"elephant", "fox", "giraffe", "koala", "panda", "puppy1", "puppy2", "tiger", "rabbit", "squirrel"}

func newTestTileSet(seed int64) *TileSet {
	return NewTileSet(testKinds, StageTable{4, 6, 12, 16, 20}, rand.New(rand.NewSource(seed)))
}

func TestGeneratePairCompleteness(t *testing.T) {
	ts := newTestTileSet(1)

	for stage := 1; stage <= 5; stage++ {
		tiles, err := ts.Generate(stage)
		if err != nil {
			t.Fatalf("stage %d: unexpected error: %v", stage, err)
		}
		if len(tiles)%2 != 0 {
			t.Errorf("stage %d: odd tile count %d", stage, len(tiles))
		}

		counts := make(map[Kind]int)
		for _, tile := range tiles {
			if tile.State != TileHidden {
				t.Errorf("stage %d: tile %d state = %v, want hidden", stage, tile.ID, tile.State)
			}
			counts[tile.Kind]++
		}
		for kind, n := range counts {
			if n != 2 {
				t.Errorf("stage %d: kind %s appears %d times, want 2", stage, kind, n)
			}
		}
	}
}

func TestGenerateStageOneHasTwoKinds(t *testing.T) {
	ts := newTestTileSet(1)

	tiles, err := ts.Generate(1)
	if err != nil {
		t.Fatal(err)
	}
	if len(tiles) != 4 {
		t.Fatalf("len(tiles) = %d, want 4", len(tiles))
	}
	if tiles[0].Kind != "elephant" || tiles[2].Kind != "fox" {
		t.Errorf("kinds = %s, %s; want elephant, fox", tiles[0].Kind, tiles[2].Kind)
	}
}

func TestGenerateCapsAtTwiceKinds(t *testing.T) {
	ts := NewTileSet([]Kind{"a", "b"}, StageTable{10}, rand.New(rand.NewSource(1)))

	tiles, err := ts.Generate(1)
	if err != nil {
		t.Fatal(err)
	}
	if len(tiles) != 4 {
		t.Errorf("len(tiles) = %d, want 4", len(tiles))
	}
}

func TestGenerateUniqueIDs(t *testing.T) {
	ts := newTestTileSet(1)
	seen := make(map[int]bool)

	for _, stage := range []int{1, 2, 1} {
		tiles, err := ts.Generate(stage)
		if err != nil {
			t.Fatal(err)
		}
		for _, tile := range tiles {
			if seen[tile.ID] {
				t.Fatalf("duplicate tile ID %d", tile.ID)
			}
			seen[tile.ID] = true
		}
	}
}

func TestGenerateInvalidStage(t *testing.T) {
	ts := newTestTileSet(1)

	for _, stage := range []int{0, -1, 6} {
		tiles, err := ts.Generate(stage)
		if !errors.Is(err, ErrInvalidStage) {
			t.Errorf("Generate(%d) error = %v, want ErrInvalidStage", stage, err)
		}
		if tiles != nil {
			t.Errorf("Generate(%d) returned %d tiles", stage, len(tiles))
		}
	}
}

func TestGenerateNoKinds(t *testing.T) {
	ts := NewTileSet(nil, StageTable{4}, rand.New(rand.NewSource(1)))

	if _, err := ts.Generate(1); !errors.Is(err, ErrNoKinds) {
		t.Errorf("error = %v, want ErrNoKinds", err)
	}
}

func TestShufflePreservesMultiset(t *testing.T) {
	ts := newTestTileSet(7)
	tiles, err := ts.Generate(5)
	if err != nil {
		t.Fatal(err)
	}

	before := tileIDs(tiles)
	for i := 0; i < 3; i++ {
		ts.Shuffle(tiles)
	}
	after := tileIDs(tiles)

	sort.Ints(before)
	sort.Ints(after)
	for i := range before {
		if before[i] != after[i] {
			t.Fatalf("multiset changed at %d: %d vs %d", i, before[i], after[i])
		}
	}
}

func TestShuffleDeterministicWithSeed(t *testing.T) {
	a, b := newTestTileSet(99), newTestTileSet(99)
	ta, _ := a.Generate(4)
	tb, _ := b.Generate(4)

	a.Shuffle(ta)
	b.Shuffle(tb)

	for i := range ta {
		if ta[i].ID != tb[i].ID {
			t.Fatalf("position %d: %d vs %d", i, ta[i].ID, tb[i].ID)
		}
	}
}

func TestShuffleHandlesShortSlices(t *testing.T) {
	ts := newTestTileSet(1)
	ts.Shuffle(nil)

	one := []*Tile{{ID: 1}}
	ts.Shuffle(one)
	if one[0].ID != 1 {
		t.Error("single tile moved")
	}
}

func TestGridFor(t *testing.T) {
	tests := []struct {
		n, rows, cols int
	}{
		{0, 0, 0},
		{1, 1, 1},
		{4, 2, 2},
		{6, 3, 2},
		{12, 4, 3},
		{16, 4, 4},
		{20, 5, 4},
	}

	for _, tt := range tests {
		rows, cols := GridFor(tt.n)
		if rows != tt.rows || cols != tt.cols {
			t.Errorf("GridFor(%d) = %dx%d, want %dx%d", tt.n, rows, cols, tt.rows, tt.cols)
		}
	}
}

func TestLayoutCentersGrid(t *testing.T) {
	ts := newTestTileSet(1)
	tiles, _ := ts.Generate(1)

	surface := platformcore.Size{W: 80, H: 24}
	grid := Layout(tiles, surface, platformcore.Size{W: 10, H: 3}, 1)

	if grid.Rows != 2 || grid.Cols != 2 {
		t.Fatalf("grid = %dx%d, want 2x2", grid.Rows, grid.Cols)
	}
	// 2*10+1 = 21 wide, 2*3+1 = 7 tall
	want := platformcore.NewRect(29, 8, 21, 7)
	if grid.Bounds != want {
		t.Errorf("grid bounds = %+v, want %+v", grid.Bounds, want)
	}

	if tiles[0].Bounds != platformcore.NewRect(29, 8, 10, 3) {
		t.Errorf("tile 0 bounds = %+v", tiles[0].Bounds)
	}
	if tiles[3].Bounds != platformcore.NewRect(40, 12, 10, 3) {
		t.Errorf("tile 3 bounds = %+v", tiles[3].Bounds)
	}

	for i, tile := range tiles {
		if tile.Slot != i {
			t.Errorf("tile %d slot = %d", i, tile.Slot)
		}
		if !tile.Bounds.Inside(platformcore.NewRect(0, 0, surface.W, surface.H)) {
			t.Errorf("tile %d outside surface: %+v", i, tile.Bounds)
		}
	}
}

func TestLayoutDeterministic(t *testing.T) {
	surface := platformcore.Size{W: 100, H: 40}
	size := platformcore.Size{W: 8, H: 3}

	a, _ := newTestTileSet(1).Generate(4)
	b, _ := newTestTileSet(2).Generate(4)
	Layout(a, surface, size, 1)
	Layout(b, surface, size, 1)
	Layout(b, surface, size, 1)

	for i := range a {
		if a[i].Bounds != b[i].Bounds {
			t.Errorf("slot %d: %+v vs %+v", i, a[i].Bounds, b[i].Bounds)
		}
	}
}

func TestLayoutNoOverlap(t *testing.T) {
	tiles, _ := newTestTileSet(1).Generate(5)
	Layout(tiles, platformcore.Size{W: 120, H: 40}, platformcore.Size{W: 10, H: 3}, 1)

	for i := range tiles {
		for j := i + 1; j < len(tiles); j++ {
			if tiles[i].Bounds.Intersects(tiles[j].Bounds) {
				t.Errorf("tiles %d and %d overlap", i, j)
			}
		}
	}
}

func tileIDs(tiles []*Tile) []int {
	ids := make([]int, len(tiles))
	for i, tile := range tiles {
		ids[i] = tile.ID
	}
	return ids
}
