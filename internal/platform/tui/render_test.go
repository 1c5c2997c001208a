package tui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"

	"github.com/vovakirdan/same-animal/internal/core"
)

func TestRenderScreenPlainText(t *testing.T) {
	s := core.NewScreen(6, 2)
	s.DrawText(0, 0, "ab")
	s.DrawTextColor(2, 0, "cd", core.ColorRed)
	s.DrawTextColor(0, 1, "xyz", core.ColorOrange)

	got := ansi.Strip(RenderScreen(s))
	want := "abcd  \nxyz   "
	if got != want {
		t.Errorf("RenderScreen stripped = %q, want %q", got, want)
	}
}

func TestRenderScreenRows(t *testing.T) {
	s := core.NewScreen(3, 4)
	if n := strings.Count(RenderScreen(s), "\n"); n != 3 {
		t.Errorf("newlines = %d, want 3", n)
	}
}

func TestPaletteUnknownColor(t *testing.T) {
	p := NewPalette(nil)
	s := core.NewScreen(2, 1)
	s.SetColor(0, 0, 'x', core.Color(200))

	if got := ansi.Strip(p.Render(s)); got != "x " {
		t.Errorf("Render = %q, want %q", got, "x ")
	}
}
