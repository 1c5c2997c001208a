package sameanimal

import (
	"fmt"
	"unicode/utf8"

	"github.com/vovakirdan/same-animal/internal/core"
	sacore "github.com/vovakirdan/same-animal/internal/games/sameanimal/core"
)

// Render draws the last frame delivered by the session.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	f := g.frame

	g.renderHUD(dst, f)

	if g.tooSmall {
		g.renderOverlay(dst, "Window too small", "Resize to continue")
		return
	}
	if f.Loading {
		dst.DrawTextCentered(dst.Height()/2, "Loading...", core.ColorGray)
		return
	}

	for _, t := range f.Tiles {
		g.renderTile(dst, t, f.Running && t.Slot == g.cursor)
	}

	if f.Button != nil {
		r := g.toScreen(f.Button.Bounds)
		dst.DrawBox(r, core.ColorBrightGreen)
		drawInRect(dst, r, r.Y+r.H/2, f.Button.Label, core.ColorBrightGreen)
		if last := g.session.LastRun(); last != nil && f.Phase != sacore.PhaseCleared {
			drawInRect(dst, core.NewRect(0, 0, dst.Width(), dst.Height()), r.Bottom()+1,
				fmt.Sprintf("Final score: %d", last.Score), core.ColorWhite)
		}
	}

	mute := g.toScreen(f.Mute.Bounds)
	color := core.ColorGray
	if f.Muted {
		color = core.ColorRed
	}
	dst.DrawTextColor(mute.X, mute.Y, f.Mute.Label, color)

	if g.paused {
		g.renderOverlay(dst, "Paused", "Press P to continue")
	}
}

func (g *Game) renderHUD(dst *core.Screen, f sacore.Frame) {
	type field struct {
		text  string
		color core.Color
	}
	fields := []field{
		{g.Title(), core.ColorBrightWhite},
		{fmt.Sprintf("Stage %d/%d", f.Stage, f.MaxStages), core.ColorWhite},
	}
	if f.Timed {
		c := core.ColorWhite
		if f.Running && !f.Previewing && f.TimeRemaining <= 5 {
			c = core.ColorBrightRed
		}
		fields = append(fields, field{fmt.Sprintf("Time %2ds", f.TimeRemaining), c})
	}
	fields = append(fields, field{fmt.Sprintf("Score %d", f.Score), core.ColorWhite})

	x := 1
	for i, fl := range fields {
		if i > 0 {
			dst.DrawTextColor(x, 0, " | ", core.ColorGray)
			x += 3
		}
		dst.DrawTextColor(x, 0, fl.text, fl.color)
		x += utf8.RuneCountInString(fl.text)
	}

	msgColor := core.ColorYellow
	if f.Previewing {
		msgColor = core.ColorBrightCyan
	}
	dst.DrawTextCentered(1, f.Message, msgColor)
}

func (g *Game) renderTile(dst *core.Screen, t sacore.TileView, cursor bool) {
	r := g.toScreen(t.Bounds)
	mid := r.Y + r.H/2

	var border core.Color
	switch t.State {
	case sacore.TileSelected:
		border = core.ColorBrightYellow
	case sacore.TileRevealed:
		border = core.ColorWhite
	default:
		border = core.ColorBlue
	}
	if cursor {
		border = core.ColorBrightCyan
	}

	dst.DrawBox(r, border)
	inner := core.NewRect(r.X+1, r.Y+1, r.W-2, r.H-2)

	if t.State == sacore.TileHidden {
		dst.FillRect(inner, '░', core.ColorBlue)
		drawInRect(dst, r, mid, "?", core.ColorBrightBlue)
		return
	}

	sp := g.sheet.Sprite(string(t.Kind))
	drawInRect(dst, r, mid, sp.Glyph, sp.Tint)
	if inner.H >= 2 {
		drawInRect(dst, r, mid+1, sp.Label, sp.Tint)
	}
}

func (g *Game) renderOverlay(dst *core.Screen, line1, line2 string) {
	w := max(utf8.RuneCountInString(line1), utf8.RuneCountInString(line2)) + 6
	box := core.NewRect((dst.Width()-w)/2, dst.Height()/2-2, w, 5)

	dst.FillRect(box, ' ', core.ColorDefault)
	dst.DrawBox(box, core.ColorWhite)
	drawInRect(dst, box, box.Y+1, line1, core.ColorBrightWhite)
	drawInRect(dst, box, box.Y+3, line2, core.ColorGray)
}

// toScreen converts surface coordinates to screen coordinates.
func (g *Game) toScreen(r core.Rect) core.Rect {
	r.Y += hudHeight
	return r
}

// drawInRect draws text centered horizontally within r on row y,
// truncated to fit.
func drawInRect(dst *core.Screen, r core.Rect, y int, text string, c core.Color) {
	runes := []rune(text)
	if len(runes) > r.W {
		runes = runes[:max(r.W, 0)]
	}
	x := r.X + (r.W-len(runes))/2
	dst.DrawTextColor(x, y, string(runes), c)
}
