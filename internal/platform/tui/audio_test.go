package tui

import (
	"bytes"
	"testing"

	sacore "github.com/vovakirdan/same-animal/internal/games/sameanimal/core"
)

func TestBell(t *testing.T) {
	tests := []struct {
		sound sacore.Sound
		want  string
	}{
		{sacore.SoundSelect, ""},
		{sacore.SoundMismatch, ""},
		{sacore.SoundMatch, "\a"},
		{sacore.SoundClear, "\a\a"},
		{sacore.SoundGameOver, "\a\a\a"},
	}

	for _, tt := range tests {
		t.Run(tt.sound.String(), func(t *testing.T) {
			var buf bytes.Buffer
			NewBell(&buf).Play(tt.sound)
			if buf.String() != tt.want {
				t.Errorf("Play(%v) wrote %q, want %q", tt.sound, buf.String(), tt.want)
			}
		})
	}
}

func TestBellNilWriter(t *testing.T) {
	// Must not panic.
	NewBell(nil).Play(sacore.SoundClear)
}
