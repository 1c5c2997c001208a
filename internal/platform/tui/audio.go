package tui

import (
	"io"
	"strings"
	"sync"

	sacore "github.com/vovakirdan/same-animal/internal/games/sameanimal/core"
)

// bellCount is how many times each cue rings the terminal bell.
var bellCount = map[sacore.Sound]int{
	sacore.SoundMatch:    1,
	sacore.SoundClear:    2,
	sacore.SoundGameOver: 3,
}

// Bell is an AudioNotifier that rings the terminal bell. Select and
// mismatch cues stay silent.
type Bell struct {
	mu sync.Mutex
	w  io.Writer
}

// NewBell creates a bell writing to w (the terminal or SSH session).
func NewBell(w io.Writer) *Bell {
	return &Bell{w: w}
}

// Play implements sacore.AudioNotifier. Write errors are ignored.
func (b *Bell) Play(s sacore.Sound) {
	n := bellCount[s]
	if n == 0 || b.w == nil {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	//nolint:errcheck // fire-and-forget
	io.WriteString(b.w, strings.Repeat("\a", n))
}

var _ sacore.AudioNotifier = (*Bell)(nil)
