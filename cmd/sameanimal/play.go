package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/same-animal/internal/games/sameanimal"
	"github.com/vovakirdan/same-animal/internal/platform/tui"
	"github.com/vovakirdan/same-animal/internal/registry"
)

var flagMute bool

var playCmd = &cobra.Command{
	Use:   "play [variant]",
	Short: "Play Same Animal",
	Long: `Start playing the given variant (default: sameanimal).

Variants:
  sameanimal          - Timed: clear each stage before the clock runs out
  sameanimal_relaxed  - No clock; play the stages at your own pace

Controls:
  Mouse click        - Flip a tile / press a button
  Arrows/WASD/HJKL   - Move the tile cursor
  Space              - Flip the tile under the cursor
  Enter              - START / NEXT STAGE
  M                  - Toggle sound
  P/Esc              - Pause
  R                  - New run (after game over)
  Ctrl+S             - Save a screenshot
  Q/Ctrl+C           - Quit

Difficulty options:
  easy   - 45 second rounds, 3 second preview
  normal - 30 second rounds, 2 second preview
  hard   - 20 second rounds, 1 second preview, flipped tiles stay up

Examples:
  sameanimal play
  sameanimal play sameanimal_relaxed
  sameanimal play --difficulty easy
  sameanimal play --config ./my-stages.yaml --seed 42`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func init() {
	playCmd.Flags().BoolVar(&flagMute, "mute", false, "Disable the terminal bell")
}

func runPlay(_ *cobra.Command, args []string) error {
	gameID := sameanimal.IDTimed
	if len(args) == 1 {
		gameID = args[0]
	}

	if !registry.Exists(gameID) {
		return fmt.Errorf("unknown variant %q; run 'sameanimal list' to see them", gameID)
	}

	logger, closeLog, err := newLogger(true)
	if err != nil {
		return err
	}
	defer closeLog()

	cfg, err := loadGameConfig()
	if err != nil {
		return err
	}

	store := openStore(logger)
	if store != nil {
		defer store.Close()
	}

	opts := gameOptions(cfg, store, logger)
	if !flagMute {
		opts.Audio = tui.NewBell(os.Stdout)
	}

	game, err := registry.Create(gameID, opts)
	if err != nil {
		return fmt.Errorf("cannot create game: %w", err)
	}

	logger.Info("starting game", "variant", gameID, "difficulty", flagDifficulty)
	if _, err := tui.Run(game, runtimeConfig(), false); err != nil {
		return fmt.Errorf("error running game: %w", err)
	}
	return nil
}
