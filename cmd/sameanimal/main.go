// sameanimal is a memory tile-matching game for the terminal: flip two
// tiles, match the animals, clear every stage before the clock runs out.
//
// Usage:
//
//	sameanimal list              - List game variants
//	sameanimal play [variant]    - Play a variant (default: sameanimal)
//	sameanimal menu              - Pick a variant interactively
//	sameanimal serve             - Start SSH server for remote play
//	sameanimal scores <variant>  - Show high scores and recent runs
//	sameanimal stages            - Show the stage table
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 30)
//	--seed <value>        - Set RNG seed for reproducible shuffles
//	--db <path>           - Set database path (default: ~/.sameanimal/scores.db)
//	--config <path>       - Custom game config YAML
//	--difficulty <preset> - easy, normal or hard
//	--sprites <path>      - Custom sprite sheet YAML
//	--log-level <level>   - debug, info, warn or error
//	--log-file <path>     - Write logs to a file
//
// SAMEANIMAL_DB, SAMEANIMAL_CONFIG, SAMEANIMAL_LOG_LEVEL and
// SAMEANIMAL_SSH_ADDR (also read from .env) set defaults for the
// matching flags.
package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/same-animal/internal/config"
	"github.com/vovakirdan/same-animal/internal/core"
	"github.com/vovakirdan/same-animal/internal/registry"
	"github.com/vovakirdan/same-animal/internal/storage"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagSprites    string
	flagLogLevel   string
	flagLogFile    string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "sameanimal",
	Short: "Same Animal - a memory matching game for your terminal",
	Long: `Same Animal hides pairs of animals under face-down tiles.
Each stage shows the tiles briefly, then turns them over: flip two at a
time and match every pair before the timer runs out. Stages grow from
2 to 10 pairs; failing a stage sends you back to stage 1.

Available commands:
  list     - Show the game variants
  play     - Play a variant directly
  menu     - Interactive variant picker
  serve    - Start SSH server for remote play
  scores   - View high scores and recent runs
  stages   - Show the stage table

Examples:
  sameanimal play
  sameanimal play sameanimal_relaxed
  sameanimal play --difficulty hard
  sameanimal menu
  sameanimal serve --ssh :2222
  sameanimal scores sameanimal`,
	PersistentPreRunE: applyEnv,
	SilenceUsage:      true,
}

func init() {
	// Global persistent flags
	pf := rootCmd.PersistentFlags()
	pf.IntVar(&flagFPS, "fps", 30, "Tick rate (frames per second)")
	pf.Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	pf.StringVar(&flagDBPath, "db", "~/.sameanimal/scores.db", "Path to scores database")
	pf.StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	pf.StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")
	pf.StringVar(&flagSprites, "sprites", "", "Path to custom sprite sheet YAML")
	pf.StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	pf.StringVar(&flagLogFile, "log-file", "", "Write logs to this file")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(stagesCmd)
}

// applyEnv fills flags the user did not set from the environment and .env.
func applyEnv(cmd *cobra.Command, _ []string) error {
	env, err := config.LoadEnv()
	if err != nil {
		return fmt.Errorf("cannot load .env: %w", err)
	}

	flags := cmd.Flags()
	if !flags.Changed("db") {
		flagDBPath = config.Or(env.DB, flagDBPath)
	}
	if !flags.Changed("config") {
		flagConfig = config.Or(env.Config, flagConfig)
	}
	if !flags.Changed("log-level") {
		flagLogLevel = config.Or(env.LogLevel, flagLogLevel)
	}
	if flags.Lookup("ssh") != nil && !flags.Changed("ssh") {
		flagSSHAddr = config.Or(env.SSHAddr, flagSSHAddr)
	}
	return nil
}

// newLogger builds the logger for a command. The terminal belongs to the
// game while it runs, so interactive commands log to --log-file or
// nowhere; the server logs to stderr.
func newLogger(interactive bool) (logger *log.Logger, closeFn func(), err error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid --log-level: %w", err)
	}

	var w io.Writer = os.Stderr
	closeFn = func() {}
	switch {
	case flagLogFile != "":
		f, openErr := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if openErr != nil {
			return nil, nil, fmt.Errorf("cannot open log file: %w", openErr)
		}
		w = f
		closeFn = func() { f.Close() }
	case interactive:
		w = io.Discard
	}

	logger = log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "sameanimal",
		Level:           level,
	})
	return logger, closeFn, nil
}

// loadGameConfig reads the game config and applies --difficulty.
func loadGameConfig() (*config.SameAnimalConfig, error) {
	preset, err := config.ParsePreset(flagDifficulty)
	if err != nil {
		return nil, err
	}
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, err
	}
	config.ApplyPreset(&cfg, preset)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// openStore opens the scores database. Failure is logged and the game
// runs without persistence.
func openStore(logger *log.Logger) *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open scores database", "path", flagDBPath, "error", err)
		return nil
	}
	return store
}

// gameOptions bundles the services every game instance gets.
func gameOptions(cfg *config.SameAnimalConfig, store *storage.Store, logger *log.Logger) registry.Options {
	opts := registry.Options{
		Config:      cfg,
		SpritesPath: flagSprites,
		Logger:      logger,
	}
	// Keep Recorder a nil interface when there is no store.
	if store != nil {
		opts.Recorder = store
	}
	return opts
}

// runtimeConfig sizes the game to the current terminal.
func runtimeConfig() core.RuntimeConfig {
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width, height = w, h
	}
	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     seed,
	}
}
