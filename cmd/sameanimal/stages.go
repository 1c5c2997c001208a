package main

import (
	"fmt"

	"github.com/spf13/cobra"

	sacore "github.com/vovakirdan/same-animal/internal/games/sameanimal/core"
)

var stagesCmd = &cobra.Command{
	Use:   "stages",
	Short: "Show the stage table",
	Long: `Print every stage with its tile count, pair count and grid size, after
--config and --difficulty are applied.

Examples:
  sameanimal stages
  sameanimal stages --difficulty hard
  sameanimal stages --config ./my-stages.yaml`,
	Args: cobra.NoArgs,
	RunE: runStages,
}

func runStages(_ *cobra.Command, _ []string) error {
	cfg, err := loadGameConfig()
	if err != nil {
		return err
	}

	table := sacore.StageTable(cfg.Stages)
	fmt.Printf("%d stages, %d animals, %ds rounds, %.1fs preview\n",
		table.MaxStages(), len(cfg.Kinds), cfg.Timing.RoundSeconds, cfg.Timing.Preview().Seconds())
	fmt.Println()

	fmt.Printf("  %-5s  %-5s  %-5s  %s\n", "Stage", "Tiles", "Pairs", "Grid")
	fmt.Printf("  %-5s  %-5s  %-5s  %s\n", "-----", "-----", "-----", "----")
	for i := 1; i <= table.MaxStages(); i++ {
		def, stageErr := table.Stage(i)
		if stageErr != nil {
			return stageErr
		}
		rows, cols := sacore.GridFor(def.Tiles)
		fmt.Printf("  %-5d  %-5d  %-5d  %dx%d\n", def.Index, def.Tiles, def.Pairs(), rows, cols)
	}
	return nil
}
