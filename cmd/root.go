package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/zonescout/zonescout/internal/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "zonescout",
	Short: "Zone-restricted lead scouting pipeline",
	Long:  "Resolves a zone (postal code or map screenshot) to a bounding box, finds businesses inside it, verifies each against acceptance criteria with an LLM, and reports approved leads.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
