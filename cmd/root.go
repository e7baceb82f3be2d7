package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/practice-dashboard/internal/config"
)

var cfg *config.Config

var (
	jsonOutput  bool
	ecosystemID string
)

var rootCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Cultural investment practice dashboard",
	Long:  "Links organizations, investments, decisions, opportunities, and precedents for one arts ecosystem, and surfaces what needs attention.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c
		if ecosystemID != "" {
			cfg.Dashboard.EcosystemID = ecosystemID
		}

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "print raw JSON instead of a table")
	rootCmd.PersistentFlags().StringVar(&ecosystemID, "ecosystem", "", "ecosystem id (default from config)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
