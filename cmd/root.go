// Package cmd holds the attractions command line.
package cmd

import (
	"fmt"
	"os"

	"github.com/cl1024ex/Software-Engineering-1-Assignment/config"
	"github.com/cl1024ex/Software-Engineering-1-Assignment/utils"
	"github.com/spf13/cobra"
)

func NewRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "attractions",
		Short:         "Community attraction directory with moderated submissions",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runServe,
	}
	root.AddCommand(newServeCommand())
	root.AddCommand(newMigrateCommand())
	root.AddCommand(newGrantAdminCommand())
	return root
}

// Execute runs the command line and exits non-zero on failure.
func Execute() {
	if err := NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// loadConfig reads the configuration and sets up logging from it.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	utils.InitLogger(cfg.Env, cfg.LogLevel)
	return cfg, nil
}
