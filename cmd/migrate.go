package cmd

import (
	"errors"

	"github.com/cl1024ex/Software-Engineering-1-Assignment/config"
	"github.com/spf13/cobra"
)

func newMigrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database tables",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if cfg.Store != config.StorePostgres {
				return errors.New("migrate needs STORE=postgres")
			}
			_, err = config.OpenStore(cmd.Context(), cfg, true)
			return err
		},
	}
}
