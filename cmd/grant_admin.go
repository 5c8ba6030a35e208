package cmd

import (
	"errors"
	"fmt"

	"github.com/cl1024ex/Software-Engineering-1-Assignment/config"
	"github.com/cl1024ex/Software-Engineering-1-Assignment/services"
	"github.com/go-extras/cobraflags"
	"github.com/spf13/cobra"
)

const emailFlag = "email"

var grantAdminFlags = map[string]cobraflags.Flag{
	emailFlag: &cobraflags.StringFlag{
		Name:  emailFlag,
		Value: "",
		Usage: "Email of the registered user to make an admin (required)",
	},
}

func newGrantAdminCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "grant-admin",
		Short: "Make a registered user an admin",
		Long: `Make a registered user an admin without going through the web UI.

Use this to create the first admin after registering an account:
  attractions grant-admin --email you@example.com`,
		RunE: runGrantAdmin,
	}
	cobraflags.RegisterMap(cmd, grantAdminFlags)
	return cmd
}

func runGrantAdmin(cmd *cobra.Command, _ []string) error {
	email := grantAdminFlags[emailFlag].GetString()
	if email == "" {
		return errors.New("--email is required")
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if cfg.Store != config.StorePostgres {
		return errors.New("grant-admin needs STORE=postgres; the memory store does not outlive the process")
	}

	ctx := cmd.Context()
	st, err := config.OpenStore(ctx, cfg, false)
	if err != nil {
		return err
	}
	locker, closeLocker, err := config.NewLocker(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeLocker()

	user, err := services.New(st, locker).Admin.Grant(ctx, email)
	if msg, ok := services.UserMessage(err); ok {
		return errors.New(msg)
	}
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s is now an admin\n", user.FirstName)
	return nil
}
