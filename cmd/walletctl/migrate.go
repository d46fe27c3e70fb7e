package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(migrateCmd)
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending schema migrations",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		db, log, err := openStore(cmd.Context())
		if err != nil {
			return err
		}
		defer db.Close()

		if err = db.Migrate(); err != nil {
			return err
		}

		log.Info().Str("dialect", string(db.Dialect())).Msg("migrations applied")
		fmt.Fprintln(cmd.OutOrStdout(), "migrations applied")
		return nil
	},
}
