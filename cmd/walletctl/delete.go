package main

import (
	"fmt"

	"github.com/MKhiriev/invisible-wallet/internal/store"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(deleteCmd)
}

// deleteCmd removes a wallet record. Its audit trail is kept.
var deleteCmd = &cobra.Command{
	Use:   "delete <wallet-id>",
	Short: "Delete a custodial wallet",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		db, log, err := openStore(cmd.Context())
		if err != nil {
			return err
		}
		defer db.Close()

		if err = store.NewWalletRepository(db, log).DeleteWallet(cmd.Context(), args[0]); err != nil {
			return err
		}

		log.Warn().Str("wallet_id", args[0]).Msg("wallet deleted")
		fmt.Fprintf(cmd.OutOrStdout(), "wallet %s deleted\n", args[0])
		return nil
	},
}
