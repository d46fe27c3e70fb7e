package main

import (
	"fmt"
	"io"
	"slices"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/MKhiriev/invisible-wallet/internal/store"
	"github.com/MKhiriev/invisible-wallet/models"
	"github.com/spf13/cobra"
)

var auditLimit uint64

func init() {
	auditCmd.Flags().Uint64VarP(&auditLimit, "limit", "n", 50, "maximum number of entries, newest first")
	rootCmd.AddCommand(auditCmd)
}

var auditCmd = &cobra.Command{
	Use:   "audit <wallet-id>",
	Short: "Print the audit trail of a wallet",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		db, log, err := openStore(cmd.Context())
		if err != nil {
			return err
		}
		defer db.Close()

		entries, err := store.NewAuditRepository(db, log).ListAuditLogs(cmd.Context(), args[0], auditLimit)
		if err != nil {
			return err
		}

		return printAuditEntries(cmd.OutOrStdout(), entries)
	},
}

func printAuditEntries(out io.Writer, entries []models.AuditLogEntry) error {
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "TIME\tOPERATION\tPLATFORM\tNETWORK\tSUCCESS\tERROR\tMETADATA")
	for _, e := range entries {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%t\t%s\t%s\n",
			e.Timestamp.UTC().Format(time.RFC3339),
			e.Operation,
			e.PlatformID,
			e.Network,
			e.Success,
			dash(e.Error),
			dash(formatMetadata(e.Metadata)),
		)
	}
	return tw.Flush()
}

func formatMetadata(metadata map[string]string) string {
	if len(metadata) == 0 {
		return ""
	}
	pairs := make([]string, 0, len(metadata))
	for k, v := range metadata {
		pairs = append(pairs, k+"="+v)
	}
	slices.Sort(pairs)
	return strings.Join(pairs, ",")
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
