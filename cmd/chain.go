package main

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/sells-group/practice-dashboard/internal/chain"
	"github.com/sells-group/practice-dashboard/internal/format"
)

var chainCmd = &cobra.Command{
	Use:   "chain <investment-id>",
	Short: "Show the builds-on / led-to chain around an investment",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		svc, st, err := openService(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck

		c, err := svc.Chain(ctx, args[0])
		if err != nil {
			return err
		}
		if jsonOutput {
			return printJSON(os.Stdout, c)
		}
		if !c.HasConnections() {
			fmt.Fprintln(os.Stderr, "Investment has no chain connections.")
			return nil
		}
		formatChain(os.Stdout, c)
		return nil
	},
}

func formatChain(out io.Writer, c chain.Chain) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "#\tROLE\tINITIATIVE\tSOURCE\tAMOUNT\tSTATUS")
	_, _ = fmt.Fprintln(w, "-\t----\t----------\t------\t------\t------")
	for i, l := range c.Links {
		inv := l.Investment
		_, _ = fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\n",
			i+1,
			l.Role,
			truncate(inv.InitiativeName, 40),
			truncate(inv.SourceName, 30),
			format.Currency(inv.Amount),
			inv.CompoundingStatus,
		)
	}
	_ = w.Flush()
	if c.CycleDetected {
		_, _ = fmt.Fprintln(out, "warning: chain data contains a cycle; traversal was cut short")
	}
}

func init() {
	rootCmd.AddCommand(chainCmd)
}
