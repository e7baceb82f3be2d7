package main

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/practice-dashboard/internal/dashboard"
	"github.com/sells-group/practice-dashboard/internal/export"
	"github.com/sells-group/practice-dashboard/internal/format"
	"github.com/sells-group/practice-dashboard/internal/rollup"
)

var landscapeXLSX string

var landscapeCmd = &cobra.Command{
	Use:   "landscape",
	Short: "Summarize funding by source, category, status, and discipline",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		svc, st, err := openService(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck

		view, err := svc.Landscape(ctx)
		if err != nil {
			return err
		}

		if landscapeXLSX != "" {
			if err := export.WriteLandscape(landscapeXLSX, view.Landscape); err != nil {
				return err
			}
			zap.L().Info("landscape exported", zap.String("path", landscapeXLSX))
		}

		if jsonOutput {
			return printJSON(os.Stdout, view)
		}
		formatLandscape(os.Stdout, view)
		return nil
	},
}

func formatLandscape(out io.Writer, view dashboard.LandscapeView) {
	_, _ = fmt.Fprintf(out, "Total investment: %s\n\n", format.Dollars(view.TotalInvestment))

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	writeTotals := func(title string, totals []rollup.Total) {
		_, _ = fmt.Fprintf(w, "%s\tCOUNT\tAMOUNT\tSHARE\n", title)
		for _, t := range totals {
			_, _ = fmt.Fprintf(w, "%s\t%d\t%s\t%.1f%%\n",
				truncate(t.Label, 40),
				t.Count,
				format.Dollars(t.Amount),
				format.Percent(t.Amount, view.TotalInvestment),
			)
		}
		_, _ = fmt.Fprintln(w, "\t\t\t")
	}
	writeTotals("SOURCE", view.BySource)
	writeTotals("CATEGORY", view.ByCategory)
	writeTotals("STATUS", view.ByStatus)

	_, _ = fmt.Fprintln(w, "COMPOUNDING\tCOUNT\tAMOUNT\tSHARE")
	for _, sh := range view.Summary.Shares {
		_, _ = fmt.Fprintf(w, "%s\t%d\t%s\t%.1f%%\n", sh.Status, sh.Count, format.Dollars(sh.Amount), sh.AmountPercent)
	}
	_, _ = fmt.Fprintln(w, "\t\t\t")

	if len(view.Disciplines) > 0 {
		_, _ = fmt.Fprintln(w, "DISCIPLINE\tPRACTITIONERS\tAT RISK\tINVESTMENT")
		for _, d := range view.Disciplines {
			_, _ = fmt.Fprintf(w, "%s\t%d\t%d\t%s\n", d.Discipline, d.Practitioners, d.AtRisk, format.CompactDollars(d.Investment))
		}
		_, _ = fmt.Fprintln(w, "\t\t\t")
	}

	if len(view.MostConnected) > 0 {
		_, _ = fmt.Fprintln(w, "MOST CONNECTED\tCONNECTIONS\t\t")
		for _, oc := range view.MostConnected {
			_, _ = fmt.Fprintf(w, "%s\t%d\t\t\n", truncate(oc.Organization.Name, 40), oc.Connections)
		}
	}
	_ = w.Flush()
}

func init() {
	landscapeCmd.Flags().StringVar(&landscapeXLSX, "xlsx", "", "also write the landscape to this .xlsx workbook")
	rootCmd.AddCommand(landscapeCmd)
}
