package main

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/sells-group/practice-dashboard/internal/format"
	"github.com/sells-group/practice-dashboard/internal/model"
	"github.com/sells-group/practice-dashboard/internal/urgency"
)

var timelineCmd = &cobra.Command{
	Use:   "timeline",
	Short: "Group open decisions by how soon they lock",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		svc, st, err := openService(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck

		groups, err := svc.Timeline(ctx)
		if err != nil {
			return err
		}
		if jsonOutput {
			return printJSON(os.Stdout, groups)
		}
		formatGroups(os.Stdout, groups, func(d model.Decision) (string, *time.Time) {
			return d.Title, d.LocksDate
		})
		return nil
	},
}

var opportunitiesCmd = &cobra.Command{
	Use:   "opportunities",
	Short: "Group open calls and grant rounds by deadline",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		svc, st, err := openService(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck

		groups, err := svc.Opportunities(ctx)
		if err != nil {
			return err
		}
		if jsonOutput {
			return printJSON(os.Stdout, groups)
		}
		formatGroups(os.Stdout, groups, func(op model.Opportunity) (string, *time.Time) {
			return op.Title, op.Deadline
		})
		return nil
	},
}

// formatGroups prints one block per urgency bucket.
func formatGroups[T any](out io.Writer, groups []urgency.Group[T], describe func(T) (string, *time.Time)) {
	if len(groups) == 0 {
		fmt.Fprintln(os.Stderr, "Nothing scheduled.")
		return
	}
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	for _, g := range groups {
		_, _ = fmt.Fprintf(w, "%s (%d)\t\t\t\n", g.Bucket, len(g.Items))
		for _, d := range g.Items {
			title, date := describe(d.Item)
			_, _ = fmt.Fprintf(w, "  %s\t%s\t%s\t%s\n", truncate(title, 40), format.Date(date), d.Label, d.Tier)
		}
	}
	_ = w.Flush()
}

func init() {
	rootCmd.AddCommand(timelineCmd)
	rootCmd.AddCommand(opportunitiesCmd)
}
