package main

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/sells-group/practice-dashboard/internal/model"
)

var attentionCmd = &cobra.Command{
	Use:   "attention",
	Short: "Show the ranked attention queue",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		svc, st, err := openService(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck

		items, err := svc.Attention(ctx)
		if err != nil {
			return err
		}
		if jsonOutput {
			return printJSON(os.Stdout, items)
		}
		if len(items) == 0 {
			fmt.Fprintln(os.Stderr, "Nothing needs attention.")
			return nil
		}
		formatAttention(os.Stdout, items)
		return nil
	},
}

func formatAttention(out io.Writer, items []model.AttentionItem) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "RANK\tKIND\tTITLE\tBADGE\tACTION\tPATH")
	_, _ = fmt.Fprintln(w, "----\t----\t-----\t-----\t------\t----")
	for _, it := range items {
		_, _ = fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\n",
			it.UrgencyRank,
			it.Kind,
			truncate(it.Title, 40),
			it.Badge,
			it.ActionText,
			it.TargetPath,
		)
	}
	_ = w.Flush()
}

// truncate shortens s to n runes with a trailing ellipsis.
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

func init() {
	rootCmd.AddCommand(attentionCmd)
}
