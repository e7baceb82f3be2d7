package main

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/practice-dashboard/internal/seed"
	"github.com/sells-group/practice-dashboard/internal/store"
)

var importFile string

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Load records from a YAML seed file",
	Long:  "Upserts every record in the seed file into the configured ecosystem. Records without an id get a generated one.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		f, err := seed.ReadFile(importFile)
		if err != nil {
			return err
		}

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck
		if err := st.Migrate(ctx); err != nil {
			return err
		}

		// An explicit --ecosystem beats the file; the file beats config.
		eco := ecosystemID
		if eco == "" && f.EcosystemID == "" {
			eco = cfg.Dashboard.EcosystemID
		}

		written, err := seed.Apply(ctx, st, eco, f)
		if err != nil {
			return eris.Wrap(err, "import seed")
		}

		zap.L().Info("import complete", zap.String("file", importFile))
		formatImportSummary(os.Stdout, written)
		return nil
	},
}

func formatImportSummary(out io.Writer, written map[store.Kind]int64) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "KIND\tRECORDS")
	_, _ = fmt.Fprintln(w, "----\t-------")
	var total int64
	for _, kind := range store.Kinds {
		n, ok := written[kind]
		if !ok {
			continue
		}
		total += n
		_, _ = fmt.Fprintf(w, "%s\t%d\n", kind, n)
	}
	_, _ = fmt.Fprintf(w, "total\t%d\n", total)
	_ = w.Flush()
}

func init() {
	importCmd.Flags().StringVar(&importFile, "file", "", "path to YAML seed file (required)")
	_ = importCmd.MarkFlagRequired("file")
	rootCmd.AddCommand(importCmd)
}
