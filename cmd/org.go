package main

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/sells-group/practice-dashboard/internal/dashboard"
	"github.com/sells-group/practice-dashboard/internal/format"
	"github.com/sells-group/practice-dashboard/internal/index"
)

var orgCmd = &cobra.Command{
	Use:   "org [organization-id]",
	Short: "List organizations, or show everything linked to one",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		svc, st, err := openService(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck

		if len(args) == 0 {
			orgs, err := svc.Organizations(ctx)
			if err != nil {
				return err
			}
			if jsonOutput {
				return printJSON(os.Stdout, orgs)
			}
			formatOrgList(os.Stdout, orgs)
			return nil
		}

		view, err := svc.Organization(ctx, args[0])
		if err != nil {
			return err
		}
		if jsonOutput {
			return printJSON(os.Stdout, view)
		}
		formatOrg(os.Stdout, view)
		return nil
	},
}

func formatOrgList(out io.Writer, orgs []index.OrgConnections) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "ID\tNAME\tCATEGORY\tCONNECTIONS")
	_, _ = fmt.Fprintln(w, "--\t----\t--------\t-----------")
	for _, oc := range orgs {
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%d\n",
			oc.Organization.ID,
			truncate(oc.Organization.Name, 40),
			oc.Organization.Category,
			oc.Connections,
		)
	}
	_ = w.Flush()
}

func formatOrg(out io.Writer, v dashboard.OrganizationView) {
	_, _ = fmt.Fprintf(out, "%s\n", v.Organization.Name)
	if v.Organization.Website != "" {
		_, _ = fmt.Fprintf(out, "%s\n", v.Organization.Website)
	}
	_, _ = fmt.Fprintf(out, "Connections: %d  Funding: %s across %d investments\n\n",
		v.Connections, format.Dollars(v.Funding.Amount), v.Funding.Count)

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	if len(v.Investments) > 0 {
		_, _ = fmt.Fprintln(w, "INVESTMENT\tAMOUNT\tSTATUS\tCOMPOUNDING")
		for _, inv := range v.Investments {
			_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
				truncate(inv.InitiativeName, 40), format.Currency(inv.Amount), inv.Status, inv.CompoundingStatus)
		}
		_, _ = fmt.Fprintln(w, "\t\t\t")
	}
	if len(v.Decisions) > 0 {
		_, _ = fmt.Fprintln(w, "DECISION\tLOCKS\tSTATUS\t")
		for _, d := range v.Decisions {
			_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t\n", truncate(d.Title, 40), format.Date(d.LocksDate), d.Status)
		}
		_, _ = fmt.Fprintln(w, "\t\t\t")
	}
	if len(v.Opportunities) > 0 {
		_, _ = fmt.Fprintln(w, "OPPORTUNITY\tDEADLINE\tSTATUS\t")
		for _, op := range v.Opportunities {
			_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t\n", truncate(op.Title, 40), format.Date(op.Deadline), op.Status)
		}
		_, _ = fmt.Fprintln(w, "\t\t\t")
	}
	if len(v.Precedents) > 0 {
		_, _ = fmt.Fprintln(w, "PRECEDENT\tPERIOD\t\t")
		for _, p := range v.Precedents {
			_, _ = fmt.Fprintf(w, "%s\t%s\t\t\n", truncate(p.Name, 40), p.Period)
		}
	}
	_ = w.Flush()
}

func init() {
	rootCmd.AddCommand(orgCmd)
}
