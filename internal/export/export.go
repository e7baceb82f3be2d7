// Package export writes landscape rollups to spreadsheet workbooks.
package export

import (
	"io"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"

	"github.com/sells-group/practice-dashboard/internal/rollup"
)

// Sheet names in workbook order.
const (
	SheetSummary     = "Summary"
	SheetBySource    = "By Source"
	SheetByCategory  = "By Category"
	SheetByStatus    = "By Status"
	SheetCompounding = "Compounding"
	SheetDisciplines = "Disciplines"
)

// Workbook lays out a landscape as one sheet per rollup.
func Workbook(l rollup.Landscape) (*xlsx.File, error) {
	f := xlsx.NewFile()

	summary, err := f.AddSheet(SheetSummary)
	if err != nil {
		return nil, eris.Wrap(err, "export: add summary sheet")
	}
	addStrings(summary, "Status", "Count", "Amount", "Count %", "Amount %")
	for _, sh := range l.Summary.Shares {
		row := summary.AddRow()
		row.AddCell().SetString(string(sh.Status))
		row.AddCell().SetInt(sh.Count)
		row.AddCell().SetFloat(sh.Amount)
		row.AddCell().SetFloat(sh.CountPercent)
		row.AddCell().SetFloat(sh.AmountPercent)
	}
	total := summary.AddRow()
	total.AddCell().SetString("Total")
	total.AddCell().SetInt(l.Summary.TotalCount)
	total.AddCell().SetFloat(l.TotalInvestment)

	for _, s := range []struct {
		name   string
		header string
		totals []rollup.Total
	}{
		{SheetBySource, "Source", l.BySource},
		{SheetByCategory, "Category", l.ByCategory},
		{SheetByStatus, "Status", l.ByStatus},
	} {
		sheet, err := f.AddSheet(s.name)
		if err != nil {
			return nil, eris.Wrapf(err, "export: add %s sheet", s.name)
		}
		addStrings(sheet, s.header, "Count", "Amount")
		for _, t := range s.totals {
			row := sheet.AddRow()
			row.AddCell().SetString(t.Label)
			row.AddCell().SetInt(t.Count)
			row.AddCell().SetFloat(t.Amount)
		}
	}

	comp, err := f.AddSheet(SheetCompounding)
	if err != nil {
		return nil, eris.Wrap(err, "export: add compounding sheet")
	}
	addStrings(comp, "Source", "Compounding", "Not Compounding", "Too Early", "Total")
	for _, c := range l.Compounding {
		row := comp.AddRow()
		row.AddCell().SetString(c.Source)
		row.AddCell().SetFloat(c.Compounding)
		row.AddCell().SetFloat(c.NotCompounding)
		row.AddCell().SetFloat(c.TooEarly)
		row.AddCell().SetFloat(c.Total)
	}

	disc, err := f.AddSheet(SheetDisciplines)
	if err != nil {
		return nil, eris.Wrap(err, "export: add disciplines sheet")
	}
	addStrings(disc, "Discipline", "Practitioners", "At Risk", "Investment", "Investment %", "Practitioner %", "At Risk %")
	for _, d := range l.Disciplines {
		row := disc.AddRow()
		row.AddCell().SetString(string(d.Discipline))
		row.AddCell().SetInt(d.Practitioners)
		row.AddCell().SetInt(d.AtRisk)
		row.AddCell().SetFloat(d.Investment)
		row.AddCell().SetFloat(d.InvestmentPercent)
		row.AddCell().SetFloat(d.PractitionerPercent)
		row.AddCell().SetFloat(d.AtRiskPercent)
	}

	return f, nil
}

// WriteLandscape saves the landscape workbook to path.
func WriteLandscape(path string, l rollup.Landscape) error {
	f, err := Workbook(l)
	if err != nil {
		return err
	}
	if err := f.Save(path); err != nil {
		return eris.Wrapf(err, "export: save %s", path)
	}
	return nil
}

// Write streams the landscape workbook to w.
func Write(w io.Writer, l rollup.Landscape) error {
	f, err := Workbook(l)
	if err != nil {
		return err
	}
	if err := f.Write(w); err != nil {
		return eris.Wrap(err, "export: write workbook")
	}
	return nil
}

func addStrings(sheet *xlsx.Sheet, values ...string) {
	row := sheet.AddRow()
	for _, v := range values {
		row.AddCell().SetString(v)
	}
}
