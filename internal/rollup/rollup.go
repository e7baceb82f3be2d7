// Package rollup computes grouped sums and ratios over investments and
// practitioners for landscape summaries. Absent amounts count as zero and
// every ratio guards a zero denominator.
package rollup

import (
	"cmp"
	"slices"
	"strings"

	"github.com/sells-group/practice-dashboard/internal/format"
	"github.com/sells-group/practice-dashboard/internal/model"
)

// Fallback labels for records missing a grouping key.
const (
	UnattributedLabel  = "Unattributed"
	UncategorizedLabel = "uncategorized"
)

// Total is one labelled sum.
type Total struct {
	Label  string  `json:"label"`
	Amount float64 `json:"amount"`
	Count  int     `json:"count"`
}

// sumBy groups investments by key, preserving first-seen order for the
// stable tie-break, then sorts descending by amount.
func sumBy(investments []model.Investment, key func(model.Investment) string) []Total {
	pos := make(map[string]int)
	var out []Total
	for _, inv := range investments {
		k := key(inv)
		i, ok := pos[k]
		if !ok {
			i = len(out)
			pos[k] = i
			out = append(out, Total{Label: k})
		}
		out[i].Amount += inv.AmountOrZero()
		out[i].Count++
	}
	slices.SortStableFunc(out, func(a, b Total) int { return cmp.Compare(b.Amount, a.Amount) })
	return out
}

func sourceLabel(inv model.Investment) string {
	if s := strings.TrimSpace(inv.SourceName); s != "" {
		return s
	}
	return UnattributedLabel
}

// BySource sums investment amounts by source name, falling back to
// UnattributedLabel, largest first.
func BySource(investments []model.Investment) []Total {
	return sumBy(investments, sourceLabel)
}

// ByCategory sums investment amounts by category, falling back to
// UncategorizedLabel, largest first.
func ByCategory(investments []model.Investment) []Total {
	return sumBy(investments, func(inv model.Investment) string {
		if inv.Category == "" {
			return UncategorizedLabel
		}
		return string(inv.Category)
	})
}

// ByStatus sums investment amounts by lifecycle status.
func ByStatus(investments []model.Investment) []Total {
	return sumBy(investments, func(inv model.Investment) string {
		if inv.Status == "" {
			return "unknown"
		}
		return string(inv.Status)
	})
}

// CompoundingBreakdown splits one source's total by compounding status.
// Investments with unknown or missing status only count toward Total.
type CompoundingBreakdown struct {
	Source         string  `json:"source"`
	Compounding    float64 `json:"compounding"`
	NotCompounding float64 `json:"not_compounding"`
	TooEarly       float64 `json:"too_early"`
	Total          float64 `json:"total"`
}

// CompoundingBySource groups investments by source name and partitions each
// group by compounding status, largest total first.
func CompoundingBySource(investments []model.Investment) []CompoundingBreakdown {
	pos := make(map[string]int)
	var out []CompoundingBreakdown
	for _, inv := range investments {
		src := sourceLabel(inv)
		i, ok := pos[src]
		if !ok {
			i = len(out)
			pos[src] = i
			out = append(out, CompoundingBreakdown{Source: src})
		}
		a := inv.AmountOrZero()
		switch inv.CompoundingStatus {
		case model.Compounding:
			out[i].Compounding += a
		case model.NotCompounding:
			out[i].NotCompounding += a
		case model.TooEarly:
			out[i].TooEarly += a
		}
		out[i].Total += a
	}
	slices.SortStableFunc(out, func(a, b CompoundingBreakdown) int { return cmp.Compare(b.Total, a.Total) })
	return out
}

// StatusShare is the count, amount, and percentage share of one
// compounding status.
type StatusShare struct {
	Status        model.CompoundingStatus `json:"status"`
	Count         int                     `json:"count"`
	Amount        float64                 `json:"amount"`
	CountPercent  float64                 `json:"count_percent"`
	AmountPercent float64                 `json:"amount_percent"`
}

// CompoundingSummary is the portfolio-wide compounding picture.
type CompoundingSummary struct {
	TotalCount  int           `json:"total_count"`
	TotalAmount float64       `json:"total_amount"`
	Shares      []StatusShare `json:"shares"`
}

// Share returns the entry for status.
func (s CompoundingSummary) Share(status model.CompoundingStatus) StatusShare {
	for _, sh := range s.Shares {
		if sh.Status == status {
			return sh
		}
	}
	return StatusShare{Status: status}
}

var summaryStatuses = []model.CompoundingStatus{
	model.Compounding, model.NotCompounding, model.TooEarly, model.UnknownStatus,
}

// Summarize computes compounding shares across all investments. A missing
// or unrecognised status counts as unknown. Empty input yields zero
// percentages.
func Summarize(investments []model.Investment) CompoundingSummary {
	counts := make(map[model.CompoundingStatus]int)
	amounts := make(map[model.CompoundingStatus]float64)
	var s CompoundingSummary
	for _, inv := range investments {
		st := inv.CompoundingStatus
		if !slices.Contains(summaryStatuses, st) {
			st = model.UnknownStatus
		}
		counts[st]++
		amounts[st] += inv.AmountOrZero()
		s.TotalCount++
		s.TotalAmount += inv.AmountOrZero()
	}
	for _, st := range summaryStatuses {
		s.Shares = append(s.Shares, StatusShare{
			Status:        st,
			Count:         counts[st],
			Amount:        amounts[st],
			CountPercent:  format.Percent(float64(counts[st]), float64(s.TotalCount)),
			AmountPercent: format.Percent(amounts[st], s.TotalAmount),
		})
	}
	return s
}

// DisciplineCount tallies practitioners in one discipline.
type DisciplineCount struct {
	Discipline model.Discipline `json:"discipline"`
	Count      int              `json:"count"`
	AtRisk     int              `json:"at_risk"`
}

// PractitionersByDiscipline counts practitioners per discipline, largest
// first. Practitioners without a discipline are skipped.
func PractitionersByDiscipline(practitioners []model.Practitioner) []DisciplineCount {
	pos := make(map[model.Discipline]int)
	var out []DisciplineCount
	for _, p := range practitioners {
		if p.Discipline == "" {
			continue
		}
		i, ok := pos[p.Discipline]
		if !ok {
			i = len(out)
			pos[p.Discipline] = i
			out = append(out, DisciplineCount{Discipline: p.Discipline})
		}
		out[i].Count++
		if p.AtRisk {
			out[i].AtRisk++
		}
	}
	slices.SortStableFunc(out, func(a, b DisciplineCount) int { return cmp.Compare(b.Count, a.Count) })
	return out
}

// DisciplineFunding compares practitioner presence with investment in one
// discipline.
type DisciplineFunding struct {
	Discipline          model.Discipline `json:"discipline"`
	Practitioners       int              `json:"practitioners"`
	AtRisk              int              `json:"at_risk"`
	Investment          float64          `json:"investment"`
	InvestmentPercent   float64          `json:"investment_percent"`
	PractitionerPercent float64          `json:"practitioner_percent"`
	AtRiskPercent       float64          `json:"at_risk_percent"`
}

// ByDiscipline cross-tabulates practitioner and at-risk counts against
// investment totals mapped through the category→discipline table. Only
// disciplines with investment or practitioners appear, largest investment
// first; ties fall back to practitioner count.
func ByDiscipline(practitioners []model.Practitioner, investments []model.Investment) []DisciplineFunding {
	rows := make(map[model.Discipline]*DisciplineFunding)
	var order []model.Discipline
	row := func(d model.Discipline) *DisciplineFunding {
		r, ok := rows[d]
		if !ok {
			r = &DisciplineFunding{Discipline: d}
			rows[d] = r
			order = append(order, d)
		}
		return r
	}

	var totalInvestment float64
	for _, inv := range investments {
		d, ok := model.DisciplineFor(inv.Category)
		if !ok {
			continue
		}
		row(d).Investment += inv.AmountOrZero()
		totalInvestment += inv.AmountOrZero()
	}
	totalPractitioners := 0
	for _, p := range practitioners {
		if p.Discipline == "" {
			continue
		}
		r := row(p.Discipline)
		r.Practitioners++
		totalPractitioners++
		if p.AtRisk {
			r.AtRisk++
		}
	}

	var out []DisciplineFunding
	for _, d := range order {
		r := rows[d]
		if r.Investment == 0 && r.Practitioners == 0 {
			continue
		}
		r.InvestmentPercent = format.Percent(r.Investment, totalInvestment)
		r.PractitionerPercent = format.Percent(float64(r.Practitioners), float64(totalPractitioners))
		r.AtRiskPercent = format.Percent(float64(r.AtRisk), float64(r.Practitioners))
		out = append(out, *r)
	}
	slices.SortStableFunc(out, func(a, b DisciplineFunding) int {
		if c := cmp.Compare(b.Investment, a.Investment); c != 0 {
			return c
		}
		return cmp.Compare(b.Practitioners, a.Practitioners)
	})
	return out
}

// Landscape bundles every rollup for one snapshot.
type Landscape struct {
	TotalInvestment float64                `json:"total_investment"`
	BySource        []Total                `json:"by_source"`
	ByCategory      []Total                `json:"by_category"`
	ByStatus        []Total                `json:"by_status"`
	Compounding     []CompoundingBreakdown `json:"compounding_by_source"`
	Summary         CompoundingSummary     `json:"compounding_summary"`
	Practitioners   []DisciplineCount      `json:"practitioners_by_discipline"`
	Disciplines     []DisciplineFunding    `json:"discipline_funding"`
}

// BuildLandscape runs every rollup.
func BuildLandscape(investments []model.Investment, practitioners []model.Practitioner) Landscape {
	summary := Summarize(investments)
	return Landscape{
		TotalInvestment: summary.TotalAmount,
		BySource:        BySource(investments),
		ByCategory:      ByCategory(investments),
		ByStatus:        ByStatus(investments),
		Compounding:     CompoundingBySource(investments),
		Summary:         summary,
		Practitioners:   PractitionersByDiscipline(practitioners),
		Disciplines:     ByDiscipline(practitioners, investments),
	}
}
