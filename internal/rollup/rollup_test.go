package rollup

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/practice-dashboard/internal/model"
)

func amt(v float64) *float64 { return &v }

func TestBySource_Scenario(t *testing.T) {
	investments := []model.Investment{
		{SourceName: "Foundation A", Amount: amt(10000)},
		{SourceName: "Foundation A", Amount: amt(5000)},
		{Amount: amt(2000)},
	}

	got := BySource(investments)
	require.Len(t, got, 2)
	assert.Equal(t, Total{Label: "Foundation A", Amount: 15000, Count: 2}, got[0])
	assert.Equal(t, Total{Label: UnattributedLabel, Amount: 2000, Count: 1}, got[1])
}

func TestBySource_NilAmountsContributeZero(t *testing.T) {
	investments := []model.Investment{
		{SourceName: "City", Amount: nil},
		{SourceName: "City", Amount: amt(300)},
		{SourceName: "  ", Amount: nil},
	}
	got := BySource(investments)
	require.Len(t, got, 2)
	assert.Equal(t, 300.0, got[0].Amount)
	assert.Equal(t, 2, got[0].Count)
	assert.Equal(t, UnattributedLabel, got[1].Label)
	assert.Equal(t, 0.0, got[1].Amount)
	assert.False(t, math.IsNaN(got[1].Amount))
}

func TestBySource_TiesKeepFirstSeenOrder(t *testing.T) {
	got := BySource([]model.Investment{
		{SourceName: "B", Amount: amt(5)},
		{SourceName: "A", Amount: amt(5)},
	})
	assert.Equal(t, "B", got[0].Label)
	assert.Equal(t, "A", got[1].Label)
}

func TestByCategory(t *testing.T) {
	got := ByCategory([]model.Investment{
		{Category: model.CategoryMusic, Amount: amt(100)},
		{Amount: amt(700)},
		{Category: model.CategoryMusic, Amount: amt(50)},
	})
	require.Len(t, got, 2)
	assert.Equal(t, UncategorizedLabel, got[0].Label)
	assert.Equal(t, "music", got[1].Label)
	assert.Equal(t, 150.0, got[1].Amount)
}

func TestByStatus(t *testing.T) {
	got := ByStatus([]model.Investment{
		{Status: model.InvestmentActive, Amount: amt(10)},
		{Amount: amt(20)},
	})
	require.Len(t, got, 2)
	assert.Equal(t, "unknown", got[0].Label)
}

func TestCompoundingBySource(t *testing.T) {
	got := CompoundingBySource([]model.Investment{
		{SourceName: "Small", CompoundingStatus: model.Compounding, Amount: amt(10)},
		{SourceName: "Big", CompoundingStatus: model.Compounding, Amount: amt(100)},
		{SourceName: "Big", CompoundingStatus: model.NotCompounding, Amount: amt(50)},
		{SourceName: "Big", CompoundingStatus: model.TooEarly, Amount: amt(25)},
		{SourceName: "Big", CompoundingStatus: model.UnknownStatus, Amount: amt(5)},
		{SourceName: "Big", Amount: nil},
	})
	require.Len(t, got, 2)
	assert.Equal(t, CompoundingBreakdown{
		Source: "Big", Compounding: 100, NotCompounding: 50, TooEarly: 25, Total: 180,
	}, got[0])
	assert.Equal(t, "Small", got[1].Source)
}

func TestSummarize_Empty(t *testing.T) {
	s := Summarize(nil)
	assert.Equal(t, 0, s.TotalCount)
	require.Len(t, s.Shares, 4)
	for _, sh := range s.Shares {
		assert.Equal(t, 0.0, sh.CountPercent)
		assert.Equal(t, 0.0, sh.AmountPercent)
		assert.False(t, math.IsNaN(sh.AmountPercent))
	}
}

func TestSummarize_AllAmountsNil(t *testing.T) {
	s := Summarize([]model.Investment{{CompoundingStatus: model.Compounding}})
	c := s.Share(model.Compounding)
	assert.Equal(t, 100.0, c.CountPercent)
	assert.Equal(t, 0.0, c.AmountPercent)
}

func TestSummarize(t *testing.T) {
	s := Summarize([]model.Investment{
		{CompoundingStatus: model.Compounding, Amount: amt(75)},
		{CompoundingStatus: model.TooEarly, Amount: amt(25)},
		{CompoundingStatus: "mystery", Amount: nil},
		{Amount: nil},
	})
	assert.Equal(t, 4, s.TotalCount)
	assert.Equal(t, 100.0, s.TotalAmount)
	assert.InDelta(t, 75.0, s.Share(model.Compounding).AmountPercent, 1e-9)
	assert.InDelta(t, 25.0, s.Share(model.Compounding).CountPercent, 1e-9)
	assert.Equal(t, 2, s.Share(model.UnknownStatus).Count)
	assert.Equal(t, 0, s.Share("other").Count)
}

func TestPractitionersByDiscipline(t *testing.T) {
	got := PractitionersByDiscipline([]model.Practitioner{
		{Discipline: model.DisciplineDance},
		{Discipline: model.DisciplineMusic, AtRisk: true},
		{Discipline: model.DisciplineMusic},
		{},
	})
	require.Len(t, got, 2)
	assert.Equal(t, DisciplineCount{Discipline: model.DisciplineMusic, Count: 2, AtRisk: 1}, got[0])
	assert.Equal(t, model.DisciplineDance, got[1].Discipline)
}

func TestByDiscipline(t *testing.T) {
	practitioners := []model.Practitioner{
		{Discipline: model.DisciplineMusic, AtRisk: true},
		{Discipline: model.DisciplineMusic},
		{Discipline: model.DisciplineDance, AtRisk: true},
	}
	investments := []model.Investment{
		{Category: model.CategoryMusic, Amount: amt(1000)},
		{Category: model.CategoryFestival, Amount: amt(500)},
		{Category: model.CategoryPublicArt, Amount: amt(3000)},
		{Category: model.CategoryInfrastructure, Amount: amt(99999)},
		{Category: model.CategoryLiterary, Amount: nil},
	}

	got := ByDiscipline(practitioners, investments)
	require.Len(t, got, 3)

	assert.Equal(t, model.DisciplineVisualArts, got[0].Discipline)
	assert.Equal(t, 3000.0, got[0].Investment)
	assert.Equal(t, 0, got[0].Practitioners)
	assert.Equal(t, 0.0, got[0].AtRiskPercent)

	assert.Equal(t, model.DisciplineMusic, got[1].Discipline)
	assert.Equal(t, 1500.0, got[1].Investment)
	assert.Equal(t, 2, got[1].Practitioners)
	assert.Equal(t, 1, got[1].AtRisk)
	assert.InDelta(t, 50.0, got[1].AtRiskPercent, 1e-9)
	assert.InDelta(t, 33.333, got[1].InvestmentPercent, 1e-3)

	// Literary has a category entry but zero amount and no practitioners.
	assert.Equal(t, model.DisciplineDance, got[2].Discipline)
	assert.Equal(t, 100.0, got[2].AtRiskPercent)
}

func TestByDiscipline_Empty(t *testing.T) {
	assert.Empty(t, ByDiscipline(nil, nil))
}

func TestBuildLandscape(t *testing.T) {
	l := BuildLandscape([]model.Investment{
		{SourceName: "A", Category: model.CategoryMusic, Amount: amt(10), CompoundingStatus: model.Compounding},
	}, []model.Practitioner{{Discipline: model.DisciplineMusic}})
	assert.Equal(t, 10.0, l.TotalInvestment)
	assert.Len(t, l.BySource, 1)
	assert.Len(t, l.ByCategory, 1)
	assert.Len(t, l.Compounding, 1)
	assert.Len(t, l.Disciplines, 1)
	assert.Len(t, l.Practitioners, 1)

	empty := BuildLandscape(nil, nil)
	assert.Equal(t, 0.0, empty.TotalInvestment)
	assert.Empty(t, empty.BySource)
}
