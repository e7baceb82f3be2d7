package urgency

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/practice-dashboard/internal/model"
)

var ref = time.Date(2026, 10, 15, 9, 0, 0, 0, time.UTC)

func daysOut(n int) *time.Time {
	t := ref.AddDate(0, 0, n)
	return &t
}

func TestClassify_Boundaries(t *testing.T) {
	tests := []struct {
		days int
		ok   bool
		want Bucket
	}{
		{-10, true, Within30Days},
		{0, true, Within30Days},
		{30, true, Within30Days},
		{31, true, Within90Days},
		{90, true, Within90Days},
		{91, true, Within6Months},
		{180, true, Within6Months},
		{181, true, Beyond6Months},
		{0, false, Beyond6Months},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Classify(tt.days, tt.ok), "days=%d ok=%v", tt.days, tt.ok)
	}
}

func TestTier_Boundaries(t *testing.T) {
	assert.Equal(t, TierCritical, Tier(-3, true))
	assert.Equal(t, TierCritical, Tier(14, true))
	assert.Equal(t, TierElevated, Tier(15, true))
	assert.Equal(t, TierElevated, Tier(30, true))
	assert.Equal(t, TierModerate, Tier(31, true))
	assert.Equal(t, TierModerate, Tier(90, true))
	assert.Equal(t, TierNormal, Tier(91, true))
	assert.Equal(t, TierNormal, Tier(0, false))
}

func TestTierAndBucketDiffer(t *testing.T) {
	// 20 days: elevated countdown yet the same bucket as a 2-day item.
	assert.Equal(t, Classify(2, true), Classify(20, true))
	assert.NotEqual(t, Tier(2, true), Tier(20, true))
}

func TestCountdown(t *testing.T) {
	assert.Equal(t, "No date", Countdown(0, false))
	assert.Equal(t, "Today", Countdown(0, true))
	assert.Equal(t, "Tomorrow", Countdown(1, true))
	assert.Equal(t, "in 12 days", Countdown(12, true))
	assert.Equal(t, "1 day overdue", Countdown(-1, true))
	assert.Equal(t, "4 days overdue", Countdown(-4, true))
}

func TestBucket_String(t *testing.T) {
	assert.Equal(t, "Within 30 Days", Within30Days.String())
	assert.Equal(t, "Within 90 Days", Within90Days.String())
	assert.Equal(t, "Within 6 Months", Within6Months.String())
	assert.Equal(t, "Beyond 6 Months", Beyond6Months.String())

	b, err := json.Marshal(map[string]Bucket{"b": Within90Days})
	require.NoError(t, err)
	assert.JSONEq(t, `{"b":"Within 90 Days"}`, string(b))
}

func TestGroupDecisions(t *testing.T) {
	decisions := []model.Decision{
		{ID: "undated", Status: model.DecisionUpcoming},
		{ID: "d31", LocksDate: daysOut(31), Status: model.DecisionUpcoming},
		{ID: "d30", LocksDate: daysOut(30), Status: model.DecisionDeliberating},
		{ID: "d5", LocksDate: daysOut(5), Status: model.DecisionLocked},
		{ID: "done", LocksDate: daysOut(1), Status: model.DecisionCompleted},
		{ID: "d200", LocksDate: daysOut(200), Status: model.DecisionUpcoming},
		{ID: "d5b", LocksDate: daysOut(5), Status: model.DecisionUpcoming},
	}

	groups := GroupDecisions(decisions, ref)
	require.Len(t, groups, 3)

	assert.Equal(t, Within30Days, groups[0].Bucket)
	assert.Equal(t, []string{"d5", "d5b", "d30"}, decisionIDs(groups[0]))
	assert.Equal(t, TierCritical, groups[0].Items[0].Tier)
	assert.Equal(t, "in 30 days", groups[0].Items[2].Label)

	assert.Equal(t, Within90Days, groups[1].Bucket)
	assert.Equal(t, []string{"d31"}, decisionIDs(groups[1]))

	assert.Equal(t, Beyond6Months, groups[2].Bucket)
	assert.Equal(t, []string{"d200", "undated"}, decisionIDs(groups[2]))
	assert.False(t, groups[2].Items[1].HasDate)
}

func TestGroupOpportunities_ActiveOnly(t *testing.T) {
	ops := []model.Opportunity{
		{ID: "open", Status: model.OpportunityOpen, Deadline: daysOut(100)},
		{ID: "closing", Status: model.OpportunityClosingSoon, Deadline: daysOut(3)},
		{ID: "closed", Status: model.OpportunityClosed, Deadline: daysOut(3)},
		{ID: "awarded", Status: model.OpportunityAwarded},
	}
	groups := GroupOpportunities(ops, ref)
	require.Len(t, groups, 2)
	assert.Equal(t, Within30Days, groups[0].Bucket)
	assert.Equal(t, "closing", groups[0].Items[0].Item.ID)
	assert.Equal(t, Within6Months, groups[1].Bucket)
}

func TestGroupBy_Empty(t *testing.T) {
	assert.Empty(t, GroupDecisions(nil, ref))
}

func decisionIDs(g Group[model.Decision]) []string {
	var out []string
	for _, d := range g.Items {
		out = append(out, d.Item.ID)
	}
	return out
}
