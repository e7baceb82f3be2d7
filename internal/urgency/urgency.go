// Package urgency classifies dated records by how soon they come due.
//
// Two scales live here and must not be mixed: Bucket is the coarse grouping
// used to lay out timelines, CountdownTier is the fine-grained styling tier
// for a single countdown badge. They use different thresholds.
package urgency

import (
	"cmp"
	"fmt"
	"slices"
	"time"

	"github.com/sells-group/practice-dashboard/internal/format"
	"github.com/sells-group/practice-dashboard/internal/model"
)

// Bucket is a coarse timeline group. Buckets are ordered most urgent first.
type Bucket int

const (
	Within30Days Bucket = iota
	Within90Days
	Within6Months
	Beyond6Months
)

// Buckets lists every bucket in display order.
var Buckets = []Bucket{Within30Days, Within90Days, Within6Months, Beyond6Months}

func (b Bucket) String() string {
	switch b {
	case Within30Days:
		return "Within 30 Days"
	case Within90Days:
		return "Within 90 Days"
	case Within6Months:
		return "Within 6 Months"
	default:
		return "Beyond 6 Months"
	}
}

// MarshalText renders the bucket label.
func (b Bucket) MarshalText() ([]byte, error) { return []byte(b.String()), nil }

// Classify places a day count into a bucket. Upper bounds are inclusive:
// 30 days out is still Within30Days. Overdue counts fall into Within30Days;
// an unknown date (ok == false) falls into Beyond6Months.
func Classify(days int, ok bool) Bucket {
	switch {
	case !ok:
		return Beyond6Months
	case days <= 30:
		return Within30Days
	case days <= 90:
		return Within90Days
	case days <= 180:
		return Within6Months
	default:
		return Beyond6Months
	}
}

// CountdownTier is the display tier of a countdown badge.
type CountdownTier string

const (
	TierCritical CountdownTier = "critical"
	TierElevated CountdownTier = "elevated"
	TierModerate CountdownTier = "moderate"
	TierNormal   CountdownTier = "normal"
)

// Tier styles a countdown: ≤14 days critical, ≤30 elevated, ≤90 moderate.
// Unknown dates are normal.
func Tier(days int, ok bool) CountdownTier {
	switch {
	case !ok:
		return TierNormal
	case days <= 14:
		return TierCritical
	case days <= 30:
		return TierElevated
	case days <= 90:
		return TierModerate
	default:
		return TierNormal
	}
}

// Countdown renders a day count as badge text.
func Countdown(days int, ok bool) string {
	switch {
	case !ok:
		return "No date"
	case days == 0:
		return "Today"
	case days == 1:
		return "Tomorrow"
	case days == -1:
		return "1 day overdue"
	case days < 0:
		return fmt.Sprintf("%d days overdue", -days)
	default:
		return fmt.Sprintf("in %d days", days)
	}
}

// Dated pairs a record with its day count relative to a reference date.
type Dated[T any] struct {
	Item    T             `json:"item"`
	Days    int           `json:"days"`
	HasDate bool          `json:"has_date"`
	Tier    CountdownTier `json:"tier"`
	Label   string        `json:"label"`
}

// Group is one non-empty bucket of dated records.
type Group[T any] struct {
	Bucket Bucket     `json:"bucket"`
	Items  []Dated[T] `json:"items"`
}

// GroupBy buckets items by the date that due returns. Groups come back in
// bucket order with empty buckets omitted. Within a bucket items are ordered
// by day count ascending, undated last, input order on ties.
func GroupBy[T any](items []T, ref time.Time, due func(T) *time.Time) []Group[T] {
	byBucket := make(map[Bucket][]Dated[T])
	for _, it := range items {
		days, ok := format.DaysUntil(due(it), ref)
		b := Classify(days, ok)
		byBucket[b] = append(byBucket[b], Dated[T]{
			Item:    it,
			Days:    days,
			HasDate: ok,
			Tier:    Tier(days, ok),
			Label:   Countdown(days, ok),
		})
	}

	var groups []Group[T]
	for _, b := range Buckets {
		dated := byBucket[b]
		if len(dated) == 0 {
			continue
		}
		slices.SortStableFunc(dated, compareDated[T])
		groups = append(groups, Group[T]{Bucket: b, Items: dated})
	}
	return groups
}

func compareDated[T any](a, b Dated[T]) int {
	if a.HasDate != b.HasDate {
		if a.HasDate {
			return -1
		}
		return 1
	}
	return cmp.Compare(a.Days, b.Days)
}

// GroupDecisions buckets every decision that is not completed by its lock date.
func GroupDecisions(decisions []model.Decision, ref time.Time) []Group[model.Decision] {
	var open []model.Decision
	for _, d := range decisions {
		if d.Status != model.DecisionCompleted {
			open = append(open, d)
		}
	}
	return GroupBy(open, ref, func(d model.Decision) *time.Time { return d.LocksDate })
}

// GroupOpportunities buckets open and closing-soon opportunities by deadline.
func GroupOpportunities(ops []model.Opportunity, ref time.Time) []Group[model.Opportunity] {
	var active []model.Opportunity
	for _, op := range ops {
		if op.Status.Active() {
			active = append(active, op)
		}
	}
	return GroupBy(active, ref, func(op model.Opportunity) *time.Time { return op.Deadline })
}
