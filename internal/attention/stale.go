package attention

import (
	"cmp"
	"slices"
	"time"

	"github.com/sells-group/practice-dashboard/internal/format"
	"github.com/sells-group/practice-dashboard/internal/model"
)

// StaleEntry is a record whose last review is older than the freshness
// threshold, or that was never reviewed.
type StaleEntry struct {
	Kind           string     `json:"kind"`
	ID             string     `json:"id"`
	Name           string     `json:"name"`
	LastReviewedAt *time.Time `json:"last_reviewed_at,omitempty"`
	DaysSince      int        `json:"days_since"`
}

// Record kinds reported by StaleEntries.
const (
	KindOrganization = "organization"
	KindInvestment   = "investment"
	KindPractitioner = "practitioner"
	KindNarrative    = "narrative"
	KindPrecedent    = "precedent"
	KindOpportunity  = "opportunity"
)

var stalePaths = map[string]string{
	KindOrganization: "/organizations/",
	KindInvestment:   "/investments/",
	KindPractitioner: "/practitioners/",
	KindNarrative:    "/narratives/",
	KindPrecedent:    "/precedents/",
	KindOpportunity:  "/opportunities/",
}

// Path returns the detail page for the entry, or "" for an unknown kind.
func (s StaleEntry) Path() string {
	prefix, ok := stalePaths[s.Kind]
	if !ok {
		return ""
	}
	return prefix + s.ID
}

type reviewable struct {
	kind, id, name string
	reviewed       *time.Time
}

// StaleEntries collects records not reviewed within threshold of now.
// Never-reviewed records come first, then the oldest reviews; ties keep
// snapshot order (organizations, investments, practitioners, narratives,
// precedents, opportunities).
func StaleEntries(snap *model.Snapshot, now time.Time, threshold time.Duration) []StaleEntry {
	if snap == nil {
		return nil
	}

	var all []reviewable
	for _, o := range snap.Organizations {
		all = append(all, reviewable{KindOrganization, o.ID, o.Name, o.LastReviewedAt})
	}
	for _, i := range snap.Investments {
		all = append(all, reviewable{KindInvestment, i.ID, i.InitiativeName, i.LastReviewedAt})
	}
	for _, p := range snap.Practitioners {
		all = append(all, reviewable{KindPractitioner, p.ID, p.Name, p.LastReviewedAt})
	}
	for _, n := range snap.Narratives {
		name := n.SourceName
		if name == "" {
			name = "Narrative " + n.ID
		}
		all = append(all, reviewable{KindNarrative, n.ID, name, n.LastReviewedAt})
	}
	for _, p := range snap.Precedents {
		all = append(all, reviewable{KindPrecedent, p.ID, p.Name, p.LastReviewedAt})
	}
	for _, op := range snap.Opportunities {
		all = append(all, reviewable{KindOpportunity, op.ID, op.Title, op.LastReviewedAt})
	}

	cutoff := now.Add(-threshold)
	var out []StaleEntry
	for _, r := range all {
		if r.id == "" {
			continue
		}
		if r.reviewed != nil && r.reviewed.After(cutoff) {
			continue
		}
		days, _ := format.DaysSince(r.reviewed, now)
		out = append(out, StaleEntry{
			Kind:           r.kind,
			ID:             r.id,
			Name:           r.name,
			LastReviewedAt: r.reviewed,
			DaysSince:      days,
		})
	}

	slices.SortStableFunc(out, func(a, b StaleEntry) int {
		switch {
		case a.LastReviewedAt == nil && b.LastReviewedAt == nil:
			return 0
		case a.LastReviewedAt == nil:
			return -1
		case b.LastReviewedAt == nil:
			return 1
		}
		return cmp.Compare(a.LastReviewedAt.UnixNano(), b.LastReviewedAt.UnixNano())
	})
	return out
}
