// Package attention merges decisions, pending submissions, and stale
// records into one queue ranked on a single urgency scale.
package attention

import (
	"cmp"
	"slices"
	"time"

	"github.com/sells-group/practice-dashboard/internal/format"
	"github.com/sells-group/practice-dashboard/internal/model"
	"github.com/sells-group/practice-dashboard/internal/urgency"
)

// Default ranks. Lower is more urgent.
const (
	DefaultSubmissionUrgency = 50
	DefaultStaleUrgency      = 100
	DefaultUndatedUrgency    = 999
	DefaultStaleLimit        = 3
)

// Options tunes the queue.
type Options struct {
	Now time.Time
	// SubmissionUrgency ranks every pending submission.
	SubmissionUrgency int
	// StaleUrgency ranks every stale entry; it should exceed SubmissionUrgency.
	StaleUrgency int
	// UndatedUrgency ranks decisions without a lock date.
	UndatedUrgency int
	// StaleLimit caps how many stale entries enter the queue. Negative
	// means no cap.
	StaleLimit int
}

// DefaultOptions returns the standard ranks evaluated at now.
func DefaultOptions(now time.Time) Options {
	return Options{
		Now:               now,
		SubmissionUrgency: DefaultSubmissionUrgency,
		StaleUrgency:      DefaultStaleUrgency,
		UndatedUrgency:    DefaultUndatedUrgency,
		StaleLimit:        DefaultStaleLimit,
	}
}

// Input is the three source lists. Stale should already be ordered
// stalest first (see StaleEntries).
type Input struct {
	Decisions   []model.Decision
	Submissions []model.Submission
	Stale       []StaleEntry
}

// Compose builds the attention queue. Decisions flagged for intervention
// (and not completed) rank by days until they lock; pending submissions
// and stale entries take fixed ranks. Stale entries are truncated to
// StaleLimit before the merge. The merged list is stable-sorted by rank,
// so equal ranks keep decisions, submissions, stale order and their
// input order.
func Compose(in Input, opts Options) []model.AttentionItem {
	var items []model.AttentionItem

	for _, d := range in.Decisions {
		if !d.InterventionNeeded || d.Status == model.DecisionCompleted {
			continue
		}
		items = append(items, decisionItem(d, opts))
	}

	for _, s := range in.Submissions {
		if s.Status != model.SubmissionPending {
			continue
		}
		items = append(items, model.AttentionItem{
			Kind:        model.AttentionSubmission,
			UrgencyRank: opts.SubmissionUrgency,
			ID:          s.ID,
			Title:       s.Title(),
			Subtitle:    "New " + string(s.SubmissionType) + " submission",
			Badge:       "Pending",
			ActionText:  "Review submission",
			TargetPath:  "/submissions/" + s.ID,
		})
	}

	stale := in.Stale
	if opts.StaleLimit >= 0 && len(stale) > opts.StaleLimit {
		stale = stale[:opts.StaleLimit]
	}
	for _, e := range stale {
		subtitle := "Never reviewed"
		if e.LastReviewedAt != nil {
			subtitle = "Last reviewed " + format.Date(e.LastReviewedAt)
		}
		items = append(items, model.AttentionItem{
			Kind:        model.AttentionStale,
			UrgencyRank: opts.StaleUrgency,
			ID:          e.ID,
			Title:       e.Name,
			Subtitle:    subtitle,
			Badge:       "Stale " + e.Kind,
			ActionText:  "Verify details",
			TargetPath:  e.Path(),
		})
	}

	slices.SortStableFunc(items, func(a, b model.AttentionItem) int {
		return cmp.Compare(a.UrgencyRank, b.UrgencyRank)
	})
	return items
}

func decisionItem(d model.Decision, opts Options) model.AttentionItem {
	rank := opts.UndatedUrgency
	days, ok := format.DaysUntil(d.LocksDate, opts.Now)
	if ok {
		rank = days
	}
	subtitle := d.StakeholderName
	if subtitle == "" {
		subtitle = "Decision"
	}
	return model.AttentionItem{
		Kind:        model.AttentionDecision,
		UrgencyRank: rank,
		ID:          d.ID,
		Title:       d.Title,
		Subtitle:    subtitle,
		Badge:       urgency.Countdown(days, ok),
		ActionText:  "Plan intervention",
		TargetPath:  "/decisions/" + d.ID,
	}
}
