package store

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sells-group/practice-dashboard/internal/model"
)

// FetchError reports that one record set could not be loaded.
type FetchError struct {
	Kind Kind
	Err  error
}

func (e *FetchError) Error() string { return fmt.Sprintf("store: fetch %s records: %v", e.Kind, e.Err) }

func (e *FetchError) Unwrap() error { return e.Err }

// LoadSnapshot reads every record set for ecosystemID concurrently and
// returns them as one snapshot. The reads are independent; the first
// failure cancels the rest and is returned as a *FetchError.
func LoadSnapshot(ctx context.Context, r Reader, ecosystemID string) (*model.Snapshot, error) {
	snap := &model.Snapshot{EcosystemID: ecosystemID}
	g, gCtx := errgroup.WithContext(ctx)

	load := func(kind Kind, fn func(context.Context) error) {
		g.Go(func() error {
			if err := fn(gCtx); err != nil {
				return &FetchError{Kind: kind, Err: err}
			}
			return nil
		})
	}

	load(KindOrganization, func(ctx context.Context) (err error) {
		snap.Organizations, err = List[model.Organization](ctx, r, ecosystemID, KindOrganization)
		return err
	})
	load(KindPractitioner, func(ctx context.Context) (err error) {
		snap.Practitioners, err = List[model.Practitioner](ctx, r, ecosystemID, KindPractitioner)
		return err
	})
	load(KindInvestment, func(ctx context.Context) (err error) {
		snap.Investments, err = List[model.Investment](ctx, r, ecosystemID, KindInvestment)
		return err
	})
	load(KindDecision, func(ctx context.Context) (err error) {
		snap.Decisions, err = List[model.Decision](ctx, r, ecosystemID, KindDecision)
		return err
	})
	load(KindOpportunity, func(ctx context.Context) (err error) {
		snap.Opportunities, err = List[model.Opportunity](ctx, r, ecosystemID, KindOpportunity)
		return err
	})
	load(KindNarrative, func(ctx context.Context) (err error) {
		snap.Narratives, err = List[model.Narrative](ctx, r, ecosystemID, KindNarrative)
		return err
	})
	load(KindPrecedent, func(ctx context.Context) (err error) {
		snap.Precedents, err = List[model.Precedent](ctx, r, ecosystemID, KindPrecedent)
		return err
	})
	load(KindSubmission, func(ctx context.Context) (err error) {
		snap.Submissions, err = List[model.Submission](ctx, r, ecosystemID, KindSubmission)
		return err
	})

	if err := g.Wait(); err != nil {
		zap.L().Warn("store: snapshot load failed",
			zap.String("ecosystem_id", ecosystemID),
			zap.Error(err),
		)
		return nil, err
	}
	return snap, nil
}
