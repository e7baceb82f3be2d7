// Package dashboard answers the dashboard views. Every call loads one
// snapshot of the configured ecosystem, indexes it, and runs the pure
// engines over it.
package dashboard

import (
	"context"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/practice-dashboard/internal/attention"
	"github.com/sells-group/practice-dashboard/internal/chain"
	"github.com/sells-group/practice-dashboard/internal/config"
	"github.com/sells-group/practice-dashboard/internal/index"
	"github.com/sells-group/practice-dashboard/internal/model"
	"github.com/sells-group/practice-dashboard/internal/resolve"
	"github.com/sells-group/practice-dashboard/internal/rollup"
	"github.com/sells-group/practice-dashboard/internal/store"
	"github.com/sells-group/practice-dashboard/internal/urgency"
)

// ErrNotFound is returned when a requested id is not in the snapshot.
var ErrNotFound = eris.New("dashboard: not found")

// MostConnectedLimit caps the most-connected list in the landscape view.
const MostConnectedLimit = 10

// Service serves dashboard views from a record store.
type Service struct {
	reader store.Reader
	cfg    config.DashboardConfig
	now    func() time.Time
}

// New creates a Service reading the ecosystem named in cfg.
func New(reader store.Reader, cfg config.DashboardConfig) *Service {
	return &Service{reader: reader, cfg: cfg, now: time.Now}
}

// WithClock replaces the reference clock.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// EcosystemID returns the ecosystem the service reads.
func (s *Service) EcosystemID() string { return s.cfg.EcosystemID }

func (s *Service) load(ctx context.Context) (*index.Index, error) {
	snap, err := store.LoadSnapshot(ctx, s.reader, s.cfg.EcosystemID)
	if err != nil {
		return nil, err
	}
	return index.Build(s.cfg.EcosystemID, snap), nil
}

// Attention returns the ranked attention queue.
func (s *Service) Attention(ctx context.Context) ([]model.AttentionItem, error) {
	idx, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	now := s.now()
	threshold := time.Duration(s.cfg.StaleAfterDays) * 24 * time.Hour

	items := attention.Compose(attention.Input{
		Decisions:   idx.Decisions,
		Submissions: idx.Submissions,
		Stale:       attention.StaleEntries(idx.Snapshot(), now, threshold),
	}, s.cfg.AttentionOptions(now))

	zap.L().Debug("dashboard: attention composed",
		zap.String("ecosystem_id", s.cfg.EcosystemID),
		zap.Int("items", len(items)),
	)
	return items, nil
}

// LandscapeView is the funding landscape plus the hub organizations.
type LandscapeView struct {
	rollup.Landscape
	MostConnected []index.OrgConnections `json:"most_connected"`
}

// Landscape returns every rollup over the ecosystem's investments.
func (s *Service) Landscape(ctx context.Context) (LandscapeView, error) {
	idx, err := s.load(ctx)
	if err != nil {
		return LandscapeView{}, err
	}
	return LandscapeView{
		Landscape:     rollup.BuildLandscape(idx.Investments, idx.Practitioners),
		MostConnected: idx.MostConnected(MostConnectedLimit),
	}, nil
}

// Organizations lists every organization with its connection count, most
// connected first.
func (s *Service) Organizations(ctx context.Context) ([]index.OrgConnections, error) {
	idx, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	out := idx.MostConnected(0)
	seen := make(map[string]bool, len(out))
	for _, oc := range out {
		seen[oc.Organization.ID] = true
	}
	for _, o := range idx.Organizations {
		if o.ID != "" && !seen[o.ID] {
			out = append(out, index.OrgConnections{Organization: o})
		}
	}
	return out, nil
}

// OrganizationView is everything linked to one organization.
type OrganizationView struct {
	Organization  model.Organization   `json:"organization"`
	Connections   int                  `json:"connections"`
	Investments   []model.Investment   `json:"investments"`
	Decisions     []model.Decision     `json:"decisions"`
	Opportunities []model.Opportunity  `json:"opportunities"`
	Narratives    []model.Narrative    `json:"narratives"`
	Practitioners []model.Practitioner `json:"practitioners"`
	Precedents    []model.Precedent    `json:"precedents"`
	Funding       rollup.Total         `json:"funding"`
}

// Organization returns the detail view for id.
func (s *Service) Organization(ctx context.Context, id string) (OrganizationView, error) {
	idx, err := s.load(ctx)
	if err != nil {
		return OrganizationView{}, err
	}
	org, ok := idx.OrganizationByID[id]
	if !ok {
		return OrganizationView{}, eris.Wrapf(ErrNotFound, "organization %s", id)
	}

	investments := idx.InvestmentsByOrgID[id]
	funding := rollup.Total{Label: org.Name, Count: len(investments)}
	for _, inv := range investments {
		funding.Amount += inv.AmountOrZero()
	}

	return OrganizationView{
		Organization:  org,
		Connections:   idx.ConnectionCount(id),
		Investments:   investments,
		Decisions:     idx.DecisionsByOrgID[id],
		Opportunities: idx.OpportunitiesByOrgID[id],
		Narratives:    idx.NarrativesByOrgID[id],
		Practitioners: idx.PractitionersByOrgID[id],
		Precedents:    idx.PrecedentsByOrgID[id],
		Funding:       funding,
	}, nil
}

// Chain returns the builds-on / led-to chain around investmentID.
func (s *Service) Chain(ctx context.Context, investmentID string) (chain.Chain, error) {
	idx, err := s.load(ctx)
	if err != nil {
		return chain.Chain{}, err
	}
	focal, ok := idx.Investment(investmentID)
	if !ok {
		return chain.Chain{}, eris.Wrapf(ErrNotFound, "investment %s", investmentID)
	}
	return chain.Build(focal, idx), nil
}

// Timeline groups open decisions by how soon they lock.
func (s *Service) Timeline(ctx context.Context) ([]urgency.Group[model.Decision], error) {
	idx, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	return urgency.GroupDecisions(idx.Decisions, s.now()), nil
}

// Opportunities groups active opportunities by deadline.
func (s *Service) Opportunities(ctx context.Context) ([]urgency.Group[model.Opportunity], error) {
	idx, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	return urgency.GroupOpportunities(idx.Opportunities, s.now()), nil
}

// PrecedentView is a precedent with its resolved parties and the
// investments that draw on it.
type PrecedentView struct {
	Precedent   model.Precedent    `json:"precedent"`
	Involved    []resolve.Ref      `json:"involved"`
	Mentioned   []resolve.Ref      `json:"mentioned"`
	Investments []model.Investment `json:"investments"`
}

// Precedent returns the detail view for id. Mentioned holds every name
// recovered from the connects-to and takeaway prose, in order of first
// appearance; names matching a known organization carry its id.
func (s *Service) Precedent(ctx context.Context, id string) (PrecedentView, error) {
	idx, err := s.load(ctx)
	if err != nil {
		return PrecedentView{}, err
	}
	p, ok := idx.PrecedentByID[id]
	if !ok {
		return PrecedentView{}, eris.Wrapf(ErrNotFound, "precedent %s", id)
	}

	var mentioned []resolve.Ref
	seen := make(map[string]bool)
	for _, text := range []string{p.ConnectsTo, p.Takeaway} {
		for _, name := range resolve.ExtractCandidateNames(text) {
			ref := resolve.Unresolved(name)
			key := "name:" + name
			if orgID, ok := idx.Names.Lookup(name); ok {
				ref = resolve.Resolved(orgID, name)
				key = "org:" + orgID
			}
			if seen[key] {
				continue
			}
			seen[key] = true
			mentioned = append(mentioned, ref)
		}
	}

	return PrecedentView{
		Precedent:   p,
		Involved:    idx.Names.InvolvedRefs(p.Involved),
		Mentioned:   mentioned,
		Investments: idx.InvestmentsByPrecedentID[id],
	}, nil
}
