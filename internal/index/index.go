// Package index builds the bidirectional link indices between the flat
// record sets of one ecosystem snapshot.
package index

import (
	"cmp"
	"slices"

	"go.uber.org/zap"

	"github.com/sells-group/practice-dashboard/internal/model"
	"github.com/sells-group/practice-dashboard/internal/resolve"
)

// Index holds the derived lookup tables for one snapshot. It is built once
// per request and never mutated afterwards.
type Index struct {
	EcosystemID string

	Organizations []model.Organization
	Investments   []model.Investment
	Decisions     []model.Decision
	Opportunities []model.Opportunity
	Narratives    []model.Narrative
	Precedents    []model.Precedent
	Practitioners []model.Practitioner
	Submissions   []model.Submission

	OrganizationByID map[string]model.Organization
	InvestmentByID   map[string]model.Investment
	DecisionByID     map[string]model.Decision
	PrecedentByID    map[string]model.Precedent

	InvestmentsByOrgID   map[string][]model.Investment
	DecisionsByOrgID     map[string][]model.Decision
	OpportunitiesByOrgID map[string][]model.Opportunity
	NarrativesByOrgID    map[string][]model.Narrative
	PractitionersByOrgID map[string][]model.Practitioner

	// ChildrenByBuildsOnID lists investments by the investment they build on.
	ChildrenByBuildsOnID map[string][]model.Investment
	// InvestmentsByPrecedentID lists investments by the precedent they draw on.
	InvestmentsByPrecedentID map[string][]model.Investment
	// OrgIDsByPrecedentID holds the organizations resolved from each
	// precedent's involved-parties text.
	OrgIDsByPrecedentID map[string][]string
	// PrecedentsByOrgID is the reverse of OrgIDsByPrecedentID.
	PrecedentsByOrgID map[string][]model.Precedent

	Names *resolve.NameIndex
}

// Build indexes snap. Records whose ecosystem id is set and differs from
// ecosystemID are skipped entirely. Records without an organization id stay
// in the full lists but are left out of the org-keyed maps.
func Build(ecosystemID string, snap *model.Snapshot) *Index {
	if snap == nil {
		snap = &model.Snapshot{}
	}
	in := func(eco string) bool { return eco == "" || ecosystemID == "" || eco == ecosystemID }

	idx := &Index{
		EcosystemID:              ecosystemID,
		OrganizationByID:         make(map[string]model.Organization),
		InvestmentByID:           make(map[string]model.Investment),
		DecisionByID:             make(map[string]model.Decision),
		PrecedentByID:            make(map[string]model.Precedent),
		InvestmentsByOrgID:       make(map[string][]model.Investment),
		DecisionsByOrgID:         make(map[string][]model.Decision),
		OpportunitiesByOrgID:     make(map[string][]model.Opportunity),
		NarrativesByOrgID:        make(map[string][]model.Narrative),
		PractitionersByOrgID:     make(map[string][]model.Practitioner),
		ChildrenByBuildsOnID:     make(map[string][]model.Investment),
		InvestmentsByPrecedentID: make(map[string][]model.Investment),
		OrgIDsByPrecedentID:      make(map[string][]string),
		PrecedentsByOrgID:        make(map[string][]model.Precedent),
	}

	for _, o := range snap.Organizations {
		if !in(o.EcosystemID) {
			continue
		}
		idx.Organizations = append(idx.Organizations, o)
		if o.ID != "" {
			idx.OrganizationByID[o.ID] = o
		}
	}
	idx.Names = resolve.NewNameIndex(idx.Organizations)

	for _, inv := range snap.Investments {
		if !in(inv.EcosystemID) {
			continue
		}
		idx.Investments = append(idx.Investments, inv)
		if inv.ID != "" {
			idx.InvestmentByID[inv.ID] = inv
		}
		if inv.SourceOrgID != "" {
			idx.InvestmentsByOrgID[inv.SourceOrgID] = append(idx.InvestmentsByOrgID[inv.SourceOrgID], inv)
		}
		if inv.BuildsOnID != "" {
			idx.ChildrenByBuildsOnID[inv.BuildsOnID] = append(idx.ChildrenByBuildsOnID[inv.BuildsOnID], inv)
		}
		if inv.PrecedentID != "" {
			idx.InvestmentsByPrecedentID[inv.PrecedentID] = append(idx.InvestmentsByPrecedentID[inv.PrecedentID], inv)
		}
	}

	for _, d := range snap.Decisions {
		if !in(d.EcosystemID) {
			continue
		}
		idx.Decisions = append(idx.Decisions, d)
		if d.ID != "" {
			idx.DecisionByID[d.ID] = d
		}
		if d.StakeholderOrgID != "" {
			idx.DecisionsByOrgID[d.StakeholderOrgID] = append(idx.DecisionsByOrgID[d.StakeholderOrgID], d)
		}
	}

	for _, op := range snap.Opportunities {
		if !in(op.EcosystemID) {
			continue
		}
		idx.Opportunities = append(idx.Opportunities, op)
		if op.SourceOrgID != "" {
			idx.OpportunitiesByOrgID[op.SourceOrgID] = append(idx.OpportunitiesByOrgID[op.SourceOrgID], op)
		}
	}

	for _, n := range snap.Narratives {
		if !in(n.EcosystemID) {
			continue
		}
		idx.Narratives = append(idx.Narratives, n)
		if n.SourceOrgID != "" {
			idx.NarrativesByOrgID[n.SourceOrgID] = append(idx.NarrativesByOrgID[n.SourceOrgID], n)
		}
	}

	for _, p := range snap.Practitioners {
		if !in(p.EcosystemID) {
			continue
		}
		idx.Practitioners = append(idx.Practitioners, p)
		if p.OrgID != "" {
			idx.PractitionersByOrgID[p.OrgID] = append(idx.PractitionersByOrgID[p.OrgID], p)
		}
	}

	for _, p := range snap.Precedents {
		if !in(p.EcosystemID) {
			continue
		}
		idx.Precedents = append(idx.Precedents, p)
		if p.ID == "" {
			continue
		}
		idx.PrecedentByID[p.ID] = p
		orgIDs := idx.Names.InvolvedOrgIDs(p.Involved)
		if len(orgIDs) == 0 {
			continue
		}
		idx.OrgIDsByPrecedentID[p.ID] = orgIDs
		for _, id := range orgIDs {
			idx.PrecedentsByOrgID[id] = append(idx.PrecedentsByOrgID[id], p)
		}
	}

	for _, s := range snap.Submissions {
		if in(s.EcosystemID) {
			idx.Submissions = append(idx.Submissions, s)
		}
	}

	zap.L().Debug("index: built",
		zap.String("ecosystem_id", ecosystemID),
		zap.Int("organizations", len(idx.Organizations)),
		zap.Int("investments", len(idx.Investments)),
		zap.Int("decisions", len(idx.Decisions)),
	)
	return idx
}

// Snapshot returns the indexed records, those of other ecosystems already
// dropped, as a snapshot.
func (idx *Index) Snapshot() *model.Snapshot {
	return &model.Snapshot{
		EcosystemID:   idx.EcosystemID,
		Organizations: idx.Organizations,
		Practitioners: idx.Practitioners,
		Investments:   idx.Investments,
		Decisions:     idx.Decisions,
		Opportunities: idx.Opportunities,
		Narratives:    idx.Narratives,
		Precedents:    idx.Precedents,
		Submissions:   idx.Submissions,
	}
}

// ConnectionCount sums the investments, decisions, opportunities, and
// narratives keyed to orgID.
func (idx *Index) ConnectionCount(orgID string) int {
	return len(idx.InvestmentsByOrgID[orgID]) +
		len(idx.DecisionsByOrgID[orgID]) +
		len(idx.OpportunitiesByOrgID[orgID]) +
		len(idx.NarrativesByOrgID[orgID])
}

// OrgConnections pairs an organization with its connection count.
type OrgConnections struct {
	Organization model.Organization `json:"organization"`
	Connections  int                `json:"connections"`
}

// MostConnected returns organizations with at least one connection, ordered
// by connection count descending then name. n <= 0 returns all of them.
func (idx *Index) MostConnected(n int) []OrgConnections {
	var out []OrgConnections
	for _, o := range idx.Organizations {
		if c := idx.ConnectionCount(o.ID); o.ID != "" && c > 0 {
			out = append(out, OrgConnections{Organization: o, Connections: c})
		}
	}
	slices.SortStableFunc(out, func(a, b OrgConnections) int {
		if c := cmp.Compare(b.Connections, a.Connections); c != 0 {
			return c
		}
		return cmp.Compare(a.Organization.Name, b.Organization.Name)
	})
	if n > 0 && len(out) > n {
		out = out[:n]
	}
	return out
}

// AwardedInvestment resolves an opportunity's award to the investment record.
func (idx *Index) AwardedInvestment(op model.Opportunity) (model.Investment, bool) {
	if op.AwardedInvestmentID == "" {
		return model.Investment{}, false
	}
	inv, ok := idx.InvestmentByID[op.AwardedInvestmentID]
	return inv, ok
}

// DependencyDecisions resolves a decision's linked dependency ids, dropping
// unknown ids.
func (idx *Index) DependencyDecisions(d model.Decision) []model.Decision {
	var out []model.Decision
	for _, id := range d.DependencyIDs {
		if dep, ok := idx.DecisionByID[id]; ok {
			out = append(out, dep)
		}
	}
	return out
}

// SourceRef resolves the organization behind a record's (orgID, name) pair.
func (idx *Index) SourceRef(orgID, name string) resolve.Ref {
	return idx.Names.OrgRef(orgID, name)
}

// SourceLabel returns the display name for a record's organization reference.
func (idx *Index) SourceLabel(orgID, name string) string {
	return idx.SourceRef(orgID, name).Label(idx.Names.Names())
}

// Investment looks an investment up by id.
func (idx *Index) Investment(id string) (model.Investment, bool) {
	inv, ok := idx.InvestmentByID[id]
	return inv, ok
}

// Children lists investments that build on id, in input order.
func (idx *Index) Children(id string) []model.Investment {
	return idx.ChildrenByBuildsOnID[id]
}
