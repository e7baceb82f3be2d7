package model

import "time"

// Organization is a funder, institution, or collective in the ecosystem.
type Organization struct {
	ID             string     `json:"id" yaml:"id"`
	EcosystemID    string     `json:"ecosystem_id" yaml:"ecosystem_id"`
	Name           string     `json:"name" yaml:"name"`
	Category       string     `json:"category,omitempty" yaml:"category"`
	Description    string     `json:"description,omitempty" yaml:"description"`
	Website        string     `json:"website,omitempty" yaml:"website"`
	LastReviewedAt *time.Time `json:"last_reviewed_at,omitempty" yaml:"last_reviewed_at"`
}

// Practitioner is an individual working artist or cultural worker.
type Practitioner struct {
	ID             string     `json:"id" yaml:"id"`
	EcosystemID    string     `json:"ecosystem_id" yaml:"ecosystem_id"`
	Name           string     `json:"name" yaml:"name"`
	Discipline     Discipline `json:"discipline,omitempty" yaml:"discipline"`
	AtRisk         bool       `json:"at_risk" yaml:"at_risk"`
	OrgID          string     `json:"org_id,omitempty" yaml:"org_id"`
	LastReviewedAt *time.Time `json:"last_reviewed_at,omitempty" yaml:"last_reviewed_at"`
}

// Investment is a single grant, contract, or program commitment.
type Investment struct {
	ID                string             `json:"id" yaml:"id"`
	EcosystemID       string             `json:"ecosystem_id" yaml:"ecosystem_id"`
	SourceOrgID       string             `json:"source_org_id,omitempty" yaml:"source_org_id"`
	SourceName        string             `json:"source_name,omitempty" yaml:"source_name"`
	InitiativeName    string             `json:"initiative_name" yaml:"initiative_name"`
	Amount            *float64           `json:"amount,omitempty" yaml:"amount"`
	Year              *int               `json:"year,omitempty" yaml:"year"`
	Status            InvestmentStatus   `json:"status" yaml:"status"`
	CompoundingStatus CompoundingStatus  `json:"compounding_status" yaml:"compounding_status"`
	BuildsOnID        string             `json:"builds_on_id,omitempty" yaml:"builds_on_id"`
	LedToID           string             `json:"led_to_id,omitempty" yaml:"led_to_id"`
	PrecedentID       string             `json:"precedent_id,omitempty" yaml:"precedent_id"`
	Category          InvestmentCategory `json:"category,omitempty" yaml:"category"`
	LastReviewedAt    *time.Time         `json:"last_reviewed_at,omitempty" yaml:"last_reviewed_at"`
}

// AmountOrZero returns the amount, treating an absent amount as zero.
func (i Investment) AmountOrZero() float64 {
	if i.Amount == nil {
		return 0
	}
	return *i.Amount
}

// Decision is an upcoming or in-progress stakeholder decision.
type Decision struct {
	ID                 string         `json:"id" yaml:"id"`
	EcosystemID        string         `json:"ecosystem_id" yaml:"ecosystem_id"`
	StakeholderOrgID   string         `json:"stakeholder_org_id,omitempty" yaml:"stakeholder_org_id"`
	StakeholderName    string         `json:"stakeholder_name,omitempty" yaml:"stakeholder_name"`
	Title              string         `json:"title" yaml:"title"`
	Status             DecisionStatus `json:"status" yaml:"status"`
	LocksDate          *time.Time     `json:"locks_date,omitempty" yaml:"locks_date"`
	DeliberationStart  *time.Time     `json:"deliberation_start,omitempty" yaml:"deliberation_start"`
	DeliberationEnd    *time.Time     `json:"deliberation_end,omitempty" yaml:"deliberation_end"`
	Dependencies       string         `json:"dependencies,omitempty" yaml:"dependencies"`
	DependencyIDs      []string       `json:"dependency_ids,omitempty" yaml:"dependency_ids"`
	InterventionNeeded bool           `json:"intervention_needed" yaml:"intervention_needed"`
}

// Precedent is a past initiative whose lessons inform current work.
type Precedent struct {
	ID             string     `json:"id" yaml:"id"`
	EcosystemID    string     `json:"ecosystem_id" yaml:"ecosystem_id"`
	Name           string     `json:"name" yaml:"name"`
	Period         string     `json:"period,omitempty" yaml:"period"`
	Involved       string     `json:"involved,omitempty" yaml:"involved"`
	ConnectsTo     string     `json:"connects_to,omitempty" yaml:"connects_to"`
	Takeaway       string     `json:"takeaway,omitempty" yaml:"takeaway"`
	LastReviewedAt *time.Time `json:"last_reviewed_at,omitempty" yaml:"last_reviewed_at"`
}

// Narrative is a public story about an organization compared against reality.
type Narrative struct {
	ID             string     `json:"id" yaml:"id"`
	EcosystemID    string     `json:"ecosystem_id" yaml:"ecosystem_id"`
	SourceOrgID    string     `json:"source_org_id,omitempty" yaml:"source_org_id"`
	SourceName     string     `json:"source_name,omitempty" yaml:"source_name"`
	Gap            Gap        `json:"gap" yaml:"gap"`
	NarrativeText  string     `json:"narrative_text" yaml:"narrative_text"`
	RealityText    string     `json:"reality_text,omitempty" yaml:"reality_text"`
	LastReviewedAt *time.Time `json:"last_reviewed_at,omitempty" yaml:"last_reviewed_at"`
}

// Opportunity is an open call, grant round, or RFP.
type Opportunity struct {
	ID                  string            `json:"id" yaml:"id"`
	EcosystemID         string            `json:"ecosystem_id" yaml:"ecosystem_id"`
	SourceOrgID         string            `json:"source_org_id,omitempty" yaml:"source_org_id"`
	SourceName          string            `json:"source_name,omitempty" yaml:"source_name"`
	Title               string            `json:"title" yaml:"title"`
	Status              OpportunityStatus `json:"status" yaml:"status"`
	Deadline            *time.Time        `json:"deadline,omitempty" yaml:"deadline"`
	AwardedInvestmentID string            `json:"awarded_investment_id,omitempty" yaml:"awarded_investment_id"`
	LastReviewedAt      *time.Time        `json:"last_reviewed_at,omitempty" yaml:"last_reviewed_at"`
}

// Submission is a record proposed through the intake form, awaiting review.
type Submission struct {
	ID             string           `json:"id" yaml:"id"`
	EcosystemID    string           `json:"ecosystem_id" yaml:"ecosystem_id"`
	SubmissionType SubmissionType   `json:"submission_type" yaml:"submission_type"`
	Status         SubmissionStatus `json:"status" yaml:"status"`
	Payload        map[string]any   `json:"payload,omitempty" yaml:"payload"`
	SubmittedAt    *time.Time       `json:"submitted_at,omitempty" yaml:"submitted_at"`
}

// Title returns a display title drawn from the payload.
func (s Submission) Title() string {
	for _, key := range []string{"name", "title", "initiative_name"} {
		if v, ok := s.Payload[key].(string); ok && v != "" {
			return v
		}
	}
	return "Untitled " + string(s.SubmissionType) + " submission"
}
