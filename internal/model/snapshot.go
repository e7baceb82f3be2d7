package model

// Snapshot is the complete, read-only set of records for one ecosystem,
// fetched once per request.
type Snapshot struct {
	EcosystemID   string         `json:"ecosystem_id"`
	Organizations []Organization `json:"organizations"`
	Practitioners []Practitioner `json:"practitioners"`
	Investments   []Investment   `json:"investments"`
	Decisions     []Decision     `json:"decisions"`
	Opportunities []Opportunity  `json:"opportunities"`
	Narratives    []Narrative    `json:"narratives"`
	Precedents    []Precedent    `json:"precedents"`
	Submissions   []Submission   `json:"submissions"`
}

// AttentionKind names the source record type of an attention item.
type AttentionKind string

const (
	AttentionDecision   AttentionKind = "decision"
	AttentionSubmission AttentionKind = "submission"
	AttentionStale      AttentionKind = "stale"
)

// AttentionItem is one row of the attention queue. It is derived on every
// query and never persisted.
type AttentionItem struct {
	Kind        AttentionKind `json:"kind"`
	UrgencyRank int           `json:"urgency_rank"`
	ID          string        `json:"id"`
	Title       string        `json:"title"`
	Subtitle    string        `json:"subtitle,omitempty"`
	Badge       string        `json:"badge,omitempty"`
	ActionText  string        `json:"action_text"`
	TargetPath  string        `json:"target_path"`
}
