package store

import (
	"context"
	"encoding/json"
	"time"

	"github.com/rotisserie/eris"
)

// Kind names a persisted record set.
type Kind string

const (
	KindOrganization Kind = "organization"
	KindPractitioner Kind = "practitioner"
	KindInvestment   Kind = "investment"
	KindDecision     Kind = "decision"
	KindOpportunity  Kind = "opportunity"
	KindNarrative    Kind = "narrative"
	KindPrecedent    Kind = "precedent"
	KindSubmission   Kind = "submission"
)

// Kinds lists every record set.
var Kinds = []Kind{
	KindOrganization, KindPractitioner, KindInvestment, KindDecision,
	KindOpportunity, KindNarrative, KindPrecedent, KindSubmission,
}

// Record is one stored entity as its JSON document.
type Record struct {
	ID        string          `json:"id"`
	Data      json.RawMessage `json:"data"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// Reader lists record documents for one ecosystem in insertion order.
type Reader interface {
	ListRecords(ctx context.Context, ecosystemID string, kind Kind) ([]Record, error)
}

// Store defines the persistence interface for dashboard records.
type Store interface {
	Reader

	// PutRecords inserts or replaces records by (ecosystem, kind, id).
	// Replaced records keep their original position.
	PutRecords(ctx context.Context, ecosystemID string, kind Kind, records []Record) (int64, error)
	CountRecords(ctx context.Context, ecosystemID string) (map[Kind]int, error)

	// Lifecycle
	Ping(ctx context.Context) error
	Migrate(ctx context.Context) error
	Close() error
}

// List decodes every record of kind into T.
func List[T any](ctx context.Context, r Reader, ecosystemID string, kind Kind) ([]T, error) {
	recs, err := r.ListRecords(ctx, ecosystemID, kind)
	if err != nil {
		return nil, err
	}
	out := make([]T, 0, len(recs))
	for _, rec := range recs {
		var v T
		if err := json.Unmarshal(rec.Data, &v); err != nil {
			return nil, eris.Wrapf(err, "store: decode %s %s", kind, rec.ID)
		}
		out = append(out, v)
	}
	return out, nil
}
