// Package seed decodes data-entry YAML files into store records.
package seed

import (
	"context"
	"encoding/json"
	"io"
	"os"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/sells-group/practice-dashboard/internal/model"
	"github.com/sells-group/practice-dashboard/internal/store"
)

// File is the top-level layout of a seed file.
type File struct {
	EcosystemID   string               `yaml:"ecosystem_id"`
	Organizations []model.Organization `yaml:"organizations"`
	Practitioners []model.Practitioner `yaml:"practitioners"`
	Investments   []model.Investment   `yaml:"investments"`
	Decisions     []model.Decision     `yaml:"decisions"`
	Opportunities []model.Opportunity  `yaml:"opportunities"`
	Narratives    []model.Narrative    `yaml:"narratives"`
	Precedents    []model.Precedent    `yaml:"precedents"`
	Submissions   []model.Submission   `yaml:"submissions"`
}

// Decode parses a seed file. Unknown keys are rejected so typos surface.
func Decode(r io.Reader) (*File, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	var f File
	if err := dec.Decode(&f); err != nil {
		if err == io.EOF {
			return &f, nil
		}
		return nil, eris.Wrap(err, "seed: decode yaml")
	}
	return &f, nil
}

// ReadFile opens and decodes the seed file at path.
func ReadFile(path string) (*File, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, eris.Wrapf(err, "seed: open %s", path)
	}
	defer fh.Close() //nolint:errcheck
	return Decode(fh)
}

// Records converts the file into store records for ecosystemID, which
// overrides the file's own ecosystem_id when non-empty. Records without an
// id get a fresh UUID.
func (f *File) Records(ecosystemID string) (string, map[store.Kind][]store.Record, error) {
	eco := ecosystemID
	if eco == "" {
		eco = f.EcosystemID
	}
	if eco == "" {
		return "", nil, eris.New("seed: ecosystem id is required")
	}

	out := make(map[store.Kind][]store.Record)
	add := func(kind store.Kind, id *string, ecoField *string, v any) error {
		if *id == "" {
			*id = uuid.New().String()
		}
		*ecoField = eco
		data, err := json.Marshal(v)
		if err != nil {
			return eris.Wrapf(err, "seed: marshal %s %s", kind, *id)
		}
		out[kind] = append(out[kind], store.Record{ID: *id, Data: data})
		return nil
	}

	for i := range f.Organizations {
		r := &f.Organizations[i]
		if err := add(store.KindOrganization, &r.ID, &r.EcosystemID, r); err != nil {
			return "", nil, err
		}
	}
	for i := range f.Practitioners {
		r := &f.Practitioners[i]
		if err := add(store.KindPractitioner, &r.ID, &r.EcosystemID, r); err != nil {
			return "", nil, err
		}
	}
	for i := range f.Investments {
		r := &f.Investments[i]
		if err := add(store.KindInvestment, &r.ID, &r.EcosystemID, r); err != nil {
			return "", nil, err
		}
	}
	for i := range f.Decisions {
		r := &f.Decisions[i]
		if err := add(store.KindDecision, &r.ID, &r.EcosystemID, r); err != nil {
			return "", nil, err
		}
	}
	for i := range f.Opportunities {
		r := &f.Opportunities[i]
		if err := add(store.KindOpportunity, &r.ID, &r.EcosystemID, r); err != nil {
			return "", nil, err
		}
	}
	for i := range f.Narratives {
		r := &f.Narratives[i]
		if err := add(store.KindNarrative, &r.ID, &r.EcosystemID, r); err != nil {
			return "", nil, err
		}
	}
	for i := range f.Precedents {
		r := &f.Precedents[i]
		if err := add(store.KindPrecedent, &r.ID, &r.EcosystemID, r); err != nil {
			return "", nil, err
		}
	}
	for i := range f.Submissions {
		r := &f.Submissions[i]
		if err := add(store.KindSubmission, &r.ID, &r.EcosystemID, r); err != nil {
			return "", nil, err
		}
	}
	return eco, out, nil
}

// Apply writes every record set of f to st and returns per-kind counts.
func Apply(ctx context.Context, st store.Store, ecosystemID string, f *File) (map[store.Kind]int64, error) {
	eco, byKind, err := f.Records(ecosystemID)
	if err != nil {
		return nil, err
	}

	written := make(map[store.Kind]int64)
	for _, kind := range store.Kinds {
		recs := byKind[kind]
		if len(recs) == 0 {
			continue
		}
		n, err := st.PutRecords(ctx, eco, kind, recs)
		if err != nil {
			return written, eris.Wrapf(err, "seed: write %s", kind)
		}
		written[kind] = n
		zap.L().Info("seed: wrote records",
			zap.String("ecosystem_id", eco),
			zap.String("kind", string(kind)),
			zap.Int64("count", n),
		)
	}
	return written, nil
}
