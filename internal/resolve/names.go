package resolve

import (
	"strings"

	"go.uber.org/zap"

	"github.com/sells-group/practice-dashboard/internal/model"
)

// NameIndex maps lowercased organization names to ids, and ids back to the
// display name.
type NameIndex struct {
	byName map[string]string
	byID   map[string]string
}

// NewNameIndex builds a NameIndex. When two organizations share a name
// (case-insensitively) the first one wins.
func NewNameIndex(orgs []model.Organization) *NameIndex {
	idx := &NameIndex{
		byName: make(map[string]string, len(orgs)),
		byID:   make(map[string]string, len(orgs)),
	}
	for _, o := range orgs {
		if o.ID == "" {
			continue
		}
		idx.byID[o.ID] = o.Name
		key := normalizeName(o.Name)
		if key == "" {
			continue
		}
		if _, dup := idx.byName[key]; dup {
			continue
		}
		idx.byName[key] = o.ID
	}
	return idx
}

// Lookup returns the id of the organization whose name matches name
// case-insensitively.
func (n *NameIndex) Lookup(name string) (string, bool) {
	id, ok := n.byName[normalizeName(name)]
	return id, ok
}

// Name returns the display name for an organization id.
func (n *NameIndex) Name(id string) (string, bool) {
	name, ok := n.byID[id]
	return name, ok
}

// Names exposes the id→name table for Ref.Label.
func (n *NameIndex) Names() map[string]string { return n.byID }

// OrgRef resolves a record's organization reference. A known id wins; an
// unknown id falls back to the name; a present but unmatched name (or an
// unknown id with no name) is Unresolved.
func (n *NameIndex) OrgRef(orgID, name string) Ref {
	if orgID != "" {
		if _, ok := n.byID[orgID]; ok {
			return Resolved(orgID, name)
		}
	}
	if strings.TrimSpace(name) != "" {
		if id, ok := n.Lookup(name); ok {
			return Resolved(id, name)
		}
		return Unresolved(name)
	}
	if orgID != "" {
		return Unresolved(orgID)
	}
	return Ref{}
}

// InvolvedRefs parses a comma-separated party list and resolves each token.
func (n *NameIndex) InvolvedRefs(involved string) []Ref {
	tokens := ParseInvolved(involved)
	refs := make([]Ref, 0, len(tokens))
	for _, tok := range tokens {
		if id, ok := n.byName[tok]; ok {
			refs = append(refs, Resolved(id, tok))
			continue
		}
		refs = append(refs, Unresolved(tok))
	}
	return refs
}

// InvolvedOrgIDs returns the distinct organization ids named in a party list,
// in order of first mention. Unmatched tokens are dropped.
func (n *NameIndex) InvolvedOrgIDs(involved string) []string {
	var ids []string
	seen := make(map[string]bool)
	for _, ref := range n.InvolvedRefs(involved) {
		if !ref.IsResolved() {
			zap.L().Debug("resolve: involved party unmatched", zap.String("token", ref.Raw))
			continue
		}
		if seen[ref.ID] {
			continue
		}
		seen[ref.ID] = true
		ids = append(ids, ref.ID)
	}
	return ids
}

// ParseInvolved splits a party list on commas, strips parenthetical
// annotations, and returns the trimmed, lowercased, non-empty tokens.
func ParseInvolved(involved string) []string {
	if strings.TrimSpace(involved) == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(stripParentheticals(involved), ",") {
		if tok := normalizeName(part); tok != "" {
			out = append(out, tok)
		}
	}
	return out
}

// stripParentheticals removes "(...)" spans. An unclosed "(" drops the rest
// of the input.
func stripParentheticals(s string) string {
	var b strings.Builder
	depth := 0
	for _, r := range s {
		switch {
		case r == '(':
			depth++
		case r == ')' && depth > 0:
			depth--
		case depth == 0:
			b.WriteRune(r)
		}
	}
	return b.String()
}

func normalizeName(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}
