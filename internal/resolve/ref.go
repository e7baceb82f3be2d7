// Package resolve infers entity links from soft references: denormalized
// names, comma-separated party lists, and free prose. Resolution is
// best-effort; unmatched input yields empty or Unresolved results and never
// an error.
package resolve

import "strings"

// RefKind distinguishes an absent reference from one that failed to match.
type RefKind int

const (
	// RefNone means the record carried no reference at all.
	RefNone RefKind = iota
	// RefResolved means the reference matched a known entity id.
	RefResolved
	// RefUnresolved means reference text was present but matched nothing.
	RefUnresolved
)

func (k RefKind) String() string {
	switch k {
	case RefResolved:
		return "resolved"
	case RefUnresolved:
		return "unresolved"
	default:
		return "none"
	}
}

// MarshalText encodes the kind by name.
func (k RefKind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

// Ref is the outcome of resolving one soft reference.
type Ref struct {
	Kind RefKind `json:"kind"`
	ID   string  `json:"id,omitempty"`
	Raw  string  `json:"raw,omitempty"`
}

// Resolved builds a Ref pointing at id.
func Resolved(id, raw string) Ref { return Ref{Kind: RefResolved, ID: id, Raw: raw} }

// Unresolved builds a Ref for text that matched nothing.
func Unresolved(raw string) Ref { return Ref{Kind: RefUnresolved, Raw: raw} }

// IsResolved reports whether the reference points at a known entity.
func (r Ref) IsResolved() bool { return r.Kind == RefResolved }

// Label returns the best display text for the reference.
func (r Ref) Label(names map[string]string) string {
	if r.Kind == RefResolved {
		if n, ok := names[r.ID]; ok {
			return n
		}
	}
	return strings.TrimSpace(r.Raw)
}
