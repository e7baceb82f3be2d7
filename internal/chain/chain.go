// Package chain materializes the causal builds-on / led-to sequence around
// a focal investment.
package chain

import (
	"slices"

	"go.uber.org/zap"

	"github.com/sells-group/practice-dashboard/internal/model"
)

// Role places an investment relative to the focal investment.
type Role string

const (
	RoleAncestor   Role = "ancestor"
	RoleFocal      Role = "focal"
	RoleDescendant Role = "descendant"
	RoleChild      Role = "child"
)

// Link is one position in a chain.
type Link struct {
	Investment model.Investment `json:"investment"`
	Role       Role             `json:"role"`
}

// Chain is the ordered ancestor → focal → descendant sequence.
type Chain struct {
	Links []Link `json:"links"`
	// CycleDetected is set when a walk stopped on an already-visited id.
	CycleDetected bool `json:"cycle_detected"`
}

// Len returns the number of investments in the chain.
func (c Chain) Len() int { return len(c.Links) }

// HasConnections reports whether the chain holds more than the focal
// investment. Callers suppress chain display when it is false.
func (c Chain) HasConnections() bool { return len(c.Links) > 1 }

// Investments returns the chain members in order.
func (c Chain) Investments() []model.Investment {
	out := make([]model.Investment, len(c.Links))
	for i, l := range c.Links {
		out[i] = l.Investment
	}
	return out
}

// Lookup resolves investments by id and by the id they build on.
type Lookup interface {
	Investment(id string) (model.Investment, bool)
	Children(id string) []model.Investment
}

// MapLookup adapts the plain index maps to Lookup.
type MapLookup struct {
	ByID       map[string]model.Investment
	ByBuildsOn map[string][]model.Investment
}

func (m MapLookup) Investment(id string) (model.Investment, bool) {
	inv, ok := m.ByID[id]
	return inv, ok
}

func (m MapLookup) Children(id string) []model.Investment { return m.ByBuildsOn[id] }

// Build walks buildsOn links back to the oldest ancestor and ledTo links
// forward, then appends investments that build on the focal one but were
// not reached through ledTo. Every investment appears at most once; a walk
// stops the moment it meets an id already in the chain, so cyclic data
// yields a finite partial chain.
func Build(focal model.Investment, lk Lookup) Chain {
	var c Chain
	seen := map[string]bool{focal.ID: true}

	var ancestors []Link
	for id := focal.BuildsOnID; id != ""; {
		if seen[id] {
			c.CycleDetected = true
			break
		}
		inv, ok := lk.Investment(id)
		if !ok {
			break
		}
		seen[id] = true
		ancestors = append(ancestors, Link{Investment: inv, Role: RoleAncestor})
		id = inv.BuildsOnID
	}
	slices.Reverse(ancestors)

	c.Links = append(ancestors, Link{Investment: focal, Role: RoleFocal})

	for id := focal.LedToID; id != ""; {
		if seen[id] {
			c.CycleDetected = true
			break
		}
		inv, ok := lk.Investment(id)
		if !ok {
			break
		}
		seen[id] = true
		c.Links = append(c.Links, Link{Investment: inv, Role: RoleDescendant})
		id = inv.LedToID
	}

	if focal.ID != "" {
		for _, child := range lk.Children(focal.ID) {
			if seen[child.ID] {
				continue
			}
			seen[child.ID] = true
			c.Links = append(c.Links, Link{Investment: child, Role: RoleChild})
		}
	}

	if c.CycleDetected {
		zap.L().Debug("chain: cycle cut off",
			zap.String("investment_id", focal.ID),
			zap.Int("length", len(c.Links)),
		)
	}
	return c
}
