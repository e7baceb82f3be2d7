package chain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/practice-dashboard/internal/model"
)

func lookupOf(invs ...model.Investment) MapLookup {
	m := MapLookup{
		ByID:       make(map[string]model.Investment),
		ByBuildsOn: make(map[string][]model.Investment),
	}
	for _, inv := range invs {
		m.ByID[inv.ID] = inv
		if inv.BuildsOnID != "" {
			m.ByBuildsOn[inv.BuildsOnID] = append(m.ByBuildsOn[inv.BuildsOnID], inv)
		}
	}
	return m
}

func chainIDs(c Chain) []string {
	var out []string
	for _, inv := range c.Investments() {
		out = append(out, inv.ID)
	}
	return out
}

func TestBuild_MiddleOfChain(t *testing.T) {
	x := model.Investment{ID: "X"}
	y := model.Investment{ID: "Y", BuildsOnID: "X"}
	z := model.Investment{ID: "Z", BuildsOnID: "Y"}
	lk := lookupOf(x, y, z)

	c := Build(y, lk)
	assert.Equal(t, []string{"X", "Y", "Z"}, chainIDs(c))
	assert.Equal(t, RoleAncestor, c.Links[0].Role)
	assert.Equal(t, RoleFocal, c.Links[1].Role)
	assert.Equal(t, RoleChild, c.Links[2].Role)
	assert.False(t, c.CycleDetected)
	assert.True(t, c.HasConnections())
}

func TestBuild_AncestorsOldestFirstDescendantsNearestFirst(t *testing.T) {
	a := model.Investment{ID: "A", LedToID: "B"}
	b := model.Investment{ID: "B", BuildsOnID: "A", LedToID: "C"}
	c := model.Investment{ID: "C", BuildsOnID: "B", LedToID: "D"}
	d := model.Investment{ID: "D", BuildsOnID: "C"}
	lk := lookupOf(a, b, c, d)

	assert.Equal(t, []string{"A", "B", "C", "D"}, chainIDs(Build(b, lk)))
	assert.Equal(t, []string{"A", "B", "C", "D"}, chainIDs(Build(d, lk)))
	assert.Equal(t, []string{"A", "B", "C", "D"}, chainIDs(Build(a, lk)))
}

func TestBuild_SiblingsAfterLedTo(t *testing.T) {
	root := model.Investment{ID: "R", LedToID: "A"}
	a := model.Investment{ID: "A", BuildsOnID: "R"}
	b := model.Investment{ID: "B", BuildsOnID: "R"}
	c := model.Investment{ID: "C", BuildsOnID: "R"}
	lk := lookupOf(root, a, b, c)

	got := Build(root, lk)
	assert.Equal(t, []string{"R", "A", "B", "C"}, chainIDs(got))
	assert.Equal(t, RoleDescendant, got.Links[1].Role)
	assert.Equal(t, RoleChild, got.Links[2].Role)
}

func TestBuild_TwoNodeCycle(t *testing.T) {
	a := model.Investment{ID: "A", BuildsOnID: "B"}
	b := model.Investment{ID: "B", BuildsOnID: "A"}
	lk := lookupOf(a, b)

	got := Build(a, lk)
	assert.Equal(t, []string{"B", "A"}, chainIDs(got))
	assert.True(t, got.CycleDetected)
}

func TestBuild_LedToCycle(t *testing.T) {
	a := model.Investment{ID: "A", LedToID: "B"}
	b := model.Investment{ID: "B", LedToID: "C"}
	c := model.Investment{ID: "C", LedToID: "A"}
	lk := lookupOf(a, b, c)

	got := Build(a, lk)
	assert.Equal(t, []string{"A", "B", "C"}, chainIDs(got))
	assert.True(t, got.CycleDetected)
}

func TestBuild_SelfReference(t *testing.T) {
	a := model.Investment{ID: "A", BuildsOnID: "A", LedToID: "A"}
	got := Build(a, lookupOf(a))
	assert.Equal(t, []string{"A"}, chainIDs(got))
	assert.True(t, got.CycleDetected)
	assert.False(t, got.HasConnections())
}

func TestBuild_CrossDirectionCycle(t *testing.T) {
	// A builds on B and also led to B: B must appear once.
	a := model.Investment{ID: "A", BuildsOnID: "B", LedToID: "B"}
	b := model.Investment{ID: "B"}
	got := Build(a, lookupOf(a, b))
	assert.Equal(t, []string{"B", "A"}, chainIDs(got))
}

func TestBuild_DanglingLinks(t *testing.T) {
	a := model.Investment{ID: "A", BuildsOnID: "missing", LedToID: "also-missing"}
	got := Build(a, lookupOf(a))
	require.Equal(t, 1, got.Len())
	assert.False(t, got.HasConnections())
	assert.False(t, got.CycleDetected)
}

func TestBuild_EmptyLookup(t *testing.T) {
	got := Build(model.Investment{ID: "solo"}, MapLookup{})
	assert.Equal(t, []string{"solo"}, chainIDs(got))
}
