package services

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaultCatalog(t *testing.T) {
	cat, err := LoadCatalog("")
	require.NoError(t, err)
	require.NotEmpty(t, cat.Plans)
	for _, p := range cat.Plans {
		assert.True(t, p.Bookable(), "plan %s should be bookable", p.ID)
	}
	assert.NotEmpty(t, cat.FAQs)
	assert.NotEmpty(t, cat.Coverage)
}

func TestLoadCatalogFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
plans:
  - id: lite
    name: Lite
    category: home
    price: KES 1,500
    features: [Unlimited]
`), 0644))

	cat, err := LoadCatalog(path)
	require.NoError(t, err)
	plan, ok := PlanByID(cat, "lite")
	require.True(t, ok)
	assert.Equal(t, "Lite", plan.Name)
}

func TestParseCatalogRejectsBadPlans(t *testing.T) {
	_, err := ParseCatalog([]byte("plans:\n  - name: No ID\n"))
	assert.ErrorContains(t, err, "no id")

	_, err = ParseCatalog([]byte("plans:\n  - id: a\n  - id: a\n"))
	assert.ErrorContains(t, err, "duplicate")

	_, err = ParseCatalog([]byte("plans: [:"))
	assert.Error(t, err)
}

func TestPlansByCategory(t *testing.T) {
	cat, err := LoadCatalog("")
	require.NoError(t, err)

	all := PlansByCategory(cat, "")
	home := PlansByCategory(cat, "HOME")
	business := PlansByCategory(cat, "business")
	assert.Len(t, all, len(cat.Plans))
	assert.Equal(t, len(all), len(home)+len(business))
	for _, p := range home {
		assert.EqualValues(t, "home", p.Category)
	}
}

func TestFindCoverage(t *testing.T) {
	cat, err := LoadCatalog("")
	require.NoError(t, err)

	area, ok := FindCoverage(cat, "  kilimani ")
	require.True(t, ok)
	assert.Equal(t, "live", area.Status)

	_, ok = FindCoverage(cat, "Atlantis")
	assert.False(t, ok)
}
