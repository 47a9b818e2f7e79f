package services

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"optimasfibre-web/models"

	"gopkg.in/yaml.v3"
)

//go:embed data/catalog.yaml
var defaultCatalog []byte

// LoadCatalog reads the site catalog from path, or the built-in catalog when
// path is empty.
func LoadCatalog(path string) (*models.Catalog, error) {
	data := defaultCatalog
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading catalog: %w", err)
		}
		data = b
	}
	return ParseCatalog(data)
}

func ParseCatalog(data []byte) (*models.Catalog, error) {
	var cat models.Catalog
	if err := yaml.Unmarshal(data, &cat); err != nil {
		return nil, fmt.Errorf("parsing catalog: %w", err)
	}

	seen := make(map[string]bool, len(cat.Plans))
	for i, p := range cat.Plans {
		if p.ID == "" {
			return nil, fmt.Errorf("plan %d has no id", i)
		}
		if seen[p.ID] {
			return nil, fmt.Errorf("duplicate plan id %q", p.ID)
		}
		seen[p.ID] = true
	}
	return &cat, nil
}

// PlanByID returns the plan with the given id.
func PlanByID(cat *models.Catalog, id string) (models.Plan, bool) {
	for _, p := range cat.Plans {
		if p.ID == id {
			return p, true
		}
	}
	return models.Plan{}, false
}

// PlansByCategory returns every plan when category is empty.
func PlansByCategory(cat *models.Catalog, category string) []models.Plan {
	out := make([]models.Plan, 0, len(cat.Plans))
	for _, p := range cat.Plans {
		if category == "" || strings.EqualFold(string(p.Category), category) {
			out = append(out, p)
		}
	}
	return out
}

// FindCoverage looks an area up by name, ignoring case and surrounding space.
func FindCoverage(cat *models.Catalog, area string) (models.CoverageArea, bool) {
	area = strings.TrimSpace(area)
	for _, a := range cat.Coverage {
		if strings.EqualFold(a.Name, area) {
			return a, true
		}
	}
	return models.CoverageArea{}, false
}
