package models

type PlanCategory string

const (
	PlanHome     PlanCategory = "home"
	PlanBusiness PlanCategory = "business"
)

type Plan struct {
	ID       string       `yaml:"id" json:"id"`
	Name     string       `yaml:"name" json:"name"`
	Category PlanCategory `yaml:"category" json:"category"`
	Speed    string       `yaml:"speed" json:"speed"`
	Price    string       `yaml:"price" json:"price"`
	Period   string       `yaml:"period" json:"period"`
	Features []string     `yaml:"features" json:"features"`
	Popular  bool         `yaml:"popular" json:"popular"`
}

// Bookable reports whether the plan carries everything the booking message
// needs.
func (p Plan) Bookable() bool {
	return p.Name != "" && p.Price != "" && len(p.Features) > 0
}

type Service struct {
	Title       string `yaml:"title" json:"title"`
	Description string `yaml:"description" json:"description"`
	Icon        string `yaml:"icon" json:"icon,omitempty"`
}

type FAQ struct {
	Question string `yaml:"question" json:"question"`
	Answer   string `yaml:"answer" json:"answer"`
	Category string `yaml:"category" json:"category,omitempty"`
}

type CoverageArea struct {
	Name   string `yaml:"name" json:"name"`
	Region string `yaml:"region" json:"region"`
	Status string `yaml:"status" json:"status"`
}

type About struct {
	Headline string   `yaml:"headline" json:"headline"`
	Story    string   `yaml:"story" json:"story"`
	Values   []string `yaml:"values" json:"values"`
}

type Catalog struct {
	Plans    []Plan         `yaml:"plans" json:"plans"`
	Services []Service      `yaml:"services" json:"services"`
	FAQs     []FAQ          `yaml:"faqs" json:"faqs"`
	Coverage []CoverageArea `yaml:"coverage" json:"coverage"`
	About    About          `yaml:"about" json:"about"`
}
