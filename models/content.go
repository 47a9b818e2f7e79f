package models

type BlogPost struct {
	ID        string `json:"_id,omitempty"`
	Title     string `json:"title"`
	Category  string `json:"category"`
	Content   string `json:"content"`
	Excerpt   string `json:"excerpt,omitempty"`
	Author    string `json:"author,omitempty"`
	ImageURL  string `json:"imageUrl,omitempty"`
	CreatedAt string `json:"createdAt,omitempty"`
	UpdatedAt string `json:"updatedAt,omitempty"`
}

type PortfolioItem struct {
	ID          string `json:"_id,omitempty"`
	Title       string `json:"title"`
	Category    string `json:"category"`
	Description string `json:"description"`
	Client      string `json:"client,omitempty"`
	ImageURL    string `json:"imageUrl,omitempty"`
	CreatedAt   string `json:"createdAt,omitempty"`
	UpdatedAt   string `json:"updatedAt,omitempty"`
}

// Stats and Settings are owned by the backend; the dashboard only passes
// them through.
type Stats map[string]any

type Settings map[string]any
