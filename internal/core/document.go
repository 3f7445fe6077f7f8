package core

type Category string

const (
	CategoryPrinciples     Category = "principles"
	CategoryAIDevelopment  Category = "ai_development"
	CategoryQuickReference Category = "quick_reference"
	CategoryTemplates      Category = "templates"
	CategoryGeneral        Category = "general"
)

// Document is a single reference text loaded from the knowledge directory.
type Document struct {
	Key      string   `json:"key"`
	Title    string   `json:"title"`
	Content  string   `json:"content"`
	Path     string   `json:"path"`
	Category Category `json:"category"`
}

// ScoredDocument is a Document with its relevance score for one query.
type ScoredDocument struct {
	Document
	Score int `json:"score"`
}
