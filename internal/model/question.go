package model

// Categories stamped on imported records so the source stays visible.
const (
	CategoryExcel  = "Excel Import"
	CategoryGitHub = "GitHub Import"
)

// Question is the domain model for a tracked practice question.
// Title+Link is its identity; there is no generated id.
type Question struct {
	Title     string `json:"title"`
	Link      string `json:"link"`
	Completed bool   `json:"completed"`
	Category  string `json:"category,omitempty"`
}

// Key is the dedup key of a question.
type Key struct {
	Title string
	Link  string
}

func (q Question) Key() Key { return Key{Title: q.Title, Link: q.Link} }
