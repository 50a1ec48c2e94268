package domain

// About is the company page content.
type About struct {
	Title      string      `json:"title" yaml:"title"`
	Tagline    string      `json:"tagline" yaml:"tagline"`
	Story      []string    `json:"story" yaml:"story"`
	Highlights []Highlight `json:"highlights" yaml:"highlights"`
}

type Highlight struct {
	Title       string `json:"title" yaml:"title"`
	Description string `json:"description" yaml:"description"`
}
