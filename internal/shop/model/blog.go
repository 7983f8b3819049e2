package model

type BlogPost struct {
	ID       string   `json:"id" yaml:"id"`
	Slug     string   `json:"slug" yaml:"slug"`
	Title    string   `json:"title" yaml:"title"`
	Subtitle string   `json:"subtitle" yaml:"subtitle"`
	Category string   `json:"category" yaml:"category"`
	Author   string   `json:"author" yaml:"author"`
	Date     string   `json:"date" yaml:"date"`
	Image    string   `json:"image" yaml:"image"`
	Content  []string `json:"content" yaml:"content"`
	Excerpt  string   `json:"excerpt,omitempty" yaml:"excerpt"`
}
