package post

import "time"

// Post is one blog entry, stored as a single markdown file with a structured
// header. Content is raw markdown; RenderedHTML is filled only on public
// reads.
type Post struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Author       string    `json:"author"`
	Excerpt      string    `json:"excerpt"`
	Content      string    `json:"content"`
	RenderedHTML string    `json:"rendered_html,omitempty"`
	Tags         []string  `json:"tags,omitempty"`
	Image        string    `json:"image,omitempty"`
	PublishDate  time.Time `json:"publish_date"`
	LastModified time.Time `json:"last_modified"`
	Published    bool      `json:"published"`
}
