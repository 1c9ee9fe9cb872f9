package postfile

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/brightertomorrows/website-backend/internal/domain/post"
)

// delimiter terminates the header block. The files are meant to be edited by
// hand, so parsing leans on YAML and tolerates loose formatting; writing is
// strict (quoted scalars, bracketed lists) so round trips are stable.
const delimiter = "---"

type header struct {
	Title        string   `yaml:"title"`
	Author       string   `yaml:"author"`
	Excerpt      string   `yaml:"excerpt"`
	Tags         []string `yaml:"tags"`
	Image        string   `yaml:"image"`
	PublishDate  string   `yaml:"publishDate"`
	LastModified string   `yaml:"lastModified"`
	Published    bool     `yaml:"published"`
}

// encode serializes a post to its file form. Header keys with empty values
// are dropped entirely, never written as empty.
func encode(p *post.Post) []byte {
	var b strings.Builder
	b.WriteString(delimiter + "\n")
	writeScalar(&b, "title", p.Title)
	writeScalar(&b, "author", p.Author)
	writeScalar(&b, "excerpt", p.Excerpt)
	if len(p.Tags) > 0 {
		quoted := make([]string, len(p.Tags))
		for i, tag := range p.Tags {
			quoted[i] = strconv.Quote(tag)
		}
		fmt.Fprintf(&b, "tags: [%s]\n", strings.Join(quoted, ", "))
	}
	writeScalar(&b, "image", p.Image)
	if !p.PublishDate.IsZero() {
		writeScalar(&b, "publishDate", p.PublishDate.UTC().Format(time.RFC3339))
	}
	if !p.LastModified.IsZero() {
		writeScalar(&b, "lastModified", p.LastModified.UTC().Format(time.RFC3339))
	}
	if p.Published {
		b.WriteString("published: true\n")
	}
	b.WriteString(delimiter + "\n")
	b.WriteString(p.Content)
	return []byte(b.String())
}

func writeScalar(b *strings.Builder, key, value string) {
	if value == "" {
		return
	}
	fmt.Fprintf(b, "%s: %s\n", key, strconv.Quote(value))
}

// parse reads a post back from its file form. The identifier comes from the
// filename, not the header.
func parse(id string, data []byte) (*post.Post, error) {
	text := strings.ReplaceAll(string(data), "\r\n", "\n")
	lines := strings.Split(text, "\n")
	if len(lines) == 0 || strings.TrimSpace(lines[0]) != delimiter {
		return nil, fmt.Errorf("missing header delimiter")
	}

	end := -1
	for i := 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == delimiter {
			end = i
			break
		}
	}
	if end < 0 {
		return nil, fmt.Errorf("unterminated header block")
	}

	var h header
	headerText := strings.Join(lines[1:end], "\n")
	if err := yaml.Unmarshal([]byte(headerText), &h); err != nil {
		return nil, fmt.Errorf("parse header: %w", err)
	}

	p := &post.Post{
		ID:        id,
		Title:     h.Title,
		Author:    h.Author,
		Excerpt:   h.Excerpt,
		Tags:      h.Tags,
		Image:     h.Image,
		Published: h.Published,
		Content:   strings.Join(lines[end+1:], "\n"),
	}

	var err error
	if p.PublishDate, err = parseTime(h.PublishDate); err != nil {
		return nil, fmt.Errorf("parse publishDate: %w", err)
	}
	if p.LastModified, err = parseTime(h.LastModified); err != nil {
		return nil, fmt.Errorf("parse lastModified: %w", err)
	}
	return p, nil
}

func parseTime(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	return time.Parse(time.RFC3339, s)
}
