package catalog

import (
	_ "embed"
	"encoding/json"
	"fmt"
)

//go:embed programs.json
var programsJSON []byte

// Catalog holds the program reference data, loaded once and never mutated.
type Catalog struct {
	programs []Program
	byID     map[string]*Program
}

type programEntry struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Versions    []string `json:"versions"`
	HasParts    bool     `json:"hasParts"`
	Duration    string   `json:"duration"`
	Description string   `json:"description"`
}

// Load parses the embedded catalog and resolves audience buckets for every
// version tag.
func Load() (*Catalog, error) {
	return loadFrom(programsJSON)
}

func loadFrom(data []byte) (*Catalog, error) {
	var entries []programEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}

	c := &Catalog{byID: make(map[string]*Program, len(entries))}
	for _, e := range entries {
		if e.ID == "" || e.Name == "" {
			return nil, fmt.Errorf("catalog entry missing id or name: %+v", e)
		}
		if _, exists := c.byID[e.ID]; exists {
			return nil, fmt.Errorf("duplicate catalog id %q", e.ID)
		}
		p := Program{
			ID:          e.ID,
			Name:        e.Name,
			HasParts:    e.HasParts,
			Duration:    e.Duration,
			Description: e.Description,
		}
		for _, tag := range e.Versions {
			p.Versions = append(p.Versions, Version{Tag: tag, Audience: ClassifyVersion(tag)})
		}
		c.programs = append(c.programs, p)
		c.byID[p.ID] = nil
	}
	for i := range c.programs {
		c.byID[c.programs[i].ID] = &c.programs[i]
	}
	return c, nil
}

// Get returns a program by ID.
func (c *Catalog) Get(id string) (Program, bool) {
	p, ok := c.byID[id]
	if !ok {
		return Program{}, false
	}
	return *p, true
}

// All returns every program in catalog order.
func (c *Catalog) All() []Program {
	out := make([]Program, len(c.programs))
	copy(out, c.programs)
	return out
}
