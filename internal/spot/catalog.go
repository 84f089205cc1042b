package spot

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Catalog is the read-only set of spots, grouped by season. A spot may be
// listed under several seasons as long as every entry with that name is the
// same record.
type Catalog struct {
	bySeason map[Season][]Spot
	byName   map[string]Spot
	byFold   map[string]string // lowercased name -> name
}

// LoadCatalog reads a season -> spots mapping from a .json, .yaml or .yml file.
func LoadCatalog(path string) (*Catalog, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var doc map[string][]Spot
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(raw, &doc)
	default:
		err = json.Unmarshal(raw, &doc)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse catalog %s: %w", path, err)
	}

	return NewCatalog(doc)
}

func NewCatalog(doc map[string][]Spot) (*Catalog, error) {
	if len(doc) == 0 {
		return nil, fmt.Errorf("spot catalog is empty")
	}

	c := &Catalog{
		bySeason: make(map[Season][]Spot, len(doc)),
		byName:   make(map[string]Spot),
		byFold:   make(map[string]string),
	}

	for key, spots := range doc {
		season, err := ParseSeason(key)
		if err != nil {
			return nil, err
		}
		if _, dup := c.bySeason[season]; dup {
			return nil, fmt.Errorf("season %q listed twice", season)
		}

		seen := map[string]bool{}
		for i, sp := range spots {
			if strings.TrimSpace(sp.Name) == "" {
				return nil, fmt.Errorf("missing name at %s[%d]", season, i)
			}
			if seen[sp.Name] {
				return nil, fmt.Errorf("duplicate spot %q in %s", sp.Name, season)
			}
			seen[sp.Name] = true

			if prev, ok := c.byName[sp.Name]; ok && prev != sp {
				return nil, fmt.Errorf("spot %q defined differently across seasons", sp.Name)
			}
			fold := strings.ToLower(sp.Name)
			if other, ok := c.byFold[fold]; ok && other != sp.Name {
				return nil, fmt.Errorf("spot %q differs only in case from %q", sp.Name, other)
			}
			c.byFold[fold] = sp.Name
			c.byName[sp.Name] = sp
		}
		c.bySeason[season] = append([]Spot(nil), spots...)
	}

	return c, nil
}

func (c *Catalog) BySeason(s Season) []Spot {
	return append([]Spot(nil), c.bySeason[s]...)
}

func (c *Catalog) ByName(name string) (Spot, bool) {
	sp, ok := c.byName[name]
	return sp, ok
}

// Find matches name case-insensitively.
func (c *Catalog) Find(name string) (Spot, bool) {
	if sp, ok := c.byName[name]; ok {
		return sp, true
	}
	if n, ok := c.byFold[strings.ToLower(strings.TrimSpace(name))]; ok {
		return c.byName[n], true
	}
	return Spot{}, false
}

// All lists every spot once, walking seasons in calendar order.
func (c *Catalog) All() []Spot {
	out := make([]Spot, 0, len(c.byName))
	seen := make(map[string]bool, len(c.byName))
	for _, s := range Seasons() {
		for _, sp := range c.bySeason[s] {
			if seen[sp.Name] {
				continue
			}
			seen[sp.Name] = true
			out = append(out, sp)
		}
	}
	return out
}

func (c *Catalog) Count() int { return len(c.byName) }
