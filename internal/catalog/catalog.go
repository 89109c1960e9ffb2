// Package catalog holds the static exercise tables consulted by the parser:
// alias → canonical name, per-exercise category/equipment/muscles, and base
// bar weights. The data is embedded at build time and loaded once; a loaded
// Catalog is immutable and safe for unsynchronized concurrent reads.
package catalog

import (
	_ "embed"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/claude/replog/internal/models"
	"gopkg.in/yaml.v3"
)

//go:embed data.yaml
var rawData []byte

// Exercise is one catalog entry.
type Exercise struct {
	Name      string
	Category  models.Category
	Equipment models.Equipment
	Muscles   []string
}

// Catalog is the loaded, immutable exercise dictionary.
type Catalog struct {
	byAlias     map[string]string   // lower-cased alias -> canonical name
	aliasKeys   []string            // alias keys, longest first, lexical tie-break
	byName      map[string]Exercise // lower-cased canonical name -> entry
	names       []string            // canonical names, sorted
	baseWeights map[models.Equipment]float64
}

type fileExercise struct {
	Name      string   `yaml:"name"`
	Aliases   []string `yaml:"aliases"`
	Category  string   `yaml:"category"`
	Equipment string   `yaml:"equipment"`
	Muscles   []string `yaml:"muscles"`
}

type fileData struct {
	Exercises   []fileExercise     `yaml:"exercises"`
	BaseWeights map[string]float64 `yaml:"base_weights"`
}

// Load parses the embedded catalog data. Duplicate aliases are an error —
// lookup order must never depend on incidental file layout.
func Load() (*Catalog, error) {
	var data fileData
	if err := yaml.Unmarshal(rawData, &data); err != nil {
		return nil, fmt.Errorf("parsing catalog data: %w", err)
	}

	c := &Catalog{
		byAlias:     make(map[string]string),
		byName:      make(map[string]Exercise),
		baseWeights: make(map[models.Equipment]float64, len(data.BaseWeights)),
	}

	for _, fe := range data.Exercises {
		if fe.Name == "" {
			return nil, fmt.Errorf("catalog entry with empty name")
		}
		nameKey := strings.ToLower(fe.Name)
		if _, dup := c.byName[nameKey]; dup {
			return nil, fmt.Errorf("duplicate catalog exercise %q", fe.Name)
		}
		c.byName[nameKey] = Exercise{
			Name:      fe.Name,
			Category:  models.Category(fe.Category),
			Equipment: models.Equipment(fe.Equipment),
			Muscles:   fe.Muscles,
		}
		c.names = append(c.names, fe.Name)

		// The canonical name is always an alias for itself.
		aliases := append([]string{nameKey}, fe.Aliases...)
		for _, a := range aliases {
			key := strings.ToLower(strings.TrimSpace(a))
			if key == "" {
				continue
			}
			if existing, dup := c.byAlias[key]; dup && existing != fe.Name {
				return nil, fmt.Errorf("alias %q maps to both %q and %q", key, existing, fe.Name)
			}
			c.byAlias[key] = fe.Name
		}
	}

	for eq, w := range data.BaseWeights {
		if w < 0 {
			return nil, fmt.Errorf("negative base weight for %q", eq)
		}
		c.baseWeights[models.Equipment(eq)] = w
	}

	c.aliasKeys = make([]string, 0, len(c.byAlias))
	for k := range c.byAlias {
		c.aliasKeys = append(c.aliasKeys, k)
	}
	// Longest first so multi-word phrases beat their substrings; lexical
	// tie-break keeps equal-length scans deterministic.
	sort.Slice(c.aliasKeys, func(i, j int) bool {
		if len(c.aliasKeys[i]) != len(c.aliasKeys[j]) {
			return len(c.aliasKeys[i]) > len(c.aliasKeys[j])
		}
		return c.aliasKeys[i] < c.aliasKeys[j]
	})
	sort.Strings(c.names)

	return c, nil
}

var (
	defaultOnce sync.Once
	defaultCat  *Catalog
	defaultErr  error
)

// Default returns the process-wide catalog, loading it on first use.
func Default() (*Catalog, error) {
	defaultOnce.Do(func() {
		defaultCat, defaultErr = Load()
	})
	return defaultCat, defaultErr
}

// CanonicalFor resolves an alias (exact, case-insensitive) to its canonical
// exercise name.
func (c *Catalog) CanonicalFor(alias string) (string, bool) {
	name, ok := c.byAlias[strings.ToLower(strings.TrimSpace(alias))]
	return name, ok
}

// AliasKeys returns all alias keys sorted longest-first with a lexical
// tie-break. Callers must not mutate the returned slice.
func (c *Catalog) AliasKeys() []string {
	return c.aliasKeys
}

// Lookup returns the catalog entry for a canonical name (case-insensitive).
func (c *Catalog) Lookup(name string) (Exercise, bool) {
	e, ok := c.byName[strings.ToLower(strings.TrimSpace(name))]
	return e, ok
}

// Names returns all canonical names in sorted order. Callers must not mutate
// the returned slice.
func (c *Catalog) Names() []string {
	return c.names
}

// BaseWeight returns the empty-implement weight in pounds for equipment that
// has one (barbell, EZ bar, trap bar, Smith machine).
func (c *Catalog) BaseWeight(eq models.Equipment) (float64, bool) {
	w, ok := c.baseWeights[eq]
	return w, ok
}
