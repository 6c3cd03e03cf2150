// Package catalog loads the static verb catalog embedded in the binary.
// The catalog is read once at startup and queried read-only afterwards.
package catalog

import (
	"embed"
	"encoding/json"
	"fmt"

	"github.com/samber/lo"

	"github.com/eslsoft/parlato/internal/entity"
	"github.com/eslsoft/parlato/internal/grammar"
)

//go:embed data/verbs.json
var catalogData embed.FS

// Catalog is the immutable in-memory verb catalog.
type Catalog struct {
	entries []entity.VerbEntry
	byKey   map[string]entity.VerbEntry
}

// Load parses and indexes the embedded catalog.
func Load() (*Catalog, error) {
	raw, err := catalogData.ReadFile("data/verbs.json")
	if err != nil {
		return nil, fmt.Errorf("read embedded catalog: %w", err)
	}

	var entries []entity.VerbEntry
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("catalog is empty")
	}

	byKey := make(map[string]entity.VerbEntry, len(entries))
	for i := range entries {
		entry := &entries[i]
		entry.Infinitive = entity.CanonicalInfinitive(entry.Infinitive)
		if entry.Infinitive == "" || entry.Translation == "" {
			return nil, fmt.Errorf("catalog entry %d missing infinitive or translation", i)
		}
		entry.Level = entity.NormalizeLevel(entry.Level)
		if _, dup := byKey[entry.Key()]; dup {
			return nil, fmt.Errorf("duplicate catalog entry %q", entry.Infinitive)
		}
		byKey[entry.Key()] = *entry
	}

	return &Catalog{entries: entries, byKey: byKey}, nil
}

// All returns every catalog entry in file order.
func (c *Catalog) All() []entity.VerbEntry {
	return c.entries
}

// Size returns the number of cataloged verbs.
func (c *Catalog) Size() int {
	return len(c.entries)
}

// ByLevel returns the entries in one CEFR bucket.
func (c *Catalog) ByLevel(level entity.Level) []entity.VerbEntry {
	return lo.Filter(c.entries, func(entry entity.VerbEntry, _ int) bool {
		return entry.Level == level
	})
}

// Find looks up an entry by (case-insensitive) infinitive.
func (c *Catalog) Find(infinitive string) (entity.VerbEntry, bool) {
	entry, ok := c.byKey[entity.NormalizeInfinitive(infinitive)]
	return entry, ok
}

// Validate checks that every cataloged verb conjugates in every supported
// tense. A failure here is a content-data defect that must not ship.
func (c *Catalog) Validate() error {
	for _, entry := range c.entries {
		for _, tense := range entity.SupportedTenses {
			forms, err := grammar.Conjugate(entry.Infinitive, tense, entry.Tags)
			if err != nil {
				return fmt.Errorf("verb %q: %w", entry.Infinitive, err)
			}
			for i, form := range forms {
				if form == "" {
					return fmt.Errorf("verb %q: empty form at person %d (%s)", entry.Infinitive, i, tense)
				}
			}
		}
	}
	return nil
}
