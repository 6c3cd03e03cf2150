package usecase

import (
	"github.com/samber/lo"

	"github.com/eslsoft/parlato/internal/catalog"
	"github.com/eslsoft/parlato/internal/entity"
	"github.com/eslsoft/parlato/pkg/randutil"
)

// Selector implements the weighted-random verb selection policy: a CEFR
// bucket draw with review leakage into lower levels, then a uniform pick
// among bucket candidates not seen recently.
type Selector struct {
	catalog *catalog.Catalog
	rng     randutil.Source
}

// NewSelector builds a selector over the static catalog. The random source
// is injected so tests can supply deterministic sequences.
func NewSelector(cat *catalog.Catalog, rng randutil.Source) *Selector {
	return &Selector{catalog: cat, rng: rng}
}

// SelectVerb picks the next verb for a user at the given level, avoiding
// excluded (recently seen) verbs when possible. It never returns an empty
// entry: exclusion is dropped before starving, and an empty bucket falls
// back to the user's own level, then to the first catalog entry.
func (s *Selector) SelectVerb(userLevel entity.Level, exclude []string, cfg *entity.GameConfig) entity.VerbEntry {
	bucket := s.chooseBucket(entity.NormalizeLevel(userLevel), cfg)

	candidates := s.catalog.ByLevel(bucket)
	if filtered := excludeVerbs(candidates, exclude); len(filtered) > 0 {
		candidates = filtered
	}
	if len(candidates) == 0 {
		candidates = s.catalog.ByLevel(entity.NormalizeLevel(userLevel))
	}
	if len(candidates) == 0 {
		return s.catalog.All()[0]
	}

	picked, _ := randutil.Pick(candidates, s.rng)
	return picked
}

// chooseBucket draws a difficulty bucket from the per-level leakage table.
// A1 users always stay in A1; unknown levels degrade to the user's level.
func (s *Selector) chooseBucket(userLevel entity.Level, cfg *entity.GameConfig) entity.Level {
	table := cfg.BucketLeakage[userLevel]
	if len(table) == 0 {
		return userLevel
	}

	options := lo.Map(table, func(chance entity.LevelChance, _ int) randutil.Weighted[entity.Level] {
		return randutil.Weighted[entity.Level]{Option: chance.Level, Weight: chance.Chance}
	})
	bucket, ok := randutil.Choose(options, s.rng)
	if !ok {
		return userLevel
	}
	return bucket
}

func excludeVerbs(candidates []entity.VerbEntry, exclude []string) []entity.VerbEntry {
	if len(exclude) == 0 {
		return candidates
	}
	excluded := make(map[string]bool, len(exclude))
	for _, verb := range exclude {
		excluded[entity.NormalizeInfinitive(verb)] = true
	}
	return lo.Filter(candidates, func(entry entity.VerbEntry, _ int) bool {
		return !excluded[entry.Key()]
	})
}
