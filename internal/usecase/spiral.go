package usecase

import (
	"github.com/eslsoft/parlato/internal/catalog"
	"github.com/eslsoft/parlato/internal/entity"
	"github.com/eslsoft/parlato/pkg/randutil"
)

// spiralMinKnownVerbs is the minimum history size before the scheduler may
// re-test old material instead of introducing a new verb.
const spiralMinKnownVerbs = 3

// DecideSpiral implements the spiral-learning schedule: once overall
// progress is strictly past the configured trigger, each lesson has a chance
// of revisiting a known verb in the compound past instead of teaching the
// freshly selected verb in the present.
func DecideSpiral(selected entity.VerbEntry, brain *entity.UserBrain, progressPercent float64, cfg *entity.GameConfig, cat *catalog.Catalog, rng randutil.Source) (entity.VerbEntry, entity.Tense) {
	if progressPercent <= cfg.SpiralTriggerProgress {
		return selected, entity.TensePresente
	}
	if rng.Float64() >= cfg.SpiralLearningChance {
		return selected, entity.TensePresente
	}

	known := knownCatalogVerbs(brain, cat)
	if len(known) <= spiralMinKnownVerbs {
		return selected, entity.TensePresente
	}

	revisit, _ := randutil.Pick(known, rng)
	return revisit, entity.TensePassatoProssimo
}

// knownCatalogVerbs resolves the Brain's history keys back to catalog
// entries, dropping verbs that are no longer cataloged.
func knownCatalogVerbs(brain *entity.UserBrain, cat *catalog.Catalog) []entity.VerbEntry {
	verbs := brain.KnownVerbs()
	entries := make([]entity.VerbEntry, 0, len(verbs))
	for _, verb := range verbs {
		if entry, ok := cat.Find(verb); ok {
			entries = append(entries, entry)
		}
	}
	return entries
}
