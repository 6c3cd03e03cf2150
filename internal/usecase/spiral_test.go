package usecase

import (
	"testing"

	"github.com/eslsoft/parlato/internal/entity"
)

func spiralBrain(t *testing.T, verbs ...string) *entity.UserBrain {
	t.Helper()
	brain := entity.NewUserBrain("u1", testNow)
	for _, verb := range verbs {
		brain.VerbHistory[verb] = entity.NewVerbState(true, testNow)
	}
	return brain
}

func TestSpiralAtTriggerBoundary(t *testing.T) {
	cat := testCatalog(t)
	cfg := entity.DefaultGameConfig()
	brain := spiralBrain(t, "essere", "avere", "parlare", "mangiare")
	selected := entity.VerbEntry{Infinitive: "Scrivere", Level: entity.LevelA2}

	// Exactly at the trigger the spiral never fires, even with a zero draw.
	rng := &scriptedSource{floats: []float64{0}}
	verb, tense := DecideSpiral(selected, brain, cfg.SpiralTriggerProgress, cfg, cat, rng)
	if tense != entity.TensePresente || verb.Key() != selected.Key() {
		t.Fatalf("at trigger: got %q %s, want the selected verb in presente", verb.Key(), tense)
	}

	// Strictly past the trigger a zero draw revisits a known verb.
	rng = &scriptedSource{floats: []float64{0}, ints: []int{1}}
	verb, tense = DecideSpiral(selected, brain, cfg.SpiralTriggerProgress+1, cfg, cat, rng)
	if tense != entity.TensePassatoProssimo {
		t.Fatalf("past trigger: got tense %s, want passato prossimo", tense)
	}
	if verb.Key() == selected.Key() {
		t.Fatal("spiral must revisit a known verb, not the fresh selection")
	}
	if _, known := brain.VerbHistory[verb.Key()]; !known {
		t.Fatalf("spiral picked %q which the user has never seen", verb.Key())
	}
}

func TestSpiralChanceGate(t *testing.T) {
	cat := testCatalog(t)
	cfg := entity.DefaultGameConfig()
	brain := spiralBrain(t, "essere", "avere", "parlare", "mangiare")
	selected := entity.VerbEntry{Infinitive: "Scrivere", Level: entity.LevelA2}

	// A draw at or above the chance keeps the normal lesson.
	rng := &scriptedSource{floats: []float64{cfg.SpiralLearningChance}}
	verb, tense := DecideSpiral(selected, brain, 80, cfg, cat, rng)
	if tense != entity.TensePresente || verb.Key() != selected.Key() {
		t.Fatalf("chance gate: got %q %s, want selected verb in presente", verb.Key(), tense)
	}
}

func TestSpiralNeedsEnoughHistory(t *testing.T) {
	cat := testCatalog(t)
	cfg := entity.DefaultGameConfig()
	selected := entity.VerbEntry{Infinitive: "Scrivere", Level: entity.LevelA2}

	// Three known verbs is not enough history to re-test.
	brain := spiralBrain(t, "essere", "avere", "parlare")
	rng := &scriptedSource{floats: []float64{0}, ints: []int{0}}
	verb, tense := DecideSpiral(selected, brain, 80, cfg, cat, rng)
	if tense != entity.TensePresente || verb.Key() != selected.Key() {
		t.Fatalf("thin history: got %q %s, want selected verb in presente", verb.Key(), tense)
	}
}

func TestSpiralIgnoresUncatalogedHistory(t *testing.T) {
	cat := testCatalog(t)
	cfg := entity.DefaultGameConfig()
	selected := entity.VerbEntry{Infinitive: "Scrivere", Level: entity.LevelA2}

	// History entries that fell out of the catalog do not count.
	brain := spiralBrain(t, "essere", "avere", "parlare", "zzzinventare")
	rng := &scriptedSource{floats: []float64{0}, ints: []int{0}}
	_, tense := DecideSpiral(selected, brain, 80, cfg, cat, rng)
	if tense != entity.TensePresente {
		t.Fatalf("got tense %s, want presente when catalog-known history is thin", tense)
	}
}

func TestProgressPercent(t *testing.T) {
	if got := ProgressPercent(0, 68); got != 0 {
		t.Errorf("empty history: got %f", got)
	}
	if got := ProgressPercent(34, 68); got != 50 {
		t.Errorf("half: got %f, want 50", got)
	}
	if got := ProgressPercent(100, 68); got != 100 {
		t.Errorf("overflow clamps: got %f, want 100", got)
	}
	if got := ProgressPercent(5, 0); got != 0 {
		t.Errorf("zero catalog: got %f, want 0", got)
	}
}
