package usecase

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/eslsoft/parlato/internal/catalog"
	"github.com/eslsoft/parlato/internal/entity"
	"github.com/eslsoft/parlato/internal/grammar"
	"github.com/eslsoft/parlato/internal/repository"
	"github.com/eslsoft/parlato/pkg/fallback"
)

// personLabels are the prompt labels for each conjugation slot.
var personLabels = [6]string{"io", "tu", "lui/lei", "noi", "voi", "loro"}

// ExamUsecase builds the fixed-size milestone and boss assessments,
// AI-first with the same deterministic fallback as lessons.
type ExamUsecase interface {
	GenerateMilestoneExam(ctx context.Context, brain *entity.UserBrain) (*entity.MilestoneExam, error)
	GenerateBossExam(ctx context.Context, brain *entity.UserBrain) (*entity.BossExam, error)
}

// NewExamUsecase wires the exam generators with default clock and RNG.
func NewExamUsecase(cat *catalog.Catalog, provider ContentProvider, configs repository.GameConfigRepository, logger *logrus.Logger) ExamUsecase {
	return &examUsecase{
		catalog:  cat,
		provider: provider,
		configs:  configs,
		logger:   logger,
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
		clock:    time.Now,
	}
}

type examUsecase struct {
	catalog  *catalog.Catalog
	provider ContentProvider
	configs  repository.GameConfigRepository
	logger   *logrus.Logger
	rng      *rand.Rand
	clock    func() time.Time
}

func (u *examUsecase) GenerateMilestoneExam(ctx context.Context, brain *entity.UserBrain) (*entity.MilestoneExam, error) {
	cfg, err := u.configs.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load game config: %w", err)
	}

	tier, availability := MilestoneAvailability(brain, cfg, u.clock())
	if !availability.Available {
		return nil, entity.ErrMilestoneLocked
	}

	verbs := u.examVerbs(brain, entity.MilestoneExamSize)
	timeout := time.Duration(cfg.AITimeoutSeconds) * time.Second
	exam, fromAI, err := fallback.Run(ctx, timeout,
		func(ctx context.Context) (*entity.MilestoneExam, error) {
			generated, err := u.provider.GenerateMilestoneExam(ctx, tier, verbs)
			if err != nil {
				return nil, err
			}
			if generated == nil || len(generated.Questions) != entity.MilestoneExamSize {
				return nil, fmt.Errorf("%w: malformed milestone exam", entity.ErrContentUnavailable)
			}
			generated.Source = entity.SourceAI
			return generated, nil
		},
		func() (*entity.MilestoneExam, error) {
			return u.buildLocalMilestone(tier, verbs)
		},
	)
	if err != nil {
		return nil, err
	}
	if !fromAI {
		u.logger.WithField("tier", tier).Info("AI milestone exam unavailable, using local generation")
	}
	return exam, nil
}

func (u *examUsecase) GenerateBossExam(ctx context.Context, brain *entity.UserBrain) (*entity.BossExam, error) {
	cfg, err := u.configs.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load game config: %w", err)
	}

	if availability := BossAvailability(brain, cfg, u.clock()); !availability.Available {
		return nil, entity.ErrBossLocked
	}

	verbs := u.examVerbs(brain, entity.BossExamSize)
	timeout := time.Duration(cfg.AITimeoutSeconds) * time.Second
	exam, fromAI, err := fallback.Run(ctx, timeout,
		func(ctx context.Context) (*entity.BossExam, error) {
			generated, err := u.provider.GenerateBossExam(ctx, verbs)
			if err != nil {
				return nil, err
			}
			if generated == nil ||
				len(generated.Speed) != entity.BossSpeedSize ||
				len(generated.Precision) != entity.BossPrecisionSize ||
				len(generated.Translation) != entity.BossTranslationSize {
				return nil, fmt.Errorf("%w: malformed boss exam", entity.ErrContentUnavailable)
			}
			generated.Source = entity.SourceAI
			return generated, nil
		},
		func() (*entity.BossExam, error) {
			return u.buildLocalBoss(verbs)
		},
	)
	if err != nil {
		return nil, err
	}
	if !fromAI {
		u.logger.Info("AI boss exam unavailable, using local generation")
	}
	return exam, nil
}

// examVerbs picks exam material, preferring the user's known verbs and
// topping up from the catalog until count entries are gathered.
func (u *examUsecase) examVerbs(brain *entity.UserBrain, count int) []entity.VerbEntry {
	picked := make([]entity.VerbEntry, 0, count)
	used := make(map[string]bool, count)

	known := knownCatalogVerbs(brain, u.catalog)
	u.rng.Shuffle(len(known), func(i, j int) { known[i], known[j] = known[j], known[i] })
	for _, entry := range known {
		if len(picked) == count {
			return picked
		}
		picked = append(picked, entry)
		used[entry.Key()] = true
	}

	all := append([]entity.VerbEntry(nil), u.catalog.All()...)
	u.rng.Shuffle(len(all), func(i, j int) { all[i], all[j] = all[j], all[i] })
	for _, entry := range all {
		if len(picked) == count {
			break
		}
		if !used[entry.Key()] {
			picked = append(picked, entry)
			used[entry.Key()] = true
		}
	}

	// Small catalogs wrap around rather than shrinking the exam.
	for len(picked) < count && len(all) > 0 {
		picked = append(picked, all[len(picked)%len(all)])
	}
	return picked
}

func (u *examUsecase) buildLocalMilestone(tier int, verbs []entity.VerbEntry) (*entity.MilestoneExam, error) {
	questions := make([]entity.ExamQuestion, 0, entity.MilestoneExamSize)
	for _, verb := range verbs[:entity.MilestoneExamSize] {
		question, err := u.conjugationQuestion(verb, entity.TensePresente, entity.QuestionConjugation)
		if err != nil {
			return nil, err
		}
		questions = append(questions, question)
	}
	return &entity.MilestoneExam{Tier: tier, Questions: questions, Source: entity.SourceLocal}, nil
}

func (u *examUsecase) buildLocalBoss(verbs []entity.VerbEntry) (*entity.BossExam, error) {
	exam := &entity.BossExam{Source: entity.SourceLocal}

	cursor := 0
	next := func() entity.VerbEntry {
		verb := verbs[cursor%len(verbs)]
		cursor++
		return verb
	}

	for i := 0; i < entity.BossSpeedSize; i++ {
		question, err := u.translationChoiceQuestion(next(), entity.QuestionSpeed)
		if err != nil {
			return nil, err
		}
		exam.Speed = append(exam.Speed, question)
	}
	for i := 0; i < entity.BossPrecisionSize; i++ {
		question, err := u.conjugationQuestion(next(), entity.TensePassatoProssimo, entity.QuestionPrecision)
		if err != nil {
			return nil, err
		}
		exam.Precision = append(exam.Precision, question)
	}
	for i := 0; i < entity.BossTranslationSize; i++ {
		verb := next()
		forms, err := grammar.Conjugate(verb.Infinitive, entity.TensePresente, verb.Tags)
		if err != nil {
			return nil, err
		}
		sentence, err := grammar.Synthesize(verb, u.rng.Intn(len(forms)), forms, u.rng)
		if err != nil {
			return nil, err
		}
		exam.Translation = append(exam.Translation, entity.ExamQuestion{
			Kind:          entity.QuestionTranslation,
			Prompt:        fmt.Sprintf("Complete: %s___%s (%s)", sentence.SentenceStart, sentence.SentenceEnd, verb.Translation),
			CorrectAnswer: sentence.CorrectAnswer,
		})
	}
	return exam, nil
}

// conjugationQuestion asks for one person's form, with the other persons'
// forms as distractors.
func (u *examUsecase) conjugationQuestion(verb entity.VerbEntry, tense entity.Tense, kind entity.QuestionKind) (entity.ExamQuestion, error) {
	forms, err := grammar.Conjugate(verb.Infinitive, tense, verb.Tags)
	if err != nil {
		return entity.ExamQuestion{}, err
	}

	person := u.rng.Intn(len(forms))
	options := distinctOptions(forms, forms[person], 4, u.rng)
	return entity.ExamQuestion{
		Kind:          kind,
		Prompt:        fmt.Sprintf("Conjugate %q for %s (%s)", verb.Infinitive, personLabels[person], tense),
		Options:       options,
		CorrectAnswer: forms[person],
	}, nil
}

// translationChoiceQuestion asks for the verb's meaning among catalog
// distractor translations.
func (u *examUsecase) translationChoiceQuestion(verb entity.VerbEntry, kind entity.QuestionKind) (entity.ExamQuestion, error) {
	pool := make([]string, 0, u.catalog.Size())
	for _, entry := range u.catalog.All() {
		if entry.Key() != verb.Key() {
			pool = append(pool, entry.Translation)
		}
	}
	options := []string{verb.Translation}
	for len(options) < 4 && len(pool) > 0 {
		idx := u.rng.Intn(len(pool))
		pick := pool[idx]
		pool = append(pool[:idx], pool[idx+1:]...)
		duplicate := false
		for _, existing := range options {
			if existing == pick {
				duplicate = true
				break
			}
		}
		if !duplicate {
			options = append(options, pick)
		}
	}
	u.rng.Shuffle(len(options), func(i, j int) { options[i], options[j] = options[j], options[i] })

	return entity.ExamQuestion{
		Kind:          kind,
		Prompt:        fmt.Sprintf("What does %q mean?", verb.Infinitive),
		Options:       options,
		CorrectAnswer: verb.Translation,
	}, nil
}

// distinctOptions gathers up to limit unique options always including the
// answer, shuffled.
func distinctOptions(candidates []string, answer string, limit int, rng *rand.Rand) []string {
	options := []string{answer}
	shuffled := append([]string(nil), candidates...)
	rng.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })
	for _, candidate := range shuffled {
		if len(options) == limit {
			break
		}
		duplicate := false
		for _, existing := range options {
			if existing == candidate {
				duplicate = true
				break
			}
		}
		if !duplicate {
			options = append(options, candidate)
		}
	}
	rng.Shuffle(len(options), func(i, j int) { options[i], options[j] = options[j], options[i] })
	return options
}
