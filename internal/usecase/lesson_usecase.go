package usecase

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/eslsoft/parlato/internal/catalog"
	"github.com/eslsoft/parlato/internal/entity"
	"github.com/eslsoft/parlato/internal/grammar"
	"github.com/eslsoft/parlato/internal/repository"
	"github.com/eslsoft/parlato/pkg/fallback"
)

// ContentProvider is the external AI content backend. Implementations may
// fail or time out freely: every orchestrator guards calls with the local
// deterministic pipeline.
type ContentProvider interface {
	GenerateLesson(ctx context.Context, verb entity.VerbEntry, tense entity.Tense, level entity.Level) (*entity.VerbLessonSession, error)
	GenerateMilestoneExam(ctx context.Context, tier int, verbs []entity.VerbEntry) (*entity.MilestoneExam, error)
	GenerateBossExam(ctx context.Context, verbs []entity.VerbEntry) (*entity.BossExam, error)
}

// LessonUsecase produces teaching sessions for a user's current Brain state.
type LessonUsecase interface {
	GenerateLesson(ctx context.Context, brain *entity.UserBrain) (*entity.VerbLessonSession, error)
	GenerateBatch(ctx context.Context, brain *entity.UserBrain, count int) ([]*entity.VerbLessonSession, error)
}

// NewLessonUsecase wires the orchestrator with default clock and RNG.
func NewLessonUsecase(cat *catalog.Catalog, provider ContentProvider, configs repository.GameConfigRepository, logger *logrus.Logger) LessonUsecase {
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	return &lessonUsecase{
		catalog:  cat,
		provider: provider,
		configs:  configs,
		logger:   logger,
		selector: NewSelector(cat, rng),
		rng:      rng,
		clock:    time.Now,
	}
}

type lessonUsecase struct {
	catalog  *catalog.Catalog
	provider ContentProvider
	configs  repository.GameConfigRepository
	logger   *logrus.Logger
	selector *Selector
	rng      *rand.Rand
	rngMu    sync.Mutex
	clock    func() time.Time
}

func (u *lessonUsecase) GenerateLesson(ctx context.Context, brain *entity.UserBrain) (*entity.VerbLessonSession, error) {
	cfg, err := u.configs.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load game config: %w", err)
	}
	return u.generateOne(ctx, brain, cfg)
}

// batchConcurrency bounds parallel AI calls during buffer pre-fill.
const batchConcurrency = 4

// maxBatchMultiple caps a requested batch at this many buffer fills, so a
// client cannot drive unbounded generation with one call.
const maxBatchMultiple = 5

// GenerateBatch pre-fills a lookahead buffer. Verbs are picked sequentially
// so the exclusion list accumulates; content generation fans out.
func (u *lessonUsecase) GenerateBatch(ctx context.Context, brain *entity.UserBrain, count int) ([]*entity.VerbLessonSession, error) {
	cfg, err := u.configs.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load game config: %w", err)
	}
	if count <= 0 {
		count = cfg.LessonBufferSize
	}
	if max := maxBatchMultiple * cfg.LessonBufferSize; count > max {
		count = max
	}

	type pick struct {
		verb  entity.VerbEntry
		tense entity.Tense
	}
	picks := make([]pick, 0, count)
	seen := make([]string, 0, count)
	for i := 0; i < count; i++ {
		verb, tense := u.pickNext(brain, cfg, seen...)
		picks = append(picks, pick{verb: verb, tense: tense})
		seen = append(seen, verb.Key())
	}

	sessions := make([]*entity.VerbLessonSession, count)
	group, ctx := errgroup.WithContext(ctx)
	group.SetLimit(batchConcurrency)
	for i, p := range picks {
		group.Go(func() error {
			session, err := u.produce(ctx, p.verb, p.tense, brain.CurrentLevel, cfg)
			if err != nil {
				return err
			}
			sessions[i] = session
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}
	return sessions, nil
}

func (u *lessonUsecase) generateOne(ctx context.Context, brain *entity.UserBrain, cfg *entity.GameConfig, extraExclude ...string) (*entity.VerbLessonSession, error) {
	verb, tense := u.pickNext(brain, cfg, extraExclude...)
	return u.produce(ctx, verb, tense, brain.CurrentLevel, cfg)
}

// pickNext runs the scheduler: weighted selection plus the spiral override.
func (u *lessonUsecase) pickNext(brain *entity.UserBrain, cfg *entity.GameConfig, extraExclude ...string) (entity.VerbEntry, entity.Tense) {
	now := u.clock()
	window := time.Duration(cfg.RecentWindowHours) * time.Hour
	exclude := append(brain.RecentVerbs(now, window), extraExclude...)

	selected := u.selector.SelectVerb(brain.CurrentLevel, exclude, cfg)
	progress := ProgressPercent(brain.VerbsDiscovered(), u.catalog.Size())
	return DecideSpiral(selected, brain, progress, cfg, u.catalog, u.rng)
}

func (u *lessonUsecase) produce(ctx context.Context, verb entity.VerbEntry, tense entity.Tense, level entity.Level, cfg *entity.GameConfig) (*entity.VerbLessonSession, error) {
	timeout := time.Duration(cfg.AITimeoutSeconds) * time.Second
	session, fromAI, err := fallback.Run(ctx, timeout,
		func(ctx context.Context) (*entity.VerbLessonSession, error) {
			generated, err := u.provider.GenerateLesson(ctx, verb, tense, level)
			if err != nil {
				return nil, err
			}
			if err := validateSession(generated); err != nil {
				return nil, err
			}
			return generated, nil
		},
		func() (*entity.VerbLessonSession, error) {
			return u.buildLocalLesson(verb, tense, level)
		},
	)
	if err != nil {
		// Local generation only fails on a catalog data defect.
		return nil, fmt.Errorf("local lesson for %q: %w", verb.Infinitive, err)
	}
	if !fromAI {
		u.logger.WithFields(logrus.Fields{
			"verb":  verb.Infinitive,
			"tense": tense,
		}).Info("AI lesson unavailable, using local generation")
	}
	return session, nil
}

// buildLocalLesson runs the deterministic pipeline: conjugation table plus
// two synthesized practice sentences at distinct persons. The rng lock keeps
// concurrent batch members from sharing draws.
func (u *lessonUsecase) buildLocalLesson(verb entity.VerbEntry, tense entity.Tense, level entity.Level) (*entity.VerbLessonSession, error) {
	forms, err := grammar.Conjugate(verb.Infinitive, tense, verb.Tags)
	if err != nil {
		return nil, err
	}

	u.rngMu.Lock()
	defer u.rngMu.Unlock()

	first := u.rng.Intn(len(forms))
	second := u.rng.Intn(len(forms) - 1)
	if second >= first {
		second++
	}

	sentences := make([]entity.PracticeSentence, 0, 2)
	for _, person := range []int{first, second} {
		sentence, err := grammar.Synthesize(verb, person, forms, u.rng)
		if err != nil {
			return nil, err
		}
		sentences = append(sentences, sentence)
	}

	return &entity.VerbLessonSession{
		Verb:  verb,
		Level: level,
		Tense: tense,
		Lesson: entity.Lesson{
			Definition:      verb.Translation,
			VerbType:        describeVerbType(verb),
			FullConjugation: forms,
			UsageTip:        usageTip(verb, tense),
		},
		PracticeSentences: sentences,
		Source:            entity.SourceLocal,
	}, nil
}

// validateSession enforces the provider contract: exactly six ordered forms
// and at least two sentences with non-empty answers. Anything less is a
// generation failure that triggers the local fallback.
func validateSession(session *entity.VerbLessonSession) error {
	if session == nil {
		return fmt.Errorf("%w: empty response", entity.ErrContentUnavailable)
	}
	if len(session.Lesson.FullConjugation) != 6 {
		return fmt.Errorf("%w: expected 6 conjugation forms, got %d", entity.ErrContentUnavailable, len(session.Lesson.FullConjugation))
	}
	for _, form := range session.Lesson.FullConjugation {
		if strings.TrimSpace(form) == "" {
			return fmt.Errorf("%w: blank conjugation form", entity.ErrContentUnavailable)
		}
	}
	if len(session.PracticeSentences) < 2 {
		return fmt.Errorf("%w: expected at least 2 practice sentences, got %d", entity.ErrContentUnavailable, len(session.PracticeSentences))
	}
	for _, sentence := range session.PracticeSentences {
		if strings.TrimSpace(sentence.CorrectAnswer) == "" {
			return fmt.Errorf("%w: practice sentence without answer", entity.ErrContentUnavailable)
		}
	}
	session.Source = entity.SourceAI
	return nil
}

func describeVerbType(verb entity.VerbEntry) string {
	ending := ""
	if key := verb.Key(); len(key) >= 3 {
		ending = "-" + key[len(key)-3:]
	}
	if verb.HasTag(entity.TagIrregular) {
		return "irregular " + ending
	}
	return "regular " + ending
}

func usageTip(verb entity.VerbEntry, tense entity.Tense) string {
	if tense == entity.TensePassatoProssimo {
		if verb.HasTag(entity.TagEssere) {
			return "Takes essere as auxiliary: the participle agrees with the subject."
		}
		return "Takes avere as auxiliary in compound tenses."
	}
	if verb.HasTag(entity.TagIndirect) {
		return "Often used with an indirect object (a qualcuno)."
	}
	return ""
}
