package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/eslsoft/parlato/internal/catalog"
	"github.com/eslsoft/parlato/internal/entity"
	"github.com/eslsoft/parlato/internal/repository"
)

// EconomyStatus is the queryable unlock snapshot the UI renders before
// letting the user enter a gated mode.
type EconomyStatus struct {
	TotalXP         int          `json:"total_xp"`
	ProgressPercent float64      `json:"progress_percent"`
	StoryReady      bool         `json:"story_ready"`
	Boss            Availability `json:"boss"`
	MilestoneTier   int          `json:"milestone_tier,omitempty"`
	Milestone       Availability `json:"milestone"`
}

// ProgressUsecase owns the Brain lifecycle: loading (or initializing) the
// document, dispatching reducer events, and committing the result.
type ProgressUsecase interface {
	GetBrain(ctx context.Context, userID string) (*entity.UserBrain, error)
	Dispatch(ctx context.Context, userID string, event entity.Event) (*entity.UserBrain, error)
	Status(ctx context.Context, userID string) (*EconomyStatus, error)
	Purchase(ctx context.Context, userID, itemID string) (*entity.UserBrain, error)
}

// NewProgressUsecase wires the reducer with its repositories.
func NewProgressUsecase(brains repository.BrainRepository, configs repository.GameConfigRepository, cat *catalog.Catalog, logger *logrus.Logger) ProgressUsecase {
	return &progressUsecase{
		brains:  brains,
		configs: configs,
		catalog: cat,
		logger:  logger,
		clock:   time.Now,
	}
}

type progressUsecase struct {
	brains  repository.BrainRepository
	configs repository.GameConfigRepository
	catalog *catalog.Catalog
	logger  *logrus.Logger
	clock   func() time.Time
}

func (u *progressUsecase) GetBrain(ctx context.Context, userID string) (*entity.UserBrain, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: empty user id", entity.ErrInvalidEvent)
	}
	brain, err := u.brains.Load(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load brain: %w", err)
	}
	if brain == nil {
		brain = entity.NewUserBrain(userID, u.clock())
		u.persist(ctx, brain)
	}
	brain.Normalize(u.clock())
	return brain, nil
}

func (u *progressUsecase) Dispatch(ctx context.Context, userID string, event entity.Event) (*entity.UserBrain, error) {
	brain, err := u.GetBrain(ctx, userID)
	if err != nil {
		return nil, err
	}
	cfg, err := u.configs.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load game config: %w", err)
	}

	next, err := Reduce(brain, event, cfg, u.clock())
	if err != nil {
		return nil, err
	}
	u.persist(ctx, next)
	return next, nil
}

func (u *progressUsecase) Status(ctx context.Context, userID string) (*EconomyStatus, error) {
	brain, err := u.GetBrain(ctx, userID)
	if err != nil {
		return nil, err
	}
	cfg, err := u.configs.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load game config: %w", err)
	}

	now := u.clock()
	tier, milestone := MilestoneAvailability(brain, cfg, now)
	return &EconomyStatus{
		TotalXP:         brain.TotalXP(),
		ProgressPercent: ProgressPercent(brain.VerbsDiscovered(), u.catalog.Size()),
		StoryReady:      StoryReady(brain, cfg),
		Boss:            BossAvailability(brain, cfg, now),
		MilestoneTier:   tier,
		Milestone:       milestone,
	}, nil
}

func (u *progressUsecase) Purchase(ctx context.Context, userID, itemID string) (*entity.UserBrain, error) {
	item, ok := FindStoreItem(itemID)
	if !ok {
		return nil, entity.ErrUnknownItem
	}
	return u.Dispatch(ctx, userID, entity.ItemPurchased{Item: item})
}

// persist attempts to commit the Brain. Store failures never block the
// session: the in-memory state is still returned and the next mutation
// retries the write.
func (u *progressUsecase) persist(ctx context.Context, brain *entity.UserBrain) {
	if err := u.brains.Save(ctx, brain); err != nil {
		u.logger.WithError(err).WithField("user_id", brain.UserID).Warn("brain persistence failed, continuing in memory")
	}
}
