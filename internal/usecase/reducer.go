package usecase

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/eslsoft/parlato/internal/entity"
)

// Reduce folds one progression event into the Brain and returns the next
// Brain state. The input is never mutated; callers commit the result
// atomically. Events must be applied in the order the user actions occurred.
func Reduce(brain *entity.UserBrain, event entity.Event, cfg *entity.GameConfig, now time.Time) (*entity.UserBrain, error) {
	if brain == nil || event == nil {
		return nil, entity.ErrInvalidEvent
	}

	next := brain.Clone()
	next.Normalize(now)

	var err error
	switch ev := event.(type) {
	case entity.PracticeAnswered:
		err = applyPractice(next, ev, cfg, now)
	case entity.DrillCompleted:
		err = applyDrill(next, ev, cfg, now)
	case entity.StoryConsumed:
		err = applyStory(next, cfg, now)
	case entity.MilestoneAttempted:
		err = applyMilestone(next, ev, cfg, now)
	case entity.BossAttempted:
		err = applyBoss(next, ev, cfg, now)
	case entity.ItemPurchased:
		err = applyPurchase(next, ev, now)
	default:
		err = fmt.Errorf("%w: %s", entity.ErrInvalidEvent, event.EventName())
	}
	if err != nil {
		return nil, err
	}
	return next, nil
}

// recordVerbOutcome updates the per-verb ledger plus the global counters.
// First exposure updates the global streaks exactly like later outcomes.
// Returns true when this was the verb's first-ever success.
func recordVerbOutcome(brain *entity.UserBrain, verb string, correct bool, now time.Time) (bool, error) {
	key := entity.NormalizeInfinitive(verb)
	if key == "" {
		return false, fmt.Errorf("%w: empty verb", entity.ErrInvalidEvent)
	}

	state, seen := brain.VerbHistory[key]
	firstSuccess := correct && (!seen || !state.Mastered())

	if !seen {
		brain.VerbHistory[key] = entity.NewVerbState(correct, now)
	} else {
		state.RecordOutcome(correct, now)
	}

	if correct {
		brain.SessionStreak++
		brain.ConsecutiveErrors = 0
	} else {
		brain.SessionStreak = 0
		brain.ConsecutiveErrors++
	}
	return firstSuccess, nil
}

func applyPractice(brain *entity.UserBrain, ev entity.PracticeAnswered, cfg *entity.GameConfig, now time.Time) error {
	firstSuccess, err := recordVerbOutcome(brain, ev.Verb, ev.Correct, now)
	if err != nil {
		return err
	}
	if firstSuccess {
		brain.VerbsSinceLastStory++
	}
	if ev.Correct {
		AwardXP(brain, ev.Level, cfg.XP.Practice, now)
		notifyLevelUp(brain, cfg, now)
	}
	return nil
}

func applyDrill(brain *entity.UserBrain, ev entity.DrillCompleted, cfg *entity.GameConfig, now time.Time) error {
	if ev.Blanks <= 0 || ev.Correct < 0 || ev.Correct > ev.Blanks {
		return fmt.Errorf("%w: drill with %d/%d correct", entity.ErrInvalidEvent, ev.Correct, ev.Blanks)
	}

	// A drill counts as one ledger outcome: success when at least half of
	// the blanks were right.
	passed := ev.Correct*2 >= ev.Blanks
	firstSuccess, err := recordVerbOutcome(brain, ev.Verb, passed, now)
	if err != nil {
		return err
	}
	if firstSuccess {
		brain.VerbsSinceLastStory++
	}
	if passed {
		AwardXP(brain, ev.Level, cfg.XP.Drill, now)
		notifyLevelUp(brain, cfg, now)
	}
	return nil
}

func applyStory(brain *entity.UserBrain, cfg *entity.GameConfig, now time.Time) error {
	if !StoryReady(brain, cfg) {
		return entity.ErrStoryLocked
	}
	brain.VerbsSinceLastStory = 0
	brain.StoryHistory = append(brain.StoryHistory, entity.StoryRecord{Date: now})
	AwardXP(brain, brain.CurrentLevel, cfg.XP.Story, now)
	notifyLevelUp(brain, cfg, now)
	return nil
}

func applyMilestone(brain *entity.UserBrain, ev entity.MilestoneAttempted, cfg *entity.GameConfig, now time.Time) error {
	tier, availability := MilestoneAvailability(brain, cfg, now)
	if !availability.Available || tier != ev.Tier {
		return entity.ErrMilestoneLocked
	}

	if ev.Score < cfg.MilestonePassScore {
		// Failure only starts the cooldown; nothing else is lost.
		brain.LastMilestoneFail = now
		return nil
	}

	brain.MilestoneHistory = append(brain.MilestoneHistory, entity.MilestoneRecord{
		Tier:  tier,
		Date:  now,
		Score: ev.Score,
	})
	AwardXP(brain, brain.CurrentLevel, cfg.XP.Milestone, now)
	notify(brain, "milestone", fmt.Sprintf("Milestone %d passed with %d/%d!", tier, ev.Score, entity.MilestoneExamSize), now)
	notifyLevelUp(brain, cfg, now)
	return nil
}

func applyBoss(brain *entity.UserBrain, ev entity.BossAttempted, cfg *entity.GameConfig, now time.Time) error {
	if availability := BossAvailability(brain, cfg, now); !availability.Available {
		return entity.ErrBossLocked
	}

	// The attempt always starts the cooldown, pass or fail.
	brain.BossStats.LastAttempt = now

	if ev.Score < cfg.BossPassScore {
		return nil
	}

	firstMedal := !brain.BossStats.HasMedal
	brain.BossStats.Wins++
	brain.BossStats.HasMedal = true
	AwardXP(brain, brain.CurrentLevel, cfg.XP.Boss, now)
	if firstMedal {
		notify(brain, "boss", "Boss defeated! You earned the medal.", now)
	}
	notifyLevelUp(brain, cfg, now)
	return nil
}

func applyPurchase(brain *entity.UserBrain, ev entity.ItemPurchased, now time.Time) error {
	item := ev.Item
	if item.ID == "" {
		return fmt.Errorf("%w: purchase without item", entity.ErrInvalidEvent)
	}
	if !item.Consumable && brain.Owns(item.ID) {
		return entity.ErrItemAlreadyOwned
	}

	if err := SpendXP(brain, item.EffectivePrice(now)); err != nil {
		return err
	}

	if item.Kind == entity.KindStreakFreeze {
		brain.StreakFreeze++
		return nil
	}
	brain.Inventory = append(brain.Inventory, item.ID)
	return nil
}

func notifyLevelUp(brain *entity.UserBrain, cfg *entity.GameConfig, now time.Time) {
	if level, promoted := maybeLevelUp(brain, cfg); promoted {
		notify(brain, "level_up", fmt.Sprintf("Complimenti! You reached level %s.", level), now)
	}
	if StoryReady(brain, cfg) && brain.VerbsSinceLastStory == cfg.StoryUnlockCount {
		notify(brain, "story", "A new story is ready for you.", now)
	}
}

func notify(brain *entity.UserBrain, kind, message string, now time.Time) {
	brain.Notify(entity.Notification{
		ID:        uuid.NewString(),
		Kind:      kind,
		Message:   message,
		CreatedAt: now,
	})
}
