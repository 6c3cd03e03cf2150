package usecase

import (
	"time"

	"github.com/eslsoft/parlato/internal/entity"
)

// spendOrder is the bucket priority for tiered currency deduction: the
// highest level pays first.
var spendOrder = []entity.Level{entity.LevelC1, entity.LevelB2, entity.LevelB1, entity.LevelA2, entity.LevelA1}

// AwardXP adds XP to one level bucket and stamps its activity fields.
func AwardXP(brain *entity.UserBrain, level entity.Level, amount int, now time.Time) {
	stats := brain.LevelStats[entity.NormalizeLevel(level)]
	if stats == nil {
		stats = &entity.LevelStats{}
		brain.LevelStats[entity.NormalizeLevel(level)] = stats
	}
	stats.Score += amount
	stats.ExercisesCount++
	stats.LastPlayed = now
}

// SpendXP deducts cost across level buckets from C1 down to A1. The total
// balance is verified first: an unaffordable purchase mutates nothing.
func SpendXP(brain *entity.UserBrain, cost int) error {
	if cost <= 0 {
		return nil
	}
	if brain.TotalXP() < cost {
		return entity.ErrInsufficientFunds
	}

	remaining := cost
	for _, level := range spendOrder {
		if remaining == 0 {
			break
		}
		stats := brain.LevelStats[level]
		if stats == nil || stats.Score <= 0 {
			continue
		}
		take := stats.Score
		if take > remaining {
			take = remaining
		}
		stats.Score -= take
		remaining -= take
	}
	return nil
}

// Availability is the queryable unlock state for gated game modes. A locked
// mode is a normal state, not an error: the UI checks Remaining to render a
// countdown.
type Availability struct {
	Available bool          `json:"available"`
	Remaining time.Duration `json:"remaining"`
	Reason    string        `json:"reason,omitempty"`
}

// BossAvailability evaluates the boss-fight gate: an XP floor plus a
// cooldown from the previous attempt, win or lose.
func BossAvailability(brain *entity.UserBrain, cfg *entity.GameConfig, now time.Time) Availability {
	if brain.TotalXP() < cfg.BossUnlockXP {
		return Availability{Reason: "insufficient XP"}
	}
	cooldown := time.Duration(cfg.BossCooldownHours) * time.Hour
	if !brain.BossStats.LastAttempt.IsZero() {
		if elapsed := now.Sub(brain.BossStats.LastAttempt); elapsed < cooldown {
			return Availability{Remaining: cooldown - elapsed, Reason: "cooldown"}
		}
	}
	return Availability{Available: true}
}

// NextMilestoneTier returns the first configured tier the user has not yet
// passed, or false when every tier is claimed.
func NextMilestoneTier(brain *entity.UserBrain, cfg *entity.GameConfig) (int, bool) {
	passed := make(map[int]bool, len(brain.MilestoneHistory))
	for _, record := range brain.MilestoneHistory {
		passed[record.Tier] = true
	}
	for _, tier := range cfg.MilestoneTiers {
		if !passed[tier] {
			return tier, true
		}
	}
	return 0, false
}

// MilestoneAvailability evaluates the next milestone gate: enough verbs
// discovered for the tier and no active failure cooldown.
func MilestoneAvailability(brain *entity.UserBrain, cfg *entity.GameConfig, now time.Time) (int, Availability) {
	tier, ok := NextMilestoneTier(brain, cfg)
	if !ok {
		return 0, Availability{Reason: "all tiers claimed"}
	}
	if brain.VerbsDiscovered() < tier {
		return tier, Availability{Reason: "not enough verbs discovered"}
	}
	cooldown := time.Duration(cfg.MilestoneCooldownHours) * time.Hour
	if !brain.LastMilestoneFail.IsZero() {
		if elapsed := now.Sub(brain.LastMilestoneFail); elapsed < cooldown {
			return tier, Availability{Remaining: cooldown - elapsed, Reason: "cooldown"}
		}
	}
	return tier, Availability{Available: true}
}

// StoryReady reports whether enough new verbs were mastered since the last
// story session.
func StoryReady(brain *entity.UserBrain, cfg *entity.GameConfig) bool {
	return brain.VerbsSinceLastStory >= cfg.StoryUnlockCount
}

// maybeLevelUp promotes the user when the current level's XP balance crosses
// the configured threshold. Returns the new level when a promotion happened.
func maybeLevelUp(brain *entity.UserBrain, cfg *entity.GameConfig) (entity.Level, bool) {
	threshold, ok := cfg.LevelUpXP[brain.CurrentLevel]
	if !ok || threshold <= 0 {
		return brain.CurrentLevel, false
	}
	stats := brain.LevelStats[brain.CurrentLevel]
	if stats == nil || stats.Score < threshold {
		return brain.CurrentLevel, false
	}
	next, ok := brain.CurrentLevel.Next()
	if !ok {
		return brain.CurrentLevel, false
	}
	brain.CurrentLevel = next
	return next, true
}
