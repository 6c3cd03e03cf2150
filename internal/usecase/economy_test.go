package usecase

import (
	"errors"
	"testing"
	"time"

	"github.com/eslsoft/parlato/internal/entity"
)

func TestAwardXP(t *testing.T) {
	brain := entity.NewUserBrain("u1", testNow)
	AwardXP(brain, entity.LevelA2, 25, testNow)

	stats := brain.LevelStats[entity.LevelA2]
	if stats.Score != 25 || stats.ExercisesCount != 1 {
		t.Errorf("got score=%d count=%d", stats.Score, stats.ExercisesCount)
	}
	if !stats.LastPlayed.Equal(testNow) {
		t.Error("LastPlayed not stamped")
	}
}

func TestSpendXPTieredOrder(t *testing.T) {
	brain := entity.NewUserBrain("u1", testNow)
	brain.LevelStats[entity.LevelA1].Score = 500
	brain.LevelStats[entity.LevelB1].Score = 200
	brain.LevelStats[entity.LevelC1].Score = 100

	if err := SpendXP(brain, 250); err != nil {
		t.Fatalf("SpendXP: %v", err)
	}

	// C1 pays first, then B1, A1 untouched.
	if got := brain.LevelStats[entity.LevelC1].Score; got != 0 {
		t.Errorf("C1 after spend: got %d, want 0", got)
	}
	if got := brain.LevelStats[entity.LevelB1].Score; got != 50 {
		t.Errorf("B1 after spend: got %d, want 50", got)
	}
	if got := brain.LevelStats[entity.LevelA1].Score; got != 500 {
		t.Errorf("A1 after spend: got %d, want 500", got)
	}
}

func TestSpendXPInsufficientMutatesNothing(t *testing.T) {
	brain := entity.NewUserBrain("u1", testNow)
	brain.LevelStats[entity.LevelA1].Score = 100
	brain.LevelStats[entity.LevelB2].Score = 50

	err := SpendXP(brain, 200)
	if !errors.Is(err, entity.ErrInsufficientFunds) {
		t.Fatalf("got %v, want ErrInsufficientFunds", err)
	}
	if brain.LevelStats[entity.LevelA1].Score != 100 || brain.LevelStats[entity.LevelB2].Score != 50 {
		t.Error("failed spend must leave all buckets untouched")
	}
}

func TestBossAvailability(t *testing.T) {
	cfg := entity.DefaultGameConfig()
	brain := entity.NewUserBrain("u1", testNow)

	if got := BossAvailability(brain, cfg, testNow); got.Available {
		t.Error("boss must stay locked below the XP floor")
	}

	brain.LevelStats[entity.LevelA1].Score = cfg.BossUnlockXP
	if got := BossAvailability(brain, cfg, testNow); !got.Available {
		t.Errorf("boss should unlock at the XP floor, got reason %q", got.Reason)
	}

	brain.BossStats.LastAttempt = testNow.Add(-time.Hour)
	got := BossAvailability(brain, cfg, testNow)
	if got.Available {
		t.Error("boss must respect the attempt cooldown")
	}
	wantRemaining := time.Duration(cfg.BossCooldownHours)*time.Hour - time.Hour
	if got.Remaining != wantRemaining {
		t.Errorf("remaining: got %s, want %s", got.Remaining, wantRemaining)
	}

	brain.BossStats.LastAttempt = testNow.Add(-time.Duration(cfg.BossCooldownHours) * time.Hour)
	if got := BossAvailability(brain, cfg, testNow); !got.Available {
		t.Error("boss should reopen once the cooldown has elapsed")
	}
}

func TestMilestoneAvailability(t *testing.T) {
	cfg := entity.DefaultGameConfig()
	brain := entity.NewUserBrain("u1", testNow)

	tier, got := MilestoneAvailability(brain, cfg, testNow)
	if tier != 10 || got.Available {
		t.Errorf("fresh user: got tier=%d available=%v, want locked tier 10", tier, got.Available)
	}

	for i := 0; i < 10; i++ {
		brain.VerbHistory[string(rune('a'+i))+"are"] = entity.NewVerbState(true, testNow)
	}
	tier, got = MilestoneAvailability(brain, cfg, testNow)
	if tier != 10 || !got.Available {
		t.Errorf("10 verbs: got tier=%d available=%v reason=%q", tier, got.Available, got.Reason)
	}

	// A failure opens the cooldown.
	brain.LastMilestoneFail = testNow.Add(-time.Hour)
	if _, got := MilestoneAvailability(brain, cfg, testNow); got.Available {
		t.Error("milestone must respect the failure cooldown")
	}

	// A pass advances to the next tier, which needs more verbs.
	brain.LastMilestoneFail = time.Time{}
	brain.MilestoneHistory = append(brain.MilestoneHistory, entity.MilestoneRecord{Tier: 10, Date: testNow, Score: 9})
	tier, got = MilestoneAvailability(brain, cfg, testNow)
	if tier != 20 || got.Available {
		t.Errorf("after pass: got tier=%d available=%v, want locked tier 20", tier, got.Available)
	}
}

func TestNextMilestoneTierExhausted(t *testing.T) {
	cfg := entity.DefaultGameConfig()
	brain := entity.NewUserBrain("u1", testNow)
	for _, tier := range cfg.MilestoneTiers {
		brain.MilestoneHistory = append(brain.MilestoneHistory, entity.MilestoneRecord{Tier: tier})
	}
	if _, ok := NextMilestoneTier(brain, cfg); ok {
		t.Error("all tiers claimed must report no next tier")
	}
}

func TestMaybeLevelUp(t *testing.T) {
	cfg := entity.DefaultGameConfig()
	brain := entity.NewUserBrain("u1", testNow)
	brain.LevelStats[entity.LevelA1].Score = cfg.LevelUpXP[entity.LevelA1] - 1

	if _, promoted := maybeLevelUp(brain, cfg); promoted {
		t.Error("below threshold must not promote")
	}

	brain.LevelStats[entity.LevelA1].Score = cfg.LevelUpXP[entity.LevelA1]
	level, promoted := maybeLevelUp(brain, cfg)
	if !promoted || level != entity.LevelA2 {
		t.Errorf("got %s promoted=%v, want A2 true", level, promoted)
	}
	if brain.CurrentLevel != entity.LevelA2 {
		t.Error("promotion must update the Brain level")
	}

	// C1 has no threshold configured and never promotes.
	brain.CurrentLevel = entity.LevelC1
	brain.LevelStats[entity.LevelC1].Score = 1 << 20
	if _, promoted := maybeLevelUp(brain, cfg); promoted {
		t.Error("C1 must be terminal")
	}
}

func TestStoreItemsWellFormed(t *testing.T) {
	seen := make(map[string]bool)
	for _, item := range StoreItems() {
		if item.ID == "" || item.Name == "" || item.Price <= 0 {
			t.Errorf("malformed store item %+v", item)
		}
		if seen[item.ID] {
			t.Errorf("duplicate store item id %q", item.ID)
		}
		seen[item.ID] = true
	}

	if _, ok := FindStoreItem("streak-freeze"); !ok {
		t.Error("streak-freeze must exist")
	}
	if _, ok := FindStoreItem("no-such-item"); ok {
		t.Error("unknown id must not resolve")
	}
}
