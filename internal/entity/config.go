package entity

// LevelChance is one weighted bucket option in a leakage table. Chances for a
// given user level sum to 100.
type LevelChance struct {
	Level  Level `json:"level"`
	Chance int   `json:"chance"`
}

// XPAwards holds the XP granted per activity type.
type XPAwards struct {
	Practice  int `json:"practice"`
	Drill     int `json:"drill"`
	Story     int `json:"story"`
	Milestone int `json:"milestone"`
	Boss      int `json:"boss"`
}

// GameConfig is the versioned admin-tunable rule set. Engines only ever read
// the snapshot handed to a single operation.
type GameConfig struct {
	Version int `json:"version"`

	XP           XPAwards      `json:"xp"`
	LevelUpXP    map[Level]int `json:"level_up_xp"`
	MaxXPSession int           `json:"max_xp_session"`

	BucketLeakage map[Level][]LevelChance `json:"bucket_leakage"`

	SpiralTriggerProgress float64 `json:"spiral_trigger_progress"`
	SpiralLearningChance  float64 `json:"spiral_learning_chance"`

	DrillBlanks map[Level]int `json:"drill_blanks"`

	RecentWindowHours int `json:"recent_window_hours"`
	LessonBufferSize  int `json:"lesson_buffer_size"`
	AITimeoutSeconds  int `json:"ai_timeout_seconds"`

	StoryUnlockCount int `json:"story_unlock_count"`

	BossUnlockXP      int `json:"boss_unlock_xp"`
	BossCooldownHours int `json:"boss_cooldown_hours"`
	BossPassScore     int `json:"boss_pass_score"`

	MilestoneTiers         []int `json:"milestone_tiers"`
	MilestoneCooldownHours int   `json:"milestone_cooldown_hours"`
	MilestonePassScore     int   `json:"milestone_pass_score"`

	MinigameWeights map[string]int `json:"minigame_weights"`
}

// DefaultGameConfig returns the shipped rule set used until an admin edits it.
func DefaultGameConfig() *GameConfig {
	tiers := make([]int, 0, 34)
	for tier := 10; tier <= 340; tier += 10 {
		tiers = append(tiers, tier)
	}
	return &GameConfig{
		Version: 1,
		XP: XPAwards{
			Practice:  10,
			Drill:     25,
			Story:     50,
			Milestone: 100,
			Boss:      250,
		},
		LevelUpXP: map[Level]int{
			LevelA1: 1000,
			LevelA2: 2500,
			LevelB1: 5000,
			LevelB2: 9000,
		},
		MaxXPSession: 500,
		BucketLeakage: map[Level][]LevelChance{
			LevelA1: {{Level: LevelA1, Chance: 100}},
			LevelA2: {{Level: LevelA1, Chance: 20}, {Level: LevelA2, Chance: 80}},
			LevelB1: {{Level: LevelA1, Chance: 15}, {Level: LevelA2, Chance: 15}, {Level: LevelB1, Chance: 70}},
			LevelB2: {{Level: LevelA1, Chance: 10}, {Level: LevelA2, Chance: 10}, {Level: LevelB1, Chance: 15}, {Level: LevelB2, Chance: 65}},
			LevelC1: {{Level: LevelA1, Chance: 5}, {Level: LevelA2, Chance: 10}, {Level: LevelB1, Chance: 10}, {Level: LevelB2, Chance: 15}, {Level: LevelC1, Chance: 60}},
		},
		SpiralTriggerProgress: 40,
		SpiralLearningChance:  0.3,
		DrillBlanks: map[Level]int{
			LevelA1: 2,
			LevelA2: 3,
			LevelB1: 4,
			LevelB2: 5,
			LevelC1: 6,
		},
		RecentWindowHours:      24,
		LessonBufferSize:       2,
		AITimeoutSeconds:       12,
		StoryUnlockCount:       5,
		BossUnlockXP:           3000,
		BossCooldownHours:      24,
		BossPassScore:          20,
		MilestoneTiers:         tiers,
		MilestoneCooldownHours: 12,
		MilestonePassScore:     8,
		MinigameWeights: map[string]int{
			"match_pairs": 35,
			"flashcards":  35,
			"dictation":   30,
		},
	}
}

// Normalize fills zero-valued tunables with shipped defaults so a partially
// edited config never disables a rule outright.
func (c *GameConfig) Normalize() {
	defaults := DefaultGameConfig()
	if c.Version <= 0 {
		c.Version = defaults.Version
	}
	if c.XP == (XPAwards{}) {
		c.XP = defaults.XP
	}
	if len(c.LevelUpXP) == 0 {
		c.LevelUpXP = defaults.LevelUpXP
	}
	if len(c.BucketLeakage) == 0 {
		c.BucketLeakage = defaults.BucketLeakage
	}
	if c.SpiralLearningChance <= 0 {
		c.SpiralLearningChance = defaults.SpiralLearningChance
	}
	if len(c.DrillBlanks) == 0 {
		c.DrillBlanks = defaults.DrillBlanks
	}
	if c.RecentWindowHours <= 0 {
		c.RecentWindowHours = defaults.RecentWindowHours
	}
	if c.LessonBufferSize <= 0 {
		c.LessonBufferSize = defaults.LessonBufferSize
	}
	if c.AITimeoutSeconds <= 0 {
		c.AITimeoutSeconds = defaults.AITimeoutSeconds
	}
	if c.StoryUnlockCount <= 0 {
		c.StoryUnlockCount = defaults.StoryUnlockCount
	}
	if c.BossUnlockXP <= 0 {
		c.BossUnlockXP = defaults.BossUnlockXP
	}
	if c.BossCooldownHours <= 0 {
		c.BossCooldownHours = defaults.BossCooldownHours
	}
	if c.BossPassScore <= 0 {
		c.BossPassScore = defaults.BossPassScore
	}
	if len(c.MilestoneTiers) == 0 {
		c.MilestoneTiers = defaults.MilestoneTiers
	}
	if c.MilestoneCooldownHours <= 0 {
		c.MilestoneCooldownHours = defaults.MilestoneCooldownHours
	}
	if c.MilestonePassScore <= 0 {
		c.MilestonePassScore = defaults.MilestonePassScore
	}
	if len(c.MinigameWeights) == 0 {
		c.MinigameWeights = defaults.MinigameWeights
	}
}
