package entity

// Event is one user action the progression reducer folds into the Brain.
// Events are applied strictly in the order they occurred: streaks and weights
// are order-sensitive accumulators.
type Event interface {
	EventName() string
}

// PracticeAnswered reports a single fill-in-the-blank answer.
type PracticeAnswered struct {
	Verb    string `json:"verb"`
	Level   Level  `json:"level"`
	Correct bool   `json:"correct"`
}

func (PracticeAnswered) EventName() string { return "practice_answered" }

// DrillCompleted reports a finished multi-blank drill for one verb.
type DrillCompleted struct {
	Verb    string `json:"verb"`
	Level   Level  `json:"level"`
	Blanks  int    `json:"blanks"`
	Correct int    `json:"correct"`
}

func (DrillCompleted) EventName() string { return "drill_completed" }

// StoryConsumed reports that the user entered an unlocked story session.
type StoryConsumed struct{}

func (StoryConsumed) EventName() string { return "story_consumed" }

// MilestoneAttempted reports a finished milestone exam.
type MilestoneAttempted struct {
	Tier  int `json:"tier"`
	Score int `json:"score"`
}

func (MilestoneAttempted) EventName() string { return "milestone_attempted" }

// BossAttempted reports a finished boss exam with the composite score
// across all three phases.
type BossAttempted struct {
	Score int `json:"score"`
}

func (BossAttempted) EventName() string { return "boss_attempted" }

// ItemPurchased reports a validated store purchase to apply to the Brain.
type ItemPurchased struct {
	Item StoreItem `json:"item"`
}

func (ItemPurchased) EventName() string { return "item_purchased" }
