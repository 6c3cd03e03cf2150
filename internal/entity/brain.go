package entity

import "time"

// historyLimit bounds the rolling outcome window kept per verb.
const historyLimit = 5

// VerbState is the mastery record for one verb in a user's history.
type VerbState struct {
	LastSeen           time.Time `json:"last_seen"`
	ConsecutiveCorrect int       `json:"consecutive_correct"`
	ConsecutiveErrors  int       `json:"consecutive_errors"`
	Weight             int       `json:"weight"`
	History            []bool    `json:"history"`
}

// NewVerbState creates the initial mastery record from a first outcome.
func NewVerbState(correct bool, now time.Time) *VerbState {
	state := &VerbState{
		LastSeen: now,
		Weight:   1,
		History:  []bool{correct},
	}
	if correct {
		state.ConsecutiveCorrect = 1
	} else {
		state.ConsecutiveErrors = 1
		state.Weight = 3
	}
	return state
}

// RecordOutcome folds one practice outcome into the record. Weight never
// drops below 1 and the history window keeps at most the last five outcomes.
func (s *VerbState) RecordOutcome(correct bool, now time.Time) {
	s.LastSeen = now
	if correct {
		s.ConsecutiveCorrect++
		s.ConsecutiveErrors = 0
		if s.Weight > 1 {
			s.Weight--
		}
	} else {
		s.ConsecutiveErrors++
		s.ConsecutiveCorrect = 0
		s.Weight += 2
	}
	s.History = append(s.History, correct)
	if len(s.History) > historyLimit {
		s.History = s.History[len(s.History)-historyLimit:]
	}
}

// Mastered reports whether the verb has at least one recorded success.
func (s *VerbState) Mastered() bool {
	for _, ok := range s.History {
		if ok {
			return true
		}
	}
	return false
}

// LevelStats accumulates XP and activity per CEFR level.
type LevelStats struct {
	Score          int       `json:"score"`
	ExercisesCount int       `json:"exercises_count"`
	LastPlayed     time.Time `json:"last_played"`
}

// BossStats tracks boss-fight attempts and rewards.
type BossStats struct {
	LastAttempt time.Time `json:"last_attempt"`
	Wins        int       `json:"wins"`
	HasMedal    bool      `json:"has_medal"`
}

// MilestoneRecord is one passed milestone exam.
type MilestoneRecord struct {
	Tier  int       `json:"tier"`
	Date  time.Time `json:"date"`
	Score int       `json:"score"`
}

// StoryRecord marks one consumed story-mode session.
type StoryRecord struct {
	Date time.Time `json:"date"`
}

// Notification is a short user-facing message produced by progression rules.
type Notification struct {
	ID        string    `json:"id"`
	Kind      string    `json:"kind"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

// notificationLimit caps the stored notification list (newest first).
const notificationLimit = 20

// UserBrain is the root per-user progress aggregate. It is the sole unit of
// persistence: every engine operation reads one Brain and produces the next.
type UserBrain struct {
	UserID              string                `json:"user_id"`
	CurrentLevel        Level                 `json:"current_level"`
	LevelStats          map[Level]*LevelStats `json:"level_stats"`
	VerbHistory         map[string]*VerbState `json:"verb_history"`
	SessionStreak       int                   `json:"session_streak"`
	ConsecutiveErrors   int                   `json:"consecutive_errors"`
	VerbsSinceLastStory int                   `json:"verbs_since_last_story"`
	StoryHistory        []StoryRecord         `json:"story_history"`
	MilestoneHistory    []MilestoneRecord     `json:"milestone_history"`
	LastMilestoneFail   time.Time             `json:"last_milestone_fail"`
	BossStats           BossStats             `json:"boss_stats"`
	Inventory           []string              `json:"inventory"`
	ActiveTheme         string                `json:"active_theme"`
	ActiveTitle         string                `json:"active_title"`
	StreakFreeze        int                   `json:"streak_freeze"`
	Notifications       []Notification        `json:"notifications"`
	CreatedAt           time.Time             `json:"created_at"`
	UpdatedAt           time.Time             `json:"updated_at"`
}

// NewUserBrain builds the default Brain for a fresh user.
func NewUserBrain(userID string, now time.Time) *UserBrain {
	stats := make(map[Level]*LevelStats, len(OrderedLevels))
	for _, lvl := range OrderedLevels {
		stats[lvl] = &LevelStats{}
	}
	return &UserBrain{
		UserID:       userID,
		CurrentLevel: LevelA1,
		LevelStats:   stats,
		VerbHistory:  make(map[string]*VerbState),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// Normalize ensures defaults & constraints before persistence.
func (b *UserBrain) Normalize(now time.Time) {
	if b.CreatedAt.IsZero() {
		b.CreatedAt = now
	}
	b.UpdatedAt = now
	b.CurrentLevel = NormalizeLevel(b.CurrentLevel)
	if b.LevelStats == nil {
		b.LevelStats = make(map[Level]*LevelStats, len(OrderedLevels))
	}
	for _, lvl := range OrderedLevels {
		if b.LevelStats[lvl] == nil {
			b.LevelStats[lvl] = &LevelStats{}
		}
	}
	if b.VerbHistory == nil {
		b.VerbHistory = make(map[string]*VerbState)
	}
}

// TotalXP sums the XP balance across every level bucket.
func (b *UserBrain) TotalXP() int {
	total := 0
	for _, stats := range b.LevelStats {
		if stats != nil {
			total += stats.Score
		}
	}
	return total
}

// VerbsDiscovered counts distinct verbs with at least one successful answer.
func (b *UserBrain) VerbsDiscovered() int {
	count := 0
	for _, state := range b.VerbHistory {
		if state.Mastered() {
			count++
		}
	}
	return count
}

// KnownVerbs returns the normalized infinitives of every seen verb.
func (b *UserBrain) KnownVerbs() []string {
	verbs := make([]string, 0, len(b.VerbHistory))
	for verb := range b.VerbHistory {
		verbs = append(verbs, verb)
	}
	return verbs
}

// RecentVerbs returns verbs last seen within the given window before now.
func (b *UserBrain) RecentVerbs(now time.Time, window time.Duration) []string {
	var recent []string
	for verb, state := range b.VerbHistory {
		if now.Sub(state.LastSeen) < window {
			recent = append(recent, verb)
		}
	}
	return recent
}

// Owns reports whether the given store item is already in the inventory.
func (b *UserBrain) Owns(itemID string) bool {
	for _, owned := range b.Inventory {
		if owned == itemID {
			return true
		}
	}
	return false
}

// Notify prepends a notification, trimming the list to its cap.
func (b *UserBrain) Notify(n Notification) {
	b.Notifications = append([]Notification{n}, b.Notifications...)
	if len(b.Notifications) > notificationLimit {
		b.Notifications = b.Notifications[:notificationLimit]
	}
}

// Clone produces a deep copy so reducers can mutate without aliasing.
func (b *UserBrain) Clone() *UserBrain {
	if b == nil {
		return nil
	}
	next := *b
	next.LevelStats = make(map[Level]*LevelStats, len(b.LevelStats))
	for lvl, stats := range b.LevelStats {
		if stats == nil {
			continue
		}
		copied := *stats
		next.LevelStats[lvl] = &copied
	}
	next.VerbHistory = make(map[string]*VerbState, len(b.VerbHistory))
	for verb, state := range b.VerbHistory {
		if state == nil {
			continue
		}
		copied := *state
		copied.History = append([]bool(nil), state.History...)
		next.VerbHistory[verb] = &copied
	}
	next.StoryHistory = append([]StoryRecord(nil), b.StoryHistory...)
	next.MilestoneHistory = append([]MilestoneRecord(nil), b.MilestoneHistory...)
	next.Inventory = append([]string(nil), b.Inventory...)
	next.Notifications = append([]Notification(nil), b.Notifications...)
	return &next
}
