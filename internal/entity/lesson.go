package entity

// ContentSource records which pipeline produced a piece of generated content.
type ContentSource string

const (
	SourceAI    ContentSource = "ai"
	SourceLocal ContentSource = "local"
)

// Lesson is the teachable payload for one verb in one tense.
type Lesson struct {
	Definition            string   `json:"definition"`
	SecondaryTranslations []string `json:"secondary_translations,omitempty"`
	VerbType              string   `json:"verb_type"`
	FullConjugation       []string `json:"full_conjugation"`
	UsageTip              string   `json:"usage_tip,omitempty"`
}

// PracticeSentence is a fill-in-the-blank exercise around one conjugated form.
type PracticeSentence struct {
	Context       string `json:"context,omitempty"`
	SentenceStart string `json:"sentence_start"`
	SentenceEnd   string `json:"sentence_end"`
	CorrectAnswer string `json:"correct_answer"`
}

// VerbLessonSession is one ephemeral teaching cycle. It is never persisted;
// outcomes fold back into the UserBrain as events.
type VerbLessonSession struct {
	Verb              VerbEntry          `json:"verb"`
	Level             Level              `json:"level"`
	Tense             Tense              `json:"tense"`
	Lesson            Lesson             `json:"lesson"`
	PracticeSentences []PracticeSentence `json:"practice_sentences"`
	Source            ContentSource      `json:"source"`
}

// QuestionKind distinguishes exam question phases.
type QuestionKind string

const (
	QuestionSpeed       QuestionKind = "speed"
	QuestionPrecision   QuestionKind = "precision"
	QuestionTranslation QuestionKind = "translation"
	QuestionConjugation QuestionKind = "conjugation"
)

// ExamQuestion is one generated assessment item.
type ExamQuestion struct {
	Kind          QuestionKind `json:"kind"`
	Prompt        string       `json:"prompt"`
	Options       []string     `json:"options,omitempty"`
	CorrectAnswer string       `json:"correct_answer"`
}

// MilestoneExamSize is the fixed question count of a milestone exam.
const MilestoneExamSize = 10

// MilestoneExam is a fixed-size tier checkpoint assessment.
type MilestoneExam struct {
	Tier      int            `json:"tier"`
	Questions []ExamQuestion `json:"questions"`
	Source    ContentSource  `json:"source"`
}

// Boss exam phase sizes. The total is always 25 questions.
const (
	BossSpeedSize       = 10
	BossPrecisionSize   = 10
	BossTranslationSize = 5
	BossExamSize        = BossSpeedSize + BossPrecisionSize + BossTranslationSize
)

// BossExam is the three-phase boss-fight assessment.
type BossExam struct {
	Speed       []ExamQuestion `json:"speed"`
	Precision   []ExamQuestion `json:"precision"`
	Translation []ExamQuestion `json:"translation"`
	Source      ContentSource  `json:"source"`
}
