package grammar

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/eslsoft/parlato/internal/entity"
)

// subjectPools holds the candidate subjects per person index.
var subjectPools = [personCount][]string{
	{"Io"},
	{"Tu"},
	{"Lui", "Lei", "Mario", "Anna", "Il professore"},
	{"Noi"},
	{"Voi"},
	{"Loro", "I ragazzi", "Le ragazze"},
}

// template is a sentence frame with the verb slot between Before and After.
// Before always ends where the subject+space was substituted in.
type template struct {
	Context string
	Before  string
	After   string
}

// genericTemplates are semantically neutral frames that read naturally for
// almost any verb. Verb-specific frames take priority over these.
var genericTemplates = []template{
	{Context: "right now", Before: "In questo momento, {s} ", After: " davvero."},
	{Context: "a question", Before: "Perché {s} ", After: " così?"},
	{Context: "daily routine", Before: "Oggi {s} ", After: " come sempre."},
	{Context: "a habit", Before: "A volte {s} ", After: " senza pensarci."},
	{Context: "an observation", Before: "Secondo me, {s} ", After: " spesso."},
}

// verbTemplates carry frames tied to a specific infinitive, so the blank
// never lands in a semantically absurd sentence.
var verbTemplates = map[string][]template{
	"mangiare": {
		{Context: "at dinner", Before: "{s} ", After: " una pizza enorme."},
		{Context: "at lunch", Before: "A pranzo {s} ", After: " la pasta."},
	},
	"bere": {
		{Context: "at the bar", Before: "{s} ", After: " un caffè al bar."},
	},
	"leggere": {
		{Context: "in the evening", Before: "La sera {s} ", After: " un bel libro."},
	},
	"scrivere": {
		{Context: "a message", Before: "{s} ", After: " una lettera lunga."},
	},
	"abitare": {
		{Context: "home", Before: "{s} ", After: " in una casa al mare."},
	},
	"odiare": {
		{Context: "a strong feeling", Before: "{s} ", After: " i lunedì."},
	},
	"amare": {
		{Context: "a strong feeling", Before: "{s} ", After: " questa città."},
	},
	"parlare": {
		{Context: "languages", Before: "{s} ", After: " italiano molto bene."},
	},
	"comprare": {
		{Context: "shopping", Before: "Al mercato {s} ", After: " la frutta."},
	},
	"guardare": {
		{Context: "television", Before: "La sera {s} ", After: " un film."},
	},
}

// Synthesize builds one fill-in-the-blank practice sentence for the given
// person index using an already-computed conjugation table. The returned
// sentence always carries a non-empty correct answer.
func Synthesize(verb entity.VerbEntry, person int, conjugation []string, rng *rand.Rand) (entity.PracticeSentence, error) {
	if person < 0 || person >= personCount {
		return entity.PracticeSentence{}, fmt.Errorf("person index %d out of range", person)
	}
	if len(conjugation) != personCount || conjugation[person] == "" {
		return entity.PracticeSentence{}, fmt.Errorf("%w: incomplete conjugation for %s", entity.ErrConjugationUnavailable, verb.Infinitive)
	}

	subjects := subjectPools[person]
	subject := subjects[rng.Intn(len(subjects))]

	frames := verbTemplates[verb.Key()]
	if len(frames) == 0 {
		frames = genericTemplates
	}
	frame := frames[rng.Intn(len(frames))]

	return entity.PracticeSentence{
		Context:       frame.Context,
		SentenceStart: strings.ReplaceAll(frame.Before, "{s}", subject),
		SentenceEnd:   frame.After,
		CorrectAnswer: conjugation[person],
	}, nil
}
