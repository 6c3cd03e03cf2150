package entity

import "strings"

// Common conjugation-class tags carried by catalog entries.
const (
	TagIrregular = "irregular"
	TagEssere    = "essere"
	TagIndirect  = "indirect"
	TagReflexive = "reflexive"
)

// Tense identifies a supported grammatical tense.
type Tense string

const (
	TensePresente        Tense = "Presente Indicativo"
	TensePassatoProssimo Tense = "Passato Prossimo"
	TenseImperfetto      Tense = "Imperfetto"
)

// SupportedTenses lists every tense the conjugation engine can produce.
var SupportedTenses = []Tense{TensePresente, TensePassatoProssimo, TenseImperfetto}

// VerbEntry is an immutable catalog record for a single Italian verb.
type VerbEntry struct {
	Infinitive  string   `json:"infinitive"`
	Translation string   `json:"translation"`
	Level       Level    `json:"level"`
	Tags        []string `json:"tags,omitempty"`
}

// HasTag reports whether the entry carries the given conjugation-class tag.
func (v VerbEntry) HasTag(tag string) bool {
	for _, t := range v.Tags {
		if strings.EqualFold(t, tag) {
			return true
		}
	}
	return false
}

// Key returns the normalized form used for catalog and history lookups.
func (v VerbEntry) Key() string {
	return NormalizeInfinitive(v.Infinitive)
}

// NormalizeInfinitive lowers and trims an infinitive for case-insensitive comparison.
func NormalizeInfinitive(infinitive string) string {
	return strings.ToLower(strings.TrimSpace(infinitive))
}

// CanonicalInfinitive returns the catalog's capitalized display form.
func CanonicalInfinitive(infinitive string) string {
	normalized := NormalizeInfinitive(infinitive)
	if normalized == "" {
		return ""
	}
	return strings.ToUpper(normalized[:1]) + normalized[1:]
}
