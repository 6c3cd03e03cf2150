// Package grammar implements the deterministic Italian conjugation engine and
// the fill-in-the-blank sentence synthesizer. Both are pure: same inputs,
// same outputs, no clock or RNG.
package grammar

import (
	"fmt"
	"strings"

	"github.com/eslsoft/parlato/internal/entity"
)

// personCount is the fixed size of a conjugation table:
// io, tu, lui/lei, noi, voi, loro.
const personCount = 6

// Conjugate produces the six ordered person forms for a verb in a tense.
// Lookup order: irregular table for the tense, then regular suffix rules by
// infinitive ending. When neither applies it returns
// entity.ErrConjugationUnavailable, which callers treat as a catalog defect.
func Conjugate(infinitive string, tense entity.Tense, tags []string) ([]string, error) {
	verb := entity.NormalizeInfinitive(infinitive)
	if verb == "" {
		return nil, fmt.Errorf("%w: empty infinitive", entity.ErrConjugationUnavailable)
	}

	switch tense {
	case entity.TensePresente:
		return conjugatePresente(verb)
	case entity.TenseImperfetto:
		return conjugateImperfetto(verb)
	case entity.TensePassatoProssimo:
		return conjugatePassatoProssimo(verb, tags)
	default:
		return nil, fmt.Errorf("%w: unsupported tense %q", entity.ErrConjugationUnavailable, tense)
	}
}

func conjugatePresente(verb string) ([]string, error) {
	if forms, ok := irregularPresente[verb]; ok {
		return forms[:], nil
	}

	stem, ending, ok := splitInfinitive(verb)
	if !ok {
		return nil, fmt.Errorf("%w: %s (%s)", entity.ErrConjugationUnavailable, verb, entity.TensePresente)
	}

	var suffixes [personCount]string
	switch ending {
	case "are":
		forms := make([]string, personCount)
		for i, suffix := range [personCount]string{"o", "i", "a", "iamo", "ate", "ano"} {
			forms[i] = joinAreStem(stem, suffix)
		}
		return forms, nil
	case "ere":
		suffixes = [personCount]string{"o", "i", "e", "iamo", "ete", "ono"}
	case "ire":
		if isIscVerb(verb) {
			return applySuffixes(stem, [personCount]string{"isco", "isci", "isce", "iamo", "ite", "iscono"}), nil
		}
		suffixes = [personCount]string{"o", "i", "e", "iamo", "ite", "ono"}
	}
	return applySuffixes(stem, suffixes), nil
}

// joinAreStem joins an -are stem to a presente suffix with the standard
// orthographic adjustments: a stem-final i is not doubled before an
// i-initial suffix (mangi+i = mangi, mangi+iamo = mangiamo), and stem-final
// c/g take an h to keep the hard sound (paghi, paghiamo).
func joinAreStem(stem, suffix string) string {
	if strings.HasPrefix(suffix, "i") {
		if strings.HasSuffix(stem, "i") {
			return stem[:len(stem)-1] + suffix
		}
		if strings.HasSuffix(stem, "c") || strings.HasSuffix(stem, "g") {
			return stem + "h" + suffix
		}
	}
	return stem + suffix
}

func conjugateImperfetto(verb string) ([]string, error) {
	if forms, ok := irregularImperfetto[verb]; ok {
		return forms[:], nil
	}

	stem, ending, ok := splitInfinitive(verb)
	if !ok {
		return nil, fmt.Errorf("%w: %s (%s)", entity.ErrConjugationUnavailable, verb, entity.TenseImperfetto)
	}

	// Imperfetto keeps the thematic vowel: parl-avo, cred-evo, dorm-ivo.
	vowel := string(ending[0])
	suffixes := [personCount]string{
		vowel + "vo", vowel + "vi", vowel + "va",
		vowel + "vamo", vowel + "vate", vowel + "vano",
	}
	return applySuffixes(stem, suffixes), nil
}

func conjugatePassatoProssimo(verb string, tags []string) ([]string, error) {
	participle, err := pastParticiple(verb)
	if err != nil {
		return nil, err
	}

	aux := "avere"
	if takesEssere(verb, tags) {
		aux = "essere"
	}
	auxForms, err := conjugatePresente(aux)
	if err != nil {
		return nil, err
	}

	forms := make([]string, personCount)
	for i := range forms {
		p := participle
		if aux == "essere" {
			// Gender agreement defaults to masculine singular/plural.
			p = agreeParticiple(participle, i)
		}
		forms[i] = auxForms[i] + " " + p
	}
	return forms, nil
}

func pastParticiple(verb string) (string, error) {
	if p, ok := irregularParticiple[verb]; ok {
		return p, nil
	}

	stem, ending, ok := splitInfinitive(verb)
	if !ok {
		return "", fmt.Errorf("%w: %s (participle)", entity.ErrConjugationUnavailable, verb)
	}
	switch ending {
	case "are":
		return stem + "ato", nil
	case "ere":
		return stem + "uto", nil
	default:
		return stem + "ito", nil
	}
}

func takesEssere(verb string, tags []string) bool {
	for _, tag := range tags {
		if strings.EqualFold(tag, entity.TagEssere) || strings.EqualFold(tag, entity.TagReflexive) {
			return true
		}
	}
	return essereVerbs[verb]
}

// agreeParticiple inflects an essere participle for plural persons.
func agreeParticiple(participle string, person int) string {
	if person < 3 || len(participle) == 0 {
		return participle
	}
	return participle[:len(participle)-1] + "i"
}

func splitInfinitive(verb string) (stem, ending string, ok bool) {
	if len(verb) < 4 {
		return "", "", false
	}
	ending = verb[len(verb)-3:]
	switch ending {
	case "are", "ere", "ire":
		return verb[:len(verb)-3], ending, true
	}
	return "", "", false
}

// iscVerbs lists -ire verbs that take the -isc- infix in the present tense.
var iscVerbs = map[string]bool{
	"capire":       true,
	"finire":       true,
	"preferire":    true,
	"pulire":       true,
	"spedire":      true,
	"costruire":    true,
	"unire":        true,
	"guarire":      true,
	"chiarire":     true,
	"approfondire": true,
}

func isIscVerb(verb string) bool {
	return iscVerbs[verb]
}

func applySuffixes(stem string, suffixes [personCount]string) []string {
	forms := make([]string, personCount)
	for i, suffix := range suffixes {
		forms[i] = stem + suffix
	}
	return forms
}
