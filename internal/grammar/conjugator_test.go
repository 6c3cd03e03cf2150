package grammar

import (
	"errors"
	"testing"

	"github.com/eslsoft/parlato/internal/entity"
)

func TestConjugateRegularPresente(t *testing.T) {
	cases := []struct {
		verb string
		want []string
	}{
		{"parlare", []string{"parlo", "parli", "parla", "parliamo", "parlate", "parlano"}},
		{"credere", []string{"credo", "credi", "crede", "crediamo", "credete", "credono"}},
		{"dormire", []string{"dormo", "dormi", "dorme", "dormiamo", "dormite", "dormono"}},
	}
	for _, tc := range cases {
		forms, err := Conjugate(tc.verb, entity.TensePresente, nil)
		if err != nil {
			t.Fatalf("Conjugate(%q): %v", tc.verb, err)
		}
		assertForms(t, tc.verb, forms, tc.want)
	}
}

func TestConjugatePresenteOrthography(t *testing.T) {
	cases := []struct {
		verb string
		want []string
	}{
		{"mangiare", []string{"mangio", "mangi", "mangia", "mangiamo", "mangiate", "mangiano"}},
		{"studiare", []string{"studio", "studi", "studia", "studiamo", "studiate", "studiano"}},
		{"viaggiare", []string{"viaggio", "viaggi", "viaggia", "viaggiamo", "viaggiate", "viaggiano"}},
		{"pagare", []string{"pago", "paghi", "paga", "paghiamo", "pagate", "pagano"}},
		{"cercare", []string{"cerco", "cerchi", "cerca", "cerchiamo", "cercate", "cercano"}},
	}
	for _, tc := range cases {
		forms, err := Conjugate(tc.verb, entity.TensePresente, nil)
		if err != nil {
			t.Fatalf("Conjugate(%q): %v", tc.verb, err)
		}
		assertForms(t, tc.verb, forms, tc.want)
	}
}

func TestConjugateIscVerb(t *testing.T) {
	forms, err := Conjugate("Capire", entity.TensePresente, nil)
	if err != nil {
		t.Fatalf("Conjugate: %v", err)
	}
	assertForms(t, "capire", forms, []string{"capisco", "capisci", "capisce", "capiamo", "capite", "capiscono"})
}

func TestConjugateIrregularPresente(t *testing.T) {
	forms, err := Conjugate("essere", entity.TensePresente, []string{entity.TagIrregular})
	if err != nil {
		t.Fatalf("Conjugate: %v", err)
	}
	assertForms(t, "essere", forms, []string{"sono", "sei", "è", "siamo", "siete", "sono"})
}

func TestConjugateImperfetto(t *testing.T) {
	forms, err := Conjugate("parlare", entity.TenseImperfetto, nil)
	if err != nil {
		t.Fatalf("Conjugate: %v", err)
	}
	assertForms(t, "parlare", forms, []string{"parlavo", "parlavi", "parlava", "parlavamo", "parlavate", "parlavano"})

	forms, err = Conjugate("essere", entity.TenseImperfetto, nil)
	if err != nil {
		t.Fatalf("Conjugate: %v", err)
	}
	if forms[0] != "ero" {
		t.Fatalf("irregular imperfetto of essere: got %q, want ero", forms[0])
	}
}

func TestConjugatePassatoProssimoAvere(t *testing.T) {
	forms, err := Conjugate("mangiare", entity.TensePassatoProssimo, nil)
	if err != nil {
		t.Fatalf("Conjugate: %v", err)
	}
	assertForms(t, "mangiare", forms, []string{
		"ho mangiato", "hai mangiato", "ha mangiato",
		"abbiamo mangiato", "avete mangiato", "hanno mangiato",
	})
}

func TestConjugatePassatoProssimoEssereAgreement(t *testing.T) {
	forms, err := Conjugate("andare", entity.TensePassatoProssimo, []string{entity.TagIrregular, entity.TagEssere})
	if err != nil {
		t.Fatalf("Conjugate: %v", err)
	}
	if forms[0] != "sono andato" {
		t.Errorf("singular: got %q, want %q", forms[0], "sono andato")
	}
	if forms[3] != "siamo andati" {
		t.Errorf("plural agreement: got %q, want %q", forms[3], "siamo andati")
	}
}

func TestConjugateIrregularParticiple(t *testing.T) {
	forms, err := Conjugate("fare", entity.TensePassatoProssimo, []string{entity.TagIrregular})
	if err != nil {
		t.Fatalf("Conjugate: %v", err)
	}
	if forms[0] != "ho fatto" {
		t.Fatalf("got %q, want %q", forms[0], "ho fatto")
	}
}

func TestConjugateUnsupportedTense(t *testing.T) {
	_, err := Conjugate("parlare", entity.Tense("Futuro"), nil)
	if !errors.Is(err, entity.ErrConjugationUnavailable) {
		t.Fatalf("got %v, want ErrConjugationUnavailable", err)
	}
}

func TestConjugateBadInfinitive(t *testing.T) {
	for _, verb := range []string{"", "ire", "xyz"} {
		if _, err := Conjugate(verb, entity.TensePresente, nil); !errors.Is(err, entity.ErrConjugationUnavailable) {
			t.Errorf("Conjugate(%q): got %v, want ErrConjugationUnavailable", verb, err)
		}
	}
}

func assertForms(t *testing.T, verb string, got, want []string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("%s: got %d forms, want %d", verb, len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("%s person %d: got %q, want %q", verb, i, got[i], want[i])
		}
	}
}
