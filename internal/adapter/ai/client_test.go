package ai

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/eslsoft/parlato/internal/entity"
)

func testClient(baseURL, apiKey string) *Client {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return &Client{
		baseURL:    baseURL,
		apiKey:     apiKey,
		model:      "gpt-4o-mini",
		httpClient: &http.Client{Timeout: 5 * time.Second},
		log:        logger,
	}
}

func chatServer(t *testing.T, status int, content any) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/chat/completions" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("authorization: got %q", got)
		}
		if status != http.StatusOK {
			w.WriteHeader(status)
			return
		}
		inner, err := json.Marshal(content)
		if err != nil {
			t.Fatalf("marshal content: %v", err)
		}
		envelope := map[string]any{
			"choices": []map[string]any{
				{"message": map[string]any{"content": string(inner)}},
			},
		}
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(envelope); err != nil {
			t.Errorf("encode envelope: %v", err)
		}
	}))
}

func TestGenerateLessonDecodesCompletion(t *testing.T) {
	srv := chatServer(t, http.StatusOK, map[string]any{
		"definition":       "to speak",
		"verb_type":        "regular -are",
		"full_conjugation": []string{"parlo", "parli", "parla", "parliamo", "parlate", "parlano"},
		"usage_tip":        "Common in everyday conversation.",
		"practice_sentences": []map[string]string{
			{"sentence_start": "Io ", "sentence_end": " italiano.", "correct_answer": "parlo"},
			{"sentence_start": "Tu ", "sentence_end": " inglese.", "correct_answer": "parli"},
		},
	})
	defer srv.Close()

	client := testClient(srv.URL, "test-key")
	verb := entity.VerbEntry{Infinitive: "Parlare", Translation: "to speak", Level: entity.LevelA1}

	session, err := client.GenerateLesson(context.Background(), verb, entity.TensePresente, entity.LevelA1)
	if err != nil {
		t.Fatalf("GenerateLesson: %v", err)
	}
	if session.Source != entity.SourceAI {
		t.Errorf("source: got %s, want ai", session.Source)
	}
	if len(session.Lesson.FullConjugation) != 6 {
		t.Errorf("conjugation: got %d forms", len(session.Lesson.FullConjugation))
	}
	if len(session.PracticeSentences) != 2 || session.PracticeSentences[0].CorrectAnswer != "parlo" {
		t.Errorf("practice sentences: %+v", session.PracticeSentences)
	}
	if session.Verb.Infinitive != "Parlare" {
		t.Errorf("verb echo: got %q", session.Verb.Infinitive)
	}
}

func TestGenerateLessonWithoutAPIKey(t *testing.T) {
	client := testClient("http://127.0.0.1:1", "")

	_, err := client.GenerateLesson(context.Background(), entity.VerbEntry{Infinitive: "Parlare"}, entity.TensePresente, entity.LevelA1)
	if !errors.Is(err, entity.ErrContentUnavailable) {
		t.Fatalf("got %v, want ErrContentUnavailable", err)
	}
}

func TestGenerateLessonServerError(t *testing.T) {
	srv := chatServer(t, http.StatusBadGateway, nil)
	defer srv.Close()

	client := testClient(srv.URL, "test-key")
	_, err := client.GenerateLesson(context.Background(), entity.VerbEntry{Infinitive: "Parlare"}, entity.TensePresente, entity.LevelA1)
	if !errors.Is(err, entity.ErrContentUnavailable) {
		t.Fatalf("got %v, want ErrContentUnavailable", err)
	}
}

func TestGenerateLessonMalformedContent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		envelope := map[string]any{
			"choices": []map[string]any{
				{"message": map[string]any{"content": "sorry, no JSON today"}},
			},
		}
		json.NewEncoder(w).Encode(envelope)
	}))
	defer srv.Close()

	client := testClient(srv.URL, "test-key")
	_, err := client.GenerateLesson(context.Background(), entity.VerbEntry{Infinitive: "Parlare"}, entity.TensePresente, entity.LevelA1)
	if !errors.Is(err, entity.ErrContentUnavailable) {
		t.Fatalf("got %v, want ErrContentUnavailable", err)
	}
}

func TestGenerateMilestoneExamDecodesQuestions(t *testing.T) {
	questions := make([]map[string]any, entity.MilestoneExamSize)
	for i := range questions {
		questions[i] = map[string]any{
			"kind":           "conjugation",
			"prompt":         "Conjugate parlare for io",
			"options":        []string{"parlo", "parli", "parla", "parliamo"},
			"correct_answer": "parlo",
		}
	}
	srv := chatServer(t, http.StatusOK, map[string]any{"questions": questions})
	defer srv.Close()

	client := testClient(srv.URL, "test-key")
	exam, err := client.GenerateMilestoneExam(context.Background(), 10, nil)
	if err != nil {
		t.Fatalf("GenerateMilestoneExam: %v", err)
	}
	if exam.Tier != 10 {
		t.Errorf("tier: got %d", exam.Tier)
	}
	if len(exam.Questions) != entity.MilestoneExamSize {
		t.Errorf("questions: got %d", len(exam.Questions))
	}
	if exam.Source != entity.SourceAI {
		t.Errorf("source: got %s", exam.Source)
	}
}

func TestGenerateBossExamEmptyCompletion(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"choices": []any{}})
	}))
	defer srv.Close()

	client := testClient(srv.URL, "test-key")
	_, err := client.GenerateBossExam(context.Background(), nil)
	if !errors.Is(err, entity.ErrContentUnavailable) {
		t.Fatalf("got %v, want ErrContentUnavailable", err)
	}
}
