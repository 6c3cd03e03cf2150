// Package ai implements the external content provider against an
// OpenAI-compatible chat completions API. Every method returns an error on
// any transport, status, or shape problem; orchestrators recover locally.
package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/eslsoft/parlato/internal/entity"
	"github.com/eslsoft/parlato/internal/infrastructure/config"
	"github.com/eslsoft/parlato/internal/usecase"
)

// Client talks to the AI content backend.
type Client struct {
	baseURL    string
	apiKey     string
	model      string
	httpClient *http.Client
	log        *logrus.Logger
}

// NewClient builds the provider from application config. A client without an
// API key is still usable: every call fails fast and the deterministic
// pipeline takes over.
func NewClient(cfg *config.Config, log *logrus.Logger) usecase.ContentProvider {
	baseURL := strings.TrimRight(cfg.AI.BaseURL, "/")
	if baseURL == "" {
		baseURL = "https://api.openai.com"
	}
	model := cfg.AI.Model
	if model == "" {
		model = "gpt-4o-mini"
	}
	return &Client{
		baseURL:    baseURL,
		apiKey:     strings.TrimSpace(cfg.AI.APIKey),
		model:      model,
		httpClient: &http.Client{Timeout: time.Duration(cfg.AI.TimeoutSeconds) * time.Second},
		log:        log,
	}
}

type chatRequest struct {
	Model          string          `json:"model"`
	Messages       []chatMessage   `json:"messages"`
	ResponseFormat *responseFormat `json:"response_format,omitempty"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

const lessonSystemPrompt = "You are an Italian language tutor. Reply with a single JSON object, no prose."

func (c *Client) GenerateLesson(ctx context.Context, verb entity.VerbEntry, tense entity.Tense, level entity.Level) (*entity.VerbLessonSession, error) {
	prompt := fmt.Sprintf(
		`Create a lesson for the Italian verb %q (%s) at CEFR level %s, tense %q. JSON fields: definition, secondary_translations (array), verb_type, full_conjugation (exactly 6 forms: io, tu, lui/lei, noi, voi, loro), usage_tip, practice_sentences (array of 2 objects with context, sentence_start, sentence_end, correct_answer).`,
		verb.Infinitive, verb.Translation, level, tense)

	var payload struct {
		Definition            string                    `json:"definition"`
		SecondaryTranslations []string                  `json:"secondary_translations"`
		VerbType              string                    `json:"verb_type"`
		FullConjugation       []string                  `json:"full_conjugation"`
		UsageTip              string                    `json:"usage_tip"`
		PracticeSentences     []entity.PracticeSentence `json:"practice_sentences"`
	}
	if err := c.generateJSON(ctx, prompt, &payload); err != nil {
		return nil, err
	}

	return &entity.VerbLessonSession{
		Verb:  verb,
		Level: level,
		Tense: tense,
		Lesson: entity.Lesson{
			Definition:            payload.Definition,
			SecondaryTranslations: payload.SecondaryTranslations,
			VerbType:              payload.VerbType,
			FullConjugation:       payload.FullConjugation,
			UsageTip:              payload.UsageTip,
		},
		PracticeSentences: payload.PracticeSentences,
		Source:            entity.SourceAI,
	}, nil
}

func (c *Client) GenerateMilestoneExam(ctx context.Context, tier int, verbs []entity.VerbEntry) (*entity.MilestoneExam, error) {
	prompt := fmt.Sprintf(
		`Create a %d-question Italian conjugation exam over these verbs: %s. JSON fields: questions (array of objects with kind, prompt, options (4 strings), correct_answer).`,
		entity.MilestoneExamSize, verbList(verbs))

	var payload struct {
		Questions []entity.ExamQuestion `json:"questions"`
	}
	if err := c.generateJSON(ctx, prompt, &payload); err != nil {
		return nil, err
	}
	return &entity.MilestoneExam{Tier: tier, Questions: payload.Questions, Source: entity.SourceAI}, nil
}

func (c *Client) GenerateBossExam(ctx context.Context, verbs []entity.VerbEntry) (*entity.BossExam, error) {
	prompt := fmt.Sprintf(
		`Create a three-phase Italian boss exam over these verbs: %s. JSON fields: speed (%d questions), precision (%d questions), translation (%d questions); each question has kind, prompt, options, correct_answer.`,
		verbList(verbs), entity.BossSpeedSize, entity.BossPrecisionSize, entity.BossTranslationSize)

	var exam entity.BossExam
	if err := c.generateJSON(ctx, prompt, &exam); err != nil {
		return nil, err
	}
	exam.Source = entity.SourceAI
	return &exam, nil
}

// generateJSON runs one chat completion and decodes the message content
// into out.
func (c *Client) generateJSON(ctx context.Context, prompt string, out any) error {
	if c.apiKey == "" {
		return fmt.Errorf("%w: AI provider not configured", entity.ErrContentUnavailable)
	}

	body := chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: lessonSystemPrompt},
			{Role: "user", Content: prompt},
		},
		ResponseFormat: &responseFormat{Type: "json_object"},
	}

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(body); err != nil {
		return fmt.Errorf("encode AI request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/chat/completions", &buf)
	if err != nil {
		return fmt.Errorf("build AI request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", entity.ErrContentUnavailable, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return fmt.Errorf("%w: read response: %v", entity.ErrContentUnavailable, err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: http %d", entity.ErrContentUnavailable, resp.StatusCode)
	}

	var parsed chatResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return fmt.Errorf("%w: decode envelope: %v", entity.ErrContentUnavailable, err)
	}
	if len(parsed.Choices) == 0 {
		return fmt.Errorf("%w: empty completion", entity.ErrContentUnavailable)
	}
	if err := json.Unmarshal([]byte(parsed.Choices[0].Message.Content), out); err != nil {
		return fmt.Errorf("%w: decode content: %v", entity.ErrContentUnavailable, err)
	}
	return nil
}

func verbList(verbs []entity.VerbEntry) string {
	names := make([]string, 0, len(verbs))
	for _, verb := range verbs {
		names = append(names, verb.Infinitive)
	}
	return strings.Join(names, ", ")
}
