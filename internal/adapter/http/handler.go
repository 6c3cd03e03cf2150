package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/eslsoft/parlato/internal/catalog"
	"github.com/eslsoft/parlato/internal/entity"
	"github.com/eslsoft/parlato/internal/repository"
	"github.com/eslsoft/parlato/internal/usecase"
	"github.com/eslsoft/parlato/pkg/filterexpr"
)

// Handler carries the usecases behind the JSON API.
type Handler struct {
	lessons  usecase.LessonUsecase
	exams    usecase.ExamUsecase
	progress usecase.ProgressUsecase
	configs  repository.GameConfigRepository
	catalog  *catalog.Catalog
	logger   *logrus.Logger
}

// NewHandler wires the API handler.
func NewHandler(lessons usecase.LessonUsecase, exams usecase.ExamUsecase, progress usecase.ProgressUsecase, configs repository.GameConfigRepository, cat *catalog.Catalog, logger *logrus.Logger) *Handler {
	return &Handler{
		lessons:  lessons,
		exams:    exams,
		progress: progress,
		configs:  configs,
		catalog:  cat,
		logger:   logger,
	}
}

// Health reports liveness.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// verbFilterFields declares what catalog filters may reference.
var verbFilterFields = []filterexpr.Field{
	{Name: "infinitive", Kind: filterexpr.KindString},
	{Name: "translation", Kind: filterexpr.KindString},
	{Name: "level", Kind: filterexpr.KindString},
	{Name: "irregular", Kind: filterexpr.KindBool},
}

// ListVerbs returns catalog entries, optionally narrowed by a CEL filter,
// e.g. ?filter=level == "B1" && irregular.
func (h *Handler) ListVerbs(c *gin.Context) {
	predicate, err := filterexpr.Compile(c.Query("filter"), verbFilterFields)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	entries := make([]entity.VerbEntry, 0, h.catalog.Size())
	for _, entry := range h.catalog.All() {
		matched, err := predicate(map[string]any{
			"infinitive":  entry.Infinitive,
			"translation": entry.Translation,
			"level":       string(entry.Level),
			"irregular":   entry.HasTag(entity.TagIrregular),
		})
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if matched {
			entries = append(entries, entry)
		}
	}
	c.JSON(http.StatusOK, gin.H{"verbs": entries, "total": len(entries)})
}

// ListStoreItems returns the purchasable shop catalog.
func (h *Handler) ListStoreItems(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"items": usecase.StoreItems()})
}

// GetBrain returns the caller's full progress document.
func (h *Handler) GetBrain(c *gin.Context) {
	brain, err := h.progress.GetBrain(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, brain)
}

// GetStatus returns the economy/unlock snapshot.
func (h *Handler) GetStatus(c *gin.Context) {
	status, err := h.progress.Status(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, status)
}

// GenerateLesson produces the next teaching session.
func (h *Handler) GenerateLesson(c *gin.Context) {
	brain, err := h.progress.GetBrain(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.renderError(c, err)
		return
	}
	session, err := h.lessons.GenerateLesson(c.Request.Context(), brain)
	if err != nil {
		h.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, session)
}

type batchRequest struct {
	Count int `json:"count"`
}

// GenerateLessonBatch pre-fills the UI's lookahead buffer.
func (h *Handler) GenerateLessonBatch(c *gin.Context) {
	var req batchRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	brain, err := h.progress.GetBrain(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.renderError(c, err)
		return
	}
	sessions, err := h.lessons.GenerateBatch(c.Request.Context(), brain, req.Count)
	if err != nil {
		h.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"lessons": sessions})
}

// eventEnvelope is the tagged wire form of a progression event.
type eventEnvelope struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// DispatchEvent applies one progression event to the Brain and returns the
// updated document.
func (h *Handler) DispatchEvent(c *gin.Context) {
	var envelope eventEnvelope
	if err := c.ShouldBindJSON(&envelope); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	event, err := decodeEvent(envelope)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	brain, err := h.progress.Dispatch(c.Request.Context(), c.Param("id"), event)
	if err != nil {
		h.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, brain)
}

func decodeEvent(envelope eventEnvelope) (entity.Event, error) {
	payload := envelope.Payload
	if payload == nil {
		payload = json.RawMessage("{}")
	}
	switch envelope.Type {
	case entity.PracticeAnswered{}.EventName():
		var ev entity.PracticeAnswered
		return ev, json.Unmarshal(payload, &ev)
	case entity.DrillCompleted{}.EventName():
		var ev entity.DrillCompleted
		return ev, json.Unmarshal(payload, &ev)
	case entity.StoryConsumed{}.EventName():
		var ev entity.StoryConsumed
		return ev, json.Unmarshal(payload, &ev)
	case entity.MilestoneAttempted{}.EventName():
		var ev entity.MilestoneAttempted
		return ev, json.Unmarshal(payload, &ev)
	case entity.BossAttempted{}.EventName():
		var ev entity.BossAttempted
		return ev, json.Unmarshal(payload, &ev)
	default:
		return nil, errors.New("unknown event type: " + envelope.Type)
	}
}

type purchaseRequest struct {
	ItemID string `json:"item_id" binding:"required"`
}

// Purchase validates and applies a store purchase.
func (h *Handler) Purchase(c *gin.Context) {
	var req purchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	brain, err := h.progress.Purchase(c.Request.Context(), c.Param("id"), req.ItemID)
	if err != nil {
		h.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, brain)
}

// GenerateMilestoneExam builds the next tier's exam if it is unlocked.
func (h *Handler) GenerateMilestoneExam(c *gin.Context) {
	brain, err := h.progress.GetBrain(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.renderError(c, err)
		return
	}
	exam, err := h.exams.GenerateMilestoneExam(c.Request.Context(), brain)
	if err != nil {
		h.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, exam)
}

// GenerateBossExam builds the boss exam if the gate is open.
func (h *Handler) GenerateBossExam(c *gin.Context) {
	brain, err := h.progress.GetBrain(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.renderError(c, err)
		return
	}
	exam, err := h.exams.GenerateBossExam(c.Request.Context(), brain)
	if err != nil {
		h.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, exam)
}

// GetConfig returns the active game rule set.
func (h *Handler) GetConfig(c *gin.Context) {
	cfg, err := h.configs.Load(c.Request.Context())
	if err != nil {
		h.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, cfg)
}

// UpdateConfig replaces the active game rule set.
func (h *Handler) UpdateConfig(c *gin.Context) {
	var cfg entity.GameConfig
	if err := c.ShouldBindJSON(&cfg); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.configs.Save(c.Request.Context(), &cfg); err != nil {
		h.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, &cfg)
}

// renderError maps domain errors onto HTTP status codes.
func (h *Handler) renderError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, entity.ErrInvalidEvent):
		status = http.StatusBadRequest
	case errors.Is(err, entity.ErrUnknownItem), errors.Is(err, entity.ErrUnknownVerb):
		status = http.StatusNotFound
	case errors.Is(err, entity.ErrInsufficientFunds):
		status = http.StatusPaymentRequired
	case errors.Is(err, entity.ErrItemAlreadyOwned),
		errors.Is(err, entity.ErrStoryLocked),
		errors.Is(err, entity.ErrMilestoneLocked),
		errors.Is(err, entity.ErrBossLocked):
		status = http.StatusConflict
	}
	if status == http.StatusInternalServerError {
		h.logger.WithError(err).Error("request failed")
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
