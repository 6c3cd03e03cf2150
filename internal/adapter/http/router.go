// Package http exposes the progression engine as a JSON API. Handlers stay
// thin: they decode requests, call usecases, and map domain errors to
// status codes.
package http

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/eslsoft/parlato/internal/infrastructure/server"
)

// NewRouter assembles the gin engine with middleware and all routes.
func NewRouter(handler *Handler, logger *logrus.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(server.RequestLogger(logger))
	router.Use(cors.Default())

	router.GET("/healthz", handler.Health)

	api := router.Group("/api/v1")
	{
		api.GET("/catalog/verbs", handler.ListVerbs)
		api.GET("/store/items", handler.ListStoreItems)

		users := api.Group("/users/:id")
		{
			users.GET("/brain", handler.GetBrain)
			users.GET("/status", handler.GetStatus)
			users.POST("/lessons", handler.GenerateLesson)
			users.POST("/lessons/batch", handler.GenerateLessonBatch)
			users.POST("/events", handler.DispatchEvent)
			users.POST("/purchases", handler.Purchase)
			users.POST("/exams/milestone", handler.GenerateMilestoneExam)
			users.POST("/exams/boss", handler.GenerateBossExam)
		}

		admin := api.Group("/admin")
		{
			admin.GET("/config", handler.GetConfig)
			admin.PUT("/config", handler.UpdateConfig)
		}
	}

	return router
}
