package server

import (
	"context"
	"html/template"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"docqa/internal/config"
	"docqa/internal/models"
)

// Runner is the request pipeline the handlers drive.
type Runner interface {
	Run(ctx context.Context, document models.Upload, questions []string) ([]models.QAResult, error)
}

// NewRouter wires the middleware, the Q&A endpoint, and the form UI.
func NewRouter(cfg *config.Config, pipeline Runner) *gin.Engine {
	if cfg.Server.ReleaseMode {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(RequestIDMiddleware())

	corsConfig := cors.DefaultConfig()
	if len(cfg.Server.CORSOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.Server.CORSOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", RequestIDHeader}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	router.SetHTMLTemplate(template.Must(template.New("ui").Parse(uiTemplate)))

	h := &handlers{cfg: cfg, pipeline: pipeline}
	router.GET("/", h.health)
	router.GET("/healthz", h.health)
	router.POST("/qa", h.answerQuestions)
	router.GET("/ui", h.showForm)
	router.POST("/ui", h.answerForm)

	return router
}
