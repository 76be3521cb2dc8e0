package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/prepmaster/prepmaster-backend/internal/config"
	"github.com/prepmaster/prepmaster-backend/internal/response"
	"github.com/prepmaster/prepmaster-backend/internal/service"
)

// SystemHandler serves operational endpoints.
type SystemHandler struct {
	cfg *config.Config
	ai  *service.AIService
}

func NewSystemHandler(cfg *config.Config, ai *service.AIService) *SystemHandler {
	return &SystemHandler{cfg: cfg, ai: ai}
}

// Health reports liveness plus whether the AI provider is usable, so a
// frontend can tell degraded mode apart from an outage.
// GET /health
func (h *SystemHandler) Health(c *gin.Context) {
	response.OK(c, gin.H{
		"status":           "ok",
		"geminiConfigured": h.ai.Configured(),
		"model":            h.cfg.GeminiModel,
		"storage":          h.cfg.StorageBackend,
		"timestamp":        time.Now().UTC().Format(time.RFC3339),
	})
}
