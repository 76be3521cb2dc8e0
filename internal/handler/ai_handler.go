package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/prepmaster/prepmaster-backend/internal/model"
	"github.com/prepmaster/prepmaster-backend/internal/response"
	"github.com/prepmaster/prepmaster-backend/internal/service"
)

// AIHandler serves the AI-backed endpoints. Request bodies are validated by
// hand so each missing field produces the exact guidance message the
// frontend matches on; degraded responses carry fallback:true plus the
// upstream diagnostic in the message field.
type AIHandler struct {
	ai  *service.AIService
	log zerolog.Logger
}

func NewAIHandler(ai *service.AIService, log zerolog.Logger) *AIHandler {
	return &AIHandler{
		ai:  ai,
		log: log.With().Str("component", "ai_handler").Logger(),
	}
}

// GenerateQuestions produces an interview question set.
// POST /ai/interview-questions
func (h *AIHandler) GenerateQuestions(c *gin.Context) {
	var req model.GenerateQuestionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	switch {
	case req.Type == "":
		response.Fail(c, http.StatusBadRequest, "Interview type is required")
		return
	case !req.Type.Valid():
		response.Fail(c, http.StatusBadRequest, "Invalid interview type")
		return
	case req.Difficulty == "":
		response.Fail(c, http.StatusBadRequest, "Difficulty level is required")
		return
	case !req.Difficulty.Valid():
		response.Fail(c, http.StatusBadRequest, "Invalid difficulty level")
		return
	case req.Count < 1:
		response.Fail(c, http.StatusBadRequest, "Count must be at least 1")
		return
	}

	questions, fallback, reason, err := h.ai.InterviewQuestions(c.Request.Context(), req.Type, req.Difficulty, req.Count, req.UserProfile)
	if err != nil {
		if !errors.Is(err, service.ErrNoFallbackData) {
			h.log.Error().Err(err).Msg("interview question generation failed")
		}
		response.Fail(c, http.StatusInternalServerError, "Failed to generate interview questions")
		return
	}

	if fallback {
		response.OKWithMessage(c, reason, gin.H{"questions": questions, "fallback": true})
		return
	}
	response.OK(c, gin.H{"questions": questions})
}

// EvaluateAnswer scores one interview answer.
// POST /ai/evaluate-answer
func (h *AIHandler) EvaluateAnswer(c *gin.Context) {
	var req model.EvaluateAnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	if strings.TrimSpace(req.Question) == "" || strings.TrimSpace(req.Answer) == "" {
		response.Fail(c, http.StatusBadRequest, "Missing required fields: question and answer are required")
		return
	}

	evaluation, fallback, reason := h.ai.EvaluateAnswer(c.Request.Context(), req.Question, req.Answer, req.Context)
	if fallback {
		response.OKWithMessage(c, reason, gin.H{"evaluation": evaluation, "fallback": true})
		return
	}
	response.OK(c, gin.H{"evaluation": evaluation})
}

// LearningPath builds a personalized study plan.
// POST /ai/learning-path
func (h *AIHandler) LearningPath(c *gin.Context) {
	var req model.LearningPathRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	path, fallback, reason := h.ai.LearningPath(c.Request.Context(), req.UserStats, req.Weaknesses)
	if fallback {
		response.OKWithMessage(c, reason, gin.H{"learningPath": path, "fallback": true})
		return
	}
	response.OK(c, gin.H{"learningPath": path})
}

// GenerateMCQ produces multiple-choice practice questions.
// POST /ai/mcq-questions
func (h *AIHandler) GenerateMCQ(c *gin.Context) {
	var req model.MCQRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	if strings.TrimSpace(req.Topic) == "" || req.Difficulty == "" || req.Count < 1 {
		response.Fail(c, http.StatusBadRequest, "Missing required fields: topic, difficulty, and count are required")
		return
	}
	if !req.Difficulty.Valid() {
		response.Fail(c, http.StatusBadRequest, "Invalid difficulty level")
		return
	}

	questions, fallback, reason, err := h.ai.MCQQuestions(c.Request.Context(), req.Topic, req.Difficulty, req.Count)
	if err != nil {
		h.log.Error().Err(err).Msg("MCQ generation failed")
		response.Fail(c, http.StatusInternalServerError, "Failed to generate practice questions")
		return
	}

	if fallback {
		response.OKWithMessage(c, reason, gin.H{"questions": questions, "fallback": true})
		return
	}
	response.OK(c, gin.H{"questions": questions})
}

// Chat answers one turn of the study-buddy conversation.
// POST /ai/chat
func (h *AIHandler) Chat(c *gin.Context) {
	var req model.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	if strings.TrimSpace(req.UserMessage) == "" {
		response.Fail(c, http.StatusBadRequest, "Missing required field: userMessage")
		return
	}

	reply, fallback, reason := h.ai.Chat(c.Request.Context(), req.UserMessage, req.ConversationHistory)
	if fallback {
		response.OKWithMessage(c, reason, gin.H{"response": reply, "fallback": true})
		return
	}
	response.OK(c, gin.H{"response": reply})
}
