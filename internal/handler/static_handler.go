package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/prepmaster/prepmaster-backend/internal/response"
	"github.com/prepmaster/prepmaster-backend/internal/service"
	"github.com/prepmaster/prepmaster-backend/internal/store"
)

// StaticHandler serves the flat-file question banks and resource catalog.
type StaticHandler struct {
	store *store.Store
	auth  *service.AuthService
}

func NewStaticHandler(st *store.Store, auth *service.AuthService) *StaticHandler {
	return &StaticHandler{store: st, auth: auth}
}

// InterviewQuestions returns the full static interview bank.
// GET /interview-questions
func (h *StaticHandler) InterviewQuestions(c *gin.Context) {
	response.OK(c, gin.H{"questions": h.store.InterviewBank()})
}

// PracticeQuestions returns the full static multiple-choice bank.
// GET /practice-questions
func (h *StaticHandler) PracticeQuestions(c *gin.Context) {
	response.OK(c, gin.H{"questions": h.store.MCQBank()})
}

// Resources returns the learning-resource catalog.
// GET /resources
func (h *StaticHandler) Resources(c *gin.Context) {
	response.OK(c, gin.H{"resources": h.store.Resources()})
}

// User returns the current (first registered) user, or null.
// GET /user
func (h *StaticHandler) User(c *gin.Context) {
	user, ok := h.auth.CurrentUser()
	if !ok {
		response.OK(c, gin.H{"user": nil})
		return
	}
	response.OK(c, gin.H{"user": user})
}
