package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/prepmaster/prepmaster-backend/internal/ai"
	"github.com/prepmaster/prepmaster-backend/internal/model"
	"github.com/prepmaster/prepmaster-backend/internal/session"
	"github.com/prepmaster/prepmaster-backend/internal/store"
)

// ErrNoFallbackData signals that the AI call failed and the static bank had
// nothing to offer either. The only AI-path condition that surfaces as a
// server error.
var ErrNoFallbackData = errors.New("service: no fallback data available")

// AIService fronts the AI proxy client with the static-bank fallback policy:
// every operation first tries the provider and, when that is unconfigured or
// fails, degrades to deterministic local data instead of surfacing an error.
type AIService struct {
	client *ai.Client
	store  *store.Store
	log    zerolog.Logger
}

func NewAIService(client *ai.Client, st *store.Store, log zerolog.Logger) *AIService {
	return &AIService{
		client: client,
		store:  st,
		log:    log.With().Str("component", "ai_service").Logger(),
	}
}

// Configured reports whether the upstream provider is usable.
func (s *AIService) Configured() bool { return s.client.Configured() }

// fallbackReason turns the upstream failure into the message shown alongside
// fallback data.
func fallbackReason(err error) string {
	if errors.Is(err, ai.ErrNotConfigured) {
		return "Gemini API key not configured"
	}
	return err.Error()
}

// InterviewQuestions returns generated questions, or bank questions filtered
// by type when generation is impossible. The bank is filtered by type only;
// difficulty is treated as a presentation hint, so a thin bank still yields
// a full session. Returns ErrNoFallbackData when the bank has no questions
// of the requested type.
func (s *AIService) InterviewQuestions(ctx context.Context, typ model.InterviewType, difficulty model.Difficulty, count int, profile model.UserProfile) ([]model.Question, bool, string, error) {
	questions, err := s.client.GenerateInterviewQuestions(ctx, typ, difficulty, count, profile)
	if err == nil {
		return questions, false, "", nil
	}

	s.log.Warn().Err(err).Str("type", string(typ)).Msg("question generation failed, serving bank questions")

	bank := make([]model.Question, 0, count)
	for _, q := range s.store.InterviewBank() {
		if q.Type == typ {
			bank = append(bank, q)
		}
		if len(bank) == count {
			break
		}
	}
	if len(bank) == 0 {
		return nil, false, "", fmt.Errorf("%w: no %s questions in bank", ErrNoFallbackData, typ)
	}
	return bank, true, fallbackReason(err), nil
}

// EvaluateAnswer scores an answer, degrading to a fixed placeholder
// evaluation when the provider cannot. Never returns an error.
func (s *AIService) EvaluateAnswer(ctx context.Context, question, answer string, ec model.EvaluationContext) (model.Evaluation, bool, string) {
	evaluation, err := s.client.EvaluateAnswer(ctx, question, answer, ec)
	if err == nil {
		return evaluation, false, ""
	}
	s.log.Warn().Err(err).Msg("evaluation failed, serving placeholder")
	return placeholderEvaluation(), true, fallbackReason(err)
}

// LearningPath builds a study plan, degrading to a deterministic plan
// derived from the reported weaknesses. Never returns an error.
func (s *AIService) LearningPath(ctx context.Context, stats model.UserStats, weaknesses []string) (model.LearningPath, bool, string) {
	path, err := s.client.GenerateLearningPath(ctx, stats, weaknesses)
	if err == nil {
		return path, false, ""
	}
	s.log.Warn().Err(err).Msg("learning path generation failed, serving default plan")
	return defaultLearningPath(weaknesses), true, fallbackReason(err)
}

// MCQQuestions returns generated practice questions, or bank questions
// filtered by difficulty when generation is impossible. Returns
// ErrNoFallbackData when the bank is empty for that difficulty.
func (s *AIService) MCQQuestions(ctx context.Context, topic string, difficulty model.Difficulty, count int) ([]model.MCQQuestion, bool, string, error) {
	questions, err := s.client.GenerateMCQQuestions(ctx, topic, difficulty, count)
	if err == nil {
		return questions, false, "", nil
	}

	s.log.Warn().Err(err).Str("topic", topic).Msg("MCQ generation failed, serving bank questions")

	bank := make([]model.MCQQuestion, 0, count)
	for _, q := range s.store.MCQBank() {
		if q.Difficulty == difficulty {
			bank = append(bank, q)
		}
		if len(bank) == count {
			break
		}
	}
	if len(bank) == 0 {
		return nil, false, "", fmt.Errorf("%w: no %s practice questions in bank", ErrNoFallbackData, difficulty)
	}
	return bank, true, fallbackReason(err), nil
}

// Chat answers one conversation turn, degrading to a canned coaching reply.
// Never returns an error.
func (s *AIService) Chat(ctx context.Context, userMessage string, history []model.ChatMessage) (string, bool, string) {
	reply, err := s.client.Chat(ctx, userMessage, history)
	if err == nil {
		return reply, false, ""
	}
	s.log.Warn().Err(err).Msg("chat failed, serving canned reply")
	return cannedChatReply, true, fallbackReason(err)
}

// Questions implements session.QuestionSource over the fallback policy, so
// an interview session runs whether or not the provider is reachable.
func (s *AIService) Questions(ctx context.Context, cfg session.Config) ([]model.Question, error) {
	questions, _, _, err := s.InterviewQuestions(ctx, cfg.Type, cfg.Difficulty, cfg.Count, cfg.Profile)
	return questions, err
}

// Evaluate implements session.Evaluator directly against the provider; the
// session machine applies its own placeholder on failure.
func (s *AIService) Evaluate(ctx context.Context, question, answer string, ec model.EvaluationContext) (model.Evaluation, error) {
	return s.client.EvaluateAnswer(ctx, question, answer, ec)
}

const cannedChatReply = "I'm currently unable to reach the AI coach, but here's a tip: " +
	"practice answering questions out loud using the STAR method (Situation, Task, Action, Result). " +
	"Please try again later for personalized guidance."

func placeholderEvaluation() model.Evaluation {
	return model.Evaluation{
		Score:            70,
		Strengths:        []string{"Answer provided"},
		Weaknesses:       []string{"Could not evaluate"},
		Suggestions:      []string{"Please check your internet connection"},
		Feedback:         "Evaluation unavailable",
		ImprovementAreas: []string{},
	}
}

// defaultLearningPath derives a fixed study plan from reported weaknesses,
// one topic per weakness, capped at four.
func defaultLearningPath(weaknesses []string) model.LearningPath {
	topics := make([]model.LearningTopic, 0, 4)
	for i, w := range weaknesses {
		if i == 4 {
			break
		}
		w = strings.TrimSpace(w)
		if w == "" {
			continue
		}
		topics = append(topics, model.LearningTopic{
			ID:             fmt.Sprintf("topic-%d", i+1),
			Name:           w,
			Priority:       "High",
			Description:    fmt.Sprintf("Targeted practice to address: %s", w),
			EstimatedHours: 8,
			Completed:      false,
		})
	}
	if len(topics) == 0 {
		topics = append(topics, model.LearningTopic{
			ID:             "topic-1",
			Name:           "Interview fundamentals",
			Priority:       "Medium",
			Description:    "Core technical and behavioral interview practice.",
			EstimatedHours: 10,
			Completed:      false,
		})
	}

	return model.LearningPath{
		Topics: topics,
		Goals: []string{
			"Complete one mock interview per week",
			"Review feedback after every session",
		},
		EstimatedTimeToImprove: "2-3 weeks",
		Recommendations:        "Focus on your weakest areas first and practice consistently.",
	}
}
