package ai

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"google.golang.org/genai"

	"github.com/prepmaster/prepmaster-backend/internal/config"
	"github.com/prepmaster/prepmaster-backend/internal/model"
)

// textGenerator is the seam between the proxy client and the concrete
// provider, so tests can substitute a fake for the Gemini SDK.
type textGenerator interface {
	generate(ctx context.Context, prompt string) (string, error)
}

type geminiGenerator struct {
	client *genai.Client
	model  string
}

func (g *geminiGenerator) generate(ctx context.Context, prompt string) (string, error) {
	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), nil)
	if err != nil {
		return "", err
	}
	return resp.Text(), nil
}

// Client is the AI proxy client. It builds prompts, performs exactly one
// upstream call per logical operation, repairs and validates the returned
// JSON, and back-fills missing fields so callers never see a partially
// typed value. It keeps no local cache and never retries.
type Client struct {
	gen textGenerator
	log zerolog.Logger
}

// New constructs the client from the application configuration. When the
// credential is absent or the placeholder, the client is created in
// unconfigured mode: every operation returns ErrNotConfigured so callers
// switch to static fallback data.
func New(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*Client, error) {
	c := &Client{log: log.With().Str("component", "ai_client").Logger()}

	if !cfg.GeminiConfigured() {
		c.log.Warn().Msg("GEMINI_API_KEY not configured; AI features will use fallback data")
		return c, nil
	}

	gc, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.GeminiAPIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}

	c.gen = &geminiGenerator{client: gc, model: cfg.GeminiModel}
	c.log.Info().Str("model", cfg.GeminiModel).Msg("Gemini client initialized")
	return c, nil
}

// Configured reports whether the upstream credential was usable at startup.
func (c *Client) Configured() bool { return c.gen != nil }

// GenerateInterviewQuestions asks the model for count questions tailored to
// the profile. The result always has exactly the fields of model.Question
// populated; missing or wrong-typed provider fields are defaulted.
func (c *Client) GenerateInterviewQuestions(ctx context.Context, typ model.InterviewType, difficulty model.Difficulty, count int, profile model.UserProfile) ([]model.Question, error) {
	if !typ.Valid() {
		return nil, fmt.Errorf("invalid interview type %q", typ)
	}
	if !difficulty.Valid() {
		return nil, fmt.Errorf("invalid difficulty %q", difficulty)
	}
	if count < 1 {
		return nil, fmt.Errorf("count must be at least 1, got %d", count)
	}
	if !c.Configured() {
		return nil, ErrNotConfigured
	}

	raw, err := c.gen.generate(ctx, questionsPrompt(typ, difficulty, count, profile))
	if err != nil {
		return nil, classify(err)
	}

	var items []map[string]any
	if err := decodeRepaired(raw, '[', ']', &items); err != nil {
		return nil, formatError(err)
	}
	if len(items) == 0 {
		return nil, formatError(fmt.Errorf("model returned an empty question list"))
	}

	questions := make([]model.Question, 0, len(items))
	for _, item := range items {
		questions = append(questions, model.Question{
			ID:            asString(item, "id", uuid.NewString()),
			Question:      asString(item, "question", "Question text missing"),
			Hint:          asString(item, "hint", "Think carefully about your answer."),
			Type:          typ,
			Difficulty:    difficulty,
			EstimatedTime: asInt(item, "estimatedTime", 300),
		})
	}

	c.log.Debug().Int("count", len(questions)).Msg("questions generated")
	return questions, nil
}

// EvaluateAnswer scores one answer. The returned score is always within
// [0,100] and every slice field is non-nil.
func (c *Client) EvaluateAnswer(ctx context.Context, question, answer string, ec model.EvaluationContext) (model.Evaluation, error) {
	if !c.Configured() {
		return model.Evaluation{}, ErrNotConfigured
	}

	raw, err := c.gen.generate(ctx, evaluationPrompt(question, answer, ec))
	if err != nil {
		return model.Evaluation{}, classify(err)
	}

	var item map[string]any
	if err := decodeRepaired(raw, '{', '}', &item); err != nil {
		return model.Evaluation{}, formatError(err)
	}

	return model.Evaluation{
		Score:            ClampScore(asInt(item, "score", 0)),
		Strengths:        asStringSlice(item, "strengths"),
		Weaknesses:       asStringSlice(item, "weaknesses"),
		Suggestions:      asStringSlice(item, "suggestions"),
		Feedback:         asString(item, "feedback", "No feedback provided."),
		ImprovementAreas: asStringSlice(item, "improvementAreas"),
	}, nil
}

// GenerateLearningPath synthesizes a study plan from past performance.
func (c *Client) GenerateLearningPath(ctx context.Context, stats model.UserStats, weaknesses []string) (model.LearningPath, error) {
	if !c.Configured() {
		return model.LearningPath{}, ErrNotConfigured
	}

	raw, err := c.gen.generate(ctx, learningPathPrompt(stats, weaknesses))
	if err != nil {
		return model.LearningPath{}, classify(err)
	}

	var item map[string]any
	if err := decodeRepaired(raw, '{', '}', &item); err != nil {
		return model.LearningPath{}, formatError(err)
	}

	path := model.LearningPath{
		Topics:                 []model.LearningTopic{},
		Goals:                  asStringSlice(item, "goals"),
		EstimatedTimeToImprove: asString(item, "estimatedTimeToImprovement", "2-3 weeks"),
		Recommendations:        asString(item, "recommendations", "Focus on consistent practice."),
	}

	rawTopics, _ := item["topics"].([]any)
	for i, rt := range rawTopics {
		tm, ok := rt.(map[string]any)
		if !ok {
			continue
		}
		path.Topics = append(path.Topics, model.LearningTopic{
			ID:             asString(tm, "id", fmt.Sprintf("topic-%d", i+1)),
			Name:           asString(tm, "name", "Untitled topic"),
			Priority:       asString(tm, "priority", "Medium"),
			Description:    asString(tm, "description", ""),
			EstimatedHours: asInt(tm, "estimatedHours", 10),
			Completed:      false,
		})
	}

	return path, nil
}

// GenerateMCQQuestions asks the model for count multiple-choice questions.
func (c *Client) GenerateMCQQuestions(ctx context.Context, topic string, difficulty model.Difficulty, count int) ([]model.MCQQuestion, error) {
	if topic == "" {
		return nil, fmt.Errorf("topic is required")
	}
	if !difficulty.Valid() {
		return nil, fmt.Errorf("invalid difficulty %q", difficulty)
	}
	if count < 1 {
		return nil, fmt.Errorf("count must be at least 1, got %d", count)
	}
	if !c.Configured() {
		return nil, ErrNotConfigured
	}

	raw, err := c.gen.generate(ctx, mcqPrompt(topic, difficulty, count))
	if err != nil {
		return nil, classify(err)
	}

	var items []map[string]any
	if err := decodeRepaired(raw, '[', ']', &items); err != nil {
		return nil, formatError(err)
	}
	if len(items) == 0 {
		return nil, formatError(fmt.Errorf("model returned an empty question list"))
	}

	questions := make([]model.MCQQuestion, 0, len(items))
	for _, item := range items {
		questions = append(questions, model.MCQQuestion{
			ID:          asString(item, "id", uuid.NewString()),
			Question:    asString(item, "question", "Question text missing"),
			Options:     asStringSlice(item, "options"),
			Correct:     asInt(item, "correct", 0),
			Explanation: asString(item, "explanation", ""),
			Topic:       asString(item, "topic", topic),
			Difficulty:  difficulty,
		})
	}
	return questions, nil
}

// Chat answers one turn of the study-buddy conversation with plain text.
func (c *Client) Chat(ctx context.Context, userMessage string, history []model.ChatMessage) (string, error) {
	if !c.Configured() {
		return "", ErrNotConfigured
	}

	raw, err := c.gen.generate(ctx, chatPrompt(userMessage, history))
	if err != nil {
		return "", classify(err)
	}
	return strings.TrimSpace(raw), nil
}

// ClampScore bounds a score to [0,100].
func ClampScore(n int) int {
	if n < 0 {
		return 0
	}
	if n > 100 {
		return 100
	}
	return n
}

// ─── Loose-JSON coercion helpers ───────────────────────────────────────────
// The provider is prompted for an exact shape but routinely drops or
// mistypes fields; each accessor falls back to a deterministic default.

func asString(m map[string]any, key, def string) string {
	if s, ok := m[key].(string); ok && s != "" {
		return s
	}
	return def
}

func asInt(m map[string]any, key string, def int) int {
	switch v := m[key].(type) {
	case float64:
		return int(v)
	case int:
		return v
	}
	return def
}

func asStringSlice(m map[string]any, key string) []string {
	out := []string{}
	items, ok := m[key].([]any)
	if !ok {
		return out
	}
	for _, item := range items {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
