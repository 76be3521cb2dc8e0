package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/prepmaster/prepmaster-backend/internal/ai"
	"github.com/prepmaster/prepmaster-backend/internal/config"
	"github.com/prepmaster/prepmaster-backend/internal/handler"
	"github.com/prepmaster/prepmaster-backend/internal/router"
	"github.com/prepmaster/prepmaster-backend/internal/service"
	"github.com/prepmaster/prepmaster-backend/internal/store"
	"github.com/prepmaster/prepmaster-backend/internal/validator"
)

// newTestServer wires the real services over a seeded temp-dir store and an
// unconfigured AI client, so handlers run their full logic with the
// fallback paths standing in for the provider.
func newTestServer(t *testing.T) *gin.Engine {
	t.Helper()

	validator.Setup()

	cfg := &config.Config{
		GinMode:     gin.TestMode,
		GeminiModel: "gemini-2.5-flash",
		DataDir:     t.TempDir(),
		JWTSecret:   "test-secret",
		JWTExpiry:   time.Hour,
		AIRateLimit: 1000,
	}

	st, err := store.New(cfg.DataDir, zerolog.Nop())
	if err != nil {
		t.Fatal(err)
	}
	if err := st.Seed(); err != nil {
		t.Fatal(err)
	}

	aiClient, err := ai.New(context.Background(), cfg, zerolog.Nop())
	if err != nil {
		t.Fatal(err)
	}

	aiService := service.NewAIService(aiClient, st, zerolog.Nop())
	authService := service.NewAuthService(st, cfg, zerolog.Nop())

	return router.SetupRouter(&router.Handlers{
		System: handler.NewSystemHandler(cfg, aiService),
		Static: handler.NewStaticHandler(st, authService),
		Auth:   handler.NewAuthHandler(authService, zerolog.Nop()),
		AI:     handler.NewAIHandler(aiService, zerolog.Nop()),
	}, cfg)
}

func doJSON(t *testing.T, engine *gin.Engine, method, path string, body any) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatal(err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	var parsed map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &parsed); err != nil {
		t.Fatalf("invalid JSON response %q: %v", w.Body.String(), err)
	}
	return w, parsed
}

func TestHealth(t *testing.T) {
	engine := newTestServer(t)

	w, body := doJSON(t, engine, http.MethodGet, "/health", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if body["success"] != true || body["status"] != "ok" {
		t.Errorf("body = %v", body)
	}
	if body["geminiConfigured"] != false {
		t.Error("geminiConfigured should report false without a key")
	}
	if w.Header().Get("X-Request-ID") == "" {
		t.Error("missing X-Request-ID header")
	}
}

func TestStaticEndpoints(t *testing.T) {
	engine := newTestServer(t)

	for _, tt := range []struct {
		path string
		key  string
	}{
		{"/interview-questions", "questions"},
		{"/practice-questions", "questions"},
		{"/resources", "resources"},
	} {
		w, body := doJSON(t, engine, http.MethodGet, tt.path, nil)
		if w.Code != http.StatusOK {
			t.Fatalf("%s: status = %d", tt.path, w.Code)
		}
		items, ok := body[tt.key].([]any)
		if !ok || len(items) == 0 {
			t.Errorf("%s: expected non-empty %q, got %v", tt.path, tt.key, body[tt.key])
		}
	}
}

func TestUserEndpoint(t *testing.T) {
	engine := newTestServer(t)

	_, body := doJSON(t, engine, http.MethodGet, "/user", nil)
	if body["user"] != nil {
		t.Errorf("fresh install should have no user, got %v", body["user"])
	}

	w, _ := doJSON(t, engine, http.MethodPost, "/signup", map[string]any{
		"name": "Ada", "email": "ada@example.com", "password": "123456",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("signup status = %d", w.Code)
	}

	_, body = doJSON(t, engine, http.MethodGet, "/user", nil)
	user, ok := body["user"].(map[string]any)
	if !ok || user["email"] != "ada@example.com" {
		t.Errorf("user = %v", body["user"])
	}
}

func TestSignupPasswordLength(t *testing.T) {
	engine := newTestServer(t)

	w, body := doJSON(t, engine, http.MethodPost, "/signup", map[string]any{
		"name": "Ada", "email": "ada@example.com", "password": "12345",
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", w.Code)
	}
	if body["message"] != "Password must be at least 6 characters" {
		t.Errorf("message = %v", body["message"])
	}

	w, body = doJSON(t, engine, http.MethodPost, "/signup", map[string]any{
		"name": "Ada", "email": "ada@example.com", "password": "123456",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if body["token"] == "" || body["token"] == nil {
		t.Error("expected a token")
	}
}

func TestLogin(t *testing.T) {
	engine := newTestServer(t)

	w, _ := doJSON(t, engine, http.MethodPost, "/signup", map[string]any{
		"name": "Ada", "email": "ada@example.com", "password": "123456",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("signup status = %d", w.Code)
	}

	w, body := doJSON(t, engine, http.MethodPost, "/login", map[string]any{
		"email": "ada@example.com", "password": "12345",
	})
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d", w.Code)
	}
	if body["message"] != "Invalid credentials" {
		t.Errorf("message = %v", body["message"])
	}

	w, body = doJSON(t, engine, http.MethodPost, "/login", map[string]any{
		"email": "ada@example.com", "password": "123456",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if body["token"] == nil {
		t.Error("expected a token")
	}
	user, ok := body["user"].(map[string]any)
	if !ok || user["name"] != "Ada" {
		t.Errorf("user = %v", body["user"])
	}
}

func TestLoginUnregisteredEmail(t *testing.T) {
	engine := newTestServer(t)

	w, body := doJSON(t, engine, http.MethodPost, "/login", map[string]any{
		"email": "nobody@example.com", "password": "123456",
	})
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401 for an unregistered email", w.Code)
	}
	if body["success"] != false || body["message"] != "Invalid credentials" {
		t.Errorf("body = %v", body)
	}
}

func TestLoginValidation(t *testing.T) {
	engine := newTestServer(t)

	w, _ := doJSON(t, engine, http.MethodPost, "/login", map[string]any{
		"email": "not-an-email", "password": "123456",
	})
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d", w.Code)
	}
}

func TestGenerateQuestionsValidation(t *testing.T) {
	engine := newTestServer(t)

	tests := []struct {
		name    string
		body    map[string]any
		message string
	}{
		{"missing type", map[string]any{"difficulty": "Medium", "count": 5}, "Interview type is required"},
		{"invalid type", map[string]any{"type": "Casual", "difficulty": "Medium", "count": 5}, "Invalid interview type"},
		{"missing difficulty", map[string]any{"type": "Technical", "count": 5}, "Difficulty level is required"},
		{"invalid difficulty", map[string]any{"type": "Technical", "difficulty": "Extreme", "count": 5}, "Invalid difficulty level"},
		{"missing count", map[string]any{"type": "Technical", "difficulty": "Medium"}, "Count must be at least 1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, body := doJSON(t, engine, http.MethodPost, "/ai/interview-questions", tt.body)
			if w.Code != http.StatusBadRequest {
				t.Fatalf("status = %d", w.Code)
			}
			if body["message"] != tt.message {
				t.Errorf("message = %v, want %q", body["message"], tt.message)
			}
		})
	}
}

func TestGenerateQuestionsFallback(t *testing.T) {
	engine := newTestServer(t)

	w, body := doJSON(t, engine, http.MethodPost, "/ai/interview-questions", map[string]any{
		"type": "Technical", "difficulty": "Medium", "count": 5,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %v", w.Code, body)
	}
	if body["fallback"] != true {
		t.Error("expected fallback:true without a provider key")
	}
	questions, ok := body["questions"].([]any)
	if !ok || len(questions) != 5 {
		t.Fatalf("questions = %v", body["questions"])
	}
	first := questions[0].(map[string]any)
	if first["type"] != "Technical" {
		t.Errorf("bank fallback must filter by type: %v", first)
	}
}

func TestEvaluateAnswer(t *testing.T) {
	engine := newTestServer(t)

	w, body := doJSON(t, engine, http.MethodPost, "/ai/evaluate-answer", map[string]any{
		"question": "", "answer": "something",
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", w.Code)
	}
	if body["message"] != "Missing required fields: question and answer are required" {
		t.Errorf("message = %v", body["message"])
	}

	w, body = doJSON(t, engine, http.MethodPost, "/ai/evaluate-answer", map[string]any{
		"question": "Explain goroutines.",
		"answer":   "They are lightweight threads.",
		"context":  map[string]any{"type": "Technical", "difficulty": "Medium"},
	})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if body["fallback"] != true {
		t.Error("expected fallback:true")
	}
	evaluation, ok := body["evaluation"].(map[string]any)
	if !ok || evaluation["score"].(float64) != 70 {
		t.Errorf("evaluation = %v", body["evaluation"])
	}
}

func TestLearningPath(t *testing.T) {
	engine := newTestServer(t)

	w, body := doJSON(t, engine, http.MethodPost, "/ai/learning-path", map[string]any{
		"userStats":  map[string]any{"averageScore": 65},
		"weaknesses": []string{"System design"},
	})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	path, ok := body["learningPath"].(map[string]any)
	if !ok {
		t.Fatalf("learningPath = %v", body["learningPath"])
	}
	if topics, ok := path["topics"].([]any); !ok || len(topics) == 0 {
		t.Errorf("topics = %v", path["topics"])
	}
}

func TestMCQValidation(t *testing.T) {
	engine := newTestServer(t)

	w, body := doJSON(t, engine, http.MethodPost, "/ai/mcq-questions", map[string]any{
		"topic": "Go",
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", w.Code)
	}
	if body["message"] != "Missing required fields: topic, difficulty, and count are required" {
		t.Errorf("message = %v", body["message"])
	}
}

func TestMCQFallback(t *testing.T) {
	engine := newTestServer(t)

	w, body := doJSON(t, engine, http.MethodPost, "/ai/mcq-questions", map[string]any{
		"topic": "Go", "difficulty": "Easy", "count": 2,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %v", w.Code, body)
	}
	if body["fallback"] != true {
		t.Error("expected fallback:true")
	}
	if questions, ok := body["questions"].([]any); !ok || len(questions) == 0 {
		t.Errorf("questions = %v", body["questions"])
	}
}

func TestChat(t *testing.T) {
	engine := newTestServer(t)

	w, body := doJSON(t, engine, http.MethodPost, "/ai/chat", map[string]any{
		"userMessage": "   ",
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", w.Code)
	}
	if body["message"] != "Missing required field: userMessage" {
		t.Errorf("message = %v", body["message"])
	}

	w, body = doJSON(t, engine, http.MethodPost, "/ai/chat", map[string]any{
		"userMessage": "How do I prepare for a systems interview?",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if body["response"] == nil || body["response"] == "" {
		t.Error("expected a reply")
	}
	if body["fallback"] != true {
		t.Error("expected fallback:true")
	}
}
