package model

// GenerateQuestionsRequest is the payload for POST /ai/interview-questions.
// Type, difficulty and count are checked by hand so the endpoint can return
// the exact guidance messages of the wire contract.
type GenerateQuestionsRequest struct {
	Type        InterviewType `json:"type"`
	Difficulty  Difficulty    `json:"difficulty"`
	Count       int           `json:"count"`
	UserProfile UserProfile   `json:"userProfile"`
}

// EvaluateAnswerRequest is the payload for POST /ai/evaluate-answer.
type EvaluateAnswerRequest struct {
	Question string            `json:"question"`
	Answer   string            `json:"answer"`
	Context  EvaluationContext `json:"context"`
}

// LearningPathRequest is the payload for POST /ai/learning-path.
type LearningPathRequest struct {
	UserStats  UserStats `json:"userStats"`
	Weaknesses []string  `json:"weaknesses"`
}

// MCQRequest is the payload for POST /ai/mcq-questions.
type MCQRequest struct {
	Topic      string     `json:"topic"`
	Difficulty Difficulty `json:"difficulty"`
	Count      int        `json:"count"`
}

// ChatRequest is the payload for POST /ai/chat.
type ChatRequest struct {
	UserMessage         string        `json:"userMessage"`
	ConversationHistory []ChatMessage `json:"conversationHistory"`
}
