package model

// MCQQuestion is a multiple-choice practice question.
type MCQQuestion struct {
	ID          string     `json:"id"`
	Question    string     `json:"question"`
	Options     []string   `json:"options"`
	Correct     int        `json:"correct"` // index into Options
	Explanation string     `json:"explanation"`
	Topic       string     `json:"topic"`
	Difficulty  Difficulty `json:"difficulty"`
}

// Resource is an entry in the static learning-resource catalog.
type Resource struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	Category    string `json:"category"`
	Description string `json:"description"`
	Difficulty  string `json:"difficulty,omitempty"`
	URL         string `json:"url,omitempty"`
}

// LearningTopic is one item of a personalized learning path.
type LearningTopic struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Priority       string `json:"priority"` // High | Medium | Low
	Description    string `json:"description"`
	EstimatedHours int    `json:"estimatedHours"`
	Completed      bool   `json:"completed"`
}

// LearningPath is the AI-synthesized study plan.
type LearningPath struct {
	Topics                 []LearningTopic `json:"topics"`
	Goals                  []string        `json:"goals"`
	EstimatedTimeToImprove string          `json:"estimatedTimeToImprovement"`
	Recommendations        string          `json:"recommendations"`
}

// UserStats summarizes past performance for learning-path generation.
type UserStats struct {
	Skills       []string `json:"skills"`
	AverageScore int      `json:"averageScore"`
	Goals        string   `json:"goals"`
}

// ChatMessage is one turn of the study-buddy conversation.
type ChatMessage struct {
	Role    string `json:"role"` // "user" | "assistant"
	Content string `json:"content"`
}
