package model

// InterviewType enumerates the supported interview categories.
type InterviewType string

const (
	InterviewTechnical  InterviewType = "Technical"
	InterviewHR         InterviewType = "HR"
	InterviewBehavioral InterviewType = "Behavioral"
)

// Valid reports whether t is one of the three supported categories.
func (t InterviewType) Valid() bool {
	switch t {
	case InterviewTechnical, InterviewHR, InterviewBehavioral:
		return true
	}
	return false
}

// Difficulty enumerates question difficulty levels.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "Easy"
	DifficultyMedium Difficulty = "Medium"
	DifficultyHard   Difficulty = "Hard"
)

// Valid reports whether d is one of the three supported levels.
func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	}
	return false
}

// UserProfile is the slice of a user that question generation personalizes on.
type UserProfile struct {
	Skills []string `json:"skills"`
	Goals  string   `json:"goals"`
}

// Question is a single interview question, AI-generated or from the static bank.
type Question struct {
	ID            string        `json:"id"`
	Question      string        `json:"question"`
	Hint          string        `json:"hint"`
	Type          InterviewType `json:"type"`
	Difficulty    Difficulty    `json:"difficulty"`
	EstimatedTime int           `json:"estimatedTime"` // seconds
}

// Evaluation is the scored assessment of one answer. Never mutated after
// creation; the score is always within [0,100].
type Evaluation struct {
	Score            int      `json:"score"`
	Strengths        []string `json:"strengths"`
	Weaknesses       []string `json:"weaknesses"`
	Suggestions      []string `json:"suggestions"`
	Feedback         string   `json:"feedback"`
	ImprovementAreas []string `json:"improvementAreas"`
}

// EvaluationContext carries the session attributes an evaluation prompt needs.
type EvaluationContext struct {
	Type       InterviewType `json:"type"`
	Difficulty Difficulty    `json:"difficulty"`
}

// SessionResult aggregates the per-question evaluations of a completed
// session. Computed exactly once, when the last question is evaluated.
type SessionResult struct {
	OverallScore     int      `json:"score"`
	Strengths        []string `json:"strengths"`
	Weaknesses       []string `json:"weaknesses"`
	Suggestions      []string `json:"suggestions"`
	Feedback         string   `json:"feedback"`
	ImprovementAreas []string `json:"improvementAreas"`
}

// InterviewRecord is the history entry persisted for a completed session.
// Append-only, never edited.
type InterviewRecord struct {
	ID       string        `json:"id"`
	Type     InterviewType `json:"type"`
	Date     string        `json:"date"` // ISO-8601 timestamp
	Score    int           `json:"score"`
	Feedback []string      `json:"feedback"`
}
