package ai

import (
	"fmt"
	"strings"

	"github.com/prepmaster/prepmaster-backend/internal/model"
)

// Prompt builders. Each instructs the model to answer with bare JSON; the
// repair step in repair.go copes with models that fence or pad the payload
// anyway.

func questionsPrompt(typ model.InterviewType, difficulty model.Difficulty, count int, profile model.UserProfile) string {
	skills := strings.Join(profile.Skills, ", ")
	if skills == "" {
		skills = "general software development"
	}
	goals := profile.Goals
	if goals == "" {
		goals = "Software engineering role"
	}

	return fmt.Sprintf(`You are an expert interview coach. Generate %d %s %s interview questions.

User Profile:
- Skills: %s
- Goals: %s

Generate questions that are:
1. Relevant to %s interviews
2. Appropriate for %s difficulty level
3. Practical and realistic
4. Specific enough to test knowledge but open-ended for discussion

IMPORTANT: Return ONLY a valid JSON array with this exact format (no markdown, no code blocks, no explanation):
[
  {
    "id": "unique-id-1",
    "question": "Question text here",
    "hint": "Helpful hint for the question",
    "type": "%s",
    "difficulty": "%s",
    "estimatedTime": 300
  }
]`, count, strings.ToLower(string(difficulty)), typ, skills, goals, typ, difficulty, typ, difficulty)
}

func evaluationPrompt(question, answer string, ec model.EvaluationContext) string {
	typ := string(ec.Type)
	if typ == "" {
		typ = "General"
	}
	difficulty := string(ec.Difficulty)
	if difficulty == "" {
		difficulty = "Medium"
	}

	return fmt.Sprintf(`You are an expert interview evaluator. Evaluate the following interview answer.

Question: %q
Question Type: %s
Difficulty: %s

Answer: %q

Evaluate this answer and provide a comprehensive assessment. Return ONLY a valid JSON object (no markdown, no code blocks) with this exact structure:
{
  "score": 85,
  "strengths": ["Strength 1", "Strength 2", "Strength 3"],
  "weaknesses": ["Weakness 1", "Weakness 2"],
  "suggestions": ["Suggestion 1", "Suggestion 2", "Suggestion 3"],
  "feedback": "Overall detailed feedback in 2-3 sentences explaining the score and key points.",
  "improvementAreas": ["Area 1", "Area 2"]
}

Scoring Guidelines:
- 90-100: Excellent answer, comprehensive and well-structured
- 75-89: Good answer with minor gaps
- 60-74: Acceptable but needs improvement
- 40-59: Below average, significant gaps
- 0-39: Poor answer, lacks understanding

Be constructive and specific in your feedback.`, question, typ, difficulty, answer)
}

func learningPathPrompt(stats model.UserStats, weaknesses []string) string {
	skills := strings.Join(stats.Skills, ", ")
	if skills == "" {
		skills = "general programming"
	}
	weakAreas := strings.Join(weaknesses, ", ")
	if weakAreas == "" {
		weakAreas = "none identified yet"
	}
	goals := stats.Goals
	if goals == "" {
		goals = "Success in technical interviews"
	}

	return fmt.Sprintf(`You are a career coach and learning path specialist. Create a personalized learning path for interview preparation.

User Profile:
- Skills: %s
- Average Interview Score: %d/100
- Weak Areas: %s
- Goals: %s

Generate a comprehensive, actionable learning path. Return ONLY a valid JSON object (no markdown, no code blocks):
{
  "topics": [
    {
      "id": "topic-1",
      "name": "Topic Name",
      "priority": "High|Medium|Low",
      "description": "Why this topic is important",
      "estimatedHours": 10,
      "completed": false
    }
  ],
  "goals": [
    "Goal 1",
    "Goal 2",
    "Goal 3"
  ],
  "estimatedTimeToImprovement": "2-3 weeks",
  "recommendations": "Personalized recommendation text explaining the learning path strategy."
}`, skills, stats.AverageScore, weakAreas, goals)
}

func mcqPrompt(topic string, difficulty model.Difficulty, count int) string {
	return fmt.Sprintf(`You are an expert quiz creator. Generate %d multiple-choice questions (MCQ) for practice.

Topic: %s
Difficulty: %s

Generate high-quality MCQ questions with:
1. Clear, unambiguous question text
2. 4 answer options (A, B, C, D)
3. Exactly ONE correct answer
4. Detailed explanation for the correct answer
5. Brief explanation for why other options are incorrect

Return ONLY a valid JSON array (no markdown, no code blocks):
[
  {
    "id": "mcq-1",
    "question": "Question text here?",
    "options": ["Option A", "Option B", "Option C", "Option D"],
    "correct": 0,
    "explanation": "Detailed explanation of why this is correct and why others are wrong.",
    "topic": "%s",
    "difficulty": "%s"
  }
]`, count, topic, difficulty, topic, difficulty)
}

// chatHistoryWindow bounds how many prior turns the chat prompt carries.
const chatHistoryWindow = 5

func chatPrompt(userMessage string, history []model.ChatMessage) string {
	if len(history) > chatHistoryWindow {
		history = history[len(history)-chatHistoryWindow:]
	}

	var historyContext strings.Builder
	if len(history) > 0 {
		historyContext.WriteString("\n\nConversation History:\n")
		for _, msg := range history {
			role := "AI"
			if msg.Role == "user" {
				role = "User"
			}
			fmt.Fprintf(&historyContext, "%s: %s\n", role, msg.Content)
		}
	}

	return fmt.Sprintf(`You are PrepMaster AI, a friendly and helpful interview preparation assistant. Your role is to:
- Answer questions about interview preparation
- Provide tips and advice on technical and behavioral interviews
- Help users understand concepts and solve problems
- Encourage and motivate users in their interview journey
- Keep responses concise (2-3 sentences unless user asks for more detail)
- Be encouraging, professional, and supportive

User Question: %q%s

Provide a helpful, concise response. Do not use markdown formatting, just plain text.`, userMessage, historyContext.String())
}
