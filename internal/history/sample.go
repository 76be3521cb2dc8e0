package history

import (
	"time"

	"github.com/prepmaster/prepmaster-backend/internal/model"
)

// sampleHistory builds the demo records seeded on first use, dated over the
// week leading up to now so a fresh install shows a believable trend.
func sampleHistory(now time.Time) []model.InterviewRecord {
	day := func(daysAgo int) string {
		return now.AddDate(0, 0, -daysAgo).UTC().Format(time.RFC3339)
	}

	return []model.InterviewRecord{
		{
			ID: "1", Type: model.InterviewTechnical, Date: day(7), Score: 50,
			Feedback: []string{
				"Work on explaining technical concepts more clearly.",
				"Practice coding problems on whiteboard.",
				"Improve time management during technical discussions.",
			},
		},
		{
			ID: "2", Type: model.InterviewHR, Date: day(6), Score: 62,
			Feedback: []string{
				"Connect answers back to company mission.",
				"Share concise metrics to quantify achievements.",
				"Balance humility with confidence.",
			},
		},
		{
			ID: "3", Type: model.InterviewBehavioral, Date: day(5), Score: 68,
			Feedback: []string{
				"Emphasize collaboration and cross-team communication.",
				"Reflect on lessons learned to show growth mindset.",
				"Detail the decision-making process.",
			},
		},
		{
			ID: "4", Type: model.InterviewTechnical, Date: day(4), Score: 75,
			Feedback: []string{
				"Good technical knowledge demonstrated.",
				"Could improve explanation clarity.",
				"Strong problem-solving approach.",
			},
		},
		{
			ID: "5", Type: model.InterviewHR, Date: day(3), Score: 72,
			Feedback: []string{
				"Well-structured answers using STAR method.",
				"Good cultural fit demonstrated.",
				"Could add more specific examples.",
			},
		},
		{
			ID: "6", Type: model.InterviewBehavioral, Date: day(2), Score: 80,
			Feedback: []string{
				"Excellent storytelling with clear structure.",
				"Strong examples of leadership.",
				"Good reflection on challenges faced.",
			},
		},
		{
			ID: "7", Type: model.InterviewTechnical, Date: day(1), Score: 92,
			Feedback: []string{
				"Outstanding technical depth and clarity.",
				"Excellent problem-solving methodology.",
				"Great communication of complex concepts.",
			},
		},
		{
			ID: "8", Type: model.InterviewHR, Date: day(0), Score: 88,
			Feedback: []string{
				"Strong alignment with company values.",
				"Clear career goals and motivation.",
				"Excellent questions about the role.",
			},
		},
	}
}
