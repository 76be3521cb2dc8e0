// Package session implements the interview-taking flow as a state machine:
// configuration, a question loop of answering and evaluating with an
// optional countdown-driven auto-advance, and a terminal aggregate result.
//
// A Session is single-goroutine by contract: all methods, including Tick,
// must be called from the same goroutine that owns the session. Collaborator
// calls (question generation, evaluation, history) are awaited in place; a
// per-transition sequence number guards against a superseded call's result
// being applied after a restart.
package session

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/prepmaster/prepmaster-backend/internal/model"
)

// State enumerates session phases.
type State string

const (
	StateConfiguring State = "CONFIGURING"
	StateAnswering   State = "ANSWERING"
	StateEvaluating  State = "EVALUATING"
	StateCompleted   State = "COMPLETED"
)

var (
	ErrNotConfiguring = errors.New("session: not in configuring state")
	ErrNotAnswering   = errors.New("session: not in answering state")
	ErrNotCompleted   = errors.New("session: not completed")
	ErrEmptyAnswer    = errors.New("session: answer must not be empty")
	ErrNoQuestions    = errors.New("session: no questions available")
)

// aggregateCap bounds each aggregated feedback list in the final result.
const aggregateCap = 5

// Config is the interview configuration. Immutable once the session starts.
type Config struct {
	Type       model.InterviewType
	Difficulty model.Difficulty
	Count      int
	Profile    model.UserProfile
}

// QuestionSource produces the question sequence for a configuration.
type QuestionSource interface {
	Questions(ctx context.Context, cfg Config) ([]model.Question, error)
}

// Evaluator scores a single answer.
type Evaluator interface {
	Evaluate(ctx context.Context, question, answer string, ec model.EvaluationContext) (model.Evaluation, error)
}

// HistorySink receives the record of a completed session.
type HistorySink interface {
	Append(ctx context.Context, record model.InterviewRecord) ([]model.InterviewRecord, error)
}

// Clock abstracts wall time so tests can simulate elapsed countdowns.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// Session is one configured run through a fixed-size question sequence.
type Session struct {
	cfg   Config
	state State

	questions   []model.Question
	answers     []string
	evaluations []*model.Evaluation
	current     int
	remaining   int // seconds left on the current question's countdown
	hintShown   bool

	// seq increments on every state transition; an in-flight evaluation
	// whose captured seq no longer matches is discarded as stale.
	seq uint64

	result *model.SessionResult
	saved  bool

	source  QuestionSource
	eval    Evaluator
	history HistorySink
	clock   Clock
	log     zerolog.Logger
}

// New creates a session in the Configuring state. A nil clock selects the
// system clock.
func New(source QuestionSource, eval Evaluator, history HistorySink, clock Clock, log zerolog.Logger) *Session {
	if clock == nil {
		clock = systemClock{}
	}
	return &Session{
		state:   StateConfiguring,
		source:  source,
		eval:    eval,
		history: history,
		clock:   clock,
		log:     log.With().Str("component", "session").Logger(),
	}
}

// State returns the current phase.
func (s *Session) State() State { return s.state }

// Config returns the current (or locked-in) configuration.
func (s *Session) Config() Config { return s.cfg }

// Configure sets the interview parameters. Allowed only before Start.
func (s *Session) Configure(typ model.InterviewType, difficulty model.Difficulty, count int) error {
	if s.state != StateConfiguring {
		return ErrNotConfiguring
	}
	if !typ.Valid() {
		return fmt.Errorf("session: invalid interview type %q", typ)
	}
	if !difficulty.Valid() {
		return fmt.Errorf("session: invalid difficulty %q", difficulty)
	}
	if count < 1 {
		return fmt.Errorf("session: question count must be at least 1, got %d", count)
	}
	s.cfg.Type = typ
	s.cfg.Difficulty = difficulty
	s.cfg.Count = count
	return nil
}

// SetProfile attaches the user profile used to personalize questions.
// Allowed only before Start.
func (s *Session) SetProfile(profile model.UserProfile) error {
	if s.state != StateConfiguring {
		return ErrNotConfiguring
	}
	s.cfg.Profile = profile
	return nil
}

// Start requests questions and moves to Answering(0). On any failure the
// session stays in Configuring and the error is retryable.
func (s *Session) Start(ctx context.Context) error {
	if s.state != StateConfiguring {
		return ErrNotConfiguring
	}
	if s.cfg.Count < 1 {
		return fmt.Errorf("session: not configured")
	}

	questions, err := s.source.Questions(ctx, s.cfg)
	if err != nil {
		return fmt.Errorf("session: loading questions: %w", err)
	}
	if len(questions) == 0 {
		return ErrNoQuestions
	}

	s.questions = questions
	s.answers = make([]string, len(questions))
	s.evaluations = make([]*model.Evaluation, len(questions))
	s.current = 0
	s.remaining = questions[0].EstimatedTime
	s.hintShown = false
	s.transition(StateAnswering)

	s.log.Info().
		Str("type", string(s.cfg.Type)).
		Str("difficulty", string(s.cfg.Difficulty)).
		Int("questions", len(questions)).
		Msg("session started")
	return nil
}

// Current returns the question being answered or evaluated.
func (s *Session) Current() (model.Question, int, error) {
	if s.state != StateAnswering && s.state != StateEvaluating {
		return model.Question{}, 0, ErrNotAnswering
	}
	return s.questions[s.current], s.current, nil
}

// Total returns the number of questions in the running session.
func (s *Session) Total() int { return len(s.questions) }

// SetAnswer replaces the current answer text. Answers stay mutable until
// the question is submitted for evaluation.
func (s *Session) SetAnswer(text string) error {
	if s.state != StateAnswering {
		return ErrNotAnswering
	}
	s.answers[s.current] = text
	return nil
}

// Answer returns the current answer text.
func (s *Session) Answer() string {
	if s.state != StateAnswering && s.state != StateEvaluating {
		return ""
	}
	return s.answers[s.current]
}

// Remaining returns the seconds left on the current countdown.
func (s *Session) Remaining() int { return s.remaining }

// ToggleHint flips hint visibility for the current question.
func (s *Session) ToggleHint() { s.hintShown = !s.hintShown }

// HintVisible reports whether the hint is shown for the current question.
func (s *Session) HintVisible() bool { return s.hintShown }

// Submit evaluates the current answer and advances. A manual submit with an
// empty answer is rejected with ErrEmptyAnswer and no state change; the
// countdown-driven auto-submit in Tick does not share that restriction.
func (s *Session) Submit(ctx context.Context) error {
	if s.state != StateAnswering {
		return ErrNotAnswering
	}
	if strings.TrimSpace(s.answers[s.current]) == "" {
		return ErrEmptyAnswer
	}
	s.evaluateCurrent(ctx)
	return nil
}

// Tick advances the countdown by one second. Reaching zero auto-submits
// whatever answer text is present, empty included, so an idle user never
// blocks the session. Returns the seconds remaining after the tick.
func (s *Session) Tick(ctx context.Context) int {
	if s.state != StateAnswering {
		return s.remaining
	}
	if s.remaining > 0 {
		s.remaining--
	}
	if s.remaining > 0 {
		return s.remaining
	}

	s.log.Info().Int("question", s.current).Msg("countdown expired, auto-submitting")
	s.evaluateCurrent(ctx)
	return 0
}

// evaluateCurrent runs the Answering(i) → Evaluating(i) → next transition.
// A failed or impossible evaluation degrades to a placeholder so the
// session never blocks on the evaluator.
func (s *Session) evaluateCurrent(ctx context.Context) {
	idx := s.current
	question := s.questions[idx]
	answer := s.answers[idx]

	s.transition(StateEvaluating)
	seq := s.seq

	var evaluation model.Evaluation
	if strings.TrimSpace(answer) == "" {
		evaluation = emptyAnswerEvaluation()
	} else {
		result, err := s.eval.Evaluate(ctx, question.Question, answer, model.EvaluationContext{
			Type:       s.cfg.Type,
			Difficulty: s.cfg.Difficulty,
		})
		// The session may have been restarted while the call was in
		// flight; a stale result must not touch the new session.
		if s.seq != seq || s.state != StateEvaluating || s.current != idx {
			s.log.Warn().Int("question", idx).Msg("discarding stale evaluation result")
			return
		}
		if err != nil {
			s.log.Error().Err(err).Int("question", idx).Msg("evaluation failed, using placeholder")
			evaluation = unavailableEvaluation()
		} else {
			evaluation = result
		}
	}

	s.evaluations[idx] = &evaluation
	s.advance()
}

// advance moves to the next question or completes the session.
func (s *Session) advance() {
	if s.current == len(s.questions)-1 {
		s.result = s.computeResult()
		s.transition(StateCompleted)
		s.log.Info().Int("score", s.result.OverallScore).Msg("session completed")
		return
	}

	s.current++
	s.remaining = s.questions[s.current].EstimatedTime
	s.hintShown = false
	s.transition(StateAnswering)
}

// computeResult aggregates the per-question evaluations exactly once.
func (s *Session) computeResult() *model.SessionResult {
	var sum float64
	strengths := make([]string, 0)
	weaknesses := make([]string, 0)
	suggestions := make([]string, 0)
	improvements := make([]string, 0)

	for _, ev := range s.evaluations {
		sum += float64(ev.Score)
		strengths = append(strengths, ev.Strengths...)
		weaknesses = append(weaknesses, ev.Weaknesses...)
		suggestions = append(suggestions, ev.Suggestions...)
		improvements = append(improvements, ev.ImprovementAreas...)
	}

	avg := int(math.Round(sum / float64(len(s.evaluations))))

	var tone string
	switch {
	case avg >= 80:
		tone = "Great job!"
	case avg >= 60:
		tone = "Good effort!"
	default:
		tone = "Keep practicing!"
	}

	return &model.SessionResult{
		OverallScore:     avg,
		Strengths:        dedupe(strengths, aggregateCap),
		Weaknesses:       dedupe(weaknesses, aggregateCap),
		Suggestions:      dedupe(suggestions, aggregateCap),
		ImprovementAreas: dedupe(improvements, aggregateCap),
		Feedback:         fmt.Sprintf("You scored %d%% overall. %s", avg, tone),
	}
}

// Result returns the aggregate result of a completed session.
func (s *Session) Result() (model.SessionResult, error) {
	if s.state != StateCompleted || s.result == nil {
		return model.SessionResult{}, ErrNotCompleted
	}
	return *s.result, nil
}

// EvaluationAt returns the evaluation for question i, if it exists yet.
func (s *Session) EvaluationAt(i int) (model.Evaluation, bool) {
	if i < 0 || i >= len(s.evaluations) || s.evaluations[i] == nil {
		return model.Evaluation{}, false
	}
	return *s.evaluations[i], true
}

// Save appends one InterviewRecord to history. Idempotent: after the first
// success, further calls are no-ops.
func (s *Session) Save(ctx context.Context) error {
	if s.state != StateCompleted || s.result == nil {
		return ErrNotCompleted
	}
	if s.saved {
		return nil
	}

	feedback := make([]string, 0, len(s.evaluations))
	for i, ev := range s.evaluations {
		feedback = append(feedback, fmt.Sprintf("Q%d: %d%% - %s", i+1, ev.Score, ev.Feedback))
	}

	record := model.InterviewRecord{
		ID:       uuid.NewString(),
		Type:     s.cfg.Type,
		Date:     s.clock.Now().UTC().Format(time.RFC3339),
		Score:    s.result.OverallScore,
		Feedback: feedback,
	}

	if _, err := s.history.Append(ctx, record); err != nil {
		return fmt.Errorf("session: saving history: %w", err)
	}
	s.saved = true
	return nil
}

// Saved reports whether the session's record reached history.
func (s *Session) Saved() bool { return s.saved }

// Restart discards all session data and returns to Configuring. The
// type/difficulty selection survives so the user can immediately start over.
func (s *Session) Restart() {
	s.questions = nil
	s.answers = nil
	s.evaluations = nil
	s.current = 0
	s.remaining = 0
	s.hintShown = false
	s.result = nil
	s.saved = false
	s.transition(StateConfiguring)
}

func (s *Session) transition(next State) {
	s.state = next
	s.seq++
}

// emptyAnswerEvaluation is recorded when the countdown expires with no
// answer text present.
func emptyAnswerEvaluation() model.Evaluation {
	return model.Evaluation{
		Score:            0,
		Strengths:        []string{},
		Weaknesses:       []string{"No answer provided"},
		Suggestions:      []string{"Try to write at least a brief outline before time runs out."},
		Feedback:         "Time expired before an answer was submitted.",
		ImprovementAreas: []string{},
	}
}

// unavailableEvaluation stands in when the remote evaluation fails.
func unavailableEvaluation() model.Evaluation {
	return model.Evaluation{
		Score:            70,
		Strengths:        []string{"Answer provided"},
		Weaknesses:       []string{"Could not evaluate"},
		Suggestions:      []string{"Please check your internet connection"},
		Feedback:         "Evaluation unavailable",
		ImprovementAreas: []string{},
	}
}

// dedupe returns the first occurrence of each item, in order, capped at n.
func dedupe(items []string, n int) []string {
	seen := make(map[string]struct{}, len(items))
	out := make([]string, 0, n)
	for _, item := range items {
		if _, ok := seen[item]; ok {
			continue
		}
		seen[item] = struct{}{}
		out = append(out, item)
		if len(out) == n {
			break
		}
	}
	return out
}
