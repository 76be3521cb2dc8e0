// Command interview runs a mock interview session in the terminal: it asks
// the configured number of questions, counts down per question, evaluates
// each answer, and saves the aggregate result to history.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/prepmaster/prepmaster-backend/internal/ai"
	"github.com/prepmaster/prepmaster-backend/internal/config"
	"github.com/prepmaster/prepmaster-backend/internal/history"
	"github.com/prepmaster/prepmaster-backend/internal/kv"
	"github.com/prepmaster/prepmaster-backend/internal/logger"
	"github.com/prepmaster/prepmaster-backend/internal/model"
	"github.com/prepmaster/prepmaster-backend/internal/service"
	"github.com/prepmaster/prepmaster-backend/internal/session"
	"github.com/prepmaster/prepmaster-backend/internal/store"
)

func main() {
	typ := flag.String("type", "Technical", "interview type: Technical, HR, or Behavioral")
	difficulty := flag.String("difficulty", "Medium", "difficulty: Easy, Medium, or Hard")
	count := flag.Int("count", 5, "number of questions")
	flag.Parse()

	cfg := config.Load()
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)

	ctx := context.Background()

	st, err := store.New(cfg.DataDir, log)
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
	if err := st.Seed(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}

	fileKV, err := kv.NewFileStore(cfg.DataDir)
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
	historyStore := history.New(fileKV, log)

	aiClient, err := ai.New(ctx, cfg, log)
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
	aiService := service.NewAIService(aiClient, st, log)

	s := session.New(aiService, aiService, historyStore, nil, log)
	if err := s.Configure(model.InterviewType(*typ), model.Difficulty(*difficulty), *count); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
	if err := s.Start(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}

	run(ctx, s)
}

// run drives the question loop from stdin. A background reader feeds typed
// lines into a channel so the countdown keeps ticking while the user thinks.
func run(ctx context.Context, s *session.Session) {
	lines := make(chan string)
	go func() {
		scanner := bufio.NewScanner(os.Stdin)
		scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
		for scanner.Scan() {
			lines <- scanner.Text()
		}
		close(lines)
	}()

	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	shown := -1
	for s.State() != session.StateCompleted {
		if q, idx, err := s.Current(); err == nil && idx != shown {
			shown = idx
			fmt.Printf("\nQuestion %d of %d (%s, %ds):\n  %s\n", idx+1, s.Total(), q.Difficulty, q.EstimatedTime, q.Question)
			fmt.Println("Type your answer and press Enter. Commands: /hint, /quit")
		}

		select {
		case <-ticker.C:
			s.Tick(ctx)
		case line, ok := <-lines:
			if !ok {
				fmt.Println("\nInput closed, exiting.")
				return
			}
			switch strings.TrimSpace(line) {
			case "/quit":
				return
			case "/hint":
				s.ToggleHint()
				if q, _, err := s.Current(); err == nil && s.HintVisible() {
					fmt.Println("Hint:", q.Hint)
				}
			case "":
				// Empty manual submits are rejected; the countdown handles
				// giving up on a question.
			default:
				if err := s.SetAnswer(line); err != nil {
					continue
				}
				prev := shown
				if err := s.Submit(ctx); err != nil {
					fmt.Println("error:", err)
					continue
				}
				if ev, ok := s.EvaluationAt(prev); ok {
					fmt.Printf("Score: %d%% - %s\n", ev.Score, ev.Feedback)
				}
			}
		}
	}

	report(ctx, s)
}

func report(ctx context.Context, s *session.Session) {
	result, err := s.Result()
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		return
	}

	fmt.Printf("\n── Results ──\n%s\n", result.Feedback)
	printList("Strengths", result.Strengths)
	printList("Weaknesses", result.Weaknesses)
	printList("Suggestions", result.Suggestions)

	if err := s.Save(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "failed to save history:", err)
		return
	}
	fmt.Println("\nSaved to interview history.")
}

func printList(title string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Println(title + ":")
	for _, item := range items {
		fmt.Println("  -", item)
	}
}
