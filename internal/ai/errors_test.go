package ai

import (
	"errors"
	"fmt"
	"testing"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		kind    Kind
		message string
	}{
		{"quota word", errors.New("Quota exceeded for requests"), KindQuota, "API quota exceeded. Please try again later."},
		{"status 429", errors.New("googleapi: Error 429: too many requests"), KindQuota, "API quota exceeded. Please try again later."},
		{"rate limit", errors.New("rate limit reached"), KindQuota, "API quota exceeded. Please try again later."},
		{"status 401", errors.New("Error 401: invalid key"), KindAuth, "API key authentication failed. Please verify your API key."},
		{"unauthorized", errors.New("request Unauthorized"), KindAuth, "API key authentication failed. Please verify your API key."},
		{"status 403", errors.New("Error 403"), KindAuth, "API key permission denied. Please check if your API key is valid and has proper permissions."},
		{"forbidden", errors.New("access forbidden"), KindAuth, "API key permission denied. Please check if your API key is valid and has proper permissions."},
		{"anything else", errors.New("connection reset by peer"), KindUnknown, "Unknown provider error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ue := classify(tt.err)
			if ue.Kind != tt.kind {
				t.Errorf("kind = %s, want %s", ue.Kind, tt.kind)
			}
			if ue.Msg != tt.message {
				t.Errorf("msg = %q, want %q", ue.Msg, tt.message)
			}
			if !errors.Is(ue, tt.err) {
				t.Error("classified error should wrap the original")
			}
		})
	}
}

func TestClassifyPassesThroughUpstreamError(t *testing.T) {
	orig := formatError(errors.New("bad json"))
	wrapped := fmt.Errorf("calling model: %w", orig)

	if got := classify(wrapped); got != orig {
		t.Errorf("expected the original *UpstreamError, got %v", got)
	}
}

func TestFormatError(t *testing.T) {
	ue := formatError(errors.New("unexpected end of JSON input"))
	if ue.Kind != KindFormat {
		t.Errorf("kind = %s", ue.Kind)
	}
	if ue.Msg != "AI response format error. The AI may have returned invalid JSON." {
		t.Errorf("msg = %q", ue.Msg)
	}
}
