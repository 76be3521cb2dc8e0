package ai

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotConfigured signals that the upstream credential is absent or still
// the placeholder value. Callers must fall back to static data, not retry.
var ErrNotConfigured = errors.New("gemini api key is not configured")

// Kind classifies upstream failures.
type Kind string

const (
	KindFormat  Kind = "format"
	KindAuth    Kind = "auth"
	KindQuota   Kind = "quota"
	KindUnknown Kind = "unknown"
)

// UpstreamError wraps a provider-side failure with its classification and an
// actionable message suitable for diagnostics.
type UpstreamError struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *UpstreamError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.Err)
	}
	return e.Msg
}

func (e *UpstreamError) Unwrap() error { return e.Err }

// formatError builds a KindFormat error for provider output that could not
// be parsed as the expected JSON shape even after the local repair step.
func formatError(err error) *UpstreamError {
	return &UpstreamError{
		Kind: KindFormat,
		Msg:  "AI response format error. The AI may have returned invalid JSON.",
		Err:  err,
	}
}

// classify maps a provider error to the taxonomy. The provider exposes no
// stable machine-readable error code, so matching falls back to
// case-insensitive substrings over the error text; the boundaries are
// heuristic and may misclassify unstructured errors.
func classify(err error) *UpstreamError {
	var ue *UpstreamError
	if errors.As(err, &ue) {
		return ue
	}

	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "quota"), strings.Contains(msg, "429"), strings.Contains(msg, "rate limit"):
		return &UpstreamError{Kind: KindQuota, Msg: "API quota exceeded. Please try again later.", Err: err}
	case strings.Contains(msg, "401"), strings.Contains(msg, "unauthorized"):
		return &UpstreamError{Kind: KindAuth, Msg: "API key authentication failed. Please verify your API key.", Err: err}
	case strings.Contains(msg, "403"), strings.Contains(msg, "forbidden"):
		return &UpstreamError{Kind: KindAuth, Msg: "API key permission denied. Please check if your API key is valid and has proper permissions.", Err: err}
	default:
		return &UpstreamError{Kind: KindUnknown, Msg: "Unknown provider error", Err: err}
	}
}
