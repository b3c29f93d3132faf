package store

import (
	"context"
	"time"
)

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
}

// LLMRequestEvent is a stored LLM request.
type LLMRequestEvent struct {
	Sequence  int64
	Timestamp time.Time
	LLMRequestEventData
}

// AnswerEvent is a stored answer submission.
type AnswerEvent struct {
	Sequence   int64
	Timestamp  time.Time
	SessionID  string
	QuestionID string
	UserAnswer int
	IsCorrect  bool
	TimeSpent  float64
}

// EventRepo provides append and read access to events.
type EventRepo interface {
	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// LLMRequests returns the most recent LLM request events, newest first.
	LLMRequests(ctx context.Context, limit int) ([]LLMRequestEvent, error)

	// AnswerEvents returns a session's answer events in sequence order.
	AnswerEvents(ctx context.Context, sessionID string) ([]AnswerEvent, error)
}
