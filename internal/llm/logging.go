package llm

import (
	"context"
	"time"

	"github.com/abhisek/mathdrill/internal/logger"
	"github.com/abhisek/mathdrill/internal/store"
)

// LoggingProvider records every request as an llm_requests event and a
// debug log line.
type LoggingProvider struct {
	inner    Provider
	provider string
	repo     store.EventRepo
	log      *logger.Logger
}

// WithLogging wraps p. A nil repo only logs.
func WithLogging(p Provider, providerName string, repo store.EventRepo, log *logger.Logger) Provider {
	return &LoggingProvider{
		inner:    p,
		provider: providerName,
		repo:     repo,
		log:      logger.OrNop(log).With("component", "llm"),
	}
}

func (l *LoggingProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()
	resp, err := l.inner.Generate(ctx, req)

	data := store.LLMRequestEventData{
		Provider:  l.provider,
		Model:     l.inner.ModelID(),
		Purpose:   PurposeFrom(ctx),
		LatencyMs: time.Since(start).Milliseconds(),
		Success:   err == nil,
	}
	if resp != nil {
		data.InputTokens = resp.Usage.InputTokens
		data.OutputTokens = resp.Usage.OutputTokens
		if resp.Model != "" {
			data.Model = resp.Model
		}
	}
	if err != nil {
		data.ErrorMessage = err.Error()
	}

	l.log.Debug("llm request",
		"purpose", data.Purpose,
		"model", data.Model,
		"latency_ms", data.LatencyMs,
		"success", data.Success)

	if l.repo != nil {
		// The request itself already succeeded or failed; losing the event
		// is only worth a warning.
		if logErr := l.repo.AppendLLMRequest(ctx, data); logErr != nil {
			l.log.Warn("failed to record llm request", "error", logErr)
		}
	}
	return resp, err
}

func (l *LoggingProvider) ModelID() string {
	return l.inner.ModelID()
}
