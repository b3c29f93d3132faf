package store

import (
	"context"
	"fmt"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
)

// eventRepo implements EventRepo with the query builders and the global
// sequence counter.
type eventRepo struct {
	drv *entsql.Driver
	seq *sequenceCounter
}

func (r *eventRepo) AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	query, args := entsql.Dialect(dialect.SQLite).
		Insert("llm_requests").
		Columns("sequence", "provider", "model", "purpose", "input_tokens",
			"output_tokens", "latency_ms", "success", "error_message", "created_at").
		Values(seqNum, data.Provider, data.Model, data.Purpose, data.InputTokens,
			data.OutputTokens, data.LatencyMs, data.Success, data.ErrorMessage, formatTime(time.Now())).
		Query()
	if err := r.drv.Exec(ctx, query, args, nil); err != nil {
		return fmt.Errorf("save LLM request event: %w", err)
	}
	return nil
}

func (r *eventRepo) LLMRequests(ctx context.Context, limit int) ([]LLMRequestEvent, error) {
	sel := entsql.Dialect(dialect.SQLite).
		Select("sequence", "provider", "model", "purpose", "input_tokens",
			"output_tokens", "latency_ms", "success", "error_message", "created_at").
		From(entsql.Table("llm_requests")).
		OrderBy(entsql.Desc("sequence"))
	if limit > 0 {
		sel.Limit(limit)
	}
	query, args := sel.Query()

	var rows entsql.Rows
	if err := r.drv.Query(ctx, query, args, &rows); err != nil {
		return nil, fmt.Errorf("query LLM requests: %w", err)
	}
	defer rows.Close()

	var out []LLMRequestEvent
	for rows.Next() {
		var (
			e  LLMRequestEvent
			ts string
		)
		if err := rows.Scan(&e.Sequence, &e.Provider, &e.Model, &e.Purpose, &e.InputTokens,
			&e.OutputTokens, &e.LatencyMs, &e.Success, &e.ErrorMessage, &ts); err != nil {
			return nil, fmt.Errorf("scan LLM request: %w", err)
		}
		e.Timestamp, _ = parseTime(ts)
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r *eventRepo) AnswerEvents(ctx context.Context, sessionID string) ([]AnswerEvent, error) {
	query, args := entsql.Dialect(dialect.SQLite).
		Select("sequence", "session_id", "question_id", "user_answer", "is_correct", "time_spent", "created_at").
		From(entsql.Table("answer_events")).
		Where(entsql.EQ("session_id", sessionID)).
		OrderBy("sequence").
		Query()

	var rows entsql.Rows
	if err := r.drv.Query(ctx, query, args, &rows); err != nil {
		return nil, fmt.Errorf("query answer events: %w", err)
	}
	defer rows.Close()

	var out []AnswerEvent
	for rows.Next() {
		var (
			e  AnswerEvent
			ts string
		)
		if err := rows.Scan(&e.Sequence, &e.SessionID, &e.QuestionID, &e.UserAnswer, &e.IsCorrect, &e.TimeSpent, &ts); err != nil {
			return nil, fmt.Errorf("scan answer event: %w", err)
		}
		e.Timestamp, _ = parseTime(ts)
		out = append(out, e)
	}
	return out, rows.Err()
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTime(s string) (time.Time, error) {
	return time.Parse(time.RFC3339Nano, s)
}
