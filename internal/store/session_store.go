package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"

	"github.com/abhisek/mathdrill/internal/problemgen"
	"github.com/abhisek/mathdrill/internal/session"
)

// SessionStore implements session.Store on SQLite. Each question row keeps
// the full question as JSON next to queryable answer columns, and every
// answer also appends a sequenced row to answer_events.
type SessionStore struct {
	drv *entsql.Driver
	seq *sequenceCounter
}

var _ session.Store = (*SessionStore)(nil)

func builder() *entsql.DialectBuilder {
	return entsql.Dialect(dialect.SQLite)
}

func (s *SessionStore) Create(ctx context.Context, sess *session.Session) error {
	profile, err := json.Marshal(sess.Profile)
	if err != nil {
		return fmt.Errorf("encode profile: %w", err)
	}

	tx, err := s.drv.Tx(ctx)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	columns := []string{"id", "profile_id", "profile", "planned_count", "current_index", "score", "started_at"}
	values := []any{sess.ID, sess.ProfileID, string(profile), sess.PlannedCount, sess.CurrentIndex, sess.Score,
		formatTime(sess.StartedAt)}
	if sess.EndedAt != nil {
		columns = append(columns, "ended_at")
		values = append(values, formatTime(*sess.EndedAt))
	}
	query, args := builder().
		Insert("sessions").
		Columns(columns...).
		Values(values...).
		Query()
	if err := tx.Exec(ctx, query, args, nil); err != nil {
		tx.Rollback()
		return fmt.Errorf("insert session: %w", err)
	}
	for i, q := range sess.Questions {
		if err := insertQuestion(ctx, tx, sess.ID, i, q); err != nil {
			tx.Rollback()
			return err
		}
	}
	return tx.Commit()
}

func (s *SessionStore) Get(ctx context.Context, id string) (*session.Session, error) {
	query, args := builder().
		Select("profile_id", "profile", "planned_count", "current_index", "score", "started_at", "ended_at").
		From(entsql.Table("sessions")).
		Where(entsql.EQ("id", id)).
		Query()

	var rows entsql.Rows
	if err := s.drv.Query(ctx, query, args, &rows); err != nil {
		return nil, fmt.Errorf("query session: %w", err)
	}
	if !rows.Next() {
		err := rows.Err()
		rows.Close()
		if err != nil {
			return nil, fmt.Errorf("query session: %w", err)
		}
		return nil, fmt.Errorf("%w: %s", session.ErrNotFound, id)
	}

	var (
		sess             = &session.Session{ID: id}
		profile, started string
		ended            sql.NullString
	)
	err := rows.Scan(&sess.ProfileID, &profile, &sess.PlannedCount, &sess.CurrentIndex, &sess.Score, &started, &ended)
	rows.Close()
	if err != nil {
		return nil, fmt.Errorf("scan session: %w", err)
	}
	if err := json.Unmarshal([]byte(profile), &sess.Profile); err != nil {
		return nil, fmt.Errorf("decode profile: %w", err)
	}
	if sess.StartedAt, err = parseTime(started); err != nil {
		return nil, fmt.Errorf("decode start time: %w", err)
	}
	if ended.Valid {
		t, err := parseTime(ended.String)
		if err != nil {
			return nil, fmt.Errorf("decode end time: %w", err)
		}
		sess.EndedAt = &t
	}

	sess.Questions, err = s.questions(ctx, id)
	if err != nil {
		return nil, err
	}
	return sess, nil
}

func (s *SessionStore) questions(ctx context.Context, sessionID string) ([]*problemgen.Question, error) {
	query, args := builder().
		Select("payload").
		From(entsql.Table("questions")).
		Where(entsql.EQ("session_id", sessionID)).
		OrderBy("position").
		Query()

	var rows entsql.Rows
	if err := s.drv.Query(ctx, query, args, &rows); err != nil {
		return nil, fmt.Errorf("query questions: %w", err)
	}
	defer rows.Close()

	var out []*problemgen.Question
	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("scan question: %w", err)
		}
		q := &problemgen.Question{}
		if err := json.Unmarshal([]byte(payload), q); err != nil {
			return nil, fmt.Errorf("decode question: %w", err)
		}
		out = append(out, q)
	}
	return out, rows.Err()
}

func (s *SessionStore) AppendQuestion(ctx context.Context, sessionID string, q *problemgen.Question) error {
	tx, err := s.drv.Tx(ctx)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	n, err := count(ctx, tx, "sessions", entsql.EQ("id", sessionID))
	if err != nil {
		tx.Rollback()
		return err
	}
	if n == 0 {
		tx.Rollback()
		return fmt.Errorf("%w: %s", session.ErrNotFound, sessionID)
	}
	position, err := count(ctx, tx, "questions", entsql.EQ("session_id", sessionID))
	if err != nil {
		tx.Rollback()
		return err
	}
	if err := insertQuestion(ctx, tx, sessionID, position, q); err != nil {
		tx.Rollback()
		return err
	}
	return tx.Commit()
}

func (s *SessionStore) SaveAnswer(ctx context.Context, sess *session.Session, q *problemgen.Question) error {
	if q.Response == nil {
		return fmt.Errorf("question %s has no response", q.ID)
	}
	payload, err := json.Marshal(q)
	if err != nil {
		return fmt.Errorf("encode question: %w", err)
	}
	seqNum, err := s.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	tx, err := s.drv.Tx(ctx)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	rollback := func(err error) error {
		tx.Rollback()
		return err
	}

	query, args := builder().
		Update("questions").
		Set("payload", string(payload)).
		Set("answered", true).
		Set("user_answer", q.Response.UserAnswer).
		Set("is_correct", q.Response.IsCorrect).
		Set("answered_at", formatTime(q.Response.AnsweredAt)).
		Where(entsql.And(entsql.EQ("id", q.ID), entsql.EQ("session_id", sess.ID))).
		Query()
	var res sql.Result
	if err := tx.Exec(ctx, query, args, &res); err != nil {
		return rollback(fmt.Errorf("update question: %w", err))
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return rollback(fmt.Errorf("%w: %s", session.ErrQuestionNotFound, q.ID))
	}

	upd := builder().
		Update("sessions").
		Set("score", sess.Score).
		Set("current_index", sess.CurrentIndex)
	if sess.EndedAt != nil {
		upd.Set("ended_at", formatTime(*sess.EndedAt))
	}
	query, args = upd.Where(entsql.EQ("id", sess.ID)).Query()
	if err := tx.Exec(ctx, query, args, nil); err != nil {
		return rollback(fmt.Errorf("update session: %w", err))
	}

	query, args = builder().
		Insert("answer_events").
		Columns("sequence", "session_id", "question_id", "user_answer", "is_correct", "time_spent", "created_at").
		Values(seqNum, sess.ID, q.ID, q.Response.UserAnswer, q.Response.IsCorrect, q.Response.TimeSpent,
			formatTime(q.Response.AnsweredAt)).
		Query()
	if err := tx.Exec(ctx, query, args, nil); err != nil {
		return rollback(fmt.Errorf("insert answer event: %w", err))
	}
	return tx.Commit()
}

func (s *SessionStore) End(ctx context.Context, sessionID string, at time.Time) error {
	query, args := builder().
		Update("sessions").
		Set("ended_at", formatTime(at)).
		Where(entsql.And(entsql.EQ("id", sessionID), entsql.IsNull("ended_at"))).
		Query()
	if err := s.drv.Exec(ctx, query, args, nil); err != nil {
		return fmt.Errorf("end session: %w", err)
	}
	return nil
}

func insertQuestion(ctx context.Context, tx dialect.ExecQuerier, sessionID string, position int, q *problemgen.Question) error {
	payload, err := json.Marshal(q)
	if err != nil {
		return fmt.Errorf("encode question: %w", err)
	}
	query, args := builder().
		Insert("questions").
		Columns("id", "session_id", "position", "kind", "display", "correct_answer", "validated", "payload", "created_at").
		Values(q.ID, sessionID, position, string(q.Kind), q.Display, q.CorrectAnswer, q.Validated,
			string(payload), formatTime(q.CreatedAt)).
		Query()
	if err := tx.Exec(ctx, query, args, nil); err != nil {
		return fmt.Errorf("insert question: %w", err)
	}
	return nil
}

func count(ctx context.Context, q dialect.ExecQuerier, table string, pred *entsql.Predicate) (int, error) {
	query, args := builder().
		Select(entsql.Count("*")).
		From(entsql.Table(table)).
		Where(pred).
		Query()
	var rows entsql.Rows
	if err := q.Query(ctx, query, args, &rows); err != nil {
		return 0, fmt.Errorf("count %s: %w", table, err)
	}
	defer rows.Close()
	var n int
	if rows.Next() {
		if err := rows.Scan(&n); err != nil {
			return 0, fmt.Errorf("count %s: %w", table, err)
		}
	}
	return n, rows.Err()
}
