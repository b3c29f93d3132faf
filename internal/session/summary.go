package session

import (
	"context"
	"fmt"
	"time"
)

// Summary holds end-of-session statistics.
type Summary struct {
	SessionID string        `json:"session_id"`
	ProfileID int           `json:"difficulty_level_id"`
	Total     int           `json:"total_questions"`
	Generated int           `json:"generated"`
	Answered  int           `json:"answered"`
	Correct   int           `json:"correct"`
	Accuracy  float64       `json:"accuracy"`
	Duration  time.Duration `json:"duration"`
	StartedAt time.Time     `json:"start_time"`
	EndedAt   *time.Time    `json:"end_time,omitempty"`
	Ended     bool          `json:"ended"`
}

// Summary reports progress for a session. A session whose plan is fully
// answered is marked ended if it was not already.
func (s *Service) Summary(ctx context.Context, id string) (*Summary, error) {
	defer s.lock(id)()

	sess, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !sess.Ended() && sess.Complete() {
		now := s.now()
		if err := s.store.End(ctx, id, now); err != nil {
			return nil, fmt.Errorf("end session: %w", err)
		}
		sess.EndedAt = &now
	}
	return BuildSummary(sess, s.now()), nil
}

// BuildSummary computes statistics for sess. Open sessions are measured up
// to now.
func BuildSummary(sess *Session, now time.Time) *Summary {
	answered := sess.Answered()
	var accuracy float64
	if answered > 0 {
		accuracy = float64(sess.Score) / float64(answered)
	}
	end := now
	if sess.EndedAt != nil {
		end = *sess.EndedAt
	}
	return &Summary{
		SessionID: sess.ID,
		ProfileID: sess.ProfileID,
		Total:     sess.PlannedCount,
		Generated: len(sess.Questions),
		Answered:  answered,
		Correct:   sess.Score,
		Accuracy:  accuracy,
		Duration:  end.Sub(sess.StartedAt),
		StartedAt: sess.StartedAt,
		EndedAt:   sess.EndedAt,
		Ended:     sess.Ended(),
	}
}
