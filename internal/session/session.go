package session

import (
	"time"

	"github.com/abhisek/mathdrill/internal/difficulty"
	"github.com/abhisek/mathdrill/internal/problemgen"
)

// Session is one practice run against a single difficulty profile.
type Session struct {
	ID           string                 `json:"id"`
	ProfileID    int                    `json:"difficulty_level_id"`
	Profile      difficulty.Profile     `json:"difficulty_level"`
	PlannedCount int                    `json:"total_questions"`
	Questions    []*problemgen.Question `json:"questions"`

	// CurrentIndex points at the first unanswered question, or at
	// len(Questions) when every generated question has been answered.
	CurrentIndex int `json:"current_question_index"`

	Score     int        `json:"score"`
	StartedAt time.Time  `json:"start_time"`
	EndedAt   *time.Time `json:"end_time,omitempty"`
}

// Ended reports whether the session has an end time.
func (s *Session) Ended() bool {
	return s.EndedAt != nil
}

// Answered returns how many questions have a response.
func (s *Session) Answered() int {
	n := 0
	for _, q := range s.Questions {
		if q.Answered() {
			n++
		}
	}
	return n
}

// Complete reports whether every planned question has been answered.
func (s *Session) Complete() bool {
	return s.Answered() >= s.PlannedCount
}

// Question looks up a question by id.
func (s *Session) Question(id string) (*problemgen.Question, bool) {
	for _, q := range s.Questions {
		if q.ID == id {
			return q, true
		}
	}
	return nil, false
}

// Current returns the question at CurrentIndex, if there is one.
func (s *Session) Current() (*problemgen.Question, bool) {
	if s.CurrentIndex < 0 || s.CurrentIndex >= len(s.Questions) {
		return nil, false
	}
	return s.Questions[s.CurrentIndex], true
}

// RecentDisplays returns the display strings of the last n questions,
// oldest first.
func (s *Session) RecentDisplays(n int) []string {
	qs := s.Questions
	if n >= 0 && len(qs) > n {
		qs = qs[len(qs)-n:]
	}
	out := make([]string, len(qs))
	for i, q := range qs {
		out[i] = q.Display
	}
	return out
}

// advance moves CurrentIndex to the first unanswered question, scanning
// from the start.
func (s *Session) advance() {
	for i, q := range s.Questions {
		if !q.Answered() {
			s.CurrentIndex = i
			return
		}
	}
	s.CurrentIndex = len(s.Questions)
}

// Clone returns a deep copy of s.
func (s *Session) Clone() *Session {
	c := *s
	c.Profile.Operations = append([]difficulty.Operation(nil), s.Profile.Operations...)
	c.Questions = make([]*problemgen.Question, len(s.Questions))
	for i, q := range s.Questions {
		c.Questions[i] = q.Clone()
	}
	if s.EndedAt != nil {
		t := *s.EndedAt
		c.EndedAt = &t
	}
	return &c
}
