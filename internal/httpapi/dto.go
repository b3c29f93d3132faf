package httpapi

import (
	"time"

	"github.com/abhisek/mathdrill/internal/problemgen"
	"github.com/abhisek/mathdrill/internal/session"
)

// StartSessionRequest is the body of POST /practice/sessions.
type StartSessionRequest struct {
	DifficultyLevelID int `json:"difficulty_level_id" validate:"required,gt=0"`
	TotalQuestions    int `json:"total_questions" validate:"gte=0,lte=100"`
}

// AnswerRequest is the body of POST /practice/sessions/{id}/answers.
type AnswerRequest struct {
	QuestionID string                         `json:"question_id" validate:"required"`
	UserAnswer *int                           `json:"user_answer" validate:"required_without=Columnar"`
	Columnar   *problemgen.ColumnarSubmission `json:"columnar"`
	TimeSpent  float64                        `json:"time_spent" validate:"gte=0"`
}

func (r AnswerRequest) submission() problemgen.Submission {
	return problemgen.Submission{Answer: r.UserAnswer, Columnar: r.Columnar, TimeSpent: r.TimeSpent}
}

// SessionResponse describes a session without its questions.
type SessionResponse struct {
	ID                string     `json:"id"`
	DifficultyLevelID int        `json:"difficulty_level_id"`
	TotalQuestions    int        `json:"total_questions"`
	CurrentIndex      int        `json:"current_question_index"`
	Score             int        `json:"score"`
	StartTime         time.Time  `json:"start_time"`
	EndTime           *time.Time `json:"end_time,omitempty"`
}

func sessionResponse(s *session.Session) SessionResponse {
	return SessionResponse{
		ID:                s.ID,
		DifficultyLevelID: s.ProfileID,
		TotalQuestions:    s.PlannedCount,
		CurrentIndex:      s.CurrentIndex,
		Score:             s.Score,
		StartTime:         s.StartedAt,
		EndTime:           s.EndedAt,
	}
}

// QuestionResponse is a question as shown to the learner. It never carries
// the answer, and columnar questions only expose their blanked layout.
type QuestionResponse struct {
	ID                string                     `json:"id"`
	DifficultyLevelID int                        `json:"difficulty_level_id"`
	QuestionType      problemgen.Kind            `json:"question_type"`
	QuestionString    string                     `json:"question_string"`
	Operands          []int                      `json:"operands,omitempty"`
	Operations        []string                   `json:"operations,omitempty"`
	Columnar          *problemgen.ColumnarLayout `json:"columnar,omitempty"`
	Answered          bool                       `json:"answered"`
}

func questionResponse(q *problemgen.Question) QuestionResponse {
	resp := QuestionResponse{
		ID:                q.ID,
		DifficultyLevelID: q.ProfileID,
		QuestionType:      q.Kind,
		QuestionString:    q.Display,
		Answered:          q.Answered(),
	}
	if q.Kind == problemgen.KindColumnar {
		resp.Columnar = q.Columnar
	} else {
		resp.Operands = q.Operands
		resp.Operations = q.Operations
	}
	return resp
}
