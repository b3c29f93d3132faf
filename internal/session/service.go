package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/mathdrill/internal/diagnosis"
	"github.com/abhisek/mathdrill/internal/difficulty"
	"github.com/abhisek/mathdrill/internal/logger"
	"github.com/abhisek/mathdrill/internal/problemgen"
)

// Composer produces the next question for a profile, avoiding the given
// recent display strings. *problemgen.Composer satisfies it.
type Composer interface {
	Compose(p difficulty.Profile, recent []string) (*problemgen.Question, error)
}

// Config controls session defaults.
type Config struct {
	// DefaultQuestions is used when Start is called with planned <= 0.
	DefaultQuestions int

	// MaxQuestions caps the planned count.
	MaxQuestions int

	// RecentWindow is how many prior questions a new one must differ from.
	RecentWindow int
}

// DefaultConfig returns the standard session limits.
func DefaultConfig() Config {
	return Config{
		DefaultQuestions: 10,
		MaxQuestions:     100,
		RecentWindow:     3,
	}
}

// Service runs practice sessions. Operations on the same session are
// serialized; different sessions proceed independently.
type Service struct {
	store    Store
	composer Composer
	config   Config
	log      *logger.Logger
	now      func() time.Time

	classifiers []diagnosis.Classifier

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewService creates a Service. A nil log discards.
func NewService(store Store, composer Composer, cfg Config, log *logger.Logger) *Service {
	if cfg.DefaultQuestions <= 0 {
		cfg.DefaultQuestions = 10
	}
	if cfg.MaxQuestions <= 0 {
		cfg.MaxQuestions = 100
	}
	if cfg.RecentWindow <= 0 {
		cfg.RecentWindow = 3
	}
	return &Service{
		store:    store,
		composer: composer,
		config:   cfg,
		log:      logger.OrNop(log).With("component", "session"),
		now:      time.Now,
		locks:    make(map[string]*sync.Mutex),

		classifiers: diagnosis.DefaultClassifiers(),
	}
}

// lock serializes work on one session and returns the unlock func.
func (s *Service) lock(id string) func() {
	s.mu.Lock()
	l, ok := s.locks[id]
	if !ok {
		l = &sync.Mutex{}
		s.locks[id] = l
	}
	s.mu.Unlock()
	l.Lock()
	return l.Unlock
}

// Start creates a session for the given profile. planned <= 0 uses the
// configured default.
func (s *Service) Start(ctx context.Context, profileID, planned int) (*Session, error) {
	p, err := difficulty.Get(profileID)
	if err != nil {
		return nil, err
	}
	if planned <= 0 {
		planned = s.config.DefaultQuestions
	}
	if planned > s.config.MaxQuestions {
		return nil, fmt.Errorf("%w: %d exceeds %d", ErrInvalidPlan, planned, s.config.MaxQuestions)
	}

	sess := &Session{
		ID:           uuid.NewString(),
		ProfileID:    p.ID,
		Profile:      p,
		PlannedCount: planned,
		StartedAt:    s.now(),
	}
	if err := s.store.Create(ctx, sess); err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}
	s.log.Info("session started", "session_id", sess.ID, "profile", p.Code, "planned", planned)
	return sess, nil
}

// Get returns a snapshot of the session.
func (s *Service) Get(ctx context.Context, id string) (*Session, error) {
	return s.store.Get(ctx, id)
}

// NextQuestion returns the current unanswered question, generating a new
// one when every existing question has been answered and the plan is not
// yet complete.
func (s *Service) NextQuestion(ctx context.Context, id string) (*problemgen.Question, error) {
	defer s.lock(id)()

	sess, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if sess.Ended() {
		return nil, ErrSessionEnded
	}
	if q, ok := sess.Current(); ok && !q.Answered() {
		return q, nil
	}
	if len(sess.Questions) >= sess.PlannedCount {
		sess.advance()
		if q, ok := sess.Current(); ok {
			return q, nil
		}
		return nil, ErrSessionEnded
	}

	q, err := s.composer.Compose(sess.Profile, sess.RecentDisplays(s.config.RecentWindow))
	if err != nil {
		return nil, fmt.Errorf("compose question: %w", err)
	}
	if err := s.store.AppendQuestion(ctx, id, q); err != nil {
		return nil, fmt.Errorf("append question: %w", err)
	}
	return q, nil
}

// AnswerResult reports the outcome of a submission.
type AnswerResult struct {
	QuestionID    string `json:"question_id"`
	Correct       bool   `json:"is_correct"`
	CorrectAnswer int    `json:"correct_answer"`

	// Solution holds the fully revealed layout for columnar questions.
	Solution *problemgen.ColumnarSubmission `json:"solution,omitempty"`

	// Mistake classifies a wrong answer. Nil when the answer is correct.
	Mistake *diagnosis.Result `json:"mistake,omitempty"`

	Score     int  `json:"score"`
	Answered  int  `json:"answered"`
	Remaining int  `json:"remaining"`
	Completed bool `json:"session_completed"`
}

// SubmitAnswer checks and records a learner's answer. Answering the same
// question twice returns ErrAlreadyAnswered and leaves the score unchanged.
func (s *Service) SubmitAnswer(ctx context.Context, sessionID, questionID string, sub problemgen.Submission) (*AnswerResult, error) {
	defer s.lock(sessionID)()

	sess, err := s.store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	q, ok := sess.Question(questionID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrQuestionNotFound, questionID)
	}
	if q.Answered() {
		return nil, ErrAlreadyAnswered
	}
	if sess.Ended() {
		return nil, ErrSessionEnded
	}

	priorAnswered, priorScore := sess.Answered(), sess.Score

	now := s.now()
	correct, err := problemgen.Answer(q, sub, now)
	if errors.Is(err, problemgen.ErrAlreadyAnswered) {
		return nil, ErrAlreadyAnswered
	}
	if err != nil {
		return nil, err
	}
	if correct {
		sess.Score++
	}
	answered := sess.Answered()
	if answered >= sess.PlannedCount {
		sess.EndedAt = &now
	}
	sess.advance()

	if err := s.store.SaveAnswer(ctx, sess, q); err != nil {
		return nil, fmt.Errorf("save answer: %w", err)
	}
	mistake := diagnosis.Diagnose(s.classifiers, q, accuracy(priorScore, priorAnswered))
	if mistake != nil {
		s.log.Debug("wrong answer diagnosed",
			"session_id", sess.ID,
			"question_id", q.ID,
			"category", mistake.Category)
	}
	if sess.Ended() {
		s.log.Info("session completed", "session_id", sess.ID, "score", sess.Score, "planned", sess.PlannedCount)
	}

	return &AnswerResult{
		QuestionID:    q.ID,
		Correct:       correct,
		CorrectAnswer: q.CorrectAnswer,
		Solution:      solution(q),
		Mistake:       mistake,
		Score:         sess.Score,
		Answered:      answered,
		Remaining:     max(sess.PlannedCount-answered, 0),
		Completed:     sess.Ended(),
	}, nil
}

func accuracy(score, answered int) float64 {
	if answered == 0 {
		return 0
	}
	return float64(score) / float64(answered)
}

// solution reveals every digit of a columnar question.
func solution(q *problemgen.Question) *problemgen.ColumnarSubmission {
	if q.Columnar == nil || len(q.Operands) != 2 {
		return nil
	}
	w := q.Columnar.Width
	return &problemgen.ColumnarSubmission{
		Operands: [2]problemgen.DigitRow{
			problemgen.Digits(q.Operands[0], w),
			problemgen.Digits(q.Operands[1], w),
		},
		Result: problemgen.Digits(q.CorrectAnswer, w),
	}
}

// Question returns one question of the session.
func (s *Service) Question(ctx context.Context, sessionID, questionID string) (*problemgen.Question, error) {
	sess, err := s.store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	q, ok := sess.Question(questionID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrQuestionNotFound, questionID)
	}
	return q, nil
}
