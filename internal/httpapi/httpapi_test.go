package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/mathdrill/internal/difficulty"
	"github.com/abhisek/mathdrill/internal/llm"
	"github.com/abhisek/mathdrill/internal/problemgen"
	"github.com/abhisek/mathdrill/internal/session"
	"github.com/abhisek/mathdrill/internal/speech"
	"github.com/abhisek/mathdrill/internal/tutor"
)

type testEnv struct {
	server   *httptest.Server
	sessions *session.Service
	synth    *speech.Mock
}

func newTestEnv(t *testing.T, columnarPercent int) *testEnv {
	t.Helper()
	cfg := problemgen.DefaultConfig()
	cfg.ColumnarPercent = columnarPercent
	composer := problemgen.New(problemgen.NewSeededRand(42), cfg, nil)
	sessions := session.NewService(session.NewMemoryStore(), composer, session.DefaultConfig(), nil)

	synth := &speech.Mock{Audio: []byte("ID3audio")}
	tu := tutor.New(llm.NewMockProvider(), synth, tutor.DefaultConfig(), nil)

	server := httptest.NewServer(NewRouter(NewHandler(sessions, tu, nil), Options{}))
	t.Cleanup(server.Close)
	return &testEnv{server: server, sessions: sessions, synth: synth}
}

func (e *testEnv) do(t *testing.T, method, path string, body any) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, e.server.URL+path, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decodeBody[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&v))
	return v
}

func (e *testEnv) start(t *testing.T, level, total int) SessionResponse {
	t.Helper()
	resp := e.do(t, http.MethodPost, "/api/v1/practice/sessions", StartSessionRequest{DifficultyLevelID: level, TotalQuestions: total})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	return decodeBody[SessionResponse](t, resp)
}

func (e *testEnv) next(t *testing.T, sid string) QuestionResponse {
	t.Helper()
	resp := e.do(t, http.MethodGet, "/api/v1/practice/sessions/"+sid+"/question", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	return decodeBody[QuestionResponse](t, resp)
}

func (e *testEnv) stored(t *testing.T, sid, qid string) *problemgen.Question {
	t.Helper()
	q, err := e.sessions.Question(context.Background(), sid, qid)
	require.NoError(t, err)
	return q
}

func TestLevels(t *testing.T) {
	e := newTestEnv(t, 0)

	resp := e.do(t, http.MethodGet, "/api/v1/difficulty/levels", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	levels := decodeBody[[]difficulty.Profile](t, resp)
	assert.Len(t, levels, len(difficulty.All()))

	resp = e.do(t, http.MethodGet, "/api/v1/difficulty/3", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "within_20_carry_borrow", decodeBody[difficulty.Profile](t, resp).Code)

	assert.Equal(t, http.StatusNotFound, e.do(t, http.MethodGet, "/api/v1/difficulty/99", nil).StatusCode)
	assert.Equal(t, http.StatusBadRequest, e.do(t, http.MethodGet, "/api/v1/difficulty/abc", nil).StatusCode)
}

func TestStartSession_Validation(t *testing.T) {
	e := newTestEnv(t, 0)

	tests := []struct {
		name   string
		body   any
		status int
	}{
		{"missing level", map[string]any{"total_questions": 5}, http.StatusBadRequest},
		{"too many questions", StartSessionRequest{DifficultyLevelID: 1, TotalQuestions: 101}, http.StatusBadRequest},
		{"unknown level", StartSessionRequest{DifficultyLevelID: 42}, http.StatusNotFound},
		{"unknown field", map[string]any{"difficulty_level_id": 1, "colour": "red"}, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := e.do(t, http.MethodPost, "/api/v1/practice/sessions", tt.body)
			assert.Equal(t, tt.status, resp.StatusCode)
			assert.NotEmpty(t, decodeBody[ErrorResponse](t, resp).Error)
		})
	}

	sess := e.start(t, 1, 0)
	assert.Equal(t, 10, sess.TotalQuestions, "zero total uses the default")
}

func TestArithmeticSession_EndToEnd(t *testing.T) {
	e := newTestEnv(t, 0)
	sess := e.start(t, 1, 2)

	q := e.next(t, sess.ID)
	assert.Equal(t, problemgen.KindArithmetic, q.QuestionType)
	assert.NotEmpty(t, q.Operands)
	assert.Nil(t, q.Columnar)

	again := e.next(t, sess.ID)
	assert.Equal(t, q.ID, again.ID, "unanswered question is returned again")

	answer := e.stored(t, sess.ID, q.ID).CorrectAnswer
	resp := e.do(t, http.MethodPost, "/api/v1/practice/sessions/"+sess.ID+"/answers",
		AnswerRequest{QuestionID: q.ID, UserAnswer: &answer, TimeSpent: 3.5})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	res := decodeBody[session.AnswerResult](t, resp)
	assert.True(t, res.Correct)
	assert.Equal(t, 1, res.Score)
	assert.Equal(t, 1, res.Remaining)

	resp = e.do(t, http.MethodPost, "/api/v1/practice/sessions/"+sess.ID+"/answers",
		AnswerRequest{QuestionID: q.ID, UserAnswer: &answer})
	assert.Equal(t, http.StatusConflict, resp.StatusCode, "second answer is rejected")

	q2 := e.next(t, sess.ID)
	assert.NotEqual(t, q.ID, q2.ID)
	wrong := e.stored(t, sess.ID, q2.ID).CorrectAnswer + 1
	resp = e.do(t, http.MethodPost, "/api/v1/practice/sessions/"+sess.ID+"/answers",
		AnswerRequest{QuestionID: q2.ID, UserAnswer: &wrong})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	res = decodeBody[session.AnswerResult](t, resp)
	assert.False(t, res.Correct)
	assert.True(t, res.Completed)

	assert.Equal(t, http.StatusConflict,
		e.do(t, http.MethodGet, "/api/v1/practice/sessions/"+sess.ID+"/question", nil).StatusCode)

	resp = e.do(t, http.MethodGet, "/api/v1/practice/sessions/"+sess.ID, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	sum := decodeBody[session.Summary](t, resp)
	assert.Equal(t, 2, sum.Answered)
	assert.Equal(t, 1, sum.Correct)
	assert.True(t, sum.Ended)
}

func TestColumnarSession(t *testing.T) {
	e := newTestEnv(t, 100)
	sess := e.start(t, 3, 1)

	q := e.next(t, sess.ID)
	require.Equal(t, problemgen.KindColumnar, q.QuestionType)
	require.NotNil(t, q.Columnar)
	assert.Empty(t, q.Operands, "columnar questions hide the full operands")

	raw := e.do(t, http.MethodGet, "/api/v1/practice/sessions/"+sess.ID+"/question", nil)
	var body map[string]any
	require.NoError(t, json.NewDecoder(raw.Body).Decode(&body))
	assert.NotContains(t, body, "correct_answer")

	stored := e.stored(t, sess.ID, q.ID)
	w := stored.Columnar.Width
	solution := &problemgen.ColumnarSubmission{
		Operands: [2]problemgen.DigitRow{problemgen.Digits(stored.Operands[0], w), problemgen.Digits(stored.Operands[1], w)},
		Result:   problemgen.Digits(stored.CorrectAnswer, w),
	}

	short := &problemgen.ColumnarSubmission{Operands: solution.Operands, Result: solution.Result[1:]}
	resp := e.do(t, http.MethodPost, "/api/v1/practice/sessions/"+sess.ID+"/answers",
		AnswerRequest{QuestionID: q.ID, Columnar: short})
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

	resp = e.do(t, http.MethodPost, "/api/v1/practice/sessions/"+sess.ID+"/answers",
		map[string]any{"question_id": q.ID, "columnar": map[string]any{"operands": [][]int{{12}, {3}}, "result": []int{1}}})
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode, "digit out of range")

	resp = e.do(t, http.MethodPost, "/api/v1/practice/sessions/"+sess.ID+"/answers",
		AnswerRequest{QuestionID: q.ID, Columnar: solution})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	res := decodeBody[session.AnswerResult](t, resp)
	assert.True(t, res.Correct)
	assert.NotNil(t, res.Solution)
}

func TestSubmitAnswer_Errors(t *testing.T) {
	e := newTestEnv(t, 0)
	sess := e.start(t, 1, 3)
	q := e.next(t, sess.ID)
	one := 1

	tests := []struct {
		name   string
		path   string
		body   any
		status int
	}{
		{"unknown session", "/api/v1/practice/sessions/nope/answers", AnswerRequest{QuestionID: q.ID, UserAnswer: &one}, http.StatusNotFound},
		{"unknown question", "/api/v1/practice/sessions/" + sess.ID + "/answers", AnswerRequest{QuestionID: "nope", UserAnswer: &one}, http.StatusNotFound},
		{"no answer", "/api/v1/practice/sessions/" + sess.ID + "/answers", AnswerRequest{QuestionID: q.ID}, http.StatusBadRequest},
		{"columnar answer to arithmetic", "/api/v1/practice/sessions/" + sess.ID + "/answers",
			AnswerRequest{QuestionID: q.ID, Columnar: &problemgen.ColumnarSubmission{}}, http.StatusUnprocessableEntity},
		{"malformed json", "/api/v1/practice/sessions/" + sess.ID + "/answers", "not an object", http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.status, e.do(t, http.MethodPost, tt.path, tt.body).StatusCode)
		})
	}
}

func TestHelpAndVoice(t *testing.T) {
	e := newTestEnv(t, 0)
	sess := e.start(t, 2, 1)
	q := e.next(t, sess.ID)
	base := "/api/v1/practice/sessions/" + sess.ID + "/questions/" + q.ID

	resp := e.do(t, http.MethodGet, base+"/help", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	help := decodeBody[tutor.Help](t, resp)
	assert.True(t, help.Fallback)
	assert.NotEmpty(t, help.Steps)

	resp = e.do(t, http.MethodGet, base+"/voice", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "audio/mpeg", resp.Header.Get("Content-Type"))
	assert.Equal(t, "true", resp.Header.Get(narrationFallbackHeader))
	var audio bytes.Buffer
	audio.ReadFrom(resp.Body)
	assert.Equal(t, "ID3audio", audio.String())

	e.synth.Audio = nil
	resp = e.do(t, http.MethodGet, base+"/voice", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "application/json")
	assert.NotEmpty(t, decodeBody[tutor.Narration](t, resp).Text)

	assert.Equal(t, http.StatusNotFound, e.do(t, http.MethodGet, "/api/v1/practice/sessions/"+sess.ID+"/questions/nope/help", nil).StatusCode)
}

func TestCORSAndHealth(t *testing.T) {
	e := newTestEnv(t, 0)

	req, err := http.NewRequest(http.MethodOptions, e.server.URL+"/api/v1/difficulty/levels", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))

	assert.Equal(t, http.StatusOK, e.do(t, http.MethodGet, "/healthz", nil).StatusCode)
}

func TestStatusFor(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, statusFor(session.ErrNotFound))
	assert.Equal(t, http.StatusConflict, statusFor(session.ErrSessionEnded))
	assert.Equal(t, http.StatusBadRequest, statusFor(session.ErrInvalidPlan))
	assert.Equal(t, http.StatusUnprocessableEntity, statusFor(problemgen.ErrInvalidSubmission))
	assert.Equal(t, http.StatusInternalServerError, statusFor(assert.AnError))
}
