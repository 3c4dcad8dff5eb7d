package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/http/cookiejar"
	"strings"
	"testing"

	"github.com/aziyat1977/Inter-1.1/internal/content"
	"github.com/aziyat1977/Inter-1.1/internal/learner"
	"github.com/aziyat1977/Inter-1.1/internal/repository/sqlite"
	"github.com/aziyat1977/Inter-1.1/internal/services"
	"github.com/aziyat1977/Inter-1.1/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type testClient struct {
	t    *testing.T
	base string
	http *http.Client
}

func newTestServer(t *testing.T, passcode string) (*testClient, *learner.Store) {
	t.Helper()
	d := testutil.NewTestDB(t)
	store := learner.NewStore(learner.WithContextOptions(learner.WithClock(testutil.NewManualClock())))
	t.Cleanup(store.CloseAll)

	contentSvc := services.NewContentService(sqlite.NewContentRepository(d.DB))
	teacherSvc, err := services.NewTeacherService(contentSvc, sqlite.NewFeedbackRepository(d.DB), passcode,
		services.WithBcryptCost(bcrypt.MinCost))
	require.NoError(t, err)

	srv := &Server{
		DB:             d,
		Learners:       store,
		LearnerService: services.NewLearnerService(nil),
		ContentService: contentSvc,
		TeacherService: teacherSvc,
	}
	ts := httptest.NewServer(srv.Routes())
	t.Cleanup(ts.Close)

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return &testClient{t: t, base: ts.URL, http: &http.Client{Jar: jar}}, store
}

func (c *testClient) do(method, path string, body any) (int, []byte) {
	c.t.Helper()
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(c.t, err)
		rd = bytes.NewReader(b)
	}
	req, err := http.NewRequest(method, c.base+path, rd)
	require.NoError(c.t, err)
	resp, err := c.http.Do(req)
	require.NoError(c.t, err)
	defer resp.Body.Close()
	out, err := io.ReadAll(resp.Body)
	require.NoError(c.t, err)
	return resp.StatusCode, out
}

func (c *testClient) json(method, path string, body any, wantStatus int) map[string]any {
	c.t.Helper()
	status, raw := c.do(method, path, body)
	require.Equal(c.t, wantStatus, status, string(raw))
	var out map[string]any
	require.NoError(c.t, json.Unmarshal(raw, &out), string(raw))
	return out
}

func errorCode(t *testing.T, body map[string]any) string {
	t.Helper()
	e, ok := body["error"].(map[string]any)
	require.True(t, ok, "missing error object: %v", body)
	return e["code"].(string)
}

func TestHealthAndReady(t *testing.T) {
	c, _ := newTestServer(t, "")

	status, body := c.do(http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "OK", string(body))

	status, body = c.do(http.MethodGet, "/readyz", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Ready", string(body))
}

func TestState_CookieKeepsLearner(t *testing.T) {
	c, store := newTestServer(t, "")

	first := c.json(http.MethodGet, "/api/state", nil, http.StatusOK)
	second := c.json(http.MethodGet, "/api/state", nil, http.StatusOK)
	assert.Equal(t, first["learner_id"], second["learner_id"])
	assert.Equal(t, 1, store.Len())
	assert.Equal(t, "landing", first["mode"])
	assert.Equal(t, content.UnitTitle, first["unit"])
	assert.Len(t, first["levels"], 6)
}

func TestLanguageAndMode(t *testing.T) {
	c, _ := newTestServer(t, "")

	body := c.json(http.MethodPost, "/api/language", map[string]string{"language": "uz"}, http.StatusOK)
	assert.Equal(t, "uz", body["language"])

	body = c.json(http.MethodPost, "/api/language", map[string]string{"language": "fr"}, http.StatusBadRequest)
	assert.Equal(t, "VALIDATION_ERROR", errorCode(t, body))

	body = c.json(http.MethodPost, "/api/mode", map[string]string{"mode": "battle"}, http.StatusOK)
	assert.Equal(t, "battle", body["mode"])

	body = c.json(http.MethodGet, "/api/battle", nil, http.StatusOK)
	assert.Equal(t, "intro", body["state"])

	body = c.json(http.MethodGet, "/api/i18n?lang=ru", nil, http.StatusOK)
	assert.Equal(t, "ru", body["language"])
}

func TestBadJSON(t *testing.T) {
	c, _ := newTestServer(t, "")
	req, err := http.NewRequest(http.MethodPost, c.base+"/api/xp", strings.NewReader("{nope"))
	require.NoError(t, err)
	resp, err := c.http.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))
}

func TestXPAndEvents(t *testing.T) {
	c, _ := newTestServer(t, "")

	body := c.json(http.MethodPost, "/api/xp", map[string]int{"amount": 150}, http.StatusOK)
	assert.EqualValues(t, 150, body["xp"])

	events := c.json(http.MethodGet, "/api/events", nil, http.StatusOK)
	notes := events["notifications"].([]any)
	require.Len(t, notes, 1)
	assert.Equal(t, "level_up", notes[0].(map[string]any)["kind"])

	events = c.json(http.MethodGet, "/api/events", nil, http.StatusOK)
	assert.Empty(t, events["notifications"])
}

func TestLessonFlow(t *testing.T) {
	c, _ := newTestServer(t, "")

	body := c.json(http.MethodGet, "/api/lesson", nil, http.StatusOK)
	assert.Equal(t, "discuss", body["step"])
	practice := body["practice"].([]any)
	require.Len(t, practice, 4)
	assert.NotContains(t, practice[0], "answers")

	body = c.json(http.MethodPost, "/api/lesson/step", map[string]int{"step": 2}, http.StatusOK)
	assert.Equal(t, "learn", body["step"])

	body = c.json(http.MethodPost, "/api/lesson/discuss", map[string]string{"answer": "hi"}, http.StatusBadRequest)
	assert.Equal(t, "VALIDATION_ERROR", errorCode(t, body))

	body = c.json(http.MethodPost, "/api/lesson/discuss", map[string]string{"answer": "Only a few are real."}, http.StatusOK)
	assert.EqualValues(t, 10, body["xp"])
	assert.NotContains(t, body, "feedback")

	body = c.json(http.MethodPost, "/api/lesson/comprehension/0", nil, http.StatusOK)
	assert.Equal(t, "For charity (£3,000).", body["answer"])
	c.json(http.MethodPost, "/api/lesson/comprehension/9", nil, http.StatusNotFound)
	c.json(http.MethodPost, "/api/lesson/comprehension/x", nil, http.StatusBadRequest)

	answers := map[string]string{}
	for _, q := range content.PracticeExercises() {
		answers[q.ID] = q.Answer()
	}
	body = c.json(http.MethodPost, "/api/lesson/check", map[string]any{"answers": answers}, http.StatusOK)
	assert.Equal(t, "perfect", body["outcome"])
	assert.EqualValues(t, 80, body["xp"])

	body = c.json(http.MethodPost, "/api/lesson/check", map[string]any{"answers": answers}, http.StatusConflict)
	assert.Equal(t, "CONFLICT", errorCode(t, body))

	body = c.json(http.MethodPost, "/api/lesson/retry", nil, http.StatusOK)
	assert.NotContains(t, body, "result")
}

func TestBattleFlow(t *testing.T) {
	c, _ := newTestServer(t, "")

	c.json(http.MethodGet, "/api/battle", nil, http.StatusConflict)

	body := c.json(http.MethodPost, "/api/battle/start", nil, http.StatusOK)
	assert.Equal(t, "playing", body["state"])
	assert.EqualValues(t, 10, body["time_left"])

	first := content.BattleQuestions()[0]
	body = c.json(http.MethodPost, "/api/battle/select", map[string]string{"option": first.Answer()}, http.StatusOK)
	assert.Equal(t, true, body["correct"])

	c.json(http.MethodPost, "/api/battle/select", map[string]int{"index": 0}, http.StatusConflict)
	c.json(http.MethodPost, "/api/battle/select", map[string]string{}, http.StatusBadRequest)

	body = c.json(http.MethodPost, "/api/battle/advance", nil, http.StatusOK)
	assert.EqualValues(t, 1, body["index"])
}

func TestVocabEndpoints(t *testing.T) {
	c, _ := newTestServer(t, "")

	body := c.json(http.MethodGet, "/api/vocab?pos=phr", nil, http.StatusOK)
	assert.EqualValues(t, 2, body["count"])
	c.json(http.MethodGet, "/api/vocab?limit=abc", nil, http.StatusBadRequest)
	c.json(http.MethodGet, "/api/vocab?pos=adj", nil, http.StatusBadRequest)

	body = c.json(http.MethodGet, "/api/vocab/review", nil, http.StatusOK)
	assert.Len(t, body["cards"], 8)
	body = c.json(http.MethodPost, "/api/vocab/review/3/flip", nil, http.StatusOK)
	assert.Equal(t, true, body["flipped"])
	c.json(http.MethodPost, "/api/vocab/review/99/flip", nil, http.StatusNotFound)

	body = c.json(http.MethodPost, "/api/vocab/recall", map[string]string{"action": "flip"}, http.StatusOK)
	assert.Equal(t, true, body["flipped"])
	body = c.json(http.MethodPost, "/api/vocab/recall", map[string]any{"action": "judge", "knew": true}, http.StatusOK)
	assert.EqualValues(t, 1, body["streak"])
	c.json(http.MethodPost, "/api/vocab/recall", map[string]string{"action": "skip"}, http.StatusBadRequest)

	body = c.json(http.MethodGet, "/api/vocab/choice", nil, http.StatusOK)
	assert.Len(t, body["options"], 2)
	c.json(http.MethodPost, "/api/vocab/choice", map[string]any{}, http.StatusBadRequest)
	body = c.json(http.MethodPost, "/api/vocab/choice", map[string]int{"side": 1}, http.StatusOK)
	assert.Contains(t, body, "next")

	body = c.json(http.MethodGet, "/api/grammar?usage=continuous", nil, http.StatusOK)
	assert.Len(t, body["grammar"], 1)

	body = c.json(http.MethodGet, "/api/feedback", nil, http.StatusOK)
	assert.Empty(t, body["feedback"])
}

func TestTeacher_OpenDashboard(t *testing.T) {
	c, _ := newTestServer(t, "")

	body := c.json(http.MethodGet, "/api/teacher/dashboard", nil, http.StatusOK)
	assert.NotContains(t, body, "answer_keys")
	body = c.json(http.MethodGet, "/api/teacher/dashboard?reveal=true", nil, http.StatusOK)
	assert.Len(t, body["answer_keys"], 3)
	c.json(http.MethodGet, "/api/teacher/dashboard?reveal=maybe", nil, http.StatusBadRequest)

	req, err := http.NewRequest(http.MethodGet, c.base+"/api/teacher/answer-key.xlsx", nil)
	require.NoError(t, err)
	resp, err := c.http.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, xlsxContentType, resp.Header.Get("Content-Type"))
}

func TestTeacher_PasscodeGate(t *testing.T) {
	c, _ := newTestServer(t, "celta")

	body := c.json(http.MethodGet, "/api/teacher/dashboard", nil, http.StatusUnauthorized)
	assert.Equal(t, "UNAUTHORIZED", errorCode(t, body))

	c.json(http.MethodPost, "/api/teacher/unlock", map[string]string{"passcode": "nope"}, http.StatusUnauthorized)
	c.json(http.MethodPost, "/api/teacher/unlock", map[string]string{"passcode": "celta"}, http.StatusOK)

	body = c.json(http.MethodGet, "/api/teacher/dashboard", nil, http.StatusOK)
	assert.Len(t, body["aims"], 4)
}
