package handler_test

import (
	"Go_Scan/internal/awsx"
	"Go_Scan/internal/handler"
	"Go_Scan/internal/llm"
	"Go_Scan/internal/logging"
	"Go_Scan/internal/ocr"
	"Go_Scan/internal/repo"
	"Go_Scan/internal/service"
	"Go_Scan/internal/session"
	"Go_Scan/model"
	"Go_Scan/router"
	"Go_Scan/utils"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/textract"
	"github.com/aws/aws-sdk-go-v2/service/textract/types"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memUsers struct {
	mu     sync.Mutex
	nextID uint64
	rows   map[string]*model.User
}

func (m *memUsers) Create(ctx context.Context, u *model.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.rows[u.UserName]; ok {
		return repo.ErrDuplicateUser
	}
	m.nextID++
	u.ID = m.nextID
	cp := *u
	m.rows[u.UserName] = &cp
	return nil
}

func (m *memUsers) FindByUsername(ctx context.Context, name string) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.rows[name]
	if !ok {
		return nil, repo.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

type fakeDocs struct {
	calls int
	out   *textract.GetDocumentTextDetectionOutput
	err   error
}

func (f *fakeDocs) Process(ctx context.Context, p *model.Principal, content, name string) (*textract.GetDocumentTextDetectionOutput, error) {
	f.calls++
	return f.out, f.err
}

type fakeText struct {
	calls     int
	corrected string
	feedback  string
	err       error
}

func (f *fakeText) Correct(ctx context.Context, text string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", llm.ErrEmptyInput
	}
	f.calls++
	return f.corrected, f.err
}

func (f *fakeText) Evaluate(ctx context.Context, text, question string) (string, error) {
	if strings.TrimSpace(text) == "" || strings.TrimSpace(question) == "" {
		return "", llm.ErrEmptyInput
	}
	f.calls++
	return f.feedback, f.err
}

type testApp struct {
	engine *gin.Engine
	auth   *service.AuthService
	users  *memUsers
	docs   *fakeDocs
	text   *fakeText
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	gin.SetMode(gin.TestMode)
	users := &memUsers{rows: map[string]*model.User{}}
	sessions := session.NewManager(session.NewMemoryStore(), "test-secret", time.Hour)
	auth := service.NewAuthService(users, sessions)
	docs := &fakeDocs{}
	text := &fakeText{}
	h := handler.New(auth, docs, text, handler.Options{SessionTTL: time.Hour}, logging.Discard())
	engine, err := router.InitRouter(h, auth, nil)
	require.NoError(t, err)
	return &testApp{engine: engine, auth: auth, users: users, docs: docs, text: text}
}

func (a *testApp) do(req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	a.engine.ServeHTTP(w, req)
	return w
}

func (a *testApp) login(t *testing.T, username, password string) *http.Cookie {
	t.Helper()
	if _, err := a.auth.Register(context.Background(), username, password); err != nil && !errors.Is(err, service.ErrUsernameTaken) {
		t.Fatalf("register: %v", err)
	}
	w := a.do(formRequest("/login", username, password))
	require.Equal(t, http.StatusFound, w.Code)
	return cookieNamed(w, utils.SessionCookie)
}

func formRequest(path, username, password string) *http.Request {
	form := url.Values{"username": {username}, "password": {password}}
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func jsonRequest(path, body string, cookie *http.Cookie) *http.Request {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if cookie != nil {
		req.AddCookie(cookie)
	}
	return req
}

func cookieNamed(w *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, c := range w.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func flashOf(w *httptest.ResponseRecorder) string {
	c := cookieNamed(w, utils.FlashCookie)
	if c == nil {
		return ""
	}
	v, _ := url.QueryUnescape(c.Value)
	return v
}

func TestProtectedRoutesRequireSession(t *testing.T) {
	app := newTestApp(t)
	for _, path := range []string{"/process-document", "/correct-text", "/evaluate-text"} {
		w := app.do(jsonRequest(path, `{"text":"x","question":"y"}`, nil))
		assert.Equal(t, http.StatusUnauthorized, w.Code, path)
		assert.JSONEq(t, `{"error":"unauthorized"}`, w.Body.String(), path)
	}
	assert.Zero(t, app.docs.calls)
	assert.Zero(t, app.text.calls)
}

func TestPageRoutesRedirectToLogin(t *testing.T) {
	app := newTestApp(t)
	for _, path := range []string{"/process", "/logout"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		req.Header.Set("Accept", "text/html")
		w := app.do(req)
		assert.Equal(t, http.StatusFound, w.Code, path)
		assert.Equal(t, "/login", w.Header().Get("Location"), path)
	}
}

func TestPublicPages(t *testing.T) {
	app := newTestApp(t)
	for _, path := range []string{"/", "/simulate", "/login", "/register"} {
		w := app.do(httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusOK, w.Code, path)
		assert.Contains(t, w.Body.String(), "<html", path)
	}

	w := app.do(httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())

	w = app.do(httptest.NewRequest(http.MethodGet, "/static/js/main.js", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "/process-document")
}

func TestRegisterThenLogin(t *testing.T) {
	app := newTestApp(t)

	w := app.do(formRequest("/register", "alice", "s3cret"))
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))
	assert.Equal(t, "Registration successful. You can now log in.", flashOf(w))

	w = app.do(formRequest("/login", "alice", "s3cret"))
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))
	assert.Equal(t, "Logged in successfully.", flashOf(w))
	cookie := cookieNamed(w, utils.SessionCookie)
	require.NotNil(t, cookie)
	assert.True(t, cookie.HttpOnly)
	assert.Equal(t, http.SameSiteLaxMode, cookie.SameSite)
}

func TestRegisterDuplicateShowsFlash(t *testing.T) {
	app := newTestApp(t)
	app.do(formRequest("/register", "alice", "first"))

	w := app.do(formRequest("/register", "alice", "second"))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Username already exists. Please choose a different username.")
	assert.Len(t, app.users.rows, 1)
}

func TestLoginFailuresLookTheSame(t *testing.T) {
	app := newTestApp(t)
	app.do(formRequest("/register", "alice", "right"))

	wrongPassword := app.do(formRequest("/login", "alice", "wrong"))
	unknownUser := app.do(formRequest("/login", "nobody", "wrong"))

	for _, w := range []*httptest.ResponseRecorder{wrongPassword, unknownUser} {
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "Invalid username or password.")
		assert.Nil(t, cookieNamed(w, utils.SessionCookie))
	}
}

func TestLogoutKillsSession(t *testing.T) {
	app := newTestApp(t)
	cookie := app.login(t, "alice", "pw")

	req := httptest.NewRequest(http.MethodGet, "/logout", nil)
	req.AddCookie(cookie)
	w := app.do(req)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))
	assert.Equal(t, "You have been logged out.", flashOf(w))

	w = app.do(jsonRequest("/correct-text", `{"text":"hi"}`, cookie))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCorrectText(t *testing.T) {
	app := newTestApp(t)
	cookie := app.login(t, "alice", "pw")
	app.text.corrected = "<p>The cat sat.</p>"

	w := app.do(jsonRequest("/correct-text", `{"text":"Teh cat sat."}`, cookie))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"corrected_text":"<p>The cat sat.</p>"}`, w.Body.String())
}

func TestCorrectTextEmpty(t *testing.T) {
	app := newTestApp(t)
	cookie := app.login(t, "alice", "pw")

	for _, body := range []string{`{"text":""}`, `{}`, `not json`} {
		w := app.do(jsonRequest("/correct-text", body, cookie))
		assert.Equal(t, http.StatusBadRequest, w.Code, body)
		assert.JSONEq(t, `{"error":"No text provided"}`, w.Body.String(), body)
	}
	assert.Zero(t, app.text.calls)
}

func TestEvaluateText(t *testing.T) {
	app := newTestApp(t)
	cookie := app.login(t, "alice", "pw")
	app.text.feedback = `<dl><dt>Feedback</dt><dd>ok</dd></dl>`

	w := app.do(jsonRequest("/evaluate-text", `{"text":"answer","question":"why?"}`, cookie))
	assert.Equal(t, http.StatusOK, w.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, app.text.feedback, body["feedback"])
}

func TestEvaluateTextMissingField(t *testing.T) {
	app := newTestApp(t)
	cookie := app.login(t, "alice", "pw")

	w := app.do(jsonRequest("/evaluate-text", `{"text":"answer"}`, cookie))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"No text or question provided"}`, w.Body.String())
	assert.Zero(t, app.text.calls)
}

func TestEvaluateTextUpstreamError(t *testing.T) {
	app := newTestApp(t)
	cookie := app.login(t, "alice", "pw")
	app.text.err = errors.New("evaluate text: connection reset")

	w := app.do(jsonRequest("/evaluate-text", `{"text":"a","question":"q"}`, cookie))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"evaluate text: connection reset"}`, w.Body.String())
}

func TestProcessDocument(t *testing.T) {
	app := newTestApp(t)
	cookie := app.login(t, "alice", "pw")
	app.docs.out = &textract.GetDocumentTextDetectionOutput{
		JobStatus: types.JobStatusSucceeded,
		Blocks:    []types.Block{{BlockType: types.BlockTypeLine, Text: aws.String("Teh cat sat.")}},
	}

	w := app.do(jsonRequest("/process-document", `{"fileContent":"aGk=","fileName":"a.png"}`, cookie))
	assert.Equal(t, http.StatusOK, w.Code)
	var body struct {
		JobStatus string
		Blocks    []struct {
			BlockType string
			Text      string
		}
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "SUCCEEDED", body.JobStatus)
	require.Len(t, body.Blocks, 1)
	assert.Equal(t, "Teh cat sat.", body.Blocks[0].Text)
}

func TestProcessDocumentErrors(t *testing.T) {
	cases := []struct {
		err    error
		status int
		body   string
	}{
		{fmt.Errorf("%w: fileContent is not valid base64", service.ErrInvalidUpload), http.StatusBadRequest, `{"error":"invalid upload: fileContent is not valid base64"}`},
		{fmt.Errorf("upload document: %w", awsx.ErrCredentials), http.StatusInternalServerError, `{"error":"AWS credentials not found or incomplete."}`},
		{fmt.Errorf("%w: bad page", ocr.ErrJobFailed), http.StatusInternalServerError, `{"error":"Text detection job failed"}`},
		{fmt.Errorf("get job j: %w", ocr.ErrShuttingDown), http.StatusServiceUnavailable, `{"error":"server is shutting down, please retry"}`},
		{errors.New("boom"), http.StatusInternalServerError, `{"error":"boom"}`},
	}
	for _, tc := range cases {
		app := newTestApp(t)
		cookie := app.login(t, "alice", "pw")
		app.docs.err = tc.err

		w := app.do(jsonRequest("/process-document", `{"fileContent":"aGk=","fileName":"a.png"}`, cookie))
		assert.Equal(t, tc.status, w.Code, tc.err.Error())
		assert.JSONEq(t, tc.body, w.Body.String())
	}
}
