package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/fitlog/fitlog/internal/exercise"
)

// fakeStore is an in-memory LogStore with the same observable behavior as
// the Postgres store: required/unique username constraints, lookup failures
// for unknown or malformed ids, and revision bumps on append.
type fakeStore struct {
	logs     map[string]*exercise.UserLog
	failList bool
}

func newFakeStore() *fakeStore {
	return &fakeStore{logs: make(map[string]*exercise.UserLog)}
}

func (s *fakeStore) CreateUser(ctx context.Context, username string) (*exercise.UserLog, error) {
	if username == "" {
		return nil, exercise.NewValidationError("username", "Error, username field cannot be empty!")
	}
	for _, userLog := range s.logs {
		if userLog.Username == username {
			return nil, exercise.NewDuplicateUsernameError(username, nil)
		}
	}
	userLog := &exercise.UserLog{ID: uuid.New(), Username: username, Log: []exercise.Entry{}}
	s.logs[userLog.ID.String()] = userLog
	return userLog, nil
}

func (s *fakeStore) ListUsers(ctx context.Context) ([]exercise.UserSummary, error) {
	if s.failList {
		return nil, exercise.NewStorageQueryError("list users", nil)
	}
	summaries := make([]exercise.UserSummary, 0, len(s.logs))
	for _, userLog := range s.logs {
		summaries = append(summaries, exercise.UserSummary{
			ID:       userLog.ID,
			Username: userLog.Username,
			Revision: userLog.Revision,
		})
	}
	return summaries, nil
}

func (s *fakeStore) AppendEntry(ctx context.Context, userID string, entry exercise.Entry) (*exercise.UserLog, error) {
	userLog, ok := s.logs[userID]
	if !ok {
		return nil, exercise.NewUserNotFoundError("append entry", userID)
	}
	userLog.Log = append(userLog.Log, entry)
	userLog.Revision++
	return userLog, nil
}

func (s *fakeStore) GetUserLog(ctx context.Context, userID string) (*exercise.UserLog, error) {
	userLog, ok := s.logs[userID]
	if !ok {
		return nil, exercise.NewUserNotFoundError("get user log", userID)
	}
	return userLog, nil
}

func newTestRouter(store exercise.LogStore) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	NewHandlers(exercise.NewLogService(store), zap.NewNop()).Register(router)
	return router
}

func postForm(router *gin.Engine, path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

func postJSON(router *gin.Engine, path string, body any) *httptest.ResponseRecorder {
	payload, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(string(payload)))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

func get(router *gin.Engine, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

func TestCreateUser(t *testing.T) {
	router := newTestRouter(newFakeStore())

	rr := postForm(router, "/api/exercise/new-user", url.Values{"username": {"alice"}})
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

	var resp struct {
		Username string `json:"username"`
		ID       string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "alice", resp.Username)

	_, err := uuid.Parse(resp.ID)
	assert.NoError(t, err, "id must be an opaque parseable identifier")
}

func TestCreateUserDuplicate(t *testing.T) {
	router := newTestRouter(newFakeStore())

	rr := postForm(router, "/api/exercise/new-user", url.Values{"username": {"alice"}})
	require.Equal(t, http.StatusCreated, rr.Code)

	rr = postForm(router, "/api/exercise/new-user", url.Values{"username": {"alice"}})
	assert.Equal(t, http.StatusConflict, rr.Code)
	assert.Equal(t, "Error! Username already exists.", rr.Body.String())
	assert.Contains(t, rr.Header().Get("Content-Type"), "text/plain")
}

func TestCreateUserMissingUsername(t *testing.T) {
	router := newTestRouter(newFakeStore())

	rr := postForm(router, "/api/exercise/new-user", url.Values{})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "Error, username field cannot be empty!", rr.Body.String())
}

func TestListUsers(t *testing.T) {
	store := newFakeStore()
	_, err := store.CreateUser(context.Background(), "alice")
	require.NoError(t, err)
	_, err = store.CreateUser(context.Background(), "bob")
	require.NoError(t, err)

	router := newTestRouter(store)

	rr := get(router, "/api/exercise/users")
	require.Equal(t, http.StatusOK, rr.Code)

	var users []map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &users))
	require.Len(t, users, 2)
	for _, user := range users {
		assert.Contains(t, user, "id")
		assert.Contains(t, user, "username")
		assert.Contains(t, user, "revision")
		assert.NotContains(t, user, "log", "listing must exclude log entries")
	}
}

func TestListUsersFailureReturnsImmediately(t *testing.T) {
	store := newFakeStore()
	store.failList = true
	router := newTestRouter(store)

	rr := get(router, "/api/exercise/users")
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	// the failure text is the whole body; nothing is serialized after it
	assert.Equal(t, "Something went wrong, please try again later.", rr.Body.String())
}

func TestAddExerciseValidationMessages(t *testing.T) {
	store := newFakeStore()
	userLog, err := store.CreateUser(context.Background(), "alice")
	require.NoError(t, err)
	router := newTestRouter(store)

	cases := []struct {
		name string
		body map[string]string
		want string
	}{
		{
			name: "missing userId",
			body: map[string]string{"description": "run", "duration": "45"},
			want: "Error, userId field cannot be empty!",
		},
		{
			name: "missing description",
			body: map[string]string{"userId": userLog.ID.String(), "duration": "45"},
			want: "Error, description field cannot be empty!",
		},
		{
			name: "missing duration",
			body: map[string]string{"userId": userLog.ID.String(), "description": "run"},
			want: "Error, duration field cannot be empty!",
		},
		{
			name: "fractional duration",
			body: map[string]string{"userId": userLog.ID.String(), "description": "run", "duration": "45.5"},
			want: "Error, duration must be an integer!",
		},
		{
			name: "malformed date",
			body: map[string]string{"userId": userLog.ID.String(), "description": "run", "duration": "45", "date": "12/13/1990"},
			want: "Error, invalid date provided!",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rr := postJSON(router, "/api/exercise/add", tc.body)
			assert.Equal(t, http.StatusBadRequest, rr.Code)
			assert.Equal(t, tc.want, rr.Body.String())
		})
	}
}

func TestAddExercise(t *testing.T) {
	store := newFakeStore()
	userLog, err := store.CreateUser(context.Background(), "alice")
	require.NoError(t, err)
	router := newTestRouter(store)

	rr := postJSON(router, "/api/exercise/add", map[string]string{
		"userId":      userLog.ID.String(),
		"description": "morning run",
		"duration":    "45",
		"date":        "1990-12-13",
	})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var resp exercise.UserLog
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "alice", resp.Username)
	assert.Equal(t, 1, resp.Revision)
	require.Len(t, resp.Log, 1)
	assert.Equal(t, "morning run", resp.Log[0].Description)
	assert.Equal(t, 45, resp.Log[0].Duration)
}

func TestAddExerciseUnknownUser(t *testing.T) {
	router := newTestRouter(newFakeStore())

	rr := postJSON(router, "/api/exercise/add", map[string]string{
		"userId":      uuid.New().String(),
		"description": "run",
		"duration":    "45",
	})
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, "Error! Something has gone wrong", rr.Body.String())
}

func TestFetchLog(t *testing.T) {
	store := newFakeStore()
	userLog, err := store.CreateUser(context.Background(), "alice")
	require.NoError(t, err)
	router := newTestRouter(store)

	for _, day := range []string{"2020-01-01", "2020-01-02", "2020-01-03"} {
		rr := postJSON(router, "/api/exercise/add", map[string]string{
			"userId":      userLog.ID.String(),
			"description": "run " + day,
			"duration":    "30",
			"date":        day,
		})
		require.Equal(t, http.StatusOK, rr.Code)
	}

	rr := get(router, "/api/exercise/log?userId="+userLog.ID.String())
	require.Equal(t, http.StatusOK, rr.Code)

	var result exercise.LogResult
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &result))
	assert.Equal(t, "alice", result.Username)
	assert.Equal(t, 3, result.Count)
	require.Len(t, result.Log, 3)
	assert.Equal(t, "Wed Jan 1 2020", result.Log[0].Date)

	// range plus limit restricts both entries and count
	rr = get(router, "/api/exercise/log?userId="+userLog.ID.String()+"&from=2020-01-02&limit=1")
	require.Equal(t, http.StatusOK, rr.Code)
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &result))
	assert.Equal(t, 1, result.Count)
	require.Len(t, result.Log, 1)
	assert.Equal(t, "run 2020-01-02", result.Log[0].Description)
}

func TestFetchLogErrors(t *testing.T) {
	store := newFakeStore()
	userLog, err := store.CreateUser(context.Background(), "alice")
	require.NoError(t, err)
	router := newTestRouter(store)

	cases := []struct {
		name       string
		path       string
		wantStatus int
		wantBody   string
	}{
		{
			name:       "missing userId",
			path:       "/api/exercise/log",
			wantStatus: http.StatusBadRequest,
			wantBody:   "Error! User id not provided!",
		},
		{
			name:       "invalid from",
			path:       "/api/exercise/log?userId=" + userLog.ID.String() + "&from=2020-1-1",
			wantStatus: http.StatusBadRequest,
			wantBody:   "Error! Invalid from date provided!",
		},
		{
			name:       "invalid to",
			path:       "/api/exercise/log?userId=" + userLog.ID.String() + "&to=yesterday",
			wantStatus: http.StatusBadRequest,
			wantBody:   "Error! Invalid to date provided!",
		},
		{
			name:       "from after to",
			path:       "/api/exercise/log?userId=" + userLog.ID.String() + "&from=2020-02-01&to=2020-01-01",
			wantStatus: http.StatusBadRequest,
			wantBody:   "Error! From date cannot be after To date!",
		},
		{
			name:       "invalid limit",
			path:       "/api/exercise/log?userId=" + userLog.ID.String() + "&limit=2.5",
			wantStatus: http.StatusBadRequest,
			wantBody:   "Error! Invalid limit provided!",
		},
		{
			name:       "unknown user",
			path:       "/api/exercise/log?userId=" + uuid.New().String(),
			wantStatus: http.StatusNotFound,
			wantBody:   "Error! Something has gone wrong",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rr := get(router, tc.path)
			assert.Equal(t, tc.wantStatus, rr.Code)
			assert.Equal(t, tc.wantBody, rr.Body.String())
		})
	}
}

func TestUnmatchedRoute(t *testing.T) {
	router := newTestRouter(newFakeStore())

	rr := get(router, "/api/exercise/nope")
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, "not found", rr.Body.String())
}
