package request_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"shareit/internal/database"
	"shareit/internal/database/dbtest"
	"shareit/internal/domain"
	"shareit/internal/middleware"
	"shareit/internal/modules/request"
	"shareit/internal/repository"
)

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   struct {
		Code string `json:"code"`
	} `json:"error"`
}

func setupTestRouter(t *testing.T) (*gin.Engine, *gorm.DB, *time.Time) {
	gin.SetMode(gin.TestMode)
	db := dbtest.Open(t)
	clock := time.Date(2030, 3, 1, 9, 0, 0, 0, time.UTC)
	svc := request.NewService(
		repository.NewRequestRepository(db),
		repository.NewItemRepository(db),
		repository.NewUserRepository(db),
		database.NewTxManager(db),
	).WithClock(func() time.Time { return clock })

	r := gin.New()
	request.NewHandler(svc).RegisterRoutes(r.Group(""))
	return r, db, &clock
}

func doJSONRequest(t *testing.T, r http.Handler, method, path string, userID int64, body any) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(middleware.HeaderUserID, strconv.FormatInt(userID, 10))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return w, env
}

func seedUser(t *testing.T, db *gorm.DB, name string) *domain.User {
	u := &domain.User{Name: name, Email: name + "@example.com"}
	require.NoError(t, repository.NewUserRepository(db).Create(context.Background(), u))
	return u
}

func TestRequestHandler_Flow(t *testing.T) {
	r, db, clock := setupTestRouter(t)
	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")

	w, env := doJSONRequest(t, r, http.MethodPost, "/requests", alice.ID, gin.H{"description": "Need a ladder"})
	require.Equal(t, http.StatusCreated, w.Code)
	var first request.RequestResponse
	require.NoError(t, json.Unmarshal(env.Data, &first))
	assert.True(t, clock.Equal(first.Created))
	assert.Empty(t, first.Items)

	*clock = clock.Add(time.Hour)
	_, env = doJSONRequest(t, r, http.MethodPost, "/requests", alice.ID, gin.H{"description": "Need a tent"})
	var second request.RequestResponse
	require.NoError(t, json.Unmarshal(env.Data, &second))

	answer := &domain.Item{Name: "Ladder", Description: "3m", Available: true, OwnerID: bob.ID, RequestID: &first.ID}
	require.NoError(t, repository.NewItemRepository(db).Create(context.Background(), answer))

	w, env = doJSONRequest(t, r, http.MethodGet, "/requests", alice.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var mine []request.RequestResponse
	require.NoError(t, json.Unmarshal(env.Data, &mine))
	require.Len(t, mine, 2)
	assert.Equal(t, second.ID, mine[0].ID)
	assert.Equal(t, first.ID, mine[1].ID)
	require.Len(t, mine[1].Items, 1)
	assert.Equal(t, answer.ID, mine[1].Items[0].ID)

	_, env = doJSONRequest(t, r, http.MethodGet, "/requests/all?from=0&size=1", bob.ID, nil)
	var others []request.RequestResponse
	require.NoError(t, json.Unmarshal(env.Data, &others))
	require.Len(t, others, 1)
	assert.Equal(t, second.ID, others[0].ID)

	// from=1 with size=1 is the second page
	_, env = doJSONRequest(t, r, http.MethodGet, "/requests/all?from=1&size=1", bob.ID, nil)
	others = nil
	require.NoError(t, json.Unmarshal(env.Data, &others))
	require.Len(t, others, 1)
	assert.Equal(t, first.ID, others[0].ID)

	_, env = doJSONRequest(t, r, http.MethodGet, "/requests/all", alice.ID, nil)
	assert.JSONEq(t, `[]`, string(env.Data))

	w, env = doJSONRequest(t, r, http.MethodGet, "/requests/"+strconv.FormatInt(first.ID, 10), bob.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var got request.RequestResponse
	require.NoError(t, json.Unmarshal(env.Data, &got))
	assert.Equal(t, "Need a ladder", got.Description)
}

func TestRequestHandler_Errors(t *testing.T) {
	r, db, _ := setupTestRouter(t)
	alice := seedUser(t, db, "alice")

	w, _ := doJSONRequest(t, r, http.MethodPost, "/requests", 999, gin.H{"description": "x"})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, _ = doJSONRequest(t, r, http.MethodPost, "/requests", alice.ID, gin.H{"description": ""})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, env := doJSONRequest(t, r, http.MethodGet, "/requests/42", alice.ID, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "NOT_FOUND", env.Error.Code)

	w, _ = doJSONRequest(t, r, http.MethodGet, "/requests", 999, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, _ = doJSONRequest(t, r, http.MethodGet, "/requests/all?from=-1", alice.ID, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
