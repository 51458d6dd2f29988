package users

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codeberg.org/quickai/server/internal/auth"
	"codeberg.org/quickai/server/internal/usage"
	"codeberg.org/quickai/server/quickai/creations"
)

const creationID = "3f2b8c1e-8d4a-4f7e-9d2c-1a2b3c4d5e6f"

type fakeCreations struct {
	items []creations.Creation
	total int
	err   error

	liked   bool
	likeErr error

	gotUser   string
	gotLimit  int
	gotOffset int
}

func (f *fakeCreations) ListByUser(_ context.Context, userID string, limit, offset int) ([]creations.Creation, int, error) {
	f.gotUser, f.gotLimit, f.gotOffset = userID, limit, offset
	return f.items, f.total, f.err
}

func (f *fakeCreations) ListPublished(_ context.Context, limit, offset int) ([]creations.Creation, int, error) {
	f.gotLimit, f.gotOffset = limit, offset
	return f.items, f.total, f.err
}

func (f *fakeCreations) ToggleLike(_ context.Context, _, userID string) (bool, error) {
	f.gotUser = userID
	return f.liked, f.likeErr
}

type fixture struct {
	router *gin.Engine
	token  string
	store  *usage.RedisStore
}

func newFixture(t *testing.T, repo CreationRepository) *fixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	mr := miniredis.RunT(t)
	store := usage.NewRedisStore(redis.NewClient(&redis.Options{Addr: mr.Addr()}))

	issuer, err := auth.NewTokenIssuer("secret")
	require.NoError(t, err)

	token, err := issuer.Generate("u1", "ada@example.com", false)
	require.NoError(t, err)

	r := gin.New()
	RegisterRoutes(r.Group("/api/v1"), repo, issuer, usage.NewGate(store, usage.WithFreeLimit(10)))

	return &fixture{router: r, token: token, store: store}
}

func (f *fixture) do(method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, http.NoBody)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Authorization", "Bearer "+f.token)

	rr := httptest.NewRecorder()
	f.router.ServeHTTP(rr, req)
	return rr
}

func TestListUserCreations(t *testing.T) {
	repo := &fakeCreations{
		items: []creations.Creation{{ID: creationID, UserID: "u1", Type: creations.TypeArticle, Content: "# Go"}},
		total: 1,
	}
	f := newFixture(t, repo)

	rr := f.do(http.MethodGet, "/api/v1/user/get-user-creations?limit=5&offset=0", "")
	require.Equal(t, http.StatusOK, rr.Code)

	var resp CreationsResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))

	assert.True(t, resp.Success)
	assert.Len(t, resp.Creations, 1)
	assert.Equal(t, 1, resp.Pagination.Total)
	assert.Equal(t, "u1", repo.gotUser)
	assert.Equal(t, 5, repo.gotLimit)
}

func TestListUserCreations_ClampsLimit(t *testing.T) {
	repo := &fakeCreations{}
	f := newFixture(t, repo)

	rr := f.do(http.MethodGet, "/api/v1/user/get-user-creations?limit=5000", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, maxPageSize, repo.gotLimit)
}

func TestListUserCreations_Unauthenticated(t *testing.T) {
	f := newFixture(t, &fakeCreations{})
	f.token = ""

	rr := f.do(http.MethodGet, "/api/v1/user/get-user-creations", "")
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestListPublishedCreations(t *testing.T) {
	repo := &fakeCreations{items: []creations.Creation{{ID: creationID, Publish: true}}, total: 1}
	f := newFixture(t, repo)

	rr := f.do(http.MethodGet, "/api/v1/user/get-published-creations", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, defaultPageSize, repo.gotLimit)
	assert.Contains(t, rr.Body.String(), creationID)
}

func TestListPublishedCreations_StoreError(t *testing.T) {
	f := newFixture(t, &fakeCreations{err: errors.New("connection refused")})

	rr := f.do(http.MethodGet, "/api/v1/user/get-published-creations", "")
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.JSONEq(t, `{"success":false,"message":"Failed to load creations"}`, rr.Body.String())
}

func TestToggleLike(t *testing.T) {
	tests := []struct {
		name    string
		repo    *fakeCreations
		body    string
		status  int
		wantMsg string
		success bool
	}{
		{"liked", &fakeCreations{liked: true}, `{"id":"` + creationID + `"}`, http.StatusOK, "Creation Liked", true},
		{"unliked", &fakeCreations{liked: false}, `{"id":"` + creationID + `"}`, http.StatusOK, "Creation Unliked", true},
		{"not found", &fakeCreations{likeErr: creations.ErrCreationNotFound}, `{"id":"` + creationID + `"}`, http.StatusOK, "Creation not found", false},
		{"malformed id", &fakeCreations{}, `{"id":"nope"}`, http.StatusOK, "Creation not found", false},
		{"store error", &fakeCreations{likeErr: errors.New("boom")}, `{"id":"` + creationID + `"}`, http.StatusInternalServerError, "Failed to update like", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, tt.repo)

			rr := f.do(http.MethodPost, "/api/v1/user/toggle-like-creation", tt.body)
			require.Equal(t, tt.status, rr.Code)

			var resp map[string]any
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
			assert.Equal(t, tt.success, resp["success"])
			assert.Equal(t, tt.wantMsg, resp["message"])
		})
	}
}

func TestToggleLike_MissingID(t *testing.T) {
	f := newFixture(t, &fakeCreations{})

	rr := f.do(http.MethodPost, "/api/v1/user/toggle-like-creation", `{}`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.JSONEq(t, `{"success":false,"message":"Creation id is required"}`, rr.Body.String())
}

func TestGetUsage(t *testing.T) {
	f := newFixture(t, &fakeCreations{})

	for range 3 {
		_, err := f.store.IncrementFreeUsage(context.Background(), "u1")
		require.NoError(t, err)
	}

	rr := f.do(http.MethodGet, "/api/v1/user/usage", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"plan":"free","free_usage":3,"limit":10,"remaining":7}`, rr.Body.String())

	require.NoError(t, f.store.SetPlan(context.Background(), "u1", usage.PlanPremium))

	rr = f.do(http.MethodGet, "/api/v1/user/usage", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"plan":"premium","free_usage":3,"limit":-1,"remaining":-1}`, rr.Body.String())
}
