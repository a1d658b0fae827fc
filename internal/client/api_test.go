package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devconnector/devconnector-go/internal/crypto"
	"github.com/devconnector/devconnector-go/internal/handler"
	"github.com/devconnector/devconnector-go/internal/middleware"
	"github.com/devconnector/devconnector-go/internal/model"
	"github.com/devconnector/devconnector-go/internal/repository"
	"github.com/devconnector/devconnector-go/internal/service"
)

// testTimeout covers bcrypt hashing under -race.
const testTimeout = 30 * time.Second

// newServer runs the real API over an in-memory store.
func newServer(t *testing.T) *httptest.Server {
	t.Helper()

	tokens, err := crypto.NewTokenIssuer("client-test-secret", time.Hour)
	require.NoError(t, err)

	store := repository.NewMemoryStore()
	srv := httptest.NewServer(handler.NewRouter(handler.Deps{
		Auth:     service.NewAuthService(store.Users(), tokens),
		Profiles: service.NewProfileService(store.Profiles(), store.Accounts(), stubRepos{}),
		Posts:    service.NewPostService(store.Posts(), store.Users()),
		Tokens:   tokens,
		Logger:   zerolog.Nop(),
	}))
	t.Cleanup(srv.Close)
	return srv
}

type stubRepos struct{}

func (stubRepos) Repos(_ context.Context, username string) (json.RawMessage, error) {
	return json.RawMessage(`[{"id":7,"name":"` + username + `-repo"}]`), nil
}

func TestAPIAuth(t *testing.T) {
	srv := newServer(t)
	api := NewAPI(srv.URL+"/", testTimeout)
	ctx := context.Background()

	token, err := api.Register(ctx, model.RegisterRequest{Name: "Ada", Email: "ada@example.com", Password: "secret123"})
	require.NoError(t, err)
	require.NotEmpty(t, token)

	_, err = api.Me(ctx)
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.Status)
	assert.Equal(t, []string{"no token, authorization denied"}, apiErr.Messages)

	api.SetToken(token)
	me, err := api.Me(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Ada", me.Name)
}

func TestAPIValidationError(t *testing.T) {
	srv := newServer(t)
	api := NewAPI(srv.URL, testTimeout)

	_, err := api.Register(context.Background(), model.RegisterRequest{Email: "bad"})

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
	assert.Equal(t, "Bad Request", apiErr.StatusText())
	assert.Len(t, apiErr.Messages, 3)
	assert.Contains(t, apiErr.Error(), "name is required")
}

func TestAPISendsTokenHeader(t *testing.T) {
	var got string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Get(middleware.TokenHeader)
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	api := NewAPI(srv.URL, testTimeout)
	api.SetToken("abc")
	posts, err := api.Posts(context.Background())
	require.NoError(t, err)
	assert.Empty(t, posts)
	assert.Equal(t, "abc", got)
}

func TestAPIErrorWithoutBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	err := NewAPI(srv.URL, testTimeout).DeletePost(context.Background(), "x")

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadGateway, apiErr.Status)
	assert.Empty(t, apiErr.Messages)
	assert.Equal(t, "api: 502 Bad Gateway", apiErr.Error())
}

func TestFileTokenStore(t *testing.T) {
	store := NewFileTokenStore(t.TempDir() + "/nested/token")

	token, err := store.Load()
	require.NoError(t, err)
	assert.Empty(t, token)

	require.NoError(t, store.Save("tok"))
	token, err = store.Load()
	require.NoError(t, err)
	assert.Equal(t, "tok", token)

	require.NoError(t, store.Clear())
	require.NoError(t, store.Clear())
	token, err = store.Load()
	require.NoError(t, err)
	assert.Empty(t, token)
}
