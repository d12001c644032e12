package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gitlab.com/pagetest.net/internal/adapter/crypto"
	"gitlab.com/pagetest.net/internal/adapter/filestore"
	"gitlab.com/pagetest.net/internal/adapter/logging"
	"gitlab.com/pagetest.net/internal/adapter/memory"
	"gitlab.com/pagetest.net/internal/config"
	"gitlab.com/pagetest.net/internal/core/ports/secondary/mocks"
	"gitlab.com/pagetest.net/internal/core/services/synth"
	"gitlab.com/pagetest.net/internal/core/services/testgen"
)

func newTestServer(t *testing.T, guarded bool) (*Server, *crypto.TokenServiceImpl) {
	t.Helper()
	logger := logging.NewNopLogger()
	store, err := filestore.New(t.TempDir(), ".spec.js", logger)
	require.NoError(t, err)

	svc := testgen.NewTestGenService(testgen.Dependencies{
		Store:       store,
		Catalog:     memory.NewCatalog(),
		Renderer:    mocks.NewMockRenderer(t),
		Synthesizer: synth.NewSynthesizer(mocks.NewMockModelProvider(t), &config.ModelConfig{}, logger),
		Runner:      mocks.NewMockTestRunner(t),
		Runs:        memory.NewRunRepository(0),
		Locker:      memory.Locker{},
	}, logger)
	tokens := crypto.NewTokenService(&config.JwtConfig{Secret: "s3cret", Method: "HS256"})

	s := NewServer(&config.ServerConfig{Port: 0, ServiceName: "pagetest"}, *NewServiceProvider(svc, tokens, guarded), logger)
	require.NoError(t, s.Init())
	return s, tokens
}

func TestServer_Routes(t *testing.T) {
	s, _ := newTestServer(t, false)

	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/artifacts", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Contains(t, body, "artifacts")

	rec = httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/nope", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestServer_GuardedAPI(t *testing.T) {
	s, tokens := newTestServer(t, true)

	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/artifacts", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	tok, err := tokens.GenerateTokenHMAC(context.Background(), "", "ops", time.Hour)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodGet, "/api/artifacts", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	rec = httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestServer_StartStop(t *testing.T) {
	s, _ := newTestServer(t, false)
	require.NoError(t, s.Start(context.Background()))

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	assert.NoError(t, s.Stop(ctx))
}
