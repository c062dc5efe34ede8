package app

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/odyssey-erp/cadastro/internal/cep"
	"github.com/odyssey-erp/cadastro/internal/observability"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("PG_DSN", "postgres://u:p@db:5432/cadastro")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.AppAddr)
	assert.Equal(t, 30*time.Second, cfg.AppWriteTimeout)
	assert.Equal(t, 5*time.Second, cfg.CEPTimeout)
	assert.Equal(t, "http://cep.la", cfg.CEPPrimaryURL)
	assert.Equal(t, "https://viacep.com.br/ws", cfg.CEPFallbackURL)
	assert.Equal(t, []string{"http://localhost:4200"}, cfg.CORSAllowedOrigins)
	assert.Equal(t, 120, cfg.RateLimitPerMinute)
	assert.True(t, cfg.MigrateOnStart)
	assert.False(t, cfg.IsProduction())
}

func TestLoadConfig_Overrides(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example,https://b.example")
	t.Setenv("CEP_TIMEOUT", "2s")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.True(t, cfg.IsProduction())
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSAllowedOrigins)
	assert.Equal(t, 2*time.Second, cfg.CEPTimeout)
}

func TestLoadConfig_RejectsNonPositiveTimeout(t *testing.T) {
	t.Setenv("CEP_TIMEOUT", "0s")

	_, err := LoadConfig()
	assert.Error(t, err)
}

type stubResolver struct{}

func (stubResolver) Resolve(ctx context.Context, raw string) cep.Result {
	return cep.Result{CEP: raw, UF: "SP", Cidade: "São Paulo", Valido: true}
}

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	cfg := &Config{AppEnv: "test", AppRequestTimeout: time.Second, RateLimitPerMinute: 1000, CORSAllowedOrigins: []string{"http://localhost:4200"}}
	return NewRouter(RouterParams{
		Logger:     NewLogger(cfg),
		Config:     cfg,
		Metrics:    observability.NewMetrics(),
		CEPHandler: cep.NewHandler(nil, stubResolver{}),
	})
}

func TestRouter_Healthz(t *testing.T) {
	rec := httptest.NewRecorder()
	newTestRouter(t).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
	assert.NotEmpty(t, rec.Header().Get("X-Frame-Options"))
}

func TestRouter_CEPRoute(t *testing.T) {
	rec := httptest.NewRecorder()
	newTestRouter(t).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/cep/01001000", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"valido":true`)
}

func TestRouter_CORSPreflight(t *testing.T) {
	req := httptest.NewRequest(http.MethodOptions, "/cep/01001000", nil)
	req.Header.Set("Origin", "http://localhost:4200")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	rec := httptest.NewRecorder()
	newTestRouter(t).ServeHTTP(rec, req)

	assert.Equal(t, "http://localhost:4200", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestRouter_CORSRejectsUnknownOrigin(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set("Origin", "https://evil.example")
	rec := httptest.NewRecorder()
	newTestRouter(t).ServeHTTP(rec, req)

	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestRouter_Metrics(t *testing.T) {
	router := newTestRouter(t)
	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/healthz", nil))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "cadastro_http_requests_total")
}

func TestNewCEPResolver_InvalidFormatNeedsNoNetwork(t *testing.T) {
	cfg := &Config{CEPTimeout: time.Second, CEPPrimaryURL: "http://127.0.0.1:0", CEPFallbackURL: "http://127.0.0.1:0"}
	res := NewCEPResolver(cfg, nil, nil).Resolve(context.Background(), "12-34")

	assert.False(t, res.Valido)
	assert.Equal(t, cep.MsgInvalidFormat, res.Mensagem)
}

func TestNewLogger_FormatAndLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, &Config{AppEnv: "staging", LogFormat: "json", LogLevel: "warn"})

	logger.Info("hidden")
	logger.Warn("shown", slog.String("cep", "80000000"))

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, `"msg":"shown"`)
	assert.Contains(t, out, `"env":"staging"`)
	assert.Contains(t, out, `"cep":"80000000"`)
}

func TestInTestMode(t *testing.T) {
	t.Setenv(testModeEnv, "1")
	RefreshTestMode()
	assert.True(t, InTestMode())

	t.Setenv(testModeEnv, "0")
	RefreshTestMode()
	assert.False(t, InTestMode())
}
