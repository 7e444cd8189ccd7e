// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package api_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/promptdb/internal/api"
	"github.com/taibuivan/promptdb/internal/catalog"
	"github.com/taibuivan/promptdb/internal/core/category"
	"github.com/taibuivan/promptdb/internal/core/prompt"
	"github.com/taibuivan/promptdb/internal/core/tag"
	"github.com/taibuivan/promptdb/internal/platform/config"
	"github.com/taibuivan/promptdb/internal/platform/lock"
	"github.com/taibuivan/promptdb/internal/platform/testdb"
)

func testConfig() *config.Config {
	return &config.Config{
		ServerPort:     "0",
		Environment:    "development",
		DatabaseDriver: config.DriverSQLite,
		ImportLockTTL:  time.Minute,
		MaxImportBytes: 1 << 20,
		RateLimitRPS:   1000,
		RateLimitBurst: 1000,
	}
}

func newRouter(t *testing.T, cfg *config.Config) http.Handler {
	t.Helper()

	db := testdb.SQLite(t)
	logger := testdb.Logger()

	c := catalog.New(catalog.Repositories{
		Categories: category.NewSQLiteRepository(db),
		Tags:       tag.NewSQLiteRepository(db),
		Prompts:    prompt.NewSQLiteRepository(db),
	}, lock.NewLocal(), cfg, logger)
	c.PingDatabase = db.PingContext

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	return api.NewServer(ctx, cfg, logger, api.NewHandlers(c, cfg, logger)).Handler()
}

func serve(t *testing.T, handler http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(method, target, strings.NewReader(body))
	request.RemoteAddr = "192.0.2.1:1234"
	handler.ServeHTTP(recorder, request)
	return recorder
}

/*
TestServer_Routes mounts every resource under /api.
*/
func TestServer_Routes(t *testing.T) {
	router := newRouter(t, testConfig())

	for _, path := range []string{"/api/prompts", "/api/categories", "/api/categories/tree", "/api/tags", "/api/export/prompts"} {
		t.Run(strings.TrimPrefix(path, "/api/"), func(t *testing.T) {
			response := serve(t, router, http.MethodGet, path, "")
			assert.Equal(t, http.StatusOK, response.Code, response.Body.String())
			assert.NotEmpty(t, response.Header().Get("X-Request-ID"))
		})
	}

	response := serve(t, router, http.MethodGet, "/api/unknown", "")
	assert.Equal(t, http.StatusNotFound, response.Code)
}

/*
TestServer_ImportThenList runs an import and reads it back through the API.
*/
func TestServer_ImportThenList(t *testing.T) {
	router := newRouter(t, testConfig())

	imported := serve(t, router, http.MethodPost, "/api/import/prompts", `{
		"categories": [{"name": "Coding", "slug": "coding"}],
		"tags": [{"name": "Go", "slug": "go"}],
		"prompts": [{"title": "Review", "body": "b", "type": "USER", "platform": "CURSOR", "useCase": "review", "category": "Coding", "tags": ["Go"]}]
	}`)
	require.Equal(t, http.StatusOK, imported.Code, imported.Body.String())

	list := serve(t, router, http.MethodGet, "/api/prompts?platform=CURSOR", "")
	require.Equal(t, http.StatusOK, list.Code)
	assert.Contains(t, list.Body.String(), `"total":1`)
	assert.Contains(t, list.Body.String(), `"slug":"coding"`)
}

/*
TestServer_RateLimit rejects requests over the burst with 429.
*/
func TestServer_RateLimit(t *testing.T) {
	cfg := testConfig()
	cfg.RateLimitRPS = 0.001
	cfg.RateLimitBurst = 1
	router := newRouter(t, cfg)

	assert.Equal(t, http.StatusOK, serve(t, router, http.MethodGet, "/api/tags", "").Code)
	assert.Equal(t, http.StatusTooManyRequests, serve(t, router, http.MethodGet, "/api/tags", "").Code)

	// Probes are outside the limiter.
	assert.Equal(t, http.StatusOK, serve(t, router, http.MethodGet, "/health", "").Code)
}

/*
TestHealth reports each dependency and turns 503 when one fails.
*/
func TestHealth(t *testing.T) {
	logger := testdb.Logger()

	liveness, readiness := api.NewHealthHandlers(api.HealthDependencies{
		CheckDatabase: func(context.Context) error { return nil },
	}, logger)

	response := serve(t, liveness, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, response.Code)
	assert.JSONEq(t, `{"status":"ok"}`, response.Body.String())

	response = serve(t, readiness, http.MethodGet, "/ready", "")
	assert.Equal(t, http.StatusOK, response.Code)
	assert.JSONEq(t, `{"status":"ready","checks":[{"name":"database","ok":true}]}`, response.Body.String())

	_, readiness = api.NewHealthHandlers(api.HealthDependencies{
		CheckDatabase: func(context.Context) error { return nil },
		CheckCache:    func(context.Context) error { return errors.New("redis: ping failed") },
	}, logger)

	response = serve(t, readiness, http.MethodGet, "/ready", "")
	assert.Equal(t, http.StatusServiceUnavailable, response.Code)
	assert.Contains(t, response.Body.String(), `"status":"degraded"`)
	assert.Contains(t, response.Body.String(), `"error":"redis: ping failed"`)
}
