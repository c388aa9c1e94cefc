package main

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/Simplici0/printgenie/internal/config"
	"github.com/Simplici0/printgenie/internal/db"
	"github.com/Simplici0/printgenie/internal/metrics"
	"github.com/Simplici0/printgenie/internal/migrations"
	"github.com/Simplici0/printgenie/internal/store"
)

const (
	testEmail    = "owner@printgenie.in"
	testPassword = "s3cret"
)

var testNow = time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC)

func newTestServer(t *testing.T) *server {
	t.Helper()

	database, err := db.Open(":memory:")
	if err != nil {
		t.Fatalf("failed to open sqlite db: %v", err)
	}
	t.Cleanup(func() { _ = database.Close() })

	if err := migrations.Up(database, zap.NewNop()); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	srv := newServer(database, config.Config{
		Environment:   "development",
		SessionSecret: "test-secret",
	}, zap.NewNop(), metrics.New())
	srv.now = func() time.Time { return testNow }
	srv.store = store.New(database, store.WithClock(srv.now))
	srv.auth.users = srv.store.Users

	if _, err := srv.store.Users.Ensure(t.Context(), testEmail, testPassword); err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return srv
}

// serve runs req through the full router, signed in unless anonymous is set.
func serve(t *testing.T, srv *server, req *http.Request, anonymous bool) *httptest.ResponseRecorder {
	t.Helper()

	if !anonymous {
		req.AddCookie(&http.Cookie{Name: sessionCookieName, Value: srv.auth.createSessionValue(testEmail)})
	}
	rr := httptest.NewRecorder()
	srv.routes().ServeHTTP(rr, req)
	return rr
}

func newJSONRequest(method, target string, body io.Reader) *http.Request {
	req := httptest.NewRequest(method, target, body)
	req.Header.Set("Content-Type", "application/json")
	return req
}
