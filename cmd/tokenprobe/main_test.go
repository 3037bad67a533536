package main

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
)

func unset(t *testing.T, keys ...string) {
	t.Helper()
	for _, key := range keys {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func noDotenv(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "none.env")
}

func TestExitSuccess(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-test")
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	code := run(context.Background(), slog.New(slog.DiscardHandler), "--base-url", server.URL, "--dotenv", noDotenv(t))
	if code != 0 {
		t.Fatalf("expected exit code 0, got %d", code)
	}
}

func TestExitMissingKey(t *testing.T) {
	unset(t, "OPENAI_API_KEY")

	code := run(context.Background(), slog.New(slog.DiscardHandler), "--dotenv", noDotenv(t))
	if code != 1 {
		t.Fatalf("expected exit code 1, got %d", code)
	}
}

func TestExitHTTPError(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-test")
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":{"message":"Unsupported parameter"}}`))
	}))
	defer server.Close()

	code := run(context.Background(), slog.New(slog.DiscardHandler), "--base-url", server.URL, "--dotenv", noDotenv(t))
	if code != 2 {
		t.Fatalf("expected exit code 2, got %d", code)
	}
}

func TestExitTransportError(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-test")
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	code := run(context.Background(), slog.New(slog.DiscardHandler), "--base-url", server.URL, "--dotenv", noDotenv(t))
	if code != 3 {
		t.Fatalf("expected exit code 3, got %d", code)
	}
}
