package env_test

import (
	"os"
	"testing"

	"github.com/matryer/is"
	"github.com/matthewmueller/tokenprobe/internal/env"
)

func unset(t *testing.T, keys ...string) {
	t.Helper()
	for _, key := range keys {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestDefaults(t *testing.T) {
	is := is.New(t)
	unset(t, "OPENAI_API_KEY", "OPENAI_MODEL", "OPENAI_BASE_URL")

	e, err := env.Load()
	is.NoErr(err)
	is.Equal(e.OpenAIKey, "")
	is.Equal(e.Model, "gpt-5.1")
	is.Equal(e.BaseURL, "https://api.openai.com/v1")
}

func TestOverrides(t *testing.T) {
	is := is.New(t)
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("OPENAI_MODEL", "gpt-5-mini")
	t.Setenv("OPENAI_BASE_URL", "http://localhost:8080/v1")

	e, err := env.Load()
	is.NoErr(err)
	is.Equal(e.OpenAIKey, "sk-test")
	is.Equal(e.Model, "gpt-5-mini")
	is.Equal(e.BaseURL, "http://localhost:8080/v1")
}
