package env

import (
	env11 "github.com/caarlos0/env/v11"
)

// Env holds the OpenAI-compatible environment configuration
type Env struct {
	OpenAIKey string `env:"OPENAI_API_KEY"`
	Model     string `env:"OPENAI_MODEL" envDefault:"gpt-5.1"`
	BaseURL   string `env:"OPENAI_BASE_URL" envDefault:"https://api.openai.com/v1"`
}

// Load reads environment variables
func Load() (*Env, error) {
	env := new(Env)
	if err := env11.Parse(env); err != nil {
		return nil, err
	}
	return env, nil
}
