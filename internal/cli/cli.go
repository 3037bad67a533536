package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/livebud/cli"
	"github.com/livebud/color"
	"github.com/matthewmueller/tokenprobe"
	"github.com/matthewmueller/tokenprobe/internal/dotenv"
	"github.com/matthewmueller/tokenprobe/internal/env"
)

func New(log *slog.Logger) *CLI {
	return &CLI{
		log:    log,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}
}

type CLI struct {
	log    *slog.Logger
	Stdout io.Writer
	Stderr io.Writer
}

func (c *CLI) Parse(ctx context.Context, args ...string) error {
	cmd := &Probe{}
	cli := cli.New("tokenprobe", "probe how a provider's API responds to a model and token-limit combination")
	cli.Flag("endpoint", "API endpoint to target").Enum(&cmd.Endpoint, "responses", "chat").Default("responses")
	cli.Flag("model", "model to send").Short('m').Optional().String(&cmd.Model)
	cli.Flag("base-url", "API root, trailing slash tolerated").Optional().String(&cmd.BaseURL)
	cli.Flag("max-tokens", "token limit, mapped to the parameter the endpoint expects").Int(&cmd.MaxTokens).Default(150)
	cli.Flag("input", "user-turn text").String(&cmd.Input).Default("Summarize this in one sentence.")
	cli.Flag("instructions", "system/instructions text").String(&cmd.Instructions).Default("You are a concise assistant.")
	cli.Flag("dotenv", "env file to load before resolving defaults (can be repeated)").Optional().Strings(&cmd.Dotenv)
	cli.Run(func(ctx context.Context) error {
		return c.Probe(ctx, cmd)
	})

	return cli.Parse(ctx, args...)
}

type Probe struct {
	Endpoint     string
	Model        *string
	BaseURL      *string
	MaxTokens    int
	Input        string
	Instructions string
	Dotenv       []string
}

// Probe sends one request and prints the raw response
func (c *CLI) Probe(ctx context.Context, in *Probe) error {
	paths := in.Dotenv
	if len(paths) == 0 {
		paths = []string{".env.local", filepath.Join("worker", ".env.local")}
	}
	if err := dotenv.Load(paths...); err != nil {
		return fmt.Errorf("cli: %w", err)
	}

	env, err := env.Load()
	if err != nil {
		return fmt.Errorf("cli: unable to load env: %w", err)
	}

	// Fail before any network activity when there's no key to send
	if env.OpenAIKey == "" {
		return tokenprobe.ErrMissingAPIKey
	}

	req := &tokenprobe.Request{
		Endpoint:     tokenprobe.Endpoint(in.Endpoint),
		Model:        env.Model,
		BaseURL:      env.BaseURL,
		MaxTokens:    in.MaxTokens,
		Input:        in.Input,
		Instructions: in.Instructions,
	}
	if in.Model != nil {
		req.Model = *in.Model
	}
	if in.BaseURL != nil {
		req.BaseURL = *in.BaseURL
	}

	// Log the endpoint and model we're probing
	fmt.Fprintln(c.Stderr, color.Dim(in.Endpoint+" "+req.Model))

	client := tokenprobe.New(c.log, env.OpenAIKey)
	res, err := client.Send(ctx, req)
	if err != nil {
		return err
	}

	// The raw response is the whole point, so print it even for error
	// statuses before classifying the outcome.
	fmt.Fprintf(c.Stdout, "HTTP %s\n", res.Status)
	fmt.Fprintln(c.Stdout, string(res.Body))

	if res.StatusCode >= 400 {
		return &tokenprobe.StatusError{
			Status:     res.Status,
			StatusCode: res.StatusCode,
			Body:       res.Body,
		}
	}
	return nil
}
