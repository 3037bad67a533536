package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/matthewmueller/logs"
	"github.com/matthewmueller/tokenprobe"
	"github.com/matthewmueller/tokenprobe/internal/cli"
)

func main() {
	ctx := context.Background()
	log := logs.Default()
	os.Exit(run(ctx, log, os.Args[1:]...))
}

// Exit codes: 0 success, 1 missing API key, 2 HTTP error response received,
// 3 any other request failure.
func run(ctx context.Context, log *slog.Logger, args ...string) int {
	err := cli.New(log).Parse(ctx, args...)
	if err == nil {
		return 0
	}
	var statusErr *tokenprobe.StatusError
	switch {
	case errors.Is(err, tokenprobe.ErrMissingAPIKey):
		log.Error("Missing OPENAI_API_KEY in environment.")
		return 1
	case errors.As(err, &statusErr):
		// Status line and body were already printed on stdout
		return 2
	default:
		log.Error(fmt.Sprintf("Request failed: %v", err))
		return 3
	}
}
