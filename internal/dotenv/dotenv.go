package dotenv

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Load reads each candidate file in order and sets any variables it defines
// that aren't already set. Missing files are ignored. Because existing
// variables are never overwritten, the precedence is process environment,
// then earlier files, then later files.
func Load(paths ...string) error {
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err != nil {
			return fmt.Errorf("dotenv: loading %s: %w", path, err)
		}
		vars, err := godotenv.Unmarshal(dropMalformed(string(data)))
		if err != nil {
			return fmt.Errorf("dotenv: parsing %s: %w", path, err)
		}
		for key, value := range vars {
			if _, ok := os.LookupEnv(key); !ok {
				os.Setenv(key, value)
			}
		}
	}
	return nil
}

// dropMalformed removes lines with no "=" separator, which godotenv treats
// as a parse error rather than skipping.
func dropMalformed(src string) string {
	lines := strings.Split(src, "\n")
	kept := make([]string, 0, len(lines))
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") || strings.ContainsRune(trimmed, '=') {
			kept = append(kept, line)
		}
	}
	return strings.Join(kept, "\n")
}
