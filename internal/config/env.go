package config

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	foundationerrors "git.home.luguber.info/inful/postbuilder/internal/foundation/errors"
	"git.home.luguber.info/inful/postbuilder/internal/logfields"
)

// envFiles are loaded in order; the first file to define a variable wins and
// variables already present in the process environment are never overridden.
var envFiles = []string{".env.local", ".env"}

func loadEnvFiles() error {
	for _, path := range envFiles {
		if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err := godotenv.Load(path); err != nil {
			return foundationerrors.WrapError(err, foundationerrors.CategoryConfig, "failed to load environment file").
				WithContext("path", path).
				Build()
		}
		slog.Debug("Loaded environment variables", logfields.Path(path))
	}
	return nil
}
