// Package envx loads dotenv files and reads typed values from the process
// environment for the config loaders.
package envx

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/dmitrijs2005/alumnilink/internal/timex"
	"github.com/joho/godotenv"
)

// DefaultFile is loaded when no explicit dotenv path is given.
const DefaultFile = ".env"

// Load reads a dotenv file into the process environment without
// overriding variables that are already set. An empty path means
// DefaultFile, which may be absent; an explicit path must exist.
func Load(path string) error {
	if path == "" {
		if err := godotenv.Load(DefaultFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return err
		}
		return nil
	}
	return godotenv.Load(path)
}

// String copies the value of key into dst when the variable is set and
// non-empty.
func String(key string, dst *string) {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		*dst = v
	}
}

// Duration parses key with timex.ParseDuration into dst when set.
func Duration(key string, dst *time.Duration) error {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return nil
	}
	d, err := timex.ParseDuration(v)
	if err != nil {
		return fmt.Errorf("env %s: %w", key, err)
	}
	*dst = d
	return nil
}
