package storage

import (
	"context"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// seedFile maps keys to raw document strings.
type seedFile struct {
	Documents map[string]string `yaml:"documents"`
}

// Seed loads a YAML seed file and writes each document into the store.
// Existing values under the same keys are overwritten.
func Seed(ctx context.Context, store Store, path string) error {
	if strings.TrimSpace(path) == "" {
		return fmt.Errorf("seed file path is empty")
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read seed file: %w", err)
	}

	var sf seedFile
	if err := yaml.Unmarshal(raw, &sf); err != nil {
		return fmt.Errorf("parse seed file %s: %w", path, err)
	}
	if len(sf.Documents) == 0 {
		return fmt.Errorf("seed file %s has no documents", path)
	}

	for key, doc := range sf.Documents {
		if strings.TrimSpace(key) == "" {
			return fmt.Errorf("seed file %s contains an empty key", path)
		}
		if err := store.Put(ctx, key, []byte(doc)); err != nil {
			return fmt.Errorf("seed %q: %w", key, err)
		}
	}
	return nil
}
