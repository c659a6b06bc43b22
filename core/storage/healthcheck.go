package storage

import (
	"context"
	"fmt"
	"os"
)

// Healthcheck returns a readiness probe that verifies the storage root is
// writable by creating and removing a probe file.
func Healthcheck(s *LocalStorage) func(context.Context) error {
	return func(ctx context.Context) error {
		if err := ctx.Err(); err != nil {
			return err
		}

		f, err := os.CreateTemp(s.root, ".probe-*")
		if err != nil {
			return fmt.Errorf("storage root not writable: %w", err)
		}
		name := f.Name()
		if err := f.Close(); err != nil {
			os.Remove(name)
			return fmt.Errorf("storage root not writable: %w", err)
		}
		if err := os.Remove(name); err != nil {
			return fmt.Errorf("storage root not writable: %w", err)
		}
		return nil
	}
}
