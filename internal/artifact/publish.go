package artifact

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/motionforge/motionforge/internal/contract"
	"github.com/motionforge/motionforge/schema"
)

// Publish encodes the artifact and hands it to the registry under the
// given name. It adds no retry logic of its own; transient-failure
// policy belongs to the registry collaborator. A failed upload is
// surfaced, never left as a silent partial publish.
func Publish(ctx context.Context, art *schema.Artifact, name string, reg contract.Registry) (string, error) {
	blob, err := Encode(art)
	if err != nil {
		return "", err
	}
	versionID, err := reg.Upload(ctx, name, blob, art)
	if err != nil {
		return "", fmt.Errorf("%w: upload of %q: %v", schema.ErrPublish, name, err)
	}
	return versionID, nil
}

// WriteFile encodes the artifact to a local Parquet file, creating
// parent directories as needed.
func WriteFile(path string, art *schema.Artifact) error {
	blob, err := Encode(art)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create artifact directory: %w", err)
		}
	}
	if err := os.WriteFile(path, blob, 0o644); err != nil {
		return fmt.Errorf("failed to write artifact file: %w", err)
	}
	return nil
}
