package contract

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/motionforge/motionforge/internal/logger"
)

// ToolVersion is the build version stamped into artifacts. Overridden
// at link time for releases.
var ToolVersion = "dev"

// LogFatal logs an error and exits the program.
func LogFatal(msg string, err error) {
	logger.Error(msg, "err", err)
	os.Exit(1)
}

// LogWarn logs a warning message.
func LogWarn(msg string, err error) {
	logger.Warn(msg, "err", err)
}

// SelectOutputFile returns the appropriate file handle for output based
// on the provided file path. Empty path means stdout.
func SelectOutputFile(filePath string) (*os.File, error) {
	if filePath == "" {
		return os.Stdout, nil
	}
	if dir := filepath.Dir(filePath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create output directory %q: %w", dir, err)
		}
	}
	return os.Create(filePath)
}

// GetRegistryDBFilePath returns the default SQLite registry location.
func GetRegistryDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".motionforge_registry.db"
	}
	return filepath.Join(homeDir, ".motionforge_registry.db")
}
