// Package filesystem provides small path helpers shared across the build
// pipeline.
package filesystem

import (
	"fmt"
	"os"
	"path/filepath"
)

// GetDefaultPath returns filename resolved against the executable's
// directory. Used to locate config files when the tool is run from
// somewhere other than its install location.
func GetDefaultPath(filename string) (string, error) {
	exePath, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("failed to get executable path: %w", err)
	}
	return filepath.Join(filepath.Dir(exePath), filename), nil
}

// EnsureDirectoryExists creates the parent directory for filePath if needed.
func EnsureDirectoryExists(filePath string) error {
	dir := filepath.Dir(filePath)
	if dir == "." {
		return nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}
	return nil
}
