package storage

import (
	"fmt"
	"os"
	"path/filepath"
)

const deviceFile = "storage.db"

// ConfigDir is the default data directory, ~/.config/upc.
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "upc"), nil
}

// DevicePath returns the device storage database path inside dir.
func DevicePath(dir string) string {
	return filepath.Join(dir, deviceFile)
}

func ensureDir(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}
	return nil
}
