// Package storage persists named board positions in BadgerDB or SQLite.
package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/apex/log"
)

const appName = "chesscore"

// HomeEnv overrides the data directory when set.
const HomeEnv = "CHESSCORE_HOME"

// GetDataDir returns the directory chesscore keeps its files in, creating it
// if needed. CHESSCORE_HOME wins; otherwise:
//   - macOS: ~/Library/Application Support/chesscore
//   - Windows: %APPDATA%\chesscore
//   - elsewhere: $XDG_DATA_HOME/chesscore or ~/.local/share/chesscore
func GetDataDir() (string, error) {
	if dir := os.Getenv(HomeEnv); dir != "" {
		return ensureDir(dir)
	}

	base, err := baseDir(runtime.GOOS)
	if err != nil {
		return "", fmt.Errorf("locate data directory: %w", err)
	}
	return ensureDir(filepath.Join(base, appName))
}

// GetDatabaseDir returns the "db" directory under GetDataDir.
func GetDatabaseDir() (string, error) {
	dataDir, err := GetDataDir()
	if err != nil {
		return "", err
	}

	dbDir, err := ensureDir(filepath.Join(dataDir, "db"))
	if err != nil {
		return "", err
	}
	log.WithField("dir", dbDir).Debug("database directory")
	return dbDir, nil
}

func baseDir(goos string) (string, error) {
	var env string
	var fallback []string
	switch goos {
	case "darwin":
		fallback = []string{"Library", "Application Support"}
	case "windows":
		env, fallback = "APPDATA", []string{"AppData", "Roaming"}
	default:
		env, fallback = "XDG_DATA_HOME", []string{".local", "share"}
	}

	if env != "" {
		if dir := os.Getenv(env); dir != "" {
			return dir, nil
		}
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(append([]string{home}, fallback...)...), nil
}

func ensureDir(dir string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create %s: %w", dir, err)
	}
	return dir, nil
}
