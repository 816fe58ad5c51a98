package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Logger is the process-wide structured logger.
var Logger = zerolog.Nop()

var (
	logFileHandle *os.File
	logMu         sync.RWMutex
)

// InitLogger configures Logger. With an empty logFile, logs go to stderr in
// a human-readable format; otherwise they are appended to logFile as JSON so
// they never interfere with the terminal UI. Unknown levels fall back to info.
func InitLogger(level, logFile string) error {
	logMu.Lock()
	defer logMu.Unlock()

	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}

	closeLogFileLocked()

	var out io.Writer = zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
	}
	if logFile != "" {
		if err := os.MkdirAll(filepath.Dir(logFile), 0755); err != nil {
			return fmt.Errorf("failed to create log directory: %w", err)
		}
		f, err := os.OpenFile(logFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		logFileHandle = f
		out = f
	}

	Logger = zerolog.New(out).
		Level(lvl).
		With().
		Timestamp().
		Logger()
	return nil
}

// GetLogger returns the current logger.
func GetLogger() zerolog.Logger {
	logMu.RLock()
	defer logMu.RUnlock()
	return Logger
}

// ComponentLogger returns the current logger tagged with a component name.
func ComponentLogger(component string) zerolog.Logger {
	return GetLogger().With().Str("component", component).Logger()
}

// CloseLogFile closes the log file, if any, and discards further output.
func CloseLogFile() {
	logMu.Lock()
	defer logMu.Unlock()
	closeLogFileLocked()
}

func closeLogFileLocked() {
	if logFileHandle != nil {
		_ = logFileHandle.Close()
		logFileHandle = nil
		Logger = zerolog.Nop()
	}
}

// DefaultLogFile returns $XDG_STATE_HOME/didyouknow/didyouknow.log, falling
// back to ~/.local/state when XDG_STATE_HOME is unset.
func DefaultLogFile() (string, error) {
	stateDir := os.Getenv("XDG_STATE_HOME")
	if stateDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		stateDir = filepath.Join(home, ".local", "state")
	}
	return filepath.Join(stateDir, AppName, AppName+".log"), nil
}
