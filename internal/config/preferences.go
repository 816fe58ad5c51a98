package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Preferences holds UI choices that persist across sessions. Facts
// themselves are never stored.
type Preferences struct {
	ShowFullHelp bool `json:"show_full_help"`
	Markdown     bool `json:"markdown"`
}

// DefaultPreferences returns the default preferences
func DefaultPreferences() *Preferences {
	return &Preferences{
		ShowFullHelp: false,
		Markdown:     true,
	}
}

// LoadPreferences loads user preferences from the config file
func LoadPreferences() (*Preferences, error) {
	configDir, err := getConfigDir()
	if err != nil {
		return DefaultPreferences(), nil
	}

	configFile := filepath.Join(configDir, "preferences.json")

	// If file doesn't exist, return defaults
	if _, err := os.Stat(configFile); os.IsNotExist(err) {
		return DefaultPreferences(), nil
	}

	data, err := os.ReadFile(configFile)
	if err != nil {
		return DefaultPreferences(), nil
	}

	prefs := DefaultPreferences()
	if err := json.Unmarshal(data, prefs); err != nil {
		return DefaultPreferences(), nil
	}

	return prefs, nil
}

// Save saves user preferences to the config file
func (p *Preferences) Save() error {
	configDir, err := getConfigDir()
	if err != nil {
		return fmt.Errorf("failed to get config directory: %w", err)
	}

	// Create config directory if it doesn't exist
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	configFile := filepath.Join(configDir, "preferences.json")

	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal preferences: %w", err)
	}

	if err := os.WriteFile(configFile, data, 0644); err != nil {
		return fmt.Errorf("failed to write preferences file: %w", err)
	}

	return nil
}

// ToggleFullHelp flips the help mode and saves preferences
func (p *Preferences) ToggleFullHelp() error {
	p.ShowFullHelp = !p.ShowFullHelp
	return p.Save()
}

// getConfigDir returns the application config directory
func getConfigDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(homeDir, ".config", AppName), nil
}
