package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// UserConfig represents user preferences stored in ~/.craftreq/config.json
type UserConfig struct {
	// Inventory evaluated when --inventory is not given
	DefaultInventory string `json:"default_inventory,omitempty"`

	// Actor evaluated when --actor is not given
	DefaultActor string `json:"default_actor,omitempty"`
}

// UserConfigHandler manages loading and saving user configuration
type UserConfigHandler struct {
	configPath string
}

// NewUserConfigHandler creates a new user config handler
func NewUserConfigHandler() (*UserConfigHandler, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get home directory: %w", err)
	}
	return NewUserConfigHandlerAt(filepath.Join(homeDir, ".craftreq"))
}

// NewUserConfigHandlerAt creates a handler storing config.json in configDir
func NewUserConfigHandlerAt(configDir string) (*UserConfigHandler, error) {
	configPath := filepath.Join(configDir, "config.json")

	// Ensure config directory exists
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create config directory: %w", err)
	}

	return &UserConfigHandler{
		configPath: configPath,
	}, nil
}

// Load reads the user config from disk
func (h *UserConfigHandler) Load() (*UserConfig, error) {
	// If file doesn't exist, return empty config
	if _, err := os.Stat(h.configPath); os.IsNotExist(err) {
		return &UserConfig{}, nil
	}

	data, err := os.ReadFile(h.configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read user config: %w", err)
	}

	var config UserConfig
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse user config: %w", err)
	}

	return &config, nil
}

// Save writes the user config to disk
func (h *UserConfigHandler) Save(config *UserConfig) error {
	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal user config: %w", err)
	}

	if err := os.WriteFile(h.configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write user config: %w", err)
	}

	return nil
}

// SetDefaultInventory sets the default inventory id
func (h *UserConfigHandler) SetDefaultInventory(inventoryID string) error {
	config, err := h.Load()
	if err != nil {
		return err
	}

	config.DefaultInventory = inventoryID
	return h.Save(config)
}

// SetDefaultActor sets the default actor id
func (h *UserConfigHandler) SetDefaultActor(actorID string) error {
	config, err := h.Load()
	if err != nil {
		return err
	}

	config.DefaultActor = actorID
	return h.Save(config)
}

// ClearDefaults removes every default
func (h *UserConfigHandler) ClearDefaults() error {
	return h.Save(&UserConfig{})
}

// GetConfigPath returns the path to the user config file
func (h *UserConfigHandler) GetConfigPath() string {
	return h.configPath
}
