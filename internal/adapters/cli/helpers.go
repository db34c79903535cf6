package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/andrescamacho/craftreq/internal/infrastructure/config"
)

// resolveInventoryID resolves the inventory from the flag or the user default
// Priority: --inventory flag > user config default
func resolveInventoryID(flag string) (string, error) {
	if flag != "" {
		return flag, nil
	}
	userCfg, err := loadUserConfig()
	if err != nil {
		return "", fmt.Errorf("no inventory specified and failed to load user config: %w", err)
	}
	if userCfg.DefaultInventory != "" {
		return userCfg.DefaultInventory, nil
	}
	return "", fmt.Errorf("no inventory specified: use --inventory, or set a default with 'craftreq config set-default --inventory <id>'")
}

// resolveActorID resolves the actor from the flag or the user default
func resolveActorID(flag string) (string, error) {
	if flag != "" {
		return flag, nil
	}
	userCfg, err := loadUserConfig()
	if err != nil {
		return "", fmt.Errorf("no actor specified and failed to load user config: %w", err)
	}
	if userCfg.DefaultActor != "" {
		return userCfg.DefaultActor, nil
	}
	return "", fmt.Errorf("no actor specified: use --actor, or set a default with 'craftreq config set-default --actor <id>'")
}

func loadUserConfig() (*config.UserConfig, error) {
	handler, err := config.NewUserConfigHandler()
	if err != nil {
		return nil, err
	}
	return handler.Load()
}

func jsonOutput() bool {
	return outputFormat == "json"
}

// printJSON writes v as indented JSON to stdout
func printJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// useColors reports whether stdout is a terminal
func useColors() bool {
	info, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0 && os.Getenv("NO_COLOR") == ""
}
