package cli

import (
	"fmt"
	"net/url"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/craftreq/internal/infrastructure/config"
)

// NewConfigCommand creates the config command with subcommands
func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage configuration settings",
		Long: `Manage craftreq configuration settings.

Configuration is loaded from multiple sources with priority:
1. Environment variables (CR_* prefix)
2. Config file (config.yaml)
3. Default values

User preferences (default inventory and actor) are stored in ~/.craftreq/config.json

Examples:
  craftreq config show
  craftreq config set-default --inventory workshop --actor smith
  craftreq config clear-defaults`,
	}

	cmd.AddCommand(newConfigShowCommand())
	cmd.AddCommand(newConfigSetDefaultCommand())
	cmd.AddCommand(newConfigClearDefaultsCommand())

	return cmd
}

// newConfigShowCommand creates the config show subcommand
func newConfigShowCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig(configPath)
			if err != nil {
				fmt.Printf("Warning: Failed to load config: %v\n", err)
				fmt.Println("Using default configuration.")
				cfg = config.LoadConfigOrDefault("")
			}

			userConfigHandler, err := config.NewUserConfigHandler()
			if err != nil {
				return fmt.Errorf("failed to create user config handler: %w", err)
			}

			userCfg, err := userConfigHandler.Load()
			if err != nil {
				fmt.Printf("Warning: Failed to load user config: %v\n\n", err)
				userCfg = &config.UserConfig{}
			}

			fmt.Println("craftreq Configuration")
			fmt.Println("======================")

			fmt.Println("User Preferences:")
			fmt.Printf("  Config file:       %s\n", userConfigHandler.GetConfigPath())
			fmt.Printf("  Default Inventory: %s\n", orNotSet(userCfg.DefaultInventory))
			fmt.Printf("  Default Actor:     %s\n", orNotSet(userCfg.DefaultActor))

			fmt.Println("\nDatabase:")
			fmt.Printf("  Type:              %s\n", cfg.Database.Type)
			switch {
			case cfg.Database.URL != "":
				fmt.Printf("  URL:               %s\n", maskPassword(cfg.Database.URL))
			case cfg.Database.Type == "sqlite":
				fmt.Printf("  Path:              %s\n", cfg.Database.Path)
			default:
				fmt.Printf("  Host:              %s\n", cfg.Database.Host)
				fmt.Printf("  Port:              %d\n", cfg.Database.Port)
				fmt.Printf("  Database:          %s\n", cfg.Database.Name)
				fmt.Printf("  User:              %s\n", cfg.Database.User)
			}

			fmt.Println("\nData:")
			fmt.Printf("  Catalog:           %s\n", cfg.Data.CatalogPath)
			fmt.Printf("  Declarations:      %s\n", cfg.Data.DeclarationsPath)
			fmt.Printf("  Blacklist:         %v\n", cfg.Data.Blacklist)

			fmt.Println("\nCrafting:")
			fmt.Printf("  Match Policy:      %s\n", cfg.Crafting.MatchPolicy)
			fmt.Printf("  Default Batch:     %d\n", cfg.Crafting.DefaultBatch)
			fmt.Printf("  Difficulty Mod:    %g\n", cfg.Crafting.DifficultyModifier)

			fmt.Println("\nServer:")
			fmt.Printf("  Address:           %s\n", cfg.Server.Address)
			fmt.Printf("  Rate Limit:        %d req/s (burst: %d)\n",
				cfg.Server.RateLimit.Requests, cfg.Server.RateLimit.Burst)
			fmt.Printf("  Metrics:           %v (%s:%d%s)\n",
				cfg.Metrics.Enabled, cfg.Metrics.Host, cfg.Metrics.Port, cfg.Metrics.Path)

			fmt.Println("\nLogging:")
			fmt.Printf("  Level:             %s\n", cfg.Logging.Level)
			fmt.Printf("  Format:            %s\n", cfg.Logging.Format)
			fmt.Printf("  Output:            %s\n", cfg.Logging.Output)

			return nil
		},
	}

	return cmd
}

// newConfigSetDefaultCommand creates the config set-default subcommand
func newConfigSetDefaultCommand() *cobra.Command {
	var inventoryID, actorID string

	cmd := &cobra.Command{
		Use:   "set-default",
		Short: "Set the default inventory and/or actor",
		RunE: func(cmd *cobra.Command, args []string) error {
			if inventoryID == "" && actorID == "" {
				return fmt.Errorf("either --inventory or --actor flag is required")
			}

			userConfigHandler, err := config.NewUserConfigHandler()
			if err != nil {
				return fmt.Errorf("failed to create user config handler: %w", err)
			}

			if inventoryID != "" {
				if err := userConfigHandler.SetDefaultInventory(inventoryID); err != nil {
					return fmt.Errorf("failed to set default inventory: %w", err)
				}
				fmt.Printf("Default inventory set to %s\n", inventoryID)
			}
			if actorID != "" {
				if err := userConfigHandler.SetDefaultActor(actorID); err != nil {
					return fmt.Errorf("failed to set default actor: %w", err)
				}
				fmt.Printf("Default actor set to %s\n", actorID)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&inventoryID, "inventory", "", "Default inventory id")
	cmd.Flags().StringVar(&actorID, "actor", "", "Default actor id")
	return cmd
}

// newConfigClearDefaultsCommand creates the config clear-defaults subcommand
func newConfigClearDefaultsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear-defaults",
		Short: "Clear the default inventory and actor",
		RunE: func(cmd *cobra.Command, args []string) error {
			userConfigHandler, err := config.NewUserConfigHandler()
			if err != nil {
				return fmt.Errorf("failed to create user config handler: %w", err)
			}
			if err := userConfigHandler.ClearDefaults(); err != nil {
				return fmt.Errorf("failed to clear defaults: %w", err)
			}
			fmt.Println("Defaults cleared")
			return nil
		},
	}
}

func orNotSet(v string) string {
	if v == "" {
		return "(not set)"
	}
	return v
}

// maskPassword hides the password of a database URL
func maskPassword(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}
	return u.Redacted()
}
