package config

// CraftingConfig holds evaluation settings
type CraftingConfig struct {
	// Reconciliation policy: "first" matches only the first tool or quality entry
	// for an item type, "all" reconciles against every entry
	MatchPolicy string `mapstructure:"match_policy" validate:"required,match_policy"`

	// Batch used when a request does not name one
	DefaultBatch int `mapstructure:"default_batch" validate:"min=1,max=1000000"`

	// Added to every difficulty when estimating success
	DifficultyModifier float64 `mapstructure:"difficulty_modifier"`
}
