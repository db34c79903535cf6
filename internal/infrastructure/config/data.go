package config

// DataConfig locates the static data files
type DataConfig struct {
	// Catalog file (JSON or YAML) with qualities and item types
	CatalogPath string `mapstructure:"catalog_path"`

	// Default declaration file for "import declarations"
	DeclarationsPath string `mapstructure:"declarations_path"`

	// Item types stripped from every declaration on import; declarations left
	// with an empty group are discarded
	Blacklist []string `mapstructure:"blacklist"`
}
