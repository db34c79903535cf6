package helpers

import (
	"fmt"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/andrescamacho/craftreq/internal/adapters/persistence"
)

// SharedTestDB is the singleton database instance used by the BDD suite
var SharedTestDB *gorm.DB

// InitializeSharedTestDB creates and migrates the shared test database
// Called once before running any scenario
func InitializeSharedTestDB() error {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		return fmt.Errorf("failed to open shared test database: %w", err)
	}

	// A second connection would open a second, empty in-memory database
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to access shared test database: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)

	err = db.AutoMigrate(
		&persistence.InventoryStackModel{},
		&persistence.ActorModel{},
		&persistence.DeclarationModel{},
		&persistence.EvaluationLogModel{},
	)
	if err != nil {
		return fmt.Errorf("failed to migrate shared test database: %w", err)
	}

	SharedTestDB = db
	return nil
}

// TruncateAllTables clears all data from all tables
// Called before each scenario to ensure test isolation
func TruncateAllTables() error {
	if SharedTestDB == nil {
		return fmt.Errorf("shared test database not initialized")
	}

	tables := []string{
		"evaluation_logs",
		"declarations",
		"actors",
		"inventory_stacks",
	}

	for _, table := range tables {
		if err := SharedTestDB.Exec(fmt.Sprintf("DELETE FROM %s", table)).Error; err != nil {
			return fmt.Errorf("failed to truncate %s: %w", table, err)
		}
	}

	return nil
}

// CloseSharedTestDB closes the shared database connection
func CloseSharedTestDB() error {
	if SharedTestDB == nil {
		return nil
	}

	sqlDB, err := SharedTestDB.DB()
	if err != nil {
		return err
	}

	return sqlDB.Close()
}
