package helpers

import (
	"gorm.io/gorm"

	"github.com/andrescamacho/craftreq/internal/adapters/persistence"
	"github.com/andrescamacho/craftreq/internal/domain/shared"
)

// TestRepositories holds all real repository instances for integration tests
type TestRepositories struct {
	DB              *gorm.DB
	InventoryRepo   *persistence.GormInventoryRepository
	ActorRepo       *persistence.GormActorRepository
	DeclarationRepo *persistence.GormDeclarationRepository
	EvaluationRepo  *persistence.GormEvaluationLogRepository
}

// NewTestRepositories creates all repositories on the shared test DB
// clock is usually a MockClock in tests
func NewTestRepositories(clock shared.Clock) *TestRepositories {
	db := SharedTestDB

	return &TestRepositories{
		DB:              db,
		InventoryRepo:   persistence.NewGormInventoryRepository(db, clock),
		ActorRepo:       persistence.NewGormActorRepository(db, clock),
		DeclarationRepo: persistence.NewGormDeclarationRepository(db, clock),
		EvaluationRepo:  persistence.NewGormEvaluationLogRepository(db, clock),
	}
}
