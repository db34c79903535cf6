package persistence

import (
	"time"
)

// InventoryStackModel represents the inventory_stacks table
type InventoryStackModel struct {
	InventoryID string    `gorm:"column:inventory_id;primaryKey;not null"`
	ItemType    string    `gorm:"column:item_type;primaryKey;not null"`
	Units       int       `gorm:"column:units;not null;default:0"`
	Charges     int       `gorm:"column:charges;not null;default:0"`
	UpdatedAt   time.Time `gorm:"column:updated_at;not null"`
}

func (InventoryStackModel) TableName() string {
	return "inventory_stacks"
}

// ActorModel represents the actors table
type ActorModel struct {
	ID         string    `gorm:"column:id;primaryKey;not null"`
	Name       string    `gorm:"column:name"`
	Skills     string    `gorm:"column:skills;type:text"`      // JSON object skill -> {level, progress}
	Stats      string    `gorm:"column:stats;type:text"`       // JSON object stat -> value
	SkillStats string    `gorm:"column:skill_stats;type:text"` // JSON object skill -> stat
	UpdatedAt  time.Time `gorm:"column:updated_at;not null"`
}

func (ActorModel) TableName() string {
	return "actors"
}

// DeclarationModel represents the declarations table.
// Document always holds the current declaration format, whatever the source format was.
type DeclarationModel struct {
	ID        string    `gorm:"column:id;primaryKey;not null"`
	Name      string    `gorm:"column:name"`
	Document  string    `gorm:"column:document;type:text;not null"` // JSON as text
	UpdatedAt time.Time `gorm:"column:updated_at;not null"`
}

func (DeclarationModel) TableName() string {
	return "declarations"
}

// EvaluationLogModel represents the evaluation_logs table
type EvaluationLogModel struct {
	ID            string    `gorm:"column:id;primaryKey;not null"`
	Kind          string    `gorm:"column:kind;not null"`
	DeclarationID string    `gorm:"column:declaration_id;not null;index"`
	SubjectID     string    `gorm:"column:subject_id;not null"`
	Batch         int       `gorm:"column:batch;not null;default:1"`
	Verdict       bool      `gorm:"column:verdict;not null"`
	Probability   float64   `gorm:"column:probability"`
	Downgrades    int       `gorm:"column:downgrades;not null;default:0"`
	CreatedAt     time.Time `gorm:"column:created_at;not null"`
}

func (EvaluationLogModel) TableName() string {
	return "evaluation_logs"
}
