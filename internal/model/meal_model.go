package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
)

type Meal struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId    uuid.UUID `gorm:"type:uuid;not null;index"`
	Name      string    `gorm:"type:varchar(255);not null"`
	Type      string    `gorm:"type:varchar(20);not null"`
	Calories  int       `gorm:"default:0"`
	Protein   float64   `gorm:"type:decimal(6,1);default:0"`
	Carbs     float64   `gorm:"type:decimal(6,1);default:0"`
	Fat       float64   `gorm:"type:decimal(6,1);default:0"`
	Date      time.Time `gorm:"index"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt *time.Time
}

func (Meal) TableName() string {
	return "meals"
}

type MealPlanSummary struct {
	Id            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId        uuid.UUID `gorm:"type:uuid;uniqueIndex;not null"`
	WeekStart     time.Time `gorm:"not null"`
	MealCount     int       `gorm:"default:0"`
	TotalCalories int       `gorm:"default:0"`
	Source        string    `gorm:"type:varchar(20);default:'manual'"`
	GeneratedAt   time.Time
	UpdatedAt     time.Time `gorm:"autoUpdateTime"`
}

func (MealPlanSummary) TableName() string {
	return "meal_plan_summaries"
}

type MealEmbedding struct {
	Id             uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	MealId         uuid.UUID       `gorm:"type:uuid;not null;index"`
	UserId         uuid.UUID       `gorm:"type:uuid;not null;index"`
	Document       string          `gorm:"type:text"`
	EmbeddingValue pgvector.Vector `gorm:"type:vector(768)"` // text-embedding-004 dimensionality
	CreatedAt      time.Time       `gorm:"autoCreateTime"`
}

func (MealEmbedding) TableName() string {
	return "meal_embeddings"
}
