package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type SubscriptionPlan struct {
	Id            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name          string    `gorm:"type:varchar(255);not null"`
	Slug          string    `gorm:"type:varchar(255);uniqueIndex;not null"`
	Description   string    `gorm:"type:text"`
	Tagline       string    `gorm:"type:text"`
	Price         float64   `gorm:"type:decimal(10,2);not null"`
	Currency      string    `gorm:"type:varchar(10);default:'USD'"`
	TaxRate       float64   `gorm:"type:decimal(5,4);default:0"`
	MonthsPerTerm int       `gorm:"default:1"`
	// Limits, -1 = unlimited
	MaxMealPlans   int `gorm:"default:5"`
	MaxWeeklyPlans int `gorm:"default:5"`
	MaxGenerations int `gorm:"default:5"`
	MaxRecipes     int `gorm:"default:5"`
	// Capabilities
	AiRecommendations bool           `gorm:"default:false"`
	Analytics         bool           `gorm:"default:false"`
	Achievements      bool           `gorm:"default:false"`
	SupportTier       string         `gorm:"type:varchar(20);default:'basic'"`
	DietTypes         datatypes.JSON `gorm:"type:jsonb"`
	// Display Settings
	IsMostPopular bool `gorm:"default:false"`
	IsActive      bool `gorm:"default:true"`
	SortOrder     int  `gorm:"default:0"`
}

func (SubscriptionPlan) TableName() string {
	return "subscription_plans"
}

type UserSubscription struct {
	Id                    uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId                uuid.UUID `gorm:"type:uuid;not null;index"`
	PlanId                uuid.UUID `gorm:"type:uuid;not null;index"`
	Status                string    `gorm:"type:varchar(50);not null"`
	PaymentStatus         string    `gorm:"type:varchar(50);not null"`
	StartedAt             time.Time `gorm:"not null"`
	ExpiresAt             time.Time `gorm:"not null;index"`
	Amount                float64   `gorm:"type:decimal(10,2);default:0"`
	Currency              string    `gorm:"type:varchar(10);default:'USD'"`
	IsTest                bool      `gorm:"default:false"`
	MidtransTransactionId *string   `gorm:"type:varchar(255)"`
	CreatedAt             time.Time `gorm:"autoCreateTime"`
	UpdatedAt             time.Time `gorm:"autoUpdateTime"`
}

func (UserSubscription) TableName() string {
	return "user_subscriptions"
}

type PaymentRecord struct {
	Id                   uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId               uuid.UUID `gorm:"type:uuid;not null;index"`
	OrderId              string    `gorm:"type:varchar(255);not null;index"`
	Amount               float64   `gorm:"type:decimal(10,2);default:0"`
	Currency             string    `gorm:"type:varchar(10);default:'USD'"`
	Status               string    `gorm:"type:varchar(50);not null"`
	IsTest               bool      `gorm:"default:false"`
	RawTransactionStatus string    `gorm:"type:varchar(50)"`
	CreatedAt            time.Time `gorm:"autoCreateTime"`
}

func (PaymentRecord) TableName() string {
	return "payment_records"
}
