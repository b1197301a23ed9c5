// FILE: cmd/seed/main.go
package main

import (
	"log"
	"os"

	"nutriplan-be/internal/model"
	"nutriplan-be/pkg/database"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"gorm.io/datatypes"
)

func main() {
	// Load Environment Variables
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	db, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	log.Println("Seeding Subscription Plans...")

	allDiets := datatypes.JSON([]byte(`["balanced","vegetarian","vegan","keto","paleo","mediterranean"]`))

	plans := []model.SubscriptionPlan{
		{
			Name:              "Premium Monthly",
			Slug:              "premium-monthly",
			Description:       "Full access to AI meal planning, billed monthly",
			Tagline:           "Try everything, cancel anytime",
			Price:             9.99,
			Currency:          "USD",
			TaxRate:           0.11,
			MonthsPerTerm:     1,
			MaxMealPlans:      -1,
			MaxWeeklyPlans:    -1,
			MaxGenerations:    -1,
			MaxRecipes:        -1,
			AiRecommendations: true,
			Analytics:         true,
			Achievements:      true,
			SupportTier:       "premium",
			DietTypes:         allDiets,
			SortOrder:         1,
		},
		{
			Name:              "Premium Quarterly",
			Slug:              "premium-quarterly",
			Description:       "Full access to AI meal planning, billed every 3 months",
			Tagline:           "Save 15% over monthly",
			Price:             25.99,
			Currency:          "USD",
			TaxRate:           0.11,
			MonthsPerTerm:     3,
			MaxMealPlans:      -1,
			MaxWeeklyPlans:    -1,
			MaxGenerations:    -1,
			MaxRecipes:        -1,
			AiRecommendations: true,
			Analytics:         true,
			Achievements:      true,
			SupportTier:       "premium",
			DietTypes:         allDiets,
			IsMostPopular:     true,
			SortOrder:         2,
		},
		{
			Name:              "Premium Yearly",
			Slug:              "premium-yearly",
			Description:       "Full access to AI meal planning, billed once a year",
			Tagline:           "Best value, 2 months free",
			Price:             99.99,
			Currency:          "USD",
			TaxRate:           0.11,
			MonthsPerTerm:     12,
			MaxMealPlans:      -1,
			MaxWeeklyPlans:    -1,
			MaxGenerations:    -1,
			MaxRecipes:        -1,
			AiRecommendations: true,
			Analytics:         true,
			Achievements:      true,
			SupportTier:       "premium",
			DietTypes:         allDiets,
			SortOrder:         3,
		},
	}

	for _, p := range plans {
		var existing model.SubscriptionPlan
		if err := db.Where("slug = ?", p.Slug).First(&existing).Error; err == nil {
			log.Printf("Plan '%s' already exists, skipping...", p.Slug)
			continue
		}

		if err := db.Create(&p).Error; err != nil {
			color.Red("Error creating plan '%s': %v", p.Slug, err)
		} else {
			color.Green("Created plan: %s (%s)", p.Name, p.Slug)
		}
	}

	log.Println("Plan seeding completed!")

	log.Println("Seeding Achievement Catalog...")
	SeedAchievements(db)
}
