// FILE: cmd/seed/achievement_seeder.go
package main

import (
	"log"

	"nutriplan-be/internal/model"
	"nutriplan-be/pkg/events"

	"github.com/fatih/color"
	"gorm.io/gorm"
)

// SeedAchievements loads the unlockable achievement catalog. Existing keys are skipped.
func SeedAchievements(db *gorm.DB) {
	achievements := []model.Achievement{
		{Key: "first_meal", Name: "First Bite", Description: "Log your first meal", EventType: events.TypeMealLogged, Threshold: 1, IsActive: true, SortOrder: 1},
		{Key: "ten_meals", Name: "Getting Tasty", Description: "Log 10 meals", EventType: events.TypeMealLogged, Threshold: 10, IsActive: true, SortOrder: 2},
		{Key: "hundred_meals", Name: "Century Chef", Description: "Log 100 meals", EventType: events.TypeMealLogged, Threshold: 100, IsActive: true, SortOrder: 3},
		{Key: "first_weekly_plan", Name: "Planner", Description: "Generate your first weekly meal plan", EventType: events.TypePlanGenerated, Threshold: 1, IsActive: true, SortOrder: 4},
		{Key: "five_weekly_plans", Name: "Meal Prepper", Description: "Generate 5 weekly meal plans", EventType: events.TypePlanGenerated, Threshold: 5, IsActive: true, SortOrder: 5},
		{Key: "fresh_start", Name: "Fresh Start", Description: "Replace your plan with a brand new week", EventType: events.TypePlanReplaced, Threshold: 1, IsActive: true, SortOrder: 6},
		{Key: "premium_member", Name: "Premium Member", Description: "Subscribe to a premium plan", EventType: events.TypeSubscriptionPaid, Threshold: 1, IsActive: true, SortOrder: 7},
		{Key: "welcome_aboard", Name: "Welcome Aboard", Description: "Create your account", EventType: events.TypeUserRegistered, Threshold: 1, IsActive: true, SortOrder: 8},
	}

	for _, a := range achievements {
		var existing model.Achievement
		if err := db.Where("key = ?", a.Key).First(&existing).Error; err == nil {
			log.Printf("Achievement '%s' already exists, skipping...", a.Key)
			continue
		}

		if err := db.Create(&a).Error; err != nil {
			color.Red("Error creating achievement '%s': %v", a.Key, err)
		} else {
			color.Green("Created achievement: %s (%s)", a.Name, a.Key)
		}
	}

	log.Println("Achievement seeding completed!")
}
