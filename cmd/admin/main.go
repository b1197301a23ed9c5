// FILE: cmd/admin/main.go
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"nutriplan-be/internal/entity"
	"nutriplan-be/internal/repository/contract"
	"nutriplan-be/internal/repository/specification"
	"nutriplan-be/internal/repository/unitofwork"
	"nutriplan-be/pkg/database"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
)

// Operational CLI. Run with one of:
//
//	admin stats                  revenue and subscriber overview
//	admin plans                  dump the plan catalog
//	admin plan-add [flags]       add a plan tier
//	admin plan-disable <slug>    hide a plan from the catalog
//	admin plan-remove <slug>     hard-delete a plan
//	admin sub-purge <id>         delete an abandoned pending subscription
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system env")
	}

	if len(os.Args) < 2 {
		usage()
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Fatal("DB_CONNECTION_STRING is not set")
	}

	db, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		log.Fatal(err)
	}

	ctx := context.Background()
	repo := unitofwork.NewRepositoryFactory(db).NewUnitOfWork(ctx).SubscriptionRepository()

	switch os.Args[1] {
	case "stats":
		runStats(ctx, repo)
	case "plans":
		runPlans(ctx, repo)
	case "plan-add":
		runPlanAdd(ctx, repo, os.Args[2:])
	case "plan-disable":
		runPlanDisable(ctx, repo, requireArg("plan-disable <slug>"))
	case "plan-remove":
		runPlanRemove(ctx, repo, requireArg("plan-remove <slug>"))
	case "sub-purge":
		runSubPurge(ctx, repo, requireArg("sub-purge <subscription-id>"))
	default:
		usage()
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: admin <stats|plans|plan-add|plan-disable|plan-remove|sub-purge> [args]")
	os.Exit(2)
}

func requireArg(hint string) string {
	if len(os.Args) < 3 {
		log.Fatalf("usage: admin %s", hint)
	}
	return os.Args[2]
}

func runStats(ctx context.Context, repo contract.SubscriptionRepository) {
	revenue, err := repo.GetTotalRevenue(ctx)
	if err != nil {
		log.Fatalf("Failed to load revenue: %v", err)
	}
	subscribers, err := repo.CountActiveSubscribers(ctx)
	if err != nil {
		log.Fatalf("Failed to count subscribers: %v", err)
	}

	fmt.Printf("Total revenue:      %.2f\n", revenue)
	fmt.Printf("Active subscribers: %d\n", subscribers)

	lastPaid, err := repo.FindOnePaymentRecord(ctx,
		specification.Filter("status", entity.PaymentStatusPaid),
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		log.Fatalf("Failed to load last payment: %v", err)
	}
	if lastPaid != nil {
		fmt.Printf("Last payment:       %.2f %s at %s (order %s)\n",
			lastPaid.Amount, lastPaid.Currency,
			lastPaid.CreatedAt.Format("2006-01-02 15:04"), lastPaid.OrderId)
	}

	recent, err := repo.FindAllSubscriptions(ctx,
		specification.OrderBy{Field: "created_at", Desc: true},
		specification.Pagination{Limit: 10},
	)
	if err != nil {
		log.Fatalf("Failed to list subscriptions: %v", err)
	}
	fmt.Printf("\nRecent subscriptions (%d):\n", len(recent))
	for _, sub := range recent {
		fmt.Printf("  %s  user=%s  %s/%s  expires=%s\n",
			sub.Id, sub.UserId, sub.Status, sub.PaymentStatus,
			sub.ExpiresAt.Format("2006-01-02"))
	}
}

func runPlans(ctx context.Context, repo contract.SubscriptionRepository) {
	plans, err := repo.FindAllPlans(ctx, specification.OrderBy{Field: "sort_order"})
	if err != nil {
		log.Fatalf("Failed to list plans: %v", err)
	}
	for _, p := range plans {
		state := "active"
		if !p.IsActive {
			state = "disabled"
		}
		fmt.Printf("%-20s %-10s %8.2f %s  %d mo/term\n", p.Slug, state, p.Price, p.Currency, p.MonthsPerTerm)
	}
}

func runPlanAdd(ctx context.Context, repo contract.SubscriptionRepository, args []string) {
	fs := flag.NewFlagSet("plan-add", flag.ExitOnError)
	slug := fs.String("slug", "", "unique plan slug")
	name := fs.String("name", "", "display name")
	price := fs.Float64("price", 0, "price per term")
	months := fs.Int("months", 1, "months per billing term")
	fs.Parse(args)

	if *slug == "" || *name == "" || *price <= 0 {
		log.Fatal("plan-add requires -slug, -name and a positive -price")
	}

	existing, err := repo.FindOnePlan(ctx, specification.BySlug{Slug: *slug})
	if err != nil {
		log.Fatalf("Failed to check plan: %v", err)
	}
	if existing != nil {
		log.Fatalf("Plan '%s' already exists", *slug)
	}

	plan := &entity.SubscriptionPlan{
		Id:             uuid.New(),
		Name:           *name,
		Slug:           *slug,
		Price:          *price,
		Currency:       "USD",
		TaxRate:        0.11,
		MonthsPerTerm:  *months,
		MaxMealPlans:   entity.UnlimitedLimit,
		MaxWeeklyPlans: entity.UnlimitedLimit,
		MaxGenerations: entity.UnlimitedLimit,
		MaxRecipes:     entity.UnlimitedLimit,
		// New tiers ship with the full premium capability set; trim in the
		// catalog afterwards if a tier needs fewer.
		AiRecommendations: true,
		Analytics:         true,
		Achievements:      true,
		SupportTier:       entity.SupportPremium,
		IsActive:          true,
	}
	if err := repo.CreatePlan(ctx, plan); err != nil {
		color.Red("Error creating plan '%s': %v", *slug, err)
		os.Exit(1)
	}
	color.Green("Created plan: %s (%s)", *name, *slug)
}

func runPlanDisable(ctx context.Context, repo contract.SubscriptionRepository, slug string) {
	plan, err := repo.FindOnePlan(ctx, specification.BySlug{Slug: slug})
	if err != nil {
		log.Fatalf("Failed to load plan: %v", err)
	}
	if plan == nil {
		log.Fatalf("Plan '%s' not found", slug)
	}
	if !plan.IsActive {
		log.Printf("Plan '%s' is already disabled", slug)
		return
	}

	plan.IsActive = false
	if err := repo.UpdatePlan(ctx, plan); err != nil {
		color.Red("Error disabling plan '%s': %v", slug, err)
		os.Exit(1)
	}
	color.Green("Disabled plan: %s", slug)
}

func runPlanRemove(ctx context.Context, repo contract.SubscriptionRepository, slug string) {
	plan, err := repo.FindOnePlan(ctx, specification.BySlug{Slug: slug})
	if err != nil {
		log.Fatalf("Failed to load plan: %v", err)
	}
	if plan == nil {
		log.Fatalf("Plan '%s' not found", slug)
	}

	// Existing subscriptions keep their plan_id; removal only makes the
	// tier unpurchasable going forward.
	if err := repo.DeletePlan(ctx, plan.Id); err != nil {
		color.Red("Error removing plan '%s': %v", slug, err)
		os.Exit(1)
	}
	color.Green("Removed plan: %s", slug)
}

func runSubPurge(ctx context.Context, repo contract.SubscriptionRepository, rawId string) {
	subId, err := uuid.Parse(rawId)
	if err != nil {
		log.Fatalf("Invalid subscription id: %s", rawId)
	}

	sub, err := repo.FindOneSubscription(ctx, specification.ByID{ID: subId})
	if err != nil {
		log.Fatalf("Failed to load subscription: %v", err)
	}
	if sub == nil {
		log.Fatalf("Subscription %s not found", subId)
	}
	if sub.Status != entity.SubscriptionStatusPending {
		log.Fatalf("Refusing to purge %s: status is '%s', only pending rows can be purged", subId, sub.Status)
	}

	if err := repo.DeleteSubscription(ctx, subId); err != nil {
		color.Red("Error purging subscription %s: %v", subId, err)
		os.Exit(1)
	}
	color.Green("Purged pending subscription: %s", subId)
}
