package events

import "time"

// Event type codes published on the bus. Achievement consumers key their
// unlock rules off these.
const (
	TypeMealLogged       = "MEAL_LOGGED"
	TypePlanGenerated    = "PLAN_GENERATED"
	TypePlanReplaced     = "PLAN_REPLACED"
	TypeSubscriptionPaid = "SUBSCRIPTION_PAID"
	TypeUserRegistered   = "USER_REGISTERED"
)

func NewMealLogged(userId string, mealId string, mealType string) Event {
	return BaseEvent{
		Type: TypeMealLogged,
		Data: map[string]interface{}{
			"user_id":   userId,
			"meal_id":   mealId,
			"meal_type": mealType,
		},
		OccurredAt: time.Now(),
	}
}

func NewPlanGenerated(userId string, source string, mealCount int) Event {
	return BaseEvent{
		Type: TypePlanGenerated,
		Data: map[string]interface{}{
			"user_id":    userId,
			"source":     source,
			"meal_count": mealCount,
		},
		OccurredAt: time.Now(),
	}
}

func NewPlanReplaced(userId string, mealCount int) Event {
	return BaseEvent{
		Type: TypePlanReplaced,
		Data: map[string]interface{}{
			"user_id":    userId,
			"meal_count": mealCount,
		},
		OccurredAt: time.Now(),
	}
}

func NewSubscriptionPaid(userId string, planSlug string, amount float64) Event {
	return BaseEvent{
		Type: TypeSubscriptionPaid,
		Data: map[string]interface{}{
			"user_id":   userId,
			"plan_slug": planSlug,
			"amount":    amount,
		},
		OccurredAt: time.Now(),
	}
}
