// FILE: internal/service/consumer_service.go
package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"nutriplan-be/internal/dto"
	"nutriplan-be/internal/entity"
	"nutriplan-be/internal/repository/specification"
	"nutriplan-be/internal/repository/unitofwork"
	"nutriplan-be/pkg/embedding"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

type consumerService struct {
	pubSub            *gochannel.GoChannel
	topicName         string
	uowFactory        unitofwork.RepositoryFactory
	embeddingProvider embedding.EmbeddingProvider
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	uowFactory unitofwork.RepositoryFactory,
	embeddingProvider embedding.EmbeddingProvider,
) IConsumerService {
	return &consumerService{
		pubSub:            pubSub,
		topicName:         topicName,
		uowFactory:        uowFactory,
		embeddingProvider: embeddingProvider,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.PublishEmbedMealMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		log.Printf("[ERROR] Failed to unmarshal embed message: %v", err)
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	uow := cs.uowFactory.NewUnitOfWork(ctx)

	meal, err := uow.MealRepository().FindOne(ctx, specification.ByID{ID: payload.MealId})
	if err != nil {
		log.Printf("[ERROR] Failed to get meal %s: %v", payload.MealId, err)
		msg.Nack()
		return
	}
	if meal == nil {
		// Meal deleted before the worker got to it. Nothing to embed.
		msg.Ack()
		return
	}

	document := fmt.Sprintf(
		"Meal: %s\nType: %s\nCalories: %d kcal\nProtein: %.1fg, Carbs: %.1fg, Fat: %.1fg\nDate: %s",
		meal.Name,
		meal.Type,
		meal.Calories,
		meal.Protein,
		meal.Carbs,
		meal.Fat,
		meal.Date.Format("2006-01-02"),
	)

	res, err := cs.embeddingProvider.Generate(document, "RETRIEVAL_DOCUMENT")
	if err != nil {
		log.Printf("[ERROR] Failed to generate embedding for meal %s: %v", payload.MealId, err)
		msg.Nack()
		return
	}

	if err := uow.Begin(ctx); err != nil {
		log.Printf("[ERROR] Failed to begin transaction: %v", err)
		msg.Nack()
		return
	}
	defer uow.Rollback()

	// Replace any prior embedding for this meal
	if err := uow.MealEmbeddingRepository().DeleteByMealId(ctx, meal.Id); err != nil {
		log.Printf("[ERROR] Failed to clear old embedding for meal %s: %v", meal.Id, err)
		msg.Nack()
		return
	}

	emb := entity.MealEmbedding{
		Id:        uuid.New(),
		MealId:    meal.Id,
		UserId:    meal.UserId,
		Document:  document,
		Vector:    res.Embedding.Values,
		CreatedAt: time.Now(),
	}
	if err := uow.MealEmbeddingRepository().Create(ctx, &emb); err != nil {
		log.Printf("[ERROR] Failed to store embedding for meal %s: %v", meal.Id, err)
		msg.Nack()
		return
	}

	if err := uow.Commit(); err != nil {
		log.Printf("[ERROR] Failed to commit embedding for meal %s: %v", meal.Id, err)
		msg.Nack()
		return
	}

	msg.Ack()
}
