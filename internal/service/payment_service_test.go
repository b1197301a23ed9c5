package service

import (
	"context"
	"crypto/sha512"
	"fmt"
	"testing"
	"time"

	"nutriplan-be/internal/config"
	"nutriplan-be/internal/dto"
	"nutriplan-be/internal/entity"
	"nutriplan-be/internal/repository/contract"
	"nutriplan-be/internal/repository/specification"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func signWebhook(req *dto.MidtransWebhookRequest, serverKey string) {
	input := req.OrderId + req.StatusCode + req.GrossAmount + serverKey
	req.SignatureKey = fmt.Sprintf("%x", sha512.Sum512([]byte(input)))
}

func newWebhookTestService(serverKey string) *paymentService {
	// No unit of work wired: only paths that bail before storage access.
	return &paymentService{
		paymentCfg: config.PaymentConfig{MidtransServerKey: serverKey},
		logger:     noopLogger{},
	}
}

// fakePaymentRepo backs the webhook paths that do touch storage.
type fakePaymentRepo struct {
	contract.SubscriptionRepository

	subs    map[uuid.UUID]*entity.UserSubscription
	plans   map[uuid.UUID]*entity.SubscriptionPlan
	records []*entity.PaymentRecord
}

func (r *fakePaymentRepo) FindOneSubscription(ctx context.Context, specs ...specification.Specification) (*entity.UserSubscription, error) {
	for _, spec := range specs {
		if byId, ok := spec.(specification.ByID); ok {
			return r.subs[byId.ID], nil
		}
	}
	return nil, nil
}

func (r *fakePaymentRepo) FindOnePlan(ctx context.Context, specs ...specification.Specification) (*entity.SubscriptionPlan, error) {
	for _, spec := range specs {
		if byId, ok := spec.(specification.ByID); ok {
			return r.plans[byId.ID], nil
		}
	}
	return nil, nil
}

func (r *fakePaymentRepo) UpdateSubscription(ctx context.Context, sub *entity.UserSubscription) error {
	r.subs[sub.Id] = sub
	return nil
}

func (r *fakePaymentRepo) CreatePaymentRecord(ctx context.Context, record *entity.PaymentRecord) error {
	r.records = append(r.records, record)
	return nil
}

func newStorageTestService(repo *fakePaymentRepo, serverKey string) *paymentService {
	return &paymentService{
		uowFactory: &subFactory{uow: &subUnitOfWork{subs: repo}},
		paymentCfg: config.PaymentConfig{MidtransServerKey: serverKey},
		logger:     noopLogger{},
	}
}

// A denied checkout must land in a terminal status. If the row stayed
// pending it would sort as the user's newest subscription forever.
func TestHandleNotificationDenyParksPendingRow(t *testing.T) {
	subId := uuid.New()
	repo := &fakePaymentRepo{
		subs: map[uuid.UUID]*entity.UserSubscription{
			subId: {
				Id:            subId,
				UserId:        uuid.New(),
				Status:        entity.SubscriptionStatusPending,
				PaymentStatus: entity.PaymentStatusPending,
				Amount:        9.99,
				Currency:      "USD",
			},
		},
	}
	svc := newStorageTestService(repo, "server-key")

	req := &dto.MidtransWebhookRequest{
		OrderId:           subId.String(),
		StatusCode:        "202",
		GrossAmount:       "9.99",
		TransactionStatus: "deny",
	}
	signWebhook(req, "server-key")

	assert.NoError(t, svc.HandleNotification(context.Background(), req))

	sub := repo.subs[subId]
	assert.Equal(t, entity.SubscriptionStatusCanceled, sub.Status)
	assert.Equal(t, entity.PaymentStatusFailed, sub.PaymentStatus)
	assert.Len(t, repo.records, 1)
	assert.Equal(t, entity.PaymentStatusFailed, repo.records[0].Status)

	// Replayed callbacks are a no-op once the row is parked.
	assert.NoError(t, svc.HandleNotification(context.Background(), req))
	assert.Len(t, repo.records, 1)
}

// A failed renewal attempt against an already-active term records the
// failure but never demotes the live subscription.
func TestHandleNotificationDenyKeepsActiveTermAlive(t *testing.T) {
	subId := uuid.New()
	expires := time.Now().Add(20 * 24 * time.Hour)
	repo := &fakePaymentRepo{
		subs: map[uuid.UUID]*entity.UserSubscription{
			subId: {
				Id:            subId,
				UserId:        uuid.New(),
				Status:        entity.SubscriptionStatusActive,
				PaymentStatus: entity.PaymentStatusPaid,
				ExpiresAt:     expires,
				Amount:        9.99,
				Currency:      "USD",
			},
		},
	}
	svc := newStorageTestService(repo, "server-key")

	req := &dto.MidtransWebhookRequest{
		OrderId:           subId.String(),
		StatusCode:        "202",
		GrossAmount:       "9.99",
		TransactionStatus: "expire",
	}
	signWebhook(req, "server-key")

	assert.NoError(t, svc.HandleNotification(context.Background(), req))

	sub := repo.subs[subId]
	assert.Equal(t, entity.SubscriptionStatusActive, sub.Status)
	assert.Equal(t, entity.PaymentStatusFailed, sub.PaymentStatus)
	assert.Equal(t, expires, sub.ExpiresAt)
}

func TestHandleNotificationRejectsBadSignature(t *testing.T) {
	svc := newWebhookTestService("server-key")

	req := &dto.MidtransWebhookRequest{
		OrderId:           uuid.NewString(),
		StatusCode:        "200",
		GrossAmount:       "9.99",
		TransactionStatus: "settlement",
	}
	signWebhook(req, "wrong-key")

	err := svc.HandleNotification(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidSignature)
}

func TestHandleNotificationRejectsTamperedAmount(t *testing.T) {
	svc := newWebhookTestService("server-key")

	req := &dto.MidtransWebhookRequest{
		OrderId:           uuid.NewString(),
		StatusCode:        "200",
		GrossAmount:       "9.99",
		TransactionStatus: "settlement",
	}
	signWebhook(req, "server-key")
	req.GrossAmount = "0.01"

	err := svc.HandleNotification(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidSignature)
}

func TestHandleNotificationRejectsMalformedOrderId(t *testing.T) {
	svc := newWebhookTestService("server-key")

	req := &dto.MidtransWebhookRequest{
		OrderId:           "not-a-uuid",
		StatusCode:        "200",
		GrossAmount:       "9.99",
		TransactionStatus: "settlement",
	}
	signWebhook(req, "server-key")

	err := svc.HandleNotification(context.Background(), req)
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalidSignature)
}

func TestHandleNotificationIgnoresPending(t *testing.T) {
	svc := newWebhookTestService("server-key")

	req := &dto.MidtransWebhookRequest{
		OrderId:           uuid.NewString(),
		StatusCode:        "201",
		GrossAmount:       "9.99",
		TransactionStatus: "pending",
	}
	signWebhook(req, "server-key")

	assert.NoError(t, svc.HandleNotification(context.Background(), req))
}

func TestHandleNotificationRequiresServerKey(t *testing.T) {
	svc := newWebhookTestService("")

	req := &dto.MidtransWebhookRequest{
		OrderId:           uuid.NewString(),
		StatusCode:        "200",
		GrossAmount:       "9.99",
		TransactionStatus: "settlement",
	}
	signWebhook(req, "")

	// Even a "valid" signature against an empty key is refused outright.
	assert.Error(t, svc.HandleNotification(context.Background(), req))
}
