// FILE: internal/service/payment_service.go
package service

import (
	"context"
	"crypto/sha512"
	"crypto/subtle"
	"errors"
	"fmt"
	"strconv"
	"time"

	"nutriplan-be/internal/config"
	"nutriplan-be/internal/dto"
	"nutriplan-be/internal/entity"
	"nutriplan-be/internal/pkg/logger"
	"nutriplan-be/internal/pkg/mailer"
	"nutriplan-be/internal/repository/specification"
	"nutriplan-be/internal/repository/unitofwork"
	"nutriplan-be/pkg/events"
	pktNats "nutriplan-be/pkg/nats"

	"github.com/google/uuid"
	"github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/snap"
)

var (
	ErrPlanNotFound         = errors.New("plan not found")
	ErrSubscriptionNotFound = errors.New("subscription not found")
	ErrInvalidSignature     = errors.New("invalid signature")
	ErrSimulationDisabled   = errors.New("payment simulation is disabled in production")
)

type IPaymentService interface {
	GetOrderSummary(ctx context.Context, planId uuid.UUID) (*dto.OrderSummaryResponse, error)

	// Checkout creates a pending subscription and opens a Snap session for it.
	// The subscription id doubles as the provider order id.
	Checkout(ctx context.Context, userId uuid.UUID, req *dto.CheckoutRequest) (*dto.CheckoutResponse, error)

	// HandleNotification processes a provider callback. The signature is
	// verified before any state is touched.
	HandleNotification(ctx context.Context, req *dto.MidtransWebhookRequest) error

	// SimulatePayment activates a pending subscription without a provider
	// round-trip. Only available outside production.
	SimulatePayment(ctx context.Context, userId uuid.UUID, req *dto.SimulatePaymentRequest) (*dto.SubscriptionResponse, error)

	GetSubscription(ctx context.Context, userId uuid.UUID) (*dto.SubscriptionResponse, error)
	Cancel(ctx context.Context, userId uuid.UUID) error

	// Validate lazily expires overdue subscriptions. There is no cron; expiry
	// is applied whenever a client asks.
	Validate(ctx context.Context, userId uuid.UUID) (*dto.ValidateSubscriptionResponse, error)
}

type paymentService struct {
	uowFactory     unitofwork.RepositoryFactory
	eventPublisher *pktNats.Publisher
	emailService   mailer.IEmailService
	paymentCfg     config.PaymentConfig
	environment    string
	clientURL      string
	snapClient     snap.Client
	logger         logger.ILogger
}

func NewPaymentService(
	uowFactory unitofwork.RepositoryFactory,
	eventPublisher *pktNats.Publisher,
	emailService mailer.IEmailService,
	paymentCfg config.PaymentConfig,
	environment string,
	clientURL string,
	log logger.ILogger,
) IPaymentService {
	env := midtrans.Sandbox
	if paymentCfg.IsProduction {
		env = midtrans.Production
	}

	s := &paymentService{
		uowFactory:     uowFactory,
		eventPublisher: eventPublisher,
		emailService:   emailService,
		paymentCfg:     paymentCfg,
		environment:    environment,
		clientURL:      clientURL,
		logger:         log,
	}
	s.snapClient.New(paymentCfg.MidtransServerKey, env)
	return s
}

func (s *paymentService) GetOrderSummary(ctx context.Context, planId uuid.UUID) (*dto.OrderSummaryResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	plan, err := uow.SubscriptionRepository().FindOnePlan(ctx, specification.ByID{ID: planId})
	if err != nil {
		return nil, err
	}
	if plan == nil {
		return nil, ErrPlanNotFound
	}

	subtotal := plan.Price
	tax := subtotal * plan.TaxRate
	total := subtotal + tax

	return &dto.OrderSummaryResponse{
		PlanName:      plan.Name,
		BillingPeriod: billingPeriod(plan.MonthsPerTerm),
		Subtotal:      subtotal,
		Tax:           tax,
		Total:         total,
		Currency:      plan.Currency,
	}, nil
}

func (s *paymentService) Checkout(ctx context.Context, userId uuid.UUID, req *dto.CheckoutRequest) (*dto.CheckoutResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	plan, err := uow.SubscriptionRepository().FindOnePlan(ctx,
		specification.ByID{ID: req.PlanId},
		specification.ActivePlansOnly{},
	)
	if err != nil {
		return nil, err
	}
	if plan == nil {
		return nil, ErrPlanNotFound
	}

	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId})
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, errors.New("user not found")
	}

	total := plan.Price + plan.Price*plan.TaxRate
	now := time.Now()

	subId := uuid.New()
	sub := &entity.UserSubscription{
		Id:            subId,
		UserId:        userId,
		PlanId:        plan.Id,
		Status:        entity.SubscriptionStatusPending,
		PaymentStatus: entity.PaymentStatusPending,
		StartedAt:     now,
		ExpiresAt:     now, // real term is set on activation
		Amount:        total,
		Currency:      plan.Currency,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := uow.SubscriptionRepository().CreateSubscription(ctx, sub); err != nil {
		return nil, err
	}

	finishRedirectURL := fmt.Sprintf("%s/app?payment=success", s.clientURL)

	snapReq := &snap.Request{
		TransactionDetails: midtrans.TransactionDetails{
			OrderID:  subId.String(),
			GrossAmt: int64(total),
		},
		CreditCard: &snap.CreditCardDetails{
			Secure: true,
		},
		Callbacks: &snap.Callbacks{
			Finish: finishRedirectURL,
		},
		CustomerDetail: &midtrans.CustomerDetails{
			FName: req.FirstName,
			LName: req.LastName,
			Email: req.Email,
			Phone: req.Phone,
		},
		Items: &[]midtrans.ItemDetails{
			{
				ID:    plan.Id.String(),
				Price: int64(plan.Price),
				Qty:   1,
				Name:  plan.Name,
			},
		},
		EnabledPayments: snap.AllSnapPaymentType,
	}

	snapResp, midErr := s.snapClient.CreateTransaction(snapReq)
	if midErr != nil {
		return nil, fmt.Errorf("midtrans error: %v", midErr.GetMessage())
	}

	return &dto.CheckoutResponse{
		SubscriptionId:  subId,
		OrderId:         subId.String(),
		SnapToken:       snapResp.Token,
		SnapRedirectUrl: snapResp.RedirectURL,
	}, nil
}

func (s *paymentService) HandleNotification(ctx context.Context, req *dto.MidtransWebhookRequest) error {
	if s.paymentCfg.MidtransServerKey == "" {
		return errors.New("payment server key not configured")
	}

	// Midtrans signature = SHA512(order_id + status_code + gross_amount + server_key)
	signatureInput := req.OrderId + req.StatusCode + req.GrossAmount + s.paymentCfg.MidtransServerKey
	expected := fmt.Sprintf("%x", sha512.Sum512([]byte(signatureInput)))
	if subtle.ConstantTimeCompare([]byte(expected), []byte(req.SignatureKey)) != 1 {
		s.logger.Warn("PaymentService", "Webhook signature mismatch", map[string]interface{}{
			"order_id": req.OrderId,
		})
		return ErrInvalidSignature
	}

	subId, err := uuid.Parse(req.OrderId)
	if err != nil {
		return fmt.Errorf("invalid order id format: %s", req.OrderId)
	}

	switch req.TransactionStatus {
	case "capture", "settlement":
		return s.activate(ctx, subId, req, false)
	case "deny", "cancel", "expire":
		return s.markFailed(ctx, subId, req)
	case "pending":
		return nil
	default:
		s.logger.Info("PaymentService", "Unhandled transaction status", map[string]interface{}{
			"order_id": req.OrderId,
			"status":   req.TransactionStatus,
		})
		return nil
	}
}

// activate flips a subscription to active and stamps the term from the
// moment of activation, not checkout. Repeated callbacks are no-ops.
func (s *paymentService) activate(ctx context.Context, subId uuid.UUID, req *dto.MidtransWebhookRequest, isTest bool) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	sub, err := uow.SubscriptionRepository().FindOneSubscription(ctx, specification.ByID{ID: subId})
	if err != nil {
		return err
	}
	if sub == nil {
		return ErrSubscriptionNotFound
	}

	if sub.Status == entity.SubscriptionStatusActive && sub.PaymentStatus == entity.PaymentStatusPaid {
		return nil // already processed
	}

	plan, err := uow.SubscriptionRepository().FindOnePlan(ctx, specification.ByID{ID: sub.PlanId})
	if err != nil {
		return err
	}
	if plan == nil {
		return ErrPlanNotFound
	}

	now := time.Now()
	sub.Status = entity.SubscriptionStatusActive
	sub.PaymentStatus = entity.PaymentStatusPaid
	sub.StartedAt = now
	sub.ExpiresAt = now.AddDate(0, plan.MonthsPerTerm, 0)
	sub.IsTest = isTest
	sub.UpdatedAt = now
	if req.OrderId != "" {
		orderId := req.OrderId
		sub.MidtransTransactionId = &orderId
	}

	if err := uow.SubscriptionRepository().UpdateSubscription(ctx, sub); err != nil {
		return err
	}

	amount := sub.Amount
	if v, perr := strconv.ParseFloat(req.GrossAmount, 64); perr == nil && v > 0 {
		amount = v
	}

	rawStatus := req.TransactionStatus
	if isTest {
		rawStatus = "simulated"
	}
	record := entity.PaymentRecord{
		Id:                   uuid.New(),
		UserId:               sub.UserId,
		OrderId:              subId.String(),
		Amount:               amount,
		Currency:             sub.Currency,
		Status:               entity.PaymentStatusPaid,
		IsTest:               isTest,
		RawTransactionStatus: rawStatus,
		CreatedAt:            now,
	}
	if err := uow.SubscriptionRepository().CreatePaymentRecord(ctx, &record); err != nil {
		return err
	}

	if err := uow.Commit(); err != nil {
		return err
	}

	s.logger.Info("PaymentService", "Subscription activated", map[string]interface{}{
		"subscription_id": subId.String(),
		"user_id":         sub.UserId.String(),
		"plan_slug":       plan.Slug,
		"is_test":         isTest,
	})

	if s.eventPublisher != nil {
		evt := events.NewSubscriptionPaid(sub.UserId.String(), plan.Slug, amount)
		if err := s.eventPublisher.Publish(ctx, evt); err != nil {
			s.logger.Warn("PaymentService", "Failed to publish event", map[string]interface{}{
				"type":  evt.EventType(),
				"error": err.Error(),
			})
		}
	}

	// Receipt is best-effort; the activation already committed.
	if s.emailService != nil && !isTest {
		user, uerr := s.uowFactory.NewUnitOfWork(ctx).UserRepository().FindOne(ctx, specification.ByID{ID: sub.UserId})
		if uerr == nil && user != nil {
			if merr := s.emailService.SendPaymentReceipt(user.Email, plan.Name, amount, sub.Currency); merr != nil {
				s.logger.Warn("PaymentService", "Failed to send receipt", map[string]interface{}{
					"user_id": sub.UserId.String(),
					"error":   merr.Error(),
				})
			}
		}
	}

	return nil
}

func (s *paymentService) markFailed(ctx context.Context, subId uuid.UUID, req *dto.MidtransWebhookRequest) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	sub, err := uow.SubscriptionRepository().FindOneSubscription(ctx, specification.ByID{ID: subId})
	if err != nil {
		return err
	}
	if sub == nil {
		return ErrSubscriptionNotFound
	}
	if sub.PaymentStatus == entity.PaymentStatusFailed {
		return nil
	}

	now := time.Now()
	sub.PaymentStatus = entity.PaymentStatusFailed
	// A pending checkout that the provider denied or let expire is dead;
	// park it in a terminal status so it never shadows a live term.
	if sub.Status == entity.SubscriptionStatusPending {
		sub.Status = entity.SubscriptionStatusCanceled
	}
	sub.UpdatedAt = now
	if err := uow.SubscriptionRepository().UpdateSubscription(ctx, sub); err != nil {
		return err
	}

	amount := sub.Amount
	if v, perr := strconv.ParseFloat(req.GrossAmount, 64); perr == nil && v > 0 {
		amount = v
	}
	record := entity.PaymentRecord{
		Id:                   uuid.New(),
		UserId:               sub.UserId,
		OrderId:              subId.String(),
		Amount:               amount,
		Currency:             sub.Currency,
		Status:               entity.PaymentStatusFailed,
		RawTransactionStatus: req.TransactionStatus,
		CreatedAt:            now,
	}
	if err := uow.SubscriptionRepository().CreatePaymentRecord(ctx, &record); err != nil {
		return err
	}

	return uow.Commit()
}

func (s *paymentService) SimulatePayment(ctx context.Context, userId uuid.UUID, req *dto.SimulatePaymentRequest) (*dto.SubscriptionResponse, error) {
	if s.environment == "production" {
		return nil, ErrSimulationDisabled
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	sub, err := uow.SubscriptionRepository().FindOneSubscription(ctx,
		specification.ByID{ID: req.SubscriptionId},
		specification.OwnedBy{UserId: userId},
	)
	if err != nil {
		return nil, err
	}
	if sub == nil {
		return nil, ErrSubscriptionNotFound
	}

	fakeReq := &dto.MidtransWebhookRequest{
		OrderId:           sub.Id.String(),
		TransactionStatus: "settlement",
		GrossAmount:       fmt.Sprintf("%.2f", sub.Amount),
	}
	if err := s.activate(ctx, sub.Id, fakeReq, true); err != nil {
		return nil, err
	}

	return s.GetSubscription(ctx, userId)
}

func (s *paymentService) GetSubscription(ctx context.Context, userId uuid.UUID) (*dto.SubscriptionResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	sub, err := uow.SubscriptionRepository().FindOneSubscription(ctx,
		specification.OwnedBy{UserId: userId},
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}
	if sub == nil {
		return nil, nil
	}

	res := dto.SubscriptionResponse{
		Id:            sub.Id,
		PlanId:        sub.PlanId,
		Status:        string(sub.Status),
		PaymentStatus: string(sub.PaymentStatus),
		StartedAt:     sub.StartedAt,
		ExpiresAt:     sub.ExpiresAt,
		IsTest:        sub.IsTest,
	}
	if plan, perr := uow.SubscriptionRepository().FindOnePlan(ctx, specification.ByID{ID: sub.PlanId}); perr == nil && plan != nil {
		res.PlanName = plan.Name
	}
	return &res, nil
}

func (s *paymentService) Cancel(ctx context.Context, userId uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	sub, err := uow.SubscriptionRepository().FindOneSubscription(ctx,
		specification.OwnedBy{UserId: userId},
		specification.ByStatus{Status: entity.SubscriptionStatusActive},
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return err
	}
	if sub == nil {
		return errors.New("no active subscription found")
	}

	sub.Status = entity.SubscriptionStatusCanceled
	sub.UpdatedAt = time.Now()
	return uow.SubscriptionRepository().UpdateSubscription(ctx, sub)
}

func (s *paymentService) Validate(ctx context.Context, userId uuid.UUID) (*dto.ValidateSubscriptionResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	sub, err := uow.SubscriptionRepository().FindOneSubscription(ctx,
		specification.OwnedBy{UserId: userId},
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}
	if sub == nil {
		return &dto.ValidateSubscriptionResponse{
			Valid:  false,
			Status: "free_tier",
		}, nil
	}

	now := time.Now()
	if sub.Status == entity.SubscriptionStatusActive && !sub.ExpiresAt.After(now) {
		sub.Status = entity.SubscriptionStatusExpired
		sub.UpdatedAt = now
		if err := uow.SubscriptionRepository().UpdateSubscription(ctx, sub); err != nil {
			return nil, err
		}
	}

	expiresAt := sub.ExpiresAt
	return &dto.ValidateSubscriptionResponse{
		Valid:     sub.ActiveAt(now),
		Status:    string(sub.Status),
		ExpiresAt: &expiresAt,
	}, nil
}
