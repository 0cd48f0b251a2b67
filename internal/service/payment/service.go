package payment

import (
	"context"
	"fmt"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/paymentintent"
	"github.com/stripe/stripe-go/v76/refund"
	"go.uber.org/zap"

	"github.com/seu-repo/translog/internal/domain"
	"github.com/seu-repo/translog/internal/ports"
)

// Service charges transfers through Stripe payment intents. The intent id is
// stored on the transfer as the payment reference; the client confirms the
// intent with the returned secret.
type Service struct {
	transferRepo ports.TransferRepository
	log          *zap.Logger
}

func NewService(transferRepo ports.TransferRepository, secretKey string, log *zap.Logger) *Service {
	stripe.Key = secretKey
	return &Service{transferRepo: transferRepo, log: log}
}

func (s *Service) CreateIntent(ctx context.Context, actor *domain.User, transferID string) (string, error) {
	t, err := s.transferRepo.FindByID(ctx, transferID)
	if err != nil {
		return "", err
	}
	if t == nil {
		return "", domain.ErrNotFound
	}
	if actor.Role != domain.UserRoleAdmin && t.UserID != actor.ID {
		return "", domain.ErrForbidden
	}
	if t.PaymentStatus == domain.PaymentStatusPaid {
		return "", domain.NewValidation(map[string]string{"paymentStatus": "transfer is already paid"})
	}
	if t.Total <= 0 {
		return "", domain.NewValidation(map[string]string{"total": "transfer total must be positive"})
	}

	currency := t.Currency
	if currency == "" {
		currency = "usd"
	}

	// Stripe expects the amount in cents.
	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(int64(t.Total * 100)),
		Currency: stripe.String(currency),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
		Metadata: map[string]string{
			"transfer_id": t.ID,
			"user_id":     t.UserID,
		},
	}

	pi, err := paymentintent.New(params)
	if err != nil {
		return "", fmt.Errorf("stripe error: %w", err)
	}

	batch := &domain.TransferWriteBatch{
		TransferID: t.ID,
		Patch:      map[string]interface{}{"payment_ref": pi.ID},
		NewStatus:  t.Status,
	}
	if err := s.transferRepo.ApplyWriteBatch(ctx, batch); err != nil {
		return "", err
	}

	s.log.Info("payment intent created",
		zap.String("transfer_id", t.ID),
		zap.String("intent_id", pi.ID),
	)
	return pi.ClientSecret, nil
}

func (s *Service) Confirm(ctx context.Context, transferID string, succeeded bool) error {
	t, err := s.transferRepo.FindByID(ctx, transferID)
	if err != nil {
		return err
	}
	if t == nil {
		return domain.ErrNotFound
	}

	status := domain.PaymentStatusPaid
	if !succeeded {
		status = domain.PaymentStatusFailed
	}

	batch := &domain.TransferWriteBatch{
		TransferID: t.ID,
		Patch:      map[string]interface{}{"payment_status": status},
		NewStatus:  t.Status,
	}
	return s.transferRepo.ApplyWriteBatch(ctx, batch)
}

func (s *Service) Refund(ctx context.Context, actor *domain.User, transferID string) error {
	if actor.Role != domain.UserRoleAdmin {
		return domain.ErrForbidden
	}

	t, err := s.transferRepo.FindByID(ctx, transferID)
	if err != nil {
		return err
	}
	if t == nil {
		return domain.ErrNotFound
	}
	if t.PaymentStatus != domain.PaymentStatusPaid {
		return domain.NewValidation(map[string]string{"paymentStatus": "only paid transfers can be refunded"})
	}
	if t.PaymentRef == "" {
		return domain.NewValidation(map[string]string{"paymentRef": "transfer has no payment reference"})
	}

	if _, err := refund.New(&stripe.RefundParams{
		PaymentIntent: stripe.String(t.PaymentRef),
	}); err != nil {
		return fmt.Errorf("stripe refund error: %w", err)
	}

	batch := &domain.TransferWriteBatch{
		TransferID: t.ID,
		Patch:      map[string]interface{}{"payment_status": domain.PaymentStatusRefunded},
		NewStatus:  t.Status,
	}
	if err := s.transferRepo.ApplyWriteBatch(ctx, batch); err != nil {
		return err
	}

	s.log.Info("payment refunded",
		zap.String("transfer_id", t.ID),
		zap.String("intent_id", t.PaymentRef),
	)
	return nil
}
