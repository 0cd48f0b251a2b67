package email

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/seu-repo/translog/internal/domain"
	"github.com/seu-repo/translog/internal/observability/telemetry"
)

// Provider sends a single message through a concrete backend.
type Provider interface {
	Name() string
	Send(ctx context.Context, to, subject, htmlBody string) error
}

type Service struct {
	provider Provider
	fromName string
	log      *zap.Logger
}

func NewService(provider Provider, fromName string, log *zap.Logger) *Service {
	return &Service{provider: provider, fromName: fromName, log: log}
}

func (s *Service) Send(ctx context.Context, to, subject, body string) error {
	if err := s.provider.Send(ctx, to, subject, body); err != nil {
		telemetry.EmailsSent.WithLabelValues("error").Inc()
		s.log.Error("email send failed",
			zap.String("provider", s.provider.Name()),
			zap.String("to", to),
			zap.Error(err),
		)
		return err
	}
	telemetry.EmailsSent.WithLabelValues("sent").Inc()
	return nil
}

// SendTransferStatusChanged emails the transfer owner about a status change.
// Users who opted out of email notifications are skipped silently.
func (s *Service) SendTransferStatusChanged(ctx context.Context, user *domain.User, transfer *domain.Transfer) error {
	if user == nil || !user.NotifyByEmail {
		return nil
	}

	subject := fmt.Sprintf("Transfer update: %s", transfer.Status)
	body := fmt.Sprintf(`
		<h2>Hello %s,</h2>
		<p>Your transfer from <strong>%s</strong> to <strong>%s</strong> is now <strong>%s</strong>.</p>
		<p>— %s</p>`,
		user.Name, transfer.Origin, transfer.Destination, transfer.Status, s.fromName)

	return s.Send(ctx, user.Email, subject, body)
}
