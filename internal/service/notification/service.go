package notification

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/seu-repo/translog/internal/domain"
	"github.com/seu-repo/translog/internal/observability/telemetry"
	"github.com/seu-repo/translog/internal/ports"
)

// defaultTTL applies when the creator gives no expiry.
const defaultTTL = 30 * 24 * time.Hour

type Service struct {
	notificationRepo ports.NotificationRepository
	log              *zap.Logger
	now              func() time.Time
}

func NewService(notificationRepo ports.NotificationRepository, log *zap.Logger) *Service {
	return &Service{
		notificationRepo: notificationRepo,
		log:              log,
		now:              time.Now,
	}
}

// Create is admin-only. Addressing is exclusive: either global or an explicit
// target list, never both and never neither. Scheduling follows the same
// rule for sendNow versus sendAt.
func (s *Service) Create(ctx context.Context, actor *domain.User, in ports.NotificationCreate) (*domain.Notification, error) {
	if actor.Role != domain.UserRoleAdmin {
		return nil, domain.ErrForbidden
	}

	fields := map[string]string{}
	if in.Title == "" {
		fields["title"] = "title is required"
	}
	if in.Message == "" {
		fields["message"] = "message is required"
	}
	if in.Type != "" && !in.Type.Valid() {
		fields["type"] = "invalid type"
	}
	if in.IsGlobal == (len(in.TargetUsers) > 0) {
		fields["targetUsers"] = "exactly one of isGlobal or targetUsers must be set"
	}
	if in.SendNow == (in.SendAt != nil) {
		fields["sendAt"] = "exactly one of sendNow or sendAt must be set"
	}
	if len(fields) > 0 {
		return nil, domain.NewValidation(fields)
	}

	now := s.now()
	expiresAt := now.Add(defaultTTL)
	if in.ExpiresAt != nil {
		expiresAt = *in.ExpiresAt
	}

	nType := in.Type
	if nType == "" {
		nType = domain.NotificationTypeInfo
	}

	n := &domain.Notification{
		ID:         uuid.NewString(),
		Title:      in.Title,
		Message:    in.Message,
		Type:       nType,
		IsGlobal:   in.IsGlobal,
		SendNow:    in.SendNow,
		SendAt:     in.SendAt,
		ExpiresAt:  expiresAt,
		RedirectTo: in.RedirectTo,
		CreatedBy:  actor.ID,
		CreatedAt:  now,
	}
	for _, userID := range in.TargetUsers {
		n.Targets = append(n.Targets, domain.NotificationTarget{
			NotificationID: n.ID,
			UserID:         userID,
		})
	}

	if err := s.notificationRepo.Save(ctx, n); err != nil {
		return nil, err
	}

	telemetry.NotificationsCreated.Inc()
	s.log.Info("notification created",
		zap.String("notification_id", n.ID),
		zap.Bool("global", n.IsGlobal),
		zap.Int("targets", len(n.Targets)),
	)
	return n, nil
}

func (s *Service) MyNotifications(ctx context.Context, actor *domain.User, read *bool, page ports.Page) ([]domain.Notification, int64, error) {
	return s.notificationRepo.FindVisible(ctx, actor.ID, read, page)
}

func (s *Service) MarkRead(ctx context.Context, actor *domain.User, id string) error {
	n, err := s.notificationRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if n == nil {
		return domain.ErrNotFound
	}
	return s.notificationRepo.MarkRead(ctx, id, actor.ID, s.now())
}

func (s *Service) MarkAllRead(ctx context.Context, actor *domain.User) (int64, error) {
	return s.notificationRepo.MarkAllRead(ctx, actor.ID, s.now())
}

func (s *Service) List(ctx context.Context, actor *domain.User, page ports.Page) ([]domain.Notification, int64, error) {
	if actor.Role != domain.UserRoleAdmin {
		return nil, 0, domain.ErrForbidden
	}
	return s.notificationRepo.FindAll(ctx, page)
}

func (s *Service) Delete(ctx context.Context, actor *domain.User, id string) error {
	if actor.Role != domain.UserRoleAdmin {
		return domain.ErrForbidden
	}
	n, err := s.notificationRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if n == nil {
		return domain.ErrNotFound
	}
	return s.notificationRepo.Delete(ctx, id)
}
