package complaint

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/seu-repo/translog/internal/domain"
	"github.com/seu-repo/translog/internal/ports"
)

const statusNotificationTTL = 7 * 24 * time.Hour

type Service struct {
	complaintRepo    ports.ComplaintRepository
	transferRepo     ports.TransferRepository
	notificationRepo ports.NotificationRepository
	log              *zap.Logger
	now              func() time.Time
}

func NewService(complaintRepo ports.ComplaintRepository, transferRepo ports.TransferRepository, notificationRepo ports.NotificationRepository, log *zap.Logger) *Service {
	return &Service{
		complaintRepo:    complaintRepo,
		transferRepo:     transferRepo,
		notificationRepo: notificationRepo,
		log:              log,
		now:              time.Now,
	}
}

func (s *Service) Create(ctx context.Context, actor *domain.User, in ports.ComplaintCreate) (*domain.Complaint, error) {
	fields := map[string]string{}
	if in.TransferID == "" {
		fields["transferId"] = "transfer id is required"
	}
	if in.Subject == "" {
		fields["subject"] = "subject is required"
	}
	if in.Message == "" {
		fields["message"] = "message is required"
	}
	if len(fields) > 0 {
		return nil, domain.NewValidation(fields)
	}

	t, err := s.transferRepo.FindByID(ctx, in.TransferID)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, domain.NewValidation(map[string]string{"transferId": "transfer not found"})
	}
	if actor.Role != domain.UserRoleAdmin && t.UserID != actor.ID {
		return nil, domain.ErrForbidden
	}

	now := s.now()
	c := &domain.Complaint{
		ID:         uuid.NewString(),
		UserID:     actor.ID,
		TransferID: in.TransferID,
		Subject:    in.Subject,
		Message:    in.Message,
		Status:     domain.ComplaintStatusPending,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.complaintRepo.Save(ctx, c); err != nil {
		return nil, err
	}

	s.log.Info("complaint created",
		zap.String("complaint_id", c.ID),
		zap.String("transfer_id", in.TransferID),
	)
	return c, nil
}

func (s *Service) Get(ctx context.Context, actor *domain.User, id string) (*domain.Complaint, error) {
	c, err := s.complaintRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	if actor.Role != domain.UserRoleAdmin && c.UserID != actor.ID {
		return nil, domain.ErrForbidden
	}
	return c, nil
}

func (s *Service) List(ctx context.Context, actor *domain.User, status domain.ComplaintStatus, page ports.Page) ([]domain.Complaint, int64, error) {
	userID := ""
	if actor.Role != domain.UserRoleAdmin {
		userID = actor.ID
	}
	return s.complaintRepo.FindAll(ctx, userID, status, page)
}

// Respond appends to the thread. An admin response moves a pending complaint
// to in_progress; a customer response moves in_progress back to pending, so
// the queue always shows whose turn it is.
func (s *Service) Respond(ctx context.Context, actor *domain.User, id, message string, attachments []string) (*domain.Complaint, error) {
	if message == "" {
		return nil, domain.NewValidation(map[string]string{"message": "message is required"})
	}

	c, err := s.complaintRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	if actor.Role != domain.UserRoleAdmin && c.UserID != actor.ID {
		return nil, domain.ErrForbidden
	}
	if c.Status == domain.ComplaintStatusClosed {
		return nil, domain.NewValidation(map[string]string{"status": "complaint is closed"})
	}

	now := s.now()
	response := &domain.ComplaintResponse{
		ID:          uuid.NewString(),
		ComplaintID: c.ID,
		ResponderID: actor.ID,
		Role:        actor.Role,
		Message:     message,
		Attachments: attachments,
		CreatedAt:   now,
	}

	var newStatus *domain.ComplaintStatus
	if actor.Role == domain.UserRoleAdmin && c.Status == domain.ComplaintStatusPending {
		st := domain.ComplaintStatusInProgress
		newStatus = &st
	}
	if actor.Role != domain.UserRoleAdmin && c.Status == domain.ComplaintStatusInProgress {
		st := domain.ComplaintStatusPending
		newStatus = &st
	}

	if err := s.complaintRepo.AppendResponse(ctx, response, newStatus); err != nil {
		return nil, err
	}

	if actor.Role == domain.UserRoleAdmin && c.UserID != actor.ID {
		s.notifyOwner(ctx, c, "New response on your complaint",
			fmt.Sprintf("An agent responded to %q", c.Subject), now)
	}

	return s.complaintRepo.FindByID(ctx, id)
}

// UpdateStatus is admin-only. Closing stamps closedAt/closedBy and is
// irreversible.
func (s *Service) UpdateStatus(ctx context.Context, actor *domain.User, id string, status domain.ComplaintStatus) (*domain.Complaint, error) {
	if actor.Role != domain.UserRoleAdmin {
		return nil, domain.ErrForbidden
	}
	if !status.Valid() {
		return nil, domain.NewValidation(map[string]string{"status": "invalid status"})
	}

	c, err := s.complaintRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	if c.Status == domain.ComplaintStatusClosed {
		return nil, domain.NewValidation(map[string]string{"status": "complaint is closed"})
	}
	if c.Status == status {
		return c, nil
	}

	now := s.now()
	var closedBy *string
	var closedAt *time.Time
	if status == domain.ComplaintStatusClosed {
		closedBy = &actor.ID
		closedAt = &now
	}

	if err := s.complaintRepo.UpdateStatus(ctx, id, status, closedBy, closedAt); err != nil {
		return nil, err
	}

	s.notifyOwner(ctx, c, "Complaint status changed",
		fmt.Sprintf("Your complaint %q is now %s", c.Subject, status), now)

	return s.complaintRepo.FindByID(ctx, id)
}

func (s *Service) Delete(ctx context.Context, actor *domain.User, id string) error {
	if actor.Role != domain.UserRoleAdmin {
		return domain.ErrForbidden
	}
	c, err := s.complaintRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if c == nil {
		return domain.ErrNotFound
	}
	return s.complaintRepo.Delete(ctx, id)
}

func (s *Service) notifyOwner(ctx context.Context, c *domain.Complaint, title, message string, now time.Time) {
	n := &domain.Notification{
		ID:       uuid.NewString(),
		Title:    title,
		Message:  message,
		Type:     domain.NotificationTypeInfo,
		IsGlobal: false,
		Targets: []domain.NotificationTarget{
			{UserID: c.UserID},
		},
		SendNow:    true,
		ExpiresAt:  now.Add(statusNotificationTTL),
		RedirectTo: "/complaints/" + c.ID,
		CreatedAt:  now,
	}
	if err := s.notificationRepo.Save(ctx, n); err != nil {
		s.log.Error("notify complaint owner",
			zap.String("complaint_id", c.ID),
			zap.Error(err),
		)
	}
}
