package notification

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/seu-repo/translog/internal/domain"
	"github.com/seu-repo/translog/internal/mocks"
	"github.com/seu-repo/translog/internal/ports"
)

func newTestService(repo *mocks.MockNotificationRepository) *Service {
	svc := NewService(repo, zap.NewNop())
	svc.now = func() time.Time { return time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC) }
	return svc
}

func admin() *domain.User {
	return &domain.User{ID: "admin-1", Role: domain.UserRoleAdmin}
}

func validCreate() ports.NotificationCreate {
	return ports.NotificationCreate{
		Title:    "Maintenance",
		Message:  "Scheduled downtime tonight",
		IsGlobal: true,
		SendNow:  true,
	}
}

func TestCreateIsAdminOnly(t *testing.T) {
	svc := newTestService(&mocks.MockNotificationRepository{})

	_, err := svc.Create(context.Background(), &domain.User{ID: "u-1", Role: domain.UserRoleCustomer}, validCreate())

	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected forbidden, got %v", err)
	}
}

func TestCreateRejectsGlobalWithTargets(t *testing.T) {
	svc := newTestService(&mocks.MockNotificationRepository{})

	in := validCreate()
	in.TargetUsers = []string{"u-1"}
	_, err := svc.Create(context.Background(), admin(), in)

	verr, ok := domain.AsValidation(err)
	if !ok {
		t.Fatalf("expected validation error, got %v", err)
	}
	if _, present := verr.Fields["targetUsers"]; !present {
		t.Errorf("expected targetUsers field, got %v", verr.Fields)
	}
}

func TestCreateRejectsNeitherGlobalNorTargets(t *testing.T) {
	svc := newTestService(&mocks.MockNotificationRepository{})

	in := validCreate()
	in.IsGlobal = false
	_, err := svc.Create(context.Background(), admin(), in)

	if _, ok := domain.AsValidation(err); !ok {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestCreateRejectsSendNowWithSendAt(t *testing.T) {
	svc := newTestService(&mocks.MockNotificationRepository{})

	at := time.Now().Add(time.Hour)
	in := validCreate()
	in.SendAt = &at
	_, err := svc.Create(context.Background(), admin(), in)

	verr, ok := domain.AsValidation(err)
	if !ok {
		t.Fatalf("expected validation error, got %v", err)
	}
	if _, present := verr.Fields["sendAt"]; !present {
		t.Errorf("expected sendAt field, got %v", verr.Fields)
	}
}

func TestCreateDefaultsExpiryAndType(t *testing.T) {
	// Arrange
	var saved *domain.Notification
	repo := &mocks.MockNotificationRepository{
		SaveFunc: func(ctx context.Context, n *domain.Notification) error {
			saved = n
			return nil
		},
	}
	svc := newTestService(repo)

	// Act
	_, err := svc.Create(context.Background(), admin(), validCreate())

	// Assert
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if saved.Type != domain.NotificationTypeInfo {
		t.Errorf("expected default info type, got %s", saved.Type)
	}
	wantExpiry := svc.now().Add(defaultTTL)
	if !saved.ExpiresAt.Equal(wantExpiry) {
		t.Errorf("expected default expiry %v, got %v", wantExpiry, saved.ExpiresAt)
	}
	if saved.CreatedBy != "admin-1" {
		t.Errorf("expected creator stamp, got %q", saved.CreatedBy)
	}
}

func TestCreateTargetedBuildsTargetRows(t *testing.T) {
	var saved *domain.Notification
	repo := &mocks.MockNotificationRepository{
		SaveFunc: func(ctx context.Context, n *domain.Notification) error {
			saved = n
			return nil
		},
	}
	svc := newTestService(repo)

	in := validCreate()
	in.IsGlobal = false
	in.TargetUsers = []string{"u-1", "u-2"}
	_, err := svc.Create(context.Background(), admin(), in)

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(saved.Targets) != 2 {
		t.Fatalf("expected 2 targets, got %d", len(saved.Targets))
	}
	for _, target := range saved.Targets {
		if target.NotificationID != saved.ID {
			t.Errorf("target not linked to notification: %+v", target)
		}
	}
}

func TestMarkReadUnknownNotificationIsNotFound(t *testing.T) {
	svc := newTestService(&mocks.MockNotificationRepository{})

	err := svc.MarkRead(context.Background(), admin(), "missing")

	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestMarkAllReadReturnsReceiptCount(t *testing.T) {
	repo := &mocks.MockNotificationRepository{
		MarkAllReadFunc: func(ctx context.Context, userID string, at time.Time) (int64, error) {
			return 3, nil
		},
	}
	svc := newTestService(repo)

	count, err := svc.MarkAllRead(context.Background(), &domain.User{ID: "u-1", Role: domain.UserRoleCustomer})

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if count != 3 {
		t.Errorf("expected 3 receipts, got %d", count)
	}
}

func TestListIsAdminOnly(t *testing.T) {
	svc := newTestService(&mocks.MockNotificationRepository{})

	_, _, err := svc.List(context.Background(), &domain.User{ID: "u-1", Role: domain.UserRoleWorker}, ports.Page{Page: 1, Limit: 10})

	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected forbidden, got %v", err)
	}
}
