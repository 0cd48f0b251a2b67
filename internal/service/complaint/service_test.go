package complaint

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

func newTestService(complaintRepo *mocks.MockComplaintRepository, transferRepo *mocks.MockTransferRepository, notificationRepo *mocks.MockNotificationRepository) *Service {
	svc := NewService(complaintRepo, transferRepo, notificationRepo, zap.NewNop())
	svc.now = func() time.Time { return time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC) }
	return svc
}

func admin() *domain.User {
	return &domain.User{ID: "admin-1", Role: domain.UserRoleAdmin}
}

func owner() *domain.User {
	return &domain.User{ID: "u-1", Role: domain.UserRoleCustomer}
}

func pendingComplaint() *domain.Complaint {
	return &domain.Complaint{
		ID:         "c-1",
		UserID:     "u-1",
		TransferID: "t-1",
		Subject:    "Damaged box",
		Status:     domain.ComplaintStatusPending,
	}
}

func TestCreateRequiresOwnedTransfer(t *testing.T) {
	transferRepo := &mocks.MockTransferRepository{
		FindByIDFunc: func(ctx context.Context, id string) (*domain.Transfer, error) {
			return &domain.Transfer{ID: "t-1", UserID: "someone-else"}, nil
		},
	}
	svc := newTestService(&mocks.MockComplaintRepository{}, transferRepo, &mocks.MockNotificationRepository{})

	_, err := svc.Create(context.Background(), owner(), ports.ComplaintCreate{
		TransferID: "t-1",
		Subject:    "Damaged box",
		Message:    "Corner crushed",
	})

	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected forbidden, got %v", err)
	}
}

func TestCreateStartsPending(t *testing.T) {
	// Arrange
	transferRepo := &mocks.MockTransferRepository{
		FindByIDFunc: func(ctx context.Context, id string) (*domain.Transfer, error) {
			return &domain.Transfer{ID: "t-1", UserID: "u-1"}, nil
		},
	}
	var saved *domain.Complaint
	complaintRepo := &mocks.MockComplaintRepository{
		SaveFunc: func(ctx context.Context, c *domain.Complaint) error {
			saved = c
			return nil
		},
	}
	svc := newTestService(complaintRepo, transferRepo, &mocks.MockNotificationRepository{})

	// Act
	_, err := svc.Create(context.Background(), owner(), ports.ComplaintCreate{
		TransferID: "t-1",
		Subject:    "Damaged box",
		Message:    "Corner crushed",
	})

	// Assert
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if saved.Status != domain.ComplaintStatusPending {
		t.Errorf("expected pending, got %s", saved.Status)
	}
	if saved.UserID != "u-1" {
		t.Errorf("expected owner u-1, got %s", saved.UserID)
	}
}

func TestRespondRejectsClosedComplaint(t *testing.T) {
	closed := pendingComplaint()
	closed.Status = domain.ComplaintStatusClosed
	complaintRepo := &mocks.MockComplaintRepository{
		FindByIDFunc: func(ctx context.Context, id string) (*domain.Complaint, error) {
			return closed, nil
		},
	}
	svc := newTestService(complaintRepo, &mocks.MockTransferRepository{}, &mocks.MockNotificationRepository{})

	_, err := svc.Respond(context.Background(), owner(), "c-1", "hello?", nil)

	verr, ok := domain.AsValidation(err)
	if !ok {
		t.Fatalf("expected validation error, got %v", err)
	}
	if _, present := verr.Fields["status"]; !present {
		t.Errorf("expected status field, got %v", verr.Fields)
	}
}

func TestAdminResponseMovesPendingToInProgress(t *testing.T) {
	// Arrange
	var gotStatus *domain.ComplaintStatus
	complaintRepo := &mocks.MockComplaintRepository{
		FindByIDFunc: func(ctx context.Context, id string) (*domain.Complaint, error) {
			return pendingComplaint(), nil
		},
		AppendResponseFunc: func(ctx context.Context, response *domain.ComplaintResponse, newStatus *domain.ComplaintStatus) error {
			gotStatus = newStatus
			return nil
		},
	}
	notificationRepo := &mocks.MockNotificationRepository{}
	svc := newTestService(complaintRepo, &mocks.MockTransferRepository{}, notificationRepo)

	// Act
	_, err := svc.Respond(context.Background(), admin(), "c-1", "We are on it", nil)

	// Assert
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotStatus == nil || *gotStatus != domain.ComplaintStatusInProgress {
		t.Fatalf("expected flip to in_progress, got %v", gotStatus)
	}
}

func TestCustomerResponseMovesInProgressBackToPending(t *testing.T) {
	inProgress := pendingComplaint()
	inProgress.Status = domain.ComplaintStatusInProgress
	var gotStatus *domain.ComplaintStatus
	complaintRepo := &mocks.MockComplaintRepository{
		FindByIDFunc: func(ctx context.Context, id string) (*domain.Complaint, error) {
			return inProgress, nil
		},
		AppendResponseFunc: func(ctx context.Context, response *domain.ComplaintResponse, newStatus *domain.ComplaintStatus) error {
			gotStatus = newStatus
			return nil
		},
	}
	svc := newTestService(complaintRepo, &mocks.MockTransferRepository{}, &mocks.MockNotificationRepository{})

	_, err := svc.Respond(context.Background(), owner(), "c-1", "still broken", nil)

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotStatus == nil || *gotStatus != domain.ComplaintStatusPending {
		t.Fatalf("expected flip back to pending, got %v", gotStatus)
	}
}

func TestAdminResponseNotifiesOwner(t *testing.T) {
	complaintRepo := &mocks.MockComplaintRepository{
		FindByIDFunc: func(ctx context.Context, id string) (*domain.Complaint, error) {
			return pendingComplaint(), nil
		},
	}
	var notified *domain.Notification
	notificationRepo := &mocks.MockNotificationRepository{
		SaveFunc: func(ctx context.Context, n *domain.Notification) error {
			notified = n
			return nil
		},
	}
	svc := newTestService(complaintRepo, &mocks.MockTransferRepository{}, notificationRepo)

	_, err := svc.Respond(context.Background(), admin(), "c-1", "We are on it", nil)

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if notified == nil {
		t.Fatal("expected owner notification")
	}
	if len(notified.Targets) != 1 || notified.Targets[0].UserID != "u-1" {
		t.Errorf("expected target u-1, got %+v", notified.Targets)
	}
}

func TestUpdateStatusIsAdminOnly(t *testing.T) {
	svc := newTestService(&mocks.MockComplaintRepository{}, &mocks.MockTransferRepository{}, &mocks.MockNotificationRepository{})

	_, err := svc.UpdateStatus(context.Background(), owner(), "c-1", domain.ComplaintStatusResolved)

	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected forbidden, got %v", err)
	}
}

func TestCloseStampsClosedByAndClosedAt(t *testing.T) {
	// Arrange
	var gotClosedBy *string
	var gotClosedAt *time.Time
	complaintRepo := &mocks.MockComplaintRepository{
		FindByIDFunc: func(ctx context.Context, id string) (*domain.Complaint, error) {
			return pendingComplaint(), nil
		},
		UpdateStatusFunc: func(ctx context.Context, id string, status domain.ComplaintStatus, closedBy *string, closedAt *time.Time) error {
			gotClosedBy = closedBy
			gotClosedAt = closedAt
			return nil
		},
	}
	svc := newTestService(complaintRepo, &mocks.MockTransferRepository{}, &mocks.MockNotificationRepository{})

	// Act
	_, err := svc.UpdateStatus(context.Background(), admin(), "c-1", domain.ComplaintStatusClosed)

	// Assert
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotClosedBy == nil || *gotClosedBy != "admin-1" {
		t.Errorf("expected closedBy admin-1, got %v", gotClosedBy)
	}
	if gotClosedAt == nil {
		t.Error("expected closedAt stamp")
	}
}

func TestClosedComplaintStatusIsIrreversible(t *testing.T) {
	closed := pendingComplaint()
	closed.Status = domain.ComplaintStatusClosed
	complaintRepo := &mocks.MockComplaintRepository{
		FindByIDFunc: func(ctx context.Context, id string) (*domain.Complaint, error) {
			return closed, nil
		},
	}
	svc := newTestService(complaintRepo, &mocks.MockTransferRepository{}, &mocks.MockNotificationRepository{})

	_, err := svc.UpdateStatus(context.Background(), admin(), "c-1", domain.ComplaintStatusPending)

	if _, ok := domain.AsValidation(err); !ok {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestGetHidesOthersComplaints(t *testing.T) {
	complaintRepo := &mocks.MockComplaintRepository{
		FindByIDFunc: func(ctx context.Context, id string) (*domain.Complaint, error) {
			return pendingComplaint(), nil
		},
	}
	svc := newTestService(complaintRepo, &mocks.MockTransferRepository{}, &mocks.MockNotificationRepository{})

	stranger := &domain.User{ID: "u-2", Role: domain.UserRoleCustomer}
	_, err := svc.Get(context.Background(), stranger, "c-1")

	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected forbidden, got %v", err)
	}
}

func TestListScopesNonAdminsToOwn(t *testing.T) {
	var gotUserID string
	complaintRepo := &mocks.MockComplaintRepository{
		FindAllFunc: func(ctx context.Context, userID string, status domain.ComplaintStatus, page ports.Page) ([]domain.Complaint, int64, error) {
			gotUserID = userID
			return nil, 0, nil
		},
	}
	svc := newTestService(complaintRepo, &mocks.MockTransferRepository{}, &mocks.MockNotificationRepository{})

	_, _, err := svc.List(context.Background(), owner(), "", ports.Page{Page: 1, Limit: 10})

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotUserID != "u-1" {
		t.Errorf("expected scope to u-1, got %q", gotUserID)
	}
}
