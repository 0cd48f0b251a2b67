package transfer

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

func newTestService(transferRepo *mocks.MockTransferRepository, workerRepo *mocks.MockWorkerRepository, mq *mocks.MockMessageQueue) *Service {
	svc := NewService(transferRepo, workerRepo, mq, zap.NewNop())
	svc.now = func() time.Time { return time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC) }
	return svc
}

func adminUser() *domain.User {
	return &domain.User{ID: "admin-1", Role: domain.UserRoleAdmin}
}

func customerUser() *domain.User {
	return &domain.User{ID: "u-1", Role: domain.UserRoleCustomer}
}

func TestCreateValidatesRequiredFields(t *testing.T) {
	svc := newTestService(&mocks.MockTransferRepository{}, &mocks.MockWorkerRepository{}, &mocks.MockMessageQueue{})

	_, err := svc.Create(context.Background(), customerUser(), ports.TransferCreate{})

	verr, ok := domain.AsValidation(err)
	if !ok {
		t.Fatalf("expected validation error, got %v", err)
	}
	for _, field := range []string{"origin", "destination", "items"} {
		if _, present := verr.Fields[field]; !present {
			t.Errorf("expected %s in validation fields, got %v", field, verr.Fields)
		}
	}
}

func TestCreateSetsPendingStatuses(t *testing.T) {
	// Arrange
	var saved *domain.Transfer
	transferRepo := &mocks.MockTransferRepository{
		SaveFunc: func(ctx context.Context, tr *domain.Transfer) error {
			saved = tr
			return nil
		},
	}
	svc := newTestService(transferRepo, &mocks.MockWorkerRepository{}, &mocks.MockMessageQueue{})

	// Act
	_, err := svc.Create(context.Background(), customerUser(), ports.TransferCreate{
		Origin:      "Lisbon",
		Destination: "Porto",
		Total:       42,
		Items:       []domain.TransferItem{{Name: "box", Weight: 3}},
	})

	// Assert
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if saved.Status != domain.TransferStatusPending {
		t.Errorf("expected pending status, got %s", saved.Status)
	}
	if saved.PaymentStatus != domain.PaymentStatusPending {
		t.Errorf("expected pending payment status, got %s", saved.PaymentStatus)
	}
	if saved.UserID != "u-1" {
		t.Errorf("expected owner u-1, got %s", saved.UserID)
	}
	if saved.Items[0].TransferID != saved.ID {
		t.Error("expected item linked to transfer")
	}
}

func TestUpdatePublishesStatusEventOnChange(t *testing.T) {
	// Arrange
	existing := &domain.Transfer{
		ID:     "t-1",
		UserID: "u-1",
		Status: domain.TransferStatusInProgress,
	}
	transferRepo := &mocks.MockTransferRepository{
		FindByIDFunc: func(ctx context.Context, id string) (*domain.Transfer, error) {
			return existing, nil
		},
	}
	mq := &mocks.MockMessageQueue{}
	svc := newTestService(transferRepo, &mocks.MockWorkerRepository{}, mq)

	status := domain.TransferStatusCompleted

	// Act
	_, err := svc.Update(context.Background(), adminUser(), "t-1", ports.TransferUpdate{Status: &status})

	// Assert
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(mq.Published[SubjectTransferStatus]) != 1 {
		t.Fatalf("expected 1 status event, got %d", len(mq.Published[SubjectTransferStatus]))
	}
}

func TestUpdateDoesNotPublishWithoutStatusChange(t *testing.T) {
	existing := &domain.Transfer{ID: "t-1", UserID: "u-1", Status: domain.TransferStatusPending}
	transferRepo := &mocks.MockTransferRepository{
		FindByIDFunc: func(ctx context.Context, id string) (*domain.Transfer, error) {
			return existing, nil
		},
	}
	mq := &mocks.MockMessageQueue{}
	svc := newTestService(transferRepo, &mocks.MockWorkerRepository{}, mq)

	origin := "Faro"
	_, err := svc.Update(context.Background(), customerUser(), "t-1", ports.TransferUpdate{Origin: &origin})

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(mq.Published[SubjectTransferStatus]) != 0 {
		t.Error("no event expected for a field-only update")
	}
}

func TestUpdateRejectsStrangers(t *testing.T) {
	existing := &domain.Transfer{ID: "t-1", UserID: "owner", Status: domain.TransferStatusPending}
	transferRepo := &mocks.MockTransferRepository{
		FindByIDFunc: func(ctx context.Context, id string) (*domain.Transfer, error) {
			return existing, nil
		},
	}
	svc := newTestService(transferRepo, &mocks.MockWorkerRepository{}, &mocks.MockMessageQueue{})

	origin := "Faro"
	_, err := svc.Update(context.Background(), customerUser(), "t-1", ports.TransferUpdate{Origin: &origin})

	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected forbidden, got %v", err)
	}
}

func TestUpdateAllowsAssignedWorker(t *testing.T) {
	workerID := "w-1"
	existing := &domain.Transfer{
		ID:       "t-1",
		UserID:   "owner",
		WorkerID: &workerID,
		Status:   domain.TransferStatusInProgress,
	}
	transferRepo := &mocks.MockTransferRepository{
		FindByIDFunc: func(ctx context.Context, id string) (*domain.Transfer, error) {
			return existing, nil
		},
	}
	workerRepo := &mocks.MockWorkerRepository{
		FindByUserIDFunc: func(ctx context.Context, userID string) (*domain.Worker, error) {
			return &domain.Worker{ID: "w-1", UserID: userID}, nil
		},
	}
	svc := newTestService(transferRepo, workerRepo, &mocks.MockMessageQueue{})

	status := domain.TransferStatusOnTheWay
	actor := &domain.User{ID: "worker-user", Role: domain.UserRoleWorker}
	_, err := svc.Update(context.Background(), actor, "t-1", ports.TransferUpdate{Status: &status})

	if err != nil {
		t.Fatalf("expected assigned worker to update, got %v", err)
	}
}

func TestUpdateUnknownTransferIsNotFound(t *testing.T) {
	svc := newTestService(&mocks.MockTransferRepository{}, &mocks.MockWorkerRepository{}, &mocks.MockMessageQueue{})

	_, err := svc.Update(context.Background(), adminUser(), "missing", ports.TransferUpdate{})

	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestUpdateRejectsUnknownWorker(t *testing.T) {
	existing := &domain.Transfer{ID: "t-1", UserID: "u-1", Status: domain.TransferStatusPending}
	transferRepo := &mocks.MockTransferRepository{
		FindByIDFunc: func(ctx context.Context, id string) (*domain.Transfer, error) {
			return existing, nil
		},
	}
	workerRepo := &mocks.MockWorkerRepository{
		FindByIDFunc: func(ctx context.Context, id string) (*domain.Worker, error) {
			return nil, nil
		},
	}
	svc := newTestService(transferRepo, workerRepo, &mocks.MockMessageQueue{})

	workerID := "7f1a9f4e-0c5b-4f8a-9d27-3a61f3b1c111"
	_, err := svc.Update(context.Background(), adminUser(), "t-1", ports.TransferUpdate{WorkerID: &workerID})

	verr, ok := domain.AsValidation(err)
	if !ok {
		t.Fatalf("expected validation error, got %v", err)
	}
	if _, present := verr.Fields["workerId"]; !present {
		t.Errorf("expected workerId field, got %v", verr.Fields)
	}
}

func TestRateRequiresCompletedTransfer(t *testing.T) {
	existing := &domain.Transfer{ID: "t-1", UserID: "u-1", Status: domain.TransferStatusInProgress}
	transferRepo := &mocks.MockTransferRepository{
		FindByIDFunc: func(ctx context.Context, id string) (*domain.Transfer, error) {
			return existing, nil
		},
	}
	svc := newTestService(transferRepo, &mocks.MockWorkerRepository{}, &mocks.MockMessageQueue{})

	_, err := svc.Rate(context.Background(), customerUser(), "t-1", 4)

	if _, ok := domain.AsValidation(err); !ok {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestRateFoldsIntoWorkerAggregate(t *testing.T) {
	workerID := "w-1"
	existing := &domain.Transfer{
		ID:       "t-1",
		UserID:   "u-1",
		WorkerID: &workerID,
		Status:   domain.TransferStatusCompleted,
	}
	transferRepo := &mocks.MockTransferRepository{
		FindByIDFunc: func(ctx context.Context, id string) (*domain.Transfer, error) {
			return existing, nil
		},
	}
	var ratedWorker string
	var rated float64
	workerRepo := &mocks.MockWorkerRepository{
		AddRatingFunc: func(ctx context.Context, id string, rating float64) error {
			ratedWorker = id
			rated = rating
			return nil
		},
	}
	svc := newTestService(transferRepo, workerRepo, &mocks.MockMessageQueue{})

	_, err := svc.Rate(context.Background(), customerUser(), "t-1", 5)

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ratedWorker != "w-1" || rated != 5 {
		t.Errorf("expected rating 5 on w-1, got %f on %s", rated, ratedWorker)
	}
}

func TestDeleteIsAdminOnly(t *testing.T) {
	svc := newTestService(&mocks.MockTransferRepository{}, &mocks.MockWorkerRepository{}, &mocks.MockMessageQueue{})

	err := svc.Delete(context.Background(), customerUser(), "t-1")

	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected forbidden, got %v", err)
	}
}

func TestListScopesWorkerToOwnAssignments(t *testing.T) {
	var gotFilter ports.TransferFilter
	transferRepo := &mocks.MockTransferRepository{
		FindAllFunc: func(ctx context.Context, filter ports.TransferFilter, page ports.Page) ([]domain.Transfer, int64, error) {
			gotFilter = filter
			return nil, 0, nil
		},
	}
	workerRepo := &mocks.MockWorkerRepository{
		FindByUserIDFunc: func(ctx context.Context, userID string) (*domain.Worker, error) {
			return &domain.Worker{ID: "w-1", UserID: userID}, nil
		},
	}
	svc := newTestService(transferRepo, workerRepo, &mocks.MockMessageQueue{})

	actor := &domain.User{ID: "worker-user", Role: domain.UserRoleWorker}
	_, _, err := svc.List(context.Background(), actor, ports.TransferFilter{UserID: "sneaky"}, ports.Page{Page: 1, Limit: 10})

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotFilter.WorkerID != "w-1" || gotFilter.UserID != "" {
		t.Errorf("expected filter scoped to worker, got %+v", gotFilter)
	}
}
