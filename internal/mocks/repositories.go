package mocks

import (
	"context"
	"time"

	"github.com/seu-repo/translog/internal/domain"
	"github.com/seu-repo/translog/internal/ports"
)

// MockUserRepository is a mock implementation of UserRepository
type MockUserRepository struct {
	SaveFunc        func(ctx context.Context, user *domain.User) error
	FindByIDFunc    func(ctx context.Context, id string) (*domain.User, error)
	FindByEmailFunc func(ctx context.Context, email string) (*domain.User, error)
	FindAllFunc     func(ctx context.Context, role domain.UserRole, page ports.Page) ([]domain.User, int64, error)
	DeleteFunc      func(ctx context.Context, id string) error
}

func (m *MockUserRepository) Save(ctx context.Context, user *domain.User) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, user)
	}
	return nil
}

func (m *MockUserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	if m.FindByEmailFunc != nil {
		return m.FindByEmailFunc(ctx, email)
	}
	return nil, nil
}

func (m *MockUserRepository) FindAll(ctx context.Context, role domain.UserRole, page ports.Page) ([]domain.User, int64, error) {
	if m.FindAllFunc != nil {
		return m.FindAllFunc(ctx, role, page)
	}
	return []domain.User{}, 0, nil
}

func (m *MockUserRepository) Delete(ctx context.Context, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

// MockWorkerRepository is a mock implementation of WorkerRepository
type MockWorkerRepository struct {
	SaveFunc            func(ctx context.Context, worker *domain.Worker) error
	FindByIDFunc        func(ctx context.Context, id string) (*domain.Worker, error)
	FindByUserIDFunc    func(ctx context.Context, userID string) (*domain.Worker, error)
	FindAllFunc         func(ctx context.Context, onlyAvailable bool, page ports.Page) ([]domain.Worker, int64, error)
	SetAvailabilityFunc func(ctx context.Context, id string, available bool, status domain.WorkerStatus) error
	AddRatingFunc       func(ctx context.Context, id string, rating float64) error
	DeleteFunc          func(ctx context.Context, id string) error
}

func (m *MockWorkerRepository) Save(ctx context.Context, worker *domain.Worker) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, worker)
	}
	return nil
}

func (m *MockWorkerRepository) FindByID(ctx context.Context, id string) (*domain.Worker, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockWorkerRepository) FindByUserID(ctx context.Context, userID string) (*domain.Worker, error) {
	if m.FindByUserIDFunc != nil {
		return m.FindByUserIDFunc(ctx, userID)
	}
	return nil, nil
}

func (m *MockWorkerRepository) FindAll(ctx context.Context, onlyAvailable bool, page ports.Page) ([]domain.Worker, int64, error) {
	if m.FindAllFunc != nil {
		return m.FindAllFunc(ctx, onlyAvailable, page)
	}
	return []domain.Worker{}, 0, nil
}

func (m *MockWorkerRepository) SetAvailability(ctx context.Context, id string, available bool, status domain.WorkerStatus) error {
	if m.SetAvailabilityFunc != nil {
		return m.SetAvailabilityFunc(ctx, id, available, status)
	}
	return nil
}

func (m *MockWorkerRepository) AddRating(ctx context.Context, id string, rating float64) error {
	if m.AddRatingFunc != nil {
		return m.AddRatingFunc(ctx, id, rating)
	}
	return nil
}

func (m *MockWorkerRepository) Delete(ctx context.Context, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

// MockTransferRepository is a mock implementation of TransferRepository
type MockTransferRepository struct {
	SaveFunc            func(ctx context.Context, transfer *domain.Transfer) error
	FindByIDFunc        func(ctx context.Context, id string) (*domain.Transfer, error)
	FindAllFunc         func(ctx context.Context, filter ports.TransferFilter, page ports.Page) ([]domain.Transfer, int64, error)
	ApplyWriteBatchFunc func(ctx context.Context, batch *domain.TransferWriteBatch) error
	DeleteFunc          func(ctx context.Context, id string) error
}

func (m *MockTransferRepository) Save(ctx context.Context, transfer *domain.Transfer) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, transfer)
	}
	return nil
}

func (m *MockTransferRepository) FindByID(ctx context.Context, id string) (*domain.Transfer, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockTransferRepository) FindAll(ctx context.Context, filter ports.TransferFilter, page ports.Page) ([]domain.Transfer, int64, error) {
	if m.FindAllFunc != nil {
		return m.FindAllFunc(ctx, filter, page)
	}
	return []domain.Transfer{}, 0, nil
}

func (m *MockTransferRepository) ApplyWriteBatch(ctx context.Context, batch *domain.TransferWriteBatch) error {
	if m.ApplyWriteBatchFunc != nil {
		return m.ApplyWriteBatchFunc(ctx, batch)
	}
	return nil
}

func (m *MockTransferRepository) Delete(ctx context.Context, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

// MockComplaintRepository is a mock implementation of ComplaintRepository
type MockComplaintRepository struct {
	SaveFunc           func(ctx context.Context, complaint *domain.Complaint) error
	FindByIDFunc       func(ctx context.Context, id string) (*domain.Complaint, error)
	FindAllFunc        func(ctx context.Context, userID string, status domain.ComplaintStatus, page ports.Page) ([]domain.Complaint, int64, error)
	AppendResponseFunc func(ctx context.Context, response *domain.ComplaintResponse, newStatus *domain.ComplaintStatus) error
	UpdateStatusFunc   func(ctx context.Context, id string, status domain.ComplaintStatus, closedBy *string, closedAt *time.Time) error
	DeleteFunc         func(ctx context.Context, id string) error
}

func (m *MockComplaintRepository) Save(ctx context.Context, complaint *domain.Complaint) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, complaint)
	}
	return nil
}

func (m *MockComplaintRepository) FindByID(ctx context.Context, id string) (*domain.Complaint, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockComplaintRepository) FindAll(ctx context.Context, userID string, status domain.ComplaintStatus, page ports.Page) ([]domain.Complaint, int64, error) {
	if m.FindAllFunc != nil {
		return m.FindAllFunc(ctx, userID, status, page)
	}
	return []domain.Complaint{}, 0, nil
}

func (m *MockComplaintRepository) AppendResponse(ctx context.Context, response *domain.ComplaintResponse, newStatus *domain.ComplaintStatus) error {
	if m.AppendResponseFunc != nil {
		return m.AppendResponseFunc(ctx, response, newStatus)
	}
	return nil
}

func (m *MockComplaintRepository) UpdateStatus(ctx context.Context, id string, status domain.ComplaintStatus, closedBy *string, closedAt *time.Time) error {
	if m.UpdateStatusFunc != nil {
		return m.UpdateStatusFunc(ctx, id, status, closedBy, closedAt)
	}
	return nil
}

func (m *MockComplaintRepository) Delete(ctx context.Context, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

// MockNotificationRepository is a mock implementation of NotificationRepository
type MockNotificationRepository struct {
	SaveFunc        func(ctx context.Context, notification *domain.Notification) error
	FindByIDFunc    func(ctx context.Context, id string) (*domain.Notification, error)
	FindVisibleFunc func(ctx context.Context, userID string, read *bool, page ports.Page) ([]domain.Notification, int64, error)
	FindAllFunc     func(ctx context.Context, page ports.Page) ([]domain.Notification, int64, error)
	MarkReadFunc    func(ctx context.Context, notificationID, userID string, at time.Time) error
	MarkAllReadFunc func(ctx context.Context, userID string, at time.Time) (int64, error)
	DeleteFunc      func(ctx context.Context, id string) error
}

func (m *MockNotificationRepository) Save(ctx context.Context, notification *domain.Notification) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, notification)
	}
	return nil
}

func (m *MockNotificationRepository) FindByID(ctx context.Context, id string) (*domain.Notification, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockNotificationRepository) FindVisible(ctx context.Context, userID string, read *bool, page ports.Page) ([]domain.Notification, int64, error) {
	if m.FindVisibleFunc != nil {
		return m.FindVisibleFunc(ctx, userID, read, page)
	}
	return []domain.Notification{}, 0, nil
}

func (m *MockNotificationRepository) FindAll(ctx context.Context, page ports.Page) ([]domain.Notification, int64, error) {
	if m.FindAllFunc != nil {
		return m.FindAllFunc(ctx, page)
	}
	return []domain.Notification{}, 0, nil
}

func (m *MockNotificationRepository) MarkRead(ctx context.Context, notificationID, userID string, at time.Time) error {
	if m.MarkReadFunc != nil {
		return m.MarkReadFunc(ctx, notificationID, userID, at)
	}
	return nil
}

func (m *MockNotificationRepository) MarkAllRead(ctx context.Context, userID string, at time.Time) (int64, error) {
	if m.MarkAllReadFunc != nil {
		return m.MarkAllReadFunc(ctx, userID, at)
	}
	return 0, nil
}

func (m *MockNotificationRepository) Delete(ctx context.Context, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

// MockAdRepository is a mock implementation of AdRepository
type MockAdRepository struct {
	SaveFunc     func(ctx context.Context, ad *domain.Ad) error
	FindByIDFunc func(ctx context.Context, id string) (*domain.Ad, error)
	FindAllFunc  func(ctx context.Context, activeOnly bool, page ports.Page) ([]domain.Ad, int64, error)
	DeleteFunc   func(ctx context.Context, id string) error
}

func (m *MockAdRepository) Save(ctx context.Context, ad *domain.Ad) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, ad)
	}
	return nil
}

func (m *MockAdRepository) FindByID(ctx context.Context, id string) (*domain.Ad, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockAdRepository) FindAll(ctx context.Context, activeOnly bool, page ports.Page) ([]domain.Ad, int64, error) {
	if m.FindAllFunc != nil {
		return m.FindAllFunc(ctx, activeOnly, page)
	}
	return []domain.Ad{}, 0, nil
}

func (m *MockAdRepository) Delete(ctx context.Context, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}
