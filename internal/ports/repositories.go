package ports

import (
	"context"
	"time"

	"github.com/seu-repo/translog/internal/domain"
)

// Page carries the list pagination/sorting convention shared by every
// collection endpoint: page, limit, sortBy, order (asc|desc).
type Page struct {
	Page   int
	Limit  int
	SortBy string
	Order  string
}

func (p Page) Offset() int {
	if p.Page < 1 {
		return 0
	}
	return (p.Page - 1) * p.Limit
}

// Pages computes the page count for a total row count.
func (p Page) Pages(total int64) int {
	if p.Limit <= 0 {
		return 1
	}
	pages := int(total) / p.Limit
	if int(total)%p.Limit != 0 {
		pages++
	}
	if pages == 0 {
		pages = 1
	}
	return pages
}

type UserRepository interface {
	Save(ctx context.Context, user *domain.User) error
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindAll(ctx context.Context, role domain.UserRole, page Page) ([]domain.User, int64, error)
	Delete(ctx context.Context, id string) error
}

type WorkerRepository interface {
	Save(ctx context.Context, worker *domain.Worker) error
	FindByID(ctx context.Context, id string) (*domain.Worker, error)
	FindByUserID(ctx context.Context, userID string) (*domain.Worker, error)
	FindAll(ctx context.Context, onlyAvailable bool, page Page) ([]domain.Worker, int64, error)
	SetAvailability(ctx context.Context, id string, available bool, status domain.WorkerStatus) error
	AddRating(ctx context.Context, id string, rating float64) error
	Delete(ctx context.Context, id string) error
}

// TransferFilter narrows transfer listings.
type TransferFilter struct {
	UserID   string
	WorkerID string
	Status   domain.TransferStatus
}

type TransferRepository interface {
	Save(ctx context.Context, transfer *domain.Transfer) error
	// FindByID returns the transfer with owner, worker and complaint joined.
	FindByID(ctx context.Context, id string) (*domain.Transfer, error)
	FindAll(ctx context.Context, filter TransferFilter, page Page) ([]domain.Transfer, int64, error)
	// ApplyWriteBatch persists a planned lifecycle transition atomically:
	// the transfer patch, every worker patch and the optional notification
	// commit or roll back together.
	ApplyWriteBatch(ctx context.Context, batch *domain.TransferWriteBatch) error
	Delete(ctx context.Context, id string) error
}

type ComplaintRepository interface {
	Save(ctx context.Context, complaint *domain.Complaint) error
	// FindByID returns the complaint with its ordered response thread.
	FindByID(ctx context.Context, id string) (*domain.Complaint, error)
	FindAll(ctx context.Context, userID string, status domain.ComplaintStatus, page Page) ([]domain.Complaint, int64, error)
	// AppendResponse appends to the thread and, when newStatus is non-nil,
	// flips the complaint status in the same transaction.
	AppendResponse(ctx context.Context, response *domain.ComplaintResponse, newStatus *domain.ComplaintStatus) error
	UpdateStatus(ctx context.Context, id string, status domain.ComplaintStatus, closedBy *string, closedAt *time.Time) error
	Delete(ctx context.Context, id string) error
}

type NotificationRepository interface {
	// Save persists the notification together with its target rows.
	Save(ctx context.Context, notification *domain.Notification) error
	FindByID(ctx context.Context, id string) (*domain.Notification, error)
	// FindVisible returns unexpired notifications addressed to the user
	// (global or targeted), newest first. read partitions on the presence of
	// the user's read receipt; nil returns both.
	FindVisible(ctx context.Context, userID string, read *bool, page Page) ([]domain.Notification, int64, error)
	FindAll(ctx context.Context, page Page) ([]domain.Notification, int64, error)
	// MarkRead appends a read receipt; already-read is a no-op, not an error.
	MarkRead(ctx context.Context, notificationID, userID string, at time.Time) error
	// MarkAllRead appends receipts for every currently-unread visible
	// notification in one batch. Returns the number of receipts written.
	MarkAllRead(ctx context.Context, userID string, at time.Time) (int64, error)
	Delete(ctx context.Context, id string) error
}

type AdRepository interface {
	Save(ctx context.Context, ad *domain.Ad) error
	FindByID(ctx context.Context, id string) (*domain.Ad, error)
	FindAll(ctx context.Context, activeOnly bool, page Page) ([]domain.Ad, int64, error)
	Delete(ctx context.Context, id string) error
}

type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	Delete(ctx context.Context, key string) error
	Ping() error
	Close() error
}
