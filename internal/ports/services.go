package ports

import (
	"context"
	"time"

	"github.com/seu-repo/translog/internal/domain"
)

type AuthService interface {
	Login(ctx context.Context, email, password string) (string, string, error) // access, refresh, err
	Register(ctx context.Context, user *domain.User) error
	// RefreshToken verifies the refresh token signature and re-issues both
	// tokens. There is no stored registry; revocation before expiry is out
	// of scope.
	RefreshToken(ctx context.Context, refreshToken string) (string, string, error)
	// ValidateToken verifies the signature and reloads the identity from
	// storage so deleted or altered accounts are reflected immediately.
	ValidateToken(ctx context.Context, token string) (*domain.User, error)
}

// TransferCreate is the customer-facing creation payload.
type TransferCreate struct {
	Items       []domain.TransferItem
	Total       float64
	Origin      string
	Destination string
	PickupAt    *time.Time
	DeliveryAt  *time.Time
}

// TransferUpdate is a partial update; nil fields are left untouched. A
// non-nil WorkerID assigns (or reassigns) the transfer.
type TransferUpdate struct {
	WorkerID      *string
	Status        *domain.TransferStatus
	PaymentStatus *domain.PaymentStatus
	Origin        *string
	Destination   *string
	PickupAt      *time.Time
	DeliveryAt    *time.Time
	Total         *float64
}

type TransferService interface {
	Create(ctx context.Context, actor *domain.User, in TransferCreate) (*domain.Transfer, error)
	Get(ctx context.Context, actor *domain.User, id string) (*domain.Transfer, error)
	List(ctx context.Context, actor *domain.User, filter TransferFilter, page Page) ([]domain.Transfer, int64, error)
	// Update applies a partial update through the lifecycle engine, keeping
	// worker availability and notifications consistent with the new status.
	Update(ctx context.Context, actor *domain.User, id string, upd TransferUpdate) (*domain.Transfer, error)
	// Rate records the post-completion rating and folds it into the
	// worker's aggregate.
	Rate(ctx context.Context, actor *domain.User, id string, rating float64) (*domain.Transfer, error)
	Delete(ctx context.Context, actor *domain.User, id string) error
}

type ComplaintCreate struct {
	TransferID string
	Subject    string
	Message    string
}

type ComplaintService interface {
	Create(ctx context.Context, actor *domain.User, in ComplaintCreate) (*domain.Complaint, error)
	Get(ctx context.Context, actor *domain.User, id string) (*domain.Complaint, error)
	List(ctx context.Context, actor *domain.User, status domain.ComplaintStatus, page Page) ([]domain.Complaint, int64, error)
	// Respond appends to the thread. Closed complaints reject posts. An
	// admin response moves pending complaints to in_progress; a customer
	// response moves in_progress back to pending.
	Respond(ctx context.Context, actor *domain.User, id, message string, attachments []string) (*domain.Complaint, error)
	// UpdateStatus is admin-only for terminal states; closing stamps
	// closedAt/closedBy and is irreversible.
	UpdateStatus(ctx context.Context, actor *domain.User, id string, status domain.ComplaintStatus) (*domain.Complaint, error)
	Delete(ctx context.Context, actor *domain.User, id string) error
}

type NotificationCreate struct {
	Title       string
	Message     string
	Type        domain.NotificationType
	IsGlobal    bool
	TargetUsers []string
	SendNow     bool
	SendAt      *time.Time
	ExpiresAt   *time.Time
	RedirectTo  string
}

type NotificationService interface {
	Create(ctx context.Context, actor *domain.User, in NotificationCreate) (*domain.Notification, error)
	MyNotifications(ctx context.Context, actor *domain.User, read *bool, page Page) ([]domain.Notification, int64, error)
	MarkRead(ctx context.Context, actor *domain.User, id string) error
	MarkAllRead(ctx context.Context, actor *domain.User) (int64, error)
	List(ctx context.Context, actor *domain.User, page Page) ([]domain.Notification, int64, error)
	Delete(ctx context.Context, actor *domain.User, id string) error
}

type PaymentService interface {
	// CreateIntent opens a provider payment intent for the transfer's total
	// and returns the client secret for client-side confirmation.
	CreateIntent(ctx context.Context, actor *domain.User, transferID string) (string, error)
	// Confirm flips the transfer's payment status to paid (or failed).
	Confirm(ctx context.Context, transferID string, succeeded bool) error
	// Refund refunds a paid transfer; admin only.
	Refund(ctx context.Context, actor *domain.User, transferID string) error
}

type EmailService interface {
	Send(ctx context.Context, to, subject, body string) error
	SendTransferStatusChanged(ctx context.Context, user *domain.User, transfer *domain.Transfer) error
}
