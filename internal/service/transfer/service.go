package transfer

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/seu-repo/translog/internal/adapter/queue"
	"github.com/seu-repo/translog/internal/domain"
	"github.com/seu-repo/translog/internal/observability/telemetry"
	"github.com/seu-repo/translog/internal/ports"
)

// SubjectTransferStatus carries transfer status events to the websocket hub
// and the notification email worker.
const SubjectTransferStatus = "transfers.status"

// StatusEvent is the queue payload published on every status change.
type StatusEvent struct {
	TransferID string                `json:"transfer_id"`
	UserID     string                `json:"user_id"`
	WorkerID   string                `json:"worker_id,omitempty"`
	Status     domain.TransferStatus `json:"status"`
	At         time.Time             `json:"at"`
}

type Service struct {
	transferRepo ports.TransferRepository
	workerRepo   ports.WorkerRepository
	mq           queue.MessageQueue
	log          *zap.Logger
	now          func() time.Time
}

func NewService(transferRepo ports.TransferRepository, workerRepo ports.WorkerRepository, mq queue.MessageQueue, log *zap.Logger) *Service {
	return &Service{
		transferRepo: transferRepo,
		workerRepo:   workerRepo,
		mq:           mq,
		log:          log,
		now:          time.Now,
	}
}

func (s *Service) Create(ctx context.Context, actor *domain.User, in ports.TransferCreate) (*domain.Transfer, error) {
	fields := map[string]string{}
	if in.Origin == "" {
		fields["origin"] = "origin is required"
	}
	if in.Destination == "" {
		fields["destination"] = "destination is required"
	}
	if len(in.Items) == 0 {
		fields["items"] = "at least one item is required"
	}
	if in.Total < 0 {
		fields["total"] = "total must not be negative"
	}
	for _, item := range in.Items {
		if item.Name == "" {
			fields["items.name"] = "item name is required"
		}
		if item.Weight < 0 {
			fields["items.weight"] = "item weight must not be negative"
		}
	}
	if len(fields) > 0 {
		return nil, domain.NewValidation(fields)
	}

	now := s.now()
	t := &domain.Transfer{
		ID:            uuid.NewString(),
		UserID:        actor.ID,
		Items:         in.Items,
		Total:         in.Total,
		Status:        domain.TransferStatusPending,
		PaymentStatus: domain.PaymentStatusPending,
		Origin:        in.Origin,
		Destination:   in.Destination,
		PickupAt:      in.PickupAt,
		DeliveryAt:    in.DeliveryAt,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	for i := range t.Items {
		t.Items[i].ID = uuid.NewString()
		t.Items[i].TransferID = t.ID
	}

	if err := s.transferRepo.Save(ctx, t); err != nil {
		return nil, err
	}

	s.log.Info("transfer created",
		zap.String("transfer_id", t.ID),
		zap.String("user_id", actor.ID),
	)
	return t, nil
}

func (s *Service) Get(ctx context.Context, actor *domain.User, id string) (*domain.Transfer, error) {
	t, err := s.transferRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, domain.ErrNotFound
	}
	if err := s.authorize(ctx, actor, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *Service) List(ctx context.Context, actor *domain.User, filter ports.TransferFilter, page ports.Page) ([]domain.Transfer, int64, error) {
	switch actor.Role {
	case domain.UserRoleAdmin:
		// admins see everything, filter as requested
	case domain.UserRoleWorker:
		w, err := s.workerRepo.FindByUserID(ctx, actor.ID)
		if err != nil {
			return nil, 0, err
		}
		if w == nil {
			return nil, 0, domain.ErrForbidden
		}
		filter.WorkerID = w.ID
		filter.UserID = ""
	default:
		filter.UserID = actor.ID
		filter.WorkerID = ""
	}
	return s.transferRepo.FindAll(ctx, filter, page)
}

// Update applies a partial update through the lifecycle engine. All implied
// writes (transfer patch, worker reconciliation, owner notification) are
// committed in one transaction, then a status event is published.
func (s *Service) Update(ctx context.Context, actor *domain.User, id string, upd ports.TransferUpdate) (*domain.Transfer, error) {
	t, err := s.transferRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, domain.ErrNotFound
	}
	if err := s.authorize(ctx, actor, t); err != nil {
		return nil, err
	}
	if err := s.validateUpdate(ctx, upd); err != nil {
		return nil, err
	}

	batch := PlanTransition(t, upd, s.now())
	if err := s.transferRepo.ApplyWriteBatch(ctx, batch); err != nil {
		return nil, err
	}

	updated, err := s.transferRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if batch.StatusChanged {
		telemetry.TransferTransitions.WithLabelValues(string(batch.NewStatus)).Inc()
		s.publishStatusEvent(updated, batch.NewStatus)
	}

	return updated, nil
}

func (s *Service) Rate(ctx context.Context, actor *domain.User, id string, rating float64) (*domain.Transfer, error) {
	t, err := s.transferRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, domain.ErrNotFound
	}
	if actor.Role != domain.UserRoleAdmin && t.UserID != actor.ID {
		return nil, domain.ErrForbidden
	}

	fields := map[string]string{}
	if t.Status != domain.TransferStatusCompleted {
		fields["status"] = "only completed transfers can be rated"
	}
	if rating < 1 || rating > 5 {
		fields["rating"] = "rating must be between 1 and 5"
	}
	if len(fields) > 0 {
		return nil, domain.NewValidation(fields)
	}

	batch := &domain.TransferWriteBatch{
		TransferID: id,
		Patch:      map[string]interface{}{"rating": rating},
		NewStatus:  t.Status,
	}
	if err := s.transferRepo.ApplyWriteBatch(ctx, batch); err != nil {
		return nil, err
	}
	if t.WorkerID != nil {
		if err := s.workerRepo.AddRating(ctx, *t.WorkerID, rating); err != nil {
			return nil, err
		}
	}
	return s.transferRepo.FindByID(ctx, id)
}

func (s *Service) Delete(ctx context.Context, actor *domain.User, id string) error {
	if actor.Role != domain.UserRoleAdmin {
		return domain.ErrForbidden
	}
	t, err := s.transferRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if t == nil {
		return domain.ErrNotFound
	}
	return s.transferRepo.Delete(ctx, id)
}

// authorize allows the owner, an admin, or the assigned worker.
func (s *Service) authorize(ctx context.Context, actor *domain.User, t *domain.Transfer) error {
	if actor.Role == domain.UserRoleAdmin || t.UserID == actor.ID {
		return nil
	}
	if actor.Role == domain.UserRoleWorker && t.WorkerID != nil {
		w, err := s.workerRepo.FindByUserID(ctx, actor.ID)
		if err != nil {
			return err
		}
		if w != nil && w.ID == *t.WorkerID {
			return nil
		}
	}
	return domain.ErrForbidden
}

func (s *Service) validateUpdate(ctx context.Context, upd ports.TransferUpdate) error {
	fields := map[string]string{}
	if upd.Status != nil && !upd.Status.Valid() {
		fields["status"] = "invalid status"
	}
	if upd.PaymentStatus != nil && !upd.PaymentStatus.Valid() {
		fields["paymentStatus"] = "invalid payment status"
	}
	if upd.Total != nil && *upd.Total < 0 {
		fields["total"] = "total must not be negative"
	}
	if upd.WorkerID != nil {
		if _, err := uuid.Parse(*upd.WorkerID); err != nil {
			fields["workerId"] = "invalid worker id"
		} else {
			w, err := s.workerRepo.FindByID(ctx, *upd.WorkerID)
			if err != nil {
				return err
			}
			if w == nil {
				fields["workerId"] = "worker not found"
			}
		}
	}
	if len(fields) > 0 {
		return domain.NewValidation(fields)
	}
	return nil
}

func (s *Service) publishStatusEvent(t *domain.Transfer, status domain.TransferStatus) {
	ev := StatusEvent{
		TransferID: t.ID,
		UserID:     t.UserID,
		Status:     status,
		At:         s.now(),
	}
	if t.WorkerID != nil {
		ev.WorkerID = *t.WorkerID
	}
	data, err := json.Marshal(ev)
	if err != nil {
		s.log.Error("marshal status event", zap.Error(err))
		return
	}
	if err := s.mq.Publish(SubjectTransferStatus, data); err != nil {
		s.log.Error("publish status event",
			zap.String("transfer_id", t.ID),
			zap.Error(err),
		)
	}
}
