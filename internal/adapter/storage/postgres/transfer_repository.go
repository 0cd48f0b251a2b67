package postgres

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/seu-repo/translog/internal/domain"
	"github.com/seu-repo/translog/internal/observability/telemetry"
	"github.com/seu-repo/translog/internal/ports"
)

type TransferRepository struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewTransferRepository(db *gorm.DB, log *zap.Logger) ports.TransferRepository {
	return &TransferRepository{db: db, log: log}
}

func (r *TransferRepository) Save(ctx context.Context, transfer *domain.Transfer) error {
	return r.db.WithContext(ctx).Save(transfer).Error
}

func (r *TransferRepository) FindByID(ctx context.Context, id string) (*domain.Transfer, error) {
	var transfer domain.Transfer
	err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Worker").
		Preload("Worker.User").
		Preload("Complaint").
		Preload("Items").
		First(&transfer, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	if transfer.Worker != nil {
		transfer.Worker.Rating = transfer.Worker.AverageRating()
	}
	return &transfer, nil
}

func (r *TransferRepository) FindAll(ctx context.Context, filter ports.TransferFilter, page ports.Page) ([]domain.Transfer, int64, error) {
	q := r.db.WithContext(ctx).Model(&domain.Transfer{})
	if filter.UserID != "" {
		q = q.Where("user_id = ?", filter.UserID)
	}
	if filter.WorkerID != "" {
		q = q.Where("worker_id = ?", filter.WorkerID)
	}
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var transfers []domain.Transfer
	order := sortClause(page.SortBy, page.Order, map[string]bool{
		"created_at": true, "total": true, "status": true, "updated_at": true,
	})
	err := q.Preload("User").Preload("Worker").Preload("Items").
		Order(order).Offset(page.Offset()).Limit(page.Limit).Find(&transfers).Error
	return transfers, total, err
}

// ApplyWriteBatch commits a planned lifecycle transition atomically. The
// transfer patch, worker patches and status notification either all land or
// none do, so worker availability can never drift from the assignment even
// under concurrent updates.
func (r *TransferRepository) ApplyWriteBatch(ctx context.Context, batch *domain.TransferWriteBatch) error {
	start := time.Now()
	defer func() {
		telemetry.DatabaseLatency.Observe(time.Since(start).Seconds())
	}()

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if len(batch.Patch) > 0 {
			res := tx.Model(&domain.Transfer{}).Where("id = ?", batch.TransferID).Updates(batch.Patch)
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return domain.ErrNotFound
			}
		}

		for _, wp := range batch.WorkerPatches {
			updates := map[string]interface{}{
				"is_available": wp.IsAvailable,
				"status":       wp.Status,
			}
			if wp.IncrementCompletedJobs {
				updates["completed_jobs"] = gorm.Expr("completed_jobs + 1")
			}
			if err := tx.Model(&domain.Worker{}).Where("id = ?", wp.WorkerID).Updates(updates).Error; err != nil {
				return err
			}
		}

		if batch.Notification != nil {
			n := batch.Notification
			for i := range n.Targets {
				n.Targets[i].NotificationID = n.ID
			}
			if err := tx.Create(n).Error; err != nil {
				return err
			}
			telemetry.NotificationsCreated.Inc()
		}

		return nil
	})
}

func (r *TransferRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&domain.Transfer{}, "id = ?", id).Error
}
