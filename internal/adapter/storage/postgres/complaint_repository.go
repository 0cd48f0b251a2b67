package postgres

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/seu-repo/translog/internal/domain"
	"github.com/seu-repo/translog/internal/ports"
)

type ComplaintRepository struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewComplaintRepository(db *gorm.DB, log *zap.Logger) ports.ComplaintRepository {
	return &ComplaintRepository{db: db, log: log}
}

func (r *ComplaintRepository) Save(ctx context.Context, complaint *domain.Complaint) error {
	return r.db.WithContext(ctx).Save(complaint).Error
}

func (r *ComplaintRepository) FindByID(ctx context.Context, id string) (*domain.Complaint, error) {
	var complaint domain.Complaint
	err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Responses", func(db *gorm.DB) *gorm.DB {
			return db.Order("complaint_responses.created_at ASC")
		}).
		Preload("Responses.Responder").
		First(&complaint, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &complaint, nil
}

func (r *ComplaintRepository) FindAll(ctx context.Context, userID string, status domain.ComplaintStatus, page ports.Page) ([]domain.Complaint, int64, error) {
	q := r.db.WithContext(ctx).Model(&domain.Complaint{})
	if userID != "" {
		q = q.Where("user_id = ?", userID)
	}
	if status != "" {
		q = q.Where("status = ?", status)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var complaints []domain.Complaint
	order := sortClause(page.SortBy, page.Order, map[string]bool{
		"created_at": true, "status": true, "updated_at": true,
	})
	err := q.Preload("User").Order(order).Offset(page.Offset()).Limit(page.Limit).Find(&complaints).Error
	return complaints, total, err
}

// AppendResponse appends to the thread and flips the complaint status in the
// same transaction when newStatus is set.
func (r *ComplaintRepository) AppendResponse(ctx context.Context, response *domain.ComplaintResponse, newStatus *domain.ComplaintStatus) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(response).Error; err != nil {
			return err
		}
		if newStatus != nil {
			return tx.Model(&domain.Complaint{}).
				Where("id = ?", response.ComplaintID).
				Update("status", *newStatus).Error
		}
		return nil
	})
}

func (r *ComplaintRepository) UpdateStatus(ctx context.Context, id string, status domain.ComplaintStatus, closedBy *string, closedAt *time.Time) error {
	updates := map[string]interface{}{"status": status}
	if closedBy != nil {
		updates["closed_by"] = *closedBy
	}
	if closedAt != nil {
		updates["closed_at"] = *closedAt
	}
	res := r.db.WithContext(ctx).Model(&domain.Complaint{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *ComplaintRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&domain.Complaint{}, "id = ?", id).Error
}
