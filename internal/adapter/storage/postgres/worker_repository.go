package postgres

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/seu-repo/translog/internal/domain"
	"github.com/seu-repo/translog/internal/ports"
)

type WorkerRepository struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewWorkerRepository(db *gorm.DB, log *zap.Logger) ports.WorkerRepository {
	return &WorkerRepository{db: db, log: log}
}

func (r *WorkerRepository) Save(ctx context.Context, worker *domain.Worker) error {
	err := r.db.WithContext(ctx).Save(worker).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return domain.ErrConflict
	}
	return err
}

func (r *WorkerRepository) FindByID(ctx context.Context, id string) (*domain.Worker, error) {
	var worker domain.Worker
	err := r.db.WithContext(ctx).Preload("User").First(&worker, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	worker.Rating = worker.AverageRating()
	return &worker, nil
}

func (r *WorkerRepository) FindByUserID(ctx context.Context, userID string) (*domain.Worker, error) {
	var worker domain.Worker
	err := r.db.WithContext(ctx).Preload("User").First(&worker, "user_id = ?", userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	worker.Rating = worker.AverageRating()
	return &worker, nil
}

func (r *WorkerRepository) FindAll(ctx context.Context, onlyAvailable bool, page ports.Page) ([]domain.Worker, int64, error) {
	q := r.db.WithContext(ctx).Model(&domain.Worker{})
	if onlyAvailable {
		q = q.Where("is_available = ?", true)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var workers []domain.Worker
	order := sortClause(page.SortBy, page.Order, map[string]bool{
		"created_at": true, "completed_jobs": true, "status": true,
	})
	err := q.Preload("User").Order(order).Offset(page.Offset()).Limit(page.Limit).Find(&workers).Error
	if err != nil {
		return nil, 0, err
	}
	for i := range workers {
		workers[i].Rating = workers[i].AverageRating()
	}
	return workers, total, nil
}

func (r *WorkerRepository) SetAvailability(ctx context.Context, id string, available bool, status domain.WorkerStatus) error {
	res := r.db.WithContext(ctx).Model(&domain.Worker{}).Where("id = ?", id).
		Updates(map[string]interface{}{"is_available": available, "status": status})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *WorkerRepository) AddRating(ctx context.Context, id string, rating float64) error {
	return r.db.WithContext(ctx).Model(&domain.Worker{}).Where("id = ?", id).
		Updates(map[string]interface{}{
			"rating_sum":   gorm.Expr("rating_sum + ?", rating),
			"rating_count": gorm.Expr("rating_count + 1"),
		}).Error
}

func (r *WorkerRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&domain.Worker{}, "id = ?", id).Error
}
