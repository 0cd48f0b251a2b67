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

type AdRepository struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewAdRepository(db *gorm.DB, log *zap.Logger) ports.AdRepository {
	return &AdRepository{db: db, log: log}
}

func (r *AdRepository) Save(ctx context.Context, ad *domain.Ad) error {
	return r.db.WithContext(ctx).Save(ad).Error
}

func (r *AdRepository) FindByID(ctx context.Context, id string) (*domain.Ad, error) {
	var ad domain.Ad
	err := r.db.WithContext(ctx).First(&ad, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &ad, nil
}

func (r *AdRepository) FindAll(ctx context.Context, activeOnly bool, page ports.Page) ([]domain.Ad, int64, error) {
	q := r.db.WithContext(ctx).Model(&domain.Ad{})
	if activeOnly {
		now := time.Now()
		q = q.Where("starts_at <= ? AND expires_at > ?", now, now)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var ads []domain.Ad
	order := sortClause(page.SortBy, page.Order, map[string]bool{
		"created_at": true, "starts_at": true, "expires_at": true, "title": true,
	})
	err := q.Order(order).Offset(page.Offset()).Limit(page.Limit).Find(&ads).Error
	return ads, total, err
}

func (r *AdRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&domain.Ad{}, "id = ?", id).Error
}
