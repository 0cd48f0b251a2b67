package postgres

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/seu-repo/translog/internal/domain"
	"github.com/seu-repo/translog/internal/observability/telemetry"
	"github.com/seu-repo/translog/internal/ports"
)

type NotificationRepository struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewNotificationRepository(db *gorm.DB, log *zap.Logger) ports.NotificationRepository {
	return &NotificationRepository{db: db, log: log}
}

func (r *NotificationRepository) Save(ctx context.Context, notification *domain.Notification) error {
	for i := range notification.Targets {
		notification.Targets[i].NotificationID = notification.ID
	}
	if err := r.db.WithContext(ctx).Create(notification).Error; err != nil {
		return err
	}
	telemetry.NotificationsCreated.Inc()
	return nil
}

func (r *NotificationRepository) FindByID(ctx context.Context, id string) (*domain.Notification, error) {
	var notification domain.Notification
	err := r.db.WithContext(ctx).
		Preload("Targets").
		Preload("ReadBy").
		First(&notification, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &notification, nil
}

// visibleScope limits to unexpired notifications addressed to the user,
// either globally or through a target row.
func visibleScope(userID string, now time.Time) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("notifications.expires_at > ?", now).
			Where(
				"notifications.is_global = ? OR EXISTS (SELECT 1 FROM notification_targets t WHERE t.notification_id = notifications.id AND t.user_id = ?)",
				true, userID,
			)
	}
}

func (r *NotificationRepository) FindVisible(ctx context.Context, userID string, read *bool, page ports.Page) ([]domain.Notification, int64, error) {
	now := time.Now()
	q := r.db.WithContext(ctx).Model(&domain.Notification{}).Scopes(visibleScope(userID, now))

	if read != nil {
		receipt := "EXISTS (SELECT 1 FROM notification_reads rr WHERE rr.notification_id = notifications.id AND rr.user_id = ?)"
		if *read {
			q = q.Where(receipt, userID)
		} else {
			q = q.Where("NOT "+receipt, userID)
		}
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var notifications []domain.Notification
	err := q.Preload("ReadBy").
		Order("notifications.created_at DESC").
		Offset(page.Offset()).Limit(page.Limit).
		Find(&notifications).Error
	return notifications, total, err
}

func (r *NotificationRepository) FindAll(ctx context.Context, page ports.Page) ([]domain.Notification, int64, error) {
	q := r.db.WithContext(ctx).Model(&domain.Notification{})

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var notifications []domain.Notification
	order := sortClause(page.SortBy, page.Order, map[string]bool{
		"created_at": true, "expires_at": true, "type": true,
	})
	err := q.Preload("Targets").Preload("ReadBy").
		Order(order).Offset(page.Offset()).Limit(page.Limit).
		Find(&notifications).Error
	return notifications, total, err
}

// MarkRead appends a read receipt; a duplicate is silently ignored so the
// operation is idempotent.
func (r *NotificationRepository) MarkRead(ctx context.Context, notificationID, userID string, at time.Time) error {
	receipt := domain.NotificationRead{
		NotificationID: notificationID,
		UserID:         userID,
		ReadAt:         at,
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&receipt).Error
}

// MarkAllRead writes a receipt for every currently-unread visible
// notification in one statement.
func (r *NotificationRepository) MarkAllRead(ctx context.Context, userID string, at time.Time) (int64, error) {
	res := r.db.WithContext(ctx).Exec(`
		INSERT INTO notification_reads (notification_id, user_id, read_at)
		SELECT n.id, ?, ?
		FROM notifications n
		WHERE n.expires_at > ?
		  AND (n.is_global = TRUE OR EXISTS (
			SELECT 1 FROM notification_targets t
			WHERE t.notification_id = n.id AND t.user_id = ?))
		  AND NOT EXISTS (
			SELECT 1 FROM notification_reads rr
			WHERE rr.notification_id = n.id AND rr.user_id = ?)`,
		userID, at, at, userID, userID)
	return res.RowsAffected, res.Error
}

func (r *NotificationRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&domain.Notification{}, "id = ?", id).Error
}
