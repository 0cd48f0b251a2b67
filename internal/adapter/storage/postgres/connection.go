package postgres

import (
	"fmt"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/seu-repo/translog/internal/domain"
	"github.com/seu-repo/translog/pkg/config"
)

// NewConnection initializes a new PostgreSQL connection using GORM.
// TranslateError lets repositories map unique violations onto the domain
// conflict error without driver-specific checks.
func NewConnection(cfg config.DatabaseConfig, log *zap.Logger) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.URL), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Warn),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}

	maxIdle := cfg.MaxIdleConns
	if maxIdle <= 0 {
		maxIdle = 10
	}
	maxOpen := cfg.MaxOpenConns
	if maxOpen <= 0 {
		maxOpen = 100
	}
	sqlDB.SetMaxIdleConns(maxIdle)
	sqlDB.SetMaxOpenConns(maxOpen)
	if cfg.ConnMaxLifetime > 0 {
		sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}

	log.Info("Successfully connected to PostgreSQL")
	return db, nil
}

// RunMigrations keeps the schema in sync with the domain entities.
func RunMigrations(db *gorm.DB) error {
	return db.AutoMigrate(
		&domain.User{},
		&domain.Worker{},
		&domain.Transfer{},
		&domain.TransferItem{},
		&domain.Complaint{},
		&domain.ComplaintResponse{},
		&domain.Notification{},
		&domain.NotificationTarget{},
		&domain.NotificationRead{},
		&domain.Ad{},
	)
}

func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// sortClause whitelists sort columns so user input never reaches the ORDER
// BY clause unchecked.
func sortClause(sortBy, order string, allowed map[string]bool) string {
	if !allowed[sortBy] {
		sortBy = "created_at"
	}
	if order != "asc" {
		order = "desc"
	}
	return fmt.Sprintf("%s %s", sortBy, order)
}
