package integration

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	redistc "github.com/testcontainers/testcontainers-go/modules/redis"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"

	_ "github.com/lib/pq"
)

// TestEnv holds test environment resources
type TestEnv struct {
	DB                *sql.DB
	Redis             *redis.Client
	PostgresContainer testcontainers.Container
	RedisContainer    testcontainers.Container
	Logger            *zap.Logger
	ctx               context.Context
}

var testEnv *TestEnv

// SetupTestEnvironment initializes the test environment with containers
func SetupTestEnvironment(t *testing.T) *TestEnv {
	if testEnv != nil {
		return testEnv
	}

	ctx := context.Background()

	// Check if using external services (CI environment)
	if os.Getenv("DATABASE_URL") != "" {
		return setupExternalServices(t, ctx)
	}

	return setupContainers(t, ctx)
}

func setupExternalServices(t *testing.T, ctx context.Context) *TestEnv {
	logger, _ := zap.NewDevelopment()

	db, err := sql.Open("postgres", os.Getenv("DATABASE_URL"))
	if err != nil {
		t.Fatalf("Failed to connect to database: %v", err)
	}
	if err := db.Ping(); err != nil {
		t.Fatalf("Failed to ping database: %v", err)
	}

	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		redisURL = "redis://localhost:6379"
	}
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		t.Fatalf("Failed to parse Redis URL: %v", err)
	}
	redisClient := redis.NewClient(opt)
	if err := redisClient.Ping(ctx).Err(); err != nil {
		t.Fatalf("Failed to connect to Redis: %v", err)
	}

	testEnv = &TestEnv{
		DB:     db,
		Redis:  redisClient,
		Logger: logger,
		ctx:    ctx,
	}
	return testEnv
}

func setupContainers(t *testing.T, ctx context.Context) *TestEnv {
	logger, _ := zap.NewDevelopment()

	postgresContainer, err := postgres.RunContainer(ctx,
		testcontainers.WithImage("postgres:16-alpine"),
		postgres.WithDatabase("translog_test"),
		postgres.WithUsername("translog"),
		postgres.WithPassword("translog_test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	if err != nil {
		t.Fatalf("Failed to start postgres container: %v", err)
	}

	pgHost, err := postgresContainer.Host(ctx)
	if err != nil {
		t.Fatalf("Failed to get postgres host: %v", err)
	}
	pgPort, err := postgresContainer.MappedPort(ctx, "5432")
	if err != nil {
		t.Fatalf("Failed to get postgres port: %v", err)
	}

	pgConnStr := fmt.Sprintf("postgres://translog:translog_test@%s:%s/translog_test?sslmode=disable", pgHost, pgPort.Port())

	db, err := sql.Open("postgres", pgConnStr)
	if err != nil {
		t.Fatalf("Failed to connect to postgres: %v", err)
	}
	for i := 0; i < 30; i++ {
		if err := db.Ping(); err == nil {
			break
		}
		time.Sleep(time.Second)
	}

	redisContainer, err := redistc.RunContainer(ctx,
		testcontainers.WithImage("redis:7-alpine"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("Ready to accept connections").
				WithStartupTimeout(60*time.Second),
		),
	)
	if err != nil {
		t.Fatalf("Failed to start redis container: %v", err)
	}

	redisHost, err := redisContainer.Host(ctx)
	if err != nil {
		t.Fatalf("Failed to get redis host: %v", err)
	}
	redisPort, err := redisContainer.MappedPort(ctx, "6379")
	if err != nil {
		t.Fatalf("Failed to get redis port: %v", err)
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr: fmt.Sprintf("%s:%s", redisHost, redisPort.Port()),
	})
	if err := redisClient.Ping(ctx).Err(); err != nil {
		t.Fatalf("Failed to connect to redis: %v", err)
	}

	testEnv = &TestEnv{
		DB:                db,
		Redis:             redisClient,
		PostgresContainer: postgresContainer,
		RedisContainer:    redisContainer,
		Logger:            logger,
		ctx:               ctx,
	}
	return testEnv
}

// CleanDatabase truncates all tables
func CleanDatabase(t *testing.T, db *sql.DB) {
	tables := []string{
		"notification_reads",
		"notification_targets",
		"notifications",
		"complaint_responses",
		"complaints",
		"transfer_items",
		"transfers",
		"workers",
		"ads",
		"users",
	}

	for _, table := range tables {
		_, err := db.Exec(fmt.Sprintf("TRUNCATE TABLE %s CASCADE", table))
		if err != nil {
			// Table might not exist, that's ok
			t.Logf("Failed to truncate %s: %v", table, err)
		}
	}
}

// FlushRedis clears all Redis keys
func FlushRedis(t *testing.T, client *redis.Client) {
	ctx := context.Background()
	if err := client.FlushAll(ctx).Err(); err != nil {
		t.Fatalf("Failed to flush redis: %v", err)
	}
}

// SetupSchema creates the database schema for testing
func SetupSchema(t *testing.T, db *sql.DB) {
	schema := `
	CREATE TABLE IF NOT EXISTS users (
		id VARCHAR(36) PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		email VARCHAR(255) UNIQUE NOT NULL,
		phone VARCHAR(50),
		password VARCHAR(255) NOT NULL,
		role VARCHAR(50) DEFAULT 'customer',
		status VARCHAR(50) DEFAULT 'Active',
		notify_by_email BOOLEAN DEFAULT TRUE,
		notify_by_push BOOLEAN DEFAULT TRUE,
		preferred_language VARCHAR(10),
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS workers (
		id VARCHAR(36) PRIMARY KEY,
		user_id VARCHAR(36) UNIQUE REFERENCES users(id),
		is_available BOOLEAN DEFAULT TRUE,
		status VARCHAR(50) DEFAULT 'Available',
		completed_jobs INTEGER DEFAULT 0,
		rating_sum DECIMAL(10, 2) DEFAULT 0,
		rating_count INTEGER DEFAULT 0,
		vehicle_type VARCHAR(100),
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS transfers (
		id VARCHAR(36) PRIMARY KEY,
		user_id VARCHAR(36) REFERENCES users(id),
		worker_id VARCHAR(36) REFERENCES workers(id),
		complaint_id VARCHAR(36),
		total DECIMAL(15, 2) DEFAULT 0,
		currency VARCHAR(10) DEFAULT 'usd',
		status VARCHAR(50) DEFAULT 'pending',
		payment_status VARCHAR(50) DEFAULT 'pending',
		payment_ref VARCHAR(255),
		origin TEXT,
		destination TEXT,
		pickup_at TIMESTAMP,
		delivery_at TIMESTAMP,
		assigned_at TIMESTAMP,
		accepted_at TIMESTAMP,
		on_the_way_at TIMESTAMP,
		completed_at TIMESTAMP,
		cancelled_at TIMESTAMP,
		rating DECIMAL(3, 1),
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS transfer_items (
		id VARCHAR(36) PRIMARY KEY,
		transfer_id VARCHAR(36) REFERENCES transfers(id),
		name VARCHAR(255) NOT NULL,
		weight DECIMAL(10, 2) DEFAULT 0,
		images JSONB,
		breakable BOOLEAN DEFAULT FALSE
	);

	CREATE TABLE IF NOT EXISTS complaints (
		id VARCHAR(36) PRIMARY KEY,
		user_id VARCHAR(36) REFERENCES users(id),
		transfer_id VARCHAR(36) REFERENCES transfers(id),
		subject VARCHAR(255) NOT NULL,
		message TEXT,
		status VARCHAR(50) DEFAULT 'pending',
		closed_at TIMESTAMP,
		closed_by VARCHAR(36),
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS complaint_responses (
		id VARCHAR(36) PRIMARY KEY,
		complaint_id VARCHAR(36) REFERENCES complaints(id),
		responder_id VARCHAR(36),
		role VARCHAR(50),
		message TEXT,
		attachments JSONB,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS notifications (
		id VARCHAR(36) PRIMARY KEY,
		title VARCHAR(255) NOT NULL,
		message TEXT,
		type VARCHAR(50) DEFAULT 'info',
		is_global BOOLEAN DEFAULT FALSE,
		send_now BOOLEAN DEFAULT TRUE,
		send_at TIMESTAMP,
		expires_at TIMESTAMP NOT NULL,
		redirect_to TEXT,
		created_by VARCHAR(36),
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS notification_targets (
		notification_id VARCHAR(36) REFERENCES notifications(id) ON DELETE CASCADE,
		user_id VARCHAR(36),
		PRIMARY KEY (notification_id, user_id)
	);

	CREATE TABLE IF NOT EXISTS notification_reads (
		notification_id VARCHAR(36) REFERENCES notifications(id) ON DELETE CASCADE,
		user_id VARCHAR(36),
		read_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		PRIMARY KEY (notification_id, user_id)
	);

	CREATE TABLE IF NOT EXISTS ads (
		id VARCHAR(36) PRIMARY KEY,
		title VARCHAR(255) NOT NULL,
		url TEXT,
		image_url TEXT,
		starts_at TIMESTAMP NOT NULL,
		expires_at TIMESTAMP NOT NULL,
		created_by VARCHAR(36),
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_transfers_user_id ON transfers(user_id);
	CREATE INDEX IF NOT EXISTS idx_transfers_worker_id ON transfers(worker_id);
	CREATE INDEX IF NOT EXISTS idx_complaints_user_id ON complaints(user_id);
	CREATE INDEX IF NOT EXISTS idx_notification_targets_user_id ON notification_targets(user_id);
	`

	_, err := db.Exec(schema)
	if err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}
}
