package integration

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// TestDB represents a test database instance.
type TestDB struct {
	Container *postgres.PostgresContainer
	Pool      *pgxpool.Pool
	ConnStr   string
}

// SetupTestDB creates a PostgreSQL test container and connection pool.
func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()

	ctx := context.Background()

	// Create PostgreSQL container
	postgresContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second)),
	)
	if err != nil {
		t.Fatalf("failed to start postgres container: %v", err)
	}

	// Get connection string
	connStr, err := postgresContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("failed to get connection string: %v", err)
	}

	poolConfig, err := pgxpool.ParseConfig(connStr)
	if err != nil {
		t.Fatalf("failed to parse connection string: %v", err)
	}
	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		t.Fatalf("failed to create connection pool: %v", err)
	}

	// Verify connection
	if err := pool.Ping(ctx); err != nil {
		t.Fatalf("failed to ping database: %v", err)
	}

	// Create schema
	createSchema(t, pool)

	t.Cleanup(func() {
		pool.Close()
		if err := postgresContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	return &TestDB{
		Container: postgresContainer,
		Pool:      pool,
		ConnStr:   connStr,
	}
}

// createSchema creates the database schema for testing.
func createSchema(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()

	ctx := context.Background()

	schema := `
		CREATE TABLE IF NOT EXISTS customers (
			id BIGSERIAL PRIMARY KEY,
			full_name VARCHAR(255) NOT NULL,
			email VARCHAR(255) NOT NULL UNIQUE,
			phone VARCHAR(30) NOT NULL DEFAULT '',
			address TEXT NOT NULL DEFAULT '',
			password_hash VARCHAR(255) NOT NULL,
			status VARCHAR(20) NOT NULL DEFAULT 'active',
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS employees (
			id BIGSERIAL PRIMARY KEY,
			full_name VARCHAR(255) NOT NULL,
			email VARCHAR(255) NOT NULL UNIQUE,
			password_hash VARCHAR(255) NOT NULL,
			role VARCHAR(20) NOT NULL DEFAULT 'staff',
			status VARCHAR(20) NOT NULL DEFAULT 'active',
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS variants (
			id BIGSERIAL PRIMARY KEY,
			product_id BIGINT NOT NULL,
			name_variant VARCHAR(255) NOT NULL,
			color VARCHAR(50) NOT NULL DEFAULT '',
			power VARCHAR(50) NOT NULL DEFAULT '',
			connection_type VARCHAR(50) NOT NULL DEFAULT '',
			has_microphone BOOLEAN NOT NULL DEFAULT FALSE,
			price DECIMAL(12, 2) NOT NULL,
			stock INTEGER NOT NULL DEFAULT 0 CHECK (stock >= 0),
			image VARCHAR(255) NOT NULL DEFAULT ''
		);

		CREATE TABLE IF NOT EXISTS coupons (
			id BIGSERIAL PRIMARY KEY,
			code VARCHAR(50) NOT NULL UNIQUE,
			type VARCHAR(20) NOT NULL,
			value DECIMAL(12, 2) NOT NULL,
			min_order_value DECIMAL(12, 2) NOT NULL DEFAULT 0,
			start_date TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			end_date TIMESTAMP NOT NULL,
			quantity INTEGER NOT NULL DEFAULT 0,
			status VARCHAR(20) NOT NULL DEFAULT 'active'
		);

		CREATE TABLE IF NOT EXISTS orders (
			id BIGSERIAL PRIMARY KEY,
			customer_id BIGINT NOT NULL REFERENCES customers(id),
			full_name VARCHAR(255) NOT NULL,
			email VARCHAR(255) NOT NULL,
			phone VARCHAR(30) NOT NULL DEFAULT '',
			address TEXT NOT NULL DEFAULT '',
			total_amount DECIMAL(12, 2) NOT NULL,
			discount_amount DECIMAL(12, 2) NOT NULL DEFAULT 0,
			final_amount DECIMAL(12, 2) NOT NULL,
			payment_method VARCHAR(30) NOT NULL,
			order_status VARCHAR(20) NOT NULL DEFAULT 'pending',
			coupon_code VARCHAR(50),
			note TEXT,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS order_items (
			id BIGSERIAL PRIMARY KEY,
			order_id BIGINT NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
			product_id BIGINT NOT NULL,
			variant_id BIGINT REFERENCES variants(id),
			product_name VARCHAR(255) NOT NULL,
			color VARCHAR(50) NOT NULL DEFAULT '',
			power VARCHAR(50) NOT NULL DEFAULT '',
			connection_type VARCHAR(50) NOT NULL DEFAULT '',
			has_microphone BOOLEAN NOT NULL DEFAULT FALSE,
			price DECIMAL(12, 2) NOT NULL,
			quantity INTEGER NOT NULL CHECK (quantity > 0),
			total DECIMAL(12, 2) NOT NULL
		);

		CREATE TABLE IF NOT EXISTS notifications (
			id BIGSERIAL PRIMARY KEY,
			type VARCHAR(20) NOT NULL,
			sender_id BIGINT,
			receiver_id BIGINT,
			title VARCHAR(255) NOT NULL,
			content TEXT NOT NULL,
			is_read BOOLEAN NOT NULL DEFAULT FALSE,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS messages (
			id BIGSERIAL PRIMARY KEY,
			sender_type VARCHAR(20) NOT NULL,
			sender_id BIGINT NOT NULL,
			receiver_id BIGINT NOT NULL,
			message TEXT NOT NULL,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		);

		CREATE INDEX IF NOT EXISTS idx_order_items_order_id ON order_items(order_id);
		CREATE INDEX IF NOT EXISTS idx_orders_customer_id ON orders(customer_id);
		CREATE INDEX IF NOT EXISTS idx_notifications_receiver ON notifications(receiver_id, is_read);
	`

	_, err := pool.Exec(ctx, schema)
	if err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}
}

// SeedCatalog inserts a customer, an admin, two variants and a coupon.
func SeedCatalog(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()

	ctx := context.Background()

	stmts := []string{
		`INSERT INTO customers (full_name, email, phone, address, password_hash)
		 VALUES ('Nguyen Van A', 'a@example.com', '0900000001', '1 Le Loi, HCMC', 'x')`,
		`INSERT INTO employees (full_name, email, password_hash, role)
		 VALUES ('Tran Thi B', 'admin@soundhub.local', 'x', 'admin')`,
		`INSERT INTO variants (product_id, name_variant, color, power, connection_type, has_microphone, price, stock)
		 VALUES (10, 'Speaker X Black', 'black', '60W', 'bluetooth', TRUE, 500000, 5)`,
		`INSERT INTO variants (product_id, name_variant, color, power, connection_type, has_microphone, price, stock)
		 VALUES (10, 'Speaker X White', 'white', '60W', 'bluetooth', TRUE, 500000, 0)`,
		`INSERT INTO coupons (code, type, value, end_date, quantity)
		 VALUES ('SUMMER10', 'percent', 10, NOW() + INTERVAL '30 days', 2)`,
		`INSERT INTO coupons (code, type, value, end_date, quantity)
		 VALUES ('EXPIRED', 'fixed', 20000, NOW() - INTERVAL '1 day', 5)`,
	}

	for _, stmt := range stmts {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			t.Fatalf("failed to seed data: %v", err)
		}
	}
}

// CleanupDB cleans all data from test tables.
func CleanupDB(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()

	ctx := context.Background()

	tables := []string{"order_items", "orders", "messages", "notifications", "coupons", "variants", "employees", "customers"}
	for _, table := range tables {
		_, err := pool.Exec(ctx, fmt.Sprintf("DELETE FROM %s", table))
		if err != nil {
			t.Logf("failed to clean table %s: %v", table, err)
		}
	}
}
