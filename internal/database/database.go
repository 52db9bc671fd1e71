package database

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"time"

	"wardrobe/internal/config"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// Service wraps the database connection pool
type Service struct {
	db *sql.DB
}

// New opens the connection pool and verifies it with a ping
func New(cfg config.DatabaseConfig) (*Service, error) {
	dsn := fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=disable&search_path=%s",
		cfg.User, cfg.Password, cfg.Host, cfg.Port, cfg.Database, cfg.Schema,
	)

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &Service{db: db}, nil
}

// DB exposes the underlying pool
func (s *Service) DB() *sql.DB {
	return s.db
}

// Health reports pool status for the health endpoint
func (s *Service) Health() map[string]string {
	health := map[string]string{}

	ctx, cancel := context.WithTimeout(context.Background(), 1*time.Second)
	defer cancel()

	if err := s.db.PingContext(ctx); err != nil {
		health["status"] = "down"
		health["error"] = err.Error()
		return health
	}

	stats := s.db.Stats()
	health["status"] = "up"
	health["open_connections"] = strconv.Itoa(stats.OpenConnections)
	health["in_use"] = strconv.Itoa(stats.InUse)
	health["idle"] = strconv.Itoa(stats.Idle)

	return health
}

// Close shuts the pool down
func (s *Service) Close() error {
	return s.db.Close()
}
