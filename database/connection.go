package database

import (
	"context"
	"log"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// DB is the global connection pool shared by handlers and middleware.
var DB *pgxpool.Pool

// ConnectDB opens the pool against the given connection string and pings it.
func ConnectDB(databaseURL string) {
	config, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		log.Fatalf("Failed to parse database URL: %v", err)
	}
	config.MaxConns = 30
	config.MinConns = 5
	config.MaxConnLifetime = time.Hour
	config.MaxConnIdleTime = 30 * time.Minute
	config.ConnConfig.DefaultQueryExecMode = pgx.QueryExecModeSimpleProtocol

	DB, err = pgxpool.NewWithConfig(context.Background(), config)
	if err != nil {
		log.Fatalf("Failed to create connection pool: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var version string
	if err := DB.QueryRow(ctx, "SELECT version()").Scan(&version); err != nil {
		log.Fatalf("Failed to verify database connection: %v", err)
	}
	log.Println("Connected to database:", version)
}

// CloseDB releases the pool.
func CloseDB() {
	if DB != nil {
		DB.Close()
		log.Println("Database pool closed")
	}
}

// GetDB returns the shared pool.
func GetDB() *pgxpool.Pool {
	return DB
}
