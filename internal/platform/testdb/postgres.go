// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

//go:build integration

package testdb

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/taibuivan/promptdb/internal/platform/migration"
	"github.com/taibuivan/promptdb/internal/platform/postgres"
)

const (
	postgresImage = "postgres:16-alpine"
	redisImage    = "redis:7-alpine"
)

var (
	sharedPostgresDSN  string
	sharedPostgresOnce sync.Once
	sharedPostgresErr  error

	sharedRedisURL  string
	sharedRedisOnce sync.Once
	sharedRedisErr  error
)

// Postgres returns a pool on a shared, migrated PostgreSQL container.
// Tables are truncated before the pool is handed out.
func Postgres(t *testing.T) *pgxpool.Pool {
	t.Helper()

	if testing.Short() {
		t.Skip("Skipping integration test in short mode (requires Docker)")
	}

	sharedPostgresOnce.Do(func() {
		sharedPostgresDSN, sharedPostgresErr = startPostgres()
	})
	if sharedPostgresErr != nil {
		t.Fatalf("testdb: postgres container: %v", sharedPostgresErr)
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, sharedPostgresDSN, Logger())
	if err != nil {
		t.Fatalf("testdb: postgres pool: %v", err)
	}
	t.Cleanup(pool.Close)

	if _, err := pool.Exec(ctx, "TRUNCATE prompttag, prompt, tag, category"); err != nil {
		t.Fatalf("testdb: truncate: %v", err)
	}

	return pool
}

func startPostgres() (string, error) {
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        postgresImage,
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_DB":       "promptdb",
			"POSTGRES_USER":     "promptdb",
			"POSTGRES_PASSWORD": "promptdb",
		},
		// The entrypoint restarts the server once after init, hence two occurrences.
		WaitingFor: wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(60 * time.Second),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		return "", fmt.Errorf("failed to start container: %w", err)
	}

	host, err := container.Host(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to get container host: %w", err)
	}

	port, err := container.MappedPort(ctx, "5432")
	if err != nil {
		return "", fmt.Errorf("failed to get container port: %w", err)
	}

	dsn := fmt.Sprintf("postgres://promptdb:promptdb@%s:%s/promptdb?sslmode=disable", host, port.Port())

	if err := migration.RunUp(dsn, "", Logger()); err != nil {
		return "", err
	}

	return dsn, nil
}

// RedisURL returns the URL of a shared Redis container.
func RedisURL(t *testing.T) string {
	t.Helper()

	if testing.Short() {
		t.Skip("Skipping integration test in short mode (requires Docker)")
	}

	sharedRedisOnce.Do(func() {
		sharedRedisURL, sharedRedisErr = startRedis()
	})
	if sharedRedisErr != nil {
		t.Fatalf("testdb: redis container: %v", sharedRedisErr)
	}

	return sharedRedisURL
}

func startRedis() (string, error) {
	ctx := context.Background()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        redisImage,
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForLog("Ready to accept connections").WithStartupTimeout(30 * time.Second),
		},
		Started: true,
	})
	if err != nil {
		return "", fmt.Errorf("failed to start container: %w", err)
	}

	host, err := container.Host(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to get container host: %w", err)
	}

	port, err := container.MappedPort(ctx, "6379")
	if err != nil {
		return "", fmt.Errorf("failed to get container port: %w", err)
	}

	return fmt.Sprintf("redis://%s:%s/0", host, port.Port()), nil
}
