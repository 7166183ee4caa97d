package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	_ "github.com/lib/pq"

	"storefront_api/config"
	"storefront_api/pkg/dbconnect"
	"storefront_api/pkg/logger"
)

const maxRetries = 10
const dbMaxOpenConns = 20
const retryDelay = 5 * time.Second

var _ dbconnect.Database = (*PostgresDatabase)(nil)

type PostgresDatabase struct {
	config.PostgresConfig
	db  *sql.DB
	mu  sync.Mutex // Для защиты доступа к db
	log logger.Logger

	retries int
	delay   time.Duration
}

func NewPgConnector(dbConfig config.PostgresConfig, log logger.Logger) *PostgresDatabase {
	return &PostgresDatabase{
		PostgresConfig: dbConfig,
		log:            log,
		retries:        maxRetries,
		delay:          retryDelay,
	}
}

func (pg *PostgresDatabase) Connect() (*sql.DB, error) {
	pg.mu.Lock()
	defer pg.mu.Unlock()

	if pg.db != nil {
		return pg.db, nil
	}

	var err error
	conStr := pg.GetConnectionString()

	for i := 0; i < pg.retries; i++ {
		var db *sql.DB
		db, err = sql.Open("postgres", conStr)
		if err != nil {
			pg.log.Warn("Failed to connect to Postgres (attempt %d/%d): %v", i+1, pg.retries, err)
			time.Sleep(pg.delay)
			continue
		}

		db.SetMaxOpenConns(dbMaxOpenConns)

		if err = db.Ping(); err != nil {
			pg.log.Warn("Failed to ping Postgres db (attempt %d/%d): %v", i+1, pg.retries, err)
			db.Close()
			time.Sleep(pg.delay)
			continue
		}

		pg.log.Log("Successfully connected to Postgres %s:%s/%s", pg.Host, pg.Port, pg.DBName)
		pg.db = db
		return pg.db, nil
	}
	return nil, fmt.Errorf("postgres unreachable after %d attempts: %w", pg.retries, err)
}

// Ping checks the live pool. A failed ping leaves the pool open so it can recover.
func (pg *PostgresDatabase) Ping(ctx context.Context) error {
	pg.mu.Lock()
	db := pg.db
	pg.mu.Unlock()

	if db == nil {
		return fmt.Errorf("database connection is not established")
	}
	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("ping failed: %w", err)
	}
	return nil
}

func (pg *PostgresDatabase) Close() error {
	pg.mu.Lock()
	defer pg.mu.Unlock()
	if pg.db == nil {
		return nil
	}
	err := pg.db.Close()
	pg.db = nil
	return err
}
