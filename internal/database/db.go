// Package database manages the MySQL connection pool shared by all
// repositories.  The schema consists of three tables: episodes, guests and
// appearances (see schema.sql at the repository root).
package database

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"time"

	_ "github.com/go-sql-driver/mysql" // register the mysql driver

	"github.com/lateshow/lateshow-api/internal/config"
)

// Open connects to MySQL using the supplied configuration and verifies the
// connection before returning.  The ping is retried a few times so the API
// can come up while the database container is still starting.
func Open(cfg config.Config) (*sql.DB, error) {
	auth := cfg.DBUser
	if cfg.DBPass != "" {
		auth = fmt.Sprintf("%s:%s", cfg.DBUser, cfg.DBPass)
	}
	// parseTime=true -> DATETIME -> time.Time | loc=UTC keeps times consistent
	dsn := fmt.Sprintf("%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=true&loc=UTC",
		auth, cfg.DBHost, cfg.DBPort, cfg.DBName)

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, err
	}

	// Pool settings; the API is read-heavy and each request holds at most
	// one connection, so a small pool is enough.
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(30 * time.Minute)

	// Ping with timeout, retrying while the database warms up.
	var pingErr error
	for attempt := 1; attempt <= 5; attempt++ {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		pingErr = db.PingContext(ctx)
		cancel()
		if pingErr == nil {
			return db, nil
		}
		log.Printf("database: ping attempt %d failed: %v", attempt, pingErr)
		time.Sleep(time.Duration(attempt) * time.Second)
	}
	_ = db.Close()
	return nil, pingErr
}
