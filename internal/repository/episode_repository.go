// Package repository contains data access logic separated from HTTP handlers.
// This file defines the Episode model and repository methods for episodes.
// An Episode represents a single broadcast of the show; guests are linked
// to it through rows in the appearances table.
package repository

import (
	"context"      // context allows passing deadlines and cancellation signals to DB operations
	"database/sql" // sql provides generic database operations and drivers
	"errors"       // errors is used for sentinel comparisons
)

// Episode represents an episode entity persisted in the database.  Date and
// Number are both optional descriptive labels (the air date and the episode
// number as printed in listings); either may be NULL in the database.
type Episode struct {
	ID     uint64         // ID is the unique identifier of the episode
	Date   sql.NullString // Date is the air date label (nullable)
	Number sql.NullString // Number is the episode number label (nullable)
}

// EpisodeRepo encapsulates all database queries related to episodes.  It
// depends on a sql.DB connection which should be configured elsewhere.
type EpisodeRepo struct {
	db *sql.DB // db is the underlying database connection pool
}

// NewEpisodeRepo constructs an EpisodeRepo with the provided DB handle.  This
// function allows dependency injection of the database in tests and at startup.
func NewEpisodeRepo(db *sql.DB) *EpisodeRepo {
	return &EpisodeRepo{db: db}
}

// DB exposes the underlying sql.DB.  It allows callers to begin
// transactions spanning multiple repositories.  Use this method to
// obtain a *sql.DB when you need fine-grained transaction control.
func (r *EpisodeRepo) DB() *sql.DB {
	return r.db
}

// Create inserts a new episode into the database.  On success the episode's
// ID field will be populated with the auto-generated value.
func (r *EpisodeRepo) Create(ctx context.Context, e *Episode) error {
	const q = "INSERT INTO episodes (date, number) VALUES (?, ?)"
	res, err := r.db.ExecContext(ctx, q, e.Date, e.Number)
	if err != nil {
		return err // propagate DB errors to the caller
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	e.ID = uint64(id)
	return nil
}

// GetByID fetches an episode by its ID.  It returns ErrEpisodeNotFound if
// no row is found.
func (r *EpisodeRepo) GetByID(ctx context.Context, id uint64) (*Episode, error) {
	const q = "SELECT id, date, number FROM episodes WHERE id = ?"
	var e Episode
	if err := r.db.QueryRowContext(ctx, q, id).Scan(&e.ID, &e.Date, &e.Number); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrEpisodeNotFound
		}
		return nil, err
	}
	return &e, nil
}

// GetByIDTx is like GetByID but runs inside the caller's transaction.  It
// is used by the appearance creation flow so that the referential check
// and the insert observe the same snapshot.
func (r *EpisodeRepo) GetByIDTx(ctx context.Context, tx *sql.Tx, id uint64) (*Episode, error) {
	const q = "SELECT id, date, number FROM episodes WHERE id = ?"
	var e Episode
	if err := tx.QueryRowContext(ctx, q, id).Scan(&e.ID, &e.Date, &e.Number); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrEpisodeNotFound
		}
		return nil, err
	}
	return &e, nil
}

// ListAll returns every episode ordered by insertion (id ascending).  When
// the table is empty it returns an empty slice and nil error.
func (r *EpisodeRepo) ListAll(ctx context.Context) ([]Episode, error) {
	const q = "SELECT id, date, number FROM episodes ORDER BY id ASC"
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var result []Episode
	for rows.Next() {
		var e Episode
		if err := rows.Scan(&e.ID, &e.Date, &e.Number); err != nil {
			return nil, err
		}
		result = append(result, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
