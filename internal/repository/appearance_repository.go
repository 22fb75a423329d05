// Package repository contains data access logic for Appearance domain
// operations.  An Appearance is the join entity between guests and
// episodes: one row records one guest's participation in one episode,
// with the role they filled and an optional 1..5 rating.  Appearances are
// immutable after creation.
package repository

import (
	"context"      // context for controlling query lifetime
	"database/sql" // sql provides DB abstraction
)

// Appearance represents one guest's participation in one episode.  Role is
// required; Rating is optional and, when present, must lie in 1..5 (see
// ValidateRating).  Both foreign keys must reference existing rows at
// creation time.
type Appearance struct {
	ID        uint64        // ID is the primary key of the appearance
	Role      string        // Role is the capacity the guest appeared in (e.g. "panelist")
	Rating    sql.NullInt32 // Rating is the optional 1..5 score (nullable)
	GuestID   uint64        // GuestID references guests.id
	EpisodeID uint64        // EpisodeID references episodes.id
}

// EpisodeAppearance is the reduced row shape used when listing the
// appearances of a single episode: the appearance id, the guest's name
// pulled in via a join, and the role.  It deliberately carries no
// episode or guest back-references.
type EpisodeAppearance struct {
	ID        uint64 // appearances.id
	GuestName string // guests.name of the appearing guest
	Role      string // appearances.role
}

// AppearanceRepo encapsulates all database queries related to appearances.
type AppearanceRepo struct {
	db *sql.DB // db is the underlying database connection pool
}

// NewAppearanceRepo constructs an AppearanceRepo with the given DB handle.
func NewAppearanceRepo(db *sql.DB) *AppearanceRepo {
	return &AppearanceRepo{db: db}
}

// DB exposes the underlying sql.DB.  The appearance creation handler uses
// it to begin the transaction that spans the referential checks and the
// insert.
func (r *AppearanceRepo) DB() *sql.DB {
	return r.db
}

// CreateTx inserts a new appearance using the provided transaction.  The
// caller must have verified that GuestID and EpisodeID resolve (the guest
// and episode repositories expose GetByIDTx for that) and must commit or
// roll back the transaction.  On success the generated ID is populated on
// the given Appearance.
func (r *AppearanceRepo) CreateTx(ctx context.Context, tx *sql.Tx, a *Appearance) error {
	const q = "INSERT INTO appearances (role, rating, guest_id, episode_id) VALUES (?, ?, ?, ?)"
	res, err := tx.ExecContext(ctx, q, a.Role, a.Rating, a.GuestID, a.EpisodeID)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	a.ID = uint64(id)
	return nil
}

// ListByEpisode returns the appearances of one episode joined with the
// appearing guest's name, ordered by insertion.  When the episode has no
// appearances it returns an empty slice and nil error.
func (r *AppearanceRepo) ListByEpisode(ctx context.Context, episodeID uint64) ([]EpisodeAppearance, error) {
	const q = `SELECT a.id, g.name, a.role
               FROM appearances a
               JOIN guests g ON g.id = a.guest_id
               WHERE a.episode_id = ?
               ORDER BY a.id ASC`
	rows, err := r.db.QueryContext(ctx, q, episodeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var result []EpisodeAppearance
	for rows.Next() {
		var ea EpisodeAppearance
		if err := rows.Scan(&ea.ID, &ea.GuestName, &ea.Role); err != nil {
			return nil, err
		}
		result = append(result, ea)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
