// Package repository contains data access logic for Guest domain operations.
// This file defines the Guest model, the enumerated patch structure used by
// partial updates, and repository methods for guests.  A Guest is a person
// who appears on episodes; the guests table is the only one in the schema
// that supports updates after creation.
package repository

import (
	"context"      // context for controlling query lifetime
	"database/sql" // sql provides DB abstraction
	"errors"       // errors for sentinel comparisons
	"strings"      // strings builds the dynamic SET clause for patches
)

// Guest represents a guest entity persisted in the database.  Name is
// required and validated non-empty before any write; Occupation is an
// optional free-text profession label and may be NULL.
type Guest struct {
	ID         uint64         // ID is the unique identifier of the guest
	Name       string         // Name is the guest's display name (required)
	Occupation sql.NullString // Occupation is the guest's profession (nullable)
}

// GuestPatch enumerates the fields a partial update may touch.  A nil
// pointer means "leave the stored value alone"; a non-nil pointer assigns
// the pointed-to value.  Unknown request keys never reach this struct: the
// handler rejects them during decoding.
type GuestPatch struct {
	Name       *string `json:"name"`       // new display name, validated non-empty when present
	Occupation *string `json:"occupation"` // new occupation label
}

// Empty reports whether the patch carries no assignments at all.
func (p GuestPatch) Empty() bool {
	return p.Name == nil && p.Occupation == nil
}

// GuestRepo encapsulates all database queries related to guests.
type GuestRepo struct {
	db *sql.DB // db is the underlying database connection pool
}

// NewGuestRepo constructs a GuestRepo with the provided DB handle.
func NewGuestRepo(db *sql.DB) *GuestRepo {
	return &GuestRepo{db: db}
}

// DB exposes the underlying sql.DB for callers that need to begin
// transactions spanning multiple repositories.
func (r *GuestRepo) DB() *sql.DB {
	return r.db
}

// CreateTx inserts a new guest using the provided transaction.  The caller
// must commit or roll back the transaction.  On success the generated ID is
// populated on the given Guest.
func (r *GuestRepo) CreateTx(ctx context.Context, tx *sql.Tx, g *Guest) error {
	const q = "INSERT INTO guests (name, occupation) VALUES (?, ?)"
	res, err := tx.ExecContext(ctx, q, g.Name, g.Occupation)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	g.ID = uint64(id)
	return nil
}

// GetByID fetches a guest by its ID.  It returns ErrGuestNotFound if no
// row is found.
func (r *GuestRepo) GetByID(ctx context.Context, id uint64) (*Guest, error) {
	const q = "SELECT id, name, occupation FROM guests WHERE id = ?"
	var g Guest
	if err := r.db.QueryRowContext(ctx, q, id).Scan(&g.ID, &g.Name, &g.Occupation); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrGuestNotFound
		}
		return nil, err
	}
	return &g, nil
}

// GetByIDTx is like GetByID but runs inside the caller's transaction.
func (r *GuestRepo) GetByIDTx(ctx context.Context, tx *sql.Tx, id uint64) (*Guest, error) {
	const q = "SELECT id, name, occupation FROM guests WHERE id = ?"
	var g Guest
	if err := tx.QueryRowContext(ctx, q, id).Scan(&g.ID, &g.Name, &g.Occupation); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrGuestNotFound
		}
		return nil, err
	}
	return &g, nil
}

// ListAll returns every guest ordered by insertion (id ascending).  When
// the table is empty it returns an empty slice and nil error.
func (r *GuestRepo) ListAll(ctx context.Context) ([]Guest, error) {
	const q = "SELECT id, name, occupation FROM guests ORDER BY id ASC"
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var result []Guest
	for rows.Next() {
		var g Guest
		if err := rows.Scan(&g.ID, &g.Name, &g.Occupation); err != nil {
			return nil, err
		}
		result = append(result, g)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// ApplyPatchTx assigns the fields present in the patch to the guest row
// with the given ID, inside the caller's transaction.  The SET clause is
// built only from fields the patch actually carries so untouched columns
// keep their stored values.  An empty patch is a no-op.  The caller is
// responsible for verifying the guest exists beforehand; a vanished row
// surfaces as sql.ErrNoRows from the follow-up read, not from here.
func (r *GuestRepo) ApplyPatchTx(ctx context.Context, tx *sql.Tx, id uint64, p GuestPatch) error {
	if p.Empty() {
		return nil
	}
	set := make([]string, 0, 2)
	args := make([]any, 0, 3)
	if p.Name != nil {
		set = append(set, "name = ?")
		args = append(args, *p.Name)
	}
	if p.Occupation != nil {
		set = append(set, "occupation = ?")
		args = append(args, *p.Occupation)
	}
	args = append(args, id)
	q := "UPDATE guests SET " + strings.Join(set, ", ") + " WHERE id = ?"
	_, err := tx.ExecContext(ctx, q, args...)
	return err
}
