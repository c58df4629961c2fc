// Package repository contains data access logic for the booking API.
// This file defines persistence for class sessions.  A class session
// is a scheduled fitness class with a fixed capacity; the only field
// the application ever mutates is available_slots.
package repository

import (
	"context"      // context for controlling query lifetime
	"database/sql" // sql provides DB abstraction
	"time"         // time for eligibility comparisons

	"github.com/iliyamo/fitness-studio-booking/internal/model"
)

// ClassRepo manages persistence for class sessions.
type ClassRepo struct {
	db *sql.DB
}

// NewClassRepo constructs a ClassRepo with the given DB handle.
func NewClassRepo(db *sql.DB) *ClassRepo { return &ClassRepo{db: db} }

// DB exposes the underlying sql.DB.  It allows callers to begin
// transactions spanning multiple repositories.  Use this method to
// obtain a *sql.DB when you need fine-grained transaction control.
func (r *ClassRepo) DB() *sql.DB { return r.db }

// ListUpcoming returns every class whose start time is strictly after
// now, ordered ascending by start time.  The result is computed fresh
// on every call and takes no locks, so it may run concurrently with
// bookings; it only ever observes committed slot counts.
func (r *ClassRepo) ListUpcoming(ctx context.Context, now time.Time) ([]model.ClassSession, error) {
	const q = `SELECT id, name, instructor, start_at, total_slots, available_slots, created_at
	           FROM classes
	           WHERE start_at > ?
	           ORDER BY start_at ASC`
	rows, err := r.db.QueryContext(ctx, q, now.UTC())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.ClassSession, 0)
	for rows.Next() {
		var cs model.ClassSession
		if err := rows.Scan(&cs.ID, &cs.Name, &cs.Instructor, &cs.StartAt,
			&cs.TotalSlots, &cs.AvailableSlots, &cs.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, cs)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// FindBookableTx loads a class for booking inside the caller's
// transaction, locking the row with SELECT ... FOR UPDATE so that
// concurrent bookings against the same class serialize on it.  A class
// that does not exist and a class that has already started both yield
// ErrClassNotFound; callers must not be able to tell them apart.
func (r *ClassRepo) FindBookableTx(ctx context.Context, tx *sql.Tx, id uint64, now time.Time) (*model.ClassSession, error) {
	const q = `SELECT id, name, instructor, start_at, total_slots, available_slots, created_at
	           FROM classes
	           WHERE id = ? AND start_at > ?
	           FOR UPDATE`
	var cs model.ClassSession
	err := tx.QueryRowContext(ctx, q, id, now.UTC()).Scan(&cs.ID, &cs.Name, &cs.Instructor,
		&cs.StartAt, &cs.TotalSlots, &cs.AvailableSlots, &cs.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrClassNotFound
	}
	if err != nil {
		return nil, err
	}
	return &cs, nil
}

// DecrementSlotsTx atomically reduces available_slots by one within
// the caller's transaction.  The WHERE guard makes the decrement
// authoritative: even if a pre-check raced, the counter can never go
// below zero.  When no row is affected the class is full and
// ErrNoSlotsAvailable is returned.
func (r *ClassRepo) DecrementSlotsTx(ctx context.Context, tx *sql.Tx, id uint64) error {
	const q = `UPDATE classes SET available_slots = available_slots - 1
	           WHERE id = ? AND available_slots > 0`
	res, err := tx.ExecContext(ctx, q, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNoSlotsAvailable
	}
	return nil
}
