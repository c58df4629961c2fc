package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/iliyamo/fitness-studio-booking/internal/model"
)

// BookingRepo provides data access to the bookings table.  Bookings
// are append-only: rows are inserted once by the booking workflow and
// never updated or deleted.  All timestamps are stored in UTC.
type BookingRepo struct {
	db *sql.DB
}

// NewBookingRepo returns a new BookingRepo bound to the given database.
func NewBookingRepo(db *sql.DB) *BookingRepo { return &BookingRepo{db: db} }

// BookingDetail is a booking joined with its class session.  It is
// returned by ListByEmail for display to clients; the class fields
// come from the classes table, not from the booking row.
type BookingDetail struct {
	ID           uint64    `json:"id"`
	ClassID      uint64    `json:"class_id"`
	ClientName   string    `json:"client_name"`
	ClientEmail  string    `json:"client_email"`
	BookingTime  time.Time `json:"booking_time"`
	ClassName    string    `json:"class_name"`
	Instructor   string    `json:"instructor"`
	ClassStartAt time.Time `json:"-"`
}

// ExistsTx reports whether a booking for the given class and email
// already exists.  It runs inside the caller's transaction so the
// duplicate check and the subsequent insert observe the same state.
func (r *BookingRepo) ExistsTx(ctx context.Context, tx *sql.Tx, classID uint64, email string) (bool, error) {
	const q = `SELECT id FROM bookings WHERE class_id = ? AND client_email = ? LIMIT 1`
	var id uint64
	err := tx.QueryRowContext(ctx, q, classID, email).Scan(&id)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// CreateTx inserts a new booking within the scope of an existing
// transaction and populates the generated ID on the provided record.
// The caller must commit or roll back the transaction.  The unique
// key on (class_id, client_email) is the database-level backstop for
// the duplicate invariant; ExistsTx should already have been called.
func (r *BookingRepo) CreateTx(ctx context.Context, tx *sql.Tx, b *model.Booking) error {
	const q = `INSERT INTO bookings (class_id, client_name, client_email, booking_time) VALUES (?, ?, ?, ?)`
	res, err := tx.ExecContext(ctx, q, b.ClassID, b.ClientName, b.ClientEmail, b.BookingTime.UTC())
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	b.ID = uint64(id)
	return nil
}

// ListByEmail returns all bookings made under the given email joined
// with their class sessions, ordered descending by the class start
// time (the most future class first, regardless of booking order).
// An email with no bookings yields an empty slice, not an error.
func (r *BookingRepo) ListByEmail(ctx context.Context, email string) ([]BookingDetail, error) {
	const q = `SELECT b.id, b.class_id, b.client_name, b.client_email, b.booking_time,
	                  c.name, c.instructor, c.start_at
	           FROM bookings b
	           JOIN classes c ON c.id = b.class_id
	           WHERE b.client_email = ?
	           ORDER BY c.start_at DESC`
	rows, err := r.db.QueryContext(ctx, q, email)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]BookingDetail, 0)
	for rows.Next() {
		var d BookingDetail
		if err := rows.Scan(&d.ID, &d.ClassID, &d.ClientName, &d.ClientEmail,
			&d.BookingTime, &d.ClassName, &d.Instructor, &d.ClassStartAt); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
