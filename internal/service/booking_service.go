// Package service implements the booking workflow: the multi-step,
// atomicity-guaranteeing procedure that turns a booking request into a
// committed booking or a typed failure.  The workflow owns all
// read-check-then-write sequencing; handlers only perform input shape
// validation and status mapping.
package service

import (
	"context"
	"database/sql"
	"time"

	"github.com/iliyamo/fitness-studio-booking/internal/model"
	"github.com/iliyamo/fitness-studio-booking/internal/repository"
)

// Catalog is the slice of the class repository the workflow depends
// on.  Both methods must run inside the workflow's transaction.
type Catalog interface {
	FindBookableTx(ctx context.Context, tx *sql.Tx, id uint64, now time.Time) (*model.ClassSession, error)
	DecrementSlotsTx(ctx context.Context, tx *sql.Tx, id uint64) error
}

// Ledger is the slice of the booking repository the workflow depends on.
type Ledger interface {
	ExistsTx(ctx context.Context, tx *sql.Tx, classID uint64, email string) (bool, error)
	CreateTx(ctx context.Context, tx *sql.Tx, b *model.Booking) error
}

// BookingRequest carries the already shape-validated input of a
// booking attempt.  The workflow assumes ClassID is positive, the
// name is non-empty and the email is syntactically valid; it only
// enforces business rules (eligibility, capacity, duplicates).
type BookingRequest struct {
	ClassID     uint64
	ClientName  string
	ClientEmail string
}

// BookingConfirmation is returned on a committed booking.
type BookingConfirmation struct {
	BookingID    uint64
	ClassID      uint64
	ClassName    string
	Instructor   string
	ClassStartAt time.Time
	ClientName   string
	ClientEmail  string
	BookingTime  time.Time
}

// BookingService orchestrates catalog lookup, duplicate check, ledger
// insert and capacity decrement as one transaction.  Repositories are
// injected so tests can substitute doubles; there is no package-level
// database handle.
type BookingService struct {
	db       *sql.DB
	classes  Catalog
	bookings Ledger
	now      func() time.Time
}

// NewBookingService constructs a BookingService.  All dependencies
// must be non-nil.
func NewBookingService(db *sql.DB, classes Catalog, bookings Ledger) *BookingService {
	if db == nil || classes == nil || bookings == nil {
		panic("nil dependency passed to NewBookingService")
	}
	return &BookingService{db: db, classes: classes, bookings: bookings, now: time.Now}
}

// Book runs the booking workflow for one request.  The whole sequence
// executes in a single transaction: the FOR UPDATE lookup serializes
// concurrent bookings per class, the duplicate check and insert see
// the same snapshot, and the guarded decrement is the authoritative
// capacity check.  On any failure the transaction is rolled back and
// one of repository.ErrClassNotFound, repository.ErrNoSlotsAvailable
// or repository.ErrDuplicateBooking (or the raw storage error) is
// returned; nothing takes effect.
func (s *BookingService) Book(ctx context.Context, req BookingRequest) (*BookingConfirmation, error) {
	now := s.now().UTC()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	// Eligibility: locks the class row; a past or nonexistent class
	// is ErrClassNotFound either way.
	cs, err := s.classes.FindBookableTx(ctx, tx, req.ClassID, now)
	if err != nil {
		return nil, err
	}

	// Advisory capacity check.  The decrement below is the
	// authoritative one; this only short-circuits the common case.
	if cs.AvailableSlots == 0 {
		return nil, repository.ErrNoSlotsAvailable
	}

	exists, err := s.bookings.ExistsTx(ctx, tx, req.ClassID, req.ClientEmail)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, repository.ErrDuplicateBooking
	}

	b := &model.Booking{
		ClassID:     req.ClassID,
		ClientName:  req.ClientName,
		ClientEmail: req.ClientEmail,
		BookingTime: now,
	}
	if err := s.bookings.CreateTx(ctx, tx, b); err != nil {
		return nil, err
	}
	if err := s.classes.DecrementSlotsTx(ctx, tx, req.ClassID); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	committed = true

	return &BookingConfirmation{
		BookingID:    b.ID,
		ClassID:      cs.ID,
		ClassName:    cs.Name,
		Instructor:   cs.Instructor,
		ClassStartAt: cs.StartAt,
		ClientName:   b.ClientName,
		ClientEmail:  b.ClientEmail,
		BookingTime:  b.BookingTime,
	}, nil
}
