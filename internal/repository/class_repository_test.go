package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestListUpcomingFiltersAndOrders(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	first := now.Add(2 * time.Hour)
	second := now.Add(26 * time.Hour)

	mock.ExpectQuery("FROM classes").
		WithArgs(now).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "instructor", "start_at", "total_slots", "available_slots", "created_at"}).
			AddRow(2, "Zumba Dance", "Rahul Kumar", first, 25, 25, now).
			AddRow(1, "Yoga Flow", "Priya Sharma", second, 20, 18, now))

	repo := NewClassRepo(db)
	out, err := repo.ListUpcoming(context.Background(), now)
	if err != nil {
		t.Fatalf("list error: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("expected 2 classes, got %d", len(out))
	}
	if out[0].Name != "Zumba Dance" || out[1].Name != "Yoga Flow" {
		t.Fatalf("DB ordering not preserved: %v, %v", out[0].Name, out[1].Name)
	}
	if !out[0].StartAt.Equal(first) {
		t.Fatalf("start time mismatch: %v", out[0].StartAt)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestListUpcomingEmptyIsNotAnError(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("FROM classes").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "instructor", "start_at", "total_slots", "available_slots", "created_at"}))

	out, err := NewClassRepo(db).ListUpcoming(context.Background(), time.Now().UTC())
	if err != nil {
		t.Fatalf("list error: %v", err)
	}
	if out == nil || len(out) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", out)
	}
}

func TestFindBookableTxMapsMissingRow(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery("FOR UPDATE").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "instructor", "start_at", "total_slots", "available_slots", "created_at"}))
	mock.ExpectRollback()

	tx, err := db.BeginTx(context.Background(), nil)
	if err != nil {
		t.Fatalf("begin: %v", err)
	}
	defer tx.Rollback()

	_, err = NewClassRepo(db).FindBookableTx(context.Background(), tx, 999, time.Now().UTC())
	if !errors.Is(err, ErrClassNotFound) {
		t.Fatalf("expected ErrClassNotFound, got %v", err)
	}
}

func TestDecrementSlotsTxConflictOnZeroRows(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE classes SET available_slots").
		WithArgs(uint64(1)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	tx, err := db.BeginTx(context.Background(), nil)
	if err != nil {
		t.Fatalf("begin: %v", err)
	}
	defer tx.Rollback()

	err = NewClassRepo(db).DecrementSlotsTx(context.Background(), tx, 1)
	if !errors.Is(err, ErrNoSlotsAvailable) {
		t.Fatalf("expected ErrNoSlotsAvailable, got %v", err)
	}
}

func TestDecrementSlotsTxSuccess(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE classes SET available_slots").
		WithArgs(uint64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	tx, err := db.BeginTx(context.Background(), nil)
	if err != nil {
		t.Fatalf("begin: %v", err)
	}
	if err := NewClassRepo(db).DecrementSlotsTx(context.Background(), tx, 1); err != nil {
		t.Fatalf("decrement error: %v", err)
	}
	if err := tx.Commit(); err != nil {
		t.Fatalf("commit: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
