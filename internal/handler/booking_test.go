package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/fitness-studio-booking/internal/repository"
	"github.com/iliyamo/fitness-studio-booking/internal/service"
)

func newBookingTestServer(t *testing.T) (*BookingHandler, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	classRepo := repository.NewClassRepo(db)
	bookingRepo := repository.NewBookingRepo(db)
	h := NewBookingHandler(bookingRepo, service.NewBookingService(db, classRepo, bookingRepo))
	return h, mock, func() { db.Close() }
}

func postBook(h *BookingHandler, body string) *httptest.ResponseRecorder {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/book", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	_ = h.Book(e.NewContext(req, rec))
	return rec
}

func TestBookRejectsBadShapes(t *testing.T) {
	h, _, done := newBookingTestServer(t)
	defer done()

	cases := []struct {
		name string
		body string
	}{
		{"missing class id", `{"client_name":"John Doe","client_email":"john@example.com"}`},
		{"blank name", `{"class_id":1,"client_name":"   ","client_email":"john@example.com"}`},
		{"bad email", `{"class_id":1,"client_name":"John Doe","client_email":"not-an-email"}`},
		{"malformed json", `{"class_id":`},
	}
	for _, tc := range cases {
		rec := postBook(h, tc.body)
		if rec.Code != http.StatusUnprocessableEntity {
			t.Fatalf("%s: expected 422, got %d (%s)", tc.name, rec.Code, rec.Body.String())
		}
	}
}

func TestBookMapsWorkflowErrors(t *testing.T) {
	h, mock, done := newBookingTestServer(t)
	defer done()

	classCols := []string{"id", "name", "instructor", "start_at", "total_slots", "available_slots", "created_at"}
	startAt := time.Now().UTC().Add(24 * time.Hour)

	// unknown class -> 404
	mock.ExpectBegin()
	mock.ExpectQuery("FROM classes").WillReturnRows(sqlmock.NewRows(classCols))
	mock.ExpectRollback()
	if rec := postBook(h, `{"class_id":999,"client_name":"John Doe","client_email":"john@example.com"}`); rec.Code != http.StatusNotFound {
		t.Fatalf("unknown class: expected 404, got %d", rec.Code)
	}

	// full class -> 400
	mock.ExpectBegin()
	mock.ExpectQuery("FROM classes").
		WillReturnRows(sqlmock.NewRows(classCols).AddRow(3, "HIIT Training", "Anjali Singh", startAt, 15, 0, startAt))
	mock.ExpectRollback()
	if rec := postBook(h, `{"class_id":3,"client_name":"John Doe","client_email":"john@example.com"}`); rec.Code != http.StatusBadRequest {
		t.Fatalf("full class: expected 400, got %d", rec.Code)
	}

	// duplicate -> 400
	mock.ExpectBegin()
	mock.ExpectQuery("FROM classes").
		WillReturnRows(sqlmock.NewRows(classCols).AddRow(1, "Yoga Flow", "Priya Sharma", startAt, 20, 19, startAt))
	mock.ExpectQuery("SELECT id FROM bookings").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7))
	mock.ExpectRollback()
	if rec := postBook(h, `{"class_id":1,"client_name":"John Doe","client_email":"john@example.com"}`); rec.Code != http.StatusBadRequest {
		t.Fatalf("duplicate: expected 400, got %d", rec.Code)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestBookSuccessReturnsConfirmation(t *testing.T) {
	h, mock, done := newBookingTestServer(t)
	defer done()

	classCols := []string{"id", "name", "instructor", "start_at", "total_slots", "available_slots", "created_at"}
	startAt := time.Now().UTC().Add(24 * time.Hour)

	mock.ExpectBegin()
	mock.ExpectQuery("FROM classes").
		WillReturnRows(sqlmock.NewRows(classCols).AddRow(1, "Yoga Flow", "Priya Sharma", startAt, 20, 20, startAt))
	mock.ExpectQuery("SELECT id FROM bookings").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectExec("INSERT INTO bookings").WillReturnResult(sqlmock.NewResult(7, 1))
	mock.ExpectExec("UPDATE classes SET available_slots").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	rec := postBook(h, `{"class_id":1,"client_name":"John Doe","client_email":"John@Example.com"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d (%s)", rec.Code, rec.Body.String())
	}

	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("response not JSON: %v", err)
	}
	if body["booking_id"] != float64(7) {
		t.Fatalf("booking_id wrong: %v", body["booking_id"])
	}
	if body["class_name"] != "Yoga Flow" || body["instructor"] != "Priya Sharma" {
		t.Fatalf("class details wrong: %v", body)
	}
	// emails are normalized to lower case before reaching the workflow
	if body["client_email"] != "john@example.com" {
		t.Fatalf("email not normalized: %v", body["client_email"])
	}
}

func TestListBookingsRequiresValidEmail(t *testing.T) {
	h, _, done := newBookingTestServer(t)
	defer done()

	e := echo.New()
	for _, target := range []string{"/bookings", "/bookings?email=nope"} {
		req := httptest.NewRequest(http.MethodGet, target, nil)
		rec := httptest.NewRecorder()
		_ = h.ListBookings(e.NewContext(req, rec))
		if rec.Code != http.StatusUnprocessableEntity {
			t.Fatalf("%s: expected 422, got %d", target, rec.Code)
		}
	}
}

func TestListBookingsEmptyResultIsSuccess(t *testing.T) {
	h, mock, done := newBookingTestServer(t)
	defer done()

	mock.ExpectQuery("JOIN classes").
		WithArgs("nobody@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"id", "class_id", "client_name", "client_email", "booking_time", "name", "instructor", "start_at"}))

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/bookings?email=nobody@example.com", nil)
	rec := httptest.NewRecorder()
	_ = h.ListBookings(e.NewContext(req, rec))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var body struct {
		Items []any `json:"items"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("response not JSON: %v", err)
	}
	if body.Items == nil || len(body.Items) != 0 {
		t.Fatalf("expected empty items array, got %v", body.Items)
	}
}
