package handler

import (
	"context"
	"errors"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/fitness-studio-booking/internal/queue"
	"github.com/iliyamo/fitness-studio-booking/internal/repository"
	"github.com/iliyamo/fitness-studio-booking/internal/service"
	"github.com/iliyamo/fitness-studio-booking/internal/utils"
)

// emailRx is a syntactic email check, not an RFC 5322 validator.
// Business rules never see an email that fails it.
var emailRx = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// BookingHandler serves the booking endpoints.  It validates request
// shape, delegates to the booking workflow and maps workflow errors
// onto HTTP statuses.
type BookingHandler struct {
	Bookings *repository.BookingRepo
	Workflow *service.BookingService
}

// NewBookingHandler constructs a BookingHandler.  All dependencies
// must be non-nil.
func NewBookingHandler(bookings *repository.BookingRepo, workflow *service.BookingService) *BookingHandler {
	if bookings == nil || workflow == nil {
		panic("nil dependency passed to NewBookingHandler")
	}
	return &BookingHandler{Bookings: bookings, Workflow: workflow}
}

// ----- DTOs -----

type bookReq struct {
	ClassID     uint64 `json:"class_id"`
	ClientName  string `json:"client_name"`
	ClientEmail string `json:"client_email"`
}

type bookingItem struct {
	ID            uint64 `json:"id"`
	ClassID       uint64 `json:"class_id"`
	ClientName    string `json:"client_name"`
	ClientEmail   string `json:"client_email"`
	BookingTime   string `json:"booking_time"`
	ClassName     string `json:"class_name"`
	Instructor    string `json:"instructor"`
	ClassDatetime string `json:"class_datetime"`
}

// Book handles POST /book.  Shape validation (positive class_id,
// non-empty name, syntactically valid email) happens here and yields
// 422 before the workflow is invoked; business failures come back as
// typed errors and are mapped to 404/400.  After a committed booking
// a booking.confirmed event is published in the background; publish
// failures are logged inside the publisher and never affect the
// response.
func (h *BookingHandler) Book(c echo.Context) error {
	var req bookReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": "invalid request body"})
	}
	req.ClientName = strings.TrimSpace(req.ClientName)
	req.ClientEmail = strings.ToLower(strings.TrimSpace(req.ClientEmail))
	if req.ClassID == 0 {
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": "class_id must be a positive integer"})
	}
	if req.ClientName == "" {
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": "client_name cannot be empty"})
	}
	if !emailRx.MatchString(req.ClientEmail) {
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": "client_email is not a valid email address"})
	}

	ctx := c.Request().Context()
	conf, err := h.Workflow.Book(ctx, service.BookingRequest{
		ClassID:     req.ClassID,
		ClientName:  req.ClientName,
		ClientEmail: req.ClientEmail,
	})
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrClassNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "class not found or has already occurred"})
		case errors.Is(err, repository.ErrNoSlotsAvailable):
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "no available slots for this class"})
		case errors.Is(err, repository.ErrDuplicateBooking):
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "you have already booked this class"})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal server error"})
		}
	}

	go func(conf service.BookingConfirmation) {
		pubCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = queue.PublishBookingConfirmed(pubCtx, queue.BookingConfirmedEvent{
			BookingID:    conf.BookingID,
			ClassID:      conf.ClassID,
			ClassName:    conf.ClassName,
			Instructor:   conf.Instructor,
			ClassStartAt: conf.ClassStartAt.UTC().Format(time.RFC3339),
			ClientName:   conf.ClientName,
			ClientEmail:  conf.ClientEmail,
			BookedAt:     conf.BookingTime.UTC().Format(time.RFC3339),
		})
	}(*conf)

	return c.JSON(http.StatusCreated, echo.Map{
		"message":        "Booking successful",
		"booking_id":     conf.BookingID,
		"class_name":     conf.ClassName,
		"instructor":     conf.Instructor,
		"class_datetime": utils.ConvertToZone(conf.ClassStartAt, ""),
		"client_name":    conf.ClientName,
		"client_email":   conf.ClientEmail,
	})
}

// ListBookings handles GET /bookings.  The email query parameter is
// required and must be syntactically valid; an email with no bookings
// yields an empty items array, not an error.  Class datetimes are
// rendered in the requested timezone, most future class first.
func (h *BookingHandler) ListBookings(c echo.Context) error {
	email := strings.ToLower(strings.TrimSpace(c.QueryParam("email")))
	if !emailRx.MatchString(email) {
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": "email is required and must be a valid email address"})
	}
	tz := c.QueryParam("timezone")

	ctx := c.Request().Context()
	details, err := h.Bookings.ListByEmail(ctx, email)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}

	out := make([]bookingItem, 0, len(details))
	for _, d := range details {
		out = append(out, bookingItem{
			ID:            d.ID,
			ClassID:       d.ClassID,
			ClientName:    d.ClientName,
			ClientEmail:   d.ClientEmail,
			BookingTime:   d.BookingTime.UTC().Format(time.RFC3339),
			ClassName:     d.ClassName,
			Instructor:    d.Instructor,
			ClassDatetime: utils.ConvertToZone(d.ClassStartAt, tz),
		})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": out})
}
