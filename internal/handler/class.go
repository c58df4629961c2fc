// Package handler exposes the HTTP handlers of the booking API.
// Handlers perform input shape validation and status mapping only;
// all business rules (eligibility, capacity, duplicates) live in the
// service and repository layers.
package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/fitness-studio-booking/internal/repository"
	"github.com/iliyamo/fitness-studio-booking/internal/utils"
)

// ClassHandler serves read-only class catalog endpoints.
type ClassHandler struct {
	Classes *repository.ClassRepo
}

// NewClassHandler constructs a ClassHandler.  The repository must be non-nil.
func NewClassHandler(classes *repository.ClassRepo) *ClassHandler {
	if classes == nil {
		panic("nil repository passed to NewClassHandler")
	}
	return &ClassHandler{Classes: classes}
}

// classItem is a class session as exposed over the API.  The datetime
// field is rendered in the requested timezone.
type classItem struct {
	ID             uint64 `json:"id"`
	Name           string `json:"name"`
	Instructor     string `json:"instructor"`
	Datetime       string `json:"datetime"`
	TotalSlots     uint32 `json:"total_slots"`
	AvailableSlots uint32 `json:"available_slots"`
}

// ListClasses handles GET /classes.  It returns every class whose
// start time is still in the future, ordered soonest first.  The
// optional ?timezone= query parameter selects the display zone; an
// unknown zone falls back to the canonical zone rather than failing
// the request.
func (h *ClassHandler) ListClasses(c echo.Context) error {
	tz := c.QueryParam("timezone")
	ctx := c.Request().Context()

	sessions, err := h.Classes.ListUpcoming(ctx, time.Now().UTC())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}

	out := make([]classItem, 0, len(sessions))
	for _, cs := range sessions {
		out = append(out, classItem{
			ID:             cs.ID,
			Name:           cs.Name,
			Instructor:     cs.Instructor,
			Datetime:       utils.ConvertToZone(cs.StartAt, tz),
			TotalSlots:     cs.TotalSlots,
			AvailableSlots: cs.AvailableSlots,
		})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": out})
}
