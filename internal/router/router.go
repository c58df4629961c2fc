package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4" // import the Echo web framework to handle routing

	"github.com/iliyamo/fitness-studio-booking/internal/handler" // import the handlers that implement the endpoints
)

// RegisterRoutes registers routes that take no dependencies on the
// provided Echo instance: the health check used by load balancers and
// the root service banner.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/health", handler.Health)
	e.GET("/", handler.Root)
}

// RegisterAPI registers the booking API endpoints.  The read endpoints
// accept an optional response-cache middleware and the booking
// endpoint an optional rate-limit middleware; pass nil to register a
// route without the extra middleware (e.g. when Redis is unavailable).
func RegisterAPI(e *echo.Echo, ch *handler.ClassHandler, bh *handler.BookingHandler, cacheMW, rateMW echo.MiddlewareFunc) {
	// GET /classes lists upcoming classes with timezone-converted datetimes.
	e.GET("/classes", ch.ListClasses, optional(cacheMW)...)
	// GET /bookings lists a client's bookings joined with class details.
	e.GET("/bookings", bh.ListBookings, optional(cacheMW)...)
	// POST /book runs the booking workflow.  Rate limited per client IP.
	e.POST("/book", bh.Book, optional(rateMW)...)
}

// optional turns a possibly-nil middleware into a slice suitable for
// Echo's variadic route registration.
func optional(mw echo.MiddlewareFunc) []echo.MiddlewareFunc {
	if mw == nil {
		return nil
	}
	return []echo.MiddlewareFunc{mw}
}
