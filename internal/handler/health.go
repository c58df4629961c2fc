package handler // declare the package name; contains HTTP handlers

import (
	"net/http" // net/http provides status codes and response helpers
	"time"     // time supplies the liveness timestamp

	"github.com/labstack/echo/v4" // echo is the web framework used for this project
)

// Health is a simple health-check endpoint used by load balancers and
// monitoring systems to verify that the service is running.  It does
// not touch the database; the only payload beyond the status is a
// UTC timestamp.
func Health(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// Root returns a short service banner.  Kept separate from /health so
// probes and humans hitting the bare URL get distinct responses.
func Root(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{
		"message": "Fitness Studio Booking API",
		"status":  "running",
	})
}
