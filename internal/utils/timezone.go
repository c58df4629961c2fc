// Package utils contains small helpers shared across handlers and
// the database layer.  This file implements timezone handling: all
// instants are persisted in UTC, while seed data and default display
// use the studio's canonical zone (India Standard Time).
package utils

import (
	"log"
	"time"
)

// CanonicalZone is the timezone in which class schedules are
// conceptually anchored.  Naive wall-clock inputs (seed data) are
// interpreted in this zone, and it is the default display zone for
// all listing endpoints.
const CanonicalZone = "Asia/Kolkata"

// ConvertToZone renders the given instant as RFC3339 in the named
// timezone.  Conversion failures are deliberately soft: when the zone
// name is unknown, the failure is logged and the instant is rendered
// in the canonical zone instead, so a bad ?timezone= parameter can
// never break a listing or booking response.
func ConvertToZone(t time.Time, tz string) string {
	if tz == "" {
		tz = CanonicalZone
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		log.Printf("timezone: unknown zone %q, falling back to %s: %v", tz, CanonicalZone, err)
		loc, err = time.LoadLocation(CanonicalZone)
		if err != nil {
			// tzdata missing entirely; render as stored
			return t.UTC().Format(time.RFC3339)
		}
	}
	return t.In(loc).Format(time.RFC3339)
}
