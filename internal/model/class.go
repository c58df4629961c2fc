package model

import "time"

// ClassSession represents a scheduled fitness class with a fixed
// capacity.  Sessions are created at startup from seed data; the
// only mutation performed by the application is the decrement of
// AvailableSlots when a booking is committed.
//
// Fields:
//  ID             – primary key identifier.
//  Name           – display name of the class (e.g. "Yoga Flow").
//  Instructor     – name of the instructor leading the class.
//  StartAt        – when the class begins, stored in UTC.
//  TotalSlots     – fixed capacity, immutable after creation.
//  AvailableSlots – remaining capacity; 0 <= AvailableSlots <= TotalSlots.
//  CreatedAt      – row creation timestamp.
type ClassSession struct {
	ID             uint64    // classes.id
	Name           string    // classes.name
	Instructor     string    // classes.instructor
	StartAt        time.Time // classes.start_at (UTC)
	TotalSlots     uint32    // classes.total_slots
	AvailableSlots uint32    // classes.available_slots
	CreatedAt      time.Time // classes.created_at
}
