package model

import "time"

// Booking records a client's reservation for a single class session.
// A booking refers to its class by ID, it does not own it.  Bookings
// are created exactly once per successful booking workflow run and
// are never mutated or deleted.
//
// Fields:
//  ID          – primary key identifier.
//  ClassID     – class session being booked.
//  ClientName  – display name of the client.
//  ClientEmail – client email; together with ClassID it must be
//                unique (one booking per client per class).
//  BookingTime – when the booking was made, stored in UTC.
type Booking struct {
	ID          uint64    // bookings.id
	ClassID     uint64    // bookings.class_id
	ClientName  string    // bookings.client_name
	ClientEmail string    // bookings.client_email
	BookingTime time.Time // bookings.booking_time (UTC)
}
