// Package queue defines message payloads exchanged over the message broker.
package queue

// BookingConfirmedEvent is published when a booking is successfully
// committed.  It carries enough information for downstream consumers
// to log or notify without querying the primary database.
type BookingConfirmedEvent struct {
	BookingID    uint64 `json:"booking_id"`
	ClassID      uint64 `json:"class_id"`
	ClassName    string `json:"class_name"`
	Instructor   string `json:"instructor"`
	ClassStartAt string `json:"class_starts_at"`
	ClientName   string `json:"client_name"`
	ClientEmail  string `json:"client_email"`
	BookedAt     string `json:"booked_at"`
}
