package domain

import "time"

// BookingStatusConfirmed is the only status a booking can have: there is no
// cancellation or modification lifecycle. The "_mock" suffix is kept for
// frontend compatibility.
const BookingStatusConfirmed = "confirmed_mock"

// Booking is one append-only ledger record. Never mutated after creation.
type Booking struct {
	ID           string    `json:"id"`
	ServiceID    string    `json:"serviceId"`
	ServiceName  string    `json:"serviceName,omitempty"`
	UnitID       string    `json:"unitId"`
	UnitName     string    `json:"unitName,omitempty"`
	Date         string    `json:"date"`
	Time         string    `json:"time"`
	CustomerName string    `json:"customerName"`
	Contact      string    `json:"contact"`
	Price        *float64  `json:"price"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"createdAt"`
}
