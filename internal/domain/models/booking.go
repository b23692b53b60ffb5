package models

import "busyatra/internal/domain"

// BookingStatus is the lifecycle state of a UserBooking.
type BookingStatus string

const (
	StatusConfirmed BookingStatus = "confirmed"
	StatusCompleted BookingStatus = "completed"
	StatusCancelled BookingStatus = "cancelled"
)

func (s BookingStatus) Valid() bool {
	switch s {
	case StatusConfirmed, StatusCompleted, StatusCancelled:
		return true
	default:
		return false
	}
}

// PassengerInfo is one traveller on a booking; phone is optional.
type PassengerInfo struct {
	Name   string `json:"name"`
	Age    int    `json:"age"`
	Gender string `json:"gender"`
	Phone  string `json:"phone,omitempty"`
}

// UserBooking is the persisted booking record.
type UserBooking struct {
	ID                 string          `json:"id"`
	BookingReference   string          `json:"bookingReference"`
	BusID              string          `json:"busId,omitempty"`
	Operator           string          `json:"operator"`
	BusName            string          `json:"busName"`
	Route              domain.Route    `json:"route"`
	JourneyDate        string          `json:"journeyDate"`
	DepartureTime      string          `json:"departureTime"`
	ArrivalTime        string          `json:"arrivalTime"`
	Seats              []SeatID        `json:"seats"`
	Passengers         []PassengerInfo `json:"passengers,omitempty"`
	PaymentMethod      string          `json:"paymentMethod,omitempty"`
	TotalAmount        int64           `json:"totalAmount"`
	Status             BookingStatus   `json:"status"`
	Rating             int             `json:"rating"`
	BookedAt           string          `json:"bookedAt"`
	CancelledAt        string          `json:"cancelledAt,omitempty"`
	CancellationReason string          `json:"cancellationReason,omitempty"`
	RefundAmount       int64           `json:"refundAmount,omitempty"`
	RefundPercent      int             `json:"refundPercent,omitempty"`
}

// BookingPayload carries the complete record known at booking time.
type BookingPayload struct {
	BusID         string
	Operator      string
	BusName       string
	Route         domain.Route
	JourneyDate   string
	DepartureTime string
	ArrivalTime   string
	Seats         []SeatID
	Passengers    []PassengerInfo
	PaymentMethod string
	TotalAmount   int64
}

// BookingStats aggregates the booking collection for dashboards.
type BookingStats struct {
	TotalBookings  int    `json:"totalBookings"`
	TotalSpent     int64  `json:"totalSpent"`
	UpcomingTrips  int    `json:"upcomingTrips"`
	CompletedTrips int    `json:"completedTrips"`
	CancelledTrips int    `json:"cancelledTrips"`
	FavoriteRoute  string `json:"favoriteRoute"`
	AverageAmount  int64  `json:"averageAmount"`
}

// BookingFilter narrows and orders a booking listing.
type BookingFilter struct {
	Query  string
	Status BookingStatus
	Sort   string // date-desc, date-asc, amount-desc, amount-asc
}
