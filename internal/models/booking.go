package models

import "time"

// Booking statuses. PENDING is the initial state; the rest are set freely by
// admins, there is no enforced transition graph beyond enum membership.
const (
	BookingStatusPending   = "PENDING"
	BookingStatusConfirmed = "CONFIRMED"
	BookingStatusCancelled = "CANCELLED"
	BookingStatusCompleted = "COMPLETED"
)

// ValidBookingStatus reports whether s is one of the enumerated statuses.
func ValidBookingStatus(s string) bool {
	switch s {
	case BookingStatusPending, BookingStatusConfirmed, BookingStatusCancelled, BookingStatusCompleted:
		return true
	}
	return false
}

// BookingModel is a customer booking request for a tour product.
type BookingModel struct {
	Base
	TourProductID string     `json:"tour_product_id" gorm:"type:char(36);index;not null"`
	CustomerName  string     `json:"customer_name"   gorm:"not null"`
	Phone         string     `json:"phone"           gorm:"not null"`
	Email         string     `json:"email"`
	HeadCount     int        `json:"head_count"      gorm:"default:1"`
	DepartureDate *time.Time `json:"departure_date"`
	Message       string     `json:"message"         gorm:"type:text"`
	Status        string     `json:"status"          gorm:"default:PENDING;index"`
	AdminMemo     string     `json:"admin_memo"      gorm:"type:text"`

	TourProduct *ProductModel `json:"tour_product,omitempty" gorm:"foreignKey:TourProductID"`
}

func (BookingModel) TableName() string { return "bookings" }
