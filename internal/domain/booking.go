package domain

import (
	"context"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Booking is a visitor's reservation for an event, identified by email.
// swagger:model Booking
type Booking struct {
	ID        string    `json:"id"`
	EventID   string    `json:"event_id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewBooking creates a new Booking. ID is typically set by the repository on create.
func NewBooking(eventID, email string, createdAt, updatedAt time.Time) *Booking {
	return &Booking{
		EventID:   eventID,
		Email:     email,
		CreatedAt: createdAt,
		UpdatedAt: updatedAt,
	}
}

// BookingUpdate is a partial change to a booking. Nil fields are left unchanged.
type BookingUpdate struct {
	EventID *string
	Email   *string
}

// NormalizeEmail trims and lowercases s and checks it looks like local@domain.tld.
func NormalizeEmail(s string) (string, error) {
	email := strings.ToLower(strings.TrimSpace(s))
	if !emailRe.MatchString(email) {
		return "", newValidationError("email", "invalid email format")
	}
	return email, nil
}

// IsValidID reports whether id is a canonical UUID (8-4-4-4-12 hex).
func IsValidID(id string) bool {
	if len(id) != 36 {
		return false
	}
	_, err := uuid.Parse(id)
	return err == nil
}

// BookingRepository defines storage operations for bookings.
type BookingRepository interface {
	// Create inserts b and sets b.ID. Returns ErrEventNotFound if the event is gone.
	Create(ctx context.Context, b *Booking) error
	GetByID(ctx context.Context, id string) (*Booking, error)
	// Update overwrites event_id, email and updated_at. Returns ErrNotFound or ErrEventNotFound.
	Update(ctx context.Context, b *Booking) error
	ListByEventID(ctx context.Context, eventID string) ([]*Booking, error)
	CountByEventID(ctx context.Context, eventID string) (int, error)
}

// BookingService holds the booking use cases. A booking is only written once its event
// reference has been checked against the event store.
type BookingService interface {
	CreateBooking(ctx context.Context, eventID, email string) (*Booking, error)
	GetBooking(ctx context.Context, id string) (*Booking, error)
	UpdateBooking(ctx context.Context, id string, update BookingUpdate) (*Booking, error)
	ListBookingsByEvent(ctx context.Context, eventID string) ([]*Booking, error)
}
