package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"eventbooking/internal/domain"
)

type bookingService struct {
	eventRepo      domain.EventRepository
	bookingRepo    domain.BookingRepository
	emailService   domain.EmailService
	logger         *slog.Logger
	publicBaseURL  string
	contextTimeout time.Duration
	now            func() time.Time
}

// NewBookingService creates a BookingService. emailService may be nil, in which case no
// confirmation is sent. publicBaseURL is used to link the event page in confirmations.
func NewBookingService(
	eventRepo domain.EventRepository,
	bookingRepo domain.BookingRepository,
	emailService domain.EmailService,
	logger *slog.Logger,
	publicBaseURL string,
	timeout time.Duration,
) domain.BookingService {
	return &bookingService{
		eventRepo:      eventRepo,
		bookingRepo:    bookingRepo,
		emailService:   emailService,
		logger:         logger,
		publicBaseURL:  strings.TrimSuffix(publicBaseURL, "/"),
		contextTimeout: timeout,
		now:            time.Now,
	}
}

func (s *bookingService) CreateBooking(ctx context.Context, eventID, email string) (*domain.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	normalized, err := domain.NormalizeEmail(email)
	if err != nil {
		return nil, err
	}

	eventID = strings.TrimSpace(eventID)
	if !domain.IsValidID(eventID) {
		return nil, domain.ErrInvalidEventID
	}
	// The lookup doubles as the existence check and provides the details for the email.
	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrEventNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}

	now := s.now()
	booking := domain.NewBooking(event.ID, normalized, now, now)
	if err := s.bookingRepo.Create(ctx, booking); err != nil {
		if errors.Is(err, domain.ErrEventNotFound) {
			return nil, domain.ErrEventNotFound
		}
		return nil, fmt.Errorf("create booking: %w", err)
	}

	s.sendConfirmation(ctx, booking, event)
	return booking, nil
}

func (s *bookingService) GetBooking(ctx context.Context, id string) (*domain.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if !domain.IsValidID(id) {
		return nil, domain.ErrNotFound
	}
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get booking: %w", err)
	}
	return booking, nil
}

// UpdateBooking changes the email and/or event of a booking. The event store is only
// consulted when the event reference actually changes.
func (s *bookingService) UpdateBooking(ctx context.Context, id string, update domain.BookingUpdate) (*domain.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if !domain.IsValidID(id) {
		return nil, domain.ErrNotFound
	}
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get booking: %w", err)
	}

	next := *booking
	if update.Email != nil {
		email, err := domain.NormalizeEmail(*update.Email)
		if err != nil {
			return nil, err
		}
		next.Email = email
	}
	if update.EventID != nil {
		eventID := strings.TrimSpace(*update.EventID)
		if eventID != booking.EventID {
			if err := s.ensureEventExists(ctx, eventID); err != nil {
				return nil, err
			}
		}
		next.EventID = eventID
	}
	next.UpdatedAt = s.now()

	if err := s.bookingRepo.Update(ctx, &next); err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			return nil, domain.ErrNotFound
		case errors.Is(err, domain.ErrEventNotFound):
			return nil, domain.ErrEventNotFound
		}
		return nil, fmt.Errorf("update booking: %w", err)
	}
	return &next, nil
}

func (s *bookingService) ListBookingsByEvent(ctx context.Context, eventID string) ([]*domain.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if !domain.IsValidID(eventID) {
		return nil, domain.ErrNotFound
	}
	exists, err := s.eventRepo.Exists(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("check event: %w", err)
	}
	if !exists {
		return nil, domain.ErrNotFound
	}
	bookings, err := s.bookingRepo.ListByEventID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	if bookings == nil {
		bookings = []*domain.Booking{}
	}
	return bookings, nil
}

func (s *bookingService) ensureEventExists(ctx context.Context, eventID string) error {
	if !domain.IsValidID(eventID) {
		return domain.ErrInvalidEventID
	}
	exists, err := s.eventRepo.Exists(ctx, eventID)
	if err != nil {
		return fmt.Errorf("check event: %w", err)
	}
	if !exists {
		return domain.ErrEventNotFound
	}
	return nil
}

// sendConfirmation never fails the booking; delivery problems are only logged.
func (s *bookingService) sendConfirmation(ctx context.Context, booking *domain.Booking, event *domain.Event) {
	if s.emailService == nil {
		return
	}
	data := &domain.BookingConfirmationEmailData{
		Email:      booking.Email,
		BookingID:  booking.ID,
		EventTitle: event.Title,
		EventDate:  event.Date,
		EventTime:  event.Time,
		Venue:      event.Venue,
		Location:   event.Location,
	}
	if s.publicBaseURL != "" {
		data.EventURL = s.publicBaseURL + "/events/" + event.Slug
	}
	if err := s.emailService.SendBookingConfirmation(ctx, data); err != nil && s.logger != nil {
		s.logger.WarnContext(ctx, "booking confirmation not sent", "booking_id", booking.ID, "event_id", event.ID, "err", err)
	}
}
