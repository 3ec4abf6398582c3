package domain

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// Event is a listed event. Slug, Date and Time are stored in canonical form; see PrepareEvent.
// swagger:model Event
type Event struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Slug        string    `json:"slug"`
	Description string    `json:"description"`
	Overview    string    `json:"overview"`
	Image       string    `json:"image"`
	Venue       string    `json:"venue"`
	Location    string    `json:"location"`
	Date        string    `json:"date"`
	Time        string    `json:"time"`
	Mode        string    `json:"mode"`
	Audience    string    `json:"audience"`
	Agenda      []string  `json:"agenda"`
	Organizer   string    `json:"organizer"`
	Tags        []string  `json:"tags"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// EventUpdate is a partial change to an event. Nil fields are left unchanged.
type EventUpdate struct {
	Title       *string
	Description *string
	Overview    *string
	Image       *string
	Venue       *string
	Location    *string
	Date        *string
	Time        *string
	Mode        *string
	Audience    *string
	Agenda      []string
	Organizer   *string
	Tags        []string
}

// Apply copies the non-nil fields of u onto e.
func (e *Event) Apply(u EventUpdate) {
	set := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	set(&e.Title, u.Title)
	set(&e.Description, u.Description)
	set(&e.Overview, u.Overview)
	set(&e.Image, u.Image)
	set(&e.Venue, u.Venue)
	set(&e.Location, u.Location)
	set(&e.Date, u.Date)
	set(&e.Time, u.Time)
	set(&e.Mode, u.Mode)
	set(&e.Audience, u.Audience)
	set(&e.Organizer, u.Organizer)
	if u.Agenda != nil {
		e.Agenda = u.Agenda
	}
	if u.Tags != nil {
		e.Tags = u.Tags
	}
}

// Validate checks that every required scalar is non-blank and that agenda and tags are
// non-empty lists without blank entries. The first failure is returned.
func (e *Event) Validate() error {
	scalars := []struct {
		field string
		value string
	}{
		{"title", e.Title},
		{"description", e.Description},
		{"overview", e.Overview},
		{"image", e.Image},
		{"venue", e.Venue},
		{"location", e.Location},
		{"date", e.Date},
		{"time", e.Time},
		{"mode", e.Mode},
		{"audience", e.Audience},
		{"organizer", e.Organizer},
	}
	for _, s := range scalars {
		if strings.TrimSpace(s.value) == "" {
			return newValidationError(s.field, fmt.Sprintf("event %s is required", s.field))
		}
	}
	if err := validateList("agenda", "event agenda is required", e.Agenda); err != nil {
		return err
	}
	return validateList("tags", "event tags are required", e.Tags)
}

func validateList(field, missingMsg string, items []string) error {
	if len(items) == 0 {
		return newValidationError(field, missingMsg)
	}
	for _, item := range items {
		if strings.TrimSpace(item) == "" {
			return newValidationError(field, fmt.Sprintf("event %s must not contain blank entries", field))
		}
	}
	return nil
}

// PrepareEvent runs the pre-write pipeline on e: trims fields, validates them, derives the
// slug and normalizes date and time. prev is the stored version of the event, or nil when
// e is new. The slug is kept from prev unless the title changed; a slug supplied on e is
// never trusted. On error e must not be persisted.
func PrepareEvent(e *Event, prev *Event) error {
	e.trim()
	if err := e.Validate(); err != nil {
		return err
	}

	if prev == nil || prev.Slug == "" || prev.Title != e.Title {
		slug, err := Slugify(e.Title)
		if err != nil {
			return err
		}
		e.Slug = slug
	} else {
		e.Slug = prev.Slug
	}

	date, err := NormalizeDate(e.Date)
	if err != nil {
		return err
	}
	e.Date = date

	t, err := NormalizeTime(e.Time)
	if err != nil {
		return err
	}
	e.Time = t
	return nil
}

func (e *Event) trim() {
	for _, f := range []*string{
		&e.Title, &e.Description, &e.Overview, &e.Image, &e.Venue, &e.Location,
		&e.Date, &e.Time, &e.Mode, &e.Audience, &e.Organizer,
	} {
		*f = strings.TrimSpace(*f)
	}
	e.Agenda = trimAll(e.Agenda)
	e.Tags = trimAll(e.Tags)
}

func trimAll(items []string) []string {
	if items == nil {
		return nil
	}
	out := make([]string, len(items))
	for i, s := range items {
		out[i] = strings.TrimSpace(s)
	}
	return out
}

// EventFilter narrows event listings. Zero value lists everything.
type EventFilter struct {
	Tag  string
	Mode string
}

// EventDetail is an event together with its current number of bookings.
// swagger:model EventDetail
type EventDetail struct {
	Event        *Event `json:"event"`
	BookingCount int    `json:"booking_count"`
}

// EventRepository defines the interface for event storage
type EventRepository interface {
	// Create inserts e and sets e.ID. Returns ErrDuplicateSlug when the slug is taken.
	Create(ctx context.Context, e *Event) error
	GetByID(ctx context.Context, id string) (*Event, error)
	GetBySlug(ctx context.Context, slug string) (*Event, error)
	// List returns one page of events ordered by date and time, plus the total match count.
	List(ctx context.Context, filter EventFilter, params PaginationParams) ([]*Event, int, error)
	// Update overwrites the stored row with e. Returns ErrNotFound or ErrDuplicateSlug.
	Update(ctx context.Context, e *Event) error
	Delete(ctx context.Context, id string) error
	Exists(ctx context.Context, id string) (bool, error)
}

// EventService holds the event use cases. Every write goes through PrepareEvent first.
type EventService interface {
	CreateEvent(ctx context.Context, event *Event) error
	GetEventByID(ctx context.Context, id string) (*Event, error)
	GetEventBySlug(ctx context.Context, slug string) (*EventDetail, error)
	ListEvents(ctx context.Context, filter EventFilter, params PaginationParams) ([]*Event, int, error)
	UpdateEvent(ctx context.Context, id string, update EventUpdate) (*Event, error)
	DeleteEvent(ctx context.Context, id string) error
}

// CalendarExporter renders an event as a downloadable calendar entry.
type CalendarExporter interface {
	Export(event *Event) ([]byte, error)
}
