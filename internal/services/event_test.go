package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"eventbooking/internal/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memEventRepository is an in-memory domain.EventRepository with a unique slug index.
type memEventRepository struct {
	events      map[string]*domain.Event
	err         error
	createCalls int
	updateCalls int
	existsCalls int
	lastFilter  domain.EventFilter
}

func newMemEventRepository() *memEventRepository {
	return &memEventRepository{events: make(map[string]*domain.Event)}
}

func (m *memEventRepository) slugTaken(slug, exceptID string) bool {
	for id, e := range m.events {
		if e.Slug == slug && id != exceptID {
			return true
		}
	}
	return false
}

func (m *memEventRepository) Create(ctx context.Context, e *domain.Event) error {
	m.createCalls++
	if m.err != nil {
		return m.err
	}
	if m.slugTaken(e.Slug, "") {
		return domain.ErrDuplicateSlug
	}
	e.ID = uuid.NewString()
	stored := *e
	m.events[e.ID] = &stored
	return nil
}

func (m *memEventRepository) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	if m.err != nil {
		return nil, m.err
	}
	e, ok := m.events[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *e
	return &cp, nil
}

func (m *memEventRepository) GetBySlug(ctx context.Context, slug string) (*domain.Event, error) {
	if m.err != nil {
		return nil, m.err
	}
	for _, e := range m.events {
		if e.Slug == slug {
			cp := *e
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *memEventRepository) List(ctx context.Context, filter domain.EventFilter, params domain.PaginationParams) ([]*domain.Event, int, error) {
	m.lastFilter = filter
	if m.err != nil {
		return nil, 0, m.err
	}
	var out []*domain.Event
	for _, e := range m.events {
		out = append(out, e)
	}
	return out, len(out), nil
}

func (m *memEventRepository) Update(ctx context.Context, e *domain.Event) error {
	m.updateCalls++
	if m.err != nil {
		return m.err
	}
	if _, ok := m.events[e.ID]; !ok {
		return domain.ErrNotFound
	}
	if m.slugTaken(e.Slug, e.ID) {
		return domain.ErrDuplicateSlug
	}
	stored := *e
	m.events[e.ID] = &stored
	return nil
}

func (m *memEventRepository) Delete(ctx context.Context, id string) error {
	if m.err != nil {
		return m.err
	}
	if _, ok := m.events[id]; !ok {
		return domain.ErrNotFound
	}
	delete(m.events, id)
	return nil
}

func (m *memEventRepository) Exists(ctx context.Context, id string) (bool, error) {
	m.existsCalls++
	if m.err != nil {
		return false, m.err
	}
	_, ok := m.events[id]
	return ok, nil
}

func newEventInput() *domain.Event {
	return &domain.Event{
		Title:       "React Summit",
		Description: "A premier React conference.",
		Overview:    "Workshops and talks.",
		Image:       "/images/event1.png",
		Venue:       "RAI",
		Location:    "Amsterdam, NL",
		Date:        "March 11, 2026",
		Time:        "9:00 AM",
		Mode:        "offline",
		Audience:    "Developers",
		Agenda:      []string{"Keynote"},
		Organizer:   "GitNation",
		Tags:        []string{"react"},
	}
}

func newTestEventService(events *memEventRepository, bookings *memBookingRepository) *eventService {
	svc := NewEventService(events, bookings, 5*time.Second).(*eventService)
	svc.now = func() time.Time { return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC) }
	return svc
}

func TestEventService_CreateEvent(t *testing.T) {
	ctx := context.Background()

	t.Run("normalizes and stores", func(t *testing.T) {
		events := newMemEventRepository()
		svc := newTestEventService(events, newMemBookingRepository(events))

		e := newEventInput()
		require.NoError(t, svc.CreateEvent(ctx, e))
		assert.NotEmpty(t, e.ID)
		assert.Equal(t, "react-summit", e.Slug)
		assert.Equal(t, "2026-03-11", e.Date)
		assert.Equal(t, "09:00", e.Time)
		assert.Equal(t, svc.now(), e.CreatedAt)
		assert.Equal(t, 1, events.createCalls)
	})

	t.Run("validation failure never reaches the store", func(t *testing.T) {
		events := newMemEventRepository()
		svc := newTestEventService(events, newMemBookingRepository(events))

		e := newEventInput()
		e.Tags = []string{}
		err := svc.CreateEvent(ctx, e)
		require.ErrorIs(t, err, domain.ErrValidation)
		assert.Contains(t, err.Error(), "tags")
		assert.Equal(t, 0, events.createCalls)

		e.Tags = []string{"a"}
		require.NoError(t, svc.CreateEvent(ctx, e))
	})

	t.Run("bad time", func(t *testing.T) {
		events := newMemEventRepository()
		svc := newTestEventService(events, newMemBookingRepository(events))
		e := newEventInput()
		e.Time = "13:00 PM"
		require.ErrorIs(t, svc.CreateEvent(ctx, e), domain.ErrValidation)
		assert.Equal(t, 0, events.createCalls)
	})

	t.Run("duplicate slug", func(t *testing.T) {
		events := newMemEventRepository()
		svc := newTestEventService(events, newMemBookingRepository(events))
		require.NoError(t, svc.CreateEvent(ctx, newEventInput()))
		err := svc.CreateEvent(ctx, newEventInput())
		require.ErrorIs(t, err, domain.ErrDuplicateSlug)
	})

	t.Run("repository error is wrapped", func(t *testing.T) {
		events := newMemEventRepository()
		events.err = errors.New("db down")
		svc := newTestEventService(events, newMemBookingRepository(events))
		err := svc.CreateEvent(ctx, newEventInput())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "create event: db down")
	})
}

func TestEventService_UpdateEvent(t *testing.T) {
	ctx := context.Background()
	events := newMemEventRepository()
	svc := newTestEventService(events, newMemBookingRepository(events))

	e := newEventInput()
	require.NoError(t, svc.CreateEvent(ctx, e))

	t.Run("unchanged title keeps slug", func(t *testing.T) {
		desc := "New description"
		tm := "6:30 pm"
		got, err := svc.UpdateEvent(ctx, e.ID, domain.EventUpdate{Description: &desc, Time: &tm})
		require.NoError(t, err)
		assert.Equal(t, "react-summit", got.Slug)
		assert.Equal(t, "18:30", got.Time)
		assert.Equal(t, "New description", got.Description)

		again, err := svc.UpdateEvent(ctx, e.ID, domain.EventUpdate{})
		require.NoError(t, err)
		assert.Equal(t, "react-summit", again.Slug)
	})

	t.Run("title change regenerates slug", func(t *testing.T) {
		title := "React Summit Amsterdam"
		got, err := svc.UpdateEvent(ctx, e.ID, domain.EventUpdate{Title: &title})
		require.NoError(t, err)
		assert.Equal(t, "react-summit-amsterdam", got.Slug)

		stored, err := events.GetByID(ctx, e.ID)
		require.NoError(t, err)
		assert.Equal(t, "react-summit-amsterdam", stored.Slug)
	})

	t.Run("invalid update leaves stored event untouched", func(t *testing.T) {
		before := events.updateCalls
		date := "not-a-date"
		_, err := svc.UpdateEvent(ctx, e.ID, domain.EventUpdate{Date: &date})
		require.ErrorIs(t, err, domain.ErrValidation)
		assert.Equal(t, before, events.updateCalls)

		stored, err := events.GetByID(ctx, e.ID)
		require.NoError(t, err)
		assert.Equal(t, "2026-03-11", stored.Date)
	})

	t.Run("unknown id", func(t *testing.T) {
		_, err := svc.UpdateEvent(ctx, uuid.NewString(), domain.EventUpdate{})
		require.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("malformed id", func(t *testing.T) {
		_, err := svc.UpdateEvent(ctx, "ev-1", domain.EventUpdate{})
		require.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestEventService_GetEventBySlug(t *testing.T) {
	ctx := context.Background()
	events := newMemEventRepository()
	bookings := newMemBookingRepository(events)
	svc := newTestEventService(events, bookings)

	e := newEventInput()
	require.NoError(t, svc.CreateEvent(ctx, e))
	require.NoError(t, bookings.Create(ctx, domain.NewBooking(e.ID, "a@example.com", time.Now(), time.Now())))
	require.NoError(t, bookings.Create(ctx, domain.NewBooking(e.ID, "b@example.com", time.Now(), time.Now())))

	detail, err := svc.GetEventBySlug(ctx, " React-Summit ")
	require.NoError(t, err)
	assert.Equal(t, e.ID, detail.Event.ID)
	assert.Equal(t, 2, detail.BookingCount)

	_, err = svc.GetEventBySlug(ctx, "nope")
	require.ErrorIs(t, err, domain.ErrNotFound)
	_, err = svc.GetEventBySlug(ctx, "  ")
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestEventService_ListEvents(t *testing.T) {
	ctx := context.Background()
	events := newMemEventRepository()
	svc := newTestEventService(events, newMemBookingRepository(events))

	got, total, err := svc.ListEvents(ctx, domain.EventFilter{Tag: " react "}, domain.PaginationParams{Page: 1, PageSize: 10})
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Equal(t, 0, total)
	assert.Equal(t, "react", events.lastFilter.Tag)

	events.err = errors.New("boom")
	_, _, err = svc.ListEvents(ctx, domain.EventFilter{}, domain.PaginationParams{Page: 1, PageSize: 10})
	require.Error(t, err)
}

func TestEventService_DeleteEvent(t *testing.T) {
	ctx := context.Background()
	events := newMemEventRepository()
	svc := newTestEventService(events, newMemBookingRepository(events))

	e := newEventInput()
	require.NoError(t, svc.CreateEvent(ctx, e))
	require.NoError(t, svc.DeleteEvent(ctx, e.ID))
	require.ErrorIs(t, svc.DeleteEvent(ctx, e.ID), domain.ErrNotFound)
	require.ErrorIs(t, svc.DeleteEvent(ctx, "bad"), domain.ErrNotFound)
}
