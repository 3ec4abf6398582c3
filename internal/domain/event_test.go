package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validEvent() *Event {
	return &Event{
		Title:       "React Summit",
		Description: "A premier React conference.",
		Overview:    "Workshops and talks from core team members.",
		Image:       "/images/event1.png",
		Venue:       "RAI",
		Location:    "Amsterdam, NL",
		Date:        "March 11, 2026",
		Time:        "9:00 AM",
		Mode:        "offline",
		Audience:    "Developers",
		Agenda:      []string{"Keynote", "Workshops"},
		Organizer:   "GitNation",
		Tags:        []string{"react", "frontend"},
	}
}

func TestEvent_Validate(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(e *Event)
		wantField string
		wantMsg   string
	}{
		{"valid", func(e *Event) {}, "", ""},
		{"blank title", func(e *Event) { e.Title = "   " }, "title", "event title is required"},
		{"missing description", func(e *Event) { e.Description = "" }, "description", "event description is required"},
		{"missing overview", func(e *Event) { e.Overview = "" }, "overview", "event overview is required"},
		{"missing image", func(e *Event) { e.Image = "" }, "image", "event image is required"},
		{"missing venue", func(e *Event) { e.Venue = "" }, "venue", "event venue is required"},
		{"missing location", func(e *Event) { e.Location = "\t" }, "location", "event location is required"},
		{"missing date", func(e *Event) { e.Date = "" }, "date", "event date is required"},
		{"missing time", func(e *Event) { e.Time = "" }, "time", "event time is required"},
		{"missing mode", func(e *Event) { e.Mode = "" }, "mode", "event mode is required"},
		{"missing audience", func(e *Event) { e.Audience = "" }, "audience", "event audience is required"},
		{"missing organizer", func(e *Event) { e.Organizer = "" }, "organizer", "event organizer is required"},
		{"nil agenda", func(e *Event) { e.Agenda = nil }, "agenda", "event agenda is required"},
		{"blank agenda entry", func(e *Event) { e.Agenda = []string{"Keynote", " "} }, "agenda", "event agenda must not contain blank entries"},
		{"empty tags", func(e *Event) { e.Tags = []string{} }, "tags", "event tags are required"},
		{"blank tag", func(e *Event) { e.Tags = []string{""} }, "tags", "event tags must not contain blank entries"},
		{"single tag is enough", func(e *Event) { e.Tags = []string{"a"} }, "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := validEvent()
			tt.mutate(e)
			err := e.Validate()
			if tt.wantField == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrValidation))
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.wantField, verr.Field)
			assert.Equal(t, tt.wantMsg, verr.Message)
		})
	}
}

func TestPrepareEvent_New(t *testing.T) {
	e := validEvent()
	e.Title = "  React Summit  "
	e.Slug = "client-supplied"
	e.Tags = []string{" react ", "frontend"}

	require.NoError(t, PrepareEvent(e, nil))

	assert.Equal(t, "React Summit", e.Title)
	assert.Equal(t, "react-summit", e.Slug)
	assert.Equal(t, "2026-03-11", e.Date)
	assert.Equal(t, "09:00", e.Time)
	assert.Equal(t, []string{"react", "frontend"}, e.Tags)
}

func TestPrepareEvent_Failures(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(e *Event)
		wantMsg string
	}{
		{"bad date", func(e *Event) { e.Date = "not-a-date" }, "invalid date format"},
		{"bad time", func(e *Event) { e.Time = "13:00 PM" }, "invalid time value"},
		{"title without slug characters", func(e *Event) { e.Title = "!!!" }, "unable to derive slug"},
		{"empty tags", func(e *Event) { e.Tags = nil }, "event tags are required"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := validEvent()
			tt.mutate(e)
			err := PrepareEvent(e, nil)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrValidation))
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestPrepareEvent_SlugLifecycle(t *testing.T) {
	stored := validEvent()
	require.NoError(t, PrepareEvent(stored, nil))
	require.Equal(t, "react-summit", stored.Slug)

	// Pretend the slug was made unique by hand after creation.
	stored.Slug = "react-summit-2026"

	t.Run("same title keeps slug", func(t *testing.T) {
		next := *stored
		next.Description = "Updated description"
		next.Time = "18:00"
		require.NoError(t, PrepareEvent(&next, stored))
		assert.Equal(t, "react-summit-2026", next.Slug)
		assert.Equal(t, "18:00", next.Time)
	})

	t.Run("saving twice keeps slug", func(t *testing.T) {
		next := *stored
		require.NoError(t, PrepareEvent(&next, stored))
		again := next
		require.NoError(t, PrepareEvent(&again, &next))
		assert.Equal(t, "react-summit-2026", again.Slug)
		assert.Equal(t, "2026-03-11", again.Date)
	})

	t.Run("title change regenerates slug", func(t *testing.T) {
		next := *stored
		next.Title = "React Summit Amsterdam"
		require.NoError(t, PrepareEvent(&next, stored))
		assert.Equal(t, "react-summit-amsterdam", next.Slug)
	})

	t.Run("empty stored slug is regenerated", func(t *testing.T) {
		prev := *stored
		prev.Slug = ""
		next := prev
		require.NoError(t, PrepareEvent(&next, &prev))
		assert.Equal(t, "react-summit", next.Slug)
	})
}

func TestEvent_Apply(t *testing.T) {
	e := validEvent()
	title := "New Title"
	e.Apply(EventUpdate{Title: &title, Tags: []string{"x"}})
	assert.Equal(t, "New Title", e.Title)
	assert.Equal(t, []string{"x"}, e.Tags)
	assert.Equal(t, []string{"Keynote", "Workshops"}, e.Agenda)
	assert.Equal(t, "RAI", e.Venue)
}
