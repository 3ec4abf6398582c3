package calendar

import (
	"bytes"
	"testing"
	"time"

	ical "github.com/arran4/golang-ical"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eventbooking/internal/domain"
)

func sampleEvent() *domain.Event {
	ts := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	return &domain.Event{
		ID:          "0b5e8c1e-9f61-4d5c-8a2b-3a3f1f7b2c11",
		Title:       "React Summit",
		Slug:        "react-summit",
		Description: "A premier React conference.",
		Venue:       "RAI",
		Location:    "Amsterdam, NL",
		Date:        "2026-03-11",
		Time:        "09:00",
		Organizer:   "GitNation",
		Tags:        []string{"react", "frontend"},
		CreatedAt:   ts,
		UpdatedAt:   ts,
	}
}

func TestICSExporter_Export(t *testing.T) {
	out, err := NewICSExporter("https://events.example.com/").Export(sampleEvent())
	require.NoError(t, err)

	cal, err := ical.ParseCalendar(bytes.NewReader(out))
	require.NoError(t, err)
	events := cal.Events()
	require.Len(t, events, 1)
	ev := events[0]

	assert.Equal(t, "React Summit", ev.GetProperty(ical.ComponentPropertySummary).Value)
	assert.Equal(t, "RAI, Amsterdam, NL", ev.GetProperty(ical.ComponentPropertyLocation).Value)
	assert.Equal(t, "https://events.example.com/events/react-summit", ev.GetProperty(ical.ComponentPropertyUrl).Value)
	assert.Equal(t, "20260311T090000Z", ev.GetProperty(ical.ComponentPropertyDtStart).Value)
	assert.Contains(t, string(out), "METHOD:PUBLISH\r\n")
}

func TestICSExporter_Export_categories(t *testing.T) {
	e := sampleEvent()
	e.Tags = []string{"go", "cloud,native"}
	out, err := NewICSExporter("").Export(e)
	require.NoError(t, err)

	assert.Contains(t, string(out), "CATEGORIES:go\r\n")
	assert.Contains(t, string(out), `CATEGORIES:cloud\,native`)
	assert.NotContains(t, string(out), `go\,cloud`)

	cal, err := ical.ParseCalendar(bytes.NewReader(out))
	require.NoError(t, err)
	var got []string
	for _, p := range cal.Events()[0].GetProperties(ical.ComponentPropertyCategories) {
		got = append(got, p.Value)
	}
	assert.Equal(t, []string{"go", "cloud,native"}, got)
}

func TestICSExporter_Export_without_base_url(t *testing.T) {
	out, err := NewICSExporter("").Export(sampleEvent())
	require.NoError(t, err)

	cal, err := ical.ParseCalendar(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Nil(t, cal.Events()[0].GetProperty(ical.ComponentPropertyUrl))
	assert.Len(t, cal.Events()[0].GetProperties(ical.ComponentPropertyCategories), 2)
}

func TestICSExporter_Export_bad_stored_time(t *testing.T) {
	e := sampleEvent()
	e.Time = "9am"
	_, err := NewICSExporter("").Export(e)
	require.Error(t, err)

	_, err = NewICSExporter("").Export(nil)
	require.Error(t, err)
}
