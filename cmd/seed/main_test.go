package main

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"strings"
	"testing"

	"eventbooking/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSeed_bundledFile(t *testing.T) {
	f, err := os.Open("../../seed/events.yaml")
	require.NoError(t, err)
	defer f.Close()

	events, err := parseSeed(f)
	require.NoError(t, err)
	require.Len(t, events, 7)

	for _, e := range events {
		prepared := *e
		require.NoError(t, domain.PrepareEvent(&prepared, nil), e.Title)
	}

	first := *events[0]
	require.NoError(t, domain.PrepareEvent(&first, nil))
	assert.Equal(t, "react-summit", first.Slug)
	assert.Equal(t, "2026-03-11", first.Date)

	last := *events[6]
	require.NoError(t, domain.PrepareEvent(&last, nil))
	assert.Equal(t, "dev-meetup-cloud-native", last.Slug)
	assert.Equal(t, "18:30", last.Time)
}

func TestParseSeed_unknownField(t *testing.T) {
	_, err := parseSeed(strings.NewReader("events:\n  - title: X\n    slug: custom\n"))
	require.Error(t, err)
}

type recordingEventService struct {
	domain.EventService
	errs  map[string]error
	calls []string
}

func (r *recordingEventService) CreateEvent(ctx context.Context, e *domain.Event) error {
	r.calls = append(r.calls, e.Title)
	return r.errs[e.Title]
}

func TestSeed(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	events := []*domain.Event{{Title: "A"}, {Title: "B"}, {Title: "C"}}

	svc := &recordingEventService{errs: map[string]error{"B": domain.ErrDuplicateSlug}}
	res, err := seed(context.Background(), svc, events, logger)
	require.NoError(t, err)
	assert.Equal(t, seedResult{created: 2, skipped: 1}, res)

	svc = &recordingEventService{errs: map[string]error{"B": errors.New("db down")}}
	res, err = seed(context.Background(), svc, events, logger)
	require.Error(t, err)
	assert.Equal(t, []string{"A", "B"}, svc.calls)
	assert.Equal(t, 1, res.created)
}
