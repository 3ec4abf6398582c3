package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	"eventbooking/config"
	"eventbooking/internal/domain"
	"eventbooking/internal/repository/postgres"
	"eventbooking/internal/services"
)

type seedFile struct {
	Events []seedEvent `yaml:"events"`
}

type seedEvent struct {
	Title       string   `yaml:"title"`
	Description string   `yaml:"description"`
	Overview    string   `yaml:"overview"`
	Image       string   `yaml:"image"`
	Venue       string   `yaml:"venue"`
	Location    string   `yaml:"location"`
	Date        string   `yaml:"date"`
	Time        string   `yaml:"time"`
	Mode        string   `yaml:"mode"`
	Audience    string   `yaml:"audience"`
	Agenda      []string `yaml:"agenda"`
	Organizer   string   `yaml:"organizer"`
	Tags        []string `yaml:"tags"`
}

func (s seedEvent) toEvent() *domain.Event {
	return &domain.Event{
		Title:       s.Title,
		Description: s.Description,
		Overview:    s.Overview,
		Image:       s.Image,
		Venue:       s.Venue,
		Location:    s.Location,
		Date:        s.Date,
		Time:        s.Time,
		Mode:        s.Mode,
		Audience:    s.Audience,
		Agenda:      s.Agenda,
		Organizer:   s.Organizer,
		Tags:        s.Tags,
	}
}

func parseSeed(r io.Reader) ([]*domain.Event, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	var f seedFile
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("decode seed file: %w", err)
	}
	events := make([]*domain.Event, 0, len(f.Events))
	for _, e := range f.Events {
		events = append(events, e.toEvent())
	}
	return events, nil
}

type seedResult struct {
	created, skipped int
}

// seed creates each event through svc. Events whose slug already exists are skipped;
// any other failure stops the run.
func seed(ctx context.Context, svc domain.EventService, events []*domain.Event, logger *slog.Logger) (seedResult, error) {
	var res seedResult
	for i, e := range events {
		err := svc.CreateEvent(ctx, e)
		switch {
		case err == nil:
			res.created++
			logger.Info("event created", "slug", e.Slug, "id", e.ID)
		case errors.Is(err, domain.ErrDuplicateSlug):
			res.skipped++
			logger.Info("event exists, skipping", "title", e.Title)
		default:
			return res, fmt.Errorf("seed event %d (%q): %w", i, e.Title, err)
		}
	}
	return res, nil
}

func main() {
	file := flag.String("file", "seed/events.yaml", "YAML file with events to create")
	flag.Parse()

	logger := config.NewLogger()
	if err := run(logger, *file); err != nil {
		logger.Error("seed failed", "err", err)
		os.Exit(1)
	}
}

func run(logger *slog.Logger, path string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	events, err := parseSeed(f)
	if err != nil {
		return err
	}

	ctx := context.Background()
	db, err := postgres.Open(ctx, cfg.DBUrl, postgres.PoolConfig{MaxOpenConns: 2})
	if err != nil {
		return err
	}
	defer db.Close()
	if err := postgres.Migrate(ctx, db, logger); err != nil {
		return err
	}

	svc := services.NewEventService(postgres.NewEventRepository(db), postgres.NewBookingRepository(db), cfg.RequestTimeout)
	res, err := seed(ctx, svc, events, logger)
	logger.Info("seed finished", "created", res.created, "skipped", res.skipped)
	return err
}
