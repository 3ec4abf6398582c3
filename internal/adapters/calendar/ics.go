package calendar

import (
	"fmt"
	"strings"
	"time"

	ical "github.com/arran4/golang-ical"

	"eventbooking/internal/domain"
)

const productID = "-//eventbooking//events//EN"

type icsExporter struct {
	publicBaseURL string
}

// NewICSExporter returns a CalendarExporter producing a single-VEVENT iCalendar document.
// When publicBaseURL is set, the event page URL is included.
func NewICSExporter(publicBaseURL string) domain.CalendarExporter {
	return &icsExporter{publicBaseURL: strings.TrimSuffix(publicBaseURL, "/")}
}

// Export serializes e. Date and time are the normalized stored values and are read as UTC.
func (x *icsExporter) Export(e *domain.Event) ([]byte, error) {
	if e == nil {
		return nil, fmt.Errorf("export calendar: nil event")
	}
	start, err := time.ParseInLocation(domain.DateLayout+" "+domain.TimeLayout, e.Date+" "+e.Time, time.UTC)
	if err != nil {
		return nil, fmt.Errorf("export calendar: parse start: %w", err)
	}

	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId(productID)

	ev := cal.AddEvent(e.ID + "@eventbooking")
	ev.SetDtStampTime(e.UpdatedAt)
	ev.SetCreatedTime(e.CreatedAt)
	ev.SetModifiedAt(e.UpdatedAt)
	ev.SetStartAt(start)
	ev.SetSummary(e.Title)
	ev.SetDescription(e.Description)
	ev.SetLocation(e.Venue + ", " + e.Location)
	// One CATEGORIES line per tag; commas inside a tag are escaped as text.
	for _, tag := range e.Tags {
		ev.AddCategory(tag)
	}
	if x.publicBaseURL != "" {
		ev.SetURL(x.publicBaseURL + "/events/" + e.Slug)
	}
	return []byte(cal.Serialize(ical.WithNewLineWindows)), nil
}
