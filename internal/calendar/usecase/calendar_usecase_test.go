package usecase

import (
	"strings"
	"testing"

	"google.golang.org/api/calendar/v3"
)

func TestFormatEventSummaryEmpty(t *testing.T) {
	got := FormatEventSummary(nil)
	if got != "The calendar has no upcoming events." {
		t.Errorf("got %q", got)
	}
}

func TestFormatEventSummaryGroupsByDay(t *testing.T) {
	events := []*calendar.Event{
		{
			Summary: "Later meeting",
			Start:   &calendar.EventDateTime{DateTime: "2024-06-02T14:00:00Z"},
			End:     &calendar.EventDateTime{DateTime: "2024-06-02T15:00:00Z"},
		},
		{
			Summary:  "Standup",
			Location: "Room 4",
			Start:    &calendar.EventDateTime{DateTime: "2024-06-01T09:00:00Z"},
			End:      &calendar.EventDateTime{DateTime: "2024-06-01T09:15:00Z"},
		},
		{
			Summary: "Holiday",
			Start:   &calendar.EventDateTime{Date: "2024-06-01"},
			End:     &calendar.EventDateTime{Date: "2024-06-02"},
		},
	}

	got := FormatEventSummary(events)

	if !strings.Contains(got, "- 09:00 - 09:15: Standup @ Room 4") {
		t.Errorf("missing timed event line:\n%s", got)
	}
	if !strings.Contains(got, "- All day: Holiday") {
		t.Errorf("missing all-day line:\n%s", got)
	}

	// Days appear earliest first.
	first := strings.Index(got, "2024-06-01")
	second := strings.Index(got, "2024-06-02")
	if first < 0 || second < 0 || first > second {
		t.Errorf("days out of order:\n%s", got)
	}
}

func TestFormatEventSummaryTruncatesLongDescriptions(t *testing.T) {
	long := strings.Repeat("x", 300)
	events := []*calendar.Event{
		{
			Summary:     "Planning",
			Description: long,
			Start:       &calendar.EventDateTime{DateTime: "2024-06-01T10:00:00Z"},
			End:         &calendar.EventDateTime{DateTime: "2024-06-01T11:00:00Z"},
		},
	}

	got := FormatEventSummary(events)
	if strings.Contains(got, long) {
		t.Error("description should be truncated")
	}
	if !strings.Contains(got, strings.Repeat("x", 100)+"...") {
		t.Errorf("expected truncation marker:\n%s", got)
	}
}

func TestFormatEventSummaryUntitled(t *testing.T) {
	events := []*calendar.Event{
		{
			Start: &calendar.EventDateTime{DateTime: "2024-06-01T10:00:00Z"},
			End:   &calendar.EventDateTime{DateTime: "2024-06-01T11:00:00Z"},
		},
	}
	if got := FormatEventSummary(events); !strings.Contains(got, "(untitled)") {
		t.Errorf("got %q", got)
	}
}
