package calendar

import (
	"fmt"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFrequency(t *testing.T) {
	tests := []struct {
		in      string
		want    Frequency
		wantErr bool
	}{
		{"once", FrequencyOnce, false},
		{"daily", FrequencyDaily, false},
		{"weekly", FrequencyWeekly, false},
		{"hourly", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFrequency(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestScheduleOnce(t *testing.T) {
	cal := New()
	start := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)

	events, err := cal.ScheduleCampaignAcrossPlatforms(
		"camp_1a2b3c4d", "Launch", []string{"LinkedIn"},
		map[string]string{"LinkedIn": "Hello"}, start, FrequencyOnce)

	require.NoError(t, err)
	require.Len(t, events, 1)
	e := events[0]
	assert.Equal(t, "camp_1a2b3c4d", e.CampaignID)
	assert.Equal(t, "Launch", e.Title)
	assert.Equal(t, "Hello", e.Content)
	assert.Equal(t, start, e.ScheduledTime)
	assert.Equal(t, StatusScheduled, e.Status)
	assert.Empty(t, e.PerformanceMetrics)
}

func TestScheduleDailyExpansion(t *testing.T) {
	cal := New()
	start := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	platforms := []string{"LinkedIn", "Twitter", "Facebook"}

	events, err := cal.ScheduleCampaignAcrossPlatforms(
		"camp_x", "Launch", platforms,
		map[string]string{"LinkedIn": "a", "Twitter": "b", "Facebook": "c"},
		start, FrequencyDaily)

	require.NoError(t, err)
	require.Len(t, events, 7*len(platforms))

	seen := make(map[string]bool)
	for _, e := range events {
		seen[e.Platform+"/"+e.CampaignID] = true
	}
	for _, p := range platforms {
		for day := 1; day <= 7; day++ {
			assert.True(t, seen[fmt.Sprintf("%s/camp_x_day%d", p, day)])
		}
	}

	// Per platform, day N lands on start+N-1 days with the title suffixed.
	for i := 0; i < 7; i++ {
		e := events[i]
		assert.Equal(t, fmt.Sprintf("camp_x_day%d", i+1), e.CampaignID)
		assert.Equal(t, fmt.Sprintf("Launch - Day %d", i+1), e.Title)
		assert.Equal(t, start.AddDate(0, 0, i), e.ScheduledTime)
	}
}

func TestScheduleWeeklyExpansion(t *testing.T) {
	cal := New()
	start := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)

	events, err := cal.ScheduleCampaignAcrossPlatforms(
		"camp_y", "Series", []string{"Instagram", "TikTok"},
		map[string]string{"Instagram": "x", "TikTok": "y"}, start, FrequencyWeekly)

	require.NoError(t, err)
	require.Len(t, events, 4*2)

	for i := 0; i < 4; i++ {
		e := events[i]
		assert.Equal(t, fmt.Sprintf("camp_y_week%d", i+1), e.CampaignID)
		assert.Equal(t, fmt.Sprintf("Series - Week %d", i+1), e.Title)
		assert.Equal(t, start.AddDate(0, 0, i*7), e.ScheduledTime)
	}
}

func TestScheduleMissingContentIsEmptyNotError(t *testing.T) {
	cal := New()

	events, err := cal.ScheduleCampaignAcrossPlatforms(
		"camp_z", "Quiet", []string{"Twitter"},
		map[string]string{}, time.Now(), FrequencyOnce)

	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "", events[0].Content)
}

func TestScheduleUnknownFrequency(t *testing.T) {
	cal := New()

	_, err := cal.ScheduleCampaignAcrossPlatforms(
		"camp_z", "Bad", []string{"Twitter"}, nil, time.Now(), Frequency("hourly"))

	assert.Error(t, err)
}

func TestUpcomingEventsWindowAndOrder(t *testing.T) {
	cal := New()
	now := time.Now()

	cal.AddEvent(&Event{CampaignID: "late", Platform: "Twitter", Title: "late",
		ScheduledTime: now.AddDate(0, 0, 3), Status: StatusScheduled})
	cal.AddEvent(&Event{CampaignID: "early", Platform: "Twitter", Title: "early",
		ScheduledTime: now.Add(2 * time.Hour), Status: StatusScheduled})
	cal.AddEvent(&Event{CampaignID: "past", Platform: "Twitter", Title: "past",
		ScheduledTime: now.AddDate(0, 0, -1), Status: StatusScheduled})
	cal.AddEvent(&Event{CampaignID: "far", Platform: "Twitter", Title: "far",
		ScheduledTime: now.AddDate(0, 0, 30), Status: StatusScheduled})

	upcoming := cal.UpcomingEvents(7)

	require.Len(t, upcoming, 2)
	assert.Equal(t, "early", upcoming[0].CampaignID)
	assert.Equal(t, "late", upcoming[1].CampaignID)
}

func TestUpcomingEventsSkipsCancelled(t *testing.T) {
	cal := New()
	now := time.Now()

	keep := &Event{CampaignID: "keep", Platform: "Twitter",
		ScheduledTime: now.Add(time.Hour), Status: StatusScheduled}
	gone := &Event{CampaignID: "gone", Platform: "Twitter",
		ScheduledTime: now.Add(time.Hour), Status: StatusScheduled}
	cal.AddEvent(keep)
	cal.AddEvent(gone)
	require.NoError(t, cal.CancelEvent(gone))

	upcoming := cal.UpcomingEvents(7)

	require.Len(t, upcoming, 1)
	assert.Equal(t, "keep", upcoming[0].CampaignID)
}

func TestExecuteEventLinkedInScenario(t *testing.T) {
	cal := New()
	start := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)

	events, err := cal.ScheduleCampaignAcrossPlatforms(
		"camp_demo", "Hello Campaign", []string{"LinkedIn"},
		map[string]string{"LinkedIn": "Hello"}, start, FrequencyOnce)
	require.NoError(t, err)
	require.Len(t, events, 1)

	e := events[0]
	assert.Equal(t, StatusScheduled, e.Status)

	cal.ExecuteEvent(e)

	assert.Equal(t, StatusExecuted, e.Status)
	require.NotEmpty(t, e.PerformanceMetrics)
	assert.GreaterOrEqual(t, e.PerformanceMetrics["reach"], 5000)
	assert.Less(t, e.PerformanceMetrics["reach"], 15000)
	assert.GreaterOrEqual(t, e.PerformanceMetrics["engagement"], 250)
	assert.GreaterOrEqual(t, e.PerformanceMetrics["clicks"], 50)
	assert.GreaterOrEqual(t, e.PerformanceMetrics["conversions"], 5)

	// Mutation is visible through the calendar, not only the returned ref.
	stored := cal.Events()
	assert.Equal(t, StatusExecuted, stored[0].Status)
}

func TestExecuteEventMetricsAreStablePerCampaignID(t *testing.T) {
	cal := New()
	a := &Event{CampaignID: "camp_same", Platform: "Twitter", ScheduledTime: time.Now()}
	b := &Event{CampaignID: "camp_same", Platform: "LinkedIn", ScheduledTime: time.Now()}
	cal.AddEvent(a)
	cal.AddEvent(b)

	cal.ExecuteEvent(a)
	cal.ExecuteEvent(b)

	assert.Equal(t, a.PerformanceMetrics, b.PerformanceMetrics)
}

func TestMetricsEmptyIffNotExecuted(t *testing.T) {
	cal := New()
	e := &Event{CampaignID: "camp_inv", Platform: "Twitter",
		ScheduledTime: time.Now(), Status: StatusScheduled,
		PerformanceMetrics: map[string]int{}}
	cal.AddEvent(e)

	assert.Empty(t, e.PerformanceMetrics)
	cal.ExecuteEvent(e)
	assert.NotEmpty(t, e.PerformanceMetrics)
}

func TestDelayAndCancelTransitions(t *testing.T) {
	cal := New()
	now := time.Now()

	e := &Event{CampaignID: "camp_mv", Platform: "Twitter",
		ScheduledTime: now, Status: StatusScheduled}
	cal.AddEvent(e)

	later := now.AddDate(0, 0, 2)
	require.NoError(t, cal.DelayEvent(e, later))
	assert.Equal(t, StatusDelayed, e.Status)
	assert.Equal(t, later, e.ScheduledTime)

	require.NoError(t, cal.CancelEvent(e))
	assert.Equal(t, StatusCancelled, e.Status)

	assert.Error(t, cal.DelayEvent(e, later), "cancelled events stay cancelled")

	done := &Event{CampaignID: "camp_done", Platform: "Twitter",
		ScheduledTime: now, Status: StatusScheduled}
	cal.AddEvent(done)
	cal.ExecuteEvent(done)
	assert.Error(t, cal.CancelEvent(done))
	assert.Error(t, cal.DelayEvent(done, later))
}

func TestViewSortedAndFormatted(t *testing.T) {
	cal := New()
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	cal.AddEvent(&Event{CampaignID: "b", Platform: "Twitter",
		Title: "Second post", ScheduledTime: start.AddDate(0, 0, 2).Add(14 * time.Hour),
		Status: StatusScheduled})
	cal.AddEvent(&Event{CampaignID: "a", Platform: "LinkedIn",
		Title: strings.Repeat("Long title ", 10),
		ScheduledTime: start.AddDate(0, 0, 1).Add(9 * time.Hour), Status: StatusScheduled})

	view := cal.View(start, 7)

	assert.Contains(t, view, "Campaign Calendar (2024-01-01 to 2024-01-08)")

	var lines []string
	for _, line := range strings.Split(view, "\n") {
		if strings.Contains(line, " | ") {
			lines = append(lines, line)
		}
	}
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "2024-01-02 09:00 | LinkedIn"))
	assert.True(t, strings.HasPrefix(lines[1], "2024-01-04 14:00 | Twitter"))

	// Titles are clipped to 40 characters.
	cols := strings.Split(lines[0], " | ")
	require.Len(t, cols, 4)
	assert.Len(t, strings.TrimRight(cols[2], " "), 40)

	// Lines are non-decreasing in scheduled time.
	prev := ""
	for _, line := range lines {
		ts := line[:16]
		assert.GreaterOrEqual(t, ts, prev)
		prev = ts
	}
}

func TestExportRoundTrip(t *testing.T) {
	cal := New()
	start := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)

	events, err := cal.ScheduleCampaignAcrossPlatforms(
		"camp_rt", "Round Trip", []string{"LinkedIn", "Twitter"},
		map[string]string{"LinkedIn": "a", "Twitter": "b"}, start, FrequencyWeekly)
	require.NoError(t, err)
	cal.ExecuteEvent(events[0])

	path := filepath.Join(t.TempDir(), "calendar.json")
	require.NoError(t, cal.ExportTo(path))

	doc, err := LoadExport(path)
	require.NoError(t, err)

	assert.False(t, doc.ExportedAt.IsZero())
	assert.Equal(t, len(events), doc.TotalCampaigns)
	require.Len(t, doc.Events, len(events))

	type key struct {
		id       string
		platform string
		status   Status
	}
	want := make(map[key]bool)
	for _, e := range cal.Events() {
		want[key{e.CampaignID, e.Platform, e.Status}] = true
	}
	for _, e := range doc.Events {
		assert.True(t, want[key{e.CampaignID, e.Platform, e.Status}],
			"unexpected event %s/%s", e.CampaignID, e.Platform)
	}

	// The executed event keeps its metrics through the round trip.
	for _, e := range doc.Events {
		if e.Status == StatusExecuted {
			assert.NotEmpty(t, e.PerformanceMetrics)
		}
	}
}

func TestLoadExportMissingFile(t *testing.T) {
	_, err := LoadExport(filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
}

func TestPlatformSummary(t *testing.T) {
	cal := New()
	start := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)

	_, err := cal.ScheduleCampaignAcrossPlatforms(
		"camp_s", "Counts", []string{"LinkedIn", "Twitter"},
		map[string]string{"LinkedIn": "a", "Twitter": "b"}, start, FrequencyDaily)
	require.NoError(t, err)

	summary := cal.PlatformSummary()
	assert.Equal(t, map[string]int{"LinkedIn": 7, "Twitter": 7}, summary)
}

func TestFindEvent(t *testing.T) {
	cal := New()
	e := &Event{CampaignID: "camp_find", Platform: "Twitter", ScheduledTime: time.Now()}
	cal.AddEvent(e)

	found, ok := cal.FindEvent("camp_find")
	require.True(t, ok)
	assert.Same(t, e, found)

	_, ok = cal.FindEvent("camp_missing")
	assert.False(t, ok)
}
