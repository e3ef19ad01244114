// Package calendar expands campaigns into dated posting events and tracks
// their lifecycle from Scheduled through Executed.
package calendar

import (
	"fmt"
	"hash/fnv"
	"log"
	"sort"
	"strings"
	"sync"
	"time"
)

// Status is the lifecycle state of a scheduled event.
type Status string

const (
	StatusScheduled Status = "Scheduled"
	StatusExecuted  Status = "Executed"
	StatusDelayed   Status = "Delayed"
	StatusCancelled Status = "Cancelled"
)

// Frequency controls how many dated events one platform assignment produces.
type Frequency string

const (
	FrequencyOnce   Frequency = "once"
	FrequencyDaily  Frequency = "daily"
	FrequencyWeekly Frequency = "weekly"
)

// ParseFrequency validates a textual frequency value.
func ParseFrequency(s string) (Frequency, error) {
	switch Frequency(s) {
	case FrequencyOnce, FrequencyDaily, FrequencyWeekly:
		return Frequency(s), nil
	}
	return "", fmt.Errorf("unknown frequency %q", s)
}

// Event is one scheduled (and eventually executed) post occurrence.
// PerformanceMetrics is non-empty exactly when Status is Executed.
type Event struct {
	CampaignID         string         `json:"campaign_id"`
	Platform           string         `json:"platform"`
	Title              string         `json:"title"`
	Content            string         `json:"content"`
	ScheduledTime      time.Time      `json:"scheduled_time"`
	Status             Status         `json:"status"`
	PerformanceMetrics map[string]int `json:"performance_metrics"`
}

// Calendar owns the insertion-ordered event list. Events handed out by query
// methods are shared references; callers mutate them only through Calendar
// methods.
type Calendar struct {
	mu     sync.RWMutex
	events []*Event
}

// New returns an empty calendar.
func New() *Calendar {
	return &Calendar{}
}

// AddEvent appends an event and emits one acknowledgment line.
func (c *Calendar) AddEvent(event *Event) {
	c.mu.Lock()
	c.events = append(c.events, event)
	c.mu.Unlock()

	log.Printf("Calendar: added %s campaign: %s on %s",
		event.Platform, event.Title, event.ScheduledTime.Format(time.RFC3339))
}

// ScheduleCampaignAcrossPlatforms expands one campaign into dated events.
// Platforms missing from contentPerPlatform are scheduled with empty
// content. The returned events are the same references held by the
// calendar.
func (c *Calendar) ScheduleCampaignAcrossPlatforms(
	campaignID string,
	title string,
	platforms []string,
	contentPerPlatform map[string]string,
	start time.Time,
	frequency Frequency,
) ([]*Event, error) {
	var events []*Event

	for _, platformName := range platforms {
		content := contentPerPlatform[platformName]

		switch frequency {
		case FrequencyOnce:
			events = append(events, c.newEvent(campaignID, platformName, title, content, start))

		case FrequencyDaily:
			for i := 0; i < 7; i++ {
				events = append(events, c.newEvent(
					fmt.Sprintf("%s_day%d", campaignID, i+1),
					platformName,
					fmt.Sprintf("%s - Day %d", title, i+1),
					content,
					start.AddDate(0, 0, i),
				))
			}

		case FrequencyWeekly:
			for i := 0; i < 4; i++ {
				events = append(events, c.newEvent(
					fmt.Sprintf("%s_week%d", campaignID, i+1),
					platformName,
					fmt.Sprintf("%s - Week %d", title, i+1),
					content,
					start.AddDate(0, 0, i*7),
				))
			}

		default:
			return nil, fmt.Errorf("unknown frequency %q", frequency)
		}
	}

	return events, nil
}

func (c *Calendar) newEvent(campaignID, platformName, title, content string, at time.Time) *Event {
	event := &Event{
		CampaignID:         campaignID,
		Platform:           platformName,
		Title:              title,
		Content:            content,
		ScheduledTime:      at,
		Status:             StatusScheduled,
		PerformanceMetrics: map[string]int{},
	}
	c.AddEvent(event)
	return event
}

// UpcomingEvents returns events scheduled within [now, now+days], ascending
// by scheduled time. Cancelled events are excluded.
func (c *Calendar) UpcomingEvents(days int) []*Event {
	now := time.Now()
	future := now.AddDate(0, 0, days)

	c.mu.RLock()
	var upcoming []*Event
	for _, event := range c.events {
		if event.Status == StatusCancelled {
			continue
		}
		if !event.ScheduledTime.Before(now) && !event.ScheduledTime.After(future) {
			upcoming = append(upcoming, event)
		}
	}
	c.mu.RUnlock()

	sort.Slice(upcoming, func(i, j int) bool {
		return upcoming[i].ScheduledTime.Before(upcoming[j].ScheduledTime)
	})
	return upcoming
}

// ExecuteEvent marks an event executed and attaches metrics derived from a
// stable digest of the campaign id. This formula is intentionally distinct
// from the simulator's random-draw model.
func (c *Calendar) ExecuteEvent(event *Event) {
	h := campaignDigest(event.CampaignID)

	c.mu.Lock()
	event.Status = StatusExecuted
	event.PerformanceMetrics = map[string]int{
		"reach":       5000 + int(h%10000),
		"engagement":  250 + int(h%1000),
		"clicks":      50 + int(h%500),
		"conversions": 5 + int(h%50),
	}
	c.mu.Unlock()

	log.Printf("Calendar: executed %s campaign: %s", event.Platform, event.Title)
}

func campaignDigest(campaignID string) uint64 {
	h := fnv.New64a()
	h.Write([]byte(campaignID))
	return h.Sum64()
}

// FindEvent returns the first event carrying the given campaign id.
func (c *Calendar) FindEvent(campaignID string) (*Event, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	for _, event := range c.events {
		if event.CampaignID == campaignID {
			return event, true
		}
	}
	return nil, false
}

// DelayEvent moves an event to a new time. Executed and cancelled events
// cannot be delayed.
func (c *Calendar) DelayEvent(event *Event, newTime time.Time) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch event.Status {
	case StatusExecuted, StatusCancelled:
		return fmt.Errorf("cannot delay event %s in status %s", event.CampaignID, event.Status)
	}
	event.Status = StatusDelayed
	event.ScheduledTime = newTime
	return nil
}

// CancelEvent withdraws an event from the schedule. Executed events cannot
// be cancelled.
func (c *Calendar) CancelEvent(event *Event) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if event.Status == StatusExecuted {
		return fmt.Errorf("cannot cancel event %s in status %s", event.CampaignID, event.Status)
	}
	event.Status = StatusCancelled
	return nil
}

// View renders a text calendar for [start, start+days]. A zero start means
// now.
func (c *Calendar) View(start time.Time, days int) string {
	if start.IsZero() {
		start = time.Now()
	}
	end := start.AddDate(0, 0, days)

	c.mu.RLock()
	var inRange []*Event
	for _, event := range c.events {
		if !event.ScheduledTime.Before(start) && !event.ScheduledTime.After(end) {
			inRange = append(inRange, event)
		}
	}
	c.mu.RUnlock()

	sort.Slice(inRange, func(i, j int) bool {
		return inRange[i].ScheduledTime.Before(inRange[j].ScheduledTime)
	})

	var b strings.Builder
	fmt.Fprintf(&b, "\nCampaign Calendar (%s to %s)\n",
		start.Format("2006-01-02"), end.Format("2006-01-02"))
	b.WriteString(strings.Repeat("=", 80) + "\n")

	for _, event := range inRange {
		fmt.Fprintf(&b, "%s | %-10s | %-40s | %s\n",
			event.ScheduledTime.Format("2006-01-02 15:04"),
			event.Platform,
			truncate(event.Title, 40),
			event.Status)
	}

	return b.String()
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) > max {
		return string(runes[:max])
	}
	return s
}

// Events returns value copies of every event in insertion order.
func (c *Calendar) Events() []Event {
	c.mu.RLock()
	defer c.mu.RUnlock()

	events := make([]Event, len(c.events))
	for i, event := range c.events {
		events[i] = *event
	}
	return events
}

// PlatformSummary counts events per platform.
func (c *Calendar) PlatformSummary() map[string]int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	summary := make(map[string]int)
	for _, event := range c.events {
		summary[event.Platform]++
	}
	return summary
}
