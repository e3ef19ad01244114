// Package simulator fabricates social-media posting results for dry runs of
// the campaign pipeline. No network calls are made; every metric is drawn
// from a fixed per-platform profile.
package simulator

import (
	"fmt"
	"math"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/ignite/campaign-planner/internal/platform"
)

// Metrics is the fabricated performance of a single simulated post.
type Metrics struct {
	Reach       int `json:"reach"`
	Engagements int `json:"engagements"`
	Likes       int `json:"likes"`
	Comments    int `json:"comments"`
	Shares      int `json:"shares"`
	Clicks      int `json:"clicks"`
	Conversions int `json:"conversions"`
}

// PostRecord is the result of one simulated posting action.
type PostRecord struct {
	PostID         string    `json:"post_id"`
	Platform       string    `json:"platform"`
	ContentPreview string    `json:"content_preview"`
	PostedAt       time.Time `json:"posted_at"`
	ScheduledTime  time.Time `json:"scheduled_time"`
	Status         string    `json:"status"`
	Metrics        Metrics   `json:"metrics"`
}

// ScheduleAck acknowledges a future post without recording history.
type ScheduleAck struct {
	Platform       string    `json:"platform"`
	Status         string    `json:"status"`
	ContentPreview string    `json:"content_preview"`
	ScheduledTime  time.Time `json:"scheduled_time"`
	Message        string    `json:"message"`
}

// PlatformAnalytics aggregates history for one platform. The zero value
// (with Platform set) is the correct result for a platform with no posts.
type PlatformAnalytics struct {
	Platform          string  `json:"platform"`
	Posts             int     `json:"posts_count"`
	TotalReach        int     `json:"total_reach"`
	TotalEngagements  int     `json:"total_engagements"`
	AvgEngagementRate float64 `json:"avg_engagement_rate"`
	TotalClicks       int     `json:"total_clicks"`
	TotalConversions  int     `json:"total_conversions"`
	CTR               float64 `json:"ctr"`
	ConversionRate    float64 `json:"conversion_rate"`
}

// Simulator owns the append-only history of simulated posts.
type Simulator struct {
	mu       sync.RWMutex
	profiles map[string]platform.Profile
	history  []PostRecord
	rng      *rand.Rand
}

// New builds a Simulator over the given profile table. A nil table uses the
// built-in platforms. Seed 0 selects a time-based seed; any other value
// makes the metric draws reproducible.
func New(profiles map[string]platform.Profile, seed int64) *Simulator {
	if profiles == nil {
		profiles = platform.Profiles()
	}
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Simulator{
		profiles: profiles,
		rng:      rand.New(rand.NewSource(seed)),
	}
}

// PostToPlatform simulates publishing content and records the result.
// Unknown platforms fall back to the default profile; there is no failure
// path.
func (s *Simulator) PostToPlatform(platformName, content string, scheduledTime time.Time) PostRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	profile, ok := s.profiles[platformName]
	if !ok {
		profile = platform.Default()
	}

	reach := round(float64(profile.BaseReach) * s.uniform(0.8, 1.2))
	engagements := round(float64(reach) * profile.EngagementRate * s.uniform(0.7, 1.3))
	clicks := round(float64(engagements) * 0.2 * s.uniform(0.5, 1.5))
	conversions := round(float64(clicks) * 0.05 * s.uniform(0.3, 1.3))

	record := PostRecord{
		PostID:         fmt.Sprintf("%s_%s", platformName, uuid.New().String()[:8]),
		Platform:       platformName,
		ContentPreview: preview(content),
		PostedAt:       time.Now(),
		ScheduledTime:  scheduledTime,
		Status:         "live",
		Metrics: Metrics{
			Reach:       reach,
			Engagements: engagements,
			Likes:       round(float64(engagements) * 0.7),
			Comments:    round(float64(engagements) * 0.2),
			Shares:      round(float64(engagements) * 0.1),
			Clicks:      clicks,
			Conversions: conversions,
		},
	}

	s.history = append(s.history, record)
	return record
}

// SchedulePost acknowledges a future post. State is untouched; execution
// happens later through PostToPlatform.
func (s *Simulator) SchedulePost(platformName, content string, scheduledTime time.Time) ScheduleAck {
	return ScheduleAck{
		Platform:       platformName,
		Status:         "scheduled",
		ContentPreview: preview(content),
		ScheduledTime:  scheduledTime,
		Message:        fmt.Sprintf("Post scheduled on %s for %s", platformName, scheduledTime.Format(time.RFC3339)),
	}
}

// GetPlatformAnalytics aggregates all historical posts for one platform.
func (s *Simulator) GetPlatformAnalytics(platformName string) PlatformAnalytics {
	s.mu.RLock()
	defer s.mu.RUnlock()

	analytics := PlatformAnalytics{Platform: platformName}
	for _, record := range s.history {
		if record.Platform != platformName {
			continue
		}
		analytics.Posts++
		analytics.TotalReach += record.Metrics.Reach
		analytics.TotalEngagements += record.Metrics.Engagements
		analytics.TotalClicks += record.Metrics.Clicks
		analytics.TotalConversions += record.Metrics.Conversions
	}

	if analytics.TotalReach > 0 {
		analytics.AvgEngagementRate = float64(analytics.TotalEngagements) / float64(analytics.TotalReach) * 100
		analytics.CTR = float64(analytics.TotalClicks) / float64(analytics.TotalReach) * 100
	}
	if analytics.TotalClicks > 0 {
		analytics.ConversionRate = float64(analytics.TotalConversions) / float64(analytics.TotalClicks) * 100
	}

	return analytics
}

// GetAllAnalytics returns one aggregate per configured platform, including
// platforms that have no history yet.
func (s *Simulator) GetAllAnalytics() map[string]PlatformAnalytics {
	s.mu.RLock()
	names := make([]string, 0, len(s.profiles))
	for name := range s.profiles {
		names = append(names, name)
	}
	s.mu.RUnlock()

	analytics := make(map[string]PlatformAnalytics, len(names))
	for _, name := range names {
		analytics[name] = s.GetPlatformAnalytics(name)
	}
	return analytics
}

// History returns a copy of the append-only post history.
func (s *Simulator) History() []PostRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()

	history := make([]PostRecord, len(s.history))
	copy(history, s.history)
	return history
}

// PostCount reports how many posts have been simulated so far.
func (s *Simulator) PostCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.history)
}

// uniform draws from [min, max). Callers hold the write lock.
func (s *Simulator) uniform(min, max float64) float64 {
	return min + s.rng.Float64()*(max-min)
}

func round(x float64) int {
	return int(math.Round(x))
}

func preview(content string) string {
	runes := []rune(content)
	if len(runes) > 100 {
		return string(runes[:100])
	}
	return content
}
