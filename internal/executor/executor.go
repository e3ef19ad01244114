// Package executor drives the simulator for campaigns and due calendar
// events, keeping an append-only execution log keyed by campaign id.
package executor

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/ignite/campaign-planner/internal/calendar"
	"github.com/ignite/campaign-planner/internal/simulator"
)

// LogEntry records one platform execution for a campaign.
type LogEntry struct {
	CampaignID    string    `json:"campaign_id"`
	Platform      string    `json:"platform"`
	ExecutionTime time.Time `json:"execution_time"`
	Status        string    `json:"status"`
}

// ExecutionResult aggregates the posts produced by one campaign execution.
type ExecutionResult struct {
	CampaignID        string                 `json:"campaign_id"`
	StartedAt         time.Time              `json:"started_at"`
	PlatformsTargeted []string               `json:"platforms_targeted"`
	Posts             []simulator.PostRecord `json:"posts"`
}

// ExecutionStatus summarizes the log entries for one campaign id.
type ExecutionStatus struct {
	CampaignID     string     `json:"campaign_id"`
	TotalPlatforms int        `json:"total_platforms"`
	Executions     []LogEntry `json:"executions"`
	Status         string     `json:"status"`
}

// Report is the persisted execution report document.
type Report struct {
	ExportTime             time.Time                              `json:"export_time"`
	TotalCampaignsExecuted int                                    `json:"total_campaigns_executed"`
	TotalPosts             int                                    `json:"total_posts"`
	Analytics              map[string]simulator.PlatformAnalytics `json:"analytics"`
	ExecutionLog           []LogEntry                             `json:"execution_log"`
}

// Executor manages campaign execution against the simulator.
type Executor struct {
	mu  sync.RWMutex
	sim *simulator.Simulator
	log []LogEntry
}

// New builds an Executor around the given simulator.
func New(sim *simulator.Simulator) *Executor {
	return &Executor{sim: sim}
}

// Simulator exposes the underlying simulator for analytics queries.
func (e *Executor) Simulator() *simulator.Simulator {
	return e.sim
}

// ExecuteCampaign posts to every targeted platform that has content.
// Platforms with empty content are skipped silently. A zero startTime means
// now.
func (e *Executor) ExecuteCampaign(
	campaignID string,
	platforms []string,
	contentPerPlatform map[string]string,
	startTime time.Time,
) ExecutionResult {
	if startTime.IsZero() {
		startTime = time.Now()
	}

	result := ExecutionResult{
		CampaignID:        campaignID,
		StartedAt:         time.Now(),
		PlatformsTargeted: platforms,
		Posts:             []simulator.PostRecord{},
	}

	for _, platformName := range platforms {
		content := contentPerPlatform[platformName]
		if content == "" {
			continue
		}

		record := e.sim.PostToPlatform(platformName, content, startTime)
		result.Posts = append(result.Posts, record)
		e.appendLog(campaignID, platformName)
	}

	return result
}

// ExecutePost runs one due calendar event through the simulator and records
// a log entry under the event's campaign id.
func (e *Executor) ExecutePost(event *calendar.Event) simulator.PostRecord {
	record := e.sim.PostToPlatform(event.Platform, event.Content, event.ScheduledTime)
	e.appendLog(event.CampaignID, event.Platform)
	return record
}

func (e *Executor) appendLog(campaignID, platformName string) {
	e.mu.Lock()
	e.log = append(e.log, LogEntry{
		CampaignID:    campaignID,
		Platform:      platformName,
		ExecutionTime: time.Now(),
		Status:        "executed",
	})
	e.mu.Unlock()
}

// GetExecutionStatus reports whether a campaign id has been executed.
func (e *Executor) GetExecutionStatus(campaignID string) ExecutionStatus {
	e.mu.RLock()
	defer e.mu.RUnlock()

	status := ExecutionStatus{
		CampaignID: campaignID,
		Executions: []LogEntry{},
		Status:     "not_started",
	}
	for _, entry := range e.log {
		if entry.CampaignID == campaignID {
			status.Executions = append(status.Executions, entry)
		}
	}
	status.TotalPlatforms = len(status.Executions)
	if status.TotalPlatforms > 0 {
		status.Status = "completed"
	}
	return status
}

// ExecutionLog returns a copy of the full log.
func (e *Executor) ExecutionLog() []LogEntry {
	e.mu.RLock()
	defer e.mu.RUnlock()

	entries := make([]LogEntry, len(e.log))
	copy(entries, e.log)
	return entries
}

// ExportReport writes the execution report document to an indented JSON
// file.
func (e *Executor) ExportReport(path string) error {
	e.mu.RLock()
	entries := make([]LogEntry, len(e.log))
	copy(entries, e.log)
	e.mu.RUnlock()

	distinct := make(map[string]bool)
	for _, entry := range entries {
		distinct[entry.CampaignID] = true
	}

	report := Report{
		ExportTime:             time.Now(),
		TotalCampaignsExecuted: len(distinct),
		TotalPosts:             e.sim.PostCount(),
		Analytics:              e.sim.GetAllAnalytics(),
		ExecutionLog:           entries,
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create report directory: %w", err)
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create report file: %w", err)
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(report); err != nil {
		return fmt.Errorf("failed to encode execution report: %w", err)
	}

	log.Printf("Executor: exported execution report to %s", path)
	return nil
}
