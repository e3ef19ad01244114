package executor

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ignite/campaign-planner/internal/calendar"
	"github.com/ignite/campaign-planner/internal/simulator"
)

func newTestExecutor() *Executor {
	return New(simulator.New(nil, 42))
}

func TestExecuteCampaignPostsPerPlatform(t *testing.T) {
	exec := newTestExecutor()

	result := exec.ExecuteCampaign("camp_1", []string{"LinkedIn", "Twitter"},
		map[string]string{"LinkedIn": "pro post", "Twitter": "short post"}, time.Time{})

	assert.Equal(t, "camp_1", result.CampaignID)
	assert.Equal(t, []string{"LinkedIn", "Twitter"}, result.PlatformsTargeted)
	require.Len(t, result.Posts, 2)
	assert.Equal(t, "LinkedIn", result.Posts[0].Platform)
	assert.Equal(t, "Twitter", result.Posts[1].Platform)
	assert.Equal(t, 2, exec.Simulator().PostCount())
}

func TestExecuteCampaignSkipsEmptyContent(t *testing.T) {
	exec := newTestExecutor()

	result := exec.ExecuteCampaign("camp_2", []string{"LinkedIn", "Twitter", "TikTok"},
		map[string]string{"LinkedIn": "only this one"}, time.Time{})

	require.Len(t, result.Posts, 1)
	assert.Equal(t, "LinkedIn", result.Posts[0].Platform)

	// Skipped platforms leave no trace in the log either.
	status := exec.GetExecutionStatus("camp_2")
	assert.Equal(t, 1, status.TotalPlatforms)
}

func TestGetExecutionStatus(t *testing.T) {
	exec := newTestExecutor()

	before := exec.GetExecutionStatus("camp_3")
	assert.Equal(t, "not_started", before.Status)
	assert.Empty(t, before.Executions)

	exec.ExecuteCampaign("camp_3", []string{"LinkedIn", "Facebook"},
		map[string]string{"LinkedIn": "a", "Facebook": "b"}, time.Time{})

	after := exec.GetExecutionStatus("camp_3")
	assert.Equal(t, "completed", after.Status)
	assert.Equal(t, 2, after.TotalPlatforms)
	for _, entry := range after.Executions {
		assert.Equal(t, "camp_3", entry.CampaignID)
		assert.Equal(t, "executed", entry.Status)
		assert.False(t, entry.ExecutionTime.IsZero())
	}
}

func TestExecutePostRecordsLogEntry(t *testing.T) {
	exec := newTestExecutor()
	event := &calendar.Event{
		CampaignID:    "camp_4_day1",
		Platform:      "Instagram",
		Title:         "Launch - Day 1",
		Content:       "day one content",
		ScheduledTime: time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC),
		Status:        calendar.StatusScheduled,
	}

	record := exec.ExecutePost(event)

	assert.Equal(t, "Instagram", record.Platform)
	assert.Equal(t, event.ScheduledTime, record.ScheduledTime)

	status := exec.GetExecutionStatus("camp_4_day1")
	assert.Equal(t, "completed", status.Status)
}

func TestExportReport(t *testing.T) {
	exec := newTestExecutor()
	exec.ExecuteCampaign("camp_a", []string{"LinkedIn"},
		map[string]string{"LinkedIn": "a"}, time.Time{})
	exec.ExecuteCampaign("camp_b", []string{"Twitter", "TikTok"},
		map[string]string{"Twitter": "b", "TikTok": "c"}, time.Time{})

	path := filepath.Join(t.TempDir(), "reports", "execution.json")
	require.NoError(t, exec.ExportReport(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var report Report
	require.NoError(t, json.Unmarshal(data, &report))

	assert.False(t, report.ExportTime.IsZero())
	assert.Equal(t, 2, report.TotalCampaignsExecuted)
	assert.Equal(t, 3, report.TotalPosts)
	require.Len(t, report.ExecutionLog, 3)
	require.Len(t, report.Analytics, 5)
	assert.Equal(t, 1, report.Analytics["LinkedIn"].Posts)
	assert.Equal(t, 0, report.Analytics["Facebook"].Posts)
}
