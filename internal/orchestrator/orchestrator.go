// Package orchestrator composes the campaign pipeline: planning, calendar
// scheduling, simulated execution, analytics and reporting.
package orchestrator

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/ignite/campaign-planner/internal/agent"
	"github.com/ignite/campaign-planner/internal/analyzer"
	"github.com/ignite/campaign-planner/internal/calendar"
	"github.com/ignite/campaign-planner/internal/config"
	"github.com/ignite/campaign-planner/internal/executor"
	"github.com/ignite/campaign-planner/internal/planner"
	"github.com/ignite/campaign-planner/internal/platform"
	"github.com/ignite/campaign-planner/internal/simulator"
)

// PlanRequest carries the campaign parameters for planning.
type PlanRequest struct {
	CampaignName   string     `json:"campaign_name"`
	TargetAudience string     `json:"target_audience"`
	CampaignGoal   string     `json:"campaign_goal"`
	Platforms      []string   `json:"platforms"`
	Budget         string     `json:"budget"`
	DurationDays   int        `json:"duration_days,omitempty"`
	StartDate      *time.Time `json:"start_date,omitempty"`
}

// ExecutionSummary reports one pass over the due calendar events.
type ExecutionSummary struct {
	Status             string                 `json:"status,omitempty"`
	Timestamp          time.Time              `json:"timestamp"`
	TotalPostsExecuted int                    `json:"total_posts_executed"`
	PlatformsCovered   []string               `json:"platforms_covered,omitempty"`
	Executions         []simulator.PostRecord `json:"executions,omitempty"`
}

// WorkflowStats carries the headline numbers for a workflow run.
type WorkflowStats struct {
	TotalEventsScheduled int    `json:"total_events_scheduled"`
	PlatformsTargeted    int    `json:"platforms_targeted"`
	PostsExecuted        int    `json:"posts_executed"`
	CalendarExport       string `json:"calendar_export"`
}

// WorkflowResult summarizes one complete workflow run.
type WorkflowResult struct {
	CampaignID       string                                 `json:"campaign_id"`
	CampaignName     string                                 `json:"campaign_name"`
	WorkflowStatus   string                                 `json:"workflow_status"`
	StepsCompleted   []string                               `json:"steps_completed"`
	Stats            WorkflowStats                          `json:"stats"`
	AnalyticsSummary map[string]simulator.PlatformAnalytics `json:"analytics_summary"`
	ReportPreview    string                                 `json:"report_preview"`
}

// Orchestrator owns the pipeline components and the campaign registry. The
// registry lives for the process lifetime only; nothing is persisted across
// runs except the exports written to the outputs directory.
type Orchestrator struct {
	mu        sync.RWMutex
	calendar  *calendar.Calendar
	executor  *executor.Executor
	analyzer  *analyzer.Analyzer
	planner   *planner.Planner
	campaigns map[string]*planner.CampaignPlan
	outputDir string
	window    int
}

// New wires the pipeline together from configuration. The outputs directory
// is created up front so later exports cannot fail on a missing parent. A
// nil capability disables AI assistance throughout.
func New(cfg *config.Config, capability agent.Capability) (*Orchestrator, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	if capability == nil {
		capability = agent.Disabled()
	}

	if err := os.MkdirAll(cfg.Output.Dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	profiles := platform.Profiles()
	for _, p := range cfg.Simulator.Platforms {
		if p.Name == "" {
			continue
		}
		profiles[p.Name] = p
	}

	sim := simulator.New(profiles, cfg.Simulator.Seed)

	return &Orchestrator{
		calendar:  calendar.New(),
		executor:  executor.New(sim),
		analyzer:  analyzer.New(capability),
		planner:   planner.New(capability),
		campaigns: make(map[string]*planner.CampaignPlan),
		outputDir: cfg.Output.Dir,
		window:    cfg.Calendar.UpcomingWindowDays,
	}, nil
}

// Calendar exposes the shared campaign calendar.
func (o *Orchestrator) Calendar() *calendar.Calendar { return o.calendar }

// Executor exposes the shared executor.
func (o *Orchestrator) Executor() *executor.Executor { return o.executor }

// Analyzer exposes the shared analyzer.
func (o *Orchestrator) Analyzer() *analyzer.Analyzer { return o.analyzer }

// OutputDir returns the directory reports and exports are written to.
func (o *Orchestrator) OutputDir() string { return o.outputDir }

// PlanCampaign creates a plan and registers it under its campaign id.
func (o *Orchestrator) PlanCampaign(ctx context.Context, req PlanRequest) (*planner.CampaignPlan, error) {
	log.Printf("Orchestrator: planning campaign %q for %q", req.CampaignName, req.TargetAudience)

	plan, err := o.planner.CreatePlan(ctx, req.CampaignName, req.TargetAudience, req.CampaignGoal,
		req.Platforms, req.Budget, req.DurationDays, req.StartDate)
	if err != nil {
		return nil, err
	}

	o.mu.Lock()
	o.campaigns[plan.CampaignID] = plan
	o.mu.Unlock()

	return plan, nil
}

// Campaign returns a registered plan by id.
func (o *Orchestrator) Campaign(campaignID string) (*planner.CampaignPlan, bool) {
	o.mu.RLock()
	defer o.mu.RUnlock()

	plan, ok := o.campaigns[campaignID]
	return plan, ok
}

// Campaigns returns every registered plan, ordered by campaign id.
func (o *Orchestrator) Campaigns() []*planner.CampaignPlan {
	o.mu.RLock()
	defer o.mu.RUnlock()

	plans := make([]*planner.CampaignPlan, 0, len(o.campaigns))
	for _, plan := range o.campaigns {
		plans = append(plans, plan)
	}
	sort.Slice(plans, func(i, j int) bool { return plans[i].CampaignID < plans[j].CampaignID })
	return plans
}

// ScheduleCampaign expands a registered campaign into calendar events. An
// unknown campaign id yields an empty result, not an error.
func (o *Orchestrator) ScheduleCampaign(campaignID string, frequency calendar.Frequency) ([]*calendar.Event, error) {
	o.mu.RLock()
	plan, ok := o.campaigns[campaignID]
	o.mu.RUnlock()
	if !ok {
		log.Printf("Orchestrator: campaign %s not found", campaignID)
		return nil, nil
	}

	log.Printf("Orchestrator: scheduling campaign %q with frequency %s", plan.Name, frequency)

	events, err := o.calendar.ScheduleCampaignAcrossPlatforms(
		campaignID, plan.Name, plan.Platforms, plan.Content, plan.StartDate, frequency)
	if err != nil {
		return nil, err
	}

	log.Printf("Orchestrator: scheduled %d posts across %d platforms", len(events), len(plan.Platforms))
	return events, nil
}

// ExecuteScheduled runs every event due within the upcoming window. Each
// event is posted through the simulator and then marked executed on the
// calendar, which attaches its own hash-derived metrics.
func (o *Orchestrator) ExecuteScheduled() ExecutionSummary {
	upcoming := o.calendar.UpcomingEvents(o.window)

	if len(upcoming) == 0 {
		log.Printf("Orchestrator: no campaigns scheduled for the next %d days", o.window)
		return ExecutionSummary{Status: "no_campaigns", Timestamp: time.Now()}
	}

	summary := ExecutionSummary{
		Timestamp:  time.Now(),
		Executions: make([]simulator.PostRecord, 0, len(upcoming)),
	}

	covered := make(map[string]bool)
	for _, event := range upcoming {
		record := o.executor.ExecutePost(event)
		summary.Executions = append(summary.Executions, record)
		summary.TotalPostsExecuted++
		covered[event.Platform] = true

		o.calendar.ExecuteEvent(event)
	}

	summary.PlatformsCovered = make([]string, 0, len(covered))
	for name := range covered {
		summary.PlatformsCovered = append(summary.PlatformsCovered, name)
	}
	sort.Strings(summary.PlatformsCovered)

	log.Printf("Orchestrator: executed %d posts on %d platforms",
		summary.TotalPostsExecuted, len(summary.PlatformsCovered))

	return summary
}

// ExecuteCampaign runs the direct executor path for a registered campaign,
// posting its planned content to every platform immediately.
func (o *Orchestrator) ExecuteCampaign(campaignID string) (*executor.ExecutionResult, error) {
	o.mu.RLock()
	plan, ok := o.campaigns[campaignID]
	o.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("campaign %s not found", campaignID)
	}

	result := o.executor.ExecuteCampaign(campaignID, plan.Platforms, plan.Content, time.Time{})
	return &result, nil
}

// TrackPerformance aggregates analytics for every configured platform.
func (o *Orchestrator) TrackPerformance() map[string]simulator.PlatformAnalytics {
	return o.executor.Simulator().GetAllAnalytics()
}

// GeneratePerformanceReport renders the analytics report and saves a
// timestamped copy under the outputs directory.
func (o *Orchestrator) GeneratePerformanceReport() (string, error) {
	analytics := o.TrackPerformance()
	report := o.analyzer.GeneratePerformanceReport(analytics)

	path := filepath.Join(o.outputDir,
		fmt.Sprintf("performance_report_%s.txt", time.Now().Format("20060102_150405")))
	if err := o.analyzer.SaveReport(report, path); err != nil {
		return report, err
	}

	return report, nil
}

// ExportCalendar writes the calendar JSON export and returns its path.
func (o *Orchestrator) ExportCalendar() (string, error) {
	path := filepath.Join(o.outputDir,
		fmt.Sprintf("campaign_calendar_%s.json", time.Now().Format("20060102_150405")))
	if err := o.calendar.ExportTo(path); err != nil {
		return "", err
	}
	return path, nil
}

// RunCompleteWorkflow drives the full pipeline for one campaign: plan,
// schedule daily posts, render the calendar, execute everything due in the
// upcoming window, aggregate analytics and write the report plus the
// calendar export. The first failing step aborts the run.
func (o *Orchestrator) RunCompleteWorkflow(ctx context.Context, req PlanRequest) (*WorkflowResult, error) {
	plan, err := o.PlanCampaign(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("plan campaign: %w", err)
	}

	events, err := o.ScheduleCampaign(plan.CampaignID, calendar.FrequencyDaily)
	if err != nil {
		return nil, fmt.Errorf("schedule campaign: %w", err)
	}

	log.Printf("Orchestrator: calendar for the next %d days\n%s",
		o.window, o.calendar.View(time.Time{}, o.window))

	summary := o.ExecuteScheduled()

	analytics := o.TrackPerformance()

	report, err := o.GeneratePerformanceReport()
	if err != nil {
		return nil, fmt.Errorf("generate report: %w", err)
	}

	exportPath, err := o.ExportCalendar()
	if err != nil {
		return nil, fmt.Errorf("export calendar: %w", err)
	}

	return &WorkflowResult{
		CampaignID:     plan.CampaignID,
		CampaignName:   plan.Name,
		WorkflowStatus: "completed",
		StepsCompleted: []string{
			"Campaign Planning",
			"Calendar Scheduling",
			"Campaign Execution",
			"Performance Tracking",
			"Report Generation",
		},
		Stats: WorkflowStats{
			TotalEventsScheduled: len(events),
			PlatformsTargeted:    len(plan.Platforms),
			PostsExecuted:        summary.TotalPostsExecuted,
			CalendarExport:       exportPath,
		},
		AnalyticsSummary: analytics,
		ReportPreview:    previewText(report, 500),
	}, nil
}

func previewText(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
