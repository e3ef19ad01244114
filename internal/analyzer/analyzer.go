// Package analyzer renders performance reports and generates campaign
// insights, delegating to the reasoning capability when one is configured.
package analyzer

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/ignite/campaign-planner/internal/agent"
	"github.com/ignite/campaign-planner/internal/simulator"
)

// Analysis is the result of AnalyzeCampaignPerformance. The agent path
// fills AnalysisResult; the deterministic path fills AnalysisType and
// Summary.
type Analysis struct {
	AnalysisTimestamp time.Time                              `json:"analysis_timestamp"`
	PerformanceData   map[string]simulator.PlatformAnalytics `json:"performance_data"`
	AnalysisType      string                                 `json:"analysis_type,omitempty"`
	AnalysisResult    string                                 `json:"analysis_result,omitempty"`
	Summary           string                                 `json:"summary,omitempty"`
}

// PerformanceSnapshot is one tracked metrics observation for a campaign.
type PerformanceSnapshot struct {
	TrackedAt time.Time      `json:"tracked_at"`
	Metrics   map[string]int `json:"metrics"`
}

// Analyzer aggregates reporting and insight generation.
type Analyzer struct {
	mu         sync.RWMutex
	capability agent.Capability
	snapshots  map[string]PerformanceSnapshot
}

// New builds an Analyzer. A nil capability runs with the disabled variant.
func New(capability agent.Capability) *Analyzer {
	if capability == nil {
		capability = agent.Disabled()
	}
	return &Analyzer{
		capability: capability,
		snapshots:  make(map[string]PerformanceSnapshot),
	}
}

// GeneratePerformanceReport renders the fixed-layout text report. Platforms
// appear in name order; the conversion-rate line is omitted for platforms
// without clicks.
func (a *Analyzer) GeneratePerformanceReport(analytics map[string]simulator.PlatformAnalytics) string {
	names := make([]string, 0, len(analytics))
	for name := range analytics {
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	rule := strings.Repeat("=", 80)
	section := strings.Repeat("-", 40)

	b.WriteString("\n" + rule + "\n")
	b.WriteString("CAMPAIGN PERFORMANCE REPORT\n")
	b.WriteString(rule + "\n\n")
	fmt.Fprintf(&b, "Generated: %s\n\n", time.Now().Format("2006-01-02 15:04:05"))

	for _, name := range names {
		data := analytics[name]
		fmt.Fprintf(&b, "\n%s\n", name)
		b.WriteString(section + "\n")
		writeLine(&b, "Posts", strconv.Itoa(data.Posts))
		writeLine(&b, "Total Reach", formatCount(data.TotalReach))
		writeLine(&b, "Engagements", formatCount(data.TotalEngagements))
		writeLine(&b, "Engagement Rate", fmt.Sprintf("%.2f%%", data.AvgEngagementRate))
		writeLine(&b, "Clicks", formatCount(data.TotalClicks))
		writeLine(&b, "CTR", fmt.Sprintf("%.2f%%", data.CTR))
		writeLine(&b, "Conversions", formatCount(data.TotalConversions))
		if data.TotalClicks > 0 {
			writeLine(&b, "Conv. Rate", fmt.Sprintf("%.2f%%", data.ConversionRate))
		}
	}

	var totalReach, totalEngagements, totalConversions int
	for _, data := range analytics {
		totalReach += data.TotalReach
		totalEngagements += data.TotalEngagements
		totalConversions += data.TotalConversions
	}

	b.WriteString("\n\nOVERALL SUMMARY\n")
	b.WriteString(section + "\n")
	writeLine(&b, "Total Reach", formatCount(totalReach))
	writeLine(&b, "Total Engagements", formatCount(totalEngagements))
	writeLine(&b, "Total Conversions", formatCount(totalConversions))
	if totalReach > 0 {
		overall := float64(totalEngagements) / float64(totalReach) * 100
		writeLine(&b, "Avg Engagement %", fmt.Sprintf("%.2f%%", overall))
	}

	b.WriteString("\n" + rule + "\n")
	return b.String()
}

// writeLine aligns every value to the same column.
func writeLine(b *strings.Builder, label, value string) {
	fmt.Fprintf(b, "  %-19s%s\n", label+":", value)
}

var countPrinter = message.NewPrinter(language.English)

// formatCount renders an integer with comma-grouped thousands.
func formatCount(n int) string {
	return countPrinter.Sprintf("%d", n)
}

// SaveReport writes the report text verbatim.
func (a *Analyzer) SaveReport(report, path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create report directory: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(report), 0644); err != nil {
		return fmt.Errorf("failed to save report: %w", err)
	}

	log.Printf("Analyzer: report saved to %s", path)
	return nil
}

// AnalyzeCampaignPerformance produces insight over the analytics mapping.
// Agent failures are logged and never propagate; the deterministic basic
// analysis is the fallback.
func (a *Analyzer) AnalyzeCampaignPerformance(ctx context.Context, analytics map[string]simulator.PlatformAnalytics) Analysis {
	if a.capability.Enabled() {
		text, err := a.capability.Analyze(ctx, analytics)
		if err == nil {
			return Analysis{
				AnalysisTimestamp: time.Now(),
				PerformanceData:   analytics,
				AnalysisResult:    text,
			}
		}
		log.Printf("Analyzer: agent analysis failed (%v), using basic analysis", err)
	}

	return Analysis{
		AnalysisTimestamp: time.Now(),
		PerformanceData:   analytics,
		AnalysisType:      "basic",
		Summary:           "Campaign performance analysis generated",
	}
}

// TrackPerformance stores a metrics snapshot for a campaign.
func (a *Analyzer) TrackPerformance(campaignID string, metrics map[string]int) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.snapshots[campaignID] = PerformanceSnapshot{
		TrackedAt: time.Now(),
		Metrics:   metrics,
	}
}

// GetPerformanceSummary returns the tracked snapshot for a campaign, if any.
func (a *Analyzer) GetPerformanceSummary(campaignID string) (PerformanceSnapshot, bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()

	snapshot, ok := a.snapshots[campaignID]
	return snapshot, ok
}
