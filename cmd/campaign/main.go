package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/ignite/campaign-planner/internal/agent"
	"github.com/ignite/campaign-planner/internal/calendar"
	"github.com/ignite/campaign-planner/internal/config"
	"github.com/ignite/campaign-planner/internal/orchestrator"
	"github.com/ignite/campaign-planner/internal/platform"
	"github.com/ignite/campaign-planner/internal/simulator"
)

var (
	// Global flags
	apiKey     string
	configPath string
)

var rootCmd = &cobra.Command{
	Use:   "campaign",
	Short: "Agentic campaign planner and executioner",
	Long: `Plans social media campaigns, schedules them on a posting calendar,
executes the posts against a simulated platform layer and reports on
their performance.

Run without arguments for the quick example, which needs no API key.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runQuick(cmd.Context())
	},
}

var demo1Cmd = &cobra.Command{
	Use:   "demo1",
	Short: "Run the tech product launch demo campaign",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDemo(cmd.Context(), "DEMO 1: TECH PRODUCT LAUNCH CAMPAIGN", orchestrator.PlanRequest{
			CampaignName:   "AI-Powered CRM Launch 2024",
			TargetAudience: "Enterprise SaaS buyers and IT decision makers",
			CampaignGoal:   "Generate awareness and drive product demo signups",
			Platforms:      []string{"LinkedIn", "Twitter", "Facebook"},
			Budget:         "$5,000",
		})
	},
}

var demo2Cmd = &cobra.Command{
	Use:   "demo2",
	Short: "Run the e-commerce holiday demo campaign",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDemo(cmd.Context(), "DEMO 2: E-COMMERCE HOLIDAY CAMPAIGN", orchestrator.PlanRequest{
			CampaignName:   "Holiday Shopping Extravaganza 2024",
			TargetAudience: "Online shoppers ages 25-55, interested in fashion and tech",
			CampaignGoal:   "Maximize holiday sales and increase customer retention",
			Platforms:      []string{"Instagram", "TikTok", "Facebook", "Twitter"},
			Budget:         "$8,000",
		})
	},
}

var interactiveCmd = &cobra.Command{
	Use:   "interactive",
	Short: "Create a campaign from interactive prompts",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runInteractive(cmd.Context())
	},
}

var quickCmd = &cobra.Command{
	Use:   "quick",
	Short: "Walk through the pipeline step by step without AI agents",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runQuick(cmd.Context())
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&apiKey, "api-key", "", "OpenAI API key (or set OPENAI_API_KEY env)")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "config/config.yaml", "Path to the configuration file")

	rootCmd.AddCommand(demo1Cmd)
	rootCmd.AddCommand(demo2Cmd)
	rootCmd.AddCommand(interactiveCmd)
	rootCmd.AddCommand(quickCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := rootCmd.ExecuteContext(ctx)
	if ctx.Err() != nil {
		fmt.Fprintln(os.Stderr, "\n❌ Campaign execution cancelled by user")
		return
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// newOrchestrator builds the pipeline from configuration. The --api-key flag
// wins over both the config file and the environment.
func newOrchestrator(ctx context.Context) (*orchestrator.Orchestrator, error) {
	cfg, err := config.LoadFromEnv(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if apiKey != "" {
		cfg.Agent.Provider = "openai"
		cfg.Agent.OpenAIAPIKey = apiKey
	}

	capability := agent.FromConfig(ctx,
		cfg.Agent.Provider, cfg.Agent.OpenAIAPIKey, cfg.Agent.OpenAIModel, cfg.Agent.BedrockModelID)

	return orchestrator.New(cfg, capability)
}

func banner(title string) {
	fmt.Println()
	fmt.Println(strings.Repeat("=", 80))
	fmt.Println(title)
	fmt.Println(strings.Repeat("=", 80))
}

func runDemo(ctx context.Context, title string, req orchestrator.PlanRequest) error {
	banner(title)

	orch, err := newOrchestrator(ctx)
	if err != nil {
		return err
	}

	result, err := orch.RunCompleteWorkflow(ctx, req)
	if err != nil {
		return err
	}

	return printSummary(result)
}

func runInteractive(ctx context.Context) error {
	banner("INTERACTIVE CAMPAIGN CREATION")

	reader := bufio.NewReader(os.Stdin)

	name, err := prompt(reader, "\n📝 Campaign Name: ")
	if err != nil {
		return err
	}
	audience, err := prompt(reader, "👥 Target Audience: ")
	if err != nil {
		return err
	}
	goal, err := prompt(reader, "🎯 Campaign Goal: ")
	if err != nil {
		return err
	}
	budget, err := prompt(reader, "💰 Budget: ")
	if err != nil {
		return err
	}

	fmt.Println("\n📱 Available Platforms:")
	for i, platformName := range platform.BuiltIn() {
		fmt.Printf("  %d. %s\n", i+1, platformName)
	}

	selection, err := prompt(reader, "\nSelect platforms (comma-separated numbers, e.g., 1,3,4): ")
	if err != nil {
		return err
	}

	platforms := parsePlatformSelection(selection)
	if len(platforms) == 0 {
		return fmt.Errorf("no valid platforms selected")
	}

	orch, err := newOrchestrator(ctx)
	if err != nil {
		return err
	}

	result, err := orch.RunCompleteWorkflow(ctx, orchestrator.PlanRequest{
		CampaignName:   name,
		TargetAudience: audience,
		CampaignGoal:   goal,
		Platforms:      platforms,
		Budget:         budget,
	})
	if err != nil {
		return err
	}

	return printSummary(result)
}

func runQuick(ctx context.Context) error {
	banner("⚡ QUICK EXAMPLE (No API Key Required)")

	orch, err := newOrchestrator(ctx)
	if err != nil {
		return err
	}

	plan, err := orch.PlanCampaign(ctx, orchestrator.PlanRequest{
		CampaignName:   "Social Media Awareness Campaign",
		TargetAudience: "Tech enthusiasts and startups",
		CampaignGoal:   "Build brand awareness and drive website traffic",
		Platforms:      []string{"LinkedIn", "Twitter", "Instagram"},
		Budget:         "$3,000",
		DurationDays:   14,
	})
	if err != nil {
		return err
	}

	fmt.Println("\n📋 Campaign Plan:")
	planSummary, err := json.MarshalIndent(map[string]interface{}{
		"name":      plan.Name,
		"audience":  plan.TargetAudience,
		"goal":      plan.Goal,
		"platforms": plan.Platforms,
		"budget":    plan.Budget,
	}, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(planSummary))

	events, err := orch.ScheduleCampaign(plan.CampaignID, calendar.FrequencyDaily)
	if err != nil {
		return err
	}

	fmt.Println(orch.Calendar().View(time.Time{}, 7))

	execution := orch.ExecuteScheduled()
	fmt.Printf("\n✅ Executed %d posts\n", execution.TotalPostsExecuted)

	analytics := orch.TrackPerformance()
	printPerformanceSummary(analytics)

	report, err := orch.GeneratePerformanceReport()
	if err != nil {
		return err
	}
	fmt.Println(report)

	exportPath, err := orch.ExportCalendar()
	if err != nil {
		return err
	}

	return printSummary(map[string]interface{}{
		"campaign":         plan,
		"events_scheduled": len(events),
		"posts_executed":   execution.TotalPostsExecuted,
		"analytics":        analytics,
		"calendar_export":  exportPath,
	})
}

func printPerformanceSummary(analytics map[string]simulator.PlatformAnalytics) {
	fmt.Println("\n📊 Performance Summary:")

	names := make([]string, 0, len(analytics))
	for name := range analytics {
		names = append(names, name)
	}
	sort.Strings(names)

	p := message.NewPrinter(language.English)
	for _, name := range names {
		data := analytics[name]
		fmt.Printf("  %s:\n", name)
		p.Printf("    - Reach: %d\n", data.TotalReach)
		p.Printf("    - Engagements: %d\n", data.TotalEngagements)
		fmt.Printf("    - Conversion Rate: %.2f%%\n", data.ConversionRate)
	}
}

func printSummary(result interface{}) error {
	banner("WORKFLOW SUMMARY")

	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))

	fmt.Println("\n✅ Campaign execution completed successfully!")
	fmt.Println("📁 Check the outputs/ folder for generated reports and calendars")
	return nil
}

func prompt(reader *bufio.Reader, label string) (string, error) {
	fmt.Print(label)
	line, err := reader.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// parsePlatformSelection maps comma-separated menu numbers onto platform
// names. Unknown numbers are skipped.
func parsePlatformSelection(input string) []string {
	order := platform.BuiltIn()

	var selected []string
	for _, field := range strings.Split(input, ",") {
		n, err := strconv.Atoi(strings.TrimSpace(field))
		if err != nil || n < 1 || n > len(order) {
			continue
		}
		selected = append(selected, order[n-1])
	}
	return selected
}
