// Package planner builds campaign plans: a per-platform strategy table plus
// post copy rendered through Liquid templates. Plans are deterministic; an
// optional reasoning capability can attach a strategy narrative on top.
package planner

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/osteele/liquid"

	"github.com/ignite/campaign-planner/internal/agent"
	"github.com/ignite/campaign-planner/internal/platform"
)

// Strategy describes how a campaign should run on a single platform.
type Strategy struct {
	PostingFrequency string   `json:"posting_frequency"`
	ContentType      string   `json:"content_type"`
	PrimaryKPIs      []string `json:"primary_kpis"`
	GoalAlignment    string   `json:"goal_alignment"`
}

// CampaignPlan is the planner's output: one strategy and one piece of post
// copy per requested platform. Plans are not modified after creation.
type CampaignPlan struct {
	CampaignID     string              `json:"campaign_id"`
	Name           string              `json:"name"`
	TargetAudience string              `json:"target_audience"`
	Goal           string              `json:"goal"`
	Platforms      []string            `json:"platforms"`
	Budget         string              `json:"budget"`
	StartDate      time.Time           `json:"start_date"`
	DurationDays   int                 `json:"duration_days"`
	Strategies     map[string]Strategy `json:"strategies"`
	Content        map[string]string   `json:"content"`
	PlanNarrative  string              `json:"planning_result,omitempty"`
}

// DefaultDurationDays is used when a caller does not give a duration.
const DefaultDurationDays = 28

var strategyDetails = map[string]Strategy{
	platform.LinkedIn: {
		PostingFrequency: "3-4 times per week",
		ContentType:      "Articles, thought leadership, company updates",
		PrimaryKPIs:      []string{"Impressions", "Engagement rate", "Profile visits"},
	},
	platform.Twitter: {
		PostingFrequency: "Daily (1-2 tweets)",
		ContentType:      "News, hot takes, conversations, threads",
		PrimaryKPIs:      []string{"Retweets", "Likes", "Replies"},
	},
	platform.Instagram: {
		PostingFrequency: "4-5 times per week",
		ContentType:      "Reels, Stories, carousel posts, behind-the-scenes",
		PrimaryKPIs:      []string{"Reach", "Saves", "Shares", "Follower growth"},
	},
	platform.Facebook: {
		PostingFrequency: "3-4 times per week",
		ContentType:      "Community posts, videos, events",
		PrimaryKPIs:      []string{"Reach", "Video views", "Engagement"},
	},
	platform.TikTok: {
		PostingFrequency: "Daily (2-3 videos)",
		ContentType:      "Trends, challenges, educational content",
		PrimaryKPIs:      []string{"Views", "Watch time", "Shares"},
	},
}

// contentTemplates holds the Liquid source for each platform's sample post.
var contentTemplates = map[string]string{
	platform.LinkedIn:  "🎯 {{ campaign_name }}\nExciting announcement for our {{ audience }}! Learn more about how we're driving innovation. #LinkedInPost",
	platform.Twitter:   "🚀 {{ campaign_name }} is here! Perfect for {{ audience }}. Check it out now! #SocialMedia #Campaign",
	platform.Instagram: "✨ {{ campaign_name }} is live! 🎉 Designed for {{ audience }} who want to stay ahead. Tap the link in bio! 📸 #InstagramReels",
	platform.Facebook:  "📢 We're excited to introduce {{ campaign_name }}! Created specifically for {{ audience }}. Join our community and discover more!",
	platform.TikTok:    "POV: {{ campaign_name }} just changed everything for {{ audience }} 🔥 #FYP #Trending #NewAnnouncement",
}

// Planner builds campaign plans. Parsed templates are cached per platform so
// repeated plans reuse them.
type Planner struct {
	capability agent.Capability
	engine     *liquid.Engine
	cache      sync.Map // platform name -> *liquid.Template
}

// New creates a planner backed by the given reasoning capability. A nil
// capability means plans are always fully deterministic.
func New(capability agent.Capability) *Planner {
	if capability == nil {
		capability = agent.Disabled()
	}
	return &Planner{
		capability: capability,
		engine:     liquid.NewEngine(),
	}
}

// CreatePlan assembles a campaign plan for the requested platforms. The
// start time defaults to now and the duration to DefaultDurationDays. When
// the reasoning capability is enabled its narrative is attached; a
// capability failure leaves the deterministic plan untouched.
func (p *Planner) CreatePlan(ctx context.Context, name, audience, goal string, platforms []string, budget string, durationDays int, start *time.Time) (*CampaignPlan, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("campaign name is required")
	}
	if len(platforms) == 0 {
		return nil, fmt.Errorf("at least one platform is required")
	}

	startDate := time.Now()
	if start != nil {
		startDate = *start
	}
	if durationDays <= 0 {
		durationDays = DefaultDurationDays
	}

	plan := &CampaignPlan{
		CampaignID:     "camp_" + uuid.New().String()[:8],
		Name:           name,
		TargetAudience: audience,
		Goal:           goal,
		Platforms:      append([]string(nil), platforms...),
		Budget:         budget,
		StartDate:      startDate,
		DurationDays:   durationDays,
		Strategies:     buildStrategies(platforms, goal),
		Content:        p.renderContent(platforms, name, audience),
	}

	if p.capability.Enabled() {
		narrative, err := p.capability.Plan(ctx, agent.PlanRequest{
			CampaignName:   name,
			TargetAudience: audience,
			Goal:           goal,
			Budget:         budget,
			DurationDays:   durationDays,
			Platforms:      plan.Platforms,
		})
		if err != nil {
			log.Printf("Planner: AI planning failed (%v), using basic plan", err)
		} else {
			plan.PlanNarrative = narrative
		}
	}

	log.Printf("Planner: campaign plan created with ID %s", plan.CampaignID)
	return plan, nil
}

// buildStrategies maps each platform to its strategy table entry. Platforms
// outside the table get the generic entry with an empty KPI list.
func buildStrategies(platforms []string, goal string) map[string]Strategy {
	strategies := make(map[string]Strategy, len(platforms))
	for _, name := range platforms {
		s, ok := strategyDetails[name]
		if ok {
			s.PrimaryKPIs = append([]string(nil), s.PrimaryKPIs...)
		} else {
			s = Strategy{
				PostingFrequency: "Regular",
				ContentType:      "General",
				PrimaryKPIs:      []string{},
			}
		}
		s.GoalAlignment = fmt.Sprintf("Aligned with '%s'", goal)
		strategies[name] = s
	}
	return strategies
}

// renderContent produces the sample post for each requested platform.
// Platforms without a template get no content entry; the calendar schedules
// those with empty content.
func (p *Planner) renderContent(platforms []string, name, audience string) map[string]string {
	bindings := map[string]interface{}{
		"campaign_name": name,
		"audience":      audience,
	}

	content := make(map[string]string, len(platforms))
	for _, pf := range platforms {
		src, ok := contentTemplates[pf]
		if !ok {
			continue
		}
		rendered, err := p.render(pf, src, bindings)
		if err != nil {
			log.Printf("Planner: content render failed for %s: %v", pf, err)
			rendered = fmt.Sprintf("%s for %s", name, audience)
		}
		content[pf] = rendered
	}
	return content
}

func (p *Planner) render(cacheKey, src string, bindings map[string]interface{}) (string, error) {
	if cached, ok := p.cache.Load(cacheKey); ok {
		return cached.(*liquid.Template).RenderString(bindings)
	}

	tpl, err := p.engine.ParseString(src)
	if err != nil {
		return "", err
	}
	p.cache.Store(cacheKey, tpl)

	return tpl.RenderString(bindings)
}

// ParseNarrative extracts the structured part of an AI planning narrative.
// Narratives usually embed a JSON object; anything around it is discarded.
// When no JSON parses, the raw text is returned keyed as "strategy".
func ParseNarrative(text string, platforms []string) map[string]interface{} {
	if start := strings.Index(text, "{"); start >= 0 {
		if end := strings.LastIndex(text, "}"); end > start {
			var parsed map[string]interface{}
			if err := json.Unmarshal([]byte(text[start:end+1]), &parsed); err == nil {
				return parsed
			}
		}
	}
	return map[string]interface{}{
		"strategy":  text,
		"platforms": platforms,
	}
}
