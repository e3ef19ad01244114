// Package platform holds the fixed per-network simulation parameters and
// content metadata used across the campaign pipeline.
package platform

// Profile holds the simulation constants for one social network.
type Profile struct {
	Name           string  `json:"name" yaml:"name"`
	BaseReach      int     `json:"base_reach" yaml:"base_reach"`
	EngagementRate float64 `json:"engagement_rate" yaml:"engagement_rate"`
	AvgFollowers   int     `json:"avg_followers" yaml:"avg_followers"`
}

// ContentTemplate describes how content should be shaped for a network.
type ContentTemplate struct {
	CharacterLimit   int      `json:"character_limit"`
	Tone             string   `json:"tone"`
	ContentTypes     []string `json:"content_types"`
	BestPostingTimes string   `json:"best_posting_times"`
}

const (
	LinkedIn  = "LinkedIn"
	Twitter   = "Twitter"
	Instagram = "Instagram"
	Facebook  = "Facebook"
	TikTok    = "TikTok"
)

// builtInOrder keeps the canonical listing order stable.
var builtInOrder = []string{LinkedIn, Twitter, Instagram, Facebook, TikTok}

var builtInProfiles = map[string]Profile{
	LinkedIn:  {Name: LinkedIn, BaseReach: 10000, EngagementRate: 0.025, AvgFollowers: 5000},
	Twitter:   {Name: Twitter, BaseReach: 15000, EngagementRate: 0.035, AvgFollowers: 8000},
	Instagram: {Name: Instagram, BaseReach: 20000, EngagementRate: 0.045, AvgFollowers: 12000},
	Facebook:  {Name: Facebook, BaseReach: 25000, EngagementRate: 0.020, AvgFollowers: 15000},
	TikTok:    {Name: TikTok, BaseReach: 30000, EngagementRate: 0.055, AvgFollowers: 20000},
}

var contentTemplates = map[string]ContentTemplate{
	LinkedIn: {
		CharacterLimit:   3000,
		Tone:             "Professional, thought-leadership",
		ContentTypes:     []string{"Articles", "Case studies", "Industry insights", "Company updates"},
		BestPostingTimes: "Tuesday-Thursday, 7-9 AM",
	},
	Twitter: {
		CharacterLimit:   280,
		Tone:             "Conversational, timely, trending",
		ContentTypes:     []string{"News", "Updates", "Threads", "Questions"},
		BestPostingTimes: "Monday-Friday, 8-10 AM & 5-6 PM",
	},
	Instagram: {
		CharacterLimit:   2200,
		Tone:             "Visual, aspirational, engaging",
		ContentTypes:     []string{"Photos", "Reels", "Stories", "Carousels"},
		BestPostingTimes: "Monday-Friday, 11 AM - 1 PM",
	},
	Facebook: {
		CharacterLimit:   5000,
		Tone:             "Community-focused, conversational",
		ContentTypes:     []string{"Stories", "Videos", "Links", "Events"},
		BestPostingTimes: "Thursday-Friday, 1-4 PM",
	},
	TikTok: {
		CharacterLimit:   150,
		Tone:             "Trendy, authentic, entertaining",
		ContentTypes:     []string{"Trends", "Challenges", "Behind-the-scenes", "Educational"},
		BestPostingTimes: "Tuesday-Thursday, 6-10 PM",
	},
}

// BuiltIn returns the built-in platform names in canonical order.
func BuiltIn() []string {
	names := make([]string, len(builtInOrder))
	copy(names, builtInOrder)
	return names
}

// Profiles returns a fresh copy of the built-in profile table. Callers may
// merge their own entries without affecting the built-ins.
func Profiles() map[string]Profile {
	profiles := make(map[string]Profile, len(builtInProfiles))
	for name, p := range builtInProfiles {
		profiles[name] = p
	}
	return profiles
}

// Default is the profile used for platforms missing from the table.
func Default() Profile {
	return Profile{BaseReach: 5000, EngagementRate: 0.03}
}

// TemplateFor returns the content template for a platform, if one exists.
func TemplateFor(name string) (ContentTemplate, bool) {
	t, ok := contentTemplates[name]
	return t, ok
}

// Templates returns a copy of the full content template table.
func Templates() map[string]ContentTemplate {
	templates := make(map[string]ContentTemplate, len(contentTemplates))
	for name, t := range contentTemplates {
		templates[name] = t
	}
	return templates
}
