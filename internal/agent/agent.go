// Package agent provides the optional reasoning capability used by the
// planner and analyzer. Absence of credentials is represented by the
// disabled variant; callers treat any error as "use the deterministic
// path".
package agent

import (
	"context"
	"errors"
	"log"
)

// ErrDisabled is returned by the disabled capability variant.
var ErrDisabled = errors.New("agent capability disabled")

// PlanRequest carries the campaign parameters handed to the capability.
type PlanRequest struct {
	CampaignName   string
	TargetAudience string
	Goal           string
	Budget         string
	DurationDays   int
	Platforms      []string
}

// Capability is the reasoning contract. Plan produces a strategy narrative,
// Analyze produces insight text for a metrics payload.
type Capability interface {
	Name() string
	Enabled() bool
	Plan(ctx context.Context, req PlanRequest) (string, error)
	Analyze(ctx context.Context, payload interface{}) (string, error)
}

type disabled struct{}

// Disabled returns the null capability variant.
func Disabled() Capability {
	return disabled{}
}

func (disabled) Name() string  { return "disabled" }
func (disabled) Enabled() bool { return false }

func (disabled) Plan(ctx context.Context, req PlanRequest) (string, error) {
	return "", ErrDisabled
}

func (disabled) Analyze(ctx context.Context, payload interface{}) (string, error) {
	return "", ErrDisabled
}

// FromConfig selects a provider. Unknown providers and missing credentials
// yield the disabled variant rather than an error.
func FromConfig(ctx context.Context, provider, openAIKey, openAIModel, bedrockModelID string) Capability {
	switch provider {
	case "openai":
		if openAIKey == "" {
			log.Printf("Agent: openai provider selected but no API key configured, running disabled")
			return Disabled()
		}
		return NewOpenAI(openAIKey, openAIModel)

	case "bedrock":
		capability, err := NewBedrock(ctx, bedrockModelID)
		if err != nil {
			log.Printf("Agent: bedrock initialization failed (%v), running disabled", err)
			return Disabled()
		}
		return capability

	default:
		return Disabled()
	}
}
