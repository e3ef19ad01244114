package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
)

// BedrockCapability reasons over campaigns through AWS Bedrock. All traffic
// stays inside the AWS account.
type BedrockCapability struct {
	client  *bedrockruntime.Client
	modelID string
	region  string
}

type bedrockMessage struct {
	Role    string                `json:"role"`
	Content []bedrockContentBlock `json:"content"`
}

type bedrockContentBlock struct {
	Type string `json:"type"`
	Text string `json:"text,omitempty"`
}

type bedrockRequest struct {
	AnthropicVersion string           `json:"anthropic_version"`
	MaxTokens        int              `json:"max_tokens"`
	System           string           `json:"system,omitempty"`
	Messages         []bedrockMessage `json:"messages"`
	Temperature      float64          `json:"temperature,omitempty"`
}

type bedrockResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	StopReason string `json:"stop_reason"`
	Usage      struct {
		InputTokens  int `json:"input_tokens"`
		OutputTokens int `json:"output_tokens"`
	} `json:"usage"`
}

// NewBedrock builds the Bedrock-backed capability using the default AWS
// credential chain. Region falls back to AWS_REGION, then us-east-1.
func NewBedrock(ctx context.Context, modelID string) (*BedrockCapability, error) {
	region := os.Getenv("AWS_REGION")
	if region == "" {
		region = "us-east-1"
	}

	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	if modelID == "" {
		modelID = "anthropic.claude-3-sonnet-20240229-v1:0"
	}

	capability := &BedrockCapability{
		client:  bedrockruntime.NewFromConfig(cfg),
		modelID: modelID,
		region:  region,
	}

	log.Printf("Agent: Bedrock capability initialized with model=%s, region=%s", modelID, region)
	return capability, nil
}

func (b *BedrockCapability) Name() string  { return "bedrock" }
func (b *BedrockCapability) Enabled() bool { return true }

// Plan asks for a platform-by-platform strategy narrative.
func (b *BedrockCapability) Plan(ctx context.Context, req PlanRequest) (string, error) {
	user := fmt.Sprintf(`Plan a social media campaign named %q for audience %q.
Goal: %s. Budget: %s. Duration: %d days. Platforms: %v.
Provide a platform-by-platform strategy with posting cadence, content themes, and KPIs.`,
		req.CampaignName, req.TargetAudience, req.Goal, req.Budget, req.DurationDays, req.Platforms)

	return b.invoke(ctx, strategistPrompt, user)
}

// Analyze asks for insights over a metrics payload.
func (b *BedrockCapability) Analyze(ctx context.Context, payload interface{}) (string, error) {
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal analysis payload: %w", err)
	}

	user := fmt.Sprintf("Analyze this campaign performance data and give actionable recommendations:\n\n%s", string(data))
	return b.invoke(ctx, analystPrompt, user)
}

func (b *BedrockCapability) invoke(ctx context.Context, system, user string) (string, error) {
	request := bedrockRequest{
		AnthropicVersion: "bedrock-2023-05-31",
		MaxTokens:        4000,
		System:           system,
		Messages: []bedrockMessage{
			{Role: "user", Content: []bedrockContentBlock{{Type: "text", Text: user}}},
		},
		Temperature: 0.7,
	}

	requestBody, err := json.Marshal(request)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	output, err := b.client.InvokeModel(ctx, &bedrockruntime.InvokeModelInput{
		ModelId:     aws.String(b.modelID),
		ContentType: aws.String("application/json"),
		Accept:      aws.String("application/json"),
		Body:        requestBody,
	})
	if err != nil {
		return "", fmt.Errorf("Bedrock API error: %w", err)
	}

	var response bedrockResponse
	if err := json.Unmarshal(output.Body, &response); err != nil {
		return "", fmt.Errorf("failed to parse response: %w", err)
	}

	var text string
	for _, content := range response.Content {
		if content.Type == "text" {
			text += content.Text
		}
	}

	log.Printf("Agent: Bedrock call complete (in: %d tokens, out: %d tokens)",
		response.Usage.InputTokens, response.Usage.OutputTokens)
	return text, nil
}
