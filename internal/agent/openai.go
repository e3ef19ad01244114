package agent

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const openAIEndpoint = "https://api.openai.com/v1/chat/completions"

const strategistPrompt = `You are an expert social media campaign strategist with 10+ years of experience.
You understand each platform's unique audience, best practices, and content requirements.
You create engaging, data-driven campaigns that drive real business results.`

const analystPrompt = `You are a data-driven marketing analyst with expertise in social media metrics.
You understand engagement rates, reach, conversions, and can identify trends and opportunities.
You translate data into specific, actionable recommendations.`

// OpenAICapability reasons over campaigns through the chat completions API.
type OpenAICapability struct {
	apiKey     string
	model      string
	baseURL    string
	httpClient *http.Client
}

type openAIMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type openAIRequest struct {
	Model       string          `json:"model"`
	Messages    []openAIMessage `json:"messages"`
	Temperature float64         `json:"temperature"`
	MaxTokens   int             `json:"max_tokens,omitempty"`
}

type openAIResponse struct {
	Choices []struct {
		Message      openAIMessage `json:"message"`
		FinishReason string        `json:"finish_reason"`
	} `json:"choices"`
	Usage struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
	} `json:"usage"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error,omitempty"`
}

// NewOpenAI builds the OpenAI-backed capability. An empty model defaults to
// gpt-4.
func NewOpenAI(apiKey, model string) *OpenAICapability {
	if model == "" {
		model = "gpt-4"
	}
	return &OpenAICapability{
		apiKey:  apiKey,
		model:   model,
		baseURL: openAIEndpoint,
		httpClient: &http.Client{
			Timeout: 120 * time.Second,
		},
	}
}

func (o *OpenAICapability) Name() string  { return "openai" }
func (o *OpenAICapability) Enabled() bool { return true }

// Plan asks for a platform-by-platform strategy narrative.
func (o *OpenAICapability) Plan(ctx context.Context, req PlanRequest) (string, error) {
	var b strings.Builder
	fmt.Fprintf(&b, "Plan a comprehensive social media campaign with these details:\n")
	fmt.Fprintf(&b, "- Campaign Name: %s\n", req.CampaignName)
	fmt.Fprintf(&b, "- Target Audience: %s\n", req.TargetAudience)
	fmt.Fprintf(&b, "- Campaign Goal: %s\n", req.Goal)
	fmt.Fprintf(&b, "- Budget: %s\n", req.Budget)
	fmt.Fprintf(&b, "- Duration: %d days\n\n", req.DurationDays)
	fmt.Fprintf(&b, "For each platform (%s), provide:\n", strings.Join(req.Platforms, ", "))
	b.WriteString(`1. Platform-specific strategy
2. Posting frequency and best times
3. Content themes and messaging angles
4. KPIs to track
5. Expected reach and engagement estimates`)

	return o.chat(ctx, strategistPrompt, b.String())
}

// Analyze asks for insights over a metrics payload.
func (o *OpenAICapability) Analyze(ctx context.Context, payload interface{}) (string, error) {
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal analysis payload: %w", err)
	}

	user := fmt.Sprintf(`Analyze the following campaign performance data:

%s

Provide analysis for:
1. Overall reach and engagement metrics
2. Platform-by-platform performance comparison
3. Conversion efficiency
4. Best and worst performing platforms
5. Specific recommendations for the next campaign`, string(data))

	return o.chat(ctx, analystPrompt, user)
}

func (o *OpenAICapability) chat(ctx context.Context, system, user string) (string, error) {
	request := openAIRequest{
		Model: o.model,
		Messages: []openAIMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
		Temperature: 0.7,
		MaxTokens:   4000,
	}

	jsonBody, err := json.Marshal(request)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, "POST", o.baseURL, bytes.NewBuffer(jsonBody))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+o.apiKey)

	resp, err := o.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	var response openAIResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return "", fmt.Errorf("failed to parse response: %w (body: %s)", err, string(body))
	}
	if response.Error != nil {
		return "", fmt.Errorf("API error: %s", response.Error.Message)
	}
	if len(response.Choices) == 0 {
		return "", fmt.Errorf("no response choices returned")
	}

	return response.Choices[0].Message.Content, nil
}
