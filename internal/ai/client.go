// Package ai calls the hosted recommendation gateway. Failures carry a typed
// category instead of the upstream error text.
package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

var (
	// ErrRateLimited maps the gateway's 429 responses.
	ErrRateLimited = errors.New("ai gateway rate limited")
	// ErrQuotaExhausted maps the gateway's 402 responses.
	ErrQuotaExhausted = errors.New("ai gateway quota exhausted")
	// ErrTransient covers every other gateway failure.
	ErrTransient = errors.New("ai gateway unavailable")
)

const recommendToolName = "recommend_repositories"

// Recommendation is the structured output of the forced tool call.
type Recommendation struct {
	Repositories []string `json:"repositories"`
	Reasoning    string   `json:"reasoning"`
}

type Client struct {
	GatewayURL string
	APIKey     string
	Model      string
	HTTPClient *http.Client
}

func NewClient(gatewayURL, apiKey, model string) *Client {
	return &Client{
		GatewayURL: gatewayURL,
		APIKey:     apiKey,
		Model:      model,
		HTTPClient: &http.Client{Timeout: 30 * time.Second},
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type toolFunction struct {
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Parameters  json.RawMessage `json:"parameters,omitempty"`
}

type tool struct {
	Type     string       `json:"type"`
	Function toolFunction `json:"function"`
}

type toolChoice struct {
	Type     string `json:"type"`
	Function struct {
		Name string `json:"name"`
	} `json:"function"`
}

type chatRequest struct {
	Model      string        `json:"model"`
	Messages   []chatMessage `json:"messages"`
	Tools      []tool        `json:"tools"`
	ToolChoice toolChoice    `json:"tool_choice"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			ToolCalls []struct {
				Function struct {
					Name      string `json:"name"`
					Arguments string `json:"arguments"`
				} `json:"function"`
			} `json:"tool_calls"`
		} `json:"message"`
	} `json:"choices"`
}

var recommendSchema = json.RawMessage(`{
  "type": "object",
  "properties": {
    "repositories": {
      "type": "array",
      "items": {"type": "string"},
      "description": "Array of recommended repository names"
    },
    "reasoning": {
      "type": "string",
      "description": "Brief explanation of why these repos are recommended"
    }
  },
  "required": ["repositories", "reasoning"],
  "additionalProperties": false
}`)

// Recommend sends the system and user prompts and returns the parsed tool-call
// arguments. The gateway is forced to answer through the recommendation tool.
func (c *Client) Recommend(ctx context.Context, systemPrompt, userPrompt string) (*Recommendation, error) {
	if c.APIKey == "" {
		return nil, fmt.Errorf("%w: api key not configured", ErrTransient)
	}
	reqBody := chatRequest{
		Model: c.Model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: userPrompt},
		},
		Tools: []tool{{
			Type: "function",
			Function: toolFunction{
				Name:        recommendToolName,
				Description: "Return recommended repository names",
				Parameters:  recommendSchema,
			},
		}},
	}
	reqBody.ToolChoice.Type = "function"
	reqBody.ToolChoice.Function.Name = recommendToolName

	body, err := json.Marshal(reqBody)
	if err != nil {
		return nil, err
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.GatewayURL, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.APIKey)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTPClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTransient, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		return nil, ErrRateLimited
	case resp.StatusCode == http.StatusPaymentRequired:
		return nil, ErrQuotaExhausted
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return nil, fmt.Errorf("%w: status %d", ErrTransient, resp.StatusCode)
	}

	var chat chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&chat); err != nil {
		return nil, fmt.Errorf("%w: decode response: %v", ErrTransient, err)
	}
	if len(chat.Choices) == 0 || len(chat.Choices[0].Message.ToolCalls) == 0 {
		return nil, fmt.Errorf("%w: no recommendations received", ErrTransient)
	}
	args := chat.Choices[0].Message.ToolCalls[0].Function.Arguments
	var rec Recommendation
	if err := json.Unmarshal([]byte(args), &rec); err != nil {
		return nil, fmt.Errorf("%w: decode tool arguments: %v", ErrTransient, err)
	}
	return &rec, nil
}
