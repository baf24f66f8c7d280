// Package summary turns free-text peer feedback into structured
// Situation/Behavior/Impact summaries via an LLM.
package summary

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gollem"
	"github.com/nxtprof/nxtprof/pkg/domain/model"
)

// Service produces an SBI summary for a feedback message
type Service interface {
	Summarize(ctx context.Context, message string) (*model.FeedbackSummary, error)
}

type client struct {
	llmClient gollem.LLMClient
}

// New creates a new summary service with the provided LLM client
func New(llmClient gollem.LLMClient) (Service, error) {
	if llmClient == nil {
		return nil, goerr.New("LLM client is required")
	}
	return &client{llmClient: llmClient}, nil
}

func (c *client) Summarize(ctx context.Context, message string) (*model.FeedbackSummary, error) {
	if strings.TrimSpace(message) == "" {
		return nil, goerr.New("feedback message is empty")
	}

	session, err := c.llmClient.NewSession(ctx,
		gollem.WithSessionContentType(gollem.ContentTypeJSON),
		gollem.WithSessionResponseSchema(buildResponseSchema()),
		gollem.WithSessionSystemPrompt(systemPrompt),
	)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create LLM session")
	}

	prompt := fmt.Sprintf("Summarize the following peer feedback:\n\n%s\n", message)

	resp, err := session.GenerateContent(ctx, gollem.Text(prompt))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to generate feedback summary")
	}
	if len(resp.Texts) == 0 {
		return nil, goerr.New("empty response from LLM")
	}

	var summary model.FeedbackSummary
	if err := json.Unmarshal([]byte(resp.Texts[0]), &summary); err != nil {
		return nil, goerr.Wrap(err, "failed to parse LLM response", goerr.V("response", resp.Texts[0]))
	}

	return &summary, nil
}

const systemPrompt = `You are an assistant that restructures peer feedback into the Situation-Behavior-Impact (SBI) format.

## Instructions:

1. Read the feedback message and identify:
   - situation: the context in which the behavior occurred
   - behavior: what the person actually did, stated factually
   - impact: the effect the behavior had on others or the work
2. Write each field in the same language as the feedback message.
3. Keep each field to one or two sentences.
4. If a field cannot be inferred from the message, leave it as an empty string rather than inventing details.`

// buildResponseSchema creates the JSON schema for structured output
func buildResponseSchema() *gollem.Parameter {
	return &gollem.Parameter{
		Title:       "FeedbackSummaryResponse",
		Description: "Structured Situation-Behavior-Impact summary of a feedback message",
		Type:        gollem.TypeObject,
		Properties: map[string]*gollem.Parameter{
			"situation": {
				Type:        gollem.TypeString,
				Description: "The context in which the behavior occurred",
				Required:    true,
			},
			"behavior": {
				Type:        gollem.TypeString,
				Description: "What the person did, stated factually",
				Required:    true,
			},
			"impact": {
				Type:        gollem.TypeString,
				Description: "The effect the behavior had",
				Required:    true,
			},
		},
	}
}
