package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"elasticsense/models"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	log "github.com/sirupsen/logrus"
)

// The SDK refuses larger non-streaming requests for some Claude models.
const anthropicMaxTokens = 8192

type AnthropicClient struct {
	client *anthropic.Client
	model  anthropic.Model
}

func NewAnthropicClient(apiKey, model string) *AnthropicClient {
	client := anthropic.NewClient(option.WithAPIKey(apiKey))
	return &AnthropicClient{
		client: &client,
		model:  anthropic.Model(model),
	}
}

func (c *AnthropicClient) Converse(ctx context.Context, systemInstruction string, history []models.HistoryEntry, message string) (string, error) {
	messages := convertToAnthropicMessages(history)
	messages = append(messages, anthropic.NewUserMessage(anthropic.NewTextBlock(message)))

	log.Infof("Calling Anthropic with %d history entries", len(history))
	response, err := c.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     c.model,
		MaxTokens: anthropicMaxTokens,
		System:    systemBlocks(systemInstruction),
		Messages:  messages,
	})
	if err != nil {
		return "", fmt.Errorf("failed to call Anthropic API: %w", err)
	}

	var text strings.Builder
	for _, block := range response.Content {
		if block, ok := block.AsAny().(anthropic.TextBlock); ok {
			text.WriteString(block.Text)
		}
	}

	if strings.TrimSpace(text.String()) == "" {
		return "", ErrEmptyResponse
	}
	return text.String(), nil
}

func (c *AnthropicClient) GenerateStructured(ctx context.Context, req StructuredRequest) (string, error) {
	tool := anthropic.ToolUnionParam{
		OfTool: &anthropic.ToolParam{
			Name:        req.Name,
			Description: anthropic.String(req.Description),
			InputSchema: anthropic.ToolInputSchemaParam{
				Properties: req.Schema["properties"],
			},
		},
	}

	log.Infof("Calling Anthropic for structured output %s", req.Name)
	response, err := c.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     c.model,
		MaxTokens: anthropicMaxTokens,
		System:    systemBlocks(req.SystemInstruction),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(req.Prompt)),
		},
		Tools: []anthropic.ToolUnionParam{tool},
		ToolChoice: anthropic.ToolChoiceUnionParam{
			OfTool: &anthropic.ToolChoiceToolParam{Name: req.Name},
		},
	})
	if err != nil {
		return "", fmt.Errorf("failed to call Anthropic API: %w", err)
	}

	for _, block := range response.Content {
		switch block := block.AsAny().(type) {
		case anthropic.ToolUseBlock:
			if block.Name != req.Name {
				continue
			}
			inputJSON, err := json.Marshal(block.Input)
			if err != nil {
				return "", fmt.Errorf("failed to marshal tool input: %w", err)
			}
			return string(inputJSON), nil
		case anthropic.TextBlock:
			log.Debugf("Anthropic text alongside tool call: %s", block.Text)
		}
	}

	return "", ErrEmptyResponse
}

func systemBlocks(systemInstruction string) []anthropic.TextBlockParam {
	if systemInstruction == "" {
		return nil
	}
	return []anthropic.TextBlockParam{{Text: systemInstruction}}
}

// conversationOpener is sent first when the history starts with a model turn,
// as the Messages API requires a user turn at the start.
const conversationOpener = "Let's begin."

func convertToAnthropicMessages(history []models.HistoryEntry) []anthropic.MessageParam {
	var messages []anthropic.MessageParam
	if len(history) > 0 && history[0].Role != models.RoleUser {
		messages = append(messages, anthropic.NewUserMessage(anthropic.NewTextBlock(conversationOpener)))
	}
	for _, entry := range history {
		block := anthropic.NewTextBlock(entry.Text())
		if entry.Role == models.RoleUser {
			messages = append(messages, anthropic.NewUserMessage(block))
		} else {
			messages = append(messages, anthropic.NewAssistantMessage(block))
		}
	}
	return messages
}
