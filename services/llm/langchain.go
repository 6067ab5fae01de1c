package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"elasticsense/models"

	log "github.com/sirupsen/logrus"
	"github.com/tmc/langchaingo/llms"
)

const jsonModePrompt = `%s

%s. Respond with a single JSON object, and nothing else, that matches this JSON schema:
%s`

// LangChainClient drives any langchaingo model. It is used for the Gemini and
// OpenAI providers.
type LangChainClient struct {
	llm      llms.Model
	jsonMode bool
}

type LangChainOption func(*LangChainClient)

// WithJSONMode makes GenerateStructured request a JSON response with the
// schema written into the prompt instead of forcing a tool call. Gemini needs
// this: its tool declarations drop nested schemas such as array items.
func WithJSONMode() LangChainOption {
	return func(c *LangChainClient) {
		c.jsonMode = true
	}
}

func NewLangChainClient(model llms.Model, opts ...LangChainOption) *LangChainClient {
	c := &LangChainClient{llm: model}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *LangChainClient) Converse(ctx context.Context, systemInstruction string, history []models.HistoryEntry, message string) (string, error) {
	messageHistory := buildMessageHistory(systemInstruction, history)
	messageHistory = append(messageHistory, llms.TextParts(llms.ChatMessageTypeHuman, message))

	log.Infof("Calling LLM with %d history entries", len(history))
	resp, err := c.llm.GenerateContent(ctx, messageHistory, llms.WithTemperature(0.7))
	if err != nil {
		return "", fmt.Errorf("failed to generate chat response: %w", err)
	}

	if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Content) == "" {
		return "", ErrEmptyResponse
	}

	return resp.Choices[0].Content, nil
}

func (c *LangChainClient) GenerateStructured(ctx context.Context, req StructuredRequest) (string, error) {
	if c.jsonMode {
		return c.generateJSON(ctx, req)
	}

	messageHistory := buildMessageHistory(req.SystemInstruction, nil)
	messageHistory = append(messageHistory, llms.TextParts(llms.ChatMessageTypeHuman, req.Prompt))

	tools := []llms.Tool{
		{
			Type: "function",
			Function: &llms.FunctionDefinition{
				Name:        req.Name,
				Description: req.Description,
				Parameters:  req.Schema,
			},
		},
	}

	log.Infof("Calling LLM for structured output %s", req.Name)
	resp, err := c.llm.GenerateContent(ctx, messageHistory,
		llms.WithTools(tools),
		llms.WithToolChoice("required"))
	if err != nil {
		return "", fmt.Errorf("failed to generate %s: %w", req.Name, err)
	}

	if len(resp.Choices) == 0 {
		return "", ErrEmptyResponse
	}

	choice := resp.Choices[0]
	for _, toolCall := range choice.ToolCalls {
		if toolCall.FunctionCall != nil && toolCall.FunctionCall.Name == req.Name {
			return toolCall.FunctionCall.Arguments, nil
		}
	}

	// some providers answer in plain JSON instead of calling the tool
	if content := stripFences(choice.Content); content != "" {
		log.Warnf("No tool call for %s, using message content", req.Name)
		return content, nil
	}

	return "", ErrEmptyResponse
}

func (c *LangChainClient) generateJSON(ctx context.Context, req StructuredRequest) (string, error) {
	schema, err := json.MarshalIndent(req.Schema, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal schema for %s: %w", req.Name, err)
	}

	messageHistory := buildMessageHistory(req.SystemInstruction, nil)
	messageHistory = append(messageHistory, llms.TextParts(llms.ChatMessageTypeHuman,
		fmt.Sprintf(jsonModePrompt, req.Prompt, strings.TrimSuffix(req.Description, "."), schema)))

	log.Infof("Calling LLM in JSON mode for %s", req.Name)
	resp, err := c.llm.GenerateContent(ctx, messageHistory, llms.WithJSONMode())
	if err != nil {
		return "", fmt.Errorf("failed to generate %s: %w", req.Name, err)
	}

	if len(resp.Choices) == 0 {
		return "", ErrEmptyResponse
	}
	if content := stripFences(resp.Choices[0].Content); content != "" {
		return content, nil
	}
	return "", ErrEmptyResponse
}

func buildMessageHistory(systemInstruction string, history []models.HistoryEntry) []llms.MessageContent {
	var messageHistory []llms.MessageContent
	if systemInstruction != "" {
		messageHistory = append(messageHistory, llms.TextParts(llms.ChatMessageTypeSystem, systemInstruction))
	}

	for _, entry := range history {
		var msgType llms.ChatMessageType
		if entry.Role == models.RoleUser {
			msgType = llms.ChatMessageTypeHuman
		} else {
			msgType = llms.ChatMessageTypeAI
		}
		messageHistory = append(messageHistory, llms.TextParts(msgType, entry.Text()))
	}

	return messageHistory
}
