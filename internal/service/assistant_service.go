package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

// ErrAssistantNotConfigured is returned when no API key is set.
var ErrAssistantNotConfigured = errors.New("assistant is not configured")

type ChatRequest struct {
	Message string `json:"message" binding:"required"`
}

type ChatResponse struct {
	Reply string `json:"reply"`
}

// AssistantService forwards one user message to an OpenAI-compatible
// chat-completion API together with a compact summary of the store's
// current state. The summary keeps the assistant grounded without
// shipping the whole ledger over the wire.
type AssistantService interface {
	Chat(ctx context.Context, req ChatRequest) (*ChatResponse, error)
}

type assistantService struct {
	client     *openai.Client
	chatModel  string
	stock      StockService
	statistics StatisticsService
}

// NewAssistantService builds the assistant. An empty apiKey disables it;
// Chat then fails fast with ErrAssistantNotConfigured.
func NewAssistantService(apiKey, baseURL, chatModel string, stock StockService, statistics StatisticsService) AssistantService {
	var client *openai.Client
	if apiKey != "" {
		cfg := openai.DefaultConfig(apiKey)
		if baseURL != "" {
			cfg.BaseURL = baseURL
		}
		client = openai.NewClientWithConfig(cfg)
	}
	if chatModel == "" {
		chatModel = openai.GPT4oMini
	}
	return &assistantService{
		client:     client,
		chatModel:  chatModel,
		stock:      stock,
		statistics: statistics,
	}
}

func (s *assistantService) Chat(ctx context.Context, req ChatRequest) (*ChatResponse, error) {
	if s.client == nil {
		return nil, ErrAssistantNotConfigured
	}

	summary, err := s.contextSummary(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to build context summary: %w", err)
	}

	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: s.chatModel,
		Messages: []openai.ChatCompletionMessage{
			{
				Role: openai.ChatMessageRoleSystem,
				Content: "You are the in-store assistant of a retail point-of-sale system. " +
					"Answer briefly using the store snapshot below.\n\n" + summary,
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: req.Message,
			},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("chat completion failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, errors.New("chat completion returned no choices")
	}

	return &ChatResponse{Reply: resp.Choices[0].Message.Content}, nil
}

func (s *assistantService) contextSummary(ctx context.Context) (string, error) {
	var b strings.Builder

	summary, err := s.statistics.Summary(ctx, "")
	if err != nil {
		return "", err
	}
	fmt.Fprintf(&b, "Today (%s): %d sales, revenue %s, outstanding supplier balance %s.\n",
		summary.Date, summary.SalesCount, summary.Revenue.StringFixed(2), summary.Outstanding.StringFixed(2))

	low, err := s.stock.LowStockReport(ctx)
	if err != nil {
		return "", err
	}
	if len(low) == 0 {
		b.WriteString("No products are below their low-stock threshold.\n")
		return b.String(), nil
	}

	b.WriteString("Low-stock products:\n")
	for _, group := range low {
		for _, line := range group.Lines {
			fmt.Fprintf(&b, "- %s (%s, supplier %s): %d on hand, threshold %d\n",
				line.Name, line.Code, group.SupplierName, line.Quantity, line.Threshold)
		}
	}
	return b.String(), nil
}
