package llm

import (
	"context"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

const (
	openAIProvider     = "openai"
	DefaultOpenAIModel = "gpt-3.5-turbo"
)

type OpenAIClient struct {
	client *openai.Client
	model  openai.ChatModel
}

// NewOpenAIClient builds a chat completion client. SDK retries are disabled;
// every Complete call is exactly one request. baseURL may be empty.
func NewOpenAIClient(apiKey, baseURL, model string) *OpenAIClient {
	opts := []option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithMaxRetries(0),
	}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}
	if model == "" {
		model = DefaultOpenAIModel
	}

	client := openai.NewClient(opts...)
	return &OpenAIClient{
		client: &client,
		model:  openai.ChatModel(model),
	}
}

func (c *OpenAIClient) Name() string {
	return openAIProvider
}

func (c *OpenAIClient) Complete(ctx context.Context, model string, messages []Message) (string, error) {
	chatModel := c.model
	if model != "" {
		chatModel = openai.ChatModel(model)
	}

	resp, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model:    chatModel,
		Messages: toOpenAIMessages(messages),
	})
	if err != nil {
		return "", &InvocationError{Provider: openAIProvider, Model: string(chatModel), Err: err}
	}

	contents := make([]string, 0, len(resp.Choices))
	for _, choice := range resp.Choices {
		contents = append(contents, choice.Message.Content)
	}

	content, err := firstCompletion(contents)
	if err != nil {
		return "", &InvocationError{Provider: openAIProvider, Model: string(chatModel), Err: err}
	}
	return content, nil
}

func toOpenAIMessages(messages []Message) []openai.ChatCompletionMessageParamUnion {
	params := make([]openai.ChatCompletionMessageParamUnion, 0, len(messages))
	for _, m := range messages {
		switch m.Role {
		case RoleSystem:
			params = append(params, openai.SystemMessage(m.Content))
		case RoleAssistant:
			params = append(params, openai.AssistantMessage(m.Content))
		default:
			params = append(params, openai.UserMessage(m.Content))
		}
	}
	return params
}
