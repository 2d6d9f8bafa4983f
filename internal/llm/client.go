// Package llm streams structured analysis from the external generation
// service. The endpoint is OpenAI-chat-completions compatible; partial
// content arrives incrementally and only the accumulated final text is
// parsed downstream.
package llm

import (
	"context"
	"errors"
	"io"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

// Chunk is one increment of a streaming generation. Exactly one of the
// terminal conditions holds on the last chunk: Finish with the complete
// accumulated text, or Err.
type Chunk struct {
	Delta  string
	Full   string
	Finish bool
	Err    error
}

// Generator is the contract the orchestrator depends on.
type Generator interface {
	// Stream starts a generation call and delivers chunks until a
	// terminal chunk. The channel is closed after the terminal chunk.
	// Cancelling ctx aborts the exchange.
	Stream(ctx context.Context, system, prompt string) (<-chan Chunk, error)
}

// Client streams chat completions from a configurable base URL.
type Client struct {
	client *openai.Client
	model  string
}

// NewClient builds a streaming client. baseURL points at the generation
// service's OpenAI-compatible prefix; model names the deployment.
func NewClient(baseURL, apiKey, model string) *Client {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	return &Client{
		client: openai.NewClientWithConfig(cfg),
		model:  model,
	}
}

// Stream opens the completion stream and pumps deltas into a channel.
// Intermediate chunks carry the running full text; they are not
// independently validated.
func (c *Client) Stream(ctx context.Context, system, prompt string) (<-chan Chunk, error) {
	stream, err := c.client.CreateChatCompletionStream(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		Stream: true,
	})
	if err != nil {
		return nil, err
	}

	out := make(chan Chunk, 16)
	go func() {
		defer close(out)
		defer stream.Close()

		var full strings.Builder
		for {
			resp, err := stream.Recv()
			if errors.Is(err, io.EOF) {
				out <- Chunk{Full: full.String(), Finish: true}
				return
			}
			if err != nil {
				out <- Chunk{Err: err}
				return
			}
			if len(resp.Choices) == 0 {
				continue
			}
			delta := resp.Choices[0].Delta.Content
			if delta == "" {
				continue
			}
			full.WriteString(delta)

			select {
			case out <- Chunk{Delta: delta, Full: full.String()}:
			case <-ctx.Done():
				out <- Chunk{Err: ctx.Err()}
				return
			}
		}
	}()
	return out, nil
}
