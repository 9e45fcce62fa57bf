package extract

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

const openaiEndpoint = "https://api.openai.com/v1/chat/completions"

// OpenAI has no URL-grounded search tool here, so the instructions lean on
// inference from the URL structure and the model's knowledge.
const openaiSystemPrompt = `You extract metadata for web pages. Respond with a JSON object containing exactly these string fields: "title", "author" (use "Unknown" if not found), "siteName", "summary".`

type openaiProvider struct {
	apiKey   string
	model    string
	client   *http.Client
	endpoint string
}

type openaiRequest struct {
	Model          string               `json:"model"`
	Messages       []openaiMessage      `json:"messages"`
	ResponseFormat openaiResponseFormat `json:"response_format"`
}

type openaiMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type openaiResponseFormat struct {
	Type string `json:"type"`
}

type openaiResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

func (o *openaiProvider) Extract(ctx context.Context, rawURL string) (Result, error) {
	body, _ := json.Marshal(openaiRequest{
		Model: o.model,
		Messages: []openaiMessage{
			{Role: "system", Content: openaiSystemPrompt},
			{Role: "user", Content: fmt.Sprintf(extractPrompt, rawURL)},
		},
		ResponseFormat: openaiResponseFormat{Type: "json_object"},
	})

	req, err := http.NewRequestWithContext(ctx, "POST", o.endpoint, bytes.NewReader(body))
	if err != nil {
		return Result{}, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+o.apiKey)

	resp, err := o.client.Do(req)
	if err != nil {
		return Result{}, fmt.Errorf("openai API error: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return Result{}, fmt.Errorf("openai API %d: %s", resp.StatusCode, string(b))
	}

	var or openaiResponse
	if err := json.NewDecoder(resp.Body).Decode(&or); err != nil {
		return Result{}, err
	}
	if len(or.Choices) == 0 {
		return Result{}, errors.New("empty openai response")
	}

	return decodeResult(or.Choices[0].Message.Content)
}
