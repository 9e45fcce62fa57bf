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

const geminiBaseURL = "https://generativelanguage.googleapis.com/v1beta"

type geminiProvider struct {
	apiKey  string
	model   string
	client  *http.Client
	baseURL string
}

type geminiRequest struct {
	Contents         []geminiContent  `json:"contents"`
	Tools            []geminiTool     `json:"tools,omitempty"`
	GenerationConfig geminiGenerationConfig `json:"generationConfig"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

// The empty google_search object enables web-search-grounded inference.
type geminiTool struct {
	GoogleSearch struct{} `json:"google_search"`
}

type geminiGenerationConfig struct {
	ResponseMIMEType string        `json:"responseMimeType"`
	ResponseSchema   *geminiSchema `json:"responseSchema,omitempty"`
}

type geminiSchema struct {
	Type       string                    `json:"type"`
	Properties map[string]geminiProperty `json:"properties"`
	Required   []string                  `json:"required"`
}

type geminiProperty struct {
	Type        string `json:"type"`
	Description string `json:"description,omitempty"`
}

type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// metadataSchema constrains the model to the four required string fields.
var metadataSchema = &geminiSchema{
	Type: "OBJECT",
	Properties: map[string]geminiProperty{
		"title":    {Type: "STRING", Description: "The title of the article or page"},
		"author":   {Type: "STRING", Description: "The author name, or 'Unknown' if not found"},
		"siteName": {Type: "STRING", Description: "The name of the website (e.g., 'The Verge', 'Medium')"},
		"summary":  {Type: "STRING", Description: "A concise 30-50 word summary of the content"},
	},
	Required: []string{"title", "author", "siteName", "summary"},
}

func (g *geminiProvider) Extract(ctx context.Context, rawURL string) (Result, error) {
	body, _ := json.Marshal(geminiRequest{
		Contents: []geminiContent{{Parts: []geminiPart{{Text: fmt.Sprintf(extractPrompt, rawURL)}}}},
		Tools:    []geminiTool{{}},
		GenerationConfig: geminiGenerationConfig{
			ResponseMIMEType: "application/json",
			ResponseSchema:   metadataSchema,
		},
	})

	endpoint := fmt.Sprintf("%s/models/%s:generateContent", g.baseURL, g.model)
	req, err := http.NewRequestWithContext(ctx, "POST", endpoint, bytes.NewReader(body))
	if err != nil {
		return Result{}, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", g.apiKey)

	resp, err := g.client.Do(req)
	if err != nil {
		return Result{}, fmt.Errorf("gemini API error: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return Result{}, fmt.Errorf("gemini API %d: %s", resp.StatusCode, string(b))
	}

	var gr geminiResponse
	if err := json.NewDecoder(resp.Body).Decode(&gr); err != nil {
		return Result{}, err
	}
	if len(gr.Candidates) == 0 || len(gr.Candidates[0].Content.Parts) == 0 {
		return Result{}, errors.New("empty gemini response")
	}

	return decodeResult(gr.Candidates[0].Content.Parts[0].Text)
}

// decodeResult parses the model's JSON payload. A payload missing the title
// counts as a failed extraction so the caller falls back.
func decodeResult(text string) (Result, error) {
	var r Result
	if err := json.Unmarshal([]byte(text), &r); err != nil {
		return Result{}, fmt.Errorf("decoding metadata payload: %w", err)
	}
	if r.Title == "" {
		return Result{}, errors.New("metadata payload missing title")
	}
	return r, nil
}
