package extract

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"jobsift/internal/model"
)

// SectionSeparator joins candidate job sections into the single text blob
// handed to the extraction model.
const SectionSeparator = "\n\n--- SECTION ---\n\n"

// fragmentsSchema is the JSON Schema enforced server-side via OpenAI
// structured outputs. The class field is deliberately not enum-constrained:
// unknown classes are part of the output contract and must be tolerated,
// not rejected at the transport layer.
var fragmentsSchema = map[string]any{
	"type":                 "object",
	"additionalProperties": false,
	"properties": map[string]any{
		"fragments": map[string]any{
			"type": "array",
			"items": map[string]any{
				"type":                 "object",
				"additionalProperties": false,
				"properties": map[string]any{
					"class": map[string]any{"type": "string"},
					"text":  map[string]any{"type": "string"},
				},
				"required": []string{"class", "text"},
			},
		},
	},
	"required": []string{"fragments"},
}

// OpenAIExtractor calls the OpenAI /v1/chat/completions endpoint with
// structured outputs to label title/location/description fragments.
type OpenAIExtractor struct {
	baseURL    string
	apiKey     string
	model      string
	httpClient *http.Client
	examples   []ExampleDoc
}

// NewOpenAIExtractor creates an extractor targeting the OpenAI API. The
// worked examples are rendered into every prompt as few-shot guidance.
func NewOpenAIExtractor(baseURL, apiKey, model string, httpClient *http.Client, examples []ExampleDoc) *OpenAIExtractor {
	if examples == nil {
		examples = DefaultExamples()
	}
	return &OpenAIExtractor{
		baseURL:    baseURL,
		apiKey:     apiKey,
		model:      model,
		httpClient: httpClient,
		examples:   examples,
	}
}

// chatRequest mirrors the OpenAI /v1/chat/completions request body.
type chatRequest struct {
	Model          string         `json:"model"`
	Messages       []chatMessage  `json:"messages"`
	Temperature    int            `json:"temperature"`
	MaxTokens      int            `json:"max_tokens"`
	ResponseFormat responseFormat `json:"response_format"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type responseFormat struct {
	Type       string         `json:"type"`
	JSONSchema jsonSchemaSpec `json:"json_schema"`
}

type jsonSchemaSpec struct {
	Name   string         `json:"name"`
	Schema map[string]any `json:"schema"`
}

// chatResponse mirrors the relevant fields of the OpenAI response.
type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error,omitempty"`
}

// rawFragment is the wire shape of one extraction in the model's response.
type rawFragment struct {
	Class string `json:"class"`
	Text  string `json:"text"`
}

type rawExtraction struct {
	Fragments []rawFragment `json:"fragments"`
}

// Extract joins sections, renders the extraction prompt, and returns the
// labeled fragments from the model's structured response. A fragment that
// comes back without a class or text is a contract violation and fails the
// whole call.
func (e *OpenAIExtractor) Extract(ctx context.Context, sections []string) ([]model.Fragment, error) {
	if len(sections) == 0 {
		return nil, nil
	}

	prompt, err := renderPrompt(strings.Join(sections, SectionSeparator), e.examples)
	if err != nil {
		return nil, fmt.Errorf("render extraction prompt: %w", err)
	}

	raw, err := e.complete(ctx, prompt)
	if err != nil {
		return nil, err
	}

	var extraction rawExtraction
	if err := json.Unmarshal([]byte(raw), &extraction); err != nil {
		return nil, fmt.Errorf("unmarshal extraction JSON: %w", err)
	}

	fragments := make([]model.Fragment, 0, len(extraction.Fragments))
	for _, rf := range extraction.Fragments {
		f, err := model.NewFragment(rf.Class, rf.Text)
		if err != nil {
			return nil, fmt.Errorf("extractor response: %w", err)
		}
		fragments = append(fragments, f)
	}
	return fragments, nil
}

// complete sends the prompt and returns a guaranteed-valid JSON string
// conforming to fragmentsSchema. No markdown stripping required.
func (e *OpenAIExtractor) complete(ctx context.Context, prompt string) (string, error) {
	reqBody := chatRequest{
		Model: e.model,
		Messages: []chatMessage{
			{Role: "system", Content: "You are a precise structured data extractor for job postings."},
			{Role: "user", Content: prompt},
		},
		Temperature: 0,
		MaxTokens:   4096,
		ResponseFormat: responseFormat{
			Type: "json_schema",
			JSONSchema: jsonSchemaSpec{
				Name:   "job_fragments",
				Schema: fragmentsSchema,
			},
		},
	}

	body, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshal llm request: %w", err)
	}

	url := e.baseURL + "/chat/completions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create llm request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+e.apiKey)

	resp, err := e.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("llm request: %w", err)
	}
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read llm response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("llm returned HTTP %d: %s", resp.StatusCode, string(respBytes))
	}

	var chatResp chatResponse
	if err := json.Unmarshal(respBytes, &chatResp); err != nil {
		return "", fmt.Errorf("parse llm response: %w", err)
	}

	if chatResp.Error != nil {
		return "", fmt.Errorf("llm error (%s): %s", chatResp.Error.Type, chatResp.Error.Message)
	}

	if len(chatResp.Choices) == 0 {
		return "", fmt.Errorf("llm returned no choices")
	}

	return chatResp.Choices[0].Message.Content, nil
}
