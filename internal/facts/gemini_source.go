package facts

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"didyouknow/internal/schema"
)

const generatePrompt = `Tell me one surprising but true fact. Keep it to a single sentence a curious person could repeat at dinner. Respond in the language with BCP 47 tag %q.`

// generatedFact is the structured output requested from the model.
type generatedFact struct {
	Text   string `json:"text" jsonschema_description:"One surprising, true fact in a single sentence."`
	Source string `json:"source,omitempty" jsonschema_description:"Short name of a reference that supports the fact."`
}

// contentGenerator is the subset of *genai.Models the source needs.
type contentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// GeminiSource asks a Gemini model for a fact instead of calling the fact
// endpoint.
type GeminiSource struct {
	models   contentGenerator
	model    string
	language string
	schema   *genai.Schema
}

// NewGeminiSource creates a source backed by client.
func NewGeminiSource(client *genai.Client, model, language string) (*GeminiSource, error) {
	return newGeminiSource(client.Models, model, language)
}

func newGeminiSource(models contentGenerator, model, language string) (*GeminiSource, error) {
	// Convert map[string]interface{} to genai.Schema
	schemaBytes, err := json.Marshal(schema.OpenAPITypes(schema.GenerateSchema[generatedFact]()))
	if err != nil {
		return nil, fmt.Errorf("failed to marshal schema: %w", err)
	}
	var responseSchema genai.Schema
	if err := json.Unmarshal(schemaBytes, &responseSchema); err != nil {
		return nil, fmt.Errorf("failed to unmarshal schema: %w", err)
	}

	if language == "" {
		language = DefaultLanguage
	}
	return &GeminiSource{
		models:   models,
		model:    model,
		language: language,
		schema:   &responseSchema,
	}, nil
}

// Fetch generates one fact.
func (s *GeminiSource) Fetch(ctx context.Context) (Fact, error) {
	config := &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   s.schema,
		MaxOutputTokens:  256,
	}

	resp, err := s.models.GenerateContent(ctx, s.model, genai.Text(fmt.Sprintf(generatePrompt, s.language)), config)
	if err != nil {
		var apiErr genai.APIError
		if errors.As(err, &apiErr) {
			return Fact{}, &FetchError{Kind: KindHTTPStatus, StatusCode: apiErr.Code, Err: err}
		}
		return Fact{}, &FetchError{Kind: KindNetwork, Err: err}
	}
	if resp == nil || len(resp.Candidates) == 0 {
		return Fact{}, &FetchError{Kind: KindParse, Err: errors.New("no response candidates from Gemini")}
	}

	var out generatedFact
	if err := json.Unmarshal([]byte(strings.TrimSpace(resp.Text())), &out); err != nil {
		return Fact{}, &FetchError{Kind: KindParse, Err: err}
	}

	return Fact{
		Text:   strings.TrimSpace(out.Text),
		Source: out.Source,
	}, nil
}
