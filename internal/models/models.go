package models

import "fmt"

// Model represents a Gemini model that can generate facts
type Model struct {
	ID          string
	Name        string
	Description string
	IsDefault   bool
}

// Gemini models known to handle structured JSON output
var AvailableModels = []Model{
	{
		ID:          "gemini-2.5-flash",
		Name:        "Gemini 2.5 Flash",
		Description: "Fast model with good factual recall",
		IsDefault:   true,
	},
	{
		ID:          "gemini-2.5-flash-lite",
		Name:        "Gemini 2.5 Flash Lite",
		Description: "Cheapest option for one-sentence facts",
		IsDefault:   false,
	},
	{
		ID:          "gemini-2.5-pro",
		Name:        "Gemini 2.5 Pro",
		Description: "Slower, more careful about accuracy",
		IsDefault:   false,
	},
	{
		ID:          "gemini-2.0-flash",
		Name:        "Gemini 2.0 Flash",
		Description: "Previous generation fast model",
		IsDefault:   false,
	},
}

// GetModelByID returns a model by its ID
func GetModelByID(id string) (*Model, error) {
	for _, model := range AvailableModels {
		if model.ID == id {
			return &model, nil
		}
	}
	return nil, fmt.Errorf("model with ID '%s' not found", id)
}

// GetDefaultModel returns the default model
func GetDefaultModel() *Model {
	for _, model := range AvailableModels {
		if model.IsDefault {
			return &model
		}
	}
	// Fallback to first model if no default is set
	if len(AvailableModels) > 0 {
		return &AvailableModels[0]
	}
	return nil
}

// GetModelIDs returns a slice of model IDs
func GetModelIDs() []string {
	ids := make([]string, len(AvailableModels))
	for i, model := range AvailableModels {
		ids[i] = model.ID
	}
	return ids
}
