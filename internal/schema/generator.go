package schema

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/invopop/jsonschema"
)

// GenerateSchema generates a JSON schema for a given type
func GenerateSchema[T any]() map[string]interface{} {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
	}
	var v T

	schema := reflector.Reflect(v)

	// Marshal the schema to JSON
	schemaBytes, err := json.Marshal(schema)
	if err != nil {
		panic(fmt.Sprintf("failed to marshal schema: %v", err))
	}

	var params map[string]interface{}
	if err := json.Unmarshal(schemaBytes, &params); err != nil {
		panic(fmt.Sprintf("failed to unmarshal schema to map: %v", err))
	}
	return params
}

// OpenAPITypes rewrites the "type" keywords of a generated schema to the
// upper-case OpenAPI spelling ("object" becomes "OBJECT") and drops the
// keywords OpenAPI schemas do not carry. The input is modified in place.
func OpenAPITypes(schema map[string]interface{}) map[string]interface{} {
	delete(schema, "$schema")
	delete(schema, "$id")
	delete(schema, "additionalProperties")

	if t, ok := schema["type"].(string); ok {
		schema["type"] = strings.ToUpper(t)
	}
	if props, ok := schema["properties"].(map[string]interface{}); ok {
		for _, p := range props {
			if child, ok := p.(map[string]interface{}); ok {
				OpenAPITypes(child)
			}
		}
	}
	if items, ok := schema["items"].(map[string]interface{}); ok {
		OpenAPITypes(items)
	}
	return schema
}
