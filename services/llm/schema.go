package llm

import (
	"encoding/json"
	"fmt"

	"github.com/invopop/jsonschema"
)

// SchemaFor reflects T into a plain JSON schema object usable as function
// parameters by every provider. Keywords that Gemini rejects are removed.
func SchemaFor[T any]() (map[string]any, error) {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
	}
	var v T
	schema := reflector.Reflect(v)

	data, err := json.Marshal(schema)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal schema: %w", err)
	}

	var out map[string]any
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("failed to unmarshal schema: %w", err)
	}

	stripKeywords(out)
	return out, nil
}

var unsupportedKeywords = []string{"$schema", "$id", "additionalProperties"}

func stripKeywords(node any) {
	switch n := node.(type) {
	case map[string]any:
		for _, k := range unsupportedKeywords {
			delete(n, k)
		}
		for _, child := range n {
			stripKeywords(child)
		}
	case []any:
		for _, child := range n {
			stripKeywords(child)
		}
	}
}
