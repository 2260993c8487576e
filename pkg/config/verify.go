package config

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/invopop/jsonschema"
)

//go:embed seeds.schema.json
var embeddedSchema []byte

// schemaDef is the part of an object definition used for verification
type schemaDef struct {
	Properties           map[string]json.RawMessage `json:"properties"`
	Required             []string                   `json:"required"`
	AdditionalProperties *bool                      `json:"additionalProperties"`
}

// VerifyAgainstEmbeddedSchema checks decoded seed data against the embedded JSON schema:
// required properties must be set and unknown properties are rejected
func VerifyAgainstEmbeddedSchema(raw map[string]any) error {
	var schema struct {
		Defs map[string]schemaDef `json:"$defs"`
	}
	if err := json.Unmarshal(embeddedSchema, &schema); err != nil {
		return fmt.Errorf("parse embedded schema: %w", err)
	}

	if err := checkObject(schema.Defs["Seeds"], raw, "seeds"); err != nil {
		return err
	}

	feeds, ok := raw["feeds"].([]any)
	if !ok {
		return fmt.Errorf("seeds.feeds must be a list")
	}
	for i, f := range feeds {
		obj, ok := f.(map[string]any)
		if !ok {
			return fmt.Errorf("feeds[%d] must be an object", i)
		}
		if err := checkObject(schema.Defs["SeedFeed"], obj, fmt.Sprintf("feeds[%d]", i)); err != nil {
			return err
		}
	}
	return nil
}

func checkObject(def schemaDef, obj map[string]any, path string) error {
	for _, name := range def.Required {
		v, ok := obj[name]
		if !ok || v == nil || v == "" {
			return fmt.Errorf("%s.%s is required", path, name)
		}
	}

	if def.AdditionalProperties != nil && !*def.AdditionalProperties {
		keys := make([]string, 0, len(obj))
		for k := range obj {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			if _, ok := def.Properties[k]; !ok {
				return fmt.Errorf("%s: unknown property %q", path, k)
			}
		}
	}
	return nil
}

// GenerateSchema generates a JSON schema for the seed file
func GenerateSchema() *jsonschema.Schema {
	return jsonschema.Reflect(&Seeds{})
}
