package rules

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// ruleFileSchema is the structure shared by the loader and the rule editor.
const ruleFileSchema = `{
  "type": "object",
  "required": ["groups"],
  "properties": {
    "groups": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["name", "type", "keywords"],
        "properties": {
          "name":     {"type": "string"},
          "type":     {"type": "string"},
          "keywords": {"type": "array", "items": {"type": "string"}}
        }
      }
    }
  }
}`

var compiledSchema = jsonschema.MustCompileString("rules.schema.json", ruleFileSchema)

// validateDocument checks raw JSON against the rule file schema.
func validateDocument(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return fmt.Errorf("unmarshal rules: %w", err)
	}
	if err := compiledSchema.Validate(v); err != nil {
		return fmt.Errorf("rules do not match schema: %w", err)
	}
	return nil
}
