package config

import (
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
	sigsyaml "sigs.k8s.io/yaml"
)

// configSchema validates user-supplied config files before they are
// unmarshalled, so typos fail with a schema path instead of being
// silently ignored.
const configSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "title": "intel-mkl-tool configuration",
  "type": "object",
  "additionalProperties": false,
  "properties": {
    "cacheDir": {
      "type": "string",
      "minLength": 1
    },
    "platform": {
      "type": "string",
      "enum": ["", "x86_64-linux", "x86_64-darwin", "x86_64-windows"]
    },
    "linkMode": {
      "type": "string",
      "enum": ["static", "dynamic"]
    },
    "logging": {
      "type": "object",
      "additionalProperties": false,
      "properties": {
        "level": {
          "type": "string",
          "enum": ["debug", "info", "warn", "error"]
        }
      }
    }
  }
}`

var compiledSchema = jsonschema.MustCompileString("config.schema.json", configSchema)

// validateSchema checks raw YAML config data against the embedded schema.
func validateSchema(data []byte) error {
	jsonData, err := sigsyaml.YAMLToJSON(data)
	if err != nil {
		return fmt.Errorf("converting config to JSON: %w", err)
	}

	var doc any
	if err := json.Unmarshal(jsonData, &doc); err != nil {
		return fmt.Errorf("decoding config: %w", err)
	}

	if err := compiledSchema.Validate(doc); err != nil {
		return fmt.Errorf("schema validation failed: %w", err)
	}
	return nil
}
