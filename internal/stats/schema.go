package stats

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

const recordSchemaURL = "schema://topic-record.json"

// recordSchema describes one stored topic record. Anything else found under
// a topic id is discarded on load.
const recordSchema = `{
  "type": "object",
  "properties": {
    "startedAt": {"type": "integer", "minimum": 0},
    "stats": {
      "type": "object",
      "properties": {
        "asked":   {"type": "integer", "minimum": 0},
        "correct": {"type": "integer", "minimum": 0}
      }
    }
  }
}`

var compiledRecordSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	var def any
	if err := json.Unmarshal([]byte(recordSchema), &def); err != nil {
		return nil, fmt.Errorf("parse schema definition: %w", err)
	}

	c := jsonschema.NewCompiler()
	if err := c.AddResource(recordSchemaURL, def); err != nil {
		return nil, fmt.Errorf("add resource: %w", err)
	}
	compiled, err := c.Compile(recordSchemaURL)
	if err != nil {
		return nil, fmt.Errorf("compile: %w", err)
	}
	return compiled, nil
})

// decodeRecord validates raw against the record schema and decodes it.
func decodeRecord(raw json.RawMessage) (*Record, error) {
	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}

	schema, err := compiledRecordSchema()
	if err != nil {
		return nil, err
	}
	if err := schema.Validate(parsed); err != nil {
		return nil, fmt.Errorf("schema validation failed: %w", err)
	}

	var rec Record
	if err := json.Unmarshal(raw, &rec); err != nil {
		return nil, fmt.Errorf("decode record: %w", err)
	}
	return &rec, nil
}
