package gentypes

import (
	"encoding/json"
	"fmt"
	"strings"

	u "github.com/araddon/gou"
	"github.com/invopop/jsonschema"
	"github.com/xeipuuv/gojsonschema"
)

const schemaID = "https://github.com/araddon/filtres/schemas/query.json"

// JSONSchemaExtend requires the root filter to be an object.
func (Filtered) JSONSchemaExtend(s *jsonschema.Schema) {
	if s.Properties == nil {
		return
	}
	if filter, ok := s.Properties.Get("filter"); ok {
		filter.Items = &jsonschema.Schema{Type: "object"}
	}
}

// QuerySchema reflects the JSON schema of the Query envelope.
func QuerySchema() *jsonschema.Schema {
	reflector := jsonschema.Reflector{
		DoNotReference: true,
	}
	schema := reflector.Reflect(&Query{})
	schema.ID = schemaID
	schema.Title = "Filtered Query"
	schema.Description = "Elasticsearch filtered query with a single root filter"
	return schema
}

// Validator checks documents against the compiled Query schema.  Build once
// with NewValidator, it is safe for concurrent use.
type Validator struct {
	raw    []byte
	schema *gojsonschema.Schema
}

// NewValidator reflects and compiles the Query schema.
func NewValidator() (*Validator, error) {
	raw, err := json.Marshal(QuerySchema())
	if err != nil {
		return nil, fmt.Errorf("failed to generate schema: %w", err)
	}
	schema, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(raw))
	if err != nil {
		return nil, fmt.Errorf("failed to compile schema: %w", err)
	}
	return &Validator{raw: raw, schema: schema}, nil
}

// Schema the raw json schema document
func (v *Validator) Schema() []byte { return v.raw }

// Validate the json document, a document not matching the envelope is a
// MalformedOutputError.
func (v *Validator) Validate(doc []byte) error {
	result, err := v.schema.Validate(gojsonschema.NewBytesLoader(doc))
	if err != nil {
		return Malformed(string(doc), err)
	}
	if !result.Valid() {
		errs := make([]string, len(result.Errors()))
		for i, verr := range result.Errors() {
			errs[i] = verr.String()
		}
		u.Debugf("schema validation failed: %v", errs)
		return Malformedf(string(doc), "schema validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}
