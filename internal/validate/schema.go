package validate

import (
	"fmt"

	"github.com/mark3labs/docs2openapi/internal/model"
	"github.com/xeipuuv/gojsonschema"
)

// SchemaIssue is one finding from the JSON-Schema self-check.
type SchemaIssue struct {
	Field       string
	Description string
}

// RequestSchema builds a draft-07 JSON schema for the endpoint's JSON-RPC
// request envelope from the extracted request parameters.
func RequestSchema(doc *model.ParsedDocument) (map[string]any, error) {
	if doc == nil || doc.Method == nil {
		return nil, fmt.Errorf("request schema: method info is required")
	}

	properties := map[string]any{
		"jsonrpc": map[string]any{"type": "string", "const": "2.0"},
		"id":      map[string]any{"type": "number"},
		"method":  map[string]any{"type": "string", "const": doc.Method.Name},
	}

	if doc.Request.Len() > 0 {
		paramProps := make(map[string]any, doc.Request.Len())
		required := []string{}
		for _, p := range doc.Request.All() {
			paramProps[p.Name] = parameterSchema(p)
			if p.Required {
				required = append(required, p.Name)
			}
		}
		params := map[string]any{
			"type":       "object",
			"properties": paramProps,
		}
		if len(required) > 0 {
			params["required"] = required
		}
		properties["params"] = params
	}

	return map[string]any{
		"$schema":    "http://json-schema.org/draft-07/schema#",
		"type":       "object",
		"title":      doc.Method.Title,
		"properties": properties,
		"required":   []string{"jsonrpc", "id", "method"},
	}, nil
}

func parameterSchema(p *model.Parameter) map[string]any {
	schema := map[string]any{"type": p.Type}
	if p.Description != "" {
		schema["description"] = p.Description
	}
	if c := p.Constraints; c != nil {
		if c.Format != "" {
			schema["format"] = c.Format
		}
		if len(c.Enum) > 0 {
			schema["enum"] = c.Enum
		}
		if c.Minimum != nil {
			schema["minimum"] = *c.Minimum
		}
		if c.MaxLength != nil {
			schema["maxLength"] = *c.MaxLength
		}
	}
	return schema
}

// SelfCheck compiles the request schema and validates a synthetic example
// request against it. A failure means extraction produced parameters that
// contradict their own constraints.
func SelfCheck(doc *model.ParsedDocument) ([]SchemaIssue, error) {
	schema, err := RequestSchema(doc)
	if err != nil {
		return nil, err
	}
	compiled, err := gojsonschema.NewSchema(gojsonschema.NewGoLoader(schema))
	if err != nil {
		return nil, fmt.Errorf("compile schema for %s: %w", doc.Method.Name, err)
	}

	result, err := compiled.Validate(gojsonschema.NewGoLoader(exampleRequest(doc)))
	if err != nil {
		return nil, fmt.Errorf("self-check %s: %w", doc.Method.Name, err)
	}

	var issues []SchemaIssue
	for _, e := range result.Errors() {
		issues = append(issues, SchemaIssue{Field: e.Field(), Description: e.Description()})
	}
	return issues, nil
}

// exampleRequest builds a request that should satisfy the generated schema,
// preferring constraint-derived examples over type defaults.
func exampleRequest(doc *model.ParsedDocument) map[string]any {
	req := map[string]any{
		"jsonrpc": "2.0",
		"id":      1,
		"method":  doc.Method.Name,
	}
	if doc.Request.Len() == 0 {
		return req
	}

	params := make(map[string]any, doc.Request.Len())
	for _, p := range doc.Request.All() {
		if c := p.Constraints; c != nil && c.Example != nil {
			params[p.Name] = c.Example
			continue
		}
		switch p.Type {
		case "number":
			params[p.Name] = 123
		case "boolean":
			params[p.Name] = true
		case "object":
			params[p.Name] = map[string]any{}
		case "array":
			params[p.Name] = []any{}
		default:
			params[p.Name] = "example"
		}
	}
	req["params"] = params
	return req
}
