package openapi

import (
	"fmt"

	"github.com/mark3labs/docs2openapi/internal/model"
)

const jsonMediaType = "application/json"

// Synthesizer assembles OpenAPI documents from parsed endpoint data. It
// produces a fresh document per call and never mutates its input.
type Synthesizer struct{}

func NewSynthesizer() *Synthesizer {
	return &Synthesizer{}
}

// Synthesize builds the OpenAPI document for one parsed endpoint page.
func (s *Synthesizer) Synthesize(doc *model.ParsedDocument) (*Document, error) {
	if doc == nil || doc.Method == nil {
		return nil, fmt.Errorf("synthesize: method info is required")
	}
	method := doc.Method

	title := method.Title
	if title == "" {
		title = fmt.Sprintf("API - %s", method.Name)
	}
	description := method.Description
	if description == "" {
		description = fmt.Sprintf("API endpoint for %s", method.Name)
	}

	out := &Document{
		OpenAPI: "3.0.0",
		Info: Info{
			Title:       title,
			Version:     "1.0.0",
			Description: description,
		},
		Paths:        make(map[string]PathItem),
		XAccessLevel: method.AccessLevel,
	}
	for _, e := range doc.Errors {
		out.XErrors = append(out.XErrors, ErrorRef{Code: e.Code, Mnemonic: e.Mnemonic, Description: e.Description})
	}

	op := &Operation{
		Summary:     method.Title,
		Description: description,
		Responses:   s.responses(doc),
	}
	if doc.Request.Len() > 0 {
		op.RequestBody = s.requestBody(doc)
	}

	item := PathItem{}
	switch method.HTTPMethod {
	case "get":
		item.Get = op
	case "put":
		item.Put = op
	case "delete":
		item.Delete = op
	default:
		item.Post = op
	}
	out.Paths["/"+method.Name] = item

	return out, nil
}

// requestBody wraps the request parameters in the JSON-RPC 2.0 envelope the
// API speaks.
func (s *Synthesizer) requestBody(doc *model.ParsedDocument) *RequestBody {
	params := &Schema{
		Type:       "object",
		Properties: make(map[string]*Schema, doc.Request.Len()),
	}
	for _, p := range doc.Request.All() {
		params.Properties[p.Name] = parameterSchema(p)
		if p.Required {
			params.Required = append(params.Required, p.Name)
		}
	}

	envelope := &Schema{
		Type: "object",
		Properties: map[string]*Schema{
			"jsonrpc": {Type: "string", Description: "JSON-RPC version", Example: "2.0"},
			"id":      {Type: "number", Description: "Request identifier"},
			"method":  {Type: "string", Description: "Method name", Example: doc.Method.Name},
			"params":  params,
		},
		Required: []string{"jsonrpc", "id", "method", "params"},
	}

	media := MediaType{Schema: envelope}
	if doc.RequestExample != nil {
		media.Example = doc.RequestExample
	}
	return &RequestBody{
		Required: true,
		Content:  map[string]MediaType{jsonMediaType: media},
	}
}

// responses always contains the generic success and client-error entries,
// plus one entry per promotable error code.
func (s *Synthesizer) responses(doc *model.ParsedDocument) map[string]Response {
	out := make(map[string]Response)

	success := MediaType{Schema: s.successSchema(doc)}
	if doc.ResponseExample != nil {
		success.Example = doc.ResponseExample
	}
	out["200"] = Response{
		Description: "Successful response",
		Content:     map[string]MediaType{jsonMediaType: success},
	}
	out["400"] = Response{
		Description: "Error response",
		Content:     map[string]MediaType{jsonMediaType: {Schema: errorSchema(nil)}},
	}

	for _, e := range doc.Errors {
		code, ok := e.StatusCode()
		if !ok {
			continue
		}
		desc := e.Description
		if desc == "" {
			desc = "Error response"
		}
		out[e.Code] = Response{
			Description: desc,
			Content:     map[string]MediaType{jsonMediaType: {Schema: errorSchema(code)}},
		}
	}
	return out
}

func (s *Synthesizer) successSchema(doc *model.ParsedDocument) *Schema {
	data := &Schema{Type: "object"}
	if doc.Response.Len() > 0 {
		data.Properties = make(map[string]*Schema, doc.Response.Len())
		for _, p := range doc.Response.All() {
			data.Properties[p.Name] = parameterSchema(p)
			if p.Required {
				data.Required = append(data.Required, p.Name)
			}
		}
	}

	return &Schema{
		Type: "object",
		Properties: map[string]*Schema{
			"jsonrpc": {Type: "string", Description: "JSON-RPC version", Example: "2.0"},
			"id":      {Type: "number", Description: "Request identifier"},
			"result": {
				Type: "object",
				Properties: map[string]*Schema{
					"data":     data,
					"metadata": {Type: "object", Description: "Response metadata"},
				},
				Required: []string{"data", "metadata"},
			},
		},
		Required: []string{"jsonrpc", "id", "result"},
	}
}

// errorSchema is the JSON-RPC error envelope; codeExample, when non-nil, is
// attached to the code property.
func errorSchema(codeExample any) *Schema {
	code := &Schema{Type: "number"}
	if codeExample != nil {
		code.Example = codeExample
	}
	return &Schema{
		Type: "object",
		Properties: map[string]*Schema{
			"jsonrpc": {Type: "string"},
			"id":      {Type: "number"},
			"error": {
				Type: "object",
				Properties: map[string]*Schema{
					"code":    code,
					"message": {Type: "string"},
					"data":    {Type: "object"},
				},
			},
		},
	}
}

// parameterSchema translates one canonical parameter, carrying its derived
// constraints into schema keywords.
func parameterSchema(p *model.Parameter) *Schema {
	schema := &Schema{
		Type:        p.Type,
		Description: p.Description,
	}

	if p.Type == "array" {
		schema.Items = &Schema{Type: "string", Example: "example_string"}
	}

	if c := p.Constraints; c != nil {
		schema.Format = c.Format
		schema.Minimum = c.Minimum
		schema.MaxLength = c.MaxLength
		schema.MaxItems = c.MaxItems
		schema.XFiltering = c.Filtering
		schema.XSorting = c.Sorting
		if c.Example != nil {
			schema.Example = c.Example
		}
		for _, v := range c.Enum {
			schema.Enum = append(schema.Enum, v)
		}
	}

	if schema.Example == nil {
		switch p.Type {
		case "string":
			schema.Example = "example_string"
		case "number":
			schema.Example = 123
		case "boolean":
			schema.Example = true
		case "array":
			schema.Example = []any{}
		}
	}
	return schema
}
