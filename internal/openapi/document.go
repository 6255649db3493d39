// Package openapi synthesizes OpenAPI 3.0 documents from parsed endpoint
// data. The document types below mirror the subset of the specification the
// synthesizer emits; serialization to bytes happens at the edges.
package openapi

import (
	"encoding/json"

	"gopkg.in/yaml.v3"
)

// Document is a synthesized OpenAPI 3.0 specification for one endpoint.
type Document struct {
	OpenAPI      string              `yaml:"openapi" json:"openapi"`
	Info         Info                `yaml:"info" json:"info"`
	Paths        map[string]PathItem `yaml:"paths" json:"paths"`
	XAccessLevel string              `yaml:"x-access-level,omitempty" json:"x-access-level,omitempty"`
	XErrors      []ErrorRef          `yaml:"x-errors,omitempty" json:"x-errors,omitempty"`
}

type Info struct {
	Title       string `yaml:"title" json:"title"`
	Version     string `yaml:"version" json:"version"`
	Description string `yaml:"description,omitempty" json:"description,omitempty"`
}

// ErrorRef is an informational error reference carried outside the formal
// response map, including entries whose code is not a valid HTTP status.
type ErrorRef struct {
	Code        string `yaml:"code,omitempty" json:"code,omitempty"`
	Mnemonic    string `yaml:"mnemonic,omitempty" json:"mnemonic,omitempty"`
	Description string `yaml:"description,omitempty" json:"description,omitempty"`
}

type PathItem struct {
	Get    *Operation `yaml:"get,omitempty" json:"get,omitempty"`
	Post   *Operation `yaml:"post,omitempty" json:"post,omitempty"`
	Put    *Operation `yaml:"put,omitempty" json:"put,omitempty"`
	Delete *Operation `yaml:"delete,omitempty" json:"delete,omitempty"`
}

type Operation struct {
	Summary     string              `yaml:"summary,omitempty" json:"summary,omitempty"`
	Description string              `yaml:"description,omitempty" json:"description,omitempty"`
	RequestBody *RequestBody        `yaml:"requestBody,omitempty" json:"requestBody,omitempty"`
	Responses   map[string]Response `yaml:"responses" json:"responses"`
	Tags        []string            `yaml:"tags,omitempty" json:"tags,omitempty"`
}

type RequestBody struct {
	Required bool                 `yaml:"required" json:"required"`
	Content  map[string]MediaType `yaml:"content" json:"content"`
}

type Response struct {
	Description string               `yaml:"description" json:"description"`
	Content     map[string]MediaType `yaml:"content,omitempty" json:"content,omitempty"`
}

type MediaType struct {
	Schema  *Schema `yaml:"schema,omitempty" json:"schema,omitempty"`
	Example any     `yaml:"example,omitempty" json:"example,omitempty"`
}

type Schema struct {
	Type        string             `yaml:"type,omitempty" json:"type,omitempty"`
	Properties  map[string]*Schema `yaml:"properties,omitempty" json:"properties,omitempty"`
	Required    []string           `yaml:"required,omitempty" json:"required,omitempty"`
	Items       *Schema            `yaml:"items,omitempty" json:"items,omitempty"`
	Description string             `yaml:"description,omitempty" json:"description,omitempty"`
	Example     any                `yaml:"example,omitempty" json:"example,omitempty"`
	Enum        []any              `yaml:"enum,omitempty" json:"enum,omitempty"`
	Format      string             `yaml:"format,omitempty" json:"format,omitempty"`
	Minimum     *int               `yaml:"minimum,omitempty" json:"minimum,omitempty"`
	MaxLength   *int               `yaml:"maxLength,omitempty" json:"maxLength,omitempty"`
	MaxItems    *int               `yaml:"maxItems,omitempty" json:"maxItems,omitempty"`
	XFiltering  string             `yaml:"x-filtering,omitempty" json:"x-filtering,omitempty"`
	XSorting    string             `yaml:"x-sorting,omitempty" json:"x-sorting,omitempty"`
}

// ToYAML serializes the document.
func (d *Document) ToYAML() ([]byte, error) {
	return yaml.Marshal(d)
}

// ToJSON serializes the document with indentation.
func (d *Document) ToJSON() ([]byte, error) {
	return json.MarshalIndent(d, "", "  ")
}
