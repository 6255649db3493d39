// Package model holds the records produced by extraction and consumed by
// synthesis. Entities are built fresh per input document and are not mutated
// after validation accepts them.
package model

import (
	"encoding/json"
	"strconv"

	"gopkg.in/yaml.v3"
)

// MethodInfo carries the endpoint metadata read from a documentation page.
type MethodInfo struct {
	Name        string `json:"name" yaml:"name"`
	Title       string `json:"title,omitempty" yaml:"title,omitempty"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	AccessLevel string `json:"access_level,omitempty" yaml:"access_level,omitempty"`
	HTTPMethod  string `json:"http_method" yaml:"http_method"`
}

// Constraints is structured metadata derived from a free-text allowed-values
// field. At most one of Format, Enum, Minimum, MaxLength, MaxItems is set by
// interpretation; Filtering and Sorting are response-table side channels.
type Constraints struct {
	Format    string   `json:"format,omitempty" yaml:"format,omitempty"`
	Example   any      `json:"example,omitempty" yaml:"example,omitempty"`
	Enum      []string `json:"enum,omitempty" yaml:"enum,omitempty"`
	Minimum   *int     `json:"minimum,omitempty" yaml:"minimum,omitempty"`
	MaxLength *int     `json:"max_length,omitempty" yaml:"max_length,omitempty"`
	MaxItems  *int     `json:"max_items,omitempty" yaml:"max_items,omitempty"`
	Filtering string   `json:"filtering,omitempty" yaml:"filtering,omitempty"`
	Sorting   string   `json:"sorting,omitempty" yaml:"sorting,omitempty"`
}

// Parameter is one canonical request or response parameter.
type Parameter struct {
	Name        string       `json:"name" yaml:"name"`
	Type        string       `json:"type" yaml:"type"`
	Required    bool         `json:"required" yaml:"required"`
	Description string       `json:"description,omitempty" yaml:"description,omitempty"`
	Constraints *Constraints `json:"constraints,omitempty" yaml:"constraints,omitempty"`
}

// ErrorEntry is one row of the returned-errors table.
type ErrorEntry struct {
	Code        string `json:"code,omitempty" yaml:"code,omitempty"`
	Mnemonic    string `json:"mnemonic,omitempty" yaml:"mnemonic,omitempty"`
	Description string `json:"description" yaml:"description"`
}

// StatusCode reports whether the entry's code is a promotable HTTP status,
// i.e. parses as an integer in [100, 599].
func (e ErrorEntry) StatusCode() (int, bool) {
	n, err := strconv.Atoi(e.Code)
	if err != nil || n < 100 || n > 599 {
		return 0, false
	}
	return n, true
}

// ParameterSet is a name-keyed parameter collection that preserves insertion
// order, so repeated extraction of the same tree yields identical output.
type ParameterSet struct {
	names  []string
	byName map[string]*Parameter
}

func NewParameterSet() *ParameterSet {
	return &ParameterSet{byName: make(map[string]*Parameter)}
}

// Add appends p unless a parameter with the same name is already present.
func (s *ParameterSet) Add(p *Parameter) bool {
	if p == nil || p.Name == "" {
		return false
	}
	if _, dup := s.byName[p.Name]; dup {
		return false
	}
	s.names = append(s.names, p.Name)
	s.byName[p.Name] = p
	return true
}

func (s *ParameterSet) Get(name string) (*Parameter, bool) {
	p, ok := s.byName[name]
	return p, ok
}

func (s *ParameterSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.names)
}

// All returns the parameters in insertion order.
func (s *ParameterSet) All() []*Parameter {
	if s == nil {
		return nil
	}
	out := make([]*Parameter, 0, len(s.names))
	for _, n := range s.names {
		out = append(out, s.byName[n])
	}
	return out
}

// MarshalJSON renders the set as an object keyed by parameter name, in
// insertion order.
func (s *ParameterSet) MarshalJSON() ([]byte, error) {
	buf := []byte{'{'}
	for i, n := range s.names {
		if i > 0 {
			buf = append(buf, ',')
		}
		key, err := json.Marshal(n)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(s.byName[n])
		if err != nil {
			return nil, err
		}
		buf = append(buf, key...)
		buf = append(buf, ':')
		buf = append(buf, val...)
	}
	return append(buf, '}'), nil
}

// MarshalYAML renders the set as an insertion-ordered mapping.
func (s *ParameterSet) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}
	for _, n := range s.names {
		var key, val yaml.Node
		key.SetString(n)
		if err := val.Encode(s.byName[n]); err != nil {
			return nil, err
		}
		node.Content = append(node.Content, &key, &val)
	}
	return node, nil
}

// ParsedDocument aggregates everything extracted from one page.
type ParsedDocument struct {
	Method          *MethodInfo    `json:"method_info" yaml:"method_info"`
	Request         *ParameterSet  `json:"request_params" yaml:"request_params"`
	Response        *ParameterSet  `json:"response_params" yaml:"response_params"`
	Errors          []ErrorEntry   `json:"errors,omitempty" yaml:"errors,omitempty"`
	RequestExample  map[string]any `json:"request_example,omitempty" yaml:"request_example,omitempty"`
	ResponseExample map[string]any `json:"response_example,omitempty" yaml:"response_example,omitempty"`
	NotesHTML       string         `json:"notes_html,omitempty" yaml:"notes_html,omitempty"`
}

func NewParsedDocument() *ParsedDocument {
	return &ParsedDocument{
		Request:  NewParameterSet(),
		Response: NewParameterSet(),
	}
}
