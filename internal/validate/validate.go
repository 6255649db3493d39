// Package validate checks fully extracted documents for structural
// completeness before synthesis.
package validate

import (
	"fmt"

	"github.com/mark3labs/docs2openapi/internal/model"
)

// Result reports document-level validation. A rejected document carries a
// reason; warnings never reject.
type Result struct {
	OK       bool
	Reason   string
	Warnings []string
}

var canonicalPrimitives = map[string]bool{
	"string":  true,
	"number":  true,
	"boolean": true,
	"object":  true,
	"array":   true,
}

// Document rejects extraction output that cannot be synthesized: a missing
// method name or HTTP verb, or a parameter with an empty name or unresolved
// type. Missing descriptions are warnings only.
func Document(doc *model.ParsedDocument) Result {
	if doc == nil || doc.Method == nil || doc.Method.Name == "" {
		return Result{Reason: "method name not found"}
	}
	if doc.Method.HTTPMethod == "" {
		return Result{Reason: "http verb could not be determined"}
	}

	var warnings []string
	for _, section := range []struct {
		name string
		set  *model.ParameterSet
	}{
		{"request", doc.Request},
		{"response", doc.Response},
	} {
		for _, p := range section.set.All() {
			if p.Name == "" {
				return Result{Reason: fmt.Sprintf("%s section: parameter with empty name", section.name)}
			}
			// Type resolution falls back to string, so a miss here means
			// the parameter bypassed normalization.
			if !canonicalPrimitives[p.Type] {
				return Result{Reason: fmt.Sprintf("%s parameter %q: unresolved type %q", section.name, p.Name, p.Type)}
			}
			if p.Description == "" {
				warnings = append(warnings, fmt.Sprintf("%s parameter %q: missing description", section.name, p.Name))
			}
		}
	}

	return Result{OK: true, Warnings: warnings}
}
