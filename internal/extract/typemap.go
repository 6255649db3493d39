package extract

import "strings"

// canonicalTypes maps the source documentation's type vocabulary onto the
// canonical primitives. Date-like labels collapse to string.
var canonicalTypes = map[string]string{
	"string":   "string",
	"number":   "number",
	"boolean":  "boolean",
	"object":   "object",
	"array":    "array",
	"enum":     "string",
	"iso8601":  "string",
	"date":     "string",
	"datetime": "string",
}

// MapType resolves a source type label to a canonical primitive. Unrecognized
// labels fall back to string; known reports whether the label was recognized.
func MapType(label string) (typ string, known bool) {
	typ, known = canonicalTypes[strings.ToLower(strings.TrimSpace(label))]
	if !known {
		return "string", false
	}
	return typ, true
}
