package extract

import (
	"regexp"
	"strings"

	"github.com/mark3labs/docs2openapi/internal/model"
)

// requiredTokens are the only values that mark a parameter required. Anything
// else, including an empty cell, means optional.
var requiredTokens = map[string]bool{
	"да":   true,
	"yes":  true,
	"true": true,
}

var whitespaceRe = regexp.MustCompile(`\s+`)

// cleanupRules strip boilerplate noise phrases from description text. They
// run in order between two whitespace-collapse passes and are data, not
// logic, so they can be audited and tested on their own.
var cleanupRules = []struct {
	pattern     *regexp.Regexp
	replacement string
}{
	{regexp.MustCompile(`(?i)подробнее\s+(?:смотрите\s+)?в\s+методе\s+[\w.]+\.?`), ""},
	{regexp.MustCompile(`(?i)см\.\s+метод\s+[\w.]+\.?`), ""},
	{regexp.MustCompile(`(?i)только\s+для\s+агент(?:ов|ских\s+аккаунтов)\.?`), ""},
	{regexp.MustCompile(`(?i)параметр\s+доступен\s+только\s+агентам\.?`), ""},
}

// CleanText collapses whitespace runs to single spaces and removes the
// boilerplate phrases the documentation repeats across pages.
func CleanText(s string) string {
	s = strings.TrimSpace(whitespaceRe.ReplaceAllString(s, " "))
	for _, rule := range cleanupRules {
		s = rule.pattern.ReplaceAllString(s, rule.replacement)
	}
	return strings.TrimSpace(whitespaceRe.ReplaceAllString(s, " "))
}

// Normalize converts one column-mapped row into a canonical Parameter.
// warn receives non-fatal notes such as unrecognized type labels.
func Normalize(row RawRow, warn func(format string, args ...any)) *model.Parameter {
	typ, known := MapType(row.Type)
	if !known && strings.TrimSpace(row.Type) != "" && warn != nil {
		warn("parameter %q: unknown type %q, using string", row.Name, strings.TrimSpace(row.Type))
	}

	p := &model.Parameter{
		Name:        strings.TrimSpace(row.Name),
		Type:        typ,
		Required:    requiredTokens[strings.ToLower(strings.TrimSpace(row.Required))],
		Description: CleanText(row.Description),
	}

	constraints := InterpretConstraints(row.AllowedValues)
	filtering := strings.TrimSpace(row.Filtering)
	sorting := strings.TrimSpace(row.Sorting)
	if filtering != "" || sorting != "" {
		if constraints == nil {
			constraints = &model.Constraints{}
		}
		constraints.Filtering = filtering
		constraints.Sorting = sorting
	}
	p.Constraints = constraints

	return p
}
