package extract

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/mark3labs/docs2openapi/internal/model"
)

var firstIntRe = regexp.MustCompile(`\d+`)

// formatExamples pairs recognizable format sub-keywords with a representative
// example value. Matched in order; datetime must precede date and time.
var formatExamples = []struct {
	keyword string
	example string
}{
	{"iana", "Europe/Moscow"},
	{"zoneinfo", "Europe/Moscow"},
	{"часов", "Europe/Moscow"},
	{"e-mail", "user@example.com"},
	{"email", "user@example.com"},
	{"почт", "user@example.com"},
	{"e.164", "+79990000000"},
	{"телефон", "+79990000000"},
	{"phone", "+79990000000"},
	{"url", "https://example.com"},
	{"ссылк", "https://example.com"},
	{"datetime", "2024-01-01T12:00:00Z"},
	{"дата и время", "2024-01-01T12:00:00Z"},
	{"date", "2024-01-01"},
	{"дат", "2024-01-01"},
	{"time", "12:00:00"},
	{"времен", "12:00:00"},
}

// InterpretConstraints classifies a free-text allowed-values field into a
// structured constraint. Branches are tried in a fixed priority order and
// exactly one fires: format hint, maximum bound, minimum bound, enumeration.
// Returns nil when the text yields no constraint.
func InterpretConstraints(text string) *model.Constraints {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	lower := strings.ToLower(text)

	switch {
	case strings.Contains(lower, "формат") || strings.Contains(lower, "format"):
		return &model.Constraints{Format: text, Example: formatExample(lower)}

	case strings.Contains(lower, "максимум") || strings.Contains(lower, "maximum"):
		n, ok := firstInt(lower)
		if !ok {
			// Keyword honored but no bound to apply.
			return nil
		}
		switch {
		case strings.Contains(lower, "симв") || strings.Contains(lower, "character"):
			return &model.Constraints{MaxLength: &n}
		case strings.Contains(lower, "колич") || strings.Contains(lower, "count") ||
			strings.Contains(lower, "quantity") || strings.Contains(lower, "шт"):
			return &model.Constraints{MaxItems: &n}
		}
		return nil

	case strings.Contains(lower, "минимум") || strings.Contains(lower, "minimum"):
		n, ok := firstInt(lower)
		if !ok {
			return nil
		}
		return &model.Constraints{Minimum: &n}
	}

	values := splitEnum(text)
	if len(values) == 0 {
		return nil
	}
	return &model.Constraints{Enum: values, Example: values[0]}
}

func formatExample(lower string) string {
	for _, f := range formatExamples {
		if strings.Contains(lower, f.keyword) {
			return f.example
		}
	}
	return "string"
}

func firstInt(s string) (int, bool) {
	m := firstIntRe.FindString(s)
	if m == "" {
		return 0, false
	}
	n, err := strconv.Atoi(m)
	if err != nil {
		return 0, false
	}
	return n, true
}

func splitEnum(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if v := strings.TrimSpace(part); v != "" {
			out = append(out, v)
		}
	}
	return out
}
