// Package render produces per-endpoint Markdown documentation from parsed
// endpoint data.
package render

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"

	"github.com/mark3labs/docs2openapi/internal/model"
)

// Renderer writes Markdown documentation pages. The embedded converter turns
// HTML note fragments into Markdown.
type Renderer struct {
	conv *converter.Converter
}

func New() *Renderer {
	return &Renderer{
		conv: converter.NewConverter(
			converter.WithPlugins(
				base.NewBasePlugin(),
				commonmark.NewCommonmarkPlugin(),
				table.NewTablePlugin(),
			),
		),
	}
}

// Endpoint renders one documentation page.
func (r *Renderer) Endpoint(doc *model.ParsedDocument) ([]byte, error) {
	if doc == nil || doc.Method == nil {
		return nil, fmt.Errorf("render: method info is required")
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", doc.Method.Name)
	if doc.Method.Description != "" {
		fmt.Fprintf(&b, "**Описание:** %s\n\n", doc.Method.Description)
	}
	if doc.Method.AccessLevel != "" {
		fmt.Fprintf(&b, "**Доступен для:** %s\n\n", doc.Method.AccessLevel)
	}

	r.parameterTable(&b, "Параметры запроса", doc.Request, true)
	r.parameterTable(&b, "Параметры ответа", doc.Response, false)

	r.jsonExample(&b, "JSON структура запроса", doc.RequestExample)
	r.jsonExample(&b, "JSON структура ответа", doc.ResponseExample)

	if len(doc.Errors) > 0 {
		b.WriteString("## Ошибки\n\n| Код | Описание |\n|-----|----------|\n")
		for _, e := range doc.Errors {
			fmt.Fprintf(&b, "| %s | %s |\n", cellText(e.Code), cellText(e.Description))
		}
		b.WriteString("\n")
	}

	if doc.NotesHTML != "" {
		notes, err := r.conv.ConvertString(doc.NotesHTML)
		if err == nil && strings.TrimSpace(notes) != "" {
			fmt.Fprintf(&b, "## Примечания\n\n%s\n", strings.TrimSpace(notes))
		}
	}

	return []byte(b.String()), nil
}

func (r *Renderer) parameterTable(b *strings.Builder, heading string, set *model.ParameterSet, withRequired bool) {
	if set.Len() == 0 {
		return
	}
	fmt.Fprintf(b, "## %s\n\n", heading)
	if withRequired {
		b.WriteString("| Название | Тип | Обязательный | Описание |\n|----------|-----|--------------|----------|\n")
	} else {
		b.WriteString("| Название | Тип | Описание |\n|----------|-----|----------|\n")
	}
	for _, p := range set.All() {
		if withRequired {
			required := "Нет"
			if p.Required {
				required = "Да"
			}
			fmt.Fprintf(b, "| `%s` | %s | %s | %s |\n", p.Name, p.Type, required, cellText(p.Description))
		} else {
			fmt.Fprintf(b, "| `%s` | %s | %s |\n", p.Name, p.Type, cellText(p.Description))
		}
	}
	b.WriteString("\n")
}

func (r *Renderer) jsonExample(b *strings.Builder, heading string, example map[string]any) {
	if example == nil {
		return
	}
	data, err := json.MarshalIndent(example, "", "  ")
	if err != nil {
		return
	}
	fmt.Fprintf(b, "## %s\n\n```json\n%s\n```\n\n", heading, data)
}

// cellText keeps table cells on one line.
func cellText(s string) string {
	return strings.ReplaceAll(s, "|", "\\|")
}
