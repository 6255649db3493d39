package extract

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/mark3labs/docs2openapi/internal/doctree"
)

// Heading labels recognized in the source documentation.
const (
	LabelRequestParams   = "Параметры запроса"
	LabelResponseParams  = "Параметры ответа"
	LabelErrors          = "Список возвращаемых ошибок"
	LabelRequestExample  = "Пример запроса"
	LabelResponseExample = "Пример ответа"
)

// headingSelector spans the three adjacent levels the documentation uses
// inconsistently for section headings.
const headingSelector = "h3, h4, h5"

// HasHeading reports whether a heading with the exact label exists. Absence
// of the request-parameters label marks a page as not an endpoint page.
func HasHeading(doc doctree.Document, label string) bool {
	for _, h := range doc.Find(headingSelector) {
		if h.Text() == label {
			return true
		}
	}
	return false
}

// SectionTable returns the nearest table following the first heading whose
// trimmed text equals label, or nil when the heading or table is absent.
func SectionTable(doc doctree.Document, label string) doctree.Node {
	for _, h := range doc.Find(headingSelector) {
		if h.Text() == label {
			return h.Following("table")
		}
	}
	return nil
}

var methodNameRe = regexp.MustCompile(`^[A-Za-z][\w-]*\.[A-Za-z][\w-]*$`)

// MethodName extracts the endpoint method name. A labeled "Метод" cell wins;
// otherwise the first inline-code table cell holding a single dot-separated
// pair is accepted.
func MethodName(doc doctree.Document) string {
	if v := labeledCell(doc, "Метод"); v != "" {
		return strings.Trim(v, "\"'")
	}
	for _, code := range doc.Find("table code") {
		text := strings.Trim(code.Text(), "\"'")
		if methodNameRe.MatchString(text) {
			return text
		}
	}
	return ""
}

// AccessLevel reads the labeled availability cell, if present.
func AccessLevel(doc doctree.Document) string {
	return labeledCell(doc, "Кому доступен")
}

// Title is the first top-level heading of the page.
func Title(doc doctree.Document) string {
	if h1 := doc.Find("h1"); len(h1) > 0 {
		return h1[0].Text()
	}
	return ""
}

// trailBoilerplate lists breadcrumb tails that never describe an endpoint.
var trailBoilerplate = map[string]bool{
	"Главная":      true,
	"Документация": true,
	"API":          true,
}

// maxTrailLen bounds how long a navigation trail may be before its tail is
// trusted as a description.
const maxTrailLen = 100

// Description resolves the endpoint description: a labeled table cell first,
// then the tail of a short breadcrumb trail, then the page title.
func Description(doc doctree.Document) string {
	if v := labeledCell(doc, "Описание"); v != "" {
		return v
	}
	if v := breadcrumbTail(doc); v != "" {
		return v
	}
	return Title(doc)
}

func breadcrumbTail(doc doctree.Document) string {
	for _, nav := range doc.Find(".breadcrumbs, .breadcrumb, nav") {
		trail := nav.Text()
		if trail == "" || len([]rune(trail)) >= maxTrailLen {
			continue
		}
		parts := strings.FieldsFunc(trail, func(r rune) bool {
			return r == '/' || r == '»' || r == '→'
		})
		if len(parts) == 0 {
			continue
		}
		tail := strings.TrimSpace(parts[len(parts)-1])
		if tail == "" || trailBoilerplate[tail] {
			continue
		}
		return tail
	}
	return ""
}

// HTTPVerb derives the HTTP verb from the method-name prefix. Everything
// unprefixed is POST, matching the JSON-RPC transport.
func HTTPVerb(methodName string) string {
	switch {
	case methodName == "":
		return ""
	case strings.HasPrefix(methodName, "get."):
		return "get"
	case strings.HasPrefix(methodName, "create."):
		return "post"
	case strings.HasPrefix(methodName, "update."):
		return "put"
	case strings.HasPrefix(methodName, "delete."):
		return "delete"
	default:
		return "post"
	}
}

// labeledCell scans table rows for a cell whose text equals label and returns
// the trimmed text of the adjacent cell.
func labeledCell(doc doctree.Document, label string) string {
	for _, row := range doc.Find("table tr") {
		cells := row.Find("th, td")
		for i, c := range cells {
			if c.Text() == label && i+1 < len(cells) {
				return cells[i+1].Text()
			}
		}
	}
	return ""
}

// ExampleJSON returns the JSON object in the code block following the given
// heading. Unparseable or absent examples yield nil, never an error.
func ExampleJSON(doc doctree.Document, label string) map[string]any {
	for _, h := range doc.Find(headingSelector) {
		if h.Text() != label {
			continue
		}
		pre := h.Following("pre")
		if pre == nil {
			return nil
		}
		raw := pre.Text()
		if codes := pre.Find("code"); len(codes) > 0 {
			raw = codes[0].Text()
		}
		var out map[string]any
		if err := json.Unmarshal([]byte(raw), &out); err != nil {
			return nil
		}
		return out
	}
	return nil
}
