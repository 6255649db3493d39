// Package extract locates parameter tables inside loosely structured
// documentation pages and normalizes their rows into canonical records.
package extract

import (
	"fmt"

	"github.com/mark3labs/docs2openapi/internal/doctree"
	"github.com/mark3labs/docs2openapi/internal/model"
)

// Result is the outcome of extracting one document. A page without the
// request-parameters section is skipped, not failed; non-fatal findings
// accumulate as warnings.
type Result struct {
	Doc      *model.ParsedDocument
	Skipped  bool
	SkipNote string
	Warnings []string
}

// Warnf records a non-fatal finding.
func (r *Result) Warnf(format string, args ...any) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}

// Extract runs the full extraction pipeline over one parsed document tree.
// It never fails: structural problems surface later in validation, and pages
// that are not endpoint pages come back with Skipped set.
func Extract(doc doctree.Document) *Result {
	res := &Result{}

	if !HasHeading(doc, LabelRequestParams) {
		res.Skipped = true
		res.SkipNote = "no request-parameters section, not an endpoint page"
		return res
	}

	pd := model.NewParsedDocument()
	name := MethodName(doc)
	pd.Method = &model.MethodInfo{
		Name:        name,
		Title:       Title(doc),
		Description: CleanText(Description(doc)),
		AccessLevel: AccessLevel(doc),
		HTTPMethod:  HTTPVerb(name),
	}

	extractSection(doc, LabelRequestParams, SectionRequest, pd.Request, res)
	extractSection(doc, LabelResponseParams, SectionResponse, pd.Response, res)

	pd.Errors = errorEntries(doc)
	pd.RequestExample = ExampleJSON(doc, LabelRequestExample)
	pd.ResponseExample = ExampleJSON(doc, LabelResponseExample)
	pd.NotesHTML = notesHTML(doc)

	res.Doc = pd
	return res
}

func extractSection(doc doctree.Document, label string, section Section, set *model.ParameterSet, res *Result) {
	table := SectionTable(doc, label)
	if table == nil {
		return
	}
	for _, raw := range Rows(table, section) {
		p := Normalize(raw, res.Warnf)
		if !set.Add(p) {
			res.Warnf("%s: duplicate parameter %q ignored", label, p.Name)
		}
	}
}

// errorEntries reads the returned-errors table. Wide rows carry a decorative
// leading column before code/mnemonic/description; narrow rows are just code
// and description.
func errorEntries(doc doctree.Document) []model.ErrorEntry {
	table := SectionTable(doc, LabelErrors)
	if table == nil {
		return nil
	}
	var out []model.ErrorEntry
	for i, row := range table.Find("tr") {
		if i == 0 {
			continue
		}
		cells := row.Find("td")
		switch {
		case len(cells) >= 4:
			out = append(out, model.ErrorEntry{
				Code:        cells[1].Text(),
				Mnemonic:    cells[2].Text(),
				Description: CleanText(cells[3].Text()),
			})
		case len(cells) >= 2:
			out = append(out, model.ErrorEntry{
				Code:        cells[0].Text(),
				Description: CleanText(cells[len(cells)-1].Text()),
			})
		}
	}
	return out
}

func notesHTML(doc doctree.Document) string {
	if quotes := doc.Find("blockquote"); len(quotes) > 0 {
		return quotes[0].HTML()
	}
	return ""
}
