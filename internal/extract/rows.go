package extract

import (
	"strings"

	"github.com/mark3labs/docs2openapi/internal/doctree"
)

// Section identifies which parameter table a row came from. Column semantics
// depend on both the section and the row's cell count.
type Section int

const (
	SectionRequest Section = iota
	SectionResponse
)

// RawRow is the column-mapped content of one data row, before normalization.
type RawRow struct {
	Name          string
	Type          string
	Required      string
	AllowedValues string
	Filtering     string
	Sorting       string
	Description   string
}

// rowCells gives column rules uniform access to a row's cells.
type rowCells struct {
	cells []doctree.Node
}

func (r rowCells) text(i int) string {
	return r.cells[i].Text()
}

func (r rowCells) last() string {
	return r.cells[len(r.cells)-1].Text()
}

// name reads the inline-code span inside the cell if present, else the raw
// cell text.
func (r rowCells) name(i int) string {
	if codes := r.cells[i].Find("code"); len(codes) > 0 {
		return codes[0].Text()
	}
	return r.cells[i].Text()
}

// list joins a bulleted list inside the cell with commas, so the allowed
// values read as one enumerable string.
func (r rowCells) list(i int) string {
	items := r.cells[i].Find("li")
	if len(items) == 0 {
		return r.cells[i].Text()
	}
	parts := make([]string, 0, len(items))
	for _, item := range items {
		if t := item.Text(); t != "" {
			parts = append(parts, t)
		}
	}
	return strings.Join(parts, ", ")
}

// columnRule maps one row shape onto RawRow fields. Rules are evaluated top
// to bottom and the first one admitting the cell count wins; max == 0 means
// unbounded.
type columnRule struct {
	min    int
	max    int
	mapRow func(rowCells) RawRow
}

var requestRules = []columnRule{
	{min: 5, mapRow: func(c rowCells) RawRow {
		return RawRow{Name: c.name(0), Type: c.text(1), Required: c.text(2), AllowedValues: c.list(3), Description: c.text(4)}
	}},
	{min: 4, max: 4, mapRow: func(c rowCells) RawRow {
		return RawRow{Name: c.name(0), Type: c.text(1), Required: c.text(2), Description: c.text(3)}
	}},
}

var responseRules = []columnRule{
	{min: 6, mapRow: func(c rowCells) RawRow {
		return RawRow{Name: c.name(0), Type: c.text(1), AllowedValues: c.list(2), Filtering: c.text(3), Sorting: c.text(4), Description: c.text(5)}
	}},
	// The corpus disagrees on 4-cell response rows; the last cell is taken as
	// the description and the third cell ignored.
	{min: 4, max: 5, mapRow: func(c rowCells) RawRow {
		return RawRow{Name: c.name(0), Type: c.text(1), Description: c.last()}
	}},
	{min: 3, max: 3, mapRow: func(c rowCells) RawRow {
		return RawRow{Name: c.name(0), Type: c.text(1), Description: c.text(2)}
	}},
}

// Rows yields the column-mapped data rows of a table. The first row is the
// header; rows narrower than every rule for the section are malformed or
// decorative and dropped, as are rows whose resolved name is empty.
func Rows(table doctree.Node, section Section) []RawRow {
	rules := requestRules
	if section == SectionResponse {
		rules = responseRules
	}

	var out []RawRow
	for i, row := range table.Find("tr") {
		if i == 0 {
			continue
		}
		cells := row.Find("td")
		rule, ok := matchRule(rules, len(cells))
		if !ok {
			continue
		}
		raw := rule.mapRow(rowCells{cells: cells})
		if strings.TrimSpace(raw.Name) == "" {
			continue
		}
		out = append(out, raw)
	}
	return out
}

func matchRule(rules []columnRule, count int) (columnRule, bool) {
	for _, r := range rules {
		if count >= r.min && (r.max == 0 || count <= r.max) {
			return r, true
		}
	}
	return columnRule{}, false
}
