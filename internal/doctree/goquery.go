package doctree

import (
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

type gqDocument struct {
	doc *goquery.Document
}

type gqNode struct {
	sel *goquery.Selection
}

func parseGoquery(r io.Reader) (Document, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, err
	}
	return gqDocument{doc: doc}, nil
}

func (d gqDocument) Find(selector string) []Node {
	return nodes(d.doc.Find(selector))
}

func nodes(sel *goquery.Selection) []Node {
	out := make([]Node, 0, sel.Length())
	sel.Each(func(_ int, s *goquery.Selection) {
		out = append(out, gqNode{sel: s})
	})
	return out
}

func (n gqNode) Find(selector string) []Node {
	return nodes(n.sel.Find(selector))
}

func (n gqNode) Following(selector string) Node {
	next := n.sel.NextAllFiltered(selector).First()
	if next.Length() == 0 {
		return nil
	}
	return gqNode{sel: next}
}

func (n gqNode) Parent() Node {
	p := n.sel.Parent()
	if p.Length() == 0 {
		return nil
	}
	return gqNode{sel: p}
}

func (n gqNode) Text() string {
	return strings.TrimSpace(n.sel.Text())
}

func (n gqNode) HTML() string {
	h, err := n.sel.Html()
	if err != nil {
		return ""
	}
	return strings.TrimSpace(h)
}

func (n gqNode) Attr(key string) string {
	v, _ := n.sel.Attr(key)
	return v
}
