package validate

import (
	"testing"

	"github.com/mark3labs/docs2openapi/internal/model"
)

func validDoc() *model.ParsedDocument {
	doc := model.NewParsedDocument()
	doc.Method = &model.MethodInfo{Name: "get.user", HTTPMethod: "get"}
	doc.Request.Add(&model.Parameter{Name: "user_id", Type: "number", Required: true, Description: "ID"})
	doc.Response.Add(&model.Parameter{Name: "id", Type: "number", Description: "Идентификатор"})
	return doc
}

func TestDocument_OK(t *testing.T) {
	t.Parallel()

	res := Document(validDoc())
	if !res.OK {
		t.Fatalf("rejected: %s", res.Reason)
	}
	if len(res.Warnings) != 0 {
		t.Errorf("unexpected warnings: %v", res.Warnings)
	}
}

func TestDocument_MissingMethodName(t *testing.T) {
	t.Parallel()

	if res := Document(nil); res.OK {
		t.Error("nil document must be rejected")
	}

	doc := validDoc()
	doc.Method.Name = ""
	res := Document(doc)
	if res.OK || res.Reason != "method name not found" {
		t.Errorf("got %+v", res)
	}
}

func TestDocument_MissingVerb(t *testing.T) {
	t.Parallel()

	doc := validDoc()
	doc.Method.HTTPMethod = ""
	res := Document(doc)
	if res.OK || res.Reason != "http verb could not be determined" {
		t.Errorf("got %+v", res)
	}
}

func TestDocument_UnresolvedType(t *testing.T) {
	t.Parallel()

	doc := validDoc()
	doc.Request.Add(&model.Parameter{Name: "weird", Type: "timestamp", Description: "x"})
	if res := Document(doc); res.OK {
		t.Error("non-canonical type must be rejected")
	}
}

func TestDocument_MissingDescriptionWarns(t *testing.T) {
	t.Parallel()

	doc := validDoc()
	doc.Request.Add(&model.Parameter{Name: "silent", Type: "string"})
	res := Document(doc)
	if !res.OK {
		t.Fatalf("rejected: %s", res.Reason)
	}
	if len(res.Warnings) != 1 {
		t.Errorf("warnings: %v", res.Warnings)
	}
}
