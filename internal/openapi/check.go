package openapi

import (
	"context"
	"fmt"

	"github.com/getkin/kin-openapi/openapi3"
)

// Check validates a synthesized document by round-tripping it through the
// kin-openapi loader, catching anything the synthesizer emits that a spec
// consumer would reject.
func Check(ctx context.Context, doc *Document) error {
	data, err := doc.ToYAML()
	if err != nil {
		return fmt.Errorf("marshal spec: %w", err)
	}
	loader := openapi3.NewLoader()
	parsed, err := loader.LoadFromData(data)
	if err != nil {
		return fmt.Errorf("load synthesized spec: %w", err)
	}
	if err := parsed.Validate(ctx); err != nil {
		return fmt.Errorf("validate synthesized spec: %w", err)
	}
	return nil
}

// CheckFile validates a previously generated spec on disk.
func CheckFile(ctx context.Context, path string) error {
	loader := openapi3.NewLoader()
	parsed, err := loader.LoadFromFile(path)
	if err != nil {
		return fmt.Errorf("load %s: %w", path, err)
	}
	if err := parsed.Validate(ctx); err != nil {
		return fmt.Errorf("validate %s: %w", path, err)
	}
	return nil
}
