package cli

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mark3labs/docs2openapi/internal/openapi"
)

func newCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Validate previously generated OpenAPI documents",
		Long:  "Validate generated OpenAPI YAML documents against the OpenAPI 3.0 specification.",
		Example: strings.TrimSpace(`  docs2openapi check --input ./specs
  docs2openapi check --input ./specs/get_user.yaml`),
		RunE: func(cmd *cobra.Command, args []string) error {
			input, err := cmd.Flags().GetString("input")
			if err != nil {
				return err
			}
			input = strings.TrimSpace(input)
			if input == "" {
				return newUsageError("check: --input is required")
			}
			return runCheck(cmd, input)
		},
	}

	cmd.Flags().String("input", "", "Spec file or directory of spec files to validate")
	return cmd
}

func runCheck(cmd *cobra.Command, input string) error {
	info, err := os.Stat(input)
	if err != nil {
		return newUsageError(fmt.Sprintf("check: input %s: %v", input, err))
	}

	var files []string
	if info.IsDir() {
		err := filepath.WalkDir(input, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				return nil
			}
			switch strings.ToLower(filepath.Ext(path)) {
			case ".yaml", ".yml":
				files = append(files, path)
			}
			return nil
		})
		if err != nil {
			return fmt.Errorf("scan %s: %w", input, err)
		}
	} else {
		files = []string{input}
	}

	if len(files) == 0 {
		return newUsageError(fmt.Sprintf("check: no spec files found under %s", input))
	}

	failed := 0
	for _, f := range files {
		if err := openapi.CheckFile(cmd.Context(), f); err != nil {
			failed++
			fmt.Fprintf(os.Stdout, "INVALID %s: %v\n", f, err)
			continue
		}
		fmt.Fprintf(os.Stdout, "ok %s\n", f)
	}

	fmt.Fprintf(os.Stdout, "Checked %d files, %d invalid\n", len(files), failed)
	if failed > 0 {
		return fmt.Errorf("check: %d of %d specs invalid", failed, len(files))
	}
	return nil
}
