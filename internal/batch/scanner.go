package batch

import (
	"io/fs"
	"path/filepath"
	"strings"
)

// ScanDir returns all HTML files under root, recursively. Root-level
// index.html files are navigation pages and skipped; index.html inside a
// subdirectory can be a real endpoint page and is kept.
func ScanDir(root string) ([]string, error) {
	root = filepath.Clean(root)
	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		name := strings.ToLower(d.Name())
		if !strings.HasSuffix(name, ".html") {
			return nil
		}
		if name == "index.html" && filepath.Dir(path) == root {
			return nil
		}
		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}
