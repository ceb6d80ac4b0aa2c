package pages

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

//go:embed page-template.md
var defaultTemplate string

// New creates a page file at <pagesDir>/<name>.md in the given project
// directory and returns its path. Returns an error if the file already
// exists or the name is not usable as a file name.
func New(dir, pagesDir, name string) (string, error) {
	if name == "" || strings.ContainsAny(name, `/\`) || strings.HasPrefix(name, ".") {
		return "", fmt.Errorf("pages: invalid page name %q", name)
	}

	absDir := filepath.Join(dir, pagesDir)
	if err := os.MkdirAll(absDir, 0o755); err != nil {
		return "", fmt.Errorf("pages: create %s: %w", absDir, err)
	}

	path := filepath.Join(absDir, name+".md")
	if _, err := os.Stat(path); err == nil {
		return "", fmt.Errorf("pages: page already exists: %s", path)
	}

	if err := os.WriteFile(path, []byte(renderTemplate(defaultTemplate, name)), 0o644); err != nil {
		return "", fmt.Errorf("pages: write %s: %w", path, err)
	}
	return path, nil
}

// renderTemplate replaces placeholders in the page template.
func renderTemplate(tmpl, name string) string {
	result := strings.ReplaceAll(tmpl, "[KEY]", name)
	result = strings.ReplaceAll(result, "[TITLE]", toTitle(name))
	result = strings.ReplaceAll(result, "[DATE]", time.Now().Format("2006-01-02"))
	return result
}
