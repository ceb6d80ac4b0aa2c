// Package pages discovers Markdown page files and exposes them as tabs.
//
// A page is a .md file in the pages directory. It may start with a YAML
// front matter block:
//
//	---
//	key: overview
//	title: Overview
//	order: 1
//	---
//
// Pages without a key use their file name, pages without a title use the
// file name in Title Case. Pages sort by order, then by file name.
package pages

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"gopkg.in/yaml.v3"

	"github.com/LISSConsulting/LISSTech.TabKit/internal/tabs"
)

const frontMatterDelim = "---"

// Page is a discovered page file.
type Page struct {
	Key   string
	Title string
	Order int
	Path  string // relative path from project root (e.g. "pages/overview.md")
}

// FrontMatter is the YAML header of a page file.
type FrontMatter struct {
	Key   string `yaml:"key"`
	Title string `yaml:"title"`
	Order int    `yaml:"order"`
}

// Tab returns the tab descriptor for the page.
func (p Page) Tab() tabs.Tab {
	return tabs.Tab{Key: p.Key, Title: p.Title}
}

// List discovers pages in pagesDir, relative to the project root dir.
// A missing directory yields no pages and no error.
func List(dir, pagesDir string) ([]Page, error) {
	absDir := filepath.Join(dir, pagesDir)
	entries, err := os.ReadDir(absDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("pages: read %s: %w", absDir, err)
	}

	var pages []Page
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || strings.HasPrefix(name, ".") || !strings.HasSuffix(name, ".md") {
			continue
		}

		data, err := os.ReadFile(filepath.Join(absDir, name))
		if err != nil {
			return nil, fmt.Errorf("pages: read %s: %w", name, err)
		}
		fm, _, err := Split(data)
		if err != nil {
			return nil, fmt.Errorf("pages: %s: %w", name, err)
		}

		stem := strings.TrimSuffix(name, ".md")
		p := Page{
			Key:   fm.Key,
			Title: fm.Title,
			Order: fm.Order,
			Path:  filepath.Join(pagesDir, name),
		}
		if p.Key == "" {
			p.Key = stem
		}
		if p.Title == "" {
			p.Title = toTitle(stem)
		}
		pages = append(pages, p)
	}

	sort.SliceStable(pages, func(i, j int) bool {
		if pages[i].Order != pages[j].Order {
			return pages[i].Order < pages[j].Order
		}
		return pages[i].Path < pages[j].Path
	})
	return pages, nil
}

// Split separates the front matter from the page body. Data without a
// leading "---" line has no front matter.
func Split(data []byte) (FrontMatter, []byte, error) {
	var fm FrontMatter

	data = bytes.TrimPrefix(data, []byte("\ufeff"))
	first, rest, ok := cutLine(data)
	if !ok || strings.TrimSpace(string(first)) != frontMatterDelim {
		return fm, data, nil
	}

	var header []byte
	for len(rest) > 0 {
		var line []byte
		line, rest, _ = cutLine(rest)
		if strings.TrimSpace(string(line)) == frontMatterDelim {
			if err := yaml.Unmarshal(header, &fm); err != nil {
				return FrontMatter{}, nil, fmt.Errorf("parse front matter: %w", err)
			}
			return fm, bytes.TrimLeft(rest, "\r\n"), nil
		}
		header = append(header, line...)
		header = append(header, '\n')
	}
	return FrontMatter{}, nil, fmt.Errorf("unterminated front matter")
}

// cutLine splits data at the first newline. ok is false when data is empty.
func cutLine(data []byte) (line, rest []byte, ok bool) {
	if len(data) == 0 {
		return nil, nil, false
	}
	line, rest, _ = bytes.Cut(data, []byte("\n"))
	return bytes.TrimSuffix(line, []byte("\r")), rest, true
}

// Body reads the page file at path and returns its content without the
// front matter.
func Body(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("pages: read %s: %w", path, err)
	}
	_, body, err := Split(data)
	if err != nil {
		return "", fmt.Errorf("pages: %s: %w", path, err)
	}
	return string(body), nil
}

// File returns lazy content that reads path, relative to root, when the tab
// is first rendered. Read failures render as an inline message.
func File(root, path string) tabs.Lazy[string] {
	abs := path
	if !filepath.IsAbs(abs) {
		abs = filepath.Join(root, path)
	}
	return func(tab tabs.Tab, index int) string {
		body, err := Body(abs)
		if err != nil {
			return fmt.Sprintf("⚠️  cannot load %q: %v", tab.Title, err)
		}
		return body
	}
}

// Items returns one keyed content item per page, loading each lazily.
func Items(root string, pages []Page) []tabs.Item[string] {
	items := make([]tabs.Item[string], len(pages))
	for i, p := range pages {
		items[i] = tabs.Item[string]{Key: p.Key, Content: File(root, p.Path)}
	}
	return items
}

// toTitle converts a kebab- or snake-case name to Title Case.
// e.g. "getting-started" → "Getting Started"
func toTitle(name string) string {
	parts := strings.FieldsFunc(name, func(r rune) bool { return r == '-' || r == '_' })
	for i, p := range parts {
		r, size := utf8.DecodeRuneInString(p)
		parts[i] = string(unicode.ToUpper(r)) + p[size:]
	}
	return strings.Join(parts, " ")
}
