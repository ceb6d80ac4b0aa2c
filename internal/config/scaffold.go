package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ScaffoldProject creates the tabkit project structure in the given
// directory: tabkit.toml, the pages/ directory with a welcome page, and a
// .gitignore entry for session logs. Files that already exist are left
// untouched. Returns the list of created paths.
func ScaffoldProject(dir string) ([]string, error) {
	var created []string

	// tabkit.toml
	tomlPath := filepath.Join(dir, FileName)
	if _, err := os.Stat(tomlPath); os.IsNotExist(err) {
		if _, initErr := InitFile(dir); initErr != nil {
			return created, initErr
		}
		created = append(created, tomlPath)
	}

	// pages/ directory
	pagesDir := filepath.Join(dir, "pages")
	if _, err := os.Stat(pagesDir); os.IsNotExist(err) {
		if mkErr := os.MkdirAll(pagesDir, 0755); mkErr != nil {
			return created, fmt.Errorf("scaffold: create %s: %w", pagesDir, mkErr)
		}
		created = append(created, pagesDir)
	}

	// pages/welcome.md
	welcomePath := filepath.Join(pagesDir, "welcome.md")
	if _, err := os.Stat(welcomePath); os.IsNotExist(err) {
		if writeErr := os.WriteFile(welcomePath, []byte(welcomePageTemplate), 0644); writeErr != nil {
			return created, fmt.Errorf("scaffold: write %s: %w", welcomePath, writeErr)
		}
		created = append(created, welcomePath)
	}

	// .gitignore: keep session logs out of version control
	const gitignoreEntry = ".tabkit/"
	gitignorePath := filepath.Join(dir, ".gitignore")
	existing, err := os.ReadFile(gitignorePath)
	if os.IsNotExist(err) {
		if writeErr := os.WriteFile(gitignorePath, []byte(gitignoreEntry+"\n"), 0644); writeErr != nil {
			return created, fmt.Errorf("scaffold: write %s: %w", gitignorePath, writeErr)
		}
		created = append(created, gitignorePath)
	} else if err != nil {
		return created, fmt.Errorf("scaffold: read %s: %w", gitignorePath, err)
	} else if !strings.Contains(string(existing), gitignoreEntry) {
		content := string(existing)
		if len(content) > 0 && content[len(content)-1] != '\n' {
			content += "\n"
		}
		content += gitignoreEntry + "\n"
		if writeErr := os.WriteFile(gitignorePath, []byte(content), 0644); writeErr != nil {
			return created, fmt.Errorf("scaffold: write %s: %w", gitignorePath, writeErr)
		}
		created = append(created, gitignorePath)
	}

	return created, nil
}

const welcomePageTemplate = `---
key: welcome
title: Welcome
order: 0
---
# Welcome

Every Markdown file in pages/ becomes a tab. Front matter sets the tab
key, title and order.

Keys: [ / ] or h / l switch tabs, 1-9 jump, y copies this pane, q quits.
`
