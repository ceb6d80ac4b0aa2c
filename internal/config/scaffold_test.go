package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestScaffoldProject(t *testing.T) {
	t.Run("creates all files in empty directory", func(t *testing.T) {
		dir := t.TempDir()

		created, err := ScaffoldProject(dir)
		if err != nil {
			t.Fatal(err)
		}

		expected := []string{
			filepath.Join(dir, FileName),
			filepath.Join(dir, "pages"),
			filepath.Join(dir, "pages", "welcome.md"),
			filepath.Join(dir, ".gitignore"),
		}
		if len(created) != len(expected) {
			t.Fatalf("created %d files, want %d: %v", len(created), len(expected), created)
		}
		for i, want := range expected {
			if created[i] != want {
				t.Errorf("created[%d] = %q, want %q", i, created[i], want)
			}
		}

		info, err := os.Stat(filepath.Join(dir, "pages"))
		if err != nil {
			t.Fatalf("pages dir: %v", err)
		}
		if !info.IsDir() {
			t.Error("pages should be a directory")
		}

		content, err := os.ReadFile(filepath.Join(dir, ".gitignore"))
		if err != nil {
			t.Fatalf(".gitignore: %v", err)
		}
		if !strings.Contains(string(content), ".tabkit/") {
			t.Error(".gitignore should contain .tabkit/")
		}

		if _, err := Load(filepath.Join(dir, FileName)); err != nil {
			t.Errorf("scaffolded config does not load: %v", err)
		}
	})

	t.Run("skips existing files", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, filepath.Join(dir, FileName), "existing")

		created, err := ScaffoldProject(dir)
		if err != nil {
			t.Fatal(err)
		}
		for _, p := range created {
			if p == filepath.Join(dir, FileName) {
				t.Error("existing tabkit.toml reported as created")
			}
		}
		content, _ := os.ReadFile(filepath.Join(dir, FileName))
		if string(content) != "existing" {
			t.Error("tabkit.toml was overwritten")
		}
	})

	t.Run("appends to existing .gitignore", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, filepath.Join(dir, ".gitignore"), "bin/")

		if _, err := ScaffoldProject(dir); err != nil {
			t.Fatal(err)
		}
		content, _ := os.ReadFile(filepath.Join(dir, ".gitignore"))
		if string(content) != "bin/\n.tabkit/\n" {
			t.Errorf(".gitignore = %q", content)
		}
	})

	t.Run("all files exist returns empty list", func(t *testing.T) {
		dir := t.TempDir()
		if _, err := ScaffoldProject(dir); err != nil {
			t.Fatal(err)
		}
		created, err := ScaffoldProject(dir)
		if err != nil {
			t.Fatal(err)
		}
		if len(created) != 0 {
			t.Errorf("expected empty list, got %v", created)
		}
	})
}
