package main

import (
	"bytes"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

// findNoop returns a no-op command that accepts any args and exits 0.
// Returns ("", false) if no such command is available (e.g. Windows).
func findNoop() (string, bool) {
	path, err := exec.LookPath("true")
	if err != nil {
		return "", false
	}
	return path, true
}

// chdir switches to dir for the duration of the test.
func chdir(t *testing.T, dir string) {
	t.Helper()
	orig, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(orig) })
}

// writeProject creates files under a temp dir and returns the dir.
func writeProject(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		path := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

// execute runs the root command with args and returns its output.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := rootCmd()
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

const sampleConfig = `
[project]
name = "Sample"

[tabs]
prerender_siblings = 0

[[tab]]
key = "notes"
title = "Notes"
text = "inline notes"
`

func TestRootCmdStructure(t *testing.T) {
	root := rootCmd()

	if root.Use != "tabkit" {
		t.Errorf("root Use = %q, want %q", root.Use, "tabkit")
	}
	if root.PersistentFlags().Lookup("config") == nil {
		t.Fatal("missing --config persistent flag")
	}

	subs := map[string]bool{}
	for _, sub := range root.Commands() {
		subs[sub.Name()] = true
	}
	for _, want := range []string{"view", "check", "history", "init", "page"} {
		if !subs[want] {
			t.Errorf("missing subcommand %q", want)
		}
	}
}

func TestViewCmdsHaveOverrideFlags(t *testing.T) {
	root := rootCmd()

	for _, name := range []string{"view", "check"} {
		t.Run(name, func(t *testing.T) {
			for _, sub := range root.Commands() {
				if sub.Name() != name {
					continue
				}
				for _, flag := range []string{"page", "initial", "prerender", "destroy-inactive", "position"} {
					if sub.Flags().Lookup(flag) == nil {
						t.Errorf("%s: missing --%s flag", name, flag)
					}
				}
				return
			}
			t.Fatalf("subcommand %q not found", name)
		})
	}
}

func TestPageCmdSubcommands(t *testing.T) {
	root := rootCmd()

	for _, sub := range root.Commands() {
		if sub.Name() != "page" {
			continue
		}
		pageSubs := map[string]bool{}
		for _, child := range sub.Commands() {
			pageSubs[child.Name()] = true
		}
		for _, want := range []string{"list", "new"} {
			if !pageSubs[want] {
				t.Errorf("page: missing subcommand %q", want)
			}
		}
		return
	}
	t.Fatal("missing page subcommand")
}

func TestInitCmdExecution(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)

	out, err := execute(t, "init")
	if err != nil {
		t.Fatalf("init: %v", err)
	}
	for _, name := range []string{"tabkit.toml", "pages/welcome.md", ".gitignore"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Errorf("expected %s to exist: %v", name, err)
		}
	}
	if !strings.Contains(out, "Created") {
		t.Errorf("output should list created files:\n%s", out)
	}
}

func TestInitCmdIdempotent(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)

	if _, err := execute(t, "init"); err != nil {
		t.Fatalf("first init: %v", err)
	}
	out, err := execute(t, "init")
	if err != nil {
		t.Fatalf("second init: %v", err)
	}
	if !strings.Contains(out, "All files already exist") {
		t.Errorf("second init output = %q", out)
	}
}

func TestInitThenCheck(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)

	if _, err := execute(t, "init"); err != nil {
		t.Fatalf("init: %v", err)
	}
	out, err := execute(t, "check")
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	for _, want := range []string{"welcome", "Welcome", "page pages/welcome.md", "mounted"} {
		if !strings.Contains(out, want) {
			t.Errorf("check output missing %q:\n%s", want, out)
		}
	}
}

func TestCheckCmdExecution(t *testing.T) {
	dir := writeProject(t, map[string]string{
		"tabkit.toml":       sampleConfig,
		"pages/overview.md": "---\ntitle: Overview\norder: 1\n---\nbody\n",
	})
	cfgPath := filepath.Join(dir, "tabkit.toml")

	out, err := execute(t, "check", "--config", cfgPath, "--initial", "overview")
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	for _, want := range []string{"Tabs (Sample)", "notes", "text", "▸  1  overview", "page pages/overview.md", "uncontrolled"} {
		if !strings.Contains(out, want) {
			t.Errorf("check output missing %q:\n%s", want, out)
		}
	}
}

func TestCheckCmd_InvalidOverride(t *testing.T) {
	dir := writeProject(t, map[string]string{"tabkit.toml": sampleConfig})
	_, err := execute(t, "check", "--config", filepath.Join(dir, "tabkit.toml"), "--position", "middle")
	if err == nil || !strings.Contains(err.Error(), "tab_bar.position") {
		t.Errorf("expected tab_bar.position error, got %v", err)
	}
}

func TestViewCmd_NoConfig(t *testing.T) {
	chdir(t, t.TempDir())
	if _, err := execute(t, "view"); err == nil {
		t.Error("view without tabkit.toml should fail")
	}
}

func TestHistoryCmdNoSessions(t *testing.T) {
	dir := writeProject(t, map[string]string{"tabkit.toml": sampleConfig})
	out, err := execute(t, "history", "--config", filepath.Join(dir, "tabkit.toml"))
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if !strings.Contains(out, "No sessions recorded") {
		t.Errorf("history output = %q", out)
	}
}

func TestPageListCmdExecution(t *testing.T) {
	dir := writeProject(t, map[string]string{
		"tabkit.toml":          sampleConfig,
		"pages/setup-guide.md": "# Setup\n",
	})
	out, err := execute(t, "page", "list", "--config", filepath.Join(dir, "tabkit.toml"))
	if err != nil {
		t.Fatalf("page list: %v", err)
	}
	for _, want := range []string{"Pages", "setup-guide", "Setup Guide", "pages/setup-guide.md"} {
		if !strings.Contains(out, want) {
			t.Errorf("page list output missing %q:\n%s", want, out)
		}
	}
}

func TestPageListCmdWithoutConfig(t *testing.T) {
	chdir(t, t.TempDir())
	out, err := execute(t, "page", "list")
	if err != nil {
		t.Fatalf("page list: %v", err)
	}
	if !strings.Contains(out, "No pages found in pages/") {
		t.Errorf("page list output = %q", out)
	}
}

func TestPageNewCmdExecution(t *testing.T) {
	t.Setenv("EDITOR", "")
	dir := writeProject(t, map[string]string{"tabkit.toml": sampleConfig})
	cfgPath := filepath.Join(dir, "tabkit.toml")

	out, err := execute(t, "page", "new", "release-notes", "--config", cfgPath)
	if err != nil {
		t.Fatalf("page new: %v", err)
	}
	path := filepath.Join(dir, "pages", "release-notes.md")
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected %s: %v", path, err)
	}
	if !strings.Contains(out, "Created") {
		t.Errorf("output = %q", out)
	}

	if _, err := execute(t, "page", "new", "release-notes", "--config", cfgPath); err == nil {
		t.Error("creating an existing page should fail")
	}
}

func TestPageNewCmdWithEditor(t *testing.T) {
	noop, ok := findNoop()
	if !ok {
		t.Skip("no no-op command available")
	}
	t.Setenv("EDITOR", noop)
	dir := writeProject(t, map[string]string{"tabkit.toml": sampleConfig})

	if _, err := execute(t, "page", "new", "faq", "--config", filepath.Join(dir, "tabkit.toml")); err != nil {
		t.Fatalf("page new with editor: %v", err)
	}
}

func TestPageNewCmd_RequiresName(t *testing.T) {
	dir := writeProject(t, map[string]string{"tabkit.toml": sampleConfig})
	if _, err := execute(t, "page", "new", "--config", filepath.Join(dir, "tabkit.toml")); err == nil {
		t.Error("page new without a name should fail")
	}
}
