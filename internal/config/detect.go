package config

import (
	"bufio"
	"encoding/json"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// DetectProjectName tries to infer the project name from common project
// manifest files in dir. It checks go.mod, package.json and Cargo.toml in
// that order, returning the first non-empty name found, or "" if none
// provides one. Errors from manifest files are silently ignored.
func DetectProjectName(dir string) string {
	if name := detectFromGoMod(dir); name != "" {
		return name
	}
	if name := detectFromPackageJSON(dir); name != "" {
		return name
	}
	return detectFromCargo(dir)
}

// detectFromGoMod returns the last element of the module path.
func detectFromGoMod(dir string) string {
	f, err := os.Open(filepath.Join(dir, "go.mod"))
	if err != nil {
		return ""
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if mod, ok := strings.CutPrefix(line, "module "); ok {
			mod = strings.Trim(strings.TrimSpace(mod), `"`)
			if mod == "" {
				return ""
			}
			return path.Base(mod)
		}
	}
	return ""
}

type packageJSON struct {
	Name string `json:"name"`
}

func detectFromPackageJSON(dir string) string {
	data, err := os.ReadFile(filepath.Join(dir, "package.json"))
	if err != nil {
		return ""
	}
	var p packageJSON
	if err := json.Unmarshal(data, &p); err != nil {
		return ""
	}
	return p.Name
}

type cargoTOML struct {
	Package struct {
		Name string `toml:"name"`
	} `toml:"package"`
}

func detectFromCargo(dir string) string {
	var c cargoTOML
	if _, err := toml.DecodeFile(filepath.Join(dir, "Cargo.toml"), &c); err != nil {
		return ""
	}
	return c.Package.Name
}
