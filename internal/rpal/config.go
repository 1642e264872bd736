package rpal

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config holds the interpreter's optional, file-driven defaults. It exists
// so every spec-mandated default still holds when no config file is
// present, grounded on the teacher's FileInfo/toml.Unmarshal idiom in
// internal/tqw/tqw.go.
type Config struct {
	Output struct {
		TreeIndent string `toml:"tree_indent"`
		Cache      bool   `toml:"cache"`
	} `toml:"output"`
	Defaults struct {
		PrintSource bool `toml:"print_source"`
	} `toml:"defaults"`
}

// DefaultConfig returns the configuration spec.md's own behavior implies
// when no .rpalrc.toml is present: a "." tree-indent prefix, the
// control-structure cache enabled, and -l defaulting off.
func DefaultConfig() Config {
	var cfg Config
	cfg.Output.TreeIndent = "."
	cfg.Output.Cache = true
	cfg.Defaults.PrintSource = false
	return cfg
}

// LoadConfig looks for .rpalrc.toml first in the current working directory
// and then in the user's home directory, returning DefaultConfig()
// unmodified if neither exists. A malformed file that does exist is a
// fatal KindIO error rather than a silently ignored one.
func LoadConfig() (Config, error) {
	cfg := DefaultConfig()

	for _, dir := range configSearchDirs() {
		path := filepath.Join(dir, ".rpalrc.toml")
		data, err := os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return cfg, &Diagnostic{Kind: KindIO, Message: "reading " + path + ": " + err.Error()}
		}
		if _, err := toml.Decode(string(data), &cfg); err != nil {
			return cfg, &Diagnostic{Kind: KindIO, Message: "parsing " + path + ": " + err.Error()}
		}
		return cfg, nil
	}

	return cfg, nil
}

func configSearchDirs() []string {
	dirs := []string{"."}
	if home, err := os.UserHomeDir(); err == nil {
		dirs = append(dirs, home)
	}
	return dirs
}
