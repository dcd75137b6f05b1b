// Package prefs handles receipt user preferences persistence.
// Preferences are stored in ~/.config/receipt/prefs.toml.
package prefs

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/five82/receipt/internal/config"
)

// Prefs holds the settings the UI remembers between runs.
type Prefs struct {
	Theme    string `toml:"theme"`
	Username string `toml:"username"`
	Algo     string `toml:"algo"`
}

const (
	defaultPrefsPath = "~/.config/receipt/prefs.toml"
	defaultTheme     = "Nightfox"
	defaultAlgo      = "floyd-steinberg"
)

// Defaults returns the preferences used when nothing has been saved yet.
func Defaults() Prefs {
	return Prefs{Theme: defaultTheme, Algo: defaultAlgo}
}

// DefaultPath returns the default preferences file path.
func DefaultPath() string {
	return defaultPrefsPath
}

// Load reads preferences from the given path. Any problem reading or parsing
// the file yields defaults; preferences are never worth failing startup over.
func Load(path string) Prefs {
	p := Defaults()

	resolved, err := resolvePath(path)
	if err != nil {
		return p
	}
	bytes, err := os.ReadFile(resolved)
	if err != nil {
		return p
	}
	if err := toml.Unmarshal(bytes, &p); err != nil {
		return Defaults()
	}
	return p.normalized()
}

// Save writes preferences to the given path, creating directories as needed.
func Save(path string, p Prefs) error {
	resolved, err := resolvePath(path)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(resolved), 0o755); err != nil {
		return fmt.Errorf("create prefs dir: %w", err)
	}

	bytes, err := toml.Marshal(p.normalized())
	if err != nil {
		return fmt.Errorf("marshal prefs: %w", err)
	}

	if err := os.WriteFile(resolved, bytes, 0o644); err != nil {
		return fmt.Errorf("write prefs: %w", err)
	}
	return nil
}

func (p Prefs) normalized() Prefs {
	p.Theme = strings.TrimSpace(p.Theme)
	if p.Theme == "" {
		p.Theme = defaultTheme
	}
	p.Username = strings.TrimSpace(p.Username)
	p.Algo = strings.TrimSpace(p.Algo)
	if p.Algo == "" {
		p.Algo = defaultAlgo
	}
	return p
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return config.ExpandPath(defaultPrefsPath)
	}
	return config.ExpandPath(path)
}
