package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// Config captures everything receipt needs to reach the printer server.
type Config struct {
	APIURL       string
	APIPrefix    string
	MinBusy      time.Duration
	LogPath      string
	HistoryLimit int
	Timeout      time.Duration // zero means no client-side timeout
}

const (
	defaultConfigPath   = "~/.config/receipt/config.toml"
	defaultLogPath      = "~/.local/state/receipt/receipt.log"
	defaultAPIURL       = "http://localhost:8080"
	defaultAPIPrefix    = "/api"
	defaultMinBusy      = 500 * time.Millisecond
	defaultHistoryLimit = 50
)

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		APIURL:       defaultAPIURL,
		APIPrefix:    defaultAPIPrefix,
		MinBusy:      defaultMinBusy,
		LogPath:      mustExpand(defaultLogPath),
		HistoryLimit: defaultHistoryLimit,
	}
}

// Load locates and parses the receipt config, falling back to defaults when missing.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Default()

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		APIURL         string  `toml:"api_url"`
		APIPrefix      *string `toml:"api_prefix"`
		MinBusyMS      *int    `toml:"min_busy_ms"`
		LogPath        string  `toml:"log_path"`
		HistoryLimit   int     `toml:"history_limit"`
		TimeoutSeconds int     `toml:"timeout_seconds"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if v := strings.TrimSpace(raw.APIURL); v != "" {
		cfg.APIURL = v
	}
	// An explicit empty prefix talks to the server root, so only a missing key
	// keeps the default.
	if raw.APIPrefix != nil {
		cfg.APIPrefix = normalizePrefix(*raw.APIPrefix)
	}
	if raw.MinBusyMS != nil && *raw.MinBusyMS >= 0 {
		cfg.MinBusy = time.Duration(*raw.MinBusyMS) * time.Millisecond
	}
	if v := strings.TrimSpace(raw.LogPath); v != "" {
		cfg.LogPath = mustExpand(v)
	}
	if raw.HistoryLimit > 0 {
		cfg.HistoryLimit = raw.HistoryLimit
	}
	if raw.TimeoutSeconds > 0 {
		cfg.Timeout = time.Duration(raw.TimeoutSeconds) * time.Second
	}

	return cfg, nil
}

func normalizePrefix(prefix string) string {
	trimmed := strings.Trim(strings.TrimSpace(prefix), "/")
	if trimmed == "" {
		return ""
	}
	return "/" + trimmed
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return ExpandPath(defaultConfigPath)
	}
	return ExpandPath(path)
}

func mustExpand(path string) string {
	expanded, err := ExpandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

// ExpandPath resolves a leading "~" or "~/" against the user's home directory
// and returns the absolute path. "~user" forms are left as relative names.
func ExpandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if trimmed == "~" || strings.HasPrefix(trimmed, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
