// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config loads quickllm configuration from ordered TOML sources.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/jeranaias/quickllm/internal/shortcuts"
	"github.com/jeranaias/quickllm/internal/util"
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config holds the application settings merged across all sources.
type Config struct {
	// ClipboardMarker is the prefix that makes clipboard content act as a
	// full input to the pipeline.
	ClipboardMarker string `toml:"clipboard_marker"`

	Model ModelConfig `toml:"model"`
}

// ModelConfig selects the inference endpoint and models.
type ModelConfig struct {
	// Endpoint is the chat-completions URL of an OpenAI-style server.
	Endpoint string `toml:"endpoint"`

	// Model is the default model; FastModel and DeepModel serve the
	// @fast/@deep speed hints.
	Model     string `toml:"model"`
	FastModel string `toml:"fast_model"`
	DeepModel string `toml:"deep_model"`

	// APIKeyEnv names the environment variable holding the API key, so keys
	// never live in config files.
	APIKeyEnv string `toml:"api_key_env"`

	TimeoutSecs int `toml:"timeout_secs"`
}

// sourceFile is the on-disk shape of one configuration source. Shortcuts are
// two-element [trigger, expansion] pairs; @-triggered pairs are config tags.
type sourceFile struct {
	ClipboardMarker string      `toml:"clipboard_marker"`
	Model           ModelConfig `toml:"model"`
	Shortcuts       [][]string  `toml:"shortcuts"`
}

// Source is one named TOML source in precedence order.
type Source struct {
	Name string
	TOML string
}

// =============================================================================
// DEFAULTS
// =============================================================================

// defaultTOML is the bundled lowest-precedence source. User files override
// any of it entry by entry.
const defaultTOML = `
clipboard_marker = "@@"

shortcuts = [
    ["/fix", "Fix any spelling or grammar mistakes. Make no other changes. Reply only with the corrected text. The input is: "],
    ["/tr", "Translate the following text to English. Reply only with the translation. The input is: "],
    ["/sum", "Summarize the following in three bullet points: "],
]

[model]
endpoint = "http://localhost:11434/v1/chat/completions"
model = "llama3.1:8b"
fast_model = "llama3.2:3b"
deep_model = "llama3.1:70b"
timeout_secs = 120
`

// starterTOML is written to the user directory on first run so there is an
// obvious file to edit.
const starterTOML = `# quickllm user configuration.
# Entries here override the bundled defaults; later files in this directory
# override earlier ones (sorted by name).

shortcuts = [
    # ["/mail", "Rewrite the following as a polite email: "],
    # ["@IndexFiles", "~/notes"],
]
`

// Dir returns the user configuration directory, ~/.quickllm.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(home, ".quickllm"), nil
}

// DefaultSources returns the bundled defaults followed by every *.toml file
// in dir, sorted by name so precedence is stable across runs.
func DefaultSources(dir string) ([]Source, error) {
	sources := []Source{{Name: "defaults", TOML: defaultTOML}}

	names, err := filepath.Glob(filepath.Join(dir, "*.toml"))
	if err != nil {
		return nil, err
	}
	sort.Strings(names)

	for _, path := range names {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
		sources = append(sources, Source{Name: path, TOML: string(raw)})
	}
	return sources, nil
}

// EnsureStarter writes the starter config file if the user directory has no
// TOML sources yet.
func EnsureStarter(dir string) error {
	names, err := filepath.Glob(filepath.Join(dir, "*.toml"))
	if err != nil {
		return err
	}
	if len(names) > 0 {
		return nil
	}
	return util.AtomicWriteFile(filepath.Join(dir, "config.toml"), []byte(starterTOML), 0o644)
}

// =============================================================================
// LOADING
// =============================================================================

// Load decodes sources in precedence order. Settings merge last-wins field by
// field; shortcut lists are returned per source for the shortcut table's own
// merge. Malformed TOML or a malformed shortcut pair is a configuration
// error, fatal at startup.
func Load(sources []Source) (*Config, []shortcuts.Source, error) {
	var cfg Config
	var shortcutSources []shortcuts.Source

	for _, src := range sources {
		var file sourceFile
		if _, err := toml.Decode(src.TOML, &file); err != nil {
			return nil, nil, &shortcuts.ConfigurationError{
				Source: src.Name,
				Detail: fmt.Sprintf("malformed TOML: %v", err),
			}
		}

		cfg.merge(&file)

		if len(file.Shortcuts) == 0 {
			continue
		}
		ss := shortcuts.Source{Name: src.Name}
		for _, pair := range file.Shortcuts {
			if len(pair) != 2 {
				return nil, nil, &shortcuts.ConfigurationError{
					Source: src.Name,
					Detail: fmt.Sprintf("shortcut entry %v must be a [trigger, expansion] pair", pair),
				}
			}
			ss.Entries = append(ss.Entries, shortcuts.Entry{Trigger: pair[0], Expansion: pair[1]})
		}
		shortcutSources = append(shortcutSources, ss)
	}

	if err := cfg.validate(); err != nil {
		return nil, nil, err
	}
	return &cfg, shortcutSources, nil
}

// merge overlays non-zero fields from file onto cfg.
func (c *Config) merge(file *sourceFile) {
	if file.ClipboardMarker != "" {
		c.ClipboardMarker = file.ClipboardMarker
	}
	if file.Model.Endpoint != "" {
		c.Model.Endpoint = file.Model.Endpoint
	}
	if file.Model.Model != "" {
		c.Model.Model = file.Model.Model
	}
	if file.Model.FastModel != "" {
		c.Model.FastModel = file.Model.FastModel
	}
	if file.Model.DeepModel != "" {
		c.Model.DeepModel = file.Model.DeepModel
	}
	if file.Model.APIKeyEnv != "" {
		c.Model.APIKeyEnv = file.Model.APIKeyEnv
	}
	if file.Model.TimeoutSecs != 0 {
		c.Model.TimeoutSecs = file.Model.TimeoutSecs
	}
}

// validate rejects settings the pipeline cannot run with.
func (c *Config) validate() error {
	if c.ClipboardMarker == "" {
		return &shortcuts.ConfigurationError{Source: "merged", Detail: "clipboard_marker is empty"}
	}
	if strings.TrimSpace(c.Model.Endpoint) == "" {
		return &shortcuts.ConfigurationError{Source: "merged", Detail: "model.endpoint is empty"}
	}
	if c.Model.Model == "" {
		return &shortcuts.ConfigurationError{Source: "merged", Detail: "model.model is empty"}
	}
	if c.Model.TimeoutSecs <= 0 {
		return &shortcuts.ConfigurationError{Source: "merged", Detail: "model.timeout_secs must be positive"}
	}
	return nil
}
