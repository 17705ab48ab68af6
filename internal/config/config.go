// Package config loads and saves tip preferences. The format follows the
// file extension: .json, .toml, .yaml or .yml.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/piwi3910/tipview/internal/model"
)

// Format is a preferences file encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
)

// DefaultConfigDir returns the default directory for tip configuration.
// On all platforms this is ~/.tipview/
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".tipview")
}

// DefaultConfigPath returns the default path for the preferences file.
func DefaultConfigPath() string {
	return filepath.Join(DefaultConfigDir(), "preferences.json")
}

// FormatFor picks the encoding from the extension of path.
func FormatFor(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	}
	return "", fmt.Errorf("unsupported preferences file %q: use .json, .toml, .yaml or .yml", path)
}

// LoadPreferences reads preferences from path on top of the defaults, so
// fields the file leaves out keep their default values. A missing file
// yields DefaultPreferences with no error. The result is validated.
func LoadPreferences(path string) (model.Preferences, error) {
	format, err := FormatFor(path)
	if err != nil {
		return model.Preferences{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return model.DefaultPreferences(), nil
		}
		return model.Preferences{}, fmt.Errorf("read preferences: %w", err)
	}

	prefs, err := Decode(data, format)
	if err != nil {
		return model.Preferences{}, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := prefs.Validate(); err != nil {
		return model.Preferences{}, fmt.Errorf("invalid preferences in %s: %w", path, err)
	}
	return prefs, nil
}

// Decode parses data over DefaultPreferences.
func Decode(data []byte, format Format) (model.Preferences, error) {
	prefs := model.DefaultPreferences()
	var err error
	switch format {
	case FormatJSON:
		err = json.Unmarshal(data, &prefs)
	case FormatTOML:
		err = toml.Unmarshal(data, &prefs)
	case FormatYAML:
		err = yaml.Unmarshal(data, &prefs)
	default:
		err = fmt.Errorf("unknown format %q", format)
	}
	return prefs, err
}

// Encode renders prefs in the given format.
func Encode(prefs model.Preferences, format Format) ([]byte, error) {
	switch format {
	case FormatJSON:
		return json.MarshalIndent(prefs, "", "  ")
	case FormatTOML:
		return toml.Marshal(prefs)
	case FormatYAML:
		return yaml.Marshal(prefs)
	}
	return nil, fmt.Errorf("unknown format %q", format)
}

// SavePreferences writes prefs to path in the format its extension names.
// It creates any missing parent directories automatically.
func SavePreferences(path string, prefs model.Preferences) error {
	format, err := FormatFor(path)
	if err != nil {
		return err
	}
	data, err := Encode(prefs, format)
	if err != nil {
		return fmt.Errorf("encode preferences: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
