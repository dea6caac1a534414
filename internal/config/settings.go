// Copyright (c) 2025, Kamaran Layne <kamaran@layne.dev>
// See LICENSE for licensing information

// Package config loads and saves the two files SnowFlake keeps on disk: the
// JSON settings file that remembers the selected shape between runs, and the
// optional YAML tuning file that controls the animation and the outbound
// services (news banner, feedback mail).
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/kamaranl/snowflake/internal/snow"
)

// AppDir is the directory name used under the user's config directory.
const AppDir = "SnowFlake"

// Settings holds what the tray menu changes at runtime.
type Settings struct {
	ShapeIndex int `json:"shapeIndex"`
}

// Profile resolves the stored shape index, falling back to the first profile.
func (s Settings) Profile() snow.ShapeProfile {
	p, _ := snow.Lookup(s.ShapeIndex)
	return p
}

// SettingsPath returns <UserConfigDir>/SnowFlake/settings.json.
func SettingsPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to locate config directory: %w", err)
	}
	return filepath.Join(dir, AppDir, "settings.json"), nil
}

// LoadSettings reads the settings file at path. A missing file yields the
// defaults without error. An index that names no profile is reset to 0.
func LoadSettings(path string) (Settings, error) {
	var s Settings

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return s, fmt.Errorf("failed to read settings %s: %w", path, err)
	}
	if err := json.Unmarshal(data, &s); err != nil {
		return Settings{}, fmt.Errorf("failed to parse settings %s: %w", path, err)
	}
	if _, ok := snow.Lookup(s.ShapeIndex); !ok {
		s.ShapeIndex = 0
	}
	return s, nil
}

// SaveSettings writes s to path through a temporary file so a crash never
// leaves a truncated file behind.
func SaveSettings(path string, s Settings) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create %s: %w", filepath.Dir(path), err)
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode settings: %w", err)
	}

	tmp := path + ".TMP"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}
	return nil
}
