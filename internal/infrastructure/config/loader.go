package config

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// GameConfig holds all loaded configurations
type GameConfig struct {
	Settings *Settings
	Sprites  *SpritesConfig
}

// Loader loads game configuration files using fs.FS interface
type Loader struct {
	fsys     fs.FS
	basePath string
}

// NewLoader creates a new config loader from filesystem path
func NewLoader(basePath string) *Loader {
	return &Loader{
		fsys:     os.DirFS(basePath),
		basePath: basePath,
	}
}

// NewFSLoader creates a new config loader from fs.FS
func NewFSLoader(fsys fs.FS, basePath string) *Loader {
	return &Loader{
		fsys:     fsys,
		basePath: basePath,
	}
}

// LoadSettings loads settings.toml on top of the defaults
func (l *Loader) LoadSettings() (*Settings, error) {
	data, err := fs.ReadFile(l.fsys, "settings.toml")
	if err != nil {
		return nil, fmt.Errorf("failed to read settings.toml: %w", err)
	}

	cfg := DefaultSettings()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse settings.toml: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid settings.toml: %w", err)
	}

	return cfg, nil
}

// LoadSprites loads sprites.json
func (l *Loader) LoadSprites() (*SpritesConfig, error) {
	data, err := fs.ReadFile(l.fsys, "sprites.json")
	if err != nil {
		return nil, fmt.Errorf("failed to read sprites.json: %w", err)
	}

	var cfg SpritesConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse sprites.json: %w", err)
	}

	return &cfg, nil
}

// LoadAll loads all base configurations (settings, sprites)
func (l *Loader) LoadAll() (*GameConfig, error) {
	settings, err := l.LoadSettings()
	if err != nil {
		return nil, err
	}

	sprites, err := l.LoadSprites()
	if err != nil {
		return nil, err
	}

	return &GameConfig{
		Settings: settings,
		Sprites:  sprites,
	}, nil
}
