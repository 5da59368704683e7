package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrLevelNotFound is returned when no level file exists under any supported extension
var ErrLevelNotFound = errors.New("level not found")

// levelExtensions lists supported level encodings in lookup order
var levelExtensions = []string{".json", ".yaml", ".yml"}

// Loader loads game configuration from JSON/YAML files using fs.FS interface
type Loader struct {
	fsys fs.FS
}

// NewLoader creates a new config loader from filesystem path
func NewLoader(basePath string) *Loader {
	return &Loader{fsys: os.DirFS(basePath)}
}

// NewFSLoader creates a new config loader from fs.FS
func NewFSLoader(fsys fs.FS) *Loader {
	return &Loader{fsys: fsys}
}

// LoadTuning loads tuning.json on top of DefaultTuning, so omitted keys keep their defaults
func (l *Loader) LoadTuning() (*TuningConfig, error) {
	data, err := fs.ReadFile(l.fsys, "tuning.json")
	if err != nil {
		return nil, fmt.Errorf("failed to read tuning.json: %w", err)
	}

	cfg := DefaultTuning()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse tuning.json: %w", err)
	}

	return cfg, nil
}

// LoadTuningFile loads a tuning file from disk on top of DefaultTuning
func LoadTuningFile(filename string) (*TuningConfig, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", filename, err)
	}

	cfg := DefaultTuning()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", filename, err)
	}
	return cfg, nil
}

// LoadLevel loads levels/<name> trying each supported extension
func (l *Loader) LoadLevel(name string) (*LevelConfig, error) {
	for _, ext := range levelExtensions {
		p := path.Join("levels", name+ext)
		data, err := fs.ReadFile(l.fsys, p)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read level %s: %w", name, err)
		}

		cfg, err := ParseLevel(data, ext)
		if err != nil {
			return nil, fmt.Errorf("failed to parse level %s: %w", name, err)
		}
		cfg.Name = name
		return cfg, nil
	}

	return nil, fmt.Errorf("%w: %s", ErrLevelNotFound, name)
}

// LoadLevelFile loads a level description from a path on disk
func LoadLevelFile(filename string) (*LevelConfig, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrLevelNotFound, filename)
		}
		return nil, fmt.Errorf("failed to read level %s: %w", filename, err)
	}

	ext := filepath.Ext(filename)
	cfg, err := ParseLevel(data, ext)
	if err != nil {
		return nil, fmt.Errorf("failed to parse level %s: %w", filename, err)
	}
	cfg.Name = strings.TrimSuffix(filepath.Base(filename), ext)
	return cfg, nil
}

// ParseLevel decodes a level description; ext selects the encoding (JSON by default)
func ParseLevel(data []byte, ext string) (*LevelConfig, error) {
	var cfg LevelConfig
	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("yaml unmarshal: %w", err)
		}
	default:
		if err := json.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("json unmarshal: %w", err)
		}
	}
	return &cfg, nil
}

// LoadAll loads tuning plus every level it lists
func (l *Loader) LoadAll() (*TuningConfig, []*LevelConfig, error) {
	tuning, err := l.LoadTuning()
	if err != nil {
		return nil, nil, err
	}

	levels := make([]*LevelConfig, 0, len(tuning.Levels))
	for _, name := range tuning.Levels {
		lvl, err := l.LoadLevel(name)
		if err != nil {
			return nil, nil, err
		}
		levels = append(levels, lvl)
	}

	return tuning, levels, nil
}
