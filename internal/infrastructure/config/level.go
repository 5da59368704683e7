package config

// LevelConfig is the root of a level description file (JSON or YAML)
type LevelConfig struct {
	Name  string    `json:"-" yaml:"-"` // Set from the file name by the loader
	Level LevelData `json:"level" yaml:"level"`
}

// LevelData holds the on-grid tiles and off-grid decorations
type LevelData struct {
	Tiles   []TileConfig    `json:"tiles" yaml:"tiles"`
	OffGrid []OffGridConfig `json:"off_grid" yaml:"off_grid"`

	// Spawn overrides the tuning spawn point for this level when set
	Spawn *[2]float64 `json:"spawn,omitempty" yaml:"spawn,omitempty"`
}

// TileConfig is one on-grid tile; Pos is a grid coordinate
type TileConfig struct {
	Pos     [2]int `json:"pos" yaml:"pos"`
	Type    string `json:"type" yaml:"type"`
	Variant int    `json:"variant" yaml:"variant"`
}

// OffGridConfig is one decoration; Pos is in pixels
type OffGridConfig struct {
	Pos     [2]float64 `json:"pos" yaml:"pos"`
	Type    string     `json:"type" yaml:"type"`
	Variant int        `json:"variant" yaml:"variant"`
}
