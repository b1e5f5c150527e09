package definitions

// File represents the structure of a unit definitions file.
type File struct {
	Version    string         `yaml:"version"`
	Prefixes   []PrefixDTO    `yaml:"prefixes"`
	Dimensions []DimensionDTO `yaml:"dimensions"`
	Units      []UnitDTO      `yaml:"units"`
}

// PrefixDTO represents a prefix definition in the definitions file.
type PrefixDTO struct {
	Name    string   `yaml:"name"`
	Symbol  string   `yaml:"symbol"`
	Aliases []string `yaml:"aliases"`
	Factor  float64  `yaml:"factor"`
}

// DimensionDTO represents a derived dimension in the definitions file.
type DimensionDTO struct {
	Name       string `yaml:"name"`
	Definition string `yaml:"definition"`
}

// UnitDTO represents a unit definition in the definitions file.
type UnitDTO struct {
	Name       string   `yaml:"name"`
	Symbol     string   `yaml:"symbol"`
	Aliases    []string `yaml:"aliases"`
	Dimension  string   `yaml:"dimension"`
	Definition string   `yaml:"definition"`
	Offset     float64  `yaml:"offset"`
}
