package config

// File represents the structure of the mdunits.yaml configuration file.
type File struct {
	Version     string         `yaml:"version"`
	Definitions DefinitionsDTO `yaml:"definitions"`
	Log         LogDTO         `yaml:"log"`
	Output      OutputDTO      `yaml:"output"`
}

// DefinitionsDTO selects the unit definition files.
type DefinitionsDTO struct {
	Defaults string   `yaml:"defaults"`
	Extra    []string `yaml:"extra"`
}

// LogDTO configures logging.
type LogDTO struct {
	Level string `yaml:"level"`
}

// OutputDTO configures how values are printed.
type OutputDTO struct {
	Precision int `yaml:"precision"`
}
