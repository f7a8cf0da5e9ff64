package config

// Bagelfile represents the structure of the bagel.yaml configuration file.
// Pointer fields distinguish an explicit zero from an omitted key.
type Bagelfile struct {
	Version     string    `yaml:"version"`
	Root        string    `yaml:"root"`
	Port        *int      `yaml:"port"`
	Transport   string    `yaml:"transport"`
	Renderer    string    `yaml:"renderer"`
	Concurrency *int      `yaml:"concurrency"`
	Loader      LoaderDTO `yaml:"loader"`
	Plugins     []string  `yaml:"plugins"`
	Watch       bool      `yaml:"watch"`
	Log         LogDTO    `yaml:"log"`
}

// LoaderDTO represents the loader section.
type LoaderDTO struct {
	Extensions        []string          `yaml:"extensions"`
	ModuleDirectories []string          `yaml:"moduleDirectories"`
	UseResolverCache  bool              `yaml:"useResolverCache"`
	CacheSize         *int              `yaml:"cacheSize"`
	CacheKey          string            `yaml:"cacheKey"`
	Aliases           map[string]string `yaml:"aliases"`
	Overrides         map[string]any    `yaml:"overrides"`
	Transformers      *[]string         `yaml:"transformers"`
}

// LogDTO represents the log section.
type LogDTO struct {
	Level string `yaml:"level"`
	JSON  bool   `yaml:"json"`
}
