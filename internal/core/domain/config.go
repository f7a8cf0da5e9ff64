package domain

// Transport names.
const (
	TransportHTTP      = "http"
	TransportWebSocket = "websocket"
)

// Renderer names.
const (
	RendererString = "string"
	RendererStream = "stream"
)

// Cache key strategies of the module loader.
const (
	CacheKeyPath    = "path"
	CacheKeyContent = "content"
	CacheKeyNone    = "none"
)

// ConfigFileName is the name of the server configuration file.
const ConfigFileName = "bagel.yaml"

// DefaultPort is the port the server listens on when none is configured.
const DefaultPort = 3030

// DefaultCacheSize is the default number of compiled wrappers kept in memory.
const DefaultCacheSize = 10000

// Config is the validated runtime configuration.
type Config struct {
	// Dir is the directory the configuration was loaded from.
	Dir         string
	Root        string
	Port        int
	Transport   string
	Renderer    string
	Concurrency int
	Loader      LoaderConfig
	Plugins     []string
	Watch       bool
	Log         LogConfig
}

// LoaderConfig configures module resolution and compilation.
type LoaderConfig struct {
	Extensions        []string
	ModuleDirectories []string
	UseResolverCache  bool
	CacheSize         int
	CacheKey          string
	Aliases           map[string]string
	Overrides         map[string]any
	Transformers      []string
}

// LogConfig configures the logger.
type LogConfig struct {
	Level LogLevel
	JSON  bool
}

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig(dir string) *Config {
	return &Config{
		Dir:       dir,
		Root:      dir,
		Port:      DefaultPort,
		Transport: TransportHTTP,
		Renderer:  RendererString,
		Loader: LoaderConfig{
			Extensions:        []string{".js", ".json"},
			ModuleDirectories: []string{"node_modules"},
			CacheSize:         DefaultCacheSize,
			CacheKey:          CacheKeyPath,
			Transformers:      []string{"shebang", "json"},
		},
		Log: LogConfig{Level: LogLevelInfo},
	}
}
