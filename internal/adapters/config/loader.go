// Package config provides the configuration loader for bagel.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"go.trai.ch/bagel/internal/core/domain"
	"go.trai.ch/bagel/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

var _ ports.ConfigLoader = (*Loader)(nil)

// SupportedVersion is the only bagel.yaml schema version understood.
const SupportedVersion = "1"

// Loader implements ports.ConfigLoader using a YAML file.
type Loader struct {
	Logger ports.Logger
}

// NewLoader creates a new Loader with the given logger.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{Logger: logger}
}

// Load reads the configuration at path, or the first bagel.yaml found walking
// up from cwd when path is empty.
func (l *Loader) Load(cwd, path string) (*domain.Config, error) {
	if path == "" {
		found, err := l.DiscoverConfig(cwd)
		if errors.Is(err, domain.ErrConfigNotFound) {
			if l.Logger != nil {
				l.Logger.Debug(fmt.Sprintf("no %s found, using defaults", domain.ConfigFileName))
			}
			return domain.DefaultConfig(filepath.Clean(cwd)), nil
		}
		if err != nil {
			return nil, err
		}
		path = found
	} else if !filepath.IsAbs(path) {
		path = filepath.Join(cwd, path)
	}

	var file Bagelfile
	if err := readAndUnmarshalYAML(path, &file); err != nil {
		return nil, zerr.With(err, "path", path)
	}
	return l.build(path, &file)
}

// DiscoverConfig walks up from cwd and returns the path of the first bagel.yaml.
func (l *Loader) DiscoverConfig(cwd string) (string, error) {
	dir := filepath.Clean(cwd)
	for {
		candidate := filepath.Join(dir, domain.ConfigFileName)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", domain.Annotate(domain.ErrConfigNotFound, "cwd", cwd)
		}
		dir = parent
	}
}

func (l *Loader) build(path string, file *Bagelfile) (*domain.Config, error) {
	dir := filepath.Dir(path)
	cfg := domain.DefaultConfig(dir)

	if file.Version != "" && file.Version != SupportedVersion {
		return nil, invalid("version", file.Version)
	}

	cfg.Root = resolvePath(dir, file.Root)
	if info, err := os.Stat(cfg.Root); err != nil || !info.IsDir() {
		return nil, invalid("root", cfg.Root)
	}

	if file.Port != nil {
		if *file.Port < 0 || *file.Port > 65535 {
			return nil, invalid("port", *file.Port)
		}
		cfg.Port = *file.Port
	}

	if file.Transport != "" {
		if !slices.Contains([]string{domain.TransportHTTP, domain.TransportWebSocket}, file.Transport) {
			return nil, invalid("transport", file.Transport)
		}
		cfg.Transport = file.Transport
	}

	if file.Renderer != "" {
		if !slices.Contains([]string{domain.RendererString, domain.RendererStream}, file.Renderer) {
			return nil, invalid("renderer", file.Renderer)
		}
		cfg.Renderer = file.Renderer
	}

	if file.Concurrency != nil {
		if *file.Concurrency < 0 {
			return nil, invalid("concurrency", *file.Concurrency)
		}
		cfg.Concurrency = *file.Concurrency
	}

	if err := applyLoader(&cfg.Loader, &file.Loader); err != nil {
		return nil, err
	}

	cfg.Plugins = slices.Clone(file.Plugins)
	cfg.Watch = file.Watch

	level, ok := domain.ParseLogLevel(file.Log.Level)
	if !ok {
		return nil, invalid("log.level", file.Log.Level)
	}
	cfg.Log = domain.LogConfig{Level: level, JSON: file.Log.JSON}

	return cfg, nil
}

func applyLoader(lc *domain.LoaderConfig, dto *LoaderDTO) error {
	if len(dto.Extensions) > 0 {
		for _, ext := range dto.Extensions {
			if !strings.HasPrefix(ext, ".") {
				return invalid("loader.extensions", ext)
			}
		}
		lc.Extensions = slices.Clone(dto.Extensions)
	}
	if len(dto.ModuleDirectories) > 0 {
		lc.ModuleDirectories = slices.Clone(dto.ModuleDirectories)
	}
	lc.UseResolverCache = dto.UseResolverCache

	if dto.CacheSize != nil {
		if *dto.CacheSize <= 0 {
			return invalid("loader.cacheSize", *dto.CacheSize)
		}
		lc.CacheSize = *dto.CacheSize
	}

	switch dto.CacheKey {
	case "":
	case domain.CacheKeyPath, domain.CacheKeyContent, domain.CacheKeyNone:
		lc.CacheKey = dto.CacheKey
	default:
		return invalid("loader.cacheKey", dto.CacheKey)
	}

	lc.Aliases = dto.Aliases
	lc.Overrides = dto.Overrides
	if dto.Transformers != nil {
		lc.Transformers = slices.Clone(*dto.Transformers)
	}
	return nil
}

func invalid(key string, value any) error {
	return domain.Annotate(domain.ErrInvalidConfig, key, value)
}

func resolvePath(dir, configured string) string {
	if configured == "" {
		return filepath.Clean(dir)
	}
	if filepath.IsAbs(configured) {
		return filepath.Clean(configured)
	}
	return filepath.Join(dir, configured)
}

// readAndUnmarshalYAML reads a YAML file and unmarshals it into the target struct.
func readAndUnmarshalYAML[T any](configPath string, target *T) error {
	// #nosec G304 -- configPath comes from the user or discovery
	data, err := os.ReadFile(configPath)
	if errors.Is(err, fs.ErrNotExist) {
		return zerr.Wrap(err, domain.ErrConfigNotFound.Error())
	}
	if err != nil {
		return zerr.Wrap(err, domain.ErrConfigReadFailed.Error())
	}

	if err := yaml.Unmarshal(data, target); err != nil {
		return zerr.Wrap(err, domain.ErrConfigParseFailed.Error())
	}
	return nil
}
