// Package config assembles the tool settings from defaults, an optional
// YAML file at the project root and the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"time"

	"github.com/goccy/go-yaml"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/kossidts/lingueasy/internal/locale"
)

// FileName is the configuration file looked up at the project root.
const FileName = "lingueasy.config.yaml"

// Defaults shared by every project.
var (
	DefaultExcludeDirs  = []string{".git", "node_modules", "vendors"}
	DefaultExcludeFiles = []string{"*min.js"}
	DefaultIncludeFiles = []string{"*.ejs", "*.js"}
)

const (
	DefaultTemplateName = "template"
	DefaultSourceLang   = "en"
)

type Config struct {
	Root            string
	TranslationsDir string
	TemplateName    string
	SourceLang      string

	ExcludeDirs  []string
	ExcludeFiles []string
	IncludeFiles []string
	ExcludePaths []PathRule

	Provider     string
	DeepLAPIKey  string
	GeminiAPIKey string
	GeminiModel  string
	DatabaseURL  string
	WorkerCount  int
	Pause        time.Duration
	Timeout      time.Duration
}

// fileConfig mirrors the YAML file. Unset keys keep their defaults.
type fileConfig struct {
	PathToTranslationsDir   string     `yaml:"path_to_translations_dir"`
	ExcludeDirs             []string   `yaml:"exclude_dirs"`
	ExcludeFiles            []string   `yaml:"exclude_files"`
	IncludesFiles           []string   `yaml:"includes_files"`
	ExcludePaths            []PathRule `yaml:"exclude_paths"`
	TranslationTemplateName string     `yaml:"translation_template_name"`
	SourceLang              string     `yaml:"source_lang"`
	Provider                string     `yaml:"provider"`
	Pause                   string     `yaml:"pause"`
	Timeout                 string     `yaml:"timeout"`
}

// Default returns the configuration used when nothing is overridden.
func Default(root string) *Config {
	return &Config{
		Root:            root,
		TranslationsDir: filepath.Join(root, "languages"),
		TemplateName:    DefaultTemplateName,
		SourceLang:      DefaultSourceLang,
		ExcludeDirs:     append([]string(nil), DefaultExcludeDirs...),
		ExcludeFiles:    append([]string(nil), DefaultExcludeFiles...),
		IncludeFiles:    append([]string(nil), DefaultIncludeFiles...),
		WorkerCount:     8,
		Pause:           time.Second,
		Timeout:         30 * time.Second,
	}
}

// Load builds the configuration for the project at root. An empty root means
// the working directory. configPath overrides the YAML file location; an
// explicit path must exist, while a missing default file is skipped.
func Load(root, configPath string) (*Config, error) {
	if root == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("resolve working directory: %w", err)
		}
		root = wd
	}

	root, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve root path: %w", err)
	}

	if err := godotenv.Load(filepath.Join(root, ".env")); err != nil {
		log.Debug().Msg("No .env file found, using environment variables")
	}

	cfg := Default(root)

	explicit := configPath != ""
	if !explicit {
		configPath = filepath.Join(root, FileName)
	}

	fc, err := readYAML(configPath, explicit)
	if err != nil {
		return nil, err
	}

	if fc != nil {
		cfg.apply(fc)
	}

	cfg.applyEnv()

	if err := cfg.applyDurations(fc); err != nil {
		return nil, err
	}

	cfg.normalize()

	return cfg, nil
}

func readYAML(path string, required bool) (*fileConfig, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) && !required {
		log.Debug().Str("path", path).Msg("No YAML configuration file found, skipping")
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read configuration file %s: %w", path, err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return nil, fmt.Errorf("parse YAML from %s: %w", path, err)
	}

	log.Info().Str("path", path).Msg("Loaded configuration")
	return &fc, nil
}

func (cfg *Config) apply(fc *fileConfig) {
	if fc.PathToTranslationsDir != "" {
		cfg.TranslationsDir = cfg.resolve(fc.PathToTranslationsDir)
	}
	if fc.TranslationTemplateName != "" {
		cfg.TemplateName = fc.TranslationTemplateName
	}
	if fc.SourceLang != "" {
		cfg.SourceLang = fc.SourceLang
	}
	if fc.Provider != "" {
		cfg.Provider = fc.Provider
	}

	cfg.ExcludeDirs = union(fc.ExcludeDirs, DefaultExcludeDirs)
	cfg.ExcludeFiles = union(fc.ExcludeFiles, DefaultExcludeFiles)
	cfg.IncludeFiles = union(fc.IncludesFiles, DefaultIncludeFiles)
	cfg.ExcludePaths = fc.ExcludePaths
}

func (cfg *Config) applyEnv() {
	if v := getEnv("LINGUEASY_TRANSLATIONS_DIR", ""); v != "" {
		cfg.TranslationsDir = cfg.resolve(v)
	}

	cfg.SourceLang = getEnv("LINGUEASY_SOURCE_LANG", cfg.SourceLang)
	cfg.Provider = getEnv("LINGUEASY_PROVIDER", cfg.Provider)
	cfg.DeepLAPIKey = getEnv("DEEPL_API_KEY", "")
	cfg.GeminiAPIKey = getEnv("GEMINI_API_KEY", "")
	cfg.GeminiModel = getEnv("GEMINI_MODEL", "")
	cfg.DatabaseURL = getEnv("DATABASE_URL", "")
	cfg.WorkerCount = getEnvInt("WORKER_COUNT", cfg.WorkerCount)
}

// applyDurations reads pause and timeout, the environment winning over the file.
func (cfg *Config) applyDurations(fc *fileConfig) error {
	var pause, timeout string
	if fc != nil {
		pause, timeout = fc.Pause, fc.Timeout
	}

	pause = getEnv("LINGUEASY_PAUSE", pause)
	timeout = getEnv("LINGUEASY_TIMEOUT", timeout)

	if pause != "" {
		d, err := time.ParseDuration(pause)
		if err != nil {
			return fmt.Errorf("invalid pause %q: %w", pause, err)
		}
		cfg.Pause = d
	}

	if timeout != "" {
		d, err := time.ParseDuration(timeout)
		if err != nil {
			return fmt.Errorf("invalid timeout %q: %w", timeout, err)
		}
		cfg.Timeout = d
	}

	return nil
}

func (cfg *Config) normalize() {
	lang := locale.Normalize(cfg.SourceLang, true)
	if lang == "" {
		log.Warn().
			Str("source_lang", cfg.SourceLang).
			Str("fallback", DefaultSourceLang).
			Msg("Invalid source language, using fallback")

		lang = DefaultSourceLang
	}
	cfg.SourceLang = lang

	if cfg.WorkerCount < 1 {
		cfg.WorkerCount = 1
	}
}

func (cfg *Config) resolve(path string) string {
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}

	return filepath.Join(cfg.Root, path)
}

// TemplatePath is the JSON template location.
func (cfg *Config) TemplatePath() string {
	return filepath.Join(cfg.TranslationsDir, cfg.TemplateName+".json")
}

// POTPath is the gettext template location.
func (cfg *Config) POTPath() string {
	return filepath.Join(cfg.TranslationsDir, cfg.TemplateName+".pot")
}

// CatalogPath is the location of the catalog for lang.
func (cfg *Config) CatalogPath(lang string) string {
	return filepath.Join(cfg.TranslationsDir, lang+".json")
}

// Excluded reports whether a request path matches one of ExcludePaths.
func (cfg *Config) Excluded(path string) bool {
	for _, r := range cfg.ExcludePaths {
		if r.Match(path) {
			return true
		}
	}

	return false
}

// union returns the user entries followed by the defaults they lack,
// without duplicates.
func union(user, defaults []string) []string {
	seen := make(map[string]bool, len(user)+len(defaults))
	out := make([]string, 0, len(user)+len(defaults))

	for _, list := range [][]string{user, defaults} {
		for _, v := range list {
			if seen[v] {
				continue
			}
			seen[v] = true
			out = append(out, v)
		}
	}

	return out
}

// PathRule matches request paths either exactly or with a regular expression.
// In YAML it is written as a plain string or as {pattern: <regexp>}.
type PathRule struct {
	Exact   string
	Pattern *regexp.Regexp
}

// Match reports whether path satisfies the rule.
func (r PathRule) Match(path string) bool {
	if r.Pattern != nil {
		return r.Pattern.MatchString(path)
	}

	return r.Exact == path
}

// UnmarshalYAML implements yaml.InterfaceUnmarshaler.
func (r *PathRule) UnmarshalYAML(unmarshal func(any) error) error {
	var raw any
	if err := unmarshal(&raw); err != nil {
		return err
	}

	switch v := raw.(type) {
	case string:
		*r = PathRule{Exact: v}
		return nil
	case map[string]any:
		pattern, _ := v["pattern"].(string)
		if pattern == "" {
			return errors.New("exclude_paths entry has an empty pattern")
		}

		re, err := regexp.Compile(pattern)
		if err != nil {
			return fmt.Errorf("invalid exclude_paths pattern %q: %w", pattern, err)
		}

		*r = PathRule{Pattern: re}
		return nil
	default:
		return fmt.Errorf("exclude_paths entry must be a string or {pattern: ...}, got %T", raw)
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
