package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/knadh/koanf"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"

	"github.com/autobrr/regexmatcher/pkg/engine"
	"github.com/autobrr/regexmatcher/pkg/logger"
	"github.com/autobrr/regexmatcher/pkg/stringutils"
)

const envPrefix = "REGEXMATCHER__"

type EngineConfig struct {
	MatchTimeout time.Duration `yaml:"match_timeout" koanf:"match_timeout"`
	MaxPatterns  int           `yaml:"max_patterns" koanf:"max_patterns"`
	Prefilter    bool          `yaml:"prefilter" koanf:"prefilter"`
}

type PatternConfig struct {
	ID            int64  `yaml:"id" koanf:"id"`
	Pattern       string `yaml:"pattern" koanf:"pattern"`
	CaseSensitive bool   `yaml:"case_sensitive" koanf:"case_sensitive"`
}

// SourceConfig points at a pattern list. Exactly one of Path and URL must be set.
type SourceConfig struct {
	Name          string `yaml:"name" koanf:"name"`
	Path          string `yaml:"path" koanf:"path"`
	URL           string `yaml:"url" koanf:"url"`
	CaseSensitive bool   `yaml:"case_sensitive" koanf:"case_sensitive"`
}

type ScanConfig struct {
	Normalize bool   `yaml:"normalize" koanf:"normalize"`
	Output    string `yaml:"output" koanf:"output"`
}

type Configuration struct {
	Engine   EngineConfig      `yaml:"engine" koanf:"engine"`
	Patterns []PatternConfig   `yaml:"patterns" koanf:"patterns"`
	Sources  []SourceConfig    `yaml:"sources" koanf:"sources"`
	Rules    map[string]string `yaml:"rules" koanf:"rules"`
	Scan     ScanConfig        `yaml:"scan" koanf:"scan"`
}

/* Vars */

var (
	cfgPath = ""

	Delimiter = "."
	Config    *Configuration
	K         = koanf.New(Delimiter)

	// Internal
	log = logger.GetLogger("cfg")

	defaults = map[string]interface{}{
		"engine.match_timeout": "0s",
		"engine.max_patterns":  0,
		"engine.prefilter":     true,
		"scan.normalize":       false,
		"scan.output":          "text",
	}
)

/* Public */

// Init loads configFilePath (optional) and REGEXMATCHER__ environment overrides into Config.
// Nested keys are separated by a double underscore, e.g. REGEXMATCHER__ENGINE__MATCH_TIMEOUT.
func Init(configFilePath string) error {
	// set package variables
	cfgPath = configFilePath
	K = koanf.New(Delimiter)

	// load defaults
	if err := K.Load(confmap.Provider(defaults, Delimiter), nil); err != nil {
		return fmt.Errorf("load defaults: %w", err)
	}

	// load config
	if configFilePath != "" {
		if err := K.Load(file.Provider(configFilePath), yaml.Parser()); err != nil {
			return fmt.Errorf("load file: %w", err)
		}
	}

	// load environment variables
	if err := K.Load(env.Provider(envPrefix, Delimiter, func(s string) string {
		return strings.ReplaceAll(strings.ToLower(
			strings.TrimPrefix(s, envPrefix)), "__", Delimiter)
	}), nil); err != nil {
		return fmt.Errorf("load env: %w", err)
	}

	// unmarshal config
	cfg := new(Configuration)
	if err := K.Unmarshal("", cfg); err != nil {
		return fmt.Errorf("unmarshal: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("validate: %w", err)
	}

	Config = cfg
	log.Debugf("Loaded %d inline patterns, %d sources and %d rules",
		len(cfg.Patterns), len(cfg.Sources), len(cfg.Rules))
	return nil
}

func ShowUsing() {
	path := cfgPath
	if path == "" {
		path = "<none>"
	}
	log.Infof("Using %s = %q", stringutils.LeftJust("CONFIG", " ", 10), path)
}

// Validate checks values koanf cannot type check.
func (c *Configuration) Validate() error {
	if c.Engine.MatchTimeout < 0 {
		return fmt.Errorf("engine.match_timeout must not be negative: %s", c.Engine.MatchTimeout)
	}
	if c.Engine.MaxPatterns < 0 {
		return fmt.Errorf("engine.max_patterns must not be negative: %d", c.Engine.MaxPatterns)
	}

	switch c.Scan.Output {
	case "text", "json", "yaml":
	default:
		return fmt.Errorf("scan.output must be one of text, json or yaml: %q", c.Scan.Output)
	}

	names := make(map[string]struct{}, len(c.Sources))
	for i, s := range c.Sources {
		if s.Name == "" {
			return fmt.Errorf("sources[%d]: name is required", i)
		}
		if _, ok := names[s.Name]; ok {
			return fmt.Errorf("sources[%d]: duplicate name %q", i, s.Name)
		}
		names[s.Name] = struct{}{}

		if (s.Path == "") == (s.URL == "") {
			return fmt.Errorf("source %q: exactly one of path or url must be set", s.Name)
		}
	}

	for name, rule := range c.Rules {
		if strings.TrimSpace(rule) == "" {
			return fmt.Errorf("rule %q: expression is empty", name)
		}
	}

	return nil
}

// Options translates the engine section into engine options.
func (c EngineConfig) Options() []engine.Option {
	opts := []engine.Option{
		engine.WithPrefilter(c.Prefilter),
	}
	if c.MatchTimeout > 0 {
		opts = append(opts, engine.WithMatchTimeout(c.MatchTimeout))
	}
	if c.MaxPatterns > 0 {
		opts = append(opts, engine.WithMaxPatterns(c.MaxPatterns))
	}
	return opts
}
