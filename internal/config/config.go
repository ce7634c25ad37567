package config

import (
	"fmt"
	"os"
	"regexp"
	"runtime"
	"strings"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/opinionmining/aspectsum"
)

// StdoutOutput writes summaries to standard output.
const StdoutOutput = "-"

// Config is the command line configuration: input and output paths, worker
// count, logging and the summary thresholds.
type Config struct {
	Env         string                  `yaml:"env"`
	LogLevel    string                  `yaml:"log_level"`
	Corpus      string                  `yaml:"corpus"`
	Output      string                  `yaml:"output"`
	ModelDir    string                  `yaml:"model_dir"`
	Workers     int                     `yaml:"workers"`
	MetricsAddr string                  `yaml:"metrics_addr"`
	Summary     aspectsum.SummaryConfig `yaml:"summary"`
}

var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

// expandEnvVars replaces ${VAR_NAME} patterns with environment variable values.
func expandEnvVars(s string) string {
	return envVarRegex.ReplaceAllStringFunc(s, func(match string) string {
		varName := strings.TrimSuffix(strings.TrimPrefix(match, "${"), "}")
		if val, ok := os.LookupEnv(varName); ok {
			return val
		}
		return match
	})
}

func setDefaults(cfg *Config) {
	if cfg.Env == "" {
		cfg.Env = "production"
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if cfg.Output == "" {
		cfg.Output = StdoutOutput
	}
	if cfg.Workers == 0 {
		cfg.Workers = runtime.NumCPU()
	}
}

func validate(cfg *Config) error {
	if cfg.Corpus == "" {
		return fmt.Errorf("config: corpus is required")
	}
	if cfg.ModelDir == "" {
		return fmt.Errorf("config: model_dir is required")
	}
	if cfg.Workers < 1 {
		return fmt.Errorf("config: workers must be positive, got %d", cfg.Workers)
	}
	if _, err := zerolog.ParseLevel(cfg.LogLevel); err != nil {
		return fmt.Errorf("config: invalid log_level %q: %w", cfg.LogLevel, err)
	}

	s := cfg.Summary
	probs := map[string]float64{
		"summary.single_word_threshold":        s.SingleWordThreshold,
		"summary.multi_word_threshold":         s.MultiWordThreshold,
		"summary.opinion_threshold":            s.OpinionThreshold,
		"summary.override_opinion_threshold":   s.OverrideOpinionThreshold,
		"summary.override_sentiment_threshold": s.OverrideSentimentThreshold,
		"summary.sentiment_threshold":          s.SentimentThreshold,
	}
	for key, v := range probs {
		if v < 0 || v > 1 {
			return fmt.Errorf("config: %s must be within [0, 1], got %v", key, v)
		}
	}
	if s.TopAspects < 1 {
		return fmt.Errorf("config: summary.top_aspects must be positive, got %d", s.TopAspects)
	}
	if s.MaxSentenceTokens < 1 {
		return fmt.Errorf("config: summary.max_sentence_tokens must be positive, got %d", s.MaxSentenceTokens)
	}
	if s.MinAspectSentences < 0 {
		return fmt.Errorf("config: summary.min_aspect_sentences must not be negative, got %d", s.MinAspectSentences)
	}
	return nil
}

// Parse expands environment variables in data, decodes it over the default
// thresholds, applies defaults, and validates the configuration.
func Parse(data []byte) (*Config, error) {
	expanded := expandEnvVars(string(data))

	cfg := Config{Summary: aspectsum.DefaultSummaryConfig()}
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse: %w", err)
	}

	setDefaults(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Load reads and parses the config file at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: failed to read %s: %w", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}
