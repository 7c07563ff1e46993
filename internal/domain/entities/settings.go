package entities

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclparse"
	logger "github.com/sirupsen/logrus"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/gocty"
	"gopkg.in/yaml.v3"
)

const (
	defaultModel          = "llama3.2"
	defaultMaxRetries     = 2
	defaultSummaryTimeout = 30
	defaultOllamaURL      = "http://localhost:11434"
	defaultSummaryFile    = "git_summaries.txt"
)

// Settings is the immutable run configuration. It is loaded once by the
// controller layer and threaded into commands; nothing mutates it after
// construction.
type Settings struct {
	EnableSummary  bool   `yaml:"enable_summary"`
	DryRun         bool   `yaml:"dry_run"`
	Submodules     bool   `yaml:"submodules"`
	Workers        int    `yaml:"workers"`
	Model          string `yaml:"model"`
	MaxRetries     int    `yaml:"max_retries"`
	SummaryTimeout int    `yaml:"summary_timeout"` // seconds per attempt
	OllamaURL      string `yaml:"ollama_url"`
	SummaryFile    string `yaml:"summary_file"`

	Providers []ProviderSettings `yaml:"providers"`
}

// ProviderSettings configures one hosting-provider instance.
type ProviderSettings struct {
	Type     string   `yaml:"type"`     // "github", "gitlab", "bitbucket"
	Token    string   `yaml:"token"`    // Inline, ${ENV_VAR}, or file path
	Accounts []string `yaml:"accounts"` // Account/organization names
}

// envVarPattern matches ${VAR_NAME} placeholders.
var envVarPattern = regexp.MustCompile(`\$\{([^}]+)}`)

// DefaultSettings returns the built-in configuration used when no config
// file exists.
func DefaultSettings() *Settings {
	return &Settings{
		Workers:        1,
		Model:          defaultModel,
		MaxRetries:     defaultMaxRetries,
		SummaryTimeout: defaultSummaryTimeout,
		OllamaURL:      defaultOllamaURL,
		SummaryFile:    defaultSummaryFile,
	}
}

// NewSettings reads and parses a configuration file, expanding
// environment variables and resolving token file paths. An empty path
// yields the defaults.
func NewSettings(path string) (*Settings, error) {
	if path == "" {
		return DefaultSettings(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %q: %w", path, err)
	}

	// Start from the defaults so omitted keys keep them; the file only
	// overrides what it mentions.
	cfg := *DefaultSettings()
	if strings.HasSuffix(path, ".hcl") {
		if decodeErr := decodeHCL(data, path, &cfg); decodeErr != nil {
			return nil, decodeErr
		}
	} else {
		if unmarshalErr := yaml.Unmarshal(data, &cfg); unmarshalErr != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", unmarshalErr)
		}
	}

	cfg.applyDefaults()

	// Resolve tokens (env vars and file paths)
	for i := range cfg.Providers {
		cfg.Providers[i].Token = resolveToken(cfg.Providers[i].Token)
	}

	if validateErr := cfg.validate(); validateErr != nil {
		return nil, validateErr
	}

	return &cfg, nil
}

// FindConfigFile searches for a configuration file in standard locations.
// Returns the path to the first file found or an error if none is found.
func FindConfigFile() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = ""
	}

	locations := []string{
		".",
		".config",
		"configs",
	}
	if homeDir != "" {
		locations = append(
			locations,
			homeDir,
			filepath.Join(homeDir, ".config"),
		)
	}

	patterns := []string{
		".unigit.yaml",
		".unigit.yml",
		"unigit.yaml",
		"unigit.yml",
		".unigit.hcl",
		"unigit.hcl",
	}

	for _, loc := range locations {
		for _, pat := range patterns {
			p := filepath.Join(loc, pat)
			if _, statErr := os.Stat(p); statErr == nil {
				return p, nil
			}
		}
	}

	return "", errors.New("config file not found in default locations")
}

// TokenFor returns the configured token for the given provider type, or
// an empty string when none is configured.
func (s *Settings) TokenFor(providerType string) string {
	for _, p := range s.Providers {
		if p.Type == providerType {
			return p.Token
		}
	}
	return ""
}

// Operation returns the VCS operation options derived from the settings.
func (s *Settings) Operation() OperationOptions {
	return OperationOptions{
		DryRun:     s.DryRun,
		Submodules: s.Submodules,
	}
}

// Summary returns the summarizer options derived from the settings.
func (s *Settings) Summary() SummaryOptions {
	return SummaryOptions{
		BaseURL:    s.OllamaURL,
		Model:      s.Model,
		Timeout:    time.Duration(s.SummaryTimeout) * time.Second,
		MaxRetries: s.MaxRetries,
	}
}

func (s *Settings) applyDefaults() {
	if s.Workers <= 0 {
		s.Workers = 1
	}
	if s.Model == "" {
		s.Model = defaultModel
	}
	if s.SummaryTimeout == 0 {
		s.SummaryTimeout = defaultSummaryTimeout
	}
	if s.OllamaURL == "" {
		s.OllamaURL = defaultOllamaURL
	}
	if s.SummaryFile == "" {
		s.SummaryFile = defaultSummaryFile
	}
}

// validate checks for required configuration values.
func (s *Settings) validate() error {
	if s.MaxRetries < 0 {
		return errors.New("max_retries must be >= 0")
	}
	if s.SummaryTimeout <= 0 {
		return errors.New("summary_timeout must be > 0")
	}

	known := map[string]bool{
		ProviderGitHub:    true,
		ProviderGitLab:    true,
		ProviderBitbucket: true,
	}
	for i, p := range s.Providers {
		if !known[p.Type] {
			return fmt.Errorf("providers[%d].type %q is not supported", i, p.Type)
		}
	}

	return nil
}

// resolveToken expands environment variable references (${VAR}) and, if the
// resulting string is a path to an existing file, reads the token from the file.
func resolveToken(raw string) string {
	if raw == "" {
		return raw
	}

	// Expand ${ENV_VAR} references
	resolved := envVarPattern.ReplaceAllStringFunc(raw, func(match string) string {
		varName := envVarPattern.FindStringSubmatch(match)[1]
		if val := os.Getenv(varName); val != "" {
			return val
		}
		logger.Warnf("Environment variable %q is not set", varName)
		return ""
	})

	// If the resolved value is a path to an existing file, read the token from it
	if info, statErr := os.Stat(resolved); statErr == nil && !info.IsDir() {
		data, readErr := os.ReadFile(resolved)
		if readErr != nil {
			logger.Warnf("Failed to read token file %q: %v", resolved, readErr)
			return resolved
		}
		logger.Debugf("Read token from file %q", resolved)
		return strings.TrimSpace(string(data))
	}

	return resolved
}

// decodeHCL fills the settings from an HCL document with top-level
// attributes and provider blocks:
//
//	enable_summary = true
//	provider "github" {
//	  token    = "${GITHUB_TOKEN}"
//	  accounts = ["someorg"]
//	}
func decodeHCL(data []byte, filename string, cfg *Settings) error {
	parser := hclparse.NewParser()

	file, diags := parser.ParseHCL(data, filename)
	if diags.HasErrors() {
		return fmt.Errorf("failed to parse config file: %w", diags)
	}

	content, _, diags := file.Body.PartialContent(&hcl.BodySchema{
		Attributes: []hcl.AttributeSchema{
			{Name: "enable_summary"},
			{Name: "dry_run"},
			{Name: "submodules"},
			{Name: "workers"},
			{Name: "model"},
			{Name: "max_retries"},
			{Name: "summary_timeout"},
			{Name: "ollama_url"},
			{Name: "summary_file"},
		},
		Blocks: []hcl.BlockHeaderSchema{
			{Type: "provider", LabelNames: []string{"type"}},
		},
	})
	if diags.HasErrors() {
		return fmt.Errorf("failed to decode config file: %w", diags)
	}

	assignments := map[string]any{
		"enable_summary":  &cfg.EnableSummary,
		"dry_run":         &cfg.DryRun,
		"submodules":      &cfg.Submodules,
		"workers":         &cfg.Workers,
		"model":           &cfg.Model,
		"max_retries":     &cfg.MaxRetries,
		"summary_timeout": &cfg.SummaryTimeout,
		"ollama_url":      &cfg.OllamaURL,
		"summary_file":    &cfg.SummaryFile,
	}
	for name, target := range assignments {
		attr, ok := content.Attributes[name]
		if !ok {
			continue
		}
		if err := decodeHCLAttribute(attr, target); err != nil {
			return err
		}
	}

	for _, block := range content.Blocks {
		provider, err := decodeProviderBlock(block)
		if err != nil {
			return err
		}
		cfg.Providers = append(cfg.Providers, provider)
	}

	return nil
}

func decodeHCLAttribute(attr *hcl.Attribute, target any) error {
	value, diags := attr.Expr.Value(&hcl.EvalContext{})
	if diags.HasErrors() {
		return fmt.Errorf("failed to evaluate %q: %w", attr.Name, diags)
	}
	if err := gocty.FromCtyValue(value, target); err != nil {
		return fmt.Errorf("invalid value for %q: %w", attr.Name, err)
	}
	return nil
}

func decodeProviderBlock(block *hcl.Block) (ProviderSettings, error) {
	var provider ProviderSettings
	if len(block.Labels) > 0 {
		provider.Type = block.Labels[0]
	}

	attrs, diags := block.Body.JustAttributes()
	if diags.HasErrors() {
		return provider, fmt.Errorf("failed to decode provider %q: %w", provider.Type, diags)
	}

	if tokenAttr, ok := attrs["token"]; ok {
		if err := decodeHCLAttribute(tokenAttr, &provider.Token); err != nil {
			return provider, err
		}
	}

	if accountsAttr, ok := attrs["accounts"]; ok {
		value, valueDiags := accountsAttr.Expr.Value(&hcl.EvalContext{})
		if valueDiags.HasErrors() {
			return provider, fmt.Errorf(
				"failed to evaluate accounts for provider %q: %w", provider.Type, valueDiags,
			)
		}
		if !value.CanIterateElements() {
			return provider, fmt.Errorf(
				"accounts for provider %q must be a list of strings", provider.Type,
			)
		}
		for _, element := range value.AsValueSlice() {
			if element.Type() != cty.String {
				return provider, fmt.Errorf(
					"accounts for provider %q must be a list of strings", provider.Type,
				)
			}
			provider.Accounts = append(provider.Accounts, element.AsString())
		}
	}

	return provider, nil
}
