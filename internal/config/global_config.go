package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/forgebot/rangediff/internal/common/errorwrapper"
	"github.com/forgebot/rangediff/internal/github"
	"github.com/forgebot/rangediff/internal/httpclient"
	"github.com/forgebot/rangediff/internal/logger"
	"github.com/forgebot/rangediff/internal/server"
)

// GlobalConfig contains all configuration sections for the service
type GlobalConfig struct {
	LogConfig        logger.FileLogConfig          `json:"log_config,omitempty" yaml:"log_config,omitempty"`
	ServerConfig     server.ServerConfig           `json:"server_config,omitempty" yaml:"server_config,omitempty"`
	GitHubConfig     github.ClientConfig           `json:"github_config,omitempty" yaml:"github_config,omitempty"`
	AuthorizerConfig github.AuthorizerConfig       `json:"authorizer_config,omitempty" yaml:"authorizer_config,omitempty"`
	RetryConfig      httpclient.RetryHandlerConfig `json:"retry_config,omitempty" yaml:"retry_config,omitempty"`
}

// NewDefaultGlobalConfig creates a new GlobalConfig with default values
func NewDefaultGlobalConfig() *GlobalConfig {
	return &GlobalConfig{
		LogConfig:        logger.NewDefaultFileLogConfig(),
		ServerConfig:     server.NewDefaultServerConfig(),
		GitHubConfig:     github.NewDefaultClientConfig(),
		AuthorizerConfig: github.NewDefaultAuthorizerConfig(),
		RetryConfig:      httpclient.DefaultRetryHandlerConfig(),
	}
}

// LoadGlobalConfig loads the configuration from a file or default
// locations. YAML is preferred for .yaml/.yml extensions, JSON for the
// rest. A missing providedPath is an error; a missing default location
// just yields the defaults.
func LoadGlobalConfig(providedPath string, log zerolog.Logger) (*GlobalConfig, error) {
	cfg := NewDefaultGlobalConfig()

	filePath := GetConfigPath(providedPath)
	if filePath == "" {
		log.Debug().Msg("No config file found, using defaults")
		return cfg, nil
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, errorwrapper.WrapError(err, "failed to read config file")
	}

	if err := parseConfigContent(data, filePath, cfg); err != nil {
		return nil, errorwrapper.WrapError(err, "failed to parse config content")
	}

	log.Info().Str("config_file", filePath).Msg("Loaded configuration")
	return cfg, nil
}

// GetConfigPath resolves the config file path: the provided path wins,
// otherwise the first existing default location is used.
func GetConfigPath(providedPath string) string {
	if providedPath != "" {
		return providedPath
	}

	for _, candidate := range defaultConfigLocations() {
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}
	return ""
}

func defaultConfigLocations() []string {
	return []string{
		"config.yaml",
		"config.yml",
		"config.json",
		filepath.Join("config", "config.yaml"),
	}
}

// parseConfigContent parses the config content based on file extension
func parseConfigContent(data []byte, filePath string, cfg *GlobalConfig) error {
	ext := filepath.Ext(filePath)
	if ext == ".yaml" || ext == ".yml" {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return errorwrapper.NewError("failed to unmarshal YAML from '%s': %w", filePath, err)
		}
		return nil
	}
	if err := json.Unmarshal(data, cfg); err != nil {
		return errorwrapper.NewError("failed to unmarshal JSON from '%s': %w", filePath, err)
	}
	return nil
}
