package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config is the top-level echosense configuration.
type Config struct {
	Extraction Extraction `mapstructure:"extraction"`
	Generation Generation `mapstructure:"generation"`
	Output     Output     `mapstructure:"output"`
}

// Extraction configures the webpage-to-text service.
type Extraction struct {
	Endpoint string `mapstructure:"endpoint"`
	AppID    string `mapstructure:"app_id"`
}

// Generation configures the OpenAI-compatible generation service.
type Generation struct {
	BaseURL string `mapstructure:"base_url"`
	APIKey  string `mapstructure:"api_key"`
	Model   string `mapstructure:"model"`
}

// Output defines output preferences.
type Output struct {
	Color bool `mapstructure:"color"`
	Width int  `mapstructure:"width"`
}

// expandPath replaces a leading ~ with the user's home directory.
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}

// Load reads configuration from the given path (or the default location)
// and returns a Config with all defaults applied. Environment variables
// prefixed ECHOSENSE_ override the file (ECHOSENSE_GENERATION_API_KEY
// keeps the key out of the config file).
func Load(cfgFile string) (*Config, error) {
	v := viper.New()

	v.SetDefault("extraction.endpoint", DefaultExtraction.Endpoint)
	v.SetDefault("extraction.app_id", DefaultExtraction.AppID)
	v.SetDefault("generation.base_url", DefaultGeneration.BaseURL)
	v.SetDefault("generation.api_key", DefaultGeneration.APIKey)
	v.SetDefault("generation.model", DefaultGeneration.Model)
	v.SetDefault("output.color", DefaultOutput.Color)
	v.SetDefault("output.width", DefaultOutput.Width)

	v.SetEnvPrefix("echosense")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if cfgFile != "" {
		v.SetConfigFile(expandPath(cfgFile))
	} else {
		configDir := expandPath(DefaultConfigDir)
		v.AddConfigPath(configDir)
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	// Read config file if it exists; missing file is not an error.
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			if !os.IsNotExist(err) {
				return nil, err
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// DBPath returns the full path to the SQLite database.
func DBPath() string {
	return filepath.Join(expandPath(DefaultConfigDir), DefaultDBName)
}

// ConfigDir returns the expanded configuration directory.
func ConfigDir() string {
	return expandPath(DefaultConfigDir)
}
