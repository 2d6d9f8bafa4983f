// Package config provides configuration loading and defaults for echosense.
package config

// DefaultConfigDir is the default location for echosense configuration.
const DefaultConfigDir = "~/.config/echosense"

// DefaultDBName is the filename for the SQLite database.
const DefaultDBName = "echosense.db"

// DefaultConfigFile is the filename for the YAML config.
const DefaultConfigFile = "config.yaml"

// DefaultGenerationModel is the default deployment name sent to the
// generation service.
const DefaultGenerationModel = "qwen-plus"

// DefaultExtraction holds the default extraction-service settings.
var DefaultExtraction = Extraction{
	Endpoint: "",
	AppID:    "",
}

// DefaultGeneration holds the default generation-service settings.
var DefaultGeneration = Generation{
	BaseURL: "",
	APIKey:  "",
	Model:   DefaultGenerationModel,
}

// DefaultOutput holds the default output preferences.
var DefaultOutput = Output{
	Color: true,
	Width: 80,
}
