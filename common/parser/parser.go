package parser

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"cxd/common/config"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"
)

func isTOML(filePath string) bool {
	return strings.EqualFold(filepath.Ext(filePath), ".toml")
}

// ParseConfig reads and parses a configuration file.
// Files ending in .toml are decoded as TOML, anything else as JSON.
// Keys missing from the file keep their default value.
func ParseConfig(filePath string) (*config.Config, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	// Read the file content
	content, err := io.ReadAll(file)
	if err != nil {
		return nil, err
	}

	// Apply template processing
	processedContent, err := ApplyTemplate(content)
	if err != nil {
		return nil, err
	}

	// Set default values before decoding
	cfg := config.Default()

	if isTOML(filePath) {
		if _, err := toml.Decode(string(processedContent), cfg); err != nil {
			return nil, err
		}
	} else if err := json.Unmarshal(processedContent, cfg); err != nil {
		return nil, err
	}

	log.Debugf("Configuration: %+v", *cfg)
	return cfg, nil
}

func ValidateConfig(cfg *config.Config) error {
	if cfg.LogConfig.LogLevel != "" {
		if _, err := log.ParseLevel(cfg.LogConfig.LogLevel); err != nil {
			return fmt.Errorf("invalid log level: %s", cfg.LogConfig.LogLevel)
		}
	}
	return cfg.Validate()
}

// GenerateConfig writes the default configuration to filePath.
func GenerateConfig(filePath string) error {
	file, err := os.Create(filePath)
	if err != nil {
		return err
	}
	defer file.Close()

	cfg := config.Default()
	if isTOML(filePath) {
		err = toml.NewEncoder(file).Encode(cfg)
	} else {
		enc := json.NewEncoder(file)
		enc.SetIndent("", "  ")
		err = enc.Encode(cfg)
	}
	if err != nil {
		return err
	}

	if abs, err := filepath.Abs(filePath); err == nil {
		filePath = abs
	}
	log.Infof("Generated configuration here: %s", filePath)
	return nil
}
