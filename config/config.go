package config

import (
	"FF7Ultima/utils"
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v2"
)

// Settings defines the structure for configuration options
type Settings struct {
	ProcessNames      []string `yaml:"processNames"`
	PollIntervalMs    int      `yaml:"pollIntervalMs"`
	MinResidentMemory uint64   `yaml:"minResidentMemory"`
	Build             string   `yaml:"build"`
	AddressFile       string   `yaml:"addressFile"`
	RefreshMs         int      `yaml:"refreshMs"`
	LogLevel          string   `yaml:"logLevel"`
	LogFormat         string   `yaml:"logFormat"`
	Debug             bool     `yaml:"debug"`
}

// defaultSettings provides default values for settings
var defaultSettings = Settings{
	ProcessNames:      []string{"ff7_en.exe", "ff7.exe"},
	PollIntervalMs:    200,
	MinResidentMemory: 1024768, // a crashed game reports less than this
	Build:             "steam",
	AddressFile:       "",
	RefreshMs:         1000,
	LogLevel:          "info",
	LogFormat:         "text",
	Debug:             false,
}

// Defaults returns a copy of the default settings.
func Defaults() Settings {
	s := defaultSettings
	s.ProcessNames = append([]string(nil), defaultSettings.ProcessNames...)
	return s
}

// LoadConfig loads settings from a YAML file, creating the file with defaults if it doesn't exist.
// Keys missing from the file keep their default value.
func LoadConfig(filePath string) (*Settings, error) {
	if _, err := os.Stat(filePath); os.IsNotExist(err) {
		err := createDefaultConfig(filePath)
		if err != nil {
			return nil, err
		}
		utils.Log.Infof("Created default config file at %s", filePath)
	}

	file, err := os.Open(filePath)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	config := Defaults()
	decoder := yaml.NewDecoder(file)
	err = decoder.Decode(&config)
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("decode %s: %w", filePath, err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

// Validate rejects settings the locator and refresh loop cannot run with.
func (s *Settings) Validate() error {
	if len(s.ProcessNames) == 0 {
		return fmt.Errorf("processNames must list at least one executable")
	}
	if s.PollIntervalMs <= 0 {
		return fmt.Errorf("pollIntervalMs must be positive, got %d", s.PollIntervalMs)
	}
	if s.RefreshMs <= 0 {
		return fmt.Errorf("refreshMs must be positive, got %d", s.RefreshMs)
	}
	return nil
}

func (s *Settings) PollInterval() time.Duration {
	return time.Duration(s.PollIntervalMs) * time.Millisecond
}

func (s *Settings) RefreshInterval() time.Duration {
	return time.Duration(s.RefreshMs) * time.Millisecond
}

// createDefaultConfig creates a config file with default settings
func createDefaultConfig(filePath string) error {
	data, err := yaml.Marshal(&defaultSettings)
	if err != nil {
		return err
	}

	return os.WriteFile(filePath, data, 0644)
}
