package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/jgoulah/ecomonitor/pkg/models"
)

// Config holds the application configuration
type Config struct {
	DataFile      string     `yaml:"data_file,omitempty"`     // JSON store (fallback: energy_data.json)
	DBPath        string     `yaml:"db_path,omitempty"`       // SQLite archive (fallback: data.db)
	ThresholdKWh  float64    `yaml:"threshold_kwh,omitempty"` // Advisory threshold (fallback: 10)
	Appliances    []string   `yaml:"appliances,omitempty"`    // Override of the simulated appliance set
	MQTT          MQTTConfig `yaml:"mqtt,omitempty"`
	HomeAssistant HAConfig   `yaml:"home_assistant,omitempty"`
}

// MQTTConfig holds MQTT broker settings for publishing
type MQTTConfig struct {
	Enabled     bool   `yaml:"enabled"`
	Broker      string `yaml:"broker"`                 // e.g., "localhost:1883"
	Username    string `yaml:"username,omitempty"`
	Password    string `yaml:"password,omitempty"`
	TopicPrefix string `yaml:"topic_prefix,omitempty"` // default "ecomonitor"
}

// HAConfig holds Home Assistant HTTP API configuration
type HAConfig struct {
	Enabled      bool   `yaml:"enabled"`
	URL          string `yaml:"url"`                     // e.g., "http://homeassistant.local:8123"
	Token        string `yaml:"token"`                   // Long-lived access token
	EntityPrefix string `yaml:"entity_prefix,omitempty"` // default "sensor.ecomonitor"
}

// Load reads the config file
func Load(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			// Return empty config if file doesn't exist
			return &Config{}, nil
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	return &cfg, nil
}

// Save writes the config to file with two-space indentation
func Save(configPath string, cfg *Config) error {
	if dir := filepath.Dir(configPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating config directory: %w", err)
		}
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	// 0600: the file may hold broker and Home Assistant credentials
	if err := os.WriteFile(configPath, buf.Bytes(), 0600); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}

// Default returns a config with every defaulted field spelled out
func Default() *Config {
	var c Config
	return &Config{
		DataFile:     c.GetDataFile(),
		DBPath:       c.GetDBPath(),
		ThresholdKWh: c.GetThreshold(),
		Appliances:   append([]string(nil), c.GetAppliances()...),
		MQTT: MQTTConfig{
			Broker:      "localhost:1883",
			TopicPrefix: c.MQTT.GetTopicPrefix(),
		},
		HomeAssistant: HAConfig{
			URL:          "http://homeassistant.local:8123",
			EntityPrefix: c.HomeAssistant.GetEntityPrefix(),
		},
	}
}

// DefaultConfigPath returns the default config file path (local directory)
func DefaultConfigPath() string {
	return "config.yaml"
}

// GetDataFile returns the JSON data file path
func (c *Config) GetDataFile() string {
	if c.DataFile == "" {
		return "energy_data.json"
	}
	return c.DataFile
}

// GetDBPath returns the archive database path
func (c *Config) GetDBPath() string {
	if c.DBPath == "" {
		return "data.db"
	}
	return c.DBPath
}

// GetThreshold returns the advisory threshold in kWh with a default of 10
func (c *Config) GetThreshold() float64 {
	if c.ThresholdKWh <= 0 {
		return 10.0
	}
	return c.ThresholdKWh
}

// GetAppliances returns the configured appliances, falling back to the fixed set
func (c *Config) GetAppliances() []string {
	if len(c.Appliances) > 0 {
		return c.Appliances
	}
	return models.Appliances
}

// GetTopicPrefix returns the MQTT topic prefix
func (c *MQTTConfig) GetTopicPrefix() string {
	if c.TopicPrefix == "" {
		return "ecomonitor"
	}
	return c.TopicPrefix
}

// GetEntityPrefix returns the Home Assistant entity id prefix
func (c *HAConfig) GetEntityPrefix() string {
	if c.EntityPrefix == "" {
		return "sensor.ecomonitor"
	}
	return c.EntityPrefix
}
