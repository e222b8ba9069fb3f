// Package config loads the application configuration from YAML.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the complete application configuration.
type Config struct {
	GPS     GPSConfig     `yaml:"gps"`
	API     APIConfig     `yaml:"api"`
	Cache   CacheConfig   `yaml:"cache"`
	Sites   SitesConfig   `yaml:"sites"`
	Simplex SimplexConfig `yaml:"simplex"`
	UDP     UDPConfig     `yaml:"udp"`
	MQTT    MQTTConfig    `yaml:"mqtt"`
	UI      UIConfig      `yaml:"ui"`
	Logging LoggingConfig `yaml:"logging"`
}

// GPSConfig controls the fix source.
type GPSConfig struct {
	Binary  string  `yaml:"binary"`   // gpspipe path, default "gpspipe"
	DemoLat float64 `yaml:"demo_lat"` // fallback position when no GPS
	DemoLon float64 `yaml:"demo_lon"`
}

// APIConfig controls the live repeater source. An empty key disables live
// fetching for the whole session.
type APIConfig struct {
	Key            string `yaml:"key"`
	BaseURL        string `yaml:"base_url"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

func (c APIConfig) Timeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return 8 * time.Second
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// CacheConfig controls the on-disk fallback cache. ForceRefresh is consumed
// on startup: the cache is flushed and the flag written back as false, so a
// one-shot refresh never becomes permanent.
type CacheConfig struct {
	Dir          string `yaml:"dir"`
	ForceRefresh bool   `yaml:"force_refresh"`
}

// SitesConfig points at the trunked site CSV export and its compiled db.
type SitesConfig struct {
	CSVPath string `yaml:"csv_path"`
	DBPath  string `yaml:"db_path"`
	Count   int    `yaml:"count"` // sites shown, default 10
}

// SimplexConfig points at the simplex frequency reference.
type SimplexConfig struct {
	CSVPath string `yaml:"csv_path"`
}

// UDPConfig controls the tower broadcast.
type UDPConfig struct {
	Enabled         bool   `yaml:"enabled"`
	Port            int    `yaml:"port"`
	BroadcastIP     string `yaml:"broadcast_ip"`
	IntervalSeconds int    `yaml:"send_interval"`
	TowerCount      int    `yaml:"tower_count"`
}

func (c UDPConfig) Interval() time.Duration {
	if c.IntervalSeconds <= 0 {
		return 25 * time.Second
	}
	return time.Duration(c.IntervalSeconds) * time.Second
}

// MQTTConfig mirrors the UDP payload to a broker when enabled.
type MQTTConfig struct {
	Enabled bool   `yaml:"enabled"`
	Broker  string `yaml:"broker"`
	Port    int    `yaml:"port"`
	Topic   string `yaml:"topic"`
}

// UIConfig controls the terminal dashboard.
type UIConfig struct {
	NightMode bool `yaml:"night_mode"`
}

// LoggingConfig contains logging settings.
type LoggingConfig struct {
	Enabled       bool   `yaml:"enabled"`
	Dir           string `yaml:"dir"`
	RetentionDays int    `yaml:"retention_days"`
}

// Load reads and parses the configuration file.
func Load(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	cfg.applyDefaults()
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.GPS.Binary == "" {
		c.GPS.Binary = "gpspipe"
	}
	if c.GPS.DemoLat == 0 && c.GPS.DemoLon == 0 {
		c.GPS.DemoLat = 44.9778
		c.GPS.DemoLon = -93.2650
	}
	if c.Cache.Dir == "" {
		c.Cache.Dir = "radio_cache"
	}
	if c.Sites.Count <= 0 {
		c.Sites.Count = 10
	}
	if c.Sites.CSVPath != "" && c.Sites.DBPath == "" {
		c.Sites.DBPath = c.Sites.CSVPath + ".db"
	}
	if c.UDP.Port <= 0 {
		c.UDP.Port = 12345
	}
	if c.UDP.BroadcastIP == "" {
		c.UDP.BroadcastIP = "255.255.255.255"
	}
	if c.UDP.TowerCount <= 0 {
		c.UDP.TowerCount = 2
	}
	if c.MQTT.Port <= 0 {
		c.MQTT.Port = 1883
	}
	if c.MQTT.Topic == "" {
		c.MQTT.Topic = "towerwitch/towers"
	}
}

// ConsumeForceRefresh reports whether a forced cache flush was requested and
// resets the flag in the file so the flush happens exactly once.
func ConsumeForceRefresh(filename string, cfg *Config) (bool, error) {
	if !cfg.Cache.ForceRefresh {
		return false, nil
	}
	cfg.Cache.ForceRefresh = false

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return true, fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(filename, data, 0o644); err != nil {
		return true, fmt.Errorf("failed to rewrite config: %w", err)
	}
	return true, nil
}
