// Package config provides YAML-based configuration loading for Craneview.
package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config is the top-level Craneview configuration, loaded from craneview.yaml.
type Config struct {
	Port     string         `yaml:"port_name"` // e.g. "alexandria-east"
	Database DatabaseConfig `yaml:"database"`
	Dash     DashConfig     `yaml:"dashboard"`
	Digest   DigestConfig   `yaml:"digest"`
}

// DatabaseConfig holds connection settings for the record store.
type DatabaseConfig struct {
	Driver   string `yaml:"driver"` // "mysql" or "sqlite"
	Host     string `yaml:"host"`
	DBPort   int    `yaml:"port"`
	Name     string `yaml:"name"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Path     string `yaml:"path"` // sqlite file path
}

// DashConfig holds dashboard HTTP server settings.
type DashConfig struct {
	HTTPPort int `yaml:"http_port"`
}

// DigestConfig holds daily digest delivery settings.
type DigestConfig struct {
	Schedule string        `yaml:"schedule"` // 5-field cron expression
	Slack    SlackConfig   `yaml:"slack"`
	Discord  DiscordConfig `yaml:"discord"`
}

// SlackConfig holds Slack delivery credentials for the digest.
type SlackConfig struct {
	Token   string `yaml:"token"`
	Channel string `yaml:"channel"`
}

// DiscordConfig holds Discord delivery credentials for the digest.
type DiscordConfig struct {
	Token     string `yaml:"token"`
	ChannelID string `yaml:"channel_id"`
}

// Load reads a YAML config file from path and returns a validated Config.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	return Parse(data)
}

// Parse unmarshals YAML bytes into a validated Config.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config: parse: %w", err)
	}
	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// applyDefaults fills in derived and default values.
func (c *Config) applyDefaults() {
	if c.Database.Driver == "" {
		c.Database.Driver = "sqlite"
	}
	if c.Database.Host == "" {
		c.Database.Host = "127.0.0.1"
	}
	if c.Database.DBPort == 0 {
		c.Database.DBPort = 3306
	}
	if c.Database.Name == "" && c.Port != "" {
		c.Database.Name = "craneview_" + strings.ReplaceAll(c.Port, "-", "_")
	}
	if c.Database.User == "" {
		c.Database.User = "root"
	}
	if c.Database.Path == "" {
		c.Database.Path = "craneview.db"
	}
	if c.Dash.HTTPPort == 0 {
		c.Dash.HTTPPort = 8080
	}
	if c.Digest.Schedule == "" {
		c.Digest.Schedule = "0 6 * * *"
	}
}

// validate checks that all required fields are present and consistent.
func (c *Config) validate() error {
	var errs []string
	if c.Port == "" {
		errs = append(errs, "port_name is required")
	}
	switch c.Database.Driver {
	case "mysql", "sqlite":
	default:
		errs = append(errs, fmt.Sprintf("database.driver %q is not supported (mysql, sqlite)", c.Database.Driver))
	}
	if c.Digest.Slack.Token != "" && c.Digest.Slack.Channel == "" {
		errs = append(errs, "digest.slack.channel is required when a slack token is set")
	}
	if c.Digest.Discord.Token != "" && c.Digest.Discord.ChannelID == "" {
		errs = append(errs, "digest.discord.channel_id is required when a discord token is set")
	}
	if len(errs) > 0 {
		return fmt.Errorf("config: validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}
