package service

import (
	"fmt"
	"os"

	"github.com/ayliff/taskday/internal/config"
)

// ConfigService provides operations for managing configuration
type ConfigService struct {
	configPath string
	config     config.Config
}

// NewConfigService creates a new ConfigService
func NewConfigService(configPath string, cfg config.Config) *ConfigService {
	return &ConfigService{
		configPath: configPath,
		config:     cfg,
	}
}

// Get returns the current configuration
func (s *ConfigService) Get() config.Config {
	return s.config
}

// GetPath returns the path to the config file
func (s *ConfigService) GetPath() string {
	return s.configPath
}

// Exists checks if the config file exists
func (s *ConfigService) Exists() bool {
	_, err := os.Stat(s.configPath)
	return err == nil
}

// Update validates and persists new configuration values. Days already
// pinned keep their frozen policy; the new values apply from the next
// pin onward.
func (s *ConfigService) Update(cfg config.Config) error {
	if err := config.Save(s.configPath, cfg); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	s.config = cfg
	return nil
}

// Init writes the default configuration file
func (s *ConfigService) Init() error {
	if s.Exists() {
		return fmt.Errorf("config file already exists at %s", s.configPath)
	}
	return s.Update(config.DefaultConfig())
}

// Reload reloads the configuration from disk
func (s *ConfigService) Reload() error {
	cfg, err := config.LoadOrDefault(s.configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	s.config = cfg
	return nil
}
