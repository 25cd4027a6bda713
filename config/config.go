package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

// Config represents the taskpilot configuration
type Config struct {
	Model            string `json:"model"`              // LLM in provider:model form
	APIKey           string `json:"api_key"`            // API key for LLM providers
	BaseURL          string `json:"base_url"`           // Base URL for LLM providers (optional)
	SMTPHost         string `json:"smtp_host"`          // Outgoing mail server
	SMTPPort         int    `json:"smtp_port"`          // Outgoing mail port
	FromEmail        string `json:"from_email"`         // Sender address for all outgoing mail
	EmailPassword    string `json:"email_password"`     // App password for the sender account
	QuoteBaseURL     string `json:"quote_base_url"`     // Stock quote endpoint (optional override)
	ConvertAPISecret string `json:"convertapi_secret"`  // Secret for the PDF compression service
	ImageQuality     int    `json:"image_quality"`      // JPEG quality used when recompressing images
}

// DefaultConfig returns a config with default values
func DefaultConfig() *Config {
	return &Config{
		Model:        "openai:gpt-4o-mini",
		SMTPHost:     "smtp.gmail.com",
		SMTPPort:     587,
		QuoteBaseURL: "https://query1.finance.yahoo.com",
		ImageQuality: 60,
	}
}

// LoadConfig loads configuration from global and local sources
func LoadConfig(workDir string) (*Config, error) {
	// Start with default config
	cfg := DefaultConfig()

	// Load global config
	globalCfg, err := loadGlobalConfig()
	if err == nil {
		mergeCfg(cfg, globalCfg)
	}

	// Load local config (takes precedence)
	if workDir != "" {
		localCfg, err := loadLocalConfig(workDir)
		if err == nil {
			mergeCfg(cfg, localCfg)
		}
	}

	// Environment variables win over files for secrets
	if v := os.Getenv("TASKPILOT_API_KEY"); v != "" {
		cfg.APIKey = v
	}
	if v := os.Getenv("EMAIL_PASSWORD"); v != "" {
		cfg.EmailPassword = v
	}
	if v := os.Getenv("CONVERTAPI_SECRET"); v != "" {
		cfg.ConvertAPISecret = v
	}

	return cfg, nil
}

// Get retrieves a configuration value by key
func (c *Config) Get(key string) (interface{}, error) {
	switch key {
	case "model":
		return c.Model, nil
	case "api_key":
		return c.APIKey, nil
	case "base_url":
		return c.BaseURL, nil
	case "smtp_host":
		return c.SMTPHost, nil
	case "smtp_port":
		return c.SMTPPort, nil
	case "from_email":
		return c.FromEmail, nil
	case "quote_base_url":
		return c.QuoteBaseURL, nil
	case "image_quality":
		return c.ImageQuality, nil
	default:
		return nil, fmt.Errorf("unknown config key: %s", key)
	}
}

// Set updates a configuration value by key
func (c *Config) Set(key string, value interface{}) error {
	// Convert value to string (CLI input is always string)
	str, ok := value.(string)
	if !ok {
		return fmt.Errorf("expected string value for %s", key)
	}

	switch key {
	case "model":
		c.Model = str
		return nil
	case "api_key":
		c.APIKey = str
		return nil
	case "base_url":
		c.BaseURL = str
		return nil
	case "smtp_host":
		c.SMTPHost = str
		return nil
	case "smtp_port":
		port, err := strconv.Atoi(str)
		if err != nil {
			return fmt.Errorf("expected numeric value for smtp_port, got: %s", str)
		}
		c.SMTPPort = port
		return nil
	case "from_email":
		c.FromEmail = str
		return nil
	case "email_password":
		c.EmailPassword = str
		return nil
	case "quote_base_url":
		c.QuoteBaseURL = str
		return nil
	case "convertapi_secret":
		c.ConvertAPISecret = str
		return nil
	case "image_quality":
		q, err := strconv.Atoi(str)
		if err != nil || q < 1 || q > 100 {
			return fmt.Errorf("expected quality between 1 and 100 for image_quality, got: %s", str)
		}
		c.ImageQuality = q
		return nil
	default:
		return fmt.Errorf("unknown config key: %s", key)
	}
}

// loadGlobalConfig loads configuration from ~/.taskpilot/config.json
func loadGlobalConfig() (*Config, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}

	configPath := filepath.Join(homeDir, ".taskpilot", "config.json")
	return loadConfigFromFile(configPath)
}

// loadLocalConfig loads configuration from <dir>/.taskpilot/config.json
func loadLocalConfig(workDir string) (*Config, error) {
	configPath := filepath.Join(workDir, ".taskpilot", "config.json")
	return loadConfigFromFile(configPath)
}

// loadConfigFromFile loads configuration from a specific file
func loadConfigFromFile(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, err
	}

	var cfg Config
	err = json.Unmarshal(data, &cfg)
	if err != nil {
		return nil, err
	}

	return &cfg, nil
}

// SaveLocalConfig saves configuration to <dir>/.taskpilot/config.json
func SaveLocalConfig(workDir string, cfg *Config) error {
	dir := filepath.Join(workDir, ".taskpilot")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(filepath.Join(dir, "config.json"), data, 0644)
}

// mergeCfg merges source config into destination config
func mergeCfg(dst, src *Config) {
	if src.Model != "" {
		dst.Model = src.Model
	}
	if src.APIKey != "" {
		dst.APIKey = src.APIKey
	}
	if src.BaseURL != "" {
		dst.BaseURL = src.BaseURL
	}
	if src.SMTPHost != "" {
		dst.SMTPHost = src.SMTPHost
	}
	if src.SMTPPort != 0 {
		dst.SMTPPort = src.SMTPPort
	}
	if src.FromEmail != "" {
		dst.FromEmail = src.FromEmail
	}
	if src.EmailPassword != "" {
		dst.EmailPassword = src.EmailPassword
	}
	if src.QuoteBaseURL != "" {
		dst.QuoteBaseURL = src.QuoteBaseURL
	}
	if src.ConvertAPISecret != "" {
		dst.ConvertAPISecret = src.ConvertAPISecret
	}
	if src.ImageQuality != 0 {
		dst.ImageQuality = src.ImageQuality
	}
}
