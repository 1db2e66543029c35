package main

import (
	"errors"
	"io/fs"
	"os"

	"github.com/rifflock/lfshook"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"msgsend/rcs"
	"msgsend/solapi"
)

// Config describes the application settings.
type Config struct {
	Log LogConfig  `yaml:"log,omitempty"` // log output
	RCS RCSConfig  `yaml:"rcs,omitempty"` // RCS option rules
	API *APIConfig `yaml:"api,omitempty"` // credentials for sending
}

// LogConfig sets the log level and optional per-level log files.
type LogConfig struct {
	Level string            `yaml:"level,omitempty"` // debug, info, warning, error
	Files map[string]string `yaml:"files,omitempty"` // level name -> file path
}

// RCSConfig holds the RCS validation rules.
type RCSConfig struct {
	MaxButtons int `yaml:"maxButtons,omitempty"` // 0 keeps button lists unbounded
}

// APIConfig holds the messaging API credentials.
type APIConfig struct {
	Key    string `yaml:"key"`
	Secret string `yaml:"secret"`
	URL    string `yaml:"url,omitempty"`
}

// ParseConfig parses the configuration and applies defaults and
// environment overrides.
func ParseConfig(data []byte) (*Config, error) {
	config := new(Config)
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, err
	}
	if config.Log.Level == "" {
		config.Log.Level = "info"
	}
	if _, err := logrus.ParseLevel(config.Log.Level); err != nil {
		return nil, err
	}
	for name := range config.Log.Files {
		if _, err := logrus.ParseLevel(name); err != nil {
			return nil, err
		}
	}
	key, secret := os.Getenv("SOLAPI_API_KEY"), os.Getenv("SOLAPI_API_SECRET")
	if key != "" || secret != "" {
		if config.API == nil {
			config.API = new(APIConfig)
		}
		if key != "" {
			config.API.Key = key
		}
		if secret != "" {
			config.API.Secret = secret
		}
	}
	return config, nil
}

// LoadConfig loads and parses the configuration file. A missing file yields
// the default configuration.
func LoadConfig(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if errors.Is(err, fs.ErrNotExist) {
		data, err = nil, nil
	}
	if err != nil {
		return nil, err
	}
	return ParseConfig(data)
}

// Logger configures the standard logrus logger and returns an entry for the
// application.
func (c *Config) Logger(debug bool) *logrus.Entry {
	logger := logrus.StandardLogger()
	level, _ := logrus.ParseLevel(c.Log.Level)
	if debug {
		level = logrus.DebugLevel
	}
	logger.SetLevel(level)
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	if len(c.Log.Files) > 0 {
		paths := make(lfshook.PathMap, len(c.Log.Files))
		for name, path := range c.Log.Files {
			lvl, _ := logrus.ParseLevel(name)
			paths[lvl] = path
		}
		logger.AddHook(lfshook.NewHook(paths, nil))
	}
	return logrus.NewEntry(logger).WithField("app", appName)
}

// Validator returns the RCS validator for the configured rules.
func (c *Config) Validator() *rcs.Validator {
	return rcs.NewValidator(rcs.WithMaxButtons(c.RCS.MaxButtons))
}

// Client returns the API client, or nil if no credentials are configured.
func (c *Config) Client(logger *logrus.Entry) *solapi.Client {
	if c.API == nil || c.API.Key == "" || c.API.Secret == "" {
		return nil
	}
	return &solapi.Client{
		APIKey:    c.API.Key,
		APISecret: c.API.Secret,
		BaseURL:   c.API.URL,
		Logger:    logger.WithField("api", "solapi"),
	}
}
