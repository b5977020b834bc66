// Copyright 2025 KrakLabs
// SPDX-License-Identifier: AGPL-3.0-or-later

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/kraklabs/rosa/internal/bootstrap"
	"github.com/kraklabs/rosa/pkg/ros"
	"github.com/kraklabs/rosa/pkg/rospkg"
	"github.com/kraklabs/rosa/pkg/tools"
)

const (
	configDirName  = ".rosa"
	configFileName = "config.yaml"
	defaultTimeout = 10 * time.Second
)

// Config is the contents of .rosa/config.yaml.
type Config struct {
	MasterURI         string        `yaml:"master_uri" validate:"required,url"`
	CallerID          string        `yaml:"caller_id" validate:"required,startswith=/"`
	TimeoutRaw        string        `yaml:"timeout,omitempty"`
	Timeout           time.Duration `yaml:"-" validate:"gt=0"`
	ReservedNamespace string        `yaml:"reserved_namespace" validate:"required,startswith=/"`
	PackagePath       []string      `yaml:"package_path,omitempty" validate:"dive,required"`
	LogDir            string        `yaml:"log_dir,omitempty"`
	Blacklist         []string      `yaml:"blacklist,omitempty" validate:"dive,required"`
	MetricsAddr       string        `yaml:"metrics_addr,omitempty" validate:"omitempty,hostname_port"`

	// Source is the file the config was read from, empty for defaults.
	Source string `yaml:"-"`
}

var configValidate = validator.New()

// DefaultConfig returns the configuration used when no file is found.
func DefaultConfig() *Config {
	return &Config{
		MasterURI:         ros.DefaultMasterURI,
		CallerID:          ros.DefaultCallerID,
		TimeoutRaw:        defaultTimeout.String(),
		Timeout:           defaultTimeout,
		ReservedNamespace: tools.DefaultReservedNamespace,
	}
}

// ConfigPath returns the config file path below dir.
func ConfigPath(dir string) string {
	return filepath.Join(dir, configDirName, configFileName)
}

// findConfig returns the first existing config file among ./.rosa and
// ~/.rosa, or "" if there is none.
func findConfig() string {
	var candidates []string
	if cwd, err := os.Getwd(); err == nil {
		candidates = append(candidates, ConfigPath(cwd))
	}
	if home, err := os.UserHomeDir(); err == nil {
		candidates = append(candidates, ConfigPath(home))
	}
	for _, c := range candidates {
		if _, err := os.Stat(c); err == nil {
			return c
		}
	}
	return ""
}

// LoadConfig reads the config at path, or the first one found when path is
// empty. Without any file the defaults apply. ROS_MASTER_URI,
// ROS_PACKAGE_PATH and ROS_LOG_DIR override the file.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		path = findConfig()
	}

	cfg := DefaultConfig()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		if err := yaml.Unmarshal([]byte(expandEnvVars(string(data))), cfg); err != nil {
			return nil, fmt.Errorf("parsing config file %s: %w", path, err)
		}
		cfg.Source = path
	}

	applyEnvOverrides(cfg)

	if cfg.TimeoutRaw != "" {
		d, err := time.ParseDuration(cfg.TimeoutRaw)
		if err != nil {
			return nil, fmt.Errorf("parsing timeout %q: %w", cfg.TimeoutRaw, err)
		}
		cfg.Timeout = d
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}
	return cfg, nil
}

var envVarPattern = regexp.MustCompile(`\$\{([^}]+)\}`)

// expandEnvVars replaces ${VAR} with the variable's value, or "" if unset.
func expandEnvVars(s string) string {
	return envVarPattern.ReplaceAllStringFunc(s, func(match string) string {
		return os.Getenv(envVarPattern.FindStringSubmatch(match)[1])
	})
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("ROS_MASTER_URI"); v != "" {
		cfg.MasterURI = v
	}
	if roots := rospkg.RootsFromEnv(); len(roots) > 0 {
		cfg.PackagePath = roots
	}
	if v := os.Getenv("ROS_LOG_DIR"); v != "" {
		cfg.LogDir = v
	}
}

// Validate checks field constraints and that blacklist entries compile.
func (c *Config) Validate() error {
	if err := configValidate.Struct(c); err != nil {
		if verrs, ok := err.(validator.ValidationErrors); ok {
			var msgs []string
			for _, fe := range verrs {
				msgs = append(msgs, fmt.Sprintf("%s failed %q", yamlName(fe.StructField()), fe.Tag()))
			}
			return fmt.Errorf("%s", strings.Join(msgs, "; "))
		}
		return err
	}
	for _, p := range c.Blacklist {
		if _, err := regexp.Compile(p); err != nil {
			return fmt.Errorf("blacklist pattern %q: %w", p, err)
		}
	}
	return nil
}

// yamlName maps a struct field to its key in the file.
func yamlName(field string) string {
	switch field {
	case "MasterURI":
		return "master_uri"
	case "CallerID":
		return "caller_id"
	case "Timeout":
		return "timeout"
	case "ReservedNamespace":
		return "reserved_namespace"
	case "PackagePath":
		return "package_path"
	case "Blacklist":
		return "blacklist"
	case "MetricsAddr":
		return "metrics_addr"
	default:
		return field
	}
}

// EnvConfig converts the file config to what bootstrap needs.
func (c *Config) EnvConfig() bootstrap.EnvConfig {
	return bootstrap.EnvConfig{
		MasterURI:         c.MasterURI,
		CallerID:          c.CallerID,
		Timeout:           c.Timeout,
		ReservedNamespace: c.ReservedNamespace,
		PackagePath:       c.PackagePath,
		LogDir:            c.LogDir,
		Blacklist:         c.Blacklist,
	}
}

const configHeader = `# rosa configuration
#
# ${VAR} is replaced by the environment variable VAR.
# ROS_MASTER_URI, ROS_PACKAGE_PATH and ROS_LOG_DIR override the
# matching keys below.
#
# blacklist: regex patterns hidden from every tool, e.g. ["/rosa", "secret"]
# metrics_addr: serve Prometheus metrics in MCP mode, e.g. ":9090"

`

// MarshalConfig renders cfg as a commented YAML file.
func MarshalConfig(cfg *Config) ([]byte, error) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("marshal config: %w", err)
	}
	return append([]byte(configHeader), data...), nil
}
