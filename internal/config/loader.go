package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Config holds runtime parameters for the service.
// Zero values mean "unspecified" and will be replaced by defaults in main.
type Config struct {
	Addr            string   `json:"addr" yaml:"addr" toml:"addr"`
	ModelsDir       string   `json:"models_dir" yaml:"models_dir" toml:"models_dir"`
	ModelsFile      string   `json:"models_file" yaml:"models_file" toml:"models_file"`
	TotalRAMBytes   uint64   `json:"total_ram_bytes" yaml:"total_ram_bytes" toml:"total_ram_bytes"`
	ProbeTimeoutMS  int      `json:"probe_timeout_ms" yaml:"probe_timeout_ms" toml:"probe_timeout_ms"`
	ProbeCacheTTLMS int      `json:"probe_cache_ttl_ms" yaml:"probe_cache_ttl_ms" toml:"probe_cache_ttl_ms"`
	ResendURL       string   `json:"resend_url" yaml:"resend_url" toml:"resend_url"`
	ResendTimeoutMS int      `json:"resend_timeout_ms" yaml:"resend_timeout_ms" toml:"resend_timeout_ms"`
	LogLevel        string   `json:"log_level" yaml:"log_level" toml:"log_level"`
	LogFormat       string   `json:"log_format" yaml:"log_format" toml:"log_format"`
	MaxBodyBytes    int64    `json:"max_body_bytes" yaml:"max_body_bytes" toml:"max_body_bytes"`
	CORSEnabled     *bool    `json:"cors_enabled" yaml:"cors_enabled" toml:"cors_enabled"`
	CORSOrigins     []string `json:"cors_origins" yaml:"cors_origins" toml:"cors_origins"`
}

// CORS reports whether CORS is enabled. Unset means disabled.
func (c Config) CORS() bool { return c.CORSEnabled != nil && *c.CORSEnabled }

// Load reads a configuration file based on its extension.
// Supports: .yaml/.yml, .json, .toml
func Load(path string) (Config, error) {
	var cfg Config
	if path == "" {
		return cfg, fmt.Errorf("empty config path")
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return cfg, err
		}
	case ".json":
		if err := json.Unmarshal(b, &cfg); err != nil {
			return cfg, err
		}
	case ".toml":
		if err := toml.Unmarshal(b, &cfg); err != nil {
			return cfg, err
		}
	default:
		return cfg, fmt.Errorf("unsupported config extension: %s", ext)
	}
	return cfg, nil
}

// Merge returns base with every non-zero field of over applied on top.
func Merge(base, over Config) Config {
	out := base
	if over.Addr != "" {
		out.Addr = over.Addr
	}
	if over.ModelsDir != "" {
		out.ModelsDir = over.ModelsDir
	}
	if over.ModelsFile != "" {
		out.ModelsFile = over.ModelsFile
	}
	if over.TotalRAMBytes != 0 {
		out.TotalRAMBytes = over.TotalRAMBytes
	}
	if over.ProbeTimeoutMS != 0 {
		out.ProbeTimeoutMS = over.ProbeTimeoutMS
	}
	if over.ProbeCacheTTLMS != 0 {
		out.ProbeCacheTTLMS = over.ProbeCacheTTLMS
	}
	if over.ResendURL != "" {
		out.ResendURL = over.ResendURL
	}
	if over.ResendTimeoutMS != 0 {
		out.ResendTimeoutMS = over.ResendTimeoutMS
	}
	if over.LogLevel != "" {
		out.LogLevel = over.LogLevel
	}
	if over.LogFormat != "" {
		out.LogFormat = over.LogFormat
	}
	if over.MaxBodyBytes != 0 {
		out.MaxBodyBytes = over.MaxBodyBytes
	}
	if over.CORSEnabled != nil {
		v := *over.CORSEnabled
		out.CORSEnabled = &v
	}
	if len(over.CORSOrigins) > 0 {
		out.CORSOrigins = append([]string(nil), over.CORSOrigins...)
	}
	return out
}
