package config

import (
	"strings"
	"time"

	"github.com/rs/zerolog"
)

type Environment string

const (
	Live Environment = "live"
	Beta Environment = "beta"
	Dev  Environment = "dev"
)

type MarsportConfig struct {
	Env       Environment `koanf:"env"`
	Addr      string      `koanf:"addr"`
	BaseUrl   string      `koanf:"base_url"`
	LogLevel  string      `koanf:"log_level"`
	LogFormat string      `koanf:"log_format"`
	StaticDir string      `koanf:"static_dir"`

	TLS    TLSConfig    `koanf:"tls"`
	Auth   AuthConfig   `koanf:"auth"`
	SpaceX SpaceXConfig `koanf:"spacex"`
	Dev    DevConfig    `koanf:"dev"`
}

type TLSConfig struct {
	CertFile string `koanf:"cert_file"`
	KeyFile  string `koanf:"key_file"`

	// When no certificate files are given, certificates for these hosts are
	// requested from Let's Encrypt instead.
	AutocertHosts    []string `koanf:"autocert_hosts"`
	AutocertCacheDir string   `koanf:"autocert_cache_dir"`
}

func (c TLSConfig) HasCertFiles() bool {
	return c.CertFile != "" && c.KeyFile != ""
}

func (c TLSConfig) Enabled() bool {
	return c.HasCertFiles() || len(c.AutocertHosts) > 0
}

type AuthConfig struct {
	CookieSecure bool `koanf:"cookie_secure"`
}

type SpaceXConfig struct {
	BaseUrl         string        `koanf:"base_url"`
	MonitorInterval time.Duration `koanf:"monitor_interval"`
}

type DevConfig struct {
	LiveTemplates bool `koanf:"live_templates"`
}

func (c MarsportConfig) ZerologLevel() zerolog.Level {
	level, err := zerolog.ParseLevel(strings.ToLower(c.LogLevel))
	if err != nil || c.LogLevel == "" {
		return zerolog.InfoLevel
	}
	return level
}
