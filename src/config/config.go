package config

import (
	"errors"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

const (
	ConfigPathEnvVar = "CONFIG_PATH"
	EnvPrefix        = "MARSPORT_"
)

var DefaultConfigPaths = []string{
	"marsport.yaml",
	"marsport.yml",
	"/etc/marsport/marsport.yaml",
}

// Config is loaded once at startup, before logging is configured, so that
// every package can read it from init().
var Config MarsportConfig

func init() {
	cfg, err := Load(configPath())
	if err != nil {
		// Logging depends on config, so there is nobody to tell but stderr.
		os.Stderr.WriteString("failed to load marsport config: " + err.Error() + "\n")
		cfg = Default()
	}
	Config = cfg
}

func Default() MarsportConfig {
	return MarsportConfig{
		Env:       Dev,
		Addr:      ":3030",
		BaseUrl:   "https://localhost:3030",
		LogLevel:  "info",
		LogFormat: "pretty",
		StaticDir: "spa/build",
		TLS: TLSConfig{
			CertFile:         "certs/server.cert",
			KeyFile:          "certs/server.key",
			AutocertCacheDir: "certs/autocert",
		},
		Auth: AuthConfig{
			CookieSecure: true,
		},
		SpaceX: SpaceXConfig{
			BaseUrl:         "https://api.spacexdata.com/v4",
			MonitorInterval: 5 * time.Minute,
		},
	}
}

// Load layers the defaults, an optional YAML file, and MARSPORT_ environment
// variables, in that order. Sections are separated by a double underscore in
// variable names, e.g. MARSPORT_SPACEX__BASE_URL.
func Load(path string) (MarsportConfig, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(Default(), "koanf"), nil); err != nil {
		return MarsportConfig{}, err
	}

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return MarsportConfig{}, err
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return MarsportConfig{}, err
	}

	var cfg MarsportConfig
	if err := k.Unmarshal("", &cfg); err != nil {
		return MarsportConfig{}, err
	}
	cfg.BaseUrl = strings.TrimSuffix(cfg.BaseUrl, "/")
	cfg.SpaceX.BaseUrl = strings.TrimSuffix(cfg.SpaceX.BaseUrl, "/")

	return cfg, nil
}

func envKey(key string) string {
	key = strings.TrimPrefix(key, EnvPrefix)
	return strings.ReplaceAll(strings.ToLower(key), "__", ".")
}

func configPath() string {
	if path := os.Getenv(ConfigPathEnvVar); path != "" {
		return path
	}
	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); !errors.Is(err, fs.ErrNotExist) {
			return path
		}
	}
	return ""
}
