package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	env "github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const (
	envPrefix        = "APP_"
	defaultConfigDir = "configs"
)

// Option configures Load.
type Option func(*loadOptions)

type loadOptions struct {
	configDir string
}

// WithConfigDir points Load at a directory other than ./configs.
func WithConfigDir(dir string) Option {
	return func(o *loadOptions) {
		o.configDir = dir
	}
}

// layer is one source in the precedence stack. Later layers win.
type layer struct {
	name string
	load func(k *koanf.Koanf) error
}

// Load builds the relay configuration for profile from, lowest precedence
// first: built-in defaults, {dir}/base.yaml, {dir}/{profile}.yaml and APP_
// environment variables. The result is validated before it is returned.
//
// An environment variable is matched against the keys already loaded, so
// underscores inside a key name survive:
//
//	APP_SERVER_READ_TIMEOUT            -> server.read_timeout
//	APP_LIFECYCLE_HARD_TIMEOUT         -> lifecycle.hard_timeout
//	APP_MAIL_CLIENT_RETRY_MAX_ATTEMPTS -> mail.client.retry.max_attempts
//
// When mail.api_key is empty and mail.api_key_file is set, the key is read
// from that file, so a mounted secret never has to pass through the
// environment.
func Load(profile string, opts ...Option) (*Config, error) {
	if err := validateProfile(profile); err != nil {
		return nil, err
	}

	o := &loadOptions{configDir: defaultConfigDir}
	for _, opt := range opts {
		opt(o)
	}

	k := koanf.New(".")
	for _, l := range []layer{
		{name: "defaults", load: loadDefaults},
		{name: "base config", load: yamlFile(filepath.Join(o.configDir, "base.yaml"))},
		{name: "profile " + profile, load: yamlFile(filepath.Join(o.configDir, profile+".yaml"))},
		{name: "environment", load: loadEnv},
	} {
		if err := l.load(k); err != nil {
			return nil, fmt.Errorf("loading %s: %w", l.name, err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}
	if err := cfg.Mail.resolveAPIKey(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}
	return &cfg, nil
}

// loadDefaults seeds every known key, so the environment layer can override
// keys that no YAML file mentions.
func loadDefaults(k *koanf.Koanf) error {
	for key, val := range defaults() {
		if err := k.Set(key, val); err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
	}
	return nil
}

func yamlFile(path string) func(*koanf.Koanf) error {
	return func(k *koanf.Koanf) error {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		return nil
	}
}

func loadEnv(k *koanf.Koanf) error {
	known := envKeys(k.Keys())
	return k.Load(env.Provider(".", env.Opt{
		Prefix: envPrefix,
		TransformFunc: func(name, value string) (string, any) {
			name = strings.ToLower(strings.TrimPrefix(name, envPrefix))
			if key, ok := known[name]; ok {
				return key, value
			}
			return strings.ReplaceAll(name, "_", "."), value
		},
	}), nil)
}

// envKeys maps the environment spelling of each dotted key to the key:
// "server_read_timeout" -> "server.read_timeout".
func envKeys(keys []string) map[string]string {
	m := make(map[string]string, len(keys))
	for _, key := range keys {
		m[strings.ReplaceAll(key, ".", "_")] = key
	}
	return m
}

func (m *MailConfig) resolveAPIKey() error {
	if m.APIKey != "" || m.APIKeyFile == "" {
		return nil
	}
	b, err := os.ReadFile(m.APIKeyFile)
	if err != nil {
		return fmt.Errorf("reading mail.api_key_file: %w", err)
	}
	m.APIKey = strings.TrimSpace(string(b))
	if m.APIKey == "" {
		return fmt.Errorf("mail.api_key_file %s is empty", m.APIKeyFile)
	}
	return nil
}

func validateProfile(profile string) error {
	switch {
	case strings.TrimSpace(profile) == "":
		return errors.New("profile must not be empty")
	case strings.ContainsAny(profile, `/\`), strings.Contains(profile, ".."):
		return fmt.Errorf("profile %q must be a bare name", profile)
	}
	return nil
}
