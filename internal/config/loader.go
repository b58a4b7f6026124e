package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"

	kerrors "github.com/matzehuels/kinship/pkg/errors"
)

// Config file locations.
const (
	GlobalConfigDir   = "kinship"
	GlobalConfigFile  = "config.toml"
	ProjectConfigFile = ".kinship.toml"

	// EnvPrefix prefixes environment overrides: KINSHIP_SERVER_ADDR sets
	// server.addr.
	EnvPrefix = "KINSHIP"
)

// NewViper returns a viper instance reading KINSHIP_* environment
// variables. Flags bound to it override everything else.
func NewViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	return v
}

// Load loads configuration into v and decodes it.
// Precedence (later overrides earlier):
//  1. Default() values
//  2. ~/.config/kinship/config.toml (global)
//  3. ./.kinship.toml (project)
//  4. the file named by the "config" key (--config or KINSHIP_CONFIG)
//  5. KINSHIP_* environment variables
//  6. flags bound to v
//
// Missing global and project files are ignored; an explicit file must exist.
func Load(v *viper.Viper) (*Config, error) {
	cfg := Default()

	defaults, err := structToMap(cfg)
	if err != nil {
		return nil, kerrors.Wrap(kerrors.ErrCodeInternal, err, "encode defaults")
	}
	if err := v.MergeConfigMap(defaults); err != nil {
		return nil, kerrors.Wrap(kerrors.ErrCodeInternal, err, "merge defaults")
	}

	for _, path := range []string{globalConfigPath(), ProjectConfigFile} {
		if path == "" {
			continue
		}
		if err := mergeFile(v, path, false); err != nil {
			return nil, err
		}
	}
	if explicit := v.GetString("config"); explicit != "" {
		if err := mergeFile(v, explicit, true); err != nil {
			return nil, err
		}
	}

	if err := v.Unmarshal(cfg, decodeHook()); err != nil {
		return nil, kerrors.Wrap(kerrors.ErrCodeInvalidConfig, err, "decode configuration")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// GlobalConfigPath returns where the global config file lives, whether or
// not it exists.
func GlobalConfigPath() string {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, GlobalConfigDir, GlobalConfigFile)
}

func globalConfigPath() string {
	path := GlobalConfigPath()
	if path == "" {
		return ""
	}
	if _, err := os.Stat(path); err != nil {
		return ""
	}
	return path
}

// mergeFile reads a TOML file into a scratch viper and merges its settings
// into v.
func mergeFile(v *viper.Viper, path string, required bool) error {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		if required {
			return kerrors.New(kerrors.ErrCodeFileNotFound, "config file %s does not exist", path)
		}
		return nil
	}
	if err != nil {
		return kerrors.Wrap(kerrors.ErrCodeInvalidConfig, err, "open %s", path)
	}
	defer func() { _ = f.Close() }()

	fv := viper.New()
	fv.SetConfigType("toml")
	if err := fv.ReadConfig(f); err != nil {
		return kerrors.Wrap(kerrors.ErrCodeInvalidConfig, err, "parse %s", path)
	}
	return v.MergeConfigMap(fv.AllSettings())
}

func decodeHook() viper.DecoderConfigOption {
	return viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
	))
}

// structToMap turns cfg into the nested map viper merges. Nested structs
// become maps keyed by their mapstructure tags.
func structToMap(cfg *Config) (map[string]any, error) {
	out := make(map[string]any)
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName: "mapstructure",
		Result:  &out,
	})
	if err != nil {
		return nil, err
	}
	if err := dec.Decode(cfg); err != nil {
		return nil, err
	}
	return out, nil
}
