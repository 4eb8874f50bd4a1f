package config

import (
	"errors"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"
	"go.trai.ch/quire/internal/core/domain"
	"go.trai.ch/quire/internal/core/ports"
	"go.trai.ch/zerr"
)

// EnvPrefix is the prefix of environment variables overriding settings.
const EnvPrefix = "QUIRE"

// SettingsLoader implements ports.SettingsLoader with viper.
//
// Precedence, highest first: QUIRE_* environment variables,
// .quire/settings.yaml under the project root, built-in defaults.
type SettingsLoader struct{}

var _ ports.SettingsLoader = SettingsLoader{}

// NewSettingsLoader creates a SettingsLoader.
func NewSettingsLoader() SettingsLoader {
	return SettingsLoader{}
}

// Load reads the settings of the project at root.
func (SettingsLoader) Load(root string) (domain.Settings, error) {
	v := newViperInstance()

	if root != "" {
		v.SetConfigFile(filepath.Join(root, domain.DefaultSettingsPath()))
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil && !isConfigNotFoundError(err) {
			return domain.Settings{}, zerr.With(zerr.Wrap(err, domain.ErrSettingsLoadFailed.Error()), "root", root)
		}
	}

	var settings domain.Settings
	if err := v.Unmarshal(&settings, viperDecoderOption()); err != nil {
		return domain.Settings{}, zerr.Wrap(err, domain.ErrSettingsLoadFailed.Error())
	}
	if settings.Parallelism <= 0 {
		settings.Parallelism = domain.DefaultSettings().Parallelism
	}
	if settings.Log.DebugFile != "" && root != "" && !filepath.IsAbs(settings.Log.DebugFile) {
		settings.Log.DebugFile = filepath.Join(root, settings.Log.DebugFile)
	}
	return settings, nil
}

func newViperInstance() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

func setDefaults(v *viper.Viper) {
	defaults := domain.DefaultSettings()
	v.SetDefault("parallelism", defaults.Parallelism)
	v.SetDefault("debounce", defaults.Debounce)
	v.SetDefault("log.json", defaults.Log.JSON)
	v.SetDefault("log.debug_file", defaults.Log.DebugFile)
}

// isConfigNotFoundError reports whether err means the settings file is absent.
func isConfigNotFoundError(err error) bool {
	var notFound viper.ConfigFileNotFoundError
	if errors.As(err, &notFound) {
		return true
	}
	return errors.Is(err, fs.ErrNotExist)
}

func viperDecoderOption() viper.DecoderConfigOption {
	return viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
		),
	)
}
