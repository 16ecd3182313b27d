package main

import (
	"strings"

	u "github.com/araddon/gou"
	"github.com/pkg/errors"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config of the filtres command
type Config struct {
	Pretty   bool   `mapstructure:"pretty"`
	AST      bool   `mapstructure:"ast"`
	Schema   bool   `mapstructure:"schema"`
	LogLevel string `mapstructure:"log_level"`
	Config   string `mapstructure:"config"`
}

func newFlagSet() *pflag.FlagSet {
	fs := pflag.NewFlagSet("filtres", pflag.ContinueOnError)
	fs.Bool("pretty", false, "Indent the json output")
	fs.Bool("ast", false, "Print the parsed expression instead of the query")
	fs.Bool("schema", false, "Print the json schema of the query document and exit")
	fs.String("log-level", "error", "Log level: debug, info, warn, error")
	fs.String("config", "", "Path to the configuration file")

	normalizeFunc := fs.GetNormalizeFunc()
	fs.SetNormalizeFunc(func(fs *pflag.FlagSet, name string) pflag.NormalizedName {
		result := normalizeFunc(fs, name)
		name = strings.ReplaceAll(string(result), "-", "_")
		return pflag.NormalizedName(name)
	})
	return fs
}

// LoadConfig layers defaults < config file < FILTRES_* env < flags
func LoadConfig(fs *pflag.FlagSet, args []string) (*Config, error) {
	v := viper.New()
	v.SetDefault("pretty", false)
	v.SetDefault("ast", false)
	v.SetDefault("schema", false)
	v.SetDefault("log_level", "error")
	v.SetEnvPrefix("FILTRES")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if err := v.BindPFlags(fs); err != nil {
		return nil, errors.Wrap(err, "binding flags")
	}
	v.AutomaticEnv()

	configFile := v.GetString("config")
	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrapf(err, "reading config %s", configFile)
		}
	} else {
		v.SetConfigName("filtres")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound {
				return nil, errors.Wrap(err, "reading config")
			}
			u.Debugf("no config file, using defaults and command line/environment options")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "unable to decode config")
	}
	return &cfg, nil
}
