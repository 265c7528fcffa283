// Package config holds the bitgen command options and resolves them from
// flags, environment and an optional TOML file.
package config

import (
	"fmt"
	"io"
	"runtime"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/alexhholmes/bitlayout/internal/schema"
)

// EnvPrefix prefixes the environment variable of every option, e.g.
// BITGEN_LOG_LEVEL.
const EnvPrefix = "BITGEN"

// Keys lists every option name accepted in a configuration file.
var Keys = []string{"config", "log-level", "overflow", "suffix", "check", "concurrency"}

// Config is the resolved set of options.
type Config struct {
	// Overflow set to "reject" generates TryPack for every struct.
	Overflow string
	// Suffix is appended to the input name to form the output file name.
	Suffix string
	// Check compares generated code with the files on disk instead of
	// writing them.
	Check       bool
	LogLevel    string
	Concurrency int
}

// Default returns the built-in defaults.
func Default() Config {
	return Config{
		Overflow:    "truncate",
		Suffix:      "_bits",
		LogLevel:    "warn",
		Concurrency: runtime.GOMAXPROCS(0),
	}
}

// GlobalFlags registers the options shared by every command.
func (c *Config) GlobalFlags(fs *pflag.FlagSet) {
	fs.StringP("config", "c", "", "Configuration file to read from.")
	fs.StringVar(&c.LogLevel, "log-level", c.LogLevel, "Log level (debug, info, warn, error).")
}

// GenerateFlags registers the options of the generate command.
func (c *Config) GenerateFlags(fs *pflag.FlagSet) {
	fs.StringVar(&c.Overflow, "overflow", c.Overflow, "Overflow policy forced on every struct (truncate, reject).")
	fs.StringVar(&c.Suffix, "suffix", c.Suffix, "Suffix of generated file names.")
	fs.BoolVar(&c.Check, "check", c.Check, "Report differences instead of writing files.")
	fs.IntVarP(&c.Concurrency, "concurrency", "j", c.Concurrency, "Number of files processed at once.")
}

// Validate checks option values.
func (c Config) Validate() error {
	if _, err := schema.ParseOverflowPolicy(c.Overflow); err != nil {
		return err
	}
	if _, err := zapcore.ParseLevel(c.LogLevel); err != nil {
		return errors.Wrap(err, "log-level")
	}
	if c.Suffix == "" {
		return errors.New("suffix must not be empty")
	}
	if c.Concurrency < 1 {
		return errors.Errorf("concurrency must be at least 1, got %d", c.Concurrency)
	}
	return nil
}

// Policy returns the forced overflow policy.
func (c Config) Policy() schema.OverflowPolicy {
	p, _ := schema.ParseOverflowPolicy(c.Overflow)
	return p
}

// Logger builds a console logger writing to w at the configured level.
func (c Config) Logger(w io.Writer) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(c.LogLevel)
	if err != nil {
		return nil, errors.Wrap(err, "log-level")
	}
	enc := zap.NewDevelopmentEncoderConfig()
	enc.TimeKey = ""
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(enc), zapcore.AddSync(w), level)
	return zap.New(core), nil
}

// SetAll takes a FlagSet to be the definition of all configuration options,
// as well as their defaults. It then reads from the command line, the
// environment, and a config file (if specified), and applies the
// configuration in that priority order. Since each flag holds a pointer to
// where its value is stored, SetAll modifies the options in place.
//
// Environment variables are the upper-cased flag names with dashes replaced by
// underscores, prefixed with EnvPrefix and an underscore.
func SetAll(v *viper.Viper, flags *pflag.FlagSet) error {
	if err := v.BindPFlags(flags); err != nil {
		return err
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	validTags := make(map[string]bool)
	for _, k := range Keys {
		validTags[k] = true
	}
	flags.VisitAll(func(f *pflag.Flag) {
		validTags[f.Name] = true
	})

	if c := v.GetString("config"); c != "" {
		v.SetConfigFile(c)
		v.SetConfigType("toml")
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("error reading configuration file '%s': %v", c, err)
		}
		for _, key := range v.AllKeys() {
			if !validTags[key] {
				return fmt.Errorf("invalid option in configuration file: %v", key)
			}
		}
	}

	var flagErr error
	flags.VisitAll(func(f *pflag.Flag) {
		if flagErr != nil || f.Changed {
			// Flags already hold the highest priority value
			return
		}
		flagErr = f.Value.Set(v.GetString(f.Name))
	})
	return flagErr
}
