// This file contains the TOML configuration file layer.

package config

import (
	"flag"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	apperrors "github.com/agbru/bigcalc/internal/errors"
)

// fileConfig mirrors the configuration file:
//
//	format = "hex"
//	theme = "light"
//	log_level = "debug"
//	log_format = "json"
//	metrics_addr = ":9090"
//	no_color = false
//	quiet = false
//
//	[verify]
//	cases = 1000
//	limbs = 16
//	seed = 42
//	workers = 4
//	timeout = "2m"
type fileConfig struct {
	Format      string           `toml:"format"`
	Theme       string           `toml:"theme"`
	LogLevel    string           `toml:"log_level"`
	LogFormat   string           `toml:"log_format"`
	MetricsAddr string           `toml:"metrics_addr"`
	NoColor     bool             `toml:"no_color"`
	Quiet       bool             `toml:"quiet"`
	Verify      verifyFileConfig `toml:"verify"`
}

type verifyFileConfig struct {
	Cases   int    `toml:"cases"`
	Limbs   int    `toml:"limbs"`
	Seed    int64  `toml:"seed"`
	Workers int    `toml:"workers"`
	Timeout string `toml:"timeout"`
}

// fileKey binds a key of the configuration file to the CLI flag(s) that
// take precedence over it.
type fileKey struct {
	path  []string
	flags []string
	apply func(*AppConfig, fileConfig) error
}

var fileKeys = []fileKey{
	{[]string{"format"}, []string{"format"}, func(c *AppConfig, f fileConfig) error {
		c.Format = strings.ToLower(f.Format)
		return nil
	}},
	{[]string{"theme"}, []string{"theme"}, func(c *AppConfig, f fileConfig) error {
		c.Theme = strings.ToLower(f.Theme)
		return nil
	}},
	{[]string{"log_level"}, []string{"log-level"}, func(c *AppConfig, f fileConfig) error {
		c.LogLevel = f.LogLevel
		return nil
	}},
	{[]string{"log_format"}, []string{"log-format"}, func(c *AppConfig, f fileConfig) error {
		c.LogFormat = strings.ToLower(f.LogFormat)
		return nil
	}},
	{[]string{"metrics_addr"}, []string{"metrics-addr"}, func(c *AppConfig, f fileConfig) error {
		c.MetricsAddr = f.MetricsAddr
		return nil
	}},
	{[]string{"no_color"}, []string{"no-color"}, func(c *AppConfig, f fileConfig) error {
		c.NoColor = f.NoColor
		return nil
	}},
	{[]string{"quiet"}, []string{"quiet", "q"}, func(c *AppConfig, f fileConfig) error {
		c.Quiet = f.Quiet
		return nil
	}},
	{[]string{"verify", "cases"}, []string{"verify"}, func(c *AppConfig, f fileConfig) error {
		c.Verify = f.Verify.Cases
		return nil
	}},
	{[]string{"verify", "limbs"}, []string{"limbs"}, func(c *AppConfig, f fileConfig) error {
		c.Limbs = f.Verify.Limbs
		return nil
	}},
	{[]string{"verify", "seed"}, []string{"seed"}, func(c *AppConfig, f fileConfig) error {
		c.Seed = f.Verify.Seed
		return nil
	}},
	{[]string{"verify", "workers"}, []string{"workers"}, func(c *AppConfig, f fileConfig) error {
		c.Workers = f.Verify.Workers
		return nil
	}},
	{[]string{"verify", "timeout"}, []string{"timeout"}, func(c *AppConfig, f fileConfig) error {
		d, err := time.ParseDuration(f.Verify.Timeout)
		if err != nil {
			return err
		}
		c.Timeout = d
		return nil
	}},
}

// applyFile loads the TOML file at path into config for every key that was
// not set on the command line. Unknown keys are rejected so typos do not
// pass silently.
func applyFile(config *AppConfig, fs *flag.FlagSet, path string) error {
	var fc fileConfig
	meta, err := toml.DecodeFile(path, &fc)
	if err != nil {
		return apperrors.NewConfigError("%s: failed to parse TOML: %v", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return apperrors.NewConfigError("%s: unknown key %q", path, undecoded[0].String())
	}
	for _, k := range fileKeys {
		if !meta.IsDefined(k.path...) || isFlagSetAny(fs, k.flags...) {
			continue
		}
		if err := k.apply(config, fc); err != nil {
			return apperrors.NewConfigError("%s: %s: %v", path, strings.Join(k.path, "."), err)
		}
	}
	return nil
}
