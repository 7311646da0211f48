// Copyright 2025 The Embedded Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package config loads the boardgen tool configuration. Values come from,
// in rising precedence, built-in defaults, an optional boardgen.toml file
// and BOARDGEN_* environment variables; command line flags override all of
// them in the cmd layer.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

const (
	// AppName is the tool name, also the config file base name.
	AppName = "boardgen"
	// EnvPrefix prefixes the environment variables read by the tool.
	EnvPrefix = "BOARDGEN"
)

// Config holds the tool configuration.
type Config struct {
	// LayoutDir is the directory scanned for .layout files.
	LayoutDir string `mapstructure:"layout_dir"`
	// OutDir is the directory the generated files are written to.
	OutDir string `mapstructure:"out_dir"`
	// Package is the name of the generated package.
	Package string `mapstructure:"package"`
	// ImportRoot is the import path of the generated package. Empty means
	// derive it from the enclosing go.mod.
	ImportRoot string `mapstructure:"import_root"`
	// Jobs limits how many layout files are parsed concurrently. Zero or
	// negative means one per CPU.
	Jobs int `mapstructure:"jobs"`
	// Verbose enables debug logging.
	Verbose bool `mapstructure:"verbose"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		LayoutDir: "layouts",
		OutDir:    "boards",
		Package:   "boards",
	}
}

// Load reads the configuration. If file is not empty it must name an
// existing config file; otherwise boardgen.toml is looked up in the
// current directory and is optional.
func Load(file string) (Config, error) {
	def := Default()

	v := viper.New()
	v.SetDefault("layout_dir", def.LayoutDir)
	v.SetDefault("out_dir", def.OutDir)
	v.SetDefault("package", def.Package)
	v.SetDefault("import_root", def.ImportRoot)
	v.SetDefault("jobs", def.Jobs)
	v.SetDefault("verbose", def.Verbose)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return def, fmt.Errorf("read config %s: %w", file, err)
		}
	} else {
		v.SetConfigName(AppName)
		v.SetConfigType("toml")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return def, fmt.Errorf("read config: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return def, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}
