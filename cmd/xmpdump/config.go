// seehuhn.de/go/xmpmeta - Extensible Metadata Platform in Go
// Copyright (C) 2024  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"seehuhn.de/go/xmpmeta"
)

// config holds the serialization defaults.  Values are read from
// xmpdump.yaml in the working directory and from XMPDUMP_* environment
// variables.  Command line flags take precedence.
type config struct {
	Indent   string `mapstructure:"indent"`
	Newline  string `mapstructure:"newline"`
	Padding  int    `mapstructure:"padding"`
	Compact  bool   `mapstructure:"compact"`
	Encoding string `mapstructure:"encoding"`
}

func loadConfig(cmd *cobra.Command) (*config, error) {
	v := viper.New()

	v.SetDefault("indent", "  ")
	v.SetDefault("newline", "\n")
	v.SetDefault("padding", 0)
	v.SetDefault("compact", false)
	v.SetDefault("encoding", "utf-8")

	v.SetConfigName("xmpdump")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	v.SetEnvPrefix("XMPDUMP")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	for _, name := range []string{"padding", "compact", "encoding"} {
		if f := cmd.Flags().Lookup(name); f != nil {
			if err := v.BindPFlag(name, f); err != nil {
				return nil, err
			}
		}
	}

	var cfg config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return &cfg, nil
}

var encodings = map[string]xmpmeta.SerializeFlags{
	"utf-8":    xmpmeta.EncodeUTF8,
	"utf-16be": xmpmeta.EncodeUTF16Big,
	"utf-16le": xmpmeta.EncodeUTF16Little,
	"utf-32be": xmpmeta.EncodeUTF32Big,
	"utf-32le": xmpmeta.EncodeUTF32Little,
}

// options converts the configuration into serialization options.
// A padding of 0 selects the default padding.
func (cfg *config) options() (*xmpmeta.SerializeOptions, error) {
	enc, ok := encodings[strings.ToLower(cfg.Encoding)]
	if !ok {
		return nil, fmt.Errorf("unknown encoding %q", cfg.Encoding)
	}
	opt := &xmpmeta.SerializeOptions{
		Flags:   enc,
		Indent:  cfg.Indent,
		Newline: cfg.Newline,
	}
	if cfg.Compact {
		opt.Flags |= xmpmeta.UseCompactFormat
	}
	opt.Padding = cfg.Padding
	return opt, nil
}
