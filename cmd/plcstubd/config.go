package main

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/danmuck/plcstub/internal/config"
)

type fileConfig struct {
	Name        string    `toml:"name"`
	Addr        string    `toml:"addr"`
	CorsOrigins []string  `toml:"cors_origins"`
	DebugLevel  int       `toml:"debug_level"`
	Token       string    `toml:"token"`
	Tags        []fileTag `toml:"tags"`
}

type fileTag struct {
	Attrs string `toml:"attrs"`
}

func loadServiceConfig(path string) (config.ServerConfig, error) {
	cfg := config.DefaultServerConfig()

	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return config.ServerConfig{}, fmt.Errorf("load plcstubd config: %w", err)
	}

	if meta.IsDefined("name") {
		if name := strings.TrimSpace(raw.Name); name != "" {
			cfg.Name = name
		}
	}

	if meta.IsDefined("addr") {
		if addr := strings.TrimSpace(raw.Addr); addr != "" {
			cfg.Addr = addr
		}
	}

	if meta.IsDefined("cors_origins") {
		cfg.CorsOrigins = normalizeOrigins(raw.CorsOrigins)
	}

	if meta.IsDefined("debug_level") {
		lvl := raw.DebugLevel
		cfg.DebugLevel = &lvl
	}

	if meta.IsDefined("token") {
		cfg.Token = strings.TrimSpace(raw.Token)
	}

	if meta.IsDefined("tags") {
		cfg.Tags = make([]config.TagConfig, 0, len(raw.Tags))
		for _, t := range raw.Tags {
			cfg.Tags = append(cfg.Tags, config.TagConfig{Attrs: strings.TrimSpace(t.Attrs)})
		}
	}

	if err := config.ValidateServerConfig(cfg); err != nil {
		return config.ServerConfig{}, fmt.Errorf("validate plcstubd config: %w", err)
	}
	return cfg, nil
}

func normalizeOrigins(in []string) []string {
	if len(in) == 0 {
		return []string{}
	}
	out := make([]string, 0, len(in))
	for _, origin := range in {
		v := strings.TrimSpace(origin)
		if v == "" {
			continue
		}
		out = append(out, v)
	}
	return out
}
