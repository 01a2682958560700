package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/danmuck/plcstub/internal/attr"
	"github.com/danmuck/plcstub/internal/logging"
	"github.com/pelletier/go-toml/v2"
)

type ServerConfig struct {
	Name        string      `toml:"name"`
	Addr        string      `toml:"addr"`
	CorsOrigins []string    `toml:"cors_origins"`
	DebugLevel  *int        `toml:"debug_level"`
	Token       string      `toml:"token"`
	Tags        []TagConfig `toml:"tags"`
}

// TagConfig preloads one tag at startup using the same attribute string a
// client would pass to create.
type TagConfig struct {
	Attrs string `toml:"attrs"`
}

func DefaultServerConfig() ServerConfig {
	return ServerConfig{
		Name: "plcstub",
		Addr: ":9300",
	}
}

func LoadServerConfig(path string) (ServerConfig, error) {
	var cfg ServerConfig
	if err := loadToml(path, &cfg); err != nil {
		return ServerConfig{}, err
	}
	def := DefaultServerConfig()
	if cfg.Name == "" {
		cfg.Name = def.Name
	}
	if cfg.Addr == "" {
		cfg.Addr = def.Addr
	}
	if err := ValidateServerConfig(cfg); err != nil {
		return ServerConfig{}, err
	}
	return cfg, nil
}

func loadToml(path string, out any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("config load failed (%s): %w", path, err)
	}
	if err := toml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("config parse failed (%s): %w", path, err)
	}
	return nil
}

func ValidateServerConfig(cfg ServerConfig) error {
	if strings.TrimSpace(cfg.Name) == "" {
		return fmt.Errorf("server config missing name")
	}
	if strings.TrimSpace(cfg.Addr) == "" {
		return fmt.Errorf("server config missing addr")
	}
	if cfg.DebugLevel != nil {
		lvl := logging.DebugLevel(*cfg.DebugLevel)
		if lvl != lvl.Clamp() {
			return fmt.Errorf("debug_level %d out of range [%d, %d]", *cfg.DebugLevel, logging.DebugNone, logging.DebugSpew)
		}
	}
	for i, tagCfg := range cfg.Tags {
		if err := ValidateTagEntry(tagCfg); err != nil {
			return fmt.Errorf("tags[%d] invalid: %w", i, err)
		}
	}
	return nil
}

func ValidateTagEntry(cfg TagConfig) error {
	if strings.TrimSpace(cfg.Attrs) == "" {
		return fmt.Errorf("attrs is required")
	}
	if _, err := attr.Parse(cfg.Attrs); err != nil {
		return err
	}
	return nil
}
