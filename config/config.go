package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/kilianp07/evroute/core/metrics"
	"github.com/kilianp07/evroute/core/search"
	"github.com/kilianp07/evroute/infra/mqtt"
	"github.com/kilianp07/evroute/infra/scorer"
)

type Config struct {
	HTTP    HTTPConfig     `json:"http"`
	Network NetworkConfig  `json:"network"`
	Search  search.Config  `json:"search"`
	Metrics metrics.Config `json:"metrics"`
	Scorer  scorer.Config  `json:"scorer"`
	MQTT    mqtt.Config    `json:"mqtt"`
}

// HTTPConfig defines the request API listener.
type HTTPConfig struct {
	Addr string `json:"addr"`
}

// SetDefaults applies sane defaults.
func (c *HTTPConfig) SetDefaults() {
	if c.Addr == "" {
		c.Addr = ":8080"
	}
}

// NetworkConfig selects the road-network dataset.
type NetworkConfig struct {
	// Dataset is the path to a JSON dataset file. Empty selects the
	// built-in Amsterdam sample network.
	Dataset string `json:"dataset"`
}

func Load(path string) (*Config, error) {
	k := koanf.New(".")
	ext := strings.ToLower(filepath.Ext(path))
	var parser koanf.Parser
	switch ext {
	case ".yaml", ".yml":
		parser = yaml.Parser()
	case ".json":
		parser = json.Parser()
	default:
		return nil, fmt.Errorf("unsupported config format: %s", ext)
	}
	if err := k.Load(file.Provider(path), parser); err != nil {
		return nil, err
	}
	// Optional environment overrides
	if err := k.Load(env.Provider("EV_", "__", func(s string) string {
		s = strings.TrimPrefix(strings.ToLower(s), "ev_")
		return strings.ReplaceAll(s, "__", ".")
	}), nil); err != nil {
		return nil, err
	}
	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "json"}); err != nil {
		return nil, err
	}
	cfg.HTTP.SetDefaults()
	cfg.Search.SetDefaults()
	cfg.Scorer.SetDefaults()
	cfg.MQTT.SetDefaults()
	if err := cfg.Search.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.MQTT.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
