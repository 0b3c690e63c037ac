package config

import (
	"fmt"
	"net"
)

type AdminConfig struct {
	Listen         string `yaml:"listen" json:"listen" env:"LISTEN" default:"127.0.0.1:9701"`
	DebugEndpoints bool   `yaml:"debug_endpoints" json:"debug_endpoints" env:"DEBUG_ENDPOINTS"`
	TLS            TLS    `yaml:"tls" json:"tls" envPrefix:"TLS_"`
}

func (cfg AdminConfig) Validate() error {
	if !cfg.IsEnabled() {
		return nil
	}
	if _, _, err := net.SplitHostPort(cfg.Listen); err != nil {
		return fmt.Errorf("invalid listen address: %s", cfg.Listen)
	}
	return nil
}

func (cfg AdminConfig) IsEnabled() bool {
	if cfg.Listen == "" || cfg.Listen == "off" {
		return false
	}
	return true
}

type TLS struct {
	Cert string `yaml:"cert" json:"cert" env:"CERT"`
	Key  string `yaml:"key" json:"key" env:"KEY"`
}

func (cfg TLS) Enabled() bool {
	return cfg.Cert != "" && cfg.Key != ""
}
