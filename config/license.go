package config

import (
	"encoding/json"
	"errors"
	"os"
)

// LicenseConfig locates the issuer public key and, optionally, the license
// envelope to verify at startup.
type LicenseConfig struct {
	// JWK is the issuer public key as an inline JWK JSON document.
	JWK string `yaml:"jwk" json:"jwk" env:"JWK"`
	// JWKFile points at a file holding the JWK document instead.
	JWKFile string `yaml:"jwk_file" json:"jwk_file" env:"JWK_FILE"`
	// File points at a file holding the signed license envelope.
	File string `yaml:"file" json:"file" env:"FILE"`
}

func (cfg LicenseConfig) Validate() error {
	if cfg.JWK != "" && cfg.JWKFile != "" {
		return errors.New("jwk and jwk_file are mutually exclusive")
	}
	if cfg.JWK != "" && !json.Valid([]byte(cfg.JWK)) {
		return errors.New("jwk must be a JSON document")
	}
	return nil
}

func (cfg LicenseConfig) Enabled() bool {
	return cfg.JWK != "" || cfg.JWKFile != ""
}

// LoadJWK returns the configured JWK document.
func (cfg LicenseConfig) LoadJWK() ([]byte, error) {
	if cfg.JWK != "" {
		return []byte(cfg.JWK), nil
	}
	if cfg.JWKFile != "" {
		return os.ReadFile(cfg.JWKFile)
	}
	return nil, errors.New("no public key configured")
}
