package config

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/licensex-io/licensex/config/providers"
)

func TestDefaults(t *testing.T) {
	cfg := New()
	assert.Equal(t, "/dev/stdout", cfg.Log.File)
	assert.Equal(t, LogLevelInfo, cfg.Log.Level)
	assert.Equal(t, LogFormatText, cfg.Log.Format)
	assert.Equal(t, "127.0.0.1:9701", cfg.Admin.Listen)
	assert.NoError(t, cfg.Validate())
}

func TestLogConfig(t *testing.T) {
	tests := []struct {
		desc                string
		cfg                 LogConfig
		expectedValidateErr error
	}{
		{
			desc: "sanity",
			cfg: LogConfig{
				Level:  LogLevelInfo,
				Format: LogFormatText,
			},
			expectedValidateErr: nil,
		},
		{
			desc: "invalid level",
			cfg: LogConfig{
				Level:  "x",
				Format: LogFormatText,
			},
			expectedValidateErr: errors.New("invalid level: x"),
		},
		{
			desc: "invalid format",
			cfg: LogConfig{
				Level:  LogLevelInfo,
				Format: "xml",
			},
			expectedValidateErr: errors.New("invalid format: xml"),
		},
	}
	for _, test := range tests {
		actualValidateErr := test.cfg.Validate()
		assert.Equal(t, test.expectedValidateErr, actualValidateErr, "expected %v got %v", test.expectedValidateErr, actualValidateErr)
	}
}

func TestAdminConfig(t *testing.T) {
	tests := []struct {
		desc                string
		cfg                 AdminConfig
		expectedValidateErr error
	}{
		{
			desc:                "sanity",
			cfg:                 AdminConfig{Listen: "127.0.0.1:9701"},
			expectedValidateErr: nil,
		},
		{
			desc:                "disabled",
			cfg:                 AdminConfig{Listen: "off"},
			expectedValidateErr: nil,
		},
		{
			desc:                "invalid listen address",
			cfg:                 AdminConfig{Listen: "localhost"},
			expectedValidateErr: errors.New("invalid listen address: localhost"),
		},
	}
	for _, test := range tests {
		actualValidateErr := test.cfg.Validate()
		assert.Equal(t, test.expectedValidateErr, actualValidateErr, "expected %v got %v", test.expectedValidateErr, actualValidateErr)
	}
}

func TestLicenseConfig(t *testing.T) {
	tests := []struct {
		desc                string
		cfg                 LicenseConfig
		expectedValidateErr error
	}{
		{
			desc:                "empty",
			cfg:                 LicenseConfig{},
			expectedValidateErr: nil,
		},
		{
			desc:                "inline jwk",
			cfg:                 LicenseConfig{JWK: `{"kty": "RSA"}`},
			expectedValidateErr: nil,
		},
		{
			desc:                "jwk and jwk_file",
			cfg:                 LicenseConfig{JWK: `{}`, JWKFile: "/etc/licensex/public.jwk"},
			expectedValidateErr: errors.New("jwk and jwk_file are mutually exclusive"),
		},
		{
			desc:                "jwk is not JSON",
			cfg:                 LicenseConfig{JWK: "not json"},
			expectedValidateErr: errors.New("jwk must be a JSON document"),
		},
	}
	for _, test := range tests {
		actualValidateErr := test.cfg.Validate()
		assert.Equal(t, test.expectedValidateErr, actualValidateErr, "expected %v got %v", test.expectedValidateErr, actualValidateErr)
	}
}

func TestLoaderYAML(t *testing.T) {
	content := []byte(`
log:
  level: debug
  format: json
admin:
  listen: "0.0.0.0:8080"
license:
  jwk_file: /etc/licensex/public.jwk
`)
	cfg := New()
	require.NoError(t, NewLoader(cfg).WithFileContent(content).Load())

	assert.Equal(t, LogLevelDebug, cfg.Log.Level)
	assert.Equal(t, LogFormatJson, cfg.Log.Format)
	assert.Equal(t, "0.0.0.0:8080", cfg.Admin.Listen)
	assert.Equal(t, "/etc/licensex/public.jwk", cfg.License.JWKFile)
	assert.NoError(t, cfg.Validate())
}

func TestLoaderEnv(t *testing.T) {
	t.Setenv("LICENSEX_LOG_LEVEL", "warn")
	t.Setenv("LICENSEX_ADMIN_LISTEN", "off")
	t.Setenv("LICENSEX_LICENSE_FILE", "/etc/licensex/license.json")

	cfg := New()
	require.NoError(t, NewLoader(cfg).WithEnvPrefix("LICENSEX").Load())

	assert.Equal(t, LogLevelWarn, cfg.Log.Level)
	assert.Equal(t, "off", cfg.Admin.Listen)
	assert.False(t, cfg.Admin.IsEnabled())
	assert.Equal(t, "/etc/licensex/license.json", cfg.License.File)
}

func TestEnvOverridesYAML(t *testing.T) {
	content := []byte(`
log:
  level: debug
`)
	t.Setenv("LICENSEX_LOG_LEVEL", "error")

	cfg := New()
	require.NoError(t, NewLoader(cfg).WithEnvPrefix("LICENSEX").WithFileContent(content).Load())
	assert.Equal(t, LogLevelError, cfg.Log.Level)
}

func TestEnvProviderEnvironment(t *testing.T) {
	cfg := New()
	err := providers.NewEnvProvider("LICENSEX_").
		WithEnvironment(map[string]string{"LICENSEX_LOG_FORMAT": "json"}).
		Load(cfg)
	require.NoError(t, err)
	assert.Equal(t, LogFormatJson, cfg.Log.Format)
}
