package providers

import (
	"github.com/caarlos0/env/v11"
)

type EnvProvider struct {
	prefix      string
	environment map[string]string
}

func NewEnvProvider(prefix string) *EnvProvider {
	return &EnvProvider{prefix: prefix}
}

// WithEnvironment replaces the process environment, for tests.
func (p *EnvProvider) WithEnvironment(environment map[string]string) *EnvProvider {
	p.environment = environment
	return p
}

func (p *EnvProvider) Load(cfg any) error {
	opts := env.Options{Prefix: p.prefix}
	if p.environment != nil {
		opts.Environment = p.environment
	}
	return env.ParseWithOptions(cfg, opts)
}
