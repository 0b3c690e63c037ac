package license

import (
	"github.com/licensex-io/licensex/api/license"
)

// Licenser exposes the currently trusted license. Expiration is reported,
// never enforced; what an expired license means is application policy.
type Licenser interface {
	Verified() bool
	License() *license.License
	Expired() bool
}

// DefaultLicenser wraps a license that already passed verification.
type DefaultLicenser struct {
	license *license.License
}

func NewLicenser(license *license.License) *DefaultLicenser {
	return &DefaultLicenser{
		license: license,
	}
}

func (l *DefaultLicenser) Verified() bool {
	return true
}

func (l *DefaultLicenser) License() *license.License {
	return l.license
}

func (l *DefaultLicenser) Expired() bool {
	return l.license.Expired()
}

// UnverifiedLicenser is the state before any envelope has been verified.
type UnverifiedLicenser struct{}

func (l *UnverifiedLicenser) Verified() bool { return false }

func (l *UnverifiedLicenser) License() *license.License { return nil }

func (l *UnverifiedLicenser) Expired() bool { return true }
