package license

import (
	"errors"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"

	"github.com/licensex-io/licensex/api/license"
)

// EnvelopeEnv is the environment variable consulted when no envelope is
// passed explicitly.
const EnvelopeEnv = "LICENSEX_LICENSE"

var (
	ErrNoLicense = errors.New("no license envelope configured")
)

var validate = validator.New(validator.WithRequiredStructEnabled())

type Options struct {
	// JWK is the issuer public key descriptor.
	JWK []byte `validate:"required"`
	// Envelope is the signed license envelope. When empty, EnvelopeFile
	// and then the LICENSEX_LICENSE environment variable are consulted.
	Envelope     []byte
	EnvelopeFile string
}

// Load verifies the configured envelope and returns a Licenser bound to
// the signed license. Verification errors pass through classified.
func Load(opts Options) (Licenser, error) {
	if err := validate.Struct(&opts); err != nil {
		return nil, fmt.Errorf("invalid options: %s", err)
	}

	envelope := opts.Envelope
	if len(envelope) == 0 && opts.EnvelopeFile != "" {
		b, err := os.ReadFile(opts.EnvelopeFile)
		if err != nil {
			return nil, err
		}
		envelope = b
	}
	if len(envelope) == 0 {
		if v := os.Getenv(EnvelopeEnv); v != "" {
			envelope = []byte(v)
		}
	}
	if len(envelope) == 0 {
		return nil, ErrNoLicense
	}

	verifier, err := license.NewVerifier(opts.JWK)
	if err != nil {
		return nil, err
	}

	lic, err := verifier.Verify(envelope)
	if err != nil {
		return nil, err
	}

	return NewLicenser(lic), nil
}
