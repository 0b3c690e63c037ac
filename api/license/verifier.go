package license

import (
	"crypto"
	"crypto/rsa"
	"crypto/sha512"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/go-jose/go-jose/v4"
	"github.com/tidwall/gjson"

	"github.com/licensex-io/licensex/pkg/jws"
)

var (
	// ErrKeyIsNotJwk means the key descriptor failed JWK schema parsing.
	ErrKeyIsNotJwk = errors.New("public key is not a JWK")
	// ErrKeyTypeNotSupported means the key is not an RSA key usable for
	// RS512, or its modulus is too small.
	ErrKeyTypeNotSupported = errors.New("key type is not supported")

	// ErrInvalidVerifiableLicense means the envelope failed structural
	// validation before any cryptographic check.
	ErrInvalidVerifiableLicense = errors.New("verifiable license is invalid")
	// ErrTamperedLicense means the clear-text license differs from the
	// license recovered from the signed payload.
	ErrTamperedLicense = errors.New("license does not match the signed payload")
	// ErrVerificationFailure means the signature did not validate under
	// the bound key.
	ErrVerificationFailure = errors.New("license signature verification failed")
)

// minRSAKeyBits is the smallest modulus accepted for RS512 keys.
const minRSAKeyBits = 2048

// Verifier verifies signed license envelopes against a single RSA public
// key using RS512. It is immutable after construction and safe for
// concurrent use.
type Verifier struct {
	publicKey *rsa.PublicKey
}

// NewVerifier builds a Verifier from a JWK public key descriptor. The key
// must be an RSA key of at least 2048 bits and, when it declares an
// algorithm, that algorithm must be RS512.
func NewVerifier(jwkJSON []byte) (*Verifier, error) {
	var key jose.JSONWebKey
	if err := key.UnmarshalJSON(jwkJSON); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrKeyIsNotJwk, err)
	}

	if key.Algorithm != "" && key.Algorithm != string(jose.RS512) {
		return nil, fmt.Errorf("%w: %s", ErrKeyTypeNotSupported, key.Algorithm)
	}

	publicKey, ok := key.Key.(*rsa.PublicKey)
	if !ok {
		return nil, fmt.Errorf("%w: not an RSA key", ErrKeyTypeNotSupported)
	}
	if publicKey.N.BitLen() < minRSAKeyBits {
		return nil, fmt.Errorf("%w: RSA key is smaller than %d bits", ErrKeyTypeNotSupported, minRSAKeyBits)
	}

	return &Verifier{publicKey: publicKey}, nil
}

// Verify checks a signed license envelope and returns the license that was
// actually signed. The clear-text license field is only used for the tamper
// check; callers must trust nothing but the returned value.
//
// Structural failures are reported before cryptographic ones, and the
// tamper check runs before the signature is checked: a valid signature over
// payload X proves nothing about a clear-text field Y unless X equals Y.
func (v *Verifier) Verify(envelope []byte) (*License, error) {
	var verifiable VerifiableLicense
	if err := json.Unmarshal(envelope, &verifiable); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidVerifiableLicense, err)
	}

	if !gjson.ParseBytes(verifiable.LicenseValidation).IsObject() {
		return nil, fmt.Errorf("%w: licenseValidation is not an object", ErrInvalidVerifiableLicense)
	}

	signature, err := jws.Parse(verifiable.LicenseValidation)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidVerifiableLicense, err)
	}
	if !signature.Flattened() {
		return nil, fmt.Errorf("%w: expected a flattened JWS", ErrInvalidVerifiableLicense)
	}

	var signed License
	if err := json.Unmarshal(signature.Payload, &signed); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidVerifiableLicense, err)
	}

	if !signed.Equal(verifiable.License) {
		return nil, ErrTamperedLicense
	}

	// The signing input must come from the same parse the returned license
	// is decoded from: duplicate keys in the raw JSON can otherwise point
	// the signature check and the payload at different segments.
	digest := sha512.Sum512(signature.SigningInput(0))
	if err := rsa.VerifyPKCS1v15(v.publicKey, crypto.SHA512, digest[:], signature.Signatures[0].Signature); err != nil {
		return nil, ErrVerificationFailure
	}

	return &signed, nil
}
