package helper

import (
	"crypto"
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha512"
	"encoding/base64"
	"encoding/json"
	"testing"

	"github.com/go-jose/go-jose/v4"
)

// Keypair is a freshly generated RS512 signing key plus its public JWK.
type Keypair struct {
	Private *rsa.PrivateKey
	JWK     []byte
}

func GenerateKeypair(t *testing.T) *Keypair {
	t.Helper()

	private, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("failed to generate RSA key: %v", err)
	}

	jwk := jose.JSONWebKey{
		Key:       &private.PublicKey,
		Algorithm: string(jose.RS512),
	}
	b, err := jwk.MarshalJSON()
	if err != nil {
		t.Fatalf("failed to marshal JWK: %v", err)
	}

	return &Keypair{Private: private, JWK: b}
}

// SignEnvelope builds a verifiable license envelope. The payload segment is
// the signed licenseJSON; clear overrides the clear-text license field, nil
// meaning "same as signed".
func SignEnvelope(t *testing.T, key *rsa.PrivateKey, licenseJSON []byte, clear json.RawMessage) []byte {
	t.Helper()

	protected := base64.RawURLEncoding.EncodeToString([]byte(`{"alg":"RS512","typ":"JWT"}`))
	payload := base64.RawURLEncoding.EncodeToString(licenseJSON)

	digest := sha512.Sum512([]byte(protected + "." + payload))
	signature, err := rsa.SignPKCS1v15(rand.Reader, key, crypto.SHA512, digest[:])
	if err != nil {
		t.Fatalf("failed to sign license: %v", err)
	}

	if clear == nil {
		clear = licenseJSON
	}

	envelope, err := json.Marshal(map[string]interface{}{
		"license": clear,
		"licenseValidation": map[string]string{
			"protected": protected,
			"payload":   payload,
			"signature": base64.RawURLEncoding.EncodeToString(signature),
		},
	})
	if err != nil {
		t.Fatalf("failed to marshal envelope: %v", err)
	}
	return envelope
}
