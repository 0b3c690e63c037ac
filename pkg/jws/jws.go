package jws

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
)

var (
	ErrNotJSONSerialization = errors.New("input is not a JWS JSON serialization")
	ErrMissingSegment       = errors.New("missing JWS segment")
)

// Header is the decoded protected header of a signature. The algorithm it
// declares is informational only; callers pin the verification algorithm
// themselves.
type Header struct {
	Algorithm string `json:"alg"`
	Type      string `json:"typ,omitempty"`
}

// Signature is a single signature of an envelope. Protected holds the
// base64url segment exactly as received; Header and Signature are its
// decoded forms.
type Signature struct {
	Protected string
	Header    Header
	Signature []byte
}

// Envelope is a parsed JWS in JSON serialization. It is a tagged variant:
// either the flattened single-signature form or the general form carrying
// a "signatures" array. Callers that accept only one signature must check
// Flattened explicitly rather than treating the two forms alike.
type Envelope struct {
	// RawPayload is the base64url payload segment verbatim.
	RawPayload string
	// Payload is the decoded payload.
	Payload []byte

	Signatures []Signature

	flattened bool
}

// Flattened reports whether the envelope used the flattened serialization.
func (e *Envelope) Flattened() bool {
	return e.flattened
}

// SigningInput returns the byte string covered by the signature at index i,
// composed from the segments exactly as they appeared on the wire.
func (e *Envelope) SigningInput(i int) []byte {
	return []byte(e.Signatures[i].Protected + "." + e.RawPayload)
}

type rawEnvelope struct {
	Protected  *string        `json:"protected"`
	Payload    *string        `json:"payload"`
	Signature  *string        `json:"signature"`
	Signatures []rawSignature `json:"signatures"`
}

type rawSignature struct {
	Protected *string `json:"protected"`
	Signature *string `json:"signature"`
}

// Parse decodes a JWS JSON serialization, flattened or general. Segments
// are strict unpadded base64url; the protected header must decode to a
// JSON header object.
func Parse(data []byte) (*Envelope, error) {
	var raw rawEnvelope
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrNotJSONSerialization, err)
	}

	if raw.Payload == nil {
		return nil, fmt.Errorf("%w: payload", ErrMissingSegment)
	}

	envelope := &Envelope{RawPayload: *raw.Payload}

	payload, err := decodeSegment(*raw.Payload)
	if err != nil {
		return nil, fmt.Errorf("payload: %w", err)
	}
	envelope.Payload = payload

	if raw.Signatures != nil {
		for _, rs := range raw.Signatures {
			sig, err := decodeSignature(rs.Protected, rs.Signature)
			if err != nil {
				return nil, err
			}
			envelope.Signatures = append(envelope.Signatures, sig)
		}
		return envelope, nil
	}

	sig, err := decodeSignature(raw.Protected, raw.Signature)
	if err != nil {
		return nil, err
	}
	envelope.Signatures = []Signature{sig}
	envelope.flattened = true

	return envelope, nil
}

func decodeSignature(protected, signature *string) (Signature, error) {
	if protected == nil {
		return Signature{}, fmt.Errorf("%w: protected", ErrMissingSegment)
	}
	if signature == nil {
		return Signature{}, fmt.Errorf("%w: signature", ErrMissingSegment)
	}

	headerBytes, err := decodeSegment(*protected)
	if err != nil {
		return Signature{}, fmt.Errorf("protected: %w", err)
	}
	var header Header
	if err := json.Unmarshal(headerBytes, &header); err != nil {
		return Signature{}, fmt.Errorf("protected header: %w", err)
	}

	sigBytes, err := decodeSegment(*signature)
	if err != nil {
		return Signature{}, fmt.Errorf("signature: %w", err)
	}

	return Signature{
		Protected: *protected,
		Header:    header,
		Signature: sigBytes,
	}, nil
}

func decodeSegment(segment string) ([]byte, error) {
	return base64.RawURLEncoding.Strict().DecodeString(segment)
}
