package license

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"time"

	uuid "github.com/satori/go.uuid"
)

var ErrMissingField = errors.New("missing field")

// License is the document protected by the issuer's signature. Every field
// is required; CustomData is opaque to verification and only ever compared
// structurally.
type License struct {
	ID             uuid.UUID   `json:"id"`
	ExpirationDate time.Time   `json:"expirationDate"`
	CustomData     interface{} `json:"customData"`
}

func (l *License) UnmarshalJSON(data []byte) error {
	var raw struct {
		ID             *uuid.UUID      `json:"id"`
		ExpirationDate *time.Time      `json:"expirationDate"`
		CustomData     json.RawMessage `json:"customData"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw.ID == nil {
		return fmt.Errorf("%w: id", ErrMissingField)
	}
	if raw.ExpirationDate == nil {
		return fmt.Errorf("%w: expirationDate", ErrMissingField)
	}
	if raw.CustomData == nil {
		return fmt.Errorf("%w: customData", ErrMissingField)
	}

	var customData interface{}
	if err := json.Unmarshal(raw.CustomData, &customData); err != nil {
		return err
	}

	l.ID = *raw.ID
	l.ExpirationDate = *raw.ExpirationDate
	l.CustomData = customData
	return nil
}

// Equal reports structural equality. Expiration dates are compared as
// instants, custom data as decoded JSON trees.
func (l License) Equal(other License) bool {
	return uuid.Equal(l.ID, other.ID) &&
		l.ExpirationDate.Equal(other.ExpirationDate) &&
		reflect.DeepEqual(l.CustomData, other.CustomData)
}

// Expired reports whether the license expiration date has passed. Verify
// never checks this; enforcement is up to the application.
func (l License) Expired() bool {
	return time.Now().After(l.ExpirationDate)
}

func (l License) String() string {
	bytes, err := json.Marshal(l)
	if err != nil {
		panic(err)
	}
	return string(bytes)
}

// VerifiableLicense is the untrusted envelope as received: the clear-text
// license plus the detached signature structure that is supposed to cover
// it. Nothing in it is trusted until Verify succeeds.
type VerifiableLicense struct {
	License           License
	LicenseValidation json.RawMessage
}

func (vl *VerifiableLicense) UnmarshalJSON(data []byte) error {
	var raw struct {
		License           *License        `json:"license"`
		LicenseValidation json.RawMessage `json:"licenseValidation"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw.License == nil {
		return fmt.Errorf("%w: license", ErrMissingField)
	}
	if raw.LicenseValidation == nil {
		return fmt.Errorf("%w: licenseValidation", ErrMissingField)
	}

	vl.License = *raw.License
	vl.LicenseValidation = raw.LicenseValidation
	return nil
}
