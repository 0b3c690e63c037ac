package api

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apilicense "github.com/licensex-io/licensex/api/license"
	"github.com/licensex-io/licensex/config"
	"github.com/licensex-io/licensex/pkg/license"
	"github.com/licensex-io/licensex/test/helper"
)

const testLicenseJSON = `{
	"id": "c0a9b52e-1394-4bfa-8267-a7ef637b0b79",
	"expirationDate": "2030-01-01T00:00:00Z",
	"customData": {"owner": "Acme Corp"}
}`

func newTestAPI(t *testing.T) (*API, *helper.Keypair) {
	t.Helper()

	keypair := helper.GenerateKeypair(t)
	verifier, err := apilicense.NewVerifier(keypair.JWK)
	require.NoError(t, err)

	return NewAPI(Options{
		Config:   config.New(),
		Verifier: verifier,
	}), keypair
}

func request(api *API, method, path string, body []byte) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r := httptest.NewRequest(method, path, bytes.NewReader(body))
	api.Handler().ServeHTTP(w, r)
	return w
}

func TestIndex(t *testing.T) {
	api, _ := newTestAPI(t)

	w := request(api, "GET", "/", nil)
	assert.Equal(t, 200, w.Code)
	assert.Contains(t, w.Body.String(), "version")
}

func TestNotFound(t *testing.T) {
	api, _ := newTestAPI(t)

	w := request(api, "GET", "/nope", nil)
	assert.Equal(t, 404, w.Code)
}

func TestVerifyLicenseAPI(t *testing.T) {
	api, keypair := newTestAPI(t)

	envelope := helper.SignEnvelope(t, keypair.Private, []byte(testLicenseJSON), nil)
	w := request(api, "POST", "/license/verify", envelope)
	require.Equal(t, 200, w.Code)

	var verified map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &verified))
	assert.Equal(t, "c0a9b52e-1394-4bfa-8267-a7ef637b0b79", verified["id"])
}

func TestVerifyLicenseAPIErrors(t *testing.T) {
	api, keypair := newTestAPI(t)

	tests := []struct {
		desc            string
		envelope        []byte
		expectedMessage string
	}{
		{
			desc:            "invalid envelope",
			envelope:        []byte(`{"random": "ABC"}`),
			expectedMessage: apilicense.ErrInvalidVerifiableLicense.Error(),
		},
		{
			desc: "tampered license",
			envelope: helper.SignEnvelope(t, keypair.Private, []byte(testLicenseJSON), json.RawMessage(`{
				"id": "c0a9b52e-1394-4bfa-8267-a7ef637b0b79",
				"expirationDate": "2031-01-01T00:00:00Z",
				"customData": {"owner": "Acme Corp"}
			}`)),
			expectedMessage: apilicense.ErrTamperedLicense.Error(),
		},
	}
	for _, test := range tests {
		t.Run(test.desc, func(t *testing.T) {
			w := request(api, "POST", "/license/verify", test.envelope)
			assert.Equal(t, 400, w.Code)
			assert.Contains(t, w.Body.String(), test.expectedMessage)
		})
	}
}

func TestVerifyLicenseAPIWrongKey(t *testing.T) {
	api, _ := newTestAPI(t)

	other := helper.GenerateKeypair(t)
	envelope := helper.SignEnvelope(t, other.Private, []byte(testLicenseJSON), nil)

	w := request(api, "POST", "/license/verify", envelope)
	assert.Equal(t, 400, w.Code)
	assert.Contains(t, w.Body.String(), apilicense.ErrVerificationFailure.Error())
}

func TestVerifyLicenseAPINoVerifier(t *testing.T) {
	api := NewAPI(Options{Config: config.New()})

	w := request(api, "POST", "/license/verify", []byte(`{}`))
	assert.Equal(t, 503, w.Code)
}

func TestGetLicenseAPI(t *testing.T) {
	api, keypair := newTestAPI(t)

	original := license.GetLicenser()
	defer license.SetLicenser(original)
	license.SetLicenser(&license.UnverifiedLicenser{})

	w := request(api, "GET", "/license", nil)
	assert.Equal(t, 404, w.Code)

	envelope := helper.SignEnvelope(t, keypair.Private, []byte(testLicenseJSON), nil)
	licenser, err := license.Load(license.Options{JWK: keypair.JWK, Envelope: envelope})
	require.NoError(t, err)
	license.SetLicenser(licenser)

	w = request(api, "GET", "/license", nil)
	require.Equal(t, 200, w.Code)
	assert.Contains(t, w.Body.String(), "c0a9b52e-1394-4bfa-8267-a7ef637b0b79")
	assert.Contains(t, w.Body.String(), `"expired":false`)
}
