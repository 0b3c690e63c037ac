package api

import (
	"errors"
	"io"
	"net/http"

	apilicense "github.com/licensex-io/licensex/api/license"
	"github.com/licensex-io/licensex/pkg/license"
	"github.com/licensex-io/licensex/pkg/types"
)

func (api *API) GetLicense(w http.ResponseWriter, r *http.Request) {
	licenser := license.GetLicenser()
	if !licenser.Verified() {
		api.json(404, w, types.ErrorResponse{Message: "no license loaded"})
		return
	}
	api.json(200, w, map[string]interface{}{
		"license": licenser.License(),
		"expired": licenser.Expired(),
	})
}

func (api *API) VerifyLicense(w http.ResponseWriter, r *http.Request) {
	if api.verifier == nil {
		api.json(503, w, types.ErrorResponse{Message: "no public key configured"})
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		api.error(400, w, err)
		return
	}

	lic, err := api.verifier.Verify(body)
	if err != nil {
		switch {
		case errors.Is(err, apilicense.ErrInvalidVerifiableLicense),
			errors.Is(err, apilicense.ErrTamperedLicense),
			errors.Is(err, apilicense.ErrVerificationFailure):
			api.error(400, w, err)
		default:
			api.error(500, w, err)
		}
		return
	}

	api.json(200, w, lic)
}
