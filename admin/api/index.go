package api

import (
	"net/http"

	"github.com/licensex-io/licensex"
)

func (api *API) Index(w http.ResponseWriter, r *http.Request) {
	api.json(200, w, map[string]interface{}{
		"version": licensex.VERSION,
		"commit":  licensex.COMMIT,
	})
}
