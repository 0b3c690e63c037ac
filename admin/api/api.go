package api

import (
	"net/http"
	"net/http/pprof"

	"github.com/gorilla/mux"

	apilicense "github.com/licensex-io/licensex/api/license"
	"github.com/licensex-io/licensex/config"
	"github.com/licensex-io/licensex/pkg/http/middlewares"
	"github.com/licensex-io/licensex/pkg/http/response"
	"github.com/licensex-io/licensex/pkg/types"
)

type API struct {
	cfg         *config.Config
	verifier    *apilicense.Verifier
	middlewares []mux.MiddlewareFunc
}

type Options struct {
	Config      *config.Config
	Verifier    *apilicense.Verifier
	Middlewares []mux.MiddlewareFunc
}

func NewAPI(opts Options) *API {
	return &API{
		cfg:         opts.Config,
		verifier:    opts.Verifier,
		middlewares: opts.Middlewares,
	}
}

func (api *API) json(code int, w http.ResponseWriter, data interface{}) {
	response.JSON(w, code, data)
}

func (api *API) error(code int, w http.ResponseWriter, err error) {
	api.json(code, w, types.ErrorResponse{Message: err.Error()})
}

// Handler returns a http.Handler
func (api *API) Handler() http.Handler {
	r := mux.NewRouter()

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		response.JSON(w, 404, types.ErrorResponse{Message: "not found"})
	})

	for _, m := range api.middlewares {
		r.Use(m)
	}
	r.Use(middlewares.PanicRecovery)

	r.HandleFunc("/", api.Index).Methods("GET")

	r.HandleFunc("/license", api.GetLicense).Methods("GET")
	r.HandleFunc("/license/verify", api.VerifyLicense).Methods("POST")

	if api.cfg.Admin.DebugEndpoints {
		r.HandleFunc("/debug/pprof/profile", pprof.Profile).Methods("GET")
		r.HandleFunc("/debug/pprof/symbol", pprof.Symbol).Methods("GET")
		r.HandleFunc("/debug/pprof/trace", pprof.Trace).Methods("GET")
		r.PathPrefix("/debug/pprof/").HandlerFunc(pprof.Index).Methods("GET")
	}

	return r
}
