package app

import (
	"errors"
	"sync"

	"go.uber.org/zap"

	"github.com/licensex-io/licensex"
	"github.com/licensex-io/licensex/admin"
	"github.com/licensex-io/licensex/admin/api"
	apilicense "github.com/licensex-io/licensex/api/license"
	"github.com/licensex-io/licensex/config"
	"github.com/licensex-io/licensex/pkg/license"
	"github.com/licensex-io/licensex/pkg/log"
)

var (
	ErrApplicationStarted = errors.New("already started")
	ErrApplicationStopped = errors.New("already stopped")
)

type Application struct {
	cfg *config.Config

	mux     sync.Mutex
	started bool

	stop chan struct{}

	log      *zap.SugaredLogger
	verifier *apilicense.Verifier
	admin    *admin.Admin
}

func New(cfg *config.Config) (*Application, error) {
	app := &Application{
		cfg:  cfg,
		stop: make(chan struct{}),
	}

	err := app.initialize()
	if err != nil {
		return nil, err
	}

	return app, nil
}

func (app *Application) initialize() error {
	cfg := app.cfg

	logger, err := log.NewZapLogger(&cfg.Log)
	if err != nil {
		return err
	}
	app.log = logger

	if cfg.License.Enabled() {
		jwk, err := cfg.License.LoadJWK()
		if err != nil {
			return err
		}
		verifier, err := apilicense.NewVerifier(jwk)
		if err != nil {
			return err
		}
		app.verifier = verifier

		licenser, err := license.Load(license.Options{
			JWK:          jwk,
			EnvelopeFile: cfg.License.File,
		})
		switch {
		case err == nil:
			license.SetLicenser(licenser)
			app.log.Infof("verified license %s", licenser.License().ID)
		case errors.Is(err, license.ErrNoLicense):
			app.log.Warn("no license envelope configured")
		default:
			return err
		}
	}

	if cfg.Admin.IsEnabled() {
		api := api.NewAPI(api.Options{
			Config:   cfg,
			Verifier: app.verifier,
		})
		app.admin = admin.NewAdmin(cfg.Admin, api.Handler())
	}

	return nil
}

func (app *Application) Config() *config.Config {
	return app.cfg
}

func (app *Application) Verifier() *apilicense.Verifier {
	return app.verifier
}

// Start starts application
func (app *Application) Start() error {
	app.mux.Lock()
	defer app.mux.Unlock()

	if app.started {
		return ErrApplicationStarted
	}

	app.log.Infof("starting LicenseX %s", licensex.VERSION)

	if app.admin != nil {
		app.admin.Start()
		app.log.Infof("listening on %s", app.cfg.Admin.Listen)
	}

	app.started = true

	return nil
}

func (app *Application) Wait() {
	<-app.stop
}

// Stop stops application
func (app *Application) Stop() error {
	app.mux.Lock()
	defer app.mux.Unlock()

	if !app.started {
		return ErrApplicationStopped
	}

	app.log.Info("exiting")

	defer func() {
		_ = app.log.Sync()
	}()

	if app.admin != nil {
		if err := app.admin.Stop(); err != nil {
			app.log.Errorf("failed to stop admin: %v", err)
		}
	}

	app.started = false
	close(app.stop)

	return nil
}
