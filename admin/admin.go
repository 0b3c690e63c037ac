package admin

import (
	"context"
	"net/http"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/licensex-io/licensex/config"
)

// Admin is an HTTP Server
type Admin struct {
	cfg *config.AdminConfig
	s   *http.Server
}

func NewAdmin(cfg config.AdminConfig, handler http.Handler) *Admin {
	s := &http.Server{
		Handler: handler,
		Addr:    cfg.Listen,

		WriteTimeout: 60 * time.Second,
		ReadTimeout:  60 * time.Second,
	}

	admin := &Admin{
		cfg: &cfg,
		s:   s,
	}

	return admin
}

// Start starts an HTTP server
func (a *Admin) Start() {
	go func() {
		tls := a.cfg.TLS
		if tls.Enabled() {
			if err := a.s.ListenAndServeTLS(tls.Cert, tls.Key); err != nil && err != http.ErrServerClosed {
				zap.S().Errorf("Failed to start Admin : %v", err)
				os.Exit(1)
			}
		} else {
			if err := a.s.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				zap.S().Errorf("Failed to start Admin : %v", err)
				os.Exit(1)
			}
		}
	}()
}

// Stop stops the HTTP server
func (a *Admin) Stop() error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	return a.s.Shutdown(ctx)
}
