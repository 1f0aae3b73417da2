package metrics

import (
	"context"
	"net"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/readingcorps/rsmatch/infra/logger"
)

// StartPromServer exposes Prometheus metrics on the given address for the
// duration of a match run. Binding happens synchronously so a bad address
// fails fast; serving continues in the background until the context is
// canceled. A dedicated ServeMux keeps the default mux untouched.
func StartPromServer(ctx context.Context, addr string) error {
	log := logger.New("prom-server")
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{Handler: mux}

	go func() {
		if err := srv.Serve(ln); err != nil && err != http.ErrServerClosed {
			log.Errorf("prom server: %v", err)
		}
	}()
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Errorf("prom server shutdown: %v", err)
		}
	}()

	log.Infof("serving metrics on %s", addr)
	return nil
}
