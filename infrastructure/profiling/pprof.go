// Package profiling serves the net/http/pprof endpoints on a side port.
package profiling

import (
	"errors"
	"net"
	"net/http"
	"net/http/pprof"
	"strconv"
	"time"

	"github.com/mai-repo/Newscraper/infrastructure/logger"
)

const (
	// DefaultPort is used when Config.Port is zero.
	DefaultPort = 6060

	readHeaderTimeout = 5 * time.Second
)

// Config controls the pprof server.
type Config struct {
	Enabled bool `env:"ENABLE_PROFILING" yaml:"enabled"`
	Port    int  `env:"PPROF_PORT"       yaml:"port"`
}

// Handler returns a mux with the standard pprof endpoints under /debug/pprof/.
func Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/debug/pprof/", pprof.Index)
	mux.HandleFunc("/debug/pprof/cmdline", pprof.Cmdline)
	mux.HandleFunc("/debug/pprof/profile", pprof.Profile)
	mux.HandleFunc("/debug/pprof/symbol", pprof.Symbol)
	mux.HandleFunc("/debug/pprof/trace", pprof.Trace)
	return mux
}

// StartPprofServer serves Handler on localhost when cfg.Enabled is set and
// returns the server so callers can shut it down. It returns nil when disabled.
//
//	curl http://localhost:6060/debug/pprof/heap -o heap.pprof
func StartPprofServer(cfg Config, log logger.Logger) *http.Server {
	if !cfg.Enabled {
		return nil
	}

	port := cfg.Port
	if port == 0 {
		port = DefaultPort
	}

	// Only bind to localhost
	srv := &http.Server{
		Addr:              net.JoinHostPort("localhost", strconv.Itoa(port)),
		Handler:           Handler(),
		ReadHeaderTimeout: readHeaderTimeout,
	}

	go func() {
		log.Info("Starting pprof server", logger.String("address", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("pprof server error", logger.Error(err))
		}
	}()

	return srv
}
