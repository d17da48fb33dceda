/*
Copyright 2025 Trident Authors

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package httpapi

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/silsoftware/ldml-api/profiles"
)

const shutdownGrace = 30 * time.Second

// Run starts the HTTP server on addr and blocks until ctx is cancelled,
// then performs a graceful shutdown: stop accepting new connections,
// let outstanding requests finish, and return once they have (or the
// grace period elapses). Returns a non-nil error only for a startup/bind
// failure; a context-triggered shutdown returns nil.
func Run(ctx context.Context, addr string, pp *profiles.Profiles, cfg Config) error {
	server := &http.Server{
		Addr:              addr,
		Handler:           newRouter(pp, cfg),
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverDone := make(chan error, 1)
	serverReady := make(chan struct{})

	go func() {
		lc := &net.ListenConfig{}
		listener, err := lc.Listen(ctx, "tcp", addr)
		if err != nil {
			log.Error().Err(err).Str("addr", addr).Msg("failed to bind listener")
			serverDone <- err
			return
		}
		close(serverReady)

		log.Info().Str("addr", addr).Msg("starting HTTP server")
		if err := server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("HTTP server error")
			serverDone <- err
			return
		}
		serverDone <- nil
	}()

	select {
	case <-serverReady:
	case err := <-serverDone:
		return err
	}

	select {
	case <-ctx.Done():
		log.Info().Msg("shutting down HTTP server")
	case err := <-serverDone:
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown error")
		return err
	}
	log.Info().Msg("HTTP server shutdown complete")
	return nil
}
