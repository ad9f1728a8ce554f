package main

import (
	"context"
	"log"
	"net"
	"net/http"
	"strings"
	"time"

	"settleup/internal/interfaces/scheduler"
	"settleup/internal/shared/config"
	"settleup/internal/shared/middleware"
)

const (
	serverReadTimeout = 15 * time.Second
	serverIdleTimeout = 60 * time.Second
)

// StartServers starts the API server and, when TLS redirect is on, a
// plain HTTP listener that forwards everything to HTTPS. Returns the
// main server and the redirect server (nil when not enabled).
//
// No WriteTimeout is set on the main server: /api/cards/stream holds
// its connection open for the lifetime of the client, and a write
// deadline would sever every stream mid-flight.
func StartServers(handler http.Handler, cfg *config.Config) (*http.Server, *http.Server) {
	srv := &http.Server{
		Addr:        net.JoinHostPort(cfg.Server.Host, cfg.Server.Port),
		Handler:     handler,
		ReadTimeout: serverReadTimeout,
		IdleTimeout: serverIdleTimeout,
	}

	var redirectSrv *http.Server
	if cfg.TLS.Enabled && cfg.TLS.RedirectHTTP {
		redirectSrv = newRedirectServer(cfg.Server.AllowedHosts)
		go func() {
			log.Println("HTTP redirect server starting on :80")
			if err := redirectSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.Printf("HTTP redirect server error: %v", err)
			}
		}()
	}

	go func() {
		if cfg.TLS.Enabled {
			log.Printf("HTTPS server starting on %s", srv.Addr)
			if err := srv.ListenAndServeTLS(cfg.TLS.CertPath, cfg.TLS.KeyPath); err != nil && err != http.ErrServerClosed {
				log.Fatalf("HTTPS server error: %v", err)
			}
		} else {
			log.Printf("HTTP server starting on %s", srv.Addr)
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.Fatalf("HTTP server error: %v", err)
			}
		}
	}()

	return srv, redirectSrv
}

// GracefulShutdown stops the scheduler first so in-flight reminder
// jobs drain before the HTTP servers close.
func GracefulShutdown(srv, redirectSrv *http.Server, sched *scheduler.Scheduler, timeout time.Duration) {
	log.Println("Server shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if sched != nil {
		sched.Shutdown(timeout)
	}

	if redirectSrv != nil {
		if err := redirectSrv.Shutdown(ctx); err != nil {
			log.Printf("Error shutting down HTTP redirect server: %v", err)
		}
	}

	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Error shutting down main server: %v", err)
	}

	log.Println("Server stopped")
}

func newRedirectServer(allowedHosts []string) *http.Server {
	redirectHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		host := r.Header.Get("X-Forwarded-Host")
		if host == "" {
			host = r.Host
		}

		if !middleware.IsHostAllowed(host, allowedHosts) {
			http.Error(w, "Invalid host", http.StatusBadRequest)
			return
		}

		canonicalHost := host
		if h, _, err := net.SplitHostPort(host); err == nil {
			canonicalHost = h
			if strings.Contains(h, ":") {
				// IPv6 literal, re-bracket for the URL
				canonicalHost = "[" + h + "]"
			}
		}

		http.Redirect(w, r, "https://"+canonicalHost+r.RequestURI, http.StatusMovedPermanently)
	})

	return &http.Server{
		Addr:         ":80",
		Handler:      redirectHandler,
		ReadTimeout:  serverReadTimeout,
		WriteTimeout: serverReadTimeout,
		IdleTimeout:  serverIdleTimeout,
	}
}
