// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"

	"gorm.io/gorm"

	"github.com/danielhkuo/admin-gate/cliparse"
	"github.com/danielhkuo/admin-gate/handlers"
	"github.com/danielhkuo/admin-gate/middleware"
	"github.com/danielhkuo/admin-gate/store"
)

const Banner = "admin-gate API v1"

func NewRouter(db *gorm.DB, cfg cliparse.Config) http.Handler {
	admins := store.NewAdminStore(db)

	// Initialize handlers
	adminHandler := handlers.NewAdminHandler(admins)
	healthHandler := handlers.NewHealthHandler(admins)

	// Everything registered here sits behind the shared secret
	protected := http.NewServeMux()
	protected.HandleFunc("POST /check-admin", adminHandler.CheckAdmin)
	protected.HandleFunc("GET /health/ready", healthHandler.Ready)
	protected.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(Banner))
	})

	mux := http.NewServeMux()

	// Liveness stays open for orchestrators
	mux.HandleFunc("GET /health", healthHandler.Live)
	mux.Handle("/", middleware.RequireSharedSecret(cfg.SharedSecret)(protected))

	var h http.Handler = mux
	h = middleware.CORS(cfg.CORSOrigin)(h)
	h = middleware.Recover(h)
	return middleware.WithLogging(h.ServeHTTP)
}
