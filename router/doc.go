// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes using Go 1.22+ enhanced routing.

# Route Definitions

NewRouter creates the full handler chain:

	handler := router.NewRouter(gdb, cfg)

# Middleware Order

Outermost first:

	WithLogging → Recover → CORS → mux

Preflight OPTIONS requests are answered by CORS before any route runs.

# Routes

Open:

	GET  /health          Liveness probe (plain "OK")

Behind the X-Shared-Secret header:

	POST /check-admin     Admin lookup by email
	GET  /health/ready    Database readiness
	GET  /                API banner

Any other path also requires the secret; a correct secret on an unknown
path yields 404, a wrong one 403.
*/
package router
