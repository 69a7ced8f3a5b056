// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth implements the two checks that guard the admin API.

# Shared Secret

The frontend and this API share a static secret. Every protected request
carries it in the X-Shared-Secret header:

	err := auth.ValidateSharedSecret(r.Header.Get("X-Shared-Secret"), cfg.SharedSecret)

Both values are hashed with SHA-256 and compared with hmac.Equal, so the
comparison runs in constant time regardless of content or length. An empty
configured secret never matches; configuration loading refuses to start
without one.

# Admin Authorization

AuthorizeAdmin asks an AdminFinder (normally *store.AdminStore) for the
admin registered under an email:

	admin, err := auth.AuthorizeAdmin(ctx, adminStore, email)
	if errors.Is(err, auth.ErrNotAuthorized) {
		// 403
	}

A missing record becomes ErrNotAuthorized. Database failures pass through
unchanged so callers can tell them apart from a negative answer.
*/
package auth
