// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/danielhkuo/admin-gate/auth"
	"github.com/danielhkuo/admin-gate/middleware"
	"github.com/danielhkuo/admin-gate/models"
)

const (
	NotAuthorizedDetail      = "Not authorized"
	InvalidRequestBodyDetail = "Invalid request body"
	InternalErrorDetail      = "Internal server error"
)

type AdminHandler struct {
	admins   auth.AdminFinder
	validate *validator.Validate
}

func NewAdminHandler(admins auth.AdminFinder) *AdminHandler {
	return &AdminHandler{
		admins:   admins,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// CheckAdmin handles POST /check-admin
// Returns the admin registered under the email, or 403 if there is none
func (h *AdminHandler) CheckAdmin(w http.ResponseWriter, r *http.Request) {
	var req models.CheckAdminRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusUnprocessableEntity, InvalidRequestBodyDetail)
		return
	}

	req.Email = models.NormalizeEmail(req.Email)
	if err := h.validate.Struct(req); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 && verrs[0].Tag() == "required" {
			middleware.ErrorResponse(w, http.StatusUnprocessableEntity, InvalidRequestBodyDetail)
			return
		}
		// Malformed addresses get the same answer as unknown ones
		middleware.ErrorResponse(w, http.StatusForbidden, NotAuthorizedDetail)
		return
	}

	admin, err := auth.AuthorizeAdmin(r.Context(), h.admins, req.Email)
	if errors.Is(err, auth.ErrNotAuthorized) {
		middleware.ErrorResponse(w, http.StatusForbidden, NotAuthorizedDetail)
		return
	}
	if err != nil {
		slog.Error("failed to look up admin",
			"request_id", middleware.RequestID(r.Context()),
			"error", err,
		)
		middleware.ErrorResponse(w, http.StatusInternalServerError, InternalErrorDetail)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.NewAdminResponse(admin))
}
