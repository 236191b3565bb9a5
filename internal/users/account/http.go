// Copyright (c) 2026 GDLists. All rights reserved.
// Author: dev@gdlists.gg

package account

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/gdlists/demonlist/internal/platform/request"
	"github.com/gdlists/demonlist/internal/platform/respond"
	"github.com/gdlists/demonlist/internal/platform/sec"
)

// Handler implements the user administration HTTP endpoints.
type Handler struct {
	service *Service
	gate    *Gate
}

// NewHandler constructs a new [Handler] with its dependencies.
func NewHandler(service *Service, gate *Gate) *Handler {
	return &Handler{service: service, gate: gate}
}

// Routes returns a [chi.Router] configured with user administration routes.
//
// # Endpoints
//   - GET  /           : Lists all profiles (mod+).
//   - POST /{id}/ban   : Toggles the banned flag (mod+).
//   - POST /{id}/mod   : Toggles the mod role (mod+).
//   - POST /{id}/admin : Toggles the admin role (admin only).
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Group(func(r chi.Router) {
		r.Use(handler.gate.RequireAction(sec.ActionManageUsers))
		r.Get("/", handler.list)
		r.Post("/{id}/ban", handler.toggleBan)
		r.Post("/{id}/mod", handler.toggleMod)
	})

	router.Group(func(r chi.Router) {
		r.Use(handler.gate.RequireAction(sec.ActionGrantAdmin))
		r.Post("/{id}/admin", handler.toggleAdmin)
	})

	return router
}

func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	profiles, err := handler.service.List(request.Context(), GetProfile(request.Context()))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, profiles)
}

func (handler *Handler) toggleBan(writer http.ResponseWriter, request *http.Request) {
	targetID := requestutil.ID(request, "id")

	updated, err := handler.service.ToggleBan(request.Context(), GetProfile(request.Context()), targetID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, updated)
}

func (handler *Handler) toggleMod(writer http.ResponseWriter, request *http.Request) {
	targetID := requestutil.ID(request, "id")

	updated, err := handler.service.ToggleMod(request.Context(), GetProfile(request.Context()), targetID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, updated)
}

func (handler *Handler) toggleAdmin(writer http.ResponseWriter, request *http.Request) {
	targetID := requestutil.ID(request, "id")

	updated, err := handler.service.ToggleAdmin(request.Context(), GetProfile(request.Context()), targetID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, updated)
}
