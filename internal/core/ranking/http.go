// Copyright (c) 2026 GDLists. All rights reserved.
// Author: dev@gdlists.gg

package ranking

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/gdlists/demonlist/internal/platform/respond"
)

// Handler implements the leaderboard HTTP endpoint.
type Handler struct {
	service *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] configured with leaderboard routes.
//
// # Endpoints
//   - GET / : Current standings, highest points first (public).
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Get("/", handler.leaderboard)
	return router
}

/*
Leaderboard returns the current standings.

GET /api/v1/rankings

Response:
  - 200: []Row: Leaderboard, highest points first
*/
func (handler *Handler) leaderboard(writer http.ResponseWriter, request *http.Request) {
	rows, err := handler.service.Leaderboard(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, rows)
}
