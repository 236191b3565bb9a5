// Copyright (c) 2026 GDLists. All rights reserved.
// Author: dev@gdlists.gg

package record

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/gdlists/demonlist/internal/platform/respond"
)

// Handler implements the record ledger HTTP endpoints.
type Handler struct {
	service *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] configured with record ledger routes.
//
// # Endpoints
//   - GET / : Full ledger, oldest first (public).
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Get("/", handler.list)
	return router
}

/*
List returns the full ledger.

GET /api/v1/records

Response:
  - 200: []Record: Every approved completion, oldest first
*/
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	records, err := handler.service.List(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, records)
}
