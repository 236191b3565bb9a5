// Copyright (c) 2026 GDLists. All rights reserved.
// Author: dev@gdlists.gg

package level

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/gdlists/demonlist/internal/platform/request"
	"github.com/gdlists/demonlist/internal/platform/respond"
	"github.com/gdlists/demonlist/internal/platform/sec"
	"github.com/gdlists/demonlist/internal/platform/validate"
	"github.com/gdlists/demonlist/internal/users/account"
)

// Handler implements the level registry HTTP endpoints.
type Handler struct {
	service *Service
	gate    *account.Gate
}

// NewHandler constructs a new [Handler] with its dependencies.
func NewHandler(service *Service, gate *account.Gate) *Handler {
	return &Handler{service: service, gate: gate}
}

// Routes returns a [chi.Router] configured with level registry routes.
//
// # Endpoints
//   - GET /          : Full list, rank ascending (public).
//   - GET /{id}      : Single level (public).
//   - POST /         : Adds a level at the bottom (mod+).
//   - PUT  /reorder  : Applies a full rank permutation (mod+).
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	// Public endpoints
	router.Get("/", handler.list)
	router.Get("/{id}", handler.get)

	// Moderation endpoints
	router.Group(func(r chi.Router) {
		r.Use(handler.gate.RequireAction(sec.ActionManageLevels))
		r.Post("/", handler.add)
		r.Put("/reorder", handler.reorder)
	})

	return router
}

// # Request Payloads

type addLevelRequest struct {
	Name              string `json:"name"`
	GDID              string `json:"gd_id"`
	Description       string `json:"description"`
	VerificationVideo string `json:"verification_video"`
}

type reorderRequest struct {
	IDs []string `json:"ids"`
}

/*
List returns every level, hardest first.

GET /api/v1/levels

Response:
  - 200: []Level: The full ordered list
*/
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	levels, err := handler.service.List(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, levels)
}

/*
Get returns a single level.

GET /api/v1/levels/{id}

Response:
  - 200: Level: Hydrated entity
  - 404: ErrNotFound: Unknown id
*/
func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	lvl, err := handler.service.Get(request.Context(), requestutil.ID(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, lvl)
}

/*
Add places a new level at the bottom of the list.

POST /api/v1/levels

Request:
  - Body: addLevelRequest (Name, GDID, Description, VerificationVideo)

Response:
  - 201: Level: Created entity with assigned rank
  - 400: ErrInvalidJSON: Bad input or validation failure
  - 403: ErrForbidden: Caller lacks the moderation role
*/
func (handler *Handler) add(writer http.ResponseWriter, request *http.Request) {
	var input addLevelRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	lvl, err := handler.service.Add(request.Context(), account.GetProfile(request.Context()), AddInput{
		Name:              input.Name,
		GDID:              input.GDID,
		Description:       input.Description,
		VerificationVideo: input.VerificationVideo,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, lvl)
}

/*
Reorder applies a full rank permutation in one shot.

PUT /api/v1/levels/reorder

Request:
  - Body: reorderRequest (IDs, every current level id exactly once)

Response:
  - 200: []Level: The list in its new order
  - 400: ErrInvalidJSON: Id set does not match the current level set
  - 403: ErrForbidden: Caller lacks the moderation role
*/
func (handler *Handler) reorder(writer http.ResponseWriter, request *http.Request) {
	var input reorderRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	if err := handler.service.Reorder(request.Context(), account.GetProfile(request.Context()), input.IDs); err != nil {
		respond.Error(writer, request, err)
		return
	}

	levels, err := handler.service.List(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, levels)
}
