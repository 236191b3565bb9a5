// Copyright (c) 2026 GDLists. All rights reserved.
// Author: dev@gdlists.gg

package submission

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/gdlists/demonlist/internal/platform/request"
	"github.com/gdlists/demonlist/internal/platform/respond"
	"github.com/gdlists/demonlist/internal/platform/sec"
	"github.com/gdlists/demonlist/internal/platform/validate"
	"github.com/gdlists/demonlist/internal/users/account"
)

// Handler implements the review pipeline HTTP endpoints.
type Handler struct {
	service *Service
	gate    *account.Gate
}

// NewHandler constructs a new [Handler] with its dependencies.
func NewHandler(service *Service, gate *account.Gate) *Handler {
	return &Handler{service: service, gate: gate}
}

// Routes returns a [chi.Router] configured with review pipeline routes.
//
// # Endpoints
//   - POST /levels        : Queues a level proposal (member).
//   - POST /records       : Queues a record claim (member).
//   - GET  /pending       : The review queue, oldest first (mod+).
//   - POST /{id}/approve  : Decides and materializes (mod+).
//   - POST /{id}/reject   : Decides without materializing (mod+).
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	// Member endpoints
	router.Group(func(r chi.Router) {
		r.Use(handler.gate.RequireProfile)
		r.Post("/levels", handler.submitLevel)
		r.Post("/records", handler.submitRecord)
	})

	// Moderation endpoints
	router.Group(func(r chi.Router) {
		r.Use(handler.gate.RequireAction(sec.ActionReviewSubmissions))
		r.Get("/pending", handler.listPending)
		r.Post("/{id}/approve", handler.approve)
		r.Post("/{id}/reject", handler.reject)
	})

	return router
}

// # Request Payloads

type submitLevelRequest struct {
	Name              string `json:"name"`
	GDID              string `json:"gd_id"`
	Description       string `json:"description"`
	VerificationVideo string `json:"verification_video"`
}

type submitRecordRequest struct {
	LevelName string `json:"level_name"`
	Progress  int    `json:"progress"`
	Video     string `json:"video"`
}

/*
SubmitLevel queues a level proposal for review.

POST /api/v1/submissions/levels

Request:
  - Body: submitLevelRequest (Name, GDID, Description, VerificationVideo)

Response:
  - 201: Submission: The queued pending submission
  - 400: ErrInvalidJSON: Bad input or validation failure
  - 401: ErrUnauthorized: Missing session or banned account
*/
func (handler *Handler) submitLevel(writer http.ResponseWriter, request *http.Request) {
	var input submitLevelRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	submission, err := handler.service.SubmitLevel(request.Context(), account.GetProfile(request.Context()), LevelPayload{
		Name:              input.Name,
		GDID:              input.GDID,
		Description:       input.Description,
		VerificationVideo: input.VerificationVideo,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, submission)
}

/*
SubmitRecord queues a record claim for review.

POST /api/v1/submissions/records

Request:
  - Body: submitRecordRequest (LevelName, Progress, Video)

Response:
  - 201: Submission: The queued pending submission
  - 400: ErrInvalidJSON: Progress below minimum or missing fields
  - 401: ErrUnauthorized: Missing session or banned account
*/
func (handler *Handler) submitRecord(writer http.ResponseWriter, request *http.Request) {
	var input submitRecordRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	submission, err := handler.service.SubmitRecord(request.Context(), account.GetProfile(request.Context()), RecordPayload{
		LevelName: input.LevelName,
		Progress:  input.Progress,
		Video:     input.Video,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, submission)
}

/*
ListPending returns the review queue.

GET /api/v1/submissions/pending

Response:
  - 200: []Submission: Pending submissions, oldest first
  - 403: ErrForbidden: Caller lacks the moderation role
*/
func (handler *Handler) listPending(writer http.ResponseWriter, request *http.Request) {
	submissions, err := handler.service.ListPending(request.Context(), account.GetProfile(request.Context()))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, submissions)
}

/*
Approve decides a pending submission and materializes its payload.

POST /api/v1/submissions/{id}/approve

Response:
  - 200: Outcome: The decided submission plus the level or record it produced
  - 403: ErrForbidden: Caller lacks the moderation role
  - 404: ErrNotFound: Unknown submission id
  - 409: ErrConflict: Submission already decided
*/
func (handler *Handler) approve(writer http.ResponseWriter, request *http.Request) {
	outcome, err := handler.service.Approve(request.Context(), account.GetProfile(request.Context()), requestutil.ID(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, outcome)
}

/*
Reject decides a pending submission without materializing anything.

POST /api/v1/submissions/{id}/reject

Response:
  - 200: Submission: Post-decision state
  - 403: ErrForbidden: Caller lacks the moderation role
  - 404: ErrNotFound: Unknown submission id
  - 409: ErrConflict: Submission already decided
*/
func (handler *Handler) reject(writer http.ResponseWriter, request *http.Request) {
	submission, err := handler.service.Reject(request.Context(), account.GetProfile(request.Context()), requestutil.ID(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, submission)
}
