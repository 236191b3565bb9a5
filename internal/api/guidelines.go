// Copyright (c) 2026 GDLists. All rights reserved.
// Author: dev@gdlists.gg

package api

import (
	"net/http"

	"github.com/gdlists/demonlist/internal/platform/respond"
)

// guidelineSection is one block of the submission guidelines document.
type guidelineSection struct {
	Title string   `json:"title"`
	Rules []string `json:"rules"`
}

// submissionGuidelines is the static document served at /api/v1/guidelines.
//
// Content changes go through a code review like any other list policy
// change; there is no CMS behind this.
var submissionGuidelines = []guidelineSection{
	{
		Title: "Records",
		Rules: []string{
			"Records require at least 60% progress from 0%.",
			"Progress below 60% is not accepted, even on the hardest levels.",
			"Your submission must include full, unedited footage of the run.",
			"Visible or audible clicks are strongly recommended for top-list levels.",
			"Secret ways and bug routes invalidate a record.",
		},
	},
	{
		Title: "Footage",
		Rules: []string{
			"The video must show the endscreen or death screen after the run.",
			"The full level attempt must be visible from 0%.",
			"FPS bypass above 360 FPS is not allowed.",
			"Gameplay must be recognizable; heavily modified textures that obscure the level are not accepted.",
		},
	},
	{
		Title: "Levels",
		Rules: []string{
			"Level proposals need the in-game name, the GD level id, and a verification video.",
			"Placement on the list is decided by the moderation team after approval.",
		},
	},
}

/*
Guidelines returns the submission guidelines document.

GET /api/v1/guidelines

Response:
  - 200: []guidelineSection: Structured guidelines
*/
func guidelines(writer http.ResponseWriter, request *http.Request) {
	respond.OK(writer, submissionGuidelines)
}
