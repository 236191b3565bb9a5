// Copyright (c) 2026 GDLists. All rights reserved.
// Author: dev@gdlists.gg

package record

import "context"

// Service exposes the read side of the ledger.
type Service struct {
	records Repository
}

// NewService constructs a new record [Service].
func NewService(records Repository) *Service {
	return &Service{records: records}
}

// List returns the full ledger, oldest first. Public.
func (service *Service) List(context context.Context) ([]*Record, error) {
	return service.records.List(context)
}
