// Copyright (c) 2026 GDLists. All rights reserved.
// Author: dev@gdlists.gg

package slug_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gdlists/demonlist/pkg/slug"
)

/*
TestFrom covers the slug transformation pipeline.
*/
func TestFrom(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"simple", "Bloodbath", "bloodbath"},
		{"spaces", "Sonic Wave Infinity", "sonic-wave-infinity"},
		{"accents", "Lével Ünïque", "level-unique"},
		{"punctuation", "The Hell Zone!?", "the-hell-zone"},
		{"collapse_hyphens", "a -- b", "a-b"},
		{"trim_edges", "  edged  ", "edged"},
		{"digits", "Deadlocked 2", "deadlocked-2"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, slug.From(tt.input))
		})
	}
}
