// Copyright (c) 2026 ComicHub. All rights reserved.

package slug_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/CMPS-115-Webcomics/Webcomics-Backend/pkg/slug"
)

func TestFrom(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"simple_title", "Paper Moon", "paper-moon"},
		{"accents", "Café Récits", "cafe-recits"},
		{"punctuation", "Hello, World!", "hello-world"},
		{"multi_space", "a   b", "a-b"},
		{"leading_trailing", "  trimmed  ", "trimmed"},
		{"numbers", "Chapter 12", "chapter-12"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, slug.From(tt.input))
		})
	}
}
