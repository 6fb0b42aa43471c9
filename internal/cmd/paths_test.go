package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPathsOverlap(t *testing.T) {
	tests := []struct {
		name     string
		path1    string
		path2    string
		expected bool
	}{
		{
			name:     "identical paths",
			path1:    "/tmp/cache",
			path2:    "/tmp/cache",
			expected: true,
		},
		{
			name:     "path1 inside path2",
			path1:    "/tmp/cache/000",
			path2:    "/tmp/cache",
			expected: true,
		},
		{
			name:     "path2 inside path1",
			path1:    "/tmp/cache",
			path2:    "/tmp/cache/000/000-ab.json",
			expected: true,
		},
		{
			name:     "completely separate paths",
			path1:    "/tmp/cache",
			path2:    "/srv/data",
			expected: false,
		},
		{
			name:     "shared name prefix",
			path1:    "/tmp/cache",
			path2:    "/tmp/cache-old",
			expected: false,
		},
		{
			name:     "sibling directories",
			path1:    "/tmp/cache",
			path2:    "/tmp/data",
			expected: false,
		},
		{
			name:     "relative paths - overlapping",
			path1:    "cache",
			path2:    "cache/blob.zst",
			expected: true,
		},
		{
			name:     "relative paths - separate",
			path1:    "cache",
			path2:    "data",
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, pathsOverlap(tt.path1, tt.path2), "pathsOverlap(%q, %q)", tt.path1, tt.path2)
		})
	}
}
