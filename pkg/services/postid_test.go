package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostIDRoundTrip(t *testing.T) {
	tests := []struct {
		name   string
		folder string
		slug   string
	}{
		{"simple", "blog", "hello-world"},
		{"nested folder", "blog/2024", "some-entry"},
		{"empty folder", "", "orphan"},
		{"numeric slug", "notes", "123"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id := MakePostID(tt.folder, tt.slug)
			folder, slug, err := ParsePostID(id)
			require.NoError(t, err)
			assert.Equal(t, tt.folder, folder)
			assert.Equal(t, tt.slug, slug)
		})
	}
}

func TestParsePostIDMalformed(t *testing.T) {
	tests := []struct {
		name   string
		postid string
	}{
		{"no delimiter", "blog-hello-world"},
		{"empty", ""},
		{"delimiter only", "#"},
		{"missing slug", "blog#"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := ParsePostID(tt.postid)
			assert.ErrorIs(t, err, ErrMalformedID)
		})
	}
}

func TestParsePostIDSplitsOnFirstDelimiter(t *testing.T) {
	folder, slug, err := ParsePostID("blog#weird#slug")
	require.NoError(t, err)
	assert.Equal(t, "blog", folder)
	assert.Equal(t, "weird#slug", slug)
}
