package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestListingImageKey(t *testing.T) {
	key := ListingImageKey(1735689600, "desk-lamp.jpg")
	assert.Equal(t, "listings/1735689600_desk-lamp.jpg", key)
	assert.True(t, IsListingImageKey(key))
}

func TestListingImageKey_SanitizesFilename(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"photo.png", "listings/1_photo.png"},
		{"../../etc/passwd", "listings/1_passwd"},
		{"my photo (1).jpg", "listings/1_my-photo--1-.jpg"},
		{"", "listings/1_upload"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ListingImageKey(1, tt.in), "filename=%q", tt.in)
	}
}

func TestIsListingImageKey(t *testing.T) {
	assert.True(t, IsListingImageKey("listings/1_a.png"))
	assert.False(t, IsListingImageKey("profiles/1_a.png"))
	assert.False(t, IsListingImageKey("listings"))
}
