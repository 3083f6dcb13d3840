package storage

import (
	"fmt"
	"path"
	"strings"
)

// Listing images live under a single prefix, namespaced by upload timestamp
// so concurrent uploads of the same filename never collide.
const listingPrefix = "listings"

// ListingImageKey builds the object key for a listing image upload.
func ListingImageKey(unixTS int64, filename string) string {
	return fmt.Sprintf("%s/%d_%s", listingPrefix, unixTS, sanitizeFilename(filename))
}

// IsListingImageKey reports whether a key belongs to the listing image prefix.
func IsListingImageKey(key string) bool {
	return strings.HasPrefix(key, listingPrefix+"/")
}

// sanitizeFilename strips any path components and characters that would
// break a URL path segment.
func sanitizeFilename(name string) string {
	name = path.Base(strings.ReplaceAll(name, "\\", "/"))
	if name == "." || name == "/" {
		return "upload"
	}
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.' || r == '-' || r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('-')
		}
	}
	if b.Len() == 0 {
		return "upload"
	}
	return b.String()
}
