package services

import (
	"fmt"
	"strings"
)

// postIDDelimiter joins folder and slug into the opaque id clients hold on
// to. Folder paths coming out of the content store never contain it.
const postIDDelimiter = "#"

// MakePostID builds the composite post id a client uses to name a post.
func MakePostID(folder, slug string) string {
	return folder + postIDDelimiter + slug
}

// ParsePostID splits a post id back into folder and slug. It is the exact
// inverse of MakePostID for any folder free of the delimiter.
func ParsePostID(postid string) (string, string, error) {
	folder, slug, found := strings.Cut(postid, postIDDelimiter)
	if !found || slug == "" {
		return "", "", fmt.Errorf("%w: %q", ErrMalformedID, postid)
	}
	return folder, slug, nil
}
