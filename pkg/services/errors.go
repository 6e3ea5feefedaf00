package services

import "errors"

var (
	// ErrAuth covers bad credentials and missing accounts alike, so a probe
	// cannot tell which one it hit.
	ErrAuth = errors.New("incorrect username or password")

	// ErrMalformedID means a post id did not contain the folder#slug shape.
	ErrMalformedID = errors.New("malformed post id")

	// ErrNotFound means no stored entry matched the requested folder/slug.
	ErrNotFound = errors.New("entry not found")

	// ErrInvalidPost means the wire payload is missing a required field.
	ErrInvalidPost = errors.New("invalid post")
)
