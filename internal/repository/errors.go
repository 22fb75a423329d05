// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as
// handlers to distinguish between different failure scenarios. For
// example, ErrEpisodeNotFound indicates that a lookup by id found no
// row, which the handler must translate into a 404 response, while
// ErrRatingOutOfRange marks a domain-constraint violation detected
// before any write reaches the database.
package repository

import "errors"

// ErrEpisodeNotFound is returned when an episode cannot be found in the DB.
// Handlers should translate this into an HTTP 404 response with the body
// {"error": "Show not found"}.
var ErrEpisodeNotFound = errors.New("episode not found")

// ErrGuestNotFound is returned when a guest cannot be found in the DB.
// Handlers should translate this into an HTTP 404 response with the body
// {"error": "Guest not found"}.
var ErrGuestNotFound = errors.New("guest not found")

// ErrRatingOutOfRange is returned by ValidateRating when an appearance
// rating falls outside the inclusive 1..5 range.  Its text is the exact
// message clients receive in the 400 errors list.
var ErrRatingOutOfRange = errors.New("Rating must be between 1 and 5")

// ErrEmptyName is returned when a guest name is missing or blank after
// trimming.  Guest names are the one always-required scalar field.
var ErrEmptyName = errors.New("Name must not be empty")

// ValidateRating checks the appearance rating domain constraint.  It is
// called by handlers before any persistence is attempted so that a bad
// rating never starts a transaction.  A nil pointer means the rating was
// not supplied, which is allowed.
func ValidateRating(rating *int32) error {
	if rating == nil {
		return nil
	}
	if *rating < 1 || *rating > 5 {
		return ErrRatingOutOfRange
	}
	return nil
}
