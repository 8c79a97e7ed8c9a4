package domain

import "errors"

var (
	// ErrGameNotFound is returned by lookups with an unknown game id.
	ErrGameNotFound = errors.New("game not found")

	// ErrSessionNotFound is returned when a session id does not exist or
	// belongs to another user.
	ErrSessionNotFound = errors.New("session not found")

	// ErrReviewNotFound is returned by lookups with an unknown review id.
	ErrReviewNotFound = errors.New("review not found")

	// ErrDuplicateReview is returned when a user reviews the same game twice.
	ErrDuplicateReview = errors.New("review already exists for this game")

	// ErrMalformedReply is returned when the extraction reply from the model
	// does not match the expected five-field shape. Callers surface a generic
	// apology instead of retrying.
	ErrMalformedReply = errors.New("malformed extraction reply")
)
