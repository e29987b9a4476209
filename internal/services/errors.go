// Package services defines the business logic for artworks, favourites,
// reviews and contact messages. This file centralizes common service-level
// error values so that they can be consistently returned by service methods
// and checked by callers.
//
// Validation failures all match ErrValidation via errors.Is; their message is
// safe to show to API clients as-is. Translation into HTTP status codes is
// performed at the handler layer.
package services

import "errors"

// ErrValidation is matched by every client-input error below.
var ErrValidation = errors.New("validation failed")

// validationError is a client-facing message that matches ErrValidation.
type validationError string

func (e validationError) Error() string { return string(e) }

func (e validationError) Is(target error) bool { return target == ErrValidation }

// Favourite-related errors.
var (
	// ErrFavouriteFieldsRequired is returned when userEmail or artworkId is missing.
	ErrFavouriteFieldsRequired error = validationError("Missing userEmail or artworkId")

	// ErrEmailRequired is returned when the email query parameter is missing.
	ErrEmailRequired error = validationError("Missing email query param")
)

// Review-related errors.
var (
	ErrReviewFieldsRequired error = validationError("artworkId and userEmail are required")
	ErrInvalidRating        error = validationError("Rating must be between 1 and 5")
	ErrCommentTooShort      error = validationError("Comment must be at least 10 characters")
)

// Contact-related errors.
var (
	ErrNameTooShort    error = validationError("Name too short")
	ErrInvalidEmail    error = validationError("Invalid email")
	ErrMessageTooShort error = validationError("Message too short")
)

// ErrArtworkNotFound indicates that no artwork matched a delete.
var ErrArtworkNotFound = errors.New("artwork not found")
