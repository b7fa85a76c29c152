package domain

import "errors"

// ErrNotFound is returned by repo and service functions when the requested
// resource does not exist in the database, or exists but belongs to a
// different owner. Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned by service functions when input fails business
// rule validation (e.g. missing required field, malformed airport code).
// Handlers should map this to HTTP 422 Unprocessable Entity.
var ErrValidation = errors.New("validation error")

// ErrConflict is returned when a unique constraint would be violated,
// e.g. registering an email or creating a country code that already exists.
// Handlers should map this to HTTP 409.
var ErrConflict = errors.New("already exists")

// ErrUnauthorized is returned when credentials or tokens do not check out.
// Handlers should map this to HTTP 401.
var ErrUnauthorized = errors.New("unauthorized")
