package apperrors

import "errors"

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrUnauthorized indicates that the caller could not be authenticated.
var ErrUnauthorized = errors.New("unauthorized")

// ErrNoOpenCashClosure indicates that a close was requested while no cash
// period is currently open. Distinct from ErrNotFound so handlers can tell
// "nothing to close" apart from a bad closure id.
var ErrNoOpenCashClosure = errors.New("no open cash closure")

// ErrExternalService indicates a failure talking to the external carrier.
var ErrExternalService = errors.New("external service error")
