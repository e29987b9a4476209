// Error codes are part of the API contract; clients switch on them rather
// than on messages.
package handlers

const (
	ErrCodeBadRequest       = "bad_request"
	ErrCodeNotFound         = "not_found"
	ErrCodeRateLimited      = "too_many_requests"
	ErrCodeInternal         = "internal_error"
	ErrCodeMethodNotAllowed = "method_not_allowed"
)

// msgServerError is the only detail a client sees for unexpected failures.
const msgServerError = "Server error"
