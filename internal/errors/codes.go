package errors

// ErrorCode represents a machine-readable error code.
type ErrorCode string

// Authentication errors (401).
const (
	// ErrCodeMissingToken indicates no token was present in header or cookie.
	ErrCodeMissingToken ErrorCode = "MISSING_TOKEN"
	// ErrCodeInvalidToken indicates a bad signature, expired, or malformed token.
	ErrCodeInvalidToken ErrorCode = "INVALID_TOKEN"
	// ErrCodeWrongTokenType indicates an access token where a refresh token was
	// expected, or vice versa.
	ErrCodeWrongTokenType ErrorCode = "WRONG_TOKEN_TYPE"
	// ErrCodeUnknownSubject indicates the token subject matched no identity.
	ErrCodeUnknownSubject ErrorCode = "UNKNOWN_SUBJECT"
	// ErrCodeInvalidCredentials indicates a failed login.
	ErrCodeInvalidCredentials ErrorCode = "INVALID_CREDENTIALS"
)

// Request errors.
const (
	// ErrCodeDuplicateEmail indicates a registration with an email already in use.
	ErrCodeDuplicateEmail ErrorCode = "DUPLICATE_EMAIL"
	// ErrCodeRateLimited indicates the per-identity request budget was exceeded.
	ErrCodeRateLimited ErrorCode = "RATE_LIMITED"
	// ErrCodeInvalidInput indicates a request body that failed validation.
	ErrCodeInvalidInput ErrorCode = "INVALID_INPUT"
	// ErrCodeNotFound indicates a missing resource.
	ErrCodeNotFound ErrorCode = "NOT_FOUND"
	// ErrCodeForbidden indicates an operation on a resource the caller does not own.
	ErrCodeForbidden ErrorCode = "FORBIDDEN"
)

// Server errors.
const (
	// ErrCodeStoreUnavailable indicates a backing store failure.
	ErrCodeStoreUnavailable ErrorCode = "STORE_UNAVAILABLE"
	// ErrCodeInternal indicates an unexpected server error.
	ErrCodeInternal ErrorCode = "INTERNAL"
)
