package constants

import "net/http"

// CodedError is an error carrying the HTTP status the API should answer with.
// The api error handler unwraps to the first CodedError it finds.
type CodedError struct {
	code int
	msg  string
}

func NewCodedError(code int, msg string) *CodedError {
	return &CodedError{code: code, msg: msg}
}

func NewBadRequest(msg string) *CodedError {
	return &CodedError{code: http.StatusBadRequest, msg: msg}
}

func (e *CodedError) Error() string { return e.msg }
func (e *CodedError) Code() int     { return e.code }

var (
	ErrDBNotFound = NewCodedError(http.StatusNotFound, "not found")

	ErrUnauthorized   = NewCodedError(http.StatusUnauthorized, "unauthorized")
	ErrMissingAPIKey  = NewCodedError(http.StatusUnauthorized, "unauthorized: provide a valid API key in Authorization: Bearer <key>")
	ErrAdminForbidden = NewCodedError(http.StatusUnauthorized, "unauthorized admin access")

	ErrEmailAlreadyTaken = NewCodedError(http.StatusBadRequest, "email is already registered")
	ErrBadCredentials    = NewCodedError(http.StatusUnauthorized, "invalid email or password")

	ErrQuotaExceeded = NewCodedError(http.StatusTooManyRequests, "monthly analysis limit reached")

	ErrUnresolvableCoordinates = NewCodedError(http.StatusBadRequest, "unable to resolve coordinates")
)
