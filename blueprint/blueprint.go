package blueprint

import "errors"

// perhaps have a different Error type declarations somewhere. For now, be here

var (
	EAUTHFAILED     = errors.New("EAUTHFAILED")
	EUPSTREAMFAILED = errors.New("EUPSTREAMFAILED")
	ETIMEOUT        = errors.New("ETIMEOUT")
	ECANCELLED      = errors.New("ECANCELLED")
	EINVALIDREGION  = errors.New("EINVALIDREGION")
	EINVALIDLINK    = errors.New("EINVALIDLINK")
	ENORESULT       = errors.New("ENORESULT")
)

// ControllerError represents a valid error response
type ControllerError struct {
	Message string      `json:"message"`
	Status  int         `json:"status"`
	Error   interface{} `json:"error,omitempty"`
}

// ControllerResult represents a valid success response
type ControllerResult struct {
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
	Status  int         `json:"status"`
}

// LoggerOptions carries the request scoped fields attached to the sentry logger
type LoggerOptions struct {
	RequestID string
	Platform  string
	Entity    string
	AddTrace  bool
}
