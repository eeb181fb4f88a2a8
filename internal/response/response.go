// Package response renders the uniform API envelope.  Every handler and
// middleware reply, success or failure, goes through these helpers so the
// wire format never drifts between endpoints.
package response

import "github.com/labstack/echo/v4"

// Envelope is the body shape shared by all endpoints.
type Envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data"`
	Errors  any    `json:"errors,omitempty"`
}

// OK writes a success envelope with the given status code.
func OK(c echo.Context, status int, data any, message string) error {
	return c.JSON(status, Envelope{Success: true, Message: message, Data: data})
}

// Error writes a failure envelope.  The message is the only detail exposed
// to the caller; anything internal must be logged, not returned.
func Error(c echo.Context, status int, message string) error {
	return c.JSON(status, Envelope{Success: false, Message: message})
}

// ValidationError writes a 400 failure envelope carrying per-field details.
func ValidationError(c echo.Context, status int, message string, fieldErrors any) error {
	return c.JSON(status, Envelope{Success: false, Message: message, Errors: fieldErrors})
}
