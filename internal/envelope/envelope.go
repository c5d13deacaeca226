// Package envelope defines the response contract shared by every transport:
// a success flag, an optional message and optional data.
package envelope

import (
	"errors"
	"net/http"

	"github.com/mvaleed/quill/internal/domain"
)

// Messages returned to clients.
const (
	MsgCreated          = "Resource created successfully"
	MsgDeleted          = "Resource deleted successfully"
	MsgValidationFailed = "Validation failed"
	MsgUnauthorized     = "Unauthorized access"
	MsgInvalidLogin     = "Invalid credentials"
	MsgBadPassword      = "Current password is incorrect"
	MsgNotFound         = "Resource not found"
	MsgInvalidBody      = "Invalid request body"
	MsgRateLimited      = "Rate limit exceeded"
	MsgInternal         = "Internal server error"

	MsgRegistered      = "User registered successfully"
	MsgLoggedIn        = "Login successful"
	MsgProfile         = "User profile retrieved successfully"
	MsgProfileUpdated  = "Profile updated successfully"
	MsgPasswordChanged = "Password changed successfully"
	MsgArticles        = "Articles retrieved successfully"
	MsgArticle         = "Article retrieved successfully"
	MsgArticleUpdated  = "Article updated successfully"
)

// Envelope is the JSON body of every response. Empty message and nil data are
// omitted.
type Envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

// Response pairs an envelope with its status code.
type Response struct {
	Status int
	Body   Envelope
}

// Fault reports whether the response hides an unexpected error.
func (r Response) Fault() bool {
	return r.Status >= http.StatusInternalServerError
}

func Success(status int, message string, data any) Response {
	return Response{Status: status, Body: Envelope{Success: true, Message: message, Data: data}}
}

func Failure(status int, message string, data any) Response {
	return Response{Status: status, Body: Envelope{Success: false, Message: message, Data: data}}
}

func OK(message string, data any) Response {
	return Success(http.StatusOK, message, data)
}

func Created(data any) Response {
	return Success(http.StatusCreated, MsgCreated, data)
}

// NoContent carries no body on the wire.
func NoContent() Response {
	return Success(http.StatusNoContent, MsgDeleted, nil)
}

func ValidationFailed(errs domain.ErrorMap) Response {
	return Failure(http.StatusUnprocessableEntity, MsgValidationFailed, errs)
}

func Unauthorized(message string) Response {
	return Failure(http.StatusUnauthorized, message, nil)
}

func BadRequest(message string) Response {
	return Failure(http.StatusBadRequest, message, nil)
}

func TooManyRequests() Response {
	return Failure(http.StatusTooManyRequests, MsgRateLimited, nil)
}

func Internal() Response {
	return Failure(http.StatusInternalServerError, MsgInternal, nil)
}

// FromError maps the closed set of domain failures to responses. Any other
// error becomes a generic 500 whose cause is never exposed.
func FromError(err error) Response {
	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		return ValidationFailed(ve.Errors)
	}

	var nf *domain.NotFoundError
	switch {
	case errors.As(err, &nf):
		return Failure(http.StatusNotFound, nf.Error(), nil)
	case errors.Is(err, domain.ErrNotFound):
		return Failure(http.StatusNotFound, MsgNotFound, nil)
	case errors.Is(err, domain.ErrInvalidLogin):
		return Unauthorized(MsgInvalidLogin)
	case errors.Is(err, domain.ErrUnauthorized):
		return Unauthorized(MsgUnauthorized)
	case errors.Is(err, domain.ErrInvalidCredential):
		return BadRequest(MsgBadPassword)
	}

	return Internal()
}
