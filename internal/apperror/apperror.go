// Package apperror defines the error kinds the API exposes and the HTTP status
// each one maps to.
package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind categorizes an application error.
type Kind int

const (
	Internal Kind = iota
	Validation
	DuplicateKey
	InvalidID
	BadRequest
	Unauthenticated
	InvalidToken
	TokenExpired
	InvalidCredentials
	Forbidden
	NotFound
	RateLimited
)

// Error is an error carrying a Kind, a client-facing message and an optional cause.
type Error struct {
	Kind    Kind
	Message string
	// Details holds field-level messages for Validation errors.
	Details []string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// StatusCode returns the HTTP status for the error kind.
func (e *Error) StatusCode() int {
	switch e.Kind {
	case Validation, DuplicateKey, InvalidID, BadRequest:
		return http.StatusBadRequest
	case Unauthenticated, InvalidToken, TokenExpired, InvalidCredentials:
		return http.StatusUnauthorized
	case Forbidden:
		return http.StatusForbidden
	case NotFound:
		return http.StatusNotFound
	case RateLimited:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

// PublicMessage is the message safe to show to clients. Internal errors never
// leak their cause.
func (e *Error) PublicMessage() string {
	if e.Kind == Internal {
		return "Internal Server Error"
	}
	return e.Message
}

func New(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

func NewValidation(details []string) *Error {
	return &Error{Kind: Validation, Message: "Validation failed", Details: details}
}

func NewDuplicateKey(field string, err error) *Error {
	return New(DuplicateKey, fmt.Sprintf("%s already exists. Please use a different %s.", field, field), err)
}

func NewInvalidID(err error) *Error {
	return New(InvalidID, "Invalid ID format", err)
}

func NewBadRequest(message string, err error) *Error {
	return New(BadRequest, message, err)
}

func NewUnauthenticated() *Error {
	return New(Unauthenticated, "No token provided. Authorization denied.", nil)
}

func NewInvalidToken(err error) *Error {
	return New(InvalidToken, "Invalid token. Authorization denied.", err)
}

func NewTokenExpired(err error) *Error {
	return New(TokenExpired, "Token expired. Please login again.", err)
}

func NewInvalidCredentials() *Error {
	return New(InvalidCredentials, "Invalid email or password", nil)
}

func NewForbidden(message string) *Error {
	return New(Forbidden, message, nil)
}

func NewNotFound(message string, err error) *Error {
	return New(NotFound, message, err)
}

func NewRateLimited(message string) *Error {
	return New(RateLimited, message, nil)
}

func NewInternal(message string, err error) *Error {
	return New(Internal, message, err)
}

// From extracts an *Error from err's chain. Anything else becomes Internal.
func From(err error) *Error {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}
	return NewInternal("unexpected error", err)
}

// Is reports whether err's chain holds an *Error of the given kind.
func Is(err error, kind Kind) bool {
	var appErr *Error
	return errors.As(err, &appErr) && appErr.Kind == kind
}
