package services

import "github.com/postboard/api/pkg/response"

// Sentinel errors returned by services. Callers add context with %w;
// response.Error maps them back to a status code.
var (
	ErrUserExists         = response.NewConflict("username or email already exists")
	ErrInvalidCredentials = response.NewUnauthorized("invalid credentials")
	ErrTokenInvalid       = response.NewUnauthorized("invalid token")
	ErrTokenExpired       = response.NewUnauthorized("token expired")
	ErrTokenNotRecognized = response.NewUnauthorized("token not recognized")
	ErrForbidden          = response.NewForbidden("you do not own this resource")
	ErrMalformedID        = response.NewServerError("malformed id")
	ErrUsernameRequired   = response.NewBadRequest("username is required")
	ErrPasswordTooLong    = response.NewBadRequest("password must be at most 72 bytes")

	ErrUserNotFound    = response.NewNotFound("user not found")
	ErrPostNotFound    = response.NewNotFound("post not found")
	ErrCommentNotFound = response.NewNotFound("comment not found")
)
