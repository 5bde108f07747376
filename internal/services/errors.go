package services

import "errors"

// Domain errors raised by the services. Handlers translate them to HTTP
// statuses through a single mapping table; everything else is reported as
// an internal server error.
var (
	ErrEmailOrUsernameTaken = errors.New("Email or username are taken")
	ErrInvalidCredentials   = errors.New("Credentials are not valid")
	ErrNotAuthorized        = errors.New("Not authorized")
	ErrUserNotFound         = errors.New("User does not exist")
	ErrPostNotFound         = errors.New("Post does not exist")
	ErrNotPostAuthor        = errors.New("You are not an author of this post")
)

// InternalServerErrorMessage is the opaque message returned for any
// unexpected failure. Details stay in the server-side logs.
const InternalServerErrorMessage = "Internal server error"
