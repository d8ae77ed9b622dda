package auth

import "errors"

var (
	ErrUnauthenticated  = errors.New("missing or invalid access token")
	ErrForbidden        = errors.New("you are not allowed to perform this action")
	ErrNoLinkedEmployee = errors.New("user is not linked to an employee")
	ErrInvalidToken     = errors.New("invalid or expired token")
)
