package domain

import "errors"

var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrUserExists = errors.New("user already exists")
var ErrInvalidRole = errors.New("invalid role")
var ErrUserNotFound = errors.New("user not found")
var ErrUnauthenticated = errors.New("unauthenticated")
var ErrForbidden = errors.New("access forbidden")
