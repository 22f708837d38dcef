package app_errors

import "errors"

var ErrNotFound = errors.New("resource not found")
var ErrAlreadyExists = errors.New("resource already exists")
var ErrUniqueConstraintViolation = errors.New("unique constraint violated")
var ErrNotNullViolation = errors.New("required field is missing or null")
var ErrDatabaseOperation = errors.New("database operation failed")
var ErrAuthentication = errors.New("authentication failed")
var ErrTokenExpired = errors.New("token expired")
var ErrInvalidToken = errors.New("token is invalid")
var ErrPasswordLength = errors.New("password must be between 8 and 20 characters")
