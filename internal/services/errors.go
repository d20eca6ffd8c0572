package services

import (
	"blogicum/internal/db"
	"errors"

	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrNotFound covers both missing entities and entities hidden from the viewer.
	ErrNotFound = db.ErrNotFound
	// ErrForbidden means the viewer is authenticated but does not own the entity.
	ErrForbidden          = errors.New("only the author may change this")
	ErrUsernameTaken      = errors.New("username already taken")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrSlugTaken          = errors.New("slug already taken")
	// ErrPasswordTooLong is returned for passwords bcrypt cannot hash.
	ErrPasswordTooLong = bcrypt.ErrPasswordTooLong
)
