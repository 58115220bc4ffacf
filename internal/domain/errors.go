// Package domain provides shared domain-level sentinel errors.
package domain

import "errors"

// ErrNotFound indicates the requested entity does not exist.
var ErrNotFound = errors.New("not found")

// ErrEmptyInput indicates the submitted case text was empty or whitespace-only.
var ErrEmptyInput = errors.New("case text is empty")

// ErrInvalidInput indicates the submitted case text could not be decoded as UTF-8 text.
var ErrInvalidInput = errors.New("case text is not valid UTF-8")

// ErrInvalidPayload indicates a worker returned a payload that failed validation.
var ErrInvalidPayload = errors.New("invalid worker payload")
