package model

import (
	"errors"
	"strings"
)

// Validation errors shared by the forms and the store.
var (
	ErrEmptyName  = errors.New("name is required")
	ErrEmptyTitle = errors.New("title is required")
)

// CleanText trims surrounding whitespace and newlines from user input.
func CleanText(s string) string {
	return strings.TrimSpace(s)
}

// ValidateName reports ErrEmptyName when a project name is blank after trimming.
func ValidateName(name string) error {
	if CleanText(name) == "" {
		return ErrEmptyName
	}
	return nil
}

// ValidateTitle reports ErrEmptyTitle when a checkpoint title is blank after trimming.
func ValidateTitle(title string) error {
	if CleanText(title) == "" {
		return ErrEmptyTitle
	}
	return nil
}
