package service

import (
	"errors"
	"fmt"

	"bookstore-catalog/internal/repository"
)

// ValidationError indica un campo obligatorio ausente o fuera de rango.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// ReferenceError indica que un slug del cuerpo no corresponde a ningún registro activo.
type ReferenceError struct {
	Entity string
	Field  string
	Value  string
}

func (e *ReferenceError) Error() string {
	return fmt.Sprintf("%s %q does not exist (field %s)", e.Entity, e.Value, e.Field)
}

// NotFoundError indica que el slug no tiene un documento activo.
type NotFoundError struct {
	Entity string
	Slug   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("The %s does not exist or is inactive.", e.Entity)
}

// DuplicateError indica que el índice único rechazó el slug o el email.
type DuplicateError struct {
	Entity string
	Key    string
}

func (e *DuplicateError) Error() string {
	return fmt.Sprintf("%s %q already exists", e.Entity, e.Key)
}

func notFound(err error, entity, slug string) error {
	if errors.Is(err, repository.ErrNotFound) {
		return &NotFoundError{Entity: entity, Slug: slug}
	}
	return err
}

func duplicate(err error, entity, key string) error {
	if errors.Is(err, repository.ErrDuplicate) {
		return &DuplicateError{Entity: entity, Key: key}
	}
	return err
}
