package repository

import (
	stderrors "errors"

	"go.mongodb.org/mongo-driver/mongo"
)

var (
	// ErrNotFound se devuelve cuando ningún documento coincide con el filtro.
	ErrNotFound = stderrors.New("document not found")
	// ErrDuplicate se devuelve cuando un índice único rechaza la escritura.
	ErrDuplicate = stderrors.New("duplicate key")
)

func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case stderrors.Is(err, mongo.ErrNoDocuments):
		return ErrNotFound
	case mongo.IsDuplicateKeyError(err):
		return ErrDuplicate
	}
	return err
}
