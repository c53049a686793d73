package service

import (
	"errors"
	"fmt"

	"github.com/sakashimaa/go-pet-project/backoffice/internal/repository"
)

var (
	ErrNotFound = errors.New("resource not found")
	ErrDatabase = errors.New("database error")
)

type NotFoundError struct {
	ID int64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("Resource not found. Id: %d", e.ID)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// DatabaseError reports a storage rule the request broke, such as deleting a referenced row.
type DatabaseError struct {
	Msg string
	Err error
}

func (e *DatabaseError) Error() string {
	return e.Msg
}

func (e *DatabaseError) Unwrap() error {
	return e.Err
}

func (e *DatabaseError) Is(target error) bool {
	return target == ErrDatabase
}

const (
	msgInvalidValue    = "Value rejected by storage"
	msgMissingCategory = "Referenced category no longer exists"
)

// storageError turns schema rejections into DatabaseError; other errors pass through.
func storageError(err error) error {
	if errors.Is(err, repository.ErrInvalidValue) {
		return &DatabaseError{Msg: msgInvalidValue, Err: err}
	}

	return err
}

func inUse(kind string, err error) *DatabaseError {
	return &DatabaseError{Msg: fmt.Sprintf("Cannot delete: %s has associated records", kind), Err: err}
}
