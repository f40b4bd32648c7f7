package mirror

import (
	"errors"
	"fmt"
)

// NotFoundError is returned when the mirror node answers 404 for an entity.
type NotFoundError struct {
	Path string
	Body string
}

func (e *NotFoundError) Error() string {
	if e == nil {
		return "mirror node entity not found"
	}
	return fmt.Sprintf("mirror node entity not found: %s", e.Path)
}

// IsNotFound reports whether err wraps a NotFoundError.
func IsNotFound(err error) bool {
	var notFound *NotFoundError
	return errors.As(err, &notFound)
}
