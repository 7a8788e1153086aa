package model

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a failed embed render.
type ErrorKind string

const (
	ErrorKindConfig           ErrorKind = "config"
	ErrorKindMissingID        ErrorKind = "missing_id"
	ErrorKindInvalidID        ErrorKind = "invalid_id"
	ErrorKindNotFound         ErrorKind = "not_found"
	ErrorKindSizeNotAvailable ErrorKind = "size_not_available"
)

// EmbedError is a terminal failure of the embed pipeline. Message is shown
// to the reader in place of the image.
type EmbedError struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *EmbedError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *EmbedError) Unwrap() error { return e.Err }

func NewConfigError() *EmbedError {
	return &EmbedError{
		Kind:    ErrorKindConfig,
		Message: "Flickr Error ( No API key ): You must set flickr.apiKey!",
	}
}

func NewMissingIDError() *EmbedError {
	return &EmbedError{
		Kind:    ErrorKindMissingID,
		Message: "Flickr Error ( No ID ): Enter at least a PhotoID",
	}
}

func NewInvalidIDError() *EmbedError {
	return &EmbedError{
		Kind:    ErrorKindInvalidID,
		Message: "Flickr Error ( Not a valid ID ): PhotoID not numeric",
	}
}

func NewNotFoundError(photoID string, err error) *EmbedError {
	return &EmbedError{
		Kind:    ErrorKindNotFound,
		Message: "Flickr Error ( Photo not found ): PhotoID " + photoID,
		Err:     err,
	}
}

func NewSizeNotAvailableError(code SizeCode) *EmbedError {
	return &EmbedError{
		Kind:    ErrorKindSizeNotAvailable,
		Message: fmt.Sprintf("Flickr Error ( Not a valid size ): Not found in this size (%s)", code),
	}
}

// KindOf returns the kind of the first EmbedError in err's chain.
func KindOf(err error) (ErrorKind, bool) {
	var embedErr *EmbedError
	if errors.As(err, &embedErr) {
		return embedErr.Kind, true
	}
	return "", false
}

// IsKind reports whether err carries an EmbedError of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	k, ok := KindOf(err)
	return ok && k == kind
}
